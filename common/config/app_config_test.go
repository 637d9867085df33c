package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), conf.Rules)
	assert.Equal(t, int64(1000), conf.Seed)
	assert.False(t, conf.DatabaseConf.MongoConf.Enabled())
}

func TestLoad_OverridesRules(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "application.yml")
	content := []byte(`
appName: test
seed: 7
rules:
  useRedFives: false
  gameLength: east
  stackYakuman: true
database:
  mongo:
    url: mongodb://localhost:27017
`)
	require.NoError(t, os.WriteFile(file, content, 0o644))

	conf, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "test", conf.AppName)
	assert.Equal(t, int64(7), conf.Seed)
	assert.False(t, conf.Rules.UseRedFives)
	assert.True(t, conf.Rules.StackYakuman)
	assert.Equal(t, 1, conf.Rules.Winds())
	// 未写的字段保持默认
	assert.Equal(t, 25000, conf.Rules.InitialPoints)
	assert.True(t, conf.DatabaseConf.MongoConf.Enabled())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
