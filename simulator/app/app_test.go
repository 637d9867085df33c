package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riichi/common/config"
	"riichi/runtime/game/engines/mahjong"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, 1000, mahjong.GameResult{
		Points:  [4]int{28000, 47700, 4300, 20000},
		Ranking: [4]int{1, 0, 3, 2},
		Rounds:  9,
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "seed=1000 rounds=9", lines[0])
	assert.Contains(t, lines[1], "1. CPU_1  47700")
	assert.Contains(t, lines[4], "4. CPU_2   4300")
}

func TestRun_WithoutMongo(t *testing.T) {
	rules := config.DefaultRules()
	rules.GameLength = config.GameLengthEast
	conf := &config.SimulatorConfig{
		AppName: "simulator",
		Seed:    5,
		Games:   2,
		Rules:   rules,
	}

	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), conf, &buf))
	out := buf.String()
	assert.Contains(t, out, "seed=5 ")
	assert.Contains(t, out, "seed=6 ")
	assert.Equal(t, 8, strings.Count(out, "CPU_"))
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conf := &config.SimulatorConfig{Seed: 1, Games: 3, Rules: config.DefaultRules()}

	var buf bytes.Buffer
	assert.NoError(t, Run(ctx, conf, &buf), "中断不算错误")
	assert.Empty(t, buf.String())
}
