package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGeneralCache_SetGet(t *testing.T) {
	c, err := NewGeneralCache(1024, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	c.Set("shanten", 2)
	c.Set("agari", true)
	c.Wait()

	n, ok := c.GetInt("shanten")
	require.True(t, ok)
	require.Equal(t, 2, n)

	b, ok := c.GetBool("agari")
	require.True(t, ok)
	require.True(t, b)

	_, ok = c.GetBool("shanten")
	require.False(t, ok, "类型不匹配时返回 false")

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestGeneralCache_TTL(t *testing.T) {
	c, err := NewGeneralCache(1024, 0)
	require.NoError(t, err)
	defer c.Close()

	c.SetWithTTL("short", 1, 10*time.Millisecond)
	c.Wait()
	_, ok := c.Get("short")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok = c.Get("short")
	require.False(t, ok, "过期后取不到")
}
