package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTiles(t *testing.T) {
	ts, err := ParseTiles("123m0p55z")
	require.NoError(t, err)
	require.Len(t, ts, 6)
	assert.Equal(t, Man1, ts[0].Type)
	assert.Equal(t, Pin5, ts[3].Type)
	assert.True(t, ts[3].Red)
	assert.Equal(t, White, ts[4].Type)
	assert.NotEqual(t, ts[4].ID, ts[5].ID, "同种牌需要不同的 ID")
	assert.Equal(t, "1m2m3m0p5z5z", TilesString(ts))

	_, err = ParseTiles("11111m")
	assert.Error(t, err)
	_, err = ParseTiles("8z")
	assert.Error(t, err)
	_, err = ParseTiles("123")
	assert.Error(t, err)
	_, err = ParseTiles("12x")
	assert.Error(t, err)

	// 赤5 固定占用 ID 0，普通 5 不会和它冲突
	ts, err = ParseTiles("5550s")
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, x := range ts {
		assert.False(t, seen[x.ID])
		seen[x.ID] = true
	}
}

func TestTileOrderAndDora(t *testing.T) {
	ts := MustParseTiles("1z9s0m5m1m")
	SortTiles(ts)
	assert.Equal(t, "1m5m0m9s1z", TilesString(ts), "同种牌普通牌在赤牌之前")

	assert.Equal(t, Man1, Man9.DoraOf())
	assert.Equal(t, Pin3, Pin2.DoraOf())
	assert.Equal(t, East, North.DoraOf())
	assert.Equal(t, South, East.DoraOf())
	assert.Equal(t, White, Red.DoraOf())
	assert.Equal(t, Green, White.DoraOf())

	assert.True(t, So9.IsTerminal())
	assert.True(t, Red.IsYaochu())
	assert.True(t, Pin5.IsSimple())
	assert.Equal(t, 0, East.Number())
	assert.Equal(t, FamilySou, So4.Family())
}

func TestDeckManager_Accounting(t *testing.T) {
	dm := NewDeckManager(rand.New(rand.NewSource(7)), true)
	dm.InitRound()

	require.Equal(t, TileLimit, dm.TileCount())
	require.Equal(t, TileLimit-DeadWall, dm.Remaining())
	require.Len(t, dm.DoraIndicators(), 1)
	require.Len(t, dm.UraDoraIndicators(), 1)

	red := 0
	seen := map[Tile]bool{}
	all := append([]Tile(nil), dm.wall...)
	all = append(all, dm.wang.Compensation...)
	all = append(all, dm.wang.DoraIndicators...)
	all = append(all, dm.wang.UraDoraIndicators...)
	for _, x := range all {
		assert.False(t, seen[x], "重复的牌 %v", x)
		seen[x] = true
		if x.Red {
			red++
		}
	}
	assert.Len(t, seen, TileLimit)
	assert.Equal(t, 3, red)

	drawn, ok := dm.Draw()
	require.True(t, ok)
	assert.Equal(t, TileLimit-DeadWall-1, dm.Remaining())
	assert.Equal(t, TileLimit-1, dm.TileCount())
	_ = drawn
}

func TestDeckManager_CompensationAndUndo(t *testing.T) {
	dm := NewDeckManager(rand.New(rand.NewSource(7)), false)
	dm.InitRoundFromWall(NewTileSet(false))

	before := dm.Remaining()
	firstComp := dm.wang.Compensation[0]
	lastWall := dm.wall[len(dm.wall)-1]

	comp, ok := dm.DrawCompensation()
	require.True(t, ok)
	assert.Equal(t, firstComp, comp)
	assert.Equal(t, before-1, dm.Remaining(), "岭上摸牌后牌山最后一张补进王牌")
	assert.Len(t, dm.wang.Compensation, 4)
	assert.Len(t, dm.DoraIndicators(), 2, "开杠立即翻开新的宝牌指示牌")
	assert.Equal(t, TileLimit-1, dm.TileCount())

	dm.UndoCompensation(comp)
	assert.Equal(t, before, dm.Remaining())
	assert.Equal(t, firstComp, dm.wang.Compensation[0])
	assert.Equal(t, lastWall, dm.wall[len(dm.wall)-1])
	assert.Len(t, dm.DoraIndicators(), 1)
	assert.Equal(t, TileLimit, dm.TileCount())

	// 最多四次岭上摸牌
	for i := 0; i < MaxKans; i++ {
		_, ok := dm.DrawCompensation()
		require.True(t, ok)
	}
	_, ok = dm.DrawCompensation()
	assert.False(t, ok)
	assert.Len(t, dm.DoraIndicators(), 5)
}

func TestDeckManager_WallSizeMismatchPanics(t *testing.T) {
	dm := NewDeckManager(rand.New(rand.NewSource(1)), false)
	assert.Panics(t, func() {
		dm.InitRoundFromWall(NewTileSet(false)[:100])
	})
}
