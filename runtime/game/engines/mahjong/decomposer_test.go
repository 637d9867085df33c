package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(tiles []Tile) map[TileType]int {
	out := map[TileType]int{}
	for _, t := range tiles {
		out[t.Type]++
	}
	return out
}

func TestDecompose_TwoReadings(t *testing.T) {
	concealed := MustParseTiles("11223344456m")
	quad := ConcealedMeld(MeldQuad, MustParseTiles("1111z"))

	decomps := Decompose(concealed, []Meld{quad})
	require.Len(t, decomps, 2)

	for _, melds := range decomps {
		require.Len(t, melds, 5)
		pairs, quads := 0, 0
		var used []Tile
		for _, m := range melds {
			if m.IsPair() {
				pairs++
			}
			if m.IsQuad() {
				quads++
				continue
			}
			used = append(used, m.Tiles...)
		}
		assert.Equal(t, 1, pairs)
		assert.Equal(t, 1, quads)
		assert.Equal(t, typesOf(concealed), typesOf(used), "拆法必须用掉全部暗牌")
	}
}

func TestDecompose_RejectsWrongTileCount(t *testing.T) {
	thirteen := MustParseTiles("1122334455667m")
	fifteen := MustParseTiles("112233445566778m")

	for _, hand := range [][]Tile{thirteen, fifteen} {
		assert.Empty(t, Decompose(hand, nil))
		assert.False(t, IsBasicComplete(hand, nil))
		assert.False(t, IsSevenPairs(hand))
		assert.False(t, IsThirteenOrphans(hand))
	}

	assert.False(t, IsThirteenOrphans(MustParseTiles("19m19p19s1234567z")))
	assert.True(t, IsThirteenOrphans(MustParseTiles("19m19p19s12345677z")))
	assert.True(t, IsSevenPairs(MustParseTiles("1122m3344p5566s77z")))
	assert.False(t, IsSevenPairs(MustParseTiles("1111m3344p5566s77z")), "四张同种牌不能当两对")
}

func TestDecompose_Soundness(t *testing.T) {
	hands := []string{
		"111222333m456p77z",
		"123456789m123p55s",
		"22334455667788p",
		"11123455678999s",
	}
	for _, s := range hands {
		concealed := MustParseTiles(s)
		decomps := Decompose(concealed, nil)
		require.NotEmpty(t, decomps, s)
		keys := map[string]bool{}
		for _, melds := range decomps {
			require.Len(t, melds, 5, s)
			var used []Tile
			pairs := 0
			for _, m := range melds {
				used = append(used, m.Tiles...)
				switch m.Kind {
				case MeldPair:
					pairs++
					assert.Equal(t, m.Tiles[0].Type, m.Tiles[1].Type)
				case MeldRun:
					assert.Equal(t, m.Tiles[0].Type+1, m.Tiles[1].Type)
					assert.Equal(t, m.Tiles[0].Type+2, m.Tiles[2].Type)
					assert.False(t, m.Tiles[0].Type.IsHonor())
				case MeldTriplet:
					assert.Equal(t, m.Tiles[0].Type, m.Tiles[2].Type)
				}
			}
			assert.Equal(t, 1, pairs, s)
			assert.Equal(t, typesOf(concealed), typesOf(used), s)

			key := decompositionKey(melds)
			assert.False(t, keys[key], "重复的拆法 %s", s)
			keys[key] = true
		}
	}

	// 111222333m 可以读成三刻子或三顺子
	assert.Len(t, Decompose(MustParseTiles("111222333m456p77z"), nil), 2)
}

func TestWaits(t *testing.T) {
	waits := Waits(MustParseTiles("123456789m45p99s"), nil)
	assert.Equal(t, []TileType{Pin3, Pin6}, waits)
	assert.True(t, IsTenpai(MustParseTiles("123456789m45p99s"), nil))
	assert.False(t, IsTenpai(MustParseTiles("2468m36p2468s135z"), nil))

	// 九莲宝灯纯正听九面
	waits = Waits(MustParseTiles("1112345678999m"), nil)
	assert.Len(t, waits, 9)

	// 唯一的和了牌已经在手里用满 4 张，不算听牌
	waits = Waits(MustParseTiles("1111m234p567s789s"), nil)
	assert.Empty(t, waits)

	// 副露后听牌
	pon := newMeld(MeldTriplet, MustParseTiles("555z"), 1, MustParseTiles("5z")[0])
	waits = Waits(MustParseTiles("123m456p789s1z"), []Meld{pon})
	assert.Equal(t, []TileType{East}, waits)
	assert.Nil(t, Waits(MustParseTiles("123m456p789s12z"), []Meld{pon}))
}

func TestTenpaiDiscards(t *testing.T) {
	hand := MustParseTiles("123456789m45p99s7z")
	discards := TenpaiDiscards(hand, nil)
	require.Len(t, discards, 1)
	assert.Equal(t, Red, discards[0].Type)

	assert.Empty(t, TenpaiDiscards(MustParseTiles("2468m36p2468s1357z"), nil))
}
