package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riichi/common/config"
)

// handWith 14 张（含和了牌）的门清手牌，declared 为副露
func handWith(t *testing.T, concealed string, win string, declared ...Meld) (*Hand, Tile) {
	t.Helper()
	h := NewHand(MustParseTiles(concealed))
	for _, m := range declared {
		h.declare(m)
	}
	wt, ok := h.Find(MustParseTiles(win)[0].Type)
	require.True(t, ok, "和了牌 %s 不在手牌里", win)
	return h, wt
}

func ronCtx() WinContext {
	return WinContext{Draw: DrawDiscard, SeatWind: WindSouth, RoundWind: WindEast}
}

func tsumoCtx() WinContext {
	return WinContext{Draw: DrawWall, SeatWind: WindSouth, RoundWind: WindEast}
}

func openPon(s string, from int) Meld {
	ts := MustParseTiles(s)
	return newMeld(MeldTriplet, ts, from, ts[0])
}

func openRun(s string, from int) Meld {
	ts := MustParseTiles(s)
	return newMeld(MeldRun, ts, from, ts[0])
}

func TestEvaluate_PinfuIttsu(t *testing.T) {
	rules := config.DefaultRules()

	h, win := handWith(t, "123456789m456p99s", "6p")
	res, ok := Evaluate(h, win, ronCtx(), rules)
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuPinfu, YakuIttsu}, res.Yaku)
	assert.Equal(t, 3, res.Fan)
	assert.Equal(t, 30, res.Fu)

	res, ok = Evaluate(h, win, tsumoCtx(), rules)
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuMenzenTsumo, YakuPinfu, YakuIttsu}, res.Yaku)
	assert.Equal(t, 4, res.Fan)
	assert.Equal(t, 20, res.Fu, "平和自摸 20 符")
}

func TestEvaluate_Chiitoitsu(t *testing.T) {
	h, win := handWith(t, "1122m3344p5566s77z", "7z")
	res, ok := Evaluate(h, win, ronCtx(), config.DefaultRules())
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuChiitoitsu}, res.Yaku)
	assert.Equal(t, 2, res.Fan)
	assert.Equal(t, 25, res.Fu)
	assert.True(t, res.Decomp.SevenPairs)
}

func TestEvaluate_RyanpeikouBeatsChiitoitsu(t *testing.T) {
	h, win := handWith(t, "112233m445566p99s", "9s")
	res, ok := Evaluate(h, win, ronCtx(), config.DefaultRules())
	require.True(t, ok)
	assert.Contains(t, res.Yaku, YakuRyanpeikou)
	assert.NotContains(t, res.Yaku, YakuChiitoitsu)
	assert.NotContains(t, res.Yaku, YakuIipeikou)
	assert.Equal(t, 3, res.Fan)
	assert.Equal(t, 40, res.Fu, "门清荣和 30 + 单骑 2 = 32，切上 40")
}

func TestEvaluate_Kokushi(t *testing.T) {
	h, win := handWith(t, "19m19p19s12345677z", "7z")
	res, ok := Evaluate(h, win, ronCtx(), config.DefaultRules())
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuKokushi}, res.Yaku)
	assert.Equal(t, 1, res.Yakuman)
	assert.Equal(t, 13, res.Fan)
	assert.True(t, res.Decomp.Orphans)
}

func TestEvaluate_Yakuhai(t *testing.T) {
	h, win := handWith(t, "123m456p789s11z", "1z", openPon("555z", 0))
	res, ok := Evaluate(h, win, ronCtx(), config.DefaultRules())
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuHaku}, res.Yaku)
	assert.Equal(t, 1, res.Fan)
	// 20 + 明刻幺九 4 + 场风雀头 2 + 单骑 2 = 28 -> 30
	assert.Equal(t, 30, res.Fu)
}

func TestEvaluate_NoYaku(t *testing.T) {
	rules := config.DefaultRules()

	h, win := handWith(t, "123m567p345s88s", "1m", openRun("678m", 3))
	_, ok := Evaluate(h, win, ronCtx(), rules)
	assert.False(t, ok, "副露且无役不能和")

	h, win = handWith(t, "234m567p345s88s", "2m", openRun("678m", 3))
	res, ok := Evaluate(h, win, ronCtx(), rules)
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuTanyao}, res.Yaku)

	rules.OpenTanyao = false
	_, ok = Evaluate(h, win, ronCtx(), rules)
	assert.False(t, ok, "不允许食断时副露断幺没有役")

	// 13 张不是和牌
	h = NewHand(MustParseTiles("123456789m45p99s"))
	_, ok = Evaluate(h, h.concealed[0], ronCtx(), config.DefaultRules())
	assert.False(t, ok)
}

func TestEvaluate_ConcealedTriplets(t *testing.T) {
	rules := config.DefaultRules()

	// 自摸单骑：四暗刻
	h, win := handWith(t, "111m222p333s444z55z", "5z")
	res, ok := Evaluate(h, win, tsumoCtx(), rules)
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuSuuankou}, res.Yaku)
	assert.Equal(t, 1, res.Yakuman)

	// 荣和完成的刻子算明刻：三暗刻 + 对对和
	h, win = handWith(t, "111m222p333s444z55z", "4z")
	res, ok = Evaluate(h, win, ronCtx(), rules)
	require.True(t, ok)
	assert.ElementsMatch(t, []Yaku{YakuSanankou, YakuToitoi}, res.Yaku)
	assert.Equal(t, 4, res.Fan)
	assert.Zero(t, res.Yakuman)
}

func TestEvaluate_SituationalYaku(t *testing.T) {
	rules := config.DefaultRules()
	h, win := handWith(t, "123456789m456p99s", "6p")

	ctx := ronCtx()
	ctx.Riichi, ctx.Ippatsu = true, true
	res, ok := Evaluate(h, win, ctx, rules)
	require.True(t, ok)
	assert.Contains(t, res.Yaku, YakuRiichi)
	assert.Contains(t, res.Yaku, YakuIppatsu)

	ctx.DoubleRiichi = true
	res, _ = Evaluate(h, win, ctx, rules)
	assert.Contains(t, res.Yaku, YakuDoubleRiichi)
	assert.NotContains(t, res.Yaku, YakuRiichi, "两立直覆盖立直")

	ctx = tsumoCtx()
	ctx.Draw = DrawCompensation
	res, _ = Evaluate(h, win, ctx, rules)
	assert.Contains(t, res.Yaku, YakuRinshan)
	assert.Contains(t, res.Yaku, YakuMenzenTsumo)

	ctx = ronCtx()
	ctx.Draw = DrawRobbedKan
	res, _ = Evaluate(h, win, ctx, rules)
	assert.Contains(t, res.Yaku, YakuChankan)

	ctx = ronCtx()
	ctx.LastTile = true
	res, _ = Evaluate(h, win, ctx, rules)
	assert.Contains(t, res.Yaku, YakuHoutei)

	ctx = tsumoCtx()
	ctx.SeatWind = WindEast
	ctx.FirstTurn = true
	res, _ = Evaluate(h, win, ctx, rules)
	assert.Equal(t, []Yaku{YakuTenhou}, res.Yaku)
}

func TestEvaluate_StackYakuman(t *testing.T) {
	// 字一色 + 大三元 + 四暗刻
	h, win := handWith(t, "555z666z777z111z22z", "2z")

	rules := config.DefaultRules()
	res, ok := Evaluate(h, win, tsumoCtx(), rules)
	require.True(t, ok)
	assert.Equal(t, 1, res.Yakuman)

	rules.StackYakuman = true
	res, ok = Evaluate(h, win, tsumoCtx(), rules)
	require.True(t, ok)
	assert.Equal(t, 3, res.Yakuman)
	assert.ElementsMatch(t, []Yaku{YakuSuuankou, YakuDaisangen, YakuTsuuiisou}, res.Yaku)
}
