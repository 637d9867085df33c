package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"riichi/common/config"
)

func TestPoints_Table(t *testing.T) {
	cases := []struct {
		name     string
		fan, fu  int
		selfDraw bool
		wind     Wind
		a, b     int
	}{
		{"子家 1番30符 荣和", 1, 30, false, WindSouth, 1000, 0},
		{"庄家 1番30符 荣和", 1, 30, false, WindEast, 1500, 0},
		{"子家 2番30符 自摸", 2, 30, true, WindSouth, 1000, 500},
		{"庄家 2番30符 自摸", 2, 30, true, WindEast, 1000, 1000},
		{"子家 3番60符 荣和", 3, 60, false, WindWest, 7700, 0},
		{"子家 1番110符 荣和", 1, 110, false, WindNorth, 3600, 0},
		{"七对子 2番25符 荣和", 2, 25, false, WindSouth, 1600, 0},
		{"4番40符 切上满贯", 4, 40, false, WindSouth, 8000, 0},
		{"庄家 4番40符 切上满贯", 4, 40, false, WindEast, 12000, 0},
		{"3番70符 切上满贯", 3, 70, false, WindSouth, 8000, 0},
		{"3番70符 自摸满贯", 3, 70, true, WindSouth, 4000, 2000},
		{"庄家 4番40符 自摸", 4, 40, true, WindEast, 4000, 4000},
		{"子家 4番40符 自摸满贯", 4, 40, true, WindSouth, 4000, 2000},
		{"庄家 3番70符 切上满贯", 3, 70, false, WindEast, 12000, 0},
		{"庄家 3番70符 自摸满贯", 3, 70, true, WindEast, 4000, 4000},
		{"跳满", 6, 30, false, WindSouth, 12000, 0},
		{"倍满", 8, 30, false, WindSouth, 16000, 0},
		{"三倍满", 11, 30, false, WindSouth, 24000, 0},
		{"役满", 13, 30, false, WindSouth, 32000, 0},
		{"庄家役满自摸", 13, 30, true, WindEast, 16000, 16000},
		{"双倍役满", 26, 30, false, WindSouth, 64000, 0},
		{"无番", 0, 30, false, WindSouth, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b := Points(c.fan, c.fu, c.selfDraw, c.wind)
			assert.Equal(t, c.a, a)
			assert.Equal(t, c.b, b)
		})
	}
}

func TestFanCount(t *testing.T) {
	rules := config.DefaultRules()

	assert.Equal(t, 6, FanCount([]Yaku{YakuRiichi, YakuPinfu}, true, 2, 1, 1, rules))
	assert.Equal(t, 0, FanCount(nil, true, 3, 0, 0, rules), "没有役时宝牌不算番")
	assert.Equal(t, 1, FanCount([]Yaku{YakuTanyao}, false, 0, 0, 0, rules))
	assert.Equal(t, 0, FanCount([]Yaku{YakuPinfu}, false, 0, 0, 0, rules), "平和副露不成立")

	big := []Yaku{YakuRiichi, YakuChinitsu, YakuIttsu, YakuPinfu}
	assert.Equal(t, 13, FanCount(big, true, 5, 0, 0, rules), "累计役满")
	rules.KazoeYakuman = false
	assert.Equal(t, 12, FanCount(big, true, 5, 0, 0, rules))
	rules.FanCap = 8
	assert.Equal(t, 8, FanCount(big, true, 5, 0, 0, rules))

	rules = config.DefaultRules()
	assert.Equal(t, 13, FanCount([]Yaku{YakuDaisangen, YakuTsuuiisou}, false, 3, 0, 0, rules))
	rules.StackYakuman = true
	assert.Equal(t, 26, FanCount([]Yaku{YakuDaisangen, YakuTsuuiisou}, false, 3, 0, 0, rules))
}

func TestFuCount(t *testing.T) {
	// 暗刻幺九 8 + 暗杠中张 16 + 门清荣和 10 + 底符 20 + 嵌张 2
	d := Decomposition{
		Melds: []Meld{
			ConcealedMeld(MeldTriplet, MustParseTiles("999m")),
			ConcealedMeld(MeldRun, MustParseTiles("234p")),
			ConcealedMeld(MeldRun, MustParseTiles("678s")),
			ConcealedMeld(MeldPair, MustParseTiles("55s")),
			ConcealedMeld(MeldQuad, MustParseTiles("4444m")),
		},
		WinTile:   Pin3,
		WinMeld:   1,
		Concealed: true,
	}
	assert.Equal(t, 60, FuCount(d, false, WindEast, WindSouth))
	// 自摸 +2 符，门清荣和的 10 符没有了
	assert.Equal(t, 50, FuCount(d, true, WindEast, WindSouth))

	// 连风雀头 4 符
	d = Decomposition{
		Melds: []Meld{
			ConcealedMeld(MeldRun, MustParseTiles("123m")),
			ConcealedMeld(MeldRun, MustParseTiles("456m")),
			ConcealedMeld(MeldRun, MustParseTiles("789p")),
			ConcealedMeld(MeldRun, MustParseTiles("234s")),
			ConcealedMeld(MeldPair, MustParseTiles("11z")),
		},
		WinTile:   Man4,
		WinMeld:   1,
		Concealed: true,
	}
	assert.Equal(t, 40, FuCount(d, false, WindEast, WindEast))

	// 食平和 30 符
	d.Melds[4] = ConcealedMeld(MeldPair, MustParseTiles("22p"))
	d.Melds[0] = openRun("123m", 3)
	d.Concealed = false
	assert.Equal(t, 30, FuCount(d, false, WindEast, WindSouth))
}
