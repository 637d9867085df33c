package mahjong

import (
	"riichi/common/config"
)

// 符数列：20 25 30 40 50 60 70 80 90 100 110
var fuColumns = [...]int{20, 25, 30, 40, 50, 60, 70, 80, 90, 100, 110}

// 点数表按番数 1-4、符数列固定写死，不按公式推导（满贯切上等历史约定）
var nonDealerRon = [4][11]int{
	{700, 800, 1000, 1300, 1600, 2000, 2300, 2600, 2900, 3200, 3600},
	{1300, 1600, 2000, 2600, 3200, 3900, 4500, 5200, 5800, 6400, 7100},
	{2600, 3200, 3900, 5200, 6400, 7700, 8000, 8000, 8000, 8000, 8000},
	{5200, 6400, 7700, 8000, 8000, 8000, 8000, 8000, 8000, 8000, 8000},
}

var dealerRon = [4][11]int{
	{1000, 1200, 1500, 2000, 2400, 2900, 3400, 3900, 4400, 4800, 5300},
	{2000, 2400, 2900, 3900, 4800, 5800, 6800, 7700, 8700, 9600, 10600},
	{3900, 4800, 5800, 7700, 9600, 11600, 12000, 12000, 12000, 12000, 12000},
	{7700, 9600, 11600, 12000, 12000, 12000, 12000, 12000, 12000, 12000, 12000},
}

// 子家自摸：闲家支付
var nonDealerTsumoFromNonDealer = [4][11]int{
	{200, 200, 300, 400, 400, 500, 600, 700, 800, 800, 900},
	{400, 400, 500, 700, 800, 1000, 1200, 1300, 1500, 1600, 1800},
	{700, 800, 1000, 1300, 1600, 2000, 2000, 2000, 2000, 2000, 2000},
	{1300, 1600, 2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000},
}

// 子家自摸：庄家支付；庄家自摸时每家也支付这一列
var tsumoFromDealer = [4][11]int{
	{400, 400, 500, 700, 800, 1000, 1200, 1300, 1500, 1600, 1800},
	{700, 800, 1000, 1300, 1600, 2000, 2300, 2600, 2900, 3200, 3600},
	{1300, 1600, 2000, 2600, 3200, 3900, 4000, 4000, 4000, 4000, 4000},
	{2600, 3200, 3900, 4000, 4000, 4000, 4000, 4000, 4000, 4000, 4000},
}

// 满贯以上的基本单位（子家自摸时闲家支付额）
func limitUnit(fan int) int {
	switch {
	case fan >= 13:
		return 8000 * (fan / 13)
	case fan >= 11:
		return 6000
	case fan >= 8:
		return 4000
	case fan >= 6:
		return 3000
	default:
		return 2000
	}
}

func fuColumn(fu int) int {
	for i, c := range fuColumns {
		if fu <= c {
			return i
		}
	}
	return len(fuColumns) - 1
}

// Points 荣和返回 (放铳者支付, 0)；
// 子家自摸返回 (庄家支付, 闲家支付)；庄家自摸返回 (每家支付, 每家支付)
func Points(fan int, fu int, selfDraw bool, seatWind Wind) (int, int) {
	dealer := seatWind == WindEast
	if fan <= 0 {
		return 0, 0
	}
	// 3 番 70 符以上、4 番 40 符以上切上满贯
	if (fan == 3 && fu >= 70) || (fan == 4 && fu >= 40) {
		fan = 5
	}
	if fan >= 5 {
		unit := limitUnit(fan)
		switch {
		case !selfDraw && dealer:
			return unit * 6, 0
		case !selfDraw:
			return unit * 4, 0
		case dealer:
			return unit * 2, unit * 2
		default:
			return unit * 2, unit
		}
	}

	col := fuColumn(fu)
	row := fan - 1
	switch {
	case !selfDraw && dealer:
		return dealerRon[row][col], 0
	case !selfDraw:
		return nonDealerRon[row][col], 0
	case dealer:
		return tsumoFromDealer[row][col], tsumoFromDealer[row][col]
	default:
		return tsumoFromDealer[row][col], nonDealerTsumoFromNonDealer[row][col]
	}
}

// FanCount 役满直接按 13 番的倍数；否则役 + 宝牌 + 里宝牌 + 赤宝牌，再按规则封顶
func FanCount(yaku []Yaku, concealed bool, dora, uraDora, redDora int, rules config.RuleConfig) int {
	yakuman := 0
	for _, y := range yaku {
		yakuman += yakuTable[y].yakuman
	}
	if yakuman > 0 {
		if !rules.StackYakuman {
			yakuman = 1
		}
		return 13 * yakuman
	}

	fan := 0
	for _, y := range yaku {
		fan += y.Fan(concealed)
	}
	if fan == 0 {
		return 0
	}
	fan += dora + uraDora + redDora
	if !rules.KazoeYakuman && fan > 12 {
		fan = 12
	}
	if fan > 13 {
		fan = 13
	}
	if rules.FanCap > 0 && fan > rules.FanCap {
		fan = rules.FanCap
	}
	return fan
}

// FuCount 符数，结果切上到 10 的倍数
func FuCount(d Decomposition, selfDraw bool, roundWind, seatWind Wind) int {
	if d.SevenPairs {
		return 25
	}
	if d.Orphans {
		return 30
	}
	if isPinfu(d, roundWind, seatWind) {
		if selfDraw {
			return 20
		}
		return 30
	}

	fu := 20
	if d.Concealed && !selfDraw {
		fu += 10 // 门前清荣和
	}

	for i, m := range d.Melds {
		switch {
		case m.IsSet():
			f := 2
			if m.Base().IsYaochu() {
				f *= 2
			}
			if d.ClosedSet(i, selfDraw) {
				f *= 2
			}
			if m.IsQuad() {
				f *= 4
			}
			fu += f
		case m.IsPair():
			tt := m.Base()
			if tt.IsDragon() {
				fu += 2
			}
			if tt == seatWind.TileType() {
				fu += 2
			}
			if tt == roundWind.TileType() {
				fu += 2
			}
		}
	}

	if d.WinMeld >= 0 {
		fu += waitFu(d.Melds[d.WinMeld], d.WinTile)
	}
	if selfDraw {
		fu += 2
	}
	// 副露且没有任何符（食平和）按 30 符
	if !d.Concealed && fu == 20 {
		fu = 30
	}
	return roundUpTo10(fu)
}

func roundUpTo10(x int) int {
	return (x + 9) / 10 * 10
}

func roundUpTo100(x int) int {
	return (x + 99) / 100 * 100
}
