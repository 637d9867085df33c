package mahjong

import (
	"riichi/common/config"
)

// Yaku 役种
type Yaku int

const (
	// 一番
	YakuRiichi       Yaku = iota // 立直
	YakuIppatsu                  // 一发
	YakuMenzenTsumo              // 门前清自摸和
	YakuPinfu                    // 平和
	YakuIipeikou                 // 一杯口
	YakuTanyao                   // 断幺九
	YakuHaku                     // 役牌 白
	YakuHatsu                    // 役牌 发
	YakuChun                     // 役牌 中
	YakuSeatWind                 // 自风
	YakuRoundWind                // 场风
	YakuHaitei                   // 海底摸月
	YakuHoutei                   // 河底捞鱼
	YakuRinshan                  // 岭上开花
	YakuChankan                  // 抢杠

	// 二番
	YakuDoubleRiichi   // 两立直
	YakuSanshoku       // 三色同顺
	YakuIttsu          // 一气通贯
	YakuChanta         // 混全带幺九
	YakuChiitoitsu     // 七对子
	YakuToitoi         // 对对和
	YakuSanankou       // 三暗刻
	YakuSanshokuDoukou // 三色同刻
	YakuSankantsu      // 三杠子
	YakuHonroutou      // 混老头
	YakuShousangen     // 小三元

	// 三番以上
	YakuRyanpeikou // 二杯口
	YakuHonitsu    // 混一色
	YakuJunchan    // 纯全带幺九
	YakuChinitsu   // 清一色

	// 满贯
	YakuNagashiMangan // 流局满贯

	// 役满
	YakuKokushi     // 国士无双
	YakuSuuankou    // 四暗刻
	YakuDaisangen   // 大三元
	YakuShousuushii // 小四喜
	YakuDaisuushii  // 大四喜
	YakuTsuuiisou   // 字一色
	YakuChinroutou  // 清老头
	YakuRyuuiisou   // 绿一色
	YakuChuuren     // 九莲宝灯
	YakuSuukantsu   // 四杠子
	YakuTenhou      // 天和
	YakuChiihou     // 地和

	yakuCount
)

type yakuInfo struct {
	name    string
	closed  int // 门清时的番数
	open    int // 副露时的番数，0 表示副露不成立
	yakuman int // 役满倍数
}

var yakuTable = [yakuCount]yakuInfo{
	YakuRiichi:         {"Riichi", 1, 0, 0},
	YakuIppatsu:        {"Ippatsu", 1, 0, 0},
	YakuMenzenTsumo:    {"MenzenTsumo", 1, 0, 0},
	YakuPinfu:          {"Pinfu", 1, 0, 0},
	YakuIipeikou:       {"Iipeikou", 1, 0, 0},
	YakuTanyao:         {"Tanyao", 1, 1, 0},
	YakuHaku:           {"Haku", 1, 1, 0},
	YakuHatsu:          {"Hatsu", 1, 1, 0},
	YakuChun:           {"Chun", 1, 1, 0},
	YakuSeatWind:       {"SeatWind", 1, 1, 0},
	YakuRoundWind:      {"RoundWind", 1, 1, 0},
	YakuHaitei:         {"Haitei", 1, 1, 0},
	YakuHoutei:         {"Houtei", 1, 1, 0},
	YakuRinshan:        {"Rinshan", 1, 1, 0},
	YakuChankan:        {"Chankan", 1, 1, 0},
	YakuDoubleRiichi:   {"DoubleRiichi", 2, 0, 0},
	YakuSanshoku:       {"Sanshoku", 2, 1, 0},
	YakuIttsu:          {"Ittsu", 2, 1, 0},
	YakuChanta:         {"Chanta", 2, 1, 0},
	YakuChiitoitsu:     {"Chiitoitsu", 2, 0, 0},
	YakuToitoi:         {"Toitoi", 2, 2, 0},
	YakuSanankou:       {"Sanankou", 2, 2, 0},
	YakuSanshokuDoukou: {"SanshokuDoukou", 2, 2, 0},
	YakuSankantsu:      {"Sankantsu", 2, 2, 0},
	YakuHonroutou:      {"Honroutou", 2, 2, 0},
	YakuShousangen:     {"Shousangen", 2, 2, 0},
	YakuRyanpeikou:     {"Ryanpeikou", 3, 0, 0},
	YakuHonitsu:        {"Honitsu", 3, 2, 0},
	YakuJunchan:        {"Junchan", 3, 2, 0},
	YakuChinitsu:       {"Chinitsu", 6, 5, 0},
	YakuNagashiMangan:  {"NagashiMangan", 5, 5, 0},
	YakuKokushi:        {"Kokushi", 0, 0, 1},
	YakuSuuankou:       {"Suuankou", 0, 0, 1},
	YakuDaisangen:      {"Daisangen", 0, 0, 1},
	YakuShousuushii:    {"Shousuushii", 0, 0, 1},
	YakuDaisuushii:     {"Daisuushii", 0, 0, 1},
	YakuTsuuiisou:      {"Tsuuiisou", 0, 0, 1},
	YakuChinroutou:     {"Chinroutou", 0, 0, 1},
	YakuRyuuiisou:      {"Ryuuiisou", 0, 0, 1},
	YakuChuuren:        {"Chuuren", 0, 0, 1},
	YakuSuukantsu:      {"Suukantsu", 0, 0, 1},
	YakuTenhou:         {"Tenhou", 0, 0, 1},
	YakuChiihou:        {"Chiihou", 0, 0, 1},
}

func (y Yaku) String() string {
	if y < 0 || y >= yakuCount {
		return "Unknown"
	}
	return yakuTable[y].name
}

// Fan 番数，副露后不成立的役返回 0
func (y Yaku) Fan(concealed bool) int {
	if concealed {
		return yakuTable[y].closed
	}
	return yakuTable[y].open
}

func (y Yaku) IsYakuman() bool {
	return yakuTable[y].yakuman > 0
}

// Decomposition 一种和牌拆法，连同和了牌落在哪个面子里
type Decomposition struct {
	Melds      []Meld // 含副露
	WinTile    TileType
	WinMeld    int // 和了牌所在面子下标，七对子/国士为 -1
	SevenPairs bool
	Orphans    bool
	Concealed  bool // 门前清
}

// ClosedSet 是否算暗刻（荣和完成的刻子算明刻）
func (d Decomposition) ClosedSet(i int, selfDraw bool) bool {
	m := d.Melds[i]
	if !m.IsSet() || m.Open() {
		return false
	}
	if i == d.WinMeld && !selfDraw && m.Kind == MeldTriplet {
		return false
	}
	return true
}

// YakuContext 役判定的输入
type YakuContext struct {
	Decomp    Decomposition
	Win       WinContext
	Rules     config.RuleConfig
	Counts    Hand34 // 全部牌（含副露，杠算 4 张）
	Concealed Hand34 // 暗牌（含和了牌）
}

type YakuChecker interface {
	ID() Yaku
	Check(ctx *YakuContext) bool
}

type yakuCheckerFunc struct {
	id    Yaku
	check func(ctx *YakuContext) bool
}

func (f yakuCheckerFunc) ID() Yaku { return f.id }

func (f yakuCheckerFunc) Check(ctx *YakuContext) bool { return f.check(ctx) }

// WinResult 一手和牌的最终评价
type WinResult struct {
	Decomp  Decomposition
	Yaku    []Yaku
	Fan     int // 役的番数（不含宝牌）
	Yakuman int // 役满倍数
	Fu      int
}

func (r WinResult) HasYaku() bool {
	return len(r.Yaku) > 0
}

// Evaluate 和牌评价：枚举所有拆法和和了牌的归属，取番数最高（同番取符数最高）的一种
// hand 必须已经包含 winTile；没有役时返回 false
func Evaluate(hand *Hand, winTile Tile, ctx WinContext, rules config.RuleConfig) (WinResult, bool) {
	concealed := hand.Concealed()
	declared := hand.Melds()
	if hand.Equivalents() != 14 {
		return WinResult{}, false
	}

	yc := &YakuContext{Win: ctx, Rules: rules}
	yc.Concealed, _ = Hand34FromTiles(concealed)
	yc.Counts = yc.Concealed
	for _, m := range declared {
		for _, t := range m.Tiles {
			yc.Counts[t.Type]++
		}
	}
	isConcealed := hand.IsConcealed()

	var candidates []Decomposition
	if len(declared) == 0 && IsThirteenOrphans(concealed) {
		candidates = append(candidates, Decomposition{WinTile: winTile.Type, WinMeld: -1, Orphans: true, Concealed: true})
	}
	if len(declared) == 0 && IsSevenPairs(concealed) {
		pairs := make([]Meld, 0, 7)
		for i := 0; i < len(concealed); i += 2 {
			pairs = append(pairs, ConcealedMeld(MeldPair, concealed[i:i+2]))
		}
		candidates = append(candidates, Decomposition{Melds: pairs, WinTile: winTile.Type, WinMeld: -1, SevenPairs: true, Concealed: true})
	}
	for _, melds := range Decompose(concealed, declared) {
		// 和了牌只可能落在手牌内部的面子里，副露排在最后
		inner := len(melds) - len(declared)
		seen := map[string]bool{}
		for i := 0; i < inner; i++ {
			m := melds[i]
			if !m.Contains(winTile.Type) || seen[m.Key()] {
				continue
			}
			seen[m.Key()] = true
			candidates = append(candidates, Decomposition{Melds: melds, WinTile: winTile.Type, WinMeld: i, Concealed: isConcealed})
		}
	}

	best, found := WinResult{}, false
	for _, d := range candidates {
		yc.Decomp = d
		res := evaluateOne(yc)
		if !res.HasYaku() {
			continue
		}
		if !found || betterResult(res, best) {
			best, found = res, true
		}
	}
	return best, found
}

func betterResult(a, b WinResult) bool {
	if a.Yakuman != b.Yakuman {
		return a.Yakuman > b.Yakuman
	}
	if a.Fan != b.Fan {
		return a.Fan > b.Fan
	}
	return a.Fu > b.Fu
}

func evaluateOne(yc *YakuContext) WinResult {
	d := yc.Decomp
	res := WinResult{Decomp: d}

	var yakuman []Yaku
	for _, checker := range yakumanRegistry {
		if checker.Check(yc) {
			yakuman = append(yakuman, checker.ID())
		}
	}
	if len(yakuman) > 0 {
		res.Yaku = yakuman
		for _, y := range yakuman {
			res.Yakuman += yakuTable[y].yakuman
		}
		if !yc.Rules.StackYakuman {
			res.Yakuman = 1
		}
		res.Fan = 13 * res.Yakuman
		res.Fu = FuCount(d, yc.Win.SelfDraw(), yc.Win.RoundWind, yc.Win.SeatWind)
		return res
	}
	if d.Orphans {
		return res
	}

	found := map[Yaku]bool{}
	for _, checker := range yakuRegistry {
		if checker.Check(yc) && checker.ID().Fan(d.Concealed) > 0 {
			found[checker.ID()] = true
		}
	}
	// 上位役覆盖下位役
	if found[YakuDoubleRiichi] {
		delete(found, YakuRiichi)
	}
	if found[YakuRyanpeikou] {
		delete(found, YakuIipeikou)
	}
	if found[YakuJunchan] {
		delete(found, YakuChanta)
	}
	if found[YakuChinitsu] {
		delete(found, YakuHonitsu)
	}
	if found[YakuHonroutou] {
		delete(found, YakuChanta)
	}
	for y := Yaku(0); y < yakuCount; y++ {
		if found[y] {
			res.Yaku = append(res.Yaku, y)
			res.Fan += y.Fan(d.Concealed)
		}
	}
	res.Fu = FuCount(d, yc.Win.SelfDraw(), yc.Win.RoundWind, yc.Win.SeatWind)
	return res
}

var yakumanRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuKokushi, check: func(ctx *YakuContext) bool { return ctx.Decomp.Orphans }},
	yakuCheckerFunc{id: YakuSuuankou, check: func(ctx *YakuContext) bool {
		return !ctx.Decomp.SevenPairs && !ctx.Decomp.Orphans && closedSets(ctx) == 4
	}},
	yakuCheckerFunc{id: YakuDaisangen, check: func(ctx *YakuContext) bool { return countSets(ctx, isDragonType) == 3 }},
	yakuCheckerFunc{id: YakuShousuushii, check: func(ctx *YakuContext) bool {
		return countSets(ctx, isWindType) == 3 && pairMatches(ctx, isWindType)
	}},
	yakuCheckerFunc{id: YakuDaisuushii, check: func(ctx *YakuContext) bool { return countSets(ctx, isWindType) == 4 }},
	yakuCheckerFunc{id: YakuTsuuiisou, check: func(ctx *YakuContext) bool {
		return !ctx.Decomp.Orphans && allTiles(ctx, TileType.IsHonor)
	}},
	yakuCheckerFunc{id: YakuChinroutou, check: func(ctx *YakuContext) bool {
		return !ctx.Decomp.Orphans && allTiles(ctx, TileType.IsTerminal)
	}},
	yakuCheckerFunc{id: YakuRyuuiisou, check: func(ctx *YakuContext) bool { return allTiles(ctx, isGreen) }},
	yakuCheckerFunc{id: YakuChuuren, check: checkChuuren},
	yakuCheckerFunc{id: YakuSuukantsu, check: func(ctx *YakuContext) bool { return countQuads(ctx) == 4 }},
	yakuCheckerFunc{id: YakuTenhou, check: func(ctx *YakuContext) bool {
		return ctx.Win.FirstTurn && ctx.Win.Draw == DrawWall && ctx.Win.Dealer()
	}},
	yakuCheckerFunc{id: YakuChiihou, check: func(ctx *YakuContext) bool {
		return ctx.Win.FirstTurn && ctx.Win.Draw == DrawWall && !ctx.Win.Dealer()
	}},
}

var yakuRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuRiichi, check: func(ctx *YakuContext) bool { return ctx.Win.Riichi }},
	yakuCheckerFunc{id: YakuDoubleRiichi, check: func(ctx *YakuContext) bool { return ctx.Win.DoubleRiichi }},
	yakuCheckerFunc{id: YakuIppatsu, check: func(ctx *YakuContext) bool {
		return (ctx.Win.Riichi || ctx.Win.DoubleRiichi) && ctx.Win.Ippatsu
	}},
	yakuCheckerFunc{id: YakuMenzenTsumo, check: func(ctx *YakuContext) bool { return ctx.Win.SelfDraw() }},
	yakuCheckerFunc{id: YakuPinfu, check: func(ctx *YakuContext) bool {
		return isPinfu(ctx.Decomp, ctx.Win.RoundWind, ctx.Win.SeatWind)
	}},
	yakuCheckerFunc{id: YakuIipeikou, check: func(ctx *YakuContext) bool { return identicalRunPairs(ctx.Decomp) == 1 }},
	yakuCheckerFunc{id: YakuRyanpeikou, check: func(ctx *YakuContext) bool { return identicalRunPairs(ctx.Decomp) == 2 }},
	yakuCheckerFunc{id: YakuTanyao, check: func(ctx *YakuContext) bool {
		if !ctx.Decomp.Concealed && !ctx.Rules.OpenTanyao {
			return false
		}
		return allTiles(ctx, TileType.IsSimple)
	}},
	yakuCheckerFunc{id: YakuHaku, check: func(ctx *YakuContext) bool { return hasSetOf(ctx, White) }},
	yakuCheckerFunc{id: YakuHatsu, check: func(ctx *YakuContext) bool { return hasSetOf(ctx, Green) }},
	yakuCheckerFunc{id: YakuChun, check: func(ctx *YakuContext) bool { return hasSetOf(ctx, Red) }},
	yakuCheckerFunc{id: YakuSeatWind, check: func(ctx *YakuContext) bool { return hasSetOf(ctx, ctx.Win.SeatWind.TileType()) }},
	yakuCheckerFunc{id: YakuRoundWind, check: func(ctx *YakuContext) bool { return hasSetOf(ctx, ctx.Win.RoundWind.TileType()) }},
	yakuCheckerFunc{id: YakuHaitei, check: func(ctx *YakuContext) bool { return ctx.Win.LastTile && ctx.Win.Draw == DrawWall }},
	yakuCheckerFunc{id: YakuHoutei, check: func(ctx *YakuContext) bool { return ctx.Win.LastTile && ctx.Win.Draw == DrawDiscard }},
	yakuCheckerFunc{id: YakuRinshan, check: func(ctx *YakuContext) bool { return ctx.Win.Draw == DrawCompensation }},
	yakuCheckerFunc{id: YakuChankan, check: func(ctx *YakuContext) bool { return ctx.Win.Draw == DrawRobbedKan }},
	yakuCheckerFunc{id: YakuSanshoku, check: checkSanshoku},
	yakuCheckerFunc{id: YakuIttsu, check: checkIttsu},
	yakuCheckerFunc{id: YakuChanta, check: func(ctx *YakuContext) bool { return checkOutside(ctx, Meld.HasYaochu) && hasHonor(ctx) }},
	yakuCheckerFunc{id: YakuJunchan, check: func(ctx *YakuContext) bool { return checkOutside(ctx, Meld.HasTerminal) }},
	yakuCheckerFunc{id: YakuChiitoitsu, check: func(ctx *YakuContext) bool { return ctx.Decomp.SevenPairs }},
	yakuCheckerFunc{id: YakuToitoi, check: func(ctx *YakuContext) bool {
		return !ctx.Decomp.SevenPairs && countSets(ctx, func(TileType) bool { return true }) == 4
	}},
	yakuCheckerFunc{id: YakuSanankou, check: func(ctx *YakuContext) bool { return closedSets(ctx) == 3 }},
	yakuCheckerFunc{id: YakuSanshokuDoukou, check: checkSanshokuDoukou},
	yakuCheckerFunc{id: YakuSankantsu, check: func(ctx *YakuContext) bool { return countQuads(ctx) == 3 }},
	yakuCheckerFunc{id: YakuHonroutou, check: func(ctx *YakuContext) bool {
		return allTiles(ctx, TileType.IsYaochu) && hasHonor(ctx)
	}},
	yakuCheckerFunc{id: YakuShousangen, check: func(ctx *YakuContext) bool {
		return countSets(ctx, isDragonType) == 2 && pairMatches(ctx, isDragonType)
	}},
	yakuCheckerFunc{id: YakuHonitsu, check: func(ctx *YakuContext) bool {
		suit, ok := singleSuit(ctx)
		return ok && suit >= 0 && hasHonor(ctx)
	}},
	yakuCheckerFunc{id: YakuChinitsu, check: func(ctx *YakuContext) bool {
		suit, ok := singleSuit(ctx)
		return ok && suit >= 0 && !hasHonor(ctx)
	}},
}

func isDragonType(tt TileType) bool { return tt.IsDragon() }
func isWindType(tt TileType) bool   { return tt.IsWind() }

var greenTiles = map[TileType]bool{So2: true, So3: true, So4: true, So6: true, So8: true, Green: true}

func isGreen(tt TileType) bool { return greenTiles[tt] }

func allTiles(ctx *YakuContext, pred func(TileType) bool) bool {
	for tt, n := range ctx.Counts {
		if n > 0 && !pred(TileType(tt)) {
			return false
		}
	}
	return true
}

func hasHonor(ctx *YakuContext) bool {
	for tt := East; tt <= Red; tt++ {
		if ctx.Counts[tt] > 0 {
			return true
		}
	}
	return false
}

// singleSuit 只有一种数牌（可带字牌）时返回该花色；全字牌返回 -1
func singleSuit(ctx *YakuContext) (int, bool) {
	suit := -1
	for tt := Man1; tt <= So9; tt++ {
		if ctx.Counts[tt] == 0 {
			continue
		}
		s := suitOf(int(tt))
		if suit >= 0 && suit != s {
			return 0, false
		}
		suit = s
	}
	return suit, true
}

func countSets(ctx *YakuContext, pred func(TileType) bool) int {
	n := 0
	for _, m := range ctx.Decomp.Melds {
		if m.IsSet() && pred(m.Base()) {
			n++
		}
	}
	return n
}

func countQuads(ctx *YakuContext) int {
	n := 0
	for _, m := range ctx.Decomp.Melds {
		if m.IsQuad() {
			n++
		}
	}
	return n
}

func hasSetOf(ctx *YakuContext, tt TileType) bool {
	for _, m := range ctx.Decomp.Melds {
		if m.IsSet() && m.Base() == tt {
			return true
		}
	}
	return false
}

func pairMatches(ctx *YakuContext, pred func(TileType) bool) bool {
	if ctx.Decomp.SevenPairs {
		return false
	}
	for _, m := range ctx.Decomp.Melds {
		if m.IsPair() {
			return pred(m.Base())
		}
	}
	return false
}

func closedSets(ctx *YakuContext) int {
	n := 0
	for i := range ctx.Decomp.Melds {
		if ctx.Decomp.ClosedSet(i, ctx.Win.SelfDraw()) {
			n++
		}
	}
	return n
}

func identicalRunPairs(d Decomposition) int {
	if !d.Concealed || d.SevenPairs {
		return 0
	}
	runs := map[TileType]int{}
	for _, m := range d.Melds {
		if m.IsRun() {
			runs[m.Base()]++
		}
	}
	pairs := 0
	for _, n := range runs {
		pairs += n / 2
	}
	return pairs
}

// isPinfu 门清、四顺子、雀头不是役牌、两面听
func isPinfu(d Decomposition, roundWind, seatWind Wind) bool {
	if !d.Concealed || d.SevenPairs || d.Orphans || d.WinMeld < 0 {
		return false
	}
	for _, m := range d.Melds {
		switch {
		case m.IsSet():
			return false
		case m.IsPair():
			tt := m.Base()
			if tt.IsDragon() || tt == roundWind.TileType() || tt == seatWind.TileType() {
				return false
			}
		}
	}
	w := d.Melds[d.WinMeld]
	if !w.IsRun() {
		return false
	}
	return waitFu(w, d.WinTile) == 0
}

// waitFu 听牌形式的符：单骑、嵌张、边张 2 符，两面和双碰 0 符
func waitFu(m Meld, win TileType) int {
	switch m.Kind {
	case MeldPair:
		return 2
	case MeldRun:
		base := m.Base()
		if win == base+1 {
			return 2
		}
		if win == base+2 && base.Number() == 1 {
			return 2
		}
		if win == base && base.Number() == 7 {
			return 2
		}
	}
	return 0
}

func checkSanshoku(ctx *YakuContext) bool {
	var seen [3][10]bool
	for _, m := range ctx.Decomp.Melds {
		if m.IsRun() {
			seen[suitOf(int(m.Base()))][m.Base().Number()] = true
		}
	}
	for n := 1; n <= 7; n++ {
		if seen[0][n] && seen[1][n] && seen[2][n] {
			return true
		}
	}
	return false
}

func checkSanshokuDoukou(ctx *YakuContext) bool {
	var seen [3][10]bool
	for _, m := range ctx.Decomp.Melds {
		if m.IsSet() && !m.Base().IsHonor() {
			seen[suitOf(int(m.Base()))][m.Base().Number()] = true
		}
	}
	for n := 1; n <= 9; n++ {
		if seen[0][n] && seen[1][n] && seen[2][n] {
			return true
		}
	}
	return false
}

func checkIttsu(ctx *YakuContext) bool {
	var seen [3][10]bool
	for _, m := range ctx.Decomp.Melds {
		if m.IsRun() {
			seen[suitOf(int(m.Base()))][m.Base().Number()] = true
		}
	}
	for s := 0; s < 3; s++ {
		if seen[s][1] && seen[s][4] && seen[s][7] {
			return true
		}
	}
	return false
}

// checkOutside 全带：每组面子都满足 pred，且至少有一组顺子（否则是混老头/清老头）
func checkOutside(ctx *YakuContext, pred func(Meld) bool) bool {
	if ctx.Decomp.SevenPairs || ctx.Decomp.Orphans {
		return false
	}
	runs := 0
	for _, m := range ctx.Decomp.Melds {
		if !pred(m) {
			return false
		}
		if m.IsRun() {
			runs++
		}
	}
	return runs > 0
}

// checkChuuren 门清同一花色 1112345678999 + 任意一张
func checkChuuren(ctx *YakuContext) bool {
	if !ctx.Decomp.Concealed || len(ctx.Decomp.Melds) == 0 || ctx.Decomp.SevenPairs {
		return false
	}
	for _, m := range ctx.Decomp.Melds {
		if m.IsQuad() {
			return false
		}
	}
	suit, ok := singleSuit(ctx)
	if !ok || suit < 0 || hasHonor(ctx) {
		return false
	}
	base := TileType(suit * 9)
	need := [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}
	for i := 0; i < 9; i++ {
		if ctx.Concealed[int(base)+i] < need[i] {
			return false
		}
	}
	return true
}
