package mahjong

import (
	"math/rand"

	"riichi/common/config"
	"riichi/common/log"
)

type RoundOptions struct {
	Rules        config.RuleConfig
	Rng          *rand.Rand
	Wall         []Tile // 非空时直接使用这副牌山（136 张），不洗牌
	Dealer       int
	RoundWind    Wind
	Honba        int
	RiichiSticks int
	Points       [4]int
	Events       chan<- Event
}

type KanKind int

const (
	KanOpen      KanKind = iota // 大明杠
	KanConcealed                // 暗杠
	KanAdded                    // 加杠
)

func (k KanKind) String() string {
	switch k {
	case KanOpen:
		return "Daiminkan"
	case KanConcealed:
		return "Ankan"
	case KanAdded:
		return "Kakan"
	}
	return "Unknown"
}

// KanContext 一次杠的现场，由驾驶循环持有，用于抢杠判断和撤销岭上摸牌
type KanContext struct {
	Seat         int
	Kind         KanKind
	Tile         Tile // 可被抢的那张牌（加杠时为加上的牌）
	Compensation Tile
	meldIndex    int
}

// Round 一局：牌山、四家手牌、牌河和回合状态，单线程同步调用
type Round struct {
	rules     config.RuleConfig
	deck      *DeckManager
	players   [4]*PlayerImage
	turns     *TurnManager
	dealer    int
	roundWind Wind
	honba     int
	sticks    int
	points    [4]int
	events    chan<- Event

	lastDiscard Tile
	discarder   int
	hasDiscard  bool
	robbed      *KanContext // 撤销后的杠，等待抢杠荣和
	kanPass     *KanContext // 尚未结算见逃振听的杠
	rinshan     bool
	justCalled  bool
	declaring   bool
	pending     int // 宣言牌尚未通过的立直座位，-1 表示没有
	kans        int
	liable      [4]int
	liableYaku  [4]Yaku

	report *EndOfRoundReport
}

func NewRound(opts RoundOptions) *Round {
	checkSeat("NewRound", opts.Dealer)
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	deck := NewDeckManager(rng, opts.Rules.UseRedFives)
	if len(opts.Wall) > 0 {
		deck.InitRoundFromWall(opts.Wall)
	} else {
		deck.InitRound()
	}

	r := &Round{
		rules:     opts.Rules,
		deck:      deck,
		turns:     NewTurnManager(opts.Dealer),
		dealer:    opts.Dealer,
		roundWind: opts.RoundWind,
		honba:     opts.Honba,
		sticks:    opts.RiichiSticks,
		points:    opts.Points,
		events:    opts.Events,
		discarder: -1,
		pending:   -1,
		liable:    [4]int{-1, -1, -1, -1},
	}

	// 从庄家开始每人 13 张
	for i := 0; i < 4; i++ {
		seat := (opts.Dealer + i) % 4
		tiles := make([]Tile, 0, 13)
		for j := 0; j < 13; j++ {
			t, _ := deck.Deal()
			tiles = append(tiles, t)
		}
		r.players[seat] = NewPlayerImage(seat, tiles)
	}

	log.Debug("开局: 庄家=%d 场风=%s 本场=%d 供托=%d", r.dealer, r.roundWind, r.honba, r.sticks)
	r.broadcastRoundStart()
	return r
}

func (r *Round) Phase() Phase      { return r.turns.Phase }
func (r *Round) Current() int      { return r.turns.TurnPointer }
func (r *Round) Dealer() int       { return r.dealer }
func (r *Round) RoundWind() Wind   { return r.roundWind }
func (r *Round) Honba() int        { return r.honba }
func (r *Round) RiichiSticks() int { return r.sticks }
func (r *Round) Points() [4]int    { return r.points }
func (r *Round) Remaining() int    { return r.deck.Remaining() }
func (r *Round) Kans() int         { return r.kans }
func (r *Round) Rules() config.RuleConfig {
	return r.rules
}

// SeatWind 庄家为东
func (r *Round) SeatWind(seat int) Wind {
	checkSeat("SeatWind", seat)
	return Wind((seat - r.dealer + 4) % 4)
}

// LastDiscard 当前可以被鸣牌或荣和的舍牌
func (r *Round) LastDiscard() (Tile, int, bool) {
	if r.turns.Phase != PhaseAwaitingCall || !r.hasDiscard {
		return Tile{}, -1, false
	}
	return r.lastDiscard, r.discarder, true
}

func (r *Round) Riichi(seat int) *RiichiRecord {
	checkSeat("Riichi", seat)
	if r.players[seat].Riichi == nil {
		return nil
	}
	rec := *r.players[seat].Riichi
	return &rec
}

// Furiten 当前是否处于任意一种振听
func (r *Round) Furiten(seat int) bool {
	checkSeat("Furiten", seat)
	p := r.players[seat]
	if p.RiichiFuriten || p.TemporaryFuriten {
		return true
	}
	for _, w := range Waits(p.Hand.Concealed(), p.Hand.Melds()) {
		if p.HasDiscardedType(w) {
			return true
		}
	}
	return false
}

func (r *Round) GetHand(seat int) *Hand {
	checkSeat("GetHand", seat)
	return r.players[seat].Hand.Clone()
}

// GetDiscard 牌河（不含被鸣走的牌）
func (r *Round) GetDiscard(seat int) []Tile {
	checkSeat("GetDiscard", seat)
	return append([]Tile(nil), r.players[seat].DiscardPile...)
}

func (r *Round) DoraIndicators() []Tile {
	return r.deck.DoraIndicators()
}

// DoraCount 这张牌值几个宝牌（指示牌命中数 + 赤宝牌）
func (r *Round) DoraCount(t Tile) int {
	n := countIndicated(t.Type, r.deck.DoraIndicators())
	if t.Red {
		n++
	}
	return n
}

func countIndicated(tt TileType, indicators []Tile) int {
	n := 0
	for _, ind := range indicators {
		if ind.Type.DoraOf() == tt {
			n++
		}
	}
	return n
}

// TileCount 牌山 + 王牌 + 四家手牌（含副露）+ 牌河，始终为 136
func (r *Round) TileCount() int {
	n := r.deck.TileCount()
	for _, p := range r.players {
		n += p.Hand.TileCount() + len(p.DiscardPile)
	}
	return n
}

// VisibleTiles 从 seat 的视角能看到的牌：自己的手牌、所有牌河、所有副露和宝牌指示牌
func (r *Round) VisibleTiles(seat int) *[34]uint8 {
	checkSeat("VisibleTiles", seat)
	groups := [][]Tile{r.players[seat].Hand.Concealed(), r.deck.DoraIndicators()}
	for _, p := range r.players {
		groups = append(groups, p.DiscardPile)
		for _, m := range p.Hand.Melds() {
			groups = append(groups, m.Tiles)
		}
	}
	return Visible34(groups...)
}

// Pick 当前座位摸牌；有舍牌等待处理时视为所有人都放弃，先轮到下家
func (r *Round) Pick() (Tile, bool) {
	switch r.turns.Phase {
	case PhaseAwaitingCall:
		r.resolveDiscard()
		r.turns.TurnPointer = r.discarder
		r.turns.NextTurn()
		r.turns.Phase = PhaseAwaitingPick
		r.broadcastTurn(r.turns.TurnPointer)
	case PhaseAwaitingPick:
	default:
		log.Debug("当前状态 %s 不能摸牌", r.turns.Phase)
		return Tile{}, false
	}

	seat := r.turns.TurnPointer
	t, ok := r.deck.Draw()
	if !ok {
		return Tile{}, false
	}
	p := r.players[seat]
	p.Hand.Add(t)
	p.Picks++
	p.TemporaryFuriten = false
	p.forbidden = nil
	r.rinshan = false
	r.justCalled = false
	r.turns.Record(seat, MovePick)
	r.turns.Phase = PhaseAwaitingDiscard
	r.pushPick(seat, t)
	return t, true
}

// Discard 当前座位打出一张牌
func (r *Round) Discard(t Tile) bool {
	if r.turns.Phase != PhaseAwaitingDiscard {
		log.Debug("当前状态 %s 不能出牌", r.turns.Phase)
		return false
	}
	seat := r.turns.TurnPointer
	p := r.players[seat]
	if !p.Hand.Has(t) {
		log.Debug("座位 %d 手里没有 %s", seat, t)
		return false
	}
	if p.IsRiichi() && !r.declaring {
		if latest, ok := p.Hand.Latest(); !ok || latest != t {
			log.Debug("座位 %d 立直中只能打出摸到的牌", seat)
			return false
		}
	}
	if p.isForbidden(t.Type) {
		log.Debug("座位 %d 食替限制，不能打出 %s", seat, t)
		return false
	}

	r.resolveKanPass()
	p.Hand.Remove(t)
	p.discard(t)
	if p.IsRiichi() && !r.declaring {
		p.Riichi.Ippatsu = false
	}
	p.forbidden = nil
	r.rinshan = false
	r.justCalled = false

	r.lastDiscard = t
	r.discarder = seat
	r.hasDiscard = true
	r.robbed = nil
	r.turns.Record(seat, MoveDiscard)
	r.turns.Phase = PhaseAwaitingCall
	r.broadcastDiscard(seat, t)
	return true
}

// CanCallRiichi 可以宣言立直时返回所有能作为宣言牌的牌，否则为空
func (r *Round) CanCallRiichi(seat int) []Tile {
	checkSeat("CanCallRiichi", seat)
	p := r.players[seat]
	if r.turns.Phase != PhaseAwaitingDiscard || r.turns.TurnPointer != seat {
		return nil
	}
	if p.IsRiichi() || !p.Hand.IsConcealed() {
		return nil
	}
	if r.points[seat] < r.rules.RiichiCost || r.deck.Remaining() < 4 {
		return nil
	}
	return TenpaiDiscards(p.Hand.Concealed(), p.Hand.Melds())
}

// CallRiichi 立直并打出宣言牌；立直棒在宣言牌通过后才支付
func (r *Round) CallRiichi(t Tile) bool {
	seat := r.turns.TurnPointer
	options := r.CanCallRiichi(seat)
	allowed := false
	for _, o := range options {
		if o.Type == t.Type && o.Red == t.Red {
			allowed = true
			break
		}
	}
	p := r.players[seat]
	if !allowed || !p.Hand.Has(t) {
		log.Debug("座位 %d 不能以 %s 立直", seat, t)
		return false
	}

	p.Riichi = &RiichiRecord{
		Tile:     t,
		Discards: len(p.Discarded),
		Double:   p.Picks == 1 && len(p.Discarded) == 0 && r.turns.Uninterrupted(0),
		Ippatsu:  true,
	}
	r.declaring = true
	ok := r.Discard(t)
	r.declaring = false
	if !ok {
		panic(newInvariantError("CallRiichi", "座位 %d 立直宣言牌 %s 打出失败", seat, t))
	}
	r.pending = seat
	r.broadcastRiichi(seat, t)
	log.Debug("座位 %d 立直, 宣言牌 %s, 两立直=%v", seat, t, p.Riichi.Double)
	return true
}

// CanCallTsumo 当前座位摸牌后能否自摸
func (r *Round) CanCallTsumo(seat int) bool {
	_, ok := r.tsumoResult(seat)
	return ok
}

func (r *Round) tsumoResult(seat int) (WinResult, bool) {
	checkSeat("CanCallTsumo", seat)
	if r.turns.Phase != PhaseAwaitingDiscard || r.turns.TurnPointer != seat {
		return WinResult{}, false
	}
	p := r.players[seat]
	latest, ok := p.Hand.Latest()
	if !ok {
		return WinResult{}, false
	}
	draw := DrawWall
	if r.rinshan {
		draw = DrawCompensation
	}
	return Evaluate(p.Hand, latest, r.winContext(seat, draw), r.rules)
}

// CanCallRon 能否荣和当前舍牌；kan 非空时判断能否抢这个杠
func (r *Round) CanCallRon(seat int, kan *KanContext) bool {
	_, _, ok := r.ronResult(seat, kan)
	return ok
}

func (r *Round) ronResult(seat int, kan *KanContext) (WinResult, *Hand, bool) {
	checkSeat("CanCallRon", seat)
	var (
		tile Tile
		from int
		kind KanKind
		rob  bool
	)
	switch {
	case kan != nil:
		if r.turns.Phase != PhaseAwaitingDiscard || r.turns.TurnPointer != kan.Seat || !r.rinshan {
			return WinResult{}, nil, false
		}
		tile, from, kind, rob = kan.Tile, kan.Seat, kan.Kind, true
	case r.turns.Phase == PhaseAwaitingCall && r.hasDiscard:
		tile, from = r.lastDiscard, r.discarder
		if r.robbed != nil {
			kind, rob = r.robbed.Kind, true
		}
	default:
		return WinResult{}, nil, false
	}
	if seat == from || (rob && kind == KanOpen) {
		return WinResult{}, nil, false
	}
	if r.Furiten(seat) {
		return WinResult{}, nil, false
	}

	hand := r.players[seat].Hand.Clone()
	hand.Add(tile)
	draw := DrawDiscard
	if rob {
		draw = DrawRobbedKan
	}
	res, ok := Evaluate(hand, tile, r.winContext(seat, draw), r.rules)
	if !ok {
		return WinResult{}, nil, false
	}
	// 暗杠只能被国士无双抢
	if rob && kind == KanConcealed && !res.Decomp.Orphans {
		return WinResult{}, nil, false
	}
	return res, hand, true
}

func (r *Round) winContext(seat int, draw DrawKind) WinContext {
	p := r.players[seat]
	ctx := WinContext{
		Draw:      draw,
		SeatWind:  r.SeatWind(seat),
		RoundWind: r.roundWind,
	}
	if p.Riichi != nil {
		ctx.Riichi = true
		ctx.DoubleRiichi = p.Riichi.Double
		ctx.Ippatsu = p.Riichi.Ippatsu
	}
	switch draw {
	case DrawWall:
		ctx.FirstTurn = p.Picks == 1 && len(p.Discarded) == 0 && r.turns.Uninterrupted(0)
		ctx.LastTile = r.deck.Remaining() == 0
	case DrawDiscard:
		ctx.LastTile = r.deck.Remaining() == 0
	}
	return ctx
}

// IsTenpai drop 非空时先打出这张再判断；14 张且没有指定时，只要有一张能打出后听牌即为真
func (r *Round) IsTenpai(seat int, drop *Tile) bool {
	checkSeat("IsTenpai", seat)
	h := r.players[seat].Hand
	if drop != nil {
		c := h.Clone()
		if !c.Remove(*drop) {
			return false
		}
		return IsTenpai(c.Concealed(), c.Melds())
	}
	if h.Equivalents() == 14 {
		return len(TenpaiDiscards(h.Concealed(), h.Melds())) > 0
	}
	return IsTenpai(h.Concealed(), h.Melds())
}

// DiscardChoices 当前合法的出牌，同种同赤标记只列一张
func (r *Round) DiscardChoices(seat int) []Tile {
	checkSeat("DiscardChoices", seat)
	if r.turns.Phase != PhaseAwaitingDiscard || r.turns.TurnPointer != seat {
		return nil
	}
	p := r.players[seat]
	if p.IsRiichi() {
		if latest, ok := p.Hand.Latest(); ok {
			return []Tile{latest}
		}
		return nil
	}
	var out []Tile
	seen := map[Tile]bool{}
	for _, t := range p.Hand.Concealed() {
		key := Tile{Type: t.Type, Red: t.Red}
		if seen[key] || p.isForbidden(t.Type) {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// DiscardChoicesPreservingTenpai 打出后仍然听牌的合法出牌
func (r *Round) DiscardChoicesPreservingTenpai(seat int) []Tile {
	var out []Tile
	for _, t := range r.DiscardChoices(seat) {
		tile := t
		if r.IsTenpai(seat, &tile) {
			out = append(out, t)
		}
	}
	return out
}

// resolveDiscard 舍牌被放弃（或被吃碰杠），能荣和却没有荣和的座位进入振听，并支付立直棒
func (r *Round) resolveDiscard() {
	if !r.hasDiscard {
		return
	}
	r.markPassed(r.lastDiscard.Type, r.discarder, false)
	if r.pending == r.discarder {
		p := r.players[r.pending]
		r.points[r.pending] -= r.rules.RiichiCost
		r.sticks++
		p.Riichi.StickPaid = true
	}
	r.pending = -1
	r.hasDiscard = false
	r.robbed = nil
}

func (r *Round) resolveKanPass() {
	if r.kanPass == nil {
		return
	}
	r.markPassed(r.kanPass.Tile.Type, r.kanPass.Seat, r.kanPass.Kind == KanConcealed)
	// 杠成立后才取消其他人的一发，被抢杠时保留
	for s, p := range r.players {
		if s != r.kanPass.Seat && p.Riichi != nil {
			p.Riichi.Ippatsu = false
		}
	}
	r.kanPass = nil
}

// markPassed 见逃：立直中的座位永久振听，其余座位同巡振听
func (r *Round) markPassed(tt TileType, from int, orphansOnly bool) {
	for s, p := range r.players {
		if s == from {
			continue
		}
		hit := false
		if orphansOnly {
			c := p.Hand.Clone()
			c.Add(Tile{Type: tt})
			hit = len(c.Melds()) == 0 && IsThirteenOrphans(c.Concealed())
		} else {
			for _, w := range Waits(p.Hand.Concealed(), p.Hand.Melds()) {
				if w == tt {
					hit = true
					break
				}
			}
		}
		if !hit {
			continue
		}
		if p.IsRiichi() {
			p.RiichiFuriten = true
		} else {
			p.TemporaryFuriten = true
		}
	}
}

func (r *Round) clearIppatsu() {
	for _, p := range r.players {
		if p.Riichi != nil {
			p.Riichi.Ippatsu = false
		}
	}
}

// callable 舍牌能否被 seat 鸣牌（吃碰明杠共同的前提）
func (r *Round) callable(seat int) bool {
	if r.turns.Phase != PhaseAwaitingCall || !r.hasDiscard || r.robbed != nil {
		return false
	}
	if seat == r.discarder || r.players[seat].IsRiichi() {
		return false
	}
	// 河底的牌不能鸣
	return r.deck.Remaining() > 0
}

// hasLegalDiscardAfter 鸣牌后去掉 used 张牌，手里还剩下不受食替限制的牌
func hasLegalDiscardAfter(h *Hand, used []TileType, forbidden []TileType) bool {
	c := h.Clone()
	for _, tt := range used {
		if _, ok := c.take(tt, 1); !ok {
			return false
		}
	}
	for _, t := range c.Concealed() {
		blocked := false
		for _, f := range forbidden {
			if t.Type == f {
				blocked = true
				break
			}
		}
		if !blocked {
			return true
		}
	}
	return false
}

func (r *Round) CanCallPon(seat int) bool {
	checkSeat("CanCallPon", seat)
	if !r.callable(seat) {
		return false
	}
	tt := r.lastDiscard.Type
	h := r.players[seat].Hand
	if h.CountOf(tt) < 2 {
		return false
	}
	return hasLegalDiscardAfter(h, []TileType{tt, tt}, []TileType{tt})
}

func (r *Round) CallPon(seat int) bool {
	if !r.CanCallPon(seat) {
		log.Debug("座位 %d 不能碰", seat)
		return false
	}
	tt := r.lastDiscard.Type
	from := r.discarder
	p := r.players[seat]

	r.resolveDiscard()
	called := r.players[from].takeLastDiscard()
	own, _ := p.Hand.take(tt, 2)
	m := newMeld(MeldTriplet, append(own, called), from, called)
	p.Hand.declare(m)
	p.forbidden = []TileType{tt}
	r.afterCall(seat, m)
	return true
}

// CanCallChii 返回所有可以吃的顺子起始数字（1-7）
func (r *Round) CanCallChii(seat int) []int {
	checkSeat("CanCallChii", seat)
	if !r.callable(seat) || seat != (r.discarder+1)%4 {
		return nil
	}
	tt := r.lastDiscard.Type
	if tt.IsHonor() {
		return nil
	}
	h := r.players[seat].Hand
	n := tt.Number()
	var out []int
	for start := n - 2; start <= n; start++ {
		if start < 1 || start > 7 {
			continue
		}
		base := tt - TileType(n-start)
		var used []TileType
		for k := 0; k < 3; k++ {
			if base+TileType(k) != tt {
				used = append(used, base+TileType(k))
			}
		}
		if h.CountOf(used[0]) == 0 || h.CountOf(used[1]) == 0 {
			continue
		}
		if !hasLegalDiscardAfter(h, used, chiiForbidden(tt, start)) {
			continue
		}
		out = append(out, start)
	}
	return out
}

// chiiForbidden 食替：不能打出现物，也不能打出筋上的另一端
func chiiForbidden(called TileType, start int) []TileType {
	n := called.Number()
	out := []TileType{called}
	switch {
	case start == n && n+3 <= 9:
		out = append(out, called+3)
	case start+2 == n && n-3 >= 1:
		out = append(out, called-3)
	}
	return out
}

// CallChii 下家吃，start 为顺子最小的数字
func (r *Round) CallChii(start int) bool {
	if r.turns.Phase != PhaseAwaitingCall || !r.hasDiscard {
		return false
	}
	seat := (r.discarder + 1) % 4
	allowed := false
	for _, s := range r.CanCallChii(seat) {
		if s == start {
			allowed = true
			break
		}
	}
	if !allowed {
		log.Debug("座位 %d 不能吃 %d 开头的顺子", seat, start)
		return false
	}

	tt := r.lastDiscard.Type
	from := r.discarder
	p := r.players[seat]
	base := tt - TileType(tt.Number()-start)

	r.resolveDiscard()
	called := r.players[from].takeLastDiscard()
	tiles := []Tile{called}
	for k := 0; k < 3; k++ {
		if base+TileType(k) == tt {
			continue
		}
		t, _ := p.Hand.take(base+TileType(k), 1)
		tiles = append(tiles, t...)
	}
	m := newMeld(MeldRun, tiles, from, called)
	p.Hand.declare(m)
	p.forbidden = chiiForbidden(tt, start)
	r.afterCall(seat, m)
	return true
}

func (r *Round) afterCall(seat int, m Meld) {
	r.clearIppatsu()
	r.checkLiability(seat, m)
	r.turns.Record(seat, MoveCall)
	r.turns.TurnPointer = seat
	r.turns.Phase = PhaseAwaitingDiscard
	r.justCalled = true
	r.rinshan = false
	r.broadcastMeld(seat, m)
}

// checkLiability 包牌：第三组三元牌或第四组风牌是鸣来的，放出这张牌的座位承担责任
func (r *Round) checkLiability(seat int, m Meld) {
	if !r.rules.Liability || !m.IsSet() || !m.Open() {
		return
	}
	var pred func(TileType) bool
	var need int
	var yaku Yaku
	switch {
	case m.Base().IsDragon():
		pred, need, yaku = TileType.IsDragon, 3, YakuDaisangen
	case m.Base().IsWind():
		pred, need, yaku = TileType.IsWind, 4, YakuDaisuushii
	default:
		return
	}
	n := 0
	for _, dm := range r.players[seat].Hand.Melds() {
		if dm.IsSet() && pred(dm.Base()) {
			n++
		}
	}
	if n == need {
		r.liable[seat] = m.From
		r.liableYaku[seat] = yaku
		log.Debug("座位 %d 包牌 %s, 责任座位 %d", seat, yaku, m.From)
	}
}

// CanCallKan 可以开杠的牌：明杠为当前舍牌，暗杠/加杠为手里的一张（每种一张）
func (r *Round) CanCallKan(seat int) []Tile {
	checkSeat("CanCallKan", seat)
	if r.kans >= MaxKans || r.deck.Remaining() == 0 {
		return nil
	}
	p := r.players[seat]
	if r.turns.Phase == PhaseAwaitingCall {
		if r.callable(seat) && p.Hand.CountOf(r.lastDiscard.Type) == 3 {
			return []Tile{r.lastDiscard}
		}
		return nil
	}
	if r.turns.Phase != PhaseAwaitingDiscard || r.turns.TurnPointer != seat || r.justCalled {
		return nil
	}

	var out []Tile
	counts := p.Hand.Counts()
	for tt := 0; tt < TileKinds; tt++ {
		if counts[tt] != 4 {
			continue
		}
		if p.IsRiichi() && !r.riichiKanAllowed(p, TileType(tt)) {
			continue
		}
		t, _ := p.Hand.Find(TileType(tt))
		out = append(out, t)
	}
	if p.IsRiichi() {
		return out
	}
	for _, m := range p.Hand.Melds() {
		if m.Kind != MeldTriplet || !m.Open() {
			continue
		}
		if t, ok := p.Hand.Find(m.Base()); ok {
			out = append(out, t)
		}
	}
	return out
}

// riichiKanAllowed 立直后暗杠：只能杠刚摸到的牌，并且不能改变听牌
func (r *Round) riichiKanAllowed(p *PlayerImage, tt TileType) bool {
	latest, ok := p.Hand.Latest()
	if !ok || latest.Type != tt {
		return false
	}
	before := p.Hand.Clone()
	before.Remove(latest)
	after := p.Hand.Clone()
	quad, _ := after.take(tt, 4)
	after.declare(ConcealedMeld(MeldQuad, quad))

	wb := Waits(before.Concealed(), before.Melds())
	wa := Waits(after.Concealed(), after.Melds())
	if len(wb) == 0 || len(wb) != len(wa) {
		return false
	}
	for i := range wb {
		if wb[i] != wa[i] {
			return false
		}
	}
	return true
}

// CallKan tile 为空时明杠当前舍牌，否则用手里的 tile 暗杠或加杠；成功后已经摸好岭上牌
func (r *Round) CallKan(seat int, tile *Tile) (KanContext, bool) {
	checkSeat("CallKan", seat)
	options := r.CanCallKan(seat)
	var target TileType
	switch {
	case tile == nil && r.turns.Phase == PhaseAwaitingCall:
		target = r.lastDiscard.Type
	case tile != nil && r.turns.Phase == PhaseAwaitingDiscard:
		target = tile.Type
	default:
		return KanContext{}, false
	}
	allowed := false
	for _, o := range options {
		if o.Type == target {
			allowed = true
			break
		}
	}
	if !allowed {
		log.Debug("座位 %d 不能杠 %s", seat, target)
		return KanContext{}, false
	}

	p := r.players[seat]
	kan := KanContext{Seat: seat}
	var m Meld
	r.resolveKanPass()
	switch {
	case tile == nil:
		from := r.discarder
		r.resolveDiscard()
		called := r.players[from].takeLastDiscard()
		own, _ := p.Hand.take(target, 3)
		m = newMeld(MeldQuad, append(own, called), from, called)
		p.Hand.declare(m)
		kan.Kind, kan.Tile, kan.meldIndex = KanOpen, called, len(p.Hand.melds)-1
		r.checkLiability(seat, m)
	case p.Hand.CountOf(target) == 4:
		own, _ := p.Hand.take(target, 4)
		m = ConcealedMeld(MeldQuad, own)
		p.Hand.declare(m)
		kan.Kind, kan.Tile, kan.meldIndex = KanConcealed, own[len(own)-1], len(p.Hand.melds)-1
	default:
		idx := -1
		for i, dm := range p.Hand.melds {
			if dm.Kind == MeldTriplet && dm.Base() == target {
				idx = i
				break
			}
		}
		added := *tile
		if !p.Hand.Remove(added) {
			added, _ = p.Hand.Find(target)
			p.Hand.Remove(added)
		}
		old := p.Hand.melds[idx]
		m = newMeld(MeldQuad, append(append([]Tile(nil), old.Tiles...), added), old.From, old.Called)
		p.Hand.replaceMeld(idx, m)
		p.Hand.hasLatest = false
		kan.Kind, kan.Tile, kan.meldIndex = KanAdded, added, idx
	}

	comp, ok := r.deck.DrawCompensation()
	if !ok {
		panic(newInvariantError("CallKan", "岭上牌不足, kans=%d remaining=%d", r.kans, r.deck.Remaining()))
	}
	r.kans++
	kan.Compensation = comp
	p.Hand.Add(comp)
	p.TemporaryFuriten = false
	p.forbidden = nil
	if kan.Kind == KanOpen {
		r.clearIppatsu()
	} else if p.Riichi != nil {
		p.Riichi.Ippatsu = false
	}
	r.turns.Record(seat, MoveCall)
	r.turns.Record(seat, MovePick)
	r.turns.TurnPointer = seat
	r.turns.Phase = PhaseAwaitingDiscard
	r.rinshan = true
	r.justCalled = false
	if kan.Kind != KanOpen {
		k := kan
		r.kanPass = &k
	}
	r.broadcastMeld(seat, m)
	r.pushPick(seat, comp)
	log.Debug("座位 %d %s %s, 岭上牌 %s", seat, kan.Kind, target, comp)
	return kan, true
}

// UndoCompensationDraw 抢杠：退回岭上牌，还原杠之前的副露，被抢的牌作为舍牌等待荣和
func (r *Round) UndoCompensationDraw(kan KanContext) {
	checkSeat("UndoCompensationDraw", kan.Seat)
	if kan.Kind == KanOpen {
		panic(newInvariantError("UndoCompensationDraw", "明杠不能被抢"))
	}
	p := r.players[kan.Seat]
	latest, ok := p.Hand.Latest()
	if r.turns.Phase != PhaseAwaitingDiscard || r.turns.TurnPointer != kan.Seat || !r.rinshan ||
		!ok || latest != kan.Compensation || kan.meldIndex >= len(p.Hand.melds) {
		panic(newInvariantError("UndoCompensationDraw", "座位 %d 没有进行中的杠", kan.Seat))
	}
	m := p.Hand.melds[kan.meldIndex]
	if !m.IsQuad() || m.Base() != kan.Tile.Type {
		panic(newInvariantError("UndoCompensationDraw", "副露 %s 与杠 %s 不一致", m, kan.Tile))
	}

	p.Hand.Remove(kan.Compensation)
	r.deck.UndoCompensation(kan.Compensation)
	r.kans--
	r.rinshan = false
	r.kanPass = nil

	rest := make([]Tile, 0, 3)
	for _, t := range m.Tiles {
		if t != kan.Tile {
			rest = append(rest, t)
		}
	}
	switch kan.Kind {
	case KanAdded:
		p.Hand.replaceMeld(kan.meldIndex, newMeld(MeldTriplet, rest, m.From, m.Called))
	case KanConcealed:
		p.Hand.removeMeld(kan.meldIndex)
		for _, t := range rest {
			p.Hand.addQuiet(t)
		}
	}
	p.discard(kan.Tile)

	robbed := kan
	r.lastDiscard = kan.Tile
	r.discarder = kan.Seat
	r.hasDiscard = true
	r.robbed = &robbed
	r.turns.Phase = PhaseAwaitingCall
	r.broadcastDiscard(kan.Seat, kan.Tile)
}
