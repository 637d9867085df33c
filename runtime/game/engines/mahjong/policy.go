package mahjong

// Policy 自动对局时每个座位的决策，所有方法只读 Round，不能修改它
type Policy interface {
	Name() string
	// ChooseDiscard 从合法出牌里选一张
	ChooseDiscard(r *Round, seat int, options []Tile) Tile
	// WantRiichi 返回宣言牌，false 表示不立直
	WantRiichi(r *Round, seat int, options []Tile) (Tile, bool)
	WantTsumo(r *Round, seat int) bool
	WantRon(r *Round, seat int, tile Tile) bool
	// WantKan 返回要杠的牌，false 表示不杠
	WantKan(r *Round, seat int, options []Tile) (Tile, bool)
	WantPon(r *Round, seat int, tile Tile) bool
	// ChooseChii 返回顺子的起始数字，false 表示不吃
	ChooseChii(r *Round, seat int, starts []int) (int, bool)
}

// EfficiencyPolicy 牌效率策略：按向听数和进张打牌，能和就和，能立直就立直，只碰役牌
type EfficiencyPolicy struct {
	searcher *Searcher
}

func NewEfficiencyPolicy(searcher *Searcher) *EfficiencyPolicy {
	if searcher == nil {
		searcher = NewSearcher()
	}
	return &EfficiencyPolicy{searcher: searcher}
}

func (p *EfficiencyPolicy) Name() string {
	return "efficiency"
}

// pick 按候选顺序，在 options 里找第一张匹配的牌，同种牌优先打出普通牌
func (p *EfficiencyPolicy) pick(r *Round, seat int, options []Tile) (Tile, bool) {
	if len(options) == 0 {
		return Tile{}, false
	}
	if len(options) == 1 {
		return options[0], true
	}
	hand := r.GetHand(seat)
	candidates := p.searcher.SeekCandidates(hand.Concealed(), len(hand.Melds()), r.VisibleTiles(seat))
	for _, c := range candidates {
		found, ok := Tile{}, false
		for _, o := range options {
			if o.Type != c.DiscardType {
				continue
			}
			if !o.Red {
				return o, true
			}
			found, ok = o, true
		}
		if ok {
			return found, true
		}
	}
	return options[0], true
}

func (p *EfficiencyPolicy) ChooseDiscard(r *Round, seat int, options []Tile) Tile {
	t, _ := p.pick(r, seat, options)
	return t
}

func (p *EfficiencyPolicy) WantRiichi(r *Round, seat int, options []Tile) (Tile, bool) {
	return p.pick(r, seat, options)
}

func (p *EfficiencyPolicy) WantTsumo(*Round, int) bool { return true }

func (p *EfficiencyPolicy) WantRon(*Round, int, Tile) bool { return true }

// WantKan 只在自己的回合暗杠、加杠，不明杠
func (p *EfficiencyPolicy) WantKan(r *Round, seat int, options []Tile) (Tile, bool) {
	if r.Phase() != PhaseAwaitingDiscard || len(options) == 0 {
		return Tile{}, false
	}
	return options[0], true
}

// WantPon 役牌直接碰；已经有役牌副露时，碰了能降低向听数才碰
func (p *EfficiencyPolicy) WantPon(r *Round, seat int, tile Tile) bool {
	if p.isValueTile(r, seat, tile.Type) {
		return true
	}
	return p.hasOpenValueSet(r, seat) && p.improves(r, seat, []TileType{tile.Type, tile.Type})
}

func (p *EfficiencyPolicy) ChooseChii(r *Round, seat int, starts []int) (int, bool) {
	if !p.hasOpenValueSet(r, seat) {
		return 0, false
	}
	tile, _, ok := r.LastDiscard()
	if !ok {
		return 0, false
	}
	for _, start := range starts {
		base := tile.Type - TileType(tile.Type.Number()-start)
		var used []TileType
		for k := 0; k < 3; k++ {
			if base+TileType(k) != tile.Type {
				used = append(used, base+TileType(k))
			}
		}
		if p.improves(r, seat, used) {
			return start, true
		}
	}
	return 0, false
}

func (p *EfficiencyPolicy) isValueTile(r *Round, seat int, tt TileType) bool {
	return tt.IsDragon() || tt == r.SeatWind(seat).TileType() || tt == r.RoundWind().TileType()
}

func (p *EfficiencyPolicy) hasOpenValueSet(r *Round, seat int) bool {
	for _, m := range r.GetHand(seat).Melds() {
		if m.IsSet() && p.isValueTile(r, seat, m.Base()) {
			return true
		}
	}
	return false
}

// improves 鸣牌（用掉手里的 used）之后，最好的打法向听数比现在小
func (p *EfficiencyPolicy) improves(r *Round, seat int, used []TileType) bool {
	hand := r.GetHand(seat)
	fixed := len(hand.Melds())
	before := p.searcher.ShantenAll(hand.Counts(), fixed)
	after := hand.Counts()
	for _, tt := range used {
		if after[tt] == 0 {
			return false
		}
		after[tt]--
	}
	return p.searcher.ShantenAll(after, fixed+1) < before
}
