package mahjong

// RiichiRecord 立直记录
type RiichiRecord struct {
	Tile      Tile // 宣言牌
	Discards  int  // 宣言牌在自己舍牌记录中的下标
	Double    bool // 两立直
	Ippatsu   bool // 一发仍然有效
	StickPaid bool // 宣言牌通过后才支付立直棒
}

// PlayerImage 一个座位在本局内的全部状态
type PlayerImage struct {
	SeatIndex   int
	Hand        *Hand
	DiscardPile []Tile // 牌河（被鸣走的牌不在这里）
	Discarded   []Tile // 全部打出过的牌（含被鸣走的），用于振听判断
	Riichi      *RiichiRecord

	RiichiFuriten    bool // 立直后见逃，本局内永久振听
	TemporaryFuriten bool // 同巡振听，下一次摸牌时解除
	Picks            int  // 本局摸牌次数
	Called           bool // 自己的牌是否被鸣过（流局满贯条件）
	forbidden        []TileType
}

func NewPlayerImage(seatIndex int, tiles []Tile) *PlayerImage {
	return &PlayerImage{
		SeatIndex:   seatIndex,
		Hand:        NewHand(tiles),
		DiscardPile: make([]Tile, 0, 24),
		Discarded:   make([]Tile, 0, 24),
	}
}

func (p *PlayerImage) IsRiichi() bool {
	return p.Riichi != nil
}

// HasDiscardedType 是否打出过某种牌（用于舍牌振听）
func (p *PlayerImage) HasDiscardedType(tt TileType) bool {
	for _, t := range p.Discarded {
		if t.Type == tt {
			return true
		}
	}
	return false
}

func (p *PlayerImage) discard(t Tile) {
	p.DiscardPile = append(p.DiscardPile, t)
	p.Discarded = append(p.Discarded, t)
}

// takeLastDiscard 别家鸣牌，从牌河拿走最后一张
func (p *PlayerImage) takeLastDiscard() Tile {
	n := len(p.DiscardPile)
	t := p.DiscardPile[n-1]
	p.DiscardPile = p.DiscardPile[:n-1]
	p.Called = true
	return t
}

// isForbidden 食替限制：鸣牌后同巡不能打出的牌
func (p *PlayerImage) isForbidden(tt TileType) bool {
	for _, f := range p.forbidden {
		if f == tt {
			return true
		}
	}
	return false
}

// NagashiEligible 流局满贯：舍牌全是幺九牌且没有被鸣过
func (p *PlayerImage) NagashiEligible() bool {
	if p.Called || len(p.Discarded) == 0 {
		return false
	}
	for _, t := range p.Discarded {
		if !t.Type.IsYaochu() {
			return false
		}
	}
	return true
}
