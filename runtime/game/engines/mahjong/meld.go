package mahjong

import (
	"sort"
	"strings"
)

type MeldKind int

const (
	MeldPair    MeldKind = iota // 雀头
	MeldRun                     // 顺子
	MeldTriplet                 // 刻子
	MeldQuad                    // 杠子
)

func (k MeldKind) String() string {
	switch k {
	case MeldPair:
		return "Pair"
	case MeldRun:
		return "Run"
	case MeldTriplet:
		return "Triplet"
	case MeldQuad:
		return "Quad"
	}
	return "Unknown"
}

type Meld struct {
	Kind   MeldKind
	Tiles  []Tile // 已排序
	Called Tile   // 鸣牌时拿到的那张牌（From >= 0 时有效）
	From   int    // 从哪个座位鸣牌，-1 表示自己组成（含暗杠）
}

func newMeld(kind MeldKind, tiles []Tile, from int, called Tile) Meld {
	ts := append([]Tile(nil), tiles...)
	SortTiles(ts)
	return Meld{Kind: kind, Tiles: ts, Called: called, From: from}
}

// ConcealedMeld 手牌内部组成的面子
func ConcealedMeld(kind MeldKind, tiles []Tile) Meld {
	return newMeld(kind, tiles, -1, Tile{})
}

func (m Meld) Base() TileType {
	return m.Tiles[0].Type
}

func (m Meld) IsPair() bool { return m.Kind == MeldPair }
func (m Meld) IsRun() bool  { return m.Kind == MeldRun }
func (m Meld) IsQuad() bool { return m.Kind == MeldQuad }

// IsSet 刻子或杠子
func (m Meld) IsSet() bool { return m.Kind == MeldTriplet || m.Kind == MeldQuad }

func (m Meld) Open() bool { return m.From >= 0 }

func (m Meld) Contains(tt TileType) bool {
	for _, t := range m.Tiles {
		if t.Type == tt {
			return true
		}
	}
	return false
}

func (m Meld) HasYaochu() bool {
	for _, t := range m.Tiles {
		if t.Type.IsYaochu() {
			return true
		}
	}
	return false
}

// HasTerminal 带数牌幺九（不算字牌）
func (m Meld) HasTerminal() bool {
	for _, t := range m.Tiles {
		if t.Type.IsTerminal() {
			return true
		}
	}
	return false
}

// Equal 忽略牌的顺序和赤宝牌标记
func (m Meld) Equal(o Meld) bool {
	return m.Key() == o.Key()
}

// Key 面子的规范化表示，用于去重
func (m Meld) Key() string {
	types := make([]int, len(m.Tiles))
	for i, t := range m.Tiles {
		types[i] = int(t.Type)
	}
	sort.Ints(types)
	var b strings.Builder
	b.WriteByte(byte('0' + m.Kind))
	for _, t := range types {
		b.WriteByte(byte(t))
	}
	return b.String()
}

func (m Meld) String() string {
	s := TilesString(m.Tiles)
	if m.Open() {
		return "(" + s + ")"
	}
	if m.IsQuad() {
		return "[" + s + "]"
	}
	return s
}
