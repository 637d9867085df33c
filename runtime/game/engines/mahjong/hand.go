package mahjong

// Hand 手牌：排序后的暗牌 + 副露 + 最近摸到/鸣到的那一张
// 排序会丢失"刚摸的是哪一张"，所以单独记下，牌的 (Type, ID) 唯一，可以区分同种牌的不同实体
type Hand struct {
	concealed []Tile
	melds     []Meld
	latest    Tile
	hasLatest bool
}

func NewHand(tiles []Tile) *Hand {
	h := &Hand{
		concealed: make([]Tile, 0, 14),
		melds:     make([]Meld, 0, 4),
	}
	h.concealed = append(h.concealed, tiles...)
	SortTiles(h.concealed)
	return h
}

func (h *Hand) Clone() *Hand {
	c := *h
	c.concealed = append([]Tile(nil), h.concealed...)
	c.melds = append([]Meld(nil), h.melds...)
	return &c
}

func (h *Hand) Concealed() []Tile {
	return append([]Tile(nil), h.concealed...)
}

func (h *Hand) Melds() []Meld {
	return append([]Meld(nil), h.melds...)
}

func (h *Hand) Latest() (Tile, bool) {
	return h.latest, h.hasLatest
}

// Add 摸牌或荣和时加入一张牌，并记为最新
func (h *Hand) Add(t Tile) {
	i := 0
	for i < len(h.concealed) && h.concealed[i].Less(t) {
		i++
	}
	h.concealed = append(h.concealed, Tile{})
	copy(h.concealed[i+1:], h.concealed[i:])
	h.concealed[i] = t
	h.latest = t
	h.hasLatest = true
}

// Remove 移除一张实体牌
func (h *Hand) Remove(t Tile) bool {
	for i := range h.concealed {
		if h.concealed[i] == t {
			h.concealed = append(h.concealed[:i], h.concealed[i+1:]...)
			if h.hasLatest && h.latest == t {
				h.hasLatest = false
			}
			return true
		}
	}
	return false
}

// Has 手里是否有这张实体牌
func (h *Hand) Has(t Tile) bool {
	for _, c := range h.concealed {
		if c == t {
			return true
		}
	}
	return false
}

// Find 找一张指定种类的牌，优先普通牌（赤牌留在手里）
func (h *Hand) Find(tt TileType) (Tile, bool) {
	found, ok := Tile{}, false
	for _, c := range h.concealed {
		if c.Type != tt {
			continue
		}
		if !c.Red {
			return c, true
		}
		found, ok = c, true
	}
	return found, ok
}

// take 取出 n 张指定种类的牌，不足时不修改手牌
func (h *Hand) take(tt TileType, n int) ([]Tile, bool) {
	if h.CountOf(tt) < n {
		return nil, false
	}
	out := make([]Tile, 0, n)
	for len(out) < n {
		t, _ := h.Find(tt)
		h.Remove(t)
		out = append(out, t)
	}
	return out, true
}

func (h *Hand) CountOf(tt TileType) int {
	n := 0
	for _, c := range h.concealed {
		if c.Type == tt {
			n++
		}
	}
	return n
}

func (h *Hand) declare(m Meld) {
	h.melds = append(h.melds, m)
	h.hasLatest = false
}

// IsConcealed 门前清：没有明副露（暗杠不算）
func (h *Hand) IsConcealed() bool {
	for _, m := range h.melds {
		if m.Open() {
			return false
		}
	}
	return true
}

// Equivalents 按"杠算三张"折算的张数，和了时应为 14
func (h *Hand) Equivalents() int {
	return len(h.concealed) + 3*len(h.melds)
}

// TileCount 实际持有的牌数（含副露）
func (h *Hand) TileCount() int {
	n := len(h.concealed)
	for _, m := range h.melds {
		n += len(m.Tiles)
	}
	return n
}

// Counts 暗牌的 34 种计数
func (h *Hand) Counts() Hand34 {
	c, _ := Hand34FromTiles(h.concealed)
	return c
}

// AllTiles 暗牌 + 副露，用于数宝牌
func (h *Hand) AllTiles() []Tile {
	out := append([]Tile(nil), h.concealed...)
	for _, m := range h.melds {
		out = append(out, m.Tiles...)
	}
	return out
}

func (h *Hand) replaceMeld(i int, m Meld) {
	h.melds[i] = m
}

func (h *Hand) removeMeld(i int) Meld {
	m := h.melds[i]
	h.melds = append(h.melds[:i], h.melds[i+1:]...)
	return m
}

// addQuiet 放回手牌但不改变"最新一张"
func (h *Hand) addQuiet(t Tile) {
	latest, has := h.latest, h.hasLatest
	h.Add(t)
	h.latest, h.hasLatest = latest, has
}
