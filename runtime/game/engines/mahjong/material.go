package mahjong

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "East"
	case WindSouth:
		return "South"
	case WindWest:
		return "West"
	case WindNorth:
		return "North"
	}
	return fmt.Sprintf("Wind(%d)", int(w))
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// TileType 风牌对应的字牌
func (w Wind) TileType() TileType {
	return East + TileType(w)
}

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const (
	TileKinds = 34
	TileLimit = 136
	DeadWall  = 14 // 4 张岭上牌 + 5 张宝牌指示牌 + 5 张里宝牌指示牌
	MaxKans   = 4
)

// Family 花色：三种数牌 + 风牌 + 三元牌
type Family int

const (
	FamilyMan Family = iota
	FamilyPin
	FamilySou
	FamilyWind
	FamilyDragon
)

var familySuffix = [...]byte{'m', 'p', 's', 'z', 'z'}

func (t TileType) Family() Family {
	switch {
	case t < Pin1:
		return FamilyMan
	case t < So1:
		return FamilyPin
	case t < East:
		return FamilySou
	case t < White:
		return FamilyWind
	default:
		return FamilyDragon
	}
}

// Number 数牌 1-9，字牌为 0
func (t TileType) Number() int {
	if t.IsHonor() {
		return 0
	}
	return int(t)%9 + 1
}

func (t TileType) IsHonor() bool    { return t >= East }
func (t TileType) IsWind() bool     { return t >= East && t <= North }
func (t TileType) IsDragon() bool   { return t >= White && t <= Red }
func (t TileType) IsTerminal() bool { n := t.Number(); return n == 1 || n == 9 }
func (t TileType) IsYaochu() bool   { return t.IsHonor() || t.IsTerminal() }
func (t TileType) IsSimple() bool   { return !t.IsYaochu() }

// DoraOf 指示牌 -> 宝牌：数牌 9 -> 1，风牌北 -> 东，三元牌中 -> 白
func (t TileType) DoraOf() TileType {
	switch {
	case t.IsWind():
		return East + (t-East+1)%4
	case t.IsDragon():
		return White + (t-White+1)%3
	default:
		base := t - TileType(t.Number()-1)
		return base + TileType(t.Number()%9)
	}
}

func (t TileType) String() string {
	if t.IsHonor() {
		return fmt.Sprintf("%dz", int(t-East)+1)
	}
	return fmt.Sprintf("%d%c", t.Number(), familySuffix[t.Family()])
}

type Tile struct {
	Type TileType
	ID   int  // 区分同种牌的四张（0-3），每张实体牌的 (Type, ID) 唯一
	Red  bool // 赤宝牌
}

// Same 同种牌，忽略赤宝牌标记
func (t Tile) Same(o Tile) bool {
	return t.Type == o.Type
}

// Less 先花色后数字，同种牌普通牌在赤牌之前
func (t Tile) Less(o Tile) bool {
	if t.Type != o.Type {
		return t.Type < o.Type
	}
	if t.Red != o.Red {
		return !t.Red
	}
	return t.ID < o.ID
}

func (t Tile) String() string {
	if t.Red {
		return fmt.Sprintf("0%c", familySuffix[t.Type.Family()])
	}
	return t.Type.String()
}

func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Less(tiles[j]) })
}

func TilesString(tiles []Tile) string {
	var b strings.Builder
	for _, t := range tiles {
		b.WriteString(t.String())
	}
	return b.String()
}

// ParseTiles 解析 "123m0p55z" 形式的牌串，0 表示赤5
func ParseTiles(s string) ([]Tile, error) {
	var out []Tile
	var pending []int
	used := map[TileType]*[4]bool{}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			pending = append(pending, int(r-'0'))
		case r == 'm' || r == 'p' || r == 's' || r == 'z':
			if len(pending) == 0 {
				return nil, fmt.Errorf("牌串 %q 中 %c 前面没有数字", s, r)
			}
			for _, n := range pending {
				t, err := parseOne(n, r)
				if err != nil {
					return nil, err
				}
				ids, ok := used[t.Type]
				if !ok {
					ids = new([4]bool)
					used[t.Type] = ids
				}
				id := -1
				if t.Red {
					if !ids[0] {
						id = 0
					}
				} else {
					// 赤5 固定占用 ID 0，普通 5 优先使用 1-3
					order := [4]int{0, 1, 2, 3}
					if t.Type.Number() == 5 {
						order = [4]int{1, 2, 3, 0}
					}
					for _, c := range order {
						if !ids[c] {
							id = c
							break
						}
					}
				}
				if id < 0 {
					return nil, fmt.Errorf("牌串 %q 中 %s 超过 4 张", s, t.Type)
				}
				ids[id] = true
				t.ID = id
				out = append(out, t)
			}
			pending = pending[:0]
		case r == ' ':
		default:
			return nil, fmt.Errorf("牌串 %q 含非法字符 %q", s, r)
		}
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("牌串 %q 结尾缺少花色", s)
	}
	return out, nil
}

func parseOne(n int, suffix rune) (Tile, error) {
	var base TileType
	switch suffix {
	case 'm':
		base = Man1
	case 'p':
		base = Pin1
	case 's':
		base = So1
	case 'z':
		if n < 1 || n > 7 {
			return Tile{}, fmt.Errorf("字牌编号 %d 超出 1-7", n)
		}
		return Tile{Type: East + TileType(n-1)}, nil
	}
	if n == 0 {
		return Tile{Type: base + 4, ID: 0, Red: true}, nil
	}
	return Tile{Type: base + TileType(n-1)}, nil
}

// MustParseTiles 解析失败直接 panic，用于常量牌串
func MustParseTiles(s string) []Tile {
	tiles, err := ParseTiles(s)
	if err != nil {
		panic(err)
	}
	return tiles
}

// Wang 王牌区
type Wang struct {
	Compensation      []Tile // 岭上牌，始终保持 4 张
	DoraIndicators    []Tile // 宝牌指示牌（5 张，按翻开数量对外可见）
	UraDoraIndicators []Tile // 里宝牌指示牌
}

type DeckManager struct {
	wall        []Tile
	wallIndex   int
	wang        Wang
	revealed    int
	rng         *rand.Rand
	useRedFives bool
}

func NewDeckManager(rng *rand.Rand, useRedFives bool) *DeckManager {
	return &DeckManager{
		wall:        make([]Tile, 0, TileLimit),
		rng:         rng,
		useRedFives: useRedFives,
	}
}

// NewTileSet 完整的 136 张牌，按顺序排列
func NewTileSet(useRedFives bool) []Tile {
	tiles := make([]Tile, 0, TileLimit)
	for tt := Man1; tt <= Red; tt++ {
		for id := 0; id < 4; id++ {
			tiles = append(tiles, Tile{
				Type: tt,
				ID:   id,
				Red:  useRedFives && id == 0 && tt.Number() == 5,
			})
		}
	}
	return tiles
}

// InitRound 洗牌并切出王牌
func (dm *DeckManager) InitRound() {
	tiles := NewTileSet(dm.useRedFives)
	dm.rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	dm.load(tiles)
}

// InitRoundFromWall 使用给定的牌山（不洗牌），用于牌谱复现
func (dm *DeckManager) InitRoundFromWall(tiles []Tile) {
	if len(tiles) != TileLimit {
		panic(newInvariantError("InitRoundFromWall", "牌山需要 %d 张，实际 %d 张", TileLimit, len(tiles)))
	}
	dm.load(append([]Tile(nil), tiles...))
}

func (dm *DeckManager) load(tiles []Tile) {
	deadStart := len(tiles) - DeadWall
	dm.wall = append(dm.wall[:0], tiles[:deadStart]...)
	dm.wallIndex = 0
	dead := tiles[deadStart:]
	dm.wang = Wang{
		Compensation:      append([]Tile(nil), dead[0:4]...),
		DoraIndicators:    append([]Tile(nil), dead[4:9]...),
		UraDoraIndicators: append([]Tile(nil), dead[9:14]...),
	}
	dm.revealed = 1
}

func (dm *DeckManager) Draw() (Tile, bool) {
	if dm.wallIndex >= len(dm.wall) {
		return Tile{}, false
	}
	t := dm.wall[dm.wallIndex]
	dm.wallIndex++
	return t, true
}

func (dm *DeckManager) Deal() (Tile, bool) {
	return dm.Draw()
}

// Remaining 牌山剩余可摸张数
func (dm *DeckManager) Remaining() int {
	return len(dm.wall) - dm.wallIndex
}

// DrawCompensation 岭上摸牌：取走一张岭上牌，并把牌山最后一张补进王牌，同时翻开新的杠宝牌指示牌
func (dm *DeckManager) DrawCompensation() (Tile, bool) {
	if len(dm.wang.Compensation) == 0 || dm.Remaining() == 0 || dm.revealed >= len(dm.wang.DoraIndicators) {
		return Tile{}, false
	}
	t := dm.wang.Compensation[0]
	moved := dm.wall[len(dm.wall)-1]
	dm.wall = dm.wall[:len(dm.wall)-1]
	dm.wang.Compensation = append(dm.wang.Compensation[1:], moved)
	dm.revealed++
	return t, true
}

// UndoCompensation 撤销一次岭上摸牌（抢杠时使用）
func (dm *DeckManager) UndoCompensation(t Tile) {
	n := len(dm.wang.Compensation)
	if n == 0 || dm.revealed <= 1 {
		panic(newInvariantError("UndoCompensation", "没有可以撤销的岭上摸牌"))
	}
	moved := dm.wang.Compensation[n-1]
	comp := make([]Tile, 0, 4)
	comp = append(comp, t)
	comp = append(comp, dm.wang.Compensation[:n-1]...)
	dm.wang.Compensation = comp
	dm.wall = append(dm.wall, moved)
	dm.revealed--
}

// DoraIndicators 已翻开的宝牌指示牌
func (dm *DeckManager) DoraIndicators() []Tile {
	return append([]Tile(nil), dm.wang.DoraIndicators[:dm.revealed]...)
}

// UraDoraIndicators 与已翻开的宝牌指示牌数量相同的里宝牌指示牌
func (dm *DeckManager) UraDoraIndicators() []Tile {
	return append([]Tile(nil), dm.wang.UraDoraIndicators[:dm.revealed]...)
}

// TileCount 牌山 + 王牌
func (dm *DeckManager) TileCount() int {
	return dm.Remaining() + len(dm.wang.Compensation) + len(dm.wang.DoraIndicators) + len(dm.wang.UraDoraIndicators)
}

