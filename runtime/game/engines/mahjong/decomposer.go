package mahjong

import (
	"sort"
	"strings"
)

// 拆牌：把 14 张（杠按 3 张折算）拆成 4 面子 + 1 雀头的全部方式
// 数牌按花色递归枚举，字牌只能组成对子或刻子，各花色的结果做笛卡尔积，最后按面子集合去重

type group struct {
	kind MeldKind
	base TileType
}

// Decompose 返回所有合法的 4 面子 + 雀头拆法（不含七对子、国士无双）
// concealed 为暗牌，declared 为已经副露的面子，每种拆法都包含 declared
func Decompose(concealed []Tile, declared []Meld) [][]Meld {
	if len(concealed)+3*len(declared) != 14 {
		return nil
	}
	counts, buckets := Hand34FromTiles(concealed)
	combos := enumerateGroups(counts, 4-len(declared), false)
	if len(combos) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(combos))
	out := make([][]Meld, 0, len(combos))
	for _, combo := range combos {
		melds := materialize(combo, buckets)
		melds = append(melds, declared...)
		key := decompositionKey(melds)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, melds)
	}
	return out
}

// IsBasicComplete 一般型和牌的快速判断，找到一种拆法就返回
func IsBasicComplete(concealed []Tile, declared []Meld) bool {
	if len(concealed)+3*len(declared) != 14 {
		return false
	}
	h, _ := Hand34FromTiles(concealed)
	return IsAgariNormal(h, len(declared))
}

// IsSevenPairs 七对子：恰好 14 张、7 种不同的对子
func IsSevenPairs(tiles []Tile) bool {
	if len(tiles) != 14 {
		return false
	}
	h, _ := Hand34FromTiles(tiles)
	return isSevenPairs34(h)
}

// IsThirteenOrphans 国士无双：恰好 14 张、13 种幺九牌齐全
func IsThirteenOrphans(tiles []Tile) bool {
	if len(tiles) != 14 {
		return false
	}
	h, _ := Hand34FromTiles(tiles)
	return IsAgariKokushi(h)
}

func isSevenPairs34(h Hand34) bool {
	pairs := 0
	for i := 0; i < TileKinds; i++ {
		switch h[i] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// isComplete34 任意和牌型，只看牌型不看役
func isComplete34(h Hand34, fixedMelds int) bool {
	total := 0
	for _, c := range h {
		total += int(c)
	}
	if total+3*fixedMelds != 14 {
		return false
	}
	if IsAgariNormal(h, fixedMelds) {
		return true
	}
	return fixedMelds == 0 && (isSevenPairs34(h) || IsAgariKokushi(h))
}

// Waits 13 张（折算）时的听牌种类，已经用满 4 张的牌不算
func Waits(concealed []Tile, declared []Meld) []TileType {
	if len(concealed)+3*len(declared) != 13 {
		return nil
	}
	h, _ := Hand34FromTiles(concealed)
	var used Hand34
	for _, m := range declared {
		for _, t := range m.Tiles {
			used[t.Type]++
		}
	}
	var waits []TileType
	for t := 0; t < TileKinds; t++ {
		if int(h[t])+int(used[t]) >= 4 {
			continue
		}
		work := h
		work[t]++
		if isComplete34(work, len(declared)) {
			waits = append(waits, TileType(t))
		}
	}
	return waits
}

func IsTenpai(concealed []Tile, declared []Meld) bool {
	return len(Waits(concealed, declared)) > 0
}

// TenpaiDiscards 14 张时，打出哪些牌之后仍然听牌（同种牌的普通牌和赤牌分别列出）
func TenpaiDiscards(concealed []Tile, declared []Meld) []Tile {
	var out []Tile
	seen := map[Tile]bool{}
	for i, t := range concealed {
		key := Tile{Type: t.Type, Red: t.Red}
		if seen[key] {
			continue
		}
		seen[key] = true
		rest := make([]Tile, 0, len(concealed)-1)
		rest = append(rest, concealed[:i]...)
		rest = append(rest, concealed[i+1:]...)
		if IsTenpai(rest, declared) {
			out = append(out, t)
		}
	}
	return out
}

// enumerateGroups 按花色拆分后做笛卡尔积，need 为手牌内需要组成的面子数（不含雀头）
// firstOnly 为 true 时找到一种就返回
func enumerateGroups(h Hand34, need int, firstOnly bool) [][]group {
	var families [][][]group

	for _, base := range []TileType{Man1, Pin1, So1} {
		var c [9]int
		empty := true
		for i := 0; i < 9; i++ {
			c[i] = int(h[int(base)+i])
			if c[i] > 0 {
				empty = false
			}
		}
		if empty {
			continue
		}
		var res [][]group
		enumerateSuit(&c, base, nil, 0, &res)
		if len(res) == 0 {
			return nil
		}
		families = append(families, res)
	}

	for _, r := range [][2]TileType{{East, North}, {White, Red}} {
		gs, ok := honorGroups(h, r[0], r[1])
		if !ok {
			return nil
		}
		if len(gs) > 0 {
			families = append(families, [][]group{gs})
		}
	}

	var out [][]group
	var walk func(i int, acc []group, pairs int) bool
	walk = func(i int, acc []group, pairs int) bool {
		if i == len(families) {
			if pairs == 1 && len(acc)-1 == need {
				out = append(out, append([]group(nil), acc...))
				return firstOnly
			}
			return false
		}
		for _, option := range families[i] {
			p := pairs
			for _, g := range option {
				if g.kind == MeldPair {
					p++
				}
			}
			if p > 1 {
				continue
			}
			if walk(i+1, append(acc, option...), p) {
				return true
			}
		}
		return false
	}
	walk(0, nil, 0)
	return out
}

// enumerateSuit 递归枚举一种数牌的拆法：取最小的一张，分别尝试雀头、刻子、以它开头的顺子
func enumerateSuit(c *[9]int, base TileType, acc []group, pairs int, out *[][]group) {
	i := 0
	for i < 9 && c[i] == 0 {
		i++
	}
	if i == 9 {
		*out = append(*out, append([]group(nil), acc...))
		return
	}
	tt := base + TileType(i)
	if pairs == 0 && c[i] >= 2 {
		c[i] -= 2
		enumerateSuit(c, base, append(acc, group{MeldPair, tt}), 1, out)
		c[i] += 2
	}
	if c[i] >= 3 {
		c[i] -= 3
		enumerateSuit(c, base, append(acc, group{MeldTriplet, tt}), pairs, out)
		c[i] += 3
	}
	if i <= 6 && c[i+1] > 0 && c[i+2] > 0 {
		c[i]--
		c[i+1]--
		c[i+2]--
		enumerateSuit(c, base, append(acc, group{MeldRun, tt}), pairs, out)
		c[i]++
		c[i+1]++
		c[i+2]++
	}
}

// honorGroups 字牌只能是对子（2 张）或刻子（3 张），其它张数整组作废
func honorGroups(h Hand34, from, to TileType) ([]group, bool) {
	var gs []group
	pairs := 0
	for tt := from; tt <= to; tt++ {
		switch h[tt] {
		case 0:
		case 2:
			pairs++
			if pairs > 1 {
				return nil, false
			}
			gs = append(gs, group{MeldPair, tt})
		case 3:
			gs = append(gs, group{MeldTriplet, tt})
		default:
			return nil, false
		}
	}
	return gs, true
}

// materialize 把拆法落到实体牌上
func materialize(combo []group, buckets map[TileType][]Tile) []Meld {
	pool := make(map[TileType][]Tile, len(buckets))
	for k, v := range buckets {
		ts := append([]Tile(nil), v...)
		SortTiles(ts)
		pool[k] = ts
	}
	pop := func(tt TileType) Tile {
		t := pool[tt][0]
		pool[tt] = pool[tt][1:]
		return t
	}

	sorted := append([]group(nil), combo...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].base != sorted[j].base {
			return sorted[i].base < sorted[j].base
		}
		return sorted[i].kind < sorted[j].kind
	})

	melds := make([]Meld, 0, 5)
	for _, g := range sorted {
		var ts []Tile
		switch g.kind {
		case MeldPair:
			ts = []Tile{pop(g.base), pop(g.base)}
		case MeldTriplet:
			ts = []Tile{pop(g.base), pop(g.base), pop(g.base)}
		case MeldRun:
			ts = []Tile{pop(g.base), pop(g.base + 1), pop(g.base + 2)}
		}
		melds = append(melds, ConcealedMeld(g.kind, ts))
	}
	return melds
}

func decompositionKey(melds []Meld) string {
	keys := make([]string, len(melds))
	for i, m := range melds {
		keys[i] = m.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
