package mahjong

import (
	"fmt"
	"sort"
	"time"

	"riichi/common/cache"
	"riichi/common/log"
)

type Hand34 [34]uint8

type Candidate struct {
	DiscardType    TileType
	DiscardOptions []Tile     // 同种牌的实体牌（赤5/普通5）
	Waits          []TileType // 打出后听哪些牌
	Ukeire         int        // 有效张数
	Shanten        int        // 打出后的向听数
}

// Searcher 牌效搜索，向听/和牌/听牌结果缓存在 ristretto 里，多个对局可以共享一个实例
type Searcher struct {
	cache *cache.GeneralCache
}

const searcherCacheCost = 1 << 18

func NewSearcher() *Searcher {
	c, err := cache.NewGeneralCache(searcherCacheCost, 10*time.Minute)
	if err != nil {
		// 缓存只是加速，创建失败时退化为不缓存
		log.Warn("牌效缓存创建失败，退化为无缓存: %v", err)
		c = nil
	}
	return &Searcher{cache: c}
}

func (s *Searcher) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

func (s *Searcher) get(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *Searcher) set(key string, v interface{}) {
	if s.cache != nil {
		s.cache.Set(key, v)
	}
}

// SeekCandidates 每种可打的牌打出后的向听数、听牌和进张，向听数小的在前
func (s *Searcher) SeekCandidates(hand14 []Tile, fixedMelds int, visible *[34]uint8) []Candidate {
	h14, discardOpts := Hand34FromTiles(hand14)
	var out []Candidate

	for i := 0; i < 34; i++ {
		if h14[i] == 0 {
			continue
		}

		h13 := h14
		h13[i]--

		c := Candidate{
			DiscardType:    TileType(i),
			DiscardOptions: discardOpts[TileType(i)],
			Shanten:        s.ShantenAll(h13, fixedMelds),
		}
		// 两向听及以上不算进张，模拟对局时这里是热点
		switch c.Shanten {
		case 0:
			c.Waits, c.Ukeire = s.WaitsAndUkeire(h13, fixedMelds, visible)
		case 1:
			c.Ukeire = s.Ukeire(h13, fixedMelds, c.Shanten, visible)
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool { return candidateBetter(out[i], out[j]) })
	return out
}

func candidateBetter(a, b Candidate) bool {
	if a.Shanten != b.Shanten {
		return a.Shanten < b.Shanten
	}
	if a.Ukeire != b.Ukeire {
		return a.Ukeire > b.Ukeire
	}
	// 同等条件下先打字牌和幺九牌
	ay, by := a.DiscardType.IsYaochu(), b.DiscardType.IsYaochu()
	if ay != by {
		return ay
	}
	return a.DiscardType > b.DiscardType
}

// WaitsAndUkeire 枚举听牌 + 计算进张
func (s *Searcher) WaitsAndUkeire(h13 Hand34, fixedMelds int, visible *[34]uint8) ([]TileType, int) {
	key := "w" + h13.keyWithFixedMelds(fixedMelds)
	if v, ok := s.get(key); ok {
		if cached, ok := v.([]TileType); ok {
			waits := make([]TileType, len(cached))
			copy(waits, cached)
			return waits, s.ukeireByWaits(h13, waits, visible)
		}
	}

	var waits []TileType
	for t := 0; t < 34; t++ {
		if h13[t] >= 4 {
			continue
		}
		work := h13
		work[t]++
		if s.IsAgariAll(work, fixedMelds) {
			waits = append(waits, TileType(t))
		}
	}

	s.set(key, append([]TileType(nil), waits...))
	return waits, s.ukeireByWaits(h13, waits, visible)
}

// Ukeire 能让向听数前进的牌的剩余张数
func (s *Searcher) Ukeire(h13 Hand34, fixedMelds int, shanten int, visible *[34]uint8) int {
	total := 0
	for t := 0; t < 34; t++ {
		if h13[t] >= 4 {
			continue
		}
		work := h13
		work[t]++
		// 14 张的向听数即打出最优一张后的向听数
		if s.ShantenAll(work, fixedMelds) < shanten {
			add := 4 - int(h13[t])
			if visible != nil {
				add -= int((*visible)[t])
			}
			if add > 0 {
				total += add
			}
		}
	}
	return total
}

// ukeireByWaits 计算听牌的进张数
func (s *Searcher) ukeireByWaits(h13 Hand34, waits []TileType, visible *[34]uint8) int {
	ukeire := 0
	for _, tt := range waits {
		idx := int(tt)
		add := 4 - int(h13[idx])
		if visible != nil {
			add -= int((*visible)[idx])
		}
		if add > 0 {
			ukeire += add
		}
	}
	return ukeire
}

// IsAgariAll 是否和牌
func (s *Searcher) IsAgariAll(h Hand34, fixedMelds int) bool {
	key := "a" + h.keyWithFixedMelds(fixedMelds)
	if s.cache != nil {
		if b, ok := s.cache.GetBool(key); ok {
			return b
		}
	}

	var ok bool
	if fixedMelds > 0 {
		ok = IsAgariNormal(h, fixedMelds)
	} else {
		ok = IsAgariNormal(h, 0) || IsAgariChiitoi(h) || IsAgariKokushi(h)
	}

	s.set(key, ok)
	return ok
}

// IsAgariNormal 普通牌型是否和牌，核心思想，找雀头、组面子
func IsAgariNormal(h Hand34, fixedMelds int) bool {
	need := 4 - fixedMelds // 需要组成的面子数
	if need < 0 {
		return false
	}

	for j := 0; j < 34; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(&work, need) {
			return true
		}
	}
	return false
}

// IsAgariChiitoi 七对子是否和牌（同种 4 张不能当两对）
func IsAgariChiitoi(h Hand34) bool {
	return isSevenPairs34(h)
}

// IsAgariKokushi 国士无双是否和牌
func IsAgariKokushi(h Hand34) bool {
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	return unique == 13 && pair
}

func canFormMelds(h *Hand34, need int) bool {
	if need == 0 {
		for i := 0; i < 34; i++ {
			if (*h)[i] != 0 {
				return false
			}
		}
		return true
	}

	// 找第一个非 0
	i := -1
	for k := 0; k < 34; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return false
	}
	// 刻子
	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		if canFormMelds(h, need-1) {
			(*h)[i] += 3
			return true
		}
		(*h)[i] += 3
	}
	// 顺子（仅数牌）
	if isNumberTile(i) && i+2 < 34 && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			if canFormMelds(h, need-1) {
				(*h)[i]++
				(*h)[i+1]++
				(*h)[i+2]++
				return true
			}
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
	}

	return false
}

// -------------- 基础工具：转换与 key --------------

// Hand34FromTiles 34 种计数 + 每种牌对应的实体牌
func Hand34FromTiles(tiles []Tile) (Hand34, map[TileType][]Tile) {
	var h Hand34
	opts := make(map[TileType][]Tile, 34)
	for _, t := range tiles {
		h[int(t.Type)]++
		opts[t.Type] = append(opts[t.Type], t)
	}
	return h, opts
}

func (h Hand34) keyWithFixedMelds(fixedMelds int) string {
	var b [35]byte
	for i := 0; i < 34; i++ {
		b[i] = byte(h[i])
	}
	b[34] = byte(fixedMelds)
	return string(b[:])
}

func isNumberTile(i int) bool { return i >= int(Man1) && i <= int(So9) }

func suitOf(i int) int {
	switch {
	case i >= int(Man1) && i <= int(Man9):
		return 0
	case i >= int(Pin1) && i <= int(Pin9):
		return 1
	case i >= int(So1) && i <= int(So9):
		return 2
	default:
		return -1
	}
}

var kokushiTiles = [13]int{
	int(Man1), int(Man9),
	int(Pin1), int(Pin9),
	int(So1), int(So9),
	int(East), int(South), int(West), int(North),
	int(White), int(Green), int(Red),
}

// ShantenAll 向听数，带副露
func (s *Searcher) ShantenAll(h Hand34, fixedMelds int) int {
	key := "s" + h.keyWithFixedMelds(fixedMelds)
	if s.cache != nil {
		if n, ok := s.cache.GetInt(key); ok {
			return n
		}
	}

	best := s.ShantenNormal(h, fixedMelds)
	if fixedMelds == 0 {
		if v := ShantenChiitoi(h); v < best {
			best = v
		}
		if v := ShantenKokushi(h); v < best {
			best = v
		}
	}

	s.set(key, best)
	return best
}

// Visible34 已经看得见的牌（牌河 + 副露 + 宝牌指示牌 + 自己手牌），用于计算剩余进张
func Visible34(groups ...[]Tile) *[34]uint8 {
	var v [34]uint8
	for _, g := range groups {
		for _, t := range g {
			if v[t.Type] < 4 {
				v[t.Type]++
			}
		}
	}
	return &v
}

func (h Hand34) String() string {
	return fmt.Sprintf("%v", [34]uint8(h))
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h Hand34) int {
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenChiitoi 七对子向听数
func ShantenChiitoi(h Hand34) int {
	pairs := 0
	unique := 0
	for i := 0; i < 34; i++ {
		if h[i] > 0 {
			unique++
		}
		pairs += int(h[i] / 2)
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

func (s *Searcher) ShantenNormal(h Hand34, fixedMelds int) int {
	best := 8 // 一般型最差上界
	work := h
	dfsNormalShanten(&work, fixedMelds, 0, 0, &best)
	return best
}

// dfsNormalShanten 普通牌型向听数搜索 m：当前已经形成的面子数(包含 fixedMelds)、p：雀头数（0/1）、t：搭子数（taatsu）、best：全局最小向听
func dfsNormalShanten(h *Hand34, m int, p int, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}

	sh := 8 - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := -1
	for k := 0; k < 34; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}

	if !isNumberTile(i) {
		if (*h)[i] >= 3 {
			(*h)[i] -= 3
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i] += 3
		}

		if (*h)[i] >= 2 {
			(*h)[i] -= 2
			if p == 0 {
				dfsNormalShanten(h, m, 1, t, best)
			}
			// 对子也可以当搭子（双碰）
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i] += 2
		}

		(*h)[i]--
		dfsNormalShanten(h, m, p, t, best)
		(*h)[i]++
		return
	}

	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		(*h)[i] += 3
	}

	if i+2 < 34 && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
	}

	if (*h)[i] >= 2 {
		(*h)[i] -= 2
		if p == 0 {
			dfsNormalShanten(h, m, 1, t, best)
		}
		dfsNormalShanten(h, m, p, t+1, best)
		(*h)[i] += 2
	}

	if i+1 < 34 && suitOf(i) == suitOf(i+1) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+1]++
		}
	}

	if i+2 < 34 && suitOf(i) == suitOf(i+2) {
		if (*h)[i] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+2]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+2]++
		}
	}

	(*h)[i]--
	dfsNormalShanten(h, m, p, t, best)
	(*h)[i]++
}
