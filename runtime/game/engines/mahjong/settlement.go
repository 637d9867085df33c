package mahjong

import (
	"sort"

	"github.com/google/uuid"

	"riichi/common/log"
)

type SeatResult struct {
	Seat    int
	Winner  bool
	Tenpai  bool
	Fan     int
	Fu      int
	Yaku    []Yaku
	Yakuman int
	Dora    int
	UraDora int
	RedDora int
	Delta   int
	Points  int // 结算后的点数
}

// EndOfRoundReport 一局的结算结果，生成后不再修改
type EndOfRoundReport struct {
	RoundID           uuid.UUID
	Dealer            int
	RoundWind         Wind
	Honba             int
	Winners           []int // 荣和时按放铳者下家开始的顺序
	RonTarget         int   // 放铳座位，自摸和流局为 -1
	Liable            int   // 包牌座位，-1 表示没有
	ExhaustiveDraw    bool
	Nagashi           bool
	DealerRotates     bool
	RiichiSticks      int // 结算后仍留在场上的立直棒
	Seats             [4]SeatResult
	DoraIndicators    []Tile
	UraDoraIndicators []Tile
}

// Deltas 四家的点数变化
func (rep *EndOfRoundReport) Deltas() [4]int {
	var d [4]int
	for i, s := range rep.Seats {
		d[i] = s.Delta
	}
	return d
}

// IsWinner seat 是否和牌（含流局满贯）
func (rep *EndOfRoundReport) IsWinner(seat int) bool {
	for _, w := range rep.Winners {
		if w == seat {
			return true
		}
	}
	return false
}

// EndOfRound 结算本局
// ronTarget >= 0 时 winners 荣和 ronTarget 的舍牌（可以多家）；ronTarget < 0 且只有一个 winner 为自摸；
// 没有 winner 时为荒牌流局，要求牌山已经摸完。重复调用返回同一份结果
func (r *Round) EndOfRound(ronTarget int, winners ...int) EndOfRoundReport {
	if r.report != nil {
		return *r.report
	}

	rep := &EndOfRoundReport{
		RoundID:   uuid.New(),
		Dealer:    r.dealer,
		RoundWind: r.roundWind,
		Honba:     r.honba,
		RonTarget: -1,
		Liable:    -1,
	}
	for i := range rep.Seats {
		rep.Seats[i].Seat = i
	}

	switch {
	case ronTarget >= 0:
		checkSeat("EndOfRound", ronTarget)
		if len(winners) == 0 {
			panic(newInvariantError("EndOfRound", "荣和 %d 但没有和牌者", ronTarget))
		}
		r.settleRon(rep, ronTarget, winners)
	case len(winners) == 1:
		r.settleTsumo(rep, winners[0])
	case len(winners) == 0:
		r.settleDraw(rep)
	default:
		panic(newInvariantError("EndOfRound", "自摸只能有一个和牌者, got %v", winners))
	}

	rep.DoraIndicators = r.deck.DoraIndicators()
	rep.UraDoraIndicators = r.deck.UraDoraIndicators()
	if !rep.ExhaustiveDraw {
		rep.DealerRotates = !rep.IsWinner(r.dealer)
	}
	for i := range r.points {
		r.points[i] += rep.Seats[i].Delta
		rep.Seats[i].Points = r.points[i]
	}
	rep.RiichiSticks = r.sticks

	r.report = rep
	r.turns.Phase = PhaseRoundOver
	log.Info("结算: 场风=%s 庄家=%d 本场=%d 和牌=%v 放铳=%d 流局=%v 点数=%v",
		r.roundWind, r.dealer, r.honba, rep.Winners, rep.RonTarget, rep.ExhaustiveDraw, r.points)
	r.broadcastRoundEnd(rep)
	return *rep
}

// fillWinner 记录和牌者的番符和宝牌数，返回总番数
func (r *Round) fillWinner(rep *EndOfRoundReport, seat int, res WinResult, hand *Hand) int {
	sr := &rep.Seats[seat]
	sr.Winner = true
	sr.Yaku = res.Yaku
	sr.Yakuman = res.Yakuman
	sr.Fu = res.Fu

	tiles := hand.AllTiles()
	dora := r.deck.DoraIndicators()
	ura := r.deck.UraDoraIndicators()
	for _, t := range tiles {
		sr.Dora += countIndicated(t.Type, dora)
		if r.players[seat].IsRiichi() {
			sr.UraDora += countIndicated(t.Type, ura)
		}
		if t.Red {
			sr.RedDora++
		}
	}
	sr.Fan = FanCount(res.Yaku, res.Decomp.Concealed, sr.Dora, sr.UraDora, sr.RedDora, r.rules)
	return sr.Fan
}

func (r *Round) settleRon(rep *EndOfRoundReport, target int, winners []int) {
	if r.turns.Phase != PhaseAwaitingCall || !r.hasDiscard || r.discarder != target {
		panic(newInvariantError("EndOfRound", "座位 %d 没有可以荣和的舍牌", target))
	}
	ordered := append([]int(nil), winners...)
	sort.Slice(ordered, func(i, j int) bool {
		return (ordered[i]-target+4)%4 < (ordered[j]-target+4)%4
	})

	type ronWin struct {
		seat int
		res  WinResult
		hand *Hand
	}
	wins := make([]ronWin, 0, len(ordered))
	for i, w := range ordered {
		checkSeat("EndOfRound", w)
		if i > 0 && ordered[i-1] == w {
			panic(newInvariantError("EndOfRound", "和牌者 %d 重复", w))
		}
		res, hand, ok := r.ronResult(w, nil)
		if !ok {
			panic(newInvariantError("EndOfRound", "座位 %d 不能荣和 %s", w, r.lastDiscard))
		}
		wins = append(wins, ronWin{seat: w, res: res, hand: hand})
	}

	// 宣言牌被荣和，立直不成立，不支付立直棒
	r.pending = -1

	rep.RonTarget = target
	rep.Winners = ordered
	// 本场平分，零头给放铳者下家方向最近的和牌者
	honbaTotal := r.rules.HonbaRon * r.honba
	honbaEach := honbaTotal / len(wins) / 100 * 100
	for i, win := range wins {
		fan := r.fillWinner(rep, win.seat, win.res, win.hand)
		pts, _ := Points(fan, win.res.Fu, false, r.SeatWind(win.seat))

		liable := r.liabilityFor(win.seat, win.res)
		if liable >= 0 && liable != target {
			rep.Liable = liable
			half := pts / 2
			rep.Seats[liable].Delta -= half
			rep.Seats[target].Delta -= pts - half
		} else {
			rep.Seats[target].Delta -= pts
		}
		honba := honbaEach
		if i == 0 {
			honba = honbaTotal - honbaEach*(len(wins)-1)
		}
		rep.Seats[target].Delta -= honba
		rep.Seats[win.seat].Delta += pts + honba

		// 供托只给放铳者下家方向最近的和牌者
		if i == 0 {
			rep.Seats[win.seat].Delta += r.sticks * r.rules.RiichiCost
			r.sticks = 0
		}
	}
}

func (r *Round) settleTsumo(rep *EndOfRoundReport, winner int) {
	checkSeat("EndOfRound", winner)
	res, ok := r.tsumoResult(winner)
	if !ok {
		panic(newInvariantError("EndOfRound", "座位 %d 不能自摸", winner))
	}
	rep.Winners = []int{winner}
	fan := r.fillWinner(rep, winner, res, r.players[winner].Hand)
	seatWind := r.SeatWind(winner)
	honbaEach := r.rules.HonbaRon / 3 * r.honba

	// 包牌的自摸视为责任者放铳
	if liable := r.liabilityFor(winner, res); liable >= 0 {
		rep.Liable = liable
		pts, _ := Points(fan, res.Fu, false, seatWind)
		pts += r.rules.HonbaRon * r.honba
		rep.Seats[liable].Delta -= pts
		rep.Seats[winner].Delta += pts
	} else {
		a, b := Points(fan, res.Fu, true, seatWind)
		for s := 0; s < 4; s++ {
			if s == winner {
				continue
			}
			pay := b
			if s == r.dealer {
				pay = a
			}
			pay += honbaEach
			rep.Seats[s].Delta -= pay
			rep.Seats[winner].Delta += pay
		}
	}
	rep.Seats[winner].Delta += r.sticks * r.rules.RiichiCost
	r.sticks = 0
}

func (r *Round) liabilityFor(seat int, res WinResult) int {
	if r.liable[seat] < 0 {
		return -1
	}
	for _, y := range res.Yaku {
		if y == r.liableYaku[seat] {
			return r.liable[seat]
		}
	}
	return -1
}

func (r *Round) settleDraw(rep *EndOfRoundReport) {
	if r.deck.Remaining() > 0 {
		panic(newInvariantError("EndOfRound", "牌山还剩 %d 张，不能流局", r.deck.Remaining()))
	}
	if r.turns.Phase == PhaseAwaitingCall {
		r.resolveDiscard()
	}
	rep.ExhaustiveDraw = true

	var tenpai []int
	for s, p := range r.players {
		if IsTenpai(p.Hand.Concealed(), p.Hand.Melds()) {
			rep.Seats[s].Tenpai = true
			tenpai = append(tenpai, s)
		}
	}
	rep.DealerRotates = !rep.Seats[r.dealer].Tenpai

	if r.rules.NagashiMangan {
		for s, p := range r.players {
			if !p.NagashiEligible() {
				continue
			}
			rep.Nagashi = true
			rep.Winners = append(rep.Winners, s)
			sr := &rep.Seats[s]
			sr.Winner = true
			sr.Yaku = []Yaku{YakuNagashiMangan}
			sr.Fan = 5
			a, b := Points(5, 30, true, r.SeatWind(s))
			for o := 0; o < 4; o++ {
				if o == s {
					continue
				}
				pay := b
				if o == r.dealer {
					pay = a
				}
				rep.Seats[o].Delta -= pay
				sr.Delta += pay
			}
		}
		if rep.Nagashi {
			return
		}
	}

	// 不听罚符：1/2/3 家听牌分别平分，0 家或 4 家听牌不移动点数
	n := len(tenpai)
	if n == 0 || n == 4 {
		return
	}
	gain := r.rules.DrawPool / n
	loss := r.rules.DrawPool / (4 - n)
	for s := range rep.Seats {
		if rep.Seats[s].Tenpai {
			rep.Seats[s].Delta += gain
		} else {
			rep.Seats[s].Delta -= loss
		}
	}
}
