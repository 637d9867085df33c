package mahjong

import (
	"context"
	"fmt"

	"riichi/common/log"
)

// ReactionKind 对舍牌的反应，数值越小优先级越高
type ReactionKind int

const (
	ReactionRon ReactionKind = iota
	ReactionKan
	ReactionPon
	ReactionChii
)

type reaction struct {
	kind  ReactionKind
	seat  int
	start int // 吃的顺子起始数字
}

// Driver 自动对局循环：按 荣和 > 杠 > 碰 > 吃 > 过 的顺序询问各家策略
type Driver struct {
	// OnStep 每执行一条命令后回调，测试里用来检查不变量
	OnStep func(r *Round)
}

func (d *Driver) step(r *Round) {
	if d.OnStep != nil {
		d.OnStep(r)
	}
}

// PlayRound 把一局打完并返回结算；ctx 取消时在两条命令之间退出
func (d *Driver) PlayRound(ctx context.Context, r *Round, policies [4]Policy) (EndOfRoundReport, error) {
	for {
		select {
		case <-ctx.Done():
			return EndOfRoundReport{}, ctx.Err()
		default:
		}

		switch r.Phase() {
		case PhaseRoundOver:
			return r.EndOfRound(-1), nil

		case PhaseAwaitingPick:
			if _, ok := r.Pick(); !ok {
				return r.EndOfRound(-1), nil
			}

		case PhaseAwaitingDiscard:
			if rep, done := d.ownTurn(r, policies); done {
				return rep, nil
			}

		case PhaseAwaitingCall:
			rep, done, err := d.waitReaction(r, policies)
			if err != nil {
				return EndOfRoundReport{}, err
			}
			if done {
				return rep, nil
			}
		}
		d.step(r)
	}
}

// ownTurn 当前座位：自摸 > 杠 > 立直 > 出牌
func (d *Driver) ownTurn(r *Round, policies [4]Policy) (EndOfRoundReport, bool) {
	seat := r.Current()
	policy := policies[seat]

	if r.CanCallTsumo(seat) && policy.WantTsumo(r, seat) {
		return r.EndOfRound(-1, seat), true
	}

	if options := r.CanCallKan(seat); len(options) > 0 {
		if t, ok := policy.WantKan(r, seat, options); ok {
			tile := t
			if kan, ok := r.CallKan(seat, &tile); ok {
				return d.robKan(r, kan, policies)
			}
		}
	}

	if options := r.CanCallRiichi(seat); len(options) > 0 {
		if t, ok := policy.WantRiichi(r, seat, options); ok && r.CallRiichi(t) {
			return EndOfRoundReport{}, false
		}
	}

	choices := r.DiscardChoices(seat)
	if len(choices) == 0 {
		panic(newInvariantError("Driver", "座位 %d 没有合法出牌", seat))
	}
	if !r.Discard(policy.ChooseDiscard(r, seat, choices)) && !r.Discard(choices[0]) {
		panic(newInvariantError("Driver", "座位 %d 出牌失败", seat))
	}
	return EndOfRoundReport{}, false
}

// robKan 开杠后询问其它三家是否抢杠，有人抢则撤销岭上摸牌并结算
func (d *Driver) robKan(r *Round, kan KanContext, policies [4]Policy) (EndOfRoundReport, bool) {
	if kan.Kind == KanOpen {
		return EndOfRoundReport{}, false
	}
	var winners []int
	for i := 1; i < 4; i++ {
		s := (kan.Seat + i) % 4
		if r.CanCallRon(s, &kan) && policies[s].WantRon(r, s, kan.Tile) {
			winners = append(winners, s)
		}
	}
	if len(winners) == 0 {
		return EndOfRoundReport{}, false
	}
	log.Debug("抢杠: 杠=%d 和牌=%v 牌=%s", kan.Seat, winners, kan.Tile)
	r.UndoCompensationDraw(kan)
	return r.EndOfRound(kan.Seat, winners...), true
}

// waitReaction 收集三家对舍牌的反应，按优先级执行一个；都放弃时下家摸牌
func (d *Driver) waitReaction(r *Round, policies [4]Policy) (EndOfRoundReport, bool, error) {
	tile, from, ok := r.LastDiscard()
	if !ok {
		return EndOfRoundReport{}, false, fmt.Errorf("等待反应时没有舍牌: phase=%s", r.Phase())
	}

	var ron []int
	var best *reaction
	offer := func(rc reaction) {
		if best == nil || rc.kind < best.kind {
			best = &rc
		}
	}
	for i := 1; i < 4; i++ {
		s := (from + i) % 4
		policy := policies[s]
		if r.CanCallRon(s, nil) && policy.WantRon(r, s, tile) {
			ron = append(ron, s)
			continue
		}
		if options := r.CanCallKan(s); len(options) > 0 {
			if _, ok := policy.WantKan(r, s, options); ok {
				offer(reaction{kind: ReactionKan, seat: s})
				continue
			}
		}
		if r.CanCallPon(s) && policy.WantPon(r, s, tile) {
			offer(reaction{kind: ReactionPon, seat: s})
			continue
		}
		if starts := r.CanCallChii(s); len(starts) > 0 {
			if start, ok := policy.ChooseChii(r, s, starts); ok {
				offer(reaction{kind: ReactionChii, seat: s, start: start})
			}
		}
	}

	if len(ron) > 0 {
		return r.EndOfRound(from, ron...), true, nil
	}

	if best != nil {
		var done bool
		switch best.kind {
		case ReactionKan:
			_, done = r.CallKan(best.seat, nil)
		case ReactionPon:
			done = r.CallPon(best.seat)
		case ReactionChii:
			done = r.CallChii(best.start)
		}
		if done {
			return EndOfRoundReport{}, false, nil
		}
		log.Warn("座位 %d 的反应 %d 执行失败，视为放弃", best.seat, best.kind)
	}

	if _, ok := r.Pick(); !ok {
		return r.EndOfRound(-1), true, nil
	}
	return EndOfRoundReport{}, false, nil
}
