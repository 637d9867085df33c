package mahjong

import (
	"riichi/common/log"
)

// EventKind 对局事件，调用方通过 channel 订阅，引擎本身不依赖任何展示层
type EventKind int

const (
	EventRoundStart EventKind = iota // 回合开始
	EventPick                        // 摸牌
	EventDiscard                     // 出牌
	EventCall                        // 吃、碰、杠
	EventRiichi                      // 立直
	EventTurn                        // 轮到某个座位
	EventRoundEnd                    // 回合结束
)

func (k EventKind) String() string {
	switch k {
	case EventRoundStart:
		return "round_start"
	case EventPick:
		return "pick"
	case EventDiscard:
		return "discard"
	case EventCall:
		return "call"
	case EventRiichi:
		return "riichi"
	case EventTurn:
		return "turn"
	case EventRoundEnd:
		return "round_end"
	}
	return "unknown"
}

type Event struct {
	Kind   EventKind
	Seat   int
	Tile   Tile
	Meld   *Meld
	From   int
	Report *EndOfRoundReport
}

// emit 非阻塞投递，订阅方处理不过来时丢弃并告警，不能卡住引擎
func (r *Round) emit(e Event) {
	if r.events == nil {
		return
	}
	select {
	case r.events <- e:
	default:
		log.Warn("事件队列已满，丢弃事件: kind=%s seat=%d", e.Kind, e.Seat)
	}
}

func (r *Round) broadcastRoundStart() {
	r.emit(Event{Kind: EventRoundStart, Seat: r.dealer, From: -1})
	r.emit(Event{Kind: EventTurn, Seat: r.turns.TurnPointer, From: -1})
}

func (r *Round) pushPick(seat int, tile Tile) {
	r.emit(Event{Kind: EventPick, Seat: seat, Tile: tile, From: -1})
}

func (r *Round) broadcastDiscard(seat int, tile Tile) {
	r.emit(Event{Kind: EventDiscard, Seat: seat, Tile: tile, From: -1})
}

func (r *Round) broadcastRiichi(seat int, tile Tile) {
	r.emit(Event{Kind: EventRiichi, Seat: seat, Tile: tile, From: -1})
}

func (r *Round) broadcastMeld(seat int, m Meld) {
	meld := m
	r.emit(Event{Kind: EventCall, Seat: seat, Tile: m.Called, Meld: &meld, From: m.From})
	r.emit(Event{Kind: EventTurn, Seat: seat, From: -1})
}

func (r *Round) broadcastTurn(seat int) {
	r.emit(Event{Kind: EventTurn, Seat: seat, From: -1})
}

func (r *Round) broadcastRoundEnd(report *EndOfRoundReport) {
	r.emit(Event{Kind: EventRoundEnd, Seat: -1, From: -1, Report: report})
}
