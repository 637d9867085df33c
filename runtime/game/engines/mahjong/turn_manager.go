package mahjong

// Phase 回合状态
type Phase int

const (
	PhaseAwaitingPick    Phase = iota // 等待当前座位摸牌
	PhaseAwaitingDiscard              // 等待当前座位出牌（或自摸、杠、立直）
	PhaseAwaitingCall                 // 舍牌可以被鸣牌或荣和
	PhaseRoundOver                    // 本局结束
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPick:
		return "AwaitingPick"
	case PhaseAwaitingDiscard:
		return "AwaitingDiscard"
	case PhaseAwaitingCall:
		return "AwaitingCall"
	case PhaseRoundOver:
		return "RoundOver"
	}
	return "Unknown"
}

type MoveKind int

const (
	MovePick    MoveKind = iota // 摸牌（含岭上）
	MoveDiscard                 // 出牌
	MoveCall                    // 吃、碰、杠（含暗杠），打断巡目
)

type Move struct {
	Seat int
	Kind MoveKind
}

// TurnManager 当前座位、回合状态，以及本局的行动记录
type TurnManager struct {
	TurnPointer int
	Phase       Phase
	history     []Move
	lastCall    int // 最近一次鸣牌在 history 中的下标，-1 表示还没有人鸣牌
}

func NewTurnManager(dealer int) *TurnManager {
	return &TurnManager{
		TurnPointer: dealer,
		Phase:       PhaseAwaitingPick,
		history:     make([]Move, 0, 160),
		lastCall:    -1,
	}
}

// NextTurn 下一个玩家
func (tm *TurnManager) NextTurn() int {
	tm.TurnPointer = (tm.TurnPointer + 1) % 4
	return tm.TurnPointer
}

func (tm *TurnManager) Record(seat int, kind MoveKind) {
	if kind == MoveCall {
		tm.lastCall = len(tm.history)
	}
	tm.history = append(tm.history, Move{Seat: seat, Kind: kind})
}

// Uninterrupted 从第 from 步开始到现在没有任何鸣牌
func (tm *TurnManager) Uninterrupted(from int) bool {
	return tm.lastCall < from
}

