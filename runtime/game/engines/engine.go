package engines

type GameState int

const (
	GameWaiting    GameState = iota // 等待开始
	GameInProgress                  // 进行中
	GamePaused                      // 暂停（被取消，可以继续 Run）
	GameFinished                    // 结束
)

func (s GameState) String() string {
	switch s {
	case GameWaiting:
		return "waiting"
	case GameInProgress:
		return "in_progress"
	case GamePaused:
		return "paused"
	case GameFinished:
		return "finished"
	}
	return "unknown"
}

// Engine 一场对局的生命周期，由上层按 ID 管理
type Engine interface {
	// GameID 对局唯一标识
	GameID() string

	State() GameState

	// Close 释放引擎内部资源
	Close()
}
