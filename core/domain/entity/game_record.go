package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GameStatusInProgress = "in_progress"
	GameStatusCompleted  = "completed"
	GameStatusAborted    = "aborted"
)

// GameRecord 一场模拟对局的元数据（聚合根）
type GameRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	GameID      string             `bson:"game_id"`   // 引擎生成的 uuid
	Seed        int64              `bson:"seed"`      // 洗牌种子，相同种子可以复现整场
	Length      string             `bson:"length"`    // "east" / "south"
	Players     []PlayerInfo       `bson:"players"`   // 座位和策略
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	Duration    int                `bson:"duration"` // 秒
	Rounds      int                `bson:"rounds"`   // 实际进行的局数
	FinalResult *GameFinalResult   `bson:"final_result"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
}

type PlayerInfo struct {
	SeatIndex int    `bson:"seat_index"`
	Name      string `bson:"name"`
	Policy    string `bson:"policy"`
}

type GameFinalResult struct {
	Rankings []PlayerRanking `bson:"rankings"` // 按名次排序
	Points   [4]int          `bson:"points"`   // 按座位
}

type PlayerRanking struct {
	SeatIndex int    `bson:"seat_index"`
	Name      string `bson:"name"`
	Points    int    `bson:"points"`
	Rank      int    `bson:"rank"` // 1-4
}

func NewGameRecord(gameID string, seed int64, length string, players []PlayerInfo) *GameRecord {
	now := time.Now()
	return &GameRecord{
		ID:        primitive.NewObjectID(),
		GameID:    gameID,
		Seed:      seed,
		Length:    length,
		Players:   players,
		StartTime: now,
		Status:    GameStatusInProgress,
		CreatedAt: now,
	}
}

// CompleteGame 设置最终结果
func (gr *GameRecord) CompleteGame(finalResult *GameFinalResult, rounds int) {
	gr.EndTime = time.Now()
	gr.Duration = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.FinalResult = finalResult
	gr.Rounds = rounds
	gr.Status = GameStatusCompleted
}

// AbortGame 对局被取消
func (gr *GameRecord) AbortGame(rounds int) {
	gr.EndTime = time.Now()
	gr.Duration = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.Rounds = rounds
	gr.Status = GameStatusAborted
}
