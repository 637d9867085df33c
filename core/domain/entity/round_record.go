package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundRecord 局记录（每局一个文档）
type RoundRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	GameRecordID primitive.ObjectID `bson:"game_record_id"`
	RoundID      string             `bson:"round_id"`
	RoundNumber  int                `bson:"round_number"` // 从 1 开始，连庄也算一局
	RoundWind    string             `bson:"round_wind"`
	DealerIndex  int                `bson:"dealer_index"`
	Honba        int                `bson:"honba"`
	RiichiSticks int                `bson:"riichi_sticks"` // 开局时场上的立直棒
	Events       []RoundEvent       `bson:"events"`
	RoundResult  *RoundResult       `bson:"round_result"`
	StartTime    time.Time          `bson:"start_time"`
	EndTime      time.Time          `bson:"end_time"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type RoundEvent struct {
	Sequence  int            `bson:"sequence"`
	EventType string         `bson:"event_type"`
	SeatIndex int            `bson:"seat_index"` // -1 表示系统事件
	Tiles     []Tile         `bson:"tiles,omitempty"`
	Data      map[string]any `bson:"data,omitempty"`
}

type RoundResult struct {
	EndType       string    `bson:"end_type"` // RON / TSUMO / DRAW_EXHAUSTIVE / NAGASHI
	Claims        []HuClaim `bson:"claims"`
	Delta         [4]int    `bson:"delta"`
	Points        [4]int    `bson:"points"`
	Tenpai        [4]bool   `bson:"tenpai"`
	Liable        int       `bson:"liable"`
	DealerRotates bool      `bson:"dealer_rotates"`
	RiichiSticks  int       `bson:"riichi_sticks"` // 结算后留在场上的立直棒
}

type HuClaim struct {
	WinnerSeat int      `bson:"winner_seat"`
	LoserSeat  int      `bson:"loser_seat"` // 自摸为 -1
	Han        int      `bson:"han"`
	Fu         int      `bson:"fu"`
	Yakuman    int      `bson:"yakuman"`
	Yaku       []string `bson:"yaku"`
	Dora       int      `bson:"dora"`
	UraDora    int      `bson:"ura_dora"`
	RedDora    int      `bson:"red_dora"`
	Points     int      `bson:"points"`
}

type Tile struct {
	Type int  `bson:"type"`
	ID   int  `bson:"id"`
	Red  bool `bson:"red,omitempty"`
}

func NewRoundRecord(gameRecordID primitive.ObjectID, roundNumber int, roundWind string, dealerIndex, honba, sticks int) *RoundRecord {
	now := time.Now()
	return &RoundRecord{
		ID:           primitive.NewObjectID(),
		GameRecordID: gameRecordID,
		RoundNumber:  roundNumber,
		RoundWind:    roundWind,
		DealerIndex:  dealerIndex,
		Honba:        honba,
		RiichiSticks: sticks,
		Events:       make([]RoundEvent, 0, 8),
		StartTime:    now,
		CreatedAt:    now,
	}
}

func (rr *RoundRecord) AddEvent(eventType string, seatIndex int, tiles []Tile, data map[string]any) {
	rr.Events = append(rr.Events, RoundEvent{
		Sequence:  len(rr.Events),
		EventType: eventType,
		SeatIndex: seatIndex,
		Tiles:     tiles,
		Data:      data,
	})
}

func (rr *RoundRecord) CompleteRound(roundID string, result *RoundResult) {
	rr.EndTime = time.Now()
	rr.RoundID = roundID
	rr.RoundResult = result
}

const (
	EventTypeRoundStart = "round_start"
	EventTypeRon        = "ron"
	EventTypeTsumo      = "tsumo"
	EventTypeNagashi    = "nagashi"
	EventTypeRoundEnd   = "round_end"
)

const (
	EndTypeRon            = "RON"
	EndTypeTsumo          = "TSUMO"
	EndTypeDrawExhaustive = "DRAW_EXHAUSTIVE"
	EndTypeNagashi        = "NAGASHI"
)
