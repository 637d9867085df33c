package mahjong

import (
	"context"
	"fmt"
	"sync"
	"time"

	"riichi/common/log"
	"riichi/core/domain/entity"
	"riichi/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GamePersister 对局持久化组件
// 对局过程中收集每局的记录，终局后一次性写入仓储
type GamePersister struct {
	repo         repository.GameRecordRepository
	gameRecord   *entity.GameRecord
	rounds       []*entity.RoundRecord // 所有局（终局后一次性保存）
	currentRound *entity.RoundRecord
	mu           sync.Mutex
	closed       bool
	timeout      time.Duration
}

var _ Recorder = (*GamePersister)(nil)

func NewGamePersister(repo repository.GameRecordRepository, g *Game, policies [4]Policy) *GamePersister {
	players := make([]entity.PlayerInfo, 0, 4)
	for seat, p := range policies {
		name := "none"
		if p != nil {
			name = p.Name()
		}
		players = append(players, entity.PlayerInfo{
			SeatIndex: seat,
			Name:      fmt.Sprintf("CPU_%d", seat),
			Policy:    name,
		})
	}

	return &GamePersister{
		repo:       repo,
		gameRecord: entity.NewGameRecord(g.GameID(), g.Seed(), g.Rules().GameLength, players),
		rounds:     make([]*entity.RoundRecord, 0, 8),
		timeout:    30 * time.Second,
	}
}

func (gp *GamePersister) GetGameRecordID() primitive.ObjectID {
	return gp.gameRecord.ID
}

func (gp *GamePersister) StartRound(g *Game, r *Round) {
	gp.mu.Lock()
	defer gp.mu.Unlock()
	if gp.closed {
		return
	}

	gp.currentRound = entity.NewRoundRecord(
		gp.gameRecord.ID,
		len(gp.rounds)+1,
		r.RoundWind().String(),
		r.Dealer(),
		r.Honba(),
		r.RiichiSticks(),
	)
	gp.rounds = append(gp.rounds, gp.currentRound)
	gp.currentRound.AddEvent(entity.EventTypeRoundStart, -1, toEntityTiles(r.DoraIndicators()), map[string]any{
		"points": r.Points(),
	})
}

func (gp *GamePersister) CompleteRound(g *Game, rep EndOfRoundReport) {
	gp.mu.Lock()
	defer gp.mu.Unlock()
	if gp.closed || gp.currentRound == nil {
		return
	}

	result := &entity.RoundResult{
		Delta:         rep.Deltas(),
		Liable:        rep.Liable,
		DealerRotates: rep.DealerRotates,
		RiichiSticks:  rep.RiichiSticks,
	}
	for i, s := range rep.Seats {
		result.Points[i] = s.Points
		result.Tenpai[i] = s.Tenpai
	}
	switch {
	case rep.Nagashi:
		result.EndType = entity.EndTypeNagashi
	case rep.ExhaustiveDraw:
		result.EndType = entity.EndTypeDrawExhaustive
	case rep.RonTarget >= 0:
		result.EndType = entity.EndTypeRon
	default:
		result.EndType = entity.EndTypeTsumo
	}

	for _, w := range rep.Winners {
		s := rep.Seats[w]
		yaku := make([]string, len(s.Yaku))
		for i, y := range s.Yaku {
			yaku[i] = y.String()
		}
		result.Claims = append(result.Claims, entity.HuClaim{
			WinnerSeat: w,
			LoserSeat:  rep.RonTarget,
			Han:        s.Fan,
			Fu:         s.Fu,
			Yakuman:    s.Yakuman,
			Yaku:       yaku,
			Dora:       s.Dora,
			UraDora:    s.UraDora,
			RedDora:    s.RedDora,
			Points:     s.Delta,
		})

		eventType := entity.EventTypeTsumo
		switch {
		case rep.Nagashi:
			eventType = entity.EventTypeNagashi
		case rep.RonTarget >= 0:
			eventType = entity.EventTypeRon
		}
		gp.currentRound.AddEvent(eventType, w, nil, map[string]any{"yaku": yaku})
	}

	gp.currentRound.CompleteRound(rep.RoundID.String(), result)
	gp.currentRound.AddEvent(entity.EventTypeRoundEnd, -1, toEntityTiles(rep.UraDoraIndicators), nil)
	gp.currentRound = nil
}

// FinalizeGame 终局后写入对局记录和全部局记录
func (gp *GamePersister) FinalizeGame(g *Game, result GameResult) {
	gp.mu.Lock()
	if gp.closed {
		gp.mu.Unlock()
		return
	}
	gp.closed = true
	rounds := make([]*entity.RoundRecord, len(gp.rounds))
	copy(rounds, gp.rounds)
	gp.mu.Unlock()

	rankings := make([]entity.PlayerRanking, 0, 4)
	for rank, seat := range result.Ranking {
		rankings = append(rankings, entity.PlayerRanking{
			SeatIndex: seat,
			Name:      gp.gameRecord.Players[seat].Name,
			Points:    result.Points[seat],
			Rank:      rank + 1,
		})
	}
	gp.gameRecord.CompleteGame(&entity.GameFinalResult{Rankings: rankings, Points: result.Points}, result.Rounds)

	ctx, cancel := context.WithTimeout(context.Background(), gp.timeout)
	defer cancel()
	if err := gp.Flush(ctx, rounds); err != nil {
		log.Error("对局记录保存失败: %v", err)
		return
	}
	log.Info("对局记录保存成功: gameRecordID=%s, rounds=%d", gp.gameRecord.ID.Hex(), len(rounds))
}

// Flush 写入对局元数据和局记录
func (gp *GamePersister) Flush(ctx context.Context, rounds []*entity.RoundRecord) error {
	if err := gp.repo.SaveGameRecord(ctx, gp.gameRecord); err != nil {
		return fmt.Errorf("保存对局记录: %w", err)
	}
	if err := gp.repo.SaveRoundRecords(ctx, rounds); err != nil {
		return fmt.Errorf("批量保存局记录: %w", err)
	}
	return nil
}

func toEntityTiles(tiles []Tile) []entity.Tile {
	out := make([]entity.Tile, len(tiles))
	for i, t := range tiles {
		out[i] = entity.Tile{Type: int(t.Type), ID: t.ID, Red: t.Red}
	}
	return out
}
