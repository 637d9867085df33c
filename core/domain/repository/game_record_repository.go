package repository

import (
	"context"

	"riichi/core/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRecordRepository 对局记录仓储
type GameRecordRepository interface {
	SaveGameRecord(ctx context.Context, record *entity.GameRecord) error

	// FindGameRecord 找不到时返回 ErrNoRecord
	FindGameRecord(ctx context.Context, recordID primitive.ObjectID) (*entity.GameRecord, error)

	// FindGameRecordsBySeed 同一个种子的全部对局，按开始时间倒序
	FindGameRecordsBySeed(ctx context.Context, seed int64, limit int) ([]*entity.GameRecord, error)

	// SaveRoundRecords 批量保存局记录
	SaveRoundRecords(ctx context.Context, rounds []*entity.RoundRecord) error

	// FindRoundRecords 按局数排序
	FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*entity.RoundRecord, error)
}
