package persistence

import (
	"context"
	"errors"
	"fmt"

	"riichi/common/database"
	"riichi/common/log"
	"riichi/core/domain/entity"
	"riichi/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	gameRecordCollection  = "game_records"
	roundRecordCollection = "round_records"
)

type GameRecordRepository struct {
	mongo *database.MongoManager
}

func NewGameRecordRepository(mongo *database.MongoManager) repository.GameRecordRepository {
	return &GameRecordRepository{mongo: mongo}
}

func (r *GameRecordRepository) SaveGameRecord(ctx context.Context, record *entity.GameRecord) error {
	collection := r.mongo.Db.Collection(gameRecordCollection)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		log.Error("保存对局记录失败: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrStorage, err)
	}
	return nil
}

func (r *GameRecordRepository) FindGameRecord(ctx context.Context, recordID primitive.ObjectID) (*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection(gameRecordCollection)

	var record entity.GameRecord
	err := collection.FindOne(ctx, bson.M{"_id": recordID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNoRecord
		}
		log.Error("查询对局记录失败: %v", err)
		return nil, fmt.Errorf("%w: %w", repository.ErrStorage, err)
	}
	return &record, nil
}

func (r *GameRecordRepository) FindGameRecordsBySeed(ctx context.Context, seed int64, limit int) ([]*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection(gameRecordCollection)

	opts := options.Find().
		SetSort(bson.M{"start_time": -1}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, bson.M{"seed": seed}, opts)
	if err != nil {
		log.Error("按种子查询对局记录失败: %v", err)
		return nil, fmt.Errorf("%w: %w", repository.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var records []*entity.GameRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Error("解析对局记录失败: %v", err)
		return nil, fmt.Errorf("%w: %w", repository.ErrStorage, err)
	}
	return records, nil
}

// SaveRoundRecords InsertMany 批量写入
func (r *GameRecordRepository) SaveRoundRecords(ctx context.Context, rounds []*entity.RoundRecord) error {
	docs := make([]any, 0, len(rounds))
	for _, round := range rounds {
		if round != nil {
			docs = append(docs, round)
		}
	}
	if len(docs) == 0 {
		return nil
	}

	collection := r.mongo.Db.Collection(roundRecordCollection)
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		log.Error("批量保存局记录失败: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrStorage, err)
	}
	log.Debug("批量保存局记录成功: count=%d", len(docs))
	return nil
}

func (r *GameRecordRepository) FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	opts := options.Find().SetSort(bson.M{"round_number": 1})
	cursor, err := collection.Find(ctx, bson.M{"game_record_id": gameRecordID}, opts)
	if err != nil {
		log.Error("查询局记录失败: %v", err)
		return nil, fmt.Errorf("%w: %w", repository.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var rounds []*entity.RoundRecord
	if err := cursor.All(ctx, &rounds); err != nil {
		log.Error("解析局记录失败: %v", err)
		return nil, fmt.Errorf("%w: %w", repository.ErrStorage, err)
	}
	return rounds, nil
}
