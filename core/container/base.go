package container

import (
	"context"

	"riichi/common/config"
	"riichi/common/database"
	"riichi/common/log"
)

// BaseContainer 基础容器，管理共享的资源（数据库连接）
type BaseContainer struct {
	mongo *database.MongoManager
}

// NewBase 没有配置 mongo 时返回空容器，对局记录不落库
func NewBase(ctx context.Context, conf config.DatabaseConf) (*BaseContainer, error) {
	if !conf.MongoConf.Enabled() {
		log.Info("未配置 mongodb，对局记录不落库")
		return &BaseContainer{}, nil
	}
	mongo, err := database.NewMongo(ctx, conf.MongoConf)
	if err != nil {
		return nil, err
	}
	return &BaseContainer{mongo: mongo}, nil
}

func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

func (c *BaseContainer) Close() error {
	if err := c.mongo.Close(); err != nil {
		log.Error("mongo 关闭失败: %v", err)
		return err
	}
	return nil
}
