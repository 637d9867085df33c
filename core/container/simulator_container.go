package container

import (
	"context"
	"fmt"
	"sync"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/core/domain/repository"
	"riichi/core/infrastructure/persistence"
	"riichi/runtime/game/engines/mahjong"
)

// SimulatorContainer 模拟器专用容器：共享的牌效率搜索缓存和可选的对局记录仓储
type SimulatorContainer struct {
	*BaseContainer
	GameRecordRepository repository.GameRecordRepository
	Searcher             *mahjong.Searcher
	closed               bool
	mu                   sync.Mutex
}

func NewSimulatorContainer(ctx context.Context, conf *config.SimulatorConfig) (*SimulatorContainer, error) {
	base, err := NewBase(ctx, conf.DatabaseConf)
	if err != nil {
		return nil, fmt.Errorf("基础容器初始化失败: %w", err)
	}

	c := &SimulatorContainer{
		BaseContainer: base,
		Searcher:      mahjong.NewSearcher(),
	}
	if base.GetMongo() != nil {
		c.GameRecordRepository = persistence.NewGameRecordRepository(base.GetMongo())
	}
	return c, nil
}

// Policies 四个座位共用一个搜索缓存
func (c *SimulatorContainer) Policies() [4]mahjong.Policy {
	var policies [4]mahjong.Policy
	for i := range policies {
		policies[i] = mahjong.NewEfficiencyPolicy(c.Searcher)
	}
	return policies
}

// Recorder 没有仓储时返回 nil
func (c *SimulatorContainer) Recorder(g *mahjong.Game, policies [4]mahjong.Policy) mahjong.Recorder {
	if c.GameRecordRepository == nil {
		return nil
	}
	return mahjong.NewGamePersister(c.GameRecordRepository, g, policies)
}

// Close 幂等
func (c *SimulatorContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.Searcher.Close()
	log.Info("模拟器容器已关闭")
	return c.BaseContainer.Close()
}
