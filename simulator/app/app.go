package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/core/container"
	"riichi/runtime/game/engines/mahjong"
)

// Run 依次打 conf.Games 场，第 i 场的种子为 conf.Seed + i；收到退出信号时在两条命令之间停止
func Run(ctx context.Context, conf *config.SimulatorConfig, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewSimulatorContainer(ctx, conf)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("关闭容器失败: %v", err)
		}
	}()

	for i := 0; i < conf.Games; i++ {
		res, err := PlayOne(ctx, c, conf.Rules, conf.Seed+int64(i))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Warn("模拟被中断，已完成 %d 场", i)
				return nil
			}
			return err
		}
		PrintResult(out, conf.Seed+int64(i), res)
	}
	return nil
}

// PlayOne 用指定种子打一场
func PlayOne(ctx context.Context, c *container.SimulatorContainer, rules config.RuleConfig, seed int64) (mahjong.GameResult, error) {
	policies := c.Policies()
	g := mahjong.NewGame(mahjong.GameOptions{Rules: rules, Seed: seed})
	if rec := c.Recorder(g, policies); rec != nil {
		g.SetRecorder(rec)
	}
	defer g.Close()

	log.Info("开始对局: id=%s seed=%d", g.GameID(), seed)
	return g.Run(ctx, policies)
}

func PrintResult(out io.Writer, seed int64, res mahjong.GameResult) {
	fmt.Fprintf(out, "seed=%d rounds=%d\n", seed, res.Rounds)
	for rank, seat := range res.Ranking {
		fmt.Fprintf(out, "  %d. CPU_%d %6d\n", rank+1, seat, res.Points[seat])
	}
}
