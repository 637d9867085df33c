package main

import (
	"context"
	"fmt"
	"os"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/common/metrics"
	"riichi/simulator/app"

	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	seed       int64
	games      int
	metricPort int
)

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "立直麻将自动对局模拟器",
	Long:  `四个牌效率 CPU 自动打完整场立直麻将，输出终局名次，可选写入 mongodb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.InitConfig(configFile)
		conf := config.Conf
		if cmd.Flags().Changed("logLevel") || conf.Log.Level == "" {
			conf.Log.Level = logLevel
		}
		if cmd.Flags().Changed("seed") {
			conf.Seed = seed
		}
		if cmd.Flags().Changed("games") {
			conf.Games = games
		}
		if cmd.Flags().Changed("metricPort") {
			conf.MetricPort = metricPort
		}
		log.InitLog(conf.AppName, conf.Log.Level)
		log.Info(fmt.Sprintf("配置文件: %+v", conf))

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:" + fmt.Sprintf("%d", conf.MetricPort) + "/debug/statsviz/")
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}

		return app.Run(context.Background(), conf, os.Stdout)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "resource", "resource/application.yml", "resource file")
	rootCmd.Flags().StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().Int64Var(&seed, "seed", 1000, "shuffle seed of the first game")
	rootCmd.Flags().IntVar(&games, "games", 1, "number of games to play")
	rootCmd.Flags().IntVar(&metricPort, "metricPort", 0, "statsviz port, 0 disables it")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
