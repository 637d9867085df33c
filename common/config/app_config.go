package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *SimulatorConfig

type SimulatorConfig struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	MetricPort   int          `mapstructure:"metricPort"`
	Seed         int64        `mapstructure:"seed"`
	Games        int          `mapstructure:"games"`
	Rules        RuleConfig   `mapstructure:"rules"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

// Enabled 没有配置 url 时不落库
func (m MongoConf) Enabled() bool {
	return strings.TrimSpace(m.Url) != ""
}

func setDefaults(v *viper.Viper) {
	rules := DefaultRules()
	v.SetDefault("appName", "simulator")
	v.SetDefault("log.level", "info")
	v.SetDefault("games", 1)
	v.SetDefault("seed", 1000)
	v.SetDefault("rules.useRedFives", rules.UseRedFives)
	v.SetDefault("rules.openTanyao", rules.OpenTanyao)
	v.SetDefault("rules.stackYakuman", rules.StackYakuman)
	v.SetDefault("rules.fanCap", rules.FanCap)
	v.SetDefault("rules.kazoeYakuman", rules.KazoeYakuman)
	v.SetDefault("rules.nagashiMangan", rules.NagashiMangan)
	v.SetDefault("rules.liability", rules.Liability)
	v.SetDefault("rules.initialPoints", rules.InitialPoints)
	v.SetDefault("rules.returnPoints", rules.ReturnPoints)
	v.SetDefault("rules.riichiCost", rules.RiichiCost)
	v.SetDefault("rules.honbaRon", rules.HonbaRon)
	v.SetDefault("rules.drawPool", rules.DrawPool)
	v.SetDefault("rules.gameLength", rules.GameLength)
	v.SetDefault("database.mongo.db", "mahjong")
	v.SetDefault("database.mongo.minPoolSize", 1)
	v.SetDefault("database.mongo.maxPoolSize", 10)
}

// Load 读取配置文件，configFile 为空时只使用默认值
func Load(configFile string) (*SimulatorConfig, error) {
	v := viper.New()
	setDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错: %w", err)
		}
	}
	conf := new(SimulatorConfig)
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	return conf, nil
}

// InitConfig 加载全局配置并监听文件变化，规则的修改从下一局开始生效
func InitConfig(configFile string) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configFile)

	err := v.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("读取配置文件出错, err:%v", err))
	}

	conf := new(SimulatorConfig)
	if err = v.Unmarshal(conf); err != nil {
		panic(fmt.Errorf("解析配置文件出错 1, err:%v", err))
	}
	Conf = conf

	v.OnConfigChange(func(in fsnotify.Event) {
		next := new(SimulatorConfig)
		if err := v.Unmarshal(next); err != nil {
			panic(fmt.Errorf("解析配置文件出错 2, err:%v", err))
		}
		Conf = next
	})
	v.WatchConfig()
}
