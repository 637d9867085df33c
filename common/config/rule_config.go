package config

// RuleConfig 对局规则，零值不可直接使用，请用 DefaultRules 或 InitConfig 读取
type RuleConfig struct {
	UseRedFives   bool   `mapstructure:"useRedFives"`   // 赤宝牌（每种花色一张赤5）
	OpenTanyao    bool   `mapstructure:"openTanyao"`    // 食断
	StackYakuman  bool   `mapstructure:"stackYakuman"`  // 役满叠加（双倍、三倍役满）
	FanCap        int    `mapstructure:"fanCap"`        // 番数上限，0 表示不封顶（到役满为止）
	KazoeYakuman  bool   `mapstructure:"kazoeYakuman"`  // 累计役满（13番以上按役满）
	NagashiMangan bool   `mapstructure:"nagashiMangan"` // 流局满贯
	Liability     bool   `mapstructure:"liability"`     // 包牌（大三元、大四喜）
	InitialPoints int    `mapstructure:"initialPoints"` // 起始点数
	ReturnPoints  int    `mapstructure:"returnPoints"`  // 终局线（南4结束时需有人达到）
	RiichiCost    int    `mapstructure:"riichiCost"`    // 立直棒
	HonbaRon      int    `mapstructure:"honbaRon"`      // 每本场荣和加点（自摸每家 1/3）
	DrawPool      int    `mapstructure:"drawPool"`      // 荒牌流局的罚符总数
	GameLength    string `mapstructure:"gameLength"`    // "east" 东风战 / "south" 半庄战
}

const (
	GameLengthEast  = "east"
	GameLengthSouth = "south"
)

func DefaultRules() RuleConfig {
	return RuleConfig{
		UseRedFives:   true,
		OpenTanyao:    true,
		StackYakuman:  false,
		FanCap:        0,
		KazoeYakuman:  true,
		NagashiMangan: true,
		Liability:     true,
		InitialPoints: 25000,
		ReturnPoints:  30000,
		RiichiCost:    1000,
		HonbaRon:      300,
		DrawPool:      3000,
		GameLength:    GameLengthSouth,
	}
}

// Winds 对局要打的场风数量
func (r RuleConfig) Winds() int {
	if r.GameLength == GameLengthEast {
		return 1
	}
	return 2
}
