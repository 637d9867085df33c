package mahjong

type DrawKind int

const (
	DrawWall         DrawKind = iota // 牌山自摸
	DrawCompensation                 // 岭上摸牌
	DrawDiscard                      // 荣和别家的舍牌
	DrawRobbedKan                    // 抢杠
)

func (d DrawKind) SelfDraw() bool {
	return d == DrawWall || d == DrawCompensation
}

// WinContext 和牌时的场况，每次判定时重新构造，不做修改
type WinContext struct {
	Draw         DrawKind
	Riichi       bool
	DoubleRiichi bool
	Ippatsu      bool
	FirstTurn    bool // 第一巡且无人鸣牌（天和、地和）
	LastTile     bool // 海底摸月 / 河底捞鱼
	SeatWind     Wind
	RoundWind    Wind
}

func (c WinContext) SelfDraw() bool {
	return c.Draw.SelfDraw()
}

func (c WinContext) Dealer() bool {
	return c.SeatWind == WindEast
}
