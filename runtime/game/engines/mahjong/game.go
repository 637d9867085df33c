package mahjong

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/runtime/game/engines"
)

// Recorder 对局记录的下游，Game 在每局开始、结束和整场结束时回调
type Recorder interface {
	StartRound(g *Game, r *Round)
	CompleteRound(g *Game, rep EndOfRoundReport)
	FinalizeGame(g *Game, result GameResult)
}

type GameOptions struct {
	Rules    config.RuleConfig
	Seed     int64
	Rng      *rand.Rand // 为空时按 Seed 创建
	Events   chan<- Event
	Recorder Recorder
}

// GameResult 终局点数和名次
type GameResult struct {
	Points  [4]int
	Ranking [4]int // Ranking[0] 为第一名的座位
	Rounds  int
}

// Game 一场对局：东风战或半庄战，负责轮庄、本场、供托和终局判断
type Game struct {
	ID     uuid.UUID
	Driver Driver

	rules     config.RuleConfig
	seed      int64
	rng       *rand.Rand
	events    chan<- Event
	recorder  Recorder
	points    [4]int
	dealer    int
	roundWind Wind
	hand      int // 当前场风下第几局（0-3）
	honba     int
	sticks    int
	state     engines.GameState
	reports   []EndOfRoundReport
}

var _ engines.Engine = (*Game)(nil)

func NewGame(opts GameOptions) *Game {
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	g := &Game{
		ID:        uuid.New(),
		rules:     opts.Rules,
		seed:      opts.Seed,
		rng:       rng,
		events:    opts.Events,
		recorder:  opts.Recorder,
		roundWind: WindEast,
		state:     engines.GameWaiting,
	}
	for i := range g.points {
		g.points[i] = opts.Rules.InitialPoints
	}
	return g
}

func (g *Game) GameID() string              { return g.ID.String() }
func (g *Game) State() engines.GameState    { return g.state }
func (g *Game) Seed() int64                 { return g.seed }
func (g *Game) Rules() config.RuleConfig    { return g.rules }
func (g *Game) Points() [4]int              { return g.points }
func (g *Game) Dealer() int                 { return g.dealer }
func (g *Game) RoundWind() Wind             { return g.roundWind }
func (g *Game) HandNumber() int             { return g.hand + 1 }
func (g *Game) Honba() int                  { return g.honba }
func (g *Game) RiichiSticks() int           { return g.sticks }
func (g *Game) Reports() []EndOfRoundReport { return append([]EndOfRoundReport(nil), g.reports...) }
func (g *Game) Close()                      {}

// SetRecorder 在第一局开始前设置
func (g *Game) SetRecorder(rec Recorder) {
	g.recorder = rec
}

// NewRound 按当前庄家、场风、本场和供托开始新的一局
func (g *Game) NewRound() (*Round, error) {
	if g.state == engines.GameFinished {
		return nil, ErrGameFinished
	}
	g.state = engines.GameInProgress
	return NewRound(RoundOptions{
		Rules:        g.rules,
		Rng:          g.rng,
		Dealer:       g.dealer,
		RoundWind:    g.roundWind,
		Honba:        g.honba,
		RiichiSticks: g.sticks,
		Points:       g.points,
		Events:       g.events,
	}), nil
}

// Apply 接收一局的结算，推进庄家、本场和场风，并判断是否终局
func (g *Game) Apply(rep EndOfRoundReport) error {
	if g.state == engines.GameFinished {
		return ErrGameFinished
	}
	g.reports = append(g.reports, rep)
	for i := range g.points {
		g.points[i] = rep.Seats[i].Points
	}
	g.sticks = rep.RiichiSticks

	// 流局和庄家和牌积一本场，闲家和牌清零
	if rep.ExhaustiveDraw || !rep.DealerRotates {
		g.honba++
	} else {
		g.honba = 0
	}
	if rep.DealerRotates {
		g.dealer = (g.dealer + 1) % 4
		g.hand++
		if g.hand == 4 {
			g.hand = 0
			g.roundWind = g.roundWind.Next()
		}
	}

	if g.shouldFinish() {
		g.finish()
	}
	return nil
}

func (g *Game) shouldFinish() bool {
	for _, p := range g.points {
		if p < 0 {
			return true
		}
	}
	lastWind := WindSouth
	if g.rules.GameLength == config.GameLengthEast {
		lastWind = WindEast
	}
	if g.roundWind <= lastWind {
		return false
	}
	// 进入延长战：有人达到返点即结束，最多延长到西场
	_, top := g.leader()
	return top >= g.rules.ReturnPoints || g.roundWind > WindWest
}

// leader 点数最高的座位，同分时起家顺序靠前者优先
func (g *Game) leader() (int, int) {
	best := 0
	for i := 1; i < 4; i++ {
		if g.points[i] > g.points[best] {
			best = i
		}
	}
	return best, g.points[best]
}

func (g *Game) finish() {
	if g.sticks > 0 {
		seat, _ := g.leader()
		g.points[seat] += g.sticks * g.rules.RiichiCost
		log.Info("终局剩余供托 %d 本归第一名座位 %d", g.sticks, seat)
		g.sticks = 0
	}
	g.state = engines.GameFinished
}

func (g *Game) Result() GameResult {
	res := GameResult{Points: g.points, Rounds: len(g.reports)}
	seats := []int{0, 1, 2, 3}
	sort.SliceStable(seats, func(i, j int) bool {
		return g.points[seats[i]] > g.points[seats[j]]
	})
	copy(res.Ranking[:], seats)
	return res
}

// Run 自动打完整场；ctx 取消时返回错误，已经结算的局保留
func (g *Game) Run(ctx context.Context, policies [4]Policy) (GameResult, error) {
	for g.state != engines.GameFinished {
		r, err := g.NewRound()
		if err != nil {
			return GameResult{}, err
		}
		if g.recorder != nil {
			g.recorder.StartRound(g, r)
		}

		rep, err := g.Driver.PlayRound(ctx, r, policies)
		if err != nil {
			g.state = engines.GamePaused
			return g.Result(), fmt.Errorf("对局 %s 第 %d 局中断: %w", g.ID, len(g.reports)+1, err)
		}
		if err := g.Apply(rep); err != nil {
			return GameResult{}, err
		}
		if g.recorder != nil {
			g.recorder.CompleteRound(g, rep)
		}
	}

	res := g.Result()
	log.Info("对局结束: id=%s 局数=%d 点数=%v", g.ID, res.Rounds, res.Points)
	if g.recorder != nil {
		g.recorder.FinalizeGame(g, res)
	}
	return res, nil
}
