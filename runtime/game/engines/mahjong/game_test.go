package mahjong

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riichi/common/config"
	"riichi/runtime/game/engines"
)

func eastRules() config.RuleConfig {
	rules := config.DefaultRules()
	rules.GameLength = config.GameLengthEast
	return rules
}

func efficiencyPolicies(s *Searcher) [4]Policy {
	var ps [4]Policy
	for i := range ps {
		ps[i] = NewEfficiencyPolicy(s)
	}
	return ps
}

func report(points [4]int, rotates, draw bool, sticks int) EndOfRoundReport {
	rep := EndOfRoundReport{
		RonTarget:      -1,
		Liable:         -1,
		DealerRotates:  rotates,
		ExhaustiveDraw: draw,
		RiichiSticks:   sticks,
	}
	for i := range rep.Seats {
		rep.Seats[i] = SeatResult{Seat: i, Points: points[i]}
	}
	return rep
}

func TestGame_RunEastOnly(t *testing.T) {
	searcher := NewSearcher()
	defer searcher.Close()

	g := NewGame(GameOptions{Rules: eastRules(), Seed: 42})
	steps := 0
	g.Driver.OnStep = func(r *Round) {
		steps++
		if r.TileCount() != TileLimit {
			t.Fatalf("牌数不守恒: %d", r.TileCount())
		}
		if sumPoints(r) != 100000 {
			t.Fatalf("点数不守恒: %v 供托 %d", r.Points(), r.RiichiSticks())
		}
	}

	res, err := g.Run(context.Background(), efficiencyPolicies(searcher))
	require.NoError(t, err)
	assert.Equal(t, engines.GameFinished, g.State())
	assert.Positive(t, steps)
	assert.Positive(t, res.Rounds)
	assert.Len(t, g.Reports(), res.Rounds)
	assert.Zero(t, g.RiichiSticks(), "终局时供托归第一名")

	total := 0
	for _, p := range res.Points {
		total += p
	}
	assert.Equal(t, 100000, total)

	seen := map[int]bool{}
	for i, seat := range res.Ranking {
		seen[seat] = true
		if i > 0 {
			assert.GreaterOrEqual(t, res.Points[res.Ranking[i-1]], res.Points[seat])
		}
	}
	assert.Len(t, seen, 4)

	_, err = g.NewRound()
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestGame_SameSeedSameResult(t *testing.T) {
	searcher := NewSearcher()
	defer searcher.Close()

	run := func() GameResult {
		g := NewGame(GameOptions{Rules: eastRules(), Seed: 20240601})
		res, err := g.Run(context.Background(), efficiencyPolicies(searcher))
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
}

func TestGame_CancelPauses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGame(GameOptions{Rules: eastRules(), Seed: 1})
	_, err := g.Run(ctx, efficiencyPolicies(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, engines.GamePaused, g.State())
	assert.Empty(t, g.Reports())
}

func TestGame_ApplyRotation(t *testing.T) {
	g := NewGame(GameOptions{Rules: eastRules(), Seed: 1})
	even := [4]int{25000, 25000, 25000, 25000}

	// 庄家和牌：连庄，积一本场
	require.NoError(t, g.Apply(report(even, false, false, 0)))
	assert.Equal(t, 0, g.Dealer())
	assert.Equal(t, 1, g.Honba())

	// 流局庄家不听：轮庄但本场继续累积
	require.NoError(t, g.Apply(report(even, true, true, 0)))
	assert.Equal(t, 1, g.Dealer())
	assert.Equal(t, 2, g.HandNumber())
	assert.Equal(t, 2, g.Honba())

	// 闲家和牌：本场清零
	require.NoError(t, g.Apply(report(even, true, false, 0)))
	assert.Equal(t, 2, g.Dealer())
	assert.Zero(t, g.Honba())

	require.NoError(t, g.Apply(report(even, true, false, 0)))
	require.NoError(t, g.Apply(report(even, true, false, 0)))
	// 东4结束没有人到 30000 点，进入南场延长
	assert.Equal(t, WindSouth, g.RoundWind())
	assert.Equal(t, 0, g.Dealer())
	assert.NotEqual(t, engines.GameFinished, g.State())

	require.NoError(t, g.Apply(report([4]int{23000, 31000, 25000, 20000}, true, false, 1)))
	assert.Equal(t, engines.GameFinished, g.State())
	assert.Equal(t, [4]int{23000, 32000, 25000, 20000}, g.Points(), "剩余供托归第一名")

	res := g.Result()
	assert.Equal(t, [4]int{1, 2, 0, 3}, res.Ranking)
	assert.Equal(t, 6, res.Rounds)
	assert.ErrorIs(t, g.Apply(report(even, true, false, 0)), ErrGameFinished)
}

func TestGame_BustEndsGame(t *testing.T) {
	g := NewGame(GameOptions{Rules: config.DefaultRules(), Seed: 1})
	require.NoError(t, g.Apply(report([4]int{-1000, 51000, 25000, 25000}, true, false, 0)))
	assert.Equal(t, engines.GameFinished, g.State())
	assert.Equal(t, [4]int{1, 2, 3, 0}, g.Result().Ranking)
}

func TestGame_TiedRankingKeepsSeatOrder(t *testing.T) {
	g := NewGame(GameOptions{Rules: config.DefaultRules(), Seed: 1})
	require.NoError(t, g.Apply(report([4]int{20000, 30000, 30000, 20000}, true, false, 0)))
	assert.Equal(t, [4]int{1, 2, 0, 3}, g.Result().Ranking)
}
