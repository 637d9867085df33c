package mahjong

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"riichi/core/domain/entity"
	"riichi/core/domain/repository"
)

// memoryRepo 内存仓储，只用于测试
type memoryRepo struct {
	games  map[primitive.ObjectID]*entity.GameRecord
	rounds map[primitive.ObjectID][]*entity.RoundRecord
	err    error
}

var _ repository.GameRecordRepository = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		games:  map[primitive.ObjectID]*entity.GameRecord{},
		rounds: map[primitive.ObjectID][]*entity.RoundRecord{},
	}
}

func (m *memoryRepo) SaveGameRecord(_ context.Context, record *entity.GameRecord) error {
	if m.err != nil {
		return m.err
	}
	m.games[record.ID] = record
	return nil
}

func (m *memoryRepo) FindGameRecord(_ context.Context, id primitive.ObjectID) (*entity.GameRecord, error) {
	gr, ok := m.games[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	return gr, nil
}

func (m *memoryRepo) FindGameRecordsBySeed(_ context.Context, seed int64, limit int) ([]*entity.GameRecord, error) {
	var out []*entity.GameRecord
	for _, gr := range m.games {
		if gr.Seed == seed && len(out) < limit {
			out = append(out, gr)
		}
	}
	return out, nil
}

func (m *memoryRepo) SaveRoundRecords(_ context.Context, rounds []*entity.RoundRecord) error {
	if m.err != nil {
		return m.err
	}
	for _, rr := range rounds {
		m.rounds[rr.GameRecordID] = append(m.rounds[rr.GameRecordID], rr)
	}
	return nil
}

func (m *memoryRepo) FindRoundRecords(_ context.Context, id primitive.ObjectID) ([]*entity.RoundRecord, error) {
	return m.rounds[id], nil
}

func TestGamePersister_SavesWholeGame(t *testing.T) {
	searcher := NewSearcher()
	defer searcher.Close()

	repo := newMemoryRepo()
	policies := efficiencyPolicies(searcher)
	g := NewGame(GameOptions{Rules: eastRules(), Seed: 7})
	gp := NewGamePersister(repo, g, policies)
	g.SetRecorder(gp)

	res, err := g.Run(context.Background(), policies)
	require.NoError(t, err)

	ctx := context.Background()
	gr, err := repo.FindGameRecord(ctx, gp.GetGameRecordID())
	require.NoError(t, err)
	assert.Equal(t, entity.GameStatusCompleted, gr.Status)
	assert.Equal(t, g.GameID(), gr.GameID)
	assert.Equal(t, int64(7), gr.Seed)
	assert.Equal(t, res.Rounds, gr.Rounds)
	require.NotNil(t, gr.FinalResult)
	assert.Equal(t, res.Points, gr.FinalResult.Points)
	require.Len(t, gr.FinalResult.Rankings, 4)
	assert.Equal(t, res.Ranking[0], gr.FinalResult.Rankings[0].SeatIndex)
	assert.Equal(t, 1, gr.FinalResult.Rankings[0].Rank)
	assert.Equal(t, "efficiency", gr.Players[2].Policy)

	rounds, err := repo.FindRoundRecords(ctx, gr.ID)
	require.NoError(t, err)
	require.Len(t, rounds, res.Rounds)
	reports := g.Reports()
	for i, rr := range rounds {
		assert.Equal(t, i+1, rr.RoundNumber)
		assert.Equal(t, reports[i].RoundID.String(), rr.RoundID)
		require.NotNil(t, rr.RoundResult)
		assert.Equal(t, reports[i].Deltas(), rr.RoundResult.Delta)
		assert.Contains(t, []string{
			entity.EndTypeRon, entity.EndTypeTsumo, entity.EndTypeDrawExhaustive, entity.EndTypeNagashi,
		}, rr.RoundResult.EndType)
		require.NotEmpty(t, rr.Events)
		assert.Equal(t, entity.EventTypeRoundStart, rr.Events[0].EventType)
		assert.Equal(t, entity.EventTypeRoundEnd, rr.Events[len(rr.Events)-1].EventType)
		assert.Len(t, rr.RoundResult.Claims, len(reports[i].Winners))
	}

	found, err := repo.FindGameRecordsBySeed(ctx, 7, 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	// 终局后的回调不再生效
	gp.FinalizeGame(g, res)
	assert.Len(t, repo.rounds[gr.ID], res.Rounds)
}

func TestGamePersister_FlushError(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = repository.ErrStorage
	g := NewGame(GameOptions{Rules: eastRules(), Seed: 3})
	gp := NewGamePersister(repo, g, [4]Policy{})

	err := gp.Flush(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrStorage))

	// 写入失败只记录日志，不影响对局
	gp.FinalizeGame(g, g.Result())
	_, err = repo.FindGameRecord(context.Background(), gp.GetGameRecordID())
	assert.ErrorIs(t, err, repository.ErrNoRecord)
}
