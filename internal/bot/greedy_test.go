package bot

import (
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/rumble/internal/game"
	"github.com/peterkuimelis/rumble/internal/log"
	"github.com/peterkuimelis/rumble/internal/session"
)

func newMatch(t *testing.T, seed int64) (*session.Manager, string, *log.MemoryLogger) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	m := session.NewManager(session.Options{Logger: logger})
	cat := game.DefaultCatalog()
	rng := rand.New(rand.NewSource(seed))
	actions := log.NewMemoryLogger()
	id, err := m.Create(game.MatchConfig{
		Players: [2]game.PlayerConfig{
			{Name: "A", Hero: "rocket-maniac", Deck: game.StarterDeck(cat, rng, game.StarterDeckSize)},
			{Name: "B", Hero: "bio-healer", Deck: game.StarterDeck(cat, rng, game.StarterDeckSize)},
		},
		Logger:      actions,
		Seed:        seed,
		FirstPlayer: 1,
	})
	require.NoError(t, err)
	return m, id, actions
}

func TestTakeTurnPassesTheTurn(t *testing.T) {
	m, id, actions := newMatch(t, 5)
	a := &Greedy{Match: m, MatchID: id, Seat: 0}

	require.NoError(t, a.TakeTurn())
	state, err := m.Snapshot(id)
	require.NoError(t, err)
	if !state.Over() {
		assert.Equal(t, 2, state.Turn)
	}
	assert.NotEmpty(t, log.OfType(actions.Entries(), log.EntryDraw))
	assert.NotEmpty(t, log.OfType(actions.Entries(), log.EntryEndTurn))
	assert.LessOrEqual(t, len(log.OfType(actions.Entries(), log.EntryPlayCard)), 2)

	if !state.Over() && state.Active == 1 {
		assert.ErrorIs(t, a.TakeTurn(), ErrNotYourTurn)
	}
}

func TestPlayOutFinishes(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		m, id, actions := newMatch(t, seed)
		bots := [2]*Greedy{
			{Match: m, MatchID: id, Seat: 0},
			{Match: m, MatchID: id, Seat: 1},
		}
		over, err := PlayOut(bots, 100)
		require.NoError(t, err)
		if !assert.True(t, over, "seed %d", seed) {
			t.Log(log.FormatAll(actions.Entries()))
			continue
		}

		state, err := m.Snapshot(id)
		require.NoError(t, err)
		assert.NotEqual(t, game.NoWinner, state.Winner)
		assert.Len(t, log.OfType(actions.Entries(), log.EntryWin), 1)
	}
}
