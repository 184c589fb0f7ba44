package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/rumble/internal/log"
)

// filler pads decks below the cards a test cares about.
var filler = &Card{Name: "Filler", Kind: KindCreature, Rarity: RarityCommon, Health: 1, Effect: EffectNone}

func vanillaCreature(name string, atk, hp int) *Card {
	return &Card{Name: name, Kind: KindCreature, Rarity: RarityCommon, Attack: atk, Health: hp, Effect: EffectNone}
}

func keywordCreature(name string, atk, hp int, effect EffectCode) *Card {
	c := vanillaCreature(name, atk, hp)
	c.Effect = effect
	return c
}

// card returns a definition from the built-in catalog.
func card(name string) *Card {
	return DefaultCatalog().MustCard(name)
}

// makePaddedDeck puts topCards on top of the deck (index 0 drawn first) and
// fills the rest with filler up to minSize.
func makePaddedDeck(topCards []*Card, minSize int) []*Card {
	deck := make([]*Card, 0, minSize)
	deck = append(deck, topCards...)
	for len(deck) < minSize {
		deck = append(deck, filler)
	}
	return deck
}

// testMatch is a deterministic match with P1 to act and its turn started.
type testMatch struct {
	*Engine
	t      *testing.T
	logger *log.MemoryLogger
	hook   *test.Hook
}

type matchOpt func(*MatchConfig)

func withHeroes(h0, h1 HeroID) matchOpt {
	return func(cfg *MatchConfig) {
		cfg.Players[0].Hero = h0
		cfg.Players[1].Hero = h1
	}
}

func withSeed(seed int64) matchOpt {
	return func(cfg *MatchConfig) { cfg.Seed = seed }
}

// newTestMatch builds a match where P1 opens with deck0[0:3] in hand and
// draws deck0[3] on turn 1; P2 opens with deck1[0:3].
func newTestMatch(t *testing.T, deck0, deck1 []*Card, opts ...matchOpt) *testMatch {
	t.Helper()
	diag, hook := test.NewNullLogger()
	diag.SetLevel(logrus.DebugLevel)
	logger := log.NewMemoryLogger()

	cfg := MatchConfig{
		Players: [2]PlayerConfig{
			{ID: "alice", Name: "Alice", Hero: heroRocketManiac, Deck: deck0},
			{ID: "bob", Name: "Bob", Hero: heroTankBrute, Deck: deck1},
		},
		Logger:      logger,
		Diag:        diag,
		Seed:        1,
		NoShuffle:   true,
		FirstPlayer: 1,
	}
	for _, o := range opts {
		o(&cfg)
	}

	e, err := NewMatch(cfg)
	require.NoError(t, err)
	require.True(t, e.StartTurn().Success)
	return &testMatch{Engine: e, t: t, logger: logger, hook: hook}
}

// must fails the test if r is a rejection.
func (m *testMatch) must(r Result) Result {
	m.t.Helper()
	if !r.Success {
		m.t.Logf("Match log:\n%s", log.FormatAll(m.State.Log))
	}
	require.True(m.t, r.Success, "unexpected rejection: %s", r.Message)
	return r
}

// inHand returns the first card with the given name in player's hand.
func (m *testMatch) inHand(player int, name string) *CardInstance {
	m.t.Helper()
	for _, c := range m.State.Players[player].Hand {
		if c.Name() == name {
			return c
		}
	}
	require.FailNow(m.t, "card not in hand", "%s not in %s's hand", name, log.PlayerName(player))
	return nil
}

// onBoard returns the first creature with the given name on player's board.
func (m *testMatch) onBoard(player int, name string) *CardInstance {
	m.t.Helper()
	for _, c := range m.State.Players[player].Creatures() {
		if c.Name() == name {
			return c
		}
	}
	require.FailNow(m.t, "creature not on board", "%s not on %s's board", name, log.PlayerName(player))
	return nil
}

// play plays a card from the active player's hand by name.
func (m *testMatch) play(name string, targetID string) Result {
	m.t.Helper()
	c := m.inHand(m.State.Active, name)
	return m.PlayCard(PlayRequest{CardID: c.ID, TargetID: targetID})
}

// draw performs the active player's draw.
func (m *testMatch) draw() {
	m.t.Helper()
	m.must(m.DrawCard())
}

// nextTurn ends the current turn and draws for the next player.
func (m *testMatch) nextTurn() {
	m.t.Helper()
	m.must(m.EndTurn())
	if !m.State.Over() {
		m.draw()
	}
}

// setBoard summons a creature directly, ready to attack unless sick.
func (m *testMatch) setBoard(player int, c *Card, ready bool) *CardInstance {
	m.t.Helper()
	p := m.State.Players[player]
	slot := p.FreeSlot()
	require.GreaterOrEqual(m.t, slot, 0, "board full")
	inst := m.State.NewInstance(c, player)
	p.PlaceCreature(inst, slot)
	inst.CanAttack = ready
	return inst
}

// warnings returns the diagnostic messages logged at Warn level.
func (m *testMatch) warnings() []string {
	var out []string
	for _, e := range m.hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			out = append(out, e.Message)
		}
	}
	return out
}
