package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/rumble/internal/log"
)

func TestNewMatchDealsOpeningHands(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 12))

	for i, p := range m.State.Players {
		assert.Equal(t, StartingHealth, p.Health, "player %d health", i)
		assert.Equal(t, StartingHealth, p.MaxHealth, "player %d max health", i)
		assert.Len(t, p.Hand, InitialHandSize, "player %d hand", i)
	}
	assert.Equal(t, 7, m.State.Players[0].DeckCount())
	assert.Equal(t, 9, m.State.Players[1].DeckCount())
	assert.Equal(t, 1, m.State.Turn)
	assert.Equal(t, 0, m.State.Active)
	assert.Equal(t, PhaseDraw, m.State.Phase)
	assert.Equal(t, NoWinner, m.State.Winner)
	assert.NotEmpty(t, m.State.ID)
}

func TestNewMatchRejectsBadConfig(t *testing.T) {
	good := makePaddedDeck(nil, 10)

	_, err := NewMatch(MatchConfig{Players: [2]PlayerConfig{
		{Hero: heroRocketManiac, Deck: good},
		{Hero: heroTankBrute, Deck: makePaddedDeck(nil, 2)},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient cards")

	_, err = NewMatch(MatchConfig{Players: [2]PlayerConfig{
		{Hero: "nobody", Deck: good},
		{Hero: heroTankBrute, Deck: good},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hero")
}

func TestFirstPlayerIsRandomWhenUnset(t *testing.T) {
	seen := map[int]bool{}
	for seed := int64(1); seed <= 32 && len(seen) < 2; seed++ {
		e, err := NewMatch(MatchConfig{
			Players: [2]PlayerConfig{
				{Hero: heroRocketManiac, Deck: makePaddedDeck(nil, 5)},
				{Hero: heroTankBrute, Deck: makePaddedDeck(nil, 5)},
			},
			Seed: seed,
		})
		require.NoError(t, err)
		seen[e.State.Active] = true
	}
	assert.Len(t, seen, 2, "both seats should go first for some seed")
}

// TestDrawTwiceRejected: the second draw of a turn fails with "already drawn".
func TestDrawTwiceRejected(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))

	m.draw()
	r := m.DrawCard()
	assert.False(t, r.Success)
	assert.Equal(t, MsgAlreadyDrawn, r.Message)
	assert.Len(t, m.State.Players[0].Hand, 4)

	r = m.SkipDraw()
	assert.False(t, r.Success)
	assert.Equal(t, MsgAlreadyDrawn, r.Message)

	// Next turn the draw is available again.
	m.nextTurn()
	assert.Len(t, m.State.Players[1].Hand, 4)
}

func TestSkipDrawThenDrawRejected(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))

	m.must(m.SkipDraw())
	assert.Equal(t, PhaseMain, m.State.Phase)
	r := m.DrawCard()
	assert.False(t, r.Success)
	assert.Equal(t, MsgDrawSkipped, r.Message)
	assert.Len(t, m.State.Players[0].Hand, 3)
	assert.Len(t, m.logger.EntriesOfType(log.EntrySkipDraw), 1)
}

func TestEndTurnWithoutDraw(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	p := m.State.Players[0]
	p.Deck = nil

	require.Equal(t, PhaseDraw, m.State.Phase)
	m.must(m.EndTurn())
	assert.False(t, m.State.Over(), "passing from the Draw phase never touches the deck")
	assert.Equal(t, 1, m.State.Active)
	assert.Len(t, p.Hand, 3)
	assert.Empty(t, m.logger.EntriesOfType(log.EntryDraw))

	// The empty deck only loses once its owner actually draws.
	m.nextTurn()
	assert.True(t, m.State.Over())
	assert.Equal(t, 1, m.State.Winner)
}

func TestActionsBeforeDrawRejected(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))

	r := m.play("Filler", "")
	assert.False(t, r.Success)
	assert.Equal(t, MsgNotMainPhase, r.Message)
	assert.Len(t, m.State.Players[0].Hand, 3)
}

// TestPlayCap: two plays per turn without skipping the draw.
func TestPlayCap(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	m.draw()

	m.must(m.play("Filler", ""))
	m.must(m.play("Filler", ""))
	r := m.play("Filler", "")
	assert.False(t, r.Success)
	assert.Equal(t, MsgPlayCap, r.Message)
	assert.Len(t, m.State.Players[0].Hand, 2)
	assert.Equal(t, 2, m.State.Players[0].CardsPlayedThisTurn)
}

// TestPlayCapAfterSkip: skipping the draw raises the cap to exactly 3.
func TestPlayCapAfterSkip(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	p := m.State.Players[0]
	p.Hand = append(p.Hand, m.State.NewInstance(filler, 0))

	m.must(m.SkipDraw())
	for i := 0; i < SkipDrawPlayCap; i++ {
		m.must(m.play("Filler", ""))
	}
	r := m.play("Filler", "")
	assert.False(t, r.Success)
	assert.Equal(t, MsgPlayCap, r.Message)
	assert.Equal(t, 3, p.CreatureCount())
}

// TestBoardCapacity: a sixth creature never fits.
func TestBoardCapacity(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	for i := 0; i < BoardSize; i++ {
		m.setBoard(0, vanillaCreature("Wall", 0, 1), false)
	}
	m.draw()

	r := m.play("Filler", "")
	assert.False(t, r.Success)
	assert.Equal(t, MsgBoardFull, r.Message)
	assert.Equal(t, BoardSize, m.State.Players[0].CreatureCount())
	assert.Len(t, m.State.Players[0].Hand, 4)
	assert.Equal(t, 0, m.State.Players[0].CardsPlayedThisTurn)
}

func TestCreatureSlotChoice(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	m.draw()
	p := m.State.Players[0]

	c := m.inHand(0, "Filler")
	m.must(m.PlayCard(PlayRequest{CardID: c.ID, Position: Slot(3)}))
	assert.Same(t, c, p.Board[3])
	assert.Equal(t, 3, c.Position)
	assert.False(t, c.CanAttack)

	c2 := m.inHand(0, "Filler")
	r := m.PlayCard(PlayRequest{CardID: c2.ID, Position: Slot(3)})
	assert.Equal(t, MsgSlotOccupied, r.Message)
	r = m.PlayCard(PlayRequest{CardID: c2.ID, Position: Slot(BoardSize)})
	assert.Equal(t, MsgInvalidSlot, r.Message)
	r = m.PlayCard(PlayRequest{CardID: "c999"})
	assert.Equal(t, MsgNotInHand, r.Message)

	// No position: first empty slot.
	m.must(m.PlayCard(PlayRequest{CardID: c2.ID}))
	assert.Same(t, c2, p.Board[0])
}

// TestCombatSymmetry: without First Strike both sides deal damage from
// pre-combat attack values.
func TestCombatSymmetry(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, vanillaCreature("Brawler", 3, 5), true)
	d := m.setBoard(1, vanillaCreature("Guard", 2, 4), false)
	m.draw()

	m.must(m.Attack(a.ID, d.ID))
	assert.Equal(t, 1, d.CurrentHealth)
	assert.Equal(t, 3, a.CurrentHealth)
	assert.False(t, a.CanAttack)

	r := m.Attack(a.ID, d.ID)
	assert.False(t, r.Success)
	assert.Equal(t, MsgNotReady, r.Message)
}

func TestCombatTradeDestroysBoth(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, card("Hull Breaker"), true)
	d := m.setBoard(1, card("Hull Breaker"), false)
	m.draw()

	m.must(m.Attack(a.ID, d.ID))
	for i, p := range m.State.Players {
		assert.Equal(t, 0, p.CreatureCount(), "player %d board", i)
		assert.Len(t, p.Graveyard, 1, "player %d graveyard", i)
	}
	assert.Equal(t, -1, a.Position)
	assert.Len(t, m.logger.EntriesOfType(log.EntryDestroy), 2)
}

// TestFirstStrikePrecedence: a lone First Strike attacker that kills takes no damage.
func TestFirstStrikePrecedence(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, card("Quickdraw Bandit"), true)
	d := m.setBoard(1, card("Hull Breaker"), false)
	m.draw()

	m.must(m.Attack(a.ID, d.ID))
	assert.Equal(t, 2, a.CurrentHealth)
	assert.Equal(t, 0, m.State.Players[1].CreatureCount())
	assert.Equal(t, 1, m.State.Players[0].CreatureCount())
}

func TestFirstStrikeSurvivorHitsBack(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, card("Quickdraw Bandit"), true)
	d := m.setBoard(1, card("Void Grunt"), false)
	m.draw()

	m.must(m.Attack(a.ID, d.ID))
	assert.Equal(t, 2, d.CurrentHealth)
	assert.Equal(t, 0, m.State.Players[0].CreatureCount())
}

func TestDefenderFirstStrike(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, card("Hull Breaker"), true)
	d := m.setBoard(1, card("Quickdraw Bandit"), false)
	m.draw()

	m.must(m.Attack(a.ID, d.ID))
	assert.Equal(t, 0, m.State.Players[0].CreatureCount())
	assert.Equal(t, 2, d.CurrentHealth)
}

func TestBothFirstStrikeIsSimultaneous(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, card("Quickdraw Bandit"), true)
	m.setBoard(1, card("Quickdraw Bandit"), false)
	m.draw()

	d := m.State.Players[1].Creatures()[0]
	m.must(m.Attack(a.ID, d.ID))
	assert.Equal(t, 0, m.State.Players[0].CreatureCount())
	assert.Equal(t, 0, m.State.Players[1].CreatureCount())
}

// TestTauntEnforcement: Taunt creatures must be attacked first.
func TestTauntEnforcement(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, card("Void Grunt"), true)
	drone := m.setBoard(1, card("Shield Drone"), false)
	rat := m.setBoard(1, card("Scrap Rat"), false)
	m.draw()

	r := m.Attack(a.ID, TargetEnemyHero)
	assert.False(t, r.Success)
	assert.Equal(t, MsgTauntBlocks, r.Message)
	r = m.Attack(a.ID, rat.ID)
	assert.Equal(t, MsgTauntBlocks, r.Message)
	assert.True(t, a.CanAttack, "rejected attack must not exhaust the attacker")
	assert.Equal(t, StartingHealth, m.State.Players[1].Health)

	m.must(m.Attack(a.ID, drone.ID))
	assert.Equal(t, 1, drone.CurrentHealth)
}

func TestEvasionIgnoresSmallTaunt(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	stalker := m.setBoard(0, card("Phase Stalker"), true)
	grunt := m.setBoard(0, card("Void Grunt"), true)
	m.setBoard(1, card("Shield Drone"), false)
	m.draw()

	r := m.Attack(grunt.ID, TargetEnemyHero)
	assert.Equal(t, MsgTauntBlocks, r.Message)
	m.must(m.Attack(stalker.ID, TargetEnemyHero))
	assert.Equal(t, StartingHealth-3, m.State.Players[1].Health)

	m.setBoard(1, keywordCreature("Heavy Wall", 3, 6, EffectTaunt), false)
	stalker.CanAttack = true
	r = m.Attack(stalker.ID, TargetEnemyHero)
	assert.Equal(t, MsgTauntBlocks, r.Message)
}

// TestWinCondition: hero at 0 ends the match and freezes it.
func TestWinCondition(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	a := m.setBoard(0, card("Hull Breaker"), true)
	b := m.setBoard(0, card("Scrap Rat"), true)
	m.State.Players[1].Health = 3
	m.draw()

	m.must(m.Attack(a.ID, TargetEnemyHero))
	assert.Equal(t, 0, m.State.Players[1].Health)
	assert.True(t, m.State.Over())
	assert.Equal(t, PhaseEnded, m.State.Phase)
	assert.Equal(t, 0, m.State.Winner)
	assert.Contains(t, m.State.Result, "Alice wins")

	for _, r := range []Result{
		m.Attack(b.ID, TargetEnemyHero),
		m.EndTurn(),
		m.DrawCard(),
		m.UseHeroPower(""),
		m.play("Filler", ""),
	} {
		assert.False(t, r.Success)
		assert.Equal(t, MsgGameOver, r.Message)
	}
	assert.Len(t, m.logger.EntriesOfType(log.EntryWin), 1)
}

func TestSpellDamageWinsMatch(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck([]*Card{card("Plasma Bolt")}, 10), makePaddedDeck(nil, 10))
	m.State.Players[1].Health = 2
	m.draw()

	m.must(m.play("Plasma Bolt", TargetEnemyHero))
	assert.Equal(t, 0, m.State.Winner)
	assert.True(t, m.State.Over())
}

// TestDeckOutLoss: drawing from an empty deck loses without adding a card.
func TestDeckOutLoss(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, InitialHandSize), makePaddedDeck(nil, 10))
	require.Equal(t, 0, m.State.Players[0].DeckCount())

	r := m.DrawCard()
	assert.True(t, r.Success)
	assert.Len(t, m.State.Players[0].Hand, InitialHandSize)
	assert.Equal(t, 1, m.State.Winner)
	assert.Equal(t, PhaseEnded, m.State.Phase)
	assert.Contains(t, m.State.Result, "empty deck")
}

func TestEndTurnPassesAndStartsNextTurn(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	mine := m.setBoard(0, card("Scrap Rat"), false)
	theirs := m.setBoard(1, card("Scrap Rat"), false)
	m.draw()

	m.must(m.EndTurn())
	assert.Equal(t, 2, m.State.Turn)
	assert.Equal(t, 1, m.State.Active)
	assert.Equal(t, PhaseDraw, m.State.Phase)
	assert.True(t, m.State.TurnStarted)
	assert.True(t, theirs.CanAttack)
	assert.False(t, mine.CanAttack)
	assert.Equal(t, 0, m.State.Players[1].CardsPlayedThisTurn)
	assert.Len(t, m.logger.EntriesOfType(log.EntryStartTurn), 2)

	r := m.StartTurn()
	assert.Equal(t, MsgTurnStarted, r.Message)
}

func TestExtraTurnKeepsActivePlayer(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck([]*Card{card("Time Warp")}, 10), makePaddedDeck(nil, 10))
	m.draw()

	m.must(m.play("Time Warp", ""))
	assert.True(t, m.State.ExtraTurn)
	m.must(m.EndTurn())
	assert.Equal(t, 0, m.State.Active)
	assert.Equal(t, 2, m.State.Turn)
	assert.False(t, m.State.ExtraTurn)

	m.nextTurn()
	assert.Equal(t, 1, m.State.Active)
}

func TestTempBuffRevertsAtEndOfTurn(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck([]*Card{card("Adrenaline Shot")}, 10), makePaddedDeck(nil, 10))
	rat := m.setBoard(0, card("Scrap Rat"), true)
	m.draw()

	m.must(m.play("Adrenaline Shot", rat.ID))
	assert.Equal(t, 4, rat.Attack)
	m.must(m.EndTurn())
	assert.Equal(t, 1, rat.Attack)
	assert.Empty(t, rat.TempBuffs)
}

func TestStunSkipsOwnersNextTurn(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck([]*Card{card("EMP Blast")}, 10), makePaddedDeck(nil, 10))
	target := m.setBoard(1, card("Hull Breaker"), true)
	m.draw()

	m.must(m.play("EMP Blast", target.ID))
	assert.True(t, target.Stunned)

	m.nextTurn()
	assert.False(t, target.CanAttack)
	assert.False(t, target.Stunned)
	r := m.Attack(target.ID, TargetEnemyHero)
	assert.Equal(t, MsgNotReady, r.Message)

	m.nextTurn()
	m.nextTurn()
	assert.True(t, target.CanAttack)
}

func TestTankBruteRampsAttack(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	rat := m.setBoard(1, card("Scrap Rat"), false)
	m.draw()

	m.nextTurn() // Bob's turn
	assert.Equal(t, 1, rat.Attack)
	m.must(m.EndTurn())
	assert.Equal(t, 2, rat.Attack)
}

func TestGetStateReturnsCopy(t *testing.T) {
	m := newTestMatch(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	rat := m.setBoard(0, card("Scrap Rat"), true)

	snap := m.GetState()
	snap.Players[0].Health = 1
	snap.Players[0].Board[rat.Position].Attack = 99
	snap.Players[0].Hand = nil

	assert.Equal(t, StartingHealth, m.State.Players[0].Health)
	assert.Equal(t, 1, rat.Attack)
	assert.Len(t, m.State.Players[0].Hand, 3)
}

// TestEndToEndScenario: summon, summoning sickness, turn pass, face attack.
func TestEndToEndScenario(t *testing.T) {
	deck0 := makePaddedDeck([]*Card{card("Hull Breaker")}, 12)
	deck1 := makePaddedDeck(nil, 12)
	m := newTestMatch(t, deck0, deck1)
	a, b := m.State.Players[0], m.State.Players[1]

	m.draw()
	handBefore := len(a.Hand)
	hb := m.inHand(0, "Hull Breaker")
	m.must(m.PlayCard(PlayRequest{CardID: hb.ID, Position: Slot(0)}))
	require.NotNil(t, a.Board[0])
	assert.Len(t, a.Hand, handBefore-1)

	r := m.Attack(hb.ID, TargetEnemyHero)
	assert.False(t, r.Success, "summoning sickness")

	m.nextTurn()
	assert.Equal(t, 1, m.State.Active)
	assert.False(t, hb.CanAttack, "A's creature is not readied on B's turn")

	m.nextTurn()
	m.nextTurn()
	m.nextTurn()
	require.Equal(t, 0, m.State.Active)
	require.Equal(t, 5, m.State.Turn)

	m.must(m.Attack(hb.ID, TargetEnemyHero))
	assert.Equal(t, StartingHealth-3, b.Health)

	attacks := m.logger.EntriesOfType(log.EntryAttack)
	require.Len(t, attacks, 1)
	assert.Equal(t, hb.ID, attacks[0].CardID)
	assert.Equal(t, TargetEnemyHero, attacks[0].TargetID)
	t.Logf("Match log:\n%s", log.FormatAll(m.State.Log))
}
