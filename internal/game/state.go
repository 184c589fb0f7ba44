package game

import (
	"fmt"
	"math/rand"

	"github.com/peterkuimelis/rumble/internal/log"
)

const (
	StartingHealth  = 20
	InitialHandSize = 3
	BoardSize       = 5
	BasePlayCap     = 2
	SkipDrawPlayCap = 3

	// NoWinner is the Winner value of a match still in progress.
	NoWinner = -1
)

// Player represents one player's entire state.
type Player struct {
	ID        string
	Name      string
	Hero      *Hero
	Health    int
	MaxHealth int

	Hand      []*CardInstance // in draw order
	Deck      []*CardInstance // top of deck is index 0
	Board     [BoardSize]*CardInstance
	Graveyard []*CardInstance
	Traps     []*CardInstance // in the order they were set

	CardsPlayedThisTurn int
	HasDrawn            bool
	SkippedDraw         bool
	PowerUsedThisTurn   bool
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// DrawCard removes the top card from the deck and adds it to the hand.
// Returns nil if the deck is empty.
func (p *Player) DrawCard() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[0]
	p.Deck = p.Deck[1:]
	p.Hand = append(p.Hand, card)
	return card
}

// FindInHand returns the hand card with the given instance ID.
func (p *Player) FindInHand(id string) *CardInstance {
	for _, c := range p.Hand {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *Player) RemoveFromHand(card *CardInstance) {
	for i, c := range p.Hand {
		if c.ID == card.ID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

// SendToGraveyard moves a card to the graveyard.
func (p *Player) SendToGraveyard(card *CardInstance) {
	card.Equipment = nil
	card.AttachedTo = nil
	p.Graveyard = append(p.Graveyard, card)
}

// FreeSlot returns the index of the first empty board slot, or -1.
func (p *Player) FreeSlot() int {
	for i, z := range p.Board {
		if z == nil {
			return i
		}
	}
	return -1
}

// CreatureCount returns the number of creatures on the board.
func (p *Player) CreatureCount() int {
	count := 0
	for _, z := range p.Board {
		if z != nil {
			count++
		}
	}
	return count
}

// Creatures returns all creatures on the board in slot order.
func (p *Player) Creatures() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.Board {
		if z != nil {
			result = append(result, z)
		}
	}
	return result
}

// FindCreature returns the board creature with the given instance ID.
func (p *Player) FindCreature(id string) *CardInstance {
	for _, z := range p.Board {
		if z != nil && z.ID == id {
			return z
		}
	}
	return nil
}

// PlaceCreature puts a creature into the given slot.
func (p *Player) PlaceCreature(card *CardInstance, slot int) {
	p.Board[slot] = card
	card.Position = slot
}

// RemoveCreature clears the creature's slot.
func (p *Player) RemoveCreature(card *CardInstance) {
	for i, z := range p.Board {
		if z != nil && z.ID == card.ID {
			p.Board[i] = nil
			return
		}
	}
}

// RemoveTrap removes a trap from the trap zone.
func (p *Player) RemoveTrap(card *CardInstance) {
	for i, t := range p.Traps {
		if t.ID == card.ID {
			p.Traps = append(p.Traps[:i], p.Traps[i+1:]...)
			return
		}
	}
}

// PlayCap is the number of cards the player may play this turn.
func (p *Player) PlayCap() int {
	if p.SkippedDraw {
		return SkipDrawPlayCap
	}
	return BasePlayCap
}

// ShuffleDeck randomizes the deck order.
func (p *Player) ShuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// resetTurnCounters clears per-turn counters.
func (p *Player) resetTurnCounters() {
	p.CardsPlayedThisTurn = 0
	p.HasDrawn = false
	p.SkippedDraw = false
	p.PowerUsedThisTurn = false
}

// --- MatchState ---

// MatchState holds the complete state of a match.
type MatchState struct {
	ID      string
	Players [2]*Player
	Turn    int // 1-based turn counter
	Active  int // 0 or 1: whose turn it is
	Phase   Phase

	TurnStarted bool
	ExtraTurn   bool

	Log []log.Entry

	// ID counter for card instances
	nextID int

	Winner int // 0, 1, or NoWinner
	Result string
}

// NewMatchState creates a fresh match state with two empty players.
func NewMatchState(id string) *MatchState {
	return &MatchState{
		ID: id,
		Players: [2]*Player{
			{Health: StartingHealth, MaxHealth: StartingHealth},
			{Health: StartingHealth, MaxHealth: StartingHealth},
		},
		Turn:   1,
		Phase:  PhaseDraw,
		Winner: NoWinner,
	}
}

// NextID generates a unique card instance ID.
func (gs *MatchState) NextID() string {
	gs.nextID++
	return fmt.Sprintf("c%d", gs.nextID)
}

// Opponent returns the index of the other player.
func (gs *MatchState) Opponent(player int) int {
	return 1 - player
}

// ActivePlayer returns the Player whose turn it is.
func (gs *MatchState) ActivePlayer() *Player {
	return gs.Players[gs.Active]
}

// OpponentPlayer returns the Player who is not active.
func (gs *MatchState) OpponentPlayer() *Player {
	return gs.Players[gs.Opponent(gs.Active)]
}

// Over reports whether the match has terminated.
func (gs *MatchState) Over() bool {
	return gs.Phase == PhaseEnded
}

// FindCreature locates a board creature on either side.
// Returns the creature and its owner index, or nil and -1.
func (gs *MatchState) FindCreature(id string) (*CardInstance, int) {
	for p := 0; p < 2; p++ {
		if c := gs.Players[p].FindCreature(id); c != nil {
			return c, p
		}
	}
	return nil, -1
}

// NewInstance creates a CardInstance from a Card definition for the given owner.
func (gs *MatchState) NewInstance(card *Card, owner int) *CardInstance {
	ci := &CardInstance{
		Card:  card,
		ID:    gs.NextID(),
		Owner: owner,
	}
	if card.Kind == KindCreature {
		ci.resetCreature()
	}
	return ci
}

// Clone returns a deep copy of the state. Card definitions are shared.
func (gs *MatchState) Clone() *MatchState {
	out := *gs
	seen := make(map[*CardInstance]*CardInstance)
	for i, p := range gs.Players {
		out.Players[i] = p.clone(seen)
	}
	out.Log = make([]log.Entry, len(gs.Log))
	copy(out.Log, gs.Log)
	return &out
}

func (p *Player) clone(seen map[*CardInstance]*CardInstance) *Player {
	out := *p
	out.Hand = cloneInstances(p.Hand, seen)
	out.Deck = cloneInstances(p.Deck, seen)
	out.Graveyard = cloneInstances(p.Graveyard, seen)
	out.Traps = cloneInstances(p.Traps, seen)
	for i, c := range p.Board {
		if c != nil {
			out.Board[i] = cloneInstance(c, seen)
		}
	}
	return &out
}

func cloneInstances(src []*CardInstance, seen map[*CardInstance]*CardInstance) []*CardInstance {
	if src == nil {
		return nil
	}
	out := make([]*CardInstance, len(src))
	for i, c := range src {
		out[i] = cloneInstance(c, seen)
	}
	return out
}

func cloneInstance(c *CardInstance, seen map[*CardInstance]*CardInstance) *CardInstance {
	if cp, ok := seen[c]; ok {
		return cp
	}
	cp := *c
	cp.TempBuffs = append([]TempBuff(nil), c.TempBuffs...)
	seen[c] = &cp
	if c.Equipment != nil {
		cp.Equipment = cloneInstance(c.Equipment, seen)
	}
	if c.AttachedTo != nil {
		cp.AttachedTo = cloneInstance(c.AttachedTo, seen)
	}
	return &cp
}
