package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/rumble/internal/log"
)

// Rejection messages returned in Result.Message.
const (
	MsgGameOver         = "game already ended"
	MsgNotYourTurn      = "not your turn"
	MsgTurnStarted      = "turn already started"
	MsgTurnNotStarted   = "turn has not started"
	MsgAlreadyDrawn     = "already drawn this turn"
	MsgDrawSkipped      = "draw already skipped this turn"
	MsgNotDrawPhase     = "not in draw phase"
	MsgNotMainPhase     = "not in main phase"
	MsgPlayCap          = "card play limit reached this turn"
	MsgNotInHand        = "card not in hand"
	MsgBoardFull        = "board is full"
	MsgSlotOccupied     = "board slot is occupied"
	MsgInvalidSlot      = "invalid board slot"
	MsgInvalidTarget    = "invalid target"
	MsgTargetRequired   = "target required"
	MsgSpellImmune      = "target is immune to spells"
	MsgAlreadyEquipped  = "creature already has equipment"
	MsgPowerUsed        = "hero power already used this turn"
	MsgAttackerNotFound = "attacker not found"
	MsgNotReady         = "creature cannot attack yet"
	MsgStunned          = "creature is stunned"
	MsgTauntBlocks      = "a creature with taunt must be attacked first"
	MsgUnknownAction    = "unknown action"
)

// Target sentinels accepted wherever a target id is expected.
const (
	TargetEnemyHero = "hero"
	TargetOwnHero   = "own-hero"
)

// Result is the outcome of every mutating engine call.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(msg string) Result {
	return Result{Success: true, Message: msg}
}

func fail(msg string) Result {
	return Result{Message: msg}
}

// PlayerConfig describes one seat of a new match.
type PlayerConfig struct {
	ID   string
	Name string
	Hero HeroID
	Deck []*Card
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	ID          string // generated if empty
	Players     [2]PlayerConfig
	Catalog     *Catalog  // DefaultCatalog() if nil
	Registry    *Registry // DefaultRegistry() if nil
	Logger      log.EventLogger
	Diag        *logrus.Logger // diagnostics; logrus.StandardLogger() if nil
	Seed        int64          // RNG seed (0 for random)
	NoShuffle   bool           // skip deck shuffle (for deterministic tests)
	FirstPlayer int            // 1 or 2 fixes the first seat; 0 picks at random
	Now         func() time.Time
}

// Engine runs one match. It has no internal locking; callers must serialize
// operations on the same Engine.
type Engine struct {
	State    *MatchState
	Registry *Registry
	Catalog  *Catalog
	Logger   log.EventLogger

	diag *logrus.Entry
	rng  *rand.Rand
	now  func() time.Time
}

// NewMatch builds a fresh match: decks instantiated and shuffled, opening
// hands dealt, first player chosen. The first turn still has to be started
// with StartTurn.
func NewMatch(cfg MatchConfig) (*Engine, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	gs := NewMatchState(cfg.ID)
	e := NewEngine(gs, cfg)

	for i, pc := range cfg.Players {
		hero, found := e.Catalog.Hero(pc.Hero)
		if !found {
			return nil, fmt.Errorf("player %d: unknown hero %q", i+1, pc.Hero)
		}
		if len(pc.Deck) < InitialHandSize {
			return nil, fmt.Errorf("player %d has insufficient cards for initial hand (%d)", i+1, len(pc.Deck))
		}
		p := gs.Players[i]
		p.ID = pc.ID
		if p.ID == "" {
			p.ID = fmt.Sprintf("player%d", i+1)
		}
		p.Name = pc.Name
		if p.Name == "" {
			p.Name = p.ID
		}
		p.Hero = hero
		for _, card := range pc.Deck {
			p.Deck = append(p.Deck, gs.NewInstance(card, i))
		}
		if !cfg.NoShuffle {
			p.ShuffleDeck(e.rng)
		}
		for j := 0; j < InitialHandSize; j++ {
			p.DrawCard()
		}
	}

	switch cfg.FirstPlayer {
	case 1:
		gs.Active = 0
	case 2:
		gs.Active = 1
	default:
		gs.Active = e.rng.Intn(2)
	}

	e.diag.WithFields(logrus.Fields{
		"p1":    gs.Players[0].Hero.ID,
		"p2":    gs.Players[1].Hero.ID,
		"first": log.PlayerName(gs.Active),
	}).Debug("match created")
	return e, nil
}

// NewEngine wraps an existing state. Only the Catalog, Registry, Logger,
// Diag, Seed and Now fields of cfg are used.
func NewEngine(state *MatchState, cfg MatchConfig) *Engine {
	cat := cfg.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	diag := cfg.Diag
	if diag == nil {
		diag = logrus.StandardLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		State:    state,
		Registry: reg,
		Catalog:  cat,
		Logger:   logger,
		diag:     diag.WithField("match", state.ID),
		rng:      rand.New(rand.NewSource(seed)),
		now:      now,
	}
}

// GetState returns a deep copy of the current match state.
func (e *Engine) GetState() *MatchState {
	return e.State.Clone()
}

// log appends an entry to the match log and forwards it to the sink.
func (e *Engine) log(entry log.Entry) {
	gs := e.State
	entry.Seq = len(gs.Log) + 1
	entry.Time = e.now()
	gs.Log = append(gs.Log, entry)
	if e.Logger != nil {
		e.Logger.Log(entry)
	}
}

func (e *Engine) phase() string {
	return e.State.Phase.String()
}

// --- Turn structure ---

// StartTurn resets the active player's turn counters and readies their
// creatures. Stunned creatures lose the stun but stay unready for this turn.
func (e *Engine) StartTurn() Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if gs.TurnStarted {
		return fail(MsgTurnStarted)
	}

	p := gs.ActivePlayer()
	p.resetTurnCounters()
	for _, c := range p.Creatures() {
		c.CanAttack = !c.Stunned
		c.Stunned = false
	}
	gs.Phase = PhaseDraw
	gs.TurnStarted = true

	e.log(log.NewTurnEntry(gs.Turn, e.phase(), gs.Active))
	return ok(fmt.Sprintf("turn %d started for %s", gs.Turn, p.Name))
}

// DrawCard performs the turn's draw. Drawing from an empty deck loses the match.
func (e *Engine) DrawCard() Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if !gs.TurnStarted {
		return fail(MsgTurnNotStarted)
	}
	p := gs.ActivePlayer()
	if p.HasDrawn {
		return fail(MsgAlreadyDrawn)
	}
	if p.SkippedDraw {
		return fail(MsgDrawSkipped)
	}
	if gs.Phase != PhaseDraw {
		return fail(MsgNotDrawPhase)
	}

	card := p.DrawCard()
	if card == nil {
		e.log(log.NewDeckOutEntry(gs.Turn, e.phase(), gs.Active))
		e.endMatch(gs.Opponent(gs.Active), fmt.Sprintf("%s drew from an empty deck", p.Name))
		return ok("deck is empty: " + gs.Result)
	}
	p.HasDrawn = true
	gs.Phase = PhaseMain
	e.log(log.NewDrawEntry(gs.Turn, e.phase(), gs.Active, card.ID, card.Name()))
	return ok("drew " + card.Name())
}

// SkipDraw forgoes the turn's draw in exchange for a third card play.
func (e *Engine) SkipDraw() Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if !gs.TurnStarted {
		return fail(MsgTurnNotStarted)
	}
	p := gs.ActivePlayer()
	if p.HasDrawn {
		return fail(MsgAlreadyDrawn)
	}
	if p.SkippedDraw {
		return fail(MsgDrawSkipped)
	}
	if gs.Phase != PhaseDraw {
		return fail(MsgNotDrawPhase)
	}

	p.SkippedDraw = true
	gs.Phase = PhaseMain
	e.log(log.NewSkipDrawEntry(gs.Turn, e.phase(), gs.Active))
	return ok(fmt.Sprintf("draw skipped: %d plays this turn", p.PlayCap()))
}

// EndTurn runs end-of-turn upkeep, passes the turn and starts the next one.
// It is accepted from the Draw phase too: a turn may pass with no draw.
func (e *Engine) EndTurn() Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if !gs.TurnStarted {
		return fail(MsgTurnNotStarted)
	}

	ending := gs.Active
	e.log(log.NewEndTurnEntry(gs.Turn, e.phase(), ending))

	e.revertTempBuffs()
	e.endOfTurnTriggers(ending)
	if gs.Over() {
		return ok("turn ended: " + gs.Result)
	}

	next := gs.Opponent(ending)
	if gs.ExtraTurn {
		next = ending
		gs.ExtraTurn = false
	}
	gs.Active = next
	gs.Turn++
	gs.Phase = PhaseDraw
	gs.TurnStarted = false

	e.StartTurn()
	return ok(fmt.Sprintf("turn %d: %s to play", gs.Turn, gs.ActivePlayer().Name))
}

// revertTempBuffs removes this turn's temporary buffs from every creature.
func (e *Engine) revertTempBuffs() {
	for _, c := range append(e.State.Players[0].Creatures(), e.State.Players[1].Creatures()...) {
		for _, b := range c.TempBuffs {
			c.Attack -= b.Attack
			if c.Attack < 0 {
				c.Attack = 0
			}
			c.Health -= b.Health
			if c.CurrentHealth > c.Health {
				c.CurrentHealth = c.Health
			}
		}
		c.TempBuffs = nil
	}
}

// endOfTurnTriggers fires burn on both boards, then the ending player's
// hero and creature upkeep.
func (e *Engine) endOfTurnTriggers(player int) {
	gs := e.State
	p := gs.Players[player]

	for i := 0; i < 2; i++ {
		for _, c := range gs.Players[i].Creatures() {
			if c.Burn > 0 {
				e.damageCreature(c, c.Burn)
				e.log(log.NewEffectEntry(gs.Turn, e.phase(), c.Owner, c.ID, c.Name(),
					fmt.Sprintf("%s burns for %d", c.Name(), c.Burn)))
			}
		}
	}
	e.cleanup("burn")

	if p.Hero != nil && p.Hero.ID == heroTankBrute {
		for _, c := range p.Creatures() {
			c.Attack++
		}
	}

	for _, c := range p.Creatures() {
		if c.HasKeyword(KeywordRegenerate) {
			e.healCreature(c, 2)
		}
	}

	for _, c := range p.Creatures() {
		if c.Card.Effect == EffectTurret && !gs.Over() {
			e.turretShot(c)
		}
	}
}

// turretShot deals 1 damage to a random enemy creature or the enemy hero.
func (e *Engine) turretShot(turret *CardInstance) {
	gs := e.State
	opp := gs.Opponent(turret.Owner)
	enemies := gs.Players[opp].Creatures()
	pick := e.rng.Intn(len(enemies) + 1)
	if pick == len(enemies) {
		e.damageHero(opp, 1, turret.Name())
		return
	}
	e.damageCreature(enemies[pick], 1)
	e.log(log.NewEffectEntry(gs.Turn, e.phase(), turret.Owner, turret.ID, turret.Name(),
		fmt.Sprintf("%s shoots %s for 1", turret.Name(), enemies[pick].Name())))
	e.cleanup(turret.Name())
}

// endMatch freezes the match with the given winner.
func (e *Engine) endMatch(winner int, reason string) {
	gs := e.State
	if gs.Over() {
		return
	}
	gs.Winner = winner
	gs.Phase = PhaseEnded
	gs.Result = fmt.Sprintf("%s wins: %s", gs.Players[winner].Name, reason)
	e.log(log.NewWinEntry(gs.Turn, e.phase(), winner, reason))
	e.diag.WithFields(logrus.Fields{
		"winner": gs.Players[winner].ID,
		"turn":   gs.Turn,
	}).Info("match ended")
}
