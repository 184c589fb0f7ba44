package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/rumble/internal/log"
)

// PlayRequest is the argument of PlayCard.
type PlayRequest struct {
	CardID   string
	Position *int   // board slot for creatures; nil picks the first empty slot
	TargetID string // creature id, TargetEnemyHero or TargetOwnHero
}

// Slot returns a pointer to i, for PlayRequest.Position.
func Slot(i int) *int {
	return &i
}

// target is a resolved target id.
type target struct {
	creature *CardInstance
	hero     bool
	player   int // owner of the creature, or the targeted hero's player
}

func (t target) present() bool {
	return t.creature != nil || t.hero
}

// resolveTarget turns a target id into a board creature or a hero.
// An empty id resolves to no target.
func (e *Engine) resolveTarget(player int, id string) (target, bool) {
	gs := e.State
	switch id {
	case "":
		return target{player: gs.Opponent(player)}, true
	case TargetEnemyHero:
		return target{hero: true, player: gs.Opponent(player)}, true
	case TargetOwnHero:
		return target{hero: true, player: player}, true
	}
	c, owner := gs.FindCreature(id)
	if c == nil {
		return target{}, false
	}
	return target{creature: c, player: owner}, true
}

// checkTargeting returns a rejection message if t doesn't satisfy tg.
func checkTargeting(tg Targeting, t target) string {
	switch tg {
	case TargetCreature:
		if t.creature == nil {
			if t.hero {
				return MsgInvalidTarget
			}
			return MsgTargetRequired
		}
	case TargetCreatureOrHero:
		if !t.present() {
			return MsgTargetRequired
		}
	}
	return ""
}

func (e *Engine) effectContext(source *CardInstance, player int, t target) EffectContext {
	ctx := EffectContext{
		Source:       source,
		Target:       t.creature,
		TargetHero:   t.hero,
		TargetPlayer: t.player,
		Player:       player,
	}
	if h := e.State.Players[player].Hero; h != nil {
		ctx.Hero = h.ID
	}
	return ctx
}

// PlayCard plays a card from the active player's hand.
func (e *Engine) PlayCard(req PlayRequest) Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if gs.Phase != PhaseMain {
		return fail(MsgNotMainPhase)
	}
	p := gs.ActivePlayer()
	if p.CardsPlayedThisTurn >= p.PlayCap() {
		return fail(MsgPlayCap)
	}
	card := p.FindInHand(req.CardID)
	if card == nil {
		return fail(MsgNotInHand)
	}

	switch card.Card.Kind {
	case KindCreature:
		return e.playCreature(card, req)
	case KindSpell:
		return e.playSpell(card, req.TargetID)
	case KindEquipment:
		return e.playEquipment(card, req.TargetID)
	case KindTrap:
		return e.playTrap(card)
	}
	e.diag.WithField("card", card.Name()).Warn("card has no playable kind")
	return fail(fmt.Sprintf("%s cannot be played", card.Name()))
}

// consume takes a played card out of hand and counts the play.
func (e *Engine) consume(card *CardInstance) {
	p := e.State.Players[card.Owner]
	p.RemoveFromHand(card)
	p.CardsPlayedThisTurn++
}

func (e *Engine) playCreature(card *CardInstance, req PlayRequest) Result {
	gs := e.State
	player := gs.Active
	p := gs.Players[player]

	slot := p.FreeSlot()
	if slot < 0 {
		return fail(MsgBoardFull)
	}
	if req.Position != nil {
		slot = *req.Position
		if slot < 0 || slot >= BoardSize {
			return fail(MsgInvalidSlot)
		}
		if p.Board[slot] != nil {
			return fail(MsgSlotOccupied)
		}
	}

	e.consume(card)
	card.resetCreature()
	p.PlaceCreature(card, slot)
	e.log(log.NewPlayCardEntry(gs.Turn, e.phase(), player, card.ID, card.Name(), req.TargetID,
		fmt.Sprintf("summoned to slot %d", slot)))
	msg := fmt.Sprintf("summoned %s to slot %d", card.Name(), slot)

	if trap := e.springTrap(gs.Opponent(player), TriggerOpponentSummon, card); trap != nil {
		msg += "; " + trap.Message
		if trap.Cancel {
			return ok(msg)
		}
	}
	if p.FindCreature(card.ID) == nil || gs.Over() {
		return ok(msg)
	}

	ctx := e.effectContext(card, player, target{player: gs.Opponent(player)})
	code := card.Card.EffectFor(ctx.Hero)
	if def, known := e.Registry.Lookup(code, ctx.Hero); known && def.Timing != TimingOnSummon {
		return ok(msg)
	}
	t, found := e.resolveTarget(player, req.TargetID)
	if !found {
		return ok(msg + "; on-summon effect: " + MsgInvalidTarget)
	}
	ctx = e.effectContext(card, player, t)
	res := e.runEffect(code, ctx)
	if res.Message != "" {
		e.log(log.NewEffectEntry(gs.Turn, e.phase(), player, card.ID, card.Name(), res.Message))
		msg += "; " + res.Message
	}
	e.cleanup(card.Name())
	return ok(msg)
}

func (e *Engine) playSpell(card *CardInstance, targetID string) Result {
	gs := e.State
	player := gs.Active
	p := gs.Players[player]

	t, found := e.resolveTarget(player, targetID)
	if !found {
		return fail(MsgInvalidTarget)
	}
	ctx := e.effectContext(card, player, t)
	code := card.Card.EffectFor(ctx.Hero)
	def, known := e.Registry.Lookup(code, ctx.Hero)
	if !known || def.Timing != TimingSpell || def.Apply == nil {
		e.diag.WithFields(logrus.Fields{"card": card.Name(), "code": code}).Warn("spell has no castable effect")
		return fail("unknown effect " + string(code))
	}
	if msg := checkTargeting(def.Targeting, t); msg != "" {
		return fail(msg)
	}
	if def.Targeting == TargetNone {
		ctx.Target, ctx.TargetHero = nil, false
	}
	if ctx.Target != nil && ctx.Target.HasKeyword(KeywordSpellImmune) {
		return fail(MsgSpellImmune)
	}

	e.consume(card)
	e.log(log.NewPlayCardEntry(gs.Turn, e.phase(), player, card.ID, card.Name(), targetID, "cast"))

	if trap := e.springTrap(gs.Opponent(player), TriggerOpponentSpell, nil); trap != nil && trap.Cancel {
		p.SendToGraveyard(card)
		return ok(fmt.Sprintf("%s was countered: %s", card.Name(), trap.Message))
	}

	res := def.Apply(e, ctx)
	p.SendToGraveyard(card)
	if res.Message != "" {
		e.log(log.NewEffectEntry(gs.Turn, e.phase(), player, card.ID, card.Name(), res.Message))
	}
	if !res.Success {
		e.diag.WithField("card", card.Name()).Warnf("spell failed after validation: %s", res.Message)
	}
	return ok(fmt.Sprintf("cast %s: %s", card.Name(), res.Message))
}

func (e *Engine) playEquipment(card *CardInstance, targetID string) Result {
	gs := e.State
	player := gs.Active
	p := gs.Players[player]

	if targetID == "" {
		return fail(MsgTargetRequired)
	}
	carrier := p.FindCreature(targetID)
	if carrier == nil {
		return fail(MsgInvalidTarget)
	}
	if carrier.Equipment != nil {
		return fail(MsgAlreadyEquipped)
	}
	if card.Card.Bonus == nil {
		e.diag.WithField("card", card.Name()).Warn("equipment has no bonus descriptor")
		return fail(fmt.Sprintf("%s has no bonus", card.Name()))
	}

	e.consume(card)
	e.attachEquipment(card, carrier)
	e.log(log.NewPlayCardEntry(gs.Turn, e.phase(), player, card.ID, card.Name(), targetID,
		"equipped to "+carrier.Name()))
	return ok(fmt.Sprintf("equipped %s to %s", card.Name(), carrier.Name()))
}

func (e *Engine) playTrap(card *CardInstance) Result {
	gs := e.State
	player := gs.Active
	p := gs.Players[player]

	e.consume(card)
	card.Revealed = false
	p.Traps = append(p.Traps, card)
	e.log(log.NewSetTrapEntry(gs.Turn, e.phase(), player, card.ID, card.Name()))
	return ok("set a trap")
}
