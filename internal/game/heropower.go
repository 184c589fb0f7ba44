package game

import (
	"fmt"

	"github.com/peterkuimelis/rumble/internal/log"
)

// Hero power codes. The set is closed: UseHeroPower switches on it and
// ValidateCatalog rejects heroes with any other code.
const (
	PowerBoostThrusters PowerCode = "BOOST_THRUSTERS"
	PowerMissileBarrage PowerCode = "MISSILE_BARRAGE"
	PowerIgnite         PowerCode = "IGNITE"
	PowerDeployMine     PowerCode = "DEPLOY_MINE"
	PowerFortify        PowerCode = "FORTIFY_POWER"
	PowerDeployTurret   PowerCode = "DEPLOY_TURRET"
	PowerNanobots       PowerCode = "NANOBOTS"
	PowerHeadshot       PowerCode = "HEADSHOT"
	PowerMimic          PowerCode = "MIMIC"
)

// HeadshotThreshold is the highest current health Headshot can destroy.
const HeadshotThreshold = 3

var knownPowers = map[PowerCode]bool{
	PowerBoostThrusters: true,
	PowerMissileBarrage: true,
	PowerIgnite:         true,
	PowerDeployMine:     true,
	PowerFortify:        true,
	PowerDeployTurret:   true,
	PowerNanobots:       true,
	PowerHeadshot:       true,
	PowerMimic:          true,
}

// KnownPower reports whether code is a hero power the engine can resolve.
func KnownPower(code PowerCode) bool {
	return knownPowers[code]
}

// UseHeroPower activates the active player's hero power. Every power checks
// its own target before touching state, so a rejection changes nothing.
func (e *Engine) UseHeroPower(targetID string) Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if gs.Phase != PhaseMain {
		return fail(MsgNotMainPhase)
	}
	player := gs.Active
	p := gs.Players[player]
	if p.PowerUsedThisTurn {
		return fail(MsgPowerUsed)
	}
	if p.Hero == nil {
		return fail("no hero")
	}

	res := e.resolvePower(p.Hero.Power, player, targetID)
	if !res.Success {
		return res
	}
	p.PowerUsedThisTurn = true
	e.log(log.NewUsePowerEntry(gs.Turn, e.phase(), player, p.Hero.PowerName, targetID, res.Message))
	e.cleanup(p.Hero.PowerName)
	return res
}

func (e *Engine) resolvePower(code PowerCode, player int, targetID string) Result {
	gs := e.State
	opp := gs.Opponent(player)

	switch code {
	case PowerBoostThrusters:
		c, msg := e.powerCreatureTarget(targetID)
		if c == nil {
			return fail(msg)
		}
		e.tempBuff(c, 2, 0)
		return ok(fmt.Sprintf("%s gained +2 attack this turn", c.Name()))

	case PowerMissileBarrage:
		for _, c := range gs.Players[opp].Creatures() {
			e.damageCreature(c, 2)
		}
		return ok("dealt 2 damage to all enemy creatures")

	case PowerIgnite:
		c, msg := e.powerCreatureTarget(targetID)
		if c == nil {
			return fail(msg)
		}
		e.damageCreature(c, 1)
		c.Burn = 1
		return ok(fmt.Sprintf("%s is burning", c.Name()))

	case PowerDeployMine:
		mine, found := e.Catalog.Card(TokenMine)
		if !found {
			e.diag.WithField("token", TokenMine).Warn("token missing from catalog")
			return fail("mine token unavailable")
		}
		inst := gs.NewInstance(mine, player)
		gs.Players[player].Traps = append(gs.Players[player].Traps, inst)
		return ok("mine deployed")

	case PowerFortify:
		c, msg := e.powerCreatureTarget(targetID)
		if c == nil {
			return fail(msg)
		}
		e.buffCreature(c, 0, 3)
		return ok(fmt.Sprintf("%s gained +3 health", c.Name()))

	case PowerDeployTurret:
		p := gs.Players[player]
		slot := p.FreeSlot()
		if slot < 0 {
			return fail(MsgBoardFull)
		}
		turret, found := e.Catalog.Card(TokenTurret)
		if !found {
			e.diag.WithField("token", TokenTurret).Warn("token missing from catalog")
			return fail("turret token unavailable")
		}
		inst := gs.NewInstance(turret, player)
		p.PlaceCreature(inst, slot)
		return ok(fmt.Sprintf("turret deployed to slot %d", slot))

	case PowerNanobots:
		// Nanobots only ever heals its owner's hero.
		if targetID == TargetEnemyHero {
			targetID = TargetOwnHero
		}
		t, found := e.resolveTarget(player, targetID)
		if !found {
			return fail(MsgInvalidTarget)
		}
		if msg := checkTargeting(TargetCreatureOrHero, t); msg != "" {
			return fail(msg)
		}
		if t.hero {
			e.healHero(t.player, 3, "Nanobots")
			return ok("restored 3 health to " + gs.Players[t.player].Name)
		}
		e.healCreature(t.creature, 3)
		return ok("restored 3 health to " + t.creature.Name())

	case PowerHeadshot:
		c, msg := e.powerCreatureTarget(targetID)
		if c == nil {
			return fail(msg)
		}
		if c.CurrentHealth > HeadshotThreshold {
			return fail(fmt.Sprintf("target has more than %d health", HeadshotThreshold))
		}
		e.destroyCreature(c, "Headshot")
		return ok("destroyed " + c.Name())

	case PowerMimic:
		card := e.lastPlayedBy(opp)
		if card == nil {
			return fail("opponent has not played a card")
		}
		inst := gs.NewInstance(card, player)
		gs.Players[player].Hand = append(gs.Players[player].Hand, inst)
		return ok("copied " + card.Name)
	}

	e.diag.WithField("power", code).Warn("unknown hero power code")
	return fail("unknown hero power " + string(code))
}

// powerCreatureTarget resolves a creature on either board.
func (e *Engine) powerCreatureTarget(targetID string) (*CardInstance, string) {
	if targetID == "" {
		return nil, MsgTargetRequired
	}
	c, _ := e.State.FindCreature(targetID)
	if c == nil {
		return nil, MsgInvalidTarget
	}
	return c, ""
}

// lastPlayedBy returns the definition of the most recent card player played.
func (e *Engine) lastPlayedBy(player int) *Card {
	entries := e.State.Log
	for i := len(entries) - 1; i >= 0; i-- {
		en := entries[i]
		if en.Type != log.EntryPlayCard || en.Player != player {
			continue
		}
		card, found := e.Catalog.Card(en.Card)
		if !found {
			return nil
		}
		return card
	}
	return nil
}
