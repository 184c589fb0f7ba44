package game

import (
	"fmt"

	"github.com/peterkuimelis/rumble/internal/log"
)

// Attack declares an attack by one of the active player's creatures against
// an enemy creature or, with TargetEnemyHero, the enemy hero.
func (e *Engine) Attack(attackerID, targetID string) Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if gs.Phase != PhaseMain {
		return fail(MsgNotMainPhase)
	}
	player := gs.Active
	opp := gs.Opponent(player)

	attacker := gs.Players[player].FindCreature(attackerID)
	if attacker == nil {
		return fail(MsgAttackerNotFound)
	}
	if attacker.Stunned {
		return fail(MsgStunned)
	}
	if !attacker.CanAttack {
		return fail(MsgNotReady)
	}

	var defender *CardInstance
	targetName := gs.Players[opp].Name + "'s hero"
	if targetID != TargetEnemyHero {
		defender = gs.Players[opp].FindCreature(targetID)
		if defender == nil {
			return fail(MsgInvalidTarget)
		}
		targetName = defender.Name()
	}
	if e.tauntBlocks(attacker, gs.Players[opp], defender) {
		return fail(MsgTauntBlocks)
	}

	attacker.CanAttack = false
	e.log(log.NewAttackEntry(gs.Turn, e.phase(), player, attacker.ID, attacker.Name(), targetID, targetName))

	if trap := e.springTrap(opp, TriggerOpponentAttack, attacker); trap != nil && trap.Cancel {
		return ok("attack stopped: " + trap.Message)
	}
	if gs.Players[player].FindCreature(attacker.ID) == nil {
		return ok("attacker was destroyed before combat")
	}

	var msg string
	if defender == nil {
		msg = e.strikeHero(attacker, opp)
	} else {
		msg = e.fight(attacker, defender)
	}
	if !gs.Over() {
		e.onAttackTriggers(attacker)
	}
	return ok(msg)
}

// tauntBlocks reports whether an enemy Taunt creature forbids this target.
// Evasive attackers ignore Taunt creatures with 2 or less attack.
func (e *Engine) tauntBlocks(attacker *CardInstance, defenders *Player, target *CardInstance) bool {
	if target != nil && target.HasKeyword(KeywordTaunt) {
		return false
	}
	evasive := attacker.HasKeyword(KeywordEvasion)
	for _, c := range defenders.Creatures() {
		if !c.HasKeyword(KeywordTaunt) {
			continue
		}
		if evasive && c.Attack <= 2 {
			continue
		}
		return true
	}
	return false
}

// combatDamage is the damage src deals to dst in combat, from pre-combat values.
func combatDamage(src, dst *CardInstance) int {
	if src.HasKeyword(KeywordExecute) && dst.Damaged() {
		return src.Attack * 2
	}
	return src.Attack
}

func (e *Engine) strikeHero(attacker *CardInstance, opp int) string {
	gs := e.State
	dmg := attacker.Attack
	e.damageHero(opp, dmg, attacker.Name())
	msg := fmt.Sprintf("%s hits %s for %d", attacker.Name(), gs.Players[opp].Name, dmg)
	if gs.Over() {
		return msg
	}
	if trap := e.springTrap(opp, TriggerHeroHit, attacker); trap != nil {
		msg += "; " + trap.Message
	}
	return msg
}

// fight resolves creature combat. A lone First Strike side hits first and
// takes no damage back if that kills the defender.
func (e *Engine) fight(attacker, defender *CardInstance) string {
	gs := e.State
	atkDmg := combatDamage(attacker, defender)
	defDmg := combatDamage(defender, attacker)
	aFirst := attacker.HasKeyword(KeywordFirstStrike)
	dFirst := defender.HasKeyword(KeywordFirstStrike)

	dealtByAttacker, dealtByDefender := 0, 0
	switch {
	case aFirst && !dFirst:
		e.damageCreature(defender, atkDmg)
		dealtByAttacker = atkDmg
		if defender.CurrentHealth > 0 {
			e.damageCreature(attacker, defDmg)
			dealtByDefender = defDmg
		}
	case dFirst && !aFirst:
		e.damageCreature(attacker, defDmg)
		dealtByDefender = defDmg
		if attacker.CurrentHealth > 0 {
			e.damageCreature(defender, atkDmg)
			dealtByAttacker = atkDmg
		}
	default:
		e.damageCreature(defender, atkDmg)
		e.damageCreature(attacker, defDmg)
		dealtByAttacker, dealtByDefender = atkDmg, defDmg
	}

	if dealtByAttacker > 0 && attacker.HasKeyword(KeywordStunOnHit) && defender.CurrentHealth > 0 {
		defender.Stunned = true
		defender.CanAttack = false
	}
	if dealtByDefender > 0 && defender.HasKeyword(KeywordStunOnHit) && attacker.CurrentHealth > 0 {
		attacker.Stunned = true
	}

	details := fmt.Sprintf("%s deals %d to %s, takes %d", attacker.Name(), dealtByAttacker, defender.Name(), dealtByDefender)
	e.log(log.NewEffectEntry(gs.Turn, e.phase(), gs.Active, attacker.ID, attacker.Name(), details))
	e.cleanup("combat")
	return details
}

// onAttackTriggers fires the attacker's on-attack effect and Splash.
func (e *Engine) onAttackTriggers(attacker *CardInstance) {
	gs := e.State
	ctx := e.effectContext(attacker, attacker.Owner, target{player: gs.Opponent(attacker.Owner)})
	code := attacker.Card.EffectFor(ctx.Hero)
	if def, known := e.Registry.Lookup(code, ctx.Hero); known && def.Timing == TimingOnAttack {
		res := e.runEffect(code, ctx)
		if res.Message != "" {
			e.log(log.NewEffectEntry(gs.Turn, e.phase(), attacker.Owner, attacker.ID, attacker.Name(), res.Message))
		}
	}
	if attacker.HasKeyword(KeywordSplash) {
		e.splash(attacker, 1)
		e.log(log.NewEffectEntry(gs.Turn, e.phase(), attacker.Owner, attacker.ID, attacker.Name(),
			attacker.Name()+" splashes 1 damage to all other creatures"))
	}
	e.cleanup(attacker.Name())
}

// --- Damage, healing and removal ---

func (e *Engine) damageCreature(c *CardInstance, n int) {
	if n <= 0 {
		return
	}
	c.CurrentHealth -= n
}

// damageHero reduces a player's health and ends the match at 0 or below.
func (e *Engine) damageHero(player, n int, source string) {
	gs := e.State
	p := gs.Players[player]
	old := p.Health
	p.Health -= n
	e.log(log.NewHealthEntry(gs.Turn, e.phase(), player, old, p.Health, source))
	if p.Health <= 0 {
		e.endMatch(gs.Opponent(player), fmt.Sprintf("%s's health reached 0", p.Name))
	}
}

func (e *Engine) healHero(player, n int, source string) {
	gs := e.State
	p := gs.Players[player]
	old := p.Health
	p.Health += n
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	if p.Health != old {
		e.log(log.NewHealthEntry(gs.Turn, e.phase(), player, old, p.Health, source))
	}
}

func (e *Engine) healCreature(c *CardInstance, n int) {
	c.CurrentHealth += n
	if c.CurrentHealth > c.Health {
		c.CurrentHealth = c.Health
	}
}

func (e *Engine) buffCreature(c *CardInstance, atk, hp int) {
	c.Attack += atk
	c.Health += hp
	c.CurrentHealth += hp
}

// tempBuff applies a buff that EndTurn reverts.
func (e *Engine) tempBuff(c *CardInstance, atk, hp int) {
	e.buffCreature(c, atk, hp)
	c.TempBuffs = append(c.TempBuffs, TempBuff{Attack: atk, Health: hp})
}

// splash deals n damage to every creature except source and cleans up.
func (e *Engine) splash(source *CardInstance, n int) {
	for p := 0; p < 2; p++ {
		for _, c := range e.State.Players[p].Creatures() {
			if c != source {
				e.damageCreature(c, n)
			}
		}
	}
	e.cleanup(source.Name())
}

// cleanup destroys every creature at or below 0 health. All dead creatures
// leave the board before any death trigger fires.
func (e *Engine) cleanup(reason string) {
	for {
		var dead []*CardInstance
		for p := 0; p < 2; p++ {
			for _, c := range e.State.Players[p].Creatures() {
				if c.CurrentHealth <= 0 {
					dead = append(dead, c)
				}
			}
		}
		if len(dead) == 0 {
			return
		}
		for _, c := range dead {
			e.removeFromBoard(c, reason)
		}
		for _, c := range dead {
			e.allyDeathTriggers(c)
		}
	}
}

// destroyCreature destroys a creature regardless of its health.
func (e *Engine) destroyCreature(c *CardInstance, reason string) {
	if e.removeFromBoard(c, reason) {
		e.allyDeathTriggers(c)
	}
}

// removeFromBoard moves a creature from the board to its owner's graveyard.
// Returns false if it was not on the board.
func (e *Engine) removeFromBoard(c *CardInstance, reason string) bool {
	gs := e.State
	owner := gs.Players[c.Owner]
	if owner.FindCreature(c.ID) == nil {
		return false
	}
	owner.RemoveCreature(c)
	e.detachEquipment(c)
	c.Position = -1
	c.CanAttack = false
	owner.SendToGraveyard(c)
	e.log(log.NewDestroyEntry(gs.Turn, e.phase(), c.Owner, c.ID, c.Name(), reason))
	return true
}

// allyDeathTriggers fires on-ally-death effects of the dead creature's
// surviving allies.
func (e *Engine) allyDeathTriggers(dead *CardInstance) {
	gs := e.State
	for _, ally := range gs.Players[dead.Owner].Creatures() {
		if ally.CurrentHealth <= 0 {
			continue
		}
		ctx := e.effectContext(ally, ally.Owner, target{creature: dead, player: dead.Owner})
		code := ally.Card.EffectFor(ctx.Hero)
		def, known := e.Registry.Lookup(code, ctx.Hero)
		if !known || def.Timing != TimingOnAllyDeath {
			continue
		}
		res := e.runEffect(code, ctx)
		if res.Message != "" {
			e.log(log.NewEffectEntry(gs.Turn, e.phase(), ally.Owner, ally.ID, ally.Name(), res.Message))
		}
	}
}

// bounceCreature returns a creature to its owner's hand as a fresh copy.
func (e *Engine) bounceCreature(c *CardInstance, reason string) {
	gs := e.State
	owner := gs.Players[c.Owner]
	if owner.FindCreature(c.ID) == nil {
		return
	}
	owner.RemoveCreature(c)
	e.detachEquipment(c)
	c.resetCreature()
	owner.Hand = append(owner.Hand, c)
	e.log(log.NewEffectEntry(gs.Turn, e.phase(), c.Owner, c.ID, c.Name(),
		fmt.Sprintf("%s returns to %s's hand (%s)", c.Name(), owner.Name, reason)))
}

// drawCards draws up to n cards for an effect. An empty deck just stops the draw.
func (e *Engine) drawCards(player, n int) int {
	gs := e.State
	p := gs.Players[player]
	drawn := 0
	for i := 0; i < n; i++ {
		card := p.DrawCard()
		if card == nil {
			break
		}
		drawn++
		e.log(log.NewDrawEntry(gs.Turn, e.phase(), player, card.ID, card.Name()))
	}
	return drawn
}
