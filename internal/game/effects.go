package game

import "fmt"

// Effect codes with engine-visible meaning.
const (
	EffectNone        EffectCode = "NONE"
	EffectFirstStrike EffectCode = "FIRST_STRIKE"
	EffectTaunt       EffectCode = "TAUNT"
	EffectTurret      EffectCode = "TURRET"
	EffectMineTrap    EffectCode = "TRAP_DAMAGE_ON_SUMMON"
)

const (
	heroJetpackJunkie HeroID = "jetpack-junkie"
	heroRocketManiac  HeroID = "rocket-maniac"
	heroTankBrute     HeroID = "tank-brute"
)

func registerBuiltinEffects(r *Registry) {
	// Keywords are read by the engine; nothing to execute.
	for _, code := range []EffectCode{EffectNone, EffectFirstStrike, EffectTaunt, "SPELL_IMMUNE", "EVASION", "EXECUTE", EffectTurret} {
		r.Register(code, TimingKeyword, TargetNone, nil)
	}

	// On summon
	r.Register("DRAW_ON_SUMMON", TimingOnSummon, TargetNone, drawOnSummon)
	r.Register("COPY_STATS", TimingOnSummon, TargetCreature, copyStats)
	r.Register("BOARD_CLEAR_ON_SUMMON", TimingOnSummon, TargetNone, boardClearOnSummon)

	// On attack
	r.Register("AOE_ON_ATTACK", TimingOnAttack, TargetNone, splashOnAttack)
	r.Register("LIFESTEAL", TimingOnAttack, TargetNone, lifesteal)

	// On ally death
	r.Register("GROW_ON_DEATH", TimingOnAllyDeath, TargetNone, growOnDeath)

	// Spells
	r.Register("DAMAGE_3", TimingSpell, TargetCreatureOrHero, damageN(3))
	r.Register("BUFF_HEALTH_4", TimingSpell, TargetCreature, buffN(0, 4))
	r.Register("BUFF_2_2", TimingSpell, TargetCreature, buffN(2, 2))
	r.Register("BUFF_ATTACK_3_TEMP", TimingSpell, TargetCreature, tempAttackN(3))
	r.Register("DRAW_2", TimingSpell, TargetNone, drawN(2))
	r.Register("HEAL_5", TimingSpell, TargetCreatureOrHero, healN(5))
	r.Register("DESTROY_CREATURE", TimingSpell, TargetCreature, destroyTarget)
	r.Register("AOE_DAMAGE_5", TimingSpell, TargetNone, damageAllN(5))
	r.Register("STUN", TimingSpell, TargetCreature, stunTarget)
	r.Register("BOUNCE_DRAW", TimingSpell, TargetCreature, bounceDraw)
	r.Register("EXTRA_TURN", TimingSpell, TargetNone, extraTurn)
	r.Register("BOUNCE_ALL", TimingSpell, TargetNone, bounceAll)

	// Signature spell: resolves differently per hero.
	r.Register("ROCKET_FUEL", TimingSpell, TargetCreature, tempAttackN(2))
	r.RegisterHero("ROCKET_FUEL", heroJetpackJunkie, TargetNone, rallyAttack(1))
	r.RegisterHero("ROCKET_FUEL", heroRocketManiac, TargetCreature, damageN(3))

	// Equipment bonuses are structured on the card; the codes only label them.
	for _, code := range []EffectCode{
		"EQUIP_ATTACK_2_FIRST_STRIKE",
		"EQUIP_HEALTH_3_SPELL_IMMUNE",
		"EQUIP_ATTACK_3_STUN",
		"EQUIP_1_1_EVASION",
		"EQUIP_HEALTH_4_REGEN",
		"EQUIP_1_2",
		"EQUIP_ATTACK_2_EXECUTE",
		"EQUIP_3_3_AOE",
	} {
		r.Register(code, TimingEquip, TargetCreature, nil)
	}

	// Traps. Target is the creature that set the trap off.
	r.Register(EffectMineTrap, TimingTrap, TargetNone, trapDamageTarget(2))
	r.Register("TRAP_COUNTER_SPELL", TimingTrap, TargetNone, trapCounterSpell)
	r.Register("TRAP_DESTROY_ATTACKER", TimingTrap, TargetNone, trapDestroyAttacker)
	r.Register("TRAP_BOUNCE_CREATURE", TimingTrap, TargetNone, trapBounceCreature)
	r.Register("TRAP_DAMAGE_ON_HIT", TimingTrap, TargetNone, trapDamageTarget(3))
}

// --- On summon ---

func drawOnSummon(e *Engine, ctx EffectContext) EffectResult {
	if e.drawCards(ctx.Player, 1) == 0 {
		return effectFail("no cards in deck")
	}
	return effectOK("drew 1 card")
}

func copyStats(e *Engine, ctx EffectContext) EffectResult {
	if ctx.Target == nil || ctx.Target == ctx.Source {
		return effectFail(MsgInvalidTarget)
	}
	src := ctx.Source
	src.Attack = ctx.Target.Attack
	src.Health = ctx.Target.Health
	src.CurrentHealth = ctx.Target.Health
	return effectOK(fmt.Sprintf("copied stats: %d/%d", src.Attack, src.Health))
}

func boardClearOnSummon(e *Engine, ctx EffectContext) EffectResult {
	for p := 0; p < 2; p++ {
		for _, c := range e.State.Players[p].Creatures() {
			if c != ctx.Source {
				e.destroyCreature(c, ctx.Source.Name())
			}
		}
	}
	return effectOK("destroyed all other creatures")
}

// --- On attack ---

func splashOnAttack(e *Engine, ctx EffectContext) EffectResult {
	e.splash(ctx.Source, 1)
	return effectOK("dealt 1 damage to all other creatures")
}

func lifesteal(e *Engine, ctx EffectContext) EffectResult {
	e.healHero(ctx.Player, 2, ctx.Source.Name())
	return effectOK("restored 2 health")
}

// --- On ally death ---

func growOnDeath(e *Engine, ctx EffectContext) EffectResult {
	e.buffCreature(ctx.Source, 1, 1)
	return effectOK("gained +1/+1")
}

// --- Spells ---

func damageN(n int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		if ctx.TargetHero {
			e.damageHero(ctx.TargetPlayer, n, ctx.Source.Name())
			return effectOK(fmt.Sprintf("dealt %d damage to hero", n))
		}
		e.damageCreature(ctx.Target, n)
		e.cleanup(ctx.Source.Name())
		return effectOK(fmt.Sprintf("dealt %d damage", n))
	}
}

func damageAllN(n int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		for p := 0; p < 2; p++ {
			for _, c := range e.State.Players[p].Creatures() {
				e.damageCreature(c, n)
			}
		}
		e.cleanup(ctx.Source.Name())
		return effectOK(fmt.Sprintf("dealt %d damage to all creatures", n))
	}
}

func buffN(atk, hp int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		e.buffCreature(ctx.Target, atk, hp)
		return effectOK(fmt.Sprintf("gained +%d/+%d", atk, hp))
	}
}

func tempAttackN(n int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		e.tempBuff(ctx.Target, n, 0)
		return effectOK(fmt.Sprintf("gained +%d/+0 this turn", n))
	}
}

func rallyAttack(n int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		for _, c := range e.State.Players[ctx.Player].Creatures() {
			e.buffCreature(c, n, 0)
		}
		return effectOK(fmt.Sprintf("all creatures gained +%d/+0", n))
	}
}

func drawN(n int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		drawn := e.drawCards(ctx.Player, n)
		return effectOK(fmt.Sprintf("drew %d cards", drawn))
	}
}

func healN(n int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		if ctx.TargetHero {
			e.healHero(ctx.TargetPlayer, n, ctx.Source.Name())
			return effectOK(fmt.Sprintf("restored %d health to hero", n))
		}
		e.healCreature(ctx.Target, n)
		return effectOK(fmt.Sprintf("restored %d health", n))
	}
}

func destroyTarget(e *Engine, ctx EffectContext) EffectResult {
	e.destroyCreature(ctx.Target, ctx.Source.Name())
	return effectOK("destroyed creature")
}

func stunTarget(e *Engine, ctx EffectContext) EffectResult {
	ctx.Target.Stunned = true
	ctx.Target.CanAttack = false
	return effectOK("creature stunned for 1 turn")
}

func bounceDraw(e *Engine, ctx EffectContext) EffectResult {
	e.bounceCreature(ctx.Target, ctx.Source.Name())
	e.drawCards(ctx.Player, 1)
	return effectOK("returned to hand and drew 1 card")
}

func extraTurn(e *Engine, ctx EffectContext) EffectResult {
	e.State.ExtraTurn = true
	return effectOK("you get an extra turn")
}

func bounceAll(e *Engine, ctx EffectContext) EffectResult {
	for p := 0; p < 2; p++ {
		for _, c := range e.State.Players[p].Creatures() {
			e.bounceCreature(c, ctx.Source.Name())
		}
	}
	return effectOK("all creatures returned to hands")
}

// --- Traps ---

func trapDamageTarget(n int) EffectFunc {
	return func(e *Engine, ctx EffectContext) EffectResult {
		if ctx.Target == nil {
			return effectFail(MsgInvalidTarget)
		}
		e.damageCreature(ctx.Target, n)
		e.cleanup(ctx.Source.Name())
		return effectOK(fmt.Sprintf("dealt %d damage to %s", n, ctx.Target.Name()))
	}
}

func trapCounterSpell(e *Engine, ctx EffectContext) EffectResult {
	return EffectResult{Success: true, Message: "spell countered", Cancel: true}
}

func trapDestroyAttacker(e *Engine, ctx EffectContext) EffectResult {
	if ctx.Target == nil {
		return effectFail(MsgInvalidTarget)
	}
	e.destroyCreature(ctx.Target, ctx.Source.Name())
	return EffectResult{Success: true, Message: ctx.Target.Name() + " destroyed before attacking", Cancel: true}
}

func trapBounceCreature(e *Engine, ctx EffectContext) EffectResult {
	if ctx.Target == nil {
		return effectFail(MsgInvalidTarget)
	}
	e.bounceCreature(ctx.Target, ctx.Source.Name())
	return EffectResult{Success: true, Message: ctx.Target.Name() + " returned to hand", Cancel: true}
}
