package game

import "github.com/peterkuimelis/rumble/internal/log"

// springTrap fires the oldest of owner's set traps matching trig, if any.
// subject is the creature that set the trap off (nil for spells). The trap is
// revealed and sent to the graveyard whether or not its effect succeeds.
func (e *Engine) springTrap(owner int, trig TrapTrigger, subject *CardInstance) *EffectResult {
	gs := e.State
	p := gs.Players[owner]

	var trap *CardInstance
	for _, t := range p.Traps {
		if t.Card.Trigger == trig {
			trap = t
			break
		}
	}
	if trap == nil {
		return nil
	}

	p.RemoveTrap(trap)
	trap.Revealed = true

	ctx := e.effectContext(trap, owner, target{creature: subject, player: gs.Opponent(owner)})
	res := e.runEffect(trap.Card.EffectFor(ctx.Hero), ctx)
	if res.Message == "" {
		res.Message = trap.Name() + " fired"
	}
	e.log(log.NewTrapEntry(gs.Turn, e.phase(), owner, trap.ID, trap.Name(), res.Message))
	p.SendToGraveyard(trap)
	return &res
}
