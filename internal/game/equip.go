package game

import "github.com/peterkuimelis/rumble/internal/log"

// attachEquipment attaches an equipment card to a creature and applies its bonus.
func (e *Engine) attachEquipment(equip, carrier *CardInstance) {
	equip.AttachedTo = carrier
	carrier.Equipment = equip
	if b := equip.Card.Bonus; b != nil {
		carrier.Attack += b.Attack
		carrier.Health += b.Health
		carrier.CurrentHealth += b.Health
	}
}

// detachEquipment removes a creature's equipment, takes its bonus back and
// sends the equipment to its owner's graveyard.
func (e *Engine) detachEquipment(carrier *CardInstance) {
	equip := carrier.Equipment
	if equip == nil {
		return
	}
	if b := equip.Card.Bonus; b != nil {
		carrier.Attack -= b.Attack
		if carrier.Attack < 0 {
			carrier.Attack = 0
		}
		carrier.Health -= b.Health
		if carrier.CurrentHealth > carrier.Health {
			carrier.CurrentHealth = carrier.Health
		}
	}
	carrier.Equipment = nil
	equip.AttachedTo = nil

	gs := e.State
	gs.Players[equip.Owner].SendToGraveyard(equip)
	e.log(log.NewDestroyEntry(gs.Turn, e.phase(), equip.Owner, equip.ID, equip.Name(), carrier.Name()+" left the board"))
}
