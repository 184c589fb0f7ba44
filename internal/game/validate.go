package game

import (
	"errors"
	"fmt"
)

// ValidateCatalog checks that every card and hero in the catalog resolves
// against the registry and the hero power set. It returns all problems found
// joined into one error, or nil.
func ValidateCatalog(cat *Catalog, reg *Registry) error {
	var errs []error

	for _, card := range cat.Cards() {
		if err := validateCard(card, reg); err != nil {
			errs = append(errs, fmt.Errorf("card %q: %w", card.Name, err))
		}
		for hero, code := range card.HeroEffects {
			if _, ok := cat.Hero(hero); !ok {
				errs = append(errs, fmt.Errorf("card %q: hero override for unknown hero %q", card.Name, hero))
			}
			def, ok := reg.Lookup(code, hero)
			if !ok {
				errs = append(errs, fmt.Errorf("card %q: unknown hero effect code %q", card.Name, code))
				continue
			}
			if err := checkTiming(card.Kind, code, def); err != nil {
				errs = append(errs, fmt.Errorf("card %q: %s override: %w", card.Name, hero, err))
			}
		}
	}

	for _, h := range cat.Heroes() {
		if !KnownPower(h.Power) {
			errs = append(errs, fmt.Errorf("hero %q: unknown power code %q", h.ID, h.Power))
		}
	}

	if c, ok := cat.Card(TokenTurret); !ok || c.Kind != KindCreature {
		errs = append(errs, fmt.Errorf("token %q missing or not a creature", TokenTurret))
	}
	if c, ok := cat.Card(TokenMine); !ok || c.Kind != KindTrap {
		errs = append(errs, fmt.Errorf("token %q missing or not a trap", TokenMine))
	}

	return errors.Join(errs...)
}

func validateCard(card *Card, reg *Registry) error {
	def, ok := reg.Lookup(card.Effect, "")
	if !ok {
		return fmt.Errorf("unknown effect code %q", card.Effect)
	}

	switch card.Kind {
	case KindCreature:
		if card.Health <= 0 {
			return fmt.Errorf("creature health must be positive, got %d", card.Health)
		}
		if card.Attack < 0 {
			return fmt.Errorf("creature attack must not be negative, got %d", card.Attack)
		}
	case KindEquipment:
		if card.Bonus == nil {
			return fmt.Errorf("equipment has no bonus descriptor")
		}
	case KindTrap:
		if card.Trigger == TriggerNone {
			return fmt.Errorf("trap has no trigger condition")
		}
	}
	return checkTiming(card.Kind, card.Effect, def)
}

// checkTiming reports whether an effect can resolve on a card of the given kind.
func checkTiming(kind CardKind, code EffectCode, def EffectDef) error {
	switch kind {
	case KindCreature:
		switch def.Timing {
		case TimingKeyword, TimingOnSummon, TimingOnAttack, TimingOnAllyDeath:
			return nil
		}
		return fmt.Errorf("effect %q (%s) cannot sit on a creature", code, def.Timing)
	case KindSpell:
		if def.Timing != TimingSpell {
			return fmt.Errorf("effect %q (%s) is not a spell effect", code, def.Timing)
		}
	case KindEquipment:
		if def.Timing != TimingEquip {
			return fmt.Errorf("effect %q (%s) is not an equipment effect", code, def.Timing)
		}
	case KindTrap:
		if def.Timing != TimingTrap {
			return fmt.Errorf("effect %q (%s) is not a trap effect", code, def.Timing)
		}
	}
	return nil
}
