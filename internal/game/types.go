package game

import "fmt"

// --- Enums ---

type Phase int

const (
	PhaseDraw Phase = iota
	PhaseMain
	PhaseEnded

	// Reserved phase names. The engine never enters them.
	PhaseMulligan
	PhaseCombat
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "Draw"
	case PhaseMain:
		return "Main"
	case PhaseEnded:
		return "Ended"
	case PhaseMulligan:
		return "Mulligan"
	case PhaseCombat:
		return "Combat"
	case PhaseEnd:
		return "End"
	default:
		return "None"
	}
}

type CardKind int

const (
	KindCreature CardKind = iota
	KindSpell
	KindEquipment
	KindTrap
)

func (k CardKind) String() string {
	switch k {
	case KindCreature:
		return "Creature"
	case KindSpell:
		return "Spell"
	case KindEquipment:
		return "Equipment"
	case KindTrap:
		return "Trap"
	default:
		return "Unknown"
	}
}

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
	RaritySeasonal
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	case RarityMythic:
		return "Mythic"
	case RaritySeasonal:
		return "Seasonal"
	default:
		return "Unknown"
	}
}

// Keyword is a static ability read by the engine during combat and targeting.
type Keyword int

const (
	KeywordFirstStrike Keyword = iota
	KeywordTaunt
	KeywordSpellImmune
	KeywordEvasion
	KeywordExecute
	KeywordRegenerate
	KeywordStunOnHit
	KeywordSplash
)

func (k Keyword) String() string {
	switch k {
	case KeywordFirstStrike:
		return "First Strike"
	case KeywordTaunt:
		return "Taunt"
	case KeywordSpellImmune:
		return "Spell Immune"
	case KeywordEvasion:
		return "Evasion"
	case KeywordExecute:
		return "Execute"
	case KeywordRegenerate:
		return "Regenerate"
	case KeywordStunOnHit:
		return "Stun On Hit"
	case KeywordSplash:
		return "Splash"
	default:
		return "Unknown"
	}
}

// TrapTrigger is the condition under which a set trap springs.
type TrapTrigger int

const (
	TriggerNone TrapTrigger = iota
	TriggerOpponentSummon
	TriggerOpponentSpell
	TriggerOpponentAttack
	TriggerHeroHit
)

func (t TrapTrigger) String() string {
	switch t {
	case TriggerOpponentSummon:
		return "ON_OPPONENT_SUMMON"
	case TriggerOpponentSpell:
		return "ON_OPPONENT_SPELL"
	case TriggerOpponentAttack:
		return "ON_OPPONENT_ATTACK"
	case TriggerHeroHit:
		return "ON_HERO_HIT"
	default:
		return "NONE"
	}
}

// EffectCode is the symbolic key of an Effect Registry entry.
type EffectCode string

// HeroID identifies a hero in the catalog.
type HeroID string

// PowerCode identifies a hero power. The set is closed; see heropower.go.
type PowerCode string

// --- Card definition (static, immutable) ---

// EquipmentBonus is the stat and keyword grant an equipment applies on attach.
type EquipmentBonus struct {
	Attack   int
	Health   int
	Keywords []Keyword
}

// Card is the static definition of a card.
type Card struct {
	Name        string
	Kind        CardKind
	Rarity      Rarity
	Cost        int // informational; plays are capped per turn, not by cost
	Attack      int
	Health      int
	Effect      EffectCode
	HeroEffects map[HeroID]EffectCode
	Bonus       *EquipmentBonus
	Trigger     TrapTrigger
	Text        string
	Token       bool
}

// EffectFor returns the effect code this card resolves with under the given hero.
func (c *Card) EffectFor(hero HeroID) EffectCode {
	if code, ok := c.HeroEffects[hero]; ok {
		return code
	}
	return c.Effect
}

func (c *Card) String() string {
	if c.Kind == KindCreature {
		return fmt.Sprintf("%s (%d/%d)", c.Name, c.Attack, c.Health)
	}
	return fmt.Sprintf("%s [%s]", c.Name, c.Kind)
}

// Hero is the static definition of a hero and its power.
type Hero struct {
	ID        HeroID
	Name      string
	Class     string
	Power     PowerCode
	PowerName string
	PowerText string
}

// --- Card instance (runtime) ---

// TempBuff is a stat change reverted when the current turn ends.
type TempBuff struct {
	Attack int
	Health int
}

// CardInstance is a runtime copy of a card in a match.
type CardInstance struct {
	Card  *Card
	ID    string
	Owner int

	// Creature state
	Attack        int
	Health        int
	CurrentHealth int
	Position      int
	CanAttack     bool
	Stunned       bool
	Burn          int // damage taken at every end of turn
	TempBuffs     []TempBuff
	Equipment     *CardInstance

	// Equipment state
	AttachedTo *CardInstance

	// Trap state
	Revealed bool
}

// Name is a shorthand for the card definition's name.
func (ci *CardInstance) Name() string {
	return ci.Card.Name
}

// HasKeyword reports whether the creature has the keyword intrinsically or
// through its attached equipment.
func (ci *CardInstance) HasKeyword(k Keyword) bool {
	if kw, ok := intrinsicKeywords[ci.Card.Effect]; ok && kw == k {
		return true
	}
	if ci.Equipment != nil && ci.Equipment.Card.Bonus != nil {
		for _, ek := range ci.Equipment.Card.Bonus.Keywords {
			if ek == k {
				return true
			}
		}
	}
	return false
}

// Keywords lists every keyword the creature currently has.
func (ci *CardInstance) Keywords() []Keyword {
	var out []Keyword
	for k := KeywordFirstStrike; k <= KeywordSplash; k++ {
		if ci.HasKeyword(k) {
			out = append(out, k)
		}
	}
	return out
}

// Damaged reports whether the creature is below its maximum health.
func (ci *CardInstance) Damaged() bool {
	return ci.CurrentHealth < ci.Health
}

// resetCreature restores creature stats to the card definition.
func (ci *CardInstance) resetCreature() {
	ci.Attack = ci.Card.Attack
	ci.Health = ci.Card.Health
	ci.CurrentHealth = ci.Card.Health
	ci.Position = -1
	ci.CanAttack = false
	ci.Stunned = false
	ci.Burn = 0
	ci.TempBuffs = nil
	ci.Equipment = nil
}

func (ci *CardInstance) String() string {
	if ci.Card.Kind == KindCreature {
		return fmt.Sprintf("%s#%s (%d/%d)", ci.Card.Name, ci.ID, ci.Attack, ci.CurrentHealth)
	}
	return fmt.Sprintf("%s#%s", ci.Card.Name, ci.ID)
}
