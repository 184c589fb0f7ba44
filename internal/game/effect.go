package game

import (
	"sort"
	"sync"
)

// Timing categorizes when an effect code resolves.
type Timing int

const (
	TimingKeyword     Timing = iota // static annotation, read by the engine
	TimingOnSummon                  // resolves when the creature enters the board
	TimingOnAttack                  // resolves after the creature's attack
	TimingOnAllyDeath               // resolves on each surviving ally when an ally dies
	TimingSpell                     // resolves when the spell is cast
	TimingEquip                     // bonus carried by the card's EquipmentBonus
	TimingTrap                      // resolves when the trap springs
)

func (t Timing) String() string {
	switch t {
	case TimingKeyword:
		return "Keyword"
	case TimingOnSummon:
		return "OnSummon"
	case TimingOnAttack:
		return "OnAttack"
	case TimingOnAllyDeath:
		return "OnAllyDeath"
	case TimingSpell:
		return "Spell"
	case TimingEquip:
		return "Equip"
	case TimingTrap:
		return "Trap"
	default:
		return "Unknown"
	}
}

// Targeting describes what kind of target an effect needs.
type Targeting int

const (
	TargetNone           Targeting = iota
	TargetCreature                 // a creature on either board
	TargetCreatureOrHero           // a creature or either hero
)

// EffectContext carries everything an effect may read.
type EffectContext struct {
	Source       *CardInstance
	Target       *CardInstance // resolved creature target, if any
	TargetHero   bool          // target is TargetPlayer's hero
	TargetPlayer int
	Player       int // controller of the source
	Hero         HeroID
}

// EffectResult is what an effect reports back to the engine.
type EffectResult struct {
	Success bool
	Message string
	// Cancel negates the action that triggered the effect (traps).
	Cancel bool
}

func effectOK(msg string) EffectResult {
	return EffectResult{Success: true, Message: msg}
}

func effectFail(msg string) EffectResult {
	return EffectResult{Message: msg}
}

// EffectFunc applies an effect to the engine's match state.
type EffectFunc func(e *Engine, ctx EffectContext) EffectResult

// EffectDef is one registry entry.
type EffectDef struct {
	Code      EffectCode
	Timing    Timing
	Targeting Targeting
	Apply     EffectFunc // nil for keywords and equipment
}

type heroEffectKey struct {
	code EffectCode
	hero HeroID
}

// Registry maps effect codes to their definitions. Hero overrides are keyed
// by (code, hero) and take precedence over the default entry.
type Registry struct {
	defs   map[EffectCode]EffectDef
	heroes map[heroEffectKey]EffectDef
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:   make(map[EffectCode]EffectDef),
		heroes: make(map[heroEffectKey]EffectDef),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry of built-in effects.
// It must not be modified after first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltinEffects(defaultRegistry)
	})
	return defaultRegistry
}

// Register adds or replaces a hero-agnostic effect.
func (r *Registry) Register(code EffectCode, timing Timing, targeting Targeting, fn EffectFunc) {
	r.defs[code] = EffectDef{Code: code, Timing: timing, Targeting: targeting, Apply: fn}
}

// RegisterHero adds a hero-specific override. The default entry for the code
// decides timing.
func (r *Registry) RegisterHero(code EffectCode, hero HeroID, targeting Targeting, fn EffectFunc) {
	timing := TimingSpell
	if def, ok := r.defs[code]; ok {
		timing = def.Timing
	}
	r.heroes[heroEffectKey{code, hero}] = EffectDef{Code: code, Timing: timing, Targeting: targeting, Apply: fn}
}

// Lookup resolves a code for a hero, falling back to the default entry.
func (r *Registry) Lookup(code EffectCode, hero HeroID) (EffectDef, bool) {
	if def, ok := r.heroes[heroEffectKey{code, hero}]; ok {
		return def, true
	}
	def, ok := r.defs[code]
	return def, ok
}

// Known reports whether a code has a default entry.
func (r *Registry) Known(code EffectCode) bool {
	_, ok := r.defs[code]
	return ok
}

// Codes returns all default codes in sorted order.
func (r *Registry) Codes() []EffectCode {
	codes := make([]EffectCode, 0, len(r.defs))
	for c := range r.defs {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// intrinsicKeywords maps creature effect codes to the keyword they grant.
var intrinsicKeywords = map[EffectCode]Keyword{
	"FIRST_STRIKE": KeywordFirstStrike,
	"TAUNT":        KeywordTaunt,
	"SPELL_IMMUNE": KeywordSpellImmune,
	"EVASION":      KeywordEvasion,
	"EXECUTE":      KeywordExecute,
}

// runEffect resolves an effect through the registry. Unknown codes are a
// catalog mismatch: they are logged and do nothing.
func (e *Engine) runEffect(code EffectCode, ctx EffectContext) EffectResult {
	def, ok := e.Registry.Lookup(code, ctx.Hero)
	if !ok {
		e.diag.WithField("code", code).Warn("unknown effect code, ignoring")
		return effectFail("unknown effect " + string(code))
	}
	if def.Apply == nil {
		return effectOK("")
	}
	return def.Apply(e, ctx)
}
