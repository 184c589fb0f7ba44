package game

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Names of token cards that hero powers create.
const (
	TokenTurret = "Turret"
	TokenMine   = "Mine Trap"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

// CatalogFile is the top-level YAML structure of a catalog.
type CatalogFile struct {
	Heroes []HeroEntry        `yaml:"heroes"`
	Cards  []CatalogCardEntry `yaml:"cards"`
}

// HeroEntry is a hero as written in YAML.
type HeroEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Class     string `yaml:"class"`
	Power     string `yaml:"power"`
	PowerName string `yaml:"power_name"`
	PowerText string `yaml:"power_text"`
}

// CatalogCardEntry is a card as written in YAML.
type CatalogCardEntry struct {
	Name        string            `yaml:"name"`
	Kind        string            `yaml:"kind"`
	Rarity      string            `yaml:"rarity"`
	Cost        int               `yaml:"cost"`
	Attack      int               `yaml:"attack"`
	Health      int               `yaml:"health"`
	Effect      string            `yaml:"effect"`
	HeroEffects map[string]string `yaml:"hero_effects"`
	Bonus       *BonusEntry       `yaml:"bonus"`
	Trigger     string            `yaml:"trigger"`
	Token       bool              `yaml:"token"`
	Text        string            `yaml:"text"`
}

// BonusEntry is an equipment bonus as written in YAML.
type BonusEntry struct {
	Attack   int      `yaml:"attack"`
	Health   int      `yaml:"health"`
	Keywords []string `yaml:"keywords"`
}

// Catalog holds every card and hero definition. It is read-only once loaded
// and may be shared between matches.
type Catalog struct {
	cards     map[string]*Card
	heroes    map[HeroID]*Hero
	cardOrder []*Card
	heroOrder []*Hero
}

// LoadCatalog parses a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cat := &Catalog{
		cards:  make(map[string]*Card),
		heroes: make(map[HeroID]*Hero),
	}
	for _, he := range cf.Heroes {
		h := &Hero{
			ID:        HeroID(he.ID),
			Name:      he.Name,
			Class:     he.Class,
			Power:     PowerCode(he.Power),
			PowerName: he.PowerName,
			PowerText: he.PowerText,
		}
		if _, dup := cat.heroes[h.ID]; dup {
			return nil, fmt.Errorf("duplicate hero %q", h.ID)
		}
		cat.heroes[h.ID] = h
		cat.heroOrder = append(cat.heroOrder, h)
	}
	for _, ce := range cf.Cards {
		card, err := ce.toCard()
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", ce.Name, err)
		}
		if _, dup := cat.cards[card.Name]; dup {
			return nil, fmt.Errorf("duplicate card %q", card.Name)
		}
		cat.cards[card.Name] = card
		cat.cardOrder = append(cat.cardOrder, card)
	}
	return cat, nil
}

// LoadCatalogFile reads and parses a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadCatalog(data)
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// data does not parse, which is a build defect.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		cat, err := LoadCatalog(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Card looks up a card definition by name.
func (c *Catalog) Card(name string) (*Card, bool) {
	card, ok := c.cards[name]
	return card, ok
}

// MustCard looks up a card definition by name and panics if it doesn't exist.
func (c *Catalog) MustCard(name string) *Card {
	card, ok := c.cards[name]
	if !ok {
		panic(fmt.Sprintf("unknown card: %q", name))
	}
	return card
}

// Hero looks up a hero by ID.
func (c *Catalog) Hero(id HeroID) (*Hero, bool) {
	h, ok := c.heroes[id]
	return h, ok
}

// Cards returns all cards in catalog order.
func (c *Catalog) Cards() []*Card {
	return c.cardOrder
}

// Heroes returns all heroes in catalog order.
func (c *Catalog) Heroes() []*Hero {
	return c.heroOrder
}

func (ce CatalogCardEntry) toCard() (*Card, error) {
	kind, err := ParseCardKind(ce.Kind)
	if err != nil {
		return nil, err
	}
	rarity, err := ParseRarity(ce.Rarity)
	if err != nil {
		return nil, err
	}
	card := &Card{
		Name:   ce.Name,
		Kind:   kind,
		Rarity: rarity,
		Cost:   ce.Cost,
		Attack: ce.Attack,
		Health: ce.Health,
		Effect: EffectCode(ce.Effect),
		Text:   ce.Text,
		Token:  ce.Token,
	}
	if card.Effect == "" {
		card.Effect = EffectNone
	}
	if len(ce.HeroEffects) > 0 {
		card.HeroEffects = make(map[HeroID]EffectCode, len(ce.HeroEffects))
		for hero, code := range ce.HeroEffects {
			card.HeroEffects[HeroID(hero)] = EffectCode(code)
		}
	}
	if ce.Bonus != nil {
		bonus := &EquipmentBonus{Attack: ce.Bonus.Attack, Health: ce.Bonus.Health}
		for _, kw := range ce.Bonus.Keywords {
			k, err := ParseKeyword(kw)
			if err != nil {
				return nil, err
			}
			bonus.Keywords = append(bonus.Keywords, k)
		}
		card.Bonus = bonus
	}
	if ce.Trigger != "" {
		trig, err := ParseTrapTrigger(ce.Trigger)
		if err != nil {
			return nil, err
		}
		card.Trigger = trig
	}
	return card, nil
}

// --- Enum parsing ---

func ParseCardKind(s string) (CardKind, error) {
	switch strings.ToLower(s) {
	case "creature":
		return KindCreature, nil
	case "spell":
		return KindSpell, nil
	case "equipment":
		return KindEquipment, nil
	case "trap":
		return KindTrap, nil
	}
	return 0, fmt.Errorf("unknown card kind %q", s)
}

func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(s) {
	case "", "common":
		return RarityCommon, nil
	case "rare":
		return RarityRare, nil
	case "epic":
		return RarityEpic, nil
	case "legendary":
		return RarityLegendary, nil
	case "mythic":
		return RarityMythic, nil
	case "seasonal":
		return RaritySeasonal, nil
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

func ParseKeyword(s string) (Keyword, error) {
	switch strings.ToLower(s) {
	case "first_strike":
		return KeywordFirstStrike, nil
	case "taunt":
		return KeywordTaunt, nil
	case "spell_immune":
		return KeywordSpellImmune, nil
	case "evasion":
		return KeywordEvasion, nil
	case "execute":
		return KeywordExecute, nil
	case "regenerate":
		return KeywordRegenerate, nil
	case "stun_on_hit":
		return KeywordStunOnHit, nil
	case "splash":
		return KeywordSplash, nil
	}
	return 0, fmt.Errorf("unknown keyword %q", s)
}

func ParseTrapTrigger(s string) (TrapTrigger, error) {
	switch strings.ToUpper(s) {
	case "ON_OPPONENT_SUMMON":
		return TriggerOpponentSummon, nil
	case "ON_OPPONENT_SPELL":
		return TriggerOpponentSpell, nil
	case "ON_OPPONENT_ATTACK":
		return TriggerOpponentAttack, nil
	case "ON_HERO_HIT":
		return TriggerHeroHit, nil
	}
	return 0, fmt.Errorf("unknown trap trigger %q", s)
}
