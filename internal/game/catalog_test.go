package game

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := DefaultCatalog()
	require.NoError(t, ValidateCatalog(cat, DefaultRegistry()))
	assert.Len(t, cat.Heroes(), 9)

	hb, ok := cat.Card("Hull Breaker")
	require.True(t, ok)
	assert.Equal(t, KindCreature, hb.Kind)
	assert.Equal(t, 3, hb.Attack)
	assert.Equal(t, 3, hb.Health)

	blade := cat.MustCard("Plasma Blade")
	require.NotNil(t, blade.Bonus)
	assert.Equal(t, []Keyword{KeywordFirstStrike}, blade.Bonus.Keywords)

	jammer := cat.MustCard("Signal Jammer")
	assert.Equal(t, TriggerOpponentSpell, jammer.Trigger)

	assert.Panics(t, func() { cat.MustCard("Nonexistent") })
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog([]byte("heroes: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog YAML")

	_, err = LoadCatalog([]byte(`
cards:
  - {name: Odd, kind: vehicle, rarity: common}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `card "Odd"`)

	_, err = LoadCatalog([]byte(`
cards:
  - {name: Twin, kind: creature, rarity: common, health: 1}
  - {name: Twin, kind: creature, rarity: common, health: 1}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate card")
}

func TestValidateCatalogReportsEveryProblem(t *testing.T) {
	cat, err := LoadCatalog([]byte(`
heroes:
  - {id: wizard, name: Wizard, power: FIREBALL}
cards:
  - {name: Ghost, kind: creature, rarity: common, attack: 1, health: 0}
  - {name: Hex, kind: spell, rarity: common, effect: HEX_EVERYTHING}
  - {name: Bare Blade, kind: equipment, rarity: common, effect: EQUIP_1_2}
  - {name: Dud, kind: trap, rarity: common, effect: TRAP_COUNTER_SPELL}
  - {name: Misfiled, kind: spell, rarity: common, effect: TAUNT}
  - {name: Odd Bolt, kind: spell, rarity: common, effect: DAMAGE_3, hero_effects: {wizard: TAUNT}}
`))
	require.NoError(t, err)

	err = ValidateCatalog(cat, DefaultRegistry())
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		`hero "wizard": unknown power code "FIREBALL"`,
		`card "Ghost": creature health must be positive`,
		`card "Hex": unknown effect code "HEX_EVERYTHING"`,
		`card "Bare Blade": equipment has no bonus descriptor`,
		`card "Dud": trap has no trigger condition`,
		`card "Misfiled": effect "TAUNT"`,
		`card "Odd Bolt": wizard override: effect "TAUNT" (`,
		`token "Turret" missing`,
		`token "Mine Trap" missing`,
	} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
heroes:
  - {id: medic, name: Medic, power: NANOBOTS}
cards:
  - {name: Pup, kind: creature, rarity: common, attack: 1, health: 1}
`), 0o644))

	cat, err := LoadCatalogFile(path)
	require.NoError(t, err)
	pup, ok := cat.Card("Pup")
	require.True(t, ok)
	assert.Equal(t, EffectNone, pup.Effect)

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultDecksResolve(t *testing.T) {
	decks, err := DefaultDecks(DefaultCatalog())
	require.NoError(t, err)
	require.Len(t, decks, 3)
	for _, d := range decks {
		assert.GreaterOrEqual(t, len(d.Cards), InitialHandSize, d.Name)
		_, ok := DefaultCatalog().Hero(d.Hero)
		assert.True(t, ok, d.Name)
	}

	d, err := DeckByNumber("", DefaultCatalog(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Iron Wall", d.Name)
	_, err = DeckByNumber("", DefaultCatalog(), 9)
	assert.Error(t, err)
}

func TestParseDecksErrors(t *testing.T) {
	cat := DefaultCatalog()
	for name, data := range map[string]string{
		"unknown hero":  "decks: [{name: A, hero: nobody, cards: []}]",
		"unknown card":  "decks: [{name: A, hero: tank-brute, cards: [{name: Nope, count: 1}]}]",
		"token in deck": "decks: [{name: A, hero: tank-brute, cards: [{name: Turret, count: 1}]}]",
		"bad yaml":      "decks: [",
	} {
		_, err := ParseDecks([]byte(data), cat)
		assert.Error(t, err, name)
	}
}

func TestParseDeckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
decks:
  - name: Rats
    hero: sharpshooter
    cards:
      - {name: Scrap Rat, count: 4}
      - {name: Plasma Bolt, count: 2}
`), 0o644))

	decks, err := ParseDeckFile(path, DefaultCatalog())
	require.NoError(t, err)
	rats, ok := decks["Rats"]
	require.True(t, ok)
	assert.Equal(t, HeroID("sharpshooter"), rats.Hero)
	require.Len(t, rats.Cards, 6)
	assert.Equal(t, "Scrap Rat", rats.Cards[0].Name)
	assert.Equal(t, "Plasma Bolt", rats.Cards[5].Name)
}

func TestStarterDeck(t *testing.T) {
	deck := StarterDeck(DefaultCatalog(), rand.New(rand.NewSource(7)), StarterDeckSize)
	require.Len(t, deck, StarterDeckSize)
	for _, c := range deck {
		assert.Equal(t, RarityCommon, c.Rarity, c.Name)
		assert.False(t, c.Token, c.Name)
	}
}
