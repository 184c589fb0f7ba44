package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/rumble/internal/bot"
	"github.com/peterkuimelis/rumble/internal/config"
	"github.com/peterkuimelis/rumble/internal/game"
	"github.com/peterkuimelis/rumble/internal/log"
	"github.com/peterkuimelis/rumble/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if err := config.SetupLogging(logrus.StandardLogger(), cfg); err != nil {
		fail(err)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	switch cmd {
	case "validate":
		runValidate(cfg, args)
	case "cards":
		runCards(cfg, args)
	case "heroes":
		runHeroes(cfg, args)
	case "decks":
		runDecks(cfg, args)
	case "sim":
		runSim(cfg, args)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  rumble validate [--catalog FILE] [--decks FILE]")
	fmt.Println("  rumble cards    [--catalog FILE] [--kind KIND]")
	fmt.Println("  rumble heroes   [--catalog FILE]")
	fmt.Println("  rumble decks    [--catalog FILE] [--decks FILE]")
	fmt.Println("  rumble sim      [--p1 N] [--p2 N] [--seed S] [--turns T]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  validate  Check the catalog and deck files")
	fmt.Println("  cards     List card definitions")
	fmt.Println("  heroes    List heroes and their powers")
	fmt.Println("  decks     List decks")
	fmt.Println("  sim       Play a match between two bots and print the action log")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func catalogFlag(fs *flag.FlagSet, cfg config.Config) *string {
	return fs.String("catalog", cfg.CatalogFile, "path to catalog YAML file (built-in catalog if empty)")
}

func decksFlag(fs *flag.FlagSet, cfg config.Config) *string {
	return fs.String("decks", cfg.DecksFile, "path to decks YAML file (built-in decks if empty)")
}

func loadCatalog(path string) *game.Catalog {
	if path == "" {
		return game.DefaultCatalog()
	}
	cat, err := game.LoadCatalogFile(path)
	if err != nil {
		fail(err)
	}
	return cat
}

func loadDecks(path string, cat *game.Catalog) []game.Deck {
	if path == "" {
		decks, err := game.DefaultDecks(cat)
		if err != nil {
			fail(err)
		}
		return decks
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fail(err)
	}
	decks, err := game.ParseDecks(data, cat)
	if err != nil {
		fail(err)
	}
	return decks
}

func runValidate(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	catalog := catalogFlag(fs, cfg)
	decks := decksFlag(fs, cfg)
	fs.Parse(args)

	cat := loadCatalog(*catalog)
	if err := game.ValidateCatalog(cat, game.DefaultRegistry()); err != nil {
		fail(err)
	}
	loaded := loadDecks(*decks, cat)
	for _, d := range loaded {
		if len(d.Cards) < game.InitialHandSize {
			fail(fmt.Errorf("deck %q has %d cards, need at least %d", d.Name, len(d.Cards), game.InitialHandSize))
		}
	}
	fmt.Printf("ok: %d cards, %d heroes, %d decks\n", len(cat.Cards()), len(cat.Heroes()), len(loaded))
}

func runCards(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("cards", flag.ExitOnError)
	catalog := catalogFlag(fs, cfg)
	kind := fs.String("kind", "", "only list this kind (creature, spell, equipment, trap)")
	fs.Parse(args)

	var filter *game.CardKind
	if *kind != "" {
		k, err := game.ParseCardKind(*kind)
		if err != nil {
			fail(err)
		}
		filter = &k
	}
	for _, c := range loadCatalog(*catalog).Cards() {
		if filter != nil && c.Kind != *filter {
			continue
		}
		token := ""
		if c.Token {
			token = " [token]"
		}
		fmt.Printf("%-24s %-9s %-9s %s%s\n", c.String(), c.Kind, c.Rarity, c.Text, token)
	}
}

func runHeroes(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("heroes", flag.ExitOnError)
	catalog := catalogFlag(fs, cfg)
	fs.Parse(args)

	for _, h := range loadCatalog(*catalog).Heroes() {
		fmt.Printf("%-16s %-18s %-18s %s\n", h.ID, h.Name, h.PowerName, h.PowerText)
	}
}

func runDecks(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("decks", flag.ExitOnError)
	catalog := catalogFlag(fs, cfg)
	decks := decksFlag(fs, cfg)
	fs.Parse(args)

	for i, d := range loadDecks(*decks, loadCatalog(*catalog)) {
		fmt.Printf("%d. %s (%s, %d cards)\n", i+1, d.Name, d.Hero, len(d.Cards))
	}
}

func runSim(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	catalog := catalogFlag(fs, cfg)
	decks := decksFlag(fs, cfg)
	p1 := fs.Int("p1", 1, "deck number for player 1 (0 = random starter deck)")
	p2 := fs.Int("p2", 2, "deck number for player 2 (0 = random starter deck)")
	hero := fs.String("hero", "tank-brute", "hero for starter decks")
	seed := fs.Int64("seed", cfg.Seed, "random seed (0 = clock)")
	turns := fs.Int("turns", 200, "give up after this many turns")
	fs.Parse(args)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	cat := loadCatalog(*catalog)
	rng := rand.New(rand.NewSource(*seed))

	seat := func(n int) game.PlayerConfig {
		if n == 0 {
			return game.PlayerConfig{Name: "Starter", Hero: game.HeroID(*hero), Deck: game.StarterDeck(cat, rng, game.StarterDeckSize)}
		}
		loaded := loadDecks(*decks, cat)
		if n < 1 || n > len(loaded) {
			fail(fmt.Errorf("deck %d not found (have %d decks)", n, len(loaded)))
		}
		d := loaded[n-1]
		return game.PlayerConfig{Name: d.Name, Hero: d.Hero, Deck: d.Cards}
	}

	m := session.NewManager(session.Options{
		Catalog: cat,
		OnFinish: func(matchID string, winner int, result string) {
			fmt.Println(result)
		},
	})
	id, err := m.Create(game.MatchConfig{
		Players: [2]game.PlayerConfig{seat(*p1), seat(*p2)},
		Logger:  log.NewTextLogger(os.Stdout),
		Seed:    *seed,
	})
	if err != nil {
		fail(err)
	}

	entry := logrus.WithField("match", id)
	bots := [2]*bot.Greedy{
		{Match: m, MatchID: id, Seat: 0, Log: entry},
		{Match: m, MatchID: id, Seat: 1, Log: entry},
	}
	over, err := bot.PlayOut(bots, *turns)
	if err != nil {
		fail(err)
	}
	if !over {
		fmt.Printf("no result after %d turns (seed %d)\n", *turns, *seed)
	}
}
