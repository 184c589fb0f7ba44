package mcp

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/rumble/internal/game"
	"github.com/peterkuimelis/rumble/internal/session"
	"github.com/peterkuimelis/rumble/internal/view"
)

// Notice is a pushed message as presented in the tool response JSON.
type Notice struct {
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ToolResponse is the JSON envelope returned by all match tools.
type ToolResponse struct {
	MatchID  string          `json:"match_id"`
	Player   int             `json:"player"`
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Events   []Notice        `json:"events"`
	State    *view.StateView `json:"state,omitempty"`
	GameOver bool            `json:"game_over"`
	Winner   *int            `json:"winner,omitempty"`
	Result   string          `json:"result,omitempty"`
}

// HostOptions configures a Host.
type HostOptions struct {
	Catalog   *game.Catalog
	DecksFile string // empty selects the built-in decks
	Seed      int64  // 0 seeds each match from the clock
	Logger    *logrus.Logger
}

type inboxKey struct {
	match string
	seat  int
}

// Host runs matches for MCP clients. Messages the session manager pushes to
// a seat queue up until that seat's next tool call.
type Host struct {
	manager   *session.Manager
	catalog   *game.Catalog
	decksFile string
	seed      int64
	logger    *logrus.Logger

	mu    sync.Mutex
	inbox map[inboxKey][]view.Message
}

// NewHost creates a Host with its own session manager.
func NewHost(opts HostOptions) *Host {
	h := &Host{
		catalog:   opts.Catalog,
		decksFile: opts.DecksFile,
		seed:      opts.Seed,
		logger:    opts.Logger,
		inbox:     make(map[inboxKey][]view.Message),
	}
	if h.catalog == nil {
		h.catalog = game.DefaultCatalog()
	}
	if h.logger == nil {
		h.logger = logrus.StandardLogger()
	}
	h.manager = session.NewManager(session.Options{
		Catalog:     h.catalog,
		Broadcaster: h,
		Logger:      h.logger,
		OnFinish: func(matchID string, winner int, result string) {
			h.logger.WithField("match", matchID).Infof("result: %s", result)
		},
	})
	return h
}

// Manager exposes the underlying session manager.
func (h *Host) Manager() *session.Manager {
	return h.manager
}

// Send implements session.Broadcaster.
func (h *Host) Send(matchID string, seat int, msg view.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := inboxKey{matchID, seat}
	h.inbox[k] = append(h.inbox[k], msg)
}

// drain returns the seat's queued messages and clears the queue.
func (h *Host) drain(matchID string, seat int) []Notice {
	h.mu.Lock()
	k := inboxKey{matchID, seat}
	msgs := h.inbox[k]
	delete(h.inbox, k)
	h.mu.Unlock()

	notices := make([]Notice, 0, len(msgs))
	for _, m := range msgs {
		notices = append(notices, Notice{
			Type:    m.Type,
			Action:  m.Action,
			Success: m.Success,
			Message: m.Message,
		})
	}
	return notices
}

// SeatSetup describes one side of a new match.
type SeatSetup struct {
	Name string
	Deck int         // 1-indexed deck number; 0 deals a random starter deck
	Hero game.HeroID // required for starter decks, ignored otherwise
}

// StartMatch creates a match and returns its id.
func (h *Host) StartMatch(seats [2]SeatSetup, firstPlayer int, seed int64) (string, error) {
	if seed == 0 {
		seed = h.seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cfg := game.MatchConfig{
		Seed:        seed,
		FirstPlayer: firstPlayer,
	}
	for i, s := range seats {
		pc, err := h.resolveSeat(s, rng)
		if err != nil {
			return "", fmt.Errorf("player %d: %w", i+1, err)
		}
		cfg.Players[i] = pc
	}
	return h.manager.Create(cfg)
}

func (h *Host) resolveSeat(s SeatSetup, rng *rand.Rand) (game.PlayerConfig, error) {
	if s.Deck == 0 {
		if _, ok := h.catalog.Hero(s.Hero); !ok {
			return game.PlayerConfig{}, fmt.Errorf("unknown hero %q", s.Hero)
		}
		return game.PlayerConfig{
			Name: s.Name,
			Hero: s.Hero,
			Deck: game.StarterDeck(h.catalog, rng, game.StarterDeckSize),
		}, nil
	}
	deck, err := game.DeckByNumber(h.decksFile, h.catalog, s.Deck)
	if err != nil {
		return game.PlayerConfig{}, err
	}
	name := s.Name
	if name == "" {
		name = deck.Name
	}
	return game.PlayerConfig{Name: name, Hero: deck.Hero, Deck: deck.Cards}, nil
}

// respond builds the envelope for seat after an action (or none).
func (h *Host) respond(matchID string, seat int, res *game.Result) (*ToolResponse, error) {
	sv, err := h.manager.View(matchID, seat)
	if err != nil {
		return nil, err
	}
	resp := &ToolResponse{
		MatchID:  matchID,
		Player:   seat,
		Success:  true,
		Events:   h.drain(matchID, seat),
		State:    sv,
		GameOver: sv.GameOver,
		Result:   sv.Result,
	}
	if res != nil {
		resp.Success = res.Success
		resp.Message = res.Message
	}
	if sv.GameOver {
		winner := seat
		if !sv.YouWon {
			winner = 1 - seat
		}
		resp.Winner = &winner
	}
	return resp, nil
}

// respondJSON marshals a response to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
