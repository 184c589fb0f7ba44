// Package session hosts live matches and serializes the actions sent to them.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/rumble/internal/game"
	"github.com/peterkuimelis/rumble/internal/view"
)

var (
	// ErrMatchNotFound is returned for an unknown or removed match id.
	ErrMatchNotFound = errors.New("match not found")
	// ErrInvalidSeat is returned for a seat other than 0 or 1.
	ErrInvalidSeat = errors.New("seat must be 0 or 1")
)

// Broadcaster delivers messages to the players seated at a match.
type Broadcaster interface {
	Send(matchID string, seat int, msg view.Message)
}

// BroadcasterFunc adapts a function to Broadcaster.
type BroadcasterFunc func(matchID string, seat int, msg view.Message)

func (f BroadcasterFunc) Send(matchID string, seat int, msg view.Message) {
	f(matchID, seat, msg)
}

// OnFinishFunc is called once when a match reaches a terminal state.
type OnFinishFunc func(matchID string, winner int, result string)

// Table is one hosted match. Every engine call on it runs under mu.
type Table struct {
	mu       sync.Mutex
	engine   *game.Engine
	finished bool
	created  time.Time
}

// Options configures a Manager. Zero values pick defaults.
type Options struct {
	Catalog     *game.Catalog
	Registry    *game.Registry
	Broadcaster Broadcaster
	OnFinish    OnFinishFunc
	Logger      *logrus.Logger
	Now         func() time.Time
}

// Manager owns the live matches, keyed by match id.
type Manager struct {
	mu     sync.RWMutex
	tables map[string]*Table

	catalog     *game.Catalog
	registry    *game.Registry
	broadcaster Broadcaster
	onFinish    OnFinishFunc
	logger      *logrus.Logger
	now         func() time.Time
}

// NewManager creates an empty Manager.
func NewManager(opts Options) *Manager {
	m := &Manager{
		tables:      make(map[string]*Table),
		catalog:     opts.Catalog,
		registry:    opts.Registry,
		broadcaster: opts.Broadcaster,
		onFinish:    opts.OnFinish,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	if m.catalog == nil {
		m.catalog = game.DefaultCatalog()
	}
	if m.registry == nil {
		m.registry = game.DefaultRegistry()
	}
	if m.logger == nil {
		m.logger = logrus.StandardLogger()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Create sets up a match, starts its first turn and pushes the opening state
// to both seats. It returns the match id.
func (m *Manager) Create(cfg game.MatchConfig) (string, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	cfg.Catalog = m.catalog
	cfg.Registry = m.registry
	cfg.Diag = m.logger
	if cfg.Now == nil {
		cfg.Now = m.now
	}

	e, err := game.NewMatch(cfg)
	if err != nil {
		return "", fmt.Errorf("create match: %w", err)
	}
	if r := e.StartTurn(); !r.Success {
		return "", fmt.Errorf("start first turn: %s", r.Message)
	}

	t := &Table{engine: e, created: m.now()}
	m.mu.Lock()
	if _, dup := m.tables[cfg.ID]; dup {
		m.mu.Unlock()
		return "", fmt.Errorf("create match: id %q already in use", cfg.ID)
	}
	m.tables[cfg.ID] = t
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"match": cfg.ID,
		"p1":    e.State.Players[0].ID,
		"p2":    e.State.Players[1].ID,
	}).Info("match created")

	t.mu.Lock()
	defer t.mu.Unlock()
	for seat := 0; seat < 2; seat++ {
		m.send(cfg.ID, seat, view.Snapshot(e.State, seat))
	}
	return cfg.ID, nil
}

// Submit applies one action for seat under the match lock. A successful
// action pushes each seat its own view; a rejected one is reported only to
// the submitting seat.
func (m *Manager) Submit(matchID string, seat int, a game.Action) (game.Result, error) {
	if seat != 0 && seat != 1 {
		return game.Result{}, ErrInvalidSeat
	}
	t, err := m.table(matchID)
	if err != nil {
		return game.Result{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	res := t.engine.Apply(seat, a)
	if !res.Success {
		m.logger.WithFields(logrus.Fields{
			"match":  matchID,
			"seat":   seat,
			"action": a.Type.String(),
		}).Debugf("action rejected: %s", res.Message)
		m.send(matchID, seat, view.Rejected(a.Type, res))
		return res, nil
	}

	state := t.engine.State
	for s := 0; s < 2; s++ {
		m.send(matchID, s, view.StateMessage(state, s, seat, a.Type, res))
	}
	if state.Over() && !t.finished {
		t.finished = true
		m.logger.WithFields(logrus.Fields{
			"match":  matchID,
			"winner": state.Winner,
			"turns":  state.Turn,
		}).Info("match finished")
		if m.onFinish != nil {
			m.onFinish(matchID, state.Winner, state.Result)
		}
	}
	return res, nil
}

// View returns the match as seen from seat.
func (m *Manager) View(matchID string, seat int) (*view.StateView, error) {
	if seat != 0 && seat != 1 {
		return nil, ErrInvalidSeat
	}
	t, err := m.table(matchID)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return view.Build(t.engine.State, seat), nil
}

// Snapshot returns a deep copy of the full match state.
func (m *Manager) Snapshot(matchID string) (*game.MatchState, error) {
	t, err := m.table(matchID)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.GetState(), nil
}

// Remove drops a match. Finished or not, it accepts no more actions.
func (m *Manager) Remove(matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[matchID]; !ok {
		return ErrMatchNotFound
	}
	delete(m.tables, matchID)
	m.logger.WithField("match", matchID).Debug("match removed")
	return nil
}

// IDs lists the hosted match ids in creation order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.tables))
	for id := range m.tables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.tables[ids[i]], m.tables[ids[j]]
		if a.created.Equal(b.created) {
			return ids[i] < ids[j]
		}
		return a.created.Before(b.created)
	})
	return ids
}

func (m *Manager) table(matchID string) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return t, nil
}

func (m *Manager) send(matchID string, seat int, msg view.Message) {
	if m.broadcaster == nil {
		return
	}
	m.broadcaster.Send(matchID, seat, msg)
}
