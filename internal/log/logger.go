package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is a sink for action log entries.
type EventLogger interface {
	Log(entry Entry)
	Entries() []Entry
}

// --- MemoryLogger: stores entries in memory for test assertions ---

type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
	seq     int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	if entry.Seq == 0 {
		entry.Seq = l.seq
	}
	l.entries = append(l.entries, entry)
}

func (l *MemoryLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesOfType returns all entries matching the given type.
func (l *MemoryLogger) EntriesOfType(t EntryType) []Entry {
	return OfType(l.Entries(), t)
}

// LastEntry returns the most recent entry, or a zero entry if none.
func (l *MemoryLogger) LastEntry() Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return Entry{}
	}
	return l.entries[len(l.entries)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(entry Entry) {
	l.MemoryLogger.Log(entry)
	fmt.Fprintln(l.w, FormatEntry(entry))
}

// OfType filters entries by type.
func OfType(entries []Entry, t EntryType) []Entry {
	var result []Entry
	for _, e := range entries {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// --- Formatting ---

// PlayerName returns "P1" or "P2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEntry formats a single entry as a human-readable line.
func FormatEntry(e Entry) string {
	phase := e.Phase
	for len(phase) < 6 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s %-10s| %s", e.Turn, phase, e.Type, e.Details)
}

// FormatAll formats all entries as a multi-line string.
func FormatAll(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(FormatEntry(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common entries ---

func NewTurnEntry(turn int, phase string, player int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntryStartTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, PlayerName(player)),
	}
}

func NewDrawEntry(turn int, phase string, player int, cardID, cardName string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntryDraw,
		CardID:  cardID,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", PlayerName(player), cardName),
		Public:  fmt.Sprintf("%s draws a card", PlayerName(player)),
	}
}

func NewDeckOutEntry(turn int, phase string, player int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntryDraw,
		Details: fmt.Sprintf("%s must draw from an empty deck", PlayerName(player)),
	}
}

func NewSkipDrawEntry(turn int, phase string, player int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntrySkipDraw,
		Details: fmt.Sprintf("%s skips the draw for an extra play", PlayerName(player)),
	}
}

func NewPlayCardEntry(turn int, phase string, player int, cardID, cardName, targetID, how string) Entry {
	return Entry{
		Turn:     turn,
		Phase:    phase,
		Player:   player,
		Type:     EntryPlayCard,
		CardID:   cardID,
		Card:     cardName,
		TargetID: targetID,
		Details:  fmt.Sprintf("%s plays %s (%s)", PlayerName(player), cardName, how),
	}
}

func NewSetTrapEntry(turn int, phase string, player int, cardID, cardName string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntryPlayCard,
		CardID:  cardID,
		Card:    cardName,
		Details: fmt.Sprintf("%s sets %s face-down", PlayerName(player), cardName),
		Public:  fmt.Sprintf("%s sets a trap", PlayerName(player)),
	}
}

func NewAttackEntry(turn int, phase string, player int, attackerID, attacker, targetID, target string) Entry {
	return Entry{
		Turn:     turn,
		Phase:    phase,
		Player:   player,
		Type:     EntryAttack,
		CardID:   attackerID,
		Card:     attacker,
		TargetID: targetID,
		Details:  fmt.Sprintf("%s attacks: %s → %s", PlayerName(player), attacker, target),
	}
}

func NewUsePowerEntry(turn int, phase string, player int, powerName, targetID, outcome string) Entry {
	return Entry{
		Turn:     turn,
		Phase:    phase,
		Player:   player,
		Type:     EntryUsePower,
		Card:     powerName,
		TargetID: targetID,
		Details:  fmt.Sprintf("%s uses %s: %s", PlayerName(player), powerName, outcome),
	}
}

func NewEndTurnEntry(turn int, phase string, player int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntryEndTurn,
		Details: fmt.Sprintf("%s ends turn %d", PlayerName(player), turn),
	}
}

func NewTrapEntry(turn int, phase string, owner int, trapID, trapName, outcome string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  owner,
		Type:    EntryTrap,
		CardID:  trapID,
		Card:    trapName,
		Details: fmt.Sprintf("%s's trap %s springs: %s", PlayerName(owner), trapName, outcome),
	}
}

func NewDestroyEntry(turn int, phase string, owner int, cardID, cardName, reason string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  owner,
		Type:    EntryDestroy,
		CardID:  cardID,
		Card:    cardName,
		Details: fmt.Sprintf("%s is destroyed and sent to %s's graveyard (%s)", cardName, PlayerName(owner), reason),
	}
}

func NewHealthEntry(turn int, phase string, player int, oldHP, newHP int, reason string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntryHealthChange,
		Details: fmt.Sprintf("%s health: %d → %d (%s)", PlayerName(player), oldHP, newHP, reason),
	}
}

func NewEffectEntry(turn int, phase string, player int, cardID, cardName, details string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EntryEffect,
		CardID:  cardID,
		Card:    cardName,
		Details: details,
	}
}

func NewWinEntry(turn int, phase string, winner int, reason string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EntryWin,
		Details: fmt.Sprintf("%s wins! (%s)", PlayerName(winner), reason),
	}
}
