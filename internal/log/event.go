package log

import "time"

// EntryType enumerates the kinds of entries in a match's action log.
type EntryType int

const (
	EntryDraw EntryType = iota
	EntrySkipDraw
	EntryPlayCard
	EntryAttack
	EntryUsePower
	EntryEndTurn
	EntryTrap
	EntryDestroy
	EntryHealthChange
	EntryEffect
	EntryWin
	EntryStartTurn
)

func (e EntryType) String() string {
	switch e {
	case EntryDraw:
		return "DRAW"
	case EntrySkipDraw:
		return "SKIP_DRAW"
	case EntryPlayCard:
		return "PLAY_CARD"
	case EntryAttack:
		return "ATTACK"
	case EntryUsePower:
		return "USE_POWER"
	case EntryEndTurn:
		return "END_TURN"
	case EntryTrap:
		return "TRAP"
	case EntryDestroy:
		return "DESTROY"
	case EntryHealthChange:
		return "HEALTH"
	case EntryEffect:
		return "EFFECT"
	case EntryWin:
		return "WIN"
	case EntryStartTurn:
		return "START_TURN"
	default:
		return "UNKNOWN"
	}
}

// Entry is a single record in the append-only action log of a match.
type Entry struct {
	Seq      int       // position in the match log (1-based)
	Turn     int       // turn counter at the time of the entry
	Phase    string    // phase name
	Player   int       // acting player (0 or 1)
	Type     EntryType // entry type
	CardID   string    // card instance id (if applicable)
	Card     string    // card name (if applicable)
	TargetID string    // target instance id or hero sentinel
	Details  string    // human-readable detail string
	Public   string    // Details as shown to the other seat; empty if Details is public
	Time     time.Time // informational only; Seq is the authoritative order
}
