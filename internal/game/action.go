package game

import (
	"fmt"
	"strings"
)

// ActionType is a player intent accepted by Engine.Apply.
type ActionType int

const (
	ActionDraw ActionType = iota
	ActionSkipDraw
	ActionPlayCard
	ActionAttack
	ActionUsePower
	ActionEndTurn
)

func (a ActionType) String() string {
	switch a {
	case ActionDraw:
		return "draw_card"
	case ActionSkipDraw:
		return "skip_draw"
	case ActionPlayCard:
		return "play_card"
	case ActionAttack:
		return "attack"
	case ActionUsePower:
		return "use_hero_power"
	case ActionEndTurn:
		return "end_turn"
	default:
		return "unknown"
	}
}

// ParseActionType maps a wire name like "play_card" to an ActionType.
func ParseActionType(s string) (ActionType, error) {
	for a := ActionDraw; a <= ActionEndTurn; a++ {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Action is one player intent. Only the fields its Type needs are read.
type Action struct {
	Type       ActionType `json:"type"`
	CardID     string     `json:"card_id,omitempty"`
	Position   *int       `json:"position,omitempty"`
	TargetID   string     `json:"target_id,omitempty"`
	AttackerID string     `json:"attacker_id,omitempty"`
}

// Apply runs an action on behalf of player (0 or 1). Actions from the
// player whose turn it is not are rejected without touching state.
func (e *Engine) Apply(player int, a Action) Result {
	gs := e.State
	if gs.Over() {
		return fail(MsgGameOver)
	}
	if player != gs.Active {
		return fail(MsgNotYourTurn)
	}
	switch a.Type {
	case ActionDraw:
		return e.DrawCard()
	case ActionSkipDraw:
		return e.SkipDraw()
	case ActionPlayCard:
		return e.PlayCard(PlayRequest{CardID: a.CardID, Position: a.Position, TargetID: a.TargetID})
	case ActionAttack:
		return e.Attack(a.AttackerID, a.TargetID)
	case ActionUsePower:
		return e.UseHeroPower(a.TargetID)
	case ActionEndTurn:
		return e.EndTurn()
	}
	return fail(MsgUnknownAction)
}
