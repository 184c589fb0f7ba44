package view

import (
	"fmt"

	"github.com/peterkuimelis/rumble/internal/game"
)

// Message types pushed to a seat.
const (
	TypeState    = "state"
	TypeRejected = "rejected"
	TypeGameOver = "game_over"
)

// Message is the envelope for everything pushed to a seat.
type Message struct {
	Type string `json:"type"`

	// Outcome of the action that produced this message.
	Action  string `json:"action,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	// For "state" and "game_over"
	State *StateView `json:"state,omitempty"`

	// For "game_over"
	Winner *int   `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// StateMessage wraps a successful action by actor with seat's view. Only the
// actor sees the engine's message; it can name a card the other seat must not.
func StateMessage(state *game.MatchState, seat, actor int, action game.ActionType, res game.Result) Message {
	msg := Message{
		Type:    TypeState,
		Action:  action.String(),
		Success: res.Success,
		Message: res.Message,
		State:   Build(state, seat),
	}
	if seat != actor {
		msg.Message = fmt.Sprintf("opponent used %s", action)
	}
	finish(&msg, state)
	return msg
}

// Snapshot is an unsolicited state push, e.g. at match start.
func Snapshot(state *game.MatchState, seat int) Message {
	msg := Message{Type: TypeState, Success: true, State: Build(state, seat)}
	finish(&msg, state)
	return msg
}

func finish(msg *Message, state *game.MatchState) {
	if !state.Over() {
		return
	}
	winner := state.Winner
	msg.Type = TypeGameOver
	msg.Winner = &winner
	msg.Result = state.Result
}

// Rejected reports a failed action to the seat that submitted it.
func Rejected(action game.ActionType, res game.Result) Message {
	return Message{
		Type:    TypeRejected,
		Action:  action.String(),
		Message: res.Message,
	}
}
