package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/peterkuimelis/rumble/internal/game"
)

// seatArgs are the arguments every match tool carries.
type seatArgs struct {
	matchID string
	player  int
}

func readSeat(request mcp.CallToolRequest) (seatArgs, error) {
	matchID, err := request.RequireString("match_id")
	if err != nil {
		return seatArgs{}, err
	}
	player := request.GetInt("player", -1)
	if player != 0 && player != 1 {
		return seatArgs{}, fmt.Errorf("player must be 0 or 1, got %d", player)
	}
	return seatArgs{matchID: matchID, player: player}, nil
}

// actionFromRequest translates an action tool call into a game.Action.
func actionFromRequest(typ game.ActionType, request mcp.CallToolRequest) (game.Action, error) {
	a := game.Action{Type: typ}
	switch typ {
	case game.ActionPlayCard:
		id, err := request.RequireString("card_id")
		if err != nil {
			return a, err
		}
		a.CardID = id
		a.TargetID = request.GetString("target_id", "")
		if _, ok := request.GetArguments()["position"]; ok {
			pos := request.GetInt("position", -1)
			if pos < 0 || pos >= game.BoardSize {
				return a, fmt.Errorf("position must be 0-%d, got %d", game.BoardSize-1, pos)
			}
			a.Position = game.Slot(pos)
		}
	case game.ActionAttack:
		attacker, err := request.RequireString("attacker_id")
		if err != nil {
			return a, err
		}
		target, err := request.RequireString("target_id")
		if err != nil {
			return a, err
		}
		a.AttackerID = attacker
		a.TargetID = target
	case game.ActionUsePower:
		a.TargetID = request.GetString("target_id", "")
	}
	return a, nil
}
