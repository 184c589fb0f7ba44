package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/rumble/internal/game"
	"github.com/peterkuimelis/rumble/internal/session"
	"github.com/peterkuimelis/rumble/internal/view"
)

// RegisterTools adds all match tools to the MCP server.
func (h *Host) RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), h.handleStartMatch)
	s.AddTool(getStateTool(), h.handleGetState)
	s.AddTool(listCardsTool(), h.handleListCards)

	s.AddTool(actionTool(game.ActionDraw, "Draw the top card of your deck. Moves the turn into the Main phase."), h.actionHandler(game.ActionDraw))
	s.AddTool(actionTool(game.ActionSkipDraw, "Skip this turn's draw to allow a third card play."), h.actionHandler(game.ActionSkipDraw))
	s.AddTool(actionTool(game.ActionPlayCard, "Play a card from your hand.",
		mcp.WithString("card_id", mcp.Required(), mcp.Description("Instance id of the card in your hand")),
		mcp.WithNumber("position", mcp.Description("Board slot 0-4 for a creature; first free slot if omitted")),
		mcp.WithString("target_id", mcp.Description("Creature instance id, or 'hero' / 'own-hero', for targeted cards")),
	), h.actionHandler(game.ActionPlayCard))
	s.AddTool(actionTool(game.ActionAttack, "Attack with one of your ready creatures.",
		mcp.WithString("attacker_id", mcp.Required(), mcp.Description("Instance id of your attacking creature")),
		mcp.WithString("target_id", mcp.Required(), mcp.Description("Enemy creature instance id, or 'hero'")),
	), h.actionHandler(game.ActionAttack))
	s.AddTool(actionTool(game.ActionUsePower, "Use your hero power (once per turn).",
		mcp.WithString("target_id", mcp.Description("Target for powers that need one")),
	), h.actionHandler(game.ActionUsePower))
	s.AddTool(actionTool(game.ActionEndTurn, "End your turn."), h.actionHandler(game.ActionEndTurn))
}

// --- Tool definitions ---

func seatParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("match_id", mcp.Required(), mcp.Description("Match id returned by start_match")),
		mcp.WithNumber("player", mcp.Required(), mcp.Description("Seat acting: 0 or 1")),
	}
}

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new match and run the first player's turn start. Returns the match id and player 0's view."),
		mcp.WithNumber("p1_deck", mcp.Description("Deck number for player 0 (1-indexed); 0 deals a random starter deck")),
		mcp.WithNumber("p2_deck", mcp.Description("Deck number for player 1 (1-indexed); 0 deals a random starter deck")),
		mcp.WithString("p1_hero", mcp.Description("Hero id for player 0 when using a starter deck")),
		mcp.WithString("p2_hero", mcp.Description("Hero id for player 1 when using a starter deck")),
		mcp.WithString("p1_name", mcp.Description("Display name for player 0")),
		mcp.WithString("p2_name", mcp.Description("Display name for player 1")),
		mcp.WithNumber("first_player", mcp.Description("1 or 2 to choose who goes first; 0 picks at random")),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible match")),
	)
}

func getStateTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Get the match from one seat's perspective, plus anything pushed to that seat since its last call. Read-only."),
	}, seatParams()...)
	return mcp.NewTool("get_state", opts...)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List card definitions in the catalog, optionally filtered by kind."),
		mcp.WithString("kind", mcp.Description("creature, spell, equipment or trap")),
	)
}

func actionTool(typ game.ActionType, desc string, extra ...mcp.ToolOption) mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription(desc)}, seatParams()...)
	opts = append(opts, extra...)
	return mcp.NewTool(typ.String(), opts...)
}

// --- Tool handlers ---

func (h *Host) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	first := request.GetInt("first_player", 0)
	if first < 0 || first > 2 {
		return mcp.NewToolResultError("first_player must be 0, 1 or 2"), nil
	}
	seats := [2]SeatSetup{
		{
			Name: request.GetString("p1_name", "Player 1"),
			Deck: request.GetInt("p1_deck", 1),
			Hero: game.HeroID(request.GetString("p1_hero", "")),
		},
		{
			Name: request.GetString("p2_name", "Player 2"),
			Deck: request.GetInt("p2_deck", 2),
			Hero: game.HeroID(request.GetString("p2_hero", "")),
		},
	}

	id, err := h.StartMatch(seats, first, int64(request.GetInt("seed", 0)))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	resp, err := h.respond(id, 0, nil)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to read match: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Host) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seat, err := readSeat(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := h.respond(seat.matchID, seat.player, nil)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Host) actionHandler(typ game.ActionType) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		seat, err := readSeat(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		action, err := actionFromRequest(typ, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := h.manager.Submit(seat.matchID, seat.player, action)
		if err != nil {
			return toolError(err), nil
		}
		resp, err := h.respond(seat.matchID, seat.player, &res)
		if err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(respondJSON(resp)), nil
	}
}

func (h *Host) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filter *game.CardKind
	if k := strings.TrimSpace(request.GetString("kind", "")); k != "" {
		kind, err := game.ParseCardKind(k)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter = &kind
	}

	cards := []view.CardView{}
	for _, c := range h.catalog.Cards() {
		if c.Token || (filter != nil && c.Kind != *filter) {
			continue
		}
		cards = append(cards, view.Definition(c))
	}
	return mcp.NewToolResultText(respondJSON(cards)), nil
}

func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, session.ErrMatchNotFound) {
		return mcp.NewToolResultError("No such match. Use start_match first.")
	}
	return mcp.NewToolResultErrorf("Error: %v", err)
}
