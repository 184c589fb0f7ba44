// Package view renders match state from one seat's perspective.
package view

import (
	"github.com/peterkuimelis/rumble/internal/game"
	"github.com/peterkuimelis/rumble/internal/log"
)

// RecentEntries is how many log entries a StateView carries.
const RecentEntries = 20

// StateView is the match state from one player's perspective. The opponent's
// hand, deck and face-down traps are reduced to counts.
type StateView struct {
	MatchID    string      `json:"match_id"`
	You        PlayerView  `json:"you"`
	Opponent   PlayerView  `json:"opponent"`
	Turn       int         `json:"turn"`
	Phase      string      `json:"phase"`
	IsYourTurn bool        `json:"is_your_turn"`
	GameOver   bool        `json:"game_over"`
	YouWon     bool        `json:"you_won,omitempty"`
	Result     string      `json:"result,omitempty"`
	Recent     []EntryView `json:"recent,omitempty"`
}

// PlayerView shows one side of the table.
type PlayerView struct {
	Seat      int    `json:"seat"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hero      string `json:"hero"`
	HeroPower string `json:"hero_power"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`

	HandCount      int                      `json:"hand_count"`
	Hand           []CardView               `json:"hand,omitempty"` // only for "you"
	DeckCount      int                      `json:"deck_count"`
	Board          [game.BoardSize]SlotView `json:"board"`
	GraveyardCount int                      `json:"graveyard_count"`
	TrapCount      int                      `json:"trap_count"`
	Traps          []CardView               `json:"traps,omitempty"` // own traps, or revealed ones

	CardsPlayed int  `json:"cards_played"`
	PlayCap     int  `json:"play_cap"`
	HasDrawn    bool `json:"has_drawn"`
	SkippedDraw bool `json:"skipped_draw"`
	PowerUsed   bool `json:"power_used"`
}

// CardView describes a card in hand or a trap.
type CardView struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Cost   int    `json:"cost"`
	Attack int    `json:"attack,omitempty"`
	Health int    `json:"health,omitempty"`
	Text   string `json:"text,omitempty"`
}

// SlotView describes a single board slot.
type SlotView struct {
	Empty     bool     `json:"empty,omitempty"`
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Attack    int      `json:"attack,omitempty"`
	Health    int      `json:"health,omitempty"`
	MaxHealth int      `json:"max_health,omitempty"`
	CanAttack bool     `json:"can_attack,omitempty"`
	Stunned   bool     `json:"stunned,omitempty"`
	Burn      int      `json:"burn,omitempty"`
	Equipment string   `json:"equipment,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

// EntryView is a log entry for the client.
type EntryView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// Build creates a StateView of state from the perspective of seat player.
func Build(state *game.MatchState, player int) *StateView {
	me := player
	opp := state.Opponent(me)

	sv := &StateView{
		MatchID:    state.ID,
		Turn:       state.Turn,
		Phase:      state.Phase.String(),
		IsYourTurn: state.Active == me && !state.Over(),
		GameOver:   state.Over(),
		Result:     state.Result,
	}
	if state.Over() {
		sv.YouWon = state.Winner == me
	}

	sv.You = playerView(state.Players[me], me, true)
	sv.Opponent = playerView(state.Players[opp], opp, false)

	start := len(state.Log) - RecentEntries
	if start < 0 {
		start = 0
	}
	for _, e := range state.Log[start:] {
		sv.Recent = append(sv.Recent, Entry(e, me))
	}
	return sv
}

func playerView(p *game.Player, seat int, isOwner bool) PlayerView {
	pv := PlayerView{
		Seat:           seat,
		ID:             p.ID,
		Name:           p.Name,
		Health:         p.Health,
		MaxHealth:      p.MaxHealth,
		HandCount:      len(p.Hand),
		DeckCount:      p.DeckCount(),
		GraveyardCount: len(p.Graveyard),
		TrapCount:      len(p.Traps),
		CardsPlayed:    p.CardsPlayedThisTurn,
		PlayCap:        p.PlayCap(),
		HasDrawn:       p.HasDrawn,
		SkippedDraw:    p.SkippedDraw,
		PowerUsed:      p.PowerUsedThisTurn,
	}
	if p.Hero != nil {
		pv.Hero = p.Hero.Name
		pv.HeroPower = p.Hero.PowerName
	}
	if isOwner {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, Card(c))
		}
	}
	for i, c := range p.Board {
		pv.Board[i] = Slot(c)
	}
	for _, t := range p.Traps {
		if isOwner || t.Revealed {
			pv.Traps = append(pv.Traps, Card(t))
		}
	}
	return pv
}

// Card creates a CardView for a card instance.
func Card(ci *game.CardInstance) CardView {
	cv := Definition(ci.Card)
	cv.ID = ci.ID
	if ci.Card.Kind == game.KindCreature {
		cv.Attack = ci.Attack
		cv.Health = ci.CurrentHealth
	}
	return cv
}

// Definition creates a CardView for a catalog card, with no instance id.
func Definition(c *game.Card) CardView {
	cv := CardView{
		Name: c.Name,
		Kind: c.Kind.String(),
		Cost: c.Cost,
		Text: c.Text,
	}
	if c.Kind == game.KindCreature {
		cv.Attack = c.Attack
		cv.Health = c.Health
	}
	return cv
}

// Slot creates a SlotView for a board slot.
func Slot(ci *game.CardInstance) SlotView {
	if ci == nil {
		return SlotView{Empty: true}
	}
	sv := SlotView{
		ID:        ci.ID,
		Name:      ci.Card.Name,
		Attack:    ci.Attack,
		Health:    ci.CurrentHealth,
		MaxHealth: ci.Health,
		CanAttack: ci.CanAttack,
		Stunned:   ci.Stunned,
		Burn:      ci.Burn,
	}
	if ci.Equipment != nil {
		sv.Equipment = ci.Equipment.Card.Name
	}
	for _, k := range ci.Keywords() {
		sv.Keywords = append(sv.Keywords, k.String())
	}
	return sv
}

// Entry creates an EntryView of a log entry as seat sees it. Cards drawn or
// set face-down by the other seat stay anonymous.
func Entry(e log.Entry, seat int) EntryView {
	ev := EntryView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
	if e.Public != "" && e.Player != seat {
		ev.Card = ""
		ev.Details = e.Public
	}
	return ev
}
