// Package bot contains a simple automated player that acts through the same
// gateway as any remote seat.
package bot

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/rumble/internal/game"
	"github.com/peterkuimelis/rumble/internal/view"
)

// Submitter is the part of session.Manager a bot plays through.
type Submitter interface {
	Submit(matchID string, seat int, a game.Action) (game.Result, error)
	View(matchID string, seat int) (*view.StateView, error)
}

// Greedy plays every card it can, uses its power, attacks with everything and
// ends the turn. It picks the first target the engine accepts, enemies first.
type Greedy struct {
	Match   Submitter
	MatchID string
	Seat    int
	Log     *logrus.Entry
}

// ErrNotYourTurn is returned by TakeTurn when the seat is not active.
var ErrNotYourTurn = errors.New("not this seat's turn")

// TakeTurn plays one full turn for the seat.
func (b *Greedy) TakeTurn() error {
	sv, err := b.view()
	if err != nil {
		return err
	}
	if sv.GameOver {
		return nil
	}
	if !sv.IsYourTurn {
		return ErrNotYourTurn
	}

	if sv.Phase == game.PhaseDraw.String() {
		if _, err := b.submit(game.Action{Type: game.ActionDraw}); err != nil {
			return err
		}
	}

	if err := b.playCards(); err != nil {
		return err
	}
	if err := b.usePower(); err != nil {
		return err
	}
	if err := b.attack(); err != nil {
		return err
	}

	if sv, err = b.view(); err != nil || sv.GameOver || !sv.IsYourTurn {
		return err
	}
	_, err = b.submit(game.Action{Type: game.ActionEndTurn})
	return err
}

func (b *Greedy) playCards() error {
	tried := make(map[string]bool)
	for {
		sv, err := b.view()
		if err != nil || sv.GameOver || sv.You.CardsPlayed >= sv.You.PlayCap {
			return err
		}
		var card *view.CardView
		for i := range sv.You.Hand {
			if !tried[sv.You.Hand[i].ID] {
				card = &sv.You.Hand[i]
				break
			}
		}
		if card == nil {
			return nil
		}
		tried[card.ID] = true

		for _, target := range targets(sv) {
			res, err := b.submit(game.Action{Type: game.ActionPlayCard, CardID: card.ID, TargetID: target})
			if err != nil {
				return err
			}
			if res.Success {
				break
			}
		}
	}
}

func (b *Greedy) usePower() error {
	sv, err := b.view()
	if err != nil || sv.GameOver || sv.You.PowerUsed {
		return err
	}
	for _, target := range targets(sv) {
		res, err := b.submit(game.Action{Type: game.ActionUsePower, TargetID: target})
		if err != nil || res.Success {
			return err
		}
	}
	return nil
}

func (b *Greedy) attack() error {
	sv, err := b.view()
	if err != nil {
		return err
	}
	var attackers []string
	for _, s := range sv.You.Board {
		if !s.Empty && s.CanAttack {
			attackers = append(attackers, s.ID)
		}
	}

	for _, id := range attackers {
		sv, err := b.view()
		if err != nil || sv.GameOver {
			return err
		}
		victims := []string{game.TargetEnemyHero}
		for _, s := range sv.Opponent.Board {
			if !s.Empty {
				victims = append(victims, s.ID)
			}
		}
		for _, v := range victims {
			res, err := b.submit(game.Action{Type: game.ActionAttack, AttackerID: id, TargetID: v})
			if err != nil {
				return err
			}
			if res.Success {
				break
			}
		}
	}
	return nil
}

// targets lists candidate target ids: none, enemy hero, enemy creatures, own
// creatures, own hero.
func targets(sv *view.StateView) []string {
	out := []string{"", game.TargetEnemyHero}
	for _, s := range sv.Opponent.Board {
		if !s.Empty {
			out = append(out, s.ID)
		}
	}
	for _, s := range sv.You.Board {
		if !s.Empty {
			out = append(out, s.ID)
		}
	}
	return append(out, game.TargetOwnHero)
}

func (b *Greedy) view() (*view.StateView, error) {
	return b.Match.View(b.MatchID, b.Seat)
}

func (b *Greedy) submit(a game.Action) (game.Result, error) {
	res, err := b.Match.Submit(b.MatchID, b.Seat, a)
	if err == nil && b.Log != nil {
		b.Log.WithFields(logrus.Fields{
			"seat":   b.Seat,
			"action": a.Type.String(),
			"ok":     res.Success,
		}).Trace(res.Message)
	}
	return res, err
}

// PlayOut alternates the two bots until the match ends or maxTurns turns
// have been taken. It reports whether the match ended.
func PlayOut(bots [2]*Greedy, maxTurns int) (bool, error) {
	for i := 0; i < maxTurns; i++ {
		sv, err := bots[0].view()
		if err != nil {
			return false, err
		}
		if sv.GameOver {
			return true, nil
		}
		active := bots[1]
		if sv.IsYourTurn {
			active = bots[0]
		}
		if err := active.TakeTurn(); err != nil {
			return false, err
		}
	}
	sv, err := bots[0].view()
	if err != nil {
		return false, err
	}
	return sv.GameOver, nil
}
