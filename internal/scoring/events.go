package scoring

import (
	"errors"
	"fmt"
)

// Extra delivery types.
const (
	ExtraWide   = "wide"
	ExtraNoBall = "no_ball"
	ExtraBye    = "bye"
	ExtraLegBye = "leg_bye"
)

// Dismissal types. Run-outs are the only dismissal that may carry completed
// runs on the same delivery, and the only one not credited to the bowler.
const (
	WicketBowled    = "bowled"
	WicketCaught    = "caught"
	WicketLBW       = "lbw"
	WicketRunOut    = "run_out"
	WicketStumped   = "stumped"
	WicketHitWicket = "hit_wicket"
)

// ErrInvalidEvent marks a malformed ball event. The event is rejected with
// no state change.
var ErrInvalidEvent = errors.New("invalid ball event")

// ExtraEvent describes an extra delivery. Runs is the total added to the
// team score, including the one-run penalty for wides and no-balls.
type ExtraEvent struct {
	Type string `json:"type"`
	Runs int    `json:"runs"`
}

// WicketEvent describes a dismissal. PlayerID is the dismissed batsman and
// must be one of the two current batsmen.
type WicketEvent struct {
	Type     string `json:"type"`
	PlayerID uint   `json:"player_id"`
}

// BallEvent is one delivery attempt as submitted by the scoring operator.
// Exactly one event is processed at a time.
type BallEvent struct {
	Runs   int          `json:"runs"`
	Extra  *ExtraEvent  `json:"extra,omitempty"`
	Wicket *WicketEvent `json:"wicket,omitempty"`
}

func validExtraType(t string) bool {
	switch t {
	case ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
		return true
	}
	return false
}

func validWicketType(t string) bool {
	switch t {
	case WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped, WicketHitWicket:
		return true
	}
	return false
}

// BowlerCredited reports whether the dismissal counts toward the bowler's
// wicket tally.
func BowlerCredited(wicketType string) bool {
	return wicketType != WicketRunOut
}

// Validate rejects malformed events before any state is touched.
func (ev BallEvent) Validate() error {
	if ev.Runs < 0 || ev.Runs > 6 {
		return fmt.Errorf("%w: runs must be between 0 and 6, got %d", ErrInvalidEvent, ev.Runs)
	}

	if ev.Extra != nil {
		if !validExtraType(ev.Extra.Type) {
			return fmt.Errorf("%w: unknown extra type %q", ErrInvalidEvent, ev.Extra.Type)
		}
		if ev.Extra.Runs < 1 || ev.Extra.Runs > 7 {
			return fmt.Errorf("%w: extra runs must be between 1 and 7, got %d", ErrInvalidEvent, ev.Extra.Runs)
		}
		if ev.Runs != 0 {
			return fmt.Errorf("%w: bat runs and extras are mutually exclusive on one delivery", ErrInvalidEvent)
		}
	}

	if ev.Wicket != nil {
		if !validWicketType(ev.Wicket.Type) {
			return fmt.Errorf("%w: unknown dismissal type %q", ErrInvalidEvent, ev.Wicket.Type)
		}
		if ev.Wicket.PlayerID == 0 {
			return fmt.Errorf("%w: wicket requires the dismissed player id", ErrInvalidEvent)
		}
		if ev.Extra != nil {
			return fmt.Errorf("%w: a wicket and an extra cannot share a delivery", ErrInvalidEvent)
		}
		if ev.Runs != 0 && ev.Wicket.Type != WicketRunOut {
			return fmt.Errorf("%w: only run-outs may carry completed runs", ErrInvalidEvent)
		}
	}

	return nil
}
