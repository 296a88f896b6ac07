package parser

import (
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/common"
)

// TradeWindowTicks is how long after a death a kill on the killer still
// counts as a trade (5 seconds at 64 tick).
const TradeWindowTicks = 320

// pendingDeath is a death that can still be traded. IDs are collector
// player keys; an empty KillerID is a world or team kill.
type pendingDeath struct {
	VictimID string
	KillerID string
	Tick     int
}

// TradeTracker remembers recent deaths per side within a round. When a
// player kills the enemy who just killed a teammate, the teammate's death
// is traded and the kill is a trade kill.
type TradeTracker struct {
	window int

	// Pending deaths per side, oldest first
	tDeaths  []pendingDeath
	ctDeaths []pendingDeath
}

// NewTradeTracker creates a tracker with the given trade window in ticks.
func NewTradeTracker(window int) *TradeTracker {
	if window <= 0 {
		window = TradeWindowTicks
	}
	return &TradeTracker{
		window:   window,
		tDeaths:  make([]pendingDeath, 0),
		ctDeaths: make([]pendingDeath, 0),
	}
}

// Reset clears all pending deaths for a new round.
func (tt *TradeTracker) Reset() {
	tt.tDeaths = make([]pendingDeath, 0)
	tt.ctDeaths = make([]pendingDeath, 0)
}

// RecordKill registers the victim's death and returns the killer's
// teammates whose deaths this kill trades. Pass an empty killerID when
// there is no enemy killer.
func (tt *TradeTracker) RecordKill(killerID, victimID string, killerSide, victimSide common.Team, tick int) []string {
	traded := make([]string, 0)
	if killerID != "" && killerSide != victimSide {
		kept := make([]pendingDeath, 0, len(tt.getDeaths(killerSide)))
		for _, d := range tt.getDeaths(killerSide) {
			if tick-d.Tick > tt.window {
				continue
			}
			if d.KillerID != "" && d.KillerID == victimID {
				traded = append(traded, d.VictimID)
				continue
			}
			kept = append(kept, d)
		}
		tt.setDeaths(killerSide, kept)
	}

	tt.setDeaths(victimSide, append(tt.getDeaths(victimSide), pendingDeath{
		VictimID: victimID,
		KillerID: killerID,
		Tick:     tick,
	}))
	return traded
}

func (tt *TradeTracker) getDeaths(side common.Team) []pendingDeath {
	if side == common.TeamTerrorists {
		return tt.tDeaths
	}
	return tt.ctDeaths
}

func (tt *TradeTracker) setDeaths(side common.Team, deaths []pendingDeath) {
	if side == common.TeamTerrorists {
		tt.tDeaths = deaths
	} else {
		tt.ctDeaths = deaths
	}
}
