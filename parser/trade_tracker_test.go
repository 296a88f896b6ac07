package parser

import (
	"testing"

	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/common"
	"github.com/stretchr/testify/assert"
)

const (
	tPlayer1  = "76561198000000001"
	tPlayer2  = "76561198000000002"
	ctPlayer1 = "76561198000000011"
	ctPlayer2 = "bot:Ivan"
)

func TestTradeTrackerCreditsRevengeKill(t *testing.T) {
	tt := NewTradeTracker(TradeWindowTicks)

	// CT kills T1, then T2 kills that CT within the window
	assert.Empty(t, tt.RecordKill(ctPlayer1, tPlayer1, common.TeamCounterTerrorists, common.TeamTerrorists, 1000))
	traded := tt.RecordKill(tPlayer2, ctPlayer1, common.TeamTerrorists, common.TeamCounterTerrorists, 1200)
	assert.Equal(t, []string{tPlayer1}, traded)

	// the same death cannot be traded twice
	assert.Empty(t, tt.RecordKill(tPlayer2, ctPlayer1, common.TeamTerrorists, common.TeamCounterTerrorists, 1250))
}

func TestTradeTrackerWindowExpires(t *testing.T) {
	tt := NewTradeTracker(TradeWindowTicks)

	tt.RecordKill(ctPlayer1, tPlayer1, common.TeamCounterTerrorists, common.TeamTerrorists, 1000)
	traded := tt.RecordKill(tPlayer2, ctPlayer1, common.TeamTerrorists, common.TeamCounterTerrorists, 1000+TradeWindowTicks+1)
	assert.Empty(t, traded)
}

func TestTradeTrackerOnlyKillerCounts(t *testing.T) {
	tt := NewTradeTracker(TradeWindowTicks)

	tt.RecordKill(ctPlayer1, tPlayer1, common.TeamCounterTerrorists, common.TeamTerrorists, 1000)
	// killing a different CT is not a trade
	assert.Empty(t, tt.RecordKill(tPlayer2, ctPlayer2, common.TeamTerrorists, common.TeamCounterTerrorists, 1100))
}

func TestTradeTrackerReset(t *testing.T) {
	tt := NewTradeTracker(0)

	tt.RecordKill(ctPlayer1, tPlayer1, common.TeamCounterTerrorists, common.TeamTerrorists, 1000)
	tt.Reset()
	assert.Empty(t, tt.RecordKill(tPlayer2, ctPlayer1, common.TeamTerrorists, common.TeamCounterTerrorists, 1010))
}

func TestTradeTrackerIgnoresWorldKills(t *testing.T) {
	tt := NewTradeTracker(TradeWindowTicks)

	tt.RecordKill("", tPlayer1, common.TeamUnassigned, common.TeamTerrorists, 1000)
	assert.Empty(t, tt.RecordKill(tPlayer2, "", common.TeamTerrorists, common.TeamCounterTerrorists, 1010))
}

func TestTradeTrackerBotKillerCanBeTraded(t *testing.T) {
	tt := NewTradeTracker(TradeWindowTicks)

	tt.RecordKill(ctPlayer2, tPlayer1, common.TeamCounterTerrorists, common.TeamTerrorists, 1000)
	assert.Equal(t, []string{tPlayer1}, tt.RecordKill(tPlayer2, ctPlayer2, common.TeamTerrorists, common.TeamCounterTerrorists, 1100))
}
