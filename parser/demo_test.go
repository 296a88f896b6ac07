package parser

import (
	"testing"

	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"value-rating/model"
)

func newTestPlayer(steamID uint64, name string, team common.Team) *common.Player {
	return &common.Player{SteamID64: steamID, Name: name, Team: team, IsBot: steamID == 0}
}

func statsByName(t *testing.T, c *DemoCollector) map[string]model.PlayerStats {
	t.Helper()
	out := make(map[string]model.PlayerStats)
	for _, p := range c.Players() {
		out[p.Name] = p
	}
	return out
}

func TestDemoCollectorRound(t *testing.T) {
	t1 := newTestPlayer(1, "ropz", common.TeamTerrorists)
	t2 := newTestPlayer(2, "broky", common.TeamTerrorists)
	ct1 := newTestPlayer(11, "NiKo", common.TeamCounterTerrorists)
	bot := newTestPlayer(0, "Ivan", common.TeamCounterTerrorists)
	playing := []*common.Player{t1, t2, ct1, bot}

	c := NewDemoCollector(nil)
	c.startRound()
	c.onPlayerHurt(events.PlayerHurt{Attacker: t1, Player: ct1, HealthDamageTaken: 100})
	c.onPlayerHurt(events.PlayerHurt{Attacker: t1, Player: t2, HealthDamageTaken: 30})
	c.onKill(events.Kill{Killer: t1, Victim: ct1, IsHeadshot: true}, playing, 100)
	c.onKill(events.Kill{Killer: bot, Victim: t1}, playing, 200)
	c.onKill(events.Kill{Killer: t2, Victim: bot, Assister: ct1}, playing, 300)
	c.onRoundEnd(events.RoundEnd{Winner: common.TeamTerrorists}, playing)

	got := statsByName(t, c)
	require.Len(t, got, 4)

	ropz := got["ropz"]
	assert.Equal(t, 1, ropz.Kills)
	assert.Equal(t, 1, ropz.AttackKills)
	assert.Equal(t, 1, ropz.AttackDeaths)
	assert.Equal(t, 1, ropz.OpeningKills)
	assert.Equal(t, 1, ropz.AttackRounds)
	assert.InDelta(t, 100.0, ropz.ADR, 1e-12, "team damage is not counted")
	assert.InDelta(t, 100.0, ropz.HSPercent, 1e-12)
	assert.InDelta(t, 100.0, ropz.KASTPercent, 1e-12)

	niko := got["NiKo"]
	assert.Equal(t, 1, niko.OpeningDeaths)
	assert.Equal(t, 1, niko.DefenseDeaths)
	assert.Equal(t, 1, niko.DefenseRounds)
	assert.Zero(t, niko.Assists, "assisting on a teammate's death is not an assist")
	assert.InDelta(t, 100.0, niko.KASTPercent, 1e-12, "traded by Ivan")

	broky := got["broky"]
	assert.Equal(t, 1, broky.TradeKills)
	assert.Equal(t, 1, broky.ClutchWins)
	assert.Zero(t, broky.OpeningKills)
	assert.InDelta(t, 100.0, broky.KASTPercent, 1e-12)

	ivan := got["Ivan"]
	assert.Equal(t, "0", ivan.SteamID)
	assert.Equal(t, 1, ivan.DefenseKills)
	assert.Equal(t, 1, ivan.TradeKills)
	assert.Zero(t, ivan.ClutchWins, "lost clutch")
}

func TestDemoCollectorTradedBotGetsKAST(t *testing.T) {
	t1 := newTestPlayer(1, "ropz", common.TeamTerrorists)
	ct1 := newTestPlayer(11, "NiKo", common.TeamCounterTerrorists)
	bot := newTestPlayer(0, "Ivan", common.TeamCounterTerrorists)
	playing := []*common.Player{t1, ct1, bot}

	c := NewDemoCollector(nil)
	c.startRound()
	c.onKill(events.Kill{Killer: t1, Victim: bot}, playing, 100)
	c.onKill(events.Kill{Killer: ct1, Victim: t1}, playing, 200)
	c.onRoundEnd(events.RoundEnd{Winner: common.TeamCounterTerrorists}, playing)

	got := statsByName(t, c)
	assert.Equal(t, 1, got["NiKo"].TradeKills)
	assert.InDelta(t, 100.0, got["Ivan"].KASTPercent, 1e-12)
	assert.Zero(t, got["ropz"].TradeKills)
}

func TestDemoCollectorTradeWindowAndRoundReset(t *testing.T) {
	t1 := newTestPlayer(1, "ropz", common.TeamTerrorists)
	ct1 := newTestPlayer(11, "NiKo", common.TeamCounterTerrorists)
	ct2 := newTestPlayer(12, "m0NESY", common.TeamCounterTerrorists)
	playing := []*common.Player{t1, ct1, ct2}

	c := NewDemoCollector(nil)
	c.startRound()
	c.onKill(events.Kill{Killer: t1, Victim: ct1}, playing, 100)
	c.onKill(events.Kill{Killer: ct2, Victim: t1}, playing, 100+TradeWindowTicks+1)
	c.onRoundEnd(events.RoundEnd{Winner: common.TeamCounterTerrorists}, playing)

	c.startRound()
	c.onKill(events.Kill{Killer: t1, Victim: ct1}, playing, 1000)
	c.onRoundEnd(events.RoundEnd{Winner: common.TeamTerrorists}, playing)

	got := statsByName(t, c)
	assert.Zero(t, got["m0NESY"].TradeKills)
	assert.InDelta(t, 0.0, got["NiKo"].KASTPercent, 1e-12)
	assert.Equal(t, 2, got["ropz"].OpeningKills, "opening kill resets every round")
	assert.Equal(t, 2, got["ropz"].RoundsPlayed)
}

func TestDemoCollectorMultiKillTiers(t *testing.T) {
	t1 := newTestPlayer(1, "ropz", common.TeamTerrorists)
	cts := []*common.Player{
		newTestPlayer(11, "a", common.TeamCounterTerrorists),
		newTestPlayer(12, "b", common.TeamCounterTerrorists),
		newTestPlayer(13, "c", common.TeamCounterTerrorists),
	}
	playing := append([]*common.Player{t1}, cts...)

	c := NewDemoCollector(nil)
	c.startRound()
	for i, ct := range cts {
		c.onKill(events.Kill{Killer: t1, Victim: ct}, playing, 100*(i+1))
	}
	c.onRoundEnd(events.RoundEnd{Winner: common.TeamTerrorists}, playing)

	c.startRound()
	c.onKill(events.Kill{Killer: t1, Victim: cts[0]}, playing, 2000)
	c.onRoundEnd(events.RoundEnd{Winner: common.TeamTerrorists}, playing)

	ropz := statsByName(t, c)["ropz"]
	assert.Equal(t, [6]int{0, 0, 0, 1, 0, 0}, ropz.MultiKills)
	assert.Equal(t, 4, ropz.Kills)
}

func TestDemoCollectorWorldKill(t *testing.T) {
	t1 := newTestPlayer(1, "ropz", common.TeamTerrorists)
	ct1 := newTestPlayer(11, "NiKo", common.TeamCounterTerrorists)
	playing := []*common.Player{t1, ct1}

	c := NewDemoCollector(nil)
	c.startRound()
	c.onKill(events.Kill{Victim: t1}, playing, 100)
	c.onKill(events.Kill{Killer: ct1, Victim: t1}, playing, 150)

	got := statsByName(t, c)
	assert.Equal(t, 2, got["ropz"].Deaths)
	assert.Equal(t, 1, got["ropz"].OpeningDeaths, "only the enemy kill opens the round")
	assert.Equal(t, 1, got["NiKo"].OpeningKills)
}

func TestMarkClutcherSkipsVictim(t *testing.T) {
	t1 := newTestPlayer(1, "ropz", common.TeamTerrorists)
	t2 := newTestPlayer(2, "broky", common.TeamTerrorists)
	t3 := newTestPlayer(3, "karrigan", common.TeamTerrorists)

	c := NewDemoCollector(nil)
	c.startRound()
	c.round.died[c.track(t1)] = true

	// t2 is the victim but no death is recorded for them yet
	c.markClutcher([]*common.Player{t1, t2, t3}, t2)
	assert.Equal(t, c.track(t3), c.round.clutcher[common.TeamTerrorists])
}

func TestDemoCollectorPlayersFinalizesRates(t *testing.T) {
	c := NewDemoCollector(nil)
	c.players["76561198000000001"] = &demoPlayer{
		stats: model.PlayerStats{
			SteamID:      "76561198000000001",
			Name:         "s1mple",
			Role:         model.RoleUnknown,
			RoundsPlayed: 20,
			Kills:        16,
			TotalDamage:  1700,
		},
		hsKills:    8,
		kastRounds: 15,
	}
	c.players["bot:Ivan"] = &demoPlayer{stats: model.PlayerStats{Name: "Ivan"}}
	c.order = []string{"76561198000000001", "bot:Ivan"}

	players := c.Players()
	assert.Len(t, players, 2)
	assert.Equal(t, "s1mple", players[0].Name)
	assert.InDelta(t, 85.0, players[0].ADR, 1e-12)
	assert.InDelta(t, 75.0, players[0].KASTPercent, 1e-12)
	assert.InDelta(t, 50.0, players[0].HSPercent, 1e-12)
	assert.Zero(t, players[1].ADR)
	assert.Zero(t, players[1].HSPercent)
}

func TestPlayerKey(t *testing.T) {
	assert.Equal(t, "76561198000000001", playerKey(76561198000000001, "x"))
	assert.Equal(t, "bot:Ivan", playerKey(0, "Ivan"))
}
