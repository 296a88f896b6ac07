package parser

import (
	"io"
	"os"
	"strconv"

	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/events"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"value-rating/model"
)

// demoPlayer accumulates one player's stats across rounds and demos.
type demoPlayer struct {
	stats      model.PlayerStats
	hsKills    int
	kastRounds int
}

// roundState is reset at every round start.
type roundState struct {
	kills       map[string]int
	contributed map[string]bool // kill, assist or traded
	died        map[string]bool
	openingDone bool
	clutcher    map[common.Team]string
}

func newRoundState() roundState {
	return roundState{
		kills:       make(map[string]int),
		contributed: make(map[string]bool),
		died:        make(map[string]bool),
		clutcher:    make(map[common.Team]string),
	}
}

// DemoCollector builds PlayerStats from one or more CS2 demos. Terrorist
// rounds count as attack rounds and counter-terrorist rounds as defense.
type DemoCollector struct {
	log     logrus.FieldLogger
	players map[string]*demoPlayer
	order   []string

	trades *TradeTracker
	round  roundState
}

// NewDemoCollector creates an empty collector.
func NewDemoCollector(log logrus.FieldLogger) *DemoCollector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DemoCollector{
		log:     log,
		players: make(map[string]*demoPlayer),
		trades:  NewTradeTracker(TradeWindowTicks),
		round:   newRoundState(),
	}
}

// ParseDemoFiles reads every demo in order and returns the merged stats.
func ParseDemoFiles(log logrus.FieldLogger, paths ...string) ([]model.PlayerStats, error) {
	c := NewDemoCollector(log)
	for _, path := range paths {
		if err := c.AddFile(path); err != nil {
			return nil, err
		}
	}
	return c.Players(), nil
}

// AddFile parses one demo file into the collector.
func (c *DemoCollector) AddFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open demo %s", path)
	}
	defer f.Close()

	if err := c.Add(f); err != nil {
		return errors.Wrapf(err, "parse demo %s", path)
	}
	c.log.WithField("file", path).WithField("players", len(c.order)).Info("parsed demo")
	return nil
}

// Add parses one demo stream into the collector. A truncated demo keeps
// the rounds read so far.
func (c *DemoCollector) Add(r io.Reader) error {
	p := demoinfocs.NewParser(r)
	defer p.Close()

	c.startRound()

	live := func() bool {
		gs := p.GameState()
		return gs.IsMatchStarted() && !gs.IsWarmupPeriod()
	}

	p.RegisterEventHandler(func(events.RoundStart) {
		c.startRound()
	})

	p.RegisterEventHandler(func(e events.Kill) {
		if live() {
			gs := p.GameState()
			c.onKill(e, gs.Participants().Playing(), gs.IngameTick())
		}
	})

	p.RegisterEventHandler(func(e events.PlayerHurt) {
		if live() {
			c.onPlayerHurt(e)
		}
	})

	p.RegisterEventHandler(func(e events.BombPlanted) {
		if live() && e.Player != nil {
			c.players[c.track(e.Player)].stats.Plants++
		}
	})

	p.RegisterEventHandler(func(e events.BombDefused) {
		if live() && e.Player != nil {
			c.players[c.track(e.Player)].stats.Defuses++
		}
	})

	p.RegisterEventHandler(func(e events.RoundEnd) {
		if live() {
			c.onRoundEnd(e, p.GameState().Participants().Playing())
		}
	})

	err := p.ParseToEnd()
	if errors.Is(err, demoinfocs.ErrUnexpectedEndOfDemo) {
		c.log.WithError(err).Warn("demo truncated, keeping parsed rounds")
		return nil
	}
	return err
}

func (c *DemoCollector) startRound() {
	c.trades.Reset()
	c.round = newRoundState()
}

// onKill credits the death, the kill, opening duel, trade and assist.
// playing is everyone on a team at the time of the kill.
func (c *DemoCollector) onKill(e events.Kill, playing []*common.Player, tick int) {
	if e.Victim == nil {
		return
	}
	victimID := c.track(e.Victim)
	victim := c.players[victimID]
	victim.stats.Deaths++
	switch e.Victim.Team {
	case common.TeamTerrorists:
		victim.stats.AttackDeaths++
	case common.TeamCounterTerrorists:
		victim.stats.DefenseDeaths++
	}
	c.round.died[victimID] = true

	var killer *demoPlayer
	killerID, killerSide := "", common.TeamUnassigned
	if e.Killer != nil && e.Killer != e.Victim && e.Killer.Team != e.Victim.Team {
		killerID = c.track(e.Killer)
		killer = c.players[killerID]
		killerSide = e.Killer.Team

		killer.stats.Kills++
		switch e.Killer.Team {
		case common.TeamTerrorists:
			killer.stats.AttackKills++
		case common.TeamCounterTerrorists:
			killer.stats.DefenseKills++
		}
		if e.IsHeadshot {
			killer.hsKills++
		}
		c.round.kills[killerID]++
		c.round.contributed[killerID] = true

		if !c.round.openingDone {
			killer.stats.OpeningKills++
			victim.stats.OpeningDeaths++
			c.round.openingDone = true
		}
	}

	traded := c.trades.RecordKill(killerID, victimID, killerSide, e.Victim.Team, tick)
	if killer != nil && len(traded) > 0 {
		killer.stats.TradeKills++
	}
	for _, id := range traded {
		c.round.contributed[id] = true
	}

	if e.Assister != nil && e.Assister.Team != e.Victim.Team {
		assisterID := c.track(e.Assister)
		assister := c.players[assisterID]
		assister.stats.Assists++
		switch e.Assister.Team {
		case common.TeamTerrorists:
			assister.stats.AttackAssists++
		case common.TeamCounterTerrorists:
			assister.stats.DefenseAssists++
		}
		if e.AssistedFlash {
			assister.stats.NonDamageAssists++
		}
		c.round.contributed[assisterID] = true
	}

	c.markClutcher(playing, e.Victim)
}

func (c *DemoCollector) onPlayerHurt(e events.PlayerHurt) {
	if e.Attacker == nil || e.Player == nil || e.Attacker.Team == e.Player.Team {
		return
	}
	c.players[c.track(e.Attacker)].stats.TotalDamage += float64(e.HealthDamageTaken)
}

// onRoundEnd closes the round for everyone on a team: rounds per side,
// KAST, multi-kill tier and the winning clutcher.
func (c *DemoCollector) onRoundEnd(e events.RoundEnd, playing []*common.Player) {
	for _, pl := range playing {
		id := c.track(pl)
		dp := c.players[id]
		dp.stats.RoundsPlayed++
		switch pl.Team {
		case common.TeamTerrorists:
			dp.stats.AttackRounds++
		case common.TeamCounterTerrorists:
			dp.stats.DefenseRounds++
		}
		if c.round.contributed[id] || !c.round.died[id] {
			dp.kastRounds++
		}
		if k := c.round.kills[id]; k >= 2 {
			if k > 5 {
				k = 5
			}
			dp.stats.MultiKills[k]++
		}
	}
	if id, ok := c.round.clutcher[e.Winner]; ok {
		c.players[id].stats.ClutchWins++
	}
}

// markClutcher records the last player alive on the victim's side. A player
// is alive until a kill on them is seen this round; entity health can lag
// behind the kill event.
func (c *DemoCollector) markClutcher(playing []*common.Player, victim *common.Player) {
	side := victim.Team
	if _, ok := c.round.clutcher[side]; ok {
		return
	}
	var alive []*common.Player
	for _, pl := range playing {
		if pl == victim || pl.Team != side || c.round.died[playerKey(pl.SteamID64, pl.Name)] {
			continue
		}
		alive = append(alive, pl)
	}
	if len(alive) == 1 {
		c.round.clutcher[side] = c.track(alive[0])
	}
}

// track returns the player's key, registering the player on first sight.
func (c *DemoCollector) track(pl *common.Player) string {
	id := playerKey(pl.SteamID64, pl.Name)
	if _, ok := c.players[id]; !ok {
		c.players[id] = &demoPlayer{stats: model.PlayerStats{
			SteamID: strconv.FormatUint(pl.SteamID64, 10),
			Name:    pl.Name,
			Role:    model.RoleUnknown,
		}}
		c.order = append(c.order, id)
	}
	if pl.Name != "" {
		c.players[id].stats.Name = pl.Name
	}
	return id
}

func playerKey(steamID uint64, name string) string {
	if steamID == 0 {
		return "bot:" + name
	}
	return strconv.FormatUint(steamID, 10)
}

// Players returns the collected stats in order of first appearance.
func (c *DemoCollector) Players() []model.PlayerStats {
	out := make([]model.PlayerStats, 0, len(c.order))
	for _, id := range c.order {
		dp := c.players[id]
		s := dp.stats
		if s.RoundsPlayed > 0 {
			rounds := float64(s.RoundsPlayed)
			s.ADR = s.TotalDamage / rounds
			s.KASTPercent = float64(dp.kastRounds) / rounds * 100
		}
		if s.Kills > 0 {
			s.HSPercent = float64(dp.hsKills) / float64(s.Kills) * 100
		}
		out = append(out, s)
	}
	return out
}
