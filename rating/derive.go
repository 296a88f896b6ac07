package rating

import (
	"math"

	"value-rating/model"
)

// Derive computes per-round metrics for one player. Rounds are floored to 1.
func Derive(p model.PlayerStats) model.DerivedMetrics {
	rounds := math.Max(1, float64(p.RoundsPlayed))

	kpr := float64(p.Kills) / rounds
	dpr := float64(p.Deaths) / rounds

	adr := p.ADR
	if adr == 0 {
		adr = p.TotalDamage / rounds
	}

	multi := float64(p.MultiKills[2])*MultiKillDouble +
		float64(p.MultiKills[3])*MultiKillTriple +
		float64(p.MultiKills[4])*MultiKillQuad +
		float64(p.MultiKills[5])*MultiKillAce

	support := float64(p.Assists) + float64(p.TradeKills) + float64(p.NonDamageAssists)*NonDamageAssistWeight

	return model.DerivedMetrics{
		KPR:         kpr,
		DPR:         dpr,
		ADR:         adr,
		KAST:        p.KASTPercent / 100,
		Entry:       float64(p.OpeningKills-p.OpeningDeaths) / rounds,
		ACS:         p.ACS / rounds,
		Headshot:    p.HSPercent / 100,
		Consistency: consistency(p, kpr),
		Clutch:      float64(p.ClutchWins) / rounds,
		MultiKill:   multi / rounds,
		Support:     support / rounds,
		Objective:   float64(p.Plants+p.Defuses) / rounds,
	}
}

// consistency rewards players whose kill rate holds up on both sides.
// A side without rounds uses the overall KPR; a side without a kill split
// is credited with half of the total kills.
func consistency(p model.PlayerStats, kpr float64) float64 {
	attack := sideKPR(p.AttackKills, p.AttackRounds, p.Kills, kpr)
	defense := sideKPR(p.DefenseKills, p.DefenseRounds, p.Kills, kpr)

	denom := math.Max(math.Max(attack, defense), ConsistencyFloor)
	return math.Max(0, 1-math.Abs(attack-defense)/denom)
}

func sideKPR(sideKills, sideRounds, totalKills int, kpr float64) float64 {
	if sideRounds <= 0 {
		return kpr
	}
	kills := float64(sideKills)
	if sideKills == 0 {
		kills = float64(totalKills) * 0.5
	}
	return kills / float64(sideRounds)
}

// Value returns the named metric. Unknown names return 0.
func Value(d model.DerivedMetrics, metric string) float64 {
	switch metric {
	case MetricKPR:
		return d.KPR
	case MetricDPR:
		return d.DPR
	case MetricADR:
		return d.ADR
	case MetricKAST:
		return d.KAST
	case MetricEntry:
		return d.Entry
	case MetricACS:
		return d.ACS
	case MetricHeadshot:
		return d.Headshot
	case MetricConsistency:
		return d.Consistency
	case MetricClutch:
		return d.Clutch
	case MetricMultiKill:
		return d.MultiKill
	case MetricSupport:
		return d.Support
	case MetricObjective:
		return d.Objective
	}
	return 0
}
