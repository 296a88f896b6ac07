package rating

import (
	"math"

	"value-rating/model"
)

// Group is a set of player indices compared against each other.
type Group struct {
	Key     string
	Members []int
}

// GroupPlayers partitions players by role, or into one global group.
// Groups appear in order of first occurrence; members keep input order.
func GroupPlayers(players []model.PlayerStats, byGroup bool) []Group {
	if !byGroup {
		all := make([]int, len(players))
		for i := range players {
			all[i] = i
		}
		return []Group{{Key: "", Members: all}}
	}

	var groups []Group
	idx := make(map[string]int)
	for i, p := range players {
		key := p.Role
		g, ok := idx[key]
		if !ok {
			g = len(groups)
			idx[key] = g
			groups = append(groups, Group{Key: key})
		}
		groups[g].Members = append(groups[g].Members, i)
	}
	return groups
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation, 0 for fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	m := Mean(values)
	sq := 0.0
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)))
}

// ZScores standardizes values with the plain mean/std formula. A zero
// spread is replaced by Epsilon.
func ZScores(values []float64) []float64 {
	m := Mean(values)
	s := StdDev(values)
	if s == 0 {
		s = Epsilon
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - m) / s
	}
	return out
}

// Standardize returns per-player z-scores for every metric, computed within
// each player's group. The result is indexed like derived.
func Standardize(derived []model.DerivedMetrics, groups []Group) []map[string]float64 {
	z := make([]map[string]float64, len(derived))
	for i := range z {
		z[i] = make(map[string]float64, len(Metrics))
	}

	for _, g := range groups {
		values := make([]float64, len(g.Members))
		for _, metric := range Metrics {
			for j, idx := range g.Members {
				values[j] = Value(derived[idx], metric)
			}
			for j, score := range ZScores(values) {
				z[g.Members[j]][metric] = score
			}
		}
	}
	return z
}
