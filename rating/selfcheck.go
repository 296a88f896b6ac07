package rating

import (
	"fmt"
	"math"

	"value-rating/model"
)

// Check is the outcome of one self-check assertion.
type Check struct {
	ID   string
	Pass bool
	Got  string
}

// SelfCheck rates players with the balanced preset, grouped by role at
// spread 0.15, and verifies the scale and ordering guarantees.
func SelfCheck(players []model.PlayerStats) []Check {
	w, _ := Preset(PresetBalanced)
	results := Compute(players, w, Options{ByGroup: true, TargetSpread: DefaultTargetSpread})

	ratings := make([]float64, len(results))
	for i, r := range results {
		ratings[i] = r.Rating
	}
	mu := Mean(ratings)
	sd := StdDev(ratings)

	sorted := len(results) > 1 && results[0].Rating >= results[len(results)-1].Rating
	for i := 1; i < len(results); i++ {
		if results[i].Rating > results[i-1].Rating {
			sorted = false
		}
	}

	mapped := len(players) > 0
	for _, p := range players {
		if p.Role == model.RoleUnknown || p.Role == "" {
			mapped = false
		}
	}

	return []Check{
		{ID: "mean=1.00", Pass: math.Abs(mu-TargetMean) <= 1e-9, Got: fmt.Sprintf("%.6f", mu)},
		{ID: "std~0.15", Pass: math.Abs(sd-DefaultTargetSpread) <= 0.02, Got: fmt.Sprintf("%.3f", sd)},
		{ID: "sorted", Pass: sorted, Got: okNG(sorted)},
		{ID: "roles mapped", Pass: mapped, Got: okNG(mapped)},
	}
}

func okNG(ok bool) string {
	if ok {
		return "OK"
	}
	return "NG"
}
