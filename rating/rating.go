package rating

import (
	"sort"

	"value-rating/model"
)

// Options are the per-run knobs besides the weights.
type Options struct {
	ByGroup      bool
	TargetSpread float64
}

// DefaultOptions compares players within their role and spreads ratings by 0.15.
func DefaultOptions() Options {
	return Options{ByGroup: true, TargetSpread: DefaultTargetSpread}
}

// Score combines z-scores into signed per-metric contributions and their sum.
func Score(z map[string]float64, w Weights) (map[string]float64, float64) {
	contrib := make(map[string]float64, len(Metrics))
	total := 0.0
	for _, metric := range Metrics {
		c := w[metric] * Sign(metric) * z[metric]
		contrib[metric] = c
		total += c
	}
	return contrib, total
}

// Rescale maps raw scores onto mean TargetMean and spread targetSpread.
// Rescaling is always global, regardless of how players were grouped.
func Rescale(raw []float64, targetSpread float64) []float64 {
	mu := Mean(raw)
	sigma := StdDev(raw)
	if sigma == 0 {
		sigma = Epsilon
	}
	scale := targetSpread / sigma

	out := make([]float64, len(raw))
	for i, r := range raw {
		out[i] = TargetMean + (r-mu)*scale
	}
	return out
}

// Rank orders results by rating, highest first. Equal ratings keep input order.
func Rank(results []model.RatingResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})
}

// Compute runs the full pipeline and returns ranked results. Inputs are not
// modified, and the same inputs always give the same output.
func Compute(players []model.PlayerStats, w Weights, opts Options) []model.RatingResult {
	if len(players) == 0 {
		return nil
	}
	spread := opts.TargetSpread
	if spread <= 0 {
		spread = DefaultTargetSpread
	}

	derived := make([]model.DerivedMetrics, len(players))
	for i, p := range players {
		derived[i] = Derive(p)
	}

	z := Standardize(derived, GroupPlayers(players, opts.ByGroup))

	results := make([]model.RatingResult, len(players))
	raw := make([]float64, len(players))
	for i, p := range players {
		contrib, sum := Score(z[i], w)
		raw[i] = sum
		results[i] = model.RatingResult{
			Index:         i,
			Stats:         p,
			Derived:       derived[i],
			ZScores:       z[i],
			Contributions: contrib,
			RawScore:      sum,
		}
	}

	for i, r := range Rescale(raw, spread) {
		results[i].Rating = r
	}

	Rank(results)
	return results
}
