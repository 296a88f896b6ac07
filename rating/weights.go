// Package rating turns raw per-player round stats into a single value rating.
// This file defines the metric set, the sign convention and the weight presets.
package rating

import (
	"errors"
	"sort"
)

// Metric names, also used as weight keys and export column suffixes.
const (
	MetricKPR         = "kpr"
	MetricDPR         = "dpr"
	MetricADR         = "adr"
	MetricKAST        = "kast"
	MetricEntry       = "entry"
	MetricACS         = "acs"
	MetricHeadshot    = "headshot"
	MetricConsistency = "consistency"
	MetricClutch      = "clutch"
	MetricMultiKill   = "multikill"
	MetricSupport     = "support"
	MetricObjective   = "objective"
)

// Metrics is the fixed order in which metrics are standardized, scored and exported.
var Metrics = []string{
	MetricKPR,
	MetricDPR,
	MetricADR,
	MetricKAST,
	MetricEntry,
	MetricACS,
	MetricHeadshot,
	MetricConsistency,
	MetricClutch,
	MetricMultiKill,
	MetricSupport,
	MetricObjective,
}

const (
	// Epsilon replaces a zero spread in standardization and rescaling.
	Epsilon = 1e-6

	// TargetMean is the fixed center of the final rating scale.
	TargetMean = 1.0

	DefaultTargetSpread = 0.15
)

// Multi-kill tier values for 2K..5K rounds.
const (
	MultiKillDouble = 0.5
	MultiKillTriple = 1.0
	MultiKillQuad   = 1.5
	MultiKillAce    = 2.0
)

// NonDamageAssistWeight scales non-damaging assists in the support metric.
const NonDamageAssistWeight = 0.5

// ConsistencyFloor is the smallest side KPR used as the consistency denominator.
const ConsistencyFloor = 0.1

// Sign returns -1 for metrics where a higher value is worse.
func Sign(metric string) float64 {
	if metric == MetricDPR {
		return -1
	}
	return 1
}

// Weights maps metric name to weight. Missing metrics weigh 0.
type Weights map[string]float64

// Clone returns an independent copy so callers can override entries.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// With returns a copy of w with the given overrides applied.
func (w Weights) With(overrides map[string]float64) Weights {
	out := w.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Preset names.
const (
	PresetBalanced    = "balanced"
	PresetFirepower   = "firepower"
	PresetStability   = "stability"
	PresetEntry       = "entry"
	PresetCombatScore = "combat-score"
)

var ErrUnknownPreset = errors.New("unknown weight preset")

var presets = map[string]Weights{
	PresetBalanced: {
		MetricKPR:         0.30,
		MetricDPR:         0.40,
		MetricADR:         0.12,
		MetricKAST:        0.15,
		MetricEntry:       0.25,
		MetricACS:         0.20,
		MetricHeadshot:    0.08,
		MetricConsistency: 0.10,
	},
	PresetFirepower: {
		MetricKPR:         0.40,
		MetricDPR:         0.50,
		MetricADR:         0.20,
		MetricKAST:        0.10,
		MetricEntry:       0.20,
		MetricACS:         0.25,
		MetricHeadshot:    0.15,
		MetricConsistency: 0.05,
	},
	PresetStability: {
		MetricKPR:         0.20,
		MetricDPR:         0.35,
		MetricADR:         0.08,
		MetricKAST:        0.25,
		MetricEntry:       0.15,
		MetricACS:         0.12,
		MetricHeadshot:    0.05,
		MetricConsistency: 0.20,
	},
	PresetEntry: {
		MetricKPR:         0.25,
		MetricDPR:         0.45,
		MetricADR:         0.10,
		MetricKAST:        0.12,
		MetricEntry:       0.35,
		MetricACS:         0.18,
		MetricHeadshot:    0.10,
		MetricConsistency: 0.08,
	},
	PresetCombatScore: {
		MetricKPR:         0.15,
		MetricDPR:         0.30,
		MetricADR:         0.10,
		MetricKAST:        0.15,
		MetricEntry:       0.15,
		MetricACS:         0.40,
		MetricHeadshot:    0.12,
		MetricConsistency: 0.08,
	},
}

// Preset returns a copy of the named preset.
func Preset(name string) (Weights, error) {
	w, ok := presets[name]
	if !ok {
		return nil, ErrUnknownPreset
	}
	return w.Clone(), nil
}

// PresetNames lists the preset catalog in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
