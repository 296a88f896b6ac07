package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetCatalog(t *testing.T) {
	assert.Equal(t, []string{PresetBalanced, PresetCombatScore, PresetEntry, PresetFirepower, PresetStability}, PresetNames())

	for _, name := range PresetNames() {
		w, err := Preset(name)
		require.NoError(t, err)
		for metric, weight := range w {
			assert.Contains(t, Metrics, metric)
			assert.GreaterOrEqual(t, weight, 0.0)
		}
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	w, err := Preset(PresetBalanced)
	require.NoError(t, err)
	w[MetricKPR] = 9

	again, err := Preset(PresetBalanced)
	require.NoError(t, err)
	assert.Equal(t, 0.30, again[MetricKPR])
}

func TestPresetUnknown(t *testing.T) {
	_, err := Preset("nope")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestWeightsWith(t *testing.T) {
	base := Weights{MetricKPR: 0.3, MetricDPR: 0.4}
	out := base.With(map[string]float64{MetricDPR: 0, MetricClutch: 0.2})

	assert.Equal(t, Weights{MetricKPR: 0.3, MetricDPR: 0, MetricClutch: 0.2}, out)
	assert.Equal(t, 0.4, base[MetricDPR])
}

func TestSign(t *testing.T) {
	for _, m := range Metrics {
		want := 1.0
		if m == MetricDPR {
			want = -1
		}
		assert.Equal(t, want, Sign(m), m)
	}
}
