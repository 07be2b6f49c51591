package signalchain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsAreTransparent(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1.0, p.Gain)
	assert.Equal(t, 20000.0, p.LowpassCutoff)
	assert.Equal(t, 20.0, p.HighpassCutoff)
	assert.Zero(t, p.DelayMix)
	assert.Zero(t, p.Distortion)
	assert.Equal(t, p, p.sanitized())
}

func TestParamsSanitized(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{
			name: "finite values pass through",
			in:   Params{Gain: -3, LowpassCutoff: 1e9, HighpassCutoff: -1, DelayTime: 5, DelayFeedback: 9, DelayMix: 2, Distortion: 4},
			want: Params{Gain: -3, LowpassCutoff: 1e9, HighpassCutoff: -1, DelayTime: 5, DelayFeedback: 9, DelayMix: 2, Distortion: 4},
		},
		{
			name: "nan gain",
			in:   Params{Gain: math.NaN(), LowpassCutoff: 500, HighpassCutoff: 50},
			want: Params{Gain: 1, LowpassCutoff: 500, HighpassCutoff: 50},
		},
		{
			name: "infinite cutoffs",
			in:   Params{Gain: 2, LowpassCutoff: math.Inf(1), HighpassCutoff: math.Inf(-1)},
			want: Params{Gain: 2, LowpassCutoff: 20000, HighpassCutoff: 20},
		},
		{
			name: "infinite delay controls",
			in:   Params{Gain: 1, DelayTime: math.Inf(1), DelayFeedback: math.NaN(), DelayMix: math.Inf(1), Distortion: math.Inf(1)},
			want: Params{Gain: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.sanitized())
		})
	}
}

func TestParamsJSON(t *testing.T) {
	raw := `{"gain":0.8,"lowpass_cutoff":4000,"highpass_cutoff":150,"delay_time":0.25,"delay_feedback":1.2,"delay_mix":0.4,"distortion":0.3}`

	var p Params
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, Params{
		Gain: 0.8, LowpassCutoff: 4000, HighpassCutoff: 150,
		DelayTime: 0.25, DelayFeedback: 1.2, DelayMix: 0.4, Distortion: 0.3,
	}, p)

	// Missing fields keep whatever the caller pre-filled.
	p = DefaultParams()
	require.NoError(t, json.Unmarshal([]byte(`{"distortion":0.5}`), &p))
	assert.Equal(t, 0.5, p.Distortion)
	assert.Equal(t, 20000.0, p.LowpassCutoff)
}
