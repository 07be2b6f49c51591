package signalchain

import "github.com/cwbudde/algo-signalchain/dsp/core"

// Params are the per-block controls of a [Chain]. Every field is clamped or
// thresholded by the chain, so any finite value is accepted.
type Params struct {
	// Gain is the linear input gain applied before every other stage.
	Gain float64 `json:"gain"`
	// LowpassCutoff is clamped to [100 Hz, 0.45*sampleRate].
	LowpassCutoff float64 `json:"lowpass_cutoff"`
	// HighpassCutoff is clamped to [20 Hz, 0.45*sampleRate].
	HighpassCutoff float64 `json:"highpass_cutoff"`
	// DelayTime in seconds; at or below 1 ms the echo is off.
	DelayTime float64 `json:"delay_time"`
	// DelayFeedback is scaled by 0.25 and capped at 0.6. Negative values
	// invert the echo polarity.
	DelayFeedback float64 `json:"delay_feedback"`
	// DelayMix in [0, 1]; 1 is an even dry/wet blend.
	DelayMix float64 `json:"delay_mix"`
	// Distortion amount; at or below 0.01 the stage is bypassed.
	Distortion float64 `json:"distortion"`
}

// DefaultParams returns a transparent setting: unity gain, filters at the
// edges of the audio band, no delay and no distortion.
func DefaultParams() Params {
	return Params{
		Gain:           1,
		LowpassCutoff:  20000,
		HighpassCutoff: 20,
	}
}

// sanitized replaces non-finite fields with their defaults.
func (p Params) sanitized() Params {
	def := DefaultParams()
	p.Gain = finiteOr(p.Gain, def.Gain)
	p.LowpassCutoff = finiteOr(p.LowpassCutoff, def.LowpassCutoff)
	p.HighpassCutoff = finiteOr(p.HighpassCutoff, def.HighpassCutoff)
	p.DelayTime = finiteOr(p.DelayTime, def.DelayTime)
	p.DelayFeedback = finiteOr(p.DelayFeedback, def.DelayFeedback)
	p.DelayMix = finiteOr(p.DelayMix, def.DelayMix)
	p.Distortion = finiteOr(p.Distortion, def.Distortion)
	return p
}

func finiteOr(v, def float64) float64 {
	if core.IsFinite(v) {
		return v
	}

	return def
}
