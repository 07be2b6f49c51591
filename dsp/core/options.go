package core

import "time"

// Defaults used when no option overrides them.
const (
	DefaultSampleRate = 48000
	DefaultBlockSize  = 128
)

// ProcessorConfig carries the settings shared by every processor in a chain.
type ProcessorConfig struct {
	SampleRate float64
	// BlockSize is the largest block the host is expected to pass. Processors
	// pre-size scratch storage from it so the audio callback never allocates.
	BlockSize int
}

// BlockDuration is the wall-clock length of one full block.
func (c ProcessorConfig) BlockDuration() time.Duration {
	if !(c.SampleRate > 0) || c.BlockSize <= 0 {
		return 0
	}

	return time.Duration(float64(c.BlockSize) * float64(time.Second) / c.SampleRate)
}

// ProcessorOption adjusts a ProcessorConfig. Options that receive an unusable
// value leave the config unchanged.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz with 128-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: DefaultSampleRate, BlockSize: DefaultBlockSize}
}

// WithSampleRate sets the rate when it is finite and positive.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the expected maximum block size when it is positive.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions starts from DefaultProcessorConfig and applies opts in
// order. Nil options are skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return cfg
}
