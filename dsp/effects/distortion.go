package effects

import "math"

const (
	// SoftClipThreshold is the amount at or below which SoftClip is bypassed.
	SoftClipThreshold = 0.01
	// softClipDriveRange maps amount 1.0 to a drive of 9.
	softClipDriveRange = 8.0
	// maxSoftClipDrive caps the drive so it stays finite. At this drive any
	// audible sample already saturates tanh, and x*drive keeps 0 at 0.
	maxSoftClipDrive = 1e12
)

// SoftClip is a drive-normalized hyperbolic tangent saturator:
//
//	drive = 1 + 8*amount
//	y     = tanh(x*drive) / tanh(drive)
//
// The normalization keeps y(1) = 1 for every drive. Amounts at or below
// SoftClipThreshold leave samples untouched, bit for bit.
type SoftClip struct {
	amount float64
	drive  float64
	norm   float64
	active bool
}

// NewSoftClip returns a bypassed SoftClip.
func NewSoftClip() *SoftClip {
	return &SoftClip{drive: 1, norm: 1}
}

// SetAmount derives the drive and normalization for amount. Call it once
// per block; ProcessSample only reads the cached values.
func (s *SoftClip) SetAmount(amount float64) {
	s.amount = amount
	s.active = amount > SoftClipThreshold && !math.IsInf(amount, 0)
	if !s.active {
		s.drive, s.norm = 1, 1
		return
	}

	s.drive = math.Min(1+amount*softClipDriveRange, maxSoftClipDrive)
	s.norm = mathTanh(s.drive)
}

// ProcessSample applies the transfer curve to one sample.
func (s *SoftClip) ProcessSample(x float64) float64 {
	if !s.active {
		return x
	}
	return mathTanh(x*s.drive) / s.norm
}

// ProcessInPlace applies the transfer curve to buf in place.
func (s *SoftClip) ProcessInPlace(buf []float64) {
	if !s.active {
		return
	}
	for i, x := range buf {
		buf[i] = mathTanh(x*s.drive) / s.norm
	}
}

// Amount returns the last amount passed to SetAmount.
func (s *SoftClip) Amount() float64 { return s.amount }

// Drive returns the current pre-shape drive (1 when bypassed).
func (s *SoftClip) Drive() float64 { return s.drive }

// Active reports whether the stage currently alters samples.
func (s *SoftClip) Active() bool { return s.active }
