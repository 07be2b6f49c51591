package delay

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize is returned when a line is requested with fewer than one slot.
var ErrInvalidSize = errors.New("delay size must be > 0")

// Line is a fixed-capacity circular delay line.
//
// The write head always points at the slot that will be written next, so
// Read(d) returns the sample written d writes ago.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zeroed delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// SizeForDuration returns the slot count holding seconds of audio at
// sampleRate, rounded to the nearest sample and never less than one.
func SizeForDuration(seconds, sampleRate float64) int {
	n := math.Round(seconds * sampleRate)
	if n < 1 || math.IsNaN(n) {
		return 1
	}
	return int(n)
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Cap returns the capacity of the backing buffer.
func (d *Line) Cap() int {
	return cap(d.buffer)
}

// WritePos returns the index of the next slot to be written.
func (d *Line) WritePos() int {
	return d.writePos
}

// Write stores sample at the write head and advances it by one slot.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample at (writePos - delay) mod Len.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Reset zeroes every slot and moves the write head back to slot 0.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
