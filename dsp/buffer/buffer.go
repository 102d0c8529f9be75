package buffer

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// MaxSize is the largest sample count a Buffer will allocate (256 Mi samples, 2 GiB).
const MaxSize = 1 << 28

var (
	// ErrAlreadyInitialized is returned by Init on a buffer that holds storage.
	ErrAlreadyInitialized = errors.New("buffer: already initialized")
	// ErrNotInitialized is returned when a buffer without storage is used or released.
	ErrNotInitialized = errors.New("buffer: not initialized")
	// ErrInvalidSize is returned for non-positive sizes.
	ErrInvalidSize = errors.New("buffer: size must be > 0")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("buffer: sample rate must be > 0")
	// ErrTooLarge is returned when the requested storage exceeds MaxSize.
	ErrTooLarge = errors.New("buffer: size exceeds allocation limit")
	// ErrIndexOutOfRange is returned by the checked accessors.
	ErrIndexOutOfRange = errors.New("buffer: index out of range")
	// ErrSizeMismatch is returned when two buffers must have the same length.
	ErrSizeMismatch = errors.New("buffer: size mismatch")
)

// Buffer holds a fixed-length mono sample sequence and its sample rate.
// The zero value is an uninitialized buffer ready for Init.
type Buffer struct {
	samples     []float64
	sampleRate  int
	initialized bool
	// borrowed marks storage owned by the caller of FromSlice.
	borrowed bool
}

// New returns an initialized, zero-filled Buffer.
func New(size, sampleRate int) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Init(size, sampleRate); err != nil {
		return nil, err
	}
	return b, nil
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
// The slice stays owned by the caller: a Pool never recycles it.
func FromSlice(s []float64, sampleRate int) (*Buffer, error) {
	if err := validate(len(s), sampleRate); err != nil {
		return nil, err
	}
	return &Buffer{samples: s, sampleRate: sampleRate, initialized: true, borrowed: true}, nil
}

// Init allocates size zero-filled samples and records sampleRate.
// Calling Init again before Release returns ErrAlreadyInitialized.
func (b *Buffer) Init(size, sampleRate int) error {
	if b.initialized {
		return ErrAlreadyInitialized
	}
	if err := validate(size, sampleRate); err != nil {
		return err
	}

	// Released pooled buffers keep their backing array; reuse it.
	b.samples = core.EnsureLen(b.samples, size)
	core.Zero(b.samples)
	b.sampleRate = sampleRate
	b.initialized = true
	b.borrowed = false
	return nil
}

// Release drops the sample storage. The buffer may be initialized again afterwards.
func (b *Buffer) Release() error {
	if !b.initialized {
		return ErrNotInitialized
	}
	b.samples = nil
	b.sampleRate = 0
	b.initialized = false
	return nil
}

// release marks the buffer uninitialized but keeps its backing array for reuse.
func (b *Buffer) release() {
	b.samples = b.samples[:0]
	b.sampleRate = 0
	b.initialized = false
}

// Initialized reports whether the buffer currently owns storage.
func (b *Buffer) Initialized() bool {
	return b.initialized
}

// Samples returns the underlying slice, or nil when uninitialized.
func (b *Buffer) Samples() []float64 {
	if !b.initialized {
		return nil
	}
	return b.samples
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	if !b.initialized {
		return 0
	}
	return len(b.samples)
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// At returns the sample at index.
func (b *Buffer) At(index int) (float64, error) {
	if err := b.checkIndex(index); err != nil {
		return 0, err
	}
	return b.samples[index], nil
}

// Set stores value at index.
func (b *Buffer) Set(index int, value float64) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	b.samples[index] = value
	return nil
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	core.Zero(b.Samples())
}

// CopyFrom overwrites b with the contents of src. Both must have the same length.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if !b.initialized || src == nil || !src.initialized {
		return ErrNotInitialized
	}
	if len(b.samples) != len(src.samples) {
		return fmt.Errorf("%w: %d vs %d", ErrSizeMismatch, len(b.samples), len(src.samples))
	}
	copy(b.samples, src.samples)
	return nil
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	if !b.initialized {
		return &Buffer{}
	}
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s, sampleRate: b.sampleRate, initialized: true}
}

func (b *Buffer) checkIndex(index int) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if index < 0 || index >= len(b.samples) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(b.samples))
	}
	return nil
}

func validate(size, sampleRate int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size > MaxSize {
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, size, MaxSize)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}
