package buffer

import (
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

// ErrNotMono is returned when importing a multi-channel go-audio buffer.
var ErrNotMono = errors.New("buffer: only mono audio is supported")

// FloatBuffer exports a copy of b as a mono go-audio FloatBuffer.
func (b *Buffer) FloatBuffer() (*audio.FloatBuffer, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	data := make([]float64, len(b.samples))
	copy(data, b.samples)
	return &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: b.sampleRate},
		Data:   data,
	}, nil
}

// FromFloatBuffer copies a mono go-audio FloatBuffer into a new Buffer.
func FromFloatBuffer(fb *audio.FloatBuffer) (*Buffer, error) {
	if fb == nil || fb.Format == nil {
		return nil, errors.New("buffer: go-audio buffer has no format")
	}
	if fb.Format.NumChannels != 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotMono, fb.Format.NumChannels)
	}
	b, err := New(len(fb.Data), fb.Format.SampleRate)
	if err != nil {
		return nil, err
	}
	copy(b.samples, fb.Data)
	return b, nil
}
