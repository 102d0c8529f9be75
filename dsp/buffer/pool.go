package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse so that a chain can acquire and
// release its buffers without reallocating on every Init.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns an initialized, zeroed Buffer. Callers must return it via Put.
func (p *Pool) Get(size, sampleRate int) (*Buffer, error) {
	b := p.pool.Get().(*Buffer)
	if err := b.Init(size, sampleRate); err != nil {
		b.release()
		p.pool.Put(b)
		return nil, err
	}
	return b, nil
}

// Put releases b and returns it to the pool. Putting an uninitialized buffer
// (for instance one already released) returns ErrNotInitialized. Buffers
// created by FromSlice are released but not pooled, so the caller's slice is
// never handed out again.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) error {
	if b == nil {
		return nil
	}
	if !b.initialized {
		return ErrNotInitialized
	}
	if b.borrowed {
		return b.Release()
	}
	b.release()
	p.pool.Put(b)
	return nil
}
