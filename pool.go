package howto

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// GeneratorPool manages a bounded set of Generators for parallel exports.
// Each generator owns its own browser, so PDF exports run truly in parallel.
// Generators are created lazily on first Acquire to avoid startup delay.
type GeneratorPool struct {
	size       int
	opts       []Option
	generators []*Generator
	sem        chan *Generator
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewGeneratorPool creates a pool with capacity for n generators, each built
// with opts.
func NewGeneratorPool(n int, opts ...Option) *GeneratorPool {
	if n < 1 {
		n = 1
	}

	return &GeneratorPool{
		size:       n,
		opts:       opts,
		generators: make([]*Generator, 0, n),
		sem:        make(chan *Generator, n),
	}
}

// Acquire gets a generator from the pool, creating one if capacity remains.
// Blocks while all generators are in use. Returns the NewGenerator error if
// creation fails; the slot is given back so a later Acquire may retry.
func (p *GeneratorPool) Acquire() (*Generator, error) {
	if p.isClosed() {
		return nil, ErrGeneratorClosed
	}

	select {
	case gen, ok := <-p.sem:
		return p.received(gen, ok)
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrGeneratorClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Created outside the lock; style files may be read from disk.
		gen, err := NewGenerator(p.opts...)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			return nil, err
		}
		p.generators = append(p.generators, gen)
		return gen, nil
	}
	p.mu.Unlock()

	gen, ok := <-p.sem
	return p.received(gen, ok)
}

// received validates a generator taken from sem. A closed channel still
// yields its buffered generators, which are already shut down.
func (p *GeneratorPool) received(gen *Generator, ok bool) (*Generator, error) {
	if !ok || p.isClosed() {
		return nil, ErrGeneratorClosed
	}
	return gen, nil
}

func (p *GeneratorPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Release returns a generator to the pool. Releasing after Close is a no-op.
func (p *GeneratorPool) Release(gen *Generator) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	// Never blocks: at most size generators exist and sem holds size.
	select {
	case p.sem <- gen:
	default:
	}
}

// Close releases all browser resources.
// Returns an aggregated error if several generators fail to close.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	generators := p.generators
	p.mu.Unlock()

	var errs []error
	for _, gen := range generators {
		if err := gen.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *GeneratorPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
