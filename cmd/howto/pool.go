package main

import (
	"fmt"

	"github.com/alnah/go-howto"
)

// poolAdapter exposes a *howto.GeneratorPool through the Pool interface.
type poolAdapter struct {
	pool *howto.GeneratorPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// Acquire gets a generator, creating one if capacity remains.
func (a *poolAdapter) Acquire() (Exporter, error) {
	gen, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// Release returns a generator to the pool. Anything else is a programmer
// error.
func (a *poolAdapter) Release(exp Exporter) {
	gen, ok := exp.(*howto.Generator)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", exp))
	}
	a.pool.Release(gen)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
