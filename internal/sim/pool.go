package sim

import (
	"sync"

	"github.com/san-kum/gravsim/internal/vec"
)

// BodyPool recycles body buffers of one fixed length.
type BodyPool[S vec.Scalar, V vec.Vector[S, V]] struct {
	pool sync.Pool
	size int
}

func NewBodyPool[S vec.Scalar, V vec.Vector[S, V]](size int) *BodyPool[S, V] {
	return &BodyPool[S, V]{
		size: size,
		pool: sync.Pool{
			New: func() any {
				return make(Bodies[S, V], size)
			},
		},
	}
}

func (p *BodyPool[S, V]) Get() Bodies[S, V] {
	return p.pool.Get().(Bodies[S, V])
}

func (p *BodyPool[S, V]) Put(bs Bodies[S, V]) {
	if len(bs) != p.size {
		return
	}
	clear(bs)
	p.pool.Put(bs)
}

func (p *BodyPool[S, V]) GetAndCopy(src Bodies[S, V]) Bodies[S, V] {
	dst := p.Get()
	copy(dst, src)
	return dst
}
