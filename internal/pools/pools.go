package pools

import "sync"

// PooledItem creates and recycles pool values.
type PooledItem[T any] interface {
	Init() T
	Reset(T) T
}

// Pool is a typed [sync.Pool].
type Pool[T any] struct {
	Init PooledItem[T]
	base sync.Pool
}

func (p *Pool[T]) Get() T {
	if v := p.base.Get(); v != nil {
		return v.(T)
	}
	return p.Init.Init()
}

func (p *Pool[T]) Put(v T) {
	p.base.Put(p.Init.Reset(v))
}

// Words returns a pool of word slices starting with capacity words.
func Words(capacity int) *Pool[*[]uint64] {
	return &Pool[*[]uint64]{Init: words(capacity)}
}

type words int

func (w words) Init() *[]uint64 {
	b := make([]uint64, 0, int(w))
	return &b
}

func (words) Reset(b *[]uint64) *[]uint64 {
	clear(*b)
	*b = (*b)[:0]
	return b
}
