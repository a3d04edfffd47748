package shmup

import (
	"fmt"
	"iter"
)

// Handle addresses a slot in a pool.
type Handle int

// NoHandle is returned when a pool has no free slot.
const NoHandle Handle = -1

// Actor is an entity that can live in a pool.
type Actor interface {
	// Chara exposes the shared entity state.
	Chara() *Character
	// Reset zeroes the entity before reuse.
	Reset()
	// Action runs the per-frame behavior.
	Action(w World, dt float64)
	// Hit applies the effect of touching other.
	Hit(other *Character, w World)
}

// Pool is a fixed set of preallocated entities of one type. A slot is live
// while its entity is staged; unstaging an entity frees its slot.
type Pool[T Actor] struct {
	name    string
	items   []T
	dropped int
}

// NewPool allocates capacity entities with alloc. It panics when capacity
// is not positive.
func NewPool[T Actor](name string, capacity int, alloc func() T) *Pool[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("shmup: pool %s needs a positive capacity, got %d", name, capacity))
	}
	p := &Pool[T]{name: name, items: make([]T, capacity)}
	for i := range p.items {
		p.items[i] = alloc()
	}
	return p
}

// Name returns the pool name used in diagnostics.
func (p *Pool[T]) Name() string { return p.name }

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return len(p.items) }

// Dropped returns how many acquisitions failed because the pool was full.
func (p *Pool[T]) Dropped() int { return p.dropped }

// Acquire returns the first free entity in slot order, zeroed and staged.
// When every slot is live it returns ok == false and counts the drop.
func (p *Pool[T]) Acquire() (item T, h Handle, ok bool) {
	for i, it := range p.items {
		if it.Chara().Staged {
			continue
		}
		it.Reset()
		it.Chara().Staged = true
		return it, Handle(i), true
	}
	p.dropped++
	return item, NoHandle, false
}

// At returns the entity in slot h, live or not. It panics on a handle
// outside the pool.
func (p *Pool[T]) At(h Handle) T {
	return p.items[h]
}

// Live reports whether slot h holds a staged entity.
func (p *Pool[T]) Live(h Handle) bool {
	return h >= 0 && int(h) < len(p.items) && p.items[h].Chara().Staged
}

// Release frees slot h.
func (p *Pool[T]) Release(h Handle) {
	if h >= 0 && int(h) < len(p.items) {
		p.items[h].Chara().Staged = false
	}
}

// ReleaseAll frees every slot.
func (p *Pool[T]) ReleaseAll() {
	for _, it := range p.items {
		it.Chara().Staged = false
	}
}

// LiveCount returns the number of staged entities.
func (p *Pool[T]) LiveCount() int {
	n := 0
	for _, it := range p.items {
		if it.Chara().Staged {
			n++
		}
	}
	return n
}

// All iterates over staged entities in slot order. The staged flag is
// checked as each slot is reached, so entities removed during iteration are
// skipped. The sequence can be ranged over any number of times.
func (p *Pool[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i, it := range p.items {
			if !it.Chara().Staged {
				continue
			}
			if !yield(Handle(i), it) {
				return
			}
		}
	}
}
