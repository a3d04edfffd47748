package shmup

import "testing"

// dummy counts the hits it receives.
type dummy struct {
	Character
	hits        int
	removeOnHit bool
}

func (p *dummy) Chara() *Character { return &p.Character }

func (p *dummy) Reset() { *p = dummy{} }

func (p *dummy) Action(World, float64) {}

func (p *dummy) Hit(*Character, World) {
	p.hits++
	if p.removeOnHit {
		p.Staged = false
	}
}

func newDummyPool(capacity int) *Pool[*dummy] {
	return NewPool("dummies", capacity, func() *dummy { return &dummy{} })
}

func placeDummy(pool *Pool[*dummy], x, y, size float64) *dummy {
	pr, _, _ := pool.Acquire()
	pr.X, pr.Y, pr.Width, pr.Height = x, y, size, size
	return pr
}

func TestCheckHitIdenticalBoxesHitOnce(t *testing.T) {
	selves, others := newDummyPool(1), newDummyPool(1)
	a := placeDummy(selves, 10, 10, 4)
	b := placeDummy(others, 10, 10, 4)

	if !CheckHit(a, others, nil) {
		t.Fatal("identical boxes should hit")
	}
	if a.hits != 1 || b.hits != 1 {
		t.Errorf("hits = (%d, %d), expected (1, 1)", a.hits, b.hits)
	}
}

func TestCheckHitNoOverlap(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		size float64
	}{
		{"apart", 50, 50, 4},
		{"touching edges", 14, 10, 4},
		{"zero size", 10, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			selves, others := newDummyPool(1), newDummyPool(1)
			a := placeDummy(selves, 10, 10, 4)
			b := placeDummy(others, tc.x, tc.y, tc.size)

			if CheckHit(a, others, nil) {
				t.Error("CheckHit() = true, expected false")
			}
			if a.hits != 0 || b.hits != 0 {
				t.Errorf("hits = (%d, %d), expected none", a.hits, b.hits)
			}
		})
	}
}

func TestCheckHitStopsWhenSelfLeaves(t *testing.T) {
	selves, others := newDummyPool(1), newDummyPool(3)
	a := placeDummy(selves, 10, 10, 4)
	a.removeOnHit = true
	first := placeDummy(others, 10, 10, 4)
	second := placeDummy(others, 11, 10, 4)

	CheckHit(a, others, nil)
	if first.hits != 1 || second.hits != 0 {
		t.Errorf("hits = (%d, %d), expected (1, 0)", first.hits, second.hits)
	}
}

func TestCheckHitSkipsUnstaged(t *testing.T) {
	selves, others := newDummyPool(1), newDummyPool(1)
	a := placeDummy(selves, 10, 10, 4)
	b := placeDummy(others, 10, 10, 4)
	b.Staged = false

	if CheckHit(a, others, nil) {
		t.Error("unstaged entity should never collide")
	}
}

func TestResolveBlocksPolicies(t *testing.T) {
	blocks := newBlockPool(1)
	b, _, _ := blocks.Acquire()
	b.X, b.Y, b.Width, b.Height = 100, 100, 16, 16
	b.PrevX, b.PrevY = b.X, b.Y

	moving := Character{X: 88, Y: 100, PrevX: 80, PrevY: 100, Width: 10, Height: 10, Staged: true, BlockHit: BlockHitMove}
	resolveBlocks(&moving, blocks)
	if moving.X != 87 || moving.BlockHitSide != HitRight {
		t.Errorf("move policy: X = %v side %v", moving.X, moving.BlockHitSide)
	}

	gone := Character{X: 100, Y: 100, Width: 4, Height: 4, Staged: true, BlockHit: BlockHitDisappear}
	resolveBlocks(&gone, blocks)
	if gone.Staged {
		t.Error("disappear policy should unstage")
	}

	ghost := Character{X: 100, Y: 100, Width: 4, Height: 4, Staged: true, BlockHitSide: HitTop}
	resolveBlocks(&ghost, blocks)
	if !ghost.Staged || ghost.X != 100 || ghost.BlockHitSide != 0 {
		t.Errorf("none policy should pass through and clear sides: %+v", ghost)
	}
}
