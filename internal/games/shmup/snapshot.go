package shmup

import "math"

// Snapshot is a read-only summary of the session used for determinism
// checks and replays. Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick     uint64
	Score    int
	HiScore  int
	Lives    int
	Stage    int
	Phase    int
	Progress int
	Gauge    float64
	Position float64 // Stage script scroll position

	// Each live entity is 4 values: Sprite, X bits, Y bits, HitPoint
	EntityCount int
	EntityData  []uint64
}

// Snapshot returns the current session state.
func (p *PlayData) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     uint64(p.ticks), //#nosec G115 -- tick count is always positive
		Score:    p.score,
		HiScore:  p.HiScore(),
		Lives:    p.lives,
		Stage:    p.stageIndex,
		Phase:    int(p.phase),
		Progress: p.script.Progress(),
		Gauge:    p.player.gauge,
		Position: p.script.Position(),
	}

	if p.player.Staged {
		snap.add(&p.player.Character)
	}
	snapPool(&snap, p.options)
	snapPool(&snap, p.playerShots)
	snapPool(&snap, p.reflectedShots)
	snapPool(&snap, p.enemies)
	snapPool(&snap, p.enemyShots)
	snapPool(&snap, p.effects)
	snapPool(&snap, p.blocks)
	snapPool(&snap, p.backs)
	return snap
}

func snapPool[T Actor](snap *Snapshot, pool *Pool[T]) {
	for _, it := range pool.All() {
		snap.add(it.Chara())
	}
}

func (snap *Snapshot) add(c *Character) {
	snap.EntityCount++
	snap.EntityData = append(snap.EntityData,
		uint64(c.Sprite), //#nosec G115 -- sprite IDs are small and positive
		math.Float64bits(c.X),
		math.Float64bits(c.Y),
		uint64(c.HitPoint), //#nosec G115 -- hash input
	)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HiScore)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stage)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Progress) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Gauge)
	h = h*31 + math.Float64bits(snap.Position)
	h = h*31 + uint64(snap.EntityCount) //#nosec G115 -- hash computation

	for _, v := range snap.EntityData {
		h = h*31 + v
	}

	return h
}
