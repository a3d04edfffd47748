package shmup

import (
	"math"

	"github.com/vovakirdan/tui-shmup/internal/games/shmup/nway"
)

// Species IDs referenced by stage files.
const (
	SpeciesDragonfly   = 1
	SpeciesAnt         = 2
	SpeciesButterfly   = 3
	SpeciesLadybug     = 4
	SpeciesBagworm     = 5
	SpeciesCicada      = 6
	SpeciesHornet      = 10
	SpeciesQueenHornet = 11
)

// regTimer holds the seconds spent in the current state for every species.
const regTimer = 0

// Dragonfly registers.
const (
	dragonflyShots = 1
	dragonflyDir   = 2
)

// Ant registers.
const (
	antGravity = 1 // -1 walks on the floor, +1 on the ceiling
)

// Cicada registers.
const (
	cicadaCycles = 1
)

// Hornet registers.
const (
	hornetFire = 1
	hornetSpin = 2
)

// Dragonfly states.
const (
	dragonflyApproach = iota
	dragonflyAttack
	dragonflyRetreat
)

// Ladybug and cicada states.
const (
	stateMove = iota
	stateFire
	stateLeave
)

// Hornet states.
const (
	hornetEnter = iota
	hornetFight
)

var speciesTable = map[int]*Species{
	SpeciesDragonfly: {
		ID:           SpeciesDragonfly,
		Name:         "dragonfly",
		Sprite:       SpriteDragonfly,
		AnimPattern:  2,
		AnimInterval: 0.1,
		HitWidth:     16,
		HitHeight:    12,
		HitPoint:     3,
		Score:        100,
		Progress:     1,
		Behavior:     actDragonfly,
		Destroy:      destroyNormal,
	},
	SpeciesAnt: {
		ID:           SpeciesAnt,
		Name:         "ant",
		Sprite:       SpriteAnt,
		AnimPattern:  2,
		AnimInterval: 0.25,
		HitWidth:     14,
		HitHeight:    10,
		HitPoint:     4,
		Score:        150,
		Progress:     1,
		BlockHit:     BlockHitMove,
		ScrollFactor: 1,
		Behavior:     actAnt,
		Destroy:      destroyNormal,
	},
	SpeciesButterfly: {
		ID:           SpeciesButterfly,
		Name:         "butterfly",
		Sprite:       SpriteButterfly,
		AnimPattern:  2,
		AnimInterval: 0.2,
		HitWidth:     16,
		HitHeight:    16,
		HitPoint:     4,
		Score:        200,
		Progress:     2,
		Behavior:     actButterfly,
		Destroy:      destroyNormal,
	},
	SpeciesLadybug: {
		ID:           SpeciesLadybug,
		Name:         "ladybug",
		Sprite:       SpriteLadybug,
		AnimPattern:  2,
		AnimInterval: 0.15,
		HitWidth:     14,
		HitHeight:    14,
		HitPoint:     8,
		Score:        300,
		Progress:     2,
		Behavior:     actLadybug,
		Destroy:      destroyNormal,
	},
	SpeciesBagworm: {
		ID:           SpeciesBagworm,
		Name:         "bagworm",
		Sprite:       SpriteBagworm,
		HitWidth:     12,
		HitHeight:    20,
		OffsetY:      2,
		HitPoint:     10,
		Score:        400,
		Progress:     2,
		ScrollFactor: 1,
		Behavior:     actBagworm,
		Destroy:      destroyNormal,
	},
	SpeciesCicada: {
		ID:           SpeciesCicada,
		Name:         "cicada",
		Sprite:       SpriteCicada,
		AnimPattern:  2,
		AnimInterval: 0.05,
		HitWidth:     18,
		HitHeight:    12,
		HitPoint:     5,
		Score:        250,
		Progress:     2,
		Behavior:     actCicada,
		Destroy:      destroyNormal,
	},
	SpeciesHornet: {
		ID:           SpeciesHornet,
		Name:         "hornet",
		Sprite:       SpriteHornet,
		AnimPattern:  2,
		AnimInterval: 0.08,
		HitWidth:     48,
		HitHeight:    40,
		HitPoint:     300,
		Score:        5000,
		Progress:     10,
		Boss:         true,
		Behavior:     actHornet,
		Destroy:      destroyBoss,
	},
	SpeciesQueenHornet: {
		ID:           SpeciesQueenHornet,
		Name:         "queen hornet",
		Sprite:       SpriteHornet,
		AnimPattern:  2,
		AnimInterval: 0.06,
		HitWidth:     48,
		HitHeight:    40,
		HitPoint:     450,
		Score:        8000,
		Progress:     10,
		Boss:         true,
		Behavior:     actHornet,
		Destroy:      destroyBoss,
	},
}

// LookupSpecies returns the species registered under id.
func LookupSpecies(id int) (*Species, bool) {
	sp, ok := speciesTable[id]
	return sp, ok
}

// aimAngle returns the angle from the enemy to the player.
func aimAngle(e *Enemy, w World) float64 {
	pl := w.Player()
	return nway.DestAngle(e.X, e.Y, pl.X, pl.Y)
}

// actDragonfly flies in, fires two aimed shots from a hover and leaves
// away from the player.
func actDragonfly(e *Enemy, w World, dt float64) {
	e.Work[regTimer] += dt
	switch e.State {
	case dragonflyApproach:
		e.SpeedX, e.SpeedY = -120, 0
		if e.X < w.Config().Field.Width*0.65 {
			e.setState(dragonflyAttack)
		}
	case dragonflyAttack:
		e.SpeedX = 0
		if e.Work[regTimer] < w.FireInterval(0.6) {
			return
		}
		e.Work[regTimer] = 0
		w.FireNWay(e.X, e.Y, aimAngle(e, w), 1, 0, w.EnemyShotSpeed(1))
		e.Work[dragonflyShots]++
		if e.Work[dragonflyShots] >= 2 {
			e.setState(dragonflyRetreat)
			e.Work[dragonflyDir] = 1
			if w.Player().Y > e.Y {
				e.Work[dragonflyDir] = -1
			}
		}
	case dragonflyRetreat:
		e.SpeedX = -60
		e.SpeedY = 140 * e.Work[dragonflyDir]
	}
}

// actAnt walks along the floor or the ceiling it spawned nearest, turning
// back at walls and firing at the player now and then.
func actAnt(e *Enemy, w World, dt float64) {
	e.Work[regTimer] += dt
	if e.Frame == 0 {
		e.Work[antGravity] = -1
		if e.Y > w.Config().Field.Height/2 {
			e.Work[antGravity] = 1
		}
		e.SpeedX = -40
	}

	switch {
	case e.BlockHitSide&HitLeft != 0:
		e.SpeedX = math.Abs(e.SpeedX)
	case e.BlockHitSide&HitRight != 0:
		e.SpeedX = -math.Abs(e.SpeedX)
	}
	e.SpeedY = 120 * e.Work[antGravity]

	if e.Work[regTimer] >= w.FireInterval(2.0) {
		e.Work[regTimer] = 0
		w.FireNWay(e.X, e.Y, aimAngle(e, w), 1, 0, w.EnemyShotSpeed(0.8))
	}
}

// actButterfly drifts left on a sine wave, firing 3-way spreads.
func actButterfly(e *Enemy, w World, dt float64) {
	e.Work[regTimer] += dt
	e.SpeedX = -70
	e.SpeedY = 90 * math.Cos(e.Time*3)
	if e.Work[regTimer] >= w.FireInterval(1.6) {
		e.Work[regTimer] = 0
		pl := w.Player()
		for _, a := range nway.TowardTarget(e.X, e.Y, pl.X, pl.Y, 3, nway.Radians(15)) {
			w.FireEnemyShot(e.X, e.Y, a, w.EnemyShotSpeed(1))
		}
	}
}

// actLadybug homes in on the player's row, stops to release a ring of
// bullets and then dashes off.
func actLadybug(e *Enemy, w World, dt float64) {
	e.Work[regTimer] += dt
	switch e.State {
	case stateMove:
		e.SpeedX = -100
		e.SpeedY = min(max((w.Player().Y-e.Y)*2, -60), 60)
		if e.X < w.Config().Field.Width*0.7 {
			e.setState(stateFire)
		}
	case stateFire:
		e.SpeedX, e.SpeedY = 0, 0
		if e.Work[regTimer] >= 0.5 {
			start := w.Rand().Float64() * 2 * math.Pi / 12
			w.FireRadial(e.X, e.Y, start, 12, w.EnemyShotSpeed(0.9))
			e.setState(stateLeave)
		}
	case stateLeave:
		e.SpeedX, e.SpeedY = -150, 0
	}
}

// actBagworm hangs from the map and lobs slow shots that burst into rings.
func actBagworm(e *Enemy, w World, dt float64) {
	e.Work[regTimer] += dt
	e.SpeedY = 10 * math.Sin(e.Time*2)
	if e.Work[regTimer] >= w.FireInterval(2.5) {
		e.Work[regTimer] = 0
		w.FireBurst(e.X, e.Y, aimAngle(e, w), w.EnemyShotSpeed(0.6), Burst{
			Delay: 0.8,
			Count: 8,
			Speed: w.EnemyShotSpeed(1),
		})
	}
}

// actCicada dashes, stops to fire a tight group at the player and repeats
// once before leaving.
func actCicada(e *Enemy, w World, dt float64) {
	e.Work[regTimer] += dt
	switch e.State {
	case stateMove:
		e.SpeedX, e.SpeedY = -220, 0
		if e.Work[regTimer] >= 0.5 {
			e.setState(stateFire)
		}
	case stateFire:
		e.SpeedX = 0
		if e.Work[regTimer] < 0.4 {
			return
		}
		w.FireGroup(e.X, e.Y, aimAngle(e, w), 3, 6, w.EnemyShotSpeed(1.3))
		e.Work[cicadaCycles]++
		if e.Work[cicadaCycles] >= 2 {
			e.setState(stateLeave)
		} else {
			e.setState(stateMove)
		}
	case stateLeave:
		e.SpeedX = -260
	}
}

// actHornet enters from the right and cycles through three attack phases
// of four seconds each while swaying vertically.
func actHornet(e *Enemy, w World, dt float64) {
	e.Work[regTimer] += dt
	field := w.Config().Field
	switch e.State {
	case hornetEnter:
		e.SpeedX, e.SpeedY = -60, 0
		if e.X <= field.Width-80 {
			e.setState(hornetFight)
		}
		return
	case hornetFight:
		e.SpeedX = 0
		e.SpeedY = 40 * math.Cos(e.Work[regTimer]*1.2)
	}

	e.Work[hornetFire] += dt
	phase := int(e.Work[regTimer]/4) % 3
	switch phase {
	case 0:
		if e.Work[hornetFire] >= w.FireInterval(0.7) {
			e.Work[hornetFire] = 0
			w.FireNWay(e.X, e.Y, aimAngle(e, w), 5, nway.Radians(12), w.EnemyShotSpeed(1.1))
		}
	case 1:
		if e.Work[hornetFire] >= w.FireInterval(0.9) {
			e.Work[hornetFire] = 0
			w.FireRadial(e.X, e.Y, e.Work[hornetSpin], 16, w.EnemyShotSpeed(0.9))
			// The ring's gap turns toward the player
			pl := w.Player()
			turn := float64(nway.RotDirection(e.Work[hornetSpin], e.X, e.Y, pl.X, pl.Y))
			e.Work[hornetSpin] = nway.Normalize(e.Work[hornetSpin] + turn*nway.Radians(7))
		}
	case 2:
		if e.Work[hornetFire] >= w.FireInterval(1.4) {
			e.Work[hornetFire] = 0
			var buf [3]float64
			for _, a := range nway.AppendFromCenter(buf[:0], aimAngle(e, w), 3, nway.Radians(30)) {
				w.FireBurst(e.X, e.Y, a, w.EnemyShotSpeed(0.7), Burst{
					Delay: 0.6,
					Count: 6,
					Speed: w.EnemyShotSpeed(1),
				})
			}
		}
	}
}
