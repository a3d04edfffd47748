package shmup

import "testing"

func TestSpeciesTable(t *testing.T) {
	for id, sp := range speciesTable {
		if sp.ID != id {
			t.Errorf("species %d registered as %d", sp.ID, id)
		}
		if sp.Behavior == nil || sp.Destroy == nil {
			t.Errorf("species %d (%s) lacks a behavior or destroy routine", id, sp.Name)
		}
		if sp.HitPoint <= 0 || sp.HitWidth <= 0 || sp.HitHeight <= 0 {
			t.Errorf("species %d (%s) has no hit points or hit box", id, sp.Name)
		}
	}
	if _, ok := LookupSpecies(999); ok {
		t.Error("LookupSpecies(999) should fail")
	}
}

// spawnAt places an enemy of species id and returns it.
func spawnAt(t *testing.T, p *PlayData, id int, x, y float64) *Enemy {
	t.Helper()
	p.SpawnEnemy(id, 0, x, y)
	for _, e := range p.enemies.All() {
		if e.X == x && e.Y == y {
			return e
		}
	}
	t.Fatalf("species %d did not spawn", id)
	return nil
}

func step(e *Enemy, w World, n int) {
	for range n {
		e.Action(w, 0.1)
	}
}

func TestEnemyInitFallsBackToSpeciesProgress(t *testing.T) {
	p := newTestPlay(t)
	p.SpawnEnemy(SpeciesButterfly, 0, 300, 200)
	p.SpawnEnemy(SpeciesButterfly, 7, 300, 100)

	if got := p.enemies.At(0).Progress; got != 2 {
		t.Errorf("default progress = %d, expected 2", got)
	}
	if got := p.enemies.At(1).Progress; got != 7 {
		t.Errorf("event progress = %d, expected 7", got)
	}
}

func TestDragonflyFiresTwiceThenRetreats(t *testing.T) {
	p := newTestPlay(t)
	e := spawnAt(t, p, SpeciesDragonfly, 288, 200)

	step(e, p, 30)

	if e.State != dragonflyRetreat {
		t.Errorf("State = %d, expected retreat", e.State)
	}
	if n := p.enemyShots.LiveCount(); n != 2 {
		t.Errorf("shots = %d, expected 2", n)
	}
	if e.SpeedY <= 0 {
		t.Errorf("dragonfly above the player should climb away, got SpeedY %v", e.SpeedY)
	}
}

func TestAntTurnsAtWalls(t *testing.T) {
	p := newTestPlay(t)
	e := spawnAt(t, p, SpeciesAnt, 300, 10)

	step(e, p, 1)
	if e.SpeedX >= 0 || e.SpeedY >= 0 {
		t.Fatalf("floor ant speed = (%v, %v), expected left and down", e.SpeedX, e.SpeedY)
	}

	e.BlockHitSide = HitLeft
	step(e, p, 1)
	if e.SpeedX <= 0 {
		t.Errorf("ant should turn right after striking a wall on its left, got %v", e.SpeedX)
	}

	e.BlockHitSide = HitRight
	step(e, p, 1)
	if e.SpeedX >= 0 {
		t.Errorf("ant should turn left after striking a wall on its right, got %v", e.SpeedX)
	}
}

func TestAntOnCeiling(t *testing.T) {
	p := newTestPlay(t)
	e := spawnAt(t, p, SpeciesAnt, 300, 310)

	step(e, p, 1)
	if e.SpeedY <= 0 {
		t.Errorf("ceiling ant SpeedY = %v, expected upward", e.SpeedY)
	}
}

func TestLadybugFiresRing(t *testing.T) {
	p := newTestPlay(t)
	e := spawnAt(t, p, SpeciesLadybug, 300, 200)

	step(e, p, 10)

	if e.State != stateLeave {
		t.Errorf("State = %d, expected leave", e.State)
	}
	if n := p.enemyShots.LiveCount(); n != 12 {
		t.Errorf("shots = %d, expected a ring of 12", n)
	}
}

func TestBagwormFiresBurst(t *testing.T) {
	p := newTestPlay(t)
	e := spawnAt(t, p, SpeciesBagworm, 300, 200)

	step(e, p, 26)
	if n := p.enemyShots.LiveCount(); n != 1 {
		t.Fatalf("shots = %d, expected one burst shot", n)
	}
	s := p.enemyShots.At(0)
	if !s.bursting || s.Sprite != SpriteBurstShot {
		t.Fatal("bagworm shot should be a burst shot")
	}

	for range 9 {
		s.Action(p, 0.1)
	}
	if s.Staged {
		t.Error("burst shot should split after its delay")
	}
	if n := p.enemyShots.LiveCount(); n != 8 {
		t.Errorf("shots after burst = %d, expected 8", n)
	}
}

func TestHornetAttackPhases(t *testing.T) {
	p := newTestPlay(t)
	e := spawnAt(t, p, SpeciesHornet, 390, 160)

	step(e, p, 1)
	if e.State != hornetFight {
		t.Fatalf("State = %d, expected fight once in position", e.State)
	}

	step(e, p, 10)
	if n := p.enemyShots.LiveCount(); n != 5 {
		t.Errorf("shots = %d, expected one 5-way volley", n)
	}
}

func TestEnemyDestroyedAtZeroHitPoints(t *testing.T) {
	p := newTestPlay(t)
	e := spawnAt(t, p, SpeciesCicada, 300, 200)

	e.Hit(&Character{Power: 4}, p)
	if !e.Staged {
		t.Fatal("cicada should survive 4 damage")
	}
	e.Hit(&Character{Power: 1}, p)
	if e.Staged {
		t.Fatal("cicada should be destroyed at zero hit points")
	}
	if p.Score() != 250 {
		t.Errorf("Score() = %d, expected 250", p.Score())
	}
}

func TestAntWalksAcrossFloorSeams(t *testing.T) {
	p := newTestPlay(t)
	for i := range 16 {
		p.SpawnBlock(1, 8+16*float64(i), 8)
	}
	e := spawnAt(t, p, SpeciesAnt, 250, 21)

	flips := 0
	dir := 0.0
	for frame := range 240 {
		p.Update(1.0 / 60)
		if !e.Staged {
			t.Fatalf("ant left play at frame %d", frame)
		}
		if e.SpeedX != 0 && dir != 0 && (e.SpeedX > 0) != (dir > 0) {
			flips++
			t.Errorf("frame %d: ant reversed at x=%.2f side=%04b", frame, e.X, e.BlockHitSide)
		}
		if e.SpeedX != 0 {
			dir = e.SpeedX
		}
	}
	if flips != 0 {
		t.Errorf("ant turned %d times on a flat floor", flips)
	}
	if e.X >= 250 {
		t.Errorf("ant should have walked left, at x=%.2f", e.X)
	}
}
