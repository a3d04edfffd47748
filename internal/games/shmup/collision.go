package shmup

import (
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/nway"
)

// CheckHit tests self against every live entity of others in slot order.
// Each overlapping pair calls self.Hit then other.Hit exactly once. Testing
// stops as soon as self leaves play. It reports whether anything overlapped.
func CheckHit[A, B Actor](self A, others *Pool[B], w World) bool {
	sc := self.Chara()
	if !sc.Staged {
		return false
	}
	hit := false
	for _, other := range others.All() {
		oc := other.Chara()
		if !sc.Box().Overlaps(oc.Box()) {
			continue
		}
		hit = true
		self.Hit(oc, w)
		other.Hit(sc, w)
		if !sc.Staged {
			break
		}
	}
	return hit
}

// checkPools runs CheckHit for every live entity of as against bs.
func checkPools[A, B Actor](as *Pool[A], bs *Pool[B], w World) {
	for _, a := range as.All() {
		CheckHit(a, bs, w)
	}
}

// hitBlocks applies each entity's block policy against every live block.
func hitBlocks[A Actor](as *Pool[A], blocks *Pool[*Block]) {
	for _, a := range as.All() {
		resolveBlocks(a.Chara(), blocks)
	}
}

// resolveBlocks clears the struck sides and then pushes or removes c for
// every block it overlaps.
func resolveBlocks(c *Character, blocks *Pool[*Block]) {
	c.BlockHitSide = 0
	if c.BlockHit == BlockHitNone {
		return
	}
	for _, b := range blocks.All() {
		if !c.Box().Overlaps(b.Box()) {
			continue
		}
		switch c.BlockHit {
		case BlockHitDisappear:
			c.DisappearOfBlockHit()
			return
		case BlockHitMove, BlockHitPlayer:
			c.MoveOfBlockHit(&b.Character)
		}
	}
}

// collide resolves all collisions of the frame in a fixed order. Entities
// removed by an earlier pair are unstaged and take no part in later ones.
func (p *PlayData) collide() {
	// Player-side bullets against enemies and blocks
	checkPools(p.playerShots, p.enemies, p)
	checkPools(p.reflectedShots, p.enemies, p)
	hitBlocks(p.playerShots, p.blocks)
	hitBlocks(p.reflectedShots, p.blocks)

	// The shield turns bullets touching an option around
	p.reflectShots()

	// Graze before hit so a fatal bullet still counts
	p.grazeShots()
	CheckHit(p.player, p.enemyShots, p)
	hitBlocks(p.enemyShots, p.blocks)

	// Ramming
	CheckHit(p.player, p.enemies, p)

	// Terrain
	if p.player.Staged {
		resolveBlocks(&p.player.Character, p.blocks)
		if p.player.Box().Left() < 0 {
			p.logger.Debug("player crushed by terrain")
			p.Miss()
		}
	}
	hitBlocks(p.enemies, p.blocks)
}

// reflectShots sends enemy bullets touching an option back as player shots.
func (p *PlayData) reflectShots() {
	if !p.player.shield {
		return
	}
	for _, o := range p.options.All() {
		ob := o.Box()
		for _, s := range p.enemyShots.All() {
			if !ob.Overlaps(s.Box()) {
				continue
			}
			s.Staged = false
			p.fireReflected(s.X, s.Y, nway.Reverse(s.angle), s.speed)
			p.reflected++
		}
	}
}

// grazeShots feeds the gauge with every bullet passing close to the player
// for the first time.
func (p *PlayData) grazeShots() {
	pl := p.player
	if !pl.Staged {
		return
	}
	gb := core.BoxAt(pl.X, pl.Y, p.cfg.Player.GrazeWidth, p.cfg.Player.GrazeHeight)
	for _, s := range p.enemyShots.All() {
		if s.grazed || !gb.Overlaps(s.Box()) {
			continue
		}
		s.grazed = true
		pl.graze(s.GrazePoint, p.cfg.Options.GaugeMax)
		p.grazes++
	}
}
