package shmup

// Present draws the scene back to front: far scenery, blocks, enemies,
// enemy bullets, player bullets, options, the ship, effects, then near
// scenery. Within a layer entities are drawn in slot order.
func (p *PlayData) Present(out Presenter) {
	drawBacks(p.backs, out, func(z int) bool { return z < nearBackZ })
	drawPool(p.blocks, out)
	drawPool(p.enemies, out)
	drawPool(p.enemyShots, out)
	drawPool(p.playerShots, out)
	drawPool(p.reflectedShots, out)
	drawPool(p.options, out)

	pl := p.player
	if pl.Visible() {
		draw(&pl.Character, out)
		if pl.shield {
			out.Draw(Sprite{ID: SpriteShield}, pl.X, pl.Y, pl.Z+1)
		}
	}

	drawPool(p.effects, out)
	drawBacks(p.backs, out, func(z int) bool { return z >= nearBackZ })
}

// nearBackZ is the first scenery depth drawn over the action.
const nearBackZ = 2

func draw(c *Character, out Presenter) {
	out.Draw(Sprite{ID: c.Sprite, Frame: c.Frame()}, c.X+c.OffsetX, c.Y+c.OffsetY, c.Z)
}

func drawPool[T Actor](pool *Pool[T], out Presenter) {
	for _, it := range pool.All() {
		draw(it.Chara(), out)
	}
}

func drawBacks(pool *Pool[*Back], out Presenter, keep func(z int) bool) {
	for _, b := range pool.All() {
		if keep(b.Z) {
			draw(&b.Character, out)
		}
	}
}
