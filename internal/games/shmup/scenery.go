package shmup

// Block kinds used by stage files.
var blockSprites = map[int]SpriteID{
	1: SpriteRock,
	2: SpriteSoil,
}

// Back kinds used by stage files.
var backSprites = map[int]SpriteID{
	1: SpriteCloud,
	2: SpriteFlower,
	3: SpriteGrass,
	4: SpriteStalactite,
	5: SpriteSpore,
}

// Block is an obstacle fixed to the map.
type Block struct {
	Character
	Kind int
}

// Chara exposes the shared entity state.
func (b *Block) Chara() *Character { return &b.Character }

// Reset zeroes the block.
func (b *Block) Reset() { *b = Block{} }

// Action does nothing; blocks only scroll.
func (b *Block) Action(World, float64) {}

// Hit does nothing; blocks are indestructible.
func (b *Block) Hit(*Character, World) {}

// Back is scenery fixed to the map. It never collides.
type Back struct {
	Character
	Kind int
}

// Chara exposes the shared entity state.
func (b *Back) Chara() *Character { return &b.Character }

// Reset zeroes the scenery.
func (b *Back) Reset() { *b = Back{} }

// Action animates the scenery.
func (b *Back) Action(_ World, dt float64) { b.Animate(dt) }

// Hit does nothing.
func (b *Back) Hit(*Character, World) {}
