package shmup

import (
	"math/rand/v2"

	"github.com/vovakirdan/tui-shmup/internal/config"
)

// World is what entities may ask of the play session. It is handed to every
// Action and Hit call; entities keep no references to each other.
type World interface {
	Config() *config.ShmupConfig
	Player() *Player
	Rand() *rand.Rand

	// EnemyShotSpeed returns the base enemy bullet speed times scale,
	// adjusted for the current difficulty.
	EnemyShotSpeed(scale float64) float64
	// FireInterval shortens an enemy firing interval for the current difficulty.
	FireInterval(base float64) float64

	FirePlayerShot(x, y float64)
	FireEnemyShot(x, y, angle, speed float64) *EnemyShot
	FireNWay(x, y, center float64, count int, spacing, speed float64)
	FireRadial(x, y, start float64, count int, speed float64)
	FireGroup(x, y, angle float64, count int, spacing, speed float64)
	FireBurst(x, y, angle, speed float64, b Burst)

	SpawnEffect(kind EffectKind, x, y float64)
	AddScore(n int)
	AddProgress(n int)
	Miss()
	BossDefeated()
}

// SpriteID names an image in the presentation layer.
type SpriteID int

const (
	SpriteNone SpriteID = iota
	SpritePlayer
	SpriteOption
	SpritePlayerShot
	SpriteReflectedShot
	SpriteEnemyShot
	SpriteBurstShot
	SpriteDragonfly
	SpriteAnt
	SpriteButterfly
	SpriteLadybug
	SpriteBagworm
	SpriteCicada
	SpriteHornet
	SpriteRock
	SpriteSoil
	SpriteCloud
	SpriteFlower
	SpriteGrass
	SpriteStalactite
	SpriteSpore
	SpriteExplosion
	SpriteBigExplosion
	SpriteShield
)

// Sprite is one image frame to draw.
type Sprite struct {
	ID    SpriteID
	Frame int
}

// Presenter draws the scene. Draw is called once per visible entity per
// frame, back to front, with world coordinates of the sprite center.
type Presenter interface {
	Draw(s Sprite, x, y float64, z int)
}

// HiScoreStore persists the best score between sessions.
type HiScoreStore interface {
	ReadHiScore() (int, error)
	WriteHiScore(score int) error
}

// BGMPlayer is told when the stage asks for a different music track.
type BGMPlayer interface {
	PlayBGM(no int)
}

type nopBGM struct{}

func (nopBGM) PlayBGM(int) {}
