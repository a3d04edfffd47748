package shmup

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 2

// Visual characters for rendering
const (
	BorderHoriz = '─'
	ShieldChar  = '○'
)

// glyph is how a sprite looks on the terminal. Frames cycle through runes.
type glyph struct {
	runes []rune
	color core.Color
}

var glyphs = map[SpriteID]glyph{
	SpritePlayer:        {[]rune{'>', '≥'}, core.ColorBrightCyan},
	SpriteOption:        {[]rune{'o', 'O'}, core.ColorBrightYellow},
	SpritePlayerShot:    {[]rune{'-'}, core.ColorBrightWhite},
	SpriteReflectedShot: {[]rune{'='}, core.ColorBrightMagenta},
	SpriteEnemyShot:     {[]rune{'•', '·'}, core.ColorBrightRed},
	SpriteBurstShot:     {[]rune{'◉', '◎'}, core.ColorOrange},
	SpriteDragonfly:     {[]rune{'X', 'x'}, core.ColorBrightGreen},
	SpriteAnt:           {[]rune{'m', 'M'}, core.ColorRed},
	SpriteButterfly:     {[]rune{'W', 'w'}, core.ColorBrightMagenta},
	SpriteLadybug:       {[]rune{'@'}, core.ColorRed},
	SpriteBagworm:       {[]rune{'%'}, core.ColorYellow},
	SpriteCicada:        {[]rune{'Y', 'V'}, core.ColorGreen},
	SpriteHornet:        {[]rune{'H', 'Ħ'}, core.ColorBrightYellow},
	SpriteRock:          {[]rune{'█'}, core.ColorGray},
	SpriteSoil:          {[]rune{'▓'}, core.ColorOrange},
	SpriteCloud:         {[]rune{'░'}, core.ColorWhite},
	SpriteFlower:        {[]rune{'*'}, core.ColorMagenta},
	SpriteGrass:         {[]rune{'"'}, core.ColorBrightGreen},
	SpriteStalactite:    {[]rune{'▼'}, core.ColorGray},
	SpriteSpore:         {[]rune{'.', ':'}, core.ColorCyan},
	SpriteExplosion:     {[]rune{'*', '+', '.'}, core.ColorBrightYellow},
	SpriteBigExplosion:  {[]rune{'#', '*', '+', '.'}, core.ColorOrange},
	SpriteShield:        {[]rune{ShieldChar}, core.ColorBrightBlue},
}

// ScreenPresenter draws sprites onto a terminal screen. World coordinates are
// scaled onto the rows below the HUD with y flipped.
type ScreenPresenter struct {
	dst            *core.Screen
	fieldW, fieldH float64
}

// NewScreenPresenter returns a presenter for a field of the given size.
func NewScreenPresenter(dst *core.Screen, fieldW, fieldH float64) *ScreenPresenter {
	return &ScreenPresenter{dst: dst, fieldW: fieldW, fieldH: fieldH}
}

// Cell converts a world point to a screen cell. ok is false when the point
// falls outside the playfield.
func (sp *ScreenPresenter) Cell(x, y float64) (col, row int, ok bool) {
	w, h := sp.dst.Width(), sp.dst.Height()-HUDRows
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x >= sp.fieldW || y >= sp.fieldH {
		return 0, 0, false
	}
	col = int(x / sp.fieldW * float64(w))
	row = HUDRows + h - 1 - int(y/sp.fieldH*float64(h))
	return col, row, true
}

// Draw puts one sprite on the screen. Scenery behind the action is dimmed.
func (sp *ScreenPresenter) Draw(s Sprite, x, y float64, z int) {
	g, ok := glyphs[s.ID]
	if !ok {
		return
	}
	col, row, ok := sp.Cell(x, y)
	if !ok {
		return
	}
	color := g.color
	if z < nearBackZ && (s.ID >= SpriteCloud && s.ID <= SpriteSpore) {
		color = color.Dim()
	}
	sp.dst.SetColor(col, row, g.runes[s.Frame%len(g.runes)], color)
}

// Render draws the playfield and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, g.loadErr.Error(), core.ColorDefault)
		return
	}
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorDefault)
		return
	}

	cfg := g.play.Config()
	g.play.Present(NewScreenPresenter(dst, cfg.Field.Width, cfg.Field.Height))
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	p := g.play
	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", p.Score()), core.ColorBrightWhite)

	hi := fmt.Sprintf("Hi: %d", p.HiScore())
	dst.DrawTextCentered(0, hi, core.ColorYellow)

	stageText := fmt.Sprintf("Stage %d/%d %s", p.StageIndex()+1, p.StageCount(), p.StageName())
	dst.DrawText(dst.Width()-len([]rune(stageText))-1, 0, stageText)

	// Row 1: lives and the chicken gauge
	lives := fmt.Sprintf("Ships: %s", strings.Repeat(">", max(p.Lives(), 0)))
	dst.DrawTextColor(1, 1, lives, core.ColorBrightCyan)

	cfg := p.Config()
	const gaugeW = 20
	filled := int(p.Player().Gauge() / cfg.Options.GaugeMax * gaugeW)
	bar := "[" + strings.Repeat("■", filled) + strings.Repeat(" ", gaugeW-filled) + "]"
	gaugeColor := core.ColorGreen
	if p.Player().Shield() {
		gaugeColor = core.ColorBrightBlue
	}
	x := dst.Width() - len([]rune(bar)) - 1
	dst.DrawTextColor(x, 1, bar, gaugeColor)

	for c := 1 + len([]rune(lives)) + 1; c < x-1; c++ {
		dst.SetColor(c, 1, BorderHoriz, core.ColorDarkGray)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	p := g.play
	switch {
	case p.Paused():
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case p.Phase() == PhaseStageClear:
		g.drawCenteredBox(dst, "STAGE CLEAR", fmt.Sprintf("Score: %d", p.Score()))
	case p.Phase() == PhaseGameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", p.Score()))
	case p.Phase() == PhaseGameClear:
		g.drawCenteredBox(dst, "ALL STAGES CLEAR", fmt.Sprintf("Final Score: %d  |  Press R to restart", p.Score()))
	}
}

func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	blank := strings.Repeat(" ", boxW)
	for y := boxY; y < boxY+boxH; y++ {
		dst.DrawText(boxX, y, blank)
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
