package stage

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultTileSize is used when a stage file omits tile_size.
const DefaultTileSize = 16

// yamlStage is the on-disk layout of a stage file.
type yamlStage struct {
	ID       string              `yaml:"id"`
	Name     string              `yaml:"name"`
	TileSize float64             `yaml:"tile_size"`
	Tiles    map[string]yamlTile `yaml:"tiles"`
	Layers   yamlLayers          `yaml:"layers"`
}

// yamlTile is one legend entry: the properties of every tile drawn with its
// character.
type yamlTile struct {
	Type     int       `yaml:"type"`
	Event    string    `yaml:"event"`
	Params   []int     `yaml:"params"`
	Progress int       `yaml:"progress"`
	Z        *int      `yaml:"z"`
	Wait     int       `yaml:"wait"`
	Then     *yamlTile `yaml:"then"`
}

// yamlLayers holds the ASCII rows of each layer.
type yamlLayers struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Block      string `yaml:"block"`
	Event      string `yaml:"event"`
	Enemy      string `yaml:"enemy"`
}

func (l yamlLayers) byLayer() [layerCount]string {
	return [layerCount]string{l.Background, l.Foreground, l.Block, l.Event, l.Enemy}
}

// Problem describes a tile that could not be turned into an event.
// Problems never stop a stage from loading; the tile is skipped.
type Problem struct {
	Layer Layer
	Col   int
	Row   int
	Msg   string
}

func (p Problem) String() string {
	if p.Col < 0 {
		return p.Msg
	}
	return fmt.Sprintf("%s layer col %d row %d: %s", p.Layer, p.Col, p.Row, p.Msg)
}

// ParseYAML parses a stage file. Structural errors fail the whole file;
// per-tile errors are reported as problems and the tile is skipped.
func ParseYAML(data []byte) (*Stage, []Problem, error) {
	var ys yamlStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return nil, nil, fmt.Errorf("stage id is required")
	}
	if ys.TileSize < 0 {
		return nil, nil, fmt.Errorf("tile_size must be positive, got %g", ys.TileSize)
	}
	if ys.TileSize == 0 {
		ys.TileSize = DefaultTileSize
	}

	var problems []Problem
	legend := make(map[rune]yamlTile, len(ys.Tiles))
	for key, tile := range ys.Tiles {
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) {
			problems = append(problems, Problem{Col: -1, Row: -1, Msg: fmt.Sprintf("legend key %q must be a single character", key)})
			continue
		}
		legend[r] = tile
	}

	var rows [layerCount][][]rune
	st := &Stage{ID: ys.ID, Name: ys.Name, TileSize: ys.TileSize}
	for l, text := range ys.Layers.byLayer() {
		rows[l] = splitRows(text)
		st.Rows = max(st.Rows, len(rows[l]))
		for _, row := range rows[l] {
			st.Cols = max(st.Cols, len(row))
		}
	}
	if st.Cols == 0 {
		return nil, nil, fmt.Errorf("stage %s has no tiles", ys.ID)
	}

	st.Columns = make([][]Event, st.Cols)
	for l := range layerCount {
		for row, line := range rows[l] {
			for col, r := range line {
				if r == '.' || r == ' ' {
					continue
				}
				tile, ok := legend[r]
				if !ok {
					problems = append(problems, Problem{Layer: l, Col: col, Row: row, Msg: fmt.Sprintf("unknown tile %q", r)})
					continue
				}
				ev, err := buildEvent(tile, l, col, row, true)
				if err != nil {
					problems = append(problems, Problem{Layer: l, Col: col, Row: row, Msg: err.Error()})
					continue
				}
				st.Columns[col] = append(st.Columns[col], ev)
			}
		}
	}
	return st, problems, nil
}

// splitRows breaks a literal block into rows of runes, dropping trailing blank lines.
func splitRows(text string) [][]rune {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	out := make([][]rune, len(lines))
	for i, line := range lines {
		out[i] = []rune(strings.TrimRight(line, " \t\r"))
	}
	return out
}

// buildEvent resolves a legend entry placed on a layer into an event.
func buildEvent(tile yamlTile, l Layer, col, row int, allowRepeat bool) (Event, error) {
	ev := Event{Layer: l, Col: col, Row: row, Wait: tile.Wait}

	if tile.Event == "" {
		ev.Type = l.defaultEvent()
		if ev.Type == EventNone {
			return ev, fmt.Errorf("tile on %s layer needs an event name", l)
		}
	} else {
		t, ok := ParseEventType(tile.Event)
		if !ok {
			return ev, fmt.Errorf("unknown event %q", tile.Event)
		}
		ev.Type = t
	}

	if len(tile.Params) > 0 {
		if len(tile.Params) > MaxParams {
			return ev, fmt.Errorf("%s takes at most %d params, got %d", ev.Type, MaxParams, len(tile.Params))
		}
		copy(ev.Params[:], tile.Params)
	} else {
		switch ev.Type {
		case EventEnemy, EventBoss:
			ev.Params = [MaxParams]int{tile.Type, tile.Progress}
		case EventBack:
			z := int(l)
			if tile.Z != nil {
				z = *tile.Z
			}
			ev.Params = [MaxParams]int{tile.Type, z}
		case EventWall:
			ev.Params = [MaxParams]int{tile.Type}
		}
	}

	if ev.Type == EventRepeat {
		if !allowRepeat {
			return ev, fmt.Errorf("repeat cannot be nested")
		}
		if tile.Then == nil {
			return ev, fmt.Errorf("repeat needs a then entry")
		}
		if ev.Params[0] <= 0 {
			return ev, fmt.Errorf("repeat interval must be positive, got %d", ev.Params[0])
		}
		follow, err := buildEvent(*tile.Then, l, col, row, false)
		if err != nil {
			return ev, fmt.Errorf("repeat: %w", err)
		}
		ev.Then = &follow
	}
	return ev, nil
}
