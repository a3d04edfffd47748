// Package stage loads tile-map stage files and runs them as a scroll-driven
// event script.
package stage

import "strings"

// MaxParams is the number of integer parameters an event carries.
const MaxParams = 3

// EventType identifies what an event does when its column is reached.
type EventType int

const (
	EventNone   EventType = iota
	EventEnemy            // params: species, progress value
	EventBoss             // params: species, progress value
	EventBack             // params: kind, z
	EventWall             // params: kind
	EventScroll           // params: vx, vy in px/s
	EventBGM              // params: track number
	EventSleep            // params: milliseconds
	EventRepeat           // params: interval ms, until progress; runs Then
)

var eventNames = map[EventType]string{
	EventEnemy:  "enemy",
	EventBoss:   "boss",
	EventBack:   "back",
	EventWall:   "wall",
	EventScroll: "scroll",
	EventBGM:    "bgm",
	EventSleep:  "sleep",
	EventRepeat: "repeat",
}

// String returns the name used in stage files.
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "none"
}

// ParseEventType converts a stage-file event name. Matching ignores case.
func ParseEventType(s string) (EventType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range eventNames {
		if name == s {
			return t, true
		}
	}
	return EventNone, false
}

// Layer is one of the tile-map layers. Columns execute layers in this order.
type Layer int

const (
	LayerBackground Layer = iota
	LayerForeground
	LayerBlock
	LayerEvent
	LayerEnemy
	layerCount
)

var layerNames = [layerCount]string{"background", "foreground", "block", "event", "enemy"}

// String returns the YAML key of the layer.
func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return "unknown"
	}
	return layerNames[l]
}

// defaultEvent is what a tile produces when its legend entry names no event.
func (l Layer) defaultEvent() EventType {
	switch l {
	case LayerBackground, LayerForeground:
		return EventBack
	case LayerBlock:
		return EventWall
	case LayerEnemy:
		return EventEnemy
	default:
		return EventNone
	}
}

// Event is one scripted action anchored to a tile.
type Event struct {
	Type   EventType
	Layer  Layer
	Col    int
	Row    int
	Params [MaxParams]int
	Wait   int    // Stage progress required before the event runs
	Then   *Event // Follow-up action of a repeat
}

// Stage is a parsed tile map ready to be scripted.
type Stage struct {
	ID       string
	Name     string
	TileSize float64
	Cols     int
	Rows     int
	Columns  [][]Event // Events per column, ordered by layer then row
	FilePath string
}

// EventCount returns the number of top-level events in the stage.
func (s *Stage) EventCount() int {
	n := 0
	for _, col := range s.Columns {
		n += len(col)
	}
	return n
}

// Width returns the map width in pixels.
func (s *Stage) Width() float64 {
	return float64(s.Cols) * s.TileSize
}
