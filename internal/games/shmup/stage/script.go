package stage

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Sink receives the effects of script events. The play session implements it.
type Sink interface {
	ScrollSpeed() (vx, vy float64)
	SetScrollSpeed(vx, vy float64)
	SpawnEnemy(species, progress int, x, y float64)
	SpawnBoss(species, progress int, x, y float64)
	SpawnBack(kind, z int, x, y float64)
	SpawnBlock(kind int, x, y float64)
	PlayBGM(no int)
}

// repeat is an armed repeat event.
type repeat struct {
	follow   *Event
	interval float64
	timer    float64
	until    int
}

// Script walks a stage column by column as the view scrolls across it.
//
// The lead position is the map x coordinate of the right edge of the view.
// It starts at the view width, so the columns visible on entry run at Start.
type Script struct {
	stage  *Stage
	viewW  float64
	logger *log.Logger

	pos   float64 // Lead position in map pixels
	col   int     // Next column to execute
	idx   int     // Next event within col
	sleep float64 // Seconds left in the current sleep

	progress int
	waiting  []Event
	repeats  []repeat

	executed int
	skipped  int
}

// NewScript prepares a stage for playback in a view viewW pixels wide.
// A nil logger discards diagnostics. It panics on a stage without a tile size.
func NewScript(st *Stage, viewW float64, logger *log.Logger) *Script {
	if st == nil || st.TileSize <= 0 {
		panic("stage: script needs a stage with a positive tile size")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Script{
		stage:  st,
		viewW:  viewW,
		logger: logger,
		pos:    viewW,
	}
}

// Stage returns the stage being played.
func (s *Script) Stage() *Stage { return s.stage }

// Position returns the lead position in map pixels.
func (s *Script) Position() float64 { return s.pos }

// Sleeping reports whether a sleep event is holding the script.
func (s *Script) Sleeping() bool { return s.sleep > 0 }

// Progress returns the stage progress accumulated from destroyed enemies.
func (s *Script) Progress() int { return s.progress }

// AddProgress advances stage progress, releasing progress-gated events on
// the next update.
func (s *Script) AddProgress(n int) { s.progress += n }

// Executed returns how many events have run.
func (s *Script) Executed() int { return s.executed }

// Skipped returns how many events were dropped as invalid.
func (s *Script) Skipped() int { return s.skipped }

// Finished reports whether every column has run and nothing is pending.
func (s *Script) Finished() bool {
	return s.col >= s.stage.Cols && len(s.waiting) == 0 && len(s.repeats) == 0
}

// LeadColumn returns the column under the lead position.
func (s *Script) LeadColumn() int {
	return int(math.Floor(s.pos / s.stage.TileSize))
}

// TileToWorld converts a tile to world coordinates at the current scroll
// position. Map rows count down from the top; world y counts up.
func (s *Script) TileToWorld(col, row int) (x, y float64) {
	ts := s.stage.TileSize
	x = float64(col)*ts + ts/2 - (s.pos - s.viewW)
	y = float64(s.stage.Rows-1-row)*ts + ts/2
	return x, y
}

// Start runs the columns already visible when the stage begins.
func (s *Script) Start(sink Sink) {
	s.runColumns(sink)
}

// Update advances the script by dt seconds. A non-positive dt does nothing.
// While sleeping only the sleep timer runs: the view holds still, no column
// executes and repeat timers pause.
func (s *Script) Update(dt float64, sink Sink) {
	if dt <= 0 {
		return
	}
	if s.sleep > 0 {
		s.sleep -= dt
		if s.sleep > 0 {
			return
		}
		s.sleep = 0
		// Resume the column the sleep interrupted
		s.runColumns(sink)
		return
	}

	vx, _ := sink.ScrollSpeed()
	s.pos += vx * dt
	s.runColumns(sink)
	if s.sleep > 0 {
		return
	}
	s.runWaiting(sink)
	s.tickRepeats(dt, sink)
}

// runColumns executes every column up to the lead column, stopping early
// when an event puts the script to sleep.
func (s *Script) runColumns(sink Sink) {
	target := min(s.LeadColumn(), s.stage.Cols-1)
	for s.col <= target {
		events := s.stage.Columns[s.col]
		for s.idx < len(events) {
			ev := &events[s.idx]
			s.idx++
			if ev.Wait > s.progress {
				s.waiting = append(s.waiting, *ev)
				continue
			}
			s.run(ev, ev.Col, sink)
			if s.sleep > 0 {
				return
			}
		}
		s.col++
		s.idx = 0
	}
}

// runWaiting releases progress-gated events at the lead column.
func (s *Script) runWaiting(sink Sink) {
	kept := s.waiting[:0]
	for i := range s.waiting {
		ev := s.waiting[i]
		if ev.Wait > s.progress || s.sleep > 0 {
			kept = append(kept, ev)
			continue
		}
		s.run(&ev, s.LeadColumn(), sink)
	}
	s.waiting = kept
}

// tickRepeats fires armed repeats whose interval has elapsed and retires
// those whose progress threshold has been reached. A follow-up that puts
// the script to sleep stops the pass; repeats not yet reached keep their
// timers for after the sleep.
func (s *Script) tickRepeats(dt float64, sink Sink) {
	armed := s.repeats
	s.repeats = nil
	kept := make([]repeat, 0, len(armed))
	for i, r := range armed {
		if s.sleep > 0 {
			kept = append(kept, armed[i:]...)
			break
		}
		if r.until > 0 && s.progress >= r.until {
			continue
		}
		r.timer += dt
		for r.timer >= r.interval && s.sleep <= 0 {
			r.timer -= r.interval
			s.run(r.follow, s.LeadColumn(), sink)
		}
		kept = append(kept, r)
	}
	// Repeats armed by follow-ups during the pass
	s.repeats = append(kept, s.repeats...)
}

// run performs one event as if its tile sat in column col.
func (s *Script) run(ev *Event, col int, sink Sink) {
	x, y := s.TileToWorld(col, ev.Row)
	p := ev.Params
	switch ev.Type {
	case EventEnemy:
		sink.SpawnEnemy(p[0], p[1], x, y)
	case EventBoss:
		sink.SpawnBoss(p[0], p[1], x, y)
	case EventBack:
		sink.SpawnBack(p[0], p[1], x, y)
	case EventWall:
		sink.SpawnBlock(p[0], x, y)
	case EventScroll:
		sink.SetScrollSpeed(float64(p[0]), float64(p[1]))
	case EventBGM:
		sink.PlayBGM(p[0])
	case EventSleep:
		s.sleep = float64(p[0]) / 1000
	case EventRepeat:
		if ev.Then == nil || p[0] <= 0 {
			s.skip(ev, "repeat without follow-up or interval")
			return
		}
		s.repeats = append(s.repeats, repeat{
			follow:   ev.Then,
			interval: float64(p[0]) / 1000,
			until:    p[1],
		})
	default:
		s.skip(ev, "unknown event type")
		return
	}
	s.executed++
}

func (s *Script) skip(ev *Event, reason string) {
	s.skipped++
	s.logger.Warn("skipping stage event",
		"stage", s.stage.ID, "type", ev.Type, "col", ev.Col, "row", ev.Row, "reason", reason)
}
