package stage

import (
	"io/fs"
	"testing"
)

const sampleStage = `
id: "t1"
name: Sample
tile_size: 8
tiles:
  c: {type: 1}
  "#": {type: 2}
  e: {type: 3, progress: 2}
  S: {event: scroll, params: [40, 0]}
  R: {event: repeat, params: [500, 6], then: {event: enemy, params: [1, 1]}}
  x: {event: explode}
  q: {event: sleep, params: [1, 2, 3, 4]}
layers:
  background: |
    c...
  block: |
    .
    .
    #...
  event: |
    S.R.
    .x.q
  enemy: |
    .
    .e?
`

func TestParseYAML(t *testing.T) {
	st, problems, err := ParseYAML([]byte(sampleStage))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	if st.ID != "t1" || st.TileSize != 8 {
		t.Errorf("header = %q/%v", st.ID, st.TileSize)
	}
	if st.Cols != 4 || st.Rows != 3 {
		t.Errorf("size = %dx%d, expected 4x3", st.Cols, st.Rows)
	}

	// Unknown event, too many params and an unknown tile are skipped
	if len(problems) != 3 {
		t.Errorf("problems = %v, expected 3", problems)
	}

	col0 := st.Columns[0]
	if len(col0) != 3 {
		t.Fatalf("column 0 has %d events, expected 3", len(col0))
	}
	expected := []EventType{EventBack, EventWall, EventScroll}
	for i, ev := range col0 {
		if ev.Type != expected[i] {
			t.Errorf("column 0 event %d = %s, expected %s", i, ev.Type, expected[i])
		}
	}
	if col0[0].Params != [MaxParams]int{1, 0, 0} {
		t.Errorf("back params = %v, expected kind 1 on z 0", col0[0].Params)
	}

	enemy := st.Columns[1][0]
	if enemy.Type != EventEnemy || enemy.Row != 1 || enemy.Params != [MaxParams]int{3, 2, 0} {
		t.Errorf("enemy event = %+v", enemy)
	}

	rep := st.Columns[2][0]
	if rep.Type != EventRepeat || rep.Then == nil || rep.Then.Type != EventEnemy {
		t.Errorf("repeat event = %+v", rep)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "id: [unterminated"},
		{"missing id", "layers:\n  block: |\n    #\n"},
		{"negative tile size", "id: x\ntile_size: -1\nlayers:\n  block: |\n    #\n"},
		{"no tiles", "id: x\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ParseYAML([]byte(tc.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBuiltinStagesParseCleanly(t *testing.T) {
	paths, err := fs.Glob(builtin, "stages/*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) < 2 {
		t.Fatalf("found %d built-in stages, expected at least 2", len(paths))
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			data, err := fs.ReadFile(builtin, p)
			if err != nil {
				t.Fatal(err)
			}
			st, problems, err := ParseYAML(data)
			if err != nil {
				t.Fatalf("ParseYAML() error = %v", err)
			}
			if len(problems) != 0 {
				t.Errorf("unexpected problems: %v", problems)
			}
			if st.Rows != 20 {
				t.Errorf("Rows = %d, expected 20", st.Rows)
			}

			bosses := 0
			for _, col := range st.Columns {
				for _, ev := range col {
					if ev.Type == EventBoss {
						bosses++
					}
				}
			}
			if bosses != 1 {
				t.Errorf("stage has %d bosses, expected 1", bosses)
			}
		})
	}
}

func TestParseEventType(t *testing.T) {
	for typ, name := range eventNames {
		got, ok := ParseEventType(name)
		if !ok || got != typ {
			t.Errorf("ParseEventType(%q) = %v, %v", name, got, ok)
		}
	}
	if got, ok := ParseEventType(" Scroll "); !ok || got != EventScroll {
		t.Error("matching should ignore case and surrounding space")
	}
	if _, ok := ParseEventType("warp"); ok {
		t.Error("unknown names should not parse")
	}
}
