package main

import (
	"testing"

	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
)

func TestResolveStage(t *testing.T) {
	stages := []*stage.Stage{{ID: "01_meadow"}, {ID: "02_cave"}}

	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"2", 1, false},
		{"02_cave", 1, false},
		{"0", 0, true},
		{"3", 0, true},
		{"03_sky", 0, true},
	}

	for _, tc := range tests {
		got, err := resolveStage(tc.arg, stages)
		if (err != nil) != tc.wantErr {
			t.Errorf("resolveStage(%q) error = %v, wantErr %v", tc.arg, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("resolveStage(%q) = %d, expected %d", tc.arg, got, tc.want)
		}
	}
}
