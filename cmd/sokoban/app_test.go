package main

import (
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/levels"
)

func TestResolveLevel(t *testing.T) {
	list := []levels.Level{{ID: "first"}, {ID: "Second"}, {ID: "third"}}

	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"3", 2, false},
		{"second", 1, false},
		{"third", 2, false},
		{"0", 0, true},
		{"4", 0, true},
		{"missing", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := resolveLevel(list, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveLevel(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("resolveLevel(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}
