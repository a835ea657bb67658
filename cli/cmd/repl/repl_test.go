package repl

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/octm/lang"
)

func TestMergeBindings(t *testing.T) {
	tests := []struct {
		name string
		have []string
		add  []string
		want []string
	}{
		{
			name: "append new names",
			have: []string{"a"},
			add:  []string{"b", "c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "existing names keep their slot",
			have: []string{"a", "b"},
			add:  []string{"b", "a", "c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty session",
			have: nil,
			add:  []string{"x"},
			want: []string{"x"},
		},
		{
			name: "nothing to add",
			have: []string{"x"},
			add:  nil,
			want: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeBindings(slices.Clone(tt.have), tt.add)
			if !slices.Equal(got, tt.want) {
				t.Errorf("mergeBindings = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModel_ListNames(t *testing.T) {
	m := model{bindings: []string{"amp", "freq"}}

	out := m.listNames()

	for _, want := range []string{"amp", "freq", "sin()", "sound()"} {
		if !strings.Contains(out, want) {
			t.Errorf("listNames missing %q:\n%s", want, out)
		}
	}
}

func TestModel_TreeView(t *testing.T) {
	m := model{}

	if out := m.treeView(); !strings.Contains(out, "nothing parsed yet") {
		t.Errorf("empty session treeView = %q", out)
	}

	prog, err := lang.ParseString(context.Background(), "a = [1 2]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	m.lastProg = prog

	out := m.treeView()
	for _, want := range []string{"assign a", "matrix"} {
		if !strings.Contains(out, want) {
			t.Errorf("treeView missing %q:\n%s", want, out)
		}
	}
}
