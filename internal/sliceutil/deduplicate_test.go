package sliceutil

import (
	"slices"
	"strings"
	"testing"
)

func TestUnique(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"no duplicates", []string{"a", "b"}, []string{"a", "b"}},
		{"keeps first occurrence", []string{"b", "a", "b", "c", "a"}, []string{"b", "a", "c"}},
		{"all same", []string{"x", "x", "x"}, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Unique(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Unique(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUniqueBy_DoesNotAliasInput(t *testing.T) {
	t.Parallel()
	in := []string{"Lesson", "lesson", "Unit"}
	got := UniqueBy(in, strings.ToLower)

	if !slices.Equal(got, []string{"Lesson", "Unit"}) {
		t.Errorf("UniqueBy() = %v", got)
	}
	if !slices.Equal(in, []string{"Lesson", "lesson", "Unit"}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestStablePartition(t *testing.T) {
	t.Parallel()
	in := []int{1, 2, 3, 4, 5, 6}
	got := StablePartition(in, func(n int) bool { return n%2 == 0 })

	if want := []int{2, 4, 6, 1, 3, 5}; !slices.Equal(got, want) {
		t.Errorf("StablePartition() = %v, want %v", got, want)
	}
	if len(StablePartition([]int(nil), func(int) bool { return true })) != 0 {
		t.Error("empty input should stay empty")
	}
}
