package paging

import (
	"errors"
	"testing"
)

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{"first page", 1, 3, []int{1, 2, 3}},
		{"middle page", 2, 3, []int{4, 5, 6}},
		{"tail slice", 3, 3, []int{7}},
		{"past the end", 4, 3, []int{}},
		{"whole sequence", 1, 10, []int{1, 2, 3, 4, 5, 6, 7}},
		{"exact fit", 1, 7, []int{1, 2, 3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Page(items, tt.page, tt.pageSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("length %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPageRejectsNonPositiveInput(t *testing.T) {
	items := []string{"a", "b"}

	for _, tt := range []struct{ page, pageSize int }{
		{0, 5}, {-1, 5}, {1, 0}, {1, -3},
	} {
		if _, err := Page(items, tt.page, tt.pageSize); !errors.Is(err, ErrInvalidPage) {
			t.Errorf("Page(items, %d, %d) expected ErrInvalidPage, got %v", tt.page, tt.pageSize, err)
		}
	}
}

func TestPageEmptyInput(t *testing.T) {
	got, err := Page([]int{}, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty page, got %v", got)
	}
}

func TestPages(t *testing.T) {
	if got := Pages(7, 3); got != 3 {
		t.Errorf("Pages(7, 3) = %d, want 3", got)
	}
	if got := Pages(0, 3); got != 0 {
		t.Errorf("Pages(0, 3) = %d, want 0", got)
	}
	if got := Pages(6, 3); got != 2 {
		t.Errorf("Pages(6, 3) = %d, want 2", got)
	}
}
