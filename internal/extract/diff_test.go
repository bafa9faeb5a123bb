package extract

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

func TestRemovedSections(t *testing.T) {
	tests := []struct {
		name     string
		before   []string
		after    []string
		want     []string
		wantDups []string
		wantErr  bool
	}{
		{
			name:   "simple removal keeps before order",
			before: []string{"A", "B", "C", "D"},
			after:  []string{"B", "D"},
			want:   []string{"A", "C"},
		},
		{
			name:   "nothing removed",
			before: []string{"A", "B"},
			after:  []string{"A", "B"},
			want:   nil,
		},
		{
			name:   "everything removed",
			before: []string{"A", "B"},
			after:  nil,
			want:   []string{"A", "B"},
		},
		{
			name:     "duplicate thread names are dropped not attributed",
			before:   []string{"A", "Help", "B", "Help"},
			after:    []string{"B"},
			want:     []string{"A"},
			wantDups: []string{"Help"},
		},
		{
			name:    "section appearing only after archival is malformed",
			before:  []string{"A", "B"},
			after:   []string{"B", "New thread"},
			wantErr: true,
		},
		{
			name:   "empty before and after",
			before: nil,
			after:  nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			removed, dups, err := RemovedSections(tt.before, tt.after)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !reflect.DeepEqual(removed, tt.want) {
				t.Errorf("removed = %v, want %v", removed, tt.want)
			}
			if !reflect.DeepEqual(dups, tt.wantDups) {
				t.Errorf("duplicates = %v, want %v", dups, tt.wantDups)
			}
		})
	}
}

type fakeSectionSource struct {
	sections map[int64][]model.Section
}

func (f *fakeSectionSource) SectionsByRevision(ctx context.Context, revid int64) ([]model.Section, error) {
	secs, ok := f.sections[revid]
	if !ok {
		return nil, fmt.Errorf("unknown revision %d", revid)
	}
	return secs, nil
}

func TestRemovedByDiff(t *testing.T) {
	src := &fakeSectionSource{sections: map[int64][]model.Section{
		100: {
			{Line: "Teahouse header", Level: "1"},
			{Line: "First question", Level: "2"},
			{Line: "Second question", Level: "2"},
			{Line: "Third question", Level: "2"},
		},
		101: {
			{Line: "Teahouse header", Level: "1"},
			{Line: "Third question", Level: "2"},
		},
	}}

	removed, dups, err := RemovedByDiff(context.Background(), src, 100, 101)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{"First question", "Second question"}
	if !reflect.DeepEqual(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	if len(dups) != 0 {
		t.Errorf("Expected no duplicates, got %v", dups)
	}
}

func TestRemovedByDiff_FetchError(t *testing.T) {
	src := &fakeSectionSource{sections: map[int64][]model.Section{}}

	_, _, err := RemovedByDiff(context.Background(), src, 100, 101)
	if err == nil {
		t.Fatal("Expected error for unknown revision, got nil")
	}
}
