package extract

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestLastArchivalEdit(t *testing.T) {
	revs := []model.Revision{
		{ID: 205, ParentID: 204, User: "SomeEditor", Comment: "/* Question */ reply",
			Timestamp: mustTime(t, "2026-08-30T12:00:00Z")},
		{ID: 204, ParentID: 203, User: "Lowercase sigmabot III",
			Comment:   "Archiving 2 discussion(s) to [[Wikipedia:Teahouse/Questions/Archive 1213]] (bot)",
			Timestamp: mustTime(t, "2026-08-30T03:00:00Z")},
		{ID: 203, ParentID: 202, User: "Lowercase sigmabot III",
			Comment:   "Archiving 5 discussion(s) to [[Wikipedia:Teahouse/Questions/Archive 1212]] (bot)",
			Timestamp: mustTime(t, "2026-08-29T03:00:00Z")},
	}

	edit, err := LastArchivalEdit(revs, "Lowercase sigmabot III")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if edit.Before != 203 || edit.After != 204 {
		t.Errorf("Revision pair = (%d, %d), want (203, 204)", edit.Before, edit.After)
	}
	wantLinks := []string{"Wikipedia:Teahouse/Questions/Archive 1213"}
	if !reflect.DeepEqual(edit.Links, wantLinks) {
		t.Errorf("Links = %v, want %v", edit.Links, wantLinks)
	}
	if !edit.Timestamp.Equal(mustTime(t, "2026-08-30T03:00:00Z")) {
		t.Errorf("Timestamp = %v, want the archival edit's", edit.Timestamp)
	}
}

func TestLastArchivalEdit_NoArchivalEdit(t *testing.T) {
	revs := []model.Revision{
		{ID: 205, ParentID: 204, User: "SomeEditor", Comment: "/* Question */ reply"},
	}

	_, err := LastArchivalEdit(revs, "Lowercase sigmabot III")
	if !errors.Is(err, ErrNoArchivalEdit) {
		t.Fatalf("Expected ErrNoArchivalEdit, got %v", err)
	}
}

func TestLastArchivalEdit_SummaryWithoutLink(t *testing.T) {
	revs := []model.Revision{
		{ID: 204, ParentID: 203, User: "Lowercase sigmabot III", Comment: "manual cleanup, no link"},
	}

	_, err := LastArchivalEdit(revs, "Lowercase sigmabot III")
	if err == nil {
		t.Fatal("Expected error for archival summary without wikilink")
	}
	if errors.Is(err, ErrNoArchivalEdit) {
		t.Error("A linkless archival summary is malformed, not a quiet day")
	}
}

func TestLastArchivalEdit_EmptyHistory(t *testing.T) {
	_, err := LastArchivalEdit(nil, "Lowercase sigmabot III")
	if !errors.Is(err, ErrNoArchivalEdit) {
		t.Fatalf("Expected ErrNoArchivalEdit, got %v", err)
	}
}
