package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

type fakeArchives struct {
	pages map[string][]model.Section
}

func (f *fakeArchives) SectionsByPage(ctx context.Context, title string) ([]model.Section, error) {
	secs, ok := f.pages[title]
	if !ok {
		return nil, fmt.Errorf("page %q missing", title)
	}
	return secs, nil
}

func sec(line, anchor string) model.Section {
	return model.Section{Line: line, Anchor: anchor, Level: "2"}
}

func TestResolveArchiveLinks(t *testing.T) {
	src := &fakeArchives{pages: map[string][]model.Section{
		"Archive 12": {
			sec("First question", "First_question"),
			sec("Second question", "Second_question"),
		},
		"Archive 13": {
			sec("Third question", "Third_question"),
		},
	}}

	threads := []string{"First question", "Third question"}
	links, warnings, err := ResolveArchiveLinks(context.Background(), src,
		[]string{"Archive 12", "Archive 13"}, threads, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if links[0] != "Archive 12#First_question" {
		t.Errorf("links[0] = %q", links[0])
	}
	if links[1] != "Archive 13#Third_question" {
		t.Errorf("links[1] = %q", links[1])
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestResolveArchiveLinks_ThreadNotFound(t *testing.T) {
	src := &fakeArchives{pages: map[string][]model.Section{
		"Archive 12": {sec("Known question", "Known_question")},
	}}

	links, warnings, err := ResolveArchiveLinks(context.Background(), src,
		[]string{"Archive 12"}, []string{"Vanished question"}, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if links[0] != "" {
		t.Errorf("Expected empty link, got %q", links[0])
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "not found") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestResolveArchiveLinks_AmbiguousMatchYieldsNoLink(t *testing.T) {
	src := &fakeArchives{pages: map[string][]model.Section{
		"Archive 12": {sec("Help", "Help")},
		"Archive 13": {sec("Help", "Help")},
	}}

	links, warnings, err := ResolveArchiveLinks(context.Background(), src,
		[]string{"Archive 12", "Archive 13"}, []string{"Help"}, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if links[0] != "" {
		t.Errorf("An ambiguous thread must not be linked, got %q", links[0])
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "matches 2 sections") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestResolveArchiveLinks_NoArchivePages(t *testing.T) {
	src := &fakeArchives{}

	links, warnings, err := ResolveArchiveLinks(context.Background(), src,
		nil, []string{"A", "B"}, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if links[0] != "" || links[1] != "" {
		t.Errorf("links = %v", links)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestResolveArchiveLinks_FetchErrorFails(t *testing.T) {
	src := &failingArchives{}

	_, _, err := ResolveArchiveLinks(context.Background(), src,
		[]string{"Archive 12"}, []string{"A"}, 1)
	if err == nil {
		t.Fatal("Expected error when an archive page cannot be fetched")
	}
}

type failingArchives struct{}

func (failingArchives) SectionsByPage(ctx context.Context, title string) ([]model.Section, error) {
	return nil, errors.New("api down")
}
