package mediawiki

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestRevisions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("prop") != "revisions" {
			t.Errorf("prop = %q", q.Get("prop"))
		}
		if q.Get("rvdir") != "older" {
			t.Errorf("rvdir = %q", q.Get("rvdir"))
		}
		if q.Get("rvprop") != "timestamp|user|comment|ids" {
			t.Errorf("rvprop = %q", q.Get("rvprop"))
		}
		_, _ = fmt.Fprint(w, `{"query":{"pages":[{"title":"Wikipedia:Teahouse","revisions":[
			{"revid":205,"parentid":204,"user":"Alice","timestamp":"2026-08-30T12:00:00Z","comment":"/* Q */ new section"},
			{"revid":204,"parentid":203,"user":"Bob","timestamp":"2026-08-30T11:00:00Z","comment":"reply"}
		]}]}}`)
	})

	start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	revs, err := client.Revisions(context.Background(), "Wikipedia:Teahouse", start, end)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(revs) != 2 {
		t.Fatalf("Expected 2 revisions, got %d", len(revs))
	}
	if revs[0].ID != 205 || revs[0].User != "Alice" {
		t.Errorf("revs[0] = %+v", revs[0])
	}
	if !revs[0].Timestamp.Equal(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("revs[0].Timestamp = %v", revs[0].Timestamp)
	}
	if revs[1].ParentID != 203 {
		t.Errorf("revs[1] = %+v", revs[1])
	}
}

func TestRevisions_FollowsContinue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rvcontinue") == "" {
			_, _ = fmt.Fprint(w, `{
				"continue":{"rvcontinue":"20260829|203"},
				"query":{"pages":[{"title":"P","revisions":[
					{"revid":205,"parentid":204,"user":"A","timestamp":"2026-08-30T12:00:00Z","comment":"x"}
				]}]}}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"query":{"pages":[{"title":"P","revisions":[
			{"revid":204,"parentid":203,"user":"B","timestamp":"2026-08-30T11:00:00Z","comment":"y"}
		]}]}}`)
	})

	revs, err := client.Revisions(context.Background(), "P", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("Expected 2 revisions across pulls, got %d", len(revs))
	}
}

func TestRevisions_ContinueCapTruncates(t *testing.T) {
	var pulls int
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pulls++
		_, _ = fmt.Fprintf(w, `{
			"continue":{"rvcontinue":"cont-%d"},
			"query":{"pages":[{"title":"P","revisions":[
				{"revid":%d,"parentid":%d,"user":"A","timestamp":"2026-08-30T12:00:00Z","comment":"x"}
			]}]}}`, pulls, 300-pulls, 299-pulls)
	})
	_ = server

	revs, err := client.Revisions(context.Background(), "P", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// initial pull plus maxContinues follow-ups
	if pulls != 6 {
		t.Errorf("Expected 6 pulls, got %d", pulls)
	}
	if len(revs) != 6 {
		t.Errorf("Expected 6 revisions, got %d", len(revs))
	}
}

func TestRevisions_MissingPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"query":{"pages":[{"title":"Nope","missing":true}]}}`)
	})

	_, err := client.Revisions(context.Background(), "Nope", time.Now().Add(-time.Hour), time.Now())
	if err == nil {
		t.Fatal("Expected error for missing page")
	}
}
