package mediawiki

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestUserInfos(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("list") != "users" {
			t.Errorf("list = %q", q.Get("list"))
		}
		if q.Get("ususers") != "Alice|Ghost|8.8.8.8" {
			t.Errorf("ususers = %q", q.Get("ususers"))
		}
		_, _ = fmt.Fprint(w, `{"query":{"users":[
			{"name":"Alice","editcount":42,"registration":"2020-01-01T00:00:00Z"},
			{"name":"Ghost","missing":true},
			{"name":"8.8.8.8","invalid":true}
		]}}`)
	})

	infos, err := client.UserInfos(context.Background(), []string{"Alice", "Ghost", "8.8.8.8"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if info := infos["Alice"]; info.Missing || info.Invalid || info.EditCount != 42 {
		t.Errorf("Alice = %+v", info)
	}
	if !infos["Ghost"].Missing {
		t.Errorf("Ghost = %+v", infos["Ghost"])
	}
	if !infos["8.8.8.8"].Invalid {
		t.Errorf("IP = %+v", infos["8.8.8.8"])
	}
}

func TestUserInfos_NoUsers(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("No query expected for an empty user list")
	})

	infos, err := client.UserInfos(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Expected empty map, got %v", infos)
	}
}

func TestBlocks(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("list") != "blocks" {
			t.Errorf("list = %q", q.Get("list"))
		}
		_, _ = fmt.Fprint(w, `{"query":{"blocks":[{"user":"Troubled"}]}}`)
	})

	blocked, err := client.Blocks(context.Background(), []string{"Alice", "Troubled"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if blocked["Alice"] {
		t.Error("Alice should not be blocked")
	}
	if !blocked["Troubled"] {
		t.Error("Troubled should be blocked")
	}
}
