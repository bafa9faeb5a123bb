package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// UserInfo describes one account as reported by list=users. For anonymous
// (IP) editors the API only sets Invalid; nothing else can be relied on.
type UserInfo struct {
	Name         string `json:"name"`
	Missing      bool   `json:"missing"`
	Invalid      bool   `json:"invalid"`
	EditCount    int64  `json:"editcount"`
	Registration string `json:"registration"`
}

type usersResponse struct {
	Query struct {
		Users []UserInfo `json:"users"`
	} `json:"query"`
}

// UserInfos queries account information for the given usernames. The
// result map is keyed by the requested names.
func (c *Client) UserInfos(ctx context.Context, users []string) (map[string]UserInfo, error) {
	if len(users) == 0 {
		return map[string]UserInfo{}, nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "users")
	params.Set("ususers", strings.Join(users, "|"))
	params.Set("usprop", "editcount|registration|groups")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("query user info: %w", err)
	}

	var resp usersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}

	result := make(map[string]UserInfo, len(resp.Query.Users))
	for _, u := range resp.Query.Users {
		result[u.Name] = u
	}
	return result, nil
}

type blocksResponse struct {
	Query struct {
		Blocks []struct {
			User string `json:"user"`
		} `json:"blocks"`
	} `json:"query"`
}

// Blocks reports which of the given users are currently blocked. Unlike
// list=users this also covers blocks on IP editors, which is why the bot
// makes both calls.
func (c *Client) Blocks(ctx context.Context, users []string) (map[string]bool, error) {
	result := make(map[string]bool, len(users))
	for _, u := range users {
		result[u] = false
	}
	if len(users) == 0 {
		return result, nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "blocks")
	params.Set("bkusers", strings.Join(users, "|"))
	params.Set("bkprop", "user")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}

	var resp blocksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}

	for _, b := range resp.Query.Blocks {
		result[b.User] = true
	}
	return result, nil
}
