package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

type tokenResponse struct {
	Query struct {
		Tokens struct {
			CSRFToken string `json:"csrftoken"`
		} `json:"tokens"`
	} `json:"query"`
}

type editResponse struct {
	Edit struct {
		Result string `json:"result"`
		NewRev int64  `json:"newrevid"`
	} `json:"edit"`
}

// csrfToken fetches a fresh edit token. An anonymous token ("+\\") means
// the client is not logged in, which would attribute edits to the IP.
func (c *Client) csrfToken(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", "csrf")

	body, err := c.get(ctx, params)
	if err != nil {
		return "", fmt.Errorf("query csrf token: %w", err)
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode csrf token: %w", err)
	}

	token := resp.Query.Tokens.CSRFToken
	if token == "" || token == `+\` {
		return "", fmt.Errorf("not logged in: no usable csrf token")
	}
	return token, nil
}

// PostNewSection appends a new section to a page, the way archival notices
// are left on user talk pages.
func (c *Client) PostNewSection(ctx context.Context, title, heading, text, summary string) error {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("action", "edit")
	params.Set("title", title)
	params.Set("section", "new")
	params.Set("sectiontitle", heading)
	params.Set("text", text)
	params.Set("summary", summary)
	params.Set("bot", "1")
	params.Set("token", token)

	body, err := c.postForm(ctx, params)
	if err != nil {
		return fmt.Errorf("edit %q: %w", title, err)
	}

	var resp editResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode edit result for %q: %w", title, err)
	}
	if resp.Edit.Result != "Success" {
		return fmt.Errorf("edit %q: result %q", title, resp.Edit.Result)
	}

	return nil
}
