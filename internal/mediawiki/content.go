package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

type contentResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// PageWikitext returns the current wikitext of a page, or empty string if
// the page does not exist (a red-linked user talk page is normal).
func (c *Client) PageWikitext(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("titles", title)
	params.Set("rvprop", "content")
	params.Set("rvslots", "main")
	params.Set("rvlimit", "1")

	body, err := c.get(ctx, params)
	if err != nil {
		return "", fmt.Errorf("query wikitext of %q: %w", title, err)
	}

	var resp contentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode wikitext of %q: %w", title, err)
	}

	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing ||
		len(resp.Query.Pages[0].Revisions) == 0 {
		return "", nil
	}

	return resp.Query.Pages[0].Revisions[0].Slots.Main.Content, nil
}
