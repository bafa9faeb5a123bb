package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Tigraan/Teahouse-bot/internal/cache"
	"github.com/Tigraan/Teahouse-bot/internal/model"
)

type parseSectionsResponse struct {
	Parse struct {
		Title    string          `json:"title"`
		RevID    int64           `json:"revid"`
		Sections []model.Section `json:"sections"`
	} `json:"parse"`
}

// SectionsByRevision returns the section list of a fixed revision. Old
// revisions are immutable, so the response is cached.
func (c *Client) SectionsByRevision(ctx context.Context, revid int64) ([]model.Section, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("prop", "sections")
	params.Set("oldid", strconv.FormatInt(revid, 10))

	body, err := c.cachedGet(ctx, cache.SectionsKey(revid), params)
	if err != nil {
		return nil, fmt.Errorf("parse sections of revision %d: %w", revid, err)
	}

	return decodeSections(body, fmt.Sprintf("revision %d", revid))
}

// SectionsByPage returns the section list of a page's current revision.
// Never cached: the current revision moves.
func (c *Client) SectionsByPage(ctx context.Context, title string) ([]model.Section, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("prop", "sections")
	params.Set("page", title)

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("parse sections of %q: %w", title, err)
	}

	return decodeSections(body, fmt.Sprintf("page %q", title))
}

func decodeSections(body []byte, what string) ([]model.Section, error) {
	var resp parseSectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode sections of %s: %w", what, err)
	}
	return resp.Parse.Sections, nil
}
