package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/Tigraan/Teahouse-bot/internal/model"
	"github.com/Tigraan/Teahouse-bot/internal/util"
)

type revisionsResponse struct {
	Continue struct {
		RvContinue string `json:"rvcontinue"`
	} `json:"continue"`
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Revisions []struct {
				RevID     int64  `json:"revid"`
				ParentID  int64  `json:"parentid"`
				User      string `json:"user"`
				Timestamp string `json:"timestamp"`
				Comment   string `json:"comment"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// Revisions returns the revisions of page between start and end, newest
// first (the API's reverse-chronological order). Long histories are
// followed through rvcontinue up to the configured number of extra pulls;
// a window longer than that cap quietly truncates at the oldest pull,
// which callers treat as "creation predates the window".
func (c *Client) Revisions(ctx context.Context, page string, start, end time.Time) ([]model.Revision, error) {
	var (
		all        []model.Revision
		rvcontinue string
	)

	for pull := 0; ; pull++ {
		params := url.Values{}
		params.Set("action", "query")
		params.Set("prop", "revisions")
		params.Set("titles", page)
		params.Set("rvprop", "timestamp|user|comment|ids")
		params.Set("rvdir", "older")
		params.Set("rvstart", util.MWTimestamp(end))
		params.Set("rvend", util.MWTimestamp(start))
		params.Set("rvlimit", "max")
		if rvcontinue != "" {
			params.Set("rvcontinue", rvcontinue)
		}

		body, err := c.get(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("query revisions of %q: %w", page, err)
		}

		var resp revisionsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode revisions of %q: %w", page, err)
		}
		if len(resp.Query.Pages) == 0 {
			return nil, fmt.Errorf("query revisions of %q: page not in response", page)
		}
		if resp.Query.Pages[0].Missing {
			return nil, fmt.Errorf("query revisions of %q: page does not exist", page)
		}

		for _, rev := range resp.Query.Pages[0].Revisions {
			ts, err := time.Parse(time.RFC3339, rev.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("parse revision %d timestamp: %w", rev.RevID, err)
			}
			all = append(all, model.Revision{
				ID:        rev.RevID,
				ParentID:  rev.ParentID,
				Timestamp: ts,
				User:      rev.User,
				Comment:   rev.Comment,
			})
		}

		rvcontinue = resp.Continue.RvContinue
		if rvcontinue == "" || pull >= c.maxContinues {
			break
		}
	}

	return all, nil
}
