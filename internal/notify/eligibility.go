package notify

import (
	"context"
	"fmt"

	"github.com/Tigraan/Teahouse-bot/internal/mediawiki"
)

// Directory answers account-level questions about users.
type Directory interface {
	UserInfos(ctx context.Context, users []string) (map[string]mediawiki.UserInfo, error)
	Blocks(ctx context.Context, users []string) (map[string]bool, error)
}

// Verdict says whether a user may be notified and, if not, why. Reasons
// are operator-facing text, not error values: an ineligible user is a
// normal outcome.
type Verdict struct {
	OK     bool
	Reason string
}

// Eligibility applies the notification policy to the given users: anyone
// may be notified regardless of tenure, except accounts that do not exist,
// anonymous (IP) editors, and currently blocked users. The block query is
// separate from the user query because blocks on IPs only show up there.
func Eligibility(ctx context.Context, dir Directory, users []string) (map[string]Verdict, error) {
	verdicts := make(map[string]Verdict, len(users))
	if len(users) == 0 {
		return verdicts, nil
	}

	infos, err := dir.UserInfos(ctx, users)
	if err != nil {
		return nil, fmt.Errorf("check eligibility: %w", err)
	}
	blocked, err := dir.Blocks(ctx, users)
	if err != nil {
		return nil, fmt.Errorf("check eligibility: %w", err)
	}

	for _, u := range users {
		info, known := infos[u]
		switch {
		case !known || info.Missing:
			verdicts[u] = Verdict{Reason: "account does not exist"}
		case info.Invalid:
			verdicts[u] = Verdict{Reason: "anonymous editor"}
		case blocked[u]:
			verdicts[u] = Verdict{Reason: "user is blocked"}
		default:
			verdicts[u] = Verdict{OK: true}
		}
	}

	return verdicts, nil
}
