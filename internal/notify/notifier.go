package notify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

// Poster can write talk-page messages and read talk-page wikitext.
type Poster interface {
	PostNewSection(ctx context.Context, title, heading, text, summary string) error
	PageWikitext(ctx context.Context, title string) (string, error)
}

// Attribution is one resolved thread ready for notification: who to tell,
// about what, and where it went.
type Attribution struct {
	Thread string
	User   string
	Link   string // "Page#Anchor", or empty when unresolved
}

// Notifier turns attributions into per-user archival notices and delivers
// them. By default it runs dry, printing the edits it would make.
type Notifier struct {
	cfg    model.NotifyConfig
	page   string // the page threads were archived from
	poster Poster
	out    io.Writer
}

// NewNotifier creates a notifier for the given origin page. out receives
// dry-run output.
func NewNotifier(cfg model.NotifyConfig, page string, poster Poster, out io.Writer) *Notifier {
	return &Notifier{cfg: cfg, page: page, poster: poster, out: out}
}

// Build groups attributions per user, one notification each, so an OP with
// several archived threads is not messaged several times. Threads whose
// archive link could not be located are dropped from the note; a user left
// with no linkable thread, or an ineligible user, yields an invalid
// notification carrying the reason.
func Build(items []Attribution, verdicts map[string]Verdict) []model.Notification {
	var order []string
	byUser := make(map[string]*model.Notification)

	for _, item := range items {
		n, ok := byUser[item.User]
		if !ok {
			n = &model.Notification{User: item.User}
			byUser[item.User] = n
			order = append(order, item.User)
		}
		n.Threads = append(n.Threads, item.Thread)
		n.Links = append(n.Links, item.Link)
	}

	notifications := make([]model.Notification, 0, len(order))
	for _, user := range order {
		n := *byUser[user]

		if v, ok := verdicts[user]; ok && !v.OK {
			n.Invalid = true
			n.Reason = v.Reason
		} else if !hasLink(n.Links) {
			n.Invalid = true
			n.Reason = "archive link not found"
		}

		notifications = append(notifications, n)
	}

	return notifications
}

func hasLink(links []string) bool {
	for _, l := range links {
		if l != "" {
			return true
		}
	}
	return false
}

// Render produces the wikitext body of a notification. A single thread is
// rendered through the substituted notification template; several threads
// get an itemized note, since the template takes exactly one thread.
func (n *Notifier) Render(notification model.Notification) string {
	var linked []struct{ thread, link string }
	for i, thread := range notification.Threads {
		if notification.Links[i] != "" {
			linked = append(linked, struct{ thread, link string }{thread, notification.Links[i]})
		}
	}

	if len(linked) == 1 {
		return fmt.Sprintf("{{subst:%s|pagelinked=%s|threadname=%s|archivelink=%s|botname=%s|editorname=%s}}",
			n.cfg.Template, n.page, linked[0].thread, linked[0].link, n.cfg.BotName, notification.User)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! The following threads you started on [[%s]] have been archived:\n",
		notification.User, n.page)
	for _, item := range linked {
		fmt.Fprintf(&b, "* [[%s|%s]]\n", item.link, item.thread)
	}
	fmt.Fprintf(&b, "Threads are archived automatically after a period of inactivity; "+
		"they stay readable at the links above. ~~~~")
	return b.String()
}

// Deliver posts every valid notification, honoring {{bots}} exclusion on
// the target talk page. In dry-run mode the edits are printed instead of
// saved. The input slice is updated in place with rendering and delivery
// state.
func (n *Notifier) Deliver(ctx context.Context, notifications []model.Notification) error {
	for i := range notifications {
		notification := &notifications[i]
		if notification.Invalid {
			continue
		}

		talkPage := "User talk:" + notification.User

		wikitext, err := n.poster.PageWikitext(ctx, talkPage)
		if err != nil {
			return fmt.Errorf("read %q: %w", talkPage, err)
		}
		if ExcludedByBots(wikitext, n.cfg.BotName) {
			notification.Invalid = true
			notification.Reason = "bot excluded by {{bots}} template"
			continue
		}

		notification.Rendered = n.Render(*notification)

		if n.cfg.DryRun {
			fmt.Fprintf(n.out, "[[%s]] <- %s\n", talkPage, notification.Rendered)
			continue
		}

		err = n.poster.PostNewSection(ctx, talkPage,
			"Your thread has been archived", notification.Rendered,
			"Automated notification of thread archival")
		if err != nil {
			return fmt.Errorf("notify %q: %w", notification.User, err)
		}
		notification.Posted = true
	}

	return nil
}
