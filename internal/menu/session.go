package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-picker/internal/format/table"
	"github.com/atomicstack/popup-picker/internal/logging"
	"github.com/atomicstack/popup-picker/internal/tmux"
)

const (
	sessionIcon        = "◆"
	currentSessionIcon = "●"
)

var (
	fetchSessionsFn = tmux.FetchSessions
	switchClientFn  = tmux.SwitchClient
)

func loadSessionItems(ctx Context) ([]Item, error) {
	snapshot, err := fetchSessionsFn(ctx.SocketPath)
	if err != nil {
		return nil, err
	}
	return SessionItems(ctx, snapshot.Sessions), nil
}

// SessionItems converts sessions into items whose action switches the
// launching client to that session.
func SessionItems(ctx Context, sessions []tmux.Session) []Item {
	labels := sessionLabels(sessions)
	items := make([]Item, 0, len(sessions))
	for i, session := range sessions {
		target := session.Name
		icon := sessionIcon
		if session.Current {
			icon = currentSessionIcon
		}
		items = append(items, Item{
			ID:    target,
			Label: labels[i],
			Icon:  icon,
			OnSelect: func() {
				if err := switchClientFn(ctx.SocketPath, target); err != nil {
					logging.Error(err)
					ctx.Results.Fail(err)
					return
				}
				ctx.Results.Record(fmt.Sprintf("switched to %s", target))
			},
		})
	}
	return items
}

func sessionLabels(sessions []tmux.Session) []string {
	if len(sessions) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, []string{
			session.Name,
			windowCount(session.Windows),
			sessionStatus(session),
		})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func windowCount(n int) string {
	if n == 1 {
		return "1 window"
	}
	return fmt.Sprintf("%d windows", n)
}

func sessionStatus(session tmux.Session) string {
	if !session.Attached {
		return ""
	}
	if len(session.Clients) > 1 {
		return fmt.Sprintf("attached (%d)", len(session.Clients))
	}
	return "attached"
}
