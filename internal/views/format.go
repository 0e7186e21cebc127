package views

import (
	"fmt"
	"time"
)

// dateLayout is the fixed human-readable form used on deadline cards.
const dateLayout = "Jan 2, 2006 at 3:04 PM"

// FormatDate renders a due date in the fixed display format.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// RelativeTime describes the distance between a due date and now, e.g.
// "in 3 days" or "2 hours ago". The phrasing is monotonic with the sign and
// magnitude of dueDate minus now.
func RelativeTime(dueDate, now time.Time) string {
	diff := dueDate.Sub(now)

	if diff >= 0 && diff < time.Minute {
		return "due now"
	}
	if diff < 0 && diff > -time.Minute {
		return "just past due"
	}

	if diff > 0 {
		return "in " + spanLabel(diff)
	}
	return spanLabel(-diff) + " ago"
}

func spanLabel(d time.Duration) string {
	switch {
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
