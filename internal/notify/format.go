package notify

import (
	"fmt"
	"strings"

	"github.com/mvlatkovic/betmixer/internal/domain"
	"github.com/mvlatkovic/betmixer/internal/mixer"
)

// FormatTickets renders the ranked tickets as the daily digest message.
func FormatTickets(date string, views []mixer.TicketView) (title, message string) {
	title = fmt.Sprintf("Tickets for %s", date)
	if len(views) == 0 {
		return title, "No tickets today: not enough candidates survived the filters."
	}

	var b strings.Builder
	for i, v := range views {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s Ticket %d (%s", v.Emoji, i+1, v.ID)
		if v.Fallback != "" {
			fmt.Fprintf(&b, ", %s", v.Fallback)
		}
		b.WriteString(")\n")
		for _, leg := range v.Legs {
			fmt.Fprintf(&b, "  %s @ %.2f (%d%%) %s\n", leg.Market, leg.Odd, leg.Confidence, leg.Match())
		}
		fmt.Fprintf(&b, "  total %.2f, avg confidence %d%% %s\n", v.TotalOdd, v.ConfidenceAvg, v.Tag)
	}
	return title, b.String()
}

// FormatEvaluation renders the settlement summary message.
func FormatEvaluation(ev domain.Evaluation) (title, message string) {
	title = fmt.Sprintf("Results for %s", ev.Date)

	var b strings.Builder
	fmt.Fprintf(&b, "Legs: %d/%d hit (%.2f%%)\n", ev.Hits, ev.TotalLegs, ev.HitRate)
	fmt.Fprintf(&b, "Tickets: %d/%d won\n", ev.TicketsWon, ev.TicketsPlayed)
	if ev.Streak > 0 {
		fmt.Fprintf(&b, "Winning streak: %d day(s)\n", ev.Streak)
	}
	for _, item := range ev.Items {
		mark := "✗"
		if item.Hit {
			mark = "✓"
		}
		fmt.Fprintf(&b, "%s %s @ %.2f (%s)\n", mark, item.Market, item.Odd, item.Result)
	}
	return title, b.String()
}
