package mixer

import (
	"strings"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// A ticket at or above this average confidence is flagged green.
const greenConfidence = 75

// TicketView is the presentation-augmented variant of a ticket sent to
// outbound channels. Display fields live here, at the output boundary,
// never inside the core ranking logic.
type TicketView struct {
	domain.Ticket
	// Tag concatenates the leg market codes, e.g. "#O15_HT_DRAW_SFTY".
	Tag string `json:"tag"`
	// Emoji keys off the confidence average.
	Emoji string `json:"emoji"`
	// Fallback marks tickets carrying fewer legs than the target size.
	Fallback string `json:"fallback,omitempty"`
}

// Present decorates ranked tickets for outbound channels. legsPerTicket is
// the target tuple size; shorter tickets get the fallback marker.
func Present(tickets []domain.Ticket, legsPerTicket int) []TicketView {
	views := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		markets := make([]string, 0, len(t.Legs))
		for _, leg := range t.Legs {
			markets = append(markets, leg.Market)
		}

		emoji := "🟡"
		if t.ConfidenceAvg > greenConfidence {
			emoji = "🟢"
		}

		view := TicketView{
			Ticket: t,
			Tag:    "#" + strings.Join(markets, "_"),
			Emoji:  emoji,
		}
		if len(t.Legs) < legsPerTicket {
			view.Fallback = "HT-only"
		}
		views = append(views, view)
	}
	return views
}
