package ingest

import "github.com/mvlatkovic/betmixer/internal/domain"

// TeamForm is the slice of team statistics the meta-model consumes: the
// recent result string ("WWDLW") and the average goals scored per match.
type TeamForm struct {
	Form        string
	GoalsForAvg float64
}

// formPoints converts a result string into a 0-100 score. A win is worth
// 3 points, a draw 1, scaled against the maximum attainable over the same
// window.
func formPoints(form string) float64 {
	if form == "" {
		return 0
	}
	points := 0
	for _, r := range form {
		switch r {
		case 'W':
			points += 3
		case 'D':
			points += 1
		}
	}
	return float64(points) / float64(3*len(form)) * 100
}

// SignalsFromStats derives a signal bundle from the two teams' statistics.
// Form averages both sides' recent points; xG approximates from combined
// scoring averages. Shots, momentum, and h2h stay at the reference
// placeholder values until richer feeds exist.
func SignalsFromStats(home, away TeamForm) domain.SignalBundle {
	xg := (home.GoalsForAvg + away.GoalsForAvg) / 2 * 25
	if xg > 100 {
		xg = 100
	}
	return domain.SignalBundle{
		Form:     (formPoints(home.Form) + formPoints(away.Form)) / 2,
		XG:       xg,
		Shots:    5,
		Momentum: 6,
		H2H:      4,
	}
}
