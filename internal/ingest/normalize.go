package ingest

import (
	"encoding/json"
	"math"
	"time"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// Bet names used by the provider for the markets the builders read.
const (
	betMatchWinner = "Match Winner"
	betOverUnder   = "Over/Under"
	betBTTS        = "Both Teams To Score"
)

// normalizeFixture maps a provider fixture entry to the domain record.
func normalizeFixture(entry *apiFixtureEntry) domain.Fixture {
	kickoff, _ := time.Parse(time.RFC3339, entry.Fixture.Date)
	return domain.Fixture{
		FixtureID:  entry.Fixture.ID,
		LeagueID:   entry.League.ID,
		LeagueName: entry.League.Name,
		Country:    entry.League.Country,
		Season:     entry.League.Season,
		KickoffAt:  kickoff,
		HomeTeamID: entry.Teams.Home.ID,
		HomeTeam:   entry.Teams.Home.Name,
		AwayTeamID: entry.Teams.Away.ID,
		AwayTeam:   entry.Teams.Away.Name,
	}
}

// normalizeOdds extracts the four recognized markets from the first
// bookmaker of an odds entry. It returns nil when no market yielded a
// usable price.
func normalizeOdds(entry *apiOddsEntry) *domain.MarketOdds {
	if len(entry.Bookmakers) == 0 {
		return nil
	}
	bets := entry.Bookmakers[0].Bets

	bundle := &domain.MarketOdds{
		MatchWinner: parseMatchWinner(bets),
		Over15:      parseOverUnder(bets, "Over 1.5", 1.5),
		Over25:      parseOverUnder(bets, "Over 2.5", 2.5),
		BTTS:        parseBTTS(bets),
	}
	if bundle.MatchWinner == nil && bundle.Over15 == nil && bundle.Over25 == nil && bundle.BTTS == nil {
		return nil
	}
	return bundle
}

func parseMatchWinner(bets []apiBet) *domain.MatchWinnerOdds {
	bet := findBet(bets, betMatchWinner)
	if bet == nil {
		return nil
	}
	mw := &domain.MatchWinnerOdds{
		Home: betValue(bet, "Home"),
		Draw: betValue(bet, "Draw"),
		Away: betValue(bet, "Away"),
	}
	if mw.Home == 0 && mw.Draw == 0 && mw.Away == 0 {
		return nil
	}
	return mw
}

func parseOverUnder(bets []apiBet, label string, line float64) *domain.OverUnderOdds {
	bet := findBet(bets, betOverUnder)
	if bet == nil {
		return nil
	}
	home := betValue(bet, label)
	if home == 0 {
		return nil
	}
	return &domain.OverUnderOdds{Home: home, Line: line}
}

func parseBTTS(bets []apiBet) *domain.BTTSOdds {
	bet := findBet(bets, betBTTS)
	if bet == nil {
		return nil
	}
	btts := &domain.BTTSOdds{
		Yes: betValue(bet, "Yes"),
		No:  betValue(bet, "No"),
	}
	if btts.Yes == 0 && btts.No == 0 {
		return nil
	}
	return btts
}

func findBet(bets []apiBet, name string) *apiBet {
	for i := range bets {
		if bets[i].Name == name {
			return &bets[i]
		}
	}
	return nil
}

// betValue returns the decimal odd for one outcome label, or 0 when it is
// absent or unparsable.
func betValue(bet *apiBet, label string) float64 {
	for _, v := range bet.Values {
		if v.Value != label {
			continue
		}
		return parseOdd(v.Odd)
	}
	return 0
}

func parseOdd(raw json.Number) float64 {
	odd, err := raw.Float64()
	if err != nil || math.IsNaN(odd) || math.IsInf(odd, 0) || odd <= 0 {
		return 0
	}
	return odd
}

// validFixture reports whether a fixture carries every identifying field
// the builders require. Invalid fixtures are dropped at the ingestion
// boundary so the core never sees them.
func validFixture(f domain.Fixture) bool {
	return f.FixtureID != 0 &&
		f.LeagueID != 0 &&
		f.HomeTeam != "" &&
		f.AwayTeam != "" &&
		!f.KickoffAt.IsZero()
}
