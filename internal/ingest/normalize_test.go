package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

const fixtureJSON = `{
  "fixture": {"id": 5001, "date": "2026-09-01T18:30:00+02:00", "status": {"short": "NS"}},
  "league": {"id": 39, "name": "Premier League", "country": "England", "season": 2026},
  "teams": {"home": {"id": 42, "name": "Arsenal"}, "away": {"id": 49, "name": "Chelsea"}},
  "goals": {"home": null, "away": null}
}`

func TestNormalizeFixture(t *testing.T) {
	var entry apiFixtureEntry
	if err := json.Unmarshal([]byte(fixtureJSON), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	f := normalizeFixture(&entry)
	if f.FixtureID != 5001 || f.LeagueID != 39 || f.Season != 2026 {
		t.Errorf("ids = %d/%d/%d", f.FixtureID, f.LeagueID, f.Season)
	}
	if f.HomeTeam != "Arsenal" || f.AwayTeam != "Chelsea" || f.HomeTeamID != 42 || f.AwayTeamID != 49 {
		t.Errorf("teams = %s(%d) vs %s(%d)", f.HomeTeam, f.HomeTeamID, f.AwayTeam, f.AwayTeamID)
	}
	want := time.Date(2026, 9, 1, 18, 30, 0, 0, time.FixedZone("", 2*3600))
	if !f.KickoffAt.Equal(want) {
		t.Errorf("kickoff = %v, want %v", f.KickoffAt, want)
	}
	if !validFixture(f) {
		t.Error("normalized fixture should be valid")
	}
}

const oddsJSON = `{
  "fixture": {"id": 5001},
  "bookmakers": [{
    "bets": [
      {"name": "Match Winner", "values": [
        {"value": "Home", "odd": "2.10"},
        {"value": "Draw", "odd": "3.25"},
        {"value": "Away", "odd": "3.60"}
      ]},
      {"name": "Over/Under", "values": [
        {"value": "Over 1.5", "odd": "1.28"},
        {"value": "Over 2.5", "odd": "1.72"},
        {"value": "Under 2.5", "odd": "2.05"}
      ]},
      {"name": "Both Teams To Score", "values": [
        {"value": "Yes", "odd": "1.80"},
        {"value": "No", "odd": "1.95"}
      ]}
    ]
  }]
}`

func TestNormalizeOdds(t *testing.T) {
	var entry apiOddsEntry
	if err := json.Unmarshal([]byte(oddsJSON), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	bundle := normalizeOdds(&entry)
	if bundle == nil {
		t.Fatal("bundle is nil")
	}
	if bundle.MatchWinner == nil || bundle.MatchWinner.Draw != 3.25 {
		t.Errorf("match winner = %+v", bundle.MatchWinner)
	}
	if bundle.Over15 == nil || bundle.Over15.Home != 1.28 || bundle.Over15.Line != 1.5 {
		t.Errorf("over 1.5 = %+v", bundle.Over15)
	}
	if bundle.Over25 == nil || bundle.Over25.Home != 1.72 || bundle.Over25.Line != 2.5 {
		t.Errorf("over 2.5 = %+v", bundle.Over25)
	}
	if bundle.BTTS == nil || bundle.BTTS.Yes != 1.8 || bundle.BTTS.No != 1.95 {
		t.Errorf("btts = %+v", bundle.BTTS)
	}
}

func TestNormalizeOddsMissingMarkets(t *testing.T) {
	var entry apiOddsEntry
	if err := json.Unmarshal([]byte(`{"fixture": {"id": 1}, "bookmakers": [{"bets": [
		{"name": "Over/Under", "values": [{"value": "Over 1.5", "odd": "1.30"}]}
	]}]}`), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	bundle := normalizeOdds(&entry)
	if bundle == nil {
		t.Fatal("bundle is nil")
	}
	if bundle.MatchWinner != nil || bundle.Over25 != nil || bundle.BTTS != nil {
		t.Errorf("unexpected markets: %+v", bundle)
	}
	if bundle.Over15 == nil || bundle.Over15.Home != 1.3 {
		t.Errorf("over 1.5 = %+v", bundle.Over15)
	}
}

func TestNormalizeOddsEmpty(t *testing.T) {
	if bundle := normalizeOdds(&apiOddsEntry{}); bundle != nil {
		t.Errorf("bundle = %+v, want nil without bookmakers", bundle)
	}

	var entry apiOddsEntry
	if err := json.Unmarshal([]byte(`{"fixture": {"id": 1}, "bookmakers": [{"bets": [
		{"name": "Correct Score", "values": [{"value": "1:0", "odd": "7.50"}]}
	]}]}`), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if bundle := normalizeOdds(&entry); bundle != nil {
		t.Errorf("bundle = %+v, want nil without recognized markets", bundle)
	}
}

func TestNormalizeOddsBadValues(t *testing.T) {
	var entry apiOddsEntry
	if err := json.Unmarshal([]byte(`{"fixture": {"id": 1}, "bookmakers": [{"bets": [
		{"name": "Match Winner", "values": [{"value": "Draw", "odd": "not-a-number"}]}
	]}]}`), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if bundle := normalizeOdds(&entry); bundle != nil {
		t.Errorf("bundle = %+v, want nil when the only odd is unparsable", bundle)
	}
}

func TestValidFixture(t *testing.T) {
	f := domain.Fixture{
		FixtureID: 1,
		LeagueID:  39,
		HomeTeam:  "A",
		AwayTeam:  "B",
		KickoffAt: time.Now(),
	}
	if !validFixture(f) {
		t.Error("complete fixture should be valid")
	}

	broken := f
	broken.LeagueID = 0
	if validFixture(broken) {
		t.Error("fixture without league should be invalid")
	}

	broken = f
	broken.KickoffAt = time.Time{}
	if validFixture(broken) {
		t.Error("fixture without kickoff should be invalid")
	}
}

func TestFormPoints(t *testing.T) {
	cases := []struct {
		form string
		want float64
	}{
		{"", 0},
		{"WWWWW", 100},
		{"LLLLL", 0},
		{"WDLWD", float64(8) / float64(15) * 100},
	}
	for _, tc := range cases {
		if got := formPoints(tc.form); got != tc.want {
			t.Errorf("formPoints(%q) = %v, want %v", tc.form, got, tc.want)
		}
	}
}

func TestSignalsFromStats(t *testing.T) {
	signals := SignalsFromStats(
		TeamForm{Form: "WWWWW", GoalsForAvg: 2.0},
		TeamForm{Form: "LLLLL", GoalsForAvg: 1.0},
	)
	if signals.Form != 50 {
		t.Errorf("form = %v, want 50", signals.Form)
	}
	if signals.XG != 37.5 {
		t.Errorf("xG = %v, want 37.5", signals.XG)
	}
	if signals.Shots != 5 || signals.Momentum != 6 || signals.H2H != 4 {
		t.Errorf("placeholder signals = %+v", signals)
	}
}
