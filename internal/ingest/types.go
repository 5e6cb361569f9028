package ingest

import "encoding/json"

// Wire types for the API-Football v3 responses. Only the fields the
// ingestion layer reads are declared; odds values arrive as strings.

type apiFixtureEnvelope struct {
	Response []apiFixtureEntry `json:"response"`
}

type apiFixtureEntry struct {
	Fixture struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Season  int    `json:"season"`
	} `json:"league"`
	Teams struct {
		Home apiTeam `json:"home"`
		Away apiTeam `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type apiTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type apiOddsEnvelope struct {
	Response []apiOddsEntry `json:"response"`
}

type apiOddsEntry struct {
	Fixture struct {
		ID int64 `json:"id"`
	} `json:"fixture"`
	Bookmakers []apiBookmaker `json:"bookmakers"`
}

type apiBookmaker struct {
	Bets []apiBet `json:"bets"`
}

type apiBet struct {
	Name   string        `json:"name"`
	Values []apiBetValue `json:"values"`
}

type apiBetValue struct {
	Value string      `json:"value"`
	Odd   json.Number `json:"odd"`
}

type apiTeamStatsEnvelope struct {
	Response struct {
		Form  string `json:"form"`
		Goals struct {
			For struct {
				Average struct {
					Total json.Number `json:"total"`
				} `json:"average"`
			} `json:"for"`
		} `json:"goals"`
	} `json:"response"`
}
