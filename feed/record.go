/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/internal"
)

// response is the envelope around the match list. Pointers distinguish a
// missing field from a zero value.
type response struct {
	Status *bool     `json:"status"`
	Data   *[]Record `json:"data"`
}

// Record is one match as published by the feed.
type Record struct {
	ID       FlexID     `json:"id"`
	Level    string     `json:"level"`
	HomeTeam TeamRecord `json:"home_team"`
	AwayTeam TeamRecord `json:"away_team"`
	Date     time.Time  `json:"date"`
}

type TeamRecord struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
	Flag  string `json:"flag"`
}

// FlexID accepts both JSON strings and numbers.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("FlexID unmarshal: %w", err)
		}
		*id = FlexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("FlexID unmarshal: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

// Custom unmarshaller to handle non-RFC3339 timestamps, "null", and empty
// strings in date. An unreadable date (e.g. "TBD") leaves the kickoff unset.
func (r *Record) UnmarshalJSON(data []byte) error {
	type Alias Record
	aux := &struct {
		Date *string `json:"date"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Record unmarshal: %w", err)
	}
	if aux.Date == nil {
		r.Date = time.Time{}
		return nil
	}
	date, err := internal.ParseDateOrZero(*aux.Date)
	if err != nil {
		log.Printf("feed.record: match %v: ignoring date %q: %v", r.ID, *aux.Date,
			err)
		date = time.Time{}
	}
	r.Date = date
	return nil
}

// Match converts the record. The status shown on the card is the stage's
// label; negative scores are clamped to zero.
func (r Record) Match() bracket.Match {
	tag := bracket.ParseStageTag(r.Level)
	if strings.TrimSpace(r.Level) == "" {
		tag = ""
	}
	return bracket.Match{
		ID:      string(r.ID),
		Stage:   tag,
		Home:    r.HomeTeam.team(),
		Away:    r.AwayTeam.team(),
		Status:  tag.Label(),
		Kickoff: r.Date,
	}
}

func (tr TeamRecord) team() bracket.Team {
	score := 0
	if tr.Score != nil && *tr.Score > 0 {
		score = *tr.Score
	}
	return bracket.Team{
		Name:  strings.TrimSpace(tr.Name),
		Score: score,
		Flag:  strings.TrimSpace(tr.Flag),
	}
}

// Matches converts a slice of records in order.
func Matches(recs []Record) []bracket.Match {
	out := make([]bracket.Match, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Match())
	}
	return out
}
