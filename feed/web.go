/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/bracketview/internal"
)

// fetchHTML scrapes the public fixtures page. Each knockout match is a row
// of table#matches carrying data-id and data-level, with cells: home team,
// home score, away score, away team. Flags come from the cells' img src.
func (c *Client) fetchHTML(ctx context.Context) ([]Record, error) {
	doc, err := fetchDoc(ctx, c.httpClient, c.HTMLURL)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch fixtures page: %w", err)
	}

	recs := parseFixtures(doc)
	if len(recs) == 0 {
		return nil, fmt.Errorf("fixtures page %v has no matches", c.HTMLURL)
	}

	return recs, nil
}

func parseFixtures(doc *goquery.Document) []Record {
	var recs []Record
	doc.Find("table#matches tr").Each(func(_ int, row *goquery.Selection) {
		if r, ok := parseFixtureRow(row); ok {
			recs = append(recs, r)
		}
	})
	return recs
}

// parseFixtureRow returns ok=false for header and malformed rows.
func parseFixtureRow(row *goquery.Selection) (Record, bool) {
	cells := row.Find("td")
	if cells.Length() < 4 {
		return Record{}, false
	}
	id, _ := row.Attr("data-id")
	level, _ := row.Attr("data-level")

	r := Record{
		ID:       FlexID(strings.TrimSpace(id)),
		Level:    level,
		HomeTeam: parseTeamCell(cells.Eq(0), cells.Eq(1)),
		AwayTeam: parseTeamCell(cells.Eq(3), cells.Eq(2)),
	}
	if date, ok := row.Attr("data-date"); ok {
		if t, err := internal.ParseDateOrZero(date); err == nil {
			r.Date = t
		}
	}

	return r, true
}

func parseTeamCell(nameCell, scoreCell *goquery.Selection) TeamRecord {
	tr := TeamRecord{Name: strings.TrimSpace(nameCell.Text())}
	if src, ok := nameCell.Find("img").Attr("src"); ok {
		tr.Flag = src
	}
	if v, err := strconv.Atoi(strings.TrimSpace(scoreCell.Text())); err == nil {
		tr.Score = &v
	}
	return tr
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func fetchDoc(ctx context.Context, hc *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
