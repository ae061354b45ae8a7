package dashboard

import (
	"net/url"
	"strconv"
	"time"
)

// defaultWindow is the trailing range reported when no bounds are given.
const defaultWindow = 30 * 24 * time.Hour

// dateLayout is the wire format for range bounds and series dates.
const dateLayout = "2006-01-02"

// Range bounds aggregation on ticket opened_at, inclusive.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SummaryRow reports per-category verdict counts. Positive and negative use
// any-match semantics over the full annotation history, so a ticket with
// conflicting verdicts counts in both columns and Total can exceed the
// distinct ticket count.
type SummaryRow struct {
	CategoryID int64  `json:"category_id"`
	Category   string `json:"category"`
	Unlabeled  int    `json:"unlabeled"`
	Positive   int    `json:"positive"`
	Negative   int    `json:"negative"`
	Total      int    `json:"total"`
}

// SeriesPoint is a daily count of tickets in one category carrying one
// latest-verdict status. A ticket in several categories contributes a point
// per category.
type SeriesPoint struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
}

// Report is the dashboard payload.
type Report struct {
	Range   Range         `json:"range"`
	Summary []SummaryRow  `json:"summary"`
	Series  []SeriesPoint `json:"series"`
}

// Query carries the dashboard parameters.
type Query struct {
	Range      Range
	CategoryID *int64
}

// QueryFromValues parses start_date, end_date, and category_id request parameters.
// Missing bounds default to the trailing thirty days.
func QueryFromValues(values url.Values) (Query, error) {
	now := time.Now()
	q := Query{
		Range: Range{
			From: now.Add(-defaultWindow),
			To:   now,
		},
	}

	if raw := values.Get("start_date"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Query{}, ErrInvalidRange
		}
		q.Range.From = from
	}

	if raw := values.Get("end_date"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Query{}, ErrInvalidRange
		}
		q.Range.To = to
	}

	if q.Range.To.Before(q.Range.From) {
		return Query{}, ErrInvalidRange
	}

	if raw := values.Get("category_id"); raw != "" && raw != "all" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Query{}, ErrInvalidCategory
		}
		q.CategoryID = &id
	}

	return q, nil
}
