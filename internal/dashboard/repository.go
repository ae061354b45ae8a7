package dashboard

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates the dashboard system over the given database pool.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "dashboard"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Report(ctx context.Context, q Query) (*Report, error) {
	report := &Report{Range: q.Range}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := r.Summary(gctx, q)
		if err != nil {
			return err
		}
		report.Summary = summary
		return nil
	})
	g.Go(func() error {
		series, err := r.TimeSeries(gctx, q)
		if err != nil {
			return err
		}
		report.Series = series
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// Summary counts, per category, the tickets opened in range that have no
// annotations, any positive annotation, and any negative annotation.
func (r *repo) Summary(ctx context.Context, q Query) ([]SummaryRow, error) {
	stmt := `
		SELECT
			c.id,
			c.name,
			COUNT(DISTINCT t.id) FILTER (WHERE NOT EXISTS (
				SELECT 1 FROM annotations a WHERE a.ticket_id = t.id)) AS unlabeled,
			COUNT(DISTINCT t.id) FILTER (WHERE EXISTS (
				SELECT 1 FROM annotations a WHERE a.ticket_id = t.id AND a.is_app_issue)) AS positive,
			COUNT(DISTINCT t.id) FILTER (WHERE EXISTS (
				SELECT 1 FROM annotations a WHERE a.ticket_id = t.id AND NOT a.is_app_issue)) AS negative
		FROM categories c
		LEFT JOIN ticket_categories tc ON tc.category_id = c.id
		LEFT JOIN tickets t ON t.id = tc.ticket_id
			AND t.opened_at BETWEEN $1 AND $2
		WHERE $3::bigint IS NULL OR c.id = $3
		GROUP BY c.id, c.name
		ORDER BY c.id`

	rows, err := r.db.QueryContext(ctx, stmt, day(q.Range.From), day(q.Range.To), q.CategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := []SummaryRow{}
	for rows.Next() {
		var row SummaryRow
		if err := rows.Scan(&row.CategoryID, &row.Category, &row.Unlabeled, &row.Positive, &row.Negative); err != nil {
			return nil, err
		}
		row.Total = row.Unlabeled + row.Positive + row.Negative
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

// TimeSeries counts tickets per opened day, category, and latest-verdict
// status. Latest is by created_at with id as tiebreaker.
func (r *repo) TimeSeries(ctx context.Context, q Query) ([]SeriesPoint, error) {
	stmt := `
		SELECT opened_at, category, status, COUNT(*)
		FROM (
			SELECT
				t.opened_at,
				c.name AS category,
				COALESCE((
					SELECT CASE WHEN a.is_app_issue THEN 'positive' ELSE 'negative' END
					FROM annotations a
					WHERE a.ticket_id = t.id
					ORDER BY a.created_at DESC, a.id DESC
					LIMIT 1), 'unlabeled') AS status
			FROM tickets t
			JOIN ticket_categories tc ON tc.ticket_id = t.id
			JOIN categories c ON c.id = tc.category_id
			WHERE t.opened_at BETWEEN $1 AND $2
				AND ($3::bigint IS NULL OR c.id = $3)
		) labeled
		GROUP BY opened_at, category, status
		ORDER BY opened_at, category, status`

	rows, err := r.db.QueryContext(ctx, stmt, day(q.Range.From), day(q.Range.To), q.CategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := []SeriesPoint{}
	for rows.Next() {
		var (
			point  SeriesPoint
			opened time.Time
		)
		if err := rows.Scan(&opened, &point.Category, &point.Status, &point.Count); err != nil {
			return nil, err
		}
		point.Date = opened.Format(dateLayout)
		series = append(series, point)
	}
	return series, rows.Err()
}

// day truncates a range bound to its calendar date for the DATE column.
func day(t time.Time) string {
	return t.Format(dateLayout)
}
