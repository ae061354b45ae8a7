package dashboard

import "context"

// System defines the public contract for dashboard aggregation.
type System interface {
	Handler() *Handler

	// Report computes the summary and time series concurrently.
	Report(ctx context.Context, q Query) (*Report, error)

	Summary(ctx context.Context, q Query) ([]SummaryRow, error)
	TimeSeries(ctx context.Context, q Query) ([]SeriesPoint, error)
}
