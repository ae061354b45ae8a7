package tickets_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/caretide/triage/internal/tickets"
)

func sequence(ids ...int64) []tickets.Ticket {
	seq := make([]tickets.Ticket, len(ids))
	for i, id := range ids {
		seq[i] = tickets.Ticket{ID: id}
	}
	return seq
}

func int64Ptr(v int64) *int64 { return &v }

func TestPositionOf(t *testing.T) {
	seq := sequence(3, 7, 12, 20)

	tests := []struct {
		name string
		id   int64
		want int
	}{
		{"first element", 3, 1},
		{"middle element", 12, 3},
		{"last element", 20, 4},
		{"absent from sequence", 99, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tickets.PositionOf(seq, tt.id); got != tt.want {
				t.Errorf("PositionOf(%d) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestNextAfter(t *testing.T) {
	seq := sequence(3, 7, 12)

	tests := []struct {
		name    string
		current *int64
		want    int64
	}{
		{"nil current wraps to first", nil, 3},
		{"advances past first", int64Ptr(3), 7},
		{"advances past middle", int64Ptr(7), 12},
		{"last wraps to first", int64Ptr(12), 3},
		{"absent wraps to first", int64Ptr(99), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tickets.NextAfter(seq, tt.current); got.ID != tt.want {
				t.Errorf("NextAfter() = %d, want %d", got.ID, tt.want)
			}
		})
	}
}

func TestNextAfterSingleElement(t *testing.T) {
	seq := sequence(5)

	if got := tickets.NextAfter(seq, int64Ptr(5)); got.ID != 5 {
		t.Errorf("NextAfter() = %d, want 5", got.ID)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"unlabeled", "positive", "negative"} {
		if _, err := tickets.ParseStatus(valid); err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", valid, err)
		}
	}

	if _, err := tickets.ParseStatus("labeled"); !errors.Is(err, tickets.ErrInvalidFilter) {
		t.Errorf("ParseStatus(\"labeled\") error = %v, want ErrInvalidFilter", err)
	}
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		wantCategory *int64
		wantStatus   *tickets.Status
		wantErr      bool
	}{
		{"empty", url.Values{}, nil, nil, false},
		{"all category passthrough", url.Values{"category_id": {"all"}}, nil, nil, false},
		{"category id", url.Values{"category_id": {"4"}}, int64Ptr(4), nil, false},
		{"status", url.Values{"status": {"positive"}}, nil, statusPtr(tickets.StatusPositive), false},
		{"bad category", url.Values{"category_id": {"nope"}}, nil, nil, true},
		{"bad status", url.Values{"status": {"nope"}}, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tickets.FiltersFromQuery(tt.query)
			if tt.wantErr {
				if !errors.Is(err, tickets.ErrInvalidFilter) {
					t.Fatalf("error = %v, want ErrInvalidFilter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			switch {
			case tt.wantCategory == nil && f.CategoryID != nil:
				t.Errorf("CategoryID = %d, want nil", *f.CategoryID)
			case tt.wantCategory != nil && (f.CategoryID == nil || *f.CategoryID != *tt.wantCategory):
				t.Errorf("CategoryID = %v, want %d", f.CategoryID, *tt.wantCategory)
			}

			switch {
			case tt.wantStatus == nil && f.Status != nil:
				t.Errorf("Status = %s, want nil", *f.Status)
			case tt.wantStatus != nil && (f.Status == nil || *f.Status != *tt.wantStatus):
				t.Errorf("Status = %v, want %s", f.Status, *tt.wantStatus)
			}
		})
	}
}

func statusPtr(s tickets.Status) *tickets.Status { return &s }
