package api

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		count      int
		totalCount int64
		wantTotal  int
		wantNext   bool
		wantPrev   bool
	}{
		{"first page of many", 1, 10, 10, 25, 3, true, false},
		{"middle page", 2, 10, 10, 25, 3, true, true},
		{"last partial page", 3, 10, 5, 25, 3, false, true},
		{"empty result", 1, 10, 0, 0, 0, false, false},
		{"exact division", 2, 5, 5, 10, 2, false, true},
		{"limit one", 3, 1, 1, 7, 7, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.count, tt.totalCount)
			if p.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", p.Total, tt.wantTotal)
			}
			if p.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.wantNext)
			}
			if p.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.wantPrev)
			}
			if p.Current != tt.page || p.Count != tt.count || p.TotalCount != tt.totalCount {
				t.Errorf("metadata echo mismatch: %+v", p)
			}
		})
	}
}

func TestPaginationInvariants(t *testing.T) {
	// hasNext iff current < totalPages, hasPrev iff current > 1, for a
	// sweep of windows.
	for limit := 1; limit <= 20; limit++ {
		for page := 1; page <= 10; page++ {
			for _, total := range []int64{0, 1, 7, 20, 99} {
				p := NewPagination(page, limit, 0, total)
				wantTotal := int((total + int64(limit) - 1) / int64(limit))
				if p.Total != wantTotal {
					t.Fatalf("ceil mismatch: limit=%d total=%d got %d want %d", limit, total, p.Total, wantTotal)
				}
				if p.HasNext != (page < wantTotal) || p.HasPrev != (page > 1) {
					t.Fatalf("flag mismatch: page=%d limit=%d total=%d %+v", page, limit, total, p)
				}
			}
		}
	}
}
