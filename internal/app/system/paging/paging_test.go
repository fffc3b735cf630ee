package paging

import (
	"testing"
)

func TestLimitPlusOne(t *testing.T) {
	want := int64(PageSize + 1)
	if got := LimitPlusOne(); got != want {
		t.Errorf("LimitPlusOne() = %d, want %d", got, want)
	}
}

func TestTrimPage(t *testing.T) {
	tests := []struct {
		name       string
		rows       []int
		before     string
		after      string
		wantLen    int
		wantResult Result
	}{
		{
			name:       "first page with no extra",
			rows:       []int{1, 2, 3},
			wantLen:    3,
			wantResult: Result{HasPrev: false, HasNext: false},
		},
		{
			name:       "first page with extra (has next)",
			rows:       make([]int, PageSize+1),
			wantLen:    PageSize,
			wantResult: Result{HasPrev: false, HasNext: true},
		},
		{
			name:       "forward page with extra",
			rows:       make([]int, PageSize+1),
			after:      "cursor123",
			wantLen:    PageSize,
			wantResult: Result{HasPrev: true, HasNext: true},
		},
		{
			name:       "forward page without extra (last page)",
			rows:       []int{1, 2},
			after:      "cursor123",
			wantLen:    2,
			wantResult: Result{HasPrev: true, HasNext: false},
		},
		{
			name:       "backward page with extra",
			rows:       make([]int, PageSize+1),
			before:     "cursor123",
			wantLen:    PageSize,
			wantResult: Result{HasPrev: true, HasNext: true},
		},
		{
			name:       "backward page without extra (first page)",
			rows:       []int{1, 2},
			before:     "cursor123",
			wantLen:    2,
			wantResult: Result{HasPrev: false, HasNext: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := tt.rows
			got := TrimPage(&rows, tt.before, tt.after)
			if len(rows) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(rows), tt.wantLen)
			}
			if got != tt.wantResult {
				t.Errorf("result = %+v, want %+v", got, tt.wantResult)
			}
		})
	}
}

func TestTrimPage_BackwardTrimsFirst(t *testing.T) {
	rows := make([]int, PageSize+1)
	for i := range rows {
		rows[i] = i
	}
	TrimPage(&rows, "cursor123", "")
	if rows[0] != 1 {
		t.Errorf("first element = %d, want 1 (oldest trimmed)", rows[0])
	}
}

func TestReverse(t *testing.T) {
	rows := []string{"a", "b", "c"}
	Reverse(rows)
	if rows[0] != "c" || rows[2] != "a" {
		t.Errorf("Reverse = %v, want [c b a]", rows)
	}
}
