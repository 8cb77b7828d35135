package utils

import "testing"

func TestValidateAndNormalizePagination(t *testing.T) {
	tests := []struct {
		name               string
		page, pageSize     int
		wantPage, wantSize int
	}{
		{"defaults applied", 0, 0, 1, 20},
		{"negative page", -3, 50, 1, 50},
		{"oversized page size clamped", 2, 500, 2, 100},
		{"valid passthrough", 3, 25, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := ValidateAndNormalizePagination(tt.page, tt.pageSize)
			if page != tt.wantPage || size != tt.wantSize {
				t.Errorf("got (%d, %d), want (%d, %d)", page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestParsePaginationFromQuery(t *testing.T) {
	page, size := ParsePaginationFromQuery("", "")
	if page != 1 || size != 20 {
		t.Errorf("defaults = (%d, %d), want (1, 20)", page, size)
	}

	page, size = ParsePaginationFromQuery("3", "50")
	if page != 3 || size != 50 {
		t.Errorf("parsed = (%d, %d), want (3, 50)", page, size)
	}

	page, size = ParsePaginationFromQuery("abc", "9999")
	if page != 1 || size != 20 {
		t.Errorf("invalid inputs = (%d, %d), want defaults", page, size)
	}
}

func TestCalculatePaginationInfo(t *testing.T) {
	info := CalculatePaginationInfo(45, 2, 20)
	if info.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", info.TotalPages)
	}
	if !info.HasNext || !info.HasPrevious {
		t.Errorf("page 2 of 3 should have both neighbors: %+v", info)
	}

	empty := CalculatePaginationInfo(0, 1, 20)
	if empty.TotalPages != 1 || empty.HasNext {
		t.Errorf("empty result = %+v, want a single empty page", empty)
	}
}

func TestCalculateOffset(t *testing.T) {
	if off := CalculateOffset(1, 20); off != 0 {
		t.Errorf("first page offset = %d, want 0", off)
	}
	if off := CalculateOffset(4, 25); off != 75 {
		t.Errorf("offset = %d, want 75", off)
	}
}
