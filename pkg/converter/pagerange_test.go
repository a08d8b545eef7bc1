package converter

import (
	"reflect"
	"testing"
)

func TestParsePageRanges(t *testing.T) {
	tests := []struct {
		input   string
		want    []PageRange
		wantErr bool
	}{
		{"", nil, false},
		{"5", []PageRange{{5, 5}}, false},
		{"1-3", []PageRange{{1, 3}}, false},
		{"1-3,7,12-14", []PageRange{{1, 3}, {7, 7}, {12, 14}}, false},
		{" 2 , 4 - 6 ", []PageRange{{2, 2}, {4, 6}}, false},
		{"1,,3", []PageRange{{1, 1}, {3, 3}}, false},
		{"abc", nil, true},
		{"1-x", nil, true},
		{"9-2", nil, true},
	}

	for _, tt := range tests {
		set, err := ParsePageRanges(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePageRanges(%q) expected error, got none", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePageRanges(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(set.ranges, tt.want) {
			t.Errorf("ParsePageRanges(%q) = %v, want %v", tt.input, set.ranges, tt.want)
		}
	}
}

func TestPageRangeSetContains(t *testing.T) {
	set, err := ParsePageRanges("2-4,8")
	if err != nil {
		t.Fatalf("ParsePageRanges failed: %v", err)
	}

	for _, page := range []int{2, 3, 4, 8} {
		if !set.Contains(page) {
			t.Errorf("Expected page %d to be selected", page)
		}
	}
	for _, page := range []int{1, 5, 7, 9} {
		if set.Contains(page) {
			t.Errorf("Expected page %d to be excluded", page)
		}
	}
}

func TestEmptySetSelectsAllPages(t *testing.T) {
	set, err := ParsePageRanges("")
	if err != nil {
		t.Fatalf("ParsePageRanges failed: %v", err)
	}

	if !set.Empty() {
		t.Error("Expected empty set for empty input")
	}
	if !set.Contains(1) || !set.Contains(9999) {
		t.Error("Empty set should contain every page")
	}

	pages := set.Pages(4)
	if !reflect.DeepEqual(pages, []int{1, 2, 3, 4}) {
		t.Errorf("Pages(4) = %v, want [1 2 3 4]", pages)
	}
}

func TestPageRangeSetPages(t *testing.T) {
	set, err := ParsePageRanges("3,1-2,2-4,10")
	if err != nil {
		t.Fatalf("ParsePageRanges failed: %v", err)
	}

	pages := set.Pages(8)
	want := []int{1, 2, 3, 4}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("Pages(8) = %v, want %v (ascending, deduplicated, bounded)", pages, want)
	}
}

func TestValidateAgainstTotal(t *testing.T) {
	set, err := ParsePageRanges("1-5")
	if err != nil {
		t.Fatalf("ParsePageRanges failed: %v", err)
	}

	if err := set.ValidateAgainstTotal(5); err != nil {
		t.Errorf("Expected 1-5 to be valid for 5 pages, got %v", err)
	}
	if err := set.ValidateAgainstTotal(4); err == nil {
		t.Error("Expected 1-5 to be rejected for 4 pages")
	}

	set, err = ParsePageRanges("0-2")
	if err != nil {
		t.Fatalf("ParsePageRanges failed: %v", err)
	}
	if err := set.ValidateAgainstTotal(10); err == nil {
		t.Error("Expected page 0 to be rejected")
	}
}

func TestPageRangeSetString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5", "5"},
		{"1-3,7", "1-3,7"},
		{" 1 - 3 , 7 ", "1-3,7"},
		{"", ""},
	}

	for _, tt := range tests {
		set, err := ParsePageRanges(tt.input)
		if err != nil {
			t.Fatalf("ParsePageRanges(%q) failed: %v", tt.input, err)
		}
		if got := set.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
