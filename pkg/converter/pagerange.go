package converter

import (
	"fmt"
	"strconv"
	"strings"
)

// PageRange is an inclusive run of page numbers.
type PageRange struct {
	Start int
	End   int
}

// PageRangeSet holds a page selection such as "1-3,7,12-14". An empty set
// selects every page.
type PageRangeSet struct {
	ranges []PageRange
}

// ParsePageRanges parses a selection string like "1-2,5,10-15". An empty
// string yields an empty set, meaning all pages.
func ParsePageRanges(rangeStr string) (*PageRangeSet, error) {
	set := &PageRangeSet{}

	for _, part := range strings.Split(rangeStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		first, second, isRange := strings.Cut(part, "-")

		start, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %s", part)
		}

		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(second))
			if err != nil {
				return nil, fmt.Errorf("invalid end page: %s", part)
			}
		}

		if start > end {
			return nil, fmt.Errorf("start page (%d) cannot be greater than end page (%d)", start, end)
		}

		set.ranges = append(set.ranges, PageRange{Start: start, End: end})
	}

	return set, nil
}

// Empty reports whether the set selects all pages.
func (prs *PageRangeSet) Empty() bool {
	return len(prs.ranges) == 0
}

// Contains reports whether a page number falls inside the selection. Every
// page is inside an empty selection.
func (prs *PageRangeSet) Contains(pageNum int) bool {
	if prs.Empty() {
		return true
	}
	for _, r := range prs.ranges {
		if pageNum >= r.Start && pageNum <= r.End {
			return true
		}
	}
	return false
}

// Pages enumerates the selected page numbers in ascending order, bounded by
// totalPages. Overlapping ranges contribute a page once.
func (prs *PageRangeSet) Pages(totalPages int) []int {
	var pages []int
	for n := 1; n <= totalPages; n++ {
		if prs.Contains(n) {
			pages = append(pages, n)
		}
	}
	return pages
}

// ValidateAgainstTotal rejects selections that fall outside 1..totalPages.
func (prs *PageRangeSet) ValidateAgainstTotal(totalPages int) error {
	for _, r := range prs.ranges {
		if r.Start < 1 {
			return fmt.Errorf("page numbers must be 1 or greater, got: %d", r.Start)
		}
		if r.End > totalPages {
			return fmt.Errorf("page %d exceeds total pages (%d)", r.End, totalPages)
		}
	}
	return nil
}

// String formats the selection back into its compact form.
func (prs *PageRangeSet) String() string {
	var parts []string
	for _, r := range prs.ranges {
		if r.Start == r.End {
			parts = append(parts, strconv.Itoa(r.Start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", r.Start, r.End))
		}
	}
	return strings.Join(parts, ",")
}
