package pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// PageRange is an inclusive, 1-based page span.
type PageRange struct {
	Start, End int
}

func (r PageRange) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Pages returns the number of pages r selects.
func (r PageRange) Pages() int { return r.End - r.Start + 1 }

// ParseRanges reads a comma separated list such as "1-3, 5, 7-9".
// Order and repetition are preserved.
func ParseRanges(s string) ([]PageRange, error) {
	var out []PageRange
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isSpan := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: please enter valid page numbers", ErrInvalidRange, i+1)
		}
		end := start
		if isSpan {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("%w: range %d: please enter valid page numbers", ErrInvalidRange, i+1)
			}
		}
		out = append(out, PageRange{Start: start, End: end})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: please add at least one page range", ErrInvalidRange)
	}
	return out, nil
}

// ValidateRanges checks every range against a document of total pages.
func ValidateRanges(ranges []PageRange, total int) error {
	if len(ranges) == 0 {
		return fmt.Errorf("%w: please add at least one page range", ErrInvalidRange)
	}
	for i, r := range ranges {
		switch {
		case r.Start < 1 || r.End < 1:
			return fmt.Errorf("%w: range %d: page numbers must be positive", ErrInvalidRange, i+1)
		case r.Start > total || r.End > total:
			return fmt.Errorf("%w: range %d: page numbers cannot exceed %d", ErrInvalidRange, i+1, total)
		case r.Start > r.End:
			return fmt.Errorf("%w: range %d: start page cannot be greater than end page", ErrInvalidRange, i+1)
		}
	}
	return nil
}

// FormatRanges joins ranges for display, e.g. "1-3, 5".
func FormatRanges(ranges []PageRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

// TotalPages sums the pages selected by ranges.
func TotalPages(ranges []PageRange) int {
	n := 0
	for _, r := range ranges {
		n += r.Pages()
	}
	return n
}
