package document

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxSelection bounds the number of positions a parsed expression may name.
const MaxSelection = 10000

// Selection is an ordered list of 1-based page positions. Duplicates and
// omissions are both legal.
type Selection []int

// Validate checks every position against total before any page is touched.
func (s Selection) Validate(total int) error {
	for _, n := range s {
		if n < 1 || n > total {
			return outOfRange(n, total)
		}
	}
	return nil
}

func (s Selection) set() map[int]bool {
	m := make(map[int]bool, len(s))
	for _, n := range s {
		m[n] = true
	}
	return m
}

// ParseSelection parses a page list expression such as "3,1,2" or "1,4-6".
// Order and duplicates are preserved; "a-b" expands to every page from a to b,
// descending when a > b. An empty expression yields an empty selection.
// Expressions naming more than MaxSelection positions are rejected. Range
// checks against a document happen in Validate, not here.
func ParseSelection(expr string) (Selection, error) {
	var sel Selection

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if start, end, ok := strings.Cut(part, "-"); ok {
			from, err := parsePage(start)
			if err != nil {
				return nil, err
			}
			to, err := parsePage(end)
			if err != nil {
				return nil, err
			}
			if span(from, to) >= uint64(MaxSelection-len(sel)) {
				return nil, tooLong()
			}
			sel = append(sel, expand(from, to)...)
			continue
		}

		n, err := parsePage(part)
		if err != nil {
			return nil, err
		}
		if len(sel) >= MaxSelection {
			return nil, tooLong()
		}
		sel = append(sel, n)
	}

	return sel, nil
}

// String renders the selection as a comma-separated list.
func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func parsePage(token string) (int, error) {
	token = strings.TrimSpace(token)
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a page number", ErrInvalidSelection, token)
	}
	return n, nil
}

func tooLong() error {
	return fmt.Errorf("%w: more than %d pages", ErrInvalidSelection, MaxSelection)
}

// span is the distance between from and to. The unsigned subtraction cannot
// overflow for any pair of ints.
func span(from, to int) uint64 {
	if to >= from {
		return uint64(to) - uint64(from)
	}
	return uint64(from) - uint64(to)
}

// expand assumes span(from, to) has already been bounded.
func expand(from, to int) []int {
	step := 1
	if from > to {
		step = -1
	}

	pages := make([]int, 0, span(from, to)+1)
	for n := from; ; n += step {
		pages = append(pages, n)
		if n == to {
			break
		}
	}
	return pages
}
