package catalog

import (
	"sort"
	"strconv"
	"strings"

	"technest/internal/domain"
)

// Sort orders for Criteria.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Criteria describes one catalog query. Zero value matches everything
// in ascending price order.
type Criteria struct {
	Search   string
	Category string // "" or "All" matches every category
	MinPrice *int   // nil = unbounded
	MaxPrice *int   // nil = unbounded
	Sort     string // SortAsc (default) | SortDesc
}

// ParseBound turns free-text price input into an optional bound.
// Anything that is not a non-negative integer means "no bound" — a
// malformed bound must never silently exclude the whole catalog.
func ParseBound(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// Apply filters and sorts products by criteria. Pure: the input slice is
// never mutated and the result is always freshly allocated.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if c.Category != "" && c.Category != domain.CategoryAll && p.Category != c.Category {
			continue
		}
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	// Stable so equal prices keep their catalog order.
	sort.SliceStable(out, func(i, j int) bool {
		if c.Sort == SortDesc {
			return out[i].Price > out[j].Price
		}
		return out[i].Price < out[j].Price
	})
	return out
}
