package filter

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

// Predicate is a conjunction of optional clauses. A nil or empty clause matches everything.
type Predicate struct {
	Search      *TextSearch
	Price       *PriceRange
	CategoryIDs []string
	InStock     *bool
}

// TextSearch matches when any of Fields contains Term, case-insensitively.
type TextSearch struct {
	Term   string
	Fields []SearchField
}

// PriceRange is inclusive on both ends; a nil bound is open.
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// NewPriceRange returns nil when neither bound is set.
func NewPriceRange(min, max *decimal.Decimal) *PriceRange {
	if min == nil && max == nil {
		return nil
	}
	return &PriceRange{Min: min, Max: max}
}

func (r *PriceRange) Contains(price decimal.Decimal) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && price.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && price.GreaterThan(*r.Max) {
		return false
	}
	return true
}

func (p Predicate) IsEmpty() bool {
	return p.Search == nil && p.Price == nil && len(p.CategoryIDs) == 0 && p.InStock == nil
}

// Matches evaluates the predicate against one product in memory.
func (p Predicate) Matches(prod *model.Product) bool {
	if p.Search != nil && !p.Search.matches(prod) {
		return false
	}
	if !p.Price.Contains(prod.Price) {
		return false
	}
	if len(p.CategoryIDs) > 0 && !containsCategory(p.CategoryIDs, prod.CategoryID) {
		return false
	}
	if p.InStock != nil && *p.InStock != prod.InStock() {
		return false
	}
	return true
}

func (s *TextSearch) matches(prod *model.Product) bool {
	if s.Term == "" || len(s.Fields) == 0 {
		return true
	}
	term := strings.ToLower(s.Term)
	for _, field := range s.Fields {
		var value string
		switch field {
		case SearchName:
			value = prod.Name
		case SearchDescription:
			value = prod.Description
		case SearchSKU:
			value = prod.SKU
		}
		if strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}
	return false
}

func containsCategory(ids []string, categoryID *string) bool {
	if categoryID == nil {
		return false
	}
	for _, id := range ids {
		if id == *categoryID {
			return true
		}
	}
	return false
}

// Ordering is a single-key sort.
type Ordering struct {
	Field     SortField
	Direction SortOrder
}

func DefaultOrdering() Ordering {
	return Ordering{Field: SortByCreatedAt, Direction: Desc}
}

// Compare orders a before b when the result is negative. Ties fall back to ID so
// paging is stable.
func (o Ordering) Compare(a, b *model.Product) int {
	var c int
	switch o.Field {
	case SortByName:
		c = strings.Compare(a.Name, b.Name)
	case SortByPrice:
		c = a.Price.Cmp(b.Price)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if o.Direction == Desc {
		c = -c
	}
	if c == 0 {
		c = strings.Compare(a.ID, b.ID)
	}
	return c
}
