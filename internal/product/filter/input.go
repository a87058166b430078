// Package filter turns an advanced product list request into a predicate and an
// ordering for the query layer.
package filter

import (
	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/shopspring/decimal"
)

type SearchField string

const (
	SearchName        SearchField = "name"
	SearchDescription SearchField = "description"
	SearchSKU         SearchField = "sku"
)

type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByCreatedAt SortField = "createdAt"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// DefaultSearchFields applies only when searchFields is absent from the request.
func DefaultSearchFields() []SearchField {
	return []SearchField{SearchName, SearchDescription}
}

// Input is the wire shape of an advanced list request. Every field is optional.
// A nil SearchFields takes the default; an explicit empty list disables search.
type Input struct {
	Page         *int             `json:"page,omitempty" validate:"omitempty,gte=1" msg:"Page must be a positive integer"`
	Limit        *int             `json:"limit,omitempty" validate:"omitempty,gte=1" msg:"Limit must be a positive integer"`
	Search       *string          `json:"search,omitempty"`
	SearchFields []SearchField    `json:"searchFields" validate:"omitempty,dive,oneof=name description sku" msg:"Search fields must be one of: name, description, sku"`
	MinPrice     *decimal.Decimal `json:"minPrice,omitempty" validate:"omitempty,gt=0" msg:"Minimum price must be a positive number"`
	MaxPrice     *decimal.Decimal `json:"maxPrice,omitempty" validate:"omitempty,gt=0" msg:"Maximum price must be a positive number"`
	CategoryIDs  []string         `json:"categoryIds,omitempty"`
	InStock      *bool            `json:"inStock,omitempty"`
	SortBy       *SortField       `json:"sortBy,omitempty" validate:"omitempty,oneof=name price createdAt" msg:"Sort field must be one of: name, price, createdAt"`
	SortOrder    *SortOrder       `json:"sortOrder,omitempty" validate:"omitempty,oneof=asc desc" msg:"Sort order must be one of: asc, desc"`
}

// Filter is a validated Input with every default applied.
type Filter struct {
	Page         int
	Limit        int
	Search       string
	SearchFields []SearchField
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	CategoryIDs  []string
	InStock      *bool
	SortBy       SortField
	SortOrder    SortOrder
}

// Normalize applies defaults. The input must already have passed validation.
func Normalize(in Input) Filter {
	f := Filter{
		Page:         pagination.DefaultPage,
		Limit:        pagination.DefaultLimit,
		SearchFields: in.SearchFields,
		MinPrice:     in.MinPrice,
		MaxPrice:     in.MaxPrice,
		CategoryIDs:  in.CategoryIDs,
		InStock:      in.InStock,
		SortBy:       SortByCreatedAt,
		SortOrder:    Desc,
	}
	if in.Page != nil {
		f.Page = *in.Page
	}
	if in.Limit != nil {
		f.Limit = *in.Limit
	}
	if in.Search != nil {
		f.Search = *in.Search
	}
	if in.SearchFields == nil {
		f.SearchFields = DefaultSearchFields()
	}
	if in.SortBy != nil {
		f.SortBy = *in.SortBy
	}
	if in.SortOrder != nil {
		f.SortOrder = *in.SortOrder
	}
	return f
}
