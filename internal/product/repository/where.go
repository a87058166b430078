package repository

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
	"github.com/lib/pq"
)

// Whitelisted column names. User input never reaches the SQL text directly.
var (
	searchColumns = map[filter.SearchField]string{
		filter.SearchName:        "p.name",
		filter.SearchDescription: "p.description",
		filter.SearchSKU:         "p.sku",
	}
	sortColumns = map[filter.SortField]string{
		filter.SortByName:      "p.name",
		filter.SortByPrice:     "p.price",
		filter.SortByCreatedAt: "p.created_at",
	}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// buildWhere renders a predicate as a WHERE clause with named parameters.
func buildWhere(pred filter.Predicate) (string, map[string]interface{}) {
	conditions := []string{}
	args := map[string]interface{}{}

	if pred.Search != nil {
		var ors []string
		for _, field := range pred.Search.Fields {
			if col, ok := searchColumns[field]; ok {
				ors = append(ors, col+" ILIKE :search")
			}
		}
		if len(ors) > 0 {
			conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
			args["search"] = "%" + escapeLike(pred.Search.Term) + "%"
		}
	}

	// One clause for the whole range so neither bound can replace the other.
	if r := pred.Price; r != nil {
		switch {
		case r.Min != nil && r.Max != nil:
			conditions = append(conditions, "p.price BETWEEN :min_price AND :max_price")
			args["min_price"] = *r.Min
			args["max_price"] = *r.Max
		case r.Min != nil:
			conditions = append(conditions, "p.price >= :min_price")
			args["min_price"] = *r.Min
		case r.Max != nil:
			conditions = append(conditions, "p.price <= :max_price")
			args["max_price"] = *r.Max
		}
	}

	if len(pred.CategoryIDs) > 0 {
		conditions = append(conditions, "p.category_id = ANY(:category_ids)")
		args["category_ids"] = pq.Array(pred.CategoryIDs)
	}

	if pred.InStock != nil {
		if *pred.InStock {
			conditions = append(conditions, "p.stock_quantity > 0")
		} else {
			conditions = append(conditions, "p.stock_quantity = 0")
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause always ends with p.id so pages are stable when the sort key ties.
func orderClause(o filter.Ordering) string {
	col, ok := sortColumns[o.Field]
	if !ok {
		col = sortColumns[filter.SortByCreatedAt]
	}
	dir := "DESC"
	if o.Direction == filter.Asc {
		dir = "ASC"
	}
	return " ORDER BY " + col + " " + dir + ", p.id ASC"
}
