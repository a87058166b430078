package filter

// Build translates a normalized filter into a predicate and an ordering. It is
// pure and never fails: absent fields contribute no clause, an empty category
// list is no clause, and a search without fields is no clause.
func Build(f Filter) (Predicate, Ordering) {
	var pred Predicate

	if f.Search != "" && len(f.SearchFields) > 0 {
		fields := make([]SearchField, len(f.SearchFields))
		copy(fields, f.SearchFields)
		pred.Search = &TextSearch{Term: f.Search, Fields: fields}
	}

	pred.Price = NewPriceRange(f.MinPrice, f.MaxPrice)

	if len(f.CategoryIDs) > 0 {
		ids := make([]string, len(f.CategoryIDs))
		copy(ids, f.CategoryIDs)
		pred.CategoryIDs = ids
	}

	if f.InStock != nil {
		inStock := *f.InStock
		pred.InStock = &inStock
	}

	ordering := DefaultOrdering()
	if f.SortBy != "" {
		ordering.Field = f.SortBy
	}
	if f.SortOrder != "" {
		ordering.Direction = f.SortOrder
	}

	return pred, ordering
}
