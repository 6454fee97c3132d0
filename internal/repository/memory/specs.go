package memory

import (
	"studybuddy-be/internal/repository/specification"
)

// querySpecs is the interpreted form of a specification list. The gorm
// backend hands specs to the query builder; here we pull apart the
// concrete types into filter, order, and pagination phases.
type querySpecs struct {
	filters []specification.Specification
	orders  []specification.Specification
	page    *specification.Pagination
}

func parseSpecs(specs []specification.Specification) querySpecs {
	var q querySpecs
	for _, s := range specs {
		switch v := s.(type) {
		case specification.Pagination:
			p := v
			q.page = &p
		case specification.OrderBy, specification.ReviewPriority:
			q.orders = append(q.orders, s)
		default:
			q.filters = append(q.filters, s)
		}
	}
	return q
}

func paginate[T any](items []T, page *specification.Pagination) []T {
	if page == nil {
		return items
	}
	offset := page.Offset
	if offset > len(items) {
		return nil
	}
	items = items[offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}
