package service

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// paginate converts caller-supplied limit/page into limit/skip, applying the
// defaults (limit=10, page=1) and capping limit so unbounded input cannot
// sweep whole collections.
func paginate(limit, page int) (int64, int64) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return int64(limit), int64(page-1) * int64(limit)
}
