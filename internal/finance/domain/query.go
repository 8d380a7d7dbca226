package domain

import "time"

const (
	DefaultPage  = 1
	DefaultLimit = 10

	TimeRangeWeek  = "week"
	TimeRangeMonth = "month"
	TimeRangeYear  = "year"
)

// ListQuery carries the raw list parameters as they arrive on the request.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	Type      string
	Category  string
	TimeRange string
}

// Filter is the storage-ready form of a list query. It is always scoped to
// exactly one owner.
type Filter struct {
	UserID    string
	Search    string
	Type      string
	Category  string
	DateFrom  time.Time
	DateTo    time.Time
	HasDates  bool
	Offset    int
	Limit     int
}

// Normalize applies the documented defaults for page and limit.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
}

// DateRange resolves the named time range against now. An empty range applies
// no date restriction; any unrecognized value falls back to one month.
func (q ListQuery) DateRange(now time.Time) (startDate, endDate time.Time, ok bool) {
	if q.TimeRange == "" {
		return time.Time{}, time.Time{}, false
	}
	switch q.TimeRange {
	case TimeRangeWeek:
		startDate = now.AddDate(0, 0, -7)
	case TimeRangeMonth:
		startDate = now.AddDate(0, -1, 0)
	case TimeRangeYear:
		startDate = now.AddDate(-1, 0, 0)
	default:
		startDate = now.AddDate(0, -1, 0)
	}
	return startDate, now, true
}

// BuildFilter translates the query into a filter scoped to the given owner.
func (q ListQuery) BuildFilter(userID string, now time.Time) Filter {
	q.Normalize()
	filter := Filter{
		UserID:   userID,
		Search:   q.Search,
		Type:     q.Type,
		Category: q.Category,
		Offset:   (q.Page - 1) * q.Limit,
		Limit:    q.Limit,
	}
	if startDate, endDate, ok := q.DateRange(now); ok {
		filter.DateFrom = startDate
		filter.DateTo = endDate
		filter.HasDates = true
	}
	return filter
}
