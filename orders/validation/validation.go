package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/lMelkorl/b2bminiui/internal/query"
	"github.com/lMelkorl/b2bminiui/orders/models"
)

const dateLayout = "2006-01-02"

// DefaultSort lists the newest orders first.
var DefaultSort = query.SortSpec{Field: "orderDate", Direction: query.Desc}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeListQuery binds raw query values to ListQueryParams.
func DecodeListQuery(values url.Values) (models.ListQueryParams, error) {
	var params models.ListQueryParams
	if err := decoder.Decode(&params, values); err != nil {
		return params, fmt.Errorf("decode query: %w", err)
	}
	return params, nil
}

// ListQuery is a normalized order list request.
type ListQuery struct {
	Search query.Text
	Status query.Enum
	Date   query.TimeRange
	Amount query.Range
	Sort   query.SortSpec
	Limit  *int
}

// ParseListQuery normalizes params. Unreadable dates and amounts are dropped;
// sort direction and limit are rejected when they cannot be read.
func ParseListQuery(params models.ListQueryParams) (ListQuery, error) {
	q := ListQuery{
		Search: query.NewText(params.Search),
		Status: query.NewEnum(params.Status, models.Statuses),
		Date:   query.NewTimeRange(ParseInstant(params.DateStart, false), ParseInstant(params.DateEnd, true)),
		Amount: query.ParseRange(params.MinAmount, params.MaxAmount),
		Sort:   DefaultSort,
	}

	if field := strings.TrimSpace(params.Sort); field != "" {
		q.Sort.Field = field
	}
	dir, err := query.ParseDirection(params.Order, DefaultSort.Direction)
	if err != nil {
		return q, err
	}
	q.Sort.Direction = dir

	limit, err := query.ParseLimit(params.Limit)
	if err != nil {
		return q, err
	}
	q.Limit = limit
	return q, nil
}

// ParseInstant reads an RFC3339 timestamp or a YYYY-MM-DD date (UTC). A date
// used as an upper bound covers the whole day. Unreadable input yields nil.
func ParseInstant(raw string, endOfDay bool) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

// Predicate builds the order filter.
func (q ListQuery) Predicate() (query.Predicate[models.Order], error) {
	return query.NewComposer[models.Order]().
		Text("search", q.Search,
			func(o models.Order) string { return o.ID },
			func(o models.Order) string { return o.CustomerName },
			func(o models.Order) string { return o.CustomerEmail }).
		Enum("status", q.Status,
			func(o models.Order) string { return o.Status }).
		Instant("orderDate", q.Date,
			func(o models.Order) time.Time { return o.OrderDate }).
		Range("totalAmount", q.Amount,
			func(o models.Order) float64 { return o.TotalAmount }).
		Build()
}

// CacheParams is the normalized form used to key cached results.
func (q ListQuery) CacheParams() map[string]interface{} {
	params := map[string]interface{}{
		"search": q.Search.Term(),
		"status": statusKey(q.Status),
		"date":   timeRangeKey(q.Date),
		"amount": rangeKey(q.Amount),
		"sort":   q.Sort.Field + ":" + string(q.Sort.Direction),
		"limit":  nil,
	}
	if q.Limit != nil {
		params["limit"] = *q.Limit
	}
	return params
}

func statusKey(e query.Enum) string {
	switch {
	case !e.Active():
		return ""
	case e.Unknown():
		return "?"
	default:
		return e.Value()
	}
}

func rangeKey(r query.Range) string {
	var b strings.Builder
	if v, ok := r.Min(); ok {
		fmt.Fprintf(&b, "%g", v)
	}
	b.WriteByte('~')
	if v, ok := r.Max(); ok {
		fmt.Fprintf(&b, "%g", v)
	}
	return b.String()
}

func timeRangeKey(r query.TimeRange) string {
	var b strings.Builder
	if v, ok := r.Start(); ok {
		b.WriteString(v.UTC().Format(time.RFC3339Nano))
	}
	b.WriteByte('~')
	if v, ok := r.End(); ok {
		b.WriteString(v.UTC().Format(time.RFC3339Nano))
	}
	return b.String()
}

// ValidateUpdateStatusRequest requires one of the known statuses.
func ValidateUpdateStatusRequest(req *models.UpdateStatusRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if !models.IsValidStatus(req.Status) {
		return fmt.Errorf("status must be one of: %s", strings.Join(models.Statuses, ", "))
	}
	return nil
}
