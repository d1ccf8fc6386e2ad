package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/lMelkorl/b2bminiui/internal/query"
	"github.com/lMelkorl/b2bminiui/products/models"
)

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

// ListQuery is a normalized product list request.
type ListQuery struct {
	Search   query.Text
	Category string
	Price    query.Range
	Weight   query.Range
	Sort     *query.SortSpec
	Limit    *int
}

// ParseListQuery normalizes params. Filter values never fail: blank, sentinel
// and malformed inputs become absent constraints. Sort direction and limit
// are rejected when they cannot be read.
func ParseListQuery(params models.ListQueryParams) (ListQuery, error) {
	q := ListQuery{
		Search:   query.NewText(params.Search),
		Category: strings.TrimSpace(params.Category),
		Price:    query.ParseRange(params.MinPrice, params.MaxPrice),
		Weight:   query.ParseRange(params.MinWeight, params.MaxWeight),
	}

	// direction is checked even when no sort field is given
	dir, err := query.ParseDirection(params.Order, query.Desc)
	if err != nil {
		return q, err
	}
	if field := strings.TrimSpace(params.Sort); field != "" {
		q.Sort = &query.SortSpec{Field: field, Direction: dir}
	}

	limit, err := query.ParseLimit(params.Limit)
	if err != nil {
		return q, err
	}
	q.Limit = limit
	return q, nil
}

// Predicate builds the filter. knownCategories is the category enumeration the
// category constraint is checked against.
func (q ListQuery) Predicate(knownCategories []string) (query.Predicate[models.Product], error) {
	return query.NewComposer[models.Product]().
		Text("search", q.Search,
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.Description },
			func(p models.Product) string { return p.Material }).
		Enum("category", query.NewEnum(q.Category, knownCategories),
			func(p models.Product) string { return p.Category }).
		Range("price", q.Price,
			func(p models.Product) float64 { return p.Price }).
		Magnitude("weight", q.Weight,
			func(p models.Product) string { return p.Weight }).
		Build()
}

// CacheParams is the normalized form used to key cached results.
func (q ListQuery) CacheParams() map[string]interface{} {
	params := map[string]interface{}{
		"search":   q.Search.Term(),
		"category": q.Category,
		"price":    rangeKey(q.Price),
		"weight":   rangeKey(q.Weight),
		"sort":     nil,
		"limit":    nil,
	}
	if q.Sort != nil {
		params["sort"] = q.Sort.Field + ":" + string(q.Sort.Direction)
	}
	if q.Limit != nil {
		params["limit"] = *q.Limit
	}
	return params
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

// KnownCategories returns the canonical categories followed by any other
// category present in products, in first-seen order.
func KnownCategories(products []models.Product) []string {
	out := append([]string(nil), models.Categories...)
	seen := make(map[string]bool, len(out))
	for _, c := range out {
		seen[c] = true
	}
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// ValidateCreateProductRequest validates the create product request
func ValidateCreateProductRequest(req *models.CreateProductRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := validateCategory(req.Category); err != nil {
		return err
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if req.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

// ValidateUpdateProductRequest validates the fields present in req.
func ValidateUpdateProductRequest(req *models.UpdateProductRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if req.Category != nil {
		if err := validateCategory(*req.Category); err != nil {
			return err
		}
	}
	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("category is required")
	}
	if query.IsSentinel(category) {
		return fmt.Errorf("category %q is reserved", category)
	}
	return nil
}
