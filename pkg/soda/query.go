package soda

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// SoQL parameter names of the read operation.
const (
	ParamSelect              = "$select"
	ParamWhere               = "$where"
	ParamOrder               = "$order"
	ParamGroup               = "$group"
	ParamLimit               = "$limit"
	ParamOffset              = "$offset"
	ParamQ                   = "$q"
	ParamQuery               = "$query"
	ParamExcludeSystemFields = "$$exclude_system_fields"
)

// Query holds the parameters of a read. Nil fields are not transmitted; set but
// empty values are.
type Query struct {
	Select *string
	Where  *string
	Order  *string
	Group  *string
	Limit  *int
	Offset *int
	// Q performs a full text search for a value.
	Q *string
	// Query is a full SoQL query string, all as one parameter.
	Query *string
	// ExcludeSystemFields set to false includes :id, :created_at and :updated_at.
	ExcludeSystemFields *bool

	// Accept overrides the Accept header of the request.
	Accept string
	// Format is the content type tag of the resource path. Defaults to json.
	Format Format

	// Filters are column equality filters forwarded verbatim.
	Filters map[string]string
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{}
}

// WithSelect sets $select.
func (q *Query) WithSelect(columns string) *Query {
	q.Select = &columns

	return q
}

// WithWhere sets $where.
func (q *Query) WithWhere(clause string) *Query {
	q.Where = &clause

	return q
}

// WithOrder sets $order.
func (q *Query) WithOrder(order string) *Query {
	q.Order = &order

	return q
}

// WithGroup sets $group.
func (q *Query) WithGroup(group string) *Query {
	q.Group = &group

	return q
}

// WithLimit sets $limit.
func (q *Query) WithLimit(limit int) *Query {
	q.Limit = &limit

	return q
}

// WithOffset sets $offset.
func (q *Query) WithOffset(offset int) *Query {
	q.Offset = &offset

	return q
}

// WithSearch sets the full text search $q.
func (q *Query) WithSearch(text string) *Query {
	q.Q = &text

	return q
}

// WithSoQL sets a complete $query.
func (q *Query) WithSoQL(query string) *Query {
	q.Query = &query

	return q
}

// WithExcludeSystemFields sets $$exclude_system_fields.
func (q *Query) WithExcludeSystemFields(exclude bool) *Query {
	q.ExcludeSystemFields = &exclude

	return q
}

// WithFilter adds a column equality filter.
func (q *Query) WithFilter(column, value string) *Query {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[column] = value

	return q
}

// WithAccept overrides the Accept header.
func (q *Query) WithAccept(accept string) *Query {
	q.Accept = accept

	return q
}

// WithFormat sets the content type tag.
func (q *Query) WithFormat(format Format) *Query {
	q.Format = format

	return q
}

// Copy returns a deep copy of the query.
func (q *Query) Copy() *Query {
	if q == nil {
		return NewQuery()
	}

	q2 := *q
	if q.Filters != nil {
		q2.Filters = make(map[string]string, len(q.Filters))
		for k, v := range q.Filters {
			q2.Filters[k] = v
		}
	}

	return &q2
}

// Params returns the raw parameter mapping. Column filters are merged in first;
// a set SoQL field replaces a filter of the same name, an unset one leaves it.
func (q *Query) Params() map[string]any {
	params := map[string]any{}

	for column, value := range q.Filters {
		params[column] = value
	}

	soql := []struct {
		key   string
		value any
		set   bool
	}{
		{ParamSelect, q.Select, q.Select != nil},
		{ParamWhere, q.Where, q.Where != nil},
		{ParamOrder, q.Order, q.Order != nil},
		{ParamGroup, q.Group, q.Group != nil},
		{ParamLimit, q.Limit, q.Limit != nil},
		{ParamOffset, q.Offset, q.Offset != nil},
		{ParamQ, q.Q, q.Q != nil},
		{ParamQuery, q.Query, q.Query != nil},
		{ParamExcludeSystemFields, q.ExcludeSystemFields, q.ExcludeSystemFields != nil},
	}

	for _, param := range soql {
		if param.set {
			params[param.key] = param.value
		}
	}

	return params
}

// ToValues converts the query to URL query parameters.
func (q *Query) ToValues() url.Values {
	if q == nil {
		return url.Values{}
	}

	return EncodeParams(q.Params())
}

// Discovery filter names accepting multiple values.
const (
	FilterIDs         = "ids"
	FilterDomains     = "domains"
	FilterCategories  = "categories"
	FilterTags        = "tags"
	FilterOnly        = "only"
	FilterSharedTo    = "shared_to"
	FilterColumnNames = "column_names"
)

// Discovery filter names accepting a single value.
const (
	FilterQ                = "q"
	FilterMinShouldMatch   = "min_should_match"
	FilterAttribution      = "attribution"
	FilterLicense          = "license"
	FilterDerivedFrom      = "derived_from"
	FilterProvenance       = "provenance"
	FilterForUser          = "for_user"
	FilterVisibility       = "visibility"
	FilterPublic           = "public"
	FilterPublished        = "published"
	FilterApprovalStatus   = "approval_status"
	FilterExplicitlyHidden = "explicitly_hidden"
	FilterDerived          = "derived"
)

var multiValueFilters = map[string]bool{
	FilterIDs:         true,
	FilterDomains:     true,
	FilterCategories:  true,
	FilterTags:        true,
	FilterOnly:        true,
	FilterSharedTo:    true,
	FilterColumnNames: true,
}

var singleValueFilters = map[string]bool{
	FilterQ:                true,
	FilterMinShouldMatch:   true,
	FilterAttribution:      true,
	FilterLicense:          true,
	FilterDerivedFrom:      true,
	FilterProvenance:       true,
	FilterForUser:          true,
	FilterVisibility:       true,
	FilterPublic:           true,
	FilterPublished:        true,
	FilterApprovalStatus:   true,
	FilterExplicitlyHidden: true,
	FilterDerived:          true,
}

// DatasetsQuery holds the parameters of a discovery listing.
type DatasetsQuery struct {
	// Limit is the maximum number of results. Zero fetches all of them.
	Limit int
	// Offset is the offset of the first result.
	Offset int
	// Order is the field to sort on, optionally suffixed with " ASC" or " DESC".
	Order string
	// Filters maps filter names to their values.
	Filters map[string][]string
}

// NewDatasetsQuery creates an empty discovery query.
func NewDatasetsQuery() *DatasetsQuery {
	return &DatasetsQuery{}
}

// WithLimit sets the maximum number of results.
func (q *DatasetsQuery) WithLimit(limit int) *DatasetsQuery {
	q.Limit = limit

	return q
}

// WithOffset sets the offset of the first result.
func (q *DatasetsQuery) WithOffset(offset int) *DatasetsQuery {
	q.Offset = offset

	return q
}

// WithOrder sets the sort field.
func (q *DatasetsQuery) WithOrder(order string) *DatasetsQuery {
	q.Order = order

	return q
}

// WithFilter appends values to a filter.
func (q *DatasetsQuery) WithFilter(name string, values ...string) *DatasetsQuery {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[name] = append(q.Filters[name], values...)

	return q
}

// Validate rejects unknown filter names and single-valued filters given a number
// of values other than one.
func (q *DatasetsQuery) Validate() error {
	for name, values := range q.Filters {
		switch {
		case multiValueFilters[name]:
		case singleValueFilters[name]:
			if len(values) != 1 {
				return fmt.Errorf("%w: %s got %d values", ErrInvalidFilterValue, name, len(values))
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownFilter, name)
		}
	}

	return nil
}

// ToValues converts the query to URL query parameters for the given domain and
// result offset. Validate must be called first.
func (q *DatasetsQuery) ToValues(domain string, offset int) url.Values {
	values := url.Values{}
	values.Add(FilterDomains, domain)

	if q.Limit != 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	names := make([]string, 0, len(q.Filters))
	for name := range q.Filters {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		for _, value := range q.Filters[name] {
			values.Add(name, value)
		}
	}

	if q.Order != "" {
		values.Set("order", q.Order)
	}

	values.Set("offset", strconv.Itoa(offset))

	return values
}
