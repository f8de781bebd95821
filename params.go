// Package pagination translates structured pagination, sorting, search and
// filter criteria into URL query strings and back. The parameter model mirrors
// the js-query-pagination wire convention: scalar keys (page, limit, search,
// vacuum), flat array keys (searchFields, sort, isnull, isnotnull) and
// operator maps (like, eqor, between, ...) keyed by field name.
package pagination

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Recognized filter operator names.
const (
	OpLike    = "like"
	OpLikeOr  = "likeor"
	OpLikeAnd = "likeand"
	OpEq      = "eq"
	OpEqOr    = "eqor"
	OpEqAnd   = "eqand"
	OpGte     = "gte"
	OpGt      = "gt"
	OpLte     = "lte"
	OpLt      = "lt"
	OpIn      = "in"
	OpNotIn   = "notin"
	OpBetween = "between"
)

// singleValueOperators map one field to one operand. The encoder emits
// op[field]=value tokens for them instead of applying the array-format rule.
var singleValueOperators = map[string]bool{
	OpLike: true, OpEq: true, OpGte: true, OpGt: true, OpLte: true, OpLt: true,
}

// multiValueOperators map one field to an operand sequence.
var multiValueOperators = map[string]bool{
	OpLikeOr: true, OpLikeAnd: true, OpEqOr: true, OpEqAnd: true,
	OpIn: true, OpNotIn: true, OpBetween: true,
}

// KnownOperator reports whether op names a recognized filter operator.
func KnownOperator(op string) bool {
	return singleValueOperators[op] || multiValueOperators[op]
}

// knownKeyOrder is the canonical top-level encoding order. Extras follow,
// sorted by key.
var knownKeyOrder = []string{
	"page", "limit", "search", "vacuum",
	"searchFields", "sort", "isnull", "isnotnull",
	OpLike, OpLikeOr, OpLikeAnd,
	OpEq, OpEqOr, OpEqAnd,
	OpGte, OpGt, OpLte, OpLt,
	OpIn, OpNotIn, OpBetween,
}

// Params is the parameter model: a transient value object describing one
// list-query intent. Scalar fields are pointers so that absent and zero are
// distinguishable. Operator maps hold operand sequences even for single-value
// operators (single-element slices); the decoder's scalar-to-array promotion
// then needs no separate representation. Unrecognized top-level keys pass
// through Extra untouched.
type Params struct {
	Page   *int
	Limit  *int
	Search *string
	Vacuum *bool

	SearchFields []string
	Sort         []string
	IsNull       []string
	IsNotNull    []string

	Like    map[string][]string
	LikeOr  map[string][]string
	LikeAnd map[string][]string
	Eq      map[string][]string
	EqOr    map[string][]string
	EqAnd   map[string][]string
	Gte     map[string][]string
	Gt      map[string][]string
	Lte     map[string][]string
	Lt      map[string][]string
	In      map[string][]string
	NotIn   map[string][]string
	Between map[string][]string

	Extra map[string]any
}

// operatorField returns a pointer to the operator map for op, or nil when op
// is not a recognized operator.
func (p *Params) operatorField(op string) *map[string][]string {
	switch op {
	case OpLike:
		return &p.Like
	case OpLikeOr:
		return &p.LikeOr
	case OpLikeAnd:
		return &p.LikeAnd
	case OpEq:
		return &p.Eq
	case OpEqOr:
		return &p.EqOr
	case OpEqAnd:
		return &p.EqAnd
	case OpGte:
		return &p.Gte
	case OpGt:
		return &p.Gt
	case OpLte:
		return &p.Lte
	case OpLt:
		return &p.Lt
	case OpIn:
		return &p.In
	case OpNotIn:
		return &p.NotIn
	case OpBetween:
		return &p.Between
	}
	return nil
}

// addFilter appends operand values under op[field]. Single-value operators
// overwrite, multi-value operators append.
func (p *Params) addFilter(op, field string, values ...string) error {
	f := p.operatorField(op)
	if f == nil {
		return &UnsupportedOperatorError{Operator: op}
	}
	if *f == nil {
		*f = make(map[string][]string)
	}
	if singleValueOperators[op] {
		(*f)[field] = values
	} else {
		(*f)[field] = append((*f)[field], values...)
	}
	return nil
}

// Validate checks the pagination scalars: page and limit, when present, must
// be positive integers. It fails fast on the first violation and checks
// nothing else; the model is an open mapping.
func (p *Params) Validate() error {
	if p.Page != nil && *p.Page < 1 {
		return &RangeError{Field: "page", Value: *p.Page}
	}
	if p.Limit != nil && *p.Limit < 1 {
		return &RangeError{Field: "limit", Value: *p.Limit}
	}
	return nil
}

// Clone returns a deep copy of the model.
func (p *Params) Clone() *Params {
	c := &Params{}
	c.Page = cloneScalar(p.Page)
	c.Limit = cloneScalar(p.Limit)
	c.Search = cloneScalar(p.Search)
	c.Vacuum = cloneScalar(p.Vacuum)
	c.SearchFields = cloneSlice(p.SearchFields)
	c.Sort = cloneSlice(p.Sort)
	c.IsNull = cloneSlice(p.IsNull)
	c.IsNotNull = cloneSlice(p.IsNotNull)
	for _, op := range knownKeyOrder {
		src := p.operatorField(op)
		if src == nil || *src == nil {
			continue
		}
		dst := c.operatorField(op)
		*dst = make(map[string][]string, len(*src))
		for field, vals := range *src {
			(*dst)[field] = cloneSlice(vals)
		}
	}
	if p.Extra != nil {
		c.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

func cloneScalar[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// ToMap renders the model in the generic-object shape accepted by
// ParseObject: scalars as int/string/bool, flat arrays as []string, operator
// maps as map[string]any with a plain string for single-element single-value
// operators and []string otherwise.
func (p *Params) ToMap() map[string]any {
	m := make(map[string]any)
	if p.Page != nil {
		m["page"] = *p.Page
	}
	if p.Limit != nil {
		m["limit"] = *p.Limit
	}
	if p.Search != nil {
		m["search"] = *p.Search
	}
	if p.Vacuum != nil {
		m["vacuum"] = *p.Vacuum
	}
	if len(p.SearchFields) > 0 {
		m["searchFields"] = cloneSlice(p.SearchFields)
	}
	if len(p.Sort) > 0 {
		m["sort"] = cloneSlice(p.Sort)
	}
	if len(p.IsNull) > 0 {
		m["isnull"] = cloneSlice(p.IsNull)
	}
	if len(p.IsNotNull) > 0 {
		m["isnotnull"] = cloneSlice(p.IsNotNull)
	}
	for op := range singleValueOperators {
		addOperatorToMap(m, op, *p.operatorField(op), true)
	}
	for op := range multiValueOperators {
		addOperatorToMap(m, op, *p.operatorField(op), false)
	}
	for k, v := range p.Extra {
		m[k] = v
	}
	return m
}

func addOperatorToMap(m map[string]any, op string, filters map[string][]string, single bool) {
	if len(filters) == 0 {
		return
	}
	out := make(map[string]any, len(filters))
	for field, vals := range filters {
		if single && len(vals) == 1 {
			out[field] = vals[0]
		} else {
			out[field] = cloneSlice(vals)
		}
	}
	m[op] = out
}

// MarshalJSON renders the model through ToMap.
func (p *Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// UnmarshalJSON parses and validates through ParseJSON.
func (p *Params) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// ParseObject validates that v is a non-nil mapping and assembles a parameter
// model from it, applying the page/limit scalar rules.
func ParseObject(v any) (*Params, error) {
	if v == nil {
		return nil, &ShapeError{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &ShapeError{Got: v}
	}
	return fromMap(m)
}

// ParseJSON parses data as a JSON document and assembles a parameter model.
// A malformed document yields a *ParseError wrapping the JSON error.
func ParseJSON(data []byte) (*Params, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Err: err}
	}
	if m == nil {
		return nil, &ShapeError{}
	}
	return fromMap(m)
}

// fromMap assembles a Params from a generic mapping. Known keys are coerced
// to their canonical shapes; everything else passes through Extra.
func fromMap(m map[string]any) (*Params, error) {
	p := &Params{}
	for key, value := range m {
		switch key {
		case "page":
			n, err := toInt("page", value)
			if err != nil {
				return nil, err
			}
			p.Page = &n
		case "limit":
			n, err := toInt("limit", value)
			if err != nil {
				return nil, err
			}
			p.Limit = &n
		case "search":
			s := stringify(value)
			p.Search = &s
		case "vacuum":
			b := toBool(value)
			p.Vacuum = &b
		case "searchFields":
			p.SearchFields = toStringSlice(value)
		case "search_fields":
			// The canonical spelling wins when a document carries both.
			if _, ok := m["searchFields"]; !ok {
				p.SearchFields = toStringSlice(value)
			}
		case "sort":
			p.Sort = toStringSlice(value)
		case "isnull":
			p.IsNull = toStringSlice(value)
		case "isnotnull":
			p.IsNotNull = toStringSlice(value)
		default:
			if KnownOperator(key) {
				filters, ok := value.(map[string]any)
				if !ok {
					return nil, &ShapeError{Got: value}
				}
				for field, operand := range filters {
					if err := p.addFilter(key, field, toStringSlice(operand)...); err != nil {
						return nil, err
					}
				}
				continue
			}
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[key] = value
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// toInt accepts the integer shapes a JSON document or caller can supply.
// Anything that is not an integral number is a range violation for field.
func toInt(field string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, &RangeError{Field: field, Value: v}
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &RangeError{Field: field, Value: v}
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, &RangeError{Field: field, Value: v}
		}
		return i, nil
	}
	return 0, &RangeError{Field: field, Value: v}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}

// toStringSlice normalizes an operand into a string sequence: sequences map
// element-wise, scalars wrap into a single-element sequence.
func toStringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return cloneSlice(vals)
	case []any:
		out := make([]string, len(vals))
		for i, e := range vals {
			out[i] = stringify(e)
		}
		return out
	case nil:
		return nil
	}
	return []string{stringify(v)}
}

// stringify renders an operand value the way it should appear on the wire.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
