package pagination

// Builder accumulates list-query intent into one owned parameter model.
// Methods chain on the same instance; Clone forks an independent copy. The
// first error a method records (an unsupported operator) sticks and surfaces
// from Build, QueryString and URL.
type Builder struct {
	params Params
	err    error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Page sets the page number.
func (b *Builder) Page(n int) *Builder {
	b.params.Page = &n
	return b
}

// Limit sets the page size.
func (b *Builder) Limit(n int) *Builder {
	b.params.Limit = &n
	return b
}

// Search sets the free-text search term.
func (b *Builder) Search(term string) *Builder {
	b.params.Search = &term
	return b
}

// Vacuum sets the vacuum flag.
func (b *Builder) Vacuum(v bool) *Builder {
	b.params.Vacuum = &v
	return b
}

// SearchFields appends the columns the search term applies to.
func (b *Builder) SearchFields(fields ...string) *Builder {
	b.params.SearchFields = append(b.params.SearchFields, fields...)
	return b
}

// Sort appends sort expressions in priority order. Prefix a field with "-"
// for descending, as the wire convention expects.
func (b *Builder) Sort(fields ...string) *Builder {
	b.params.Sort = append(b.params.Sort, fields...)
	return b
}

// IsNull appends fields that must be null.
func (b *Builder) IsNull(fields ...string) *Builder {
	b.params.IsNull = append(b.params.IsNull, fields...)
	return b
}

// IsNotNull appends fields that must not be null.
func (b *Builder) IsNotNull(fields ...string) *Builder {
	b.params.IsNotNull = append(b.params.IsNotNull, fields...)
	return b
}

// Like sets a like filter on field.
func (b *Builder) Like(field, value string) *Builder {
	return b.Filter(OpLike, field, value)
}

// Eq sets an equality filter on field.
func (b *Builder) Eq(field, value string) *Builder {
	return b.Filter(OpEq, field, value)
}

// Gte sets a greater-or-equal filter on field.
func (b *Builder) Gte(field, value string) *Builder {
	return b.Filter(OpGte, field, value)
}

// Gt sets a greater-than filter on field.
func (b *Builder) Gt(field, value string) *Builder {
	return b.Filter(OpGt, field, value)
}

// Lte sets a less-or-equal filter on field.
func (b *Builder) Lte(field, value string) *Builder {
	return b.Filter(OpLte, field, value)
}

// Lt sets a less-than filter on field.
func (b *Builder) Lt(field, value string) *Builder {
	return b.Filter(OpLt, field, value)
}

// LikeOr appends like-any-of values for field.
func (b *Builder) LikeOr(field string, values ...string) *Builder {
	return b.Filter(OpLikeOr, field, values...)
}

// LikeAnd appends like-all-of values for field.
func (b *Builder) LikeAnd(field string, values ...string) *Builder {
	return b.Filter(OpLikeAnd, field, values...)
}

// EqOr appends equals-any-of values for field.
func (b *Builder) EqOr(field string, values ...string) *Builder {
	return b.Filter(OpEqOr, field, values...)
}

// EqAnd appends equals-all-of values for field.
func (b *Builder) EqAnd(field string, values ...string) *Builder {
	return b.Filter(OpEqAnd, field, values...)
}

// In appends in-set values for field.
func (b *Builder) In(field string, values ...string) *Builder {
	return b.Filter(OpIn, field, values...)
}

// NotIn appends not-in-set values for field.
func (b *Builder) NotIn(field string, values ...string) *Builder {
	return b.Filter(OpNotIn, field, values...)
}

// Between sets the [min, max] pair for field, replacing any earlier pair.
func (b *Builder) Between(field, min, max string) *Builder {
	if b.params.Between == nil {
		b.params.Between = make(map[string][]string)
	}
	b.params.Between[field] = []string{min, max}
	return b
}

// Param sets a passthrough key outside the recognized set.
func (b *Builder) Param(key string, value any) *Builder {
	if b.params.Extra == nil {
		b.params.Extra = make(map[string]any)
	}
	b.params.Extra[key] = value
	return b
}

// Filter records operand values under operator[field]. An operator name
// outside the recognized set records an *UnsupportedOperatorError.
func (b *Builder) Filter(operator, field string, values ...string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.params.addFilter(operator, field, values...); err != nil {
		b.err = err
	}
	return b
}

// Clone returns an independent builder holding a deep copy of the staged
// model and any recorded error.
func (b *Builder) Clone() *Builder {
	return &Builder{params: *b.params.Clone(), err: b.err}
}

// Build validates the staged model and returns a copy of it.
func (b *Builder) Build() (*Params, error) {
	if b.err != nil {
		return nil, b.err
	}
	p := b.params.Clone()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// QueryString encodes the staged model.
func (b *Builder) QueryString(opts *Options) (string, error) {
	p, err := b.Build()
	if err != nil {
		return "", err
	}
	return EncodeQueryString(p, opts)
}

// URL encodes the staged model onto base.
func (b *Builder) URL(base string, opts *Options) (string, error) {
	p, err := b.Build()
	if err != nil {
		return "", err
	}
	return EncodeURL(base, p, opts)
}
