package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// EncodeQueryString validates p and serializes it into a query string. Known
// keys encode in canonical order, passthrough extras follow sorted by key, and
// an all-skippable model yields the empty string.
func EncodeQueryString(p *Params, opts *Options) (string, error) {
	if p == nil {
		return "", nil
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	o := opts.orDefault()
	enc := encoder{opts: o}

	if p.Page != nil {
		enc.scalar("page", strconv.Itoa(*p.Page))
	}
	if p.Limit != nil {
		enc.scalar("limit", strconv.Itoa(*p.Limit))
	}
	if p.Search != nil && !(o.SkipEmptyString && *p.Search == "") {
		enc.scalar("search", *p.Search)
	}
	if p.Vacuum != nil {
		enc.scalar("vacuum", strconv.FormatBool(*p.Vacuum))
	}
	// Single fixed rename for wire-format compatibility; no general
	// camel-to-snake transform exists.
	enc.array("search_fields", p.SearchFields)
	enc.array("sort", p.Sort)
	enc.array("isnull", p.IsNull)
	enc.array("isnotnull", p.IsNotNull)

	for _, op := range knownKeyOrder {
		filters := p.operatorField(op)
		if filters == nil || len(*filters) == 0 {
			continue
		}
		for _, field := range sortedKeys(*filters) {
			key := op + "[" + field + "]"
			values := (*filters)[field]
			if singleValueOperators[op] {
				// Single-value operators carry scalar operands; several
				// values (decoder leniency) repeat the composite key.
				for _, v := range values {
					if o.SkipEmptyString && v == "" {
						continue
					}
					enc.scalar(key, v)
				}
			} else {
				enc.array(key, values)
			}
		}
	}

	for _, key := range sortedKeys(p.Extra) {
		enc.generic(key, p.Extra[key])
	}
	return strings.Join(enc.tokens, "&"), nil
}

// EncodeURL appends the encoded query string to base, joining with "&" when
// base already carries a query and "?" otherwise. An empty encoding returns
// base unchanged.
func EncodeURL(base string, p *Params, opts *Options) (string, error) {
	qs, err := EncodeQueryString(p, opts)
	if err != nil {
		return "", err
	}
	if qs == "" {
		return base, nil
	}
	if strings.Contains(base, "?") {
		return base + "&" + qs, nil
	}
	return base + "?" + qs, nil
}

type encoder struct {
	opts   *Options
	tokens []string
}

func (e *encoder) escape(s string) string {
	if e.opts.EncodeValues {
		return url.QueryEscape(s)
	}
	return s
}

func (e *encoder) scalar(key, value string) {
	e.tokens = append(e.tokens, e.escape(key)+"="+e.escape(value))
}

// array applies the configured array-format rule to a sequence value. Empty
// sequences emit nothing. For the joined formats the joiner goes in raw,
// between already-escaped elements.
func (e *encoder) array(key string, values []string) {
	if len(values) == 0 {
		return
	}
	switch e.opts.ArrayFormat {
	case ArrayFormatBrackets:
		for _, v := range values {
			e.scalar(key+"[]", v)
		}
	case ArrayFormatIndices:
		for i, v := range values {
			e.scalar(key+"["+strconv.Itoa(i)+"]", v)
		}
	case ArrayFormatComma, ArrayFormatSeparator:
		sep := ","
		if e.opts.ArrayFormat == ArrayFormatSeparator {
			sep = e.opts.ArraySeparator
		}
		escaped := make([]string, len(values))
		for i, v := range values {
			escaped[i] = e.escape(v)
		}
		e.tokens = append(e.tokens, e.escape(key)+"="+strings.Join(escaped, sep))
	default: // ArrayFormatRepeat
		for _, v := range values {
			e.scalar(key, v)
		}
	}
}

// generic encodes a passthrough entry: scalars as one token, sequences via
// the array-format rule, nested mappings via composite keys.
func (e *encoder) generic(key string, value any) {
	switch v := value.(type) {
	case nil:
		if e.opts.SkipNulls {
			return
		}
		e.scalar(key, "")
	case string:
		if e.opts.SkipEmptyString && v == "" {
			return
		}
		e.scalar(key, v)
	case []string:
		e.array(key, v)
	case []any:
		e.array(key, toStringSlice(v))
	case map[string]any:
		for _, field := range sortedKeys(v) {
			e.generic(key+"["+field+"]", v[field])
		}
	case map[string][]string:
		for _, field := range sortedKeys(v) {
			e.array(key+"["+field+"]", v[field])
		}
	default:
		e.scalar(key, stringify(v))
	}
}
