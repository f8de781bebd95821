package pagination

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Key-shape classification, checked in precedence order: indexed array,
// nested array, nested scalar, bare array. Base and field names never
// contain brackets.
var (
	indexedKeyRe  = regexp.MustCompile(`^([^\[\]]+)\[(\d+)\]$`)
	nestedArrayRe = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]\[\]$`)
	nestedKeyRe   = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]$`)
	bareArrayRe   = regexp.MustCompile(`^([^\[\]]+)\[\]$`)
)

// flatArrayKeys are the top-level keys whose repeated occurrences accumulate
// into a sequence instead of last-occurrence-wins.
var flatArrayKeys = map[string]bool{
	"sort": true, "searchFields": true, "search_fields": true,
	"isnull": true, "isnotnull": true,
}

// DecodeQueryString reconstructs a parameter model from a raw query string.
// It is the structural inverse of EncodeQueryString for the repeat, brackets
// and indices array formats; the comma and separator formats collapse into
// opaque scalars and do not round-trip. The assembled model is validated
// before it is returned.
func DecodeQueryString(raw string) (*Params, error) {
	raw = strings.TrimPrefix(raw, "?")
	m := make(map[string]any)
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if err := assign(m, key, value); err != nil {
			return nil, err
		}
	}
	for key, v := range m {
		if seq, ok := v.(indexedValues); ok {
			m[key] = seq.dense()
		}
	}
	return fromMap(m)
}

// indexedValues collects base[idx]=value entries until the whole query string
// is consumed; duplicate indices keep the last value.
type indexedValues map[int]string

// dense materializes the collected values in numeric index order. The slice
// is sized by the number of entries, never by the index values themselves, so
// decode cost stays proportional to the input.
func (iv indexedValues) dense() []string {
	indices := make([]int, 0, len(iv))
	for idx := range iv {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = iv[idx]
	}
	return out
}

// assign classifies key by shape and folds value into the working mapping.
func assign(m map[string]any, key, value string) error {
	if match := indexedKeyRe.FindStringSubmatch(key); match != nil {
		idx, err := strconv.Atoi(match[2])
		if err != nil {
			return &ParseError{Err: fmt.Errorf("array index %q: %w", key, err)}
		}
		seq, ok := m[match[1]].(indexedValues)
		if !ok {
			seq = make(indexedValues)
			m[match[1]] = seq
		}
		seq[idx] = value
		return nil
	}
	if match := nestedArrayRe.FindStringSubmatch(key); match != nil {
		nested := ensureNested(m, match[1])
		nested[match[2]] = append(asSequence(nested[match[2]]), value)
		return nil
	}
	if match := nestedKeyRe.FindStringSubmatch(key); match != nil {
		nested := ensureNested(m, match[1])
		switch existing := nested[match[2]].(type) {
		case nil:
			nested[match[2]] = value
		case string:
			// Repeated nested scalar promotes to a sequence.
			nested[match[2]] = []string{existing, value}
		case []string:
			nested[match[2]] = append(existing, value)
		}
		return nil
	}
	if match := bareArrayRe.FindStringSubmatch(key); match != nil {
		m[match[1]] = append(asSequence(m[match[1]]), value)
		return nil
	}
	if flatArrayKeys[key] {
		m[key] = append(asSequence(m[key]), value)
		return nil
	}
	m[key] = value
	return nil
}

func ensureNested(m map[string]any, base string) map[string]any {
	nested, ok := m[base].(map[string]any)
	if !ok {
		nested = make(map[string]any)
		m[base] = nested
	}
	return nested
}

func asSequence(v any) []string {
	switch seq := v.(type) {
	case []string:
		return seq
	case string:
		return []string{seq}
	}
	return nil
}
