package pagination

// ArrayFormat selects how a sequence value under one key is serialized into
// query-string tokens.
type ArrayFormat string

const (
	// ArrayFormatRepeat repeats the key for every element: k=v0&k=v1.
	ArrayFormatRepeat ArrayFormat = "repeat"
	// ArrayFormatBrackets appends empty brackets: k[]=v0&k[]=v1.
	ArrayFormatBrackets ArrayFormat = "brackets"
	// ArrayFormatIndices appends the element index: k[0]=v0&k[1]=v1.
	ArrayFormatIndices ArrayFormat = "indices"
	// ArrayFormatComma joins all elements into one token with a literal comma,
	// regardless of the configured separator.
	ArrayFormatComma ArrayFormat = "comma"
	// ArrayFormatSeparator joins all elements into one token using
	// Options.ArraySeparator.
	ArrayFormatSeparator ArrayFormat = "separator"
)

// Valid reports whether f is one of the recognized array formats.
func (f ArrayFormat) Valid() bool {
	switch f {
	case ArrayFormatRepeat, ArrayFormatBrackets, ArrayFormatIndices, ArrayFormatComma, ArrayFormatSeparator:
		return true
	}
	return false
}

// Options controls query-string encoding. The zero value is not meaningful;
// use DefaultOptions and override fields, or pass nil wherever an *Options is
// accepted to get the defaults.
type Options struct {
	// EncodeValues percent-encodes every key and value.
	EncodeValues bool
	// ArrayFormat selects the sequence serialization strategy.
	ArrayFormat ArrayFormat
	// ArraySeparator is the joiner used by ArrayFormatSeparator.
	ArraySeparator string
	// SkipNulls drops entries whose value is nil.
	SkipNulls bool
	// SkipEmptyString drops entries whose value is the empty string.
	SkipEmptyString bool
}

// DefaultOptions returns the default encoding configuration: percent-encoding
// on, repeat array format, comma separator, nulls and empty strings skipped.
func DefaultOptions() *Options {
	return &Options{
		EncodeValues:    true,
		ArrayFormat:     ArrayFormatRepeat,
		ArraySeparator:  ",",
		SkipNulls:       true,
		SkipEmptyString: true,
	}
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}
