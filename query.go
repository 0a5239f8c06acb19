package urlobject

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlobject/internal/constraints"
	"github.com/ghettovoice/urlobject/internal/grammar"
	"github.com/ghettovoice/urlobject/internal/ioutil"
	"github.com/ghettovoice/urlobject/internal/util"
)

// Param is a single query string parameter.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// QueryString represents the query component of a URL (without the leading '?')
// as an ordered sequence of key-value pairs. Keys are not required to be unique.
//
// Pairs are separated by '&' or ';'. A pair without '=' has an empty value.
// Keys and values are kept as written, no percent-decoding is performed,
// and keys are case-sensitive.
//
// QueryString is an immutable value. Every modifying method returns a new QueryString.
// Pairs that are not touched by the modification keep their original text,
// new pairs are rendered as "key=value" and all pairs are joined with '&'.
type QueryString struct {
	raw   string
	pairs []grammar.QueryPair
}

// ParseQuery creates a QueryString from the query string s. It never fails.
func ParseQuery[T constraints.Byteseq](s T) QueryString {
	return QueryString{raw: string(s), pairs: grammar.SplitQuery(string(s))}
}

func (q QueryString) with(pairs []grammar.QueryPair) QueryString {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	cw := ioutil.GetCountingWriter(sb)
	defer ioutil.FreeCountingWriter(cw)
	cw.Join(tokens(pairs), "&")
	return QueryString{raw: sb.String(), pairs: pairs}
}

func tokens(pairs []grammar.QueryPair) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range pairs {
			if !yield(p.Token) {
				return
			}
		}
	}
}

// Len returns the number of pairs.
func (q QueryString) Len() int { return len(q.pairs) }

// Params returns a copy of the pairs in order.
func (q QueryString) Params() []Param {
	if len(q.pairs) == 0 {
		return nil
	}
	params := make([]Param, len(q.pairs))
	for i, p := range q.pairs {
		params[i] = Param{Key: p.Key, Value: p.Value}
	}
	return params
}

// All returns an iterator over the key-value pairs in order.
func (q QueryString) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range q.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Get returns the value of the first pair with the key
// and a bool flag indicating whether such pair exists.
func (q QueryString) Get(key string) (string, bool) {
	i := slices.IndexFunc(q.pairs, func(p grammar.QueryPair) bool { return p.Key == key })
	if i < 0 {
		return "", false
	}
	return q.pairs[i].Value, true
}

// GetAll returns the values of all pairs with the key in order.
// If there are no such pairs, GetAll returns nil.
func (q QueryString) GetAll(key string) []string {
	var vals []string
	for _, p := range q.pairs {
		if p.Key == key {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Has checks whether a pair with the key exists.
func (q QueryString) Has(key string) bool {
	return slices.ContainsFunc(q.pairs, func(p grammar.QueryPair) bool { return p.Key == key })
}

// Dict returns the pairs as a map. If a key repeats, the last value wins.
func (q QueryString) Dict() map[string]string {
	dict := make(map[string]string, len(q.pairs))
	for _, p := range q.pairs {
		dict[p.Key] = p.Value
	}
	return dict
}

// MultiDict returns all values grouped by key, values of a key are kept in order.
func (q QueryString) MultiDict() map[string][]string {
	dict := make(map[string][]string, len(q.pairs))
	for _, p := range q.pairs {
		dict[p.Key] = append(dict[p.Key], p.Value)
	}
	return dict
}

// Add returns a copy of q with the pair appended to the end.
// Existing pairs with the same key are kept.
func (q QueryString) Add(key, value string) QueryString {
	return q.AddParams(Param{Key: key, Value: value})
}

// AddParams returns a copy of q with the pairs appended to the end in order.
func (q QueryString) AddParams(params ...Param) QueryString {
	if len(params) == 0 {
		return q
	}
	pairs := make([]grammar.QueryPair, len(q.pairs), len(q.pairs)+len(params))
	copy(pairs, q.pairs)
	for _, p := range params {
		pairs = append(pairs, grammar.QueryPair{Key: p.Key, Value: p.Value, Token: grammar.QueryToken(p.Key, p.Value)})
	}
	return q.with(pairs)
}

// Set returns a copy of q where all pairs with the key are removed
// and a single new pair is appended to the end.
func (q QueryString) Set(key, value string) QueryString {
	return q.Del(key).Add(key, value)
}

// SetParams returns a copy of q with [QueryString.Set] applied for every parameter in order.
func (q QueryString) SetParams(params ...Param) QueryString {
	for _, p := range params {
		q = q.Set(p.Key, p.Value)
	}
	return q
}

// Del returns a copy of q without the pairs with the key.
// Deleting a missing key returns q unchanged.
func (q QueryString) Del(key string) QueryString {
	return q.DelParams(key)
}

// DelParams returns a copy of q without the pairs with any of the keys.
func (q QueryString) DelParams(keys ...string) QueryString {
	if !slices.ContainsFunc(q.pairs, func(p grammar.QueryPair) bool { return slices.Contains(keys, p.Key) }) {
		return q
	}
	pairs := slices.DeleteFunc(slices.Clone(q.pairs), func(p grammar.QueryPair) bool {
		return slices.Contains(keys, p.Key)
	})
	return q.with(pairs)
}

// RenderTo writes the query string to the provided writer.
func (q QueryString) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, q.raw))
}

// Render returns the query string.
func (q QueryString) Render(*RenderOptions) string { return q.raw }

// String returns the query string.
func (q QueryString) String() string { return q.raw }

// Format implements fmt.Formatter for custom formatting of the QueryString.
func (q QueryString) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, q.raw)
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(q.raw))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, q.raw)
			return
		}

		type hideMethods QueryString
		type QueryString hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), QueryString(q))
		return
	}
}

// Equal reports whether q and val have the same query string, accepting QueryString and *QueryString.
func (q QueryString) Equal(val any) bool {
	var other QueryString
	switch v := val.(type) {
	case QueryString:
		other = v
	case *QueryString:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return q.raw == other.raw
}

// IsZero reports whether the query string is empty.
func (q QueryString) IsZero() bool { return q.raw == "" }

// MarshalText implements [encoding.TextMarshaler].
func (q QueryString) MarshalText() ([]byte, error) { return []byte(q.raw), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (q *QueryString) UnmarshalText(text []byte) error {
	*q = ParseQuery(text)
	return nil
}
