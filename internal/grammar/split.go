package grammar

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlobject/internal/errorutil"
	"github.com/ghettovoice/urlobject/internal/util"
)

// URLParts holds the top-level components of a URL as they are written in the source.
type URLParts struct {
	Scheme    string
	Authority string
	Path      string
	Query     string
	Fragment  string
	// HasAuthority is set when the source contains the "//" marker,
	// even if the authority itself is empty (like in "file:///etc").
	HasAuthority bool
}

// SplitURL splits s into URL components.
// It never fails: any input yields some combination of components.
//
//	scheme ":" [ "//" authority ] path [ "?" query ] [ "#" fragment ]
//
// The scheme is recognized only when the text before the first ':' starts with
// a letter and contains only letters, digits, '+', '-' and '.'.
// The authority runs up to the first '/', '?' or '#'.
func SplitURL(s string) URLParts {
	var p URLParts
	if i := strings.IndexByte(s, ':'); i > 0 && isSchemePrefix(s[:i]) {
		p.Scheme, s = s[:i], s[i+1:]
	}
	if strings.HasPrefix(s, "//") {
		s = s[2:]
		end := strings.IndexAny(s, "/?#")
		if end < 0 {
			end = len(s)
		}
		p.Authority, s = s[:end], s[end:]
		p.HasAuthority = true
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s, p.Fragment = s[:i], s[i+1:]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s, p.Query = s[:i], s[i+1:]
	}
	p.Path = s
	return p
}

// JoinURL assembles URL components back into a string.
// Separators are emitted only for non-empty components, except the "//" marker
// which is also kept when p.HasAuthority is set or when the path itself
// starts with "//". A relative path whose first segment looks like a scheme
// is prefixed with "./".
func JoinURL(p URLParts) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if p.Scheme != "" {
		sb.WriteString(p.Scheme)
		sb.WriteByte(':')
	}
	if p.Authority != "" || p.HasAuthority || strings.HasPrefix(p.Path, "//") {
		sb.WriteString("//")
		sb.WriteString(p.Authority)
		if p.Path != "" && p.Path[0] != '/' {
			sb.WriteByte('/')
		}
	} else if p.Scheme == "" && hasSchemeLikeSegment(p.Path) {
		sb.WriteString("./")
	}
	sb.WriteString(p.Path)
	if p.Query != "" {
		sb.WriteByte('?')
		sb.WriteString(p.Query)
	}
	if p.Fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(p.Fragment)
	}
	return sb.String()
}

// hasSchemeLikeSegment reports whether the path would be split as a scheme.
func hasSchemeLikeSegment(path string) bool {
	i := strings.IndexByte(path, ':')
	return i > 0 && isSchemePrefix(path[:i])
}

// AuthorityParts holds the authority sub-components as written in the source.
type AuthorityParts struct {
	Username    string
	Password    string
	HasPassword bool
	// Host is kept with IPv6 brackets, see [AuthorityParts.Hostname].
	Host    string
	Port    string
	HasPort bool
}

// Hostname returns the host with IPv6 literal brackets removed.
func (p AuthorityParts) Hostname() string {
	if len(p.Host) >= 2 && p.Host[0] == '[' && p.Host[len(p.Host)-1] == ']' {
		return p.Host[1 : len(p.Host)-1]
	}
	return p.Host
}

// SplitAuthority splits the authority s into user-info and host-port parts.
//
//	[ username [ ":" password ] "@" ] host [ ":" port ]
//
// User-info ends at the last '@'. The username ends at the first ':' of the user-info.
// A host starting with '[' runs through the closing ']'.
func SplitAuthority(s string) AuthorityParts {
	var p AuthorityParts
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		ui := s[:i]
		s = s[i+1:]
		if j := strings.IndexByte(ui, ':'); j >= 0 {
			p.Username, p.Password, p.HasPassword = ui[:j], ui[j+1:], true
		} else {
			p.Username = ui
		}
	}

	if strings.HasPrefix(s, "[") {
		if j := strings.IndexByte(s, ']'); j >= 0 {
			p.Host, s = s[:j+1], s[j+1:]
			if i := strings.IndexByte(s, ':'); i >= 0 {
				p.Host += s[:i]
				p.Port, p.HasPort = s[i+1:], true
			} else {
				p.Host += s
			}
			return p
		}
		p.Host = s
		return p
	}

	if i := strings.IndexByte(s, ':'); i >= 0 {
		p.Host, p.Port, p.HasPort = s[:i], s[i+1:], true
	} else {
		p.Host = s
	}
	return p
}

// JoinAuthority assembles authority sub-components back into a string.
// The user-info is emitted only when the username is non-empty, so a password
// without a username is dropped.
func JoinAuthority(p AuthorityParts) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if p.Username != "" {
		sb.WriteString(p.Username)
		if p.HasPassword {
			sb.WriteByte(':')
			sb.WriteString(p.Password)
		}
		sb.WriteByte('@')
	}
	if strings.IndexByte(p.Host, ':') >= 0 && !strings.HasPrefix(p.Host, "[") {
		sb.WriteByte('[')
		sb.WriteString(p.Host)
		sb.WriteByte(']')
	} else {
		sb.WriteString(p.Host)
	}
	if p.HasPort {
		sb.WriteByte(':')
		sb.WriteString(p.Port)
	}
	return sb.String()
}

// ParsePort converts the port segment s into a number.
// Empty s means no port. Anything other than a decimal number in range
// 0-65535 results in an [ErrMalformedPort] error.
func ParsePort(s string) (port uint16, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	if !IsPort(s) {
		return 0, false, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedPort, "%q is not a number", s))
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedPort, "%q is out of range", s))
	}
	return uint16(n), true, nil
}

// QueryPair is a single key-value pair of a query string.
// Token is the source text of the pair.
type QueryPair struct {
	Key, Value, Token string
}

// SplitQuery splits the query string s into pairs on '&' and ';'.
// Empty tokens are skipped. A token without '=' has an empty value.
// No percent-decoding is performed.
func SplitQuery(s string) []QueryPair {
	if s == "" {
		return nil
	}

	pairs := make([]QueryPair, 0, strings.Count(s, "&")+strings.Count(s, ";")+1)
	for tok := range strings.FieldsFuncSeq(s, isQuerySep) {
		k, v, _ := strings.Cut(tok, "=")
		pairs = append(pairs, QueryPair{Key: k, Value: v, Token: tok})
	}
	return pairs
}

func isQuerySep(r rune) bool { return r == '&' || r == ';' }

// QueryToken renders a key-value pair as a query token.
func QueryToken(key, value string) string { return key + "=" + value }
