package urlobject

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlobject/internal/constraints"
	"github.com/ghettovoice/urlobject/internal/grammar"
	"github.com/ghettovoice/urlobject/internal/util"
)

// RenderOptions contains options for rendering URLs and their components.
type RenderOptions struct {
	// HidePassword replaces the user-info password with a mask.
	// Useful when a URL is written to logs.
	HidePassword bool `json:"hide_password,omitempty"`
}

// URL is an immutable URL value.
//
// URL holds the raw URL string and exposes its components as read-only views:
//
//	scheme ":" [ "//" netloc ] path [ "?" query ] [ "#" fragment ]
//
// Every With*/Without* method returns a new URL built by splitting the URL,
// replacing exactly one component and joining the components back.
// The text of all other components is preserved byte for byte.
// URL values are comparable and safe for concurrent use.
type URL struct {
	raw   string
	parts grammar.URLParts
}

// New creates a URL from the string s. It never fails and never validates:
// malformed input results in empty components.
func New(s string) URL {
	return URL{raw: s, parts: grammar.SplitURL(s)}
}

// Parse creates a URL from the given input s (string or []byte). See [New].
func Parse[T constraints.Byteseq](s T) URL { return New(string(s)) }

// Scheme returns the scheme as written in the URL or empty string if there is no scheme.
func (u URL) Scheme() string { return u.parts.Scheme }

// Netloc returns the authority component.
func (u URL) Netloc() Netloc { return ParseNetloc(u.parts.Authority) }

// Path returns the path component.
func (u URL) Path() Path { return Path(u.parts.Path) }

// Query returns the query component.
func (u URL) Query() QueryString { return ParseQuery(u.parts.Query) }

// Fragment returns the fragment or empty string if there is no fragment.
func (u URL) Fragment() string { return u.parts.Fragment }

// Username returns the username of the authority component.
func (u URL) Username() string { return u.Netloc().Username() }

// Password returns the password of the authority component,
// in case it is set, and a bool flag indicating whether it is set.
func (u URL) Password() (string, bool) { return u.Netloc().Password() }

// Hostname returns the host of the authority component without IPv6 brackets.
func (u URL) Hostname() string { return u.Netloc().Hostname() }

// Port returns the explicit port of the URL. See [Netloc.Port].
func (u URL) Port() (uint16, bool, error) { return errtrace.Wrap3(u.Netloc().Port()) }

// Auth returns the user-info of the authority component.
func (u URL) Auth() UserInfo { return u.Netloc().Auth() }

// DefaultPort returns the destination port of the URL.
// If no port is given explicitly, the default port of the scheme is looked up
// in [DefaultPorts]. If neither source yields a port, ok is false.
// A malformed explicit port results in an error matching [ErrMalformedPort].
func (u URL) DefaultPort() (port uint16, ok bool, err error) {
	return errtrace.Wrap3(u.DefaultPortFrom(DefaultPorts))
}

// DefaultPortFrom is like [URL.DefaultPort] but looks up the scheme port in r.
func (u URL) DefaultPortFrom(r PortResolver) (port uint16, ok bool, err error) {
	port, ok, err = u.Port()
	if err != nil {
		return 0, false, errtrace.Wrap(err)
	}
	if ok {
		return port, true, nil
	}
	if r == nil || u.parts.Scheme == "" {
		return 0, false, nil
	}
	port, ok = r.LookupPort(util.LCase(u.parts.Scheme))
	return port, ok, nil
}

func (u URL) replace(fn func(p *grammar.URLParts)) URL {
	p := u.parts
	fn(&p)
	return New(grammar.JoinURL(p))
}

// WithScheme returns a copy of u with the scheme replaced.
// When the scheme is removed from a URL without authority and the first path
// segment contains a colon, the path is prefixed with "./" so that the segment
// is not read back as a scheme:
//
//	New("http:a:b").WithoutScheme() // "./a:b"
func (u URL) WithScheme(scheme string) URL {
	return u.replace(func(p *grammar.URLParts) { p.Scheme = scheme })
}

// WithoutScheme returns a copy of u without the scheme.
func (u URL) WithoutScheme() URL { return u.WithScheme("") }

// WithNetloc returns a copy of u with the authority replaced.
//
//	u.WithNetloc(u.Netloc().WithPort(8080).String())
func (u URL) WithNetloc(netloc string) URL {
	return u.replace(func(p *grammar.URLParts) {
		p.Authority = netloc
		if netloc != "" {
			p.HasAuthority = true
		}
	})
}

// WithPath returns a copy of u with the path replaced.
// If u has an authority, a relative path is made absolute.
func (u URL) WithPath(path string) URL {
	return u.replace(func(p *grammar.URLParts) { p.Path = path })
}

// WithQuery returns a copy of u with the query replaced.
//
//	u.WithQuery(u.Query().Set("page", "2").String())
func (u URL) WithQuery(query string) URL {
	return u.replace(func(p *grammar.URLParts) { p.Query = query })
}

// WithoutQuery returns a copy of u without the query.
func (u URL) WithoutQuery() URL { return u.WithQuery("") }

// WithFragment returns a copy of u with the fragment replaced.
func (u URL) WithFragment(fragment string) URL {
	return u.replace(func(p *grammar.URLParts) { p.Fragment = fragment })
}

// WithoutFragment returns a copy of u without the fragment.
func (u URL) WithoutFragment() URL { return u.WithFragment("") }

// WithUsername returns a copy of u with the username replaced. See [Netloc.WithUsername].
func (u URL) WithUsername(usrname string) URL {
	return u.WithNetloc(u.Netloc().WithUsername(usrname).String())
}

// WithoutUsername returns a copy of u without user-info. See [Netloc.WithoutUsername].
func (u URL) WithoutUsername() URL { return u.WithNetloc(u.Netloc().WithoutUsername().String()) }

// WithPassword returns a copy of u with the password replaced. See [Netloc.WithPassword].
func (u URL) WithPassword(passwd string) URL {
	return u.WithNetloc(u.Netloc().WithPassword(passwd).String())
}

// WithoutPassword returns a copy of u without the password.
func (u URL) WithoutPassword() URL { return u.WithNetloc(u.Netloc().WithoutPassword().String()) }

// WithHostname returns a copy of u with the host replaced.
func (u URL) WithHostname(host string) URL {
	return u.WithNetloc(u.Netloc().WithHostname(host).String())
}

// WithoutHostname returns a copy of u with an empty host.
func (u URL) WithoutHostname() URL { return u.WithNetloc(u.Netloc().WithoutHostname().String()) }

// WithPort returns a copy of u with the port replaced.
func (u URL) WithPort(port uint16) URL {
	return u.WithNetloc(u.Netloc().WithPort(port).String())
}

// WithoutPort returns a copy of u without the port.
func (u URL) WithoutPort() URL { return u.WithNetloc(u.Netloc().WithoutPort().String()) }

// WithAuth returns a copy of u with the user-info replaced. See [Netloc.WithAuth].
func (u URL) WithAuth(ui UserInfo) URL {
	return u.WithNetloc(u.Netloc().WithAuth(ui).String())
}

// WithoutAuth returns a copy of u without user-info.
func (u URL) WithoutAuth() URL { return u.WithNetloc(u.Netloc().WithoutAuth().String()) }

// Root returns a copy of u with the path "/".
func (u URL) Root() URL { return u.WithPath("/") }

// Parent returns a copy of u with the parent path. See [Path.Parent].
func (u URL) Parent() URL { return u.WithPath(string(u.Path().Parent())) }

// IsLeaf reports whether the URL path points to a leaf. See [Path.IsLeaf].
func (u URL) IsLeaf() bool { return u.Path().IsLeaf() }

// AddPathSegment returns a copy of u with the segment appended to the path. See [Path.AddSegment].
func (u URL) AddPathSegment(seg string) URL { return u.WithPath(string(u.Path().AddSegment(seg))) }

// AddPath returns a copy of u with the partial path appended to the path. See [Path.Add].
func (u URL) AddPath(partial string) URL { return u.WithPath(string(u.Path().Add(partial))) }

// QueryParams returns the query parameters in order.
func (u URL) QueryParams() []Param { return u.Query().Params() }

// QueryDict returns the query parameters as a map, the last value of a key wins.
func (u URL) QueryDict() map[string]string { return u.Query().Dict() }

// QueryMultiDict returns all values of the query parameters grouped by key.
func (u URL) QueryMultiDict() map[string][]string { return u.Query().MultiDict() }

// AddQueryParam returns a copy of u with the parameter appended to the query.
func (u URL) AddQueryParam(key, value string) URL {
	return u.WithQuery(u.Query().Add(key, value).String())
}

// AddQueryParams returns a copy of u with the parameters appended to the query.
func (u URL) AddQueryParams(params ...Param) URL {
	return u.WithQuery(u.Query().AddParams(params...).String())
}

// SetQueryParam returns a copy of u with all key parameters replaced by a single one.
// See [QueryString.Set].
func (u URL) SetQueryParam(key, value string) URL {
	return u.WithQuery(u.Query().Set(key, value).String())
}

// SetQueryParams returns a copy of u with [QueryString.Set] applied for every parameter.
func (u URL) SetQueryParams(params ...Param) URL {
	return u.WithQuery(u.Query().SetParams(params...).String())
}

// DelQueryParam returns a copy of u without the key parameters.
func (u URL) DelQueryParam(key string) URL {
	return u.WithQuery(u.Query().Del(key).String())
}

// DelQueryParams returns a copy of u without the parameters of all keys.
func (u URL) DelQueryParams(keys ...string) URL {
	return u.WithQuery(u.Query().DelParams(keys...).String())
}

// RenderTo writes the URL to the provided writer.
func (u URL) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, u.Render(opts)))
}

// Render returns the URL string.
// With [RenderOptions.HidePassword] set the password is replaced by a mask.
func (u URL) Render(opts *RenderOptions) string {
	if opts == nil || !opts.HidePassword {
		return u.raw
	}
	if _, ok := u.Password(); !ok {
		return u.raw
	}
	p := u.parts
	p.Authority = u.Netloc().Render(opts)
	return grammar.JoinURL(p)
}

// String returns the URL string exactly as it was parsed or built.
func (u URL) String() string { return u.raw }

// Format implements fmt.Formatter for custom formatting of the URL.
func (u URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.raw)
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.raw))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, u.raw)
			return
		}

		type hideMethods URL
		type URL hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), URL(u))
		return
	}
}

// Equal reports whether u and val are the same URL string, accepting URL and *URL.
func (u URL) Equal(val any) bool {
	var other URL
	switch v := val.(type) {
	case URL:
		other = v
	case *URL:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return u.raw == other.raw
}

// IsZero reports whether the URL is empty.
func (u URL) IsZero() bool { return u.raw == "" }

// IsValid reports whether the URL is syntactically valid: it is not empty,
// the scheme (if any) matches RFC 3986 and the authority (if any) is valid.
// See [Netloc.IsValid].
func (u URL) IsValid() bool {
	if u.raw == "" {
		return false
	}
	if u.parts.Scheme != "" && !grammar.IsScheme(u.parts.Scheme) {
		return false
	}
	if u.parts.Authority != "" && !u.Netloc().IsValid() {
		return false
	}
	return u.parts.Scheme != "" || u.parts.Authority != "" || u.parts.Path != ""
}

// MarshalText implements [encoding.TextMarshaler].
func (u URL) MarshalText() ([]byte, error) { return []byte(u.raw), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URL) UnmarshalText(text []byte) error {
	*u = Parse(text)
	return nil
}
