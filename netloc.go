package urlobject

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlobject/internal/constraints"
	"github.com/ghettovoice/urlobject/internal/grammar"
)

// Netloc represents the authority component of a URL:
//
//	[ username [ ":" password ] "@" ] host [ ":" port ]
//
// Netloc is an immutable value. Every With*/Without* method returns a new Netloc
// built by splitting the authority, replacing exactly one sub-component and
// joining the parts back. The zero value is an empty authority.
type Netloc struct {
	raw   string
	parts grammar.AuthorityParts
}

// ParseNetloc creates a Netloc from the authority string s.
// It never fails, malformed input results in empty or partial sub-components.
func ParseNetloc[T constraints.Byteseq](s T) Netloc {
	return Netloc{raw: string(s), parts: grammar.SplitAuthority(string(s))}
}

// Username returns the username, or empty string if there is no user-info.
func (n Netloc) Username() string { return n.parts.Username }

// Password returns the password, in case it is set, and a bool flag indicating whether it is set.
func (n Netloc) Password() (string, bool) { return n.parts.Password, n.parts.HasPassword }

// Hostname returns the host without IPv6 literal brackets.
func (n Netloc) Hostname() string { return n.parts.Hostname() }

// Port returns the port, in case it is set, and a bool flag indicating whether it is set.
// An empty port segment ("example.com:") counts as not set.
// A port segment that is not a number in range 0-65535 results in an error
// matching [ErrMalformedPort].
func (n Netloc) Port() (uint16, bool, error) {
	if !n.parts.HasPort {
		return 0, false, nil
	}
	return errtrace.Wrap3(grammar.ParsePort(n.parts.Port))
}

// Auth returns the user-info part of the authority.
func (n Netloc) Auth() UserInfo {
	if n.parts.HasPassword {
		return UserPassword(n.parts.Username, n.parts.Password)
	}
	return User(n.parts.Username)
}

func (n Netloc) replace(fn func(p *grammar.AuthorityParts)) Netloc {
	p := n.parts
	fn(&p)
	return ParseNetloc(grammar.JoinAuthority(p))
}

// WithUsername returns a copy of n with the username replaced.
// Setting an empty username drops the whole user-info, password included.
func (n Netloc) WithUsername(usrname string) Netloc {
	return n.replace(func(p *grammar.AuthorityParts) {
		p.Username = usrname
		if usrname == "" {
			p.Password, p.HasPassword = "", false
		}
	})
}

// WithoutUsername returns a copy of n without user-info.
// The password is dropped as well since it can't be expressed without a username.
func (n Netloc) WithoutUsername() Netloc { return n.WithUsername("") }

// WithPassword returns a copy of n with the password replaced.
// The password is dropped if n has no username.
func (n Netloc) WithPassword(passwd string) Netloc {
	return n.replace(func(p *grammar.AuthorityParts) {
		p.Password, p.HasPassword = passwd, true
	})
}

// WithoutPassword returns a copy of n without the password.
func (n Netloc) WithoutPassword() Netloc {
	return n.replace(func(p *grammar.AuthorityParts) {
		p.Password, p.HasPassword = "", false
	})
}

// WithHostname returns a copy of n with the host replaced.
// IPv6 addresses are enclosed in brackets automatically.
func (n Netloc) WithHostname(host string) Netloc {
	return n.replace(func(p *grammar.AuthorityParts) { p.Host = host })
}

// WithoutHostname returns a copy of n with an empty host.
func (n Netloc) WithoutHostname() Netloc { return n.WithHostname("") }

// WithPort returns a copy of n with the port replaced.
func (n Netloc) WithPort(port uint16) Netloc {
	return n.replace(func(p *grammar.AuthorityParts) {
		p.Port, p.HasPort = strconv.Itoa(int(port)), true
	})
}

// WithoutPort returns a copy of n without the port.
func (n Netloc) WithoutPort() Netloc {
	return n.replace(func(p *grammar.AuthorityParts) {
		p.Port, p.HasPort = "", false
	})
}

// WithAuth returns a copy of n with the user-info replaced by ui.
//
//	n.WithAuth(urlobject.User("alice"))
//	n.WithAuth(urlobject.UserPassword("alice", "secret"))
func (n Netloc) WithAuth(ui UserInfo) Netloc {
	return n.replace(func(p *grammar.AuthorityParts) {
		p.Username = ui.usrname
		p.Password, p.HasPassword = ui.passwd, ui.hasPasswd
		if ui.usrname == "" {
			p.Password, p.HasPassword = "", false
		}
	})
}

// WithoutAuth returns a copy of n without user-info.
func (n Netloc) WithoutAuth() Netloc { return n.WithAuth(UserInfo{}) }

// RenderTo writes the authority to the provided writer.
func (n Netloc) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, n.Render(opts)))
}

// Render returns the authority string.
// With [RenderOptions.HidePassword] set the password is replaced by a mask.
func (n Netloc) Render(opts *RenderOptions) string {
	if opts == nil || !opts.HidePassword || !n.parts.HasPassword {
		return n.raw
	}
	p := n.parts
	p.Username, p.Password, p.HasPassword = "", "", false
	return n.parts.Username + ":" + passwdMask + "@" + grammar.JoinAuthority(p)
}

const passwdMask = "xxxxx"

// String returns the authority string exactly as it was parsed or built.
func (n Netloc) String() string { return n.raw }

// Format implements fmt.Formatter for custom formatting of the Netloc.
func (n Netloc) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, n.raw)
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(n.raw))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, n.raw)
			return
		}

		type hideMethods Netloc
		type Netloc hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Netloc(n))
		return
	}
}

// Equal reports whether n and val have the same authority string, accepting Netloc and *Netloc.
func (n Netloc) Equal(val any) bool {
	var other Netloc
	switch v := val.(type) {
	case Netloc:
		other = v
	case *Netloc:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return n.raw == other.raw
}

// IsZero reports whether the authority is empty.
func (n Netloc) IsZero() bool { return n.raw == "" }

// IsValid reports whether the authority has a syntactically valid host
// (IP literal or DNS name) and, if present, a valid port.
func (n Netloc) IsValid() bool {
	if !grammar.IsHost(n.parts.Host) {
		return false
	}
	_, _, err := n.Port()
	return err == nil
}

// MarshalText implements [encoding.TextMarshaler].
func (n Netloc) MarshalText() ([]byte, error) { return []byte(n.raw), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (n *Netloc) UnmarshalText(text []byte) error {
	*n = ParseNetloc(text)
	return nil
}

// UserInfo is a container for user credentials of a [Netloc].
type UserInfo struct {
	usrname, passwd string
	hasPasswd       bool
}

// User returns a [UserInfo] containing the provided username and no password.
func User(usrname string) UserInfo {
	return UserInfo{usrname: usrname}
}

// UserPassword returns a [UserInfo] containing the provided username and password.
func UserPassword(usrname, passwd string) UserInfo {
	return UserInfo{usrname: usrname, passwd: passwd, hasPasswd: true}
}

// Username returns the username from the UserInfo.
func (ui UserInfo) Username() string { return ui.usrname }

// Password returns the password, in case it is set, and a bool flag indicating whether it is set.
func (ui UserInfo) Password() (string, bool) { return ui.passwd, ui.hasPasswd }

// String returns the user-info as "username[:password]".
func (ui UserInfo) String() string {
	if ui.hasPasswd {
		return ui.usrname + ":" + ui.passwd
	}
	return ui.usrname
}

// Equal compares this UserInfo with another for equality.
func (ui UserInfo) Equal(val any) bool {
	var other UserInfo
	switch v := val.(type) {
	case UserInfo:
		other = v
	case *UserInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ui.usrname == other.usrname && ui.passwd == other.passwd && ui.hasPasswd == other.hasPasswd
}

// IsZero checks whether the UserInfo is empty.
func (ui UserInfo) IsZero() bool { return ui.usrname == "" && ui.passwd == "" && !ui.hasPasswd }
