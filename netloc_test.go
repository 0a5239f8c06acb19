package urlobject_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/urlobject"
)

type netlocParts struct {
	Username    string
	Password    string
	HasPassword bool
	Hostname    string
	Port        uint16
	HasPort     bool
}

func netlocPartsOf(t *testing.T, n urlobject.Netloc) netlocParts {
	t.Helper()

	var p netlocParts
	p.Username = n.Username()
	p.Password, p.HasPassword = n.Password()
	p.Hostname = n.Hostname()
	var err error
	if p.Port, p.HasPort, err = n.Port(); err != nil {
		t.Fatalf("n.Port() error = %v, want nil", err)
	}
	return p
}

func TestParseNetloc(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want netlocParts
	}{
		{"empty", "", netlocParts{}},
		{"host", "example.com", netlocParts{Hostname: "example.com"}},
		{
			"full",
			"user:pass@host:8080",
			netlocParts{Username: "user", Password: "pass", HasPassword: true, Hostname: "host", Port: 8080, HasPort: true},
		},
		{"username only", "user@host", netlocParts{Username: "user", Hostname: "host"}},
		{"empty password", "user:@host", netlocParts{Username: "user", HasPassword: true, Hostname: "host"}},
		{"at in username", "a@b@host", netlocParts{Username: "a@b", Hostname: "host"}},
		{"colon in password", "user:p:w@host", netlocParts{Username: "user", Password: "p:w", HasPassword: true, Hostname: "host"}},
		{"ipv6 with port", "[::1]:80", netlocParts{Hostname: "::1", Port: 80, HasPort: true}},
		{"ipv6", "[::1]", netlocParts{Hostname: "::1"}},
		{"empty port", "host:", netlocParts{Hostname: "host"}},
		{"unbalanced brackets", "[fe80::1", netlocParts{Hostname: "[fe80::1"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			n := urlobject.ParseNetloc(c.in)
			if diff := cmp.Diff(netlocPartsOf(t, n), c.want); diff != "" {
				t.Errorf("urlobject.ParseNetloc(%q) mismatch\ndiff (-got +want):\n%v", c.in, diff)
			}
			if got := n.String(); got != c.in {
				t.Errorf("urlobject.ParseNetloc(%q).String() = %q, want %q", c.in, got, c.in)
			}
		})
	}
}

func TestNetloc_Port_Malformed(t *testing.T) {
	t.Parallel()

	cases := []string{"host:abc", "host:65536", "host:-1", "[::1]:x1", "host:8080x"}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			n := urlobject.ParseNetloc(in)
			port, ok, err := n.Port()
			if !errors.Is(err, urlobject.ErrMalformedPort) {
				t.Errorf("n.Port() error = %v, want %v", err, urlobject.ErrMalformedPort)
			}
			if port != 0 || ok {
				t.Errorf("n.Port() = (%d, %v), want (0, false)", port, ok)
			}
			if got, want := n.Hostname(), "host"; in[0] != '[' && got != want {
				t.Errorf("n.Hostname() = %q, want %q", got, want)
			}
		})
	}
}

func TestNetloc_Transform(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		netloc string
		fn     func(n urlobject.Netloc) urlobject.Netloc
		want   string
	}{
		{
			"without password",
			"user:pass@host:8080",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithoutPassword() },
			"user@host:8080",
		},
		{
			"with username",
			"user:pass@host:8080",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithUsername("bob") },
			"bob:pass@host:8080",
		},
		{
			"without username drops password",
			"user:pass@host:8080",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithoutUsername() },
			"host:8080",
		},
		{
			"empty username drops password",
			"user:pass@host:8080",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithUsername("") },
			"host:8080",
		},
		{
			"with password without username",
			"host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithPassword("x") },
			"host",
		},
		{
			"with password",
			"user@host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithPassword("x") },
			"user:x@host",
		},
		{
			"with empty password",
			"user@host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithPassword("") },
			"user:@host",
		},
		{
			"with hostname",
			"user:pass@host:8080",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithHostname("example.org") },
			"user:pass@example.org:8080",
		},
		{
			"with ipv6 hostname",
			"host:80",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithHostname("::1") },
			"[::1]:80",
		},
		{
			"with bracketed hostname",
			"[::1]:80",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithHostname("[::2]") },
			"[::2]:80",
		},
		{
			"without hostname",
			"user@host:80",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithoutHostname() },
			"user@:80",
		},
		{
			"with port",
			"host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithPort(443) },
			"host:443",
		},
		{
			"without port",
			"host:8080",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithoutPort() },
			"host",
		},
		{
			"without malformed port",
			"host:abc",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithoutPort() },
			"host",
		},
		{
			"replace malformed port",
			"host:abc",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithPort(1) },
			"host:1",
		},
		{
			"malformed port kept",
			"u@host:abc",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithUsername("bob") },
			"bob@host:abc",
		},
		{
			"with auth username",
			"user:pass@host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithAuth(urlobject.User("alice")) },
			"alice@host",
		},
		{
			"with auth",
			"host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithAuth(urlobject.UserPassword("alice", "s")) },
			"alice:s@host",
		},
		{
			"with auth password only",
			"host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithAuth(urlobject.UserPassword("", "s")) },
			"host",
		},
		{
			"without auth",
			"user:pass@host:1",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithoutAuth() },
			"host:1",
		},
		{
			"password without username dropped",
			":pass@host",
			func(n urlobject.Netloc) urlobject.Netloc { return n.WithPort(1) },
			"host:1",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			n := urlobject.ParseNetloc(c.netloc)
			if got := c.fn(n).String(); got != c.want {
				t.Errorf("transformed urlobject.ParseNetloc(%q) = %q, want %q", c.netloc, got, c.want)
			}
			if got := n.String(); got != c.netloc {
				t.Errorf("source netloc changed to %q, want %q", got, c.netloc)
			}
		})
	}
}

func TestNetloc_Auth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		netloc string
		want   urlobject.UserInfo
	}{
		{"host", urlobject.UserInfo{}},
		{"user@host", urlobject.User("user")},
		{"user:pass@host", urlobject.UserPassword("user", "pass")},
		{"user:@host", urlobject.UserPassword("user", "")},
	}
	for _, c := range cases {
		t.Run(c.netloc, func(t *testing.T) {
			t.Parallel()

			if got := urlobject.ParseNetloc(c.netloc).Auth(); !got.Equal(c.want) {
				t.Errorf("urlobject.ParseNetloc(%q).Auth() = %q, want %q", c.netloc, got, c.want)
			}
		})
	}
}

func TestNetloc_Render(t *testing.T) {
	t.Parallel()

	hide := &urlobject.RenderOptions{HidePassword: true}
	cases := []struct {
		netloc string
		opts   *urlobject.RenderOptions
		want   string
	}{
		{"user:pass@host", nil, "user:pass@host"},
		{"user:pass@host", hide, "user:xxxxx@host"},
		{"user@host", hide, "user@host"},
		{":pass@host", hide, ":xxxxx@host"},
		{":pass@[::1]:80", hide, ":xxxxx@[::1]:80"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s %+v", c.netloc, c.opts), func(t *testing.T) {
			t.Parallel()

			if got := urlobject.ParseNetloc(c.netloc).Render(c.opts); got != c.want {
				t.Errorf("n.Render(%+v) = %q, want %q", c.opts, got, c.want)
			}
		})
	}
}

func TestNetloc_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		netloc string
		want   bool
	}{
		{"", false},
		{"example.com", true},
		{"user:pass@example.com:8080", true},
		{"[::1]:5060", true},
		{"127.0.0.1:80", true},
		{"host:abc", false},
		{"exa mple.com", false},
		{"[127.0.0.1]", false},
	}
	for _, c := range cases {
		t.Run(c.netloc, func(t *testing.T) {
			t.Parallel()

			if got := urlobject.ParseNetloc(c.netloc).IsValid(); got != c.want {
				t.Errorf("urlobject.ParseNetloc(%q).IsValid() = %v, want %v", c.netloc, got, c.want)
			}
		})
	}
}

func TestNetloc_Equal(t *testing.T) {
	t.Parallel()

	n := urlobject.ParseNetloc("host:80")
	if !n.Equal(urlobject.ParseNetloc("host:80")) {
		t.Errorf("n.Equal(same) = false, want true")
	}
	if n.Equal(urlobject.ParseNetloc("host")) {
		t.Errorf("n.Equal(other) = true, want false")
	}
	if n.Equal((*urlobject.Netloc)(nil)) {
		t.Errorf("n.Equal(nil) = true, want false")
	}
}

func TestUserInfo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		ui         urlobject.UserInfo
		wantString string
		wantZero   bool
	}{
		{"zero", urlobject.UserInfo{}, "", true},
		{"user", urlobject.User("alice"), "alice", false},
		{"user password", urlobject.UserPassword("alice", "secret"), "alice:secret", false},
		{"empty password", urlobject.UserPassword("alice", ""), "alice:", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.ui.String(); got != c.wantString {
				t.Errorf("ui.String() = %q, want %q", got, c.wantString)
			}
			if got := c.ui.IsZero(); got != c.wantZero {
				t.Errorf("ui.IsZero() = %v, want %v", got, c.wantZero)
			}
		})
	}
}
