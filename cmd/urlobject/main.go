// Command urlobject applies a chain of edits to URLs and prints the results.
//
// Usage:
//
//	urlobject [flags] URL...
//
// Edits are applied in a fixed order: scheme, user-info, host, port, path,
// query, fragment. URLs are read from stdin, one per line, when no arguments are given.
//
//	urlobject -scheme https -port 8443 -set page=2 http://example.com/list?page=1
//	urlobject -get default-port https://example.com
package main

//go:generate go tool errtrace -w .

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/afero"

	"github.com/ghettovoice/urlobject"
	"github.com/ghettovoice/urlobject/internal/config"
	"github.com/ghettovoice/urlobject/internal/errorutil"
	"github.com/ghettovoice/urlobject/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, afero.NewOsFs()))
}

// optString is a string flag that remembers whether it was set,
// so that an explicit empty value can clear a component.
type optString struct {
	val string
	set bool
}

func (s *optString) String() string { return s.val }

func (s *optString) Set(v string) error {
	s.val, s.set = v, true
	return nil
}

type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	scheme, user, password, host, port optString
	path, addPath, query, fragment     optString
	noAuth, noPort, noQuery, noFrag    bool
	add, set, del                      listFlag
	get                                string
	configPath                         string
	verbose, dev                       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("urlobject", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: urlobject [flags] URL...")
		fs.PrintDefaults()
	}

	fs.Var(&opts.scheme, "scheme", "Replace the scheme, empty value removes it.")
	fs.Var(&opts.user, "user", "Replace the username, empty value removes the user-info.")
	fs.Var(&opts.password, "password", "Replace the password.")
	fs.BoolVar(&opts.noAuth, "no-auth", false, "Remove the user-info.")
	fs.Var(&opts.host, "host", "Replace the hostname.")
	fs.Var(&opts.port, "port", "Replace the port.")
	fs.BoolVar(&opts.noPort, "no-port", false, "Remove the port.")
	fs.Var(&opts.path, "path", "Replace the path.")
	fs.Var(&opts.addPath, "add-path", "Append a partial path.")
	fs.Var(&opts.query, "query", "Replace the query string.")
	fs.BoolVar(&opts.noQuery, "no-query", false, "Remove the query string.")
	fs.Var(&opts.add, "add", "Add a query parameter `key=value`, can be repeated.")
	fs.Var(&opts.set, "set", "Set a query parameter `key=value`, can be repeated.")
	fs.Var(&opts.del, "del", "Delete a query parameter by `key`, can be repeated.")
	fs.Var(&opts.fragment, "fragment", "Replace the fragment.")
	fs.BoolVar(&opts.noFrag, "no-fragment", false, "Remove the fragment.")
	fs.StringVar(&opts.get, "get", "", "Print a single `component`: "+strings.Join(components, ", ")+".")
	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file.")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging.")
	fs.BoolVar(&opts.dev, "dev", false, "Use the developer log format.")

	if err := fs.Parse(args); err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return &opts, fs.Args(), nil
}

type edit struct {
	name string
	fn   func(u urlobject.URL) urlobject.URL
}

func param(kv string) urlobject.Param {
	k, v, _ := strings.Cut(kv, "=")
	return urlobject.Param{Key: k, Value: v}
}

// edits builds the edit chain in the order they are applied.
func (o *options) edits() ([]edit, error) {
	var edits []edit
	push := func(name string, fn func(u urlobject.URL) urlobject.URL) {
		edits = append(edits, edit{name, fn})
	}

	if o.scheme.set {
		push("scheme", func(u urlobject.URL) urlobject.URL { return u.WithScheme(o.scheme.val) })
	}
	if o.user.set {
		push("user", func(u urlobject.URL) urlobject.URL { return u.WithUsername(o.user.val) })
	}
	if o.password.set {
		push("password", func(u urlobject.URL) urlobject.URL { return u.WithPassword(o.password.val) })
	}
	if o.noAuth {
		push("no-auth", urlobject.URL.WithoutAuth)
	}
	if o.host.set {
		push("host", func(u urlobject.URL) urlobject.URL { return u.WithHostname(o.host.val) })
	}
	if o.port.set {
		port, err := strconv.ParseUint(o.port.val, 10, 16)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("-port %q: %v", o.port.val, err))
		}
		push("port", func(u urlobject.URL) urlobject.URL { return u.WithPort(uint16(port)) })
	}
	if o.noPort {
		push("no-port", urlobject.URL.WithoutPort)
	}
	if o.path.set {
		push("path", func(u urlobject.URL) urlobject.URL { return u.WithPath(o.path.val) })
	}
	if o.addPath.set {
		push("add-path", func(u urlobject.URL) urlobject.URL { return u.AddPath(o.addPath.val) })
	}
	if o.query.set {
		push("query", func(u urlobject.URL) urlobject.URL { return u.WithQuery(o.query.val) })
	}
	if o.noQuery {
		push("no-query", urlobject.URL.WithoutQuery)
	}
	for _, kv := range o.add {
		p := param(kv)
		push("add", func(u urlobject.URL) urlobject.URL { return u.AddQueryParams(p) })
	}
	for _, kv := range o.set {
		p := param(kv)
		push("set", func(u urlobject.URL) urlobject.URL { return u.SetQueryParams(p) })
	}
	if len(o.del) > 0 {
		push("del", func(u urlobject.URL) urlobject.URL { return u.DelQueryParams(o.del...) })
	}
	if o.fragment.set {
		push("fragment", func(u urlobject.URL) urlobject.URL { return u.WithFragment(o.fragment.val) })
	}
	if o.noFrag {
		push("no-fragment", urlobject.URL.WithoutFragment)
	}
	return edits, nil
}

var components = []string{
	"scheme", "netloc", "username", "password", "hostname",
	"port", "default-port", "path", "query", "fragment",
}

func component(u urlobject.URL, name string, ports urlobject.PortResolver) (string, error) {
	switch name {
	case "":
		return u.String(), nil
	case "scheme":
		return u.Scheme(), nil
	case "netloc":
		return u.Netloc().String(), nil
	case "username":
		return u.Username(), nil
	case "password":
		passwd, _ := u.Password()
		return passwd, nil
	case "hostname":
		return u.Hostname(), nil
	case "port", "default-port":
		var (
			port uint16
			ok   bool
			err  error
		)
		if name == "port" {
			port, ok, err = u.Port()
		} else {
			port, ok, err = u.DefaultPortFrom(ports)
		}
		if err != nil || !ok {
			return "", errtrace.Wrap(err)
		}
		return strconv.Itoa(int(port)), nil
	case "path":
		return u.Path().String(), nil
	case "query":
		return u.Query().String(), nil
	case "fragment":
		return u.Fragment(), nil
	default:
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown component %q", name))
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, fs afero.Fs) int {
	opts, urls, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := config.Default()
	if opts.configPath != "" {
		if cfg, err = config.Load(fs, opts.configPath); err != nil {
			fmt.Fprintf(stderr, "urlobject: %v\n", err)
			return 1
		}
	}

	level := cfg.LogLevel()
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := log.New(stderr, level, opts.dev || cfg.Log.Dev)
	logger.Debug("configuration loaded", "config", log.FmtValue(cfg, false))

	ports := urlobject.DefaultPorts.Clone()
	cfg.RegisterPorts(ports)

	edits, err := opts.edits()
	if err != nil {
		logger.Error("invalid flags", "error", err)
		return 1
	}

	if len(urls) == 0 {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				urls = append(urls, line)
			}
		}
		if err := sc.Err(); err != nil {
			logger.Error("failed to read URLs", "error", err)
			return 1
		}
	}

	code := 0
	for _, raw := range urls {
		u := urlobject.New(raw)
		for _, e := range edits {
			u = e.fn(u)
			logger.Debug("edit applied", "edit", e.name, "url", u)
		}

		out, err := component(u, opts.get, ports)
		if err != nil {
			logger.Error("failed to get URL component", "url", u, "component", opts.get, "error", err)
			code = 1
			continue
		}
		fmt.Fprintln(stdout, out)
	}
	return code
}
