package urlobject

import (
	"iter"
	"maps"
	"sync"

	"github.com/ghettovoice/urlobject/internal/util"
)

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination internal/testutil/portsmock/mock.go -package portsmock . PortResolver

// PortResolver resolves the default port of a URL scheme.
type PortResolver interface {
	// LookupPort returns the default port of the lower-cased scheme,
	// ok is false when the scheme is unknown.
	LookupPort(scheme string) (port uint16, ok bool)
}

// Ports is a thread-safe table of default ports keyed by lower-cased scheme.
// The zero value is an empty table ready to use.
type Ports struct {
	mu   sync.RWMutex
	data map[string]uint16
}

// NewPorts creates a table pre-filled with the given scheme ports.
func NewPorts(ports map[string]uint16) *Ports {
	p := &Ports{data: make(map[string]uint16, len(ports))}
	for scheme, port := range ports {
		p.data[util.LCase(scheme)] = port
	}
	return p
}

// LookupPort implements [PortResolver].
func (p *Ports) LookupPort(scheme string) (uint16, bool) { return p.Get(scheme) }

// Get returns the port of the scheme.
func (p *Ports) Get(scheme string) (uint16, bool) {
	if p == nil {
		return 0, false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	port, ok := p.data[util.LCase(scheme)]
	return port, ok
}

// Set sets the port of the scheme, replacing the existing one.
// It is a no-op on a nil table.
func (p *Ports) Set(scheme string, port uint16) *Ports {
	if p == nil {
		return p
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		p.data = make(map[string]uint16)
	}
	p.data[util.LCase(scheme)] = port
	return p
}

// Del removes the scheme from the table.
func (p *Ports) Del(scheme string) *Ports {
	if p == nil {
		return p
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, util.LCase(scheme))
	return p
}

// Len returns the number of schemes in the table.
func (p *Ports) Len() int {
	if p == nil {
		return 0
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.data)
}

// All returns an iterator over a snapshot of the table.
func (p *Ports) All() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		if p == nil {
			return
		}

		p.mu.RLock()
		data := maps.Clone(p.data)
		p.mu.RUnlock()

		for k, v := range data {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Clone returns a copy of the table.
func (p *Ports) Clone() *Ports {
	if p == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return &Ports{data: maps.Clone(p.data)}
}

// DefaultPorts is the table used by [URL.DefaultPort].
// It can be extended with [RegisterDefaultPort].
var DefaultPorts = NewPorts(map[string]uint16{
	"acap":     674,
	"afp":      548,
	"dict":     2628,
	"dns":      53,
	"ftp":      21,
	"ftps":     990,
	"git":      9418,
	"gopher":   70,
	"http":     80,
	"https":    443,
	"imap":     143,
	"imaps":    993,
	"ipp":      631,
	"ipps":     631,
	"irc":      194,
	"ircs":     6697,
	"ldap":     389,
	"ldaps":    636,
	"mms":      1755,
	"msrp":     2855,
	"mtqp":     1038,
	"nfs":      111,
	"nntp":     119,
	"nntps":    563,
	"pop":      110,
	"pop3":     110,
	"pop3s":    995,
	"prospero": 1525,
	"redis":    6379,
	"rsync":    873,
	"rtsp":     554,
	"rtsps":    322,
	"rtspu":    5005,
	"sftp":     22,
	"sip":      5060,
	"sips":     5061,
	"smb":      445,
	"smtp":     25,
	"snmp":     161,
	"ssh":      22,
	"svn":      3690,
	"telnet":   23,
	"ventrilo": 3784,
	"vnc":      5900,
	"wais":     210,
	"ws":       80,
	"wss":      443,
})

// RegisterDefaultPort sets the default port of the scheme in [DefaultPorts].
func RegisterDefaultPort(scheme string, port uint16) { DefaultPorts.Set(scheme, port) }
