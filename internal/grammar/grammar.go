// Package grammar implements the URL grammar rules: splitting and joining of URL,
// authority and query components and RFC 3986 validity predicates.
package grammar

//go:generate go tool errtrace -w .

import (
	"net"
	"strings"

	"github.com/ghettovoice/abnf"
	"github.com/miekg/dns"

	"github.com/ghettovoice/urlobject/internal/constraints"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

// ErrMalformedPort is returned when an authority carries a port segment
// that is not a decimal number in range 0-65535.
const ErrMalformedPort Error = "malformed port"

func rng(key string, lo, hi byte) abnf.Operator {
	return abnf.Range(key, []byte{lo}, []byte{hi})
}

func chars(key string, cs string) abnf.Operator {
	ops := make([]abnf.Operator, 0, len(cs))
	for i := 0; i < len(cs); i++ {
		ops = append(ops, abnf.Literal(`"`+cs[i:i+1]+`"`, []byte{cs[i]}))
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

// RFC 3986 rules.
var (
	alpha  = abnf.AltFirst("ALPHA", rng("%x41-5A", 0x41, 0x5A), rng("%x61-7A", 0x61, 0x7A))
	digit  = rng("DIGIT", 0x30, 0x39)
	hexdig = abnf.AltFirst("HEXDIG", digit, rng("%x41-46", 0x41, 0x46), rng("%x61-66", 0x61, 0x66))

	unreserved = abnf.AltFirst("unreserved", alpha, digit, chars(`"-" / "." / "_" / "~"`, "-._~"))
	subDelims  = chars("sub-delims", "!$&'()*+,;=")
	pctEncoded = abnf.Concat("pct-encoded", abnf.Literal(`"%"`, []byte{'%'}), hexdig, hexdig)

	scheme = abnf.Concat(
		"scheme",
		alpha,
		abnf.Repeat0Inf(
			`*( ALPHA / DIGIT / "+" / "-" / "." )`,
			abnf.AltFirst(`ALPHA / DIGIT / "+" / "-" / "."`, alpha, digit, chars(`"+" / "-" / "."`, "+-.")),
		),
	)
	port    = abnf.Repeat0Inf("port", digit)
	regName = abnf.Repeat0Inf(
		"reg-name",
		abnf.AltFirst("unreserved / pct-encoded / sub-delims", unreserved, pctEncoded, subDelims),
	)
)

func match[T constraints.Byteseq](op abnf.Operator, s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsScheme reports whether s matches the RFC 3986 scheme rule.
func IsScheme[T constraints.Byteseq](s T) bool { return match(scheme, s) }

// IsPort reports whether s is a non-empty run of decimal digits.
func IsPort[T constraints.Byteseq](s T) bool { return match(port, s) }

// IsRegName reports whether s matches the RFC 3986 reg-name rule.
func IsRegName[T constraints.Byteseq](s T) bool { return match(regName, s) }

// IsHost reports whether s is an IP literal (IPv6 in brackets), an IPv4 address
// or a registered name that is also a valid DNS name.
func IsHost(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return false
		}
		ip := net.ParseIP(s[1 : len(s)-1])
		return ip != nil && ip.To4() == nil
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.To4() != nil
	}
	if !IsRegName(s) {
		return false
	}
	_, ok := dns.IsDomainName(s)
	return ok
}

// IsSchemeChar reports whether c may appear in a scheme after the first letter.
func IsSchemeChar(c byte) bool {
	return IsAlpha(c) || '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'
}

// IsAlpha checks ALPHA rule.
func IsAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// isSchemePrefix is the byte scan [SplitURL] uses to detect a scheme.
func isSchemePrefix(s string) bool {
	if s == "" || !IsAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsSchemeChar(s[i]) {
			return false
		}
	}
	return true
}
