package urlobject

import "github.com/ghettovoice/urlobject/internal/grammar"

// Error is the type of sentinel errors returned by this package.
// Returned errors wrap the sentinel with details, use [errors.Is] to match them.
type Error = grammar.Error

// ErrMalformedPort is returned by port accessors when the authority has a port
// segment that is not a decimal number in range 0-65535.
//
//	_, _, err := urlobject.New("http://example.com:abc/").Port()
//	errors.Is(err, urlobject.ErrMalformedPort) // true
const ErrMalformedPort = grammar.ErrMalformedPort
