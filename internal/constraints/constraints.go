// Package constraints provides type constraints shared by the parsing functions.
package constraints

// Byteseq is the raw input accepted by the parsers: a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
