package rlp

import "fmt"

// RlpInvalidPrefix is returned when a single byte below 0x80 is wrapped in a
// string prefix, or another non-canonical type-prefix is encountered.
type RlpInvalidPrefix struct {
	Offset int
}

func (e *RlpInvalidPrefix) Error() string {
	return fmt.Sprintf("rlp: invalid prefix at offset %d", e.Offset)
}

// RlpLengthLeadingZero is returned when a long-form length prefix carries a
// leading zero byte.
type RlpLengthLeadingZero struct {
	Offset int
}

func (e *RlpLengthLeadingZero) Error() string {
	return fmt.Sprintf("rlp: length prefix has leading zero byte at offset %d", e.Offset)
}

// RlpTrailingBytes is returned when the decoded buffer has unconsumed bytes
// remaining after the top-level value was fully decoded.
type RlpTrailingBytes struct {
	Remaining int
}

func (e *RlpTrailingBytes) Error() string {
	return fmt.Sprintf("rlp: %d trailing bytes after decoded value", e.Remaining)
}

// Errors below classify structural and value-range faults distinct from the
// three canonicalization violations spec'd explicitly above.
var (
	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = &structuralError{"rlp: expected string"}

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = &structuralError{"rlp: expected list"}

	// ErrEOL is returned when a list was not fully consumed before ListEnd.
	ErrEOL = &structuralError{"rlp: list not fully consumed"}

	// ErrUnexpectedEOF is returned when the buffer ends mid-item.
	ErrUnexpectedEOF = &structuralError{"rlp: unexpected end of input"}

	// ErrUint64Range is returned when a decoded integer exceeds uint64 range.
	ErrUint64Range = &structuralError{"rlp: uint64 overflow"}

	// ErrCanonInt is returned when an integer has a non-canonical leading zero
	// byte, or a bool is encoded as anything other than empty, 0x00 or 0x01.
	ErrCanonInt = &structuralError{"rlp: non-canonical integer encoding"}

	// ErrValueTooLarge is returned when encoding encounters an unsupported Go type.
	ErrValueTooLarge = &structuralError{"rlp: unsupported type for encoding"}
)

type structuralError struct{ msg string }

func (e *structuralError) Error() string { return e.msg }
