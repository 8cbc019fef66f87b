package oid

import "fmt"

// InvalidIDError reports input that matched an accepted shape but failed
// structural validation: wrong byte length, wrong hex length, or non-hex
// characters. The offending value is carried in the message.
type InvalidIDError struct {
	Value string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%q is not a valid ObjectID: it must be a 12-byte input or a 24-character hex string", e.Value)
}

// UnsupportedTypeError reports input that is not one of the accepted
// categories (ObjectID, byte slice, string). Construction fails immediately
// without partial work.
type UnsupportedTypeError struct {
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cannot build an ObjectID from %T", e.Value)
}
