// Package oid implements the 12-byte ObjectID identifier scheme.
//
// An ObjectID is composed of a 4-byte big-endian Unix timestamp in seconds,
// a 3-byte machine identifier derived from the host name, a 2-byte process
// id, and a 3-byte counter seeded with a random value. IDs therefore sort
// by creation time first, which keeps them index-friendly as primary keys.
//
// Uniqueness across processes is probabilistic: two processes collide only
// if their hosts hash to the same machine bytes, they share a pid, and they
// hit the same counter value within the same second.
package oid

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"
)

// ObjectID is an immutable 12-byte identifier.
type ObjectID [12]byte

// New generates a fresh ObjectID from the default source.
func New() ObjectID {
	return defaultSource.New()
}

// NewFromTime builds a query-only ObjectID whose first 4 bytes encode the
// given time's Unix seconds and whose remaining 8 bytes are zero.
//
// The result deliberately violates the uniqueness-bearing field layout. It
// is suitable only for range comparisons ("created before this ID") and
// must never be stored as a real record identifier.
func NewFromTime(t time.Time) ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(int32(t.Unix())))
	return id
}

// FromBytes builds an ObjectID from exactly 12 raw bytes. The bytes are
// accepted verbatim; no field-level validation is performed.
func FromBytes(b []byte) (ObjectID, error) {
	if len(b) != 12 {
		return ObjectID{}, &InvalidIDError{Value: string(b)}
	}
	var id ObjectID
	copy(id[:], b)
	return id, nil
}

// FromHex builds an ObjectID from a 24-character hexadecimal string.
// Input is case-insensitive.
func FromHex(s string) (ObjectID, error) {
	if len(s) != 24 {
		return ObjectID{}, &InvalidIDError{Value: s}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return ObjectID{}, &InvalidIDError{Value: s}
	}
	var id ObjectID
	copy(id[:], b)
	return id, nil
}

// IsValid reports whether an ObjectID could be built from v. It accepts an
// existing ObjectID, a 24-character hex string, or a 12-byte slice. Nil and
// empty inputs are immediately false; no error ever escapes.
func IsValid(v any) bool {
	switch c := v.(type) {
	case ObjectID:
		return true
	case string:
		if c == "" {
			return false
		}
		_, err := FromHex(c)
		return err == nil
	case []byte:
		if len(c) == 0 {
			return false
		}
		_, err := FromBytes(c)
		return err == nil
	default:
		return false
	}
}

// Compare returns an integer comparing two ObjectIDs byte-wise,
// the ordering database indexes use.
func Compare(a, b ObjectID) int {
	return bytes.Compare(a[:], b[:])
}

// Hex returns the canonical lowercase 24-character hex rendering.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements fmt.Stringer. It returns the hex rendering.
func (id ObjectID) String() string {
	return id.Hex()
}

// Time returns the generation time stored in the first 4 bytes as a UTC
// timestamp precise to the second.
func (id ObjectID) Time() time.Time {
	sec := int32(binary.BigEndian.Uint32(id[0:4]))
	return time.Unix(int64(sec), 0).UTC()
}

// Machine returns the 3 machine-identifier bytes.
func (id ObjectID) Machine() []byte {
	m := make([]byte, 3)
	copy(m, id[4:7])
	return m
}

// PID returns the 16-bit process id field.
func (id ObjectID) PID() uint16 {
	return binary.BigEndian.Uint16(id[7:9])
}

// Counter returns the 24-bit counter field.
func (id ObjectID) Counter() uint32 {
	return uint32(id[9])<<16 | uint32(id[10])<<8 | uint32(id[11])
}

// MarshalText implements encoding.TextMarshaler using the hex form.
func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler from the hex form.
func (id *ObjectID) UnmarshalText(text []byte) error {
	v, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalJSON renders the ID as a quoted hex string.
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON parses a quoted hex string.
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return id.UnmarshalText([]byte(s))
}

// MarshalBinary implements encoding.BinaryMarshaler. The binary form is the
// raw 12 bytes.
func (id ObjectID) MarshalBinary() ([]byte, error) {
	return id.State(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Only the raw
// 12-byte form is accepted; see FromState for the legacy snapshot layouts.
func (id *ObjectID) UnmarshalBinary(data []byte) error {
	v, err := FromBytes(data)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Value implements driver.Valuer, storing the raw 12 bytes.
func (id ObjectID) Value() (driver.Value, error) {
	return id.State(), nil
}

// Scan implements sql.Scanner. It accepts the raw 12-byte form and the
// 24-character hex form, from either a []byte or a string column.
func (id *ObjectID) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		if len(v) == 24 {
			return id.UnmarshalText(v)
		}
		return id.UnmarshalBinary(v)
	case string:
		if len(v) == 12 {
			b, err := FromBytes([]byte(v))
			if err != nil {
				return err
			}
			*id = b
			return nil
		}
		return id.UnmarshalText([]byte(v))
	default:
		return &UnsupportedTypeError{Value: value}
	}
}
