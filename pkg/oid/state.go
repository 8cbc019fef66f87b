package oid

// stateKey is the fixed map key older snapshots stored the raw bytes under.
const stateKey = "oid"

// State captures the identifier as an opaque snapshot: its raw 12 bytes.
func (id ObjectID) State() []byte {
	b := make([]byte, 12)
	copy(b, id[:])
	return b
}

// FromState restores an identifier from a snapshot. The primary form is the
// raw 12 bytes produced by State. Two legacy layouts are decoded as
// fallbacks, in this order:
//
//  1. a map holding the bytes under the "oid" key, as written by snapshot
//     code that persisted the whole wrapper struct;
//  2. a text snapshot whose code points are the raw byte values, as written
//     when the bytes were stored through a single-byte (Latin-1) text
//     column. Restoring re-encodes each code point back to one byte.
//
// An existing ObjectID is returned as-is (copy semantics).
func FromState(state any) (ObjectID, error) {
	switch v := state.(type) {
	case ObjectID:
		return v, nil
	case []byte:
		return FromBytes(v)
	case map[string][]byte:
		raw, ok := v[stateKey]
		if !ok {
			return ObjectID{}, &UnsupportedTypeError{Value: state}
		}
		return FromBytes(raw)
	case map[string]any:
		raw, ok := v[stateKey]
		if !ok {
			return ObjectID{}, &UnsupportedTypeError{Value: state}
		}
		return FromState(raw)
	case string:
		b, err := latin1Bytes(v)
		if err != nil {
			return ObjectID{}, err
		}
		return FromBytes(b)
	default:
		return ObjectID{}, &UnsupportedTypeError{Value: state}
	}
}

// latin1Bytes maps each code point back to a single byte. Code points above
// 0xFF cannot come from a Latin-1 snapshot and are rejected.
func latin1Bytes(s string) ([]byte, error) {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, &InvalidIDError{Value: s}
		}
		b = append(b, byte(r))
	}
	return b, nil
}
