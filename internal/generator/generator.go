package generator

import "time"

// Scheme names accepted by the API. ObjectID is the default scheme.
const (
	SchemeObjectID = "objectid"
	SchemeUUID     = "uuid"
	SchemeULID     = "ulid"
	SchemeKSUID    = "ksuid"
	SchemeNanoID   = "nanoid"
	SchemeCUID2    = "cuid2"
)

// Generator is the strategy interface every identifier scheme implements.
type Generator interface {
	Generate() (string, error)
	GenerateBatch(count int) ([]string, error)
	Validate(id string) (valid bool, reason string)
	Parse(id string) (*Fields, error)
}

// Fields is the scheme-specific decomposition of an identifier. Only the
// fields a scheme actually encodes are populated.
type Fields struct {
	// Time is the embedded generation time (ObjectID, ULID, KSUID).
	Time *time.Time `json:"time,omitempty"`
	// Machine is the hex machine-identifier bytes (ObjectID).
	Machine string `json:"machine,omitempty"`
	// PID is the embedded process id (ObjectID). Pointer so a legitimate
	// zero value still renders.
	PID *uint16 `json:"pid,omitempty"`
	// Counter is the embedded counter value (ObjectID). Pointer for the
	// same reason as PID.
	Counter *uint32 `json:"counter,omitempty"`
	// Payload is the hex random payload (ULID, KSUID).
	Payload string `json:"payload,omitempty"`
	// Version and Variant describe UUID internals.
	Version int    `json:"version,omitempty"`
	Variant string `json:"variant,omitempty"`
	// Length and Alphabet describe alphabet-based schemes (NanoID, CUID2).
	Length   int    `json:"length,omitempty"`
	Alphabet string `json:"alphabet,omitempty"`
}

// generateN builds a batch by repeated single generation. All schemes share
// it; none of them has a cheaper bulk path.
func generateN(count int, generate func() (string, error)) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := generate()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
