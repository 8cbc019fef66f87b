package generator

import (
	"encoding/hex"
	"fmt"

	"github.com/atlasid/oid-service/pkg/oid"
)

// ObjectIDGenerator generates 12-byte ObjectID identifiers. It is the
// primary scheme of the service.
type ObjectIDGenerator struct {
	src *oid.Source
}

// NewObjectIDGenerator creates an ObjectIDGenerator backed by src, or by the
// process-wide default source when src is nil.
func NewObjectIDGenerator(src *oid.Source) *ObjectIDGenerator {
	if src == nil {
		src = oid.DefaultSource()
	}
	return &ObjectIDGenerator{src: src}
}

func (g *ObjectIDGenerator) Generate() (string, error) {
	return g.src.New().Hex(), nil
}

func (g *ObjectIDGenerator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *ObjectIDGenerator) Validate(id string) (bool, string) {
	if len(id) != 24 {
		return false, fmt.Sprintf("expected length 24, got %d", len(id))
	}
	if _, err := oid.FromHex(id); err != nil {
		return false, "not a valid hex string"
	}
	return true, ""
}

func (g *ObjectIDGenerator) Parse(id string) (*Fields, error) {
	parsed, err := oid.FromHex(id)
	if err != nil {
		return nil, err
	}

	ts := parsed.Time()
	pid := parsed.PID()
	counter := parsed.Counter()
	return &Fields{
		Time:    &ts,
		Machine: hex.EncodeToString(parsed.Machine()),
		PID:     &pid,
		Counter: &counter,
	}, nil
}
