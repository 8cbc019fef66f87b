package generator

import (
	"encoding/hex"
	"fmt"

	"github.com/segmentio/ksuid"
)

// KSUIDGenerator generates K-sortable KSUIDs with second-precision
// timestamps and a 128-bit random payload.
type KSUIDGenerator struct{}

func NewKSUIDGenerator() *KSUIDGenerator {
	return &KSUIDGenerator{}
}

func (g *KSUIDGenerator) Generate() (string, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate ksuid: %w", err)
	}
	return id.String(), nil
}

func (g *KSUIDGenerator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *KSUIDGenerator) Validate(id string) (bool, string) {
	if len(id) != 27 {
		return false, fmt.Sprintf("expected length 27, got %d", len(id))
	}
	if _, err := ksuid.Parse(id); err != nil {
		return false, fmt.Sprintf("invalid KSUID: %v", err)
	}
	return true, ""
}

func (g *KSUIDGenerator) Parse(id string) (*Fields, error) {
	parsed, err := ksuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid KSUID: %w", err)
	}

	ts := parsed.Time().UTC()
	return &Fields{
		Time:    &ts,
		Payload: hex.EncodeToString(parsed.Payload()),
	}, nil
}
