package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates lexicographically sortable ULIDs with
// millisecond timestamps and crypto/rand entropy.
type ULIDGenerator struct{}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

func (g *ULIDGenerator) Generate() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}

func (g *ULIDGenerator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *ULIDGenerator) Validate(id string) (bool, string) {
	if len(id) != 26 {
		return false, fmt.Sprintf("expected length 26, got %d", len(id))
	}
	if _, err := ulid.Parse(id); err != nil {
		return false, fmt.Sprintf("invalid ULID: %v", err)
	}
	return true, ""
}

func (g *ULIDGenerator) Parse(id string) (*Fields, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid ULID: %w", err)
	}

	ts := time.UnixMilli(int64(parsed.Time())).UTC()
	return &Fields{
		Time:    &ts,
		Payload: hex.EncodeToString(parsed.Entropy()),
	}, nil
}
