package generator

import (
	"fmt"

	"github.com/nrednav/cuid2"
)

const DefaultCUID2Length = 24

// CUID2Generator generates collision-resistant CUID2 identifiers.
type CUID2Generator struct {
	length   int
	generate func() string
}

// NewCUID2Generator creates a CUID2Generator. length must be in [2, 32].
func NewCUID2Generator(length int) (*CUID2Generator, error) {
	if length < 2 || length > 32 {
		return nil, fmt.Errorf("cuid2 length must be between 2 and 32, got %d", length)
	}
	gen, err := cuid2.Init(cuid2.WithLength(length))
	if err != nil {
		return nil, fmt.Errorf("init cuid2: %w", err)
	}
	return &CUID2Generator{length: length, generate: gen}, nil
}

func (g *CUID2Generator) Generate() (string, error) {
	return g.generate(), nil
}

func (g *CUID2Generator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *CUID2Generator) Validate(id string) (bool, string) {
	if len(id) != g.length {
		return false, fmt.Sprintf("expected length %d, got %d", g.length, len(id))
	}
	if !cuid2.IsCuid(id) {
		return false, "invalid CUID2"
	}
	return true, ""
}

func (g *CUID2Generator) Parse(id string) (*Fields, error) {
	if valid, reason := g.Validate(id); !valid {
		return nil, fmt.Errorf("invalid CUID2: %s", reason)
	}

	return &Fields{Length: len(id)}, nil
}
