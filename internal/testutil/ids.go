package testutil

// ConstantIDGenerator returns the same cycle ID every time, for tests that
// only care that cycles are labelled, not how.
//
// Thread-safety: stateless and safe for concurrent use.
type ConstantIDGenerator struct {
	id string
}

// NewConstantIDGenerator creates a generator returning id, or
// "test-cycle" when id is empty.
func NewConstantIDGenerator(id string) *ConstantIDGenerator {
	if id == "" {
		id = "test-cycle"
	}
	return &ConstantIDGenerator{id: id}
}

// Generate returns the fixed ID.
func (g *ConstantIDGenerator) Generate() string {
	return g.id
}
