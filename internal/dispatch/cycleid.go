package dispatch

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces cycle identifiers used to correlate logs and reports.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 cycle IDs.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined IDs, for deterministic tests and
// golden snapshots. After the list is exhausted it keeps returning the
// last ID suffixed with the call count.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.ids) == 0 {
		panic("FixedGenerator: no ids configured")
	}
	i := g.idx
	g.idx++
	if i < len(g.ids) {
		return g.ids[i]
	}
	return g.ids[len(g.ids)-1] + "-" + strconv.Itoa(i)
}
