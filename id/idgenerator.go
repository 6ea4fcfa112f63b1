// Package id generates identifiers for packets and simulation runs.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// An IDGenerator generates IDs.
type IDGenerator interface {
	Generate() string
}

// NewSequentialIDGenerator returns a generator that produces "1", "2", ...
// Sequential IDs keep runs deterministic.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

// NewXIDGenerator returns a generator that produces globally unique IDs.
// Used for run IDs, where uniqueness across processes matters more than
// determinism.
func NewXIDGenerator() IDGenerator {
	return xidGenerator{}
}

type xidGenerator struct{}

func (g xidGenerator) Generate() string {
	return xid.New().String()
}
