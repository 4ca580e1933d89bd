// Package ids mints the identifiers returned by the generate workload.
package ids

import (
	"github.com/google/uuid"
)

// Generator produces identifiers that are unique across the cluster.
type Generator interface {
	Generate() (string, error)
}

// UUIDGenerator mints version 7 UUIDs. They are 128 bits wide, start with a
// millisecond timestamp, and are monotonic within a process, so their
// canonical string form sorts in creation order.
type UUIDGenerator struct{}

// NewUUIDGenerator ...
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate implements the Generator interface.
func (g *UUIDGenerator) Generate() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func() (string, error)

// Generate implements the Generator interface.
func (f GeneratorFunc) Generate() (string, error) {
	return f()
}
