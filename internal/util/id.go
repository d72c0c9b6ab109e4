// Package util provides identifier and money helpers for crumbwork.
package util

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator provides thread-safe UUIDv7 generation with monotonic timestamps.
type IDGenerator struct {
	mu       sync.Mutex
	lastTime int64
	counter  uint16
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewID generates a new UUIDv7 identifier from this generator.
// UUIDv7 provides time-ordered identifiers for better database index locality.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()

	// Handle same-millisecond IDs with counter
	if now == g.lastTime {
		g.counter++
		if g.counter == 0 {
			// Counter overflow, wait for next millisecond
			for now == g.lastTime {
				time.Sleep(time.Microsecond * 100)
				now = time.Now().UnixMilli()
			}
			g.counter = 0
		}
	} else {
		g.lastTime = now
		g.counter = 0
	}

	return generateUUIDv7(now, g.counter)
}

var generator = &IDGenerator{}

// NewID generates a new UUIDv7 identifier from the package-level generator.
func NewID() string {
	return generator.NewID()
}

// generateUUIDv7 creates a UUIDv7 from a timestamp and counter.
func generateUUIDv7(unixMilli int64, counter uint16) string {
	var id [16]byte

	// First 48 bits: Unix timestamp in milliseconds (big endian)
	binary.BigEndian.PutUint32(id[0:4], uint32(unixMilli>>16))
	binary.BigEndian.PutUint16(id[4:6], uint16(unixMilli))

	// Version (4 bits) + counter (12 bits)
	id[6] = 0x70 | (byte(counter>>8) & 0x0F)
	id[7] = byte(counter)

	// Variant (2 bits) + random (62 bits)
	var randomBytes [8]byte
	rand.Read(randomBytes[:])
	copy(id[8:], randomBytes[:])
	id[8] = (id[8] & 0x3F) | 0x80 // Set variant to RFC 4122

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// ParseID validates and parses a UUID string.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID checks if a string is a valid UUID format.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// SKUGenerator produces sequential product SKUs.
// Format: {prefix}-{5-digit sequence}, e.g. PRD-00001.
type SKUGenerator struct {
	mu      sync.Mutex
	prefix  string
	lastSeq int
}

// NewSKUGenerator creates a SKU generator with the given prefix.
func NewSKUGenerator(prefix string) *SKUGenerator {
	if prefix == "" {
		prefix = "PRD"
	}
	return &SKUGenerator{prefix: prefix}
}

// SetLastSequence sets the last used sequence number, typically loaded
// from the highest existing SKU at startup.
func (g *SKUGenerator) SetLastSequence(seq int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeq = seq
}

// Next returns the next SKU in sequence.
func (g *SKUGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeq++
	return fmt.Sprintf("%s-%05d", g.prefix, g.lastSeq)
}
