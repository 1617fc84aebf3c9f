package complaint

import (
	"encoding/binary"
	"math"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
)

// Reserved hash field names. Metadata keys are stored flat next to them, so
// the reserved names carry a leading underscore to avoid collisions.
const (
	fieldText   = "_text"
	fieldVector = "vector"
)

// buildHashFields converts a complaint and its embedding into a flat
// map[string]string for HSET.
func buildHashFields(c *domain.Complaint, vector []float32) map[string]string {
	m := make(map[string]string, 2+len(c.Metadata()))
	m[fieldText] = c.Text()
	m[fieldVector] = vectorToBytes(vector)
	for k, v := range c.Metadata() {
		m[k] = v
	}
	return m
}

// parseHashFields converts a flat hash map back into a complaint.
func parseHashFields(id string, fields map[string]string) domain.Complaint {
	var text string
	metadata := make(map[string]string)

	for k, v := range fields {
		switch k {
		case fieldText:
			text = v
		case fieldVector:
			// embeddings stay internal to the store
		default:
			metadata[k] = v
		}
	}

	return domain.NewComplaint(id, text, metadata)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float,
// little-endian), the layout FT.SEARCH expects for vector blobs.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
