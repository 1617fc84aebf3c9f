// Package domain holds the core helpdesk types shared between layers.
package domain

// KeyPrefix namespaces all store keys written by this service.
const KeyPrefix = "helpdesk:"

// DefaultMetadata is stored when a caller supplies no metadata.
// The backing store rejects empty metadata records.
func DefaultMetadata() map[string]string {
	return map[string]string{"type": "complaint"}
}

// Complaint is a stored customer complaint. Immutable after ingestion.
type Complaint struct {
	id       string
	text     string
	metadata map[string]string
}

// NewComplaint builds a complaint. Empty metadata is replaced with the
// default sentinel record.
func NewComplaint(id, text string, metadata map[string]string) Complaint {
	if len(metadata) == 0 {
		metadata = DefaultMetadata()
	}
	return Complaint{id: id, text: text, metadata: metadata}
}

// ID returns the unique complaint identifier.
func (c *Complaint) ID() string { return c.id }

// Text returns the complaint text.
func (c *Complaint) Text() string { return c.text }

// Metadata returns the complaint metadata. Never empty.
func (c *Complaint) Metadata() map[string]string { return c.metadata }
