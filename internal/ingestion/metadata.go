package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where an ingested document came from.
type Metadata struct {
	Source    string `json:"source"` // File path or URL
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"` // SHA-256 of the cleaned text
	Platform  string `json:"platform,omitempty"`
	Chars     int    `json:"chars"`
}

// NewMetadata describes cleaned text read from source at now.
func NewMetadata(text, source string, now time.Time) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: now.UTC().Format(time.RFC3339),
		Hash:      HashText(text),
		Chars:     len([]rune(text)),
	}
}

// HashText returns the hex SHA-256 digest of text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
