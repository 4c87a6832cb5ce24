package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which operation produced an analysis.
type Kind string

// Analysis kinds.
const (
	KindParse Kind = "parse"
	KindMatch Kind = "match"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindParse || k == KindMatch
}

// Analysis is a stored parse or match result. Inputs are kept only as a hash.
type Analysis struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	InputHash string          `json:"input_hash"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// DefaultListLimit applies when ListAnalyses is called with a non-positive limit.
const DefaultListLimit = 20

// MaxListLimit caps ListAnalyses.
const MaxListLimit = 200
