package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/tarikhaida/menu-tracker/constants"
)

// Document represents one processed source image in the ledger.
type Document struct {
	ID           uuid.UUID                `json:"id"`
	Filename     string                   `json:"filename"`
	ContentHash  string                   `json:"content_hash"`
	Status       constants.DocumentStatus `json:"status"`
	RecordCount  int                      `json:"record_count"`
	ErrorMessage string                   `json:"error_message,omitempty"`
	ProcessedAt  time.Time                `json:"processed_at"`
}
