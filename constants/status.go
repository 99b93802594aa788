package constants

// DocumentStatus is the canonical status for rows in the processed-document
// ledger.
type DocumentStatus string

// Stable values (store these exact strings in the ledger).
const (
	DocStatusQueued    DocumentStatus = "QUEUED"    // discovered, not yet uploaded
	DocStatusRunning   DocumentStatus = "RUNNING"   // uploaded, OCR in progress
	DocStatusCompleted DocumentStatus = "COMPLETED" // parsed and stored
	DocStatusFailed    DocumentStatus = "FAILED"    // terminal failure for this run
)
