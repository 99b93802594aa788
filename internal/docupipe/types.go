package docupipe

import "encoding/json"

// Wire types for the Docupipe document API.

// uploadRequest wraps the base64 image upload.
type uploadRequest struct {
	Document documentPayload `json:"document"`
}

type documentPayload struct {
	File filePayload `json:"file"`
}

type filePayload struct {
	Contents string `json:"contents"` // base64
	Filename string `json:"filename"`
}

// UploadResult identifies an accepted document and its processing job.
type UploadResult struct {
	DocumentID string `json:"documentId"`
	JobID      string `json:"jobId"`
}

// jobResponse is the polling response for GET /job/{id}. Status is
// "completed" or "failed" when terminal. Error is kept raw so a failure can
// be surfaced verbatim.
type jobResponse struct {
	Status string          `json:"status"`
	Error  json.RawMessage `json:"error,omitempty"`
}

const (
	jobStatusCompleted = "completed"
	jobStatusFailed    = "failed"
)

// documentResponse is GET /document/{id}: the OCR result with the full
// markdown text.
type documentResponse struct {
	Result struct {
		Text string `json:"text"`
	} `json:"result"`
}
