// Package docupipe is the HTTP client for the Docupipe document-processing
// API: upload an image, poll the job until it reaches a terminal status,
// then fetch the extracted text.
package docupipe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tarikhaida/menu-tracker/internal/common"
)

// Config holds client settings. Zero values get defaults in NewClient.
type Config struct {
	BaseURL string
	APIKey  string

	PollInterval time.Duration // initial polling interval
	PollCeiling  time.Duration // backoff ceiling
	MaxWait      time.Duration // total polling budget per job
	HTTPTimeout  time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://app.docupipe.ai"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.PollCeiling <= 0 {
		cfg.PollCeiling = 10 * time.Second
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 60 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger,
	}
}

// Upload sends image bytes for processing and returns the document and job
// identifiers.
func (c *Client) Upload(ctx context.Context, filename string, contents []byte) (UploadResult, error) {
	payload := uploadRequest{
		Document: documentPayload{
			File: filePayload{
				Contents: base64.StdEncoding.EncodeToString(contents),
				Filename: filename,
			},
		},
	}

	var result UploadResult
	if err := c.doJSON(ctx, http.MethodPost, "/document", payload, &result); err != nil {
		return UploadResult{}, common.WrapError(err, "upload document")
	}
	if result.DocumentID == "" || result.JobID == "" {
		return UploadResult{}, fmt.Errorf("upload document: response missing documentId/jobId")
	}

	c.logger.Debug("docupipe.upload.ok",
		"filename", filename, "document_id", result.DocumentID, "job_id", result.JobID,
		"run_id", common.RunIDFromContext(ctx))
	return result, nil
}

// WaitForCompletion polls the job until it reaches a terminal status, with
// exponential backoff capped at the configured ceiling and a bounded total
// wait. A failed job surfaces its error payload verbatim.
func (c *Client) WaitForCompletion(ctx context.Context, jobID string) error {
	deadline := time.Now().Add(c.cfg.MaxWait)
	wait := c.cfg.PollInterval

	for {
		var job jobResponse
		if err := c.doJSON(ctx, http.MethodGet, "/job/"+jobID, nil, &job); err != nil {
			return common.WrapError(err, "poll job")
		}

		switch job.Status {
		case jobStatusCompleted:
			return nil
		case jobStatusFailed:
			msg := "unknown error"
			if len(job.Error) > 0 {
				msg = string(job.Error)
			}
			return fmt.Errorf("document processing failed: %s", msg)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("document processing timeout after %s (job %s)", c.cfg.MaxWait, jobID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		wait = time.Duration(float64(wait) * 1.5)
		if wait > c.cfg.PollCeiling {
			wait = c.cfg.PollCeiling
		}
	}
}

// FetchText retrieves the extracted text for a completed document.
func (c *Client) FetchText(ctx context.Context, documentID string) (string, error) {
	var doc documentResponse
	if err := c.doJSON(ctx, http.MethodGet, "/document/"+documentID, nil, &doc); err != nil {
		return "", common.WrapError(err, "fetch document")
	}
	return doc.Result.Text, nil
}

// ProcessImage runs the full upload/poll/fetch sequence for one image and
// returns its extracted text.
func (c *Client) ProcessImage(ctx context.Context, filename string, contents []byte) (string, error) {
	start := time.Now()

	up, err := c.Upload(ctx, filename, contents)
	if err != nil {
		return "", err
	}
	if err := c.WaitForCompletion(ctx, up.JobID); err != nil {
		return "", err
	}
	text, err := c.FetchText(ctx, up.DocumentID)
	if err != nil {
		return "", err
	}

	c.logger.Info("docupipe.process.ok",
		"filename", filename,
		"document_id", up.DocumentID,
		"text_bytes", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(string(data), 512))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse response: %w, body: %s", err, truncate(string(data), 512))
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
