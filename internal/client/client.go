// Package client is the Go SDK for the LexBharat API, used by the lexctl
// CLI and by the polling session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/lexbharat/lexbharat/internal/domain/analysis"
	"github.com/lexbharat/lexbharat/internal/domain/chat"
	"github.com/lexbharat/lexbharat/internal/domain/document"
)

// RecordState classifies one status query result.
type RecordState int

const (
	StateNotFound RecordState = iota
	StateProcessing
	StateReady
)

// Snapshot is the outcome of a single status query. Ready snapshots have
// passed the completeness check client-side; a 200 body that fails it is
// downgraded to Processing.
type Snapshot struct {
	State   RecordState
	Record  *analysis.Record
	Missing []string
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload submits one PDF and returns the document id used for polling.
// The PDF constraint is checked locally first so an invalid file never
// reaches the network.
func (c *Client) Upload(ctx context.Context, fileName, contentType string, size int64, body io.Reader) (analysis.DocumentID, error) {
	up := document.Upload{FileName: fileName, ContentType: contentType, Size: size}
	if err := up.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdfFile"; filename=%q`, fileName))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/documents", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: %s", readMessage(resp.Body, resp.StatusCode))
	}

	var out struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("parse upload response: %w", err)
	}
	if out.DocumentID == "" {
		return "", fmt.Errorf("upload response missing documentId")
	}
	return analysis.DocumentID(out.DocumentID), nil
}

// FetchAnalysis runs one status query for a document.
func (c *Client) FetchAnalysis(ctx context.Context, id analysis.DocumentID) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL(id), nil)
	if err != nil {
		return Snapshot{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return Snapshot{State: StateNotFound}, nil
	case http.StatusAccepted:
		var body struct {
			Missing []string `json:"missing"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return Snapshot{State: StateProcessing, Missing: body.Missing}, nil
	case http.StatusOK:
		var rec analysis.Record
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return Snapshot{}, fmt.Errorf("parse analysis record: %w", err)
		}
		// the server already vouched for completeness, but a thin proxy or
		// cache in between could serve a stale partial body
		if !analysis.IsComplete(&rec) {
			return Snapshot{State: StateProcessing, Record: &rec, Missing: analysis.MissingParts(&rec)}, nil
		}
		return Snapshot{State: StateReady, Record: &rec}, nil
	default:
		return Snapshot{}, fmt.Errorf("status query: %s", readMessage(resp.Body, resp.StatusCode))
	}
}

// Chat sends one prompt to the assistant. Empty prompts fail locally.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", chat.ErrEmptyPrompt
	}

	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", chat.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", chat.ErrUpstream, readMessage(resp.Body, resp.StatusCode))
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", chat.ErrUpstream, err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("%w: empty response", chat.ErrUpstream)
	}
	return out.Response, nil
}

// statusURL builds the status query URL for a document id. Ids are
// object keys minted from user filenames, so every segment is escaped;
// a raw "#" or "%" in the path would otherwise corrupt the request.
func (c *Client) statusURL(id analysis.DocumentID) string {
	segs := strings.Split(string(id), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return c.baseURL + "/v1/documents/" + strings.Join(segs, "/") + "/analysis"
}

func readMessage(body io.Reader, status int) string {
	var parsed struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	if json.Unmarshal(raw, &parsed) == nil && parsed.Message != "" {
		return fmt.Sprintf("%s (status %d)", parsed.Message, status)
	}
	return fmt.Sprintf("status %d", status)
}
