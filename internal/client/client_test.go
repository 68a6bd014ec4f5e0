package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbharat/lexbharat/internal/domain/analysis"
	"github.com/lexbharat/lexbharat/internal/domain/chat"
	"github.com/lexbharat/lexbharat/internal/domain/document"
)

func TestUpload_RejectsNonPDFWithoutNetworkCall(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Upload(context.Background(), "notes.txt", "text/plain", 5, strings.NewReader("hello"))

	assert.ErrorIs(t, err, document.ErrInvalidInput)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/documents", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("pdfFile")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "contract.pdf", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{"documentId": "uploads/xyz-contract.pdf"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.Upload(context.Background(), "contract.pdf", "application/pdf", 9, strings.NewReader("%PDF-1.4\n"))

	require.NoError(t, err)
	assert.Equal(t, analysis.DocumentID("uploads/xyz-contract.pdf"), id)
}

func TestFetchAnalysis_StatusMapping(t *testing.T) {
	complete := &analysis.Record{
		DocumentID:       "uploads/xyz-contract.pdf",
		ComplianceStatus: "Issues Found",
		PotentialIssues:  []string{"a"},
		Recommendations:  []string{"b"},
		VisualizationURL: "https://x/y.png",
	}

	tests := []struct {
		name      string
		respond   func(w http.ResponseWriter)
		wantState RecordState
	}{
		{"not found", func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusNotFound)
		}, StateNotFound},
		{"processing", func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]any{"status": "processing", "missing": []string{"visualization"}})
		}, StateProcessing},
		{"complete", func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode(complete)
		}, StateReady},
		{"ok body but incomplete", func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode(&analysis.Record{ComplianceStatus: "Compliant"})
		}, StateProcessing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/documents/uploads/xyz-contract.pdf/analysis", r.URL.Path)
				tt.respond(w)
			}))
			defer srv.Close()

			snap, err := New(srv.URL).FetchAnalysis(context.Background(), "uploads/xyz-contract.pdf")
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, snap.State)
		})
	}
}

// Ids are minted from user filenames, so they can contain characters
// with URL meaning. The request path must carry the id intact.
func TestFetchAnalysis_EscapesIDInRequestPath(t *testing.T) {
	tests := []struct {
		id       analysis.DocumentID
		wantRaw  string
		wantPath string
	}{
		{
			id:       "uploads/xyz-draft#2.pdf",
			wantRaw:  "/v1/documents/uploads/xyz-draft%232.pdf/analysis",
			wantPath: "/v1/documents/uploads/xyz-draft#2.pdf/analysis",
		},
		{
			id:       "uploads/xyz-100%off.pdf",
			wantRaw:  "/v1/documents/uploads/xyz-100%25off.pdf/analysis",
			wantPath: "/v1/documents/uploads/xyz-100%off.pdf/analysis",
		},
		{
			id:       "uploads/xyz-terms?final.pdf",
			wantRaw:  "/v1/documents/uploads/xyz-terms%3Ffinal.pdf/analysis",
			wantPath: "/v1/documents/uploads/xyz-terms?final.pdf/analysis",
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantRaw, r.RequestURI)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}))
			defer srv.Close()

			snap, err := New(srv.URL).FetchAnalysis(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, StateNotFound, snap.State)
		})
	}
}

func TestFetchAnalysis_ProcessingCarriesMissingParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{"missing": []string{"analysis", "visualization"}})
	}))
	defer srv.Close()

	snap, err := New(srv.URL).FetchAnalysis(context.Background(), "uploads/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"analysis", "visualization"}, snap.Missing)
}

func TestChat_EmptyPromptFailsLocally(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Chat(context.Background(), "   ")
	assert.ErrorIs(t, err, chat.ErrEmptyPrompt)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestChat_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "what is article 21?", body.Message)
		json.NewEncoder(w).Encode(map[string]string{"response": "Article 21 protects life and personal liberty."})
	}))
	defer srv.Close()

	reply, err := New(srv.URL).Chat(context.Background(), "what is article 21?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Article 21")
}

func TestChat_EmptyUpstreamResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": ""})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, chat.ErrUpstream)
}
