package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mdbridge/internal/config"
	"mdbridge/internal/docs"
	"mdbridge/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := logging.NewTestLogger()
	cfg := &config.Config{ServiceURL: srv.URL, TimeoutSeconds: 5}
	client := docs.NewClient(srv.URL, "test-token", 5*time.Second, logger)
	return NewServerWithClient(cfg, logger, client)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content item should be text")
	return tc.Text
}

func decodeBatch(t *testing.T, r *http.Request) []docs.Request {
	t.Helper()
	var body struct {
		Requests []docs.Request `json:"requests"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body.Requests
}

func TestCreateDocumentUsesFrontmatterTitle(t *testing.T) {
	var createdTitle string
	var batch []docs.Request

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/documents":
			var body struct {
				Title string `json:"title"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			createdTitle = body.Title
			json.NewEncoder(w).Encode(docs.Document{DocumentID: "doc-1", Title: body.Title})
		case "/v1/documents/doc-1:batchUpdate":
			batch = decodeBatch(t, r)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	md := "---\ntitle: Meeting Notes\n---\n# Agenda\nitems"
	res, err := server.handleCreateDocument(context.Background(), callRequest("create_document", map[string]any{
		"markdown": md,
		"title":    "Ignored",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, "Meeting Notes", createdTitle)
	assert.Contains(t, resultText(t, res), "doc-1")

	// Frontmatter is stripped before conversion: the first insert is
	// the heading text, not the delimiter line.
	require.NotEmpty(t, batch)
	require.NotNil(t, batch[0].InsertText)
	assert.Equal(t, "Agenda\n", batch[0].InsertText.Text)
}

func TestCreateDocumentWithoutFrontmatter(t *testing.T) {
	var createdTitle string

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/documents":
			var body struct {
				Title string `json:"title"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			createdTitle = body.Title
			json.NewEncoder(w).Encode(docs.Document{DocumentID: "doc-2", Title: body.Title})
		default:
			w.WriteHeader(http.StatusOK)
		}
	})

	res, err := server.handleCreateDocument(context.Background(), callRequest("create_document", map[string]any{
		"markdown": "plain text",
		"title":    "My Title",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "My Title", createdTitle)
}

func TestCreateDocumentMissingMarkdown(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the service")
	})

	res, err := server.handleCreateDocument(context.Background(), callRequest("create_document", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReadDocumentRendersMarkdown(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/documents/doc-3", r.URL.Path)
		json.NewEncoder(w).Encode(docs.Document{
			DocumentID: "doc-3",
			Body: docs.Body{Content: []docs.StructuralElement{
				{Paragraph: &docs.Paragraph{
					Elements:       []docs.ParagraphElement{{TextRun: &docs.TextRun{Content: "Title\n"}}},
					ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: "HEADING_1"},
				}},
				{Paragraph: &docs.Paragraph{
					Elements: []docs.ParagraphElement{{TextRun: &docs.TextRun{
						Content:   "bold",
						TextStyle: &docs.TextStyle{Bold: true},
					}}},
				}},
			}},
		})
	})

	res, err := server.handleReadDocument(context.Background(), callRequest("read_document", map[string]any{
		"document_id": "doc-3",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "# Title\n**bold**", resultText(t, res))
}

func TestReadDocumentEmptyID(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the service")
	})

	res, err := server.handleReadDocument(context.Background(), callRequest("read_document", map[string]any{
		"document_id": "  ",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAppendMarkdownAnchorsBeforeFinalNewline(t *testing.T) {
	var batch []docs.Request

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/documents/doc-4":
			json.NewEncoder(w).Encode(docs.Document{
				DocumentID: "doc-4",
				Body: docs.Body{Content: []docs.StructuralElement{
					{EndIndex: 20, Paragraph: &docs.Paragraph{}},
				}},
			})
		case "/v1/documents/doc-4:batchUpdate":
			batch = decodeBatch(t, r)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	res, err := server.handleAppendMarkdown(context.Background(), callRequest("append_markdown", map[string]any{
		"document_id": "doc-4",
		"markdown":    "more",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotEmpty(t, batch)
	require.NotNil(t, batch[0].InsertText)
	assert.Equal(t, 19, batch[0].InsertText.Location.Index)
	assert.Equal(t, "more\n", batch[0].InsertText.Text)
}

func TestAppendMarkdownEmptyDocumentStartsAtOne(t *testing.T) {
	var batch []docs.Request

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/documents/doc-5":
			json.NewEncoder(w).Encode(docs.Document{DocumentID: "doc-5"})
		case "/v1/documents/doc-5:batchUpdate":
			batch = decodeBatch(t, r)
			w.WriteHeader(http.StatusOK)
		}
	})

	_, err := server.handleAppendMarkdown(context.Background(), callRequest("append_markdown", map[string]any{
		"document_id": "doc-5",
		"markdown":    "x",
	}))
	require.NoError(t, err)

	require.NotEmpty(t, batch)
	assert.Equal(t, 1, batch[0].InsertText.Location.Index)
}

func TestInsertMarkdownRejectsBadIndex(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the service")
	})

	res, err := server.handleInsertMarkdown(context.Background(), callRequest("insert_markdown", map[string]any{
		"document_id": "doc-6",
		"markdown":    "x",
		"index":       0,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestInsertMarkdownAtIndex(t *testing.T) {
	var batch []docs.Request

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/documents/doc-7:batchUpdate", r.URL.Path)
		batch = decodeBatch(t, r)
		w.WriteHeader(http.StatusOK)
	})

	res, err := server.handleInsertMarkdown(context.Background(), callRequest("insert_markdown", map[string]any{
		"document_id": "doc-7",
		"markdown":    "**bold**",
		"index":       5,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.Len(t, batch, 2)
	assert.Equal(t, 5, batch[0].InsertText.Location.Index)
	require.NotNil(t, batch[1].UpdateTextStyle)
	assert.Equal(t, docs.Range{StartIndex: 5, EndIndex: 9}, batch[1].UpdateTextStyle.Range)
}
