package mcp

import (
	"context"
	"fmt"
	"strings"

	"mdbridge/internal/markdown"

	"github.com/adrg/frontmatter"
	"github.com/mark3labs/mcp-go/mcp"
)

// docFrontmatter is the optional YAML frontmatter accepted at the top
// of Markdown passed to create_document.
type docFrontmatter struct {
	Title string `yaml:"title"`
}

// registerTools wires all document tools into the mcp-go server.
func (s *Server) registerTools() {
	createTool := mcp.NewTool("create_document",
		mcp.WithDescription("Create a new document from Markdown. A YAML frontmatter block with a 'title' field overrides the title argument."),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("Markdown content for the document body"),
		),
		mcp.WithString("title",
			mcp.Description("Document title, used when the Markdown carries no frontmatter title"),
		),
	)
	s.mcpServer.AddTool(createTool, s.handleCreateDocument)

	readTool := mcp.NewTool("read_document",
		mcp.WithDescription("Read a document and return its content as Markdown."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("ID of the document to read"),
		),
	)
	s.mcpServer.AddTool(readTool, s.handleReadDocument)

	appendTool := mcp.NewTool("append_markdown",
		mcp.WithDescription("Convert Markdown and append it at the end of an existing document."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("ID of the document to append to"),
		),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("Markdown content to append"),
		),
	)
	s.mcpServer.AddTool(appendTool, s.handleAppendMarkdown)

	insertTool := mcp.NewTool("insert_markdown",
		mcp.WithDescription("Convert Markdown and insert it at a given index of an existing document."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("ID of the document to insert into"),
		),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("Markdown content to insert"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Insertion index in the document's character space, 1 is the start of the body"),
		),
	)
	s.mcpServer.AddTool(insertTool, s.handleInsertMarkdown)
}

func (s *Server) handleCreateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	md, err := req.RequireString("markdown")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title := strings.TrimSpace(req.GetString("title", ""))

	var matter docFrontmatter
	if body, err := frontmatter.Parse(strings.NewReader(md), &matter); err == nil {
		md = string(body)
		if strings.TrimSpace(matter.Title) != "" {
			title = strings.TrimSpace(matter.Title)
		}
	} else {
		s.logger.Debug("No usable frontmatter in markdown", "error", err)
	}
	if title == "" {
		title = "Untitled document"
	}

	doc, err := s.client.CreateDocument(ctx, title)
	if err != nil {
		s.logger.Error("Document creation failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	reqs, endIndex := markdown.BuildRequests(md, markdown.DefaultStartIndex)
	if err := s.client.BatchUpdate(ctx, doc.DocumentID, reqs); err != nil {
		s.logger.Error("Batch update failed", "documentId", doc.DocumentID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Document created from markdown",
		"documentId", doc.DocumentID,
		"title", title,
		"requests", len(reqs),
	)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Created document %q (%s) with %d characters.",
		title, doc.DocumentID, endIndex-markdown.DefaultStartIndex,
	)), nil
}

func (s *Server) handleReadDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := requireDocumentID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.client.GetDocument(ctx, documentID)
	if err != nil {
		s.logger.Error("Document fetch failed", "documentId", documentID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(markdown.FromDocument(doc)), nil
}

func (s *Server) handleAppendMarkdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := requireDocumentID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	md, err := req.RequireString("markdown")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.client.GetDocument(ctx, documentID)
	if err != nil {
		s.logger.Error("Document fetch failed", "documentId", documentID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// The body's terminal newline is immovable; new content goes just
	// before it.
	start := doc.Body.EndIndex() - 1
	if start < markdown.DefaultStartIndex {
		start = markdown.DefaultStartIndex
	}

	return s.applyMarkdown(ctx, documentID, md, start)
}

func (s *Server) handleInsertMarkdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := requireDocumentID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	md, err := req.RequireString("markdown")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index := req.GetInt("index", 0)
	if index < markdown.DefaultStartIndex {
		return mcp.NewToolResultError(fmt.Sprintf("index must be at least %d, got %d", markdown.DefaultStartIndex, index)), nil
	}

	return s.applyMarkdown(ctx, documentID, md, index)
}

// applyMarkdown converts md anchored at startIndex and sends the batch.
func (s *Server) applyMarkdown(ctx context.Context, documentID, md string, startIndex int) (*mcp.CallToolResult, error) {
	reqs, endIndex := markdown.BuildRequests(md, startIndex)
	if err := s.client.BatchUpdate(ctx, documentID, reqs); err != nil {
		s.logger.Error("Batch update failed", "documentId", documentID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Markdown applied",
		"documentId", documentID,
		"startIndex", startIndex,
		"endIndex", endIndex,
		"requests", len(reqs),
	)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Inserted %d characters into document %s at index %d.",
		endIndex-startIndex, documentID, startIndex,
	)), nil
}

func requireDocumentID(req mcp.CallToolRequest) (string, error) {
	documentID, err := req.RequireString("document_id")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(documentID) == "" {
		return "", fmt.Errorf("document_id must not be empty")
	}
	return documentID, nil
}
