// Package mcp implements the Model Context Protocol (MCP) server for
// mdbridge using the mcp-go library.
//
// The server exposes tools that let AI assistants create, read, and
// extend documents held by the remote structured-document service,
// using the markdown package for both conversion directions.
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go).
// Communication runs over stdin/stdout using JSON-RPC 2.0 as specified
// by the MCP standard; all logging goes to stderr so the protocol
// stream stays clean.
//
// # Tools
//
//   - create_document: create a document from Markdown; a YAML
//     frontmatter title block overrides the title argument
//   - read_document: fetch a document and return it as Markdown
//   - append_markdown: convert Markdown and append it at the end of an
//     existing document
//   - insert_markdown: convert Markdown anchored at a caller-supplied
//     index
//
// Tool handlers validate IDs and indexes before anything is sent to the
// service; the markdown package itself never validates and never fails.
//
// # Usage
//
// The server is typically started as a subprocess by AI assistants that
// support MCP integration. It can also be started manually:
//
//	mdbridge serve
//
// The server reads JSON-RPC requests from stdin and writes responses to
// stdout until it receives EOF or is terminated.
package mcp
