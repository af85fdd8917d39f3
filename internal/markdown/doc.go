// Package markdown converts between flat Markdown text and the remote
// document service's index-addressed model.
//
// The forward direction turns a Markdown string into an ordered batch of
// positional edit requests (insert text, restyle ranges, apply headings
// and bullets) against a single forward-only cursor. Because the cursor
// only ever advances and every range is taken from the cursor at the
// moment of use, the batch applies correctly in emission order without
// any position-shift correction, provided the consumer sends it as one
// atomic batch.
//
// The reverse direction walks a document's block tree (paragraphs,
// tables, section breaks) and reconstructs Markdown, preserving the
// exact leading and trailing whitespace around styled spans.
//
// Both directions are pure functions over their inputs. Malformed
// Markdown never fails: unmatched style markers degrade to literal
// text, and unknown block types are skipped on read.
package markdown
