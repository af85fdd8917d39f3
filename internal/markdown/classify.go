package markdown

import "strings"

// Line is the block-level classification of a single Markdown line.
// Rest holds the residual text with heading and bullet markers stripped,
// not yet tokenized for inline styles.
type Line struct {
	HeadingLevel  int
	IsBullet      bool
	BulletNesting int
	Rest          string
}

// ClassifyLine splits one line (without its trailing newline) into
// heading level, bullet flag and nesting, and residual text.
//
// The heading check runs first against the whole line: a run of 1-6 '#'
// characters followed by whitespace. The bullet check then runs against
// the heading's remainder: leading whitespace, one of '-' '*' '+', and
// whitespace. A line can therefore carry both markers at once; the
// heading-first order is deliberate. Nesting is the leading whitespace
// length divided by two.
//
// Lines matching neither pattern pass through unchanged.
func ClassifyLine(line string) Line {
	c := Line{Rest: line}

	n := 0
	for n < len(c.Rest) && c.Rest[n] == '#' {
		n++
	}
	if n >= 1 && n <= 6 && n < len(c.Rest) && isLineSpace(c.Rest[n]) {
		c.HeadingLevel = n
		c.Rest = trimLeadingSpace(c.Rest[n:])
	}

	ws := 0
	for ws < len(c.Rest) && isLineSpace(c.Rest[ws]) {
		ws++
	}
	if ws+1 < len(c.Rest) && isBulletMarker(c.Rest[ws]) && isLineSpace(c.Rest[ws+1]) {
		c.IsBullet = true
		c.BulletNesting = ws / 2
		c.Rest = trimLeadingSpace(c.Rest[ws+1:])
	}

	return c
}

func isBulletMarker(b byte) bool {
	return b == '-' || b == '*' || b == '+'
}

func isLineSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func trimLeadingSpace(s string) string {
	return strings.TrimLeft(s, " \t")
}
