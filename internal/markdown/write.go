package markdown

import (
	"strings"

	"mdbridge/internal/docs"
)

// DefaultStartIndex is the first insertable position in a fresh
// document body.
const DefaultStartIndex = 1

// BuildRequests folds a Markdown string into an ordered batch of
// positional edit requests, starting at startIndex (values below 1 mean
// "start of document body"). It returns the batch and the final cursor,
// i.e. the index just past the last inserted character.
//
// The cursor advances by len(plainText)+1 per line (the +1 covers the
// line terminator) and is never decremented or re-read backward, so the
// batch needs no position-shift correction as long as the consumer
// applies it atomically and in order.
func BuildRequests(md string, startIndex int) ([]docs.Request, int) {
	if startIndex < DefaultStartIndex {
		startIndex = DefaultStartIndex
	}

	var reqs []docs.Request
	cursor := startIndex

	for _, raw := range strings.Split(md, "\n") {
		line := ClassifyLine(raw)
		segs := TokenizeInline(line.Rest)
		text := plainText(segs)

		// A bare blank line inserts its terminator and nothing else:
		// no text styles, no heading, no bullet.
		if text == "" && !line.IsBullet {
			reqs = append(reqs, docs.NewInsertText(cursor, "\n"))
			cursor++
			continue
		}

		lineStart := cursor
		reqs = append(reqs, docs.NewInsertText(cursor, text+"\n"))

		segStart := lineStart
		for _, seg := range segs {
			segEnd := segStart + len(seg.Text)
			if seg.Bold {
				reqs = append(reqs, docs.NewTextStyle(segStart, segEnd, docs.FieldBold))
			}
			if seg.Italic {
				reqs = append(reqs, docs.NewTextStyle(segStart, segEnd, docs.FieldItalic))
			}
			if seg.Strikethrough {
				reqs = append(reqs, docs.NewTextStyle(segStart, segEnd, docs.FieldStrikethrough))
			}
			segStart = segEnd
		}

		cursor += len(text) + 1

		// Paragraph-level decoration spans from line start through the
		// newline just inserted.
		if line.HeadingLevel > 0 {
			reqs = append(reqs, docs.NewParagraphStyle(lineStart, cursor, line.HeadingLevel))
		}
		if line.IsBullet {
			reqs = append(reqs, docs.NewBullets(lineStart, cursor))
		}
	}

	return reqs, cursor
}
