package markdown

import "strings"

// Segment is a contiguous span of text sharing one inline style
// combination. Segments are ephemeral: the writer consumes them
// immediately after tokenization.
type Segment struct {
	Text          string
	Bold          bool
	Italic        bool
	Strikethrough bool
}

// TokenizeInline scans a line's residual text left to right and returns
// its ordered styled segments.
//
// At each position the scanner prefers, in this order: a strikethrough
// span ~~...~~, a bold+italic span ***...***, a bold span **...**, an
// italic span *...*, then the longest run free of '*' and '~', and
// finally an unmatched marker character as literal text. Every span
// requires non-empty content strictly between its markers.
//
// Strikethrough never combines with bold or italic in one segment; the
// priority order makes them mutually exclusive.
func TokenizeInline(s string) []Segment {
	var segs []Segment
	i := 0
	for i < len(s) {
		switch s[i] {
		case '~':
			if strings.HasPrefix(s[i:], "~~") {
				if end := strings.Index(s[i+2:], "~~"); end > 0 {
					segs = append(segs, Segment{Text: s[i+2 : i+2+end], Strikethrough: true})
					i += end + 4
					continue
				}
			}
			segs = append(segs, Segment{Text: "~"})
			i++
		case '*':
			if strings.HasPrefix(s[i:], "***") {
				if end := strings.Index(s[i+3:], "***"); end > 0 {
					segs = append(segs, Segment{Text: s[i+3 : i+3+end], Bold: true, Italic: true})
					i += end + 6
					continue
				}
			}
			if strings.HasPrefix(s[i:], "**") {
				if end := strings.Index(s[i+2:], "**"); end > 0 {
					segs = append(segs, Segment{Text: s[i+2 : i+2+end], Bold: true})
					i += end + 4
					continue
				}
			}
			if end := strings.IndexByte(s[i+1:], '*'); end > 0 {
				segs = append(segs, Segment{Text: s[i+1 : i+1+end], Italic: true})
				i += end + 2
				continue
			}
			segs = append(segs, Segment{Text: "*"})
			i++
		default:
			j := i + 1
			for j < len(s) && s[j] != '*' && s[j] != '~' {
				j++
			}
			segs = append(segs, Segment{Text: s[i:j]})
			i = j
		}
	}
	return segs
}

// plainText concatenates the segment texts with all markers removed.
func plainText(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String()
}
