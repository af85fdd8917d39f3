package markdown

import (
	"strings"

	"mdbridge/internal/docs"
)

// imagePlaceholder stands in for embedded objects that carry no text.
const imagePlaceholder = "[Image]"

// FromDocument walks a document's block tree and reconstructs a
// Markdown string. Paragraph runs keep their exact leading and trailing
// whitespace around style markers, tables render as GFM pipe tables,
// and section breaks render as thematic breaks. Blocks of unknown type
// are skipped.
func FromDocument(doc *docs.Document) string {
	var blocks []string
	for _, el := range doc.Body.Content {
		switch {
		case el.Paragraph != nil:
			blocks = append(blocks, renderParagraph(el.Paragraph))
		case el.Table != nil:
			blocks = append(blocks, renderTable(el.Table))
		case el.SectionBreak != nil:
			blocks = append(blocks, "\n---\n")
		}
	}
	return strings.Join(blocks, "\n")
}

func renderParagraph(p *docs.Paragraph) string {
	var b strings.Builder
	for _, el := range p.Elements {
		switch {
		case el.TextRun != nil:
			b.WriteString(renderRun(el.TextRun))
		case el.InlineObjectElement != nil:
			b.WriteString(imagePlaceholder)
		}
	}
	text := b.String()

	if level := p.HeadingLevel(); level > 0 {
		return strings.Repeat("#", level) + " " + strings.TrimSpace(text)
	}
	if p.Bullet != nil {
		return strings.Repeat("  ", p.Bullet.NestingLevel) + "- " + strings.TrimSpace(text)
	}
	return text
}

// renderRun renders one styled run back to Markdown. A link wraps the
// trimmed core as [text](url) and suppresses the style markers; plain
// style flags compose whitespace-preserving wraps in the fixed order
// bold, italic, strikethrough, so a bold+italic run comes out as
// ***text***.
func renderRun(r *docs.TextRun) string {
	text := strings.TrimSuffix(r.Content, "\n")
	style := r.TextStyle
	if style == nil {
		return text
	}

	if style.Link != nil && style.Link.URL != "" {
		lead, core, trail := splitSurroundingSpace(text)
		if core == "" {
			return text
		}
		return lead + "[" + core + "](" + style.Link.URL + ")" + trail
	}

	if style.Bold {
		text = wrapPreservingSpace(text, "**")
	}
	if style.Italic {
		text = wrapPreservingSpace(text, "*")
	}
	if style.Strikethrough {
		text = wrapPreservingSpace(text, "~~")
	}
	return text
}

// wrapPreservingSpace puts marker around the trimmed core of s and
// reattaches the original leading and trailing whitespace unchanged.
// All-whitespace input is returned as is.
func wrapPreservingSpace(s, marker string) string {
	lead, core, trail := splitSurroundingSpace(s)
	if core == "" {
		return s
	}
	return lead + marker + core + marker + trail
}

func splitSurroundingSpace(s string) (lead, core, trail string) {
	trimmed := strings.TrimLeft(s, " \t")
	lead = s[:len(s)-len(trimmed)]
	core = strings.TrimRight(trimmed, " \t")
	trail = trimmed[len(core):]
	return lead, core, trail
}
