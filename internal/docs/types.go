package docs

import (
	"fmt"
	"strings"
)

// Field masks accepted by the service on updateTextStyle requests.
// The writer emits one request per style field, so each request names
// exactly one of these.
const (
	FieldBold          = "bold"
	FieldItalic        = "italic"
	FieldStrikethrough = "strikethrough"
)

// BulletPresetDefault is the only bullet preset the converter emits.
const BulletPresetDefault = "BULLET_DISC_CIRCLE_SQUARE"

// Request is the tagged union of positional edit commands accepted by
// the service's batchUpdate endpoint. Exactly one field is non-nil.
type Request struct {
	InsertText           *InsertTextRequest           `json:"insertText,omitempty"`
	UpdateTextStyle      *UpdateTextStyleRequest      `json:"updateTextStyle,omitempty"`
	UpdateParagraphStyle *UpdateParagraphStyleRequest `json:"updateParagraphStyle,omitempty"`
	CreateBullets        *CreateBulletsRequest        `json:"createBullets,omitempty"`
}

// Location addresses a single index in the document's flat character space.
type Location struct {
	Index int `json:"index"`
}

// Range addresses a half-open [StartIndex, EndIndex) span.
// StartIndex < EndIndex always holds for requests built by the writer.
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

type UpdateParagraphStyleRequest struct {
	Range          Range          `json:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
	Fields         string         `json:"fields"`
}

type CreateBulletsRequest struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

// NewInsertText builds an insertText request at the given index.
func NewInsertText(index int, text string) Request {
	return Request{InsertText: &InsertTextRequest{
		Location: Location{Index: index},
		Text:     text,
	}}
}

// NewTextStyle builds an updateTextStyle request setting a single style
// field (one of FieldBold, FieldItalic, FieldStrikethrough) over the range.
func NewTextStyle(start, end int, field string) Request {
	style := TextStyle{}
	switch field {
	case FieldBold:
		style.Bold = true
	case FieldItalic:
		style.Italic = true
	case FieldStrikethrough:
		style.Strikethrough = true
	}
	return Request{UpdateTextStyle: &UpdateTextStyleRequest{
		Range:     Range{StartIndex: start, EndIndex: end},
		TextStyle: style,
		Fields:    field,
	}}
}

// NewParagraphStyle builds an updateParagraphStyle request applying the
// HEADING_n named style over the range.
func NewParagraphStyle(start, end, headingLevel int) Request {
	return Request{UpdateParagraphStyle: &UpdateParagraphStyleRequest{
		Range:          Range{StartIndex: start, EndIndex: end},
		ParagraphStyle: ParagraphStyle{NamedStyleType: fmt.Sprintf("HEADING_%d", headingLevel)},
		Fields:         "namedStyleType",
	}}
}

// NewBullets builds a createBullets request over the range.
func NewBullets(start, end int) Request {
	return Request{CreateBullets: &CreateBulletsRequest{
		Range:        Range{StartIndex: start, EndIndex: end},
		BulletPreset: BulletPresetDefault,
	}}
}

// Document is the service's representation of a structured document,
// as returned by the read endpoint. It is read-only input here.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Body       Body   `json:"body"`
}

// Body holds the ordered list of structural elements in the document.
type Body struct {
	Content []StructuralElement `json:"content"`
}

// StructuralElement is a tagged block: paragraph, table, or section
// break. Blocks with none of the three set are unknown and skipped by
// the reader.
type StructuralElement struct {
	StartIndex   int           `json:"startIndex,omitempty"`
	EndIndex     int           `json:"endIndex,omitempty"`
	Paragraph    *Paragraph    `json:"paragraph,omitempty"`
	Table        *Table        `json:"table,omitempty"`
	SectionBreak *SectionBreak `json:"sectionBreak,omitempty"`
}

// Paragraph is an ordered run of inline elements plus paragraph-level
// decoration (named style, bullet).
type Paragraph struct {
	Elements       []ParagraphElement `json:"elements"`
	ParagraphStyle *ParagraphStyle    `json:"paragraphStyle,omitempty"`
	Bullet         *Bullet            `json:"bullet,omitempty"`
}

// ParagraphElement is a tagged inline element: styled text or an
// embedded object reference.
type ParagraphElement struct {
	TextRun             *TextRun             `json:"textRun,omitempty"`
	InlineObjectElement *InlineObjectElement `json:"inlineObjectElement,omitempty"`
}

// TextRun is a contiguous span of text sharing one style combination.
type TextRun struct {
	Content   string     `json:"content"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

// TextStyle carries the inline style flags the converter understands.
// Link is only populated on runs read back from the service.
type TextStyle struct {
	Bold          bool  `json:"bold,omitempty"`
	Italic        bool  `json:"italic,omitempty"`
	Strikethrough bool  `json:"strikethrough,omitempty"`
	Link          *Link `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

// InlineObjectElement references an embedded object (image etc.) by ID.
type InlineObjectElement struct {
	InlineObjectID string `json:"inlineObjectId,omitempty"`
}

// ParagraphStyle carries the named style, e.g. "HEADING_2" or
// "NORMAL_TEXT".
type ParagraphStyle struct {
	NamedStyleType string `json:"namedStyleType,omitempty"`
}

// Bullet marks a paragraph as a list item at the given nesting depth.
type Bullet struct {
	ListID       string `json:"listId,omitempty"`
	NestingLevel int    `json:"nestingLevel,omitempty"`
}

// Table is an ordered grid of rows; each cell holds its own paragraph list.
type Table struct {
	Rows      int        `json:"rows,omitempty"`
	Columns   int        `json:"columns,omitempty"`
	TableRows []TableRow `json:"tableRows"`
}

type TableRow struct {
	TableCells []TableCell `json:"tableCells"`
}

type TableCell struct {
	Content []StructuralElement `json:"content"`
}

// SectionBreak separates document sections. It carries no content the
// converter uses.
type SectionBreak struct{}

// HeadingLevel returns the 1..6 heading level encoded in the paragraph's
// named style, or 0 for normal text and unknown styles.
func (p *Paragraph) HeadingLevel() int {
	if p.ParagraphStyle == nil {
		return 0
	}
	name := p.ParagraphStyle.NamedStyleType
	if !strings.HasPrefix(name, "HEADING_") {
		return 0
	}
	switch name[len("HEADING_"):] {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

// EndIndex returns the index just past the last structural element, or
// 0 for an empty body.
func (b Body) EndIndex() int {
	if len(b.Content) == 0 {
		return 0
	}
	return b.Content[len(b.Content)-1].EndIndex
}
