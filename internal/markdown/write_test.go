package markdown

import (
	"testing"

	"mdbridge/internal/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestsPlainLine(t *testing.T) {
	reqs, end := BuildRequests("Hello", 1)

	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].InsertText)
	assert.Equal(t, 1, reqs[0].InsertText.Location.Index)
	assert.Equal(t, "Hello\n", reqs[0].InsertText.Text)
	assert.Equal(t, 1+len("Hello")+1, end)
}

func TestBuildRequestsDefaultsStartIndex(t *testing.T) {
	reqs, end := BuildRequests("x", 0)

	require.Len(t, reqs, 1)
	assert.Equal(t, 1, reqs[0].InsertText.Location.Index)
	assert.Equal(t, 3, end)
}

func TestBuildRequestsHeading(t *testing.T) {
	reqs, end := BuildRequests("# Title", 1)

	require.Len(t, reqs, 2)
	require.NotNil(t, reqs[0].InsertText)
	assert.Equal(t, "Title\n", reqs[0].InsertText.Text)

	require.NotNil(t, reqs[1].UpdateParagraphStyle)
	ps := reqs[1].UpdateParagraphStyle
	assert.Equal(t, docs.Range{StartIndex: 1, EndIndex: 7}, ps.Range)
	assert.Equal(t, "HEADING_1", ps.ParagraphStyle.NamedStyleType)
	assert.Equal(t, 7, end)
}

func TestBuildRequestsBold(t *testing.T) {
	reqs, _ := BuildRequests("**bold**", 1)

	require.Len(t, reqs, 2)
	assert.Equal(t, "bold\n", reqs[0].InsertText.Text)

	require.NotNil(t, reqs[1].UpdateTextStyle)
	ts := reqs[1].UpdateTextStyle
	assert.Equal(t, docs.Range{StartIndex: 1, EndIndex: 5}, ts.Range)
	assert.True(t, ts.TextStyle.Bold)
	assert.Equal(t, docs.FieldBold, ts.Fields)
}

func TestBuildRequestsBoldItalicEmitsOneCommandPerFlag(t *testing.T) {
	reqs, _ := BuildRequests("***text***", 1)

	require.Len(t, reqs, 3)
	wantRange := docs.Range{StartIndex: 1, EndIndex: 5}

	require.NotNil(t, reqs[1].UpdateTextStyle)
	assert.Equal(t, wantRange, reqs[1].UpdateTextStyle.Range)
	assert.Equal(t, docs.FieldBold, reqs[1].UpdateTextStyle.Fields)

	require.NotNil(t, reqs[2].UpdateTextStyle)
	assert.Equal(t, wantRange, reqs[2].UpdateTextStyle.Range)
	assert.Equal(t, docs.FieldItalic, reqs[2].UpdateTextStyle.Fields)
}

func TestBuildRequestsAdjacentSegmentsNotCoalesced(t *testing.T) {
	reqs, _ := BuildRequests("**a****b**", 1)

	require.Len(t, reqs, 3)
	assert.Equal(t, "ab\n", reqs[0].InsertText.Text)
	assert.Equal(t, docs.Range{StartIndex: 1, EndIndex: 2}, reqs[1].UpdateTextStyle.Range)
	assert.Equal(t, docs.Range{StartIndex: 2, EndIndex: 3}, reqs[2].UpdateTextStyle.Range)
}

func TestBuildRequestsBullet(t *testing.T) {
	reqs, end := BuildRequests("  - item", 1)

	require.Len(t, reqs, 2)
	assert.Equal(t, "item\n", reqs[0].InsertText.Text)

	require.NotNil(t, reqs[1].CreateBullets)
	cb := reqs[1].CreateBullets
	assert.Equal(t, docs.Range{StartIndex: 1, EndIndex: 6}, cb.Range)
	assert.Equal(t, docs.BulletPresetDefault, cb.BulletPreset)
	assert.Equal(t, 6, end)
}

func TestBuildRequestsEmptyBulletStillGetsBullets(t *testing.T) {
	reqs, end := BuildRequests("- ", 1)

	require.Len(t, reqs, 2)
	assert.Equal(t, "\n", reqs[0].InsertText.Text)
	require.NotNil(t, reqs[1].CreateBullets)
	assert.Equal(t, docs.Range{StartIndex: 1, EndIndex: 2}, reqs[1].CreateBullets.Range)
	assert.Equal(t, 2, end)
}

func TestBuildRequestsBlankLineHasNoStyling(t *testing.T) {
	reqs, end := BuildRequests("a\n\nb", 1)

	require.Len(t, reqs, 3)
	assert.Equal(t, "a\n", reqs[0].InsertText.Text)
	assert.Equal(t, 1, reqs[0].InsertText.Location.Index)
	assert.Equal(t, "\n", reqs[1].InsertText.Text)
	assert.Equal(t, 3, reqs[1].InsertText.Location.Index)
	assert.Equal(t, "b\n", reqs[2].InsertText.Text)
	assert.Equal(t, 4, reqs[2].InsertText.Location.Index)
	assert.Equal(t, 6, end)
}

func TestBuildRequestsBlankHeadingLineHasNoStyling(t *testing.T) {
	// "# " classifies as a heading but has no residual text, so it is
	// treated as a bare blank line.
	reqs, _ := BuildRequests("# ", 1)

	require.Len(t, reqs, 1)
	assert.Equal(t, "\n", reqs[0].InsertText.Text)
}

func TestBuildRequestsEndIndexSumsLineLengths(t *testing.T) {
	md := "# Title\n\nSome **bold** text\n- one\n- two"
	lines := []string{"Title", "", "Some bold text", "one", "two"}

	start := 10
	_, end := BuildRequests(md, start)

	want := start
	for _, line := range lines {
		want += len(line) + 1
	}
	assert.Equal(t, want, end)
}

func TestBuildRequestsCursorIsMonotonic(t *testing.T) {
	reqs, _ := BuildRequests("# One\n**two** *three*\n~~four~~\n\n- five", 1)

	last := 0
	for _, req := range reqs {
		var start, end int
		switch {
		case req.InsertText != nil:
			start, end = req.InsertText.Location.Index, req.InsertText.Location.Index
		case req.UpdateTextStyle != nil:
			start, end = req.UpdateTextStyle.Range.StartIndex, req.UpdateTextStyle.Range.EndIndex
		case req.UpdateParagraphStyle != nil:
			start, end = req.UpdateParagraphStyle.Range.StartIndex, req.UpdateParagraphStyle.Range.EndIndex
		case req.CreateBullets != nil:
			start, end = req.CreateBullets.Range.StartIndex, req.CreateBullets.Range.EndIndex
		default:
			t.Fatalf("request %+v has no variant set", req)
		}

		if start > end {
			t.Errorf("range [%d, %d) is inverted", start, end)
		}
		// Ranges may revisit the current line but never an earlier one;
		// inserts only move forward.
		if req.InsertText != nil && start < last {
			t.Errorf("insert at %d after cursor already reached %d", start, last)
		}
		if end > last {
			last = end
		}
	}
}
