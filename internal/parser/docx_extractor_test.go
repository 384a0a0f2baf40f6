package parser

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-agent-go/internal/constants"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Smith</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t></w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Language</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Speaking</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>English</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Fluent</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Closing note</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestWalkDocumentXML(t *testing.T) {
	paragraphs, tables, err := walkDocumentXML(sampleDocumentXML)
	require.NoError(t, err)

	require.Len(t, paragraphs, 4)
	assert.Equal(t, "Jane Smith", paragraphs[0])
	// 同一段落的多个run拼成整句
	assert.Equal(t, "Senior Engineer", paragraphs[1])
	assert.Equal(t, "", paragraphs[2])
	assert.Equal(t, "Closing note", paragraphs[3])

	require.Len(t, tables, 1)
	require.Len(t, tables[0], 2)
	assert.Equal(t, []string{"Language", "Speaking"}, tables[0][0])
	assert.Equal(t, []string{"English", "Fluent"}, tables[0][1])
}

func TestWalkDocumentXMLCellWithMultipleParagraphs(t *testing.T) {
	content := `<w:document xmlns:w="http://x">
  <w:body>
    <w:tbl><w:tr><w:tc>
      <w:p><w:r><w:t>line one</w:t></w:r></w:p>
      <w:p><w:r><w:t>line two</w:t></w:r></w:p>
    </w:tc></w:tr></w:tbl>
  </w:body>
</w:document>`
	paragraphs, tables, err := walkDocumentXML(content)
	require.NoError(t, err)

	// 表格内的段落不计入正文
	assert.Empty(t, paragraphs)
	require.Len(t, tables, 1)
	assert.Equal(t, "line one\nline two", tables[0][0][0])
}

func TestWalkDocumentXMLLineBreaks(t *testing.T) {
	content := `<w:document xmlns:w="http://x"><w:body>
    <w:p><w:r><w:t>first</w:t><w:br/><w:t>second</w:t></w:r></w:p>
  </w:body></w:document>`
	paragraphs, _, err := walkDocumentXML(content)
	require.NoError(t, err)
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "first\nsecond", paragraphs[0])
}

func TestSerializeTable(t *testing.T) {
	got := serializeTable([][]string{
		{"Language", "Speaking"},
		{"English", "Fluent\nnative-like"},
	})

	assert.True(t, strings.HasPrefix(got, "\n"+constants.TableStartMarker+"\n"))
	assert.True(t, strings.HasSuffix(got, "\n"+constants.TableEndMarker))
	assert.Contains(t, got, "Language\tSpeaking")
	// 单元格内的换行替换为空格，避免破坏行结构
	assert.Contains(t, got, "English\tFluent native-like")
}

func TestExtractFromXMLOrdering(t *testing.T) {
	d := NewDocxTextExtractor(zerolog.Nop())
	text, err := d.extractFromXML(sampleDocumentXML)
	require.NoError(t, err)

	// 正文段落在前，表格统一排在后面，空段落被丢弃
	idxClosing := strings.Index(text, "Closing note")
	idxTable := strings.Index(text, constants.TableStartMarker)
	require.GreaterOrEqual(t, idxClosing, 0)
	require.GreaterOrEqual(t, idxTable, 0)
	assert.Less(t, idxClosing, idxTable)

	assert.Contains(t, text, "Jane Smith\n\nSenior Engineer")
	assert.Contains(t, text, "English\tFluent")
}
