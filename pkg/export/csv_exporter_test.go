package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderStartsWithUTF8BOM(t *testing.T) {
	out, err := NewCSVExporter().Render(Table{
		Columns: []string{"Câu hỏi", "Số câu trả lời"},
		Rows:    [][]string{{"Bạn hài lòng chứ?", "15"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	body := strings.TrimPrefix(string(out), "\uFEFF")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Câu hỏi,Số câu trả lời", lines[0])
	assert.Equal(t, "Bạn hài lòng chứ?,15", lines[1])
}

func TestCSVRenderPadsShortRows(t *testing.T) {
	out, err := NewCSVExporter().Render(Table{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"1"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "1,,")
}

func TestCSVRenderRequiresColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	require.Error(t, err)
}
