package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestReadTableCSVWithBOM(t *testing.T) {
	rows, err := ReadTable("staff.csv", []byte("\ufeff工号,姓名\r\n P001 ,张三\r\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"工号", "姓名"}, {"P001", "张三"}}, rows)
}

func TestReadTableCSVFallsBackToGBK(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("工号,姓名\nP002,李四\n"))
	require.NoError(t, err)

	rows, err := ReadTable("staff.csv", gbk)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "李四", rows[1][1])
}

func TestReadTableRejectsUnknownExtension(t *testing.T) {
	_, err := ReadTable("staff.pdf", []byte("x"))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = ReadTable("staff.csv", nil)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRenderTableXLSXRoundTrip(t *testing.T) {
	file, err := RenderTable("xlsx", "lockers", "Lockers", []string{"1F衣柜", "1F鞋柜"}, [][]string{{"1F-C-01", "1F-S-01"}})
	require.NoError(t, err)
	assert.Equal(t, "lockers.xlsx", file.Name)

	rows, err := ReadTable(file.Name, file.Data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1F衣柜", "1F鞋柜"}, {"1F-C-01", "1F-S-01"}}, rows)
}

func TestRenderTableCSV(t *testing.T) {
	file, err := RenderTable("csv", "lockers", "Lockers", []string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "lockers.csv", file.Name)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("\ufeff")))
	assert.Equal(t, "\ufeffa,b\r\n1,2\r\n", string(file.Data))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrValidation))
}
