package testhelpers

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// BuildXLSX builds an in-memory .xlsx workbook whose first row is the
// header and returns the serialized bytes.
func BuildXLSX(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	writeRow := func(rowNum int, cells []string) {
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		start, err := excelize.CoordinatesToCellName(1, rowNum)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, start, &values))
	}

	writeRow(1, header)
	for i, row := range rows {
		writeRow(i+2, row)
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// MultipartFile wraps content as a multipart/form-data body with a single
// file field, returning the body and its Content-Type header value.
func MultipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}
