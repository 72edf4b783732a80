package export

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ContentType 為 xlsx 的 MIME 類型
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// defaultSheet 為 excelize.NewFile 建立的預設工作表
const defaultSheet = "Sheet1"

// XLSXWriter 以 excelize 產生單一工作表的活頁簿，實作 service.SheetWriter
type XLSXWriter struct{}

func NewXLSXWriter() XLSXWriter {
	return XLSXWriter{}
}

// Write 第一列為表頭，之後依序寫入 rows
func (XLSXWriter) Write(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, errors.Wrap(err, "rename sheet")
		}
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, n int, row []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return errors.Wrapf(err, "row %d", n)
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return errors.Wrapf(err, "row %d", n)
	}
	return nil
}
