package catalog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/vdrcandles/catalog/internal/domain"
	"go.uber.org/zap"
)

// ExportColumns is the column order of exported files.
var ExportColumns = []string{"id", "name", "price", "category", "description", "burn_time", "wax_type", "size", "in_stock"}

var requiredImportColumns = []string{"name", "price", "category", "description"}

const spreadsheetSheet = "Sheet1"

func isSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// ExportCSV writes every product to path. Paths ending in .xlsx produce a
// spreadsheet with the same columns. An empty catalog writes nothing.
func (s *Store) ExportCSV(path string) (int, error) {
	if len(s.products) == 0 {
		s.notify(NoticeInfo, "No products to export")
		return 0, nil
	}

	var err error
	if isSpreadsheet(path) {
		err = s.exportXLSX(path)
	} else {
		err = s.exportCSV(path)
	}
	if err != nil {
		return 0, err
	}
	zap.L().Debug("catalog exported", zap.String("path", path), zap.Int("products", len(s.products)))
	s.notify(NoticeSuccess, "Exported %d products to %s", len(s.products), path)
	return len(s.products), nil
}

func (s *Store) exportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&s.products, f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func (s *Store) exportXLSX(path string) error {
	xlsx := excelize.NewFile()
	for col, name := range ExportColumns {
		xlsx.SetCellStr(spreadsheetSheet, cellName(col, 1), name)
	}
	for i, p := range s.products {
		row := i + 2
		values := []interface{}{p.ID, p.Name, p.Price, p.Category, p.Description, p.BurnTime, p.WaxType, p.Size, p.InStock}
		for col, v := range values {
			switch n := v.(type) {
			case int64:
				xlsx.SetCellInt(spreadsheetSheet, cellName(col, row), int(n))
			default:
				xlsx.SetCellStr(spreadsheetSheet, cellName(col, row), cast.ToString(v))
			}
		}
	}
	if err := xlsx.SaveAs(path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func cellName(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}

// ImportCSV adds one product per row of path. The file needs name, price,
// category and description columns; burn_time, wax_type and size are
// optional. A missing file is reported and nothing is imported.
func (s *Store) ImportCSV(path string) (int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.notify(NoticeError, "File %s not found", path)
		return 0, nil
	}

	var (
		records []map[string]string
		err     error
	)
	if isSpreadsheet(path) {
		records, err = readXLSX(path)
	} else {
		records, err = readCSV(path)
	}
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, rec := range records {
		np, err := newProductFromRecord(rec)
		if err != nil {
			return imported, errors.Wrapf(err, "%s row %d", path, i+2)
		}
		if _, err := s.Add(np); err != nil {
			return imported, err
		}
		imported++
	}
	zap.L().Debug("catalog imported", zap.String("path", path), zap.Int("products", imported))
	s.notify(NoticeSuccess, "Imported %d products from %s", imported, path)
	return imported, nil
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	records, err := gocsv.CSVToMaps(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return records, nil
}

func readXLSX(path string) ([]map[string]string, error) {
	xlsx, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	rows := xlsx.GetRows(xlsx.GetSheetName(1))
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for col, name := range header {
			if col < len(row) {
				rec[name] = row[col]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func newProductFromRecord(rec map[string]string) (domain.NewProduct, error) {
	for _, col := range requiredImportColumns {
		if _, ok := rec[col]; !ok {
			return domain.NewProduct{}, errors.Wrapf(ErrMissingColumn, "%q", col)
		}
	}
	price, err := ParseInt(rec["price"])
	if err != nil {
		return domain.NewProduct{}, errors.Wrap(err, "price")
	}
	return domain.NewProduct{
		Name:        rec["name"],
		Price:       price,
		Category:    rec["category"],
		Description: rec["description"],
		BurnTime:    rec["burn_time"],
		WaxType:     rec["wax_type"],
		Size:        rec["size"],
	}, nil
}
