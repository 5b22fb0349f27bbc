package service

import (
	"fmt"
	"image"
	"log"

	"github.com/GameIsFlash/Purchase-Generator/models"
	"github.com/GameIsFlash/Purchase-Generator/utils"

	"github.com/xuri/excelize/v2"
)

const (
	headerColor   = "0066CC"
	dataRowHeight = 150
	numFmtAmount  = 4 // #,##0.00
	defaultSheet  = "Sheet1"
)

type sheetLayout struct {
	headers []string
	widths  []float64
}

var (
	purchaseLayout = sheetLayout{
		headers: []string{"Фото", "Наименование", "Цена", "Кол-во", "Сумма"},
		widths:  []float64{30, 25, 12, 15, 20},
	}
	availabilityLayout = sheetLayout{
		headers: []string{"Фото", "Наименование", "Цена", "Артикул"},
		widths:  []float64{30, 25, 12, 20},
	}
)

// ExcelDocumentSink writes batches as styled xlsx workbooks with embedded images
type ExcelDocumentSink struct{}

// NewExcelDocumentSink creates a new ExcelDocumentSink
func NewExcelDocumentSink() *ExcelDocumentSink {
	return &ExcelDocumentSink{}
}

// Ensure ExcelDocumentSink implements DocumentSinkInterface
var _ DocumentSinkInterface = (*ExcelDocumentSink)(nil)

// Extension returns the file extension of produced documents
func (s *ExcelDocumentSink) Extension() string {
	return ".xlsx"
}

type sheetStyles struct {
	header, text, number, totalText, totalNumber int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 5},
		{Type: "right", Color: "000000", Style: 5},
		{Type: "top", Color: "000000", Style: 5},
		{Type: "bottom", Color: "000000", Style: 5},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	defs := []*excelize.Style{
		{
			Border:    border,
			Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Alignment: center,
		},
		{Border: border, Alignment: center},
		{Border: border, Alignment: center, NumFmt: numFmtAmount},
		{Border: border, Alignment: center, Font: &excelize.Font{Bold: true}},
		{Border: border, Alignment: center, Font: &excelize.Font{Bold: true}, NumFmt: numFmtAmount},
	}

	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return sheetStyles{}, fmt.Errorf("failed to create style: %w", err)
		}
		ids[i] = id
	}

	return sheetStyles{header: ids[0], text: ids[1], number: ids[2], totalText: ids[3], totalNumber: ids[4]}, nil
}

// WritePurchase writes image, name, price, quantity and total columns plus a totals row
func (s *ExcelDocumentSink) WritePurchase(path string, batch models.SupplierBatch) error {
	return s.write(path, utils.LabelPurchase, batch, purchaseLayout, func(w *sheetWriter) error {
		for i, line := range batch.Lines {
			row := i + 2
			w.prepareRow(row, line.Image)
			w.set(2, row, line.Name, w.styles.text)
			w.set(3, row, line.Price.InexactFloat64(), w.styles.number)
			w.set(4, row, line.Quantity, w.styles.text)
			w.set(5, row, line.Total().InexactFloat64(), w.styles.number)
		}

		total := len(batch.Lines) + 2
		w.merge(1, 3, total)
		w.set(1, total, fmt.Sprintf("Итого: %d позиций", batch.ItemCount()), w.styles.totalText)
		w.style(2, total, w.styles.totalText)
		w.style(3, total, w.styles.totalText)
		w.set(4, total, batch.QuantitySum(), w.styles.totalText)
		w.set(5, total, batch.AmountSum().InexactFloat64(), w.styles.totalNumber)
		return w.err
	})
}

// WriteAvailability writes image, name, price and article columns plus an item count row
func (s *ExcelDocumentSink) WriteAvailability(path string, batch models.SupplierBatch) error {
	return s.write(path, utils.LabelAvailability, batch, availabilityLayout, func(w *sheetWriter) error {
		for i, line := range batch.Lines {
			row := i + 2
			w.prepareRow(row, line.Image)
			w.set(2, row, line.Name, w.styles.text)
			w.set(3, row, line.Price.InexactFloat64(), w.styles.number)
			w.set(4, row, line.Article, w.styles.text)
		}

		total := len(batch.Lines) + 2
		w.merge(1, 4, total)
		w.set(1, total, fmt.Sprintf("Всего позиций: %d", batch.ItemCount()), w.styles.totalText)
		for col := 2; col <= 4; col++ {
			w.style(col, total, w.styles.totalText)
		}
		return w.err
	})
}

func (s *ExcelDocumentSink) write(path, label string, batch models.SupplierBatch, layout sheetLayout, fill func(*sheetWriter) error) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := utils.SheetTitle(label, batch.Supplier)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	w := &sheetWriter{f: f, sheet: sheet, styles: styles}
	w.header(layout)
	if err := fill(w); err != nil {
		return fmt.Errorf("failed to fill sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error so cell writes read as a flat sequence
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles sheetStyles
	err    error
}

func (w *sheetWriter) cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) header(layout sheetLayout) {
	for i, width := range layout.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetColWidth(w.sheet, col, col, width); err != nil && w.err == nil {
			w.err = err
		}
	}
	for i, title := range layout.headers {
		w.set(i+1, 1, title, w.styles.header)
	}
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell := w.cellName(col, row)
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = err
		return
	}
	w.style(col, row, style)
}

func (w *sheetWriter) style(col, row, style int) {
	if w.err != nil {
		return
	}
	cell := w.cellName(col, row)
	if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
		w.err = err
	}
}

func (w *sheetWriter) merge(fromCol, toCol, row int) {
	if w.err != nil {
		return
	}
	if err := w.f.MergeCell(w.sheet, w.cellName(fromCol, row), w.cellName(toCol, row)); err != nil {
		w.err = err
	}
}

// prepareRow sets the data row height and embeds the image into column A
func (w *sheetWriter) prepareRow(row int, img image.Image) {
	if w.err != nil {
		return
	}
	if err := w.f.SetRowHeight(w.sheet, row, dataRowHeight); err != nil {
		w.err = err
		return
	}
	w.style(1, row, w.styles.text)
	if img == nil {
		return
	}

	data, err := EncodePNG(img)
	if err != nil {
		log.Printf("⚠️  Failed to insert image at row %d: %v", row, err)
		return
	}
	pic := &excelize.Picture{
		Extension: ".png",
		File:      data,
		Format:    &excelize.GraphicOptions{OffsetX: 4, OffsetY: 4},
	}
	if err := w.f.AddPictureFromBytes(w.sheet, w.cellName(1, row), pic); err != nil {
		log.Printf("⚠️  Failed to insert image at row %d: %v", row, err)
	}
}
