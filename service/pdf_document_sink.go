package service

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/GameIsFlash/Purchase-Generator/models"
	"github.com/GameIsFlash/Purchase-Generator/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/document.html
var templateFS embed.FS

var documentTemplate = template.Must(template.New("document.html").ParseFS(templateFS, "templates/document.html"))

const pdfTimeout = 30 * time.Second

// detectChromePath returns configured first, then the first common Chrome/Chromium path found.
// An empty result lets chromedp search on its own.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️  CHROME_PATH %s not found, falling back to auto-detection", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type documentRow struct {
	Image    template.URL
	Article  string
	Name     string
	Price    string
	Quantity int
	Total    string
}

type documentData struct {
	Title       string
	HeaderColor string
	Purchase    bool
	Headers     []string
	Rows        []documentRow
	ItemCount   int
	QuantitySum int
	AmountSum   string
}

// PDFDocumentSink renders batches to HTML and prints them to PDF with headless Chrome
type PDFDocumentSink struct {
	chromePath string
}

// NewPDFDocumentSink creates a new PDFDocumentSink; chromePath may be empty
func NewPDFDocumentSink(chromePath string) *PDFDocumentSink {
	return &PDFDocumentSink{chromePath: detectChromePath(chromePath)}
}

// Ensure PDFDocumentSink implements DocumentSinkInterface
var _ DocumentSinkInterface = (*PDFDocumentSink)(nil)

// Extension returns the file extension of produced documents
func (s *PDFDocumentSink) Extension() string {
	return ".pdf"
}

// WritePurchase prints the purchase table for the batch
func (s *PDFDocumentSink) WritePurchase(path string, batch models.SupplierBatch) error {
	html, err := RenderDocumentHTML(utils.LabelPurchase, batch, true)
	if err != nil {
		return err
	}
	return s.print(path, html)
}

// WriteAvailability prints the availability table for the batch
func (s *PDFDocumentSink) WriteAvailability(path string, batch models.SupplierBatch) error {
	html, err := RenderDocumentHTML(utils.LabelAvailability, batch, false)
	if err != nil {
		return err
	}
	return s.print(path, html)
}

// RenderDocumentHTML renders the batch table with images inlined as data URIs
func RenderDocumentHTML(label string, batch models.SupplierBatch, purchase bool) (string, error) {
	data := documentData{
		Title:       label + " " + batch.Supplier,
		HeaderColor: headerColor,
		Purchase:    purchase,
		Headers:     availabilityLayout.headers,
		ItemCount:   batch.ItemCount(),
		QuantitySum: batch.QuantitySum(),
		AmountSum:   utils.FormatAmount(batch.AmountSum()),
	}
	if purchase {
		data.Headers = purchaseLayout.headers
	}

	for _, line := range batch.Lines {
		row := documentRow{
			Article:  line.Article,
			Name:     line.Name,
			Price:    utils.FormatAmount(line.Price),
			Quantity: line.Quantity,
			Total:    utils.FormatAmount(line.Total()),
		}
		if line.Image != nil {
			encoded, err := EncodePNG(line.Image)
			if err != nil {
				log.Printf("⚠️  Failed to inline image for %s: %v", line.Article, err)
			} else {
				row.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded))
			}
		}
		data.Rows = append(data.Rows, row)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (s *PDFDocumentSink) print(path, html string) error {
	tmp, err := os.CreateTemp("", "document-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	abs, err := filepath.Abs(tmp.Name())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pdfTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}

	if err := os.WriteFile(path, pdfBuf, 0644); err != nil {
		return fmt.Errorf("failed to save PDF: %w", err)
	}
	return nil
}
