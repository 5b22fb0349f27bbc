package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GameIsFlash/Purchase-Generator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocumentHTML_Purchase(t *testing.T) {
	html, err := RenderDocumentHTML("Закупка", purchaseBatch(), true)
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Закупка Botco</title>")
	assert.Contains(t, html, "<th>Кол-во</th>")
	assert.Contains(t, html, "Widget")
	assert.Contains(t, html, "28.50")
	assert.Contains(t, html, "Итого: 2 позиций")
	assert.Contains(t, html, "29.20")
	assert.Contains(t, html, `src="data:image/png;base64,`)
	assert.NotContains(t, html, "Всего позиций")
}

func TestRenderDocumentHTML_AvailabilityEscapes(t *testing.T) {
	batch := models.SupplierBatch{
		Supplier: "Acme",
		Lines:    []models.BatchLine{{Article: "<b>Y2</b>", Name: "Gear & Co", Price: dec("3.2"), Quantity: 1}},
	}

	html, err := RenderDocumentHTML("Наличие", batch, false)
	require.NoError(t, err)

	assert.Contains(t, html, "<th>Артикул</th>")
	assert.Contains(t, html, "&lt;b&gt;Y2&lt;/b&gt;")
	assert.Contains(t, html, "Gear &amp; Co")
	assert.Contains(t, html, "Всего позиций: 1")
	assert.NotContains(t, html, "<img")
}

func TestDetectChromePath_PrefersConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))

	assert.Equal(t, path, detectChromePath(path))
	assert.NotEqual(t, "/does/not/exist", detectChromePath("/does/not/exist"))
	assert.Equal(t, ".pdf", NewPDFDocumentSink("").Extension())
}
