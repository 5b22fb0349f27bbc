package service

import (
	"testing"

	"github.com/GameIsFlash/Purchase-Generator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_ShortTextReturnsNothing(t *testing.T) {
	s := NewSearchService(2, 20)
	catalog := widgetCatalog()

	assert.Empty(t, s.Search(catalog, ""))
	assert.Empty(t, s.Search(catalog, "x"))
	assert.Empty(t, s.Search(catalog, "   "))
	assert.NotNil(t, s.Search(catalog, ""))
}

func TestSearch_CaseInsensitiveOnArticleAndName(t *testing.T) {
	s := NewSearchService(2, 20)
	catalog := widgetCatalog()

	found := s.Search(catalog, "x1")
	require.Len(t, found, 1)
	assert.Equal(t, "X1", found[0].Article)
	assert.Equal(t, "Botco", found[0].Supplier, "unique row is the cheapest")

	found = s.Search(catalog, "GEA")
	require.Len(t, found, 1)
	assert.Equal(t, "Y2", found[0].Article)
}

func TestSearch_CyrillicName(t *testing.T) {
	s := NewSearchService(2, 20)
	catalog := models.NewCatalog([]models.CatalogRow{row("K-1", "Кружка белая", "120", "Посуда")})

	found := s.Search(catalog, "КРУЖ")
	require.Len(t, found, 1)
	assert.Equal(t, "K-1", found[0].Article)
}

func TestSearch_TruncatesToMaxResults(t *testing.T) {
	var rows []models.CatalogRow
	for _, a := range []string{"AB1", "AB2", "AB3", "AB4", "AB5"} {
		rows = append(rows, row(a, "Item", "1", "Acme"))
	}
	s := NewSearchService(2, 3)

	found := s.Search(models.NewCatalog(rows), "ab")
	require.Len(t, found, 3)
	assert.Equal(t, "AB1", found[0].Article)
	assert.Equal(t, "AB3", found[2].Article)
}

func TestSearch_NilCatalog(t *testing.T) {
	s := NewSearchService(2, 20)
	assert.Empty(t, s.Search(nil, "widget"))
}
