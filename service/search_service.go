package service

import (
	"strings"

	"github.com/GameIsFlash/Purchase-Generator/models"
)

// SearchService performs substring search over the unique catalog rows
type SearchService struct {
	minLength  int
	maxResults int
}

// NewSearchService creates a new SearchService
func NewSearchService(minLength, maxResults int) *SearchService {
	return &SearchService{
		minLength:  minLength,
		maxResults: maxResults,
	}
}

// Search returns unique rows whose article or name contains text, case-insensitively.
// Text shorter than the minimum length yields no results.
func (s *SearchService) Search(catalog *models.Catalog, text string) []models.CatalogRow {
	needle := strings.ToLower(strings.TrimSpace(text))
	if len([]rune(needle)) < s.minLength || needle == "" {
		return []models.CatalogRow{}
	}

	found := make([]models.CatalogRow, 0, s.maxResults)
	for _, row := range catalog.AllUniqueArticles() {
		if strings.Contains(strings.ToLower(row.Article), needle) || strings.Contains(strings.ToLower(row.Name), needle) {
			found = append(found, row)
			if len(found) >= s.maxResults {
				break
			}
		}
	}
	return found
}
