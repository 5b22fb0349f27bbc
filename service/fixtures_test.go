package service

import (
	"image"
	"image/color"

	"github.com/GameIsFlash/Purchase-Generator/models"

	"github.com/shopspring/decimal"
)

func row(article, name, price, supplier string) models.CatalogRow {
	return models.CatalogRow{Article: article, Name: name, Price: decimal.RequireFromString(price), Supplier: supplier}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func widgetCatalog() *models.Catalog {
	return models.NewCatalog([]models.CatalogRow{
		row("X1", "Widget", "10.00", "Acme"),
		row("X1", "Widget", "9.50", "Botco"),
		row("Y2", "Gear", "3.20", "Acme"),
		row("Z3", "Spring", "0.75", "Cargo"),
	})
}

// stubImages returns a solid image for the listed articles
type stubImages struct {
	articles map[string]bool
	calls    []string
}

func (s *stubImages) Resolve(article string) image.Image {
	s.calls = append(s.calls, article)
	if !s.articles[article] {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}
