package service

import (
	"log"

	"github.com/GameIsFlash/Purchase-Generator/config"
	"github.com/GameIsFlash/Purchase-Generator/models"
)

// AddResult is the outcome of adding an article to the order
type AddResult int

const (
	AddResultAdded AddResult = iota
	AddResultAlreadyPresent
	AddResultNoSuppliersFound
	AddResultMissingArticle
)

func (r AddResult) String() string {
	switch r {
	case AddResultAdded:
		return "added"
	case AddResultAlreadyPresent:
		return "already-present"
	case AddResultNoSuppliersFound:
		return "no-suppliers-found"
	case AddResultMissingArticle:
		return "missing-article"
	default:
		return "unknown"
	}
}

// MutationResult is the outcome of changing an existing order line
type MutationResult int

const (
	MutationOK MutationResult = iota
	MutationNotFound
	MutationOutOfRange
	MutationInvalidSupplier
)

func (r MutationResult) String() string {
	switch r {
	case MutationOK:
		return "ok"
	case MutationNotFound:
		return "not-found"
	case MutationOutOfRange:
		return "out-of-range"
	case MutationInvalidSupplier:
		return "invalid-supplier"
	default:
		return "unknown"
	}
}

// OrderService owns the order being assembled and enforces its invariants.
// It is not safe for concurrent use; callers serialize access.
type OrderService struct {
	minQuantity int
	maxQuantity int
	lines       map[string]*models.OrderLine
	keys        []string // insertion order
}

// NewOrderService creates an empty order with the given quantity bounds
func NewOrderService(minQuantity, maxQuantity int) *OrderService {
	return &OrderService{
		minQuantity: minQuantity,
		maxQuantity: maxQuantity,
		lines:       make(map[string]*models.OrderLine),
	}
}

// NewOrderLine builds a line for the article with the cheapest supplier selected
func NewOrderLine(catalog *models.Catalog, article string) (models.OrderLine, AddResult) {
	if article == "" {
		return models.OrderLine{}, AddResultMissingArticle
	}

	suppliers := catalog.AllRowsFor(article)
	cheapest, ok := models.CheapestOf(suppliers)
	if !ok {
		return models.OrderLine{}, AddResultNoSuppliersFound
	}

	name := cheapest.Name
	if unique, ok := catalog.Unique(article); ok {
		name = unique.Name
	}

	return models.OrderLine{
		Article:          article,
		Name:             name,
		Price:            cheapest.Price,
		Quantity:         1,
		Enabled:          true,
		SelectedSupplier: cheapest.Supplier,
		AllSuppliers:     suppliers,
	}, AddResultAdded
}

// AddProduct adds the article with quantity 1 and its cheapest supplier selected
func (s *OrderService) AddProduct(catalog *models.Catalog, article string) AddResult {
	if article == "" {
		return AddResultMissingArticle
	}
	if _, exists := s.lines[article]; exists {
		return AddResultAlreadyPresent
	}

	line, result := NewOrderLine(catalog, article)
	if result != AddResultAdded {
		return result
	}

	s.insert(line)
	return AddResultAdded
}

func (s *OrderService) insert(line models.OrderLine) {
	if _, exists := s.lines[line.Article]; !exists {
		s.keys = append(s.keys, line.Article)
	}
	stored := line.Clone()
	s.lines[line.Article] = &stored
}

// RemoveProduct deletes the article from the order
func (s *OrderService) RemoveProduct(article string) MutationResult {
	if _, exists := s.lines[article]; !exists {
		return MutationNotFound
	}
	delete(s.lines, article)
	for i, key := range s.keys {
		if key == article {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return MutationOK
}

// InBounds reports whether quantity is within the configured bounds
func (s *OrderService) InBounds(quantity int) bool {
	return quantity >= s.minQuantity && quantity <= s.maxQuantity
}

// SetQuantity overwrites the quantity; 0 keeps the line but excludes it from generation
func (s *OrderService) SetQuantity(article string, quantity int) MutationResult {
	if !s.InBounds(quantity) {
		return MutationOutOfRange
	}
	line, exists := s.lines[article]
	if !exists {
		return MutationNotFound
	}
	line.Quantity = quantity
	return MutationOK
}

// ToggleEnabled flips whether the line is included in generation and export
func (s *OrderService) ToggleEnabled(article string) MutationResult {
	line, exists := s.lines[article]
	if !exists {
		return MutationNotFound
	}
	line.Enabled = !line.Enabled
	return MutationOK
}

// SetSupplier selects one of the line's cached suppliers and updates the displayed price
func (s *OrderService) SetSupplier(article, supplier string) MutationResult {
	line, exists := s.lines[article]
	if !exists {
		return MutationNotFound
	}
	row, ok := line.SupplierRow(supplier)
	if !ok {
		return MutationInvalidSupplier
	}
	line.SelectedSupplier = row.Supplier
	line.Price = row.Price
	return MutationOK
}

// LoadDefaultPreset replaces the order with the preset lines found in the catalog.
// Returns how many lines were loaded.
func (s *OrderService) LoadDefaultPreset(catalog *models.Catalog, preset []config.PresetLine) int {
	s.Clear()

	loaded := 0
	for _, p := range preset {
		if !s.InBounds(p.Quantity) {
			log.Printf("⚠️  Preset quantity %d for %s is out of range, skipping", p.Quantity, p.Article)
			continue
		}
		if _, ok := catalog.FindOne(p.Article); !ok {
			continue
		}
		if s.AddProduct(catalog, p.Article) != AddResultAdded {
			continue
		}
		s.lines[p.Article].Quantity = p.Quantity
		loaded++
	}

	log.Printf("✓ Loaded default order (%d of %d articles)", loaded, len(preset))
	return loaded
}

// Replace discards the current order and installs lines in the given order
func (s *OrderService) Replace(lines []models.OrderLine) {
	s.Clear()
	for _, line := range lines {
		s.insert(line)
	}
}

// Clear empties the order
func (s *OrderService) Clear() {
	s.lines = make(map[string]*models.OrderLine)
	s.keys = nil
}

// Len returns the number of lines
func (s *OrderService) Len() int {
	return len(s.keys)
}

// Line returns a copy of the line for the article
func (s *OrderService) Line(article string) (models.OrderLine, bool) {
	line, exists := s.lines[article]
	if !exists {
		return models.OrderLine{}, false
	}
	return line.Clone(), true
}

// Lines returns a snapshot of all lines in insertion order
func (s *OrderService) Lines() []models.OrderLine {
	out := make([]models.OrderLine, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, s.lines[key].Clone())
	}
	return out
}

// ItemsForDisplay projects the order into flat view records
func (s *OrderService) ItemsForDisplay() []models.DisplayItem {
	items := make([]models.DisplayItem, 0, len(s.keys))
	for _, key := range s.keys {
		line := s.lines[key]
		items = append(items, models.DisplayItem{
			Article:          line.Article,
			Name:             line.Name,
			Price:            line.Price.Round(2).InexactFloat64(),
			Quantity:         line.Quantity,
			Enabled:          line.Enabled,
			SelectedSupplier: line.SelectedSupplier,
			AllSuppliers:     line.SupplierNames(),
		})
	}
	return items
}
