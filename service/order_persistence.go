package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/GameIsFlash/Purchase-Generator/models"
)

// ErrInvalidOrderFile is returned when an order file is not a JSON object
var ErrInvalidOrderFile = errors.New("order file must contain a JSON object")

// LoadReport summarizes an order load
type LoadReport struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// OrderPersistence saves and restores the order as an article to quantity object
type OrderPersistence struct {
	minQuantity int
	maxQuantity int
}

// NewOrderPersistence creates a new OrderPersistence with the order quantity bounds
func NewOrderPersistence(minQuantity, maxQuantity int) *OrderPersistence {
	return &OrderPersistence{
		minQuantity: minQuantity,
		maxQuantity: maxQuantity,
	}
}

// Save keeps only enabled lines with a positive quantity
func (p *OrderPersistence) Save(lines []models.OrderLine) map[string]int {
	out := make(map[string]int)
	for _, line := range lines {
		if line.Enabled && line.Quantity > 0 {
			out[line.Article] = line.Quantity
		}
	}
	return out
}

// Load rebuilds order lines from a decoded object. Entries whose value is not an
// integer, is out of bounds, or whose article is not in the catalog are skipped.
func (p *OrderPersistence) Load(catalog *models.Catalog, data map[string]any, keys []string) ([]models.OrderLine, LoadReport) {
	if keys == nil {
		for key := range data {
			keys = append(keys, key)
		}
	}

	var (
		lines  []models.OrderLine
		report LoadReport
	)
	for _, article := range keys {
		quantity, ok := coerceQuantity(data[article])
		if !ok {
			log.Printf("⚠️  Invalid quantity for %s, skipping", article)
			report.Skipped++
			continue
		}
		if quantity < p.minQuantity || quantity > p.maxQuantity {
			log.Printf("⚠️  Quantity %d for %s is out of range, skipping", quantity, article)
			report.Skipped++
			continue
		}

		line, result := NewOrderLine(catalog, article)
		if result != AddResultAdded {
			log.Printf("⚠️  Article %s not found in catalog, skipping", article)
			report.Skipped++
			continue
		}
		line.Quantity = quantity
		lines = append(lines, line)
		report.Loaded++
	}

	log.Printf("✓ Order loaded: %d lines, %d skipped", report.Loaded, report.Skipped)
	return lines, report
}

func coerceQuantity(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatQuantity(f)
	case float64:
		return floatQuantity(v)
	case int:
		return v, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func floatQuantity(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// DecodeOrderJSON decodes an order object and returns its keys in file order
func DecodeOrderJSON(data []byte) (map[string]any, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidOrderFile, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, ErrInvalidOrderFile
	}

	out := make(map[string]any)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidOrderFile, err)
		}
		key, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidOrderFile, err)
		}
		if _, dup := out[key]; !dup {
			keys = append(keys, key)
		}
		out[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidOrderFile, err)
	}

	return out, keys, nil
}

// EncodeOrderJSON encodes the order object with two space indentation
func EncodeOrderJSON(order map[string]int) ([]byte, error) {
	data, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}
	return data, nil
}

// SaveFile writes the enabled lines to path
func (p *OrderPersistence) SaveFile(path string, lines []models.OrderLine) error {
	data, err := EncodeOrderJSON(p.Save(lines))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write order file: %w", err)
	}
	log.Printf("✓ Order saved to %s", path)
	return nil
}

// LoadFile reads an order file and rebuilds its lines against catalog
func (p *OrderPersistence) LoadFile(path string, catalog *models.Catalog) ([]models.OrderLine, LoadReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to read order file: %w", err)
	}
	decoded, keys, err := DecodeOrderJSON(data)
	if err != nil {
		return nil, LoadReport{}, err
	}
	lines, report := p.Load(catalog, decoded, keys)
	return lines, report, nil
}
