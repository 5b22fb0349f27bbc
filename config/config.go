package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Catalog source kinds
const (
	SourceExcel    = "xlsx"
	SourcePostgres = "postgres"
)

// Output formats
const (
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// Config holds the application configuration
type Config struct {
	DatabaseFile string // Path to the catalog workbook
	ImagesDir    string // Directory with product images
	OutputDir    string // Directory for generated documents

	CatalogSource      string // "xlsx" or "postgres"
	CatalogDatabaseURL string

	Columns ColumnNames

	DefaultOrderFile string
	DefaultOrder     []PresetLine

	MinQuantity      int
	MaxQuantity      int
	MinSearchLength  int
	MaxSearchResults int

	OutputFormat string // "xlsx" or "pdf"
	ChromePath   string

	HTTPAddr string

	GoogleCredentialsPath string
	ImagesDriveFolderID   string
}

// ColumnNames maps the required catalog fields to header names in the workbook
type ColumnNames struct {
	Article  string `json:"article"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Supplier string `json:"supplier"`
}

// PresetLine is one article of the default order preset
type PresetLine struct {
	Article  string
	Quantity int
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		DatabaseFile:  filepath.Join("data", "table", "database.xlsx"),
		ImagesDir:     filepath.Join("data", "images"),
		OutputDir:     "output",
		CatalogSource: SourceExcel,
		Columns: ColumnNames{
			Article:  "Артикул",
			Name:     "Наименование",
			Price:    "Цена закупки",
			Supplier: "Поставщик",
		},
		DefaultOrderFile: filepath.Join("configs", "default_order.json"),
		MinQuantity:      0,
		MaxQuantity:      9999,
		MinSearchLength:  2,
		MaxSearchResults: 20,
		OutputFormat:     FormatExcel,
		HTTPAddr:         "127.0.0.1:8080",
	}
}

// Load builds the configuration from defaults and environment variables,
// then reads the default order preset file
func Load() (*Config, error) {
	cfg := Default()
	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	preset, err := LoadPreset(cfg.DefaultOrderFile)
	if err != nil {
		return nil, err
	}
	cfg.DefaultOrder = preset

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.DatabaseFile, "DATABASE_FILE")
	setString(&cfg.ImagesDir, "IMAGES_DIR")
	setString(&cfg.OutputDir, "OUTPUT_DIR")
	setString(&cfg.CatalogSource, "CATALOG_SOURCE")
	setString(&cfg.CatalogDatabaseURL, "CATALOG_DATABASE_URL")
	setString(&cfg.Columns.Article, "COLUMN_ARTICLE")
	setString(&cfg.Columns.Name, "COLUMN_NAME")
	setString(&cfg.Columns.Price, "COLUMN_PRICE")
	setString(&cfg.Columns.Supplier, "COLUMN_SUPPLIER")
	setString(&cfg.DefaultOrderFile, "DEFAULT_ORDER_FILE")
	setInt(&cfg.MinQuantity, "MIN_QUANTITY")
	setInt(&cfg.MaxQuantity, "MAX_QUANTITY")
	setInt(&cfg.MinSearchLength, "MIN_SEARCH_LENGTH")
	setInt(&cfg.MaxSearchResults, "MAX_SEARCH_RESULTS")
	setString(&cfg.OutputFormat, "OUTPUT_FORMAT")
	setString(&cfg.ChromePath, "CHROME_PATH")
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.GoogleCredentialsPath, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&cfg.ImagesDriveFolderID, "IMAGES_DRIVE_FOLDER_ID")

	cfg.CatalogSource = strings.ToLower(cfg.CatalogSource)
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Ignoring %s=%q: not an integer", key, v)
		return
	}
	*dst = n
}

func (c *Config) validate() error {
	if c.MinQuantity < 0 {
		return fmt.Errorf("MIN_QUANTITY must not be negative")
	}
	if c.MaxQuantity < c.MinQuantity {
		return fmt.Errorf("MAX_QUANTITY must be greater than or equal to MIN_QUANTITY")
	}
	if c.MinSearchLength < 0 {
		return fmt.Errorf("MIN_SEARCH_LENGTH must not be negative")
	}
	if c.MaxSearchResults <= 0 {
		return fmt.Errorf("MAX_SEARCH_RESULTS must be greater than 0")
	}
	switch c.CatalogSource {
	case SourceExcel:
	case SourcePostgres:
		if c.CatalogDatabaseURL == "" {
			return fmt.Errorf("CATALOG_DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	switch c.OutputFormat {
	case FormatExcel, FormatPDF:
	default:
		return fmt.Errorf("unknown OUTPUT_FORMAT %q", c.OutputFormat)
	}
	return nil
}

// DriveSyncEnabled reports whether image sync from Google Drive is configured
func (c *Config) DriveSyncEnabled() bool {
	return c.GoogleCredentialsPath != "" && c.ImagesDriveFolderID != ""
}

// LoadPreset reads the default order preset: a JSON object of article -> quantity.
// A missing file yields an empty preset. Lines keep the file's key order.
func LoadPreset(path string) ([]PresetLine, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("⚠️  Default order file not found at %s, using empty preset", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read default order file: %w", err)
	}

	lines, err := ParsePreset(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default order file %s: %w", path, err)
	}

	log.Printf("✓ Loaded default order preset from %s (%d articles)", path, len(lines))
	return lines, nil
}

// ParsePreset decodes a preset JSON object keeping key order.
// A repeated key keeps its first position and its last value.
func ParsePreset(data []byte) ([]PresetLine, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object of article to quantity")
	}

	var lines []PresetLine
	positions := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		article, _ := keyTok.(string)

		var quantity int
		if err := dec.Decode(&quantity); err != nil {
			return nil, fmt.Errorf("quantity for %q: %w", article, err)
		}
		if i, seen := positions[article]; seen {
			lines[i].Quantity = quantity
			continue
		}
		positions[article] = len(lines)
		lines = append(lines, PresetLine{Article: article, Quantity: quantity})
	}

	return lines, nil
}
