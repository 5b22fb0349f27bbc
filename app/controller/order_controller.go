package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/GameIsFlash/Purchase-Generator/app/session"
	"github.com/GameIsFlash/Purchase-Generator/service"
)

// OrderController handles HTTP requests for the order being assembled
type OrderController struct {
	session *session.Session
}

// NewOrderController creates a new OrderController
func NewOrderController(s *session.Session) *OrderController {
	return &OrderController{session: s}
}

type addItemRequest struct {
	Article string `json:"article"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type supplierRequest struct {
	Supplier string `json:"supplier"`
}

// GetOrder handles GET /order
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": c.session.Items(),
	})
}

// AddItem handles POST /order/items
func (c *OrderController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result := c.session.AddProduct(req.Article)
	log.Printf("📋 AddItem %s: %s", req.Article, result)

	switch result {
	case service.AddResultAdded:
		writeJSON(w, http.StatusCreated, map[string]interface{}{"result": result.String(), "items": c.session.Items()})
	case service.AddResultAlreadyPresent:
		http.Error(w, fmt.Sprintf("Article %s is already in the order", req.Article), http.StatusConflict)
	case service.AddResultNoSuppliersFound:
		http.Error(w, fmt.Sprintf("No suppliers found for article %s", req.Article), http.StatusNotFound)
	default:
		http.Error(w, "article is required", http.StatusBadRequest)
	}
}

// RemoveItem handles DELETE /order/items/{article}
func (c *OrderController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c.writeMutation(w, articleParam(r), c.session.RemoveProduct(articleParam(r)))
}

// SetQuantity handles PUT /order/items/{article}/quantity
func (c *OrderController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Quantity == nil {
		http.Error(w, "quantity is required", http.StatusBadRequest)
		return
	}

	article := articleParam(r)
	c.writeMutation(w, article, c.session.SetQuantity(article, *req.Quantity))
}

// ToggleItem handles POST /order/items/{article}/toggle
func (c *OrderController) ToggleItem(w http.ResponseWriter, r *http.Request) {
	article := articleParam(r)
	c.writeMutation(w, article, c.session.ToggleEnabled(article))
}

// SetSupplier handles PUT /order/items/{article}/supplier
func (c *OrderController) SetSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	article := articleParam(r)
	c.writeMutation(w, article, c.session.SetSupplier(article, req.Supplier))
}

func (c *OrderController) writeMutation(w http.ResponseWriter, article string, result service.MutationResult) {
	switch result {
	case service.MutationOK:
		writeJSON(w, http.StatusOK, map[string]interface{}{"result": result.String(), "items": c.session.Items()})
	case service.MutationNotFound:
		http.Error(w, fmt.Sprintf("Article %s is not in the order", article), http.StatusNotFound)
	case service.MutationOutOfRange:
		http.Error(w, "quantity is out of range", http.StatusUnprocessableEntity)
	case service.MutationInvalidSupplier:
		http.Error(w, fmt.Sprintf("Supplier does not offer article %s", article), http.StatusUnprocessableEntity)
	}
}

// LoadDefault handles POST /order/default
func (c *OrderController) LoadDefault(w http.ResponseWriter, r *http.Request) {
	loaded := c.session.LoadDefaultOrder()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loaded": loaded,
		"items":  c.session.Items(),
	})
}

// Clear handles POST /order/clear
func (c *OrderController) Clear(w http.ResponseWriter, r *http.Request) {
	c.session.ClearOrder()
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": c.session.Items()})
}

// Export handles GET /order/export
func (c *OrderController) Export(w http.ResponseWriter, r *http.Request) {
	data, err := service.EncodeOrderJSON(c.session.ExportOrder())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export order: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="order.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ Export: Error writing response: %v", err)
	}
}

// Import handles POST /order/import
// The body is an order object; it replaces the whole order
func (c *OrderController) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read body: %v", err), http.StatusBadRequest)
		return
	}

	data, keys, err := service.DecodeOrderJSON(body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrInvalidOrderFile) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Invalid order file: %v", err), status)
		return
	}

	report := c.session.ImportOrder(data, keys)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":  report.Loaded,
		"skipped": report.Skipped,
		"items":   c.session.Items(),
	})
}
