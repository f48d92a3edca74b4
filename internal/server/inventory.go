package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sevaconnect/pkg/types"

	"github.com/alexedwards/flow"
)

type addInventoryItemRequest struct {
	NGOID          string     `json:"ngoId"`
	ItemName       string     `json:"itemName"`
	Category       string     `json:"category"`
	Quantity       int        `json:"quantity"`
	CurrentStock   *int       `json:"currentStock"`
	Urgency        string     `json:"urgency"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	Description    *string    `json:"description"`
	TargetQuantity *int       `json:"targetQuantity"`
}

func (s *Service) handleAddInventoryItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addInventoryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ItemName == "" || req.Category == "" || req.Quantity < 0 {
		s.respondError(w, http.StatusBadRequest, "Item name, category and quantity are required")
		return
	}

	ngo, err := s.ngos.NGO(ctx, req.NGOID)
	if err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusBadRequest, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch ngo for inventory item")
		s.internalServerError(w)
		return
	}

	// Stock starts at the declared quantity unless the caller says otherwise.
	currentStock := req.Quantity
	if req.CurrentStock != nil {
		currentStock = *req.CurrentStock
	}

	urgency := types.Urgency(req.Urgency)
	if !urgency.Valid() {
		urgency = types.UrgencyMedium
	}

	item := &types.InventoryItem{
		NGOID:          ngo.ID,
		ItemName:       req.ItemName,
		Category:       req.Category,
		Quantity:       req.Quantity,
		CurrentStock:   currentStock,
		Urgency:        urgency,
		ExpiryDate:     req.ExpiryDate,
		Description:    req.Description,
		TargetQuantity: req.TargetQuantity,
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		s.logger.WithError(err).Error("failed to create inventory item")
		s.internalServerError(w)
		return
	}

	if item.LowStock() {
		s.notifyLowStock(ctx, item)
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message":       "Inventory item added successfully",
		"inventoryItem": item,
	})
}

func (s *Service) handleNGOInventory(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	items, err := s.inventory.ItemsByNGO(r.Context(), ngoID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list inventory")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"inventory": items})
}

func (s *Service) handleLowStockItems(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	items, err := s.inventory.LowStockItems(r.Context(), ngoID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list low stock items")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"lowStockItems": items})
}

type updateInventoryItemRequest struct {
	ItemName       *string    `json:"itemName"`
	Category       *string    `json:"category"`
	Quantity       *int       `json:"quantity"`
	CurrentStock   *int       `json:"currentStock"`
	Urgency        *string    `json:"urgency"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	Description    *string    `json:"description"`
	TargetQuantity *int       `json:"targetQuantity"`
}

func (s *Service) handleUpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := flow.Param(ctx, "itemID")

	var req updateInventoryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.inventory.Item(ctx, itemID)
	if err != nil {
		if errors.Is(err, types.ErrInventoryNotFound) {
			s.respondError(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch inventory item")
		s.internalServerError(w)
		return
	}

	wasLow := item.LowStock()

	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.CurrentStock != nil {
		item.CurrentStock = *req.CurrentStock
	}
	if req.Urgency != nil {
		urgency := types.Urgency(*req.Urgency)
		if !urgency.Valid() {
			s.respondError(w, http.StatusBadRequest, "Invalid urgency")
			return
		}
		item.Urgency = urgency
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.TargetQuantity != nil {
		item.TargetQuantity = req.TargetQuantity
	}

	if err := s.inventory.Update(ctx, itemID, item); err != nil {
		if errors.Is(err, types.ErrInventoryNotFound) {
			s.respondError(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		s.logger.WithError(err).Error("failed to update inventory item")
		s.internalServerError(w)
		return
	}

	// Alert only on the transition into low stock, not on every low update.
	if !wasLow && item.LowStock() {
		s.notifyLowStock(ctx, item)
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message":       "Inventory item updated successfully",
		"inventoryItem": item,
	})
}

func (s *Service) handleDeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	itemID := flow.Param(r.Context(), "itemID")

	if err := s.inventory.Delete(r.Context(), itemID); err != nil {
		if errors.Is(err, types.ErrInventoryNotFound) {
			s.respondError(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		s.logger.WithError(err).Error("failed to delete inventory item")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Inventory item deleted successfully",
	})
}

func (s *Service) notifyLowStock(ctx context.Context, item *types.InventoryItem) {
	s.notify(ctx, &types.Alert{
		NGOID: item.NGOID,
		Type:  types.AlertTypeLowStock,
		Message: fmt.Sprintf("%s is running low (%d remaining)",
			item.ItemName, item.CurrentStock),
		Priority:          types.AlertPriorityHigh,
		RelatedEntityType: relatedEntity(types.RelatedEntityInventory),
		RelatedEntityID:   &item.ID,
	})
}
