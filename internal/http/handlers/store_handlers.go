package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/respond"
)

// StoreHandlers serves the seller-owned store resource guarded by ownership
// checks.
type StoreHandlers struct {
	stores domain.StoreRepository
	logger *slog.Logger
}

// NewStoreHandlers creates the store handler set.
func NewStoreHandlers(stores domain.StoreRepository, logger *slog.Logger) *StoreHandlers {
	return &StoreHandlers{stores: stores, logger: logger}
}

// Get returns one store by id.
func (h *StoreHandlers) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respond.Error(c, h.logger, domain.ErrStoreNotFound)
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, gin.H{
		"id":         store.ID,
		"seller_id":  store.SellerID,
		"name":       store.Name,
		"created_at": store.CreatedAt,
	})
}
