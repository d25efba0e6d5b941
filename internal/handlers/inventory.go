package handlers

import (
	"net/http"

	"github.com/Harshverma1208/smartech/internal/httpx"
	"github.com/Harshverma1208/smartech/internal/operations"
)

type InventoryHandler struct {
	Ops *operations.Inventory
}

func NewInventoryHandler(ops *operations.Inventory) *InventoryHandler {
	return &InventoryHandler{Ops: ops}
}

// List: GET /inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Ops.ListAll(r.Context())
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Get: GET /inventory/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.Ops.GetByID(r.Context(), id)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Create: POST /inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in operations.InventoryInput
	if !decodeBody(w, r, &in) {
		return
	}
	item, err := h.Ops.Create(r.Context(), in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// Update: PUT /inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in operations.InventoryUpdate
	if !decodeBody(w, r, &in) {
		return
	}
	item, err := h.Ops.Update(r.Context(), id, in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Delete: DELETE /inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Ops.Delete(r.Context(), id); err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
