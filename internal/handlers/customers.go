package handlers

import (
	"net/http"

	"github.com/Harshverma1208/smartech/internal/httpx"
	"github.com/Harshverma1208/smartech/internal/operations"
)

type CustomerHandler struct {
	Ops *operations.Customers
}

func NewCustomerHandler(ops *operations.Customers) *CustomerHandler {
	return &CustomerHandler{Ops: ops}
}

// List: GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Ops.ListAll(r.Context())
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Get: GET /customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cust, err := h.Ops.GetByID(r.Context(), id)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cust)
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in operations.CustomerInput
	if !decodeBody(w, r, &in) {
		return
	}
	cust, err := h.Ops.Create(r.Context(), in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cust)
}

// Update: PUT /customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in operations.CustomerUpdate
	if !decodeBody(w, r, &in) {
		return
	}
	cust, err := h.Ops.Update(r.Context(), id, in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cust)
}

// Delete: DELETE /customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
