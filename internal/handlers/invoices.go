package handlers

import (
	"net/http"
	"strconv"

	"github.com/Harshverma1208/smartech/internal/httpx"
	"github.com/Harshverma1208/smartech/internal/operations"
)

type InvoiceHandler struct {
	Ops *operations.Invoices
}

func NewInvoiceHandler(ops *operations.Invoices) *InvoiceHandler {
	return &InvoiceHandler{Ops: ops}
}

// List: GET /invoices[?customer_id=N]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("customer_id"); v != "" {
		cid, err := strconv.ParseUint(v, 10, 64)
		if err != nil || cid == 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_customer_id", "customer_id must be a positive integer")
			return
		}
		rows, lerr := h.Ops.ListByCustomer(r.Context(), uint(cid))
		if lerr != nil {
			httpx.Fault(w, lerr)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
		return
	}
	rows, err := h.Ops.ListAll(r.Context())
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Get: GET /invoices/{id}. Joined fetch including customer id/name/email.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	inv, err := h.Ops.GetByID(r.Context(), id)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in operations.InvoiceInput
	if !decodeBody(w, r, &in) {
		return
	}
	inv, err := h.Ops.Create(r.Context(), in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Update: PUT /invoices/{id}
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in operations.InvoiceUpdate
	if !decodeBody(w, r, &in) {
		return
	}
	inv, err := h.Ops.Update(r.Context(), id, in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// UpdateStatus: PATCH /invoices/{id}/status
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	inv, err := h.Ops.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
