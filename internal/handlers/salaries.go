package handlers

import (
	"net/http"

	"github.com/Harshverma1208/smartech/internal/httpx"
	"github.com/Harshverma1208/smartech/internal/operations"
)

type SalaryHandler struct {
	Ops *operations.Salaries
}

func NewSalaryHandler(ops *operations.Salaries) *SalaryHandler {
	return &SalaryHandler{Ops: ops}
}

// List: GET /salaries
func (h *SalaryHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Ops.ListAll(r.Context())
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Get: GET /salaries/{id}
func (h *SalaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.Ops.GetByID(r.Context(), id)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// Create: POST /salaries
func (h *SalaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in operations.SalaryInput
	if !decodeBody(w, r, &in) {
		return
	}
	rec, err := h.Ops.Create(r.Context(), in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

// Update: PUT /salaries/{id}
func (h *SalaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in operations.SalaryUpdate
	if !decodeBody(w, r, &in) {
		return
	}
	rec, err := h.Ops.Update(r.Context(), id, in)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// Delete: DELETE /salaries/{id}
func (h *SalaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
