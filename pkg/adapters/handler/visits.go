package handler

import (
	"net/http"

	"github.com/BMSaiko/FoodLister-sub003/pkg/logger"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

type VisitHandler struct {
	base
	service ports.VisitService
}

func NewVisitHandler(service ports.VisitService, log *logger.Logger) *VisitHandler {
	return &VisitHandler{base: base{log: log}, service: service}
}

type recordVisitRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

func (h *VisitHandler) Record(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req recordVisitRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	visit, err := h.service.RecordVisit(r.Context(), UserID(r.Context()), id, req.Note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, visit)
}

func (h *VisitHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *VisitHandler) Mine(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	visits, err := h.service.ListVisits(r.Context(), UserID(r.Context()), page, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  visits,
		"page":  page,
		"limit": limit,
	})
}
