package handler

import (
	"net/http"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
	"github.com/BMSaiko/FoodLister-sub003/pkg/logger"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

type base struct {
	log *logger.Logger
}

type RestaurantHandler struct {
	base
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService, log *logger.Logger) *RestaurantHandler {
	return &RestaurantHandler{base: base{log: log}, service: service}
}

// PreviewRequest carries the links pasted into a restaurant form
type PreviewRequest struct {
	MapsURL  string `json:"maps_url" validate:"max=2048"`
	ImageURL string `json:"image_url" validate:"max=2048"`
}

// Preview normalizes pasted links without storing anything
func (h *RestaurantHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.PreviewLinks(req.MapsURL, req.ImageURL))
}

func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.RestaurantInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	restaurant, err := h.service.Create(r.Context(), UserID(r.Context()), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	restaurant, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	q := r.URL.Query()
	filter := ports.RestaurantFilter{
		Search: q.Get("search"),
		Tag:    q.Get("tag"),
	}
	if q.Get("mine") == "true" {
		filter.CreatedBy = UserID(r.Context())
	}

	restaurants, total, err := h.service.List(r.Context(), page, limit, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  restaurants,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.RestaurantInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	restaurant, err := h.service.Update(r.Context(), UserID(r.Context()), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), UserID(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
