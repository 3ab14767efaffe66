package handler

import (
	"net/http"

	"github.com/BMSaiko/FoodLister-sub003/pkg/logger"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

type ListHandler struct {
	base
	service ports.ListService
}

func NewListHandler(service ports.ListService, log *logger.Logger) *ListHandler {
	return &ListHandler{base: base{log: log}, service: service}
}

type listRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"max=100"`
	Description string `json:"description" validate:"max=2000"`
	IsPublic    bool   `json:"is_public"`
}

func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.service.CreateList(r.Context(), UserID(r.Context()), req.Title, req.Slug, req.Description, req.IsPublic)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	search := r.URL.Query().Get("search")

	lists, err := h.service.ListLists(r.Context(), UserID(r.Context()), page, limit, search)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  lists,
		"page":  page,
		"limit": limit,
	})
}

func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.service.GetList(r.Context(), UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req listRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.service.UpdateList(r.Context(), UserID(r.Context()), id, req.Title, req.Slug, req.Description, req.IsPublic)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.DeleteList(r.Context(), UserID(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addRestaurantRequest struct {
	RestaurantID int64 `json:"restaurant_id" validate:"required,gt=0"`
}

func (h *ListHandler) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req addRestaurantRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.AddRestaurant(r.Context(), UserID(r.Context()), listID, req.RestaurantID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *ListHandler) RemoveRestaurant(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	restaurantID, err := pathID(r, "restaurantID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.RemoveRestaurant(r.Context(), UserID(r.Context()), listID, restaurantID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	RestaurantIDs []int64 `json:"restaurant_ids" validate:"required,min=1,dive,gt=0"`
}

func (h *ListHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req reorderRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.ReorderRestaurants(r.Context(), UserID(r.Context()), listID, req.RestaurantIDs); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) GetPublicList(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		writeMessage(w, http.StatusBadRequest, "slug required")
		return
	}

	list, err := h.service.GetPublicList(r.Context(), slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
