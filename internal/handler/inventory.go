package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/pantry/internal/foodgroup"
	"github.com/dukerupert/pantry/internal/model"
	"github.com/dukerupert/pantry/internal/pantry"
	"github.com/dukerupert/pantry/internal/tag"
)

type InventoryHandler struct {
	svc    *pantry.Service
	logger *slog.Logger
}

func NewInventoryHandler(svc *pantry.Service, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, logger: logger}
}

// --- Containers ---

type containerRequest struct {
	Name string `json:"name"`
}

func (h *InventoryHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListContainers()
	if err != nil {
		writeError(w, h.logger, "list containers", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *InventoryHandler) CreateContainer(w http.ResponseWriter, r *http.Request) {
	var req containerRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.CreateContainer(req.Name); err != nil {
		writeError(w, h.logger, "create container", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": strings.TrimSpace(req.Name)})
}

func (h *InventoryHandler) RenameContainer(w http.ResponseWriter, r *http.Request) {
	var req containerRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.RenameContainer(r.PathValue("name"), req.Name); err != nil {
		writeError(w, h.logger, "rename container", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": strings.TrimSpace(req.Name)})
}

func (h *InventoryHandler) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteContainer(r.PathValue("name")); err != nil {
		writeError(w, h.logger, "delete container", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) EmptyContainer(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.EmptyContainer(r.PathValue("name"))
	if err != nil {
		writeError(w, h.logger, "empty container", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": n})
}

func (h *InventoryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.RefreshFreshness(r.PathValue("name"))
	if err != nil {
		writeError(w, h.logger, "refresh freshness", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"changed": n})
}

func (h *InventoryHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(r.PathValue("name"))
	if err != nil {
		writeError(w, h.logger, "build report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// --- Items ---

type itemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Expiry   string `json:"expiry"`
}

type itemResponse struct {
	Added bool       `json:"added"`
	Item  model.Item `json:"item"`
}

func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.OpenContainer(r.PathValue("name"))
	if err != nil {
		writeError(w, h.logger, "list items", err)
		return
	}
	writeJSON(w, http.StatusOK, c.Items())
}

// CreateItem takes the raw form strings so the user sees the same messages
// whatever client they use.
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decode(w, r, &req) {
		return
	}
	container := r.PathValue("name")
	item, added, err := h.svc.CreateItem(container, req.Name, req.Quantity, req.Expiry)
	if err != nil {
		writeError(w, h.logger, "add item", err)
		return
	}
	// An existing item wins; it is returned unchanged with added=false.
	stored, err := h.svc.GetItem(container, item.Name)
	if err != nil {
		writeError(w, h.logger, "add item", err)
		return
	}
	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	writeJSON(w, status, itemResponse{Added: added, Item: stored})
}

type quantityRequest struct {
	Quantity string `json:"quantity"`
}

func (h *InventoryHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !decode(w, r, &req) {
		return
	}
	edit, err := h.svc.EditQuantity(r.PathValue("name"), r.PathValue("item"), req.Quantity)
	if err != nil {
		writeError(w, h.logger, "update quantity", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"action":   edit.Action.String(),
		"quantity": edit.Quantity,
	})
}

type foodGroupRequest struct {
	FoodGroup string `json:"food_group"`
}

func (h *InventoryHandler) UpdateFoodGroup(w http.ResponseWriter, r *http.Request) {
	var req foodGroupRequest
	if !decode(w, r, &req) {
		return
	}
	group, err := tag.FromDisplayName(model.FoodGroups, req.FoodGroup)
	if err != nil {
		writeError(w, h.logger, "update food group", err)
		return
	}
	if _, err := h.svc.UpdateFoodGroupTag(r.PathValue("name"), r.PathValue("item"), group); err != nil {
		writeError(w, h.logger, "update food group", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"food_group": group.String()})
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *InventoryHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.SetCustomTag(r.PathValue("name"), r.PathValue("item"), req.Note); err != nil {
		writeError(w, h.logger, "update note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveItem(r.PathValue("name"), r.PathValue("item")); err != nil {
		writeError(w, h.logger, "delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) AllItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.AllItems()
	if err != nil {
		writeError(w, h.logger, "list all items", err)
		return
	}
	if items == nil {
		items = []model.ContainerItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// --- Lookups ---

func (h *InventoryHandler) FoodGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.FoodGroups.Names())
}

func (h *InventoryHandler) SuggestFoodGroup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	writeJSON(w, http.StatusOK, map[string]string{
		"name":       name,
		"food_group": foodgroup.Suggest(name).DisplayName(),
	})
}

func (h *InventoryHandler) StorageTip(w http.ResponseWriter, r *http.Request) {
	food := r.URL.Query().Get("food")
	tip, err := h.svc.StorageTip(food)
	if err != nil {
		writeError(w, h.logger, "get storage tip", err)
		return
	}
	if tip == "" {
		writeMessage(w, http.StatusNotFound, "no storage tip")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"food": food, "tip": tip})
}
