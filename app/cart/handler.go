package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gadgetline/storebot/app/api"
	"github.com/gadgetline/storebot/models"
)

type ItemResponse struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CartResponse struct {
	Items []ItemResponse `json:"items"`
	Total float64        `json:"total"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type addInput struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	ProductID uint   `json:"product_id"`
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input addInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.UserID == 0 || input.ProductID == 0 {
		api.Error(w, http.StatusBadRequest, "Missing user_id or product_id")
		return
	}

	identity := models.Identity{
		UserID:   input.UserID,
		Username: input.Username,
		FullName: input.FullName,
	}
	item, err := h.svc.Add(identity, input.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			api.Error(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, ErrOutOfStock):
			api.Error(w, http.StatusUnprocessableEntity, "Product is out of stock")
		default:
			api.Error(w, http.StatusInternalServerError, "Failed to add to cart")
		}
		return
	}

	api.JSON(w, http.StatusOK, ItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
}

func (h *Handler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.svc.Increment)
}

func (h *Handler) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.svc.Decrement)
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request, op func(int64, uint) (*models.CartItem, error)) {
	userID, productID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	item, err := op(userID, productID)
	if err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			api.Error(w, http.StatusNotFound, "Item not in cart")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	// Decrement at quantity 1 removes the line.
	if item == nil {
		api.JSON(w, http.StatusOK, ItemResponse{ProductID: productID, Quantity: 0})
		return
	}
	api.JSON(w, http.StatusOK, ItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	if err := h.svc.Remove(userID, productID); err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			api.Error(w, http.StatusNotFound, "Item not in cart")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	items, err := h.svc.List(userID)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	total, err := h.svc.Total(userID)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to compute total")
		return
	}

	response := CartResponse{
		Items: make([]ItemResponse, len(items)),
		Total: total.InexactFloat64(),
	}
	for i, item := range items {
		response.Items[i] = ItemResponse{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	api.JSON(w, http.StatusOK, response)
}

func pathIDs(w http.ResponseWriter, r *http.Request) (int64, uint, bool) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user id")
		return 0, 0, false
	}
	productID, err := strconv.ParseUint(r.PathValue("productID"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid product id")
		return 0, 0, false
	}
	return userID, uint(productID), true
}
