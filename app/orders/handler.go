package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gadgetline/storebot/app/api"
	"github.com/gadgetline/storebot/models"
)

type ItemResponse struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type OrderResponse struct {
	ID        uint           `json:"id"`
	Reference string         `json:"reference"`
	UserID    int64          `json:"user_id"`
	Status    string         `json:"status"`
	IsDeleted bool           `json:"is_deleted"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []ItemResponse `json:"items"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func toOrderResponse(o *models.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
		}
	}
	return OrderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		UserID:    o.UserID,
		Status:    string(o.Status),
		IsDeleted: o.IsDeleted,
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

func (h *Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.UserID == 0 {
		api.Error(w, http.StatusBadRequest, "Missing user_id")
		return
	}

	order, err := h.svc.Place(models.Identity{
		UserID:   input.UserID,
		Username: input.Username,
		FullName: input.FullName,
	})
	if err != nil {
		var stockErr *StockUnavailableError
		switch {
		case errors.Is(err, ErrEmptyCart):
			api.Error(w, http.StatusUnprocessableEntity, "Cart is empty")
		case errors.As(err, &stockErr):
			api.JSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    "Some products are out of stock",
				"products": stockErr.Products,
			})
		default:
			api.Error(w, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}

	api.JSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	status, ok := models.ParseOrderStatus(input.Status)
	if !ok {
		api.Error(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	order, err := h.svc.SetStatus(id, status)
	if err != nil {
		var transitionErr *InvalidTransitionError
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			api.Error(w, http.StatusNotFound, "Order not found")
		case errors.As(err, &transitionErr):
			api.Error(w, http.StatusConflict, transitionErr.Error())
		default:
			api.Error(w, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	api.JSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) HandleSoftDelete(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.svc.SoftDelete)
}

func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.svc.Restore)
}

func (h *Handler) mark(w http.ResponseWriter, r *http.Request, op func(uint) error) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	if err := op(id); err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			api.Error(w, http.StatusNotFound, "Order not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandlePurge(w http.ResponseWriter, r *http.Request) {
	purged, err := h.svc.PurgeDeleted()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to purge orders")
		return
	}
	api.JSON(w, http.StatusOK, map[string]int64{"purged": purged})
}

func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	orders, err := h.svc.ListByUser(userID, includeDeleted(r))
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	h.writeList(w, orders)
}

func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAll(includeDeleted(r))
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	h.writeList(w, orders)
}

func (h *Handler) writeList(w http.ResponseWriter, orders []models.Order) {
	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = toOrderResponse(&orders[i])
	}
	api.JSON(w, http.StatusOK, response)
}

func includeDeleted(r *http.Request) bool {
	return r.URL.Query().Get("include_deleted") == "true"
}

func orderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid order id")
		return 0, false
	}
	return uint(id), true
}
