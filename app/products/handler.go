package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gadgetline/storebot/app/api"
	"github.com/gadgetline/storebot/models"
)

type SpecificationInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type CreateInput struct {
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Price          float64              `json:"price"`
	ImageURL       string               `json:"image_url"`
	FileType       string               `json:"file_type"`
	SKU            string               `json:"sku"`
	SubcategoryID  uint                 `json:"subcategory_id"`
	Brand          string               `json:"brand"`
	Diagonal       string               `json:"diagonal"`
	Specifications []SpecificationInput `json:"specifications"`
}

type CreateResponse struct {
	ID  uint   `json:"id"`
	SKU string `json:"sku"`
}

type ProductStore interface {
	Create(product *models.Product) error
	SetStockStatus(productID uint, inStock bool) error
	AddImage(image *models.ProductImage) error
}

// Handler is the admin-side product surface: catalog writes, the stock
// toggle, and the image gallery.
type Handler struct {
	store ProductStore
}

func NewHandler(store ProductStore) *Handler {
	return &Handler{store: store}
}

// HandleCreate inserts a product. The SKU is the business key: posting an
// already-used SKU replaces the old product, images and specifications
// included, rather than failing.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Name == "" || input.SKU == "" || input.ImageURL == "" || input.FileType == "" {
		api.Error(w, http.StatusBadRequest, "Missing name, sku, image_url or file_type")
		return
	}
	if input.SubcategoryID == 0 {
		api.Error(w, http.StatusBadRequest, "Missing subcategory_id")
		return
	}
	if input.Price < 0 {
		api.Error(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	product := &models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         decimal.NewFromFloat(input.Price),
		ImageURL:      input.ImageURL,
		FileType:      input.FileType,
		SKU:           input.SKU,
		InStock:       true,
		SubcategoryID: input.SubcategoryID,
		Brand:         input.Brand,
		Diagonal:      input.Diagonal,
	}
	for _, spec := range input.Specifications {
		product.Specifications = append(product.Specifications, models.ProductSpecification{
			Key:   spec.Key,
			Value: spec.Value,
		})
	}

	if err := h.store.Create(product); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	api.JSON(w, http.StatusCreated, CreateResponse{ID: product.ID, SKU: product.SKU})
}

// HandleSetStock flips the in-stock flag; the storefront renders out-of-stock
// products as "on order" rather than hiding them.
func (h *Handler) HandleSetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var input struct {
		InStock *bool `json:"in_stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.InStock == nil {
		api.Error(w, http.StatusBadRequest, "Missing in_stock")
		return
	}

	if err := h.store.SetStockStatus(id, *input.InStock); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to update stock status")
		return
	}

	api.JSON(w, http.StatusOK, map[string]bool{"in_stock": *input.InStock})
}

func (h *Handler) HandleAddImage(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var input struct {
		ImageURL string `json:"image_url"`
		FileType string `json:"file_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.ImageURL == "" || input.FileType == "" {
		api.Error(w, http.StatusBadRequest, "Missing image_url or file_type")
		return
	}

	image := &models.ProductImage{
		ProductID: id,
		ImageURL:  input.ImageURL,
		FileType:  input.FileType,
	}
	if err := h.store.AddImage(image); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]string{
		"message": "Image added successfully",
	})
}

func productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return uint(id), true
}
