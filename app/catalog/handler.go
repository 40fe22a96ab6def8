package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gadgetline/storebot/app/api"
	"github.com/gadgetline/storebot/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Brand        string  `json:"brand,omitempty"`
	Availability string  `json:"availability"`
}

type ProductDetail struct {
	Product
	Description    string            `json:"description"`
	ImageURL       string            `json:"image_url"`
	Diagonal       string            `json:"diagonal,omitempty"`
	Subcategory    string            `json:"subcategory"`
	Specifications map[string]string `json:"specifications"`
}

type ProductProvider interface {
	GetBySKU(sku string) (*models.Product, error)
	SearchByBrand(fragment string) ([]models.Product, error)
	ListBySubcategory(subcategoryID uint) ([]models.Product, error)
	ListByCategory(categoryID uint) ([]models.Product, error)
	ListPaged(offset, limit int) ([]models.Product, int64, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// availability marks out-of-stock products "on_order" instead of hiding
// them; the storefront still shows them.
func availability(inStock bool) string {
	if inStock {
		return "in_stock"
	}
	return "on_order"
}

func toProduct(p models.Product) Product {
	return Product{
		SKU:          p.SKU,
		Name:         p.Name,
		Price:        p.Price.InexactFloat64(),
		Brand:        p.Brand,
		Availability: availability(p.InStock),
	}
}

func toProducts(list []models.Product) []Product {
	products := make([]Product, len(list))
	for i, p := range list {
		products[i] = toProduct(p)
	}
	return products
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	res, total, err := h.repo.ListPaged(offset, limit)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	api.JSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: toProducts(res),
	})
}

func (h *CatalogHandler) HandleGetBySKU(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")

	product, err := h.repo.GetBySKU(sku)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	specs := make(map[string]string, len(product.Specifications))
	for _, s := range product.Specifications {
		specs[s.Key] = s.Value
	}

	api.JSON(w, http.StatusOK, ProductDetail{
		Product:        toProduct(*product),
		Description:    product.Description,
		ImageURL:       product.ImageURL,
		Diagonal:       product.Diagonal,
		Subcategory:    product.Subcategory.Name,
		Specifications: specs,
	})
}

func (h *CatalogHandler) HandleSearchByBrand(w http.ResponseWriter, r *http.Request) {
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		api.Error(w, http.StatusBadRequest, "Missing brand query")
		return
	}

	res, err := h.repo.SearchByBrand(brand)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to search products")
		return
	}

	api.JSON(w, http.StatusOK, Response{
		Total:    len(res),
		Products: toProducts(res),
	})
}

func (h *CatalogHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	res, err := h.repo.ListByCategory(uint(id))
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	api.JSON(w, http.StatusOK, Response{
		Total:    len(res),
		Products: toProducts(res),
	})
}

func (h *CatalogHandler) HandleListBySubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid subcategory id")
		return
	}

	res, err := h.repo.ListBySubcategory(uint(id))
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	api.JSON(w, http.StatusOK, Response{
		Total:    len(res),
		Products: toProducts(res),
	})
}
