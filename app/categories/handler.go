package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gadgetline/storebot/app/api"
	"github.com/gadgetline/storebot/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SubcategoryResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	CategoryID uint   `json:"category_id"`
}

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
	CreateCategory(category *models.Category) error
	GetSubcategories(categoryID uint) ([]models.Subcategory, error)
	CreateSubcategory(subcategory *models.Subcategory) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:   c.ID,
			Name: c.Name,
		}
	}

	api.JSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" {
		api.Error(w, http.StatusBadRequest, "Missing name")
		return
	}

	category := &models.Category{Name: input.Name}

	if err := h.repo.CreateCategory(category); err != nil {
		if errors.Is(err, models.ErrDuplicateCategory) {
			api.Error(w, http.StatusConflict, "Category name already exists")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]string{
		"message": "Category created successfully",
	})
}

func (h *CategoryHandler) HandleGetSubcategories(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	subcategories, err := h.repo.GetSubcategories(uint(id))
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to fetch subcategories")
		return
	}

	response := make([]SubcategoryResponse, len(subcategories))
	for i, s := range subcategories {
		response[i] = SubcategoryResponse{
			ID:         s.ID,
			Name:       s.Name,
			CategoryID: s.CategoryID,
		}
	}

	api.JSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Name == "" {
		api.Error(w, http.StatusBadRequest, "Missing name")
		return
	}

	subcategory := &models.Subcategory{
		Name:       input.Name,
		CategoryID: uint(id),
	}
	if err := h.repo.CreateSubcategory(subcategory); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to create subcategory")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]string{
		"message": "Subcategory created successfully",
	})
}
