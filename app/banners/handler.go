package banners

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gadgetline/storebot/app/api"
	"github.com/gadgetline/storebot/models"
)

type BannerResponse struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url"`
	FileType    string `json:"file_type"`
	BannerType  string `json:"banner_type"`
}

type BannerProvider interface {
	GetByType(bannerType string) (*models.Banner, error)
	Replace(banner *models.Banner) error
}

type BannerHandler struct {
	repo BannerProvider
}

func NewBannerHandler(r BannerProvider) *BannerHandler {
	return &BannerHandler{repo: r}
}

func (h *BannerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	bannerType := r.PathValue("type")

	banner, err := h.repo.GetByType(bannerType)
	if err != nil {
		if errors.Is(err, models.ErrBannerNotFound) {
			api.Error(w, http.StatusNotFound, "Banner not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to retrieve banner")
		return
	}

	api.JSON(w, http.StatusOK, BannerResponse{
		Title:       banner.Title,
		Description: banner.Description,
		ImageURL:    banner.ImageURL,
		FileType:    banner.FileType,
		BannerType:  banner.BannerType,
	})
}

// HandlePut installs the banner for a placement type. A slot holds at most
// one banner; an existing one is replaced, not merged.
func (h *BannerHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	bannerType := r.PathValue("type")

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		FileType    string `json:"file_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.ImageURL == "" || input.FileType == "" {
		api.Error(w, http.StatusBadRequest, "Missing image_url or file_type")
		return
	}

	banner := &models.Banner{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		FileType:    input.FileType,
		BannerType:  bannerType,
	}
	if err := h.repo.Replace(banner); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to store banner")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]string{
		"message": "Banner stored successfully",
	})
}
