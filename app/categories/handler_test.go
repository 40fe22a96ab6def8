package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gadgetline/storebot/models"
)

// --- Mock Repository ---

type MockCategoryRepo struct {
	Categories    []models.Category
	Subcategories []models.Subcategory
	CreateErr     error
	ListErr       error
	LastSaved     *models.Category
	LastSavedSub  *models.Subcategory
}

func (m *MockCategoryRepo) GetAllCategories() ([]models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Categories, nil
}

func (m *MockCategoryRepo) CreateCategory(cat *models.Category) error {
	for _, existing := range m.Categories {
		if existing.Name == cat.Name {
			return models.ErrDuplicateCategory
		}
	}
	m.LastSaved = cat
	return m.CreateErr
}

func (m *MockCategoryRepo) GetSubcategories(categoryID uint) ([]models.Subcategory, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Subcategory
	for _, s := range m.Subcategories {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockCategoryRepo) CreateSubcategory(sub *models.Subcategory) error {
	m.LastSavedSub = sub
	return m.CreateErr
}

// --- Tests: GET /categories ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with multiple categories",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{
					Categories: []models.Category{
						{ID: 1, Name: "Smartphones"},
						{ID: 2, Name: "Laptops"},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, "Smartphones", resp[0].Name)
				assert.Equal(t, "Laptops", resp[1].Name)
			},
		},
		{
			name: "Success with empty list",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Categories: []models.Category{}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 0)
			},
		},
		{
			name: "Repository error",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{ListErr: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "failed to fetch categories", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCategoryHandler(mockRepo)
			req := httptest.NewRequest("GET", "/categories", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetAll(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: POST /categories ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name:        "Success",
			requestBody: `{"name":"Televisions"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.NotNil(t, repo.LastSaved)
				assert.Equal(t, "Televisions", repo.LastSaved.Name)
			},
		},
		{
			name:        "Duplicate name",
			requestBody: `{"name":"Smartphones"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{
					Categories: []models.Category{{ID: 1, Name: "Smartphones"}},
				}
			},
			expectedStatusCode: http.StatusConflict,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "duplicate names must not be saved")
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid json`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "Missing name",
			requestBody: `{}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "Repository error on create",
			requestBody: `{"name":"Audio"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{CreateErr: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCategoryHandler(mockRepo)
			req := httptest.NewRequest("POST", "/categories", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: subcategories ---

func TestHandleGetSubcategories(t *testing.T) {
	mockRepo := &MockCategoryRepo{
		Subcategories: []models.Subcategory{
			{ID: 1, Name: "Android", CategoryID: 1},
			{ID: 2, Name: "iOS", CategoryID: 1},
			{ID: 3, Name: "Gaming", CategoryID: 2},
		},
	}
	handler := NewCategoryHandler(mockRepo)
	req := httptest.NewRequest("GET", "/categories/1/subcategories", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	handler.HandleGetSubcategories(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []SubcategoryResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "Android", resp[0].Name)
}

func TestHandleCreateSubcategory(t *testing.T) {
	mockRepo := &MockCategoryRepo{}
	handler := NewCategoryHandler(mockRepo)
	req := httptest.NewRequest("POST", "/categories/2/subcategories", strings.NewReader(`{"name":"Ultrabooks"}`))
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()

	handler.HandleCreateSubcategory(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, mockRepo.LastSavedSub)
	assert.Equal(t, "Ultrabooks", mockRepo.LastSavedSub.Name)
	assert.Equal(t, uint(2), mockRepo.LastSavedSub.CategoryID)
}
