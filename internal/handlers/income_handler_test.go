package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

type mockIncomeEntryService struct {
	createFn  func(userID, sourceID, month string, amount decimal.Decimal, note string) (*models.IncomeEntry, error)
	listFn    func(userID string, month *string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEntry], error)
	getByIDFn func(userID, entryID string) (*models.IncomeEntry, error)
	updateFn  func(userID, entryID string, update services.EntryUpdate) (*models.IncomeEntry, error)
	deleteFn  func(userID, entryID string) error
}

func (m *mockIncomeEntryService) Create(userID, sourceID, month string, amount decimal.Decimal, note string) (*models.IncomeEntry, error) {
	if m.createFn != nil {
		return m.createFn(userID, sourceID, month, amount, note)
	}
	return &models.IncomeEntry{}, nil
}

func (m *mockIncomeEntryService) List(userID string, month *string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEntry], error) {
	if m.listFn != nil {
		return m.listFn(userID, month, page)
	}
	return &pagination.PageResponse[models.IncomeEntry]{Data: []models.IncomeEntry{}}, nil
}

func (m *mockIncomeEntryService) GetByID(userID, entryID string) (*models.IncomeEntry, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(userID, entryID)
	}
	return &models.IncomeEntry{}, nil
}

func (m *mockIncomeEntryService) Update(userID, entryID string, update services.EntryUpdate) (*models.IncomeEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, entryID, update)
	}
	return &models.IncomeEntry{}, nil
}

func (m *mockIncomeEntryService) Delete(userID, entryID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, entryID)
	}
	return nil
}

func setupIncomeRouter(handler *IncomeHandler) *gin.Engine {
	r := gin.New()
	r.Use(injectUserID("user-1"))
	r.POST("/income", handler.CreateEntry)
	r.GET("/income", handler.ListEntries)
	r.GET("/income/:id", handler.GetEntry)
	r.PUT("/income/:id", handler.UpdateEntry)
	r.DELETE("/income/:id", handler.DeleteEntry)
	return r
}

const testSourceID = "5f7c1f9e-98f1-4c08-a4d5-3a1f2e6b7c8d"

func TestIncomeHandler_CreateEntry(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockIncomeEntryService{
			createFn: func(userID, sourceID, month string, amount decimal.Decimal, note string) (*models.IncomeEntry, error) {
				return &models.IncomeEntry{
					Base:     models.Base{ID: "entry-1"},
					UserID:   userID,
					SourceID: sourceID,
					Month:    month,
					Amount:   amount,
				}, nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "POST", "/income",
			`{"source_id":"`+testSourceID+`","month":"2025-06","amount":"50000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["month"] != "2025-06" {
			t.Errorf("expected month 2025-06, got %v", result["month"])
		}
	})

	t.Run("returns 400 on malformed month token", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockIncomeEntryService{}))

		rec := doRequest(r, "POST", "/income",
			`{"source_id":"`+testSourceID+`","month":"2025-6","amount":"50000"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on non-uuid source", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockIncomeEntryService{}))

		rec := doRequest(r, "POST", "/income",
			`{"source_id":"not-a-uuid","month":"2025-06","amount":"50000"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when source belongs to another user", func(t *testing.T) {
		svc := &mockIncomeEntryService{
			createFn: func(_, _, _ string, _ decimal.Decimal, _ string) (*models.IncomeEntry, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "POST", "/income",
			`{"source_id":"`+testSourceID+`","month":"2025-06","amount":"50000"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		svc := &mockIncomeEntryService{
			createFn: func(_, _, _ string, _ decimal.Decimal, _ string) (*models.IncomeEntry, error) {
				return nil, apperrors.ErrInvalidAmount
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "POST", "/income",
			`{"source_id":"`+testSourceID+`","month":"2025-06","amount":"-10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_AMOUNT")
	})
}

func TestIncomeHandler_ListEntries(t *testing.T) {
	t.Run("passes month filter and pagination through", func(t *testing.T) {
		var gotMonth *string
		var gotPage pagination.PageRequest
		svc := &mockIncomeEntryService{
			listFn: func(userID string, month *string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEntry], error) {
				gotMonth = month
				gotPage = page
				return &pagination.PageResponse[models.IncomeEntry]{
					Data:       []models.IncomeEntry{{Month: "2025-06"}},
					Page:       2,
					PageSize:   10,
					TotalItems: 11,
					TotalPages: 2,
				}, nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "GET", "/income?month=2025-06&page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth == nil || *gotMonth != "2025-06" {
			t.Errorf("expected month filter 2025-06, got %v", gotMonth)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 10 {
			t.Errorf("unexpected pagination: %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(11) {
			t.Errorf("expected total_items 11, got %v", result["total_items"])
		}
	})

	t.Run("returns 400 on malformed month filter", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockIncomeEntryService{}))

		rec := doRequest(r, "GET", "/income?month=June", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestIncomeHandler_GetEntry(t *testing.T) {
	t.Run("returns the entry", func(t *testing.T) {
		var gotUser, gotEntry string
		svc := &mockIncomeEntryService{
			getByIDFn: func(userID, entryID string) (*models.IncomeEntry, error) {
				gotUser, gotEntry = userID, entryID
				return &models.IncomeEntry{
					Base:  models.Base{ID: entryID},
					Month: "2025-06",
				}, nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "GET", "/income/entry-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUser != "user-1" || gotEntry != "entry-1" {
			t.Errorf("expected lookup for user-1/entry-1, got %s/%s", gotUser, gotEntry)
		}
		if parseJSON(t, rec)["month"] != "2025-06" {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("returns 404 for another user's entry", func(t *testing.T) {
		svc := &mockIncomeEntryService{
			getByIDFn: func(_, _ string) (*models.IncomeEntry, error) {
				return nil, apperrors.ErrEntryNotFound
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "GET", "/income/entry-9", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ENTRY_NOT_FOUND")
	})
}

func TestIncomeHandler_UpdateEntry(t *testing.T) {
	t.Run("maps partial fields into the update", func(t *testing.T) {
		var gotUpdate services.EntryUpdate
		svc := &mockIncomeEntryService{
			updateFn: func(userID, entryID string, update services.EntryUpdate) (*models.IncomeEntry, error) {
				gotUpdate = update
				return &models.IncomeEntry{Base: models.Base{ID: entryID}}, nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "PUT", "/income/entry-1", `{"amount":"60000"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUpdate.Amount == nil || !gotUpdate.Amount.Equal(decimal.RequireFromString("60000")) {
			t.Errorf("expected amount 60000, got %v", gotUpdate.Amount)
		}
		if gotUpdate.CategoryID != nil || gotUpdate.Month != nil || gotUpdate.Note != nil {
			t.Errorf("expected untouched fields to stay nil: %+v", gotUpdate)
		}
	})

	t.Run("returns 404 for another user's entry", func(t *testing.T) {
		svc := &mockIncomeEntryService{
			updateFn: func(_, _ string, _ services.EntryUpdate) (*models.IncomeEntry, error) {
				return nil, apperrors.ErrEntryNotFound
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "PUT", "/income/entry-9", `{"amount":"60000"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ENTRY_NOT_FOUND")
	})
}

func TestIncomeHandler_DeleteEntry(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deletedID string
		svc := &mockIncomeEntryService{
			deleteFn: func(userID, entryID string) error {
				deletedID = entryID
				return nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "DELETE", "/income/entry-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if deletedID != "entry-1" {
			t.Errorf("expected delete for entry-1, got %s", deletedID)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockIncomeEntryService{
			deleteFn: func(_, _ string) error {
				return apperrors.ErrEntryNotFound
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc))

		rec := doRequest(r, "DELETE", "/income/entry-9", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
