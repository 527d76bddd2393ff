package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"project_billing/internal/adapter/http/handlers/mocks"
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestProjectHandler_GetProject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(h *ProjectHandler) *gin.Engine {
		r := gin.New()
		r.GET("/v1/projects/:project_id", h.GetProject)
		return r
	}

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)
		r := newRouter(h)

		uc.EXPECT().GetByID(gomock.Any(), "proj-1").Return(usecase.ProjectView{}, usecase.ErrProjectNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("dangling order renders a note", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)
		r := newRouter(h)

		uc.EXPECT().GetByID(gomock.Any(), "proj-1").Return(usecase.ProjectView{
			Project:   entities.Project{ID: "proj-1", Status: entities.ProjectStatusNotStarted},
			OrderNote: "parent order not found",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["order_note"] != "parent order not found" {
			t.Fatalf("expected order note, got %v", got)
		}
		if _, ok := got["order"]; ok {
			t.Fatalf("expected no order object, got %v", got)
		}
	})
}

func TestProjectHandler_GetOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIProjectUseCase(ctrl)
	h := NewProjectHandler(uc)

	r := gin.New()
	r.GET("/v1/orders/:order_id", h.GetOrder)

	uc.EXPECT().GetOrder(gomock.Any(), "order-1").Return(entities.Order{ID: "order-1", Total: 45}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/order-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
