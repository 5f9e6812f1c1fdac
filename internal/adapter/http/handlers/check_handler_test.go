package handlers

import (
	"net/http"
	"testing"

	"cartonera/internal/adapter/http/handlers/mocks"
	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase"

	"go.uber.org/mock/gomock"
)

func newCheckRouter(t *testing.T) (*mocks.MockICheckUseCase, *CheckHandler) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICheckUseCase(ctrl)
	return uc, NewCheckHandler(uc)
}

func TestCheckHandler_List(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		uc, h := newCheckRouter(t)
		r := newRouter()
		r.GET("/v1/checks", h.List)

		uc.EXPECT().List(gomock.Any(), entities.CheckStatusInPortfolio).Return([]entities.Check{{ID: "chk-1", Status: entities.CheckStatusInPortfolio}}, nil)

		w := serve(r, http.MethodGet, "/v1/checks?status=in_portfolio", "")
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("unknown status", func(t *testing.T) {
		uc, h := newCheckRouter(t)
		r := newRouter()
		r.GET("/v1/checks", h.List)

		uc.EXPECT().List(gomock.Any(), entities.CheckStatus("lost")).Return(nil, entities.NewDomainError(entities.KindInvalidInput, "unknown check status"))

		w := serve(r, http.MethodGet, "/v1/checks?status=lost", "")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("empty portfolio is an empty list", func(t *testing.T) {
		uc, h := newCheckRouter(t)
		r := newRouter()
		r.GET("/v1/checks", h.List)

		uc.EXPECT().List(gomock.Any(), entities.CheckStatus("")).Return(nil, nil)

		w := serve(r, http.MethodGet, "/v1/checks", "")
		expectStatus(t, w, http.StatusOK)
		if w.Body.String() != "[]" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestCheckHandler_Move(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		_, h := newCheckRouter(t)
		r := newRouter()
		r.PATCH("/v1/checks/:id/:action", h.Move)

		w := serve(r, http.MethodPatch, "/v1/checks/chk-1/burn", "")
		expectStatus(t, w, http.StatusNotFound)
	})

	t.Run("endorse", func(t *testing.T) {
		uc, h := newCheckRouter(t)
		r := newRouter()
		r.PATCH("/v1/checks/:id/:action", h.Move)

		uc.EXPECT().Move(gomock.Any(), "chk-1", entities.CheckStatusEndorsed, "Papelera Norte", "proveedor").
			Return(entities.Check{ID: "chk-1", Status: entities.CheckStatusEndorsed, EndorsedTo: "Papelera Norte"}, nil)

		w := serve(r, http.MethodPatch, "/v1/checks/chk-1/endorse", `{"endorsed_to":"Papelera Norte","notes":"proveedor"}`)
		expectStatus(t, w, http.StatusOK)
		if body := decodeBody(t, w); body["endorsed_to"] != "Papelera Norte" || body["status"] != "endorsed" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("already resolved", func(t *testing.T) {
		uc, h := newCheckRouter(t)
		r := newRouter()
		r.PATCH("/v1/checks/:id/:action", h.Move)

		_, transitionErr := entities.CheckStateMachine.Transition(entities.CheckStatusCashed, entities.CheckStatusDeposited)
		uc.EXPECT().Move(gomock.Any(), "chk-1", entities.CheckStatusDeposited, "", "").Return(entities.Check{}, transitionErr)

		w := serve(r, http.MethodPatch, "/v1/checks/chk-1/deposit", "")
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("not found", func(t *testing.T) {
		uc, h := newCheckRouter(t)
		r := newRouter()
		r.PATCH("/v1/checks/:id/:action", h.Move)

		uc.EXPECT().Move(gomock.Any(), "chk-404", entities.CheckStatusCashed, "", "").Return(entities.Check{}, usecase.ErrCheckNotFound)

		w := serve(r, http.MethodPatch, "/v1/checks/chk-404/cash", "")
		expectStatus(t, w, http.StatusNotFound)
	})
}
