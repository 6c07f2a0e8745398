package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quote_rollup/internal/adapter/http/handlers/mocks"
	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestChangeEventHandler_QuoteUpdated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc usecase.IRecomputeUseCase) *gin.Engine {
		r := gin.New()
		r.POST("/v1/events/quote-updated", NewChangeEventHandler(uc).QuoteUpdated)
		return r
	}

	t.Run("missing message name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newRouter(mocks.NewMockIRecomputeUseCase(ctrl))

		if w := doJSON(r, http.MethodPost, "/v1/events/quote-updated", `{"entity_name":"quote"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("guard skip answers 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRecomputeUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, ev entities.ChangeEvent) (usecase.RecomputeResult, error) {
			if ev.CorrelationID != "corr-1" || ev.RecordID != "q-1" {
				t.Fatalf("unexpected event: %+v", ev)
			}
			return usecase.RecomputeResult{Outcome: usecase.OutcomeNoOp, Reason: usecase.SkipReasonGuard, QuoteID: ev.RecordID}, nil
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/events/quote-updated",
			bytes.NewBufferString(`{"message_name":"Update","entity_name":"quote","record_id":"q-1","changed_fields":["name"]}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Correlation-ID", "corr-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid event maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRecomputeUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(usecase.RecomputeResult{Outcome: usecase.OutcomeFailed},
			&usecase.RecomputeError{Kind: usecase.ErrorKindUnexpected, Op: "validate event", Err: usecase.ErrInvalidChangeEvent})

		if w := doJSON(r, http.MethodPost, "/v1/events/quote-updated", `{"message_name":"Update","entity_name":"quote","changed_fields":["statuscode"]}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unexpected failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRecomputeUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(usecase.RecomputeResult{Outcome: usecase.OutcomeFailed},
			&usecase.RecomputeError{Kind: usecase.ErrorKindUnexpected, Op: "aggregate won amounts", QuoteID: "q-1", Err: errors.New("boom")})

		if w := doJSON(r, http.MethodPost, "/v1/events/quote-updated", `{"message_name":"Update","entity_name":"quote","record_id":"q-1","changed_fields":["statuscode"]}`); w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
