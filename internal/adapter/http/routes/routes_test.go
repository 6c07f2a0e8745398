package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"quote_rollup/internal/app"
	"quote_rollup/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("OTEL_ENABLED", "")

	ctx := t.Context()
	c, err := app.Build(ctx, app.Config{StoreDriver: app.StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "api.db"), DefaultCurrency: "USD"}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close(ctx) })
	require.NoError(t, c.Migrate(ctx))
	return NewRouter(c)
}

func call(t *testing.T, r http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)
	code, body := call(t, r, http.MethodGet, "/v1/ping", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body["message"])
}

func TestWonQuoteRollupOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	code, opp := call(t, r, http.MethodPost, "/v1/opportunities", map[string]any{"name": "Fleet", "currency": "USD"})
	require.Equal(t, http.StatusCreated, code)
	oppID := opp["id"].(string)

	ids := make([]string, 0, 3)
	for _, amount := range []string{"100", "200", "50"} {
		code, q := call(t, r, http.MethodPost, "/v1/quotes", map[string]any{
			"name":           "Q" + amount,
			"opportunity_id": oppID,
			"amount":         map[string]any{"value": amount, "currency": "USD"},
		})
		require.Equal(t, http.StatusCreated, code)
		ids = append(ids, q["id"].(string))
	}

	for _, id := range ids {
		code, _ := call(t, r, http.MethodPatch, "/v1/quotes/"+id+"/win", nil)
		require.Equal(t, http.StatusOK, code)
	}

	_, got := call(t, r, http.MethodGet, "/v1/opportunities/"+oppID, nil)
	assert.Equal(t, "350.00", got["total_won_amount"].(map[string]any)["value"])

	code, change := call(t, r, http.MethodPatch, "/v1/quotes/"+ids[2]+"/status", map[string]any{"status_code": 1})
	require.Equal(t, http.StatusOK, code)
	rollup := change["rollup"].(map[string]any)
	assert.Equal(t, "recomputed", rollup["outcome"])
	assert.Equal(t, "300.00", rollup["total_won_amount"].(map[string]any)["value"])

	code, result := call(t, r, http.MethodPost, "/v1/events/quote-updated", map[string]any{
		"message_name":   "Update",
		"entity_name":    "quote",
		"record_id":      ids[0],
		"changed_fields": []string{"name"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "guard_skip", result["reason"])
}

func TestOpportunityCurrencyIsKept(t *testing.T) {
	r := newTestRouter(t)

	code, opp := call(t, r, http.MethodPost, "/v1/opportunities", map[string]any{"name": "Euro fleet", "currency": "EUR"})
	require.Equal(t, http.StatusCreated, code)
	oppID := opp["id"].(string)

	newQuote := func(value, currency string) (int, string) {
		code, q := call(t, r, http.MethodPost, "/v1/quotes", map[string]any{
			"name":           "Q" + value,
			"opportunity_id": oppID,
			"amount":         map[string]any{"value": value, "currency": currency},
		})
		id, _ := q["id"].(string)
		return code, id
	}

	code, first := newQuote("10", "EUR")
	require.Equal(t, http.StatusCreated, code)
	code, second := newQuote("20", "EUR")
	require.Equal(t, http.StatusCreated, code)

	code, _ = call(t, r, http.MethodPatch, "/v1/quotes/"+first+"/win", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodPatch, "/v1/quotes/"+first+"/lose", nil)
	require.Equal(t, http.StatusOK, code)

	_, got := call(t, r, http.MethodGet, "/v1/opportunities/"+oppID, nil)
	total := got["total_won_amount"].(map[string]any)
	assert.Equal(t, "0.00", total["value"])
	assert.Equal(t, "EUR", total["currency"])

	t.Run("quote in another currency is rejected", func(t *testing.T) {
		code, _ := newQuote("5", "USD")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
	})

	t.Run("amount change to another currency is rejected", func(t *testing.T) {
		code, body := call(t, r, http.MethodPatch, "/v1/quotes/"+second+"/amount", map[string]any{
			"amount": map[string]any{"value": "7", "currency": "USD"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "CURRENCY_MISMATCH", body["code"])

		code, change := call(t, r, http.MethodPatch, "/v1/quotes/"+second+"/win", nil)
		require.Equal(t, http.StatusOK, code)
		rollup := change["rollup"].(map[string]any)["total_won_amount"].(map[string]any)
		assert.Equal(t, "20.00", rollup["value"])
		assert.Equal(t, "EUR", rollup["currency"])
	})

	t.Run("amount body without the amount key is rejected", func(t *testing.T) {
		code, _ := call(t, r, http.MethodPatch, "/v1/quotes/"+second+"/amount", map[string]any{"value": "7"})
		assert.Equal(t, http.StatusBadRequest, code)

		_, q := call(t, r, http.MethodGet, "/v1/quotes/"+second, nil)
		assert.Equal(t, "20.00", q["amount"].(map[string]any)["value"])
	})
}
