package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenning/cardbox-api/internal/api/shared"
	"github.com/mbenning/cardbox-api/internal/domain"
	"github.com/mbenning/cardbox-api/internal/generation"
)

// stubGenerator returns canned cards or a canned error.
type stubGenerator struct {
	cards []domain.Card
	err   error

	lastText   string
	lastUserID string
}

var _ generation.Generator = (*stubGenerator)(nil)

func (g *stubGenerator) GenerateCards(ctx context.Context, text, userID string) ([]domain.Card, error) {
	g.lastText = text
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return g.cards, nil
}

func generateRequest(t *testing.T, userID string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/generate", &buf)
	if userID != "" {
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
	}
	return req
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("returns generated cards", func(t *testing.T) {
		t.Parallel()

		gen := &stubGenerator{cards: []domain.Card{
			{Front: "Q1", Back: "A1"},
			{Front: "Q2", Back: "A2"},
		}}
		handler := NewGenerateHandler(gen)

		rec := httptest.NewRecorder()
		handler.Generate(rec, generateRequest(t, "user-1", GenerateRequest{Text: "mitosis notes"}))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Cards, 2)
		assert.Equal(t, "Q1", resp.Cards[0].Front)

		assert.Equal(t, "mitosis notes", gen.lastText)
		assert.Equal(t, "user-1", gen.lastUserID)
	})

	t.Run("generation failure returns 502", func(t *testing.T) {
		t.Parallel()

		gen := &stubGenerator{err: generation.ErrGenerationFailed}
		handler := NewGenerateHandler(gen)

		rec := httptest.NewRecorder()
		handler.Generate(rec, generateRequest(t, "user-1", GenerateRequest{Text: "notes"}))

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "No cards produced", resp.Error)
	})

	t.Run("empty text returns 400", func(t *testing.T) {
		t.Parallel()

		handler := NewGenerateHandler(&stubGenerator{})

		rec := httptest.NewRecorder()
		handler.Generate(rec, generateRequest(t, "user-1", GenerateRequest{Text: ""}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()

		handler := NewGenerateHandler(&stubGenerator{})

		req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString("{"))
		req = req.WithContext(shared.WithUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()
		handler.Generate(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated returns 401", func(t *testing.T) {
		t.Parallel()

		handler := NewGenerateHandler(&stubGenerator{})

		rec := httptest.NewRecorder()
		handler.Generate(rec, generateRequest(t, "", GenerateRequest{Text: "notes"}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
