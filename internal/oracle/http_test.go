package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/inversi/internal/entity"
)

func newTestRequest() Request {
	return NewRequest(entity.NewBoard(), entity.PlayerWhite, []entity.Move{{Row: 2, Col: 3}, {Row: 3, Col: 2}})
}

func TestHTTPOracle_Decide(t *testing.T) {
	t.Run("Reads the move from a JSON answer", func(t *testing.T) {
		// Given: an oracle service answering with JSON
		var received httpRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"move": " C4 "}`))
		}))
		defer srv.Close()

		client := NewHTTPOracle(srv.URL, time.Second)

		// When: asking for a decision
		answer, err := client.Decide(context.Background(), newTestRequest())

		// Then: the move is returned and the request carried the position
		require.NoError(t, err)
		assert.Equal(t, "C4", answer)
		assert.Equal(t, "D3, C4", received.LegalMoves)
		assert.Equal(t, "white", received.Player)
		assert.Equal(t, entity.Counts{Black: 2, White: 2}, received.Counts)
		assert.Contains(t, received.Prompt, "Legal moves: D3, C4")
	})

	t.Run("Falls back to the raw body for text answers", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("I pick D3.\n"))
		}))
		defer srv.Close()

		answer, err := NewHTTPOracle(srv.URL, time.Second).Decide(context.Background(), newTestRequest())

		require.NoError(t, err)
		assert.Equal(t, "I pick D3.", answer)
	})

	t.Run("Error on non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHTTPOracle(srv.URL, time.Second).Decide(context.Background(), newTestRequest())

		require.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("Error on empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		_, err := NewHTTPOracle(srv.URL, time.Second).Decide(context.Background(), newTestRequest())

		require.ErrorIs(t, err, ErrEmptyAnswer)
	})

	t.Run("Error when the context is canceled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("A1"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewHTTPOracle(srv.URL, time.Second).Decide(ctx, newTestRequest())

		require.ErrorIs(t, err, context.Canceled)
	})
}
