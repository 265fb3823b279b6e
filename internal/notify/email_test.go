package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulcecodigo/storefront/internal/domain/order"
)

func emailOrder() *order.Order {
	return &order.Order{
		ID:            7,
		CustomerName:  "Ana Martinez",
		CustomerEmail: "ana@example.com",
		Total:         decimal.RequireFromString("12.00"),
		Status:        order.StatusConfirmed,
	}
}

func TestEmailDispatcherSends(t *testing.T) {
	var got sendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewEmailDispatcher(EmailConfig{
		BaseURL: srv.URL,
		APIKey:  "secret",
		From:    "pedidos@dulcecodigo.com",
		Timeout: 5 * time.Second,
	})

	require.NoError(t, d.OrderCreated(context.Background(), emailOrder()))
	assert.Equal(t, "pedidos@dulcecodigo.com", got.From)
	assert.Equal(t, "ana@example.com", got.To)
	assert.Contains(t, got.Subject, "Pedido #7")
	assert.Contains(t, got.Text, "Hola Ana Martinez")
}

func TestEmailDispatcherRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewEmailDispatcher(EmailConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	require.NoError(t, d.StatusChanged(context.Background(), emailOrder()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestEmailDispatcherProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	d := NewEmailDispatcher(EmailConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	err := d.OrderCreated(context.Background(), emailOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
