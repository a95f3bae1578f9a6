package payment_gateway

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStripeService_Initiate(t *testing.T) {
	appointment := &models.Appointment{ID: "665f1c2b9a1e4a0012345678", Amount: 40}

	t.Run("creates a checkout session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, constvars.StripeCheckoutSessionsPath, r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get(constvars.HeaderAuthorization))
			assert.Equal(t, constvars.MIMEApplicationForm, r.Header.Get(constvars.HeaderContentType))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "payment", r.PostForm.Get("mode"))
			assert.Equal(t, "4000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
			assert.Equal(t, appointment.ID, r.PostForm.Get("metadata[appointmentId]"))
			assert.Equal(t, appointment.ID, r.PostForm.Get("client_reference_id"))
			assert.Equal(t, "p@example.com", r.PostForm.Get("customer_email"))
			w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
		}))
		defer server.Close()

		svc := NewStripeService(newTestConfig(server.URL), zap.NewNop())
		result, err := svc.Initiate(context.Background(), appointment, &models.Patient{Email: "p@example.com"})

		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", result.CorrelationToken)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", result.RedirectURL)
	})

	t.Run("cancelled appointment is rejected before any http call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		svc := NewStripeService(newTestConfig(server.URL), zap.NewNop())
		_, err := svc.Initiate(context.Background(), &models.Appointment{ID: "a1", Amount: 40, Cancelled: true}, nil)

		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidAppointment))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})
}

func TestStripeService_Verify(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus constvars.PaymentStatus
	}{
		{"paid", `{"id":"cs_1","status":"complete","payment_status":"paid","metadata":{"appointmentId":"a1"}}`, constvars.PaymentStatusCompleted},
		{"no payment required", `{"id":"cs_1","status":"complete","payment_status":"no_payment_required","metadata":{"appointmentId":"a1"}}`, constvars.PaymentStatusCompleted},
		{"open", `{"id":"cs_1","status":"open","payment_status":"unpaid","metadata":{"appointmentId":"a1"}}`, constvars.PaymentStatusPending},
		{"expired", `{"id":"cs_1","status":"expired","payment_status":"unpaid","metadata":{"appointmentId":"a1"}}`, constvars.PaymentStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, constvars.StripeCheckoutSessionsPath+"/cs_1", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewStripeService(newTestConfig(server.URL), zap.NewNop())
			result, err := svc.Verify(context.Background(), "cs_1")

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, "a1", result.ExternalAppointmentID)
		})
	}

	t.Run("provider outage", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"type":"api_error","message":"try again later"}}`))
		}))
		defer server.Close()

		svc := NewStripeService(newTestConfig(server.URL), zap.NewNop())
		_, err := svc.Verify(context.Background(), "cs_1")

		assert.True(t, exceptions.IsKind(err, exceptions.KindExternalProvider))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "failed calls are not retried")
	})

	t.Run("caller deadline bounds the call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		svc := NewStripeService(newTestConfig(server.URL), zap.NewNop())
		started := time.Now()
		_, err := svc.Verify(ctx, "cs_1")

		assert.True(t, exceptions.IsKind(err, exceptions.KindExternalProvider))
		assert.Less(t, time.Since(started), 900*time.Millisecond)
	})
}

func TestRegistry_Get(t *testing.T) {
	cfg := newTestConfig("http://localhost")
	registry := NewRegistry(NewKhaltiService(cfg, zap.NewNop()), NewStripeService(cfg, zap.NewNop()))

	provider, err := registry.Get(constvars.PaymentProviderStripe)
	require.NoError(t, err)
	assert.Equal(t, constvars.PaymentProviderStripe, provider.Name())

	_, err = registry.Get("paypal")
	assert.Error(t, err)
}
