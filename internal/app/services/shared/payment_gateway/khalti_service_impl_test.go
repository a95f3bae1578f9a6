package payment_gateway

import (
	"context"
	"io"
	"medibook-service/internal/app/config"
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
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func newTestConfig(baseUrl string) *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			PaymentGatewayRequestTimeoutInSeconds: 2,
			PaymentGatewayRequestsPerSecond:       100,
		},
		Khalti: config.AppKhalti{
			BaseUrl:    baseUrl,
			SecretKey:  "khalti-secret",
			ReturnUrl:  "http://frontend/my-appointments",
			WebsiteUrl: "http://frontend",
		},
		Stripe: config.AppStripe{
			BaseUrl:    baseUrl,
			SecretKey:  "sk_test",
			Currency:   "usd",
			SuccessUrl: "http://frontend/verify",
			CancelUrl:  "http://frontend/my-appointments",
		},
	}
}

func TestKhaltiService_Initiate(t *testing.T) {
	appointment := &models.Appointment{ID: "665f1c2b9a1e4a0012345678", Amount: 50}
	patient := &models.Patient{Name: "Ram", Email: "ram@example.com", Phone: "9800000000"}

	t.Run("sends expected payload and auth header", func(t *testing.T) {
		var captured []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, constvars.KhaltiInitiatePath, r.URL.Path)
			assert.Equal(t, "Key khalti-secret", r.Header.Get(constvars.HeaderAuthorization))
			captured, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"pidx":"pidx-123","payment_url":"https://pay.khalti.com/?pidx=pidx-123"}`))
		}))
		defer server.Close()

		svc := NewKhaltiService(newTestConfig(server.URL), zap.NewNop())
		result, err := svc.Initiate(context.Background(), appointment, patient)

		require.NoError(t, err)
		assert.Equal(t, "pidx-123", result.CorrelationToken)
		assert.Equal(t, "https://pay.khalti.com/?pidx=pidx-123", result.RedirectURL)
		assert.Equal(t, constvars.PaymentProviderKhalti, result.Provider)
		assert.Equal(t, int64(5000), gjson.GetBytes(captured, "amount").Int())
		assert.Equal(t, appointment.ID, gjson.GetBytes(captured, "purchase_order_id").String())
		assert.Equal(t, "Appointment Payment - "+appointment.ID, gjson.GetBytes(captured, "purchase_order_name").String())
		assert.Equal(t, appointment.ID, gjson.GetBytes(captured, "metadata.appointmentId").String())
		assert.Equal(t, "9800000000", gjson.GetBytes(captured, "customer_info.phone").String())
	})

	t.Run("cancelled appointment is rejected before any http call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		svc := NewKhaltiService(newTestConfig(server.URL), zap.NewNop())
		_, err := svc.Initiate(context.Background(), &models.Appointment{ID: "a1", Amount: 50, Cancelled: true}, patient)

		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidAppointment))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("non 2xx is an external provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid token."}`))
		}))
		defer server.Close()

		svc := NewKhaltiService(newTestConfig(server.URL), zap.NewNop())
		_, err := svc.Initiate(context.Background(), appointment, patient)

		assert.True(t, exceptions.IsKind(err, exceptions.KindExternalProvider))
	})

	t.Run("malformed body is an external provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>oops`))
		}))
		defer server.Close()

		svc := NewKhaltiService(newTestConfig(server.URL), zap.NewNop())
		_, err := svc.Initiate(context.Background(), appointment, patient)

		assert.True(t, exceptions.IsKind(err, exceptions.KindExternalProvider))
	})
}

func TestKhaltiService_Verify(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus constvars.PaymentStatus
		expectedID     string
	}{
		{"completed", `{"pidx":"p","status":"Completed","purchase_order_id":"a1"}`, constvars.PaymentStatusCompleted, "a1"},
		{"pending", `{"pidx":"p","status":"Pending"}`, constvars.PaymentStatusPending, ""},
		{"initiated", `{"pidx":"p","status":"Initiated"}`, constvars.PaymentStatusPending, ""},
		{"expired", `{"pidx":"p","status":"Expired"}`, constvars.PaymentStatusFailed, ""},
		{"user canceled", `{"pidx":"p","status":"User canceled"}`, constvars.PaymentStatusFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, constvars.KhaltiLookupPath, r.URL.Path)
				body, _ := io.ReadAll(r.Body)
				assert.Equal(t, "p", gjson.GetBytes(body, "pidx").String())
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewKhaltiService(newTestConfig(server.URL), zap.NewNop())
			result, err := svc.Verify(context.Background(), "p")

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedID, result.ExternalAppointmentID)
		})
	}

	t.Run("slow provider times out", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(3 * time.Second):
			}
		}))
		defer server.Close()

		cfg := newTestConfig(server.URL)
		cfg.App.PaymentGatewayRequestTimeoutInSeconds = 1
		svc := NewKhaltiService(cfg, zap.NewNop())

		start := time.Now()
		_, err := svc.Verify(context.Background(), "p")

		assert.True(t, exceptions.IsKind(err, exceptions.KindExternalProvider))
		assert.Less(t, time.Since(start), 3*time.Second)
	})

	t.Run("missing status field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"pidx":"p"}`))
		}))
		defer server.Close()

		svc := NewKhaltiService(newTestConfig(server.URL), zap.NewNop())
		_, err := svc.Verify(context.Background(), "p")

		assert.True(t, exceptions.IsKind(err, exceptions.KindExternalProvider))
	})
}
