package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/service"
	"github.com/ovofarm/backoffice/internal/storage/sqlite"
	"github.com/ovofarm/backoffice/internal/validation"
)

// setupTestRouter builds a router with the full route surface over a
// temp SQLite database. Auth middleware is left out: these tests cover
// binding, status mapping and the JSON shapes.
func setupTestRouter(t *testing.T) (*gin.Engine, *sqlite.SQLiteStore) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "backoffice-handlers-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	v := validation.New()

	orderSvc := service.NewOrderService(store)
	billingSvc := service.NewBillingService(store)
	paymentSvc := service.NewPaymentService(store)
	statsSvc := service.NewStatsService(store)

	RegisterOrderRoutes(router, orderSvc, v)
	RegisterBillRoutes(router, billingSvc, v)
	RegisterPaymentRoutes(router, paymentSvc, v)
	RegisterReportRoutes(router, ReportServices{
		Orders:   orderSvc,
		Billing:  billingSvc,
		Payments: paymentSvc,
		Stats:    statsSvc,
	})

	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func orderPayload(userID string, total float64, date time.Time) map[string]interface{} {
	return map[string]interface{}{
		"user_id": userID,
		"lines": []map[string]interface{}{
			{"product_type": "chicken", "product_color": "white", "quantity": 1, "unit_price": total, "subtotal": total},
		},
		"total_price": total,
		"order_date":  date.Format(time.RFC3339),
		"state":       "PENDING",
	}
}

func TestOrderRoutes(t *testing.T) {
	router, store := setupTestRouter(t)
	user := models.NewUser("h@example.com", "Handler", "x", models.RoleCustomer)
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	past := time.Now().Add(-time.Hour)

	var orderID string

	t.Run("create returns 201", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/orders", orderPayload(user.ID, 9.5, past))
		if w.Code != http.StatusCreated {
			t.Fatalf("Status = %d, body %s", w.Code, w.Body.String())
		}

		var order models.Order
		if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if order.ID == "" {
			t.Error("Expected order ID in response")
		}
		orderID = order.ID
	})

	t.Run("get returns 200", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/orders/"+orderID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/orders/missing", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", w.Code)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})

	t.Run("total mismatch returns 400 from the validator", func(t *testing.T) {
		payload := orderPayload(user.ID, 9.5, past)
		payload["total_price"] = 11.0
		w := doJSON(t, router, http.MethodPost, "/orders", payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown user returns 400 naming the field", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/orders", orderPayload("ghost", 9.5, past))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Status = %d, want 400", w.Code)
		}

		var resp struct {
			Error string `json:"error"`
			Field string `json:"field"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != "invalid_data" || resp.Field != "user" {
			t.Errorf("Got error=%q field=%q", resp.Error, resp.Field)
		}
	})

	t.Run("delete returns 204 then 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/orders/"+orderID, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("Status = %d, want 204", w.Code)
		}
		w = doJSON(t, router, http.MethodDelete, "/orders/"+orderID, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", w.Code)
		}
	})
}

func TestReportRoutes(t *testing.T) {
	router, store := setupTestRouter(t)
	ctx := context.Background()

	user := models.NewUser("r@example.com", "Reporter", "x", models.RoleCustomer)
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	past := time.Now().Add(-time.Hour)

	w := doJSON(t, router, http.MethodPost, "/orders", orderPayload(user.ID, 14.0, past))
	if w.Code != http.StatusCreated {
		t.Fatalf("Seed order failed: %d %s", w.Code, w.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("Failed to decode order: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/bills", map[string]interface{}{
		"order_id":    order.ID,
		"issue_date":  past.Format(time.RFC3339),
		"total_price": 14.0,
		"paid":        true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Seed bill failed: %d %s", w.Code, w.Body.String())
	}

	for _, path := range []string{
		"/reports/orders/month",
		"/reports/orders/month/count",
		fmt.Sprintf("/reports/orders/count/%s", user.ID),
		fmt.Sprintf("/reports/bills/customer/%s", user.ID),
		"/reports/bills/customers",
		"/reports/bills/company",
		"/reports/bills/month/count",
		"/reports/sales/month",
		"/reports/sales/best-customer",
		"/reports/income",
		"/reports/income/month",
		"/reports/general",
	} {
		t.Run(path, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, path, nil)
			if w.Code != http.StatusOK {
				t.Errorf("GET %s = %d, body %s", path, w.Code, w.Body.String())
			}
		})
	}

	t.Run("general snapshot has customer data", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/reports/general", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d", w.Code)
		}

		var snap struct {
			TotalOrders  int    `json:"total_orders"`
			BestCustomer string `json:"best_customer"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("Failed to decode snapshot: %v", err)
		}
		if snap.TotalOrders != 1 || snap.BestCustomer != "Reporter" {
			t.Errorf("Snapshot = %+v", snap)
		}
	})
}
