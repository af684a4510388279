package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rporder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/services/svorder"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/ginx"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
	"github.com/egnd-2025/krishi-backend/internal/app/server/handlers/agentic"
	"github.com/egnd-2025/krishi-backend/internal/app/server/handlers/order"
)

// memOrderRepo 内存订单仓储
type memOrderRepo struct {
	orders map[string]*etorder.Order
}

func (m *memOrderRepo) Create(ctx context.Context, o *etorder.Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *memOrderRepo) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	return m.orders[orderID], nil
}

func (m *memOrderRepo) ListByUser(ctx context.Context, filter rporder.ListFilter) ([]*etorder.Order, error) {
	result := make([]*etorder.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if o.UserID == filter.UserID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *memOrderRepo) UpdateStatus(ctx context.Context, orderID string, status etorder.OrderStatus) error {
	m.orders[orderID].Status = status
	return nil
}

func (m *memOrderRepo) AddItem(ctx context.Context, orderID string, item *etorder.OrderItem) error {
	o := m.orders[orderID]
	item.TotalPrice = float64(item.Quantity) * item.UnitPrice
	o.Items = append(o.Items, item)
	o.TotalAmount += item.TotalPrice
	return nil
}

func newTestEngine() (*gin.Engine, *memOrderRepo) {
	gin.SetMode(gin.TestMode)
	repo := &memOrderRepo{orders: make(map[string]*etorder.Order)}
	log := logger.NewNop()

	manager := mdorder.NewOrderManager(repo, log)
	orderHandler := order.NewOrderHandler(svorder.NewOrderService(manager))

	// 流水线路由不在本测试范围内，处理器只挂载不触达
	return SetupRoutes(agentic.NewAgenticHandler(nil), orderHandler, log), repo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createPayload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":  1,
		"currency": "USD",
		"items": []map[string]interface{}{
			{"product_name": "Wheat Seeds", "quantity": 10, "unit_price": 2.5},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestEngine()
	w := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndGetOrder(t *testing.T) {
	engine, _ := newTestEngine()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createPayload())
	require.Equal(t, http.StatusOK, w.Code)

	var resp ginx.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	orderID := data["id"].(string)
	assert.Equal(t, "pending", data["status"])
	assert.InDelta(t, 25, data["total_amount"].(float64), 0.001)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/orders/"+orderID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	engine, _ := newTestEngine()

	// 缺 items：请求体校验失败
	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", map[string]interface{}{"user_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMissingOrderIs404(t *testing.T) {
	engine, _ := newTestEngine()

	w := doJSON(t, engine, http.MethodGet, "/api/v1/orders/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusAndCancel(t *testing.T) {
	engine, repo := newTestEngine()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createPayload())
	require.Equal(t, http.StatusOK, w.Code)
	var resp ginx.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orderID := resp.Data.(map[string]interface{})["id"].(string)

	// 非法状态值被请求校验拦下
	w = doJSON(t, engine, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", map[string]string{"status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 取消是一次状态迁移
	w = doJSON(t, engine, http.MethodDelete, "/api/v1/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, etorder.OrderStatusCancelled, repo.orders[orderID].Status)

	// 已取消后再改状态被状态机拒绝
	w = doJSON(t, engine, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", map[string]string{"status": "paid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemEndpoint(t *testing.T) {
	engine, _ := newTestEngine()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createPayload())
	require.Equal(t, http.StatusOK, w.Code)
	var resp ginx.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orderID := resp.Data.(map[string]interface{})["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/orders/"+orderID+"/items", map[string]interface{}{
		"item": map[string]interface{}{"product_name": "Urea", "quantity": 4, "unit_price": 6},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated ginx.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	data := updated.Data.(map[string]interface{})
	assert.InDelta(t, 49, data["total_amount"].(float64), 0.001)
	assert.Len(t, data["items"].([]interface{}), 2)
}
