package merchant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

const testPaymentKey = "6f1d2c3b4a596877665544332211ffee"

func newTestSigner(t *testing.T) *PaymentSigner {
	t.Helper()
	signer, err := NewPaymentSigner(testPaymentKey, "polygon-amoy")
	require.NoError(t, err)
	return signer
}

func TestFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/all", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Catalog{
			Seeds: []model.Product{{Name: "Wheat Seeds", Price: 12.5, Unit: "kg"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, logger.NewNop())
	catalog, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog.Seeds, 1)
	assert.Equal(t, "Wheat Seeds", catalog.Seeds[0].Name)
}

func TestFetchCatalogUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, logger.NewNop())
	_, err := client.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.Equal(t, errorx.KindUpstream, errorx.KindOf(err))
}

func TestPurchasePaymentChallengeFlow(t *testing.T) {
	signer := newTestSigner(t)
	receipt := model.PaymentReceipt{Success: true, Transaction: "0xdeadbeef", Network: "polygon-amoy", Payer: signer.Payer()}
	receiptHeader, _ := json.Marshal(receipt)

	var firstCall, secondCall bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/seeds", r.URL.Path)

		payment := r.Header.Get("X-Payment")
		if payment == "" {
			// 首次请求：回 402 支付挑战
			firstCall = true
			w.WriteHeader(http.StatusPaymentRequired)
			_ = json.NewEncoder(w).Encode(paymentRequiredBody{
				X402Version: 1,
				Accepts: []PaymentRequirements{{
					Scheme:            "exact",
					Network:           "polygon-amoy",
					MaxAmountRequired: "625000",
					PayTo:             "0xmerchant",
					Asset:             "0xusdc",
				}},
			})
			return
		}

		// 重发请求：校验支付授权签名
		secondCall = true
		raw, err := base64.StdEncoding.DecodeString(payment)
		require.NoError(t, err)

		var header paymentHeader
		require.NoError(t, json.Unmarshal(raw, &header))
		assert.Equal(t, 1, header.X402Version)
		assert.Equal(t, "exact", header.Scheme)

		token, err := jwt.Parse(header.Payload.Authorization, func(token *jwt.Token) (interface{}, error) {
			return signer.key, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "0xmerchant", claims["payTo"])
		assert.Equal(t, "625000", claims["amount"])
		assert.Equal(t, signer.Payer(), claims["payer"])
		assert.NotEmpty(t, claims["nonce"])

		w.Header().Set("X-Payment-Response", base64.StdEncoding.EncodeToString(receiptHeader))
		_ = json.NewEncoder(w).Encode(purchaseResponse{
			OrderID:  "m-777",
			Product:  "Wheat Seeds",
			Quantity: 50,
			Price:    625,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, signer, logger.NewNop())
	result, err := client.Purchase(context.Background(), model.CategorySeed, "Wheat Seeds", 50)
	require.NoError(t, err)

	assert.True(t, firstCall)
	assert.True(t, secondCall)
	assert.Equal(t, "m-777", result.OrderID)
	assert.InDelta(t, 625, result.Price, 0.001)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, "0xdeadbeef", result.Receipt.Transaction)
	assert.Equal(t, int64(1), client.PaidCalls())
}

func TestPurchaseWithoutSigner(t *testing.T) {
	client := NewClient("http://localhost:1", time.Second, nil, logger.NewNop())

	_, err := client.Purchase(context.Background(), model.CategorySeed, "Wheat Seeds", 1)
	require.Error(t, err)
	assert.Equal(t, errorx.KindPayment, errorx.KindOf(err))
}

func TestPurchaseUnknownCategory(t *testing.T) {
	// 本地配置错误在触达商家之前就被拦下
	client := NewClient("http://localhost:1", time.Second, newTestSigner(t), logger.NewNop())

	_, err := client.Purchase(context.Background(), model.Category("livestock"), "Cow", 1)
	require.Error(t, err)
	assert.Equal(t, errorx.KindConfig, errorx.KindOf(err))
	assert.Equal(t, int64(0), client.PaidCalls())
}

func TestPurchaseRejectedSettlement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "insufficient funds"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, newTestSigner(t), logger.NewNop())
	_, err := client.Purchase(context.Background(), model.CategoryFertilizer, "Urea", 10)
	require.Error(t, err)
	assert.Equal(t, errorx.KindPayment, errorx.KindOf(err))
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestDecodeReceipt(t *testing.T) {
	payload, _ := json.Marshal(model.PaymentReceipt{Success: true, Transaction: "0x1"})
	receipt, err := DecodeReceipt(base64.StdEncoding.EncodeToString(payload))
	require.NoError(t, err)
	assert.Equal(t, "0x1", receipt.Transaction)

	_, err = DecodeReceipt("")
	assert.Error(t, err)

	_, err = DecodeReceipt("%%%not-base64%%%")
	assert.Error(t, err)
}
