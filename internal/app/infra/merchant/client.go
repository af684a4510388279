package merchant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/atomic"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// 类目与商家下单端点的映射
var orderEndpoints = map[model.Category]string{
	model.CategorySeed:       "/order/seeds",
	model.CategoryFertilizer: "/order/fertilizers",
	model.CategoryTool:       "/order/tools",
	model.CategoryPesticide:  "/order/pesticides",
}

// Client 商家接口客户端
// 目录读取无副作用；下单为按次计费调用，402 挑战在客户端内部透明处理
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *PaymentSigner
	log        logger.Logger

	paidCalls atomic.Int64 // 已发起的付费调用计数
}

// NewClient 创建商家客户端
// signer 为 nil 表示未配置支付凭证，目录读取可用，下单不可用
func NewClient(baseURL string, timeout time.Duration, signer *PaymentSigner, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		signer:     signer,
		log:        log,
	}
}

// CanPay 是否具备下单能力（签名凭证已配置）
func (c *Client) CanPay() bool {
	return c.signer != nil
}

// PaidCalls 返回已发起的付费调用次数
func (c *Client) PaidCalls() int64 {
	return c.paidCalls.Load()
}

// FetchCatalog 拉取商品目录
// 商家不可达对整次流水线运行是致命的，错误必须上抛
func (c *Client) FetchCatalog(ctx context.Context) (*model.Catalog, error) {
	endpoint := c.baseURL + "/products/all"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errorx.Upstream("merchant catalog is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorx.Upstream(fmt.Sprintf("merchant catalog returned status %d", resp.StatusCode), nil)
	}

	var catalog model.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, errorx.Upstream("decode merchant catalog failed", err)
	}

	return &catalog, nil
}

// PurchaseResult 下单成功的结果
type PurchaseResult struct {
	OrderID  string
	Product  string
	Quantity int
	Price    float64
	Receipt  *model.PaymentReceipt
}

// purchaseRequest 下单请求体
type purchaseRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// purchaseResponse 下单响应体
type purchaseResponse struct {
	OrderID  string  `json:"orderId"`
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Purchase 执行付费下单调用
// 流程：首次请求 → 拦截 402 支付挑战 → 用凭证签名授权 → 带支付重发一次
// 调用方只看到最终结算结果和支付回执
func (c *Client) Purchase(ctx context.Context, category model.Category, productName string, quantity int) (*PurchaseResult, error) {
	endpoint, ok := orderEndpoints[category]
	if !ok {
		// 本地配置错误，不触达商家
		return nil, errorx.New(errorx.KindConfig, fmt.Sprintf("unknown product category: %s", category))
	}

	if c.signer == nil {
		return nil, errorx.Payment("payment credential is not configured", nil)
	}

	body, err := json.Marshal(purchaseRequest{Product: productName, Quantity: quantity})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + endpoint
	c.paidCalls.Inc()

	// 首次请求（预期收到 402 支付挑战）
	resp, err := c.post(ctx, url, body, "")
	if err != nil {
		return nil, errorx.Payment("purchase call failed", err)
	}

	if resp.StatusCode == http.StatusPaymentRequired {
		requirements, err := decodeRequirements(resp)
		if err != nil {
			return nil, errorx.Payment("decode payment requirements failed", err)
		}

		payment, err := c.signer.Sign(requirements)
		if err != nil {
			return nil, errorx.Payment("sign payment failed", err)
		}

		c.log.Debugf(ctx, "payment challenge accepted: payTo=%s amount=%s", requirements.PayTo, requirements.MaxAmountRequired)

		// 带支付授权重发
		resp, err = c.post(ctx, url, body, payment)
		if err != nil {
			return nil, errorx.Payment("settled purchase call failed", err)
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errorx.Payment(fmt.Sprintf("purchase rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))), nil)
	}

	var settled purchaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&settled); err != nil {
		return nil, errorx.Payment("decode purchase response failed", err)
	}

	result := &PurchaseResult{
		OrderID:  settled.OrderID,
		Product:  settled.Product,
		Quantity: settled.Quantity,
		Price:    settled.Price,
	}

	// 支付回执从响应头恢复；缺失只降级记录，不影响下单结果
	if receipt, err := DecodeReceipt(resp.Header.Get("X-Payment-Response")); err == nil {
		result.Receipt = receipt
	} else {
		c.log.Warnf(ctx, "payment receipt unavailable: %v", err)
	}

	return result, nil
}

// post 发送 JSON POST 请求，payment 非空时附加 X-Payment 头
func (c *Client) post(ctx context.Context, url string, body []byte, payment string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if payment != "" {
		req.Header.Set("X-Payment", payment)
	}

	return c.httpClient.Do(req)
}

// decodeRequirements 解析 402 响应体中的支付要求，消费并关闭响应体
func decodeRequirements(resp *http.Response) (*PaymentRequirements, error) {
	defer resp.Body.Close()

	var body paymentRequiredBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Accepts) == 0 {
		return nil, fmt.Errorf("payment requirements missing in 402 response")
	}

	return &body.Accepts[0], nil
}
