package merchant

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/egnd-2025/krishi-backend/common/model"
)

// PaymentRequirements 402 响应携带的支付要求
type PaymentRequirements struct {
	Scheme            string `json:"scheme"`
	Network           string `json:"network"`
	MaxAmountRequired string `json:"maxAmountRequired"`
	Resource          string `json:"resource"`
	Description       string `json:"description"`
	PayTo             string `json:"payTo"`
	Asset             string `json:"asset"`
}

// paymentRequiredBody 402 响应体
type paymentRequiredBody struct {
	X402Version int                   `json:"x402Version"`
	Accepts     []PaymentRequirements `json:"accepts"`
	Error       string                `json:"error,omitempty"`
}

// paymentHeader X-Payment 请求头的载荷
type paymentHeader struct {
	X402Version int    `json:"x402Version"`
	Scheme      string `json:"scheme"`
	Network     string `json:"network"`
	Payload     struct {
		Authorization string `json:"authorization"`
	} `json:"payload"`
}

// PaymentSigner 支付授权签名器
// 每个进程构造一次，只读复用；通过构造注入，避免进程级全局状态
type PaymentSigner struct {
	key     []byte
	network string
	payer   string
}

// NewPaymentSigner 从十六进制凭证创建签名器
func NewPaymentSigner(hexKey, network string) (*PaymentSigner, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid payment key: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("payment key is empty")
	}

	// 支付方标识取凭证指纹，不暴露凭证本身
	sum := sha256.Sum256(key)
	payer := "0x" + hex.EncodeToString(sum[:20])

	return &PaymentSigner{key: key, network: network, payer: payer}, nil
}

// Payer 返回支付方标识
func (s *PaymentSigner) Payer() string {
	return s.payer
}

// Sign 按支付要求生成已签名的 X-Payment 请求头值
func (s *PaymentSigner) Sign(req *PaymentRequirements) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"scheme":  req.Scheme,
		"network": req.Network,
		"payTo":   req.PayTo,
		"amount":  req.MaxAmountRequired,
		"asset":   req.Asset,
		"payer":   s.payer,
		"nonce":   uuid.New().String(),
		"iat":     now.Unix(),
		"exp":     now.Add(5 * time.Minute).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign payment authorization failed: %w", err)
	}

	header := paymentHeader{
		X402Version: 1,
		Scheme:      req.Scheme,
		Network:     req.Network,
	}
	header.Payload.Authorization = token

	payload, err := json.Marshal(header)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeReceipt 解码 X-Payment-Response 响应头中的支付回执
func DecodeReceipt(headerValue string) (*model.PaymentReceipt, error) {
	if headerValue == "" {
		return nil, fmt.Errorf("payment response header is empty")
	}

	raw, err := base64.StdEncoding.DecodeString(headerValue)
	if err != nil {
		return nil, fmt.Errorf("decode payment response failed: %w", err)
	}

	var receipt model.PaymentReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return nil, fmt.Errorf("unmarshal payment response failed: %w", err)
	}

	return &receipt, nil
}
