package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
)

// Completer 咨询服务接口（文本补全）
// 返回的内容是非结构化文本，由调用方负责校验
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client 咨询服务客户端（chat completions 兼容接口）
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient 创建咨询客户端
func NewClient(baseURL, apiKey, model string, temperature float64, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// chatRequest 补全请求体
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse 补全响应体（只取用到的字段）
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete 发起单轮补全调用
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errorx.Upstream("advisory service is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errorx.Upstream(fmt.Sprintf("advisory service returned status %d", resp.StatusCode), nil)
	}

	var reply chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", errorx.Upstream("decode advisory response failed", err)
	}
	if len(reply.Choices) == 0 {
		return "", errorx.Upstream("advisory response has no choices", nil)
	}

	return reply.Choices[0].Message.Content, nil
}
