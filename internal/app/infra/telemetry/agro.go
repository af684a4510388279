package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AgroClient 农业卫星监测客户端（NDVI / UVI / 地面风速）
type AgroClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAgroClient 创建农业监测客户端
func NewAgroClient(baseURL, apiKey string, timeout time.Duration) *AgroClient {
	return &AgroClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AgroReading 农业监测读数
type AgroReading struct {
	NDVI      float64 // 近 15 天中位数
	UVIndex   float64
	WindSpeed float64 // m/s
}

// NDVI 历史窗口
const ndviHistoryWindow = 15 * 24 * time.Hour

// Current 获取指定多边形的监测读数
// polygonID 为空视为未注册多边形，直接报错（由上层兜底）
func (c *AgroClient) Current(ctx context.Context, polygonID string, lat, lon float64) (*AgroReading, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("agro api key is not configured")
	}
	if polygonID == "" {
		return nil, fmt.Errorf("polygon is not registered")
	}

	ndvi, err := c.fetchNDVI(ctx, polygonID)
	if err != nil {
		return nil, err
	}

	uvi, err := c.fetchUVI(ctx, polygonID)
	if err != nil {
		return nil, err
	}

	wind, err := c.fetchWindSpeed(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	return &AgroReading{NDVI: ndvi, UVIndex: uvi, WindSpeed: wind}, nil
}

// fetchNDVI 拉取 NDVI 历史并取最近一条的中位数
func (c *AgroClient) fetchNDVI(ctx context.Context, polygonID string) (float64, error) {
	end := time.Now().Unix()
	start := time.Now().Add(-ndviHistoryWindow).Unix()

	q := url.Values{}
	q.Set("start", fmt.Sprintf("%d", start))
	q.Set("end", fmt.Sprintf("%d", end))
	q.Set("polyid", polygonID)
	q.Set("appid", c.apiKey)

	var body []struct {
		Data struct {
			Median float64 `json:"median"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/agro/1.0/ndvi/history?%s", c.baseURL, q.Encode()), &body); err != nil {
		return 0, fmt.Errorf("fetch ndvi failed: %w", err)
	}
	if len(body) == 0 {
		return 0, fmt.Errorf("ndvi history is empty")
	}
	return body[0].Data.Median, nil
}

// fetchUVI 拉取当前紫外线指数
func (c *AgroClient) fetchUVI(ctx context.Context, polygonID string) (float64, error) {
	q := url.Values{}
	q.Set("polyid", polygonID)
	q.Set("appid", c.apiKey)

	var body struct {
		UVI float64 `json:"uvi"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/agro/1.0/uvi?%s", c.baseURL, q.Encode()), &body); err != nil {
		return 0, fmt.Errorf("fetch uvi failed: %w", err)
	}
	return body.UVI, nil
}

// fetchWindSpeed 拉取地面风速
func (c *AgroClient) fetchWindSpeed(ctx context.Context, lat, lon float64) (float64, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("appid", c.apiKey)

	var body struct {
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/agro/1.0/weather?%s", c.baseURL, q.Encode()), &body); err != nil {
		return 0, fmt.Errorf("fetch wind failed: %w", err)
	}
	return body.Wind.Speed, nil
}

// getJSON 执行 GET 请求并解析 JSON 响应
func (c *AgroClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agro api returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
