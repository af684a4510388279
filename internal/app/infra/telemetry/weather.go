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

// WeatherClient 天气数据客户端（One Call 3.0 风格接口）
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherClient 创建天气客户端
func NewWeatherClient(baseURL, apiKey string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WeatherReading 天气读数
type WeatherReading struct {
	Temperature     float64 // 摄氏度
	Humidity        float64 // 百分比
	Description     string  // 天气描述
	RainProbability float64 // 下一小时降雨概率（百分比）
}

// onecallResponse One Call 接口响应（只取用到的字段）
type onecallResponse struct {
	Current struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Weather  []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"current"`
	Hourly []struct {
		Pop float64 `json:"pop"` // 降雨概率 0-1
	} `json:"hourly"`
}

// Current 获取当前天气读数
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) (*WeatherReading, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather api key is not configured")
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("exclude", "daily,alerts")
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	endpoint := fmt.Sprintf("%s/data/3.0/onecall?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var body onecallResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response failed: %w", err)
	}

	reading := &WeatherReading{
		Temperature: body.Current.Temp,
		Humidity:    body.Current.Humidity,
	}
	if len(body.Current.Weather) > 0 {
		reading.Description = body.Current.Weather[0].Description
	}
	// 取下一小时的降雨概率，转为百分比
	if len(body.Hourly) > 1 {
		reading.RainProbability = body.Hourly[1].Pop * 100
	}

	return reading, nil
}
