package telemetry

import (
	"context"

	"github.com/egnd-2025/krishi-backend/common/model"
)

// Provider 遥测数据提供方接口
// 任一数据源失败即整体失败，由调用方决定兜底策略
type Provider interface {
	Current(ctx context.Context, polygonID string, lat, lon float64) (*model.FieldConditions, error)
}

// CompositeProvider 组合天气与农业监测两个数据源
type CompositeProvider struct {
	weather *WeatherClient
	agro    *AgroClient
}

// NewCompositeProvider 创建组合提供方
func NewCompositeProvider(weather *WeatherClient, agro *AgroClient) *CompositeProvider {
	return &CompositeProvider{weather: weather, agro: agro}
}

// Current 获取当前环境读数
func (p *CompositeProvider) Current(ctx context.Context, polygonID string, lat, lon float64) (*model.FieldConditions, error) {
	weather, err := p.weather.Current(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	agro, err := p.agro.Current(ctx, polygonID, lat, lon)
	if err != nil {
		return nil, err
	}

	return &model.FieldConditions{
		Temperature:     weather.Temperature,
		Humidity:        weather.Humidity,
		Weather:         weather.Description,
		RainProbability: weather.RainProbability,
		NDVI:            agro.NDVI,
		UVIndex:         agro.UVIndex,
		WindSpeed:       agro.WindSpeed,
	}, nil
}
