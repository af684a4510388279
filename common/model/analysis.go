package model

// AnalysisSnapshot 地块环境分析快照
// 每次流水线运行生成一次，生成后不再修改
type AnalysisSnapshot struct {
	Land       LandProfile     `json:"land"`
	Conditions FieldConditions `json:"conditions"`
}

// LandProfile 地块属性
type LandProfile struct {
	Area      float64 `json:"area"` // 单位：公顷
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FieldConditions 环境读数
type FieldConditions struct {
	Temperature     float64 `json:"temperature"`      // 摄氏度
	Humidity        float64 `json:"humidity"`         // 百分比
	Weather         string  `json:"weather"`          // 天气描述
	NDVI            float64 `json:"ndvi"`             // 植被指数 0-1
	UVIndex         float64 `json:"uv_index"`         //
	WindSpeed       float64 `json:"wind_speed"`       // m/s
	RainProbability float64 `json:"rain_probability"` // 百分比
}

// DefaultFieldConditions 遥测数据不可用时的兜底读数
// 固定值：保证推荐质量平滑退化，流水线可用性不依赖第三方遥测服务
func DefaultFieldConditions() FieldConditions {
	return FieldConditions{
		Temperature:     25,
		Humidity:        60,
		Weather:         "clear sky",
		NDVI:            0.5,
		UVIndex:         5,
		WindSpeed:       3.5,
		RainProbability: 20,
	}
}
