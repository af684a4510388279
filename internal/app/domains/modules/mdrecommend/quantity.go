package mdrecommend

import (
	"math"

	"github.com/egnd-2025/krishi-backend/common/model"
)

// 每公顷基础用量：种子 kg、肥料 kg、农药 L；农具按件计，与面积无关
var baseRates = map[model.Category]float64{
	model.CategorySeed:       25,
	model.CategoryFertilizer: 100,
	model.CategoryPesticide:  2,
	model.CategoryTool:       1,
}

// 作物用量系数表
var cropMultipliers = map[string]map[model.Category]float64{
	"Rice":    {model.CategorySeed: 1.2, model.CategoryFertilizer: 1.5, model.CategoryPesticide: 1.1},
	"Wheat":   {model.CategorySeed: 1.0, model.CategoryFertilizer: 1.3, model.CategoryPesticide: 0.9},
	"Cotton":  {model.CategorySeed: 0.8, model.CategoryFertilizer: 1.8, model.CategoryPesticide: 1.5},
	"Maize":   {model.CategorySeed: 1.1, model.CategoryFertilizer: 1.4, model.CategoryPesticide: 1.2},
	"Soybean": {model.CategorySeed: 0.9, model.CategoryFertilizer: 1.2, model.CategoryPesticide: 0.8},
}

// 植被指数低于该阈值视为贫瘠土壤，用量上浮 30%
const poorSoilNDVI = 0.3

// PolicyQuantity 按面积计算规则用量
// 面积单位统一为公顷；cropType 不在系数表内时不做作物调整；结果向上取整
func PolicyQuantity(category model.Category, areaHectares float64, cropType string, ndvi float64) int {
	rate, ok := baseRates[category]
	if !ok {
		return 1
	}

	// 农具与面积无关
	if category == model.CategoryTool {
		return 1
	}

	quantity := rate * areaHectares

	if multipliers, ok := cropMultipliers[cropType]; ok {
		if m, ok := multipliers[category]; ok {
			quantity *= m
		}
	}

	if ndvi < poorSoilNDVI {
		quantity *= 1.3
	}

	result := int(math.Ceil(quantity))
	if result < 1 {
		return 1
	}
	return result
}

// quantitySanityCap AI 给出的用量超过规则用量 10 倍视为失真，压回规则用量
const quantitySanityCap = 10

// sanitizeQuantity 校验 AI 用量的合理性
func sanitizeQuantity(aiQuantity int, category model.Category, areaHectares float64, ndvi float64) int {
	policy := PolicyQuantity(category, areaHectares, "", ndvi)
	if aiQuantity <= 0 || aiQuantity > policy*quantitySanityCap {
		return policy
	}
	return aiQuantity
}
