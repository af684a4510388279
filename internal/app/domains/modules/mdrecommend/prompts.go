package mdrecommend

import (
	"fmt"
	"strings"

	"github.com/egnd-2025/krishi-backend/common/model"
)

// buildCropPrompt 构造作物推荐提示词
func buildCropPrompt(snapshot *model.AnalysisSnapshot, availableCrops []string) string {
	var b strings.Builder

	b.WriteString("You are an expert agricultural AI. Based on the following land and environmental data, recommend the top 5 crops with specific reasoning:\n\n")

	fmt.Fprintf(&b, "LAND DATA:\n")
	fmt.Fprintf(&b, "- Area: %.2f hectares\n", snapshot.Land.Area)
	fmt.Fprintf(&b, "- Country: %s\n", snapshot.Land.Country)
	fmt.Fprintf(&b, "- Location: %f, %f\n\n", snapshot.Land.Latitude, snapshot.Land.Longitude)

	fmt.Fprintf(&b, "ENVIRONMENTAL CONDITIONS:\n")
	fmt.Fprintf(&b, "- Temperature: %.1f°C\n", snapshot.Conditions.Temperature)
	fmt.Fprintf(&b, "- Humidity: %.0f%%\n", snapshot.Conditions.Humidity)
	fmt.Fprintf(&b, "- Weather: %s\n", snapshot.Conditions.Weather)
	fmt.Fprintf(&b, "- NDVI (Soil Health): %.2f\n", snapshot.Conditions.NDVI)
	fmt.Fprintf(&b, "- UV Index: %.1f\n", snapshot.Conditions.UVIndex)
	fmt.Fprintf(&b, "- Wind Speed: %.1f m/s\n", snapshot.Conditions.WindSpeed)
	fmt.Fprintf(&b, "- Rain Probability: %.0f%%\n\n", snapshot.Conditions.RainProbability)

	fmt.Fprintf(&b, "AVAILABLE CROPS: %s\n\n", strings.Join(availableCrops, ", "))

	b.WriteString("For each recommended crop, provide:\n")
	b.WriteString("1. Crop name\n")
	b.WriteString("2. Suitability score (0-100)\n")
	b.WriteString("3. Specific reasons why it's suitable\n")
	b.WriteString("4. Expected yield potential\n")
	b.WriteString("5. Risk factors to consider\n\n")
	b.WriteString("Format as JSON array with fields: name, score, reasons[], yieldPotential, risks[]. Return ONLY the JSON array, no other text.")

	return b.String()
}

// buildProductPrompt 构造商品推荐提示词
func buildProductPrompt(snapshot *model.AnalysisSnapshot, crops []model.CropRecommendation, catalog *model.Catalog) string {
	var b strings.Builder

	b.WriteString("You are an expert agricultural AI. Based on the recommended crops and land conditions, suggest specific products from the available catalog with intelligent quantities.\n\n")

	b.WriteString("RECOMMENDED CROPS:\n")
	for _, c := range crops {
		fmt.Fprintf(&b, "- %s (Score: %d/100)\n", c.Name, c.Score)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "LAND CONDITIONS:\n")
	fmt.Fprintf(&b, "- Area: %.2f hectares\n", snapshot.Land.Area)
	fmt.Fprintf(&b, "- Temperature: %.1f°C\n", snapshot.Conditions.Temperature)
	fmt.Fprintf(&b, "- Humidity: %.0f%%\n", snapshot.Conditions.Humidity)
	fmt.Fprintf(&b, "- Soil Health (NDVI): %.2f\n", snapshot.Conditions.NDVI)
	fmt.Fprintf(&b, "- Weather: %s\n\n", snapshot.Conditions.Weather)

	b.WriteString("AVAILABLE PRODUCTS CATALOG:\n")
	fmt.Fprintf(&b, "SEEDS: %s\n", formatProducts(catalog.Seeds))
	fmt.Fprintf(&b, "FERTILIZERS: %s\n", formatProducts(catalog.Fertilizers))
	fmt.Fprintf(&b, "TOOLS: %s\n", formatProducts(catalog.Tools))
	fmt.Fprintf(&b, "PESTICIDES: %s\n\n", formatProducts(catalog.Pesticides))

	b.WriteString("QUANTITY CALCULATION RULES:\n")
	b.WriteString("- For seeds: 20-30 kg per hectare\n")
	b.WriteString("- For fertilizers: 80-120 kg per hectare\n")
	b.WriteString("- For pesticides: 1-3 liters per hectare\n")
	b.WriteString("- For tools: 1-2 pieces (not area dependent)\n\n")

	b.WriteString("Return recommendations in EXACTLY this JSON format:\n\n")
	b.WriteString(`[{"type": "seed|fertilizer|tool|pesticide", "product": {"name": "exact product name from catalog"}, "quantity": number, "priority": "high|medium|low", "reason": "specific reasoning"}]`)
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("1. Use EXACT product names from the available catalog\n")
	fmt.Fprintf(&b, "2. Calculate intelligent quantities based on land area (%.2f hectares)\n", snapshot.Land.Area)
	b.WriteString("3. Prioritize high-priority items for essential farming needs\n")
	b.WriteString("4. Consider crop-specific requirements and soil conditions\n")
	b.WriteString("5. Limit to 8-12 total recommendations\n\n")
	b.WriteString("Return ONLY the JSON array, no other text.")

	return b.String()
}

// formatProducts 将商品列表格式化为提示词片段
func formatProducts(products []model.Product) string {
	parts := make([]string, 0, len(products))
	for i := range products {
		parts = append(parts, fmt.Sprintf("%s ($%.2f/%s)", products[i].Name, products[i].Price, products[i].Unit))
	}
	return strings.Join(parts, ", ")
}
