package model

// Category 商品类目
type Category string

const (
	CategorySeed       Category = "seed"
	CategoryFertilizer Category = "fertilizer"
	CategoryTool       Category = "tool"
	CategoryPesticide  Category = "pesticide"
)

// Valid 判断类目是否合法
func (c Category) Valid() bool {
	switch c {
	case CategorySeed, CategoryFertilizer, CategoryTool, CategoryPesticide:
		return true
	}
	return false
}

// Product 商家目录条目
// 名称在类目内唯一；价格与单位以商家目录为准
type Product struct {
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Unit        string            `json:"unit"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"` // 类目专属字段（如种子品种、肥料成分）
}

// Catalog 商家商品目录（单次流水线运行内视为只读快照）
type Catalog struct {
	Seeds       []Product `json:"seeds"`
	Fertilizers []Product `json:"fertilizers"`
	Tools       []Product `json:"tools"`
	Pesticides  []Product `json:"pesticides"`
}

// ByCategory 返回指定类目的商品列表
func (c *Catalog) ByCategory(category Category) []Product {
	switch category {
	case CategorySeed:
		return c.Seeds
	case CategoryFertilizer:
		return c.Fertilizers
	case CategoryTool:
		return c.Tools
	case CategoryPesticide:
		return c.Pesticides
	}
	return nil
}

// Find 在指定类目中按名称查找商品，返回目录内的真实对象
func (c *Catalog) Find(category Category, name string) *Product {
	products := c.ByCategory(category)
	for i := range products {
		if products[i].Name == name {
			return &products[i]
		}
	}
	return nil
}

// SeedNames 返回所有种子商品名（作为候选作物列表）
func (c *Catalog) SeedNames() []string {
	names := make([]string, 0, len(c.Seeds))
	for i := range c.Seeds {
		names = append(names, c.Seeds[i].Name)
	}
	return names
}
