package mdcatalog

import (
	"context"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
)

// Source 目录数据来源
type Source interface {
	FetchCatalog(ctx context.Context) (*model.Catalog, error)
}

// CatalogFetcher 商品目录获取器
// 目录在一次流水线运行内只拉一次，作为只读快照贯穿推荐与下单
type CatalogFetcher struct {
	source Source
}

// NewCatalogFetcher 创建目录获取器
func NewCatalogFetcher(source Source) *CatalogFetcher {
	return &CatalogFetcher{source: source}
}

// Fetch 拉取目录快照
// 目录不可用对整次运行是致命的：没有目录就无法校验推荐，直接上抛
func (f *CatalogFetcher) Fetch(ctx context.Context) (*model.Catalog, error) {
	catalog, err := f.source.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, errorx.Upstream("merchant returned empty catalog", nil)
	}
	return catalog, nil
}
