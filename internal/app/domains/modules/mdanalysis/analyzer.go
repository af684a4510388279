package mdanalysis

import (
	"context"
	"fmt"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rpland"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/telemetry"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// ConditionAnalyzer 地块环境分析器
// 地块记录缺失是致命错误；遥测数据缺失走固定兜底读数
type ConditionAnalyzer struct {
	landRepo rpland.LandRepository
	provider telemetry.Provider
	log      logger.Logger
}

// NewConditionAnalyzer 创建分析器实例
func NewConditionAnalyzer(landRepo rpland.LandRepository, provider telemetry.Provider, log logger.Logger) *ConditionAnalyzer {
	return &ConditionAnalyzer{
		landRepo: landRepo,
		provider: provider,
		log:      log,
	}
}

// Analyze 为用户地块生成一次环境分析快照
func (a *ConditionAnalyzer) Analyze(ctx context.Context, userID int64) (*model.AnalysisSnapshot, error) {
	land, err := a.landRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errorx.Wrap(errorx.KindPersistence, "query land record failed", err)
	}
	if land == nil {
		return nil, errorx.NotFound(fmt.Sprintf("no land registered for user %d", userID))
	}

	snapshot := &model.AnalysisSnapshot{
		Land: model.LandProfile{
			Area:      land.LandArea,
			Country:   land.Country,
			Latitude:  land.Latitude,
			Longitude: land.Longitude,
		},
	}

	conditions, err := a.provider.Current(ctx, land.PolygonID, land.Latitude, land.Longitude)
	if err != nil {
		// 遥测失败不致命：退化到固定兜底读数，流水线继续
		a.log.Warnf(ctx, "telemetry unavailable, falling back to defaults: %v", err)
		snapshot.Conditions = model.DefaultFieldConditions()
		return snapshot, nil
	}

	snapshot.Conditions = *conditions
	return snapshot, nil
}
