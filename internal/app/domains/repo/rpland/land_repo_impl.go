package rpland

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/egnd-2025/krishi-backend/common/entity"
)

// LandRepositoryImpl 地块仓储实现（MySQL）
type LandRepositoryImpl struct {
	db *gorm.DB
}

// NewLandRepository 创建地块仓储实例
func NewLandRepository(db *gorm.DB) LandRepository {
	return &LandRepositoryImpl{db: db}
}

// GetByUserID 查询用户的地块记录
func (r *LandRepositoryImpl) GetByUserID(ctx context.Context, userID int64) (*entity.Land, error) {
	var land entity.Land
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&land).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &land, nil
}
