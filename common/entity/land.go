package entity

import (
	"gorm.io/datatypes"
)

// Land 地块实体
// 由注册流程写入（polygon 注册不在本服务范围内），本服务只读
type Land struct {
	ID                 string         `gorm:"column:land_id;primaryKey;type:varchar(64)"`
	UserID             int64          `gorm:"column:user_id;not null;index:idx_user_id"`
	LandArea           float64        `gorm:"column:land_area;type:decimal(10,2)"`
	Country            string         `gorm:"column:country;type:varchar(255)"`
	Latitude           float64        `gorm:"column:latitude;type:decimal(9,6)"`
	Longitude          float64        `gorm:"column:longitude;type:decimal(9,6)"`
	PolygonCoordinates datatypes.JSON `gorm:"column:polygon_coordinates;type:json"`
	PolygonID          string         `gorm:"column:polygon_id;type:varchar(255)"`
}

// TableName 指定表名
func (Land) TableName() string {
	return "lands"
}
