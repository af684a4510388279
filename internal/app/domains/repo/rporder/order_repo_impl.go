package rporder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/egnd-2025/krishi-backend/common/entity"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
)

// OrderRepositoryImpl 订单仓储实现（MySQL）
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create 在一个事务内创建订单及其全部订单项
// 订单项不允许脱离订单存在，所以必须同事务写入
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *etorder.Order) error {
	po, items, err := r.toGormModel(order)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(po).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID 查询订单（含订单项）
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var itemPOs []entity.OrderItem
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return r.toDomainModel(&po, itemPOs)
}

// ListByUser 按用户查询订单列表（含订单项）
func (r *OrderRepositoryImpl) ListByUser(ctx context.Context, filter ListFilter) ([]*etorder.Order, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var pos []entity.Order
	if err := query.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&pos).Error; err != nil {
		return nil, err
	}

	orders := make([]*etorder.Order, 0, len(pos))
	for i := range pos {
		var itemPOs []entity.OrderItem
		if err := r.db.WithContext(ctx).
			Where("order_id = ?", pos[i].ID).
			Order("created_at ASC").
			Find(&itemPOs).Error; err != nil {
			return nil, err
		}

		order, err := r.toDomainModel(&pos[i], itemPOs)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// UpdateStatus 更新订单状态
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, orderID string, status etorder.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order not found: %s", orderID)
	}
	return nil
}

// AddItem 向已有订单追加订单项并重算订单总额
func (r *OrderRepositoryImpl) AddItem(ctx context.Context, orderID string, item *etorder.OrderItem) error {
	item.OrderID = orderID
	item.TotalPrice = float64(item.Quantity) * item.UnitPrice

	itemPO, err := r.itemToGormModel(item)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po entity.Order
		if err := tx.Where("order_id = ?", orderID).First(&po).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order not found: %s", orderID)
			}
			return err
		}

		if err := tx.Create(itemPO).Error; err != nil {
			return err
		}

		// 重算订单总额
		var total float64
		if err := tx.Model(&entity.OrderItem{}).
			Where("order_id = ?", orderID).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Order{}).
			Where("order_id = ?", orderID).
			Updates(map[string]interface{}{
				"total_amount": total,
				"updated_at":   time.Now(),
			}).Error
	})
}

// toGormModel 领域对象转换为 GORM 模型
func (r *OrderRepositoryImpl) toGormModel(order *etorder.Order) (*entity.Order, []*entity.OrderItem, error) {
	po := &entity.Order{
		ID:            order.ID,
		UserID:        order.UserID,
		TransactionID: order.TransactionID,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount,
		Currency:      order.Currency,
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}

	items := make([]*entity.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		itemPO, err := r.itemToGormModel(item)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, itemPO)
	}

	return po, items, nil
}

// itemToGormModel 订单项转换为 GORM 模型
func (r *OrderRepositoryImpl) itemToGormModel(item *etorder.OrderItem) (*entity.OrderItem, error) {
	po := &entity.OrderItem{
		ID:                 item.ID,
		OrderID:            item.OrderID,
		ProductID:          item.ProductID,
		ProductName:        item.ProductName,
		ProductDescription: item.ProductDescription,
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice,
		TotalPrice:         item.TotalPrice,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.CreatedAt,
	}

	if item.Metadata != nil {
		metadataJSON, err := json.Marshal(item.Metadata)
		if err != nil {
			return nil, err
		}
		po.Metadata = metadataJSON
	}

	return po, nil
}

// toDomainModel GORM 模型转换为领域对象
func (r *OrderRepositoryImpl) toDomainModel(po *entity.Order, itemPOs []entity.OrderItem) (*etorder.Order, error) {
	order := &etorder.Order{
		ID:            po.ID,
		UserID:        po.UserID,
		TransactionID: po.TransactionID,
		Status:        etorder.OrderStatus(po.Status),
		TotalAmount:   po.TotalAmount,
		Currency:      po.Currency,
		Notes:         po.Notes,
		Items:         make([]*etorder.OrderItem, 0, len(itemPOs)),
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}

	for i := range itemPOs {
		item := &etorder.OrderItem{
			ID:                 itemPOs[i].ID,
			OrderID:            itemPOs[i].OrderID,
			ProductID:          itemPOs[i].ProductID,
			ProductName:        itemPOs[i].ProductName,
			ProductDescription: itemPOs[i].ProductDescription,
			Quantity:           itemPOs[i].Quantity,
			UnitPrice:          itemPOs[i].UnitPrice,
			TotalPrice:         itemPOs[i].TotalPrice,
			CreatedAt:          itemPOs[i].CreatedAt,
		}

		if len(itemPOs[i].Metadata) > 0 {
			var metadata map[string]interface{}
			if err := json.Unmarshal(itemPOs[i].Metadata, &metadata); err != nil {
				return nil, err
			}
			item.Metadata = metadata
		}

		order.Items = append(order.Items, item)
	}

	return order, nil
}

// NewMySQLDB 创建 MySQL 连接
func NewMySQLDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
