package repository

import "gorm.io/gorm"

// MaxPageSize 单页上限，导出报表不走分页
const MaxPageSize = 500

// applyPagination pageSize<=0 表示不分页；page 从 1 开始
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

// findPage 先计数再按 order 取当前页
func findPage[T any](query *gorm.DB, order string, page, pageSize int) ([]T, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0)
	if total == 0 {
		return items, 0, nil
	}
	if err := applyPagination(query.Order(order), page, pageSize).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
