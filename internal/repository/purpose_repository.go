package repository

import (
	"errors"

	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// PurposeRepository 来访目的数据访问接口
type PurposeRepository interface {
	List() ([]models.Purpose, error)
	GetByID(id uint) (*models.Purpose, error)
	Create(purpose *models.Purpose) error
	Update(purpose *models.Purpose) error
	Delete(id uint) (bool, error)
}

// GormPurposeRepository GORM 实现
type GormPurposeRepository struct {
	db *gorm.DB
}

// NewPurposeRepository 创建来访目的仓库
func NewPurposeRepository(db *gorm.DB) *GormPurposeRepository {
	return &GormPurposeRepository{db: db}
}

// List 来访目的列表
func (r *GormPurposeRepository) List() ([]models.Purpose, error) {
	purposes := make([]models.Purpose, 0)
	if err := r.db.Order("purpose_id ASC").Find(&purposes).Error; err != nil {
		return nil, err
	}
	return purposes, nil
}

// GetByID 根据 ID 获取来访目的
func (r *GormPurposeRepository) GetByID(id uint) (*models.Purpose, error) {
	var purpose models.Purpose
	if err := r.db.Where("purpose_id = ?", id).First(&purpose).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purpose, nil
}

// Create 创建来访目的
func (r *GormPurposeRepository) Create(purpose *models.Purpose) error {
	return r.db.Create(purpose).Error
}

// Update 更新来访目的
func (r *GormPurposeRepository) Update(purpose *models.Purpose) error {
	return r.db.Save(purpose).Error
}

// Delete 删除来访目的
func (r *GormPurposeRepository) Delete(id uint) (bool, error) {
	result := r.db.Where("purpose_id = ?", id).Delete(&models.Purpose{})
	return result.RowsAffected > 0, result.Error
}
