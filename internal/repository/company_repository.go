package repository

import (
	"errors"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// CompanyRepository 公司数据访问接口
type CompanyRepository interface {
	ListActive() ([]models.Company, error)
	GetActiveByID(id uint) (*models.Company, error)
	GetByID(id uint) (*models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
}

// GormCompanyRepository GORM 实现
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository 创建公司仓库
func NewCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// ListActive 获取启用中的公司
func (r *GormCompanyRepository) ListActive() ([]models.Company, error) {
	companies := make([]models.Company, 0)
	if err := r.db.Where("status = ?", constants.DirectoryStatusActive).
		Order("company_name ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// GetActiveByID 获取启用中的公司
func (r *GormCompanyRepository) GetActiveByID(id uint) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("company_id = ? AND status = ?", id, constants.DirectoryStatusActive).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// GetByID 根据 ID 获取公司（不区分状态）
func (r *GormCompanyRepository) GetByID(id uint) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("company_id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// Create 创建公司
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// Update 更新公司
func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}
