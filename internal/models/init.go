package models

import (
	"strings"

	"github.com/vms-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const defaultAdminPassword = "admin123"

// defaultPurposes 首次启动时写入的来访目的
var defaultPurposes = []string{
	"Meeting",
	"Interview",
	"Delivery",
	"Maintenance",
	"Personal Visit",
}

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(username, password string) error {
	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}

	// 已有管理员时，确保默认 admin 拥有超级管理员权限
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", ProtectedAdminUsername).Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = ProtectedAdminUsername
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		DisplayName:  "Front Desk Admin",
		PasswordHash: string(hash),
		IsSuper:      strings.EqualFold(strings.TrimSpace(username), ProtectedAdminUsername),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}

// InitDefaultPurposes 来访目的字典为空时写入默认值
func InitDefaultPurposes() error {
	var count int64
	if err := DB.Model(&Purpose{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rows := make([]Purpose, 0, len(defaultPurposes))
	for _, item := range defaultPurposes {
		rows = append(rows, Purpose{Purpose: item})
	}
	if err := DB.Create(&rows).Error; err != nil {
		return err
	}
	logger.Infow("default_purposes_created", "count", len(rows))
	return nil
}
