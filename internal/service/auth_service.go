package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/vms-next/internal/cache"
	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidToken = errors.New("invalid token")

// AuthService 后台账号认证
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	now       func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{cfg: cfg, adminRepo: adminRepo, now: time.Now}
}

// AdminCreateInput 创建后台账号
type AdminCreateInput struct {
	Username    string
	DisplayName string
	Password    string
	CompanyID   *uint
	IsSuper     bool
}

// JWTClaims 后台 Token 声明，CompanyID 为空表示全局账号
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	CompanyID    *uint  `json:"company_id,omitempty"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// HashPassword bcrypt 哈希
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 校验密码哈希
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 按密码策略校验，username 用于账号名包含检查
func (s *AuthService) ValidatePassword(username, password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return checkPasswordPolicy(s.cfg.Security.PasswordPolicy, username, password)
}

// GenerateJWT 签发后台 Token
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)
	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		CompanyID:    admin.CompanyID,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT 解析后台 Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

// Login 后台登录
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil || s.VerifyPassword(admin.PasswordHash, password) != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := s.now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	logger.Component("auth").Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	return admin, token, expiresAt, nil
}

// GetAdmin 获取当前账号
func (s *AuthService) GetAdmin(adminID uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

func normalizeAdminUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if strings.ContainsAny(username, " \t\r\n") {
		return "", ErrAdminUsernameInvalid
	}
	if n := len([]rune(username)); n < 3 || n > 64 {
		return "", ErrAdminUsernameInvalid
	}
	return username, nil
}

// ListAdmins 后台账号列表，companyID 非零时按公司过滤
func (s *AuthService) ListAdmins(companyID uint, keyword string) ([]models.Admin, error) {
	return s.adminRepo.List(repository.AdminListFilter{
		CompanyID: companyID,
		Keyword:   strings.TrimSpace(keyword),
	})
}

// CreateAdmin 创建后台账号
func (s *AuthService) CreateAdmin(input AdminCreateInput) (*models.Admin, error) {
	username, err := normalizeAdminUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(username, input.Password); err != nil {
		return nil, err
	}
	exist, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrAdminExists
	}
	hashed, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Username:     username,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hashed,
		CompanyID:    input.CompanyID,
		IsSuper:      input.IsSuper,
	}
	if admin.IsProtected() {
		admin.IsSuper = true
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	logger.Component("auth").Infow("admin_created", "admin_id", admin.ID, "username", admin.Username, "is_super", admin.IsSuper)
	return admin, nil
}

// AdminUpdateInput 更新后台账号，nil 字段不修改
type AdminUpdateInput struct {
	Username     *string
	DisplayName  *string
	Password     *string
	CompanyID    *uint
	ClearCompany bool
	IsSuper      *bool
}

// UpdateAdmin 更新后台账号，返回实际修改的字段
func (s *AuthService) UpdateAdmin(id uint, input AdminUpdateInput) (*models.Admin, []string, error) {
	admin, err := s.GetAdmin(id)
	if err != nil {
		return nil, nil, err
	}
	updated := make([]string, 0, 5)

	if input.Username != nil {
		username, err := normalizeAdminUsername(*input.Username)
		if err != nil {
			return nil, nil, err
		}
		if username != admin.Username {
			exist, err := s.adminRepo.GetByUsername(username)
			if err != nil {
				return nil, nil, err
			}
			if exist != nil && exist.ID != admin.ID {
				return nil, nil, ErrAdminExists
			}
			admin.Username = username
			updated = append(updated, "username")
		}
	}
	if input.DisplayName != nil {
		admin.DisplayName = strings.TrimSpace(*input.DisplayName)
		updated = append(updated, "display_name")
	}
	if input.ClearCompany {
		admin.CompanyID = nil
		updated = append(updated, "company_id")
	} else if input.CompanyID != nil {
		companyID := *input.CompanyID
		admin.CompanyID = &companyID
		updated = append(updated, "company_id")
	}
	if input.IsSuper != nil {
		next := *input.IsSuper || admin.IsProtected()
		if next != admin.IsSuper {
			admin.IsSuper = next
			updated = append(updated, "is_super")
		}
	}
	if input.Password != nil {
		if err := s.ValidatePassword(admin.Username, *input.Password); err != nil {
			return nil, nil, err
		}
		hashed, err := s.HashPassword(*input.Password)
		if err != nil {
			return nil, nil, err
		}
		now := s.now()
		admin.PasswordHash = hashed
		admin.TokenVersion++
		admin.TokenInvalidBefore = &now
		updated = append(updated, "password")
	}
	if len(updated) == 0 {
		return nil, nil, ErrInvalidInput
	}

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	sort.Strings(updated)
	logger.Component("auth").Infow("admin_updated", "admin_id", admin.ID, "updated_fields", updated)
	return admin, updated, nil
}

// DeleteAdmin 删除后台账号；自己、初始管理员、最后一个账号与最后一个超管均不可删
func (s *AuthService) DeleteAdmin(operatorID, id uint) (*models.Admin, error) {
	admin, err := s.GetAdmin(id)
	if err != nil {
		return nil, err
	}
	if operatorID == id {
		return nil, ErrAdminDeleteSelf
	}
	if admin.IsProtected() {
		return nil, ErrAdminProtected
	}
	count, err := s.adminRepo.Count()
	if err != nil {
		return nil, err
	}
	if count <= 1 {
		return nil, ErrAdminDeleteLast
	}
	if admin.IsSuper {
		supers, err := s.adminRepo.CountSuper()
		if err != nil {
			return nil, err
		}
		if supers <= 1 {
			return nil, ErrAdminDeleteLast
		}
	}
	if err := s.adminRepo.Delete(id); err != nil {
		return nil, err
	}
	_ = cache.DelAdminAuthState(context.Background(), id)
	logger.Component("auth").Infow("admin_deleted", "admin_id", id, "operator_admin_id", operatorID)
	return admin, nil
}

// ChangePassword 修改密码并使旧 Token 失效
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.GetAdmin(adminID)
	if err != nil {
		return err
	}
	if err := s.VerifyPassword(admin.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(admin.Username, newPassword); err != nil {
		return err
	}
	hashed, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := s.now()
	admin.PasswordHash = hashed
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	logger.Component("auth").Infow("admin_password_changed", "admin_id", admin.ID)
	return nil
}
