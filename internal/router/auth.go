package router

import (
	"strings"
	"time"

	"github.com/vms-next/internal/authz"
	"github.com/vms-next/internal/cache"
	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/i18n"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	adminIDContextKey      = "admin_id"
	adminIsSuperContextKey = "admin_is_super"
	adminCompanyContextKey = "admin_company_id"
)

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 取 Authorization: Bearer <token>，失败时返回对应的错误 key
func bearerToken(c *gin.Context) (string, string) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", "error.auth_header_missing"
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", "error.auth_header_invalid"
	}
	return token, ""
}

func parseAdminClaims(secretKey, token string) (*service.JWTClaims, bool) {
	claims := &service.JWTClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !parsed.Valid || claims.AdminID == 0 {
		return nil, false
	}
	return claims, true
}

// loadAuthState 先读 redis 快照，未命中回表并回填
func loadAuthState(c *gin.Context, repo repository.AdminRepository, adminID uint) *cache.AdminAuthState {
	ctx := c.Request.Context()
	if state, hit, err := cache.GetAdminAuthState(ctx, adminID); err == nil && hit && state != nil {
		return state
	}
	admin, err := repo.GetByID(adminID)
	if err != nil || admin == nil {
		return nil
	}
	state := cache.BuildAdminAuthState(admin)
	_ = cache.SetAdminAuthState(ctx, state)
	return state
}

// JWTAuthMiddleware 后台与前台值守共用的 JWT 鉴权
// 通过后在上下文写入 admin_id、username、admin_is_super，绑定公司的账号额外写入 admin_company_id。
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		if adminRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		token, errKey := bearerToken(c)
		if errKey != "" {
			abortUnauthorized(c, errKey)
			return
		}
		claims, ok := parseAdminClaims(secretKey, token)
		if !ok {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		state := loadAuthState(c, adminRepo, claims.AdminID)
		if state == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		var issuedAt *time.Time
		if claims.IssuedAt != nil {
			issuedAt = &claims.IssuedAt.Time
		}
		if !state.Accepts(claims.TokenVersion, issuedAt) {
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set(adminIDContextKey, claims.AdminID)
		c.Set("username", claims.Username)
		c.Set(adminIsSuperContextKey, state.IsSuper)
		if state.CompanyID != 0 {
			c.Set(adminCompanyContextKey, state.CompanyID)
		}
		c.Next()
	}
}

// AdminRBACMiddleware 按路由模板做 casbin 鉴权，超级管理员直接放行
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}
		adminID, ok := handlershared.ContextUint(c, adminIDContextKey)
		if !ok {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := strings.TrimSpace(c.FullPath())
		if resource == "" {
			resource = c.Request.URL.Path
		}
		log := logger.SW(
			"admin_id", adminID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			log.Errorw("admin_rbac_enforce_failed", "error", err)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			log.Warnw("admin_rbac_permission_denied", "resource", authz.NormalizeObject(resource))
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
