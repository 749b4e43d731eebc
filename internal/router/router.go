package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vms-next/internal/authz"
	"github.com/vms-next/internal/cache"
	"github.com/vms-next/internal/config"
	adminhandlers "github.com/vms-next/internal/http/handlers/admin"
	publichandlers "github.com/vms-next/internal/http/handlers/public"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// deskRoutePrefixes 前台值守接口，与后台接口一样纳入权限目录
var deskRoutePrefixes = []string{
	"/api/v1/visitors/qr-scan",
	"/api/v1/visitors/approve/",
	"/api/v1/visitors/reject/",
	"/api/v1/visitors/verify-details/",
}

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vms"
	}
	redisClient := cache.Client()
	otpRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:otp", redisPrefix),
		WindowSeconds: cfg.Security.OtpRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OtpRateLimit.MaxAttempts,
		MessageKey:    "error.otp_too_many",
	}
	verifyOtpRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:otp_verify", redisPrefix),
		WindowSeconds: cfg.Security.OtpRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OtpRateLimit.MaxAttempts,
		MessageKey:    "error.otp_too_many",
	}
	lookupRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:lookup", redisPrefix),
		WindowSeconds: cfg.Security.OtpRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OtpRateLimit.MaxAttempts,
		MessageKey:    "error.otp_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	contactKey := KeyByIPAndJSONField("contact", "phone", "email")
	requireAdmin := []gin.HandlerFunc{
		JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
		AdminRBACMiddleware(c.AuthzService),
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 访客照片与上传文件
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/captcha/image", publicHandler.GetImageCaptcha)

		// 访客自助登记
		visitors := apiV1.Group("/visitors")
		{
			visitors.POST("/send-otp", RateLimitMiddleware(redisClient, otpRule, contactKey), publicHandler.SendVisitorOtp)
			visitors.POST("/verify-otp", RateLimitMiddleware(redisClient, verifyOtpRule, contactKey), publicHandler.VerifyVisitorOtp)
			visitors.POST("/submit-details", publicHandler.SubmitVisitorDetails)
			visitors.POST("/submit-without-otp", publicHandler.SubmitVisitorWithoutOtp)
		}

		// 前台值守：扫码与审核
		desk := apiV1.Group("/visitors", requireAdmin...)
		{
			desk.POST("/qr-scan", adminHandler.ScanVisitorQRCode)
			desk.PUT("/approve/:id", adminHandler.ApproveVisitor)
			desk.PUT("/reject/:id", adminHandler.RejectVisitor)
			desk.GET("/verify-details/:id", adminHandler.VerifyVisitorDetails)
		}

		dropdown := apiV1.Group("/dropdown")
		{
			dropdown.GET("/companies", publicHandler.DropdownCompanies)
			dropdown.GET("/departments", publicHandler.DropdownDepartments)
			dropdown.GET("/designations", publicHandler.DropdownDesignations)
			dropdown.GET("/employees", publicHandler.DropdownEmployees)
			dropdown.GET("/purposes", publicHandler.DropdownPurposes)
		}

		// 访客凭验证码查询预约
		appointments := apiV1.Group("/appointments")
		{
			appointments.POST("/send-code", RateLimitMiddleware(redisClient, lookupRule, contactKey), publicHandler.SendAppointmentLookupCode)
			appointments.POST("/verify-code", publicHandler.VerifyAppointmentLookupCode)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			authorized := admin.Use(requireAdmin...)
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAuthzAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAuthzAdmin)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})

				// 组织架构
				authorized.GET("/companies", adminHandler.ListCompanies)
				authorized.POST("/companies", adminHandler.CreateCompany)
				authorized.PUT("/companies/:id", adminHandler.UpdateCompany)
				authorized.GET("/departments", adminHandler.ListDepartments)
				authorized.POST("/departments", adminHandler.CreateDepartment)
				authorized.PUT("/departments/:id", adminHandler.UpdateDepartment)
				authorized.DELETE("/departments/:id", adminHandler.DeactivateDepartment)
				authorized.GET("/designations", adminHandler.ListDesignations)
				authorized.POST("/designations", adminHandler.CreateDesignation)
				authorized.PUT("/designations/:id", adminHandler.UpdateDesignation)
				authorized.DELETE("/designations/:id", adminHandler.DeactivateDesignation)
				authorized.GET("/employees", adminHandler.ListEmployees)
				authorized.POST("/employees", adminHandler.CreateEmployee)
				authorized.GET("/employees/:id", adminHandler.GetEmployee)
				authorized.PUT("/employees/:id", adminHandler.UpdateEmployee)
				authorized.GET("/purposes", adminHandler.ListPurposes)
				authorized.POST("/purposes", adminHandler.CreatePurpose)
				authorized.PUT("/purposes/:id", adminHandler.UpdatePurpose)
				authorized.DELETE("/purposes/:id", adminHandler.DeletePurpose)

				// 访客管理
				authorized.GET("/visitors", adminHandler.ListVisitors)
				authorized.GET("/visitors/:id", adminHandler.GetVisitor)
				authorized.PUT("/visitors/:id", adminHandler.UpdateVisitor)
				authorized.PUT("/visitors/:id/status", adminHandler.UpdateVisitorStatus)
				authorized.GET("/visitors/:id/card", adminHandler.GetVisitorCard)
				authorized.GET("/visitors/:id/audit-logs", adminHandler.ListVisitorAuditLogs)

				// 预约管理
				authorized.GET("/appointments", adminHandler.ListAppointments)
				authorized.POST("/appointments", adminHandler.CreateAppointment)
				authorized.GET("/appointments/:id", adminHandler.GetAppointment)
				authorized.PUT("/appointments/:id", adminHandler.UpdateAppointment)
				authorized.GET("/appointments/:id/remarks", adminHandler.GetAppointmentRemarks)

				// 仪表盘与报表
				authorized.GET("/dashboard", adminHandler.GetDashboardStats)
				authorized.GET("/reports/visitors", adminHandler.GetVisitorReport)
				authorized.GET("/reports/appointments", adminHandler.GetAppointmentReport)

				authorized.POST("/upload", adminHandler.UploadFile)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !isProtectedRoute(item.Path) {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}

func isProtectedRoute(path string) bool {
	if strings.HasPrefix(path, "/api/v1/admin/") {
		return true
	}
	for _, prefix := range deskRoutePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
