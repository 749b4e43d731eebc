package provider

import (
	"github.com/vms-next/internal/authz"
	"github.com/vms-next/internal/cache"
	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/queue"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo           repository.AdminRepository
	AuthzAuditLogRepo   repository.AuthzAuditLogRepository
	CompanyRepo         repository.CompanyRepository
	DepartmentRepo      repository.DepartmentRepository
	DesignationRepo     repository.DesignationRepository
	EmployeeRepo        repository.EmployeeRepository
	PurposeRepo         repository.PurposeRepository
	VisitorRepo         repository.VisitorRepository
	TempVisitorRepo     repository.TempVisitorRepository
	VisitorAuditLogRepo repository.VisitorAuditLogRepository
	AppointmentRepo     repository.AppointmentRepository
	VerifyCodeRepo      repository.VerifyCodeRepository
	DashboardRepo       repository.DashboardRepository
	ReportRepo          repository.ReportRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	AuthzAuditService   *service.AuthzAuditService
	EmailService        *service.EmailService
	SmsService          *service.SmsService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	NotificationService *service.NotificationService
	DirectoryService    *service.DirectoryService
	OtpService          *service.OtpService
	VisitorService      *service.VisitorService
	ScanService         *service.ScanService
	AppointmentService  *service.AppointmentService
	DashboardService    *service.DashboardService
	ReportService       *service.ReportService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 队列不可用时通知退化为进程内投递
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
	c.CompanyRepo = repository.NewCompanyRepository(db)
	c.DepartmentRepo = repository.NewDepartmentRepository(db)
	c.DesignationRepo = repository.NewDesignationRepository(db)
	c.EmployeeRepo = repository.NewEmployeeRepository(db)
	c.PurposeRepo = repository.NewPurposeRepository(db)
	c.VisitorRepo = repository.NewVisitorRepository(db)
	c.TempVisitorRepo = repository.NewTempVisitorRepository(db)
	c.VisitorAuditLogRepo = repository.NewVisitorAuditLogRepository(db)
	c.AppointmentRepo = repository.NewAppointmentRepository(db)
	c.VerifyCodeRepo = repository.NewVerifyCodeRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	visitorCfg := &c.Config.Visitor
	encoder := service.NewQRCodeEncoder()

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.SmsService = service.NewSmsService(&c.Config.SMS)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(&c.Config.Upload)
	c.NotificationService = service.NewNotificationService(
		visitorCfg,
		c.QueueClient,
		c.EmailService,
		c.SmsService,
		c.VisitorRepo,
		c.EmployeeRepo,
		c.AppointmentRepo,
	)
	c.DirectoryService = service.NewDirectoryService(c.CompanyRepo, c.DepartmentRepo, c.DesignationRepo, c.EmployeeRepo, c.PurposeRepo)
	c.OtpService = service.NewOtpService(visitorCfg, c.TempVisitorRepo, c.NotificationService)
	c.VisitorService = service.NewVisitorService(visitorCfg, c.VisitorRepo, c.TempVisitorRepo, c.VisitorAuditLogRepo, encoder, c.NotificationService)
	c.ScanService = service.NewScanService(visitorCfg, c.VisitorRepo, c.VisitorAuditLogRepo)
	c.AppointmentService = service.NewAppointmentService(visitorCfg, c.AppointmentRepo, c.VisitorRepo, c.VisitorAuditLogRepo, c.VerifyCodeRepo, encoder, c.NotificationService)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.ReportService = service.NewReportService(c.ReportRepo)
}
