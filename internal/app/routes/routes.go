package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kannnkannn-debug/school-facility-maintenance-system/docs"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/app/controllers"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/app/middleware"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码（泰文数据必需）
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册登录用户路由
	registerAuthenticatedRoutes(api, container)
	// 注册维修人员路由
	registerStaffRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查路由
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由
	api.POST("/auth/login", controllers.HandleAuthFunc(container, "login"))
	api.POST("/auth/guest", controllers.HandleAuthFunc(container, "guestLogin"))

	// 注册申请路由，带限流防止刷号
	api.POST("/register", middleware.RateLimiter(), controllers.HandleRegistrationFunc(container, "register"))

	// 固定目录路由
	api.GET("/buildings", controllers.HandleCatalogFunc(container, "getBuildings"))
	api.GET("/parts", controllers.HandleCatalogFunc(container, "getParts"))
	api.GET("/grade-levels", controllers.HandleCatalogFunc(container, "getGradeLevels"))
}

// registerAuthenticatedRoutes 注册所有登录用户可用的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateUser())

	// 报修单路由
	auth.GET("/incidents", controllers.HandleIncidentFunc(container, "getIncidents"))
	auth.GET("/incidents/:id", controllers.HandleIncidentFunc(container, "getIncident"))
	auth.POST("/incidents", controllers.HandleIncidentFunc(container, "createIncident"))

	// 附件预处理路由
	auth.POST("/uploads/image", controllers.HandleIncidentFunc(container, "uploadImage"))

	// 通知角标路由
	auth.GET("/notifications", controllers.HandleDashboardFunc(container, "getNotifications"))

	// 登出路由
	auth.POST("/auth/logout", controllers.HandleAuthFunc(container, "logout"))
}

// registerStaffRoutes 注册维修人员（技工与管理员）路由
func registerStaffRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	staff := api.Group("/")
	staff.Use(middleware.AuthenticateStaff())

	// 完工路由（技工只能完工本团队工单，控制器内校验）
	staff.POST("/incidents/:id/complete", controllers.HandleIncidentFunc(container, "completeIncident"))

	// 维修团队路由
	staff.GET("/teams", controllers.HandleTeamFunc(container, "getTeams"))
	staff.GET("/teams/:id/job", controllers.HandleTeamFunc(container, "getTeamJob"))
}

// registerAdminRoutes 注册管理员专用路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateSystemAdmin())

	// 派单与台账管理路由
	admin.POST("/incidents/:id/assign", controllers.HandleIncidentFunc(container, "assignIncident"))
	admin.POST("/incidents/:id/rush", controllers.HandleIncidentFunc(container, "rushIncident"))
	admin.DELETE("/incidents/:id", controllers.HandleIncidentFunc(container, "deleteIncident"))

	// 注册审批路由
	admin.GET("/users", controllers.HandleRegistrationFunc(container, "getUsers"))
	admin.POST("/users/:username/approve", controllers.HandleRegistrationFunc(container, "approveUser"))
	admin.POST("/users/:username/reject", controllers.HandleRegistrationFunc(container, "rejectUser"))

	// 统计面板路由
	admin.GET("/summary/weekly", controllers.HandleDashboardFunc(container, "getWeeklySummary"))
	admin.GET("/summary/parts", controllers.HandleDashboardFunc(container, "getPartsSummary"))
	admin.GET("/summary/buildings", controllers.HandleDashboardFunc(container, "getBuildingSummary"))

	// 系统运维路由
	admin.GET("/system/export", controllers.HandleSystemFunc(container, "exportData"))
	admin.POST("/system/import", controllers.HandleSystemFunc(container, "importData"))
	admin.POST("/system/reset", controllers.HandleSystemFunc(container, "resetSystem"))
}
