package container

import (
	"sync"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	config *config.Config
	state  *services.AppState

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 协作方服务
	emailService services.InterfaceEmailService
	eventService services.InterfaceEventService
	imageService services.InterfaceImageService

	// 业务服务
	incidentService     services.InterfaceIncidentService
	triageService       services.InterfaceTriageService
	registrationService services.InterfaceRegistrationService
	authService         services.InterfaceAuthService
	snapshotService     services.InterfaceSnapshotService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(cfg *config.Config) *ServiceContainer {
	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)

	// 测试Redis连接；失败时引擎仍可运行，只是状态不落盘
	var persister services.Persister
	if err := c.redisService.Ping(); err != nil {
		logger.Warning("Redis连接测试失败: %v，状态将不持久化", err)
	} else {
		persister = c.redisService
	}

	// 初始化应用状态并从持久化协作方恢复
	c.state = services.NewAppState(persister)
	c.snapshotService = services.NewSnapshotService(c.state, persister)
	if err := c.snapshotService.Load(); err != nil {
		logger.Warning("状态恢复失败: %v，使用初始状态", err)
	}

	// 初始化协作方服务
	c.emailService = services.NewEmailService(c.config)
	c.imageService = services.NewImageService()
	c.eventService = services.NewMQTTEventService(c.config)
	if err := c.eventService.Connect(); err != nil {
		logger.Warning("MQTT事件推送连接失败: %v", err)
	}

	// 初始化业务服务
	c.incidentService = services.NewIncidentService(c.state, c.config, c.eventService)
	c.triageService = services.NewTriageService(c.state)
	c.registrationService = services.NewRegistrationService(c.state, c.emailService)
	c.authService = services.NewAuthService(c.config, c.jwtService, c.registrationService, c.redisService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "email":
		return c.emailService
	case "events":
		return c.eventService
	case "image":
		return c.imageService
	case "incident":
		return c.incidentService
	case "triage":
		return c.triageService
	case "registration":
		return c.registrationService
	case "auth":
		return c.authService
	case "snapshot":
		return c.snapshotService
	default:
		return nil
	}
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}
