package container

import (
	"context"
	"log"
	"sync"
	"time"

	"sma-hostel-service/internal/domain/services"
	"sma-hostel-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 外部存储服务
	imageKitService services.InterfaceImageKitService

	// 业务服务
	sequenceService services.InterfaceSequenceService
	studentService  services.InterfaceStudentService
	exportService   services.InterfaceExportService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
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

	// Redis不可用时列表缓存整体禁用
	if c.redis != nil {
		c.redisService = services.NewRedisService(c.config)
	}

	// 初始化外部存储服务
	c.imageKitService = services.NewImageKitService(c.config)

	// 初始化业务服务
	c.sequenceService = services.NewSequenceService(c.db)
	c.studentService = services.NewStudentService(c.db, c.config, c.sequenceService, c.imageKitService)
	c.exportService = services.NewExportService(c.db)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "imagekit":
		return c.imageKitService
	case "sequence":
		return c.sequenceService
	case "student":
		return c.studentService
	case "export":
		return c.exportService
	default:
		return nil
	}
}

// GetRedisService 获取Redis服务，可能为nil
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
