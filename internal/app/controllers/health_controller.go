package controllers

import (
	"time"

	"sma-hostel-service/internal/domain/services/container"
	"sma-hostel-service/internal/error/response"
	"sma-hostel-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthController 处理健康检查请求
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建一个新的健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// Ping 健康检查
// @Summary      健康检查
// @Description  返回服务存活状态
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /ping [get]
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{
		"message": "pong",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Status 返回服务及依赖的健康状态
// @Summary      服务状态
// @Description  返回数据库和Redis的连接状态
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/status [get]
func (c *HealthController) Status() {
	dbStatus := "ok"
	if sqlDB, err := c.Container.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "disabled"
	if c.Container.GetRedisService() != nil {
		redisStatus = "ok"
	}

	response.Success(c.Ctx, gin.H{
		"status": "up",
		"db":     dbStatus,
		"redis":  redisStatus,
	})
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			logger.Warning("健康检查控制器收到无效的方法: %s", method)
			response.ParamError(ctx, "invalid method")
		}
	}
}
