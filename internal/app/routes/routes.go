package routes

import (
	"sma-hostel-service/internal/app/controllers"
	"sma-hostel-service/internal/app/middleware"
	"sma-hostel-service/internal/domain/services/container"
	"sma-hostel-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
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
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 演示数据路由挂在根路径下，与API前缀分开
	r.POST("/seed", controllers.HandleStudentFunc(container, "seedStudents"))

	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许50个请求，最多突发100个请求
	api.Use(middleware.RateLimiter())

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))

	// 学生路由
	studentGroup := api.Group("/students")
	{
		studentGroup.GET("", controllers.HandleStudentFunc(container, "getStudents"))
		studentGroup.POST("", controllers.HandleStudentFunc(container, "createStudent"))
		studentGroup.PUT("/:id", controllers.HandleStudentFunc(container, "updateStudent"))
		studentGroup.DELETE("/:id", controllers.HandleStudentFunc(container, "deleteStudent"))
		studentGroup.POST("/bulk-delete", controllers.HandleStudentFunc(container, "bulkDeleteStudents"))
	}

	// 导出路由
	api.GET("/export", controllers.HandleExportFunc(container, "exportStudents"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 外部存储维护路由需要管理员令牌
	auth := api.Group("/imagekit")
	auth.Use(middleware.AuthenticateAdmin())

	auth.GET("/auth", controllers.HandleImageKitFunc(container, "getAuth"))
	auth.GET("/invalid-images", controllers.HandleImageKitFunc(container, "getInvalidImages"))
	auth.POST("/invalid-images/clear", controllers.HandleImageKitFunc(container, "clearInvalidImages"))
	auth.POST("/delete", controllers.HandleImageKitFunc(container, "deleteFile"))
}
