package controllers

import (
	"errors"

	"sma-hostel-service/internal/domain/services"
	"sma-hostel-service/internal/domain/services/container"
	"sma-hostel-service/internal/error/code"
	"sma-hostel-service/internal/error/response"
	"sma-hostel-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// JWTController 处理认证相关的请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
// @Summary      管理员登录
// @Description  校验共享管理口令并发放JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "管理口令"
// @Success      200  {object}  services.LoginResult
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "password is required")
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrPasswordIncorrect) {
			response.FailWithMessage(c.Ctx, code.ErrTokenInvalid, err.Error())
			return
		}
		response.ServerError(c.Ctx, err.Error())
		return
	}

	response.Success(c.Ctx, result)
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		default:
			logger.Warning("认证控制器收到无效的方法: %s", method)
			response.ParamError(ctx, "invalid method")
		}
	}
}
