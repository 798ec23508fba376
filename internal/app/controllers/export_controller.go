package controllers

import (
	"fmt"

	"sma-hostel-service/internal/domain/services"
	"sma-hostel-service/internal/domain/services/container"
	"sma-hostel-service/internal/error/code"
	"sma-hostel-service/internal/error/response"
	"sma-hostel-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ExportController 处理导出相关的请求
type ExportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewExportController 创建一个新的导出控制器
func NewExportController(ctx *gin.Context, container *container.ServiceContainer) *ExportController {
	return &ExportController{
		Ctx:       ctx,
		Container: container,
	}
}

// ExportStudents 导出学生表格
// @Summary      导出学生表格
// @Description  将全部学生导出为xlsx文件，按序列号升序，固定列顺序
// @Tags         Export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  response.ErrorResponse
// @Router       /export [get]
func (c *ExportController) ExportStudents() {
	exportService := c.Container.GetService("export").(services.InterfaceExportService)
	f, err := exportService.ExportStudents()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrExportFailed, err.Error())
		return
	}
	defer f.Close()

	c.Ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ExportFileName))
	c.Ctx.Header("Content-Type", services.ExportContentType)
	c.Ctx.Status(code.StatusOK)

	if err := f.Write(c.Ctx.Writer); err != nil {
		// 响应头已经写出，这里只能记日志
		logger.Error("写出导出文件失败: %v", err)
	}
}

// HandleExportFunc 返回一个处理导出请求的Gin处理函数
func HandleExportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewExportController(ctx, container)

		switch method {
		case "exportStudents":
			controller.ExportStudents()
		default:
			logger.Warning("导出控制器收到无效的方法: %s", method)
			response.ParamError(ctx, "invalid method")
		}
	}
}
