package controllers

import (
	"sma-hostel-service/internal/domain/models"
	"sma-hostel-service/internal/domain/services"
	"sma-hostel-service/internal/domain/services/container"
	"sma-hostel-service/internal/error/code"
	"sma-hostel-service/internal/error/response"
	"sma-hostel-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImageKitController 处理外部存储维护相关的请求
type ImageKitController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewImageKitController 创建一个新的外部存储控制器
func NewImageKitController(ctx *gin.Context, container *container.ServiceContainer) *ImageKitController {
	return &ImageKitController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeleteFileRequest 表示远端文件删除请求
type DeleteFileRequest struct {
	FileID string `json:"fileId" binding:"required"`
}

// InvalidImageItem 表示一条无效的头像引用
type InvalidImageItem struct {
	StudentID string `json:"studentId"`
	DisplayID string `json:"displayId"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	FileID    string `json:"fileId"`
}

// GetAuth 生成客户端直传认证参数
// @Summary      获取上传认证参数
// @Description  生成ImageKit客户端直传所需的token/expire/signature
// @Tags         ImageKit
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      501  {object}  response.ErrorResponse
// @Router       /imagekit/auth [get]
func (c *ImageKitController) GetAuth() {
	imageKitService := c.Container.GetService("imagekit").(services.InterfaceImageKitService)
	if !imageKitService.Enabled() {
		response.Fail(c.Ctx, code.ErrStorageNotConfigured)
		return
	}

	params, err := imageKitService.AuthParams()
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}
	response.Success(c.Ctx, params)
}

// GetInvalidImages 列出无效的头像引用
// @Summary      列出无效头像引用
// @Description  扫描所有学生记录，找出本地占位符或blob形式的头像引用
// @Tags         ImageKit
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  response.ErrorResponse
// @Router       /imagekit/invalid-images [get]
func (c *ImageKitController) GetInvalidImages() {
	items, err := c.collectInvalidImages()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, gin.H{
		"count": len(items),
		"items": items,
	})
}

// ClearInvalidImages 清空无效的头像引用
// @Summary      清空无效头像引用
// @Description  找出无效的头像引用并在数据库中清空，迫使客户端重新上传
// @Tags         ImageKit
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  response.ErrorResponse
// @Router       /imagekit/invalid-images/clear [post]
func (c *ImageKitController) ClearInvalidImages() {
	items, err := c.collectInvalidImages()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.StudentID)
	}

	var cleared int64
	if len(ids) > 0 {
		studentService := c.Container.GetService("student").(services.InterfaceStudentService)
		cleared, err = studentService.ClearProfileImages(ids)
		if err != nil {
			response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
			return
		}
	}

	if redisService := c.Container.GetRedisService(); redisService != nil {
		redisService.InvalidateStudentList()
	}
	response.Success(c.Ctx, gin.H{"cleared": cleared})
}

// DeleteFile 删除远端文件
// @Summary      删除远端文件
// @Description  按文件ID删除外部存储里的文件，无效的文件ID直接拒绝
// @Tags         ImageKit
// @Accept       json
// @Produce      json
// @Param        request body DeleteFileRequest true "文件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Failure      501  {object}  response.ErrorResponse
// @Router       /imagekit/delete [post]
func (c *ImageKitController) DeleteFile() {
	var req DeleteFileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrStorageFileIDRequired)
		return
	}

	imageKitService := c.Container.GetService("imagekit").(services.InterfaceImageKitService)
	if !imageKitService.Enabled() {
		response.Fail(c.Ctx, code.ErrStorageNotConfigured)
		return
	}
	if !imageKitService.IsValidFileID(req.FileID) {
		response.ParamError(c.Ctx, "fileId is not a deletable remote file id")
		return
	}

	if err := imageKitService.DeleteFile(req.FileID); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrStorageDelete, err.Error())
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": true})
}

// collectInvalidImages 扫描学生表，收集无效的头像引用
func (c *ImageKitController) collectInvalidImages() ([]InvalidImageItem, error) {
	db := c.Container.GetService("db").(*gorm.DB)
	imageKitService := c.Container.GetService("imagekit").(services.InterfaceImageKitService)

	var students []models.Student
	if err := db.Find(&students).Error; err != nil {
		return nil, err
	}

	items := make([]InvalidImageItem, 0)
	for i := range students {
		if imageKitService.IsInvalidStoredImage(students[i].ProfileImage) {
			items = append(items, InvalidImageItem{
				StudentID: students[i].ID,
				DisplayID: students[i].DisplayID(),
				Name:      students[i].Name,
				URL:       students[i].ProfileImage.URL,
				FileID:    students[i].ProfileImage.FileID,
			})
		}
	}
	return items, nil
}

// HandleImageKitFunc 返回一个处理外部存储请求的Gin处理函数
func HandleImageKitFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewImageKitController(ctx, container)

		switch method {
		case "getAuth":
			controller.GetAuth()
		case "getInvalidImages":
			controller.GetInvalidImages()
		case "clearInvalidImages":
			controller.ClearInvalidImages()
		case "deleteFile":
			controller.DeleteFile()
		default:
			logger.Warning("外部存储控制器收到无效的方法: %s", method)
			response.ParamError(ctx, "invalid method")
		}
	}
}
