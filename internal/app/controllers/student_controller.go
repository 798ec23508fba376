package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"sma-hostel-service/internal/domain/models"
	"sma-hostel-service/internal/domain/services"
	"sma-hostel-service/internal/domain/services/container"
	"sma-hostel-service/internal/error/code"
	"sma-hostel-service/internal/error/response"
	"sma-hostel-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceStudentController 定义学生控制器接口
type InterfaceStudentController interface {
	GetStudents()
	CreateStudent()
	UpdateStudent()
	DeleteStudent()
	BulkDeleteStudents()
	SeedStudents()
}

// StudentController 处理学生相关的请求
type StudentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStudentController 创建一个新的学生控制器
func NewStudentController(ctx *gin.Context, container *container.ServiceContainer) *StudentController {
	return &StudentController{
		Ctx:       ctx,
		Container: container,
	}
}

// StudentRequest 表示创建学生请求；ID和序列号由服务端分配，不接受客户端提交
type StudentRequest struct {
	Name         string                   `json:"name" binding:"required" example:"Rahul Kumar"`
	Phone        string                   `json:"phone" example:"9876543210"`
	Room         string                   `json:"room" binding:"required" example:"A1"`
	College      string                   `json:"college" example:"Delhi University"`
	Section      string                   `json:"section" example:"B.Tech CSE"`
	TempAddress  models.Address           `json:"temp_address"`
	PermAddress  models.Address           `json:"perm_address"`
	Parent       models.Parent            `json:"parent"`
	JoinDate     *time.Time               `json:"join_date"`
	FeeDue       float64                  `json:"fee_due"`
	Notes        string                   `json:"notes"`
	FeesPaid     bool                     `json:"feesPaid"`
	ProfileImage models.ProfileImage      `json:"profileImage"`
	Documents    []models.StudentDocument `json:"documents"`
}

// BulkDeleteRequest 表示批量删除请求
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// GetStudents 获取所有学生
// @Summary      获取学生列表
// @Description  获取全部住宿学生，按创建时间倒序，包含解析后的展示编号
// @Tags         Student
// @Accept       json
// @Produce      json
// @Success      200  {array}   models.Student
// @Failure      500  {object}  response.ErrorResponse
// @Router       /students [get]
func (c *StudentController) GetStudents() {
	// 列表响应有Redis缓存，任何写操作都会使其失效
	redisService := c.Container.GetRedisService()
	if redisService != nil {
		if payload, ok := redisService.GetStudentListJSON(); ok {
			c.Ctx.Data(code.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	studentService := c.Container.GetService("student").(services.InterfaceStudentService)
	students, err := studentService.GetAllStudents()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	payload, err := json.Marshal(students)
	if err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	if redisService != nil {
		redisService.SetStudentListJSON(payload)
	}
	c.Ctx.Data(code.StatusOK, "application/json; charset=utf-8", payload)
}

// CreateStudent 创建新学生
// @Summary      创建学生
// @Description  创建新的住宿学生记录，服务端分配不透明ID和序列号
// @Tags         Student
// @Accept       json
// @Produce      json
// @Param        request body StudentRequest true "学生信息 - 姓名和房间号为必填"
// @Success      201  {object}  models.Student
// @Failure      400  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /students [post]
func (c *StudentController) CreateStudent() {
	var req StudentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	student := &models.Student{
		Name:         req.Name,
		Phone:        req.Phone,
		Room:         req.Room,
		College:      req.College,
		Section:      req.Section,
		TempAddress:  req.TempAddress,
		PermAddress:  req.PermAddress,
		Parent:       req.Parent,
		FeeDue:       req.FeeDue,
		Notes:        req.Notes,
		FeesPaid:     req.FeesPaid,
		ProfileImage: req.ProfileImage,
		Documents:    req.Documents,
	}
	if req.JoinDate != nil {
		student.JoinDate = *req.JoinDate
	}

	studentService := c.Container.GetService("student").(services.InterfaceStudentService)
	if err := studentService.CreateStudent(student); err != nil {
		switch {
		case errors.Is(err, services.ErrNameAndRoomRequired),
			errors.Is(err, services.ErrInvalidDocumentType):
			response.ParamError(c.Ctx, err.Error())
		case errors.Is(err, services.ErrAllocationFailed):
			// 分配失败必须中止创建，绝不落库没有序列号的记录
			response.Fail(c.Ctx, code.ErrAllocation)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		}
		return
	}

	c.invalidateListCache()
	response.Created(c.Ctx, student)
}

// UpdateStudent 更新学生信息
// @Summary      更新学生
// @Description  部分更新学生记录；不透明ID和序列号不可修改，提交的值会被忽略
// @Tags         Student
// @Accept       json
// @Produce      json
// @Param        id path string true "学生ID"
// @Param        request body services.StudentUpdate true "更新的字段"
// @Success      200  {object}  models.Student
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /students/{id} [put]
func (c *StudentController) UpdateStudent() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.Fail(c.Ctx, code.ErrStudentIDRequired)
		return
	}

	var upd services.StudentUpdate
	if err := c.Ctx.ShouldBindJSON(&upd); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	studentService := c.Container.GetService("student").(services.InterfaceStudentService)
	student, err := studentService.UpdateStudent(id, &upd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNotFound):
			response.NotFound(c.Ctx, err.Error())
		case errors.Is(err, services.ErrInvalidDocumentType):
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		}
		return
	}

	c.invalidateListCache()
	response.Success(c.Ctx, student)
}

// DeleteStudent 删除学生
// @Summary      删除学生
// @Description  删除指定学生，并尽力清理外部存储里的头像和证件附件
// @Tags         Student
// @Accept       json
// @Produce      json
// @Param        id path string true "学生ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  response.ErrorResponse
// @Router       /students/{id} [delete]
func (c *StudentController) DeleteStudent() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.Fail(c.Ctx, code.ErrStudentIDRequired)
		return
	}

	studentService := c.Container.GetService("student").(services.InterfaceStudentService)
	if err := studentService.DeleteStudent(id); err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			response.NotFound(c.Ctx, err.Error())
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	c.invalidateListCache()
	response.Success(c.Ctx, gin.H{"deleted": true})
}

// BulkDeleteStudents 批量删除学生
// @Summary      批量删除学生
// @Description  按ID集合批量删除，无效或不存在的ID静默跳过，返回实际删除数量
// @Tags         Student
// @Accept       json
// @Produce      json
// @Param        request body BulkDeleteRequest true "要删除的学生ID列表"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  response.ErrorResponse
// @Router       /students/bulk-delete [post]
func (c *StudentController) BulkDeleteStudents() {
	var req BulkDeleteRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		response.Fail(c.Ctx, code.ErrBulkIDsRequired)
		return
	}

	studentService := c.Container.GetService("student").(services.InterfaceStudentService)
	deleted, err := studentService.BulkDeleteStudents(req.IDs)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	c.invalidateListCache()
	response.Success(c.Ctx, gin.H{"deleted": deleted})
}

// SeedStudents 插入演示数据
// @Summary      插入演示数据
// @Description  插入固定的演示学生，每条都走正常创建路径并消费一个序列号
// @Tags         Student
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  response.ErrorResponse
// @Router       /seed [post]
func (c *StudentController) SeedStudents() {
	studentService := c.Container.GetService("student").(services.InterfaceStudentService)
	if err := studentService.SeedSampleData(); err != nil {
		response.ServerError(c.Ctx, err.Error())
		return
	}

	c.invalidateListCache()
	response.Success(c.Ctx, gin.H{"message": "Sample data added successfully"})
}

// invalidateListCache 写操作后废弃列表缓存
func (c *StudentController) invalidateListCache() {
	if redisService := c.Container.GetRedisService(); redisService != nil {
		redisService.InvalidateStudentList()
	}
}

// HandleStudentFunc 返回一个处理学生请求的Gin处理函数
func HandleStudentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStudentController(ctx, container)

		switch method {
		case "getStudents":
			controller.GetStudents()
		case "createStudent":
			controller.CreateStudent()
		case "updateStudent":
			controller.UpdateStudent()
		case "deleteStudent":
			controller.DeleteStudent()
		case "bulkDeleteStudents":
			controller.BulkDeleteStudents()
		case "seedStudents":
			controller.SeedStudents()
		default:
			logger.Warning("学生控制器收到无效的方法: %s", method)
			response.ParamError(ctx, "invalid method")
		}
	}
}
