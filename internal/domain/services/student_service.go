package services

import (
	"errors"
	"fmt"
	"time"

	"sma-hostel-service/internal/domain/models"
	"sma-hostel-service/internal/infrastructure/config"
	"sma-hostel-service/pkg/logger"

	"gorm.io/gorm"
)

var (
	// ErrStudentNotFound 学生记录不存在
	ErrStudentNotFound = errors.New("Student not found")
	// ErrNameAndRoomRequired 必填字段缺失
	ErrNameAndRoomRequired = errors.New("name and room are required")
	// ErrInvalidDocumentType 证件类型不在封闭集合内
	ErrInvalidDocumentType = errors.New("invalid document type")
)

// InterfaceStudentService defines the student repository interface
type InterfaceStudentService interface {
	GetAllStudents() ([]models.Student, error)
	GetStudentByID(id string) (*models.Student, error)
	CreateStudent(student *models.Student) error
	UpdateStudent(id string, upd *StudentUpdate) (*models.Student, error)
	DeleteStudent(id string) error
	BulkDeleteStudents(ids []string) (int64, error)
	ClearProfileImages(ids []string) (int64, error)
	SeedSampleData() error
}

// StudentUpdate 表示部分更新请求；nil字段保持不变。
// 不透明ID和序列号不在其中，客户端对它们的任何修改尝试都会被丢弃。
type StudentUpdate struct {
	Name         *string                   `json:"name"`
	Phone        *string                   `json:"phone"`
	Room         *string                   `json:"room"`
	College      *string                   `json:"college"`
	Section      *string                   `json:"section"`
	TempAddress  *models.Address           `json:"temp_address"`
	PermAddress  *models.Address           `json:"perm_address"`
	Parent       *models.Parent            `json:"parent"`
	JoinDate     *time.Time                `json:"join_date"`
	FeeDue       *float64                  `json:"fee_due"`
	Notes        *string                   `json:"notes"`
	FeesPaid     *bool                     `json:"feesPaid"`
	ProfileImage *models.ProfileImage      `json:"profileImage"`
	Documents    *[]models.StudentDocument `json:"documents"`
}

// StudentService 提供学生记录的增删改查。
// 序列号只在创建路径上分配一次，更新路径永远不碰计数器。
type StudentService struct {
	DB       *gorm.DB
	Config   *config.Config
	Sequence InterfaceSequenceService
	ImageKit InterfaceImageKitService
}

// NewStudentService 创建一个新的学生服务
func NewStudentService(db *gorm.DB, cfg *config.Config, seq InterfaceSequenceService, ik InterfaceImageKitService) InterfaceStudentService {
	return &StudentService{
		DB:       db,
		Config:   cfg,
		Sequence: seq,
		ImageKit: ik,
	}
}

// 1 GetAllStudents 获取所有学生，按创建时间倒序，图片URL规范化为绝对形式
func (s *StudentService) GetAllStudents() ([]models.Student, error) {
	students := make([]models.Student, 0)
	if err := s.DB.Preload("Documents").Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, err
	}

	for i := range students {
		s.ImageKit.NormalizeStudent(&students[i])
	}
	return students, nil
}

// 2 GetStudentByID 根据ID获取学生
func (s *StudentService) GetStudentByID(id string) (*models.Student, error) {
	var student models.Student
	if err := s.DB.Preload("Documents").First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// 3 CreateStudent 创建新学生。不透明ID和序列号由服务端分配，
// 客户端提交的值一律丢弃；序列号分配失败时整个创建中止，
// 绝不落库一条没有序列号的新记录。
func (s *StudentService) CreateStudent(student *models.Student) error {
	// 服务端分配的字段，清掉客户端提交的任何值
	student.ID = ""
	student.Serial = nil

	if student.Name == "" || student.Room == "" {
		return ErrNameAndRoomRequired
	}
	for _, doc := range student.Documents {
		if doc.Type != "" && !models.IsValidDocumentType(doc.Type) {
			return fmt.Errorf("%w: %s", ErrInvalidDocumentType, doc.Type)
		}
	}

	serial, err := s.Sequence.NextSerial(models.CounterKeyStudentSerial)
	if err != nil {
		return err
	}
	student.Serial = &serial

	for i := range student.Documents {
		if student.Documents[i].UploadedAt.IsZero() {
			student.Documents[i].UploadedAt = time.Now()
		}
	}

	return s.DB.Create(student).Error
}

// 4 UpdateStudent 部分更新学生信息；对不透明ID和序列号的修改被静默丢弃
func (s *StudentService) UpdateStudent(id string, upd *StudentUpdate) (*models.Student, error) {
	student, err := s.GetStudentByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		student.Name = *upd.Name
	}
	if upd.Phone != nil {
		student.Phone = *upd.Phone
	}
	if upd.Room != nil {
		student.Room = *upd.Room
	}
	if upd.College != nil {
		student.College = *upd.College
	}
	if upd.Section != nil {
		student.Section = *upd.Section
	}
	if upd.TempAddress != nil {
		student.TempAddress = *upd.TempAddress
	}
	if upd.PermAddress != nil {
		student.PermAddress = *upd.PermAddress
	}
	if upd.Parent != nil {
		student.Parent = *upd.Parent
	}
	if upd.JoinDate != nil {
		student.JoinDate = *upd.JoinDate
	}
	if upd.FeeDue != nil {
		student.FeeDue = *upd.FeeDue
	}
	if upd.Notes != nil {
		student.Notes = *upd.Notes
	}
	if upd.FeesPaid != nil {
		student.FeesPaid = *upd.FeesPaid
	}
	if upd.ProfileImage != nil {
		student.ProfileImage = *upd.ProfileImage
	}

	if upd.Documents != nil {
		for _, doc := range *upd.Documents {
			if doc.Type != "" && !models.IsValidDocumentType(doc.Type) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidDocumentType, doc.Type)
			}
		}
		// 整体替换附件列表
		if err := s.DB.Where("student_id = ?", id).Delete(&models.StudentDocument{}).Error; err != nil {
			return nil, err
		}
		docs := make([]models.StudentDocument, 0, len(*upd.Documents))
		for _, doc := range *upd.Documents {
			doc.ID = 0
			doc.StudentID = id
			if doc.UploadedAt.IsZero() {
				doc.UploadedAt = time.Now()
			}
			docs = append(docs, doc)
		}
		student.Documents = docs
	}

	if err := s.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(student).Error; err != nil {
		return nil, err
	}

	return s.GetStudentByID(id)
}

// 5 DeleteStudent 删除学生，先尽力清理外部存储里的关联文件。
// 远端删除失败只记日志，不影响记录本身的删除。
func (s *StudentService) DeleteStudent(id string) error {
	student, err := s.GetStudentByID(id)
	if err != nil {
		return err
	}

	s.cleanupRemoteFiles(student)

	if err := s.DB.Where("student_id = ?", id).Delete(&models.StudentDocument{}).Error; err != nil {
		return err
	}
	return s.DB.Delete(&models.Student{}, "id = ?", id).Error
}

// 6 BulkDeleteStudents 批量删除，无效或不存在的ID跳过，返回实际删除数量
func (s *StudentService) BulkDeleteStudents(ids []string) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := s.DeleteStudent(id); err != nil {
			if errors.Is(err, ErrStudentNotFound) {
				continue
			}
			logger.Error("批量删除学生 %s 失败: %v", id, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// ClearProfileImages 清空指定学生的头像引用，用于强制重新上传
func (s *StudentService) ClearProfileImages(ids []string) (int64, error) {
	result := s.DB.Model(&models.Student{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"profile_image_url":           "",
			"profile_image_file_id":       "",
			"profile_image_name":          "",
			"profile_image_optimized_url": "",
		})
	return result.RowsAffected, result.Error
}

// cleanupRemoteFiles 尽力删除头像和证件附件的远端文件，
// 本地占位符等不安全的文件ID直接跳过
func (s *StudentService) cleanupRemoteFiles(student *models.Student) {
	if !s.ImageKit.Enabled() {
		return
	}

	if fileID := student.ProfileImage.FileID; fileID != "" {
		if s.ImageKit.IsValidFileID(fileID) {
			if err := s.ImageKit.DeleteFile(fileID); err != nil {
				logger.Error("删除头像远端文件失败 %s: %v", fileID, err)
			}
		} else {
			logger.Warning("跳过无效的头像文件ID: %s", fileID)
		}
	}

	for _, doc := range student.Documents {
		if doc.FileID == "" {
			continue
		}
		if !s.ImageKit.IsValidFileID(doc.FileID) {
			logger.Warning("跳过无效的附件文件ID: %s", doc.FileID)
			continue
		}
		if err := s.ImageKit.DeleteFile(doc.FileID); err != nil {
			logger.Error("删除附件远端文件失败 %s: %v", doc.FileID, err)
		}
	}
}

// 7 SeedSampleData 插入固定的演示数据，每条都走正常创建路径消费一个序列号
func (s *StudentService) SeedSampleData() error {
	samples := []models.Student{
		{
			Name:     "Rahul Kumar",
			Phone:    "9876543210",
			Room:     "A1",
			JoinDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			FeeDue:   5000,
			College:  "Delhi University",
			Section:  "B.Tech CSE",
			TempAddress: models.Address{
				Street: "123 Main Street",
				City:   "New Delhi",
				State:  "Delhi",
				Pin:    "110001",
			},
			PermAddress: models.Address{
				Street: "456 Village Road",
				City:   "Patna",
				State:  "Bihar",
				Pin:    "800001",
			},
			Parent: models.Parent{
				Name:     "Rajesh Kumar",
				Phone:    "8765432109",
				Relation: "Father",
			},
			Notes: "Sample student data",
		},
		{
			Name:     "Priya Sharma",
			Phone:    "8765432109",
			Room:     "B2",
			JoinDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			FeeDue:   4500,
			College:  "JNU",
			Section:  "M.A. English",
			TempAddress: models.Address{
				Street: "789 Park Avenue",
				City:   "New Delhi",
				State:  "Delhi",
				Pin:    "110067",
			},
			PermAddress: models.Address{
				Street: "321 Lake View",
				City:   "Mumbai",
				State:  "Maharashtra",
				Pin:    "400001",
			},
			Parent: models.Parent{
				Name:     "Sunita Sharma",
				Phone:    "7654321098",
				Relation: "Mother",
			},
			Notes: "Another sample student",
		},
	}

	for i := range samples {
		if err := s.CreateStudent(&samples[i]); err != nil {
			return err
		}
	}
	return nil
}
