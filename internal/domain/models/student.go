package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 证件附件类型的封闭集合
const (
	DocumentTypeAadhar    = "aadhar"
	DocumentTypePan       = "pan"
	DocumentTypeCollegeID = "college_id"
	DocumentTypeOther     = "other"
)

// IsValidDocumentType 校验证件类型是否在封闭集合内
func IsValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeAadhar, DocumentTypePan, DocumentTypeCollegeID, DocumentTypeOther:
		return true
	}
	return false
}

// Address 邮寄地址子记录，所有字段可选
type Address struct {
	Street string `gorm:"type:varchar(200)" json:"street"`
	City   string `gorm:"type:varchar(100)" json:"city"`
	State  string `gorm:"type:varchar(100)" json:"state"`
	Pin    string `gorm:"type:varchar(20)" json:"pin"`
}

// Parent 监护人子记录，所有字段可选
type Parent struct {
	Name     string `gorm:"type:varchar(100)" json:"name"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Relation string `gorm:"type:varchar(50)" json:"relation"`
}

// ProfileImage 外部存储中的头像引用，只保存不透明的URL/文件ID对
type ProfileImage struct {
	URL          string `gorm:"type:varchar(500)" json:"url"`
	FileID       string `gorm:"type:varchar(200)" json:"fileId"`
	Name         string `gorm:"type:varchar(200)" json:"name"`
	OptimizedURL string `gorm:"type:varchar(500)" json:"optimizedUrl"`
}

// Empty 判断是否没有任何头像引用
func (p ProfileImage) Empty() bool {
	return p.URL == "" && p.FileID == ""
}

// StudentDocument 学生的证件附件，随学生记录级联删除
type StudentDocument struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	StudentID  string    `gorm:"type:char(36);index;not null" json:"-"`
	Type       string    `gorm:"type:varchar(20)" json:"type"`
	URL        string    `gorm:"type:varchar(500)" json:"url"`
	FileID     string    `gorm:"type:varchar(200)" json:"fileId"`
	Name       string    `gorm:"type:varchar(200)" json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// TableName 指定表名
func (StudentDocument) TableName() string {
	return "student_documents"
}

// Student 住宿学生记录
type Student struct {
	// 不透明ID由服务端在创建时分配，之后不可变
	ID string `gorm:"primaryKey;type:char(36)"`
	// 序列号在创建时分配且仅分配一次；旧数据可能为空
	Serial *int64 `gorm:"uniqueIndex"`

	Name    string `gorm:"type:varchar(100);not null"`
	Phone   string `gorm:"type:varchar(20)"`
	Room    string `gorm:"type:varchar(20);not null"`
	College string `gorm:"type:varchar(200)"`
	Section string `gorm:"type:varchar(100)"`

	TempAddress Address `gorm:"embedded;embeddedPrefix:temp_"`
	PermAddress Address `gorm:"embedded;embeddedPrefix:perm_"`
	Parent      Parent  `gorm:"embedded;embeddedPrefix:parent_"`

	JoinDate time.Time
	FeeDue   float64 `gorm:"default:0"`
	Notes    string  `gorm:"type:text"`
	FeesPaid bool    `gorm:"default:false"`

	ProfileImage ProfileImage `gorm:"embedded;embeddedPrefix:profile_image_"`

	// Relations
	Documents []StudentDocument `gorm:"foreignKey:StudentID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行，分配不透明ID
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.JoinDate.IsZero() {
		s.JoinDate = time.Now()
	}
	return nil
}

// DisplayID 计算记录的展示编号，见 display_id.go 的规范规则
func (s *Student) DisplayID() string {
	return DisplayID(s.Serial, s.ID)
}

// studentJSON 定义对外的JSON形状；displayId 每次序列化时重新计算
type studentJSON struct {
	ID           string            `json:"id"`
	DisplayID    string            `json:"displayId"`
	Serial       *int64            `json:"serial,omitempty"`
	Name         string            `json:"name"`
	Phone        string            `json:"phone"`
	Room         string            `json:"room"`
	College      string            `json:"college"`
	Section      string            `json:"section"`
	TempAddress  Address           `json:"temp_address"`
	PermAddress  Address           `json:"perm_address"`
	Parent       Parent            `json:"parent"`
	JoinDate     time.Time         `json:"join_date"`
	FeeDue       float64           `json:"fee_due"`
	Notes        string            `json:"notes"`
	FeesPaid     bool              `json:"feesPaid"`
	ProfileImage *ProfileImage     `json:"profileImage,omitempty"`
	Documents    []StudentDocument `json:"documents,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// MarshalJSON 序列化时注入 displayId
func (s Student) MarshalJSON() ([]byte, error) {
	out := studentJSON{
		ID:          s.ID,
		DisplayID:   s.DisplayID(),
		Serial:      s.Serial,
		Name:        s.Name,
		Phone:       s.Phone,
		Room:        s.Room,
		College:     s.College,
		Section:     s.Section,
		TempAddress: s.TempAddress,
		PermAddress: s.PermAddress,
		Parent:      s.Parent,
		JoinDate:    s.JoinDate,
		FeeDue:      s.FeeDue,
		Notes:       s.Notes,
		FeesPaid:    s.FeesPaid,
		Documents:   s.Documents,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if !s.ProfileImage.Empty() {
		img := s.ProfileImage
		out.ProfileImage = &img
	}
	return json.Marshal(out)
}

// TableName 指定表名
func (Student) TableName() string {
	return "students"
}
