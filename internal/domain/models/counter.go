package models

// CounterKeyStudentSerial 学生序列号计数器的固定键
const CounterKeyStudentSerial = "student_serial"

// Counter 单行计数器，保存某个领域最后发放的序列号。
// 只增不减，首次分配时惰性创建，永不删除。
type Counter struct {
	Key string `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Seq int64  `gorm:"not null;default:0" json:"seq"`
}

// TableName 指定表名
func (Counter) TableName() string {
	return "counters"
}
