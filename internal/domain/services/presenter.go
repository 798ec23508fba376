package services

import (
	"strconv"

	"sma-hostel-service/internal/domain/models"
)

// NotesPlaceholder 备注缺失时的固定占位文案
const NotesPlaceholder = "No notes"

// StudentRow 列表/导出共用的展示行。
// 编号永远通过解析规则重新计算，不读取任何存储的展示字符串。
type StudentRow struct {
	DisplayID string
	Name      string
	Phone     string
	College   string
	Section   string
	Room      string
	JoinDate  string
	FeeDue    string
	Notes     string
}

// ToStudentRow 把一条学生记录映射为展示行
func ToStudentRow(student *models.Student) StudentRow {
	return StudentRow{
		DisplayID: student.DisplayID(),
		Name:      student.Name,
		Phone:     student.Phone,
		College:   student.College,
		Section:   student.Section,
		Room:      student.Room,
		JoinDate:  student.JoinDate.Format("2006-01-02"),
		FeeDue:    FormatCurrency(student.FeeDue),
		Notes:     FormatNotes(student.Notes),
	}
}

// FormatCurrency 金额加上货币符号
func FormatCurrency(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatNotes 备注为空时用固定占位文案
func FormatNotes(notes string) string {
	if notes == "" {
		return NotesPlaceholder
	}
	return notes
}

// headerRow 导出表头，列顺序固定
func headerRow() []interface{} {
	return []interface{}{"ID", "Name", "Phone", "College", "Section", "Room", "Join Date", "Fee Due", "Notes"}
}

// dataRow 导出数据行，与表头列顺序一致
func dataRow(row StudentRow) []interface{} {
	return []interface{}{
		row.DisplayID,
		row.Name,
		row.Phone,
		row.College,
		row.Section,
		row.Room,
		row.JoinDate,
		row.FeeDue,
		row.Notes,
	}
}
