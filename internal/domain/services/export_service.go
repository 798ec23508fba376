package services

import (
	"sma-hostel-service/internal/domain/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// 导出文件的固定文件名和MIME类型
const (
	ExportFileName    = "students.xlsx"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheetName   = "Students"
)

// 导出列宽，与表头列顺序一致
var exportColumnWidths = []float64{15, 25, 15, 30, 20, 10, 15, 12, 30}

// InterfaceExportService defines the spreadsheet export interface
type InterfaceExportService interface {
	ExportStudents() (*excelize.File, error)
}

// ExportService 把全部学生记录渲染成电子表格快照。
// 相同的记录集合渲染出相同的行内容，列顺序和格式化函数固定。
type ExportService struct {
	DB *gorm.DB
}

// NewExportService 创建一个新的导出服务
func NewExportService(db *gorm.DB) InterfaceExportService {
	return &ExportService{DB: db}
}

// ExportStudents 按序列号升序导出所有学生
func (s *ExportService) ExportStudents() (*excelize.File, error) {
	var students []models.Student
	if err := s.DB.Order("serial ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for i, width := range exportColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	header := headerRow()
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i := range students {
		row := dataRow(ToStudentRow(&students[i]))
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
