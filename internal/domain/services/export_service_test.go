package services

import (
	"testing"
	"time"

	"sma-hostel-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedExportStudents(t *testing.T, db *gorm.DB) {
	t.Helper()

	seq := NewSequenceService(db)
	cfg := testConfig()
	svc := NewStudentService(db, cfg, seq, NewImageKitService(cfg))

	students := []*models.Student{
		{
			Name:     "Rahul Kumar",
			Phone:    "9876543210",
			Room:     "A1",
			College:  "Delhi University",
			Section:  "B.Tech CSE",
			JoinDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			FeeDue:   5000,
			Notes:    "Paid advance",
		},
		{
			Name:     "Priya Sharma",
			Room:     "B2",
			JoinDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			FeeDue:   0,
		},
	}
	for _, s := range students {
		require.NoError(t, svc.CreateStudent(s))
	}
}

func TestExportStudentsContent(t *testing.T) {
	db := setupTestDB(t)
	seedExportStudents(t, db)

	svc := NewExportService(db)
	f, err := svc.ExportStudents()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 表头固定列顺序
	assert.Equal(t,
		[]string{"ID", "Name", "Phone", "College", "Section", "Room", "Join Date", "Fee Due", "Notes"},
		rows[0])

	// 按序列号升序，编号走统一解析规则
	assert.Equal(t, "SMA-00001", rows[1][0])
	assert.Equal(t, "Rahul Kumar", rows[1][1])
	assert.Equal(t, "2024-01-15", rows[1][6])
	assert.Equal(t, "₹5000", rows[1][7])
	assert.Equal(t, "Paid advance", rows[1][8])

	assert.Equal(t, "SMA-00002", rows[2][0])
	// 备注缺失时用固定占位文案
	assert.Equal(t, NotesPlaceholder, rows[2][8])
	assert.Equal(t, "₹0", rows[2][7])
}

func TestExportStudentsDeterministic(t *testing.T) {
	db := setupTestDB(t)
	seedExportStudents(t, db)

	svc := NewExportService(db)

	// 相同的记录集合渲染出相同的单元格内容
	f1, err := svc.ExportStudents()
	require.NoError(t, err)
	defer f1.Close()
	f2, err := svc.ExportStudents()
	require.NoError(t, err)
	defer f2.Close()

	rows1, err := f1.GetRows("Students")
	require.NoError(t, err)
	rows2, err := f2.GetRows("Students")
	require.NoError(t, err)

	assert.Equal(t, rows1, rows2)
}

func TestExportStudentsEmpty(t *testing.T) {
	db := setupTestDB(t)

	svc := NewExportService(db)
	f, err := svc.ExportStudents()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)

	// 空系统只有表头
	require.Len(t, rows, 1)
	assert.Equal(t, "ID", rows[0][0])
}
