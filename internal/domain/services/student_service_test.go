package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"sma-hostel-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStudentService 组装带真实依赖的学生服务
func newStudentService(t *testing.T) (InterfaceStudentService, InterfaceSequenceService) {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig()
	seq := NewSequenceService(db)
	ik := NewImageKitService(cfg)
	return NewStudentService(db, cfg, seq, ik), seq
}

func TestCreateStudentAssignsIDAndSerial(t *testing.T) {
	svc, _ := newStudentService(t)

	student := &models.Student{Name: "Rahul Kumar", Room: "A1"}
	require.NoError(t, svc.CreateStudent(student))

	assert.NotEmpty(t, student.ID)
	require.NotNil(t, student.Serial)
	assert.Equal(t, int64(1), *student.Serial)
	assert.Equal(t, "SMA-00001", student.DisplayID())

	second := &models.Student{Name: "Priya Sharma", Room: "B2"}
	require.NoError(t, svc.CreateStudent(second))
	require.NotNil(t, second.Serial)
	assert.Equal(t, int64(2), *second.Serial)
}

func TestCreateStudentDiscardsClientSuppliedIdentity(t *testing.T) {
	svc, _ := newStudentService(t)

	bogus := int64(999)
	student := &models.Student{
		ID:     "client-chosen-id",
		Serial: &bogus,
		Name:   "Rahul Kumar",
		Room:   "A1",
	}
	require.NoError(t, svc.CreateStudent(student))

	// 客户端提交的ID和序列号一律丢弃，由服务端重新分配
	assert.NotEqual(t, "client-chosen-id", student.ID)
	require.NotNil(t, student.Serial)
	assert.Equal(t, int64(1), *student.Serial)
}

func TestCreateStudentRequiresNameAndRoom(t *testing.T) {
	svc, seq := newStudentService(t)

	err := svc.CreateStudent(&models.Student{Room: "A1"})
	assert.ErrorIs(t, err, ErrNameAndRoomRequired)

	err = svc.CreateStudent(&models.Student{Name: "Rahul Kumar"})
	assert.ErrorIs(t, err, ErrNameAndRoomRequired)

	// 校验失败不消费序列号
	current, err := seq.CurrentSerial(models.CounterKeyStudentSerial)
	require.NoError(t, err)
	assert.Equal(t, int64(0), current)
}

func TestCreateStudentRejectsInvalidDocumentType(t *testing.T) {
	svc, _ := newStudentService(t)

	student := &models.Student{
		Name: "Rahul Kumar",
		Room: "A1",
		Documents: []models.StudentDocument{
			{Type: "passport", Name: "passport.pdf"},
		},
	}
	err := svc.CreateStudent(student)
	assert.ErrorIs(t, err, ErrInvalidDocumentType)
}

func TestUpdateStudentIgnoresIdentityFields(t *testing.T) {
	svc, _ := newStudentService(t)

	student := &models.Student{Name: "Rahul Kumar", Room: "A1"}
	require.NoError(t, svc.CreateStudent(student))
	originalID := student.ID
	originalSerial := *student.Serial

	newRoom := "C3"
	updated, err := svc.UpdateStudent(student.ID, &StudentUpdate{Room: &newRoom})
	require.NoError(t, err)

	// 普通字段更新生效，身份字段保持不变
	assert.Equal(t, "C3", updated.Room)
	assert.Equal(t, originalID, updated.ID)
	require.NotNil(t, updated.Serial)
	assert.Equal(t, originalSerial, *updated.Serial)
	assert.Equal(t, "Rahul Kumar", updated.Name)
}

func TestUpdateStudentNotFound(t *testing.T) {
	svc, _ := newStudentService(t)

	name := "Nobody"
	_, err := svc.UpdateStudent("no-such-id", &StudentUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestUpdateStudentReplacesDocuments(t *testing.T) {
	svc, _ := newStudentService(t)

	student := &models.Student{
		Name: "Rahul Kumar",
		Room: "A1",
		Documents: []models.StudentDocument{
			{Type: models.DocumentTypeAadhar, Name: "aadhar.pdf"},
			{Type: models.DocumentTypePan, Name: "pan.pdf"},
		},
	}
	require.NoError(t, svc.CreateStudent(student))

	docs := []models.StudentDocument{
		{Type: models.DocumentTypeCollegeID, Name: "college.pdf"},
	}
	updated, err := svc.UpdateStudent(student.ID, &StudentUpdate{Documents: &docs})
	require.NoError(t, err)

	// 附件列表整体替换
	require.Len(t, updated.Documents, 1)
	assert.Equal(t, models.DocumentTypeCollegeID, updated.Documents[0].Type)
}

func TestDeleteStudent(t *testing.T) {
	svc, _ := newStudentService(t)

	student := &models.Student{Name: "Rahul Kumar", Room: "A1"}
	require.NoError(t, svc.CreateStudent(student))

	require.NoError(t, svc.DeleteStudent(student.ID))

	_, err := svc.GetStudentByID(student.ID)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	// 重复删除返回not found
	assert.ErrorIs(t, svc.DeleteStudent(student.ID), ErrStudentNotFound)
}

func TestDeleteStudentCleansUpRemoteFiles(t *testing.T) {
	db := setupTestDB(t)

	// stub的ImageKit管理API，记录收到的删除请求
	var mu sync.Mutex
	var deletedIDs []string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/v1/files/") {
			mu.Lock()
			deletedIDs = append(deletedIDs, strings.TrimPrefix(r.URL.Path, "/v1/files/"))
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer stub.Close()

	cfg := imageKitTestConfig(stub.URL)
	seq := NewSequenceService(db)
	ik := NewImageKitService(cfg)
	svc := NewStudentService(db, cfg, seq, ik)

	student := &models.Student{
		Name: "Rahul Kumar",
		Room: "A1",
		ProfileImage: models.ProfileImage{
			URL:    "https://ik.imagekit.io/testaccount/photo.jpg",
			FileID: "file_profile_123",
		},
		Documents: []models.StudentDocument{
			{Type: models.DocumentTypeAadhar, FileID: "file_doc_456", Name: "aadhar.pdf"},
			// 本地占位符不能提交给远端API
			{Type: models.DocumentTypePan, FileID: "local_12345", Name: "pan.pdf"},
			{Type: models.DocumentTypeOther, FileID: "x", Name: "short.pdf"},
		},
	}
	require.NoError(t, svc.CreateStudent(student))
	require.NoError(t, svc.DeleteStudent(student.ID))

	mu.Lock()
	defer mu.Unlock()
	// 只有通过校验的文件ID才会发起远端删除
	assert.ElementsMatch(t, []string{"file_profile_123", "file_doc_456"}, deletedIDs)
}

func TestDeleteStudentSurvivesRemoteFailure(t *testing.T) {
	db := setupTestDB(t)

	// 远端始终报错
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer stub.Close()

	cfg := imageKitTestConfig(stub.URL)
	seq := NewSequenceService(db)
	svc := NewStudentService(db, cfg, seq, NewImageKitService(cfg))

	student := &models.Student{
		Name: "Rahul Kumar",
		Room: "A1",
		ProfileImage: models.ProfileImage{
			URL:    "https://ik.imagekit.io/testaccount/photo.jpg",
			FileID: "file_profile_123",
		},
	}
	require.NoError(t, svc.CreateStudent(student))

	// 远端删除失败不阻止记录删除
	require.NoError(t, svc.DeleteStudent(student.ID))
	_, err := svc.GetStudentByID(student.ID)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestBulkDeleteStudents(t *testing.T) {
	svc, _ := newStudentService(t)

	a := &models.Student{Name: "Rahul Kumar", Room: "A1"}
	b := &models.Student{Name: "Priya Sharma", Room: "B2"}
	require.NoError(t, svc.CreateStudent(a))
	require.NoError(t, svc.CreateStudent(b))

	// 无效和不存在的ID静默跳过，只统计实际删除的数量
	deleted, err := svc.BulkDeleteStudents([]string{a.ID, "", "no-such-id", b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	students, err := svc.GetAllStudents()
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestGetAllStudentsEmptyIsNotNil(t *testing.T) {
	svc, _ := newStudentService(t)

	students, err := svc.GetAllStudents()
	require.NoError(t, err)
	// 空列表序列化为[]而不是null
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestClearProfileImages(t *testing.T) {
	svc, _ := newStudentService(t)

	student := &models.Student{
		Name: "Rahul Kumar",
		Room: "A1",
		ProfileImage: models.ProfileImage{
			URL:    "blob:http://localhost/abc",
			FileID: "local_123456",
		},
	}
	require.NoError(t, svc.CreateStudent(student))

	cleared, err := svc.ClearProfileImages([]string{student.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	reloaded, err := svc.GetStudentByID(student.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.ProfileImage.Empty())
}

func TestSeedSampleData(t *testing.T) {
	svc, seq := newStudentService(t)

	require.NoError(t, svc.SeedSampleData())

	students, err := svc.GetAllStudents()
	require.NoError(t, err)
	assert.Len(t, students, 2)

	// 演示数据走正常创建路径，消费序列号
	current, err := seq.CurrentSerial(models.CounterKeyStudentSerial)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)
}
