package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"sma-hostel-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidFileID(t *testing.T) {
	svc := NewImageKitService(testConfig())

	tests := []struct {
		name   string
		fileID string
		want   bool
	}{
		{"正常文件ID", "64f1c2d3e4a5b6c7", true},
		{"空串", "", false},
		{"本地占位符", "local_1699999999", false},
		{"blob URL", "blob:http://localhost/abc", false},
		{"http URL", "http://example.com/file", false},
		{"https URL", "https://example.com/file", false},
		{"大写协议前缀", "HTTPS://example.com/file", false},
		{"带路径分隔符", "folder/file123", false},
		{"过短", "abcd", false},
		{"刚好五个字符", "abcde", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.IsValidFileID(tt.fileID))
		})
	}
}

func TestBuildFullURL(t *testing.T) {
	svc := NewImageKitService(imageKitTestConfig(""))

	// 绝对URL原样返回
	assert.Equal(t,
		"https://ik.imagekit.io/other/photo.jpg",
		svc.BuildFullURL("https://ik.imagekit.io/other/photo.jpg"))

	// 相对路径补全为绝对URL
	assert.Equal(t,
		"https://ik.imagekit.io/testaccount/photo.jpg",
		svc.BuildFullURL("/photo.jpg"))
	assert.Equal(t,
		"https://ik.imagekit.io/testaccount/photo.jpg",
		svc.BuildFullURL("photo.jpg"))

	assert.Equal(t, "", svc.BuildFullURL(""))
}

func TestOptimizedURL(t *testing.T) {
	svc := NewImageKitService(imageKitTestConfig(""))

	// imagekit.io域名在账户段后插入变换参数
	assert.Equal(t,
		"https://ik.imagekit.io/testaccount/tr:w-400,h-400,q-80/photos/student.jpg",
		svc.OptimizedURL("https://ik.imagekit.io/testaccount/photos/student.jpg"))

	// 其他域名原样返回
	assert.Equal(t,
		"https://example.com/photo.jpg",
		svc.OptimizedURL("https://example.com/photo.jpg"))

	// blob URL不处理
	assert.Equal(t, "blob:http://localhost/abc", svc.OptimizedURL("blob:http://localhost/abc"))
	assert.Equal(t, "", svc.OptimizedURL(""))
}

func TestNormalizeStudent(t *testing.T) {
	svc := NewImageKitService(imageKitTestConfig(""))

	student := &models.Student{
		Name: "Rahul Kumar",
		Room: "A1",
		ProfileImage: models.ProfileImage{
			URL:    "/photos/student.jpg",
			FileID: "file_abc123",
		},
		Documents: []models.StudentDocument{
			{Type: models.DocumentTypeAadhar, URL: "/docs/aadhar.pdf"},
		},
	}

	svc.NormalizeStudent(student)

	assert.Equal(t, "https://ik.imagekit.io/testaccount/photos/student.jpg", student.ProfileImage.URL)
	assert.Equal(t,
		"https://ik.imagekit.io/testaccount/tr:w-400,h-400,q-80/photos/student.jpg",
		student.ProfileImage.OptimizedURL)
	assert.Equal(t, "https://ik.imagekit.io/testaccount/docs/aadhar.pdf", student.Documents[0].URL)
}

func TestDeleteFileUsesBasicAuth(t *testing.T) {
	var gotAuth, gotPath string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, _ := r.BasicAuth()
		gotAuth = user
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer stub.Close()

	svc := NewImageKitService(imageKitTestConfig(stub.URL))
	require.NoError(t, svc.DeleteFile("file_abc123"))

	// 私钥做Basic认证用户名，密码为空
	assert.Equal(t, "private_test", gotAuth)
	assert.Equal(t, "/v1/files/file_abc123", gotPath)
}

func TestDeleteFileRemoteError(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer stub.Close()

	svc := NewImageKitService(imageKitTestConfig(stub.URL))
	assert.Error(t, svc.DeleteFile("file_abc123"))
}

func TestDeleteFileRequiresConfiguration(t *testing.T) {
	svc := NewImageKitService(testConfig())
	assert.Error(t, svc.DeleteFile("file_abc123"))
}

func TestAuthParams(t *testing.T) {
	svc := NewImageKitService(imageKitTestConfig(""))

	params, err := svc.AuthParams()
	require.NoError(t, err)

	token, ok := params["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	expire, ok := params["expire"].(int64)
	require.True(t, ok)
	signature, ok := params["signature"].(string)
	require.True(t, ok)

	// 签名必须可以用私钥复算
	mac := hmac.New(sha1.New, []byte("private_test"))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), signature)

	assert.Equal(t, "public_test", params["publicKey"])
}

func TestAuthParamsRequiresConfiguration(t *testing.T) {
	svc := NewImageKitService(testConfig())
	_, err := svc.AuthParams()
	assert.Error(t, err)
}

func TestIsInvalidStoredImage(t *testing.T) {
	svc := NewImageKitService(imageKitTestConfig(""))

	assert.False(t, svc.IsInvalidStoredImage(models.ProfileImage{}))
	assert.False(t, svc.IsInvalidStoredImage(models.ProfileImage{
		URL:    "https://ik.imagekit.io/testaccount/photo.jpg",
		FileID: "file_abc123",
	}))

	assert.True(t, svc.IsInvalidStoredImage(models.ProfileImage{FileID: "local_123"}))
	assert.True(t, svc.IsInvalidStoredImage(models.ProfileImage{URL: "blob:http://localhost/abc", FileID: "file_abc"}))
	assert.True(t, svc.IsInvalidStoredImage(models.ProfileImage{URL: "http://localhost:3000/x.jpg", FileID: "file_abc"}))
}
