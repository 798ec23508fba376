package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sma-hostel-service/internal/domain/models"
	"sma-hostel-service/internal/infrastructure/config"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InterfaceImageKitService defines the external object storage interface
type InterfaceImageKitService interface {
	Enabled() bool
	IsValidFileID(fileID string) bool
	BuildFullURL(maybeURL string) string
	OptimizedURL(rawURL string) string
	NormalizeStudent(student *models.Student)
	DeleteFile(fileID string) error
	AuthParams() (map[string]interface{}, error)
	IsInvalidStoredImage(img models.ProfileImage) bool
}

// ImageKitService 负责与外部对象存储(ImageKit)交互。
// 记录操作只保存和透传不透明的URL/文件ID对，上传由客户端直传完成。
type ImageKitService struct {
	Config *config.Config
	Client *http.Client
}

// NewImageKitService 创建一个新的ImageKit服务
func NewImageKitService(cfg *config.Config) InterfaceImageKitService {
	return &ImageKitService{
		Config: cfg,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled 凭证齐全时才会调用远端API
func (s *ImageKitService) Enabled() bool {
	return s.Config.ImageKitConfigured()
}

// IsValidFileID 判断文件ID是否可以安全地提交给远端删除API。
// 本地预览占位符(local_/blob:)、完整URL、带路径分隔符或过短的ID都要跳过，
// 否则远端会报错或静默空操作。
func (s *ImageKitService) IsValidFileID(fileID string) bool {
	if fileID == "" {
		return false
	}
	if strings.HasPrefix(fileID, "local_") {
		return false
	}
	if strings.HasPrefix(fileID, "blob:") {
		return false
	}
	lower := strings.ToLower(fileID)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return false
	}
	if strings.Contains(fileID, "/") {
		return false
	}
	if len(fileID) < 5 {
		return false
	}
	return true
}

// BuildFullURL 把存储的相对路径补全为绝对URL
func (s *ImageKitService) BuildFullURL(maybeURL string) string {
	if maybeURL == "" {
		return ""
	}
	lower := strings.ToLower(maybeURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return maybeURL
	}
	base := s.Config.ImageKitURLEndpoint
	if base == "" {
		return maybeURL
	}
	base = strings.TrimSuffix(base, "/")
	if strings.HasPrefix(maybeURL, "/") {
		return base + maybeURL
	}
	return base + "/" + maybeURL
}

// OptimizedURL 生成缩略图的路径变换URL (tr:w-400,h-400,q-80)
func (s *ImageKitService) OptimizedURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if strings.HasPrefix(rawURL, "blob:") {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if !strings.Contains(parsed.Hostname(), "imagekit.io") {
		return rawURL
	}

	parts := strings.FieldsFunc(parsed.Path, func(r rune) bool { return r == '/' })
	if len(parts) < 2 {
		return rawURL
	}

	// 第一段是ImageKit账户ID，变换参数插在它后面
	id := parts[0]
	rest := strings.Join(parts[1:], "/")
	parsed.Path = fmt.Sprintf("/%s/tr:w-400,h-400,q-80/%s", id, rest)
	return parsed.String()
}

// NormalizeStudent 把记录里的图片/附件URL就地规范化为绝对形式，
// 并重新推导优化变体；只影响返回值，不写回存储
func (s *ImageKitService) NormalizeStudent(student *models.Student) {
	if !student.ProfileImage.Empty() {
		student.ProfileImage.URL = s.BuildFullURL(student.ProfileImage.URL)
		student.ProfileImage.OptimizedURL = s.OptimizedURL(student.ProfileImage.URL)
	}
	for i := range student.Documents {
		student.Documents[i].URL = s.BuildFullURL(student.Documents[i].URL)
	}
}

// DeleteFile 删除远端文件；调用方负责先用IsValidFileID过滤
func (s *ImageKitService) DeleteFile(fileID string) error {
	if !s.Enabled() {
		return fmt.Errorf("imagekit is not configured")
	}

	endpoint := strings.TrimSuffix(s.Config.ImageKitAPIBaseURL, "/") + "/v1/files/" + url.PathEscape(fileID)
	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	// ImageKit管理API用私钥做Basic认证，密码为空
	req.SetBasicAuth(s.Config.ImageKitPrivateKey, "")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error deleting remote file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("imagekit delete returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// AuthParams 生成客户端直传所需的认证参数
func (s *ImageKitService) AuthParams() (map[string]interface{}, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("imagekit is not configured")
	}

	token := uuid.NewString()
	expire := time.Now().Add(30 * time.Minute).Unix()

	// signature = HMAC-SHA1(token + expire, privateKey)
	mac := hmac.New(sha1.New, []byte(s.Config.ImageKitPrivateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	signature := hex.EncodeToString(mac.Sum(nil))

	return map[string]interface{}{
		"token":       token,
		"expire":      expire,
		"signature":   signature,
		"publicKey":   s.Config.ImageKitPublicKey,
		"urlEndpoint": s.Config.ImageKitURLEndpoint,
	}, nil
}

// IsInvalidStoredImage 检测明显无效的头像引用(本地占位符、blob URL)
func (s *ImageKitService) IsInvalidStoredImage(img models.ProfileImage) bool {
	if img.Empty() {
		return false
	}
	if strings.HasPrefix(img.FileID, "local_") {
		return true
	}
	if strings.Contains(img.URL, "blob:") {
		return true
	}
	if strings.Contains(img.OptimizedURL, "blob:") {
		return true
	}
	if strings.Contains(img.URL, "localhost") {
		return true
	}
	return false
}
