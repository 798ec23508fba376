package services

import (
	"context"
	"time"

	"sma-hostel-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// 学生列表响应的缓存键和过期时间
const (
	studentListCacheKey = "students:list"
	studentListCacheTTL = 5 * time.Minute
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(key string, value []byte, expiration time.Duration) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	GetStudentListJSON() ([]byte, bool)
	SetStudentListJSON(payload []byte)
	InvalidateStudentList()
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// 1 Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value []byte, expiration time.Duration) error {
	return s.Client.Set(s.Ctx, key, value, expiration).Err()
}

// 2 Get gets a value from Redis by key
func (s *RedisService) Get(key string) ([]byte, error) {
	return s.Client.Get(s.Ctx, key).Bytes()
}

// 3 Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// 4 GetStudentListJSON 读取缓存的学生列表响应；未命中或redis不可用时返回false
func (s *RedisService) GetStudentListJSON() ([]byte, bool) {
	payload, err := s.Get(studentListCacheKey)
	if err != nil {
		return nil, false
	}
	return payload, true
}

// 5 SetStudentListJSON 缓存学生列表响应，失败静默忽略
func (s *RedisService) SetStudentListJSON(payload []byte) {
	_ = s.Set(studentListCacheKey, payload, studentListCacheTTL)
}

// 6 InvalidateStudentList 任何写操作后废弃列表缓存
func (s *RedisService) InvalidateStudentList() {
	_ = s.Delete(studentListCacheKey)
}
