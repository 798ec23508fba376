package services

import (
	"path/filepath"
	"testing"

	"sma-hostel-service/internal/domain/models"
	"sma-hostel-service/internal/infrastructure/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 创建内存sqlite数据库并迁移全部模型。
// 限制为单连接，并发事务在连接上排队，等价于行锁的串行化效果。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Counter{},
		&models.Student{},
		&models.StudentDocument{},
	))

	return db
}

// setupPooledTestDB 创建文件型sqlite数据库，连接池放开到多个连接，
// 并发事务真实地互相竞争而不是在单连接上排队
func setupPooledTestDB(t *testing.T, maxOpenConns int) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(maxOpenConns)

	require.NoError(t, db.AutoMigrate(
		&models.Counter{},
		&models.Student{},
		&models.StudentDocument{},
	))

	return db
}

// testConfig 返回一份不依赖环境变量的测试配置
func testConfig() *config.Config {
	return &config.Config{
		EnvType:              "LOCAL",
		ServerPort:           "3001",
		JWTSecretKey:         "test-secret-key",
		DefaultAdminPassword: "admin123",
		ImageKitAPIBaseURL:   "https://api.imagekit.io",
	}
}

// imageKitTestConfig 返回凭证齐全的ImageKit测试配置，API地址指向给定的stub服务器
func imageKitTestConfig(apiBaseURL string) *config.Config {
	cfg := testConfig()
	cfg.ImageKitPublicKey = "public_test"
	cfg.ImageKitPrivateKey = "private_test"
	cfg.ImageKitURLEndpoint = "https://ik.imagekit.io/testaccount"
	if apiBaseURL != "" {
		cfg.ImageKitAPIBaseURL = apiBaseURL
	}
	return cfg
}
