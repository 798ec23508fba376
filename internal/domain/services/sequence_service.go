package services

import (
	"errors"
	"fmt"
	"time"

	"sma-hostel-service/internal/domain/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAllocationFailed 序列号分配失败
var ErrAllocationFailed = errors.New("failed to allocate serial number")

// 并发事务因锁冲突回滚时的重试上限和退避间隔
const (
	allocateRetries = 25
	allocateBackoff = 2 * time.Millisecond
)

// InterfaceSequenceService defines the sequence allocator interface
type InterfaceSequenceService interface {
	NextSerial(key string) (int64, error)
	CurrentSerial(key string) (int64, error)
}

// SequenceService 提供单调递增序列号的原子分配。
// 计数器是单行记录，递增在数据库事务内完成，并发创建不会拿到重复的序列号。
// 分配成功后即视为已消费，后续创建失败不回滚序列号，序列中的空洞是正常现象。
type SequenceService struct {
	DB *gorm.DB
}

// NewSequenceService 创建一个新的序列号服务
func NewSequenceService(db *gorm.DB) InterfaceSequenceService {
	return &SequenceService{DB: db}
}

// NextSerial 原子地发放下一个序列号，空系统从1开始。
// 计数器行用冲突安全的插入惰性创建，并发的首次分配不会因为抢建同一行而死锁；
// 递增走UPDATE seq = seq + 1，由行锁保证串行，不依赖方言特定的显式锁。
// 事务因锁冲突或唯一键竞争回滚时整体重试，每个调用者最终都拿到一个值。
func (s *SequenceService) NextSerial(key string) (int64, error) {
	var next int64
	var lastErr error

	for attempt := 0; attempt < allocateRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(allocateBackoff)
		}

		lastErr = s.DB.Transaction(func(tx *gorm.DB) error {
			// 行已存在时插入是空操作
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Counter{Key: key, Seq: 0}).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.Counter{}).
				Where(&models.Counter{Key: key}).
				Update("seq", gorm.Expr("seq + ?", 1)).Error; err != nil {
				return err
			}

			// 同一事务内读回自己递增后的值
			var counter models.Counter
			if err := tx.Where(&models.Counter{Key: key}).First(&counter).Error; err != nil {
				return err
			}
			next = counter.Seq
			return nil
		})
		if lastErr == nil {
			return next, nil
		}
	}

	return 0, fmt.Errorf("%w: %v", ErrAllocationFailed, lastErr)
}

// CurrentSerial 读取最后发放的序列号，不递增；计数器不存在时返回0
func (s *SequenceService) CurrentSerial(key string) (int64, error) {
	var counter models.Counter
	err := s.DB.Where(&models.Counter{Key: key}).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
