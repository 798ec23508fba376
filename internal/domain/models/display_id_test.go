package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSerial(t *testing.T) {
	tests := []struct {
		name   string
		serial int64
		want   string
	}{
		{"单位数补零", 7, "SMA-00007"},
		{"从1开始", 1, "SMA-00001"},
		{"五位数不变", 99999, "SMA-99999"},
		{"超过五位不截断", 100000, "SMA-100000"},
		{"零", 0, "SMA-00000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSerial(tt.serial))
		})
	}
}

func TestFallbackDisplayID(t *testing.T) {
	tests := []struct {
		name     string
		opaqueID string
		want     string
	}{
		// 0x1a2b3 = 107187, 107187 % 100000 = 7187
		{"末尾五个十六进制字符", "abc1a2b3", "SMA-07187"},
		// 0xfffff = 1048575, % 100000 = 48575
		{"全f", "fffff", "SMA-48575"},
		{"空ID返回空串", "", ""},
		// 末尾不是十六进制字符时解析为0
		{"末尾无十六进制字符", "zzzzz", "SMA-00000"},
		// 只取末尾连续的十六进制字符: "xy3" -> 0x3
		{"混合字符只取末尾", "xy3", "SMA-00003"},
		// 大写十六进制同样参与解析
		{"大写十六进制", "ABCDE", "SMA-03710"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackDisplayID(tt.opaqueID))
		})
	}
}

func TestFallbackDisplayIDDeterministic(t *testing.T) {
	// 同一个ID无论计算多少次都得到同一个编号
	id := "64f1c2d3e4a5b6c7d8e9fa0b"
	first := FallbackDisplayID(id)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FallbackDisplayID(id))
	}
}

func TestDisplayIDPrefersSerial(t *testing.T) {
	serial := int64(42)

	// 有序列号时不透明ID完全不参与
	assert.Equal(t, "SMA-00042", DisplayID(&serial, "deadbeef"))
	// 没有序列号时回退到不透明ID推导
	assert.Equal(t, FallbackDisplayID("deadbeef"), DisplayID(nil, "deadbeef"))
}
