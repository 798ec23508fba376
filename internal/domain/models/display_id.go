package models

import (
	"fmt"
	"strconv"
)

// DisplayIDPrefix 人类可读编号前缀
const DisplayIDPrefix = "SMA-"

// fallbackModulus 旧数据回退编号的取模范围，保持5位数字
const fallbackModulus = 100000

// FormatSerial 将序列号格式化为展示编号，如 42 -> SMA-00042。
// 5位是最小宽度而不是截断：100000 -> SMA-100000。
func FormatSerial(serial int64) string {
	return fmt.Sprintf("%s%05d", DisplayIDPrefix, serial)
}

// FallbackDisplayID 对没有序列号的旧记录，从不透明ID推导展示编号：
// 取末尾最多5个十六进制字符，按16进制解析后对100000取模，再按同样规则格式化。
// 纯函数，列表页和详情页对同一条记录必然渲染出相同的编号。
func FallbackDisplayID(opaqueID string) string {
	if opaqueID == "" {
		return ""
	}

	// 从末尾收集连续的十六进制字符，最多5个
	end := len(opaqueID)
	start := end
	for start > 0 && end-start < 5 && isHexDigit(opaqueID[start-1]) {
		start--
	}

	var num uint64
	if start < end {
		num, _ = strconv.ParseUint(opaqueID[start:end], 16, 64)
	}

	return FormatSerial(int64(num % fallbackModulus))
}

// DisplayID 计算记录的规范展示编号：序列号优先，缺失时回退到不透明ID推导。
// 永远重新计算，不读取任何已存储的展示字符串。
func DisplayID(serial *int64, opaqueID string) string {
	if serial != nil {
		return FormatSerial(*serial)
	}
	return FallbackDisplayID(opaqueID)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
