package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusNotImplemented - 501: 功能未配置.
	StatusNotImplemented = 501
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 住宿学生相关错误码 (101xxx).
const (
	// ErrStudentNotFound - 404: 学生记录不存在.
	ErrStudentNotFound int = iota + 101000
	// ErrStudentIDRequired - 400: 学生ID不能为空.
	ErrStudentIDRequired
	// ErrBulkIDsRequired - 400: 批量操作ID列表不能为空.
	ErrBulkIDsRequired
)

// 序列号分配相关错误码 (102xxx).
const (
	// ErrAllocation - 500: 序列号分配失败.
	ErrAllocation int = iota + 102000
)

// 外部存储相关错误码 (103xxx).
const (
	// ErrStorageNotConfigured - 501: 外部存储未配置.
	ErrStorageNotConfigured int = iota + 103000
	// ErrStorageDelete - 500: 外部存储删除失败.
	ErrStorageDelete
	// ErrStorageFileIDRequired - 400: 文件ID不能为空.
	ErrStorageFileIDRequired
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

// 导出相关错误码 (106xxx).
const (
	// ErrExportFailed - 500: 导出失败.
	ErrExportFailed int = iota + 106000
)
