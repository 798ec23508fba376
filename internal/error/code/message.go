package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "internal server error",
	ErrBind:            "invalid request body",
	ErrValidation:      "validation failed",
	ErrTokenInvalid:    "invalid token",
	ErrTooManyRequests: "too many requests",

	// 住宿学生相关错误码
	ErrStudentNotFound:   "Student not found",
	ErrStudentIDRequired: "student id is required",
	ErrBulkIDsRequired:   "No ids provided",

	// 序列号分配相关错误码
	ErrAllocation: "failed to allocate serial number",

	// 外部存储相关错误码
	ErrStorageNotConfigured:  "ImageKit not configured on server",
	ErrStorageDelete:         "failed to delete remote file",
	ErrStorageFileIDRequired: "fileId is required",

	// 数据库相关错误码
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",

	// 导出相关错误码
	ErrExportFailed: "failed to export spreadsheet",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 住宿学生相关错误码
	ErrStudentNotFound:   StatusNotFound,
	ErrStudentIDRequired: StatusBadRequest,
	ErrBulkIDsRequired:   StatusBadRequest,

	// 序列号分配相关错误码
	ErrAllocation: StatusInternalServerError,

	// 外部存储相关错误码
	ErrStorageNotConfigured:  StatusNotImplemented,
	ErrStorageDelete:         StatusInternalServerError,
	ErrStorageFileIDRequired: StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	// 导出相关错误码
	ErrExportFailed: StatusInternalServerError,
}

// GetMessage 根据错误码获取消息
func GetMessage(errorCode int) string {
	if msg, ok := codeMessageMap[errorCode]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 根据错误码获取HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
