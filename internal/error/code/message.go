package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高，请稍后再试",
	ErrForbidden:       "权限不足",

	// 用户与注册相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户名已被使用",
	ErrUserPasswordIncorrect: "用户名或密码错误",
	ErrUserPending:           "账号正在等待管理员审批",
	ErrUserRejected:          "账号未通过审批",

	// 报修单相关错误码
	ErrIncidentNotFound:      "报修单不存在",
	ErrInvalidAssignment:     "无效的派单操作",
	ErrIncidentNotInProgress: "报修单不在进行中",

	// 维修团队相关错误码
	ErrTeamNotFound: "维修团队不存在",
	ErrTeamBusy:     "维修团队忙碌中，无法接单",

	// 附件相关错误码
	ErrInvalidImage: "图片附件无效",

	// 快照与系统相关错误码
	ErrCorruptSnapshot:   "备份文件损坏，导入已取消",
	ErrResetNotConfirmed: "重置操作未确认",
	ErrPersistFailed:     "数据持久化失败",
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
	ErrForbidden:       StatusForbidden,

	// 用户与注册相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrUserPending:           StatusForbidden,
	ErrUserRejected:          StatusForbidden,

	// 报修单相关错误码
	ErrIncidentNotFound:      StatusNotFound,
	ErrInvalidAssignment:     StatusBadRequest,
	ErrIncidentNotInProgress: StatusBadRequest,

	// 维修团队相关错误码
	ErrTeamNotFound: StatusNotFound,
	ErrTeamBusy:     StatusBadRequest,

	// 附件相关错误码
	ErrInvalidImage: StatusBadRequest,

	// 快照与系统相关错误码
	ErrCorruptSnapshot:   StatusBadRequest,
	ErrResetNotConfirmed: StatusBadRequest,
	ErrPersistFailed:     StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
