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
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
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
	// ErrForbidden - 403: 权限不足.
	ErrForbidden
)

// 用户与注册相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户名已被使用.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户名或密码错误.
	ErrUserPasswordIncorrect
	// ErrUserPending - 403: 账号等待审批.
	ErrUserPending
	// ErrUserRejected - 403: 账号未通过审批.
	ErrUserRejected
)

// 报修单相关错误码 (102xxx).
const (
	// ErrIncidentNotFound - 404: 报修单不存在.
	ErrIncidentNotFound int = iota + 102000
	// ErrInvalidAssignment - 400: 无效的派单.
	ErrInvalidAssignment
	// ErrIncidentNotInProgress - 400: 报修单不在进行中.
	ErrIncidentNotInProgress
)

// 维修团队相关错误码 (103xxx).
const (
	// ErrTeamNotFound - 404: 维修团队不存在.
	ErrTeamNotFound int = iota + 103000
	// ErrTeamBusy - 400: 维修团队忙碌中.
	ErrTeamBusy
)

// 附件相关错误码 (104xxx).
const (
	// ErrInvalidImage - 400: 图片附件无效.
	ErrInvalidImage int = iota + 104000
)

// 快照与系统相关错误码 (105xxx).
const (
	// ErrCorruptSnapshot - 400: 备份文件损坏.
	ErrCorruptSnapshot int = iota + 105000
	// ErrResetNotConfirmed - 400: 重置操作未确认.
	ErrResetNotConfirmed
	// ErrPersistFailed - 500: 数据持久化失败.
	ErrPersistFailed
)
