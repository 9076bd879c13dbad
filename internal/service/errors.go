package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	BadGateway          = 502
)

// 校验错误
var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrInvalidRole      = errors.New("角色无效")
	ErrInvalidDateRange = errors.New("日期范围无效")
	ErrMalformedDate    = errors.New("日期格式错误")
	ErrFutureDate       = errors.New("日期不能晚于今天")
	ErrNegativeAmount   = errors.New("金额不能为负数")
)

// 认证与授权
var (
	ErrUnauthenticated   = errors.New("未登录或登录已过期")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")
	ErrForbidden         = errors.New("权限不足")
)

// 资源不存在
var (
	ErrUserNotFound           = errors.New("用户不存在")
	ErrInfluencerNotFound     = errors.New("达人不存在")
	ErrMaterialNotFound       = errors.New("素材不存在")
	ErrPromotionNotFound      = errors.New("推广数据不存在")
	ErrInfluencerInfoNotFound = errors.New("未能从视频链接获取达人信息")
)

// 唯一约束与引用约束
var (
	ErrUserExist              = errors.New("用户名或邮箱已存在")
	ErrInfluencerExist        = errors.New("达人UID已存在")
	ErrMaterialExist          = errors.New("素材ID已存在")
	ErrPromotionExist         = errors.New("该素材当日推广数据已存在")
	ErrInfluencerHasMaterials = errors.New("达人存在关联素材，无法删除")
	ErrMaterialHasPromotions  = errors.New("素材存在推广数据，无法删除")
	ErrTagExist               = errors.New("标签已存在")
)

var (
	ErrUpstream     = errors.New("外部数据源异常")
	UnExpectedError = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrInvalidRole:      BadRequest,
	ErrInvalidDateRange: BadRequest,
	ErrMalformedDate:    BadRequest,
	ErrFutureDate:       BadRequest,
	ErrNegativeAmount:   BadRequest,

	ErrUnauthenticated:   Unauthorized,
	ErrPasswordIncorrect: Unauthorized,
	ErrForbidden:         Forbidden,

	ErrUserNotFound:           NotFound,
	ErrInfluencerNotFound:     NotFound,
	ErrMaterialNotFound:       NotFound,
	ErrPromotionNotFound:      NotFound,
	ErrInfluencerInfoNotFound: NotFound,

	ErrUserExist:              Conflict,
	ErrInfluencerExist:        Conflict,
	ErrMaterialExist:          Conflict,
	ErrPromotionExist:         Conflict,
	ErrTagExist:               Conflict,
	ErrInfluencerHasMaterials: Conflict,
	ErrMaterialHasPromotions:  Conflict,

	ErrUpstream:     BadGateway,
	UnExpectedError: InternalServerError,
}

// CodeOf 返回错误对应的业务码，包装过的错误按 errors.Is 匹配
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return InternalServerError, false
}
