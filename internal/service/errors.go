package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrReportNotFound      = errors.New("日报不存在")
	ErrProviderNotFound    = errors.New("指标提供者不存在")
	ErrTaskRunning         = errors.New("统计任务正在执行")
	ErrStatsMessageInvalid = errors.New("统计消息格式错误")
	ErrSchemaMismatch      = errors.New("统计表结构同步失败")
	ErrAggregateCompute    = errors.New("统计计算失败")
	ErrDispatch            = errors.New("统计消息投递失败")
	ErrProviderCompute     = errors.New("指标计算失败")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrReportNotFound:      NotFound,
	ErrProviderNotFound:    NotFound,
	ErrTaskRunning:         Conflict,
	ErrStatsMessageInvalid: BadRequest,
	ErrSchemaMismatch:      InternalServerError,
	ErrAggregateCompute:    InternalServerError,
	ErrDispatch:            InternalServerError,
	ErrProviderCompute:     InternalServerError,
	UnExpectedError:        InternalServerError,
}

// ErrorCode 按 ErrorMap 查找错误码，支持被包装的错误
func ErrorCode(err error) (int, bool) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}
