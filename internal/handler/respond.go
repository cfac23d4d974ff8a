// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hupai/hupai/pkg/errors"
	"github.com/hupai/hupai/pkg/logger"
)

// errorBody 错误响应体
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// writeJSON 输出JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Msg("写入响应失败")
	}
}

// writeError 输出错误响应
// 前提违规属于数据缺陷，额外记录错误日志
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetHTTPStatus(err)
	body := errorBody{
		Code:    string(errors.GetCode(err)),
		Message: err.Error(),
	}
	if appErr, ok := err.(*errors.AppError); ok {
		body.Message = appErr.Message
		body.Details = appErr.Details
	}

	log := logger.WithContext(r.Context())
	if errors.Is(err, errors.CodePreconditionViolation) || status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("请求处理失败")
	} else {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("请求被拒绝")
	}

	writeJSON(w, status, body)
}
