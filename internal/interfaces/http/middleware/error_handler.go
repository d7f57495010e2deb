package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/internal/infrastructure/filesystem"
	apperrors "github.com/easayliu/normname/internal/shared/errors"
	"github.com/easayliu/normname/pkg/logger"
	"github.com/easayliu/normname/pkg/utils"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中设置的错误,自动转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		serviceErr := ToServiceError(c.Errors.Last().Err)
		status := mapErrorCodeToHTTPStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", "path", c.Request.URL.Path, "error", serviceErr)
		}

		message := serviceErr.Message
		if serviceErr.Cause != nil && status < http.StatusInternalServerError {
			message = message + ": " + serviceErr.Cause.Error()
		}
		utils.ErrorWithStatus(c, status, string(serviceErr.Code), message, serviceErr.Details)
	}
}

// ToServiceError 将任意错误归类为业务错误
func ToServiceError(err error) *apperrors.ServiceError {
	if se, ok := apperrors.AsServiceError(err); ok {
		return se
	}

	switch {
	case errors.Is(err, filesystem.ErrInvalidRoot):
		return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidRoot, "invalid root directory", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeTimeout, "request timed out", err)
	default:
		return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInternalError, "internal error", err)
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrorCodeInvalidRequest, apperrors.ErrorCodeInvalidRoot:
		return http.StatusBadRequest
	case apperrors.ErrorCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrorCodeConflict:
		return http.StatusConflict
	case apperrors.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrorCodeTimeout:
		return http.StatusRequestTimeout
	case apperrors.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RecoveryMiddleware 捕获 panic 并返回统一错误结构
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		utils.ErrorWithStatus(c, http.StatusInternalServerError, string(apperrors.ErrorCodeInternalError), "internal error", nil)
	})
}
