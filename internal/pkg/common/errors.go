package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Response 轉為 API 錯誤響應
func (e *CustomError) Response(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// CorpusFormatError 食譜資料來源結構無法讀取（啟動時致命錯誤）
type CorpusFormatError struct {
	Source string
	Reason string
	Err    error
}

func (e *CorpusFormatError) Error() string {
	msg := fmt.Sprintf("corpus format error: %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorpusFormatError) Unwrap() error {
	return e.Err
}

// NewCorpusFormatError 創建資料來源格式錯誤
func NewCorpusFormatError(source, reason string, err error) error {
	return &CorpusFormatError{Source: source, Reason: reason, Err: err}
}

// IsCorpusFormatError 檢查是否為資料來源格式錯誤
func IsCorpusFormatError(err error) bool {
	var target *CorpusFormatError
	return errors.As(err, &target)
}

// EmptyCorpusError 過濾後沒有任何食譜可建立索引（啟動時致命錯誤）
type EmptyCorpusError struct {
	Source string
	Rows   int
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("empty corpus: no recipe in %s survived filtering (%d rows read)", e.Source, e.Rows)
}

// NewEmptyCorpusError 創建空資料集錯誤
func NewEmptyCorpusError(source string, rows int) error {
	return &EmptyCorpusError{Source: source, Rows: rows}
}

// IsEmptyCorpusError 檢查是否為空資料集錯誤
func IsEmptyCorpusError(err error) bool {
	var target *EmptyCorpusError
	return errors.As(err, &target)
}

// RecordParseError 單筆食譜欄位格式錯誤（可恢復，僅略過該筆）
type RecordParseError struct {
	Row    int    // 資料列號（從 1 起算，不含標題列）
	Recipe string // 食譜名稱，可能為空
	Field  string // 欄位名稱
	Err    error
}

func (e *RecordParseError) Error() string {
	if e.Recipe != "" {
		return fmt.Sprintf("record %d (%s): invalid %s: %v", e.Row, e.Recipe, e.Field, e.Err)
	}
	return fmt.Sprintf("record %d: invalid %s: %v", e.Row, e.Field, e.Err)
}

func (e *RecordParseError) Unwrap() error {
	return e.Err
}

// NewRecordParseError 創建單筆資料解析錯誤
func NewRecordParseError(row int, recipe, field string, err error) error {
	return &RecordParseError{Row: row, Recipe: recipe, Field: field, Err: err}
}

// IsRecordParseError 檢查是否為單筆資料解析錯誤
func IsRecordParseError(err error) bool {
	var target *RecordParseError
	return errors.As(err, &target)
}

// IsFatalCorpusError 檢查是否為無法啟動引擎的錯誤
func IsFatalCorpusError(err error) bool {
	return IsCorpusFormatError(err) || IsEmptyCorpusError(err)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429
	ErrCodeCorpusFormat     = "CORPUS_FORMAT"      // 422
	ErrCodeEmptyCorpus      = "EMPTY_CORPUS"       // 422

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "method not allowed", http.StatusMethodNotAllowed, nil)
	ErrRequestTimeout   = NewError(ErrCodeRequestTimeout, "request timeout", http.StatusRequestTimeout, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "recommendation engine not ready", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "gateway timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrCacheFull     = NewError("CACHE_FULL", "cache is full", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled = NewError("CACHE_DISABLED", "cache is disabled", http.StatusServiceUnavailable, nil)
	ErrCacheMiss     = NewError("CACHE_MISS", "cache miss", http.StatusNotFound, nil)
)

// ToCustomError 將領域錯誤轉為 API 錯誤
func ToCustomError(err error) *CustomError {
	var custom *CustomError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &custom):
		return custom
	case IsValidationError(err):
		return NewError(ErrCodeInvalidRequest, err.Error(), http.StatusBadRequest, err)
	case IsCorpusFormatError(err):
		return NewError(ErrCodeCorpusFormat, "corpus source is unreadable", http.StatusUnprocessableEntity, err)
	case IsEmptyCorpusError(err):
		return NewError(ErrCodeEmptyCorpus, "corpus has no usable recipes", http.StatusUnprocessableEntity, err)
	default:
		return NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, err)
	}
}
