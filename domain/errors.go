package domain

import (
	"errors"
	"net/http"
)

// ErrorKind groups errors by the HTTP status they map to at the boundary.
type ErrorKind string

const (
	KindInvalidInput    ErrorKind = "invalid_input"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindRateLimited     ErrorKind = "rate_limited"
	KindInternal        ErrorKind = "internal"
)

// Status returns the HTTP status for the kind.
func (k ErrorKind) Status() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a typed business error carrying a machine-readable code and a
// bilingual message. Validation and business-rule errors are raised as
// AppErrors at the point of detection and passed unchanged to the boundary.
type AppError struct {
	Kind      ErrorKind
	Code      string
	Message   string
	MessageAr string
	Details   map[string]any
}

func (e *AppError) Error() string { return e.Code + ": " + e.Message }

// Is matches two AppErrors by code, so sentinel comparisons via errors.Is
// survive WithDetails copies.
func (e *AppError) Is(target error) bool {
	var app *AppError
	if !errors.As(target, &app) {
		return false
	}
	return e.Code == app.Code
}

// WithDetails returns a copy of e carrying the given detail fields.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func newErr(kind ErrorKind, code, msg, msgAr string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: msg, MessageAr: msgAr}
}

// Identity and input errors.
var (
	ErrInvalidEmail = newErr(KindInvalidInput, "INVALID_EMAIL",
		"invalid email address", "عنوان البريد الإلكتروني غير صالح")
	ErrInvalidPhone = newErr(KindInvalidInput, "INVALID_PHONE",
		"invalid phone number", "رقم الجوال غير صالح")
	ErrInvalidRole = newErr(KindInvalidInput, "INVALID_ROLE",
		"invalid role", "الدور غير صالح")
	ErrInvalidPurpose = newErr(KindInvalidInput, "INVALID_PURPOSE",
		"invalid verification purpose", "غرض التحقق غير صالح")
	ErrUserNotFound = newErr(KindNotFound, "USER_NOT_FOUND",
		"user not found", "المستخدم غير موجود")
	ErrStoreNotFound = newErr(KindNotFound, "STORE_NOT_FOUND",
		"store not found", "المتجر غير موجود")
	ErrEmailTaken = newErr(KindConflict, "EMAIL_TAKEN",
		"email is already registered", "البريد الإلكتروني مسجل مسبقاً")
	ErrPhoneTaken = newErr(KindConflict, "PHONE_TAKEN",
		"phone number is already registered", "رقم الجوال مسجل مسبقاً")
)

// OTP errors.
var (
	ErrOTPInvalidOrExpired = newErr(KindInvalidInput, "OTP_INVALID_OR_EXPIRED",
		"code is invalid or has expired", "الرمز غير صالح أو منتهي الصلاحية")
	ErrOTPMismatch = newErr(KindInvalidInput, "OTP_MISMATCH",
		"incorrect verification code", "رمز التحقق غير صحيح")
	ErrOTPMaxAttempts = newErr(KindForbidden, "OTP_MAX_ATTEMPTS",
		"maximum verification attempts exceeded, request a new code",
		"تم تجاوز الحد الأقصى لمحاولات التحقق، اطلب رمزاً جديداً")
	ErrOTPRateLimited = newErr(KindRateLimited, "OTP_RATE_LIMITED",
		"too many codes requested, try again later",
		"تم طلب عدد كبير من الرموز، حاول لاحقاً")
)

// Session and token errors.
var (
	ErrInvalidToken = newErr(KindUnauthenticated, "INVALID_TOKEN",
		"token is invalid or has expired", "رمز الدخول غير صالح أو منتهي الصلاحية")
	ErrUnauthenticated = newErr(KindUnauthenticated, "UNAUTHENTICATED",
		"authentication required", "يجب تسجيل الدخول")
	ErrSessionNotFound = newErr(KindUnauthenticated, "SESSION_NOT_FOUND",
		"session not found or revoked", "الجلسة غير موجودة أو ملغاة")
)

// Authorization errors.
var (
	ErrForbidden = newErr(KindForbidden, "FORBIDDEN",
		"you do not have permission to perform this action",
		"ليس لديك صلاحية لتنفيذ هذا الإجراء")
	ErrAccountNotActive = newErr(KindForbidden, "ACCOUNT_NOT_ACTIVE",
		"account is banned or inactive", "الحساب محظور أو غير نشط")
	ErrEmailNotVerified = newErr(KindForbidden, "EMAIL_NOT_VERIFIED",
		"email address is not verified", "البريد الإلكتروني غير موثق")
	ErrNotResourceOwner = newErr(KindForbidden, "NOT_RESOURCE_OWNER",
		"you do not own this resource", "هذا المورد لا يخصك")
	ErrSelfDemotion = newErr(KindForbidden, "SELF_DEMOTION",
		"administrators cannot demote themselves", "لا يمكن للمشرف تخفيض صلاحياته بنفسه")
	ErrAlreadyAdmin = newErr(KindConflict, "ALREADY_ADMIN",
		"user already holds an administrative role", "المستخدم يحمل دوراً إدارياً بالفعل")
)

// Throttling and fallback.
var (
	ErrRateLimited = newErr(KindRateLimited, "RATE_LIMITED",
		"too many requests, slow down", "عدد كبير من الطلبات، حاول لاحقاً")
	ErrInternal = newErr(KindInternal, "INTERNAL",
		"something went wrong", "حدث خطأ ما")
)

// MismatchError builds the OTP mismatch error carrying the remaining attempts.
func MismatchError(attemptsLeft int) *AppError {
	return ErrOTPMismatch.WithDetails(map[string]any{"attempts_left": attemptsLeft})
}

// RateLimitedError builds a throttling error carrying the retry hint.
func RateLimitedError(base *AppError, retryAfterSeconds int64) *AppError {
	return base.WithDetails(map[string]any{"retry_after_seconds": retryAfterSeconds})
}

// AsAppError unwraps err to an AppError, or coerces it to ErrInternal. The
// second return reports whether the error was already typed; untyped errors
// must be logged server-side before the coerced value is sent to the client.
func AsAppError(err error) (*AppError, bool) {
	var app *AppError
	if errors.As(err, &app) {
		return app, true
	}
	return ErrInternal, false
}
