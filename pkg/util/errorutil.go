package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewSelfRequest rejects a swap addressed to its own sender.
func NewSelfRequest() error {
	return NewDomainError("SELF_REQUEST", "cannot request a swap with yourself", http.StatusBadRequest, nil)
}

func NewInvalidSkillOffered(skill string) error {
	return NewDomainError("INVALID_SKILL_OFFERED", "skill is not in sender's offered list", http.StatusBadRequest, map[string]any{"skill": skill})
}

func NewInvalidSkillWanted(skill string) error {
	return NewDomainError("INVALID_SKILL_WANTED", "skill is not in recipient's offered list", http.StatusBadRequest, map[string]any{"skill": skill})
}

func NewEmptyMessage() error {
	return NewDomainError("EMPTY_MESSAGE", "message must not be empty", http.StatusBadRequest, nil)
}

// NewAlreadyResolved reports a decision against a swap that left PENDING.
func NewAlreadyResolved() error {
	return NewDomainError("ALREADY_RESOLVED", "swap request already resolved", http.StatusConflict, nil)
}

func NewUserBanned(userID string) error {
	return NewDomainError("USER_BANNED", "user is banned", http.StatusForbidden, map[string]any{"user_id": userID})
}

func NewDuplicateSkill(skill string) error {
	return NewDomainError("DUPLICATE_SKILL", "skill already present", http.StatusConflict, map[string]any{"skill": skill})
}

func NewIndexOutOfRange(index int) error {
	return NewDomainError("INDEX_OUT_OF_RANGE", "skill index out of range", http.StatusBadRequest, map[string]any{"index": index})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
