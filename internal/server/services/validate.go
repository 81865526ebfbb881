package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/recipehub/internal/common"
)

const (
	maxNameLength        = 200
	maxEmailLength       = 254
	maxDescriptionLength = 10000
	maxImageLength       = 2048
)

// NormalizeEmail trims and lower-cases email and checks its basic shape:
// one "@", a non-empty local part and a dotted domain.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", fmt.Errorf("%w: email is required", common.ErrInvalidInput)
	}
	if len(e) > maxEmailLength || strings.ContainsAny(e, " \t\r\n") {
		return "", fmt.Errorf("%w: email is malformed", common.ErrInvalidInput)
	}

	local, domain, ok := strings.Cut(e, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return "", fmt.Errorf("%w: email is malformed", common.ErrInvalidInput)
	}
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return "", fmt.Errorf("%w: email is malformed", common.ErrInvalidInput)
	}

	return e, nil
}

func requireText(field, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", common.ErrInvalidInput, field)
	}
	return limitText(field, v, max)
}

func limitText(field, v string, max int) (string, error) {
	if utf8.RuneCountInString(v) > max {
		return "", fmt.Errorf("%w: %s must be at most %d characters", common.ErrInvalidInput, field, max)
	}
	return v, nil
}

// validID reports whether id can name a stored record.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// internalError hides err behind ErrorInternal. Context errors stay
// matchable so the gateway can report timeouts.
func internalError(msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", common.ErrorInternal, msg, err)
	}
	return fmt.Errorf("%w: %s", common.ErrorInternal, msg)
}
