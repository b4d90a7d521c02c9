// Package errors 是 cockroachdb/errors 的薄封装，stampkit 内所有错误都从这里构造。
package errors

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// New creates an error with a stack trace attached.
func New(msg string) error {
	return errors.New(msg)
}

// Newf is the formatted variant of New.
func Newf(format string, args ...any) error {
	return errors.Newf(format, args...)
}

func Wrap(err error, msg ...string) error {
	return From(err).Wrap(strings.Join(msg, " ")).Err()
}

func Wrapf(err error, format string, args ...any) error {
	return From(err).Wrapf(format, args...).Err()
}

// WithStack annotates err with the caller's stack. Nil stays nil.
func WithStack(err error) error {
	return From(err).WithStack().Err()
}

// Is reports whether err, any of its causes, or any of its marks matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// UnwrapAll returns the root cause of err.
func UnwrapAll(err error) error {
	return errors.UnwrapAll(err)
}

// GetAllDetails 按后序遍历收集所有 detail
func GetAllDetails(err error) []string { return errors.GetAllDetails(err) }

// GetAllHints 收集去重后的 hint
func GetAllHints(err error) []string { return errors.GetAllHints(err) }
