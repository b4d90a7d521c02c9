package errors

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Builder 构建错误链。所有方法对 nil 安全
type Builder struct {
	err error
}

func From(err error) *Builder {
	return &Builder{err: err}
}

// MarkWrap 是 Mark + Wrap 的组合
func MarkWrap(err error, marker error, msg ...string) error {
	return From(err).Mark(marker).Wrap(strings.Join(msg, " ")).Err()
}

func MarkWrapf(err error, marker error, format string, args ...any) error {
	return From(err).Mark(marker).Wrapf(format, args...).Err()
}

// MarkPrefixWrapf marks err with marker and prefixes the message with
// marker.Error(), so "invalid value: title: ..." reads naturally.
func MarkPrefixWrapf(err error, marker error, format string, args ...any) error {
	if !lo.IsNil(marker) {
		format = marker.Error() + ": " + format
	}
	return MarkWrapf(err, marker, format, args...)
}

func (b *Builder) Wrap(msg string) *Builder {
	if b.isNil() {
		return b
	}
	if msg == "" {
		b.err = errors.WithStack(b.err)
		return b
	}
	b.err = errors.Wrap(b.err, msg)
	return b
}

func (b *Builder) Wrapf(format string, args ...any) *Builder {
	if b.isNil() {
		return b
	}
	b.err = errors.Wrapf(b.err, format, args...)
	return b
}

func (b *Builder) WithStack() *Builder {
	if b.isNil() {
		return b
	}
	b.err = errors.WithStack(b.err)
	return b
}

// Mark 给错误打标签，之后 errors.Is(err, marker) 为 true。nil marker 会被跳过
func (b *Builder) Mark(marker ...error) *Builder {
	if b.isNil() {
		return b
	}
	for _, mk := range marker {
		if lo.IsNil(mk) {
			continue
		}
		b.err = errors.Mark(b.err, mk)
	}
	return b
}

// WithHint attaches a user-facing hint.
func (b *Builder) WithHint(msg string) *Builder {
	if b.isNil() {
		return b
	}
	b.err = errors.WithHint(b.err, msg)
	return b
}

// WithDetailf attaches a developer-facing detail.
func (b *Builder) WithDetailf(format string, args ...any) *Builder {
	if b.isNil() {
		return b
	}
	b.err = errors.WithDetailf(b.err, format, args...)
	return b
}

func (b *Builder) Err() error {
	if b.isNil() {
		return nil
	}
	return b.err
}

func (b *Builder) isNil() bool {
	return b == nil || lo.IsNil(b.err)
}
