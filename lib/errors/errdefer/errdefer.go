// Package errdefer 提供在 defer 中修改返回错误的辅助函数，参数都是 *error。
package errdefer

import (
	"github.com/donutnomad/stampkit/lib/errors"
)

// Mark 给非 nil 的错误打标。
//
// 用法: defer errdefer.Mark(&err, resource.ErrPersistence)
func Mark(errPtr *error, marker error) {
	MarkIf(errPtr, func(error) bool { return true }, marker)
}

// MarkIf marks *errPtr only when predicate accepts it.
func MarkIf(errPtr *error, predicate func(error) bool, marker error) {
	if errPtr == nil || *errPtr == nil {
		return
	}
	if predicate(*errPtr) {
		*errPtr = errors.From(*errPtr).Mark(marker).Err()
	}
}

// MarkIfIs 把一种具体错误（如 gorm.ErrRecordNotFound）提升为领域错误。
//
// 用法: defer errdefer.MarkIfIs(&err, gorm.ErrRecordNotFound, resource.ErrNotFound)
func MarkIfIs(errPtr *error, target error, marker error) {
	MarkIf(errPtr, func(err error) bool {
		return errors.Is(err, target)
	}, marker)
}
