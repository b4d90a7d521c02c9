package resource

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Type is the semantic type of a property.
type Type int

const (
	TypeString Type = iota + 1
	TypeSerial
	TypeInteger
	TypeBoolean
	TypeDateTime
	TypeDate
	TypeUUID
)

var typeNames = map[Type]string{
	TypeString:   "String",
	TypeSerial:   "Serial",
	TypeInteger:  "Integer",
	TypeBoolean:  "Boolean",
	TypeDateTime: "DateTime",
	TypeDate:     "Date",
	TypeUUID:     "UUID",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// 时间字符串的解析顺序，覆盖 RFC3339 与各驱动的默认文本格式
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Typecast converts v to the canonical Go value of t:
//
//	String   -> string
//	Serial   -> int64
//	Integer  -> int64
//	Boolean  -> bool
//	DateTime -> time.Time
//	Date     -> datatypes.Date (midnight in the value's location)
//	UUID     -> uuid.UUID
//
// nil is passed through so that unset stays unset.
func (t Type) Typecast(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch t {
	case TypeString:
		switch x := v.(type) {
		case string:
			return x, nil
		case fmt.Stringer:
			return x.String(), nil
		}
	case TypeSerial, TypeInteger:
		return toInt64(v)
	case TypeBoolean:
		switch x := v.(type) {
		case bool:
			return x, nil
		case int64:
			return x != 0, nil
		case string:
			b, err := strconv.ParseBool(x)
			if err == nil {
				return b, nil
			}
		}
	case TypeDateTime:
		tm, ok, err := toTime(v)
		if err != nil || !ok {
			return nil, err
		}
		return tm, nil
	case TypeDate:
		tm, ok, err := toTime(v)
		if err != nil || !ok {
			return nil, err
		}
		return ToDate(tm), nil
	case TypeUUID:
		switch x := v.(type) {
		case uuid.UUID:
			return x, nil
		case string:
			id, err := uuid.Parse(x)
			if err != nil {
				return nil, errors.MarkWrapf(err, ErrInvalidValue, "parse uuid %q", x)
			}
			return id, nil
		}
	}
	return nil, errors.MarkPrefixWrapf(errors.Newf("cannot cast %T to %s", v, t), ErrInvalidValue, "typecast")
}

// ToDate truncates tm to a calendar date in tm's location.
func ToDate(tm time.Time) datatypes.Date {
	y, m, d := tm.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, tm.Location()))
}

func toTime(v any) (time.Time, bool, error) {
	switch x := v.(type) {
	case time.Time:
		return x, true, nil
	case *time.Time:
		if x == nil {
			return time.Time{}, false, nil
		}
		return *x, true, nil
	case datatypes.Date:
		return time.Time(x), true, nil
	case *datatypes.Date:
		if x == nil {
			return time.Time{}, false, nil
		}
		return time.Time(*x), true, nil
	case string:
		for _, layout := range timeLayouts {
			if tm, err := time.Parse(layout, x); err == nil {
				return tm, true, nil
			}
		}
		return time.Time{}, false, errors.MarkPrefixWrapf(errors.Newf("unrecognized time %q", x), ErrInvalidValue, "typecast")
	}
	return time.Time{}, false, errors.MarkPrefixWrapf(errors.Newf("cannot cast %T to time", v), ErrInvalidValue, "typecast")
}

func toInt64(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			break
		}
		return int64(x), nil
	case float64:
		if x == math.Trunc(x) {
			return int64(x), nil
		}
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return nil, errors.MarkWrapf(err, ErrInvalidValue, "parse integer %q", x)
		}
		return n, nil
	}
	return nil, errors.MarkPrefixWrapf(errors.Newf("cannot cast %T to integer", v), ErrInvalidValue, "typecast")
}

// blank reports whether v fails a required check.
func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case time.Time:
		return x.IsZero()
	case datatypes.Date:
		return time.Time(x).IsZero()
	case uuid.UUID:
		return x == uuid.Nil
	}
	return false
}

func equal(a, b any) bool {
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case datatypes.Date:
		y, ok := b.(datatypes.Date)
		return ok && time.Time(x).Equal(time.Time(y))
	}
	return a == b
}
