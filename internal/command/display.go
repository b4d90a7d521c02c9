package command

import (
	"time"

	"gorm.io/datatypes"
)

func display(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case datatypes.Date:
		return time.Time(x).Format(time.DateOnly)
	}
	return v
}
