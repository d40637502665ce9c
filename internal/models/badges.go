package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BadgeList is a set of badge labels stored as a JSON text column.
type BadgeList []string

// Value implements driver.Valuer.
func (b BadgeList) Value() (driver.Value, error) {
	if len(b) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (b *BadgeList) Scan(value any) error {
	if value == nil {
		*b = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("unsupported badge list column type %T", value)
	}
}
