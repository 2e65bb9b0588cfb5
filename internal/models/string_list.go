package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList хранится в jsonb-колонке как массив строк.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("string list: unsupported source type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// First: первый элемент или def для пустого списка.
func (l StringList) First(def string) string {
	if len(l) == 0 || l[0] == "" {
		return def
	}
	return l[0]
}
