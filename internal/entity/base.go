package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Base is embedded by every table. IDs are strings so fixtures and external
// references stay readable.
type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func scanJSON(obj, target any) error {
	switch t := obj.(type) {
	case string:
		return json.Unmarshal([]byte(t), target)
	case []byte:
		return json.Unmarshal(t, target)
	default:
		return fmt.Errorf("cannot scan invalid data type %T", obj)
	}
}

// Array stores a slice as a JSON column.
type Array[T any] []T

func (a *Array[T]) Scan(obj any) error {
	return scanJSON(obj, a)
}

func (a Array[T]) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Map stores loosely shaped data (rule descriptors, notification metadata)
// as a JSON column.
type Map map[string]any

func (m *Map) Scan(obj any) error {
	return scanJSON(obj, m)
}

func (m Map) Value() (driver.Value, error) {
	return json.Marshal(m)
}
