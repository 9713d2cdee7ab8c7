// Package dto содержит JSON-представления сущностей каталога.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout - формат дат в JSON.
const DateLayout = time.DateOnly

// ErrInvalidDate - сообщение об ошибке разбора даты.
const ErrInvalidDate = "invalid date, expected YYYY-MM-DD"

// Date - календарная дата без времени.
type Date struct {
	time.Time
}

// NewDate обрезает время до начала дня в UTC.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", ErrInvalidDate, err)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInvalidDate, err)
	}
	d.Time = t
	return nil
}
