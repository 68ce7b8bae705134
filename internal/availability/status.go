package availability

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status статус доступности дня (закрытое перечисление)
type Status string

// Строковые значения совпадают с теми, что хранятся в существующих записях календаря
const (
	StatusAvailable          Status = "Dostępny"
	StatusPartiallyAvailable Status = "Częściowo dostępny"
	StatusUnavailable        Status = "Niedostępny"
)

// AllStatuses все допустимые статусы в порядке отображения
var AllStatuses = []Status{
	StatusAvailable,
	StatusPartiallyAvailable,
	StatusUnavailable,
}

// statusAliases альтернативные написания статусов, которые принимаются на входе
// Ключи в нижнем регистре.
var statusAliases = map[string]Status{
	"dostępny":            StatusAvailable,
	"częściowo dostępny":  StatusPartiallyAvailable,
	"niedostępny":         StatusUnavailable,
	"available":           StatusAvailable,
	"partially_available": StatusPartiallyAvailable,
	"partially available": StatusPartiallyAvailable,
	"unavailable":         StatusUnavailable,
	// коды старого календаря по отдельным дням
	"dostepny":    StatusAvailable,
	"zajety":      StatusPartiallyAvailable,
	"niedostepny": StatusUnavailable,
}

// ParseStatus преобразует строку в Status
// Принимает каноничные значения, английские алиасы и коды старого календаря (без учета регистра).
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if status, ok := statusAliases[key]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsValid возвращает true для одного из трех каноничных значений
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPartiallyAvailable, StatusUnavailable:
		return true
	default:
		return false
	}
}

// Code короткий машинный код статуса (для CSS-классов, экспорта, метрик)
func (s Status) Code() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusPartiallyAvailable:
		return "partially_available"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// String возвращает каноничное значение
func (s Status) String() string {
	return string(s)
}

// UnmarshalJSON принимает любое написание, известное ParseStatus
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
