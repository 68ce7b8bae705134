package import_records

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Format формат файла с записями
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat преобразует значение флага в Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "auto":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrUnsupportedFormat, s)
	}
}

const documentKey = "availabilities"

// ParseRecords разбирает записи из файла
// Поддерживаются список записей, документ {"availabilities": [...]} и карта дней {"2024-01-01": "dostepny"}.
// JSON является подмножеством YAML, поэтому оба формата читаются одним декодером; порядок записей сохраняется.
func ParseRecords(data []byte, format Format) ([]availability.Record, error) {
	if format == FormatJSON && !json.Valid(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrUnsupportedFormat)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if root.Kind == 0 {
		return nil, nil
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var records []availability.Record
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
	case yaml.MappingNode:
		if list := mappingValue(node, documentKey); list != nil {
			if err := list.Decode(&records); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, documentKey, err)
			}
			break
		}
		dayRecords, err := decodeDayMap(node)
		if err != nil {
			return nil, err
		}
		records = dayRecords
	default:
		return nil, fmt.Errorf("%w: expected list or mapping at top level", ErrUnsupportedFormat)
	}

	if len(records) > domain.MaxImportRecords {
		return nil, fmt.Errorf("%w: %d records exceeds limit of %d", ErrTooManyRecords, len(records), domain.MaxImportRecords)
	}

	return records, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// decodeDayMap карта дата -> статус в формате старого календаря по отдельным дням
func decodeDayMap(node *yaml.Node) ([]availability.Record, error) {
	records := make([]availability.Record, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: status for %q must be a string", ErrUnsupportedFormat, value.Line, key.Value)
		}
		records = append(records, availability.Record{
			Start:  key.Value,
			End:    key.Value,
			Status: value.Value,
		})
	}
	return records, nil
}
