package model

import (
	"encoding/json"
	"time"
)

// Attribute names shared by every collection.
const (
	AttrID        = "id"
	AttrCreatedAt = "createdAt"
	AttrUpdatedAt = "updatedAt"
)

// TimeLayout is the ISO-8601 form used for createdAt/updatedAt (UTC, milliseconds).
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Item is one stored record as attribute -> JSON value.
type Item map[string]any

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Str returns the attribute as a string, or "" when absent or not a string.
func (it Item) Str(attr string) string {
	s, _ := it[attr].(string)
	return s
}

func (it Item) Clone() Item {
	if it == nil {
		return nil
	}
	out := make(Item, len(it))
	for k, v := range it {
		switch l := v.(type) {
		case []string:
			v = append(make([]string, 0, len(l)), l...)
		case []any:
			v = append(make([]any, 0, len(l)), l...)
		}
		out[k] = v
	}
	return out
}

// Decode converts the item into one of the typed records below.
func (it Item) Decode(dst any) error {
	b, err := json.Marshal(it)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// ToItem converts a typed record back into its attribute form.
func ToItem(src any) (Item, error) {
	b, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var it Item
	if err := json.Unmarshal(b, &it); err != nil {
		return nil, err
	}
	return it, nil
}
