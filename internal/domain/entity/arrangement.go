package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/feedwall/internal/domain/validation"
)

// ErrInvalidLayout is returned when a persisted layout is structurally invalid.
var ErrInvalidLayout = errors.New("invalid layout")

// Arrangement is the ordered list [main, secondary, sub0, sub1, ...].
// Index 1 holds NoSite when there is no secondary panel.
type Arrangement []SiteID

// Main returns the site at index 0, or NoSite.
func (a Arrangement) Main() SiteID {
	if len(a) == 0 {
		return NoSite
	}
	return a[0]
}

// Secondary returns the site at index 1, or NoSite.
func (a Arrangement) Secondary() SiteID {
	if len(a) < 2 {
		return NoSite
	}
	return a[1]
}

// Subs returns the sub panels in display order.
func (a Arrangement) Subs() []SiteID {
	if len(a) <= 2 {
		return nil
	}
	return append([]SiteID(nil), a[2:]...)
}

// Clone returns an independent copy.
func (a Arrangement) Clone() Arrangement {
	if a == nil {
		return nil
	}
	return append(Arrangement(nil), a...)
}

// Equal reports element-wise equality.
func (a Arrangement) Equal(b Arrangement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Strings converts the arrangement to plain strings.
func (a Arrangement) Strings() []string {
	out := make([]string, len(a))
	for i, id := range a {
		out[i] = string(id)
	}
	return out
}

// ArrangementFromStrings builds an arrangement from plain strings.
func ArrangementFromStrings(slots []string) Arrangement {
	out := make(Arrangement, len(slots))
	for i, s := range slots {
		out[i] = SiteID(s)
	}
	return out
}

// StoredLayout is the persisted shape of the "layout" setting.
type StoredLayout struct {
	Slots []string `json:"slots" validate:"required,min=1"`
}

// ToStoredLayout converts an arrangement to its persisted shape.
func (a Arrangement) ToStoredLayout() StoredLayout {
	return StoredLayout{Slots: a.Strings()}
}

// IsValidArrangement reports whether candidate is a record with a non-empty
// "slots" sequence made only of strings. Site identifiers are not checked
// against the configured sites here.
func IsValidArrangement(candidate any) bool {
	switch c := candidate.(type) {
	case nil:
		return false
	case StoredLayout:
		return validation.Struct(c) == nil
	case *StoredLayout:
		return c != nil && validation.Struct(*c) == nil
	case map[string]any:
		return validSlotsValue(c["slots"])
	case json.RawMessage:
		return validJSONLayout(c)
	case []byte:
		return validJSONLayout(c)
	default:
		return false
	}
}

func validJSONLayout(data []byte) bool {
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return false
	}
	return IsValidArrangement(record)
}

func validSlotsValue(v any) bool {
	switch slots := v.(type) {
	case []string:
		return len(slots) > 0
	case []any:
		if len(slots) == 0 {
			return false
		}
		for _, s := range slots {
			if _, ok := s.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ParseStoredLayout validates persisted JSON and converts it to an arrangement.
func ParseStoredLayout(data []byte) (Arrangement, error) {
	if !IsValidArrangement(json.RawMessage(data)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLayout, truncate(string(data), 80))
	}
	var stored StoredLayout
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return ArrangementFromStrings(stored.Slots), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
