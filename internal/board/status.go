package board

import (
	"fmt"
	"slices"
)

// excludedStatuses never get a lane. Matched exactly.
var excludedStatuses = []string{"Backlog", "Done"}

// ResolveStatuses returns the active options of the Status field in
// declared order. The result drives lane order.
func ResolveStatuses(fields Fields) ([]StatusOption, error) {
	field, ok := fields.Lookup(StatusFieldName)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", ErrConfiguration, ErrStatusFieldMissing, StatusFieldName)
	}

	active := make([]StatusOption, 0, len(field.Options))

	for _, opt := range field.Options {
		if IsExcludedStatus(opt.Name) {
			continue
		}

		active = append(active, opt)
	}

	return active, nil
}

// IsExcludedStatus reports whether name is a terminal or backlog bucket.
func IsExcludedStatus(name string) bool {
	return slices.Contains(excludedStatuses, name)
}
