package board

import "errors"

// StatusFieldName is the project field that defines the lanes.
const StatusFieldName = "Status"

// Error variables for board resolution.
var (
	ErrConfiguration      = errors.New("configuration error")
	ErrStatusFieldMissing = errors.New("status field not found")
)
