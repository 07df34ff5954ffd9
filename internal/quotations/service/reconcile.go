package service

import "github.com/google/uuid"

// reconcileRemoved decides the soft-delete flag for one incoming line
// in a full-replacement batch. An explicit flag on the request always
// wins. A line that references an existing row without the flag carries
// that row's current state forward, so re-submitting a soft-deleted
// line does not silently resurrect it. Brand-new lines default to false.
func reconcileRemoved(explicit *bool, submittedID *uuid.UUID, existingRemoved map[uuid.UUID]bool) bool {
	if explicit != nil {
		return *explicit
	}
	if submittedID != nil {
		if removed, ok := existingRemoved[*submittedID]; ok {
			return removed
		}
	}
	return false
}
