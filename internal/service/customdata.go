package service

// Custom data reconciliation. A task's custom data is a sparse mapping from
// CustomField.Name to a scalar value. These transformations are pure: they never
// fail, and malformed input degrades to the empty mapping.

// NormalizeCustomData returns a new mapping containing only entries whose value is
// neither nil nor the empty string. A nil input yields an empty mapping, so custom
// data is never null at rest. The operation is idempotent.
func NormalizeCustomData(candidate map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(candidate))
	for key, value := range candidate {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

// MergeCustomData shallow-merges patch over existing (patch keys win, unrelated
// existing keys survive) and normalizes the result. A key present in patch with a
// nil or empty-string value is thereby removed: this is the deletion mechanism for
// clearing a single custom field on a task.
func MergeCustomData(existing, patch map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(existing)+len(patch))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range patch {
		merged[key] = value
	}
	return NormalizeCustomData(merged)
}

// PruneStaleCustomData returns the entries of data whose key is in validFieldNames.
// This is a presentation-time filter for deciding which fields to render; it is
// deliberately not applied before persistence, so stored custom data survives a
// field being deleted and re-added under the same name.
func PruneStaleCustomData(data map[string]interface{}, validFieldNames map[string]bool) map[string]interface{} {
	pruned := make(map[string]interface{}, len(data))
	for key, value := range data {
		if validFieldNames[key] {
			pruned[key] = value
		}
	}
	return pruned
}
