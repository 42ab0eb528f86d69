package chat

import "smartdrive/internal/modules/slots"

// Merge combines the extractor result with the model's raw updates. Model slots that
// normalize to Any or a concrete value win; omitted, UNSET or invalid model values
// keep the extractor's value, so a resolved slot never goes back to Unset.
func Merge(extracted slots.Slots, modelUpdates map[string]any) slots.Slots {
	merged := slots.Sanitize(extracted)
	proposed := slots.Normalize(modelUpdates)
	for _, n := range slots.Order {
		if v := proposed.Get(n); v.Resolved() {
			merged.Set(n, v)
		}
	}
	return slots.Sanitize(merged)
}
