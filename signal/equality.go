package signal

import "reflect"

// Equality decides whether a proposed write actually changes a signal's
// value. Writes gated out by equality do not bump the version, do not
// invalidate dependents, and do not notify watchers.
type Equality func(old, new any) bool

// Strict compares with == when both values share a comparable type.
// Values of uncomparable types (slices, maps, functions) always compare
// unequal, so every write to an array-valued cell counts as a change.
//
// This is the default equality for new signals.
func Strict(old, new any) bool {
	if old == nil || new == nil {
		return old == nil && new == nil
	}
	ta, tb := reflect.TypeOf(old), reflect.TypeOf(new)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return false
	}
	return old == new
}

// Deep compares with reflect.DeepEqual. Use for trees whose cells hold
// slices or nested records and where structural sameness should suppress
// notification.
func Deep(old, new any) bool {
	return reflect.DeepEqual(old, new)
}

// Never reports every write as a change, even when the value is identical.
// Useful for cells used purely as event pulses.
func Never(old, new any) bool {
	return false
}
