// Package form layers field-level helpers over one branch of a tessera
// state tree: typed-by-convention field access, per-field change watching,
// reset to bind-time values, and rule-based validation.
//
// Validation never mutates state; it reads the current values and reports
// messages per field.
package form

import (
	"fmt"

	"github.com/roach88/tessera/tree"
)

// Rule checks one field value. A nil return means the value passes.
type Rule func(field string, value any) error

// Required fails on nil and on empty strings.
func Required() Rule {
	return func(field string, value any) error {
		if value == nil {
			return fmt.Errorf("%s is required", field)
		}
		if s, ok := value.(string); ok && s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// MinLength fails when a string value is shorter than n. Non-string values
// pass; combine with Required for presence.
func MinLength(n int) Rule {
	return func(field string, value any) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if len(s) < n {
			return fmt.Errorf("%s must be at least %d characters", field, n)
		}
		return nil
	}
}

// Form binds field operations to one branch of the tree. An empty path
// binds the root.
type Form struct {
	t       *tree.Tree
	path    []string
	initial map[string]any
	rules   map[string][]Rule
}

// Bind attaches a form to the branch at path and captures the current
// values as the reset baseline.
func Bind(t *tree.Tree, path ...string) (*Form, error) {
	f := &Form{
		t:     t,
		path:  path,
		rules: make(map[string][]Rule),
	}
	values := f.Values()
	if values == nil {
		return nil, fmt.Errorf("form: no branch at path %v", path)
	}
	f.initial = values
	return f, nil
}

// Set writes one field through the tree's update pipeline.
func (f *Form) Set(field string, value any) {
	f.t.Update(func(current tree.Snapshot) tree.Snapshot {
		return f.partial(map[string]any{field: value})
	})
}

// Get returns the current value of one field (nil when the field does not
// exist).
func (f *Form) Get(field string) any {
	cell, ok := f.t.Cell(append(f.path, field)...)
	if !ok {
		return nil
	}
	return cell.Peek()
}

// Values materializes the bound branch as a plain record, or nil when the
// path does not resolve to a branch.
func (f *Form) Values() map[string]any {
	snap := f.t.Unwrap()
	var cur any = map[string]any(snap)
	for _, key := range f.path {
		rec, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = rec[key]
	}
	rec, ok := cur.(map[string]any)
	if !ok {
		return nil
	}
	return rec
}

// Reset writes the bind-time values back through the update pipeline.
func (f *Form) Reset() {
	f.t.Update(func(current tree.Snapshot) tree.Snapshot {
		return f.partial(f.initial)
	})
}

// Watch observes committed changes of one field's cell.
func (f *Form) Watch(field string, fn func(old, new any)) (func(), error) {
	cell, ok := f.t.Cell(append(f.path, field)...)
	if !ok {
		return nil, fmt.Errorf("form: no field %q at path %v", field, f.path)
	}
	return cell.Watch(fn), nil
}

// AddRule appends validation rules for one field.
func (f *Form) AddRule(field string, rules ...Rule) {
	f.rules[field] = append(f.rules[field], rules...)
}

// Validate runs every rule against the current values and returns messages
// keyed by field. An empty map means the form passes.
func (f *Form) Validate() map[string][]string {
	problems := make(map[string][]string)
	values := f.Values()
	for field, rules := range f.rules {
		for _, rule := range rules {
			if err := rule(field, values[field]); err != nil {
				problems[field] = append(problems[field], err.Error())
			}
		}
	}
	return problems
}

// partial wraps field values in the nested record shape of the bind path.
func (f *Form) partial(fields map[string]any) tree.Snapshot {
	value := fields
	for i := len(f.path) - 1; i >= 0; i-- {
		value = map[string]any{f.path[i]: any(value)}
	}
	return tree.Snapshot(value)
}
