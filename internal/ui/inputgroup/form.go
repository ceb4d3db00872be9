package inputgroup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Form is an ordered set of input groups with one focused at a time.
type Form struct {
	fields []Model
	focus  int
}

// NewForm builds a form and focuses its first field.
func NewForm(cfgs ...Config) (Form, tea.Cmd) {
	f := Form{fields: make([]Model, len(cfgs))}
	for i, c := range cfgs {
		f.fields[i] = New(c)
	}
	return f.FocusAt(0)
}

// Len returns the number of fields.
func (f Form) Len() int {
	return len(f.fields)
}

// Focused returns the index of the focused field.
func (f Form) Focused() int {
	return f.focus
}

// FocusAt moves focus to field i.
func (f Form) FocusAt(i int) (Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	i = (i%len(f.fields) + len(f.fields)) % len(f.fields)
	fields := make([]Model, len(f.fields))
	copy(fields, f.fields)
	for j := range fields {
		fields[j] = fields[j].Blur()
	}
	var cmd tea.Cmd
	fields[i], cmd = fields[i].Focus()
	f.fields = fields
	f.focus = i
	return f, cmd
}

// Next focuses the following field, wrapping around.
func (f Form) Next() (Form, tea.Cmd) {
	return f.FocusAt(f.focus + 1)
}

// Prev focuses the previous field, wrapping around.
func (f Form) Prev() (Form, tea.Cmd) {
	return f.FocusAt(f.focus - 1)
}

// AtLast reports whether the last field has focus.
func (f Form) AtLast() bool {
	return f.focus == len(f.fields)-1
}

// Field returns field i.
func (f Form) Field(i int) Model {
	return f.fields[i]
}

// Value returns the text of field i.
func (f Form) Value(i int) string {
	return f.fields[i].Value()
}

// SetValue sets the text of field i.
func (f Form) SetValue(i int, s string) Form {
	f.fields = f.clone()
	f.fields[i] = f.fields[i].SetValue(s)
	return f
}

// SetErrors sets the messages under field i.
func (f Form) SetErrors(i int, msgs ...string) Form {
	f.fields = f.clone()
	f.fields[i] = f.fields[i].SetErrors(msgs...)
	return f
}

// HasErrors reports whether any field shows a message.
func (f Form) HasErrors() bool {
	for _, fld := range f.fields {
		if len(fld.Errors()) > 0 {
			return true
		}
	}
	return false
}

// SetDisabled disables or enables every field.
func (f Form) SetDisabled(disabled bool) Form {
	f.fields = f.clone()
	for i := range f.fields {
		f.fields[i] = f.fields[i].SetDisabled(disabled)
	}
	return f
}

// Update forwards msg to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	f.fields = f.clone()
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return f, cmd
}

// View stacks the fields vertically.
func (f Form) View() string {
	parts := make([]string, len(f.fields))
	for i, fld := range f.fields {
		parts[i] = fld.View()
	}
	return strings.Join(parts, "\n\n")
}

func (f Form) clone() []Model {
	out := make([]Model, len(f.fields))
	copy(out, f.fields)
	return out
}
