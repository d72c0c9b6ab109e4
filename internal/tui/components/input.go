package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormField is any component a form can cycle focus through.
type FormField interface {
	Focus(bool)
	IsFocused() bool
	HandleKey(string)
	RenderWithLabelWidth(int) string
}

// Input is a single-line text input.
type Input struct {
	label       string
	value       string
	placeholder string
	width       int
	focused     bool
	cursorPos   int
	maxLength   int
	required    bool
	err         string
}

// NewInput creates a new input field.
func NewInput(label string) *Input {
	return &Input{
		label:     label,
		width:     20,
		maxLength: 100,
	}
}

// SetValue sets the input value and moves the cursor to the end.
func (i *Input) SetValue(v string) *Input {
	i.value = v
	i.cursorPos = len(v)
	return i
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	if focused && i.cursorPos > len(i.value) {
		i.cursorPos = len(i.value)
	}
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current value.
func (i *Input) Value() string {
	return i.value
}

// HandleKey handles a key press.
func (i *Input) HandleKey(key string) {
	if !i.focused {
		return
	}

	switch key {
	case "backspace":
		if i.cursorPos > 0 {
			i.value = i.value[:i.cursorPos-1] + i.value[i.cursorPos:]
			i.cursorPos--
		}
	case "delete":
		if i.cursorPos < len(i.value) {
			i.value = i.value[:i.cursorPos] + i.value[i.cursorPos+1:]
		}
	case "left":
		if i.cursorPos > 0 {
			i.cursorPos--
		}
	case "right":
		if i.cursorPos < len(i.value) {
			i.cursorPos++
		}
	case "home", "ctrl+a":
		i.cursorPos = 0
	case "end", "ctrl+e":
		i.cursorPos = len(i.value)
	default:
		if len(key) == 1 && len(i.value) < i.maxLength {
			i.value = i.value[:i.cursorPos] + key + i.value[i.cursorPos:]
			i.cursorPos++
		}
	}
}

// Validate checks the required constraint and records the error inline.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(i.value) == "" {
		i.err = "Required"
		return false
	}
	i.err = ""
	return true
}

// RenderWithLabelWidth renders the field with the given label column
// width. A width of 0 renders the value alone.
func (i *Input) RenderWithLabelWidth(labelWidth int) string {
	labelStyle := lipgloss.NewStyle().Faint(true).Width(labelWidth)
	valueStyle := lipgloss.NewStyle()
	focusStyle := lipgloss.NewStyle().Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#CC4444"))
	mutedStyle := lipgloss.NewStyle().Faint(true)

	var display string
	switch {
	case i.value == "" && i.placeholder != "" && !i.focused:
		display = mutedStyle.Render(i.placeholder)
	case i.focused:
		before := i.value[:i.cursorPos]
		after := i.value[i.cursorPos:]
		display = focusStyle.Render(before + "_" + after)
	default:
		display = valueStyle.Render(i.value)
	}

	displayLen := len(i.value)
	if i.focused {
		displayLen++
	}
	if displayLen < i.width {
		display += strings.Repeat(" ", i.width-displayLen)
	}

	var result string
	if labelWidth > 0 {
		label := i.label
		if i.required {
			label += "*"
		}
		result = labelStyle.Render(label+":") + " " + display
	} else {
		result = display
	}

	if i.err != "" {
		result += " " + errStyle.Render(i.err)
	}

	return result
}

// Select is a horizontal option picker.
type Select struct {
	label    string
	options  []string
	selected int
	focused  bool
}

// NewSelect creates a new select field.
func NewSelect(label string, options []string) *Select {
	return &Select{
		label:   label,
		options: options,
	}
}

// SetSelected sets the selected index.
func (s *Select) SetSelected(idx int) *Select {
	if idx >= 0 && idx < len(s.options) {
		s.selected = idx
	}
	return s
}

// Focus sets the focus state.
func (s *Select) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Select) IsFocused() bool {
	return s.focused
}

// Value returns the selected option.
func (s *Select) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected]
	}
	return ""
}

// SelectedIndex returns the selected index.
func (s *Select) SelectedIndex() int {
	return s.selected
}

// HandleKey handles a key press.
func (s *Select) HandleKey(key string) {
	if !s.focused {
		return
	}

	switch key {
	case "left", "h":
		if s.selected > 0 {
			s.selected--
		}
	case "right", "l":
		if s.selected < len(s.options)-1 {
			s.selected++
		}
	}
}

// RenderWithLabelWidth renders the select with the given label column
// width.
func (s *Select) RenderWithLabelWidth(labelWidth int) string {
	labelStyle := lipgloss.NewStyle().Faint(true).Width(labelWidth)
	optStyle := lipgloss.NewStyle().Faint(true)
	selStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	if labelWidth > 0 {
		b.WriteString(labelStyle.Render(s.label + ":"))
		b.WriteString(" ")
	}

	for i, opt := range s.options {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case i == s.selected && s.focused:
			b.WriteString(selStyle.Render("[" + opt + "]"))
		case i == s.selected:
			b.WriteString(selStyle.Render("(" + opt + ")"))
		default:
			b.WriteString(optStyle.Render(" " + opt + " "))
		}
	}

	return b.String()
}

var (
	_ FormField = (*Input)(nil)
	_ FormField = (*Select)(nil)
)
