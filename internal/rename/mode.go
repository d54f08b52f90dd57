package rename

import "errors"

// ErrPatternRequired is returned when replace mode is requested without a pattern.
var ErrPatternRequired = errors.New("a pattern is required when a replacement is given")

// ModeKind selects how target names are produced.
type ModeKind int

const (
	// EditorMode lets the user edit the listing in a text editor.
	EditorMode ModeKind = iota
	// ReplaceMode derives targets by regex substitution.
	ReplaceMode
)

func (k ModeKind) String() string {
	switch k {
	case EditorMode:
		return "editor"
	case ReplaceMode:
		return "replace"
	default:
		return "unknown"
	}
}

// Mode is the resolved workflow of a run. Pattern is optional in editor mode.
type Mode struct {
	Kind        ModeKind
	Pattern     string
	Replacement string
}

// NewEditorMode returns an editor mode filtered by pattern ("" lists everything).
func NewEditorMode(pattern string) Mode {
	return Mode{Kind: EditorMode, Pattern: pattern}
}

// NewReplaceMode returns a replace mode. pattern must not be empty.
func NewReplaceMode(pattern, replacement string) (Mode, error) {
	if pattern == "" {
		return Mode{}, ErrPatternRequired
	}
	return Mode{Kind: ReplaceMode, Pattern: pattern, Replacement: replacement}, nil
}

// ResolveMode picks the mode from the positional arguments
// [PATTERN] [REPLACEMENT]. A second argument selects replace mode.
func ResolveMode(args []string) (Mode, error) {
	switch len(args) {
	case 0:
		return NewEditorMode(""), nil
	case 1:
		return NewEditorMode(args[0]), nil
	case 2:
		return NewReplaceMode(args[0], args[1])
	default:
		return Mode{}, errors.New("expected at most a pattern and a replacement")
	}
}
