package notation

// ModifierContextState accumulates the space modifiers reserve around one
// horizontal note slot. The layout pass creates one per slot, hands it to
// each modifier's format step in order, and drops it afterwards. It is not
// safe for concurrent use.
type ModifierContextState struct {
	// TopTextLine is the next free text line above the note.
	TopTextLine float64 `json:"top_text_line"`
	// TextLine is the next free text line below the note.
	TextLine   float64 `json:"text_line"`
	LeftShift  float64 `json:"left_shift"`
	RightShift float64 `json:"right_shift"`
}

// NewModifierContextState returns a zeroed state for a fresh slot.
func NewModifierContextState() *ModifierContextState {
	return &ModifierContextState{}
}
