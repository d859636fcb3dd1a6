package canvas

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/engrave/pkg/fonts"
)

// Primitive names recorded by [Recorder].
const (
	OpFillRect   = "fillRect"
	OpBeginPath  = "beginPath"
	OpArc        = "arc"
	OpFill       = "fill"
	OpFillText   = "fillText"
	OpSetFont    = "setFont"
	OpSave       = "save"
	OpRestore    = "restore"
	OpOpenGroup  = "openGroup"
	OpCloseGroup = "closeGroup"
)

// Op is one recorded drawing call.
type Op struct {
	Name  string      `json:"op"`
	Args  []float64   `json:"args,omitempty"`
	CCW   bool        `json:"ccw,omitempty"`
	Text  string      `json:"text,omitempty"`
	Font  *fonts.Font `json:"font,omitempty"`
	Class string      `json:"class,omitempty"`
	ID    string      `json:"id,omitempty"`
}

// Rect is a recorded fillRect call.
type Rect struct {
	X, Y, W, H float64
}

// Text is a recorded fillText call.
type Text struct {
	Text string
	X, Y float64
	Font fonts.Font
}

// Recorder is a [Surface] that keeps every call in order.
type Recorder struct {
	width, height float64
	ops           []Op
	font          stateStack
}

var _ Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder for a width x height drawing.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height, font: newStateStack()}
}

func (r *Recorder) add(op Op) { r.ops = append(r.ops, op) }

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(Op{Name: OpFillRect, Args: []float64{x, y, w, h}})
}

func (r *Recorder) BeginPath() { r.add(Op{Name: OpBeginPath}) }

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	r.add(Op{Name: OpArc, Args: []float64{x, y, radius, startAngle, endAngle}, CCW: ccw})
}

func (r *Recorder) Fill() { r.add(Op{Name: OpFill}) }

func (r *Recorder) FillText(text string, x, y float64) {
	f := r.font.cur.font
	r.add(Op{Name: OpFillText, Args: []float64{x, y}, Text: text, Font: &f})
}

func (r *Recorder) SetFont(f fonts.Font) {
	r.font.cur.font = f
	r.add(Op{Name: OpSetFont, Font: &f})
}

func (r *Recorder) Save() {
	r.font.save()
	r.add(Op{Name: OpSave})
}

func (r *Recorder) Restore() {
	r.font.restore()
	r.add(Op{Name: OpRestore})
}

func (r *Recorder) OpenGroup(class, id string) {
	r.add(Op{Name: OpOpenGroup, Class: class, ID: id})
}

func (r *Recorder) CloseGroup() { r.add(Op{Name: OpCloseGroup}) }

// Ops returns the recorded calls in order.
func (r *Recorder) Ops() []Op { return r.ops }

// Names returns the name of every recorded call in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.ops))
	for i, op := range r.ops {
		names[i] = op.Name
	}
	return names
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Rects returns the recorded fillRect calls.
func (r *Recorder) Rects() []Rect {
	var out []Rect
	for _, op := range r.ops {
		if op.Name == OpFillRect {
			out = append(out, Rect{X: op.Args[0], Y: op.Args[1], W: op.Args[2], H: op.Args[3]})
		}
	}
	return out
}

// Texts returns the recorded fillText calls.
func (r *Recorder) Texts() []Text {
	var out []Text
	for _, op := range r.ops {
		if op.Name == OpFillText {
			out = append(out, Text{Text: op.Text, X: op.Args[0], Y: op.Args[1], Font: *op.Font})
		}
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.ops = nil
	r.font = newStateStack()
}

// Balanced reports an error when save/restore or group calls are unpaired
// or interleaved.
func (r *Recorder) Balanced() error {
	var stack []string
	for i, op := range r.ops {
		switch op.Name {
		case OpSave, OpOpenGroup:
			stack = append(stack, op.Name)
		case OpRestore, OpCloseGroup:
			want := OpSave
			if op.Name == OpCloseGroup {
				want = OpOpenGroup
			}
			if len(stack) == 0 || stack[len(stack)-1] != want {
				return fmt.Errorf("op %d: %s without matching %s", i, op.Name, want)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("%d unclosed %s", len(stack), stack[len(stack)-1])
	}
	return nil
}

type recording struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// Encode returns the recording as indented JSON.
func (r *Recorder) Encode() ([]byte, error) {
	ops := r.ops
	if ops == nil {
		ops = []Op{}
	}
	return json.MarshalIndent(recording{Width: r.width, Height: r.height, Ops: ops}, "", "  ")
}

func (r *Recorder) Format() string { return "json" }
