package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/engrave/pkg/notation/barline"
)

func TestListKinds(t *testing.T) {
	kl := listKinds()
	if len(kl.Barlines) != len(barline.Kinds()) {
		t.Fatalf("listed %d barline kinds, want %d", len(kl.Barlines), len(barline.Kinds()))
	}
	for i, k := range barline.Kinds() {
		got := kl.Barlines[i]
		if got.Name != k.String() || got.Value != int(k) || got.Geometry != barline.GeometryFor(k) {
			t.Errorf("kind %d = %+v", i, got)
		}
	}
	if strings.Join(kl.Justify, ",") != "left,center,right,centerStem" {
		t.Errorf("justify = %v", kl.Justify)
	}
	if strings.Join(kl.VJustify, ",") != "top,center,bottom,centerStem" {
		t.Errorf("vjustify = %v", kl.VJustify)
	}
}

func TestKindsCommand(t *testing.T) {
	out, err := execute(t, newTestCLI(t), "kinds")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"KIND", "repeatBoth", "justify:", "centerStem"} {
		if !strings.Contains(out, want) {
			t.Errorf("kinds output missing %q", want)
		}
	}
}

func TestKindsCommandJSON(t *testing.T) {
	out, err := execute(t, newTestCLI(t), "kinds", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var kl kindList
	if err := json.Unmarshal([]byte(out), &kl); err != nil {
		t.Fatalf("kinds --json is not JSON: %v", err)
	}
	end := kl.Barlines[2]
	if end.Name != "end" || end.Geometry.Metrics.XMin != -5 {
		t.Errorf("end barline = %+v", end)
	}
}
