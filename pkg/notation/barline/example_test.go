package barline_test

import (
	"fmt"

	"github.com/matzehuels/engrave/pkg/notation/barline"
)

func ExampleGeometryFor() {
	g := barline.GeometryFor(barline.RepeatBegin)
	fmt.Println("width:", g.Width, "padding:", g.Padding)
	fmt.Println("x range:", g.Metrics.XMin, g.Metrics.XMax)
	// Output:
	// width: 5 padding: 15
	// x range: -2 10
}

func ExampleParseKind() {
	for _, s := range []string{"repeatEnd", "3", "wavy"} {
		k, err := barline.ParseKind(s)
		if err != nil {
			fmt.Println(s, "-> unknown")
			continue
		}
		fmt.Println(s, "->", k, int(k))
	}
	// Output:
	// repeatEnd -> repeatEnd 5
	// 3 -> end 3
	// wavy -> unknown
}

func ExampleBarline_SetKindValue() {
	b, _ := barline.New(barline.Single)
	// Setting a kind by number re-derives the same geometry as setting it by name.
	_ = b.SetKindValue(6)
	fmt.Println(b.Kind(), b.Padding(), b.LayoutMetrics().XMin)
	// Output:
	// repeatBoth 15 -10
}
