package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/engrave/pkg/notation/annotation"
	"github.com/matzehuels/engrave/pkg/notation/barline"
)

// kindInfo describes one barline kind.
type kindInfo struct {
	Name     string           `json:"name"`
	Value    int              `json:"value"`
	Geometry barline.Geometry `json:"geometry"`
}

// kindList is everything a score document may name in its enumerations.
type kindList struct {
	Barlines []kindInfo `json:"barlines"`
	Justify  []string   `json:"justify"`
	VJustify []string   `json:"vjustify"`
}

func listKinds() kindList {
	var kl kindList
	for _, k := range barline.Kinds() {
		kl.Barlines = append(kl.Barlines, kindInfo{
			Name:     k.String(),
			Value:    int(k),
			Geometry: barline.GeometryFor(k),
		})
	}
	for j := annotation.Left; j.Valid(); j++ {
		kl.Justify = append(kl.Justify, j.String())
	}
	for v := annotation.Top; v.Valid(); v++ {
		kl.VJustify = append(kl.VJustify, v.String())
	}
	return kl
}

// kindsCommand creates the kinds command.
func (c *CLI) kindsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List barline kinds and their layout geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kl := listKinds()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(kl)
			}
			printKinds(cmd.OutOrStdout(), kl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// printKinds renders the barline table followed by the justification names.
func printKinds(w io.Writer, kl kindList) {
	rows := make([][]string, 0, len(kl.Barlines))
	for _, k := range kl.Barlines {
		m := k.Geometry.Metrics
		rows = append(rows, []string{
			k.Name,
			strconv.Itoa(k.Value),
			num(k.Geometry.Width),
			num(k.Geometry.Padding),
			num(m.XMin),
			num(m.XMax),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case col == 0:
				return StyleValue.Padding(0, 1)
			default:
				return StyleNumber.Padding(0, 1)
			}
		}).
		Headers("KIND", "VALUE", "WIDTH", "PADDING", "X MIN", "X MAX").
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render("justify:  ")+StyleValue.Render(strings.Join(kl.Justify, ", ")))
	fmt.Fprintln(w, StyleDim.Render("vjustify: ")+StyleValue.Render(strings.Join(kl.VJustify, ", ")))
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
