package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dukerupert/pantry/internal/model"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func tagOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printItems(w io.Writer, items []model.Item) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tQTY\tEXPIRES\tFRESHNESS\tGROUP\tNOTE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			it.Name, it.Quantity, it.ExpiryDate.Format(model.DateLayout),
			tagOrDash(it.Freshness.String()), tagOrDash(it.FoodGroup.String()), it.CustomTag)
	}
	return tw.Flush()
}

func printContainerItems(w io.Writer, items []model.ContainerItem) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTAINER\tNAME\tQTY\tEXPIRES\tFRESHNESS\tGROUP")
	for _, ci := range items {
		it := ci.Item
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			ci.Container, it.Name, it.Quantity, it.ExpiryDate.Format(model.DateLayout),
			tagOrDash(it.Freshness.String()), tagOrDash(it.FoodGroup.String()))
	}
	return tw.Flush()
}
