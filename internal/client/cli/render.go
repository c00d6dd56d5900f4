package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/report"
	"github.com/dmitrijs2005/pantrykeeper/internal/views"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderItems prints items with their expiration status as of now.
func renderItems(w io.Writer, items []pantry.Item, now time.Time) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Quantity", "Expires", "Category", "Status", "Image"})
	for _, it := range items {
		status := views.ClassifyExpiration(it, now)
		st := status.String()
		if status == views.Expired {
			st = text.FgRed.Sprint(st)
		}
		image := ""
		if it.ImageURL != "" {
			image = "yes"
		}
		t.AppendRow(table.Row{it.ID, it.Name, it.Quantity, it.ExpirationDate.String(), it.Category, st, image})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(items)})
	t.Render()
}

func renderReport(w io.Writer, rep report.Report) {
	t := newTable(w)
	t.SetTitle("Pantry as of " + rep.AsOf.String())
	t.AppendHeader(table.Row{"Category", "Items", "Expired"})
	for _, row := range rep.Categories {
		t.AppendRow(table.Row{row.Category, row.TotalItems, row.ExpiredItems})
	}
	t.AppendFooter(table.Row{"Total", rep.Overall.TotalItems, rep.Overall.ExpiredItems})
	t.Render()
	fmt.Fprintf(w, "Categories in use: %d\n", rep.Overall.TotalCategories)
}
