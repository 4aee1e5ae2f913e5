package ui

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// TableRow is one test case in a listing.
type TableRow struct {
	URI    string
	Line   int
	Name   string
	Tags   string
	Status string
}

// TestCaseTable renders rows as an aligned table with a count footer.
func TestCaseTable(w io.Writer, rows []TableRow) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Location", "Scenario", "Tags", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
	})

	for _, r := range rows {
		table.Append([]string{r.URI + ":" + strconv.Itoa(r.Line), r.Name, r.Tags, r.Status})
	}
	table.SetFooter([]string{"", fmt.Sprintf("Total %d", len(rows)), "", ""})

	table.Render()
	fmt.Fprint(w, buf.String())
}
