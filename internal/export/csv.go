package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/solplan/internal/domain"
)

// utf8BOM lets spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

const csvDelimiter = ";"

// WriteCSV writes a BOM-prefixed, semicolon-delimited table with every
// cell quoted.
func WriteCSV(w io.Writer, projects []*domain.Project) error {
	var b strings.Builder
	b.WriteString(utf8BOM)
	writeCSVLine(&b, Headers)
	for _, r := range Flatten(projects) {
		b.WriteString("\n")
		writeCSVLine(&b, []string{
			strconv.Itoa(r.ProjectIndex),
			r.SiteName,
			strconv.FormatFloat(r.CapacityKWc, 'f', -1, 64),
			r.PhaseName,
			r.StartDate.Format(DateLayout),
			r.EndDate.Format(DateLayout),
			strconv.FormatFloat(r.DurationMonths, 'f', -1, 64),
			milestoneText(r.Milestone),
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCSVLine(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteString(csvDelimiter)
		}
		b.WriteString(`"`)
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteString(`"`)
	}
}
