package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

// ExportFilename is the suggested download name for exported results.
const ExportFilename = "bristol_parks_data.csv"

var exportHeader = []string{"Park Name", "Type", "Area", "Location", "Rating"}

// WriteCSV writes the header and one record per park in the given order.
// Area is the primary measure followed by its unit.
func WriteCSV(w io.Writer, parks []domain.Park) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, p := range parks {
		record := []string{
			p.SiteName,
			p.Type,
			formatNumber(p.PrimaryMeasure) + " " + p.Unit,
			p.Location,
			formatNumber(p.Rating),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write export record %d: %w", p.ObjectID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV renders WriteCSV output as a string.
func ExportCSV(parks []domain.Park) string {
	var b strings.Builder
	_ = WriteCSV(&b, parks) // strings.Builder writes never fail
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
