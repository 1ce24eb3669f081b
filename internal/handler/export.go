package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/owely/owely/internal/model"
)

// exportHeader fixes the CSV column order.
var exportHeader = []string{
	"id", "type", "amount", "description", "otherPerson", "isPaid", "createdAt", "paidAt",
}

// renderCSV renders export rows as CSV. Fields are quoted only when they
// contain a comma, with embedded quotes doubled; encoding/csv would also
// quote on bare quotes and newlines, which the export format does not.
func renderCSV(rows []model.DebtExportRow) string {
	var b strings.Builder

	b.WriteString(strings.Join(exportHeader, ","))
	b.WriteByte('\n')

	for _, row := range rows {
		fields := []string{
			strconv.FormatInt(row.ID, 10),
			string(row.Type),
			row.Amount.StringFixed(2),
			csvField(row.Description),
			csvField(row.OtherPerson),
			strconv.FormatBool(row.IsPaid),
			row.CreatedAt.UTC().Format(time.RFC3339),
			csvTime(row.PaidAt),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	return b.String()
}

// csvField quotes a field only if it contains a comma, doubling any
// embedded quotes inside the quoted form.
func csvField(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
