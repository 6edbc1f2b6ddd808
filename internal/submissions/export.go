package submissions

import (
	"encoding/csv"
	"io"
	"time"
)

// ExportFilename is the download name of the CSV export.
const ExportFilename = "contact_submissions.csv"

var exportHeader = []string{
	"Name", "Email", "Phone", "Service", "Event Type", "Event Date", "Message", "Form", "Submission Date",
}

// WriteCSV writes a header row and one row per submission in the given order.
func WriteCSV(w io.Writer, subs []*Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, sub := range subs {
		submitted := ""
		if !sub.SubmissionDate.IsZero() {
			submitted = sub.SubmissionDate.UTC().Format(time.RFC3339)
		}
		if err := cw.Write([]string{
			sub.Name,
			sub.Email,
			sub.Phone,
			sub.Service,
			sub.EventType,
			sub.EventDate,
			sub.Message,
			string(sub.Form),
			submitted,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
