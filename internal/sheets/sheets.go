// Package sheets mirrors new submissions into a Google Sheet the operator
// already works from.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

const dateLayout = "02.01.2006 15:04"

// Config identifies the target sheet.
type Config struct {
	SpreadsheetID string
	// Range is the A1 range rows are appended after, e.g. "Sheet1!A1".
	Range    string
	Location *time.Location
}

// Appender appends one row per submission.
type Appender struct {
	values   *sheetsapi.SpreadsheetsValuesService
	sheetID  string
	rng      string
	location *time.Location
	logger   *logging.Logger
}

// New builds an appender from client options, typically
// option.WithCredentialsFile. It returns nil, nil when no sheet is configured.
func New(ctx context.Context, cfg Config, logger *logging.Logger, opts ...option.ClientOption) (*Appender, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	opts = append([]option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}, opts...)
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	rng := cfg.Range
	if rng == "" {
		rng = "Sheet1!A1"
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Appender{
		values:   sheetsapi.NewSpreadsheetsValuesService(svc),
		sheetID:  cfg.SpreadsheetID,
		rng:      rng,
		location: loc,
		logger:   logger,
	}, nil
}

// Name identifies the channel in logs and metrics.
func (a *Appender) Name() string { return "sheets" }

// NotifySubmission appends the submission as a new row.
func (a *Appender) NotifySubmission(ctx context.Context, sub *submissions.Submission) error {
	if sub == nil {
		return errors.New("sheets: nil submission")
	}
	row := &sheetsapi.ValueRange{Values: [][]interface{}{Row(sub, a.location)}}
	resp, err := a.values.Append(a.sheetID, a.rng, row).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	updated := ""
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}
	a.logger.Info("submission appended to sheet", "submission_id", sub.ID, "range", updated)
	return nil
}

// Row is the sheet row for a submission. Column order follows the CSV export.
func Row(sub *submissions.Submission, loc *time.Location) []interface{} {
	if loc == nil {
		loc = time.UTC
	}
	return []interface{}{
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.Service,
		sub.EventType,
		sub.EventDate,
		sub.Message,
		string(sub.Form),
		sub.SubmissionDate.In(loc).Format(dateLayout),
	}
}
