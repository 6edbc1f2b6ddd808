package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/thebar-catering/thebar-site/internal/apiclient"
	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// Status is the dashboard's load state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Downloader stores an exported file and returns where it went.
type Downloader interface {
	Save(filename string, data []byte) (string, error)
}

// UI shows transient alerts to the operator.
type UI interface {
	Alert(message string)
}

// DirDownloader writes downloads into a directory.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Save(filename string, data []byte) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("admin: create download dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("admin: write download: %w", err)
	}
	return path, nil
}

// Dashboard lists and exports submissions for an authenticated operator.
type Dashboard struct {
	gate       *Gate
	api        API
	downloader Downloader
	ui         UI
	locale     i18n.Locale
	logger     *logging.Logger

	mu     sync.Mutex
	rows   []submissions.Submission
	status Status
	err    error
	// gen is bumped on logout so in-flight loads can tell they are stale.
	gen uint64
}

// NewDashboard wires a dashboard to the gate. The cached list is dropped on
// every logout.
func NewDashboard(gate *Gate, api API, downloader Downloader, ui UI, locale i18n.Locale, logger *logging.Logger) *Dashboard {
	if logger == nil {
		logger = logging.Default()
	}
	if !locale.Supported() {
		locale = i18n.Fallback
	}
	d := &Dashboard{
		gate:       gate,
		api:        api,
		downloader: downloader,
		ui:         ui,
		locale:     locale,
		logger:     logger,
	}
	gate.OnLogout(d.reset)
	return d
}

// Load fetches the list. A rejected token logs the operator out; any other
// failure leaves the dashboard in StatusFailed until Retry.
func (d *Dashboard) Load(ctx context.Context) error {
	token, err := d.gate.Token()
	if err != nil {
		return err
	}

	d.mu.Lock()
	if d.status == StatusLoading {
		d.mu.Unlock()
		return nil
	}
	d.status = StatusLoading
	gen := d.gen
	d.mu.Unlock()

	rows, err := d.api.ListSubmissions(ctx, token)
	if err != nil {
		if apiclient.IsAuth(err) {
			d.gate.ForceLogout()
			return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
		}
		d.mu.Lock()
		if d.gen != gen {
			d.mu.Unlock()
			return ErrNotAuthenticated
		}
		d.status = StatusFailed
		d.err = err
		d.mu.Unlock()
		d.logger.Warn("failed to load submissions", "error", err)
		return err
	}

	d.mu.Lock()
	if d.gen != gen {
		d.mu.Unlock()
		return ErrNotAuthenticated
	}
	if _, err := d.gate.Token(); err != nil {
		d.status = StatusIdle
		d.mu.Unlock()
		return err
	}
	d.rows = rows
	d.status = StatusReady
	d.err = nil
	d.mu.Unlock()
	return nil
}

// Retry re-issues Load.
func (d *Dashboard) Retry(ctx context.Context) error {
	return d.Load(ctx)
}

// Export downloads the CSV and saves it as contact_submissions.csv. On failure
// the operator gets an alert and the displayed rows are left as they were.
func (d *Dashboard) Export(ctx context.Context) (string, error) {
	token, err := d.gate.Token()
	if err != nil {
		return "", err
	}

	data, err := d.api.ExportCSV(ctx, token)
	if err != nil {
		if apiclient.IsAuth(err) {
			d.gate.ForceLogout()
		}
		d.alert(i18n.ExportFailed)
		d.logger.Warn("csv export failed", "error", err)
		return "", err
	}

	path, err := d.downloader.Save(submissions.ExportFilename, data)
	if err != nil {
		d.alert(i18n.ExportFailed)
		return "", err
	}
	return path, nil
}

func (d *Dashboard) alert(key i18n.Key) {
	if d.ui != nil {
		d.ui.Alert(i18n.T(d.locale, key))
	}
}

func (d *Dashboard) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.rows = nil
	d.status = StatusIdle
	d.err = nil
}

// Rows returns the loaded submissions in backend order.
func (d *Dashboard) Rows() []submissions.Submission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]submissions.Submission(nil), d.rows...)
}

// Count is the number of loaded submissions.
func (d *Dashboard) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rows)
}

// Empty reports a successful load that returned nothing.
func (d *Dashboard) Empty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status == StatusReady && len(d.rows) == 0
}

// Status returns the load state.
func (d *Dashboard) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Err returns the last load error while in StatusFailed.
func (d *Dashboard) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Render writes the list as a text table followed by the total.
func (d *Dashboard) Render(w io.Writer) error {
	d.mu.Lock()
	rows := append([]submissions.Submission(nil), d.rows...)
	status := d.status
	d.mu.Unlock()

	if status != StatusReady {
		return errors.New("admin: nothing loaded")
	}

	total := fmt.Sprintf("%s: %d\n", i18n.T(d.locale, i18n.TotalSubmissions), len(rows))
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s", i18n.T(d.locale, i18n.NoSubmissions), total)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBMITTED\tFORM\tNAME\tEMAIL\tPHONE\tSERVICE\tEVENT DATE\tMESSAGE")
	for _, sub := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			FormatDate(sub.SubmissionDate, d.locale),
			sub.Form,
			sub.Name,
			sub.Email,
			sub.Phone,
			sub.Offering(),
			sub.EventDate,
			truncate(sub.Message, 60),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("admin: render table: %w", err)
	}
	_, err := io.WriteString(w, total)
	return err
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
