package submissions

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebar-catering/thebar-site/internal/observability/metrics"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

type recordingNotifier struct {
	name string
	err  error
	got  []*Submission
}

func (n *recordingNotifier) Name() string { return n.name }

func (n *recordingNotifier) NotifySubmission(ctx context.Context, sub *Submission) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a bounded context")
	}
	n.got = append(n.got, sub)
	return n.err
}

type recordingArchiver struct {
	data []byte
	err  error
}

func (a *recordingArchiver) ArchiveExport(_ context.Context, data []byte, _ time.Time) (string, error) {
	a.data = append([]byte(nil), data...)
	return "exports/test.csv", a.err
}

type failingRepository struct{}

func (failingRepository) Create(context.Context, *CreateSubmissionRequest) (*Submission, error) {
	return nil, errors.New("boom")
}

func (failingRepository) GetByID(context.Context, string) (*Submission, error) {
	return nil, ErrSubmissionNotFound
}

func (failingRepository) List(context.Context) ([]*Submission, error) {
	return nil, errors.New("boom")
}

func newRedisGuard(t *testing.T) (*RedisDuplicateGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDuplicateGuard(client, 30*time.Second), mr
}

func TestServiceCreate_NotifiesEveryChannel(t *testing.T) {
	email := &recordingNotifier{name: "email"}
	sheets := &recordingNotifier{name: "sheets", err: errors.New("quota exceeded")}
	svc := NewService(ServiceConfig{
		Repo:      NewInMemoryRepository(),
		Notifiers: []Notifier{email, nil, sheets},
		Metrics:   metrics.NewSubmissionMetrics(prometheus.NewRegistry()),
		Logger:    logging.Discard(),
	})

	req := validContactRequest()
	sub, err := svc.Create(context.Background(), &req)
	require.NoError(t, err)

	require.Len(t, email.got, 1)
	require.Len(t, sheets.got, 1)
	assert.Equal(t, sub.ID, email.got[0].ID)
}

func TestServiceCreate_ValidationBlocksPersistence(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{name: "email"}
	svc := NewService(ServiceConfig{Repo: repo, Notifiers: []Notifier{notifier}, Logger: logging.Discard()})

	req := validContactRequest()
	req.Email = "not-an-email"
	_, err := svc.Create(context.Background(), &req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, IsClientError(err))

	subs, _ := repo.List(context.Background())
	assert.Empty(t, subs)
	assert.Empty(t, notifier.got)
}

func TestServiceCreate_RejectsDuplicateWithinWindow(t *testing.T) {
	guard, mr := newRedisGuard(t)
	repo := NewInMemoryRepository()
	svc := NewService(ServiceConfig{Repo: repo, Guard: guard, Logger: logging.Discard()})

	first := validContactRequest()
	_, err := svc.Create(context.Background(), &first)
	require.NoError(t, err)

	again := validContactRequest()
	again.Email = "JANA@example.com"
	_, err = svc.Create(context.Background(), &again)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)

	mr.FastForward(31 * time.Second)
	third := validContactRequest()
	_, err = svc.Create(context.Background(), &third)
	require.NoError(t, err)

	subs, _ := repo.List(context.Background())
	assert.Len(t, subs, 2)
}

func TestServiceCreate_ReleasesClaimOnFailure(t *testing.T) {
	guard, mr := newRedisGuard(t)
	svc := NewService(ServiceConfig{Repo: failingRepository{}, Guard: guard, Logger: logging.Discard()})

	req := validContactRequest()
	_, err := svc.Create(context.Background(), &req)
	require.Error(t, err)
	assert.False(t, IsClientError(err))
	assert.Empty(t, mr.Keys())
}

func TestServiceCreate_GuardOutageFailsOpen(t *testing.T) {
	guard, mr := newRedisGuard(t)
	mr.Close()
	svc := NewService(ServiceConfig{Repo: NewInMemoryRepository(), Guard: guard, Logger: logging.Discard()})

	req := validContactRequest()
	_, err := svc.Create(context.Background(), &req)
	assert.NoError(t, err)
}

func TestNewService_TypedNilGuardIsIgnored(t *testing.T) {
	svc := NewService(ServiceConfig{
		Repo:   NewInMemoryRepository(),
		Guard:  NewRedisDuplicateGuard(nil, time.Second),
		Logger: logging.Discard(),
	})
	req := validPopupRequest()
	_, err := svc.Create(context.Background(), &req)
	assert.NoError(t, err)
}

func TestServiceExportCSV(t *testing.T) {
	repo := NewInMemoryRepository()
	archiver := &recordingArchiver{err: errors.New("s3 down")}
	svc := NewService(ServiceConfig{Repo: repo, Archiver: archiver, Logger: logging.Discard()})

	for _, req := range []CreateSubmissionRequest{validContactRequest(), validPopupRequest()} {
		req := req
		_, err := svc.Create(context.Background(), &req)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	rows, err := svc.ExportCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Petr Svoboda"), "newest first")
	assert.Equal(t, buf.Bytes(), archiver.data)
}

func TestServiceExportCSV_RepositoryError(t *testing.T) {
	svc := NewService(ServiceConfig{Repo: failingRepository{}, Logger: logging.Discard()})

	var buf bytes.Buffer
	_, err := svc.ExportCSV(context.Background(), &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestFingerprint(t *testing.T) {
	a := validContactRequest()
	b := validContactRequest()
	b.Email = "Jana@Example.com"
	b.Phone = "+420 775 505 805"
	assert.Equal(t, Fingerprint(&a), Fingerprint(&b))

	c := validContactRequest()
	c.Message = "Different event"
	assert.NotEqual(t, Fingerprint(&a), Fingerprint(&c))
}

func TestInMemoryRepository(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	req := validContactRequest()
	created, err := repo.Create(ctx, &req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.SubmissionDate.IsZero())

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	found.Name = "mutated"
	again, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, "Jana Novak", again.Name)
}
