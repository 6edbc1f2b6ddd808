package submissions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for submission storage. There is no update
// or delete: submissions are immutable once created.
type Repository interface {
	Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error)
	GetByID(ctx context.Context, id string) (*Submission, error)
	// List returns every submission, newest first.
	List(ctx context.Context) ([]*Submission, error)
}

// InMemoryRepository keeps submissions in process memory. Used in development
// when DATABASE_URL is unset, and in tests.
type InMemoryRepository struct {
	mu          sync.RWMutex
	submissions []*Submission
	byID        map[string]*Submission
	now         func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID: make(map[string]*Submission),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new submission in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	sub := &Submission{
		ID:             uuid.New().String(),
		Form:           req.Form,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Service:        req.Service,
		EventType:      req.EventType,
		EventDate:      req.EventDate,
		Message:        req.Message,
		Locale:         req.Locale,
		SubmissionDate: r.now(),
	}

	r.mu.Lock()
	r.submissions = append(r.submissions, sub)
	r.byID[sub.ID] = sub
	r.mu.Unlock()

	out := *sub
	return &out, nil
}

// GetByID retrieves a submission by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.byID[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	out := *sub
	return &out, nil
}

// List returns copies of all submissions, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Submission, 0, len(r.submissions))
	for i := len(r.submissions) - 1; i >= 0; i-- {
		sub := *r.submissions[i]
		out = append(out, &sub)
	}
	return out, nil
}
