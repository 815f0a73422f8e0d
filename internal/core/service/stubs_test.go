package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	if created.ID == "" {
		r.seq++
		created.ID = "user-" + strconv.Itoa(r.seq)
	}
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.users[u.ID] = cloneUser(u)
	return u
}

type stubSessionStore struct {
	sessions  map[string]*domain.Session
	deleted   []string
	createErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess *domain.Session) error {
	if s.createErr != nil {
		return s.createErr
	}
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubAnimalRepo struct {
	animals map[string]*domain.Animal
	seq     int
}

func newStubAnimalRepo() *stubAnimalRepo {
	return &stubAnimalRepo{animals: make(map[string]*domain.Animal)}
}

func (r *stubAnimalRepo) Create(_ context.Context, a *domain.Animal) (string, error) {
	r.seq++
	id := "animal-" + strconv.Itoa(r.seq)
	clone := *a
	clone.ID = id
	r.animals[id] = &clone
	return id, nil
}

func (r *stubAnimalRepo) FindByID(_ context.Context, id string) (*domain.Animal, error) {
	a, ok := r.animals[id]
	if !ok {
		return nil, domain.ErrAnimalNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAnimalRepo) Update(_ context.Context, a *domain.Animal) error {
	if _, ok := r.animals[a.ID]; !ok {
		return domain.ErrAnimalNotFound
	}
	clone := *a
	r.animals[a.ID] = &clone
	return nil
}

func (r *stubAnimalRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.animals[id]; !ok {
		return domain.ErrAnimalNotFound
	}
	delete(r.animals, id)
	return nil
}

func (r *stubAnimalRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Animal, error) {
	var out []*domain.Animal
	for _, a := range r.animals {
		if ownerID == "" || a.OwnerID == ownerID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubConsultationRepo mirrors the conditional writes of the Mongo repo.
type stubConsultationRepo struct {
	items map[string]*domain.Consultation
	seq   int
}

func newStubConsultationRepo() *stubConsultationRepo {
	return &stubConsultationRepo{items: make(map[string]*domain.Consultation)}
}

func (r *stubConsultationRepo) Create(_ context.Context, c *domain.Consultation) (string, error) {
	r.seq++
	id := "consult-" + strconv.Itoa(r.seq)
	clone := *c
	clone.ID = id
	r.items[id] = &clone
	return id, nil
}

func (r *stubConsultationRepo) FindByID(_ context.Context, id string) (*domain.Consultation, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrConsultationNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubConsultationRepo) List(_ context.Context, f ports.ConsultationFilter) ([]*domain.Consultation, error) {
	var out []*domain.Consultation
	for _, c := range r.items {
		if f.DoctorID != "" && c.DoctorID != f.DoctorID {
			continue
		}
		if f.FarmerID != "" && c.FarmerID != f.FarmerID {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubConsultationRepo) UpdateDetails(_ context.Context, c *domain.Consultation) error {
	stored, ok := r.items[c.ID]
	if !ok {
		return domain.ErrConsultationNotFound
	}
	if stored.Status != domain.StatusPending {
		return domain.ErrConsultationLocked
	}
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *stubConsultationRepo) DeletePending(_ context.Context, id string) error {
	stored, ok := r.items[id]
	if !ok {
		return domain.ErrConsultationNotFound
	}
	if stored.Status != domain.StatusPending {
		return domain.ErrConsultationLocked
	}
	delete(r.items, id)
	return nil
}

func (r *stubConsultationRepo) UpdateStatus(_ context.Context, id string, from, to domain.ConsultationStatus, feedback string) error {
	stored, ok := r.items[id]
	if !ok {
		return domain.ErrConsultationNotFound
	}
	if stored.Status != from {
		return domain.ErrInvalidTransition
	}
	stored.Status = to
	if feedback != "" {
		stored.Feedback = feedback
	}
	return nil
}

type stubMessageRepo struct {
	items map[string]*domain.Message
	seq   int
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{items: make(map[string]*domain.Message)}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (string, error) {
	r.seq++
	id := "msg-" + strconv.Itoa(r.seq)
	clone := *m
	clone.ID = id
	r.items[id] = &clone
	return id, nil
}

func (r *stubMessageRepo) ListForUser(_ context.Context, userID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.items {
		if m.SenderID == userID || m.RecipientID == userID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, id, recipientID string) error {
	m, ok := r.items[id]
	if !ok || m.RecipientID != recipientID {
		return domain.ErrMessageNotFound
	}
	m.Read = true
	return nil
}

type stubContactRepo struct {
	items []*domain.ContactSubmission
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.ContactSubmission) (string, error) {
	clone := *c
	clone.ID = "contact-" + strconv.Itoa(len(r.items)+1)
	r.items = append(r.items, &clone)
	return clone.ID, nil
}

func (r *stubContactRepo) List(context.Context) ([]*domain.ContactSubmission, error) {
	return r.items, nil
}

// recordingNotifier captures notifications instead of sending them.
type recordingNotifier struct {
	welcomed []*domain.User
	booked   []*domain.Consultation
	extras   []*ports.BookingDetails
}

func (n *recordingNotifier) Welcome(_ context.Context, u *domain.User) {
	n.welcomed = append(n.welcomed, u)
}

func (n *recordingNotifier) BookingReceived(_ context.Context, c *domain.Consultation, extra *ports.BookingDetails) {
	n.booked = append(n.booked, c)
	n.extras = append(n.extras, extra)
}

type recordingQueue struct {
	mu   sync.Mutex
	msgs []domain.Email
	full bool
}

func (q *recordingQueue) Enqueue(msg domain.Email) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full {
		return false
	}
	q.msgs = append(q.msgs, msg)
	return true
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
