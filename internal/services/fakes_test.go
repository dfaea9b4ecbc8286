package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"boothly/internal/domain"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock returns a now func pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	createErr error
	getErr    error
	nextID    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	now time.Time
	err error
}

func (f *fakeTokenIssuer) Issue(user *domain.User, expiry time.Duration) (string, *domain.TokenClaims, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	claims := &domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenID:   "jti-" + user.ID,
		ExpiresAt: f.now.Add(expiry),
	}
	return "token-" + user.ID, claims, nil
}

// fakeRevocations implements domain.RevocationStore for tests.
type fakeRevocations struct {
	revoked map[string]time.Time
	err     error
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]time.Time)}
}

func (f *fakeRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[tokenID] = until
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, f.err
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	sent []*domain.WelcomeMessageEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeMessageEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeNotifier implements domain.Notifier for tests.
type fakeNotifier struct {
	mu       sync.Mutex
	sessions []domain.SessionChange
	events   []*domain.Event
	profiles []*domain.Profile
	err      error
}

func (f *fakeNotifier) SessionChanged(_ context.Context, change domain.SessionChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, change)
	return f.err
}

func (f *fakeNotifier) EventCreated(_ context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

func (f *fakeNotifier) ProfileSaved(_ context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles = append(f.profiles, p)
	return f.err
}

func (f *fakeNotifier) Close() error { return nil }

// fakeEventRepo implements domain.EventRepository in memory using EventQuery.Matches.
type fakeEventRepo struct {
	events    []*domain.Event
	created   []*domain.Event
	queries   []domain.EventQuery
	createErr error
	queryErr  error
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", len(f.events)+1)
	f.events = append(f.events, e)
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Query(_ context.Context, q domain.EventQuery) ([]*domain.Event, error) {
	f.queries = append(f.queries, q)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := make([]*domain.Event, 0)
	for _, e := range f.events {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// fakeProfileRepo implements domain.ProfileRepository for tests.
type fakeProfileRepo struct {
	byUser map[string]*domain.Profile
	err    error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *domain.Profile) error {
	if f.err != nil {
		return f.err
	}
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

type putCall struct {
	bucket    string
	path      string
	overwrite bool
}

// fakeStore implements domain.ObjectStore for tests.
type fakeStore struct {
	puts []putCall
	err  error
}

func (f *fakeStore) Put(_ context.Context, bucket, path string, _ *domain.Upload, overwrite bool) (*domain.StoredObject, error) {
	f.puts = append(f.puts, putCall{bucket: bucket, path: path, overwrite: overwrite})
	if f.err != nil {
		return nil, f.err
	}
	return &domain.StoredObject{Bucket: bucket, Path: path, URL: f.PublicURL(bucket, path)}, nil
}

func (f *fakeStore) PublicURL(bucket, path string) string {
	return "https://files.example.com/" + bucket + "/" + path
}
