package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/remind-api/internal/api/shared"
	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/service"
	"github.com/phrazzld/remind-api/internal/service/auth"
	"github.com/phrazzld/remind-api/internal/store"
)

// fakeUserService implements service.UserService backed by maps.
type fakeUserService struct {
	users       map[string]*domain.User
	logins      []string
	signUpErr   error
	authErr     error
	contactInfo map[string]service.ContactInfo
}

var _ service.UserService = (*fakeUserService)(nil)

func newFakeUserService() *fakeUserService {
	return &fakeUserService{
		users:       make(map[string]*domain.User),
		contactInfo: make(map[string]service.ContactInfo),
	}
}

func (f *fakeUserService) SignUp(
	_ context.Context,
	username, email, password, pushKey string,
) (*domain.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	user, err := domain.NewUser(username, email, password, pushKey)
	if err != nil {
		return nil, err
	}
	if _, exists := f.users[username]; exists {
		return nil, store.ErrUsernameExists
	}
	user.HashedPassword = "hashed:" + password
	user.Password = ""
	f.users[username] = user
	return user, nil
}

func (f *fakeUserService) Authenticate(
	_ context.Context,
	username, password string,
) (*domain.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	user, ok := f.users[username]
	if !ok || user.HashedPassword != "hashed:"+password {
		return nil, service.ErrInvalidCredentials
	}
	return user, nil
}

func (f *fakeUserService) RecordLogin(_ context.Context, username string, _ time.Time) {
	f.logins = append(f.logins, username)
}

func (f *fakeUserService) GetContactInfo(
	_ context.Context,
	username string,
) (service.ContactInfo, error) {
	info, ok := f.contactInfo[username]
	if !ok {
		return service.ContactInfo{}, store.ErrUserNotFound
	}
	return info, nil
}

// fakeTaskService implements service.TaskService backed by a map with
// insertion order.
type fakeTaskService struct {
	tasks       map[uuid.UUID]*domain.Task
	order       []uuid.UUID
	addErr      error
	setStatus   func(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Task, error)
	rolloverErr bool
}

var _ service.TaskService = (*fakeTaskService)(nil)

func newFakeTaskService() *fakeTaskService {
	return &fakeTaskService{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (f *fakeTaskService) put(task *domain.Task) {
	f.tasks[task.ID] = task
	f.order = append(f.order, task.ID)
}

func (f *fakeTaskService) Add(
	_ context.Context,
	owner, title string,
	status domain.Status,
	dueDate string,
	favorite bool,
	category string,
	priority domain.Priority,
	recurrence domain.Recurrence,
) (*domain.Task, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	task, err := domain.NewTask(owner, title, status, dueDate, favorite, category, priority, recurrence)
	if err != nil {
		return nil, err
	}
	f.put(task)
	return task, nil
}

func (f *fakeTaskService) Get(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskService) List(_ context.Context, owner string) ([]domain.Task, error) {
	var out []domain.Task
	for _, id := range f.order {
		if f.tasks[id].Owner == owner {
			out = append(out, *f.tasks[id])
		}
	}
	return out, nil
}

func (f *fakeTaskService) Update(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskService) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskService) Search(_ context.Context, owner, query string) ([]domain.Task, error) {
	all, _ := f.List(context.Background(), owner)
	var out []domain.Task
	for _, t := range all {
		if containsFold(t.Title, query) || containsFold(t.DueDate, query) ||
			containsFold(string(t.Status), query) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskService) DueOn(_ context.Context, dueDate string) ([]domain.Task, error) {
	var out []domain.Task
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok && t.DueDate == dueDate {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskService) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.Status,
) (*domain.Task, error) {
	if f.setStatus != nil {
		return f.setStatus(ctx, id, status)
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	task.Status = status
	copied := *task
	if f.rolloverErr {
		return &copied, service.ErrRolloverFailed
	}
	return &copied, nil
}

// fakeJWTService issues predictable tokens keyed by username.
type fakeJWTService struct {
	generateErr error
	validateErr error
}

var _ auth.JWTService = (*fakeJWTService)(nil)

func (f *fakeJWTService) GenerateToken(_ context.Context, username string) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "access-" + username, nil
}

func (f *fakeJWTService) GenerateRefreshToken(_ context.Context, username string) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "refresh-" + username, nil
}

func (f *fakeJWTService) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	if len(token) <= len("access-") || token[:len("access-")] != "access-" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{Username: token[len("access-"):], TokenType: "access"}, nil
}

func (f *fakeJWTService) ValidateRefreshToken(_ context.Context, token string) (*auth.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	if len(token) <= len("refresh-") || token[:len("refresh-")] != "refresh-" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{Username: token[len("refresh-"):], TokenType: "refresh"}, nil
}

// containsFold reports whether s contains substr case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// withUsername injects the authenticated username into the request
// context the way the auth middleware does.
func withUsername(r *http.Request, username string) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UsernameContextKey, username)
	return r.WithContext(ctx)
}
