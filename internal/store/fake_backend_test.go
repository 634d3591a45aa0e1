package store

import (
	"context"
	"errors"
	"sync"
	"time"

	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/models"
)

var errBackendDown = apierrors.Unavailable(errors.New("connection refused"))

// fakeBackend keeps records in memory. Setting fail makes every call return it.
type fakeBackend struct {
	mu       sync.Mutex
	tasks    []models.Task
	projects []models.Project
	nextID   uint64
	fail     error
	calls    int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (f *fakeBackend) begin() error {
	f.calls++
	return f.fail
}

func (f *fakeBackend) id() uint64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeBackend) GetTasks(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]models.Task(nil), f.tasks...), nil
}

func (f *fakeBackend) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	task := input.NewTask(time.Now())
	if task.Title == "" {
		return nil, apierrors.NewValidationError("title is required")
	}
	task.ID = f.id()
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeBackend) UpdateTask(ctx context.Context, id uint64, patch models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i] = patch.Apply(f.tasks[i], time.Now())
			task := f.tasks[i]
			return &task, nil
		}
	}
	return nil, apierrors.NewNotFoundError("task not found")
}

func (f *fakeBackend) DeleteTask(ctx context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return false, err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBackend) GetProjects(ctx context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]models.Project(nil), f.projects...), nil
}

func (f *fakeBackend) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	project := models.Project{ID: f.id(), Name: input.Name, Color: input.Color, CreatedAt: time.Now()}
	f.projects = append(f.projects, project)
	return &project, nil
}

func (f *fakeBackend) UpdateProject(ctx context.Context, id uint64, patch models.ProjectPatch) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i] = patch.Apply(f.projects[i])
			project := f.projects[i]
			return &project, nil
		}
	}
	return nil, apierrors.NewNotFoundError("project not found")
}

func (f *fakeBackend) DeleteProject(ctx context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return false, err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			for j := range f.tasks {
				if f.tasks[j].ProjectID != nil && *f.tasks[j].ProjectID == id {
					f.tasks[j].ProjectID = nil
				}
			}
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBackend) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

// gatedBackend blocks updates and deletes until release is closed, then fails them
type gatedBackend struct {
	*fakeBackend
	entered chan struct{}
	release chan struct{}
}

func newGatedBackend() *gatedBackend {
	return &gatedBackend{
		fakeBackend: newFakeBackend(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (g *gatedBackend) hold() {
	g.entered <- struct{}{}
	<-g.release
}

func (g *gatedBackend) UpdateTask(ctx context.Context, id uint64, patch models.TaskPatch) (*models.Task, error) {
	g.hold()
	return nil, errBackendDown
}

func (g *gatedBackend) DeleteTask(ctx context.Context, id uint64) (bool, error) {
	g.hold()
	return false, errBackendDown
}

func (g *gatedBackend) UpdateProject(ctx context.Context, id uint64, patch models.ProjectPatch) (*models.Project, error) {
	g.hold()
	return nil, errBackendDown
}

func (g *gatedBackend) DeleteProject(ctx context.Context, id uint64) (bool, error) {
	g.hold()
	return false, errBackendDown
}
