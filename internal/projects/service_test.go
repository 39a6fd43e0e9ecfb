package projects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	projects map[int64]*Project
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{projects: make(map[int64]*Project)}
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListProjectsRequest) ([]ProjectWithClient, int, error) {
	var out []ProjectWithClient
	for _, p := range r.projects {
		if req.Status != nil && p.Status != *req.Status {
			continue
		}
		if req.ClientID != nil && p.ClientID != *req.ClientID {
			continue
		}
		out = append(out, ProjectWithClient{Project: *p, ClientName: "Musterfirma GmbH"})
	}
	return out, len(out), nil
}

func (r *memoryRepo) Create(ctx context.Context, project Project) (int64, error) {
	r.nextID++
	project.ID = r.nextID
	r.projects[project.ID] = &project
	return project.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	p, ok := r.projects[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["status"]; ok {
		p.Status = Status(v.(string))
	}
	if v, ok := updates["project_type"]; ok {
		p.ProjectType = Type(v.(string))
	}
	if v, ok := updates["total_value"]; ok {
		p.TotalValue = v.(float64)
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *memoryRepo) CountActive(ctx context.Context) (int, error) {
	n := 0
	for _, p := range r.projects {
		switch p.Status {
		case StatusPlanning, StatusInProgress, StatusReview:
			n++
		}
	}
	return n, nil
}

func TestCreateProjectStartsInPlanning(t *testing.T) {
	svc := NewService(newMemoryRepo())

	project, err := svc.Create(context.Background(), CreateProjectRequest{
		ClientID:    1,
		Name:        "Website Relaunch",
		ProjectType: TypeOnetime,
		TotalValue:  3500,
	})
	require.NoError(t, err)
	require.Equal(t, StatusPlanning, project.Status)
	require.Equal(t, 3500.0, project.TotalValue)
}

func TestCreateProjectRejectsInvertedDates(t *testing.T) {
	svc := NewService(newMemoryRepo())

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)
	_, err := svc.Create(context.Background(), CreateProjectRequest{
		ClientID:    1,
		Name:        "Online-Shop",
		ProjectType: TypeOnetime,
		StartDate:   &start,
		EndDate:     &end,
	})
	require.Error(t, err)
}

func TestUpdateProjectStatus(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	project, err := svc.Create(context.Background(), CreateProjectRequest{
		ClientID:    1,
		Name:        "Wartungsvertrag",
		ProjectType: TypeMonthly,
	})
	require.NoError(t, err)

	status := StatusInProgress
	updated, err := svc.Update(context.Background(), project.ID, UpdateProjectRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, updated.Status)

	n, err := repo.CountActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	status = StatusCompleted
	_, err = svc.Update(context.Background(), project.ID, UpdateProjectRequest{Status: &status})
	require.NoError(t, err)

	n, err = repo.CountActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestDeleteUnknownProject(t *testing.T) {
	svc := NewService(newMemoryRepo())
	require.ErrorIs(t, svc.Delete(context.Background(), 42), ErrNotFound)
}
