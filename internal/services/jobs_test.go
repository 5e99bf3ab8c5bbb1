package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
)

func TestCreateJob_UnknownCreator(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeUserRepo(), newMemCache())

	for _, creator := range []string{uuid.NewString(), "nope"} {
		_, err := svc.CreateJob(context.Background(), models.CreateJobRequest{
			Title:       "Backend Engineer",
			Department:  "Engineering",
			Description: "Go services",
			CreatedBy:   creator,
		})
		if !errors.Is(err, ErrCreatorNotFound) {
			t.Fatalf("creator %q: expected ErrCreatorNotFound, got %v", creator, err)
		}
	}
}

func TestListJobs_CachedUntilCreate(t *testing.T) {
	recruiter := &models.User{ID: uuid.New(), Name: "Rita", Role: models.RoleRecruiter}
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, newFakeUserRepo(recruiter), newMemCache())
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, models.CreateJobRequest{
		Title:       "Backend Engineer",
		Department:  "Engineering",
		Description: "Go services",
		CreatedBy:   recruiter.ID.String(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != models.JobStatusOpen {
		t.Fatalf("expected new job to be Open, got %q", job.Status)
	}

	for i := 0; i < 2; i++ {
		list, err := svc.ListJobs(ctx, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].ID != job.ID.String() {
			t.Fatalf("unexpected list %+v", list)
		}
	}
	if jobs.listCalls != 1 {
		t.Fatalf("expected second list served from cache, repo called %d times", jobs.listCalls)
	}

	if _, err := svc.CreateJob(ctx, models.CreateJobRequest{
		Title:       "Data Engineer",
		Department:  "Data",
		Description: "Pipelines",
		CreatedBy:   recruiter.ID.String(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := svc.ListJobs(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || jobs.listCalls != 2 {
		t.Fatalf("expected cache invalidated after create, got %d jobs and %d repo calls", len(list), jobs.listCalls)
	}
}

func TestUpdateJobStatus(t *testing.T) {
	job := &models.Job{ID: uuid.New(), Status: models.JobStatusOpen}
	svc := NewJobService(newFakeJobRepo(job), newFakeUserRepo(), nil)
	ctx := context.Background()

	if err := svc.UpdateJobStatus(ctx, job.ID, "Archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.UpdateJobStatus(ctx, uuid.New(), models.JobStatusClosed); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := svc.UpdateJobStatus(ctx, job.ID, models.JobStatusClosed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != models.JobStatusClosed {
		t.Fatalf("expected job closed, got %q", job.Status)
	}
}
