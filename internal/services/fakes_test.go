package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/repositories"
)

type statusWrite struct {
	id        uuid.UUID
	status    models.CandidateStatus
	dateHired *time.Time
}

type fakeCandidateRepo struct {
	mu           sync.Mutex
	candidates   map[uuid.UUID]*models.Candidate
	statusWrites []statusWrite
	indexUpdates []repositories.ResumeIndexUpdateData
	createErr    error
	resumeErr    error
}

func newFakeCandidateRepo(candidates ...*models.Candidate) *fakeCandidateRepo {
	r := &fakeCandidateRepo{candidates: make(map[uuid.UUID]*models.Candidate)}
	for _, c := range candidates {
		r.candidates[c.ID] = c
	}
	return r
}

func (r *fakeCandidateRepo) Create(_ context.Context, candidate *models.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, c := range r.candidates {
		if c.Email == candidate.Email {
			return fmt.Errorf("failed to create candidate: %w", repositories.ErrDuplicateEmail)
		}
	}
	copied := *candidate
	r.candidates[candidate.ID] = &copied
	return nil
}

func (r *fakeCandidateRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, fmt.Errorf("failed to find candidate: %w", repositories.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCandidateRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Candidate
	for _, id := range ids {
		if c, ok := r.candidates[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) Search(_ context.Context, filter repositories.CandidateSearchFilter) ([]models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(filter.Query)
	var out []models.Candidate
	for _, c := range r.candidates {
		if filter.JobID != nil && c.PositionApplied != *filter.JobID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(string(c.Status)), q) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCandidateRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.CandidateStatus, dateHired *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = status
	c.DateHired = dateHired
	r.statusWrites = append(r.statusWrites, statusWrite{id: id, status: status, dateHired: dateHired})
	return nil
}

func (r *fakeCandidateRepo) UpdateInterviewScore(_ context.Context, id uuid.UUID, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.InterviewScore = score
	return nil
}

func (r *fakeCandidateRepo) AppendNote(_ context.Context, id uuid.UUID, note models.Note) (models.Notes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c.Notes = append(c.Notes, note)
	return c.Notes, nil
}

func (r *fakeCandidateRepo) UpdateResume(_ context.Context, id uuid.UUID, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resumeErr != nil {
		return r.resumeErr
	}
	c, ok := r.candidates[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Resume = path
	c.ResumeIndexStatus = models.ResumeIndexQueued
	return nil
}

func (r *fakeCandidateRepo) ClaimResume(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok || c.ResumeIndexStatus != models.ResumeIndexQueued {
		return false, nil
	}
	c.ResumeIndexStatus = models.ResumeIndexProcessing
	return true, nil
}

func (r *fakeCandidateRepo) status(id uuid.UUID) models.ResumeIndexStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.candidates[id].ResumeIndexStatus
}

func (r *fakeCandidateRepo) UpdateResumeIndex(_ context.Context, id uuid.UUID, data *repositories.ResumeIndexUpdateData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.ResumeIndexStatus = data.Status
	c.ResumeIndexError = data.ErrorMessage
	if data.ResumeText != nil {
		c.ResumeText = *data.ResumeText
	}
	r.indexUpdates = append(r.indexUpdates, *data)
	return nil
}

func (r *fakeCandidateRepo) FindPendingResumes(_ context.Context, limit int) ([]models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Candidate
	for _, c := range r.candidates {
		if c.ResumeIndexStatus == models.ResumeIndexQueued && len(out) < limit {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) FindWithResumeText(_ context.Context) ([]models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Candidate
	for _, c := range r.candidates {
		if c.ResumeText != "" {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	jobs      map[uuid.UUID]*models.Job
	listCalls int
	created   []*models.Job
}

func newFakeJobRepo(jobs ...*models.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: make(map[uuid.UUID]*models.Job)}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	r.jobs[job.ID] = job
	r.created = append(r.created, job)
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("failed to find job: %w", repositories.ErrNotFound)
	}
	return j, nil
}

func (r *fakeJobRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.jobs[id]
	return ok, nil
}

func (r *fakeJobRepo) List(_ context.Context, status string) ([]models.Job, error) {
	r.listCalls++
	var out []models.Job
	for _, j := range r.jobs {
		if status == "" || string(j.Status) == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.JobStatus) error {
	j, ok := r.jobs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	j.Status = status
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeReportRepo struct {
	rows  []repositories.TimeToHireRow
	calls int
}

func (r *fakeReportRepo) TimeToHire(context.Context) ([]repositories.TimeToHireRow, error) {
	r.calls++
	return r.rows, nil
}

// memCache is an in-process CacheService.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

func (m *memCache) DeleteByPrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
			m.deleted = append(m.deleted, k)
		}
	}
	return nil
}

type fakeStorage struct {
	saved   []string
	removed []string
	saveErr error
}

func (s *fakeStorage) SaveResume(_ uuid.UUID, file *multipart.FileHeader) (*StoredFile, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saved = append(s.saved, file.Filename)
	return &StoredFile{Key: file.Filename, Path: "/uploads/" + file.Filename, Size: file.Size}, nil
}

func (s *fakeStorage) Remove(key string) error {
	s.removed = append(s.removed, key)
	return nil
}

func (s *fakeStorage) EnsureUploadDir() error { return nil }

type fakeQueue struct {
	ids []uuid.UUID
}

func (q *fakeQueue) EnqueueResume(id uuid.UUID) { q.ids = append(q.ids, id) }

type fakeGemini struct {
	embedding []float32
	text      string
	embedded  []string
}

func (g *fakeGemini) GenerateEmbedding(_ context.Context, text string, _ string) ([]float32, error) {
	g.embedded = append(g.embedded, text)
	return g.embedding, nil
}

func (g *fakeGemini) GenerateText(context.Context, string, float32) (string, error) {
	return g.text, nil
}

func (g *fakeGemini) GenerateTextWithRetry(context.Context, string, float32, int) (string, error) {
	return g.text, nil
}

type fakeVectors struct {
	hits     []ResumeHit
	upserted []ResumeChunk
	deleted  []uuid.UUID
	limit    int
}

func (v *fakeVectors) InitCollection(context.Context) error { return nil }

func (v *fakeVectors) UpsertResumeChunks(_ context.Context, chunks []ResumeChunk) error {
	v.upserted = append(v.upserted, chunks...)
	return nil
}

func (v *fakeVectors) SearchResumes(_ context.Context, _ []float32, limit int) ([]ResumeHit, error) {
	v.limit = limit
	return v.hits, nil
}

func (v *fakeVectors) DeleteCandidate(_ context.Context, id uuid.UUID) error {
	v.deleted = append(v.deleted, id)
	return nil
}

type fakeParser struct {
	content *ResumeContent
	err     error
}

func (p fakeParser) ExtractText(string) (*ResumeContent, error) {
	return p.content, p.err
}

// countingParser blocks each parse on release so callers can overlap.
type countingParser struct {
	calls   atomic.Int32
	release chan struct{}
	content *ResumeContent
}

func (p *countingParser) ExtractText(string) (*ResumeContent, error) {
	p.calls.Add(1)
	if p.release != nil {
		<-p.release
	}
	return p.content, nil
}
