package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

type memSubjectRepo struct {
	mu       sync.Mutex
	seq      int
	subjects map[string]*domain.Subject
}

func newMemSubjectRepo() *memSubjectRepo {
	return &memSubjectRepo{subjects: make(map[string]*domain.Subject)}
}

func (r *memSubjectRepo) Create(_ context.Context, subject *domain.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	subject.ID = "s" + strconv.Itoa(r.seq)
	subject.TasksCount = 0
	clone := *subject
	r.subjects[subject.ID] = &clone
	return nil
}

func (r *memSubjectRepo) Update(_ context.Context, subject *domain.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subjects[subject.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *subject
	r.subjects[subject.ID] = &clone
	return nil
}

func (r *memSubjectRepo) GetByID(_ context.Context, id string) (*domain.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subjects[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memSubjectRepo) ListByOwner(_ context.Context, userID string) ([]domain.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Subject
	for _, s := range r.subjects {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memSubjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subjects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.subjects, id)
	return nil
}

func (r *memSubjectRepo) adjustTasksCount(id string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subjects[id]; ok {
		s.TasksCount += delta
	}
}

type subjectFixture struct {
	svc      *SubjectService
	subjects *memSubjectRepo
	teachers *memTeacherRepo
	owner    *domain.User
	other    *domain.User
	teacher  *domain.Teacher
}

func newSubjectFixture(t *testing.T) *subjectFixture {
	t.Helper()
	teachers := newMemTeacherRepo()
	subjects := newMemSubjectRepo()
	f := &subjectFixture{
		svc:      NewSubjectService(subjects, teachers),
		subjects: subjects,
		teachers: teachers,
		owner:    actorUser("1"),
		other:    actorUser("2"),
	}
	f.teacher = seedTeacher(t, NewTeacherService(teachers), f.owner, "Anna", "Petrova")
	return f
}

func int16Ptr(v int16) *int16 { return &v }

func TestSubjectService_Create(t *testing.T) {
	f := newSubjectFixture(t)

	subject, err := f.svc.Create(context.Background(), f.owner, SubjectCreateInput{
		Name:      "Databases",
		Course:    int16Ptr(3),
		TeacherID: f.teacher.ID,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if subject.ID == "" || subject.UserID != f.owner.ID {
		t.Fatalf("unexpected subject: %+v", subject)
	}
	if subject.TasksCount != 0 {
		t.Fatalf("new subject must start with zero tasks, got %d", subject.TasksCount)
	}
}

func TestSubjectService_Create_CourseRange(t *testing.T) {
	f := newSubjectFixture(t)

	for _, course := range []int16{0, 9, -1} {
		_, err := f.svc.Create(context.Background(), f.owner, SubjectCreateInput{
			Name:      "Databases",
			Course:    int16Ptr(course),
			TeacherID: f.teacher.ID,
		})
		if code := errCode(t, err); code != "VALIDATION_FAILED" {
			t.Fatalf("course %d: expected VALIDATION_FAILED, got %s", course, code)
		}
	}
}

func TestSubjectService_Create_TeacherChecks(t *testing.T) {
	f := newSubjectFixture(t)

	_, err := f.svc.Create(context.Background(), f.owner, SubjectCreateInput{
		Name:      "Databases",
		TeacherID: "missing",
	})
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("unknown teacher: expected NOT_FOUND, got %s", code)
	}

	_, err = f.svc.Create(context.Background(), f.other, SubjectCreateInput{
		Name:      "Databases",
		TeacherID: f.teacher.ID,
	})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("foreign teacher: expected FORBIDDEN, got %s", code)
	}
}

func TestSubjectService_Update(t *testing.T) {
	f := newSubjectFixture(t)
	subject, err := f.svc.Create(context.Background(), f.owner, SubjectCreateInput{
		Name:      "Databases",
		TeacherID: f.teacher.ID,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	_, err = f.svc.Update(context.Background(), f.owner, subject.ID, SubjectUpdateInput{})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("empty patch: expected VALIDATION_FAILED, got %s", code)
	}

	name := "Distributed Systems"
	updated, err := f.svc.Update(context.Background(), f.owner, subject.ID, SubjectUpdateInput{
		Name:   &name,
		Course: int16Ptr(4),
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Name != name || updated.Course == nil || *updated.Course != 4 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	_, err = f.svc.Update(context.Background(), f.other, subject.ID, SubjectUpdateInput{Name: &name})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("foreign update: expected FORBIDDEN, got %s", code)
	}
}

func TestSubjectService_Update_ForeignTeacherRef(t *testing.T) {
	f := newSubjectFixture(t)
	subject, err := f.svc.Create(context.Background(), f.owner, SubjectCreateInput{
		Name:      "Databases",
		TeacherID: f.teacher.ID,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	foreign := seedTeacher(t, NewTeacherService(f.teachers), f.other, "Pavel", "Sidorov")
	_, err = f.svc.Update(context.Background(), f.owner, subject.ID, SubjectUpdateInput{
		TeacherID: &foreign.ID,
	})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("reassigning to foreign teacher: expected FORBIDDEN, got %s", code)
	}
}

func TestSubjectService_Delete(t *testing.T) {
	f := newSubjectFixture(t)
	subject, err := f.svc.Create(context.Background(), f.owner, SubjectCreateInput{
		Name:      "Databases",
		TeacherID: f.teacher.ID,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := f.svc.Delete(context.Background(), f.other, subject.ID); errCode(t, err) != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), f.owner, subject.ID); err != nil {
		t.Fatalf("owner delete error: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), f.owner, subject.ID); errCode(t, err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}
