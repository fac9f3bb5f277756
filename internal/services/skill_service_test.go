package services_test

import (
	"context"
	"fmt"
	"testing"

	"skillbridge/internal/models"
	"skillbridge/internal/services"
	"skillbridge/internal/storage"
	"skillbridge/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSkillRepo struct {
	skills []*models.Skill
	links  map[int64][]int64 // residentID -> skillIDs
	nextID int64
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{links: map[int64][]int64{}, nextID: 1}
}

func (f *fakeSkillRepo) GetAll(ctx context.Context) ([]models.Skill, error) {
	out := []models.Skill{}
	for _, s := range f.skills {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSkillRepo) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	for _, s := range f.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeSkillRepo) Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error) {
	for _, s := range f.skills {
		if s.Name == req.Name {
			return nil, storage.ErrConflict
		}
	}
	s := &models.Skill{ID: f.nextID, Name: req.Name, Description: req.Description}
	f.nextID++
	f.skills = append(f.skills, s)
	return s, nil
}

func (f *fakeSkillRepo) Delete(ctx context.Context, id int64) error {
	for i, s := range f.skills {
		if s.ID == id {
			f.skills = append(f.skills[:i], f.skills[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeSkillRepo) ListForResident(ctx context.Context, residentID int64) ([]models.Skill, error) {
	out := []models.Skill{}
	for _, id := range f.links[residentID] {
		if s, err := f.GetByID(ctx, id); err == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSkillRepo) AddToResident(ctx context.Context, residentID, skillID int64) error {
	for _, id := range f.links[residentID] {
		if id == skillID {
			return storage.ErrConflict
		}
	}
	f.links[residentID] = append(f.links[residentID], skillID)
	return nil
}

func (f *fakeSkillRepo) RemoveFromResident(ctx context.Context, residentID, skillID int64) error {
	ids := f.links[residentID]
	for i, id := range ids {
		if id == skillID {
			f.links[residentID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

type mirrorCall struct {
	ResidentID int64
	SkillID    int64
}

type fakeSkillMirror struct {
	added   []mirrorCall
	removed []mirrorCall
	err     error
}

func (f *fakeSkillMirror) Add(ctx context.Context, residentID, skillID int64) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, mirrorCall{residentID, skillID})
	return nil
}

func (f *fakeSkillMirror) Remove(ctx context.Context, residentID, skillID int64) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, mirrorCall{residentID, skillID})
	return nil
}

func newSkillFixture() (*fakeSkillRepo, *fakeSkillMirror, services.SkillService) {
	repo := newFakeSkillRepo()
	mirror := &fakeSkillMirror{}
	return repo, mirror, services.NewSkillService(repo, mirror, zap.NewNop())
}

func TestSkillService_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	_, _, service := newSkillFixture()

	skill, err := service.Create(ctx, &dto.CreateSkillRequest{Name: "Carpentry"})
	require.NoError(t, err)
	assert.Equal(t, "Carpentry", skill.Name)

	_, err = service.Create(ctx, &dto.CreateSkillRequest{Name: "Carpentry"})
	assert.ErrorIs(t, err, services.ErrConflict)

	require.NoError(t, service.Delete(ctx, skill.ID))
	assert.ErrorIs(t, service.Delete(ctx, skill.ID), services.ErrNotFound)
}

func TestSkillService_AddToResidentMirrors(t *testing.T) {
	ctx := context.Background()
	repo, mirror, service := newSkillFixture()
	skill, err := service.Create(ctx, &dto.CreateSkillRequest{Name: "Masonry"})
	require.NoError(t, err)

	req := &dto.ResidentSkillRequest{ResidentID: 7, SkillID: skill.ID}
	require.NoError(t, service.AddToResident(ctx, req))
	assert.Equal(t, []mirrorCall{{7, skill.ID}}, mirror.added)
	assert.Equal(t, []int64{skill.ID}, repo.links[7])

	assert.ErrorIs(t, service.AddToResident(ctx, req), services.ErrConflict)
}

func TestSkillService_AddSurvivesMirrorFailure(t *testing.T) {
	ctx := context.Background()
	repo, mirror, service := newSkillFixture()
	mirror.err = fmt.Errorf("remote: status 500")

	require.NoError(t, service.AddToResident(ctx, &dto.ResidentSkillRequest{ResidentID: 7, SkillID: 1}))
	assert.Equal(t, []int64{1}, repo.links[7])
	assert.Empty(t, mirror.added)
}

func TestSkillService_RemoveFromResidentMirrors(t *testing.T) {
	ctx := context.Background()
	repo, mirror, service := newSkillFixture()
	require.NoError(t, repo.AddToResident(ctx, 7, 1))

	require.NoError(t, service.RemoveFromResident(ctx, &dto.ResidentSkillRequest{ResidentID: 7, SkillID: 1}))
	assert.Equal(t, []mirrorCall{{7, 1}}, mirror.removed)
	assert.Empty(t, repo.links[7])
}
