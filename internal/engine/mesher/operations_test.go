package mesher_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestService_Save(t *testing.T) {
	svc, m := newService(t, domain.DefaultSettings())
	m.store.EXPECT().Save("/a/x.stl", "/b/y.stl").Return(nil)
	m.logger.EXPECT().Info("saved /a/x.stl to /b/y.stl")

	require.NoError(t, svc.Save("/a/x.stl", "/b/y.stl"))

	m.store.EXPECT().Save("/a/missing.stl", "/b/y.stl").Return(domain.ErrArtifactCopyFailed)
	require.ErrorIs(t, svc.Save("/a/missing.stl", "/b/y.stl"), domain.ErrArtifactCopyFailed)
}

func TestService_Status(t *testing.T) {
	svc, m := newService(t, domain.DefaultSettings())
	model := trunkModel()
	usage := domain.CacheUsage{Dir: model.MeshesDir(true), Files: 2, Bytes: 42}
	m.store.EXPECT().Usage(model.MeshesDir(true)).Return(usage, nil)

	got, err := svc.Status(model, true)
	require.NoError(t, err)
	assert.Equal(t, usage, got)
}

func TestService_List(t *testing.T) {
	svc, m := newService(t, domain.DefaultSettings())
	model := trunkModel()
	dir := model.BaseMeshesDir()

	entries := []domain.CacheEntry{
		{Identifier: "cabled_trunk_a", Path: dir + "/cabled_trunk_a.step", Mode: domain.ModeStep},
		{Identifier: "cabled_trunk_a", Path: dir + "/cabled_trunk_a_surface.stl", Mode: domain.ModeSurface},
	}
	rec := &domain.MeshRecord{Identifier: "cabled_trunk_a", Generator: "cabled_trunk"}

	m.store.EXPECT().List(dir).Return(entries, nil)
	m.store.EXPECT().ReadRecord(dir, "cabled_trunk_a").Return(rec, nil).Times(1)
	m.hasher.EXPECT().FileDigest(entries[0].Path).Return("d0", nil)
	m.hasher.EXPECT().FileDigest(entries[1].Path).Return("d1", nil)

	artifacts, err := svc.List(model, false, true)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "d0", artifacts[0].Digest)
	assert.Equal(t, "d1", artifacts[1].Digest)
	assert.Same(t, rec, artifacts[0].Record)
	assert.Same(t, rec, artifacts[1].Record)
}

func TestService_List_WithoutChecksum(t *testing.T) {
	svc, m := newService(t, domain.DefaultSettings())
	model := trunkModel()
	dir := model.MeshesDir(true)

	m.store.EXPECT().List(dir).Return([]domain.CacheEntry{{Identifier: "x", Path: dir + "/x.step"}}, nil)
	m.store.EXPECT().ReadRecord(dir, "x").Return(nil, nil)
	m.hasher.EXPECT().FileDigest(gomock.Any()).Times(0)

	artifacts, err := svc.List(model, true, false)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Empty(t, artifacts[0].Digest)
	assert.Nil(t, artifacts[0].Record)
}

func TestService_Clean(t *testing.T) {
	svc, m := newService(t, domain.DefaultSettings())
	model := trunkModel()

	m.store.EXPECT().Purge(model.MeshesDir(true)).Return(nil)
	m.store.EXPECT().RemovePartials(model.BaseMeshesDir(), domain.DefaultGenerationTimeout+domain.DefaultResultGrace).Return(2, nil)
	m.logger.EXPECT().Info(gomock.Any()).Times(2)

	report, err := svc.Clean(model)
	require.NoError(t, err)
	assert.Equal(t, model.MeshesDir(true), report.CacheDir)
	assert.Equal(t, 2, report.Partials)
}

func TestService_Show(t *testing.T) {
	svc, m := newService(t, domain.DefaultSettings())
	model := trunkModel()
	gen := mocks.NewMockGenerator(gomock.NewController(t))
	geometry := domain.Geometry{Generator: "cabled_trunk", Script: []byte("Point(1) = {0, 0, 0};")}

	m.generators.EXPECT().Lookup("cabled_trunk").Return(gen, nil)
	gen.EXPECT().Generate(domain.Parameters{"r": 5}).Return(geometry, nil)
	m.kernel.EXPECT().Show(gomock.Any(), geometry).Return(nil)

	require.NoError(t, svc.Show(context.Background(), model))
}

func TestService_Show_UnknownGenerator(t *testing.T) {
	svc, m := newService(t, domain.DefaultSettings())
	m.generators.EXPECT().Lookup("cabled_trunk").Return(nil, domain.ErrUnknownGenerator)

	require.ErrorIs(t, svc.Show(context.Background(), trunkModel()), domain.ErrUnknownGenerator)
}
