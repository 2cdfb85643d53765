package mesher_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports/mocks"
	"go.trai.ch/softmesh/internal/engine/mesher"
	"go.uber.org/mock/gomock"
)

type pipelineMocks struct {
	generators *mocks.MockGeneratorRegistry
	generator  *mocks.MockGenerator
	kernel     *mocks.MockGeometryKernel
	store      *mocks.MockMeshStore
}

func newPipeline(t *testing.T) (*mesher.Pipeline, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		generators: mocks.NewMockGeneratorRegistry(ctrl),
		generator:  mocks.NewMockGenerator(ctrl),
		kernel:     mocks.NewMockGeometryKernel(ctrl),
		store:      mocks.NewMockMeshStore(ctrl),
	}
	m.generator.EXPECT().Name().Return("disk").AnyTimes()
	return mesher.NewPipeline(m.generators, m.kernel, m.store), m
}

var (
	diskGeometry  = domain.Geometry{Generator: "disk", Script: []byte("Disk(1) = {0, 0, 0, 5};")}
	diskCanonical = []byte("Disk(1) = {0, 0, 0, 5, 5};\n")
	diskID        = domain.NewIdentifier("disk", diskCanonical)
)

func diskArgs(dir string) mesher.MeshArgs {
	return mesher.MeshArgs{
		Dir:        dir,
		Generator:  "disk",
		Mode:       "Surface",
		Parameters: domain.Parameters{"r": 5},
	}
}

func TestPipeline_Miss(t *testing.T) {
	p, m := newPipeline(t)
	dir := t.TempDir()
	final := domain.ArtifactPath(dir, diskID, domain.ModeSurface)
	released := false

	gomock.InOrder(
		m.generators.EXPECT().Lookup("disk").Return(m.generator, nil),
		m.generator.EXPECT().Generate(domain.Parameters{"r": 5}).Return(diskGeometry, nil),
		m.kernel.EXPECT().Describe(gomock.Any(), diskGeometry, gomock.Any()).Return(diskCanonical, nil),
		m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, false, nil),
		m.store.EXPECT().Lock(gomock.Any(), dir, diskID).Return(func() error { released = true; return nil }, nil),
		m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, false, nil),
		m.store.EXPECT().Commit(dir, diskID, domain.ModeSurface, gomock.Any()).
			DoAndReturn(func(_, _ string, _ domain.MeshMode, produce func(string) error) (string, error) {
				tmp := filepath.Join(dir, ".partial-1-"+filepath.Base(final))
				if err := produce(tmp); err != nil {
					return "", err
				}
				return final, nil
			}),
		m.store.EXPECT().Record(dir, gomock.Any()).DoAndReturn(func(_ string, rec domain.MeshRecord) error {
			assert.Equal(t, diskID, rec.Identifier)
			assert.Equal(t, "disk", rec.Generator)
			assert.Equal(t, []string{"Surface"}, rec.Modes)
			assert.Equal(t, domain.Parameters{"r": 5}, rec.Parameters)
			return nil
		}),
	)
	m.kernel.EXPECT().
		Mesh(gomock.Any(), diskGeometry, domain.ModeSurface, false, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Geometry, _ domain.MeshMode, _ bool, dst string, _ io.Writer) error {
			assert.Contains(t, dst, ".partial-")
			return nil
		})

	res, err := p.Mesh(context.Background(), diskArgs(dir), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, final, res.Path)
	assert.Equal(t, diskID, res.Identifier)
	assert.False(t, res.Cached)
	assert.True(t, released)
}

func TestPipeline_Hit(t *testing.T) {
	p, m := newPipeline(t)
	dir := t.TempDir()
	final := domain.ArtifactPath(dir, diskID, domain.ModeSurface)

	m.generators.EXPECT().Lookup("disk").Return(m.generator, nil)
	m.generator.EXPECT().Generate(gomock.Any()).Return(diskGeometry, nil)
	m.kernel.EXPECT().Describe(gomock.Any(), diskGeometry, gomock.Any()).Return(diskCanonical, nil)
	m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, true, nil)

	res, err := p.Mesh(context.Background(), diskArgs(dir), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, final, res.Path)
	assert.True(t, res.Cached)
}

func TestPipeline_HitAfterLock(t *testing.T) {
	p, m := newPipeline(t)
	dir := t.TempDir()
	final := domain.ArtifactPath(dir, diskID, domain.ModeSurface)

	m.generators.EXPECT().Lookup("disk").Return(m.generator, nil)
	m.generator.EXPECT().Generate(gomock.Any()).Return(diskGeometry, nil)
	m.kernel.EXPECT().Describe(gomock.Any(), diskGeometry, gomock.Any()).Return(diskCanonical, nil)
	gomock.InOrder(
		m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, false, nil),
		m.store.EXPECT().Lock(gomock.Any(), dir, diskID).Return(func() error { return nil }, nil),
		m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, true, nil),
	)

	res, err := p.Mesh(context.Background(), diskArgs(dir), io.Discard)
	require.NoError(t, err)
	assert.True(t, res.Cached)
}

func TestPipeline_TemplateGenerator(t *testing.T) {
	p, m := newPipeline(t)
	dir := t.TempDir()
	args := diskArgs(dir)
	args.Template = "/models/Disk/disk.geo.tmpl"

	m.generators.EXPECT().LoadTemplate("disk", args.Template).Return(m.generator, nil)
	m.generator.EXPECT().Generate(gomock.Any()).Return(diskGeometry, nil)
	m.kernel.EXPECT().Describe(gomock.Any(), diskGeometry, gomock.Any()).Return(diskCanonical, nil)
	m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).
		Return(domain.ArtifactPath(dir, diskID, domain.ModeSurface), true, nil)

	_, err := p.Mesh(context.Background(), args, io.Discard)
	require.NoError(t, err)
}

func TestPipeline_Errors(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		p, _ := newPipeline(t)
		args := diskArgs(t.TempDir())
		args.Mode = "hexahedral"

		_, err := p.Mesh(context.Background(), args, io.Discard)
		require.ErrorIs(t, err, domain.ErrUnknownMeshMode)
	})

	t.Run("unknown generator", func(t *testing.T) {
		p, m := newPipeline(t)
		m.generators.EXPECT().Lookup("disk").Return(nil, domain.ErrUnknownGenerator)

		_, err := p.Mesh(context.Background(), diskArgs(t.TempDir()), io.Discard)
		require.ErrorIs(t, err, domain.ErrUnknownGenerator)
	})

	t.Run("kernel failure leaves no artifact", func(t *testing.T) {
		p, m := newPipeline(t)
		dir := t.TempDir()
		final := domain.ArtifactPath(dir, diskID, domain.ModeSurface)

		m.generators.EXPECT().Lookup("disk").Return(m.generator, nil)
		m.generator.EXPECT().Generate(gomock.Any()).Return(diskGeometry, nil)
		m.kernel.EXPECT().Describe(gomock.Any(), diskGeometry, gomock.Any()).Return(diskCanonical, nil)
		m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, false, nil).Times(2)
		m.store.EXPECT().Lock(gomock.Any(), dir, diskID).Return(func() error { return nil }, nil)
		m.store.EXPECT().Commit(dir, diskID, domain.ModeSurface, gomock.Any()).
			DoAndReturn(func(_, _ string, _ domain.MeshMode, produce func(string) error) (string, error) {
				return "", produce(filepath.Join(dir, ".partial-x"))
			})
		m.kernel.EXPECT().Mesh(gomock.Any(), diskGeometry, domain.ModeSurface, false, gomock.Any(), gomock.Any()).
			Return(domain.ErrKernelFailed)

		_, err := p.Mesh(context.Background(), diskArgs(dir), io.Discard)
		require.ErrorIs(t, err, domain.ErrKernelFailed)
		assert.NoFileExists(t, final)
	})
}

func TestPipeline_RecordFailureKeepsArtifact(t *testing.T) {
	p, m := newPipeline(t)
	dir := t.TempDir()
	final := domain.ArtifactPath(dir, diskID, domain.ModeSurface)

	m.generators.EXPECT().Lookup("disk").Return(m.generator, nil)
	m.generator.EXPECT().Generate(gomock.Any()).Return(diskGeometry, nil)
	m.kernel.EXPECT().Describe(gomock.Any(), diskGeometry, gomock.Any()).Return(diskCanonical, nil)
	m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, false, nil).Times(2)
	m.store.EXPECT().Lock(gomock.Any(), dir, diskID).Return(func() error { return nil }, nil)
	m.store.EXPECT().Commit(dir, diskID, domain.ModeSurface, gomock.Any()).Return(final, nil)
	m.store.EXPECT().Record(dir, gomock.Any()).Return(errors.New("disk full"))

	var log bytes.Buffer
	res, err := p.Mesh(context.Background(), diskArgs(dir), &log)
	require.NoError(t, err)
	assert.Equal(t, final, res.Path)
	assert.False(t, res.Cached)
	assert.Contains(t, log.String(), "failed to record metadata of "+diskID)
	assert.Contains(t, log.String(), "disk full")
}

func TestPipeline_Handle(t *testing.T) {
	p, m := newPipeline(t)
	dir := t.TempDir()
	final := domain.ArtifactPath(dir, diskID, domain.ModeSurface)

	m.generators.EXPECT().Lookup("disk").Return(m.generator, nil)
	m.generator.EXPECT().Generate(gomock.Any()).Return(diskGeometry, nil)
	m.kernel.EXPECT().Describe(gomock.Any(), diskGeometry, gomock.Any()).Return(diskCanonical, nil)
	m.store.EXPECT().Lookup(dir, diskID, domain.ModeSurface).Return(final, true, nil)

	raw, err := json.Marshal(diskArgs(dir))
	require.NoError(t, err)

	v, err := p.Handle(context.Background(), raw, os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, mesher.MeshResult{Path: final, Identifier: diskID, Cached: true}, v)

	_, err = p.Handle(context.Background(), json.RawMessage(`{"dir": 3`), io.Discard)
	require.ErrorIs(t, err, domain.ErrWorkerResultInvalid)
}
