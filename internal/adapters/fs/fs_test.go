package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/softmesh/internal/adapters/fs"
	"go.trai.ch/softmesh/internal/core/domain"
)

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .softmesh/index/x.json
	//   CabledTrunk/model.yaml
	//   CabledTrunk/Meshes/a.stl
	//   TripodFinger/model.yaml
	root := t.TempDir()
	for _, rel := range []string{
		filepath.Join(".softmesh", "index", "x.json"),
		filepath.Join("CabledTrunk", "model.yaml"),
		filepath.Join("CabledTrunk", "Meshes", "a.stl"),
		filepath.Join("TripodFinger", "model.yaml"),
	} {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o600))
	}

	var got []string
	for path := range fs.NewWalker().WalkFiles(root, []string{domain.MeshesDirName}) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, rel)
	}
	slices.Sort(got)

	assert.Equal(t, []string{
		filepath.Join("CabledTrunk", "model.yaml"),
		filepath.Join("TripodFinger", "model.yaml"),
	}, got)
}

func TestWalker_StopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o600))
	}

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHasher_RequestKey(t *testing.T) {
	h := fs.NewHasher()
	base := domain.NewGenerationRequest(domain.ModeSurface, false, "cabled_trunk", domain.Parameters{"a": 1, "b": 2})

	same := domain.NewGenerationRequest(domain.ModeSurface, false, "cabled_trunk", domain.Parameters{"b": 2, "a": 1})
	assert.Equal(t, h.RequestKey("/m", base), h.RequestKey("/m", same), "parameter order must not matter")
	assert.Len(t, h.RequestKey("/m", base), 16)

	variants := []domain.GenerationRequest{
		domain.NewGenerationRequest(domain.ModeVolume, false, "cabled_trunk", domain.Parameters{"a": 1, "b": 2}),
		domain.NewGenerationRequest(domain.ModeSurface, true, "cabled_trunk", domain.Parameters{"a": 1, "b": 2}),
		domain.NewGenerationRequest(domain.ModeSurface, false, "tripod_finger", domain.Parameters{"a": 1, "b": 2}),
		domain.NewGenerationRequest(domain.ModeSurface, false, "cabled_trunk", domain.Parameters{"a": 1, "b": 2.5}),
	}
	for _, v := range variants {
		assert.NotEqual(t, h.RequestKey("/m", base), h.RequestKey("/m", v))
	}
	assert.NotEqual(t, h.RequestKey("/m", base), h.RequestKey("/m/Cache", base))
}

func TestHasher_FileDigest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("mesh"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("mesh"), 0o600))

	h := fs.NewHasher()
	da, err := h.FileDigest(a)
	require.NoError(t, err)
	db, err := h.FileDigest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)

	_, err = h.FileDigest(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestVerifier_Verify(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.stl")
	empty := filepath.Join(dir, "empty.stl")
	require.NoError(t, os.WriteFile(full, []byte("solid"), 0o600))
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	v := fs.NewVerifier()

	ok, err := v.Verify([]string{full})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify([]string{full, empty})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Verify([]string{filepath.Join(dir, "missing.stl")})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Verify([]string{dir})
	require.NoError(t, err)
	assert.False(t, ok)
}
