package gmsh_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/softmesh/internal/adapters/gmsh"
	"go.trai.ch/softmesh/internal/core/domain"
)

// fakeGmsh behaves like gmsh for the flags the kernel uses. Every invocation is
// appended to $FAKE_GMSH_LOG. FAKE_GMSH_FAIL makes it exit 1.
const fakeGmsh = `#!/bin/sh
echo "$@" >> "$FAKE_GMSH_LOG"
if [ -n "$FAKE_GMSH_FAIL" ]; then
  echo "Error   : boom" >&2
  exit 1
fi
if [ "$1" = "--version" ]; then
  echo "4.11.1"
  exit 0
fi
input="$1"; shift
mode=""; out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -0|-2|-3|-refine)
      if [ -n "$mode" ]; then
        echo "Error   : $mode and $1 in one run" >&2
        exit 1
      fi
      mode="$1"
      ;;
    -o) shift; out="$1" ;;
    -format|-v) shift ;;
  esac
  shift
done
if [ -z "$out" ]; then
  exit 0
fi
case "$out" in
  *.geo_unrolled)
    echo "// Gmsh unrolled from $input" > "$out"
    grep -v '^//' "$input" >> "$out"
    ;;
  *)
    if [ "$mode" = "-refine" ]; then
      case "$input" in
        *.msh) ;;
        *) echo "Error   : no mesh to refine" >&2; exit 1 ;;
      esac
      echo "refined" > "$out"
    else
      echo "mesh $mode" > "$out"
    fi
    cat "$input" >> "$out"
    ;;
esac
echo "Info    : Done"
`

func installFake(t *testing.T) (*gmsh.Kernel, string) {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "gmsh")
	require.NoError(t, os.WriteFile(bin, []byte(fakeGmsh), 0o700)) //nolint:gosec // test executable
	logPath := filepath.Join(dir, "calls.log")
	t.Setenv("FAKE_GMSH_LOG", logPath)
	t.Setenv("FAKE_GMSH_FAIL", "")
	return gmsh.NewKernel(bin), logPath
}

func geometry(script string) domain.Geometry {
	return domain.Geometry{Generator: "cabled_trunk", Script: []byte(script)}
}

func TestKernel_DescribeIsCanonical(t *testing.T) {
	k, _ := installFake(t)
	ctx := context.Background()

	a, err := k.Describe(ctx, geometry("// first\nCone(1) = {0,0,0,0,0,195,17.5,7.5,2*Pi};\n"), nil)
	require.NoError(t, err)
	b, err := k.Describe(ctx, geometry("// second   \nCone(1) = {0,0,0,0,0,195,17.5,7.5,2*Pi};   \n"), nil)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
	assert.NotContains(t, string(a), "Gmsh unrolled")
	assert.Equal(t,
		domain.NewIdentifier("cabled_trunk", a),
		domain.NewIdentifier("cabled_trunk", b))
}

func TestKernel_Mesh(t *testing.T) {
	tests := []struct {
		name   string
		mode   domain.MeshMode
		refine bool
		want   string
		flags  string
	}{
		{"surface", domain.ModeSurface, false, "mesh -2\n", "-2 -format stl -o"},
		{"refined volume", domain.ModeVolume, true, "refined\nmesh -3\n", "-3 -format msh -o"},
		{"refined surface", domain.ModeSurface, true, "refined\nmesh -2\n", "-2 -format msh -o"},
		{"step ignores refine", domain.ModeStep, true, "mesh -0\n", "-0 -format step -o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, logPath := installFake(t)
			dst := filepath.Join(t.TempDir(), "out"+tt.mode.Suffix())

			var out bytes.Buffer
			err := k.Mesh(context.Background(), geometry("Box(1) = {0,0,0,1,1,1};\n"), tt.mode, tt.refine, dst, &out)
			require.NoError(t, err)

			data, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.want), "got %q", string(data))
			assert.Contains(t, out.String(), "Info    : Done")

			calls, err := os.ReadFile(logPath)
			require.NoError(t, err)
			assert.Contains(t, string(calls), tt.flags)
		})
	}
}

func TestKernel_MeshRefineRunsTwice(t *testing.T) {
	k, logPath := installFake(t)
	dst := filepath.Join(t.TempDir(), "out_volume.vtk")

	err := k.Mesh(context.Background(), geometry("Box(1) = {0,0,0,1,1,1};\n"), domain.ModeVolume, true, dst, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	calls := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, calls, 2)

	first := strings.Fields(calls[0])
	assert.Equal(t, "geometry.geo", filepath.Base(first[0]))
	assert.Equal(t, []string{"-3", "-format", "msh", "-o"}, first[1:5])
	assert.NotContains(t, calls[0], "-refine")

	second := strings.Fields(calls[1])
	assert.Equal(t, first[5], second[0], "the refine run reads the coarse mesh")
	assert.Equal(t, []string{"-refine", "-format", "vtk", "-o", dst}, second[1:6])
}

func TestKernel_Failure(t *testing.T) {
	k, _ := installFake(t)
	t.Setenv("FAKE_GMSH_FAIL", "1")

	var out bytes.Buffer
	err := k.Mesh(context.Background(), geometry("Box(1) = {0,0,0,1,1,1};\n"), domain.ModeSurface, false,
		filepath.Join(t.TempDir(), "x_surface.stl"), &out)

	require.ErrorIs(t, err, domain.ErrKernelFailed)
	assert.Contains(t, out.String(), "Error   : boom")

	_, err = k.Describe(context.Background(), geometry("Box(1) = {0,0,0,1,1,1};\n"), nil)
	require.ErrorIs(t, err, domain.ErrKernelFailed)
}

func TestKernel_MissingBinary(t *testing.T) {
	k := gmsh.NewKernel(filepath.Join(t.TempDir(), "no-gmsh"))

	_, err := k.Describe(context.Background(), geometry("Point(1) = {0,0,0};\n"), nil)
	require.ErrorIs(t, err, domain.ErrKernelFailed)
}

func TestKernel_Version(t *testing.T) {
	k, _ := installFake(t)

	v, err := k.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.11.1", v)
}

func TestNewKernel_DefaultPath(t *testing.T) {
	assert.Equal(t, "gmsh", gmsh.NewKernel("").Path())
}
