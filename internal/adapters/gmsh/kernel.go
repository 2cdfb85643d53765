// Package gmsh drives the gmsh command line as the geometry kernel.
package gmsh

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GeometryKernel = (*Kernel)(nil)

// Kernel implements ports.GeometryKernel with the gmsh binary.
type Kernel struct {
	path string
}

// NewKernel creates a kernel running the gmsh binary at path, or found on PATH.
func NewKernel(path string) *Kernel {
	if path == "" {
		path = "gmsh"
	}
	return &Kernel{path: path}
}

// Path returns the gmsh binary the kernel runs.
func (k *Kernel) Path() string {
	return k.path
}

// Describe unrolls the geometry script and returns the unrolled text.
// The unrolled form expands loops and variables, so equal geometries compare equal
// even when their scripts differ in presentation.
func (k *Kernel) Describe(ctx context.Context, geometry domain.Geometry, log io.Writer) ([]byte, error) {
	dir, script, err := writeScript(geometry)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	out := filepath.Join(dir, "geometry.geo_unrolled")
	if err := k.run(ctx, log, script, "-0", "-o", out, "-v", "0"); err != nil {
		return nil, err
	}

	//nolint:gosec // Path is inside a private temporary directory
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrKernelFailed, err), "kernel produced no description"), "generator", geometry.Generator)
	}
	return normalize(data), nil
}

// Mesh meshes the geometry for mode and writes the artifact to dst.
// The output format follows the mode: STEP export, STL surface mesh or VTK volume mesh.
// A refined mesh takes two runs, since gmsh honours only one of -2, -3 and -refine per
// invocation: the first meshes to a native .msh file, the second refines and exports it.
func (k *Kernel) Mesh(
	ctx context.Context,
	geometry domain.Geometry,
	mode domain.MeshMode,
	refine bool,
	dst string,
	log io.Writer,
) error {
	dir, script, err := writeScript(geometry)
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	var dim, format string
	switch mode {
	case domain.ModeStep:
		dim, format = "-0", "step"
	case domain.ModeSurface:
		dim, format = "-2", "stl"
	case domain.ModeVolume:
		dim, format = "-3", "vtk"
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownMeshMode, "failed to mesh geometry"), "mode", mode.String())
	}

	if !refine || mode == domain.ModeStep {
		return k.run(ctx, log, script, dim, "-format", format, "-o", dst, "-v", "3")
	}

	coarse := filepath.Join(dir, "geometry.msh")
	if err := k.run(ctx, log, script, dim, "-format", "msh", "-o", coarse, "-v", "3"); err != nil {
		return err
	}
	return k.run(ctx, log, coarse, "-refine", "-format", format, "-o", dst, "-v", "3")
}

// Show opens the geometry in the gmsh user interface and waits for it to close.
func (k *Kernel) Show(ctx context.Context, geometry domain.Geometry) error {
	dir, script, err := writeScript(geometry)
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	return k.run(ctx, os.Stderr, script)
}

// Version returns the version reported by the gmsh binary.
func (k *Kernel) Version(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := k.run(ctx, &buf, "--version"); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (k *Kernel) run(ctx context.Context, log io.Writer, args ...string) error {
	if log == nil {
		log = io.Discard
	}

	//nolint:gosec // G204: the kernel path is configured by the operator
	cmd := exec.CommandContext(ctx, k.path, args...)
	cmd.Stdout = log
	cmd.Stderr = log

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(errors.Join(domain.ErrKernelFailed, err), "gmsh failed"), "exit_code", exitCode), "gmsh", k.path)
	}
	return nil
}

// writeScript stores the geometry script in a fresh temporary directory.
func writeScript(geometry domain.Geometry) (string, string, error) {
	dir, err := os.MkdirTemp("", "softmesh-"+geometry.Generator+"-")
	if err != nil {
		return "", "", zerr.Wrap(errors.Join(domain.ErrKernelFailed, err), "failed to create kernel workspace")
	}
	script := filepath.Join(dir, "geometry.geo")
	if err := os.WriteFile(script, geometry.Script, domain.FilePerm); err != nil {
		_ = os.RemoveAll(dir)
		return "", "", zerr.Wrap(errors.Join(domain.ErrKernelFailed, err), "failed to write geometry script")
	}
	return dir, script, nil
}

// normalize strips the lines of an unrolled description that depend on where and
// when it was produced.
func normalize(data []byte) []byte {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") && (strings.Contains(trimmed, "Gmsh") || strings.Contains(trimmed, "geometry.geo")) {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return []byte(strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n")
}
