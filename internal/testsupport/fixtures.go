package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"posekit/internal/config"
	"posekit/internal/pose"
	"posekit/internal/poseio"
)

// NewConfig returns a validated configuration rooted in a temp directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataPath = filepath.Join(base, "data")
	cfg.Paths.SkeletonPath = filepath.Join(base, "skeleton.yaml")
	cfg.Paths.MetadataFile = filepath.Join(base, "data", "sessions.csv")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Catalog.Path = filepath.Join(base, "logs", "catalog.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// SequentialTensor builds a (frames, keypoints, 3) tensor whose values count
// up from start, so tests can assert exact positions after a merge.
func SequentialTensor(frames, keypoints int, start float64) *pose.Tensor {
	t := pose.NewTensor(frames, keypoints)
	for i := range t.Data {
		t.Data[i] = start + float64(i)
	}
	return t
}

// WriteNPY writes a tensor to path in the packed array format.
func WriteNPY(t *testing.T, path string, tensor *pose.Tensor) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}
	if err := poseio.WriteNPY(path, tensor); err != nil {
		t.Fatalf("write npy fixture %s: %v", path, err)
	}
}

// WriteMetadataCSV writes a metadata table with columns id, path, and the
// given attribute columns.
func WriteMetadataCSV(t *testing.T, path string, attrColumns []string, rows [][]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}

	var sb strings.Builder
	sb.WriteString("id,path")
	for _, col := range attrColumns {
		sb.WriteString("," + col)
	}
	sb.WriteByte('\n')
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write metadata fixture %s: %v", path, err)
	}
}
