package poseio_test

import (
	"os"
	"path/filepath"
	"testing"

	"posekit/internal/pose"
	"posekit/internal/poseio"
)

func TestNPYRoundTrip(t *testing.T) {
	tensor := pose.NewTensor(4, 5)
	for i := range tensor.Data {
		tensor.Data[i] = float64(i) * 0.5
	}

	path := filepath.Join(t.TempDir(), "session.npy")
	if err := poseio.WriteNPY(path, tensor); err != nil {
		t.Fatalf("WriteNPY failed: %v", err)
	}

	loader, err := poseio.Lookup(poseio.FormatNPY)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	got, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Frames != 4 || got.Keypoints != 5 {
		t.Fatalf("unexpected shape: %d x %d", got.Frames, got.Keypoints)
	}
	for i := range tensor.Data {
		if got.Data[i] != tensor.Data[i] {
			t.Fatalf("payload mismatch at %d: got %v want %v", i, got.Data[i], tensor.Data[i])
		}
	}
}

func TestNPYRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.npy")
	if err := os.WriteFile(path, []byte("this is not numpy data"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader, err := poseio.Lookup(poseio.FormatNPY)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if _, err := loader.Load(path); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestNPYRejectsWrongRank(t *testing.T) {
	// Hand-build a 2-d header; the loader requires (frames, keypoints, 3).
	dict := "{'descr': '<f8', 'fortran_order': False, 'shape': (4, 3), }\n"

	payload := []byte("\x93NUMPY\x01\x00")
	payload = append(payload, byte(len(dict)), byte(len(dict)>>8))
	payload = append(payload, dict...)
	payload = append(payload, make([]byte, 4*3*8)...)

	path := filepath.Join(t.TempDir(), "flat.npy")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader, _ := poseio.Lookup(poseio.FormatNPY)
	if _, err := loader.Load(path); err == nil {
		t.Fatal("expected error for 2-d shape")
	}
}

func TestNPYRejectsNegativeDimension(t *testing.T) {
	// A corrupt header must produce an error, never an allocation panic.
	dict := "{'descr': '<f8', 'fortran_order': False, 'shape': (-2, 5, 3), }\n"

	payload := []byte("\x93NUMPY\x01\x00")
	payload = append(payload, byte(len(dict)), byte(len(dict)>>8))
	payload = append(payload, dict...)

	path := filepath.Join(t.TempDir(), "negative.npy")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader, _ := poseio.Lookup(poseio.FormatNPY)
	if _, err := loader.Load(path); err == nil {
		t.Fatal("expected error for negative shape dimension")
	}
}

func TestNPYRejectsShapeLargerThanFile(t *testing.T) {
	dict := "{'descr': '<f8', 'fortran_order': False, 'shape': (1000000000, 1000000000, 3), }\n"

	payload := []byte("\x93NUMPY\x01\x00")
	payload = append(payload, byte(len(dict)), byte(len(dict)>>8))
	payload = append(payload, dict...)
	payload = append(payload, make([]byte, 64)...)

	path := filepath.Join(t.TempDir(), "huge.npy")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader, _ := poseio.Lookup(poseio.FormatNPY)
	if _, err := loader.Load(path); err == nil {
		t.Fatal("expected error for a shape exceeding the file size")
	}
}

func TestWriteNPYReportsUnwritableTarget(t *testing.T) {
	tensor := pose.NewTensor(1, 2)
	if err := poseio.WriteNPY(t.TempDir(), tensor); err == nil {
		t.Fatal("expected error when the target path is a directory")
	}
}

func TestNPYRejectsTruncatedPayload(t *testing.T) {
	tensor := pose.NewTensor(2, 2)
	path := filepath.Join(t.TempDir(), "trunc.npy")
	if err := poseio.WriteNPY(path, tensor); err != nil {
		t.Fatalf("WriteNPY failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.WriteFile(path, raw[:len(raw)-8], 0o644); err != nil {
		t.Fatalf("truncate fixture: %v", err)
	}

	loader, _ := poseio.Lookup(poseio.FormatNPY)
	if _, err := loader.Load(path); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}
