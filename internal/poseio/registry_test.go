package poseio_test

import (
	"errors"
	"testing"

	"posekit/internal/pose"
	"posekit/internal/poseio"
)

func TestLookupBuiltinFormats(t *testing.T) {
	for _, format := range []poseio.Format{poseio.FormatNPY, poseio.FormatTable} {
		if _, err := poseio.Lookup(format); err != nil {
			t.Fatalf("Lookup(%q) failed: %v", format, err)
		}
	}
}

func TestLookupUnknownFormat(t *testing.T) {
	_, err := poseio.Lookup(poseio.Format("mocap9000"))
	if !errors.Is(err, poseio.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	stub := poseio.LoaderFunc(func(string) (*pose.Tensor, error) {
		return pose.NewTensor(0, 0), nil
	})

	if err := poseio.Register(poseio.Format("vendor-test"), stub); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := poseio.Register(poseio.Format("vendor-test"), stub); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if err := poseio.Register(poseio.Format("vendor-nil"), nil); err == nil {
		t.Fatal("expected nil loader registration to fail")
	}
}
