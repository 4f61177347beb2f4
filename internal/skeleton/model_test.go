package skeleton_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"posekit/internal/skeleton"
)

const sampleDescription = `
joint_names: [nose, left_ear, right_ear, spine]
links:
  - [0, 1]
  - [0, 2]
  - [1, 0]
  - [0, 3]
angles:
  - [1, 0, 2]
`

func TestParseValidDescription(t *testing.T) {
	model, err := skeleton.Parse([]byte(sampleDescription))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.Keypoints() != 4 {
		t.Fatalf("expected 4 joints, got %d", model.Keypoints())
	}
	// [1,0] is [0,1] reversed and must collapse into it.
	if got := len(model.Links()); got != 3 {
		t.Fatalf("expected 3 deduplicated links, got %d", got)
	}
	if got := len(model.Angles()); got != 1 {
		t.Fatalf("expected 1 angle, got %d", got)
	}
	if idx, ok := model.JointIndex("spine"); !ok || idx != 3 {
		t.Fatalf("JointIndex(spine) = %d, %v", idx, ok)
	}
}

func TestLoadReadsDescriptionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skeleton.yaml")
	if err := os.WriteFile(path, []byte(sampleDescription), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	model, err := skeleton.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := model.CheckKeypoints(4); err != nil {
		t.Fatalf("CheckKeypoints(4) failed: %v", err)
	}
	if err := model.CheckKeypoints(5); err == nil {
		t.Fatal("expected CheckKeypoints(5) to fail")
	}
}

func TestDuplicateJointNameRejected(t *testing.T) {
	_, err := skeleton.New(skeleton.Description{
		JointNames: []string{"nose", "nose"},
	})
	if !errors.Is(err, skeleton.ErrDuplicateJoint) {
		t.Fatalf("expected ErrDuplicateJoint, got %v", err)
	}
}

func TestLinkIndexOutOfRangeRejected(t *testing.T) {
	// Index K itself is out of range for K joints.
	_, err := skeleton.New(skeleton.Description{
		JointNames: []string{"a", "b"},
		Links:      [][]int{{0, 2}},
	})
	if !errors.Is(err, skeleton.ErrJointIndex) {
		t.Fatalf("expected ErrJointIndex, got %v", err)
	}
}

func TestAngleIndexOutOfRangeRejected(t *testing.T) {
	_, err := skeleton.New(skeleton.Description{
		JointNames: []string{"a", "b", "c"},
		Angles:     [][]int{{0, 1, 3}},
	})
	if !errors.Is(err, skeleton.ErrJointIndex) {
		t.Fatalf("expected ErrJointIndex, got %v", err)
	}
}

func TestNegativeIndexRejected(t *testing.T) {
	_, err := skeleton.New(skeleton.Description{
		JointNames: []string{"a", "b"},
		Links:      [][]int{{-1, 0}},
	})
	if !errors.Is(err, skeleton.ErrJointIndex) {
		t.Fatalf("expected ErrJointIndex, got %v", err)
	}
}

func TestColorsDefaultDeterministically(t *testing.T) {
	desc := skeleton.Description{
		JointNames: []string{"a", "b", "c"},
		Links:      [][]int{{0, 1}},
	}
	first, err := skeleton.New(desc)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	second, err := skeleton.New(desc)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a, b := first.JointColors(), second.JointColors()
	if len(a) != 3 {
		t.Fatalf("expected 3 joint colors, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("palette not deterministic: %v vs %v", a, b)
		}
	}
	if len(first.LinkColors()) != 1 {
		t.Fatalf("expected 1 link color, got %d", len(first.LinkColors()))
	}
}

func TestDeclaredColorCountMustMatch(t *testing.T) {
	_, err := skeleton.New(skeleton.Description{
		JointNames:  []string{"a", "b"},
		JointColors: []string{"#ffffff"},
	})
	if err == nil {
		t.Fatal("expected error for partial color declaration")
	}
}

func TestMalformedLinkRejected(t *testing.T) {
	_, err := skeleton.New(skeleton.Description{
		JointNames: []string{"a", "b"},
		Links:      [][]int{{0, 1, 1}},
	})
	if err == nil {
		t.Fatal("expected error for 3-element link")
	}
}
