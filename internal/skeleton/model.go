package skeleton

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateJoint indicates a repeated joint name in the description.
	ErrDuplicateJoint = errors.New("duplicate joint name")
	// ErrJointIndex indicates a link or angle references a joint index
	// outside [0, K).
	ErrJointIndex = errors.New("invalid joint index")
)

// Link is an unordered pair of joint indices.
type Link struct {
	A, B int
}

// Angle is an ordered triplet of joint indices with the vertex in the middle.
type Angle struct {
	A, B, C int
}

// Description is the declarative YAML form of a skeleton.
type Description struct {
	JointNames  []string `yaml:"joint_names"`
	Links       [][]int  `yaml:"links"`
	Angles      [][]int  `yaml:"angles"`
	JointColors []string `yaml:"joint_colors"`
	LinkColors  []string `yaml:"link_colors"`
}

// Model is a validated, immutable joint graph.
type Model struct {
	names       []string
	links       []Link
	angles      []Angle
	jointColors []string
	linkColors  []string
	byName      map[string]int
}

// Load reads and validates a skeleton description file.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skeleton description: %w", err)
	}
	model, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return model, nil
}

// Parse validates a YAML skeleton description.
func Parse(raw []byte) (*Model, error) {
	var desc Description
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("parse skeleton description: %w", err)
	}
	return New(desc)
}

// New validates a description and builds the immutable model. Colors left
// unspecified default to a fixed palette cycle.
func New(desc Description) (*Model, error) {
	k := len(desc.JointNames)
	if k == 0 {
		return nil, errors.New("skeleton has no joints")
	}

	byName := make(map[string]int, k)
	for i, name := range desc.JointNames {
		if name == "" {
			return nil, fmt.Errorf("joint %d has an empty name", i)
		}
		if prev, ok := byName[name]; ok {
			return nil, fmt.Errorf("%w: %q (joints %d and %d)", ErrDuplicateJoint, name, prev, i)
		}
		byName[name] = i
	}

	links := make([]Link, 0, len(desc.Links))
	seenLinks := make(map[Link]struct{}, len(desc.Links))
	for i, pair := range desc.Links {
		if len(pair) != 2 {
			return nil, fmt.Errorf("link %d has %d indices, want 2", i, len(pair))
		}
		for _, idx := range pair {
			if idx < 0 || idx >= k {
				return nil, fmt.Errorf("%w: link %d references joint %d of %d", ErrJointIndex, i, idx, k)
			}
		}
		link := Link{A: pair[0], B: pair[1]}
		if link.A > link.B {
			link.A, link.B = link.B, link.A
		}
		// Unordered pairs: a reversed duplicate collapses to one link.
		if _, ok := seenLinks[link]; ok {
			continue
		}
		seenLinks[link] = struct{}{}
		links = append(links, link)
	}

	angles := make([]Angle, 0, len(desc.Angles))
	for i, triplet := range desc.Angles {
		if len(triplet) != 3 {
			return nil, fmt.Errorf("angle %d has %d indices, want 3", i, len(triplet))
		}
		for _, idx := range triplet {
			if idx < 0 || idx >= k {
				return nil, fmt.Errorf("%w: angle %d references joint %d of %d", ErrJointIndex, i, idx, k)
			}
		}
		angles = append(angles, Angle{A: triplet[0], B: triplet[1], C: triplet[2]})
	}

	jointColors, err := fillColors(desc.JointColors, k, "joint")
	if err != nil {
		return nil, err
	}
	linkColors, err := fillColors(desc.LinkColors, len(links), "link")
	if err != nil {
		return nil, err
	}

	return &Model{
		names:       append([]string(nil), desc.JointNames...),
		links:       links,
		angles:      angles,
		jointColors: jointColors,
		linkColors:  linkColors,
		byName:      byName,
	}, nil
}

// Keypoints returns K, the number of joints.
func (m *Model) Keypoints() int { return len(m.names) }

// JointNames returns the joint names in index order.
func (m *Model) JointNames() []string {
	return append([]string(nil), m.names...)
}

// JointIndex returns the index of a named joint.
func (m *Model) JointIndex(name string) (int, bool) {
	idx, ok := m.byName[name]
	return idx, ok
}

// Links returns the deduplicated link set.
func (m *Model) Links() []Link {
	return append([]Link(nil), m.links...)
}

// Angles returns the declared angle triplets in order.
func (m *Model) Angles() []Angle {
	return append([]Angle(nil), m.angles...)
}

// JointColors returns one color per joint.
func (m *Model) JointColors() []string {
	return append([]string(nil), m.jointColors...)
}

// LinkColors returns one color per link.
func (m *Model) LinkColors() []string {
	return append([]string(nil), m.linkColors...)
}

// CheckKeypoints validates a dataset's keypoint dimension against the model.
func (m *Model) CheckKeypoints(k int) error {
	if k != len(m.names) {
		return fmt.Errorf("dataset has %d keypoints but skeleton declares %d joints", k, len(m.names))
	}
	return nil
}
