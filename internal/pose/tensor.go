package pose

import (
	"errors"
	"fmt"
)

// Coords is the number of spatial coordinates per keypoint.
const Coords = 3

// Tensor is a dense (Frames, Keypoints, 3) array of coordinates stored flat
// in frame-major order.
type Tensor struct {
	Frames    int
	Keypoints int
	Data      []float64
}

// NewTensor allocates a zero tensor with the given dimensions.
func NewTensor(frames, keypoints int) *Tensor {
	return &Tensor{
		Frames:    frames,
		Keypoints: keypoints,
		Data:      make([]float64, frames*keypoints*Coords),
	}
}

// FromFrames builds a tensor from per-frame (K,3) slices. Every frame must
// have the same keypoint count.
func FromFrames(frames [][][Coords]float64) (*Tensor, error) {
	if len(frames) == 0 {
		return nil, errors.New("pose: no frames")
	}
	k := len(frames[0])
	t := NewTensor(len(frames), k)
	for i, frame := range frames {
		if len(frame) != k {
			return nil, fmt.Errorf("pose: frame %d has %d keypoints, expected %d", i, len(frame), k)
		}
		for j, point := range frame {
			for c := 0; c < Coords; c++ {
				t.Data[(i*k+j)*Coords+c] = point[c]
			}
		}
	}
	return t, nil
}

// At returns the coordinate value for (frame, keypoint, coord).
func (t *Tensor) At(frame, keypoint, coord int) float64 {
	return t.Data[(frame*t.Keypoints+keypoint)*Coords+coord]
}

// Set assigns the coordinate value for (frame, keypoint, coord).
func (t *Tensor) Set(frame, keypoint, coord int, v float64) {
	t.Data[(frame*t.Keypoints+keypoint)*Coords+coord] = v
}

// Frame returns the flat (K*3) slice backing frame i. The returned slice
// aliases the tensor's storage.
func (t *Tensor) Frame(i int) []float64 {
	stride := t.Keypoints * Coords
	return t.Data[i*stride : (i+1)*stride]
}

// Append concatenates other onto t along the frame axis. The keypoint
// dimensions must match.
func (t *Tensor) Append(other *Tensor) error {
	if other == nil || other.Frames == 0 {
		return nil
	}
	if t.Frames == 0 && t.Keypoints == 0 {
		t.Keypoints = other.Keypoints
	}
	if other.Keypoints != t.Keypoints {
		return fmt.Errorf("pose: cannot append %d-keypoint frames to %d-keypoint tensor", other.Keypoints, t.Keypoints)
	}
	t.Data = append(t.Data, other.Data...)
	t.Frames += other.Frames
	return nil
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	n := &Tensor{Frames: t.Frames, Keypoints: t.Keypoints, Data: make([]float64, len(t.Data))}
	copy(n.Data, t.Data)
	return n
}

// Dataset is the product of merging per-session tensors: the concatenated
// pose block plus the parallel per-frame session-id sequence.
type Dataset struct {
	Pose *Tensor
	IDs  []uint32
}

// Validate checks the dataset's structural invariant: one session id per frame.
func (d *Dataset) Validate() error {
	if d.Pose == nil {
		return errors.New("pose: dataset has no tensor")
	}
	if len(d.IDs) != d.Pose.Frames {
		return fmt.Errorf("pose: %d session ids for %d frames", len(d.IDs), d.Pose.Frames)
	}
	return nil
}
