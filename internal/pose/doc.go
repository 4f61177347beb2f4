// Package pose defines the numeric containers the toolkit moves keypoint
// data around in.
//
// A Tensor is a dense (frames, keypoints, 3) block of float64 coordinates
// stored flat in frame-major order. A Dataset pairs a Tensor with the
// parallel per-frame session-id sequence produced by a merge. Both are
// plain values with no I/O; loading lives in poseio and merging in merge.
package pose
