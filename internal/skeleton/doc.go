// Package skeleton holds the declared joint graph over tracked keypoints.
//
// A Model is loaded once from a YAML description (joint names, link pairs,
// optional angle triplets and colors), validated up front, and immutable
// afterwards. It exists to name keypoints and to sanity-check a dataset's
// keypoint dimension; it performs no geometry.
package skeleton
