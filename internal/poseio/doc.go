// Package poseio loads per-session pose tensors from their source files.
//
// Each supported file layout is a Loader registered under an enumerated
// Format tag. The merge engine selects loaders purely by tag and treats them
// as opaque: a loader's whole contract is Load(path) returning a
// (frames, keypoints, 3) tensor. Two loaders ship built in — the packed NPY
// array format and a delimited per-frame table — and vendor-specific formats
// plug in through Register without this package parsing them.
package poseio
