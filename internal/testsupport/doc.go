// Package testsupport provides shared fixtures for package tests: throwaway
// configurations rooted in temp directories, synthetic pose tensors, and
// on-disk session files in the built-in formats.
package testsupport
