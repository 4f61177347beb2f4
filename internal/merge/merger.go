package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"posekit/internal/logging"
	"posekit/internal/pose"
	"posekit/internal/poseio"
	"posekit/internal/session"
)

var (
	// ErrEmptyMergeSet indicates a merge over zero sessions, which would leave
	// the keypoint dimension undefined.
	ErrEmptyMergeSet = errors.New("empty merge set")
	// ErrKeypointMismatch indicates two sessions disagree on keypoint count.
	ErrKeypointMismatch = errors.New("keypoint dimension mismatch")
)

// Entry names one session to merge: its id, source path, and file format.
type Entry struct {
	ID     uint32
	Path   string
	Format poseio.Format
}

// SessionFailure records one session whose pose file could not be loaded.
type SessionFailure struct {
	ID   uint32
	Path string
	Err  error
}

// LoadError aggregates every per-session load failure from one merge pass.
type LoadError struct {
	Failures []SessionFailure
}

func (e *LoadError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("session %d (%s): %v", f.ID, f.Path, f.Err)
	}
	return fmt.Sprintf("load %d of the requested sessions failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes the underlying loader errors to errors.Is/errors.As.
func (e *LoadError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Options configures a Merger.
type Options struct {
	// Workers bounds concurrent session loads. Zero means GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Merger loads and concatenates per-session pose tensors.
type Merger struct {
	workers int
	logger  *slog.Logger
}

// New constructs a Merger.
func New(opts Options) *Merger {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Merger{workers: workers, logger: logger}
}

// Merge loads every entry's tensor and concatenates them along the frame axis
// in input order, returning the merged dataset and its per-frame session-id
// sequence. Entries are not reordered: ids reflect input order even when that
// order is not numerically monotonic.
func (m *Merger) Merge(ctx context.Context, entries []Entry) (*pose.Dataset, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyMergeSet
	}

	tensors := make([]*pose.Tensor, len(entries))
	loadErrs := make([]error, len(entries))

	workers := m.workers
	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				tensors[idx], loadErrs[idx] = m.loadOne(entries[idx])
			}
		}()
	}

feed:
	for idx := range entries {
		select {
		case <-ctx.Done():
			loadErrs[idx] = ctx.Err()
			for j := idx + 1; j < len(entries); j++ {
				loadErrs[j] = ctx.Err()
			}
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	var failures []SessionFailure
	for idx, err := range loadErrs {
		if err != nil {
			failures = append(failures, SessionFailure{ID: entries[idx].ID, Path: entries[idx].Path, Err: err})
		}
	}
	if len(failures) > 0 {
		return nil, &LoadError{Failures: failures}
	}

	keypoints := tensors[0].Keypoints
	for idx, t := range tensors[1:] {
		if t.Keypoints != keypoints {
			return nil, fmt.Errorf("%w: session %d has %d keypoints, session %d has %d",
				ErrKeypointMismatch, entries[0].ID, keypoints, entries[idx+1].ID, t.Keypoints)
		}
	}

	totalFrames := 0
	for _, t := range tensors {
		totalFrames += t.Frames
	}

	merged := &pose.Tensor{
		Keypoints: keypoints,
		Data:      make([]float64, 0, totalFrames*keypoints*pose.Coords),
	}
	ids := make([]uint32, 0, totalFrames)
	for idx, t := range tensors {
		if err := merged.Append(t); err != nil {
			return nil, err
		}
		for f := 0; f < t.Frames; f++ {
			ids = append(ids, entries[idx].ID)
		}
	}

	m.logger.Info("merged pose sessions",
		"sessions", len(entries),
		"frames", merged.Frames,
		"keypoints", keypoints)

	return &pose.Dataset{Pose: merged, IDs: ids}, nil
}

func (m *Merger) loadOne(entry Entry) (*pose.Tensor, error) {
	loader, err := poseio.Lookup(entry.Format)
	if err != nil {
		return nil, err
	}
	t, err := loader.Load(entry.Path)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("loaded session tensor",
		"session", entry.ID,
		"path", entry.Path,
		"frames", t.Frames,
		"keypoints", t.Keypoints)
	return t, nil
}

// EntriesFromRegistry builds merge entries for every registered session in
// registry order, all sharing one format.
func EntriesFromRegistry(reg *session.Registry, format poseio.Format) []Entry {
	records := reg.Records()
	entries := make([]Entry, len(records))
	for i, rec := range records {
		entries[i] = Entry{ID: rec.ID, Path: rec.Path, Format: format}
	}
	return entries
}

// Blocks summarizes a merged id sequence as (id, frame count) runs in order.
func Blocks(ids []uint32) []Block {
	var blocks []Block
	for _, id := range ids {
		if n := len(blocks); n > 0 && blocks[n-1].ID == id {
			blocks[n-1].Frames++
			continue
		}
		blocks = append(blocks, Block{ID: id, Frames: 1})
	}
	return blocks
}

// Block is one contiguous run of frames from a single session.
type Block struct {
	ID     uint32 `json:"id"`
	Frames int    `json:"frames"`
}
