// Package snapshot loads and saves board snapshots as JSON files.
//
// Two file shapes are accepted on load:
//
//	{"fields": [...], "items": [...]}        // written by Save
//	[{"status": "...", "items": [...]}, ...] // lane list written by older tools
//
// A lane list is turned back into an equivalent [board.Snapshot]: a Status
// field whose options are the lane statuses in order, and the lanes' items.
// Classifying that snapshot reproduces the saved lanes.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/calvinalkan/gh-board/internal/board"
	"github.com/calvinalkan/gh-board/internal/fs"

	"go.uber.org/zap"
)

const (
	filePerms = 0o644
	dirPerms  = 0o755
)

// Error variables for snapshot persistence.
var (
	ErrNotFound = errors.New("snapshot file not found")
	ErrRead     = errors.New("cannot read snapshot file")
	ErrInvalid  = errors.New("invalid snapshot file")
	ErrWrite    = errors.New("cannot write snapshot file")
)

// Store reads and writes snapshot files through an [fs.FS].
type Store struct {
	fs  fs.FS
	log *zap.Logger
}

// NewStore returns a Store. A nil logger disables logging.
func NewStore(fsys fs.FS, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{fs: fsys, log: log}
}

// Load reads the snapshot at path.
func (s *Store) Load(path string) (board.Snapshot, error) {
	exists, err := s.fs.Exists(path)
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}

	if !exists {
		return board.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}

	snap, err := Decode(data)
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	s.log.Debug("snapshot loaded",
		zap.String("path", path),
		zap.Int("fields", len(snap.Fields)),
		zap.Int("items", len(snap.Items)))

	return snap, nil
}

// Save writes snap to path as indented JSON, creating parent directories.
func (s *Store) Save(path string, snap board.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, dirPerms); err != nil {
			return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
		}
	}

	if err := s.fs.WriteFileAtomic(path, data, filePerms); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}

	s.log.Debug("snapshot saved", zap.String("path", path), zap.Int("bytes", len(data)))

	return nil
}

// Encode returns the file form of snap.
func Encode(snap board.Snapshot) ([]byte, error) {
	if snap.Fields == nil {
		snap.Fields = board.Fields{}
	}

	if snap.Items == nil {
		snap.Items = []board.Item{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// Decode parses either file shape.
func Decode(data []byte) (board.Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return board.Snapshot{}, errors.New("empty file")
	}

	if trimmed[0] == '[' {
		var lanes []board.Lane

		if err := json.Unmarshal(trimmed, &lanes); err != nil {
			return board.Snapshot{}, fmt.Errorf("invalid lane list: %w", err)
		}

		return FromLanes(lanes), nil
	}

	var snap board.Snapshot

	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return board.Snapshot{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return snap, nil
}

// FromLanes rebuilds a snapshot from already classified lanes.
func FromLanes(lanes []board.Lane) board.Snapshot {
	status := board.Field{Name: board.StatusFieldName}
	items := []board.Item{}

	for _, lane := range lanes {
		status.Options = append(status.Options, board.StatusOption{Name: lane.Status})

		for _, item := range lane.Items {
			// Items in older lane files may omit status; the lane owns it.
			item.Status = lane.Status
			items = append(items, item)
		}
	}

	return board.Snapshot{Fields: board.Fields{status}, Items: items}
}
