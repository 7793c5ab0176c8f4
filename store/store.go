// Package store persists processed records to a sharded on-disk layout:
// each record becomes a compressed NPZ archive holding the signal matrix and
// a JSON metadata document, grouped one thousand records per shard folder.
package store

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// recordsPerShard is the number of records grouped into one shard folder.
const recordsPerShard = 1000

// timestampLayout is the timestamp format embedded in archives and metadata.
const timestampLayout = "20060102_150405"

// Store writes and reads processed records under a base directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.dir
}

// ShardFolder returns the shard directory for a record id. Records 1..1000
// share records000, 1001..2000 share records001, and so on.
func (s *Store) ShardFolder(ecgID int) string {
	return filepath.Join(s.dir, fmt.Sprintf("records%03d", (ecgID-1)/recordsPerShard))
}

// SignalPath returns the NPZ archive path for a record id.
func (s *Store) SignalPath(ecgID int) string {
	return filepath.Join(s.ShardFolder(ecgID), fmt.Sprintf("%05d_processed.npz", ecgID))
}

// MetadataPath returns the metadata document path for a record id.
func (s *Store) MetadataPath(ecgID int) string {
	return filepath.Join(s.ShardFolder(ecgID), fmt.Sprintf("%05d_metadata.json", ecgID))
}

// FeaturesPath returns the feature document path for one channel of a record.
func (s *Store) FeaturesPath(ecgID, channel int) string {
	return filepath.Join(s.ShardFolder(ecgID), fmt.Sprintf("%05d_canal%d_features.json", ecgID, channel))
}

// Save writes the processed signal and its metadata for the given record id,
// overwriting any previous version. The signal goes into a compressed NPZ
// archive alongside a JSON metadata document in the record's shard folder.
func (s *Store) Save(sig *ecg.Signal, md ecg.Metadata, ecgID int) error {
	if ecgID < 1 {
		return &ecg.ValidationError{Param: "ecg_id", Value: ecgID, Reason: "record id must be at least 1"}
	}
	if sig == nil {
		return &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}

	shard := s.ShardFolder(ecgID)
	if err := os.MkdirAll(shard, 0o755); err != nil {
		return &ecg.PersistenceError{Path: shard, Err: err}
	}

	now := time.Now()
	if err := s.writeArchive(sig, md, ecgID, now); err != nil {
		return err
	}
	if err := s.writeMetadata(sig, md, ecgID, now); err != nil {
		return err
	}

	log.Debug().
		Int("ecg_id", ecgID).
		Str("shard", shard).
		Msg("record persisted")
	return nil
}

func (s *Store) writeArchive(sig *ecg.Signal, md ecg.Metadata, ecgID int, now time.Time) error {
	path := s.SignalPath(ecgID)

	f, err := os.Create(path)
	if err != nil {
		return &ecg.PersistenceError{Path: path, Err: err}
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entries := []struct {
		name  string
		value interface{}
	}{
		{"sinal.npy", sig.Matrix()},
		{"ecg_id.npy", int64(ecgID)},
		{"timestamp.npy", []byte(now.Format(timestampLayout))},
		{"shape.npy", []int64{int64(sig.Samples()), int64(sig.Channels())}},
		{"fs.npy", md.FS},
	}
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			return &ecg.PersistenceError{Path: path, Err: err}
		}
		if err := npyio.Write(w, entry.value); err != nil {
			return &ecg.PersistenceError{Path: path, Err: fmt.Errorf("write %s: %w", entry.name, err)}
		}
	}
	if err := zw.Close(); err != nil {
		return &ecg.PersistenceError{Path: path, Err: err}
	}
	return nil
}

func (s *Store) writeMetadata(sig *ecg.Signal, md ecg.Metadata, ecgID int, now time.Time) error {
	path := s.MetadataPath(ecgID)

	doc := buildMetadataDocument(sig, md, ecgID, filepath.Base(s.ShardFolder(ecgID)), now)
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &ecg.PersistenceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return &ecg.PersistenceError{Path: path, Err: err}
	}
	return nil
}

// ProcessedRecord is a record read back from an NPZ archive.
type ProcessedRecord struct {
	Signal    *ecg.Signal
	ECGID     int
	Timestamp time.Time
	FS        float64
}

// LoadProcessed reads the NPZ archive for a record id back into memory.
func (s *Store) LoadProcessed(ecgID int) (*ProcessedRecord, error) {
	if ecgID < 1 {
		return nil, &ecg.ValidationError{Param: "ecg_id", Value: ecgID, Reason: "record id must be at least 1"}
	}

	path := s.SignalPath(ecgID)
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ecg.PersistenceError{Path: path, Err: err}
	}
	defer r.Close()

	rec := &ProcessedRecord{}
	var stamp []byte
	seen := make(map[string]bool, 3)
	for _, file := range r.File {
		var dest interface{}
		switch file.Name {
		case "sinal.npy":
			dest = &mat.Dense{}
		case "ecg_id.npy":
			dest = new(int64)
		case "timestamp.npy":
			dest = &stamp
		case "fs.npy":
			dest = new(float64)
		default:
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, &ecg.PersistenceError{Path: path, Err: err}
		}
		err = npyio.Read(rc, dest)
		rc.Close()
		if err != nil {
			return nil, &ecg.PersistenceError{Path: path, Err: fmt.Errorf("read %s: %w", file.Name, err)}
		}

		switch v := dest.(type) {
		case *mat.Dense:
			rec.Signal, err = ecg.NewSignal(v)
			if err != nil {
				return nil, &ecg.PersistenceError{Path: path, Err: err}
			}
		case *int64:
			rec.ECGID = int(*v)
		case *float64:
			rec.FS = *v
		}
		seen[file.Name] = true
	}

	for _, name := range []string{"sinal.npy", "ecg_id.npy", "fs.npy"} {
		if !seen[name] {
			return nil, &ecg.PersistenceError{Path: path, Err: fmt.Errorf("archive is missing %s", name)}
		}
	}

	if len(stamp) > 0 {
		rec.Timestamp, err = time.ParseInLocation(timestampLayout, string(stamp), time.Local)
		if err != nil {
			return nil, &ecg.PersistenceError{Path: path, Err: fmt.Errorf("parse timestamp: %w", err)}
		}
	}
	return rec, nil
}
