package features

import (
	"math"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/SapoSopa/Projeto-SSC/ecg"
	"github.com/SapoSopa/Projeto-SSC/store"
)

// Document is the serialized per-channel feature artifact.
type Document struct {
	Processamento  ExtractionInfo     `json:"processamento"`
	DadosOriginais SourceInfo         `json:"dados_originais"`
	Features       map[string]float64 `json:"features"`
	NumFeatures    int                `json:"num_features"`
}

// ExtractionInfo records which record and channel the features came from and
// when both processing steps happened.
type ExtractionInfo struct {
	ECGID          int    `json:"ecg_id"`
	Channel        int    `json:"canal_analisado"`
	ExtractedAt    string `json:"timestamp_extracao"`
	PreprocessedAt string `json:"timestamp_preprocessamento"`
}

// SourceInfo describes the processed signal the features were computed from.
type SourceInfo struct {
	FS    float64 `json:"fs"`
	Shape []int   `json:"shape"`
}

// Pipeline loads persisted records and writes per-channel feature documents
// next to them.
type Pipeline struct {
	store     *store.Store
	extractor *Extractor
}

// NewPipeline returns a feature pipeline reading from and writing to the
// given store.
func NewPipeline(s *store.Store, opts Options) *Pipeline {
	return &Pipeline{store: s, extractor: NewExtractor(opts)}
}

// Run loads the processed record, extracts features for the given channels
// (all channels when nil) and writes one document per channel. Channels whose
// extraction failed are written as empty feature sets. It returns the paths
// written.
func (p *Pipeline) Run(ecgID int, channels []int) ([]string, error) {
	rec, err := p.store.LoadProcessed(ecgID)
	if err != nil {
		return nil, err
	}

	results, err := p.extractor.ExtractAll(rec.Signal, channels, rec.FS)
	if err != nil {
		return nil, err
	}

	preprocessedAt := ""
	if !rec.Timestamp.IsZero() {
		preprocessedAt = rec.Timestamp.Format("20060102_150405")
	}
	now := time.Now().Format("20060102_150405")

	paths := make([]string, 0, len(results))
	for ch, featureMap := range results {
		doc := Document{
			Processamento: ExtractionInfo{
				ECGID:          ecgID,
				Channel:        ch,
				ExtractedAt:    now,
				PreprocessedAt: preprocessedAt,
			},
			DadosOriginais: SourceInfo{
				FS:    rec.FS,
				Shape: []int{rec.Signal.Samples(), rec.Signal.Channels()},
			},
			Features:    sanitize(featureMap),
			NumFeatures: len(featureMap),
		}

		path := p.store.FeaturesPath(ecgID, ch)
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return paths, &ecg.PersistenceError{Path: path, Err: err}
		}
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return paths, &ecg.PersistenceError{Path: path, Err: err}
		}
		paths = append(paths, path)

		log.Debug().
			Int("ecg_id", ecgID).
			Int("channel", ch).
			Int("num_features", len(featureMap)).
			Msg("feature document written")
	}
	return paths, nil
}

// sanitize coerces NaN and infinities to zero so documents never carry
// non-finite values.
func sanitize(features map[string]float64) map[string]float64 {
	clean := make(map[string]float64, len(features))
	for name, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		clean[name] = v
	}
	return clean
}
