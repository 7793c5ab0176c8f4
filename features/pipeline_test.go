package features

import (
	"os"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SapoSopa/Projeto-SSC/ecg"
	"github.com/SapoSopa/Projeto-SSC/store"
)

func savedRecord(t *testing.T, ecgID int) *store.Store {
	t.Helper()
	s := store.New(t.TempDir())

	sig, err := ecg.FromChannels([][]float64{
		sine(512, 5, 256),
		sine(512, 20, 256),
	})
	require.NoError(t, err)

	md := ecg.Metadata{FS: 256, SigNames: []string{"I", "II"}, NumSamples: 512, NumChannels: 2}
	require.NoError(t, s.Save(sig, md, ecgID))
	return s
}

func TestPipelineWritesOneDocumentPerChannel(t *testing.T) {
	s := savedRecord(t, 1234)
	p := NewPipeline(s, DefaultOptions())

	paths, err := p.Run(1234, nil)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	assert.FileExists(t, s.FeaturesPath(1234, 0))
	assert.FileExists(t, s.FeaturesPath(1234, 1))
}

func TestPipelineDocumentContent(t *testing.T) {
	s := savedRecord(t, 88)
	p := NewPipeline(s, DefaultOptions())

	_, err := p.Run(88, []int{1})
	require.NoError(t, err)

	raw, err := os.ReadFile(s.FeaturesPath(88, 1))
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, 88, doc.Processamento.ECGID)
	assert.Equal(t, 1, doc.Processamento.Channel)
	assert.NotEmpty(t, doc.Processamento.ExtractedAt)
	assert.NotEmpty(t, doc.Processamento.PreprocessedAt)

	assert.Equal(t, 256.0, doc.DadosOriginais.FS)
	assert.Equal(t, []int{512, 2}, doc.DadosOriginais.Shape)

	assert.Equal(t, len(doc.Features), doc.NumFeatures)
	assert.Contains(t, doc.Features, "dominant_frequency")
	assert.InDelta(t, 20.0, doc.Features["dominant_frequency"], 0.5)

	// Persisted features are always finite.
	for name, v := range doc.Features {
		assert.False(t, v != v, "feature %s is NaN", name)
	}
}

func TestPipelineMissingRecord(t *testing.T) {
	s := store.New(t.TempDir())
	p := NewPipeline(s, DefaultOptions())

	_, err := p.Run(999, nil)
	assert.Error(t, err)
}
