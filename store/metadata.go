package store

import (
	"math"
	"time"

	"github.com/SapoSopa/Projeto-SSC/algorithms/common"
	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// preprocessingVersion is recorded in every metadata document so downstream
// consumers can detect recipe changes.
const preprocessingVersion = "1.0"

// goodSNRThreshold is the SNR in dB above which a channel counts as good
// quality in the aggregate statistics.
const goodSNRThreshold = 15.0

type metadataDocument struct {
	Processamento  processingInfo                `json:"processamento"`
	DadosOriginais originalDataInfo              `json:"dados_originais"`
	Qualidade      map[string]ecg.ChannelQuality `json:"qualidade,omitempty"`
	Estatisticas   signalStatistics              `json:"estatisticas"`
}

type processingInfo struct {
	Timestamp    string `json:"timestamp"`
	ECGID        int    `json:"ecg_id"`
	PastaDestino string `json:"pasta_destino"`
	Versao       string `json:"versao_preprocessing"`
}

type originalDataInfo struct {
	FS          float64  `json:"fs"`
	SigNames    []string `json:"sig_name"`
	NumSamples  int      `json:"n_samples"`
	NumChannels int      `json:"n_channels"`
	Duration    float64  `json:"duracao_segundos"`
}

type signalStatistics struct {
	MeanGlobal   float64 `json:"amplitude_media_global"`
	StdGlobal    float64 `json:"amplitude_std_global"`
	MinGlobal    float64 `json:"amplitude_min_global"`
	MaxGlobal    float64 `json:"amplitude_max_global"`
	RMSGlobal    float64 `json:"amplitude_rms_global"`
	GoodChannels int     `json:"canais_com_boa_qualidade"`
}

func buildMetadataDocument(sig *ecg.Signal, md ecg.Metadata, ecgID int, shard string, now time.Time) metadataDocument {
	quality := make(map[string]ecg.ChannelQuality, len(md.Quality))
	good := 0
	for name, q := range md.Quality {
		quality[name] = ecg.ChannelQuality{
			SNR:           finite(q.SNR),
			MaxAmplitude:  finite(q.MaxAmplitude),
			Saturation:    finite(q.Saturation),
			ZeroCrossings: finite(q.ZeroCrossings),
			RMS:           finite(q.RMS),
		}
		if q.SNR >= goodSNRThreshold {
			good++
		}
	}

	flat := flatten(sig)
	return metadataDocument{
		Processamento: processingInfo{
			Timestamp:    now.Format(timestampLayout),
			ECGID:        ecgID,
			PastaDestino: shard,
			Versao:       preprocessingVersion,
		},
		DadosOriginais: originalDataInfo{
			FS:          md.FS,
			SigNames:    md.SigNames,
			NumSamples:  md.NumSamples,
			NumChannels: md.NumChannels,
			Duration:    md.DurationSeconds(),
		},
		Qualidade: quality,
		Estatisticas: signalStatistics{
			MeanGlobal:   finite(common.Mean(flat)),
			StdGlobal:    finite(common.StandardDeviation(flat)),
			MinGlobal:    finite(common.Min(flat)),
			MaxGlobal:    finite(common.Max(flat)),
			RMSGlobal:    finite(common.RMS(flat)),
			GoodChannels: good,
		},
	}
}

func flatten(sig *ecg.Signal) []float64 {
	m := sig.Matrix()
	rows, cols := m.Dims()
	flat := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		flat = append(flat, m.RawRowView(i)...)
	}
	return flat
}

// finite coerces NaN and infinities to zero so the document stays valid JSON.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
