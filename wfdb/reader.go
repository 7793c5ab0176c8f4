// Package wfdb reads WFDB waveform records: a text header (.hea) describing
// sampling rate, channel labels and per-signal calibration, plus a binary
// signal file. Format 16 (16-bit little-endian, channel-interleaved) is
// supported, which covers the PTB-XL dataset layout.
package wfdb

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// defaultGain is assumed when the header specifies a gain of zero, per the
// WFDB header conventions.
const defaultGain = 200.0

type signalSpec struct {
	File     string
	Format   string
	Gain     float64
	Baseline int
	ADCZero  int
	Label    string
}

type header struct {
	Name       string
	NumSignals int
	FS         float64
	NumSamples int
	Signals    []signalSpec
}

// ReadRecord loads the record at path (without extension): it parses
// <path>.hea and the signal file it references, converts digital samples to
// physical units and returns the signal together with its metadata.
func ReadRecord(path string) (*ecg.Signal, ecg.Metadata, error) {
	headerPath := path + ".hea"

	f, err := os.Open(headerPath)
	if err != nil {
		return nil, ecg.Metadata{}, &ecg.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	hdr, err := parseHeader(f)
	if err != nil {
		return nil, ecg.Metadata{}, &ecg.LoadError{Path: path, Err: err}
	}

	sig, err := readSamples(filepath.Dir(headerPath), hdr)
	if err != nil {
		return nil, ecg.Metadata{}, &ecg.LoadError{Path: path, Err: err}
	}

	names := make([]string, len(hdr.Signals))
	for i, spec := range hdr.Signals {
		names[i] = spec.Label
	}

	md := ecg.Metadata{
		FS:          hdr.FS,
		SigNames:    names,
		NumSamples:  sig.Samples(),
		NumChannels: sig.Channels(),
	}
	return sig, md, nil
}

func parseHeader(r io.Reader) (header, error) {
	scanner := bufio.NewScanner(r)

	var hdr header
	recordParsed := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !recordParsed {
			if err := parseRecordLine(line, &hdr); err != nil {
				return header{}, err
			}
			recordParsed = true
			continue
		}

		if len(hdr.Signals) < hdr.NumSignals {
			spec, err := parseSignalLine(line)
			if err != nil {
				return header{}, err
			}
			hdr.Signals = append(hdr.Signals, spec)
		}
	}
	if err := scanner.Err(); err != nil {
		return header{}, err
	}

	if !recordParsed {
		return header{}, fmt.Errorf("header has no record line")
	}
	if len(hdr.Signals) != hdr.NumSignals {
		return header{}, fmt.Errorf("header declares %d signals but describes %d", hdr.NumSignals, len(hdr.Signals))
	}
	return hdr, nil
}

// parseRecordLine parses "name nsig fs nsamples". The sampling-frequency
// field may carry a counter frequency after a slash, which is ignored.
func parseRecordLine(line string, hdr *header) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("malformed record line %q", line)
	}

	hdr.Name = fields[0]

	nsig, err := strconv.Atoi(fields[1])
	if err != nil || nsig < 1 {
		return fmt.Errorf("malformed signal count in record line %q", line)
	}
	hdr.NumSignals = nsig

	hdr.FS = 250 // WFDB default when the header omits the sampling frequency
	if len(fields) >= 3 {
		fsField := strings.SplitN(fields[2], "/", 2)[0]
		fs, err := strconv.ParseFloat(fsField, 64)
		if err != nil || fs <= 0 {
			return fmt.Errorf("malformed sampling frequency in record line %q", line)
		}
		hdr.FS = fs
	}

	if len(fields) >= 4 {
		n, err := strconv.Atoi(fields[3])
		if err != nil || n < 0 {
			return fmt.Errorf("malformed sample count in record line %q", line)
		}
		hdr.NumSamples = n
	}
	return nil
}

// parseSignalLine parses "file format gain(baseline)/units adcres adczero
// initval checksum blocksize description".
func parseSignalLine(line string) (signalSpec, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return signalSpec{}, fmt.Errorf("malformed signal line %q", line)
	}

	spec := signalSpec{
		File:   fields[0],
		Format: fields[1],
		Gain:   defaultGain,
	}

	if spec.Format != "16" {
		return signalSpec{}, fmt.Errorf("unsupported signal format %q (only format 16 is supported)", spec.Format)
	}

	baselineSet := false
	if len(fields) >= 3 {
		gain, baseline, hasBaseline, err := parseGainField(fields[2])
		if err != nil {
			return signalSpec{}, fmt.Errorf("malformed gain field in signal line %q: %w", line, err)
		}
		if gain != 0 {
			spec.Gain = gain
		}
		if hasBaseline {
			spec.Baseline = baseline
			baselineSet = true
		}
	}

	if len(fields) >= 5 {
		if adcZero, err := strconv.Atoi(fields[4]); err == nil {
			spec.ADCZero = adcZero
		}
	}
	if !baselineSet {
		spec.Baseline = spec.ADCZero
	}

	if len(fields) >= 9 {
		spec.Label = strings.Join(fields[8:], " ")
	}
	return spec, nil
}

// parseGainField decodes "gain", "gain/units" or "gain(baseline)/units".
func parseGainField(field string) (gain float64, baseline int, hasBaseline bool, err error) {
	if idx := strings.IndexByte(field, '/'); idx >= 0 {
		field = field[:idx]
	}

	if open := strings.IndexByte(field, '('); open >= 0 {
		end := strings.IndexByte(field, ')')
		if end < open {
			return 0, 0, false, fmt.Errorf("unbalanced baseline parentheses in %q", field)
		}
		baseline, err = strconv.Atoi(field[open+1 : end])
		if err != nil {
			return 0, 0, false, err
		}
		hasBaseline = true
		field = field[:open]
	}

	gain, err = strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, 0, false, err
	}
	return gain, baseline, hasBaseline, nil
}

// readSamples decodes the interleaved 16-bit signal file and applies the
// per-signal gain/baseline calibration: physical = (digital - baseline) / gain.
func readSamples(dir string, hdr header) (*ecg.Signal, error) {
	for _, spec := range hdr.Signals[1:] {
		if spec.File != hdr.Signals[0].File {
			return nil, fmt.Errorf("multi-file records are not supported (%s vs %s)", spec.File, hdr.Signals[0].File)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, hdr.Signals[0].File))
	if err != nil {
		return nil, err
	}

	frame := 2 * hdr.NumSignals
	if len(raw) == 0 || len(raw)%frame != 0 {
		return nil, fmt.Errorf("signal file size %d is not a multiple of the %d-byte frame", len(raw), frame)
	}

	samples := len(raw) / frame
	if hdr.NumSamples > 0 && hdr.NumSamples < samples {
		samples = hdr.NumSamples
	}
	if samples == 0 {
		return nil, fmt.Errorf("signal file holds no samples")
	}

	data := mat.NewDense(samples, hdr.NumSignals, nil)
	for i := 0; i < samples; i++ {
		for ch, spec := range hdr.Signals {
			digital := int16(binary.LittleEndian.Uint16(raw[i*frame+2*ch:]))
			data.Set(i, ch, (float64(digital)-float64(spec.Baseline))/spec.Gain)
		}
	}

	return ecg.NewSignal(data)
}
