package preprocess

import (
	"github.com/SapoSopa/Projeto-SSC/algorithms/windowing"
	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// kaiserBeta is the shape parameter used for the Kaiser window, matching the
// common choice for a roughly 90 dB sidelobe attenuation.
const kaiserBeta = 8.6

// WindowKind selects the taper applied by ApplyWindow.
type WindowKind int

const (
	WindowHann WindowKind = iota
	WindowHamming
	WindowBlackman
	WindowKaiser
)

func (k WindowKind) String() string {
	switch k {
	case WindowHann:
		return "hann"
	case WindowHamming:
		return "hamming"
	case WindowBlackman:
		return "blackman"
	case WindowKaiser:
		return "kaiser"
	default:
		return "unknown"
	}
}

// ParseWindowKind maps a configuration string onto a WindowKind.
func ParseWindowKind(name string) (WindowKind, error) {
	switch name {
	case "hann":
		return WindowHann, nil
	case "hamming":
		return WindowHamming, nil
	case "blackman":
		return WindowBlackman, nil
	case "kaiser":
		return WindowKaiser, nil
	default:
		return 0, &ecg.ValidationError{Param: "window", Value: name, Reason: "window must be hann, hamming, blackman or kaiser"}
	}
}

// ApplyWindow multiplies every channel by a full-length taper of the given
// kind, returning a fresh signal of the same shape.
func ApplyWindow(sig *ecg.Signal, kind WindowKind) (*ecg.Signal, error) {
	if sig == nil {
		return nil, &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}

	var window []float64
	switch kind {
	case WindowHann:
		window = windowing.Hann(sig.Samples())
	case WindowHamming:
		window = windowing.Hamming(sig.Samples())
	case WindowBlackman:
		window = windowing.Blackman(sig.Samples())
	case WindowKaiser:
		window = windowing.Kaiser(sig.Samples(), kaiserBeta)
	default:
		return nil, &ecg.ValidationError{Param: "window", Value: int(kind), Reason: "unknown window kind"}
	}

	out := ecg.Empty(sig.Samples(), sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		channel, err := sig.Channel(ch)
		if err != nil {
			return nil, err
		}
		for i := range channel {
			channel[i] *= window[i]
		}
		if err := out.SetChannel(ch, channel); err != nil {
			return nil, err
		}
	}
	return out, nil
}
