// Package signals generates synthetic curves used to exercise the chart with
// live traces.
package signals

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Kind names a waveform.
type Kind uint8

const (
	Sine Kind = iota
	Saw
	Walk
)

func (k Kind) String() string {
	switch k {
	case Sine:
		return "sine"
	case Saw:
		return "saw"
	case Walk:
		return "walk"
	default:
		return "?"
	}
}

// Signal is a waveform sampled by elapsed time.
type Signal interface {
	Name() string
	Read(elapsed time.Duration) (float64, error)
}

type periodic struct {
	name      string
	kind      Kind
	period    time.Duration
	amplitude float64
	offset    float64
}

// NewPeriodic builds a sine or saw wave.
func NewPeriodic(name string, kind Kind, period time.Duration, amplitude, offset float64) (Signal, error) {
	if kind != Sine && kind != Saw {
		return nil, fmt.Errorf("signal %q: %v is not periodic", name, kind)
	}
	if period <= 0 {
		return nil, fmt.Errorf("signal %q: period must be positive, got %v", name, period)
	}
	return &periodic{name: name, kind: kind, period: period, amplitude: amplitude, offset: offset}, nil
}

func (p *periodic) Name() string { return p.name }

func (p *periodic) Read(elapsed time.Duration) (float64, error) {
	phase := float64(elapsed%p.period) / float64(p.period)
	switch p.kind {
	case Saw:
		return p.offset + p.amplitude*(2*phase-1), nil
	default:
		return p.offset + p.amplitude*math.Sin(2*math.Pi*phase), nil
	}
}

// walk is a bounded random walk. Each read takes one step.
type walk struct {
	name  string
	rng   *rand.Rand
	step  float64
	value float64
	bound float64
}

// NewWalk builds a random walk starting at zero that never leaves
// [-bound, bound].
func NewWalk(name string, seed int64, step, bound float64) Signal {
	return &walk{
		name:  name,
		rng:   rand.New(rand.NewSource(seed)),
		step:  step,
		bound: math.Abs(bound),
	}
}

func (w *walk) Name() string { return w.name }

func (w *walk) Read(time.Duration) (float64, error) {
	w.value += (w.rng.Float64()*2 - 1) * w.step
	w.value = max(-w.bound, min(w.value, w.bound))
	return w.value, nil
}

// Parse builds signals from a comma separated list of "kind[:period]"
// entries, such as "sine:2s,saw,walk". Entries of the same kind are
// numbered.
func Parse(list string, seed int64) ([]Signal, error) {
	var (
		out    []Signal
		counts = map[Kind]int{}
	)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		kindName, periodText, hasPeriod := strings.Cut(entry, ":")
		period := 5 * time.Second
		if hasPeriod {
			var err error
			period, err = time.ParseDuration(periodText)
			if err != nil {
				return nil, fmt.Errorf("parsing signal %q: %w", entry, err)
			}
		}
		var kind Kind
		switch kindName {
		case "sine":
			kind = Sine
		case "saw":
			kind = Saw
		case "walk":
			kind = Walk
		default:
			return nil, fmt.Errorf("parsing signal %q: unknown kind %q", entry, kindName)
		}
		counts[kind]++
		name := kind.String()
		if n := counts[kind]; n > 1 {
			name += strconv.Itoa(n)
		}
		if kind == Walk {
			out = append(out, NewWalk(name, seed+int64(len(out)), 1, 50))
			continue
		}
		s, err := NewPeriodic(name, kind, period, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("parsing signal %q: %w", entry, err)
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no signals in %q", list)
	}
	return out, nil
}
