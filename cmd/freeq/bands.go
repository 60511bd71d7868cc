package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/freeq/dsp/eq"
)

// bandSpec is one -band flag: index:kind:freq:gain:q.
type bandSpec struct {
	index  int
	params eq.BandParams
}

// bandFlags collects repeated -band values.
type bandFlags []bandSpec

func (b *bandFlags) String() string {
	parts := make([]string, len(*b))
	for i, s := range *b {
		parts[i] = fmt.Sprintf("%d:%s:%g:%g:%g", s.index, s.params.Kind.Abbreviation(),
			s.params.Freq, s.params.GainDB, s.params.Q)
	}
	return strings.Join(parts, ",")
}

func (b *bandFlags) Set(value string) error {
	spec, err := parseBandSpec(value)
	if err != nil {
		return err
	}
	*b = append(*b, spec)
	return nil
}

func parseBandSpec(value string) (bandSpec, error) {
	fields := strings.Split(value, ":")
	if len(fields) != 5 {
		return bandSpec{}, fmt.Errorf("band %q: want index:kind:freq:gain:q", value)
	}

	index, err := parseBandIndex(fields[0])
	if err != nil {
		return bandSpec{}, err
	}

	kind, ok := eq.ParseKindAbbreviation(strings.TrimSpace(fields[1]))
	if !ok {
		return bandSpec{}, fmt.Errorf("band %q: unknown kind %q", value, fields[1])
	}

	var nums [3]float64
	for i, f := range fields[2:] {
		nums[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return bandSpec{}, fmt.Errorf("band %q: %w", value, err)
		}
	}

	return bandSpec{
		index: index,
		params: eq.BandParams{
			Kind:    kind,
			Freq:    nums[0],
			GainDB:  nums[1],
			Q:       nums[2],
			Enabled: true,
		},
	}, nil
}

// indexFlags collects repeated -disable values.
type indexFlags []int

func (d *indexFlags) String() string {
	parts := make([]string, len(*d))
	for i, v := range *d {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (d *indexFlags) Set(value string) error {
	i, err := parseBandIndex(value)
	if err != nil {
		return err
	}
	*d = append(*d, i)
	return nil
}

func parseBandIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 0 || i >= eq.BandCount {
		return 0, fmt.Errorf("%w: %q", eq.ErrInvalidBand, s)
	}
	return i, nil
}

// applyBands writes the parsed flags to p. Later flags for the same band win.
func applyBands(p *eq.Processor, specs bandFlags, disabled indexFlags) {
	for _, s := range specs {
		p.Band(s.index).Set(s.params)
	}
	for _, i := range disabled {
		p.Band(i).SetEnabled(false)
	}
}
