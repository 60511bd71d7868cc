package eq

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Field identifies one of the four automatable parameters of a band.
type Field int

const (
	FieldFrequency Field = iota
	FieldGain
	FieldQ
	FieldKind

	fieldCount = 4
)

// ParamCount is the number of automatable parameters exposed by a Processor.
const ParamCount = BandCount * fieldCount

// Parameter flags.
const (
	CanAutomate uint32 = 1 << 0
	IsList      uint32 = 1 << 3
)

// ParamInfo describes one automatable parameter. Id = band*4 + field.
type ParamInfo struct {
	ID        int
	Band      int
	Field     Field
	Name      string
	Unit      string
	Min       float64
	Max       float64
	Default   float64
	StepCount int
	Flags     uint32
}

var paramInfos = buildParamInfos()

func buildParamInfos() []ParamInfo {
	infos := make([]ParamInfo, 0, ParamCount)
	for band := range BandCount {
		def := DefaultBandParams(band, BandCount)
		infos = append(infos,
			ParamInfo{
				Name: fmt.Sprintf("Frequency (%d)", band), Unit: "Hz",
				Min: FreqMin, Max: FreqMax, Default: def.Freq, Flags: CanAutomate,
			},
			ParamInfo{
				Name: fmt.Sprintf("Gain (%d)", band), Unit: "dB",
				Min: GainMin, Max: GainMax, Default: def.GainDB, Flags: CanAutomate,
			},
			ParamInfo{
				Name: fmt.Sprintf("Q (%d)", band),
				Min:  QMin, Max: QMax, Default: def.Q, Flags: CanAutomate,
			},
			ParamInfo{
				Name: fmt.Sprintf("Kind (%d)", band),
				Min:  0, Max: MaxKindID, Default: float64(def.Kind.ID()),
				StepCount: MaxKindID, Flags: CanAutomate | IsList,
			},
		)
	}
	for id := range infos {
		infos[id].ID = id
		infos[id].Band = id / fieldCount
		infos[id].Field = Field(id % fieldCount)
	}
	return infos
}

// ParamID returns the parameter id of field on band.
func ParamID(band int, f Field) int {
	return band*fieldCount + int(f)
}

// ParamInfos returns the metadata of all parameters ordered by id.
func ParamInfos() []ParamInfo {
	return append([]ParamInfo(nil), paramInfos...)
}

// LookupParam returns the metadata of id.
func LookupParam(id int) (ParamInfo, error) {
	if id < 0 || id >= ParamCount {
		return ParamInfo{}, fmt.Errorf("%w: %d", ErrUnknownParam, id)
	}
	return paramInfos[id], nil
}

// Normalize maps plain into [0, 1].
func (p ParamInfo) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	n := (plain - p.Min) / (p.Max - p.Min)
	return math.Max(0, math.Min(1, n))
}

// Denormalize maps a normalized value in [0, 1] back to the plain range.
func (p ParamInfo) Denormalize(norm float64) float64 {
	norm = math.Max(0, math.Min(1, norm))
	return p.Min + norm*(p.Max-p.Min)
}

// Format renders a plain value for display. An invalid kind id renders as
// Peak and is reported on the standard logger.
func (p ParamInfo) Format(plain float64) string {
	switch p.Field {
	case FieldKind:
		return KindFromPlain(plain, logrus.StandardLogger()).String()
	case FieldFrequency:
		if plain >= 1000 {
			return fmt.Sprintf("%.2f kHz", plain/1000)
		}
		return fmt.Sprintf("%.1f Hz", plain)
	case FieldGain:
		return fmt.Sprintf("%.1f dB", plain)
	default:
		return fmt.Sprintf("%.2f", plain)
	}
}

// Parse reads a value produced by Format or typed by a user. Kind names never
// fail: unknown names give the id of Peak.
func (p ParamInfo) Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)

	if p.Field == FieldKind {
		return float64(ParseKind(s).ID()), nil
	}

	scale := 1.0
	switch {
	case p.Field == FieldFrequency && strings.HasSuffix(s, "kHz"):
		s, scale = strings.TrimSuffix(s, "kHz"), 1000
	case strings.HasSuffix(s, p.Unit) && p.Unit != "":
		s = strings.TrimSuffix(s, p.Unit)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("eq: parse %s: %w", p.Name, err)
	}
	return v * scale, nil
}

// bandParam reads the plain value of field from b.
func bandParam(b *Band, f Field) float64 {
	switch f {
	case FieldFrequency:
		return b.Freq()
	case FieldGain:
		return b.Gain()
	case FieldQ:
		return b.Q()
	default:
		return float64(b.Kind().ID())
	}
}

// setBandParam writes a plain value of field to b.
func (p *Processor) setBandParam(b *Band, f Field, plain float64) {
	switch f {
	case FieldFrequency:
		b.SetFreq(plain)
	case FieldGain:
		b.SetGain(plain)
	case FieldQ:
		b.SetQ(plain)
	default:
		b.SetKind(KindFromPlain(plain, p.log))
	}
}
