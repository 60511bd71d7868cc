package eq

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Kind selects the response shape of a band.
type Kind uint32

const (
	KindLowPass Kind = iota
	KindLowPass2
	KindLowShelf
	KindHighPass
	KindHighPass2
	KindHighShelf
	KindPeak
	KindNotch
)

const (
	// KindCount is the number of filter kinds.
	KindCount = 8
	// MaxKindID is the largest valid kind id, also the automation step count.
	MaxKindID = KindCount - 1
)

type kindInfo struct {
	abbrev   string
	name     string
	usesGain bool
}

var kindTable = [KindCount]kindInfo{
	KindLowPass:   {"LP", "Low Pass", false},
	KindLowPass2:  {"LP2", "Low Pass 2", false},
	KindLowShelf:  {"LS", "Low Shelf", true},
	KindHighPass:  {"HP", "High Pass", false},
	KindHighPass2: {"HP2", "High Pass 2", false},
	KindHighShelf: {"HS", "High Shelf", true},
	KindPeak:      {"PK", "Peak", true},
	KindNotch:     {"NT", "Notch", false},
}

// KindFromID maps an id in 0..7 to its kind.
func KindFromID(id int) (Kind, bool) {
	if id < 0 || id > MaxKindID {
		return KindPeak, false
	}
	return Kind(id), true
}

// ParseKind maps a display name to its kind. Unrecognized names give KindPeak.
func ParseKind(name string) Kind {
	for id, info := range kindTable {
		if info.name == name {
			return Kind(id)
		}
	}
	return KindPeak
}

// ParseKindAbbreviation accepts either a display name or an abbreviation.
func ParseKindAbbreviation(s string) (Kind, bool) {
	for id, info := range kindTable {
		if info.name == s || info.abbrev == s {
			return Kind(id), true
		}
	}
	return KindPeak, false
}

// KindFromPlain rounds an automation value to a kind id. Values that do not
// name a kind resolve to KindPeak and are reported on log.
func KindFromPlain(plain float64, log logrus.FieldLogger) Kind {
	r := math.Round(plain)
	if !math.IsNaN(r) && r >= 0 && r <= MaxKindID {
		return Kind(r)
	}
	if log != nil {
		log.WithFields(logrus.Fields{
			"param": "kind",
			"value": plain,
		}).Warn("invalid filter kind id, using Peak")
	}
	return KindPeak
}

// ID returns the stable numeric id of k.
func (k Kind) ID() int { return int(k) }

// Valid reports whether k is one of the eight kinds.
func (k Kind) Valid() bool { return k <= MaxKindID }

// String returns the display name.
func (k Kind) String() string {
	if !k.Valid() {
		return kindTable[KindPeak].name
	}
	return kindTable[k].name
}

// Abbreviation returns the short label drawn next to a band handle.
func (k Kind) Abbreviation() string {
	if !k.Valid() {
		return kindTable[KindPeak].abbrev
	}
	return kindTable[k].abbrev
}

// UsesGain reports whether the gain parameter affects the response.
func (k Kind) UsesGain() bool {
	return k.Valid() && kindTable[k].usesGain
}

// Next cycles forward through all eight kinds.
func (k Kind) Next() Kind { return Kind((k.ID() + 1) % KindCount) }

// Prev cycles backward through all eight kinds.
func (k Kind) Prev() Kind { return Kind((k.ID() + KindCount - 1) % KindCount) }
