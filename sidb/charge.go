package sidb

// ChargeState is one of the three (or, in base-2 mode, two) charge roles a
// site can take on. Dispatch on the value is a 3-entry table, not a
// compile-time template: the fan-out is fixed and small.
type ChargeState byte

const (
	// Negative means the site holds an extra electron.
	Negative ChargeState = iota
	// Neutral means the site is uncharged.
	Neutral
	// Positive means the site is missing an electron.
	Positive
)

var chargeStateNames = [...]string{"negative", "neutral", "positive"}

func (c ChargeState) String() string {
	if int(c) >= len(chargeStateNames) {
		panic("invalid charge state")
	}
	return chargeStateNames[c]
}

// Int returns the signed charge of c, in units of the elementary charge.
func (c ChargeState) Int() int {
	switch c {
	case Negative:
		return -1
	case Positive:
		return 1
	default:
		return 0
	}
}

// Base selects the charge-state alphabet available to the engine.
type Base byte

const (
	// Base3 is the default alphabet: {Negative, Neutral, Positive}.
	Base3 Base = iota
	// Base2 omits Positive.
	Base2
)

// States returns the charge states available under b, in canonical order.
func (b Base) States() []ChargeState {
	if b == Base2 {
		return []ChargeState{Negative, Neutral}
	}
	return []ChargeState{Negative, Neutral, Positive}
}

// Site is an integer index in [0, N) identifying one dopant location. It is
// fixed once a layout has been ingested.
type Site int
