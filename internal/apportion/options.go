package apportion

// Default search parameters.
const (
	// DefaultShrinkStep multiplies the divisor while the seat sum is below target.
	DefaultShrinkStep = 0.999
	// DefaultGrowStep multiplies the divisor while the seat sum is above target.
	DefaultGrowStep = 1.001
	// DefaultFloorStep multiplies the divisor in SatisfyFloors.
	DefaultFloorStep = 0.9999
	// DefaultMaxIterations bounds every search. A national enlargement of 25%
	// at FloorStep takes about 2,200 steps, so the cap leaves ample headroom.
	DefaultMaxIterations = 100000
)

// Method identifies which search produced a Trace.
type Method string

const (
	MethodSainteLague     Method = "sainte-lague"
	MethodFloored         Method = "sainte-lague-floored"
	MethodFloorSatisfying Method = "floor-satisfying"
)

// Trace describes one completed search. It is delivered to Options.Observer.
type Trace struct {
	Method     Method
	Label      string
	Target     int
	Divisor    float64
	Iterations int
}

// Observer receives a Trace after every successful search. It may be called
// from several goroutines when callers fan out.
type Observer func(Trace)

// Options configures a divisor search. The zero value is usable: unset
// fields fall back to the package defaults.
type Options struct {
	// Rounding is the rounding policy; HalfEven when nil.
	Rounding Rounding
	// ShrinkStep and GrowStep are the multiplicative divisor steps.
	ShrinkStep float64
	GrowStep   float64
	// FloorStep is the divisor step used by SatisfyFloors.
	FloorStep float64
	// MaxIterations caps divisor adjustments per call.
	MaxIterations int
	// Label names the call in errors and traces (e.g. "region-list/BY").
	Label string
	// Observer, when set, is notified after each successful search.
	Observer Observer
}

// DefaultOptions returns Options with every field set to its default.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

// WithLabel returns a copy of o carrying the given label.
func (o Options) WithLabel(label string) Options {
	o.Label = label
	return o
}

func (o Options) withDefaults() Options {
	if o.Rounding == nil {
		o.Rounding = HalfEven
	}
	if o.ShrinkStep <= 0 || o.ShrinkStep >= 1 {
		o.ShrinkStep = DefaultShrinkStep
	}
	if o.GrowStep <= 1 {
		o.GrowStep = DefaultGrowStep
	}
	if o.FloorStep <= 0 || o.FloorStep >= 1 {
		o.FloorStep = DefaultFloorStep
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

func (o Options) operation(m Method) string {
	if o.Label == "" {
		return string(m)
	}
	return string(m) + " " + o.Label
}

func (o Options) notify(m Method, target int, divisor float64, iterations int) {
	if o.Observer == nil {
		return
	}
	o.Observer(Trace{Method: m, Label: o.Label, Target: target, Divisor: divisor, Iterations: iterations})
}
