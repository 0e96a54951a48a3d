package request

// Operation names one of the RPC surface's entry points. Only
// BootstrapCurves is implemented end-to-end by this repository; the other
// eight name instrument-pricing RPCs that are out of scope here — they
// are listed so PricingSection's shape is recognizable as serving all
// nine, not invented for this repository alone.
type Operation string

const (
	OpBootstrapCurves    Operation = "BootstrapCurves"
	OpPriceSwap          Operation = "PriceSwap"
	OpPriceSwaption      Operation = "PriceSwaption"
	OpPriceBond          Operation = "PriceBond"
	OpPriceCapFloor      Operation = "PriceCapFloor"
	OpPriceFxSwap        Operation = "PriceFxSwap"
	OpPriceCrossCcySwap  Operation = "PriceCrossCcySwap"
	OpComputeParSpread   Operation = "ComputeParSpread"
	OpComputeAssetSwap   Operation = "ComputeAssetSwap"
)

// PricingSection is the decoded request payload the core consumes: curve
// declarations plus every other registry a request can populate. A real
// RPC/JSON bridge (out of scope here) is responsible for producing this
// from the wire buffer.
type PricingSection struct {
	AsOfDate       string                   `msgpack:"as_of_date"`
	SettlementDate string                   `msgpack:"settlement_date,omitempty"`
	Curves         []CurveSpecDTO           `msgpack:"curves"`
	Quotes         []QuoteDTO               `msgpack:"quotes,omitempty"`
	Indices        []IndexDefinitionDTO     `msgpack:"indices,omitempty"`
	SwapIndices    []SwapIndexDefinitionDTO `msgpack:"swap_indices,omitempty"`
	VolSurfaces    []VolSurfaceDTO          `msgpack:"vol_surfaces,omitempty"`
	Models         []ModelDTO               `msgpack:"models,omitempty"`
	CreditCurves   []CreditCurveDTO         `msgpack:"credit_curves,omitempty"`
}

// GridKind distinguishes a tenor grid (named points, e.g. "1Y", "5Y") from
// a range grid (start/end/step in days) for the BootstrapCurves query.
type GridKind string

const (
	GridTenor GridKind = "TENOR"
	GridRange GridKind = "RANGE"
)

// Measure names what BootstrapCurvesQuery samples at each grid point.
type Measure string

const (
	MeasureDF   Measure = "DF"
	MeasureZero Measure = "ZERO"
	MeasureFwd  Measure = "FWD"
)

// BootstrapCurvesQuery selects which curves to sample and how, for the
// BootstrapCurves endpoint.
type BootstrapCurvesQuery struct {
	CurveIDs         []string `msgpack:"curve_ids"`
	Grid             GridKind `msgpack:"grid"`
	Tenors           []string `msgpack:"tenors,omitempty"`     // GridTenor
	StartDays        int      `msgpack:"start_days,omitempty"` // GridRange
	EndDays          int      `msgpack:"end_days,omitempty"`   // GridRange
	StepDays         int      `msgpack:"step_days,omitempty"`  // GridRange
	BusinessDaysOnly bool     `msgpack:"business_days_only,omitempty"` // GridRange: skip weekends/holidays under Calendar
	Calendar         string   `msgpack:"calendar,omitempty"`           // GridRange business-day calendar
	Measure          Measure  `msgpack:"measure"`
	Compounding      string   `msgpack:"compounding,omitempty"` // for MeasureZero/MeasureFwd
	Frequency        string   `msgpack:"frequency,omitempty"`
	DayCounter       string   `msgpack:"day_counter,omitempty"`
	ForwardTenorDays int      `msgpack:"forward_tenor_days,omitempty"` // for MeasureFwd
}
