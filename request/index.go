package request

// IndexKind distinguishes an Ibor (term) index from an overnight index.
type IndexKind string

const (
	IndexIbor      IndexKind = "IBOR"
	IndexOvernight IndexKind = "OVERNIGHT"
)

// Fixing is one historical (date, rate) observation for an index,
// grounded on marketdata/krx.ReferenceRateFeed.RateOn and on
// index_registry_builder.h's addFixing loop.
type Fixing struct {
	Date  string  `msgpack:"date"`  // YYYY-MM-DD
	Value float64 `msgpack:"value"` // decimal rate, e.g. 0.0375
}

// IndexDefinitionDTO decodes one declared index, mirroring
// original_source/parser/index_registry_builder.h's required/optional
// field set.
type IndexDefinitionDTO struct {
	ID                    string    `msgpack:"id"`
	Name                  string    `msgpack:"name"`
	Kind                  IndexKind `msgpack:"kind"`
	Currency              string    `msgpack:"currency,omitempty"` // defaults to EUR if empty
	Tenor                 string    `msgpack:"tenor"`
	FixingDays            int       `msgpack:"fixing_days,omitempty"`
	Calendar              string    `msgpack:"calendar,omitempty"`
	BusinessDayAdjustment string    `msgpack:"business_day_convention,omitempty"`
	DayCounter            string    `msgpack:"day_counter,omitempty"`
	EndOfMonth            bool      `msgpack:"end_of_month,omitempty"`
	Fixings               []Fixing  `msgpack:"fixings,omitempty"`
}

// FixedLegConventionDTO is the fixed leg of a SwapIndexDefinition.
type FixedLegConventionDTO struct {
	Frequency                 string `msgpack:"frequency"`
	DayCounter                string `msgpack:"day_counter"`
	Calendar                  string `msgpack:"calendar"`
	BusinessDayAdjustment     string `msgpack:"business_day_convention"`
	TermBusinessDayAdjustment string `msgpack:"term_business_day_convention,omitempty"`
	DateRule                  string `msgpack:"date_generation_rule,omitempty"`
	EndOfMonth                bool   `msgpack:"end_of_month,omitempty"`
}

// FloatLegConventionDTO is the floating leg of a SwapIndexDefinition.
type FloatLegConventionDTO struct {
	Tenor                     string `msgpack:"tenor"`
	Calendar                  string `msgpack:"calendar"`
	BusinessDayAdjustment     string `msgpack:"business_day_convention"`
	TermBusinessDayAdjustment string `msgpack:"term_business_day_convention,omitempty"`
	DateRule                  string `msgpack:"date_generation_rule,omitempty"`
	EndOfMonth                bool   `msgpack:"end_of_month,omitempty"`
}

// SwapIndexDefinitionDTO decodes one declared swap index, grounded on
// original_source/parser/swap_index_registry.h's SwapIndexRuntime and the
// build-time checks in swap_index_registry.cpp.
type SwapIndexDefinitionDTO struct {
	ID                    string                 `msgpack:"id"`
	Kind                  string                 `msgpack:"kind"` // "IborSwapIndex" or "OvernightIndexedSwapIndex"
	FloatIndexID          string                 `msgpack:"float_index_id"`
	SpotDays              int                    `msgpack:"spot_days"`
	Calendar              string                 `msgpack:"calendar"`
	BusinessDayAdjustment string                 `msgpack:"business_day_convention"`
	EndOfMonth            bool                   `msgpack:"end_of_month,omitempty"`
	FixedLeg              FixedLegConventionDTO  `msgpack:"fixed_leg"`
	FloatLeg              FloatLegConventionDTO  `msgpack:"float_leg"`
}
