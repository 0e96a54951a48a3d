package request

// VolFamily distinguishes the two volatility quoting conventions the
// model-compatibility rules check a pricing model against.
type VolFamily string

const (
	VolShiftedLognormal VolFamily = "SHIFTED_LOGNORMAL"
	VolNormal           VolFamily = "NORMAL"
)

// VolSurfacePayload names which of the three surface shapes a VolSurfaceDTO
// carries, grounded on pricing_registry.cpp's VolPayload_* switch.
type VolSurfacePayload string

const (
	VolPayloadOptionlet VolSurfacePayload = "OPTIONLET"
	VolPayloadSwaption  VolSurfacePayload = "SWAPTION"
	VolPayloadBlack     VolSurfacePayload = "BLACK"
)

// VolSurfaceDTO decodes one declared volatility surface. Tenors/Strikes/Vols
// describe a simple tenor-by-strike grid; a 1x1 grid degenerates to a flat
// vol.
type VolSurfaceDTO struct {
	ID            string            `msgpack:"id"`
	Payload       VolSurfacePayload `msgpack:"payload"`
	Family        VolFamily         `msgpack:"family"`
	Displacement  float64           `msgpack:"displacement,omitempty"`
	Tenors        []string          `msgpack:"tenors"`
	Strikes       []float64         `msgpack:"strikes"`
	Vols          [][]float64       `msgpack:"vols"` // Vols[i][j] at Tenors[i], Strikes[j]
	UnderlyingID  string            `msgpack:"underlying_id,omitempty"` // swap index id, for SWAPTION
}

// ModelKind names a pricing model family; the CheckCompatibility rules in
// package model key off these.
type ModelKind string

const (
	ModelBachelier    ModelKind = "BACHELIER"
	ModelBlack        ModelKind = "BLACK"
	ModelShiftedBlack ModelKind = "SHIFTED_BLACK"
)

// ModelDTO decodes one declared pricing-model descriptor. Params is left
// opaque (engine construction is out of scope here) except for the fields
// the compatibility rules need.
type ModelDTO struct {
	ID      string    `msgpack:"id"`
	Kind    ModelKind `msgpack:"kind"`
	VolID   string    `msgpack:"vol_id"`
	Params  map[string]float64 `msgpack:"params,omitempty"`
}

// CreditCurveDTO decodes a minimal credit-curve declaration (survival
// probabilities at pillar dates), kept for PricingRegistry completeness;
// no credit-instrument engine consumes it here.
type CreditCurveDTO struct {
	ID                   string    `msgpack:"id"`
	Dates                []string  `msgpack:"dates"`
	SurvivalProbabilities []float64 `msgpack:"survival_probabilities"`
}
