package request

// PointVariant names one of the ten calibration-point shapes a curve spec
// can declare, grounded on original_source/parser/term_structure_point_parser.h.
type PointVariant string

const (
	PointDeposit        PointVariant = "DEPOSIT"
	PointFRA            PointVariant = "FRA"
	PointFuture         PointVariant = "FUTURE"
	PointSwap           PointVariant = "SWAP"
	PointOIS            PointVariant = "OIS"
	PointDatedOIS       PointVariant = "DATED_OIS"
	PointBond           PointVariant = "BOND"
	PointTenorBasisSwap PointVariant = "TENOR_BASIS_SWAP"
	PointFxSwap         PointVariant = "FX_SWAP"
	PointCrossCcyBasis  PointVariant = "CROSS_CCY_BASIS"
)

// QuoteRef resolves a calibration-point's rate either from an inline value
// or from a named quote in the request's QuoteRegistry, with an optional
// one-time additive bump applied after resolution (sensitivity bumping).
type QuoteRef struct {
	QuoteID string   `msgpack:"quote_id,omitempty"`
	Inline  *float64 `msgpack:"inline,omitempty"`
	BumpBP  float64  `msgpack:"bump_bp,omitempty"`
}

// DepositPoint is a cash-deposit calibration constraint.
type DepositPoint struct {
	Tenor                 string   `msgpack:"tenor"`
	Rate                  QuoteRef `msgpack:"rate"`
	FixingDays            int      `msgpack:"fixing_days,omitempty"`
	Calendar              string   `msgpack:"calendar"`
	BusinessDayAdjustment string   `msgpack:"business_day_convention,omitempty"`
	DayCounter            string   `msgpack:"day_counter"`
}

// FRAPoint is a forward-rate-agreement calibration constraint.
type FRAPoint struct {
	MonthsToStart         int      `msgpack:"months_to_start"`
	MonthsToEnd           int      `msgpack:"months_to_end"`
	Rate                  QuoteRef `msgpack:"rate"`
	FixingDays            int      `msgpack:"fixing_days,omitempty"`
	Calendar              string   `msgpack:"calendar"`
	BusinessDayAdjustment string   `msgpack:"business_day_convention,omitempty"`
	DayCounter            string   `msgpack:"day_counter"`
}

// FuturePoint is an exchange-traded futures calibration constraint.
type FuturePoint struct {
	StartDate             string   `msgpack:"start_date"`
	FutureMonths          int      `msgpack:"future_months"`
	Rate                  QuoteRef `msgpack:"rate"` // 100 - futures price, as a rate
	Calendar              string   `msgpack:"calendar"`
	BusinessDayAdjustment string   `msgpack:"business_day_convention,omitempty"`
	DayCounter            string   `msgpack:"day_counter"`
}

// SwapPoint is a par interest-rate-swap calibration constraint against a
// term (Ibor) floating index.
type SwapPoint struct {
	Tenor            string   `msgpack:"tenor"`
	Rate             QuoteRef `msgpack:"rate"`
	Calendar         string   `msgpack:"calendar"`
	FixedFrequency   string   `msgpack:"fixed_frequency"`
	FixedBDC         string   `msgpack:"fixed_business_day_convention,omitempty"`
	FixedDayCounter  string   `msgpack:"fixed_day_counter"`
	IndexID          string   `msgpack:"index_id"`
	Spread           QuoteRef `msgpack:"spread,omitempty"`
	ForwardStartDays int      `msgpack:"forward_start_days,omitempty"`
	DiscountCurveID  string   `msgpack:"deps_discount_curve_id,omitempty"` // empty => self-discounting
}

// OISPoint is a par overnight-indexed-swap calibration constraint.
type OISPoint struct {
	Tenor           string   `msgpack:"tenor"`
	Rate            QuoteRef `msgpack:"rate"`
	Calendar        string   `msgpack:"calendar"`
	FixedFrequency  string   `msgpack:"fixed_frequency"`
	FixedDayCounter string   `msgpack:"fixed_day_counter"`
	IndexID         string   `msgpack:"index_id"`
	PaymentLagDays  int      `msgpack:"payment_lag_days,omitempty"`
	DiscountCurveID string   `msgpack:"deps_discount_curve_id,omitempty"`
}

// DatedOISPoint is an OIS calibration constraint with explicit start/end
// dates instead of a tenor (used for meeting-dated or stub OIS quotes).
type DatedOISPoint struct {
	StartDate       string   `msgpack:"start_date"`
	EndDate         string   `msgpack:"end_date"`
	Rate            QuoteRef `msgpack:"rate"`
	Calendar        string   `msgpack:"calendar"`
	FixedDayCounter string   `msgpack:"fixed_day_counter"`
	IndexID         string   `msgpack:"index_id"`
	DiscountCurveID string   `msgpack:"deps_discount_curve_id,omitempty"`
}

// BondPoint calibrates against a fixed-rate bond's clean price.
type BondPoint struct {
	SettlementDays        int      `msgpack:"settlement_days"`
	FaceAmount            float64  `msgpack:"face_amount"`
	IssueDate             string   `msgpack:"issue_date"`
	MaturityDate          string   `msgpack:"maturity_date"`
	CouponRate            float64  `msgpack:"coupon_rate"`
	Frequency             string   `msgpack:"frequency"`
	Calendar              string   `msgpack:"calendar"`
	BusinessDayAdjustment string   `msgpack:"business_day_convention,omitempty"`
	DayCounter            string   `msgpack:"day_counter"`
	CleanPrice            QuoteRef `msgpack:"clean_price"`
	Redemption            float64  `msgpack:"redemption,omitempty"` // decoded but not applied; redemption is taken as par
}

// TenorBasisSwapPoint calibrates a projection curve against another
// projection curve via a tenor-basis spread, both discounted off an
// exogenous OIS curve.
type TenorBasisSwapPoint struct {
	Tenor           string   `msgpack:"tenor"`
	Spread          QuoteRef `msgpack:"spread"`
	BaseIndexID     string   `msgpack:"base_index_id"`
	QuoteIndexID    string   `msgpack:"quote_index_id"`
	DiscountCurveID string   `msgpack:"deps_discount_curve_id"`
}

// FxSwapPoint calibrates a collateral-currency discount curve off an
// FX-swap forward-points quote and a base-currency discount curve.
type FxSwapPoint struct {
	Tenor              string   `msgpack:"tenor"`
	SpotFX             float64  `msgpack:"spot_fx"`
	ForwardPoints      QuoteRef `msgpack:"forward_points"`
	Calendar           string   `msgpack:"calendar"`
	FixingDays         int      `msgpack:"fixing_days,omitempty"`
	CollateralCurrency string   `msgpack:"collateral_currency"`
	DiscountCurveID    string   `msgpack:"deps_discount_curve_id"` // base-currency discount curve
}

// CrossCcyBasisPoint calibrates a discount curve off a cross-currency
// basis swap spread between two index curves in different currencies.
type CrossCcyBasisPoint struct {
	Tenor           string   `msgpack:"tenor"`
	Spread          QuoteRef `msgpack:"spread"`
	BaseCurrency    string   `msgpack:"base_currency"`
	QuoteCurrency   string   `msgpack:"quote_currency"`
	BaseIndexID     string   `msgpack:"base_index_id"`
	QuoteIndexID    string   `msgpack:"quote_index_id"`
	DiscountCurveID string   `msgpack:"deps_discount_curve_id"`
}

// PointDTO is a tagged union over the ten calibration-point variants,
// mirroring the FlatBuffers union pattern in term_structure_point_parser.h.
// Exactly one of the payload fields is populated per the Variant tag.
type PointDTO struct {
	Variant PointVariant `msgpack:"variant"`

	Deposit        *DepositPoint        `msgpack:"deposit,omitempty"`
	FRA            *FRAPoint            `msgpack:"fra,omitempty"`
	Future         *FuturePoint         `msgpack:"future,omitempty"`
	Swap           *SwapPoint           `msgpack:"swap,omitempty"`
	OIS            *OISPoint            `msgpack:"ois,omitempty"`
	DatedOIS       *DatedOISPoint       `msgpack:"dated_ois,omitempty"`
	Bond           *BondPoint           `msgpack:"bond,omitempty"`
	TenorBasisSwap *TenorBasisSwapPoint `msgpack:"tenor_basis_swap,omitempty"`
	FxSwap         *FxSwapPoint         `msgpack:"fx_swap,omitempty"`
	CrossCcyBasis  *CrossCcyBasisPoint  `msgpack:"cross_ccy_basis,omitempty"`
}

// CurveSpecDTO decodes one declared curve: its construction tags plus the
// ordered calibration points that determine its pillars.
type CurveSpecDTO struct {
	ID              string     `msgpack:"id"`
	Currency        string     `msgpack:"currency,omitempty"`
	DayCounter      string     `msgpack:"day_counter"`
	Interpolator    string     `msgpack:"interpolator"`
	BootstrapTrait  string     `msgpack:"bootstrap_trait"`
	Points          []PointDTO `msgpack:"points"`
}
