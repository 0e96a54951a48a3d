package numerical

import (
	"testing"
	"time"

	"github.com/meenmo/curvecore/calendar"
)

func TestDepositHelper_Solve(t *testing.T) {
	start := date(2026, 1, 2)
	end := date(2026, 4, 2)
	h := DepositHelper{Start: start, End: end, Rate: 0.05, DayCounter: "ACT/360"}

	ctx := BuildContext{RefDate: start, OwnDF: func(tt time.Time) float64 {
		if tt.Equal(start) {
			return 1.0
		}
		t.Fatalf("deposit helper should only query OwnDF at its start date, got %v", tt)
		return 0
	}}

	df, err := h.Solve(ctx, DefaultSolverConfig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if df >= 1.0 || df <= 0 {
		t.Fatalf("deposit DF should discount below 1.0 for a positive rate, got %v", df)
	}
	if h.Maturity() != end {
		t.Fatalf("Maturity() = %v, want %v", h.Maturity(), end)
	}
}

func TestFRAHelper_Solve(t *testing.T) {
	start := date(2026, 4, 2)
	end := date(2026, 7, 2)
	h := FRAHelper{Start: start, End: end, Rate: 0.04, DayCounter: "ACT/360"}

	ctx := BuildContext{OwnDF: func(tt time.Time) float64 { return 0.99 }}
	df, err := h.Solve(ctx, DefaultSolverConfig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if df >= 0.99 {
		t.Fatalf("FRA DF at maturity should discount further than DF at start, got %v vs 0.99", df)
	}
}

func TestFutureHelper_Solve(t *testing.T) {
	start := date(2026, 6, 18)
	end := date(2026, 9, 18)
	h := FutureHelper{Start: start, End: end, Rate: 0.035, DayCounter: "ACT/360"}

	ctx := BuildContext{OwnDF: func(tt time.Time) float64 { return 1.0 }}
	df, err := h.Solve(ctx, DefaultSolverConfig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if df <= 0 || df >= 1.0 {
		t.Fatalf("future DF should lie strictly between 0 and the start DF, got %v", df)
	}
}

func TestDepositHelper_DegenerateAccrualErrors(t *testing.T) {
	start := date(2026, 1, 2)
	end := start.AddDate(0, 3, 0)
	accrual := 90.0 / 360.0 // ACT/360 over ~3 months
	h := DepositHelper{Start: start, End: end, Rate: -1.0 / accrual, DayCounter: "ACT/360"}

	ctx := BuildContext{OwnDF: func(tt time.Time) float64 { return 1.0 }}
	_, err := h.Solve(ctx, DefaultSolverConfig)
	if err == nil {
		t.Fatalf("expected an error for a degenerate accrual denominator")
	}
}

func TestBuildFixedSchedule_RollsBackwardFromMaturity(t *testing.T) {
	start := date(2026, 1, 2)
	maturity := date(2027, 1, 2)
	coupons := BuildFixedSchedule(start, maturity, 6, calendar.TARGET, 0, "ACT/365F")

	if len(coupons) != 2 {
		t.Fatalf("expected 2 semiannual coupons between %v and %v, got %d", start, maturity, len(coupons))
	}
	last := coupons[len(coupons)-1]
	if last.PaymentDate.Before(maturity.AddDate(0, 0, -3)) || last.PaymentDate.After(maturity.AddDate(0, 0, 3)) {
		t.Fatalf("final coupon payment date %v should land near maturity %v", last.PaymentDate, maturity)
	}
	for _, c := range coupons {
		if c.Accrual <= 0 {
			t.Fatalf("every coupon should have positive accrual, got %v", c.Accrual)
		}
	}
}

func TestBuildFixedSchedule_ShortPeriodProducesSingleCoupon(t *testing.T) {
	start := date(2026, 1, 2)
	maturity := date(2026, 4, 2)
	coupons := BuildFixedSchedule(start, maturity, 6, calendar.TARGET, 0, "ACT/365F")
	if len(coupons) != 1 {
		t.Fatalf("a 3-month period against a 6-month roll should produce exactly one stub coupon, got %d", len(coupons))
	}
}
