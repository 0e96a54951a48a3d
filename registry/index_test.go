package registry

import "testing"

func validDef(id string) IndexDefinitionInput {
	return IndexDefinitionInput{
		ID:         id,
		Name:       "6M Euribor",
		Kind:       IndexIbor,
		Tenor:      "6M",
		FixingDays: 2,
		DayCounter: "ACT/360",
	}
}

func TestBuildIndexRegistry_ValidFixingDateIsStored(t *testing.T) {
	def := validDef("EURIBOR6M")
	def.Fixings = []FixingInput{{Date: "2026-01-02", Value: 0.0375}}

	reg, err := BuildIndexRegistry([]IndexDefinitionInput{def})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx, err := reg.Get("EURIBOR6M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := idx.FixingOn("2026-01-02"); !ok || v != 0.0375 {
		t.Fatalf("expected fixing 0.0375 on 2026-01-02, got %v (ok=%v)", v, ok)
	}
}

func TestBuildIndexRegistry_UnparsableFixingDateIsFatal(t *testing.T) {
	def := validDef("EURIBOR6M")
	def.Fixings = []FixingInput{{Date: "not-a-date", Value: 0.0375}}

	if _, err := BuildIndexRegistry([]IndexDefinitionInput{def}); err == nil {
		t.Fatalf("expected an error for a fixing date that does not parse")
	}
}

func TestBuildIndexRegistry_EmptyFixingDateSkipped(t *testing.T) {
	def := validDef("EURIBOR6M")
	def.Fixings = []FixingInput{{Date: "", Value: 0.0375}}

	reg, err := BuildIndexRegistry([]IndexDefinitionInput{def})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx, err := reg.Get("EURIBOR6M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(idx.Fixings) != 0 {
		t.Fatalf("expected no fixings to be stored for an empty date, got %d", len(idx.Fixings))
	}
}

func TestIborWithCurve_BindsForwardingCurveWithoutMutatingOriginal(t *testing.T) {
	reg, err := BuildIndexRegistry([]IndexDefinitionInput{validDef("EURIBOR6M")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bound, err := reg.IborWithCurve("EURIBOR6M", "EUR_6M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bound.ForwardingCurveID != "EUR_6M" {
		t.Fatalf("expected the clone to carry the forwarding curve id, got %q", bound.ForwardingCurveID)
	}

	unbound, err := reg.Get("EURIBOR6M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unbound.ForwardingCurveID != "" {
		t.Fatalf("expected the registry's own entry to stay unbound until Put, got %q", unbound.ForwardingCurveID)
	}
}

func TestIborWithCurve_OvernightIndexErrors(t *testing.T) {
	reg := NewIndexRegistry()
	reg.Put(&Index{ID: "EONIA", Kind: IndexOvernight, Tenor: "1D", DayCounter: "ACT/360"})
	if _, err := reg.IborWithCurve("EONIA", "EUR_OIS"); err == nil {
		t.Fatalf("expected an error requesting an overnight index through IborWithCurve")
	}
}

func TestPut_RebindsForwardingCurveForLaterLookups(t *testing.T) {
	reg, err := BuildIndexRegistry([]IndexDefinitionInput{validDef("EURIBOR6M")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bound, err := reg.IborWithCurve("EURIBOR6M", "EUR_6M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reg.Put(bound)

	idx, err := reg.Get("EURIBOR6M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.ForwardingCurveID != "EUR_6M" {
		t.Fatalf("expected a later Get to observe the bound forwarding curve id, got %q", idx.ForwardingCurveID)
	}
}
