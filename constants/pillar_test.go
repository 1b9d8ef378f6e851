package constants

import "testing"

func TestPillarsCanonicalOrder(t *testing.T) {
	got := Pillars()
	if len(got) != NumPillars {
		t.Fatalf("Pillars() returned %d pillars, want %d", len(got), NumPillars)
	}
	if got[0] != PricingModel {
		t.Errorf("first pillar = %q, want %q", got[0], PricingModel)
	}
	if got[len(got)-1] != DataHandling {
		t.Errorf("last pillar = %q, want %q", got[len(got)-1], DataHandling)
	}
	// returned slice must be a copy
	got[0] = Pillar("mutated")
	if Pillars()[0] != PricingModel {
		t.Error("Pillars() leaks the internal slice")
	}
}

func TestPillarIndex(t *testing.T) {
	for i, p := range Pillars() {
		if idx := PillarIndex(string(p)); idx != i {
			t.Errorf("PillarIndex(%q) = %d, want %d", p, idx, i)
		}
	}
	if idx := PillarIndex("No Such Pillar"); idx != -1 {
		t.Errorf("PillarIndex(unknown) = %d, want -1", idx)
	}
}

func TestCanonicalizePillar(t *testing.T) {
	tests := []struct {
		in   string
		want Pillar
		ok   bool
	}{
		{"Pricing Model", PricingModel, true},
		{"pricing model", PricingModel, true},
		{"  PRICING  ", "", false},
		{"pricing", PricingModel, true},
		{"cost model", PricingModel, true},
		{"timeline", Schedule, true},
		{"signatures", SignOffBlocks, true},
		{"change control", ChangeManagement, true},
		{"risk & terms", RiskTermsMitigation, true},
		{"data verification", DataHandling, true},
		{"msa reference", MasterContractReference, true},
		{"", "", false},
		{"unrelated", "", false},
	}
	for _, tc := range tests {
		got, ok := CanonicalizePillar(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("CanonicalizePillar(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCanonicalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want FindingStatus
		ok   bool
	}{
		{"Met", StatusMet, true},
		{"met", StatusMet, true},
		{"PASS", StatusMet, true},
		{"partially met", StatusPartial, true},
		{"Partial", StatusPartial, true},
		{"not met", StatusNotMet, true},
		{"NOT_MET", StatusNotMet, true},
		{"non-compliant", StatusNotMet, true},
		{"maybe", "", false},
	}
	for _, tc := range tests {
		got, ok := CanonicalizeStatus(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("CanonicalizeStatus(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCanonicalizeRisk(t *testing.T) {
	tests := []struct {
		in   string
		want RiskLevel
		ok   bool
	}{
		{"Critical", RiskCritical, true},
		{"HIGH", RiskHigh, true},
		{"moderate", RiskMedium, true},
		{"low", RiskLow, true},
		{"none", "", false},
	}
	for _, tc := range tests {
		got, ok := CanonicalizeRisk(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("CanonicalizeRisk(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRiskRankOrdering(t *testing.T) {
	if !(RiskRank(RiskCritical) < RiskRank(RiskHigh) &&
		RiskRank(RiskHigh) < RiskRank(RiskMedium) &&
		RiskRank(RiskMedium) < RiskRank(RiskLow)) {
		t.Error("risk ranks are not ordered critical < high < medium < low")
	}
}
