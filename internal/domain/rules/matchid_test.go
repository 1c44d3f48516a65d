package rules

import "testing"

func TestMatchIDIsOrderIndependent(t *testing.T) {
	cases := []struct {
		name string
		a    string
		b    string
		want string
	}{
		{name: "already_sorted", a: "biz-1", b: "inf-1", want: "biz-1_inf-1"},
		{name: "reversed", a: "inf-1", b: "biz-1", want: "biz-1_inf-1"},
		{name: "numeric_suffixes", a: "u10", b: "u2", want: "u10_u2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchID(tc.a, tc.b)
			if got != tc.want {
				t.Fatalf("unexpected match id: got %q want %q", got, tc.want)
			}
			if got != MatchID(tc.b, tc.a) {
				t.Fatalf("match id depends on argument order for %q/%q", tc.a, tc.b)
			}
		})
	}
}

func TestEffectiveScore(t *testing.T) {
	stored := 88

	cases := []struct {
		name     string
		stored   *int
		priority bool
		want     int
	}{
		{name: "stored_no_boost", stored: &stored, priority: false, want: 88},
		{name: "stored_boosted", stored: &stored, priority: true, want: 108},
		{name: "missing_defaults", stored: nil, priority: false, want: 70},
		{name: "missing_boosted", stored: nil, priority: true, want: 90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveScore(tc.stored, DefaultMatchScore, SuperLikeBoost, tc.priority)
			if got != tc.want {
				t.Fatalf("unexpected effective score: got %d want %d", got, tc.want)
			}
		})
	}
}
