package storage

import (
	"fmt"
	"strings"
	"testing"
)

// testSpec is a simple ValidatingSpec for testing
type testSpec struct {
	valid bool
}

func (s *testSpec) Validate() error {
	if !s.valid {
		return fmt.Errorf("spec is invalid")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset   Asset[*testSpec]
		expErrs []string
	}{
		"valid asset": {
			asset: Asset[*testSpec]{Version: 1, Vnum: 100, Spec: &testSpec{valid: true}},
		},
		"vnum zero is valid": {
			asset: Asset[*testSpec]{Version: 1, Vnum: 0, Spec: &testSpec{valid: true}},
		},
		"version not set": {
			asset:   Asset[*testSpec]{Version: 0, Vnum: 1, Spec: &testSpec{valid: true}},
			expErrs: []string{"version must be set"},
		},
		"version too new": {
			asset:   Asset[*testSpec]{Version: 2, Vnum: 1, Spec: &testSpec{valid: true}},
			expErrs: []string{"newer than supported"},
		},
		"negative vnum": {
			asset:   Asset[*testSpec]{Version: 1, Vnum: -1, Spec: &testSpec{valid: true}},
			expErrs: []string{"vnum must not be negative"},
		},
		"missing spec": {
			asset:   Asset[*testSpec]{Version: 1, Vnum: 1},
			expErrs: []string{"spec must be set"},
		},
		"invalid spec": {
			asset:   Asset[*testSpec]{Version: 1, Vnum: 1, Spec: &testSpec{valid: false}},
			expErrs: []string{"spec is invalid"},
		},
		"multiple errors": {
			asset: Asset[*testSpec]{Version: 0, Vnum: -3, Spec: &testSpec{valid: false}},
			expErrs: []string{
				"version must be set",
				"vnum must not be negative",
				"spec is invalid",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("expected errors %v, got nil", tt.expErrs)
				return
			}

			errStr := err.Error()
			for _, e := range tt.expErrs {
				if !strings.Contains(errStr, e) {
					t.Errorf("error %q does not contain %q", errStr, e)
				}
			}
		})
	}
}

func TestParseVnum(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    Vnum
		expErr string
	}{
		"plain":       {in: "9000", exp: 9000},
		"padded":      {in: " 12 ", exp: 12},
		"negative":    {in: "-1", exp: Nothing, expErr: "negative"},
		"not numeric": {in: "mead", exp: Nothing, expErr: "not a valid vnum"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseVnum(tt.in)
			if tt.expErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.expErr) {
					t.Fatalf("expected error containing %q, got %v", tt.expErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.exp {
				t.Errorf("got %d, expected %d", got, tt.exp)
			}
		})
	}
}
