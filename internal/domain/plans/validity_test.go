package plans

import (
	"errors"
	"testing"
	"time"
)

func TestParseValidity(t *testing.T) {
	tests := []struct {
		input   string
		want    Validity
		wantErr bool
	}{
		{"daily", ValidityDaily, false},
		{"weekly", ValidityWeekly, false},
		{"monthly", ValidityMonthly, false},
		{"Monthly", ValidityMonthly, false},
		{"  weekly ", ValidityWeekly, false},
		{"yearly", "", true},
		{"", "", true},
		{"premium", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseValidity(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownValidity) {
					t.Errorf("got err %v, want ErrUnknownValidity", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidityDuration(t *testing.T) {
	tests := []struct {
		validity Validity
		want     time.Duration
	}{
		{ValidityDaily, 24 * time.Hour},
		{ValidityWeekly, 7 * 24 * time.Hour},
		{ValidityMonthly, 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.validity), func(t *testing.T) {
			if got := tt.validity.Duration(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidityAmount(t *testing.T) {
	tests := []struct {
		validity Validity
		want     float64
	}{
		{ValidityDaily, 199.00},
		{ValidityWeekly, 499.00},
		{ValidityMonthly, 999.00},
	}

	for _, tt := range tests {
		t.Run(string(tt.validity), func(t *testing.T) {
			if got := tt.validity.Amount(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
