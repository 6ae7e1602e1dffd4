package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		expectError error
	}{
		{name: "whole amount", input: "100", want: "100.00"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "rounds half to even down", input: "10.005", want: "10.00"},
		{name: "rounds half to even up", input: "10.015", want: "10.02"},
		{name: "truncates extra precision", input: "1.23456", want: "1.23"},
		{name: "negative rejected", input: "-0.01", expectError: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(decimal.RequireFromString(tt.input))

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, m.String())
			}
			if !m.IsSet() {
				t.Error("expected constructed money to be set")
			}
		})
	}
}

func TestNewMoneyFromString_Invalid(t *testing.T) {
	if _, err := NewMoneyFromString("abc"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestMoney_ZeroValueIsAbsent(t *testing.T) {
	var m Money
	if m.IsSet() {
		t.Error("zero value must not be set")
	}
	if !Zero().IsSet() || !Zero().IsZero() {
		t.Error("Zero() must be a set 0.00")
	}
}

func TestMoney_Add(t *testing.T) {
	a := MustMoney("10.25")
	b := MustMoney("0.75")

	if got := a.Add(b); !got.Equal(MustMoney("11")) {
		t.Errorf("expected 11.00, got %s", got)
	}
	if !a.Add(b).Equal(b.Add(a)) {
		t.Error("addition must be commutative")
	}
	if !a.Add(Zero()).Equal(a) {
		t.Error("zero must be the identity")
	}
}

func TestMoney_Subtract(t *testing.T) {
	got, err := MustMoney("10").Subtract(MustMoney("2.50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "7.50" {
		t.Errorf("expected 7.50, got %s", got)
	}

	got, err = MustMoney("5").Subtract(MustMoney("5"))
	if err != nil || !got.IsZero() {
		t.Errorf("expected 0.00, got %s (err %v)", got, err)
	}

	if _, err := MustMoney("5").Subtract(MustMoney("10")); !errors.Is(err, ErrNegativeResult) {
		t.Errorf("expected ErrNegativeResult, got %v", err)
	}
}

func TestMoney_Multiply(t *testing.T) {
	got, err := MustMoney("100").Multiply(decimal.RequireFromString("0.333"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "33.30" {
		t.Errorf("expected 33.30, got %s", got)
	}

	if _, err := MustMoney("1").Multiply(decimal.NewFromInt(-1)); !errors.Is(err, ErrNegativeResult) {
		t.Errorf("expected ErrNegativeResult, got %v", err)
	}
}

func TestMoney_Percentage(t *testing.T) {
	tests := []struct {
		amount string
		pct    string
		want   string
	}{
		{amount: "1000", pct: "2.5", want: "25.00"},
		{amount: "1000", pct: "8.2", want: "82.00"},
		{amount: "33.33", pct: "8.2", want: "2.73"},
		{amount: "0.50", pct: "1.7", want: "0.01"},
		{amount: "0", pct: "6.9", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+"@"+tt.pct, func(t *testing.T) {
			got, err := MustMoney(tt.amount).Percentage(decimal.RequireFromString(tt.pct))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMoney_EqualIgnoresRepresentation(t *testing.T) {
	if !MustMoney("1.5").Equal(MustMoney("1.50")) {
		t.Error("expected 1.5 to equal 1.50")
	}
	if MustMoney("1.5").Equal(MustMoney("1.51")) {
		t.Error("expected 1.5 to differ from 1.51")
	}
	if !MustMoney("1.5").LessThan(MustMoney("1.51")) {
		t.Error("expected 1.5 < 1.51")
	}
}
