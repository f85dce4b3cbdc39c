package yahoo

import (
	"testing"

	"github.com/quantkit/alphabench/internal/collector"
)

func TestYahoo_ImplementsCollector(t *testing.T) {
	var _ collector.Collector = (*Yahoo)(nil)
}

func TestYahoo_Name(t *testing.T) {
	y := New()
	if y.Name() != "yahoo" {
		t.Errorf("expected 'yahoo', got '%s'", y.Name())
	}
}

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		symbol  string
		wantErr bool
	}{
		{"AAPL", false},
		{"BRK-B", false},
		{"0700.HK", false},
		{"", true},
		{"not a symbol", true},
		{"way-too-long-symbol-name-here", true},
	}

	for _, tc := range tests {
		err := validateSymbol(tc.symbol)
		if (err != nil) != tc.wantErr {
			t.Errorf("validateSymbol(%q) error = %v, wantErr %v", tc.symbol, err, tc.wantErr)
		}
	}
}

func TestToYahooInterval(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1d", "1d"},
		{"1wk", "1wk"},
		{"2h", "1d"}, // unknown falls back to daily
		{"", "1d"},
	}

	for _, tc := range tests {
		got := toYahooInterval(tc.input)
		if got != tc.expected {
			t.Errorf("toYahooInterval(%s) = %s, want %s", tc.input, got, tc.expected)
		}
	}
}
