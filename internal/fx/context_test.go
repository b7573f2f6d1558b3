package fx

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestContextDefaults(t *testing.T) {
	c := NewContext()

	code, rate := c.Snapshot()
	if code != "CAD" || rate != 1 {
		t.Errorf("expected CAD/1, got %s/%v", code, rate)
	}
}

func TestContextSetAndSnapshot(t *testing.T) {
	c := NewContext()
	c.Set("USD", 0.74)

	code, rate := c.Snapshot()
	if code != "USD" || rate != 0.74 {
		t.Errorf("expected USD/0.74, got %s/%v", code, rate)
	}
}

func TestContextSetIgnoresEmptyCode(t *testing.T) {
	c := NewContext()
	c.Set("", 0.5)

	if c.Code() != "CAD" {
		t.Errorf("expected empty code ignored, got %s", c.Code())
	}
}

func TestContextSetClampsBadRates(t *testing.T) {
	for _, bad := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		c := NewContext()
		c.Set("USD", bad)
		if c.Rate() != 1 {
			t.Errorf("expected rate %v clamped to 1, got %v", bad, c.Rate())
		}
	}
}

func TestContextListeners(t *testing.T) {
	c := NewContext()

	var gotCode string
	var gotRate float64
	calls := 0
	unsubscribe := c.Subscribe(func(code string, rate float64) {
		gotCode = code
		gotRate = rate
		calls++
	})

	c.Set("EUR", 0.65)
	if calls != 1 || gotCode != "EUR" || gotRate != 0.65 {
		t.Fatalf("expected one notification with EUR/0.65, got %d %s/%v", calls, gotCode, gotRate)
	}

	unsubscribe()
	c.Set("GBP", 0.55)
	if calls != 1 {
		t.Errorf("expected no notification after unsubscribe, got %d calls", calls)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c := NewContext()
	c.Set("USD", 0.8)

	base := decimal.NewFromInt(1000)
	preferred := c.ConvertBaseToPreferred(base)
	if !preferred.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected 800, got %s", preferred)
	}
	back := c.ConvertPreferredToBase(preferred)
	if !back.Equal(base) {
		t.Errorf("expected round trip back to %s, got %s", base, back)
	}
}

func TestFormat(t *testing.T) {
	c := NewContext()
	if got := c.Format(decimal.NewFromFloat(1234.5)); got != "$1,234.50" {
		t.Errorf("expected $1,234.50, got %q", got)
	}

	// JPY has no minor units.
	c.Set("JPY", 110)
	if got := c.Format(decimal.NewFromInt(10)); got != "¥1,100" {
		t.Errorf("expected ¥1,100, got %q", got)
	}
}

func TestFormatFloatNonFinite(t *testing.T) {
	c := NewContext()
	if got := c.FormatFloat(math.NaN()); got != "--" {
		t.Errorf("expected placeholder for NaN, got %q", got)
	}
	if got := c.FormatFloat(math.Inf(-1)); got != "--" {
		t.Errorf("expected placeholder for -Inf, got %q", got)
	}
}
