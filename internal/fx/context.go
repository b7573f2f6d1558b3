package fx

import (
	"math"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
)

// Listener is invoked synchronously after the currency context changes.
type Listener func(code string, rate float64)

// Context holds the preferred display currency and the cached base-to-preferred
// exchange rate. It is the single source of truth for display conversion
// during a session: every mutation replaces the {code, rate} pair atomically
// and then notifies subscribers, so no reader ever observes a half-updated
// pair.
type Context struct {
	mu        sync.RWMutex
	code      string
	rate      float64
	listeners map[int]Listener
	nextID    int
}

// NewContext returns a context at the base currency with an identity rate.
func NewContext() *Context {
	return &Context{
		code:      domain.BaseCurrency,
		rate:      1,
		listeners: make(map[int]Listener),
	}
}

// Set replaces the preferred currency and rate. A non-finite or non-positive
// rate is clamped to 1 so a bad upstream value never corrupts conversions.
func (c *Context) Set(code string, rate float64) {
	if code == "" {
		return
	}
	rate = ClampRate(rate)

	c.mu.Lock()
	c.code = code
	c.rate = rate
	notify := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		notify = append(notify, l)
	}
	c.mu.Unlock()

	for _, l := range notify {
		l(code, rate)
	}
}

// Snapshot returns the current {code, rate} pair.
func (c *Context) Snapshot() (string, float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.code, c.rate
}

// Code returns the preferred currency code.
func (c *Context) Code() string {
	code, _ := c.Snapshot()
	return code
}

// Rate returns the cached base-to-preferred rate.
func (c *Context) Rate() float64 {
	_, rate := c.Snapshot()
	return rate
}

// Subscribe registers a listener and returns its unsubscribe function.
func (c *Context) Subscribe(l Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// ConvertBaseToPreferred converts a base-currency amount for display.
func (c *Context) ConvertBaseToPreferred(amountBase decimal.Decimal) decimal.Decimal {
	_, rate := c.Snapshot()
	return amountBase.Mul(decimal.NewFromFloat(rate))
}

// ConvertPreferredToBase converts user input back into the base currency.
func (c *Context) ConvertPreferredToBase(amountPreferred decimal.Decimal) decimal.Decimal {
	_, rate := c.Snapshot()
	return amountPreferred.Div(decimal.NewFromFloat(rate))
}

// Format converts a base-currency amount and renders it in the preferred
// currency with that currency's symbol and fraction rules.
func (c *Context) Format(amountBase decimal.Decimal) string {
	code, rate := c.Snapshot()
	converted := amountBase.Mul(decimal.NewFromFloat(rate))
	return formatIn(converted, code)
}

// FormatFloat is Format for float inputs. NaN and infinities render as the
// "--" placeholder instead of propagating.
func (c *Context) FormatFloat(amountBase float64) string {
	if math.IsNaN(amountBase) || math.IsInf(amountBase, 0) {
		return "--"
	}
	return c.Format(decimal.NewFromFloat(amountBase))
}

// ClampRate returns 1 for any rate that is non-finite or not positive.
func ClampRate(rate float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 1
	}
	return rate
}

func formatIn(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return code + " " + amount.StringFixed(2)
	}
	scale := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(scale).Round(0).IntPart()
	return money.New(minor, code).Display()
}
