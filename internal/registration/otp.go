package registration

import (
	"fmt"
	"strings"
)

// OTP challenge parameters.
const (
	OTPLength   = 6
	OTPLifetime = 300 // seconds
)

// Challenge is a pending one-time code: the email it was sent to, the code
// typed so far and the seconds left before it expires.
type Challenge struct {
	email     string
	slots     [OTPLength]byte
	remaining int
}

// NewChallenge starts a full-length countdown for email.
func NewChallenge(email string) *Challenge {
	return &Challenge{email: email, remaining: OTPLifetime}
}

// Email returns the address the code was sent to.
func (c *Challenge) Email() string { return c.email }

// Remaining returns the seconds left.
func (c *Challenge) Remaining() int { return c.remaining }

// Expired reports whether the countdown reached zero.
func (c *Challenge) Expired() bool { return c.remaining <= 0 }

// Tick counts down one second. It returns true on the tick that expires the
// challenge.
func (c *Challenge) Tick() bool {
	if c.remaining <= 0 {
		return false
	}
	c.remaining--
	return c.remaining == 0
}

// Restart resets the countdown and empties every slot.
func (c *Challenge) Restart() {
	c.remaining = OTPLifetime
	c.slots = [OTPLength]byte{}
}

// Type fills the next empty slot with d. Non-digits and input past the last
// slot are ignored.
func (c *Challenge) Type(d rune) bool {
	if d < '0' || d > '9' {
		return false
	}
	for i := range c.slots {
		if c.slots[i] == 0 {
			c.slots[i] = byte(d)
			return true
		}
	}
	return false
}

// Backspace empties the last filled slot.
func (c *Challenge) Backspace() {
	for i := len(c.slots) - 1; i >= 0; i-- {
		if c.slots[i] != 0 {
			c.slots[i] = 0
			return
		}
	}
}

// Slots returns the six slots, "" for empty ones.
func (c *Challenge) Slots() [OTPLength]string {
	var out [OTPLength]string
	for i, b := range c.slots {
		if b != 0 {
			out[i] = string(rune(b))
		}
	}
	return out
}

// Code returns the digits typed so far.
func (c *Challenge) Code() string {
	var b strings.Builder
	for _, s := range c.slots {
		if s != 0 {
			b.WriteByte(s)
		}
	}
	return b.String()
}

// FormatRemaining renders seconds as m:ss.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
