// Package membership derives spend-based tier status for the customer
// dashboard.
package membership

// Tier is one rung of the spend ladder.
type Tier struct {
	Name   string
	Target int // cumulative spend required to reach this tier
}

// DefaultLadder mirrors the storefront tiers (amounts in Rupiah).
var DefaultLadder = []Tier{
	{Name: "Basic", Target: 0},
	{Name: "Premium", Target: 10_000_000},
	{Name: "VIP", Target: 50_000_000},
}

// OverflowPolicy decides what happens once spend passes the next tier
// target: keep the current tier and show 100%, or advance along the
// ladder until the spend no longer clears a target.
type OverflowPolicy int

const (
	FreezeAtTarget OverflowPolicy = iota
	AutoAdvance
)

type Progress struct {
	Percent   float64 `json:"percent"`
	Remaining int     `json:"remaining"`
}

// Compute returns progress toward tierTarget. A target of zero or less
// yields zero percent rather than a division artifact; percent is capped
// at 100 and remaining never goes negative once the target is exceeded.
func Compute(totalSpent, tierTarget int) Progress {
	if totalSpent < 0 {
		totalSpent = 0
	}
	if tierTarget <= 0 {
		return Progress{Percent: 0, Remaining: 0}
	}
	pct := float64(totalSpent) / float64(tierTarget) * 100
	if pct > 100 {
		pct = 100
	}
	rem := tierTarget - totalSpent
	if rem < 0 {
		rem = 0
	}
	return Progress{Percent: pct, Remaining: rem}
}

// Calculator resolves a cumulative spend against a tier ladder.
type Calculator struct {
	Ladder []Tier
	Policy OverflowPolicy
}

func NewCalculator() Calculator {
	return Calculator{Ladder: DefaultLadder, Policy: FreezeAtTarget}
}

type Status struct {
	Tier     string   `json:"tier"`
	NextTier string   `json:"next_tier,omitempty"`
	Progress Progress `json:"progress"`
}

// Status reports the tier the spend sits in and progress toward the rung
// after currentTier. Under FreezeAtTarget the reported tier stays at
// currentTier even when spend has cleared the next target (the display
// pins at 100%); under AutoAdvance the tier follows the spend.
func (c Calculator) Status(currentTier string, totalSpent int) Status {
	ladder := c.Ladder
	if len(ladder) == 0 {
		ladder = DefaultLadder
	}

	cur := 0
	for i, t := range ladder {
		if t.Name == currentTier {
			cur = i
			break
		}
	}
	if c.Policy == AutoAdvance {
		cur = 0
		for i, t := range ladder {
			if totalSpent >= t.Target {
				cur = i
			}
		}
	}
	if cur == len(ladder)-1 {
		return Status{Tier: ladder[cur].Name, Progress: Progress{Percent: 100, Remaining: 0}}
	}
	next := ladder[cur+1]
	return Status{
		Tier:     ladder[cur].Name,
		NextTier: next.Name,
		Progress: Compute(totalSpent, next.Target),
	}
}
