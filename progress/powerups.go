package progress

import "context"

type Costs struct {
	Swap int `yaml:"swap"`
	Bomb int `yaml:"bomb"`
}

func DefaultCosts() Costs {
	return Costs{Swap: 50, Bomb: 100}
}

type PowerUps struct {
	Costs Costs
	armed bool
}

func NewPowerUps(costs Costs) *PowerUps {
	return &PowerUps{Costs: costs}
}

// BuySwap charges for a hand swap. The caller redraws the hand.
func (p *PowerUps) BuySwap(ctx context.Context, w *Wallet) (bool, error) {
	return w.Spend(ctx, p.Costs.Swap)
}

// ToggleBomb disarms an armed bomb (no refund) or buys and arms one.
// It returns whether a bomb is armed afterwards.
func (p *PowerUps) ToggleBomb(ctx context.Context, w *Wallet) (bool, error) {
	if p.armed {
		p.armed = false
		return false, nil
	}
	ok, err := w.Spend(ctx, p.Costs.Bomb)
	p.armed = ok
	return ok, err
}

func (p *PowerUps) Armed() bool {
	return p.armed
}

func (p *PowerUps) Disarm() {
	p.armed = false
}
