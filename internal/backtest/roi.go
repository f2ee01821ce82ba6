package backtest

import (
	"github.com/shopspring/decimal"
)

// Constant illustrative odds per bet type. Real market odds vary per race;
// these fixed payouts make runs comparable across model variants.
var (
	winOdds       = decimal.NewFromFloat(5.0)
	showOdds      = decimal.NewFromFloat(1.8)
	exactaBoxOdds = decimal.NewFromFloat(15.0)

	unitStake = decimal.NewFromInt(1)
)

// roiTracker accumulates stakes and returns for the three simulated bet
// types across a backtest run.
type roiTracker struct {
	winStaked   decimal.Decimal
	winReturned decimal.Decimal

	showStaked   decimal.Decimal
	showReturned decimal.Decimal

	exactaStaked   decimal.Decimal
	exactaReturned decimal.Decimal
}

func newROITracker() *roiTracker {
	zero := decimal.Zero
	return &roiTracker{
		winStaked: zero, winReturned: zero,
		showStaked: zero, showReturned: zero,
		exactaStaked: zero, exactaReturned: zero,
	}
}

// record settles the per-race unit bets against the evaluation: a win bet on
// the predicted winner, a show bet on the predicted winner, and an exacta box
// on the predicted top two.
func (t *roiTracker) record(eval RaceEval) {
	if len(eval.PredictedOrder) == 0 || len(eval.ActualOrder) == 0 {
		return
	}

	t.winStaked = t.winStaked.Add(unitStake)
	if eval.Top1Hit {
		t.winReturned = t.winReturned.Add(winOdds)
	}

	t.showStaked = t.showStaked.Add(unitStake)
	if predictedWinnerShowed(eval) {
		t.showReturned = t.showReturned.Add(showOdds)
	}

	if len(eval.PredictedOrder) >= 2 && len(eval.ActualOrder) >= 2 {
		t.exactaStaked = t.exactaStaked.Add(unitStake)
		if exactaBoxHit(eval) {
			t.exactaReturned = t.exactaReturned.Add(exactaBoxOdds)
		}
	}
}

// predictedWinnerShowed reports whether the predicted winner finished in the
// actual top three.
func predictedWinnerShowed(eval RaceEval) bool {
	top := 3
	if top > len(eval.ActualOrder) {
		top = len(eval.ActualOrder)
	}
	for _, id := range eval.ActualOrder[:top] {
		if id == eval.PredictedOrder[0] {
			return true
		}
	}
	return false
}

// exactaBoxHit reports whether the predicted top two match the actual top
// two in either order.
func exactaBoxHit(eval RaceEval) bool {
	p0, p1 := eval.PredictedOrder[0], eval.PredictedOrder[1]
	a0, a1 := eval.ActualOrder[0], eval.ActualOrder[1]
	return (p0 == a0 && p1 == a1) || (p0 == a1 && p1 == a0)
}

// summary returns the per-bet-type ROI: (returned - staked) / staked.
func (t *roiTracker) summary() SimulatedROI {
	return SimulatedROI{
		Win:       roi(t.winStaked, t.winReturned),
		Show:      roi(t.showStaked, t.showReturned),
		ExactaBox: roi(t.exactaStaked, t.exactaReturned),
	}
}

func roi(staked, returned decimal.Decimal) decimal.Decimal {
	if staked.IsZero() {
		return decimal.Zero
	}
	return returned.Sub(staked).Div(staked).Round(4)
}
