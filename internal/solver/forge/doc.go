// Package forge finds the largest output a production catalog can reach
// within a fixed number of steps.
//
// The search is layered by step. Every state of a step is branched into
// "buy one affordable unit" and "buy nothing", ticked once, and the
// resulting frontier is deduplicated on production rates and balances
// before the next step starts. Production rates are capped at the most
// any recipe can spend per step, and balances at what the remaining steps
// can spend, which keeps the frontier small for horizons in the 24–32
// range.
package forge
