// Package patrimony computes the monthly and yearly valuation of a family
// investment portfolio from its ledgers. It is local-first and batch
// oriented: every run reads the input documents once, replays them in a
// single chronological pass, and emits one dashboard snapshot.
//
// The core functionalities include:
//   - Ledger Replay: Streaming contributions, withdrawals, buys, sells and
//     dividends against month-end boundaries while keeping running
//     positions and net invested amounts per asset.
//   - Price Resolution: Looking up the monthly quote of an asset, falling
//     back to the latest known quote that is not after the period end.
//   - Valuation and Aggregation: Valuing open positions per category,
//     decomposing each month's value change into net contribution,
//     appreciation and dividends, and rolling months into years.
//   - Reporting: Chaining cumulative returns against benchmark series,
//     ranking holdings, and measuring the gap to allocation targets.
//
// This package serves as the foundational logic for the `ptm` command-line
// tool.
package patrimony
