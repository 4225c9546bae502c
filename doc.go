// Package fund tracks the daily state of a single investment portfolio and
// derives its performance analytics.
//
// The core functionalities include:
//   - Ledger Engine: walks a calendar of market days, accrues interest on idle
//     cash, applies the day's transactions (buy, sell, short sell, cover) to
//     the position book and the cash balance, values open positions at the
//     day's market prices and emits one immutable Snapshot per day.
//   - Market Data: a sparse price surface, a benchmark series and the market
//     calendar, decoded from human-readable JSONL or CSV files.
//   - Reports: monthly aggregation, point-in-time composition and weights,
//     daily, monthly and since-inception reports built on the stats package.
//
// The ledger produced by [Run] is the single source of truth for every
// downstream figure. It is computed once per request and never persisted.
package fund
