// Package domain holds the canonical, provider-agnostic charging-station
// model.
//
// # Model
//
// A [Station] is a derived value: it is rebuilt from every raw provider fetch
// and never mutated afterwards. Its only identity is the numeric station id
// assigned by the provider. A station always carries at least one
// [Connector]; records that decode to zero usable connectors are not
// representable and are rejected during normalization.
//
// # Connector variants
//
// Two connectors are the same variant iff their (type, power) pair is equal.
// [MergeConnectors] collapses a station's connector list into such variants
// with summed counts. The merged view is count-only; per-unit external
// identifiers stay on the unmerged list, where the availability detector
// correlates them against live status rows.
//
// # Multi-plug classification
//
// A station is "multi-plug" with respect to its fastest charging tier: when
// the maximum power among the considered connectors reaches the fast-charging
// threshold (43 kW), slower connectors are excluded before counting. See
// [IsMultiPlug].
//
// # Availability
//
// [Status] is a terminal-state-free enum re-derived on every poll.
// [MapStatus] translates provider status tokens; any token outside the
// documented vocabulary degrades to [StatusUnknown] so that vocabulary growth
// on the provider side never breaks ingestion.
package domain
