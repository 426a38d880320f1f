package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	// Registry metrics
	PairsCreated prometheus.Counter

	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	// Liquidity metrics
	SharesMinted      *prometheus.CounterVec
	SharesBurned      *prometheus.CounterVec
	ProtocolFeeShares *prometheus.CounterVec
	Reserves          *prometheus.GaugeVec
	ShareSupply       *prometheus.GaugeVec

	// Security metrics
	ReentrancyRejections *prometheus.CounterVec
	InvariantViolations  *prometheus.CounterVec
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			PairsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "pairs_created_total",
					Help:      "Total number of pairs created by the registry",
				},
			),
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps by outcome",
				},
				[]string{"pair_id", "status"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds, callback included",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SharesMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "shares_minted_total",
					Help:      "Liquidity shares minted to providers",
				},
				[]string{"pair_id"},
			),
			SharesBurned: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "shares_burned_total",
					Help:      "Liquidity shares redeemed",
				},
				[]string{"pair_id"},
			),
			ProtocolFeeShares: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "protocol_fee_shares_total",
					Help:      "Liquidity shares minted to the protocol fee recipient",
				},
				[]string{"pair_id"},
			),
			Reserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "reserves",
					Help:      "Tracked pair reserves in base units",
				},
				[]string{"pair_id", "asset"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "share_supply",
					Help:      "Outstanding liquidity shares per pair",
				},
				[]string{"pair_id"},
			),
			ReentrancyRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "reentrancy_rejections_total",
					Help:      "Operations rejected because their lock was already held",
				},
				[]string{"lock", "operation"},
			),
			InvariantViolations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "invariant_violations_total",
					Help:      "Swaps rejected by the fee-adjusted constant product check",
				},
				[]string{"pair_id"},
			),
		}
	})
	return ammMetrics
}

// toFloat converts an amount for gauge and counter reporting. Precision loss
// above 2^53 is acceptable for metrics.
func toFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
