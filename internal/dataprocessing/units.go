package dataprocessing

import "assemblystats/pkg/contracts/domain"

// BasePairsPerMegabase converts genome lengths from bp to Mb.
const BasePairsPerMegabase = 1_000_000

// ToMegabases rescales a genome-size summary from base pairs to megabase
// pairs. Count and the "not available" sentinel pass through unchanged.
func ToMegabases(s domain.StatSummary) domain.StatSummary {
	return s.Scale(BasePairsPerMegabase)
}
