// Package market holds the small set of market-convention enums shared by
// the registry and helper-building packages, generalized from the
// teacher's swap/market leg-convention package down to the one value this
// repository's curve construction actually needs: the roll rule applied
// to a declared index's fixing/payment dates.
package market

// BusinessDayAdjustment names a roll convention for adjusting a date that
// falls on a non-business day.
type BusinessDayAdjustment string

const (
	Unadjusted         BusinessDayAdjustment = ""
	Following          BusinessDayAdjustment = "FOLLOWING"
	ModifiedFollowing  BusinessDayAdjustment = "MODIFIED_FOLLOWING"
	Preceding          BusinessDayAdjustment = "PRECEDING"
)
