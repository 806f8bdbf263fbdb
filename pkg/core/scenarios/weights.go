package scenarios

// Reward coefficients for the four formulations. Each block belongs to one
// scenario; the solver itself never interprets these, it only maximizes.
const (
	// Base recurring schedule: pure coverage, one point per satisfied pairing.
	RewardBaseCoverage = 1.0

	// Ad-hoc site coverage: each unit of coverage contributes proportionally
	// toward 100% satisfaction of its demand unit (100 / ceil(demand)), and a
	// small penalty discourages a worker changing site category between the
	// morning and afternoon of one day.
	RewardCoverageFullUnit     = 100.0
	PenaltyMidDayRelocation    = -0.01

	// Operating-theatre personnel: unfilled surgical roles hurt more than
	// unfilled reception roles. Workers who prefer administrative duty get a
	// small tie-breaking bonus on front-desk slots.
	RewardTheatreSurgicalRole  = 1.0
	RewardTheatreFrontDesk     = 0.5
	RewardTheatreAdminAffinity = 0.1

	// Flexible-floater placement.
	RewardFloaterUnfilledSlot     = 100.0 // filling an otherwise-unfilled slot
	RewardFloaterPreferredSite    = 80.0  // floater's preferred site matches
	RewardFloaterBeneficialSwap   = 50.0  // displaces an occupant who does not prefer the site
	PenaltyFloaterHarmfulSwap     = -30.0 // displaces an occupant who prefers the site
	RewardFloaterCompatiblePlace  = 10.0  // any other compatible placement
	PenaltyFloaterDisplacedWorker = -20.0 // per displaced occupant, whatever triggered it
)
