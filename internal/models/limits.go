package models

// PlanLimits maps a subscription tier to its resource ceilings. It is loaded
// once at startup and passed into the services that need it, so tests can
// substitute alternate tiers without touching package state.
type PlanLimits struct {
	Photos map[SubscriptionPlan]int
	Videos map[SubscriptionPlan]int
}

// DefaultPlanLimits returns the production tier table.
func DefaultPlanLimits() PlanLimits {
	return PlanLimits{
		Photos: map[SubscriptionPlan]int{
			PlanFree:     1,
			PlanStandard: 4,
			PlanPro:      8,
			PlanElite:    12,
		},
		Videos: map[SubscriptionPlan]int{
			PlanFree:     0,
			PlanStandard: 0,
			PlanPro:      1,
			PlanElite:    3,
		},
	}
}

// PhotoLimit returns the photo ceiling for a plan, falling back to the free
// tier for unknown values.
func (l PlanLimits) PhotoLimit(plan SubscriptionPlan) int {
	if n, ok := l.Photos[plan]; ok {
		return n
	}
	return l.Photos[PlanFree]
}

// VideoLimit returns the video ceiling for a plan.
func (l PlanLimits) VideoLimit(plan SubscriptionPlan) int {
	if n, ok := l.Videos[plan]; ok {
		return n
	}
	return l.Videos[PlanFree]
}
