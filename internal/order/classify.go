package order

import "strings"

// CycleOf infers the billing cadence from the duration and service name.
// "year" anywhere wins over "month"; everything else is a one-off.
func CycleOf(serviceName, duration string) ServiceCycle {
	name := strings.ToLower(serviceName)
	dur := strings.ToLower(duration)

	switch {
	case strings.Contains(dur, "year") || strings.Contains(name, "year"):
		return CycleYearly
	case strings.Contains(dur, "month") || strings.Contains(name, "month"):
		return CycleMonthly
	default:
		return CycleInstant
	}
}

// Classify derives the order type and billing cycle from the free-text
// service name and duration. Matching is case-insensitive substring, first
// match wins.
//
// Any cyclic cadence forces the type to e-greeting before the name keywords
// are consulted, so a yearly "agency setup" package classifies as e-greeting.
// That precedence is how upstream producers have always labeled subscription
// orders; changing it would reshuffle historical dashboards, so it stands
// until product says otherwise.
func Classify(serviceName, duration string, correction bool) (Type, ServiceCycle) {
	cycle := CycleOf(serviceName, duration)
	if cycle != CycleInstant {
		return TypeEGreeting, cycle
	}

	name := strings.ToLower(serviceName)

	switch {
	case correction || strings.Contains(name, "correction"):
		return TypeCorrection, cycle
	case strings.Contains(name, "agency"):
		return TypeAgency, cycle
	case strings.Contains(name, "greeting") || strings.Contains(name, "festival"):
		return TypeEGreeting, cycle
	default:
		return TypeService, cycle
	}
}

// MediaFor infers the deliverable format from the service name. Image is the
// default when no video keyword appears.
func MediaFor(serviceName string) MediaType {
	name := strings.ToLower(serviceName)
	if strings.Contains(name, "video") || strings.Contains(name, "reel") || strings.Contains(name, "animation") {
		return MediaVideo
	}

	return MediaImage
}
