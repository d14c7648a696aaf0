package order

// transitionPair is an allowed (from, to) edge for a restricted role
type transitionPair struct {
	from Status
	to   Status
}

// shipmentTransitions is the fixed slice of the pipeline the shipment role owns
var shipmentTransitions = []transitionPair{
	{StatusConfirmed, StatusShipped},
	{StatusAssigned, StatusShipped},
}

// deliveryTransitions is the fixed slice of the pipeline the delivery role owns
var deliveryTransitions = []transitionPair{
	{StatusShipped, StatusDelivered},
	{StatusAssigned, StatusDelivered},
}

// employeeTransitions is the canonical forward sequence the general
// operational role may walk: pending -> confirmed -> shipped -> delivered
var employeeTransitions = []transitionPair{
	{StatusPending, StatusConfirmed},
	{StatusConfirmed, StatusShipped},
	{StatusShipped, StatusDelivered},
}

// Allowed decides whether a status change is permitted for the given actor
// role and (from, to) pair. Rules, in priority order:
//  1. no role may transition any status back to pending
//  2. terminal statuses have no outgoing transition for any role
//  3. admin may move any non-terminal status anywhere else
//  4. shipment/delivery each own a fixed slice of the pipeline
//  5. employee walks the canonical forward sequence only
func Allowed(role Role, from, to Status) bool {
	if to == StatusPending {
		return false
	}
	if from.IsTerminal() {
		return false
	}
	if from == to {
		return false
	}

	switch role {
	case RoleAdmin:
		return true
	case RoleShipment:
		return containsPair(shipmentTransitions, from, to)
	case RoleDelivery:
		return containsPair(deliveryTransitions, from, to)
	case RoleEmployee:
		return containsPair(employeeTransitions, from, to)
	}
	return false
}

func containsPair(pairs []transitionPair, from, to Status) bool {
	for _, p := range pairs {
		if p.from == from && p.to == to {
			return true
		}
	}
	return false
}

// AllowedTargets computes the reachable statuses from the given status along
// the canonical forward graph, independent of actor role. Used purely for
// diagnostics in rejection messages.
func AllowedTargets(from Status) []Status {
	switch from {
	case StatusPending:
		return []Status{StatusConfirmed}
	case StatusConfirmed:
		return []Status{StatusShipped}
	case StatusAssigned:
		return []Status{StatusShipped, StatusDelivered}
	case StatusShipped:
		return []Status{StatusDelivered}
	}
	return []Status{}
}

// AllowedTargetStrings returns AllowedTargets as plain strings for embedding
// in error details.
func AllowedTargetStrings(from Status) []string {
	targets := AllowedTargets(from)
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.String()
	}
	return out
}
