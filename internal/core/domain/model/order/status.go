package order

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions under the normal flow:
//
//	Pending ──> InTransit ──┬──> Delivered
//	                        └──> Failed
//
// Delivered and Failed are terminal. Delivery confirmation deliberately
// does not require a specific prior status (it mirrors the behavior of the
// proof-of-delivery workflow, where the confirmation is authoritative), so
// Status validates values and records which states are terminal rather than
// hard-blocking every transition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: created, possibly carrier-assigned and
	// shipment-linked, but not yet dispatched.
	Pending

	// InTransit indicates the order has been dispatched with a carrier.
	InTransit

	// Delivered indicates the order reached its destination and proof of
	// delivery was recorded. Terminal.
	Delivered

	// Failed indicates a delivery anomaly was reported. Terminal.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// StatusFromString parses the persisted string name of a status.
// Returns an error for unknown names; statuses are stored by name, so a
// failed parse indicates corrupt data rather than a user mistake.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status name", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, InTransit, Delivered, Failed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This is also the representation persisted by the store.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is a final state.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// ValidateCanHaveProof validates the consistency between order status and
// proof of delivery: only Delivered orders carry a proof blob.
func (s Status) ValidateCanHaveProof(hasProof bool) error {
	if hasProof && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot carry a proof of delivery", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveErrorMessage validates the consistency between order status
// and failure reason: only Failed orders carry an error message.
func (s Status) ValidateCanHaveErrorMessage(hasMessage bool) error {
	if hasMessage && s != Failed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot carry an error message", s.String()),
		)
	}
	return nil
}
