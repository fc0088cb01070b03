package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrReportAnomalyCommandIsNotConstructed = errors.New(
		"ReportAnomalyCommand must be created via NewReportAnomalyCommand constructor",
	)
	ErrErrorMessageIsRequired = errs.NewValueIsRequiredError("errorMessage")
)

// ReportAnomalyCommand records a delivery anomaly against an order: a lost
// parcel, damage in transit, a refused delivery and so on. The message is
// the reporter's account and is stored on the order exactly as given.
type ReportAnomalyCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	errorMessage string

	guard guard.ConstructorGuard
}

// NewReportAnomalyCommand creates a command to report a delivery anomaly.
func NewReportAnomalyCommand(
	orderID kernel.UUID, errorMessage string,
) (ReportAnomalyCommand, error) {
	cmd := ReportAnomalyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setErrorMessage(errorMessage),
	); err != nil {
		return ReportAnomalyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportAnomalyCommand) Validate() error {
	return c.guard.Validate(ErrReportAnomalyCommandIsNotConstructed)
}

// OrderID returns the affected order's identifier.
func (c ReportAnomalyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ErrorMessage returns the reporter's account of the anomaly.
func (c ReportAnomalyCommand) ErrorMessage() string {
	return c.errorMessage
}

func (c *ReportAnomalyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	c.orderID = orderID
	return nil
}

func (c *ReportAnomalyCommand) setErrorMessage(errorMessage string) error {
	if strings.TrimSpace(errorMessage) == "" {
		return ErrErrorMessageIsRequired
	}

	c.errorMessage = errorMessage
	return nil
}
