package commands

import (
	"encoding/base64"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
	)
	ErrProofPayloadIsRequired = errs.NewValueIsRequiredError("proofPayload")
)

// ConfirmDeliveryCommand represents a proof-of-delivery submission.
// The proof arrives base64-encoded from the transport and is decoded to an
// opaque binary blob here, so a malformed encoding is rejected before any
// store access.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	proof       []byte
	proofType   string
	location    string
	deliveredAt time.Time

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm delivery of an order.
//
// Parameters:
//   - orderID: the delivered order
//   - proofPayload: base64-encoded proof blob (image or signature), required
//   - proofType: free-form proof classification, e.g. "signature" or "photo"
//   - location: optional delivery location note
//   - deliveredAt: confirmation time; zero means "now"
func NewConfirmDeliveryCommand(
	orderID kernel.UUID,
	proofPayload, proofType, location string,
	deliveredAt time.Time,
) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		proofType: proofType,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}
	if deliveredAt.IsZero() {
		deliveredAt = time.Now().UTC()
	}
	cmd.deliveredAt = deliveredAt

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProof(proofPayload),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the delivered order's identifier.
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Proof returns the decoded proof blob.
func (c ConfirmDeliveryCommand) Proof() []byte {
	return c.proof
}

// ProofType returns the proof classification.
func (c ConfirmDeliveryCommand) ProofType() string {
	return c.proofType
}

// Location returns the optional delivery location note.
func (c ConfirmDeliveryCommand) Location() string {
	return c.location
}

// DeliveredAt returns the confirmation time.
func (c ConfirmDeliveryCommand) DeliveredAt() time.Time {
	return c.deliveredAt
}

func (c *ConfirmDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmDeliveryCommand) setProof(proofPayload string) error {
	if proofPayload == "" {
		return ErrProofPayloadIsRequired
	}

	proof, err := base64.StdEncoding.DecodeString(proofPayload)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("proofPayload", err)
	}
	if len(proof) == 0 {
		return ErrProofPayloadIsRequired
	}

	c.proof = proof
	return nil
}
