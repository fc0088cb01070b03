// Package carrier provides read-only Carrier and Driver entities backing
// the carrier/driver directory. Carriers and their driver pools are owned
// by an external system; this core only looks them up and picks a driver
// for a new shipment.
package carrier

import (
	"errors"
	"math/rand"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrCarrierIsNotConstructed is returned when using an improperly
	// initialized Carrier.
	ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")
	// ErrDriverIsNotConstructed is returned when using an improperly
	// initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrNameIsRequired is returned for a blank carrier or driver name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Carrier is an organization providing drivers and transport capacity.
type Carrier struct {
	id   kernel.UUID
	name string

	guard guard.ConstructorGuard
}

// NewCarrier creates a Carrier entity with a validated ID and name.
func NewCarrier(id kernel.UUID, name string) (*Carrier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameIsRequired
	}

	return &Carrier{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the Carrier was properly constructed.
func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// ID returns the carrier's unique identifier.
func (c *Carrier) ID() kernel.UUID {
	return c.id
}

// Name returns the carrier's display name.
func (c *Carrier) Name() string {
	return c.name
}

// Driver is an individual affiliated with a carrier.
type Driver struct {
	id        kernel.UUID
	carrierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewDriver creates a Driver entity belonging to the given carrier.
func NewDriver(id, carrierID kernel.UUID, name string) (*Driver, error) {
	if err := errors.Join(id.Validate(), carrierID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameIsRequired
	}

	return &Driver{id: id, carrierID: carrierID, name: name, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the Driver was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Carrier returns the carrier the driver belongs to.
func (d *Driver) Carrier() kernel.UUID {
	return d.carrierID
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// PickDriver selects one driver uniformly at random from the pool.
// There is no reservation: the same driver may be picked for multiple
// concurrent shipments. Returns nil for an empty pool; the caller decides
// whether that is an error.
func PickDriver(pool []*Driver) *Driver {
	if len(pool) == 0 {
		return nil
	}
	return pool[rand.Intn(len(pool))]
}
