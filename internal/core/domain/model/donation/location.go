package donation

import (
	"errors"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

// DispatchedBuilding is the well-known building name used for items that left the warehouse.
const DispatchedBuilding = "Dispatched"

var (
	ErrLocationIsNotConstructed         = errors.New("Location must be created via NewLocation")
	ErrPackagesLocationIsNotConstructed = errors.New("PackagesLocation must be created via NewPackagesLocation")
)

// Location is a warehouse place identified by building and (optional) area.
type Location struct {
	building string
	area     string
	guard    guard.ConstructorGuard
}

func NewLocation(building, area string) (Location, error) {
	building = strings.TrimSpace(building)
	if building == "" {
		return Location{}, errs.NewValueIsRequiredError("building")
	}
	return Location{
		building: building,
		area:     strings.TrimSpace(area),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DispatchedLocation returns the marker location recorded when units are dispatched.
func DispatchedLocation() Location {
	return Location{building: DispatchedBuilding, guard: guard.NewConstructorGuard()}
}

func (l Location) Building() string { return l.building }
func (l Location) Area() string     { return l.area }

func (l Location) IsDispatched() bool {
	return l.building == DispatchedBuilding
}

func (l Location) IsEqual(other Location) bool {
	return l.building == other.building && l.area == other.area
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// PackagesLocation records that quantity units of a package were at location from recordedAt on.
type PackagesLocation struct {
	id         kernel.UUID
	location   Location
	quantity   int
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

func NewPackagesLocation(id kernel.UUID, location Location, quantity int, recordedAt time.Time) (*PackagesLocation, error) {
	pl := &PackagesLocation{
		location:   location,
		quantity:   quantity,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		id.Validate(),
		location.Validate(),
		kernel.ValidateQuantity("quantity", quantity),
	); err != nil {
		return nil, err
	}
	pl.id = id
	return pl, nil
}

func (p *PackagesLocation) ID() kernel.UUID       { return p.id }
func (p *PackagesLocation) Location() Location    { return p.location }
func (p *PackagesLocation) Quantity() int         { return p.quantity }
func (p *PackagesLocation) RecordedAt() time.Time { return p.recordedAt }

func (p *PackagesLocation) Validate() error {
	if p == nil {
		return ErrPackagesLocationIsNotConstructed
	}
	return p.guard.Validate(ErrPackagesLocationIsNotConstructed)
}
