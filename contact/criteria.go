package contact

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCriteria = errors.New("invalid contact criteria")

const (
	DefaultMaxGapDistance         = 0.005
	DefaultMaxPenetration         = 0.001
	DefaultMaxNormalAngle         = 45.0 // degrees
	DefaultSearchRadiusMultiplier = 2.0
)

// Criteria decides whether two faces are in contact. Distances are in mesh
// units, positive for a gap and negative for penetration.
type Criteria struct {
	MaxGapDistance         float64 `json:"max_gap_distance"`
	MaxPenetration         float64 `json:"max_penetration"`
	MaxNormalAngle         float64 `json:"max_normal_angle"`
	SearchRadiusMultiplier float64 `json:"search_radius_multiplier"`
}

func DefaultCriteria() Criteria {
	return Criteria{
		MaxGapDistance:         DefaultMaxGapDistance,
		MaxPenetration:         DefaultMaxPenetration,
		MaxNormalAngle:         DefaultMaxNormalAngle,
		SearchRadiusMultiplier: DefaultSearchRadiusMultiplier,
	}
}

func NewCriteria(maxGap, maxPenetration, maxAngle, searchMultiplier float64) (c Criteria, err error) {
	c = Criteria{
		MaxGapDistance:         maxGap,
		MaxPenetration:         maxPenetration,
		MaxNormalAngle:         maxAngle,
		SearchRadiusMultiplier: searchMultiplier,
	}
	if err = c.Validate(); err != nil {
		return Criteria{}, err
	}
	return
}

func (c Criteria) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, have %v", ErrInvalidCriteria, name, v)
		}
		return nil
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"max gap distance", c.MaxGapDistance},
		{"max penetration", c.MaxPenetration},
		{"max normal angle", c.MaxNormalAngle},
		{"search radius multiplier", c.SearchRadiusMultiplier},
	} {
		if err := check(f.name, f.v); err != nil {
			return err
		}
	}
	switch {
	case c.MaxGapDistance < 0:
		return fmt.Errorf("%w: max gap distance must be non-negative, have %g", ErrInvalidCriteria, c.MaxGapDistance)
	case c.MaxPenetration < 0:
		return fmt.Errorf("%w: max penetration must be non-negative, have %g", ErrInvalidCriteria, c.MaxPenetration)
	case c.MaxNormalAngle < 0 || c.MaxNormalAngle > 180:
		return fmt.Errorf("%w: max normal angle must be in [0, 180] degrees, have %g", ErrInvalidCriteria, c.MaxNormalAngle)
	case c.SearchRadiusMultiplier <= 0:
		return fmt.Errorf("%w: search radius multiplier must be positive, have %g", ErrInvalidCriteria, c.SearchRadiusMultiplier)
	}
	return nil
}

// InRange accepts -MaxPenetration <= distance <= MaxGapDistance
func (c Criteria) InRange(distance float64) bool {
	return distance >= -c.MaxPenetration && distance <= c.MaxGapDistance
}

// AngleValid accepts normals within MaxNormalAngle of exactly opposed
func (c Criteria) AngleValid(angle float64) bool {
	return 180-angle <= c.MaxNormalAngle
}

func (c Criteria) Print() {
	fmt.Printf("%8.5g\t\t= Max Gap Distance\n", c.MaxGapDistance)
	fmt.Printf("%8.5g\t\t= Max Penetration\n", c.MaxPenetration)
	fmt.Printf("%8.5g\t\t= Max Normal Angle (degrees)\n", c.MaxNormalAngle)
	fmt.Printf("%8.5g\t\t= Search Radius Multiplier\n", c.SearchRadiusMultiplier)
}
