package weapon

import "github.com/nullwave/flotilla/internal/model"

// Context is the common input passed to a resolver.
type Context struct {
	Attacker []*model.Ship // the attacker's own roster snapshot, read-only
	Defender *model.Board  // the defender's board, mutable
	Center   model.Coordinate
	IsPlayer bool // distinguishes human vs. machine attacker, used only to choose log classes
}

// Weapon is the interface every resolver implements. The set of weapons is
// closed and small, so callers should prefer the static Registry over
// reimplementing dispatch.
type Weapon interface {
	ID() ID
	Name() string
	Available(attacker []*model.Ship) bool
	Preview(center model.Coordinate) []model.Coordinate
	Resolve(ctx Context) Result
}

// Registry is an immutable-after-construction map from weapon id to
// implementation. It may be shared read-only by multiple concurrent match
// simulators.
type Registry map[ID]Weapon

// DefaultRegistry returns the standard three-weapon set with sonar's sensor
// set defaulted to {DD}, per the resolved open question.
func DefaultRegistry() Registry {
	return Registry{
		MainGun:   AP{},
		AirStrike: HE{},
		SonarPing: Sonar{Sensors: []model.ShipType{model.DD}},
	}
}
