package character

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/scox/internal/game/catalogue"
	"github.com/cory-johannsen/scox/internal/game/dice"
	"github.com/cory-johannsen/scox/internal/game/profile"
)

// archetypeDraws is the number of successful power draws required during
// archetype assignment.
const archetypeDraws = 2

// Generator creates characters by layering a superior template and an
// archetype template onto the fixed catalogue.
type Generator struct {
	cat    *catalogue.Catalogue
	store  *profile.Store
	src    dice.Source
	logger *zap.Logger
}

// NewGenerator wires a generator.
//
// Precondition: all arguments must be non-nil.
func NewGenerator(cat *catalogue.Catalogue, store *profile.Store, src dice.Source, logger *zap.Logger) *Generator {
	return &Generator{cat: cat, store: store, src: src, logger: logger}
}

// Create builds a level-0 character: catalogue initialization, superior
// merge, archetype merge (which generates the power table), two power
// draws, and a full recompute.
//
// Any schema violation during loading aborts creation entirely; there is
// no partial-character fallback.
func (g *Generator) Create(name string, nature profile.Nature, archetypeRef, superiorRef string) (*Character, error) {
	c, err := New(name, nature, 0, g.cat)
	if err != nil {
		return nil, err
	}

	if err := g.store.Load(c.Profile, superiorRef, false); err != nil {
		return nil, fmt.Errorf("loading superior profile: %w", err)
	}
	if err := g.store.Load(c.Profile, archetypeRef, true); err != nil {
		return nil, fmt.Errorf("loading archetype profile: %w", err)
	}

	drawn, err := c.Profile.PowerTable.Draw(c.Profile, archetypeDraws, g.src)
	if err != nil {
		return nil, fmt.Errorf("drawing archetype powers: %w", err)
	}

	c.Recompute()

	g.logger.Info("character created",
		zap.String("name", c.Name),
		zap.String("nature", string(nature)),
		zap.String("superior", c.Profile.Superior),
		zap.Int("powers_drawn", drawn),
		zap.Int("powers", c.Profile.Powers.Len()),
	)
	return c, nil
}
