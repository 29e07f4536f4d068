package ciridae

import (
	"github.com/rs/zerolog"

	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/logging"
	"github.com/GregoryLi360/ciridae-takehome/pkg/match"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle"
)

// Option is a function that configures an engine.
type Option func(*config) error

// config holds the engine's collaborators and tuning.
type config struct {
	pairer    oracle.RoomPairer
	scorer    oracle.Scorer
	threshold float64
	logger    zerolog.Logger
}

// defaultConfig uses the lexical oracles so the engine works without any
// external service.
func defaultConfig() *config {
	return &config{
		pairer:    &oracle.LexicalPairer{},
		scorer:    &oracle.LexicalScorer{},
		threshold: match.DefaultThreshold,
		logger:    *logging.Default(),
	}
}

// WithRoomPairer sets the oracle deciding which rooms describe the same
// physical space.
func WithRoomPairer(pairer oracle.RoomPairer) Option {
	return func(c *config) error {
		if pairer == nil {
			return &errors.ConfigError{Component: "engine", Message: "room pairer must not be nil"}
		}
		c.pairer = pairer
		return nil
	}
}

// WithScorer sets the oracle scoring cross-document item similarity.
func WithScorer(scorer oracle.Scorer) Option {
	return func(c *config) error {
		if scorer == nil {
			return &errors.ConfigError{Component: "engine", Message: "scorer must not be nil"}
		}
		c.scorer = scorer
		return nil
	}
}

// WithSimilarityFloor sets the minimum similarity score a proposed item
// match must reach to be accepted.
func WithSimilarityFloor(threshold float64) Option {
	return func(c *config) error {
		if threshold <= 0 || threshold > 1 {
			return &errors.ConfigError{Component: "engine", Message: "similarity floor must be in (0, 1]"}
		}
		c.threshold = threshold
		return nil
	}
}

// WithLogger sets the logger used by the engine.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
