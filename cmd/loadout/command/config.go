package command

import (
	"fmt"
	"regexp"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-loadout/internal/driver"
	"github.com/pixil98/go-loadout/internal/messaging"
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	Storage      StorageConfig    `json:"storage"`
	Nats         NatsConfig       `json:"nats"`
	Subjects     SubjectsConfig   `json:"subjects"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < driver.MinTickLength {
		el.Add(fmt.Errorf("tick_interval must be at least %s", driver.MinTickLength))
	}

	for i, l := range c.Listeners {
		err := l.Validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Subjects.Validate())

	return el.Err()
}

// tickInterval returns the parsed tick_interval. Validate has already
// rejected values that do not parse.
func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return driver.DefaultTickLength
	}
	return d
}

var subjectPrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

type SubjectsConfig struct {
	Prefix string `json:"prefix"`
}

func (c *SubjectsConfig) Validate() error {
	if c.Prefix != "" && !subjectPrefixPattern.MatchString(c.Prefix) {
		return fmt.Errorf("subjects: prefix %q must be dot separated tokens without wildcards", c.Prefix)
	}
	return nil
}

func (c *SubjectsConfig) build() messaging.Subjects {
	return messaging.NewSubjects(c.Prefix)
}
