package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

// AssetVersion is the version written by Save.
const AssetVersion = 1

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// ValidatingSpec is implemented by every type persisted as an asset.
type ValidatingSpec interface {
	Validate() error
}

// Identifier names an asset. It doubles as the asset's file name.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Validate checks that id is usable as a file name.
func (id Identifier) Validate() error {
	if id == "" {
		return fmt.Errorf("id must be set")
	}
	if !identifierPattern.MatchString(id.String()) {
		return fmt.Errorf("id %q must be alphanumeric", id)
	}
	return nil
}

// Asset is the on-disk envelope around a persisted spec.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	} else if a.Version > AssetVersion {
		el.Add(fmt.Errorf("version %d is newer than supported version %d", a.Version, AssetVersion))
	}

	el.Add(a.Identifier.Validate())
	el.Add(a.Spec.Validate())

	return el.Err()
}
