package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-loadout/internal/catalog"
	"github.com/pixil98/go-loadout/internal/profiles"
	"github.com/pixil98/go-loadout/internal/storage"
)

type StorageConfig struct {
	Profiles AssetConfig[*profiles.ProfileSet] `json:"profiles"`
	Items    CatalogConfig                     `json:"items"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Profiles.Validate("profiles"))
	el.Add(c.Items.Validate("items"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	fi, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: path %q is not a directory", name, c.Path)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// CatalogConfig points at the YAML item catalog.
type CatalogConfig struct {
	Path string `json:"path"`
}

func (c *CatalogConfig) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}
	return nil
}

func (c *CatalogConfig) BuildCatalog() (*catalog.Catalog, error) {
	return catalog.Load(c.Path)
}
