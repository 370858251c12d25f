package watcher

import (
	log "github.com/sirupsen/logrus"

	"topocat/internal/catalog"
	"topocat/internal/loader"
)

// CatalogTarget receives reloaded catalogs
type CatalogTarget interface {
	Replace(c *catalog.Catalog)
	ReportReloadFailure(name string, err error)
}

// ReloadCatalog returns a change handler that loads dir into a new catalog
// and hands it to target. When the load fails, target keeps the catalog it
// already has.
func ReloadCatalog(dir, name string, target CatalogTarget) func() {
	return func() {
		c, err := loader.LoadDir(dir, name)
		if err != nil {
			log.WithError(err).WithField("catalog", name).Error("Reload failed, keeping previous catalog")
			target.ReportReloadFailure(name, err)
			return
		}
		target.Replace(c)
	}
}
