package forge

import (
	"testing"

	"github.com/napolitain/forge-scheduler/internal/models"
)

// exampleCatalogs returns the two published example blueprints
func exampleCatalogs(t testing.TB) (*models.Catalog, *models.Catalog) {
	t.Helper()

	first, err := models.DefaultCatalog(1, 4, 2, 3, 14, 2, 7)
	if err != nil {
		t.Fatalf("Failed to build blueprint 1: %v", err)
	}
	second, err := models.DefaultCatalog(2, 2, 3, 3, 8, 3, 12)
	if err != nil {
		t.Fatalf("Failed to build blueprint 2: %v", err)
	}
	return first, second
}

// cheapCatalog has every recipe costing two units, so output appears early
func cheapCatalog(t testing.TB) *models.Catalog {
	t.Helper()

	c, err := models.DefaultCatalog(3, 2, 2, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("Failed to build cheap catalog: %v", err)
	}
	return c
}
