package db

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/habitboard/internal/store"
	"github.com/terraincognita07/habitboard/internal/store/storetest"
)

func TestSQLiteRepositoriesConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Backend {
		database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "habitboard-conformance.db"))
		return NewRepositories(database).Backend()
	})
}
