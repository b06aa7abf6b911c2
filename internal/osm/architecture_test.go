package osm

import (
	"testing"

	"energyport/testutil"
)

func TestObjectModelStaysOffStorageAndService(t *testing.T) {
	testutil.AssertNoTransitiveDependency(t, ".",
		testutil.Any(testutil.StorageImport, testutil.ServiceImport),
		"the object model is persisted through snapshots, not by talking to stores")
}
