package blob

import (
	memorystore "energyport/internal/infra/blob/memory"
)

// NewMemory returns an empty in-memory Store.
func NewMemory() Store { return memorystore.New() }
