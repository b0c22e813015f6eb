// Package iocache is for caching extraction I/O.
package iocache

import (
	"sync"

	"github.com/lineheat/lineheat/internal/contract"
)

// CacheStoreManager manages the CacheStore instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	signals      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetSignalStore returns the extraction signal CacheStore.
func (mgr *CacheStoreManager) GetSignalStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.signals
}
