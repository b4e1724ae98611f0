// Package iocache is for persisting extraction results and run history.
package iocache

import (
	"sync"

	"github.com/veerlabs/veer/internal/contract"
)

// CacheStoreManager manages the readings cache and the run log.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	readings     contract.CacheStore
	runs         contract.RunStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetReadingsStore returns the readings CacheStore.
func (mgr *CacheStoreManager) GetReadingsStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.readings
}

// GetRunStore returns the extraction RunStore.
func (mgr *CacheStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
