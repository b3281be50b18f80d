package core

import "nestsummary/storage"

// StoreConfig selects the backend of a TableStore. A nil BadgerConfig keeps
// tables in a process-local map.
type StoreConfig struct {
	CacheEnabled bool
	BadgerConfig *storage.BadgerBackendConfig
}
