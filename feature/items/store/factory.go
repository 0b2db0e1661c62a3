package store

import (
	"fmt"

	"catalog/core/database"
	"catalog/core/storage"
)

// New builds the backend selected by cfg.Driver. Only the connection the
// backend needs is opened.
func New(cfg Config, dbCfg database.Config, storageCfg storage.Config) (Store, error) {
	switch cfg.Driver {
	case DriverFile, "":
		return NewFileStore(cfg.Path), nil
	case DriverObject:
		client, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return NewObjectStore(client, storageCfg.Bucket, cfg.ObjectName), nil
	case DriverSQL:
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db, cfg.AutoMigrate)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
