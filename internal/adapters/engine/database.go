package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rgbdslam/internal/adapters/storage"
	"rgbdslam/internal/ports"
)

var errNotScanDatabase = errors.New("not a scan database")

// openDatabase opens a map database, creating the schema if needed
func openDatabase(path string, inMemory bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  storage.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open map database: %w", err)
	}

	if inMemory {
		db.Exec("PRAGMA journal_mode=MEMORY")
		db.Exec("PRAGMA synchronous=OFF")
		db.Exec("PRAGMA cache_size=-65536")
	} else {
		db.Exec("PRAGMA journal_mode=WAL")
		db.Exec("PRAGMA synchronous=NORMAL")
	}

	if err := db.AutoMigrate(&NodeModel{}, &LinkModel{}, &MetaModel{}); err != nil {
		closeDatabase(db)
		return nil, fmt.Errorf("failed to migrate map schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// openReadOnly opens an existing database without touching its schema
func openReadOnly(path string) (*gorm.DB, error) {
	return openScanDatabase(path, "file:"+path+"?mode=ro")
}

// openExisting opens an existing database read-write so a pending journal
// is replayed, without touching its schema
func openExisting(path string) (*gorm.DB, error) {
	return openScanDatabase(path, path)
}

func openScanDatabase(path, dsn string) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: storage.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open map database: %w", err)
	}
	if !db.Migrator().HasTable(&NodeModel{}) {
		closeDatabase(db)
		return nil, fmt.Errorf("%s: %w", path, errNotScanDatabase)
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// vacuumInto writes a compacted copy of db to dest, replacing dest
func vacuumInto(ctx context.Context, db *gorm.DB, dest string) error {
	if err := removeDatabaseFiles(dest); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec("VACUUM INTO ?", dest).Error; err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// removeDatabaseFiles deletes a database with its journal files
func removeDatabaseFiles(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func countNodes(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&NodeModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func readMeta(db *gorm.DB, key string) string {
	var meta MetaModel
	if err := db.Where(&MetaModel{Key: key}).Limit(1).Find(&meta).Error; err != nil {
		return ""
	}
	return meta.Value
}

func writeMeta(db *gorm.DB, key, value string) error {
	return db.Save(&MetaModel{Key: key, Value: value}).Error
}

func deleteMeta(db *gorm.DB, key string) error {
	return db.Delete(&MetaModel{Key: key}).Error
}

// Inspector reads scan databases without opening them for mapping
type Inspector struct{}

var _ ports.ScanInspector = Inspector{}

// Inspect returns the node count of a database
func (Inspector) Inspect(ctx context.Context, path string) (int, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return 0, err
	}
	defer closeDatabase(db)
	return countNodes(ctx, db)
}
