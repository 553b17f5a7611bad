// Upload history, metadata only, the payload is never stored
package history

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"xorm.io/xorm"
	"xorm.io/xorm/names"

	"sirherobrine23.com.br/go-bds/imagegen/modules/logger"
)

const (
	DefaultDriver     = "sqlite3"
	DefaultConnection = "./imagegen.db"
	DefaultLimit      = 20
)

var ErrClosed = errors.New("history store closed")

type Status string

const (
	Succeeded Status = "succeeded"
	Failed    Status = "failed"
)

// Record of one upload attempt
type Record struct {
	ID         string    `json:"id" xorm:"'id' pk varchar(36)"`
	Filename   string    `json:"filename" xorm:"'filename' notnull"`
	Repository string    `json:"repository" xorm:"'repository' notnull"`
	Branch     string    `json:"branch" xorm:"'branch'"`
	Path       string    `json:"path" xorm:"'path'"`
	Strategy   string    `json:"strategy" xorm:"'strategy'"`
	Size       int64     `json:"size" xorm:"'size'"`
	Status     Status    `json:"status" xorm:"'status' notnull"`
	Error      string    `json:"error,omitempty" xorm:"'error' text"`
	CreatedAt  time.Time `json:"created_at" xorm:"'created_at' index"`
}

func (Record) TableName() string { return "upload_history" }

// Store keeps upload records in any xorm supported database
type Store struct {
	engine *xorm.Engine
}

// Open database and create upload_history table if not exists
func Open(driver, connection string, log *slog.Logger, showSQL bool) (*Store, error) {
	if driver == "" {
		driver = DefaultDriver
	}
	if connection == "" {
		connection = DefaultConnection
	}

	engine, err := xorm.NewEngine(driver, connection)
	if err != nil {
		return nil, err
	}
	engine.SetMapper(names.SameMapper{})
	if log != nil {
		engine.SetLogger(logger.NewXORMLogger(log, showSQL))
	}
	engine.ShowSQL(showSQL)

	if err := engine.Sync(new(Record)); err != nil {
		engine.Close()
		return nil, err
	}
	return &Store{engine: engine}, nil
}

// Add record, ID and CreatedAt are filled when empty
func (store *Store) Add(ctx context.Context, rec *Record) error {
	if store == nil || store.engine == nil {
		return ErrClosed
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := store.engine.Context(ctx).InsertOne(rec)
	return err
}

// Recent return last records, newest first
func (store *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if store == nil || store.engine == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	records := []Record{}
	if err := store.engine.Context(ctx).Desc("created_at").Limit(limit).Find(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (store *Store) Close() error {
	if store == nil || store.engine == nil {
		return nil
	}
	err := store.engine.Close()
	store.engine = nil
	return err
}
