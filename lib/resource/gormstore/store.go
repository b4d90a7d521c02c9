// Package gormstore persists resource models through GORM. Tables are
// created from the model's properties and rows travel as column maps, so no
// Go struct per model is needed.
package gormstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/donutnomad/stampkit/lib/errors/errdefer"
	"github.com/donutnomad/stampkit/lib/resource"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

var _ resource.Adapter = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context, m *resource.Model) (err error) {
	defer errdefer.Mark(&err, resource.ErrPersistence)

	db := s.db.WithContext(ctx)
	d := dialectOf(db)

	columns := make([]string, 0, len(m.Properties()))
	for _, p := range m.Properties() {
		columns = append(columns, db.Statement.Quote(p.Name)+" "+d.column(p))
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", db.Statement.Quote(m.Name()), strings.Join(columns, ", "))

	if err := db.Exec(ddl).Error; err != nil {
		return errors.Wrapf(err, "gormstore: migrate %s", m.Name())
	}
	return nil
}

func (s *Store) Create(ctx context.Context, m *resource.Model, attrs map[string]any) (key any, err error) {
	defer errdefer.Mark(&err, resource.ErrPersistence)

	kp, ok := m.Key()
	if !ok {
		return nil, errors.Wrapf(resource.ErrMissingKey, "gormstore: create %s", m.Name())
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(m.Name()).Create(attrs).Error; err != nil {
			return err
		}
		if kp.Type != resource.TypeSerial {
			key = attrs[kp.Name]
			return nil
		}
		// 同一事务内读取，保证是同一条连接上的自增值
		var id int64
		if err := tx.Raw(dialectOf(tx).lastInsertID).Scan(&id).Error; err != nil {
			return err
		}
		key = id
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "gormstore: create %s", m.Name())
	}
	return key, nil
}

func (s *Store) Update(ctx context.Context, m *resource.Model, key any, changes map[string]any) (err error) {
	defer errdefer.MarkIf(&err, notFound(false), resource.ErrPersistence)

	where, err := keyClause(m, key)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Table(m.Name()).Where(where).Updates(changes)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "gormstore: update %s %v", m.Name(), key)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(resource.ErrNotFound, "gormstore: update %s %v", m.Name(), key)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, m *resource.Model, key any) (row map[string]any, err error) {
	defer errdefer.MarkIf(&err, notFound(false), resource.ErrPersistence)
	defer errdefer.MarkIfIs(&err, gorm.ErrRecordNotFound, resource.ErrNotFound)

	where, err := keyClause(m, key)
	if err != nil {
		return nil, err
	}

	row = map[string]any{}
	if err := s.db.WithContext(ctx).Table(m.Name()).Where(where).Take(&row).Error; err != nil {
		return nil, errors.Wrapf(err, "gormstore: get %s %v", m.Name(), key)
	}
	return row, nil
}

func keyClause(m *resource.Model, key any) (clause.Expression, error) {
	kp, ok := m.Key()
	if !ok {
		return nil, errors.Wrapf(resource.ErrMissingKey, "gormstore: %s", m.Name())
	}
	return clause.Eq{Column: clause.Column{Table: m.Name(), Name: kp.Name}, Value: key}, nil
}

func notFound(want bool) func(error) bool {
	return func(err error) bool {
		return errors.Is(err, resource.ErrNotFound) == want
	}
}
