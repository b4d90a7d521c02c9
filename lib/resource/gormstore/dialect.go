package gormstore

import (
	"github.com/donutnomad/stampkit/lib/resource"
	"gorm.io/gorm"
)

type dialect struct {
	types        map[resource.Type]string
	serial       string
	lastInsertID string
}

var dialects = map[string]dialect{
	"sqlite": {
		types: map[resource.Type]string{
			resource.TypeString:   "TEXT",
			resource.TypeInteger:  "INTEGER",
			resource.TypeBoolean:  "NUMERIC",
			resource.TypeDateTime: "DATETIME",
			resource.TypeDate:     "DATE",
			resource.TypeUUID:     "TEXT",
		},
		serial:       "INTEGER PRIMARY KEY AUTOINCREMENT",
		lastInsertID: "SELECT last_insert_rowid()",
	},
	"mysql": {
		types: map[resource.Type]string{
			resource.TypeString:   "VARCHAR(255)",
			resource.TypeInteger:  "BIGINT",
			resource.TypeBoolean:  "BOOLEAN",
			resource.TypeDateTime: "DATETIME(6)",
			resource.TypeDate:     "DATE",
			resource.TypeUUID:     "CHAR(36)",
		},
		serial:       "BIGINT AUTO_INCREMENT PRIMARY KEY",
		lastInsertID: "SELECT LAST_INSERT_ID()",
	},
	"postgres": {
		types: map[resource.Type]string{
			resource.TypeString:   "TEXT",
			resource.TypeInteger:  "BIGINT",
			resource.TypeBoolean:  "BOOLEAN",
			resource.TypeDateTime: "TIMESTAMPTZ",
			resource.TypeDate:     "DATE",
			resource.TypeUUID:     "UUID",
		},
		serial:       "BIGSERIAL PRIMARY KEY",
		lastInsertID: "SELECT lastval()",
	},
}

// dialectOf falls back to sqlite types for unknown dialectors.
func dialectOf(db *gorm.DB) dialect {
	if d, ok := dialects[db.Dialector.Name()]; ok {
		return d
	}
	return dialects["sqlite"]
}

func (d dialect) column(p resource.Property) string {
	if p.Type == resource.TypeSerial {
		return d.serial
	}
	def := d.types[p.Type]
	if p.Key {
		def += " PRIMARY KEY"
	}
	if p.Required {
		def += " NOT NULL"
	}
	return def
}
