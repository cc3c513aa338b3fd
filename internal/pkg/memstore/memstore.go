// Package memstore builds the in-memory database that backs both verticals.
//
// Every table stores rows keyed by the canonical string form of a UUID under
// the unique index IndexID. Writers are serialised by memdb's single-writer
// transactions; readers see immutable snapshots and never block writers, so
// stored rows must be treated as read-only and replaced, never mutated.
package memstore

import (
	"fmt"

	"github.com/hashicorp/go-memdb"
)

const (
	TableBeer     = "beer"
	TableCustomer = "customer"

	// IndexID is the primary key index of every table.
	IndexID = "id"
)

// Schema returns the database schema. Rows must expose a string field named ID.
func Schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			TableBeer:     idTable(TableBeer),
			TableCustomer: idTable(TableCustomer),
		},
	}
}

func idTable(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			IndexID: {
				Name:    IndexID,
				Unique:  true,
				Indexer: &memdb.StringFieldIndex{Field: "ID"},
			},
		},
	}
}

// New creates an empty database with the service schema.
func New() (*memdb.MemDB, error) {
	schema := Schema()
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("validating in-memory schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("initializing in-memory database: %w", err)
	}
	return db, nil
}
