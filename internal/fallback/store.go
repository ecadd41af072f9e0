package fallback

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/hashicorp/go-memdb"
)

const (
	indexID     = "id"
	indexRecord = "record"
	indexStatus = "status"
)

// Dataset represents the sample records of one entity type
type Dataset struct {
	// Table is the unique table name, e.g. 'cattle/animals'
	Table string

	// Records holds the sample records in display order
	Records []any

	// IDField and StatusField name the JSON fields used to index the records
	IDField     string
	StatusField string
}

type entry struct {
	Key      string
	RecordID string
	Status   string
	Value    any
}

// Store holds the sample records of every entity type in an indexed in-memory database.
// It is populated once on creation and is read-only afterwards.
type Store struct {
	db     *memdb.MemDB
	tables map[string]Dataset
}

// New creates a new store out of the given datasets
func New(datasets ...Dataset) (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: make(map[string]*memdb.TableSchema, len(datasets)),
	}
	tables := make(map[string]Dataset, len(datasets))
	for _, dataset := range datasets {
		if _, ok := tables[dataset.Table]; ok {
			return nil, fmt.Errorf("duplicate fallback table %q", dataset.Table)
		}
		tables[dataset.Table] = dataset
		schema.Tables[dataset.Table] = tableSchema(dataset.Table)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}

	txn := db.Txn(true)
	defer txn.Abort()
	for _, dataset := range datasets {
		for i, rec := range dataset.Records {
			if err := txn.Insert(dataset.Table, newEntry(dataset, i, rec)); err != nil {
				return nil, err
			}
		}
	}
	txn.Commit()

	return &Store{
		db:     db,
		tables: tables,
	}, nil
}

func tableSchema(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			indexID: {
				Name:         indexID,
				Unique:       true,
				AllowMissing: false,
				Indexer:      &memdb.StringFieldIndex{Field: "Key"},
			},
			indexRecord: {
				Name:         indexRecord,
				Unique:       false,
				AllowMissing: true,
				Indexer:      &memdb.StringFieldIndex{Field: "RecordID"},
			},
			indexStatus: {
				Name:         indexStatus,
				Unique:       false,
				AllowMissing: true,
				Indexer:      &memdb.StringFieldIndex{Field: "Status", Lowercase: true},
			},
		},
	}
}

func newEntry(dataset Dataset, position int, rec any) *entry {
	obj := &entry{
		// Zero-padded so the primary index iterates in display order
		Key:   fmt.Sprintf("%08d", position),
		Value: rec,
	}
	if value, ok := filter.FieldValue(rec, dataset.IDField); ok {
		obj.RecordID = fmt.Sprint(value)
	}
	if value, ok := filter.FieldValue(rec, dataset.StatusField); ok {
		obj.Status = fmt.Sprint(value)
	}
	return obj
}

// ErrUnknownTable is returned when querying a table no dataset was registered for
var ErrUnknownTable = errors.New("unknown fallback table")

// Query returns the records of a table, optionally narrowed down to a single status using the status index.
// An empty status returns every record.
func (store *Store) Query(table, status string) ([]any, error) {
	if _, ok := store.tables[table]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	txn := store.db.Txn(false)
	var it memdb.ResultIterator
	var err error
	if status == "" {
		it, err = txn.Get(table, indexID)
	} else {
		it, err = txn.Get(table, indexStatus, status)
	}
	if err != nil {
		return nil, err
	}

	var records []any
	for obj := it.Next(); obj != nil; obj = it.Next() {
		records = append(records, obj.(*entry))
	}
	sortEntries(records)

	values := make([]any, 0, len(records))
	for _, obj := range records {
		values = append(values, obj.(*entry).Value)
	}
	return values, nil
}

// Lookup retrieves a single sample record by its ID
func (store *Store) Lookup(table, id string) (any, error) {
	if _, ok := store.tables[table]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	txn := store.db.Txn(false)
	obj, err := txn.First(table, indexRecord, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*entry).Value, nil
}

// Dataset returns the dataset registered for a table
func (store *Store) Dataset(table string) (Dataset, bool) {
	dataset, ok := store.tables[table]
	return dataset, ok
}

func sortEntries(entries []any) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].(*entry).Key < entries[j].(*entry).Key
	})
}
