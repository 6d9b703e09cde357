package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when no document has the requested id
	ErrNotFound = errors.New("document not found")

	// ErrConflict is returned when inserting an id that already exists
	ErrConflict = errors.New("document already exists")

	// ErrUnknownCollection is returned for collections the backend does not serve
	ErrUnknownCollection = errors.New("unknown collection")
)

// tables maps REST collections to their table
var tables = map[string]string{
	"users":     "users",
	"projects":  "projects",
	"taskLists": "task_lists",
	"tasks":     "tasks",
	"quotes":    "quotes",
}

// Document is one JSON object of a collection
type Document map[string]any

// ID returns the document id
func (d Document) ID() string {
	switch v := d["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// clone returns a shallow copy of d
func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

type documentRow struct {
	ID       string `db:"id"`
	Data     string `db:"data"`
	Position int64  `db:"position"`
}

// Documents stores collections in SQL tables of (id, data, position)
type Documents struct {
	db *sqlx.DB
}

// NewDocuments creates a document store on db
func NewDocuments(db *sqlx.DB) *Documents {
	return &Documents{db: db}
}

func tableFor(collection string) (string, error) {
	table, ok := tables[collection]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return table, nil
}

func decodeRow(r documentRow) (Document, error) {
	doc := Document{}
	if err := json.Unmarshal([]byte(r.Data), &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.ID, err)
	}
	doc["id"] = r.ID
	return doc, nil
}

// List returns every document of collection in insertion order
func (d *Documents) List(ctx context.Context, collection string) ([]Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	var rows []documentRow
	query := fmt.Sprintf("SELECT id, data, position FROM %s ORDER BY position, id", table)
	if err := d.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(rows))
	for _, r := range rows {
		doc, err := decodeRow(r)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Get returns the document with id
func (d *Documents) Get(ctx context.Context, collection, id string) (Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	var r documentRow
	query := d.db.Rebind(fmt.Sprintf("SELECT id, data, position FROM %s WHERE id = ?", table))
	if err := d.db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeRow(r)
}

// Insert stores a new document. The document must carry an id.
func (d *Documents) Insert(ctx context.Context, collection string, doc Document) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	if _, err := d.Get(ctx, collection, doc.ID()); err == nil {
		return ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	query := d.db.Rebind(fmt.Sprintf("INSERT INTO %s (id, data, position) VALUES (?, ?, ?)", table))
	_, err = d.db.ExecContext(ctx, query, doc.ID(), string(data), time.Now().UnixNano())
	return err
}

// Update overwrites the stored document with the same id
func (d *Documents) Update(ctx context.Context, collection string, doc Document) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	query := d.db.Rebind(fmt.Sprintf("UPDATE %s SET data = ? WHERE id = ?", table))
	res, err := d.db.ExecContext(ctx, query, string(data), doc.ID())
	if err != nil {
		return err
	}
	return expectRow(res)
}

// Delete removes the document with id
func (d *Documents) Delete(ctx context.Context, collection, id string) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	query := d.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table))
	res, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
