package export

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"github.com/notargets/vismesh/mesh"
)

const elementsSchema = `
CREATE TABLE IF NOT EXISTS elements (
	element    INTEGER PRIMARY KEY,
	tag        TEXT    NOT NULL,
	nvertices  INTEGER NOT NULL,
	area       REAL    NOT NULL,
	cx         REAL    NOT NULL,
	cy         REAL    NOT NULL,
	value      REAL,
	nneighbors INTEGER,
	wkt        TEXT    NOT NULL
)`

// WriteSQLite stores one row per polygon in the elements table of the
// database at path, replacing rows with the same element index. field and
// EToE, the element adjacency, may be nil; their columns are then NULL.
func WriteSQLite(path string, polygons []mesh.ElementPolygon, field *mesh.ElementField, EToE [][]int) (err error) {
	if field != nil && field.Len() != len(polygons) {
		return fmt.Errorf("field %q has %d values for %d polygons", field.Name, field.Len(), len(polygons))
	}
	if EToE != nil && len(EToE) != len(polygons) {
		return fmt.Errorf("adjacency has %d entries for %d polygons", len(EToE), len(polygons))
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()
	return InsertPolygons(db, polygons, field, EToE)
}

// InsertPolygons writes the polygons into db inside a single transaction
func InsertPolygons(db *sql.DB, polygons []mesh.ElementPolygon, field *mesh.ElementField, EToE [][]int) (err error) {
	if _, err = db.Exec(elementsSchema); err != nil {
		return fmt.Errorf("creating elements table: %w", err)
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO elements
		(element, tag, nvertices, area, cx, cy, value, nneighbors, wkt) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for k, p := range polygons {
		var value sql.NullFloat64
		if field != nil && !math.IsNaN(field.At(k)) {
			value = sql.NullFloat64{Float64: field.At(k), Valid: true}
		}
		var nneighbors sql.NullInt64
		if k < len(EToE) {
			nneighbors = sql.NullInt64{Int64: int64(len(EToE[k])), Valid: true}
		}
		ct := p.Centroid()
		if _, err = stmt.Exec(p.Element, p.Tag.String(), p.NumVertices(), p.Area(),
			ct.X, ct.Y, value, nneighbors, PolygonWKT(p)); err != nil {
			return fmt.Errorf("inserting element %d: %w", p.Element, err)
		}
	}
	return tx.Commit()
}
