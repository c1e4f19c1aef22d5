// SPDX-License-Identifier: MIT

package meshio

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/mesh"
)

// migrations holds the archive schema: snapshot, position and relation tables.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Relation names stored in mesh_relations.relation.
const (
	relFaceVertices = "face_vertices"
	relFaceCells    = "face_cells"
	relCellFaces    = "cell_faces"
	relCellVertices = "cell_vertices"
)

// Snapshot describes one archived mesh. Only the vertex, face and cell
// counts of Stats are stored.
type Snapshot struct {
	ID          string
	CreatedAtNs int64
	Stats       mesh.Stats
}

type sqliteAdapter struct {
	opts Options
}

func (*sqliteAdapter) Format() Format { return SQLite }

// openArchive opens path and migrates it to the latest schema version.
func openArchive(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// migrateUp applies pending migrations. The migrate instance is not closed
// because that would close db.
func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	return nil
}

// migrateLogger routes migrate's messages to the trace stream.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	logger.Tracef("migrate: "+format, v...)
}

func (migrateLogger) Verbose() bool { return meshlog.Enabled(meshlog.Trace) }

// Save appends m to the archive at path as a new snapshot.
func (a *sqliteAdapter) Save(path string, m *mesh.Mesh) error {
	if m == nil {
		return fmt.Errorf("Save: %w", mesh.ErrNilMesh)
	}
	db, err := openArchive(path)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	defer db.Close()

	snap, err := insertSnapshot(db, m)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	logger.Diagf("archived snapshot %s to %q", snap.ID, path)

	return nil
}

func insertSnapshot(db *sql.DB, m *mesh.Mesh) (Snapshot, error) {
	snap := Snapshot{
		ID:          uuid.New().String(),
		CreatedAtNs: time.Now().UnixNano(),
		Stats:       m.Stats(),
	}
	tx, err := db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO mesh_snapshots (snapshot_id, created_at_ns, vertex_count, face_count, cell_count)
		VALUES (?, ?, ?, ?, ?)
	`, snap.ID, snap.CreatedAtNs, snap.Stats.Vertices, snap.Stats.Faces, snap.Stats.Cells)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}

	posStmt, err := tx.Prepare(`INSERT INTO mesh_positions (snapshot_id, idx, x, y, z) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("prepare positions: %w", err)
	}
	defer posStmt.Close()
	for i, p := range m.Positions {
		if _, err := posStmt.Exec(snap.ID, i, p.X, p.Y, p.Z); err != nil {
			return Snapshot{}, fmt.Errorf("insert position %d: %w", i, err)
		}
	}

	relStmt, err := tx.Prepare(`INSERT INTO mesh_relations (snapshot_id, relation, row_idx, ids_json) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("prepare relations: %w", err)
	}
	defer relStmt.Close()
	for _, rel := range []struct {
		name string
		rows [][]int
	}{
		{relFaceVertices, m.FaceVertices},
		{relFaceCells, m.FaceCells},
		{relCellFaces, m.CellFaces},
		{relCellVertices, m.CellVertices},
	} {
		for r, ids := range rel.rows {
			if ids == nil {
				ids = []int{}
			}
			data, err := json.Marshal(ids)
			if err != nil {
				return Snapshot{}, fmt.Errorf("encode %s row %d: %w", rel.name, r, err)
			}
			if _, err := relStmt.Exec(snap.ID, rel.name, r, string(data)); err != nil {
				return Snapshot{}, fmt.Errorf("insert %s row %d: %w", rel.name, r, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit: %w", err)
	}

	return snap, nil
}

// openExistingArchive is openArchive for read paths: a missing file is
// reported as ErrNoSnapshot instead of being created.
func openExistingArchive(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoSnapshot)
		}
		return nil, err
	}

	return openArchive(path)
}

// Load reads the most recently saved snapshot. A missing archive file is
// ErrNoSnapshot and is not created.
func (a *sqliteAdapter) Load(path string) (*mesh.Mesh, error) {
	db, err := openExistingArchive(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer db.Close()

	var id string
	err = db.QueryRow(`SELECT snapshot_id FROM mesh_snapshots ORDER BY seq DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("Load: %s: %w", path, ErrNoSnapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("Load: latest snapshot: %w", err)
	}

	m, err := readSnapshot(db, id)
	if err != nil {
		return nil, fmt.Errorf("Load: snapshot %s: %w", id, err)
	}
	if err := finishSnapshot(m, a.opts); err != nil {
		return nil, fmt.Errorf("Load: snapshot %s: %w", id, err)
	}

	return m, nil
}

// finishSnapshot validates a decoded snapshot and derives cell relations
// when it carries face cells but no cell faces.
func finishSnapshot(m *mesh.Mesh, o Options) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(m.CellFaces) == 0 && len(m.FaceCells) > 0 {
		return deriveAfterLoad(m, o)
	}

	return nil
}

// ListSnapshots returns the snapshots archived at path, oldest first. A
// missing archive file has no snapshots and is not created.
func ListSnapshots(path string) ([]Snapshot, error) {
	db, err := openExistingArchive(path)
	if errors.Is(err, ErrNoSnapshot) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ListSnapshots: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT snapshot_id, created_at_ns, vertex_count, face_count, cell_count
		FROM mesh_snapshots
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ListSnapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.CreatedAtNs, &s.Stats.Vertices, &s.Stats.Faces, &s.Stats.Cells); err != nil {
			return nil, fmt.Errorf("ListSnapshots: scan: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// LoadSnapshot reads the snapshot with the given id from the archive at path.
// It validates and derives exactly like loading the latest snapshot through
// Load; opts are the same options Open accepts.
func LoadSnapshot(path, id string, opts ...Option) (*mesh.Mesh, error) {
	db, err := openExistingArchive(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSnapshot: %w", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM mesh_snapshots WHERE snapshot_id = ?`, id).Scan(&n); err != nil {
		return nil, fmt.Errorf("LoadSnapshot: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("LoadSnapshot: %s: %w", id, ErrNoSnapshot)
	}
	m, err := readSnapshot(db, id)
	if err != nil {
		return nil, fmt.Errorf("LoadSnapshot: %w", err)
	}
	if err := finishSnapshot(m, newOptions(opts)); err != nil {
		return nil, fmt.Errorf("LoadSnapshot: snapshot %s: %w", id, err)
	}

	return m, nil
}

func readSnapshot(db *sql.DB, id string) (*mesh.Mesh, error) {
	m := mesh.New()

	rows, err := db.Query(`SELECT x, y, z FROM mesh_positions WHERE snapshot_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	for rows.Next() {
		var p r3.Vec
		if err := rows.Scan(&p.X, &p.Y, &p.Z); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan position: %w", err)
		}
		m.Positions = append(m.Positions, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Query(`SELECT relation, ids_json FROM mesh_relations WHERE snapshot_id = ? ORDER BY relation, row_idx`, id)
	if err != nil {
		return nil, fmt.Errorf("query relations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rel, data string
		if err := rows.Scan(&rel, &data); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		var ids []int
		if err := json.Unmarshal([]byte(data), &ids); err != nil {
			return nil, fmt.Errorf("decode %s: %w", rel, err)
		}
		switch rel {
		case relFaceVertices:
			m.FaceVertices = append(m.FaceVertices, ids)
		case relFaceCells:
			m.FaceCells = append(m.FaceCells, ids)
		case relCellFaces:
			m.CellFaces = append(m.CellFaces, ids)
		case relCellVertices:
			m.CellVertices = append(m.CellVertices, ids)
		default:
			return nil, fmt.Errorf("relation %q: %w", rel, ErrMalformed)
		}
	}

	return m, rows.Err()
}
