package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/viant/namematch/cluster"
	"github.com/viant/namematch/engine"
	"github.com/viant/namematch/index"
	"github.com/viant/namematch/vector"
)

const (
	// CorpusArtifact is the file name of the names+embeddings database.
	CorpusArtifact = "corpus.db"
	// ClusterArtifact is the file name of the centroids+assignments database.
	ClusterArtifact = "clusters.db"
)

// ErrCorrupt indicates persisted artifacts that are missing, unreadable, or
// mutually inconsistent.
var ErrCorrupt = errors.New("store: corrupt or incomplete index artifacts")

// Save persists a built index under dir, creating the directory if needed.
// Each artifact is written to a temporary file and renamed into place.
func Save(ctx context.Context, dir string, ix *index.Index) error {
	if !ix.Built() {
		return index.ErrNotBuilt
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}
	if err := writeArtifact(ctx, dir, CorpusArtifact, func(db *sql.DB) error {
		return writeCorpus(ctx, db, ix)
	}); err != nil {
		return err
	}
	return writeArtifact(ctx, dir, ClusterArtifact, func(db *sql.DB) error {
		return writeClusters(ctx, db, ix)
	})
}

// Load restores an index previously written by Save. It validates the two
// artifacts against each other and returns ErrCorrupt on any inconsistency.
func Load(ctx context.Context, dir string) (*index.Index, error) {
	names, vectors, err := readCorpus(ctx, filepath.Join(dir, CorpusArtifact))
	if err != nil {
		return nil, err
	}
	model, assignments, err := readClusters(ctx, filepath.Join(dir, ClusterArtifact))
	if err != nil {
		return nil, err
	}
	ix, err := index.Restore(names, vectors, model, assignments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return ix, nil
}

// writeArtifact fills a fresh database at a temporary path and renames it
// over the final artifact only once fill succeeds.
func writeArtifact(ctx context.Context, dir, name string, fill func(db *sql.DB) error) error {
	tmp := filepath.Join(dir, name+".tmp")
	final := filepath.Join(dir, name)
	_ = os.Remove(tmp)

	db, err := engine.Open(tmp)
	if err != nil {
		return fmt.Errorf("store: open %s: %w", tmp, err)
	}
	if err := fill(db); err != nil {
		_ = db.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := db.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: rename %s: %w", name, err)
	}
	return nil
}

func writeCorpus(ctx context.Context, db *sql.DB, ix *index.Index) error {
	if err := ensureCorpusSchema(db); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO corpus(pos, name, embedding) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	names := ix.Names()
	vectors := ix.Vectors()
	for pos, name := range names {
		if _, err := stmt.ExecContext(ctx, pos, name, vector.EncodeEmbedding(vectors[pos])); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func writeClusters(ctx context.Context, db *sql.DB, ix *index.Index) error {
	if err := ensureClusterSchema(db); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	model := ix.Model()
	for id, centroid := range model.Centroids() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO centroids(id, vector) VALUES(?, ?)`,
			id, vector.EncodeEmbedding(centroid)); err != nil {
			return err
		}
	}
	for pos, c := range ix.Assignments() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO assignments(pos, cluster) VALUES(?, ?)`, pos, c); err != nil {
			return err
		}
	}
	for key, value := range map[string]int{"clusters": model.K(), "dimensions": model.Dim()} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES(?, ?)`,
			key, strconv.Itoa(value)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func readCorpus(ctx context.Context, path string) ([]string, [][]float32, error) {
	db, err := openArtifact(path)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT pos, name, embedding FROM corpus ORDER BY pos`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	defer rows.Close()

	var names []string
	var vectors [][]float32
	for rows.Next() {
		var pos int
		var name string
		var blob []byte
		if err := rows.Scan(&pos, &name, &blob); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
		}
		if pos != len(names) {
			return nil, nil, fmt.Errorf("%w: %s: corpus positions not contiguous at %d", ErrCorrupt, path, pos)
		}
		vec, err := vector.DecodeEmbedding(blob)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
		}
		names = append(names, name)
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	return names, vectors, nil
}

func readClusters(ctx context.Context, path string) (*cluster.Model, []int, error) {
	db, err := openArtifact(path)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	k, err := readMetaInt(ctx, db, "clusters")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	dim, err := readMetaInt(ctx, db, "dimensions")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}

	centroids, err := readCentroids(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	if len(centroids) != k {
		return nil, nil, fmt.Errorf("%w: %s: %d centroids, meta says %d", ErrCorrupt, path, len(centroids), k)
	}
	model, err := cluster.NewModel(centroids)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	if model.Dim() != dim {
		return nil, nil, fmt.Errorf("%w: %s: centroid dimensionality %d, meta says %d", ErrCorrupt, path, model.Dim(), dim)
	}

	assignments, err := readAssignments(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	return model, assignments, nil
}

func openArtifact(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	db, err := engine.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	return db, nil
}

func readMetaInt(ctx context.Context, db *sql.DB, key string) (int, error) {
	var value string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value); err != nil {
		return 0, fmt.Errorf("meta %s: %w", key, err)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("meta %s: %w", key, err)
	}
	return n, nil
}

func readCentroids(ctx context.Context, db *sql.DB) ([][]float32, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, vector FROM centroids ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centroids [][]float32
	for rows.Next() {
		var id int
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, err
		}
		if id != len(centroids) {
			return nil, fmt.Errorf("centroid ids not contiguous at %d", id)
		}
		vec, err := vector.DecodeEmbedding(blob)
		if err != nil {
			return nil, err
		}
		centroids = append(centroids, vec)
	}
	return centroids, rows.Err()
}

func readAssignments(ctx context.Context, db *sql.DB) ([]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT pos, cluster FROM assignments ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []int
	for rows.Next() {
		var pos, c int
		if err := rows.Scan(&pos, &c); err != nil {
			return nil, err
		}
		if pos != len(assignments) {
			return nil, fmt.Errorf("assignment positions not contiguous at %d", pos)
		}
		assignments = append(assignments, c)
	}
	return assignments, rows.Err()
}
