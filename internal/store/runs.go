package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ynishi/eguicha/internal/flow"
)

// SaveRun persists a project analysis as a new run and returns its ID.
// Flows and mutations keep their extraction order via ordinals.
func (s *Store) SaveRun(root string, res *flow.ProjectAnalysis) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, root, created_at, file_count) VALUES (?, ?, ?, ?)",
		runID, root, time.Now(), len(res.Files),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, fa := range res.Files {
		fileRes, err := tx.Exec(
			"INSERT INTO files (run_id, path, flow_count) VALUES (?, ?, ?)",
			runID, fa.Path, len(fa.Flows),
		)
		if err != nil {
			return "", fmt.Errorf("insert file %s: %w", fa.Path, err)
		}
		fileID, err := fileRes.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("last insert id: %w", err)
		}

		for i, fl := range fa.Flows {
			flowRes, err := tx.Exec(
				`INSERT INTO flows (file_id, ordinal, context, element_type, label, response_var, action_type, source)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				fileID, i, fl.Context, fl.UiElement.ElementType,
				nullable(fl.UiElement.Label), nullable(fl.UiElement.ResponseVar),
				fl.Action.ActionType, fl.Action.Source,
			)
			if err != nil {
				return "", fmt.Errorf("insert flow: %w", err)
			}
			flowID, err := flowRes.LastInsertId()
			if err != nil {
				return "", fmt.Errorf("last insert id: %w", err)
			}
			for j, m := range fl.StateMutations {
				_, err := tx.Exec(
					"INSERT INTO mutations (flow_id, ordinal, target, mutation_type) VALUES (?, ?, ?, ?)",
					flowID, j, m.Target, m.MutationType,
				)
				if err != nil {
					return "", fmt.Errorf("insert mutation: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// Runs lists all runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT id, root, created_at, file_count FROM runs ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Root, &r.CreatedAt, &r.FileCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunByID fetches a single run. Returns (nil, nil) when absent.
func (s *Store) RunByID(runID string) (*Run, error) {
	r := &Run{}
	err := s.db.QueryRow(
		"SELECT id, root, created_at, file_count FROM runs WHERE id = ?", runID,
	).Scan(&r.ID, &r.Root, &r.CreatedAt, &r.FileCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("run by id: %w", err)
	}
	return r, nil
}

// FlowsByRun returns a run's flows with their mutations, in extraction
// order (file insertion order, then flow ordinal).
func (s *Store) FlowsByRun(runID string) ([]FlowRecord, error) {
	rows, err := s.db.Query(
		`SELECT flows.id, flows.file_id, files.path, flows.ordinal, flows.context,
		        flows.element_type, flows.label, flows.response_var,
		        flows.action_type, flows.source
		 FROM flows JOIN files ON flows.file_id = files.id
		 WHERE files.run_id = ?
		 ORDER BY flows.file_id, flows.ordinal`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query flows: %w", err)
	}
	defer rows.Close()

	var flows []FlowRecord
	for rows.Next() {
		var f FlowRecord
		var label, responseVar sql.NullString
		err := rows.Scan(
			&f.ID, &f.FileID, &f.Path, &f.Ordinal, &f.Context,
			&f.ElementType, &label, &responseVar, &f.ActionType, &f.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("scan flow: %w", err)
		}
		f.Label = nullableString(label)
		f.ResponseVar = nullableString(responseVar)
		flows = append(flows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range flows {
		muts, err := s.mutationsByFlow(flows[i].ID)
		if err != nil {
			return nil, err
		}
		flows[i].Mutations = muts
	}
	return flows, nil
}

func (s *Store) mutationsByFlow(flowID int64) ([]MutationRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, flow_id, ordinal, target, mutation_type FROM mutations WHERE flow_id = ? ORDER BY ordinal",
		flowID,
	)
	if err != nil {
		return nil, fmt.Errorf("query mutations: %w", err)
	}
	defer rows.Close()

	var muts []MutationRecord
	for rows.Next() {
		var m MutationRecord
		if err := rows.Scan(&m.ID, &m.FlowID, &m.Ordinal, &m.Target, &m.MutationType); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		muts = append(muts, m)
	}
	return muts, rows.Err()
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
