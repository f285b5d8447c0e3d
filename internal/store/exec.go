package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
)

// Execute runs req after the simulated latency, holding the store mutex for
// the whole read-modify-write. Builders call it; it is exported for callers
// that assemble a Request themselves.
func (s *Store) Execute(ctx context.Context, req Request) (Result, error) {
	if !req.Collection.Valid() {
		return Result{}, fmtUnknown(string(req.Collection))
	}

	s.delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Kind {
	case KindSelect:
		return s.execSelect(ctx, req), nil
	case KindInsert:
		return s.execInsert(ctx, req)
	case KindUpsert:
		return s.execUpsert(ctx, req)
	case KindUpdate:
		return s.execUpdate(ctx, req)
	case KindDelete:
		return s.execDelete(ctx, req)
	}
	return Result{}, fmt.Errorf("unsupported operation %d", req.Kind)
}

// execSelect never fails: unreadable storage reads as an empty collection.
func (s *Store) execSelect(ctx context.Context, req Request) Result {
	if req.Collection == Profiles {
		s.ensureDefaults(ctx)
	}

	rows, _ := s.readRecords(ctx, req.Collection)

	preds := normalizePredicates(req.Predicates)
	matched := make([]Record, 0, len(rows))
	for _, r := range rows {
		if matchAll(r, preds) {
			matched = append(matched, r)
		}
	}

	if req.Order != nil {
		sortRecords(matched, *req.Order)
	}

	return shape(matched, req)
}

func (s *Store) execInsert(ctx context.Context, req Request) (Result, error) {
	rows, err := s.readRecords(ctx, req.Collection)
	if err != nil {
		return Result{}, err
	}

	created := s.timestamp()
	inserted := make([]Record, 0, len(req.Rows))
	for _, in := range req.Rows {
		r := normalizeRecord(in)
		if id, _ := r["id"].(string); id == "" {
			r["id"] = s.newID()
		}
		r["created_at"] = created
		inserted = append(inserted, r)
	}

	rows = append(rows, inserted...)
	if err := s.write(ctx, map[string]any{req.Collection.storageKey(): rows}); err != nil {
		return Result{}, err
	}

	s.logger.Debug(ctx, "records inserted", "collection", req.Collection, "count", len(inserted))
	return shape(inserted, req), nil
}

func (s *Store) execUpsert(ctx context.Context, req Request) (Result, error) {
	rows, err := s.readRecords(ctx, req.Collection)
	if err != nil {
		return Result{}, err
	}

	index := make(map[string]int, len(rows))
	for i, r := range rows {
		if id := r.String("id"); id != "" {
			index[id] = i
		}
	}

	created := s.timestamp()
	for _, in := range req.Rows {
		r := normalizeRecord(in)
		id := r.String("id")
		if i, ok := index[id]; ok && id != "" {
			merged := rows[i].Clone()
			for k, v := range r {
				merged[k] = v
			}
			rows[i] = merged
			continue
		}
		if id == "" {
			id = s.newID()
			r["id"] = id
		}
		if _, ok := r["created_at"]; !ok {
			r["created_at"] = created
		}
		index[id] = len(rows)
		rows = append(rows, r)
	}

	if err := s.write(ctx, map[string]any{req.Collection.storageKey(): rows}); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (s *Store) execUpdate(ctx context.Context, req Request) (Result, error) {
	rows, err := s.readRecords(ctx, req.Collection)
	if err != nil {
		return Result{}, err
	}

	updates := normalizeRecord(req.Updates)

	preds := normalizePredicates(req.Predicates)
	var updated []Record
	for i, r := range rows {
		if !matchAll(r, preds) {
			continue
		}
		merged := r.Clone()
		for k, v := range updates {
			merged[k] = v
		}
		rows[i] = merged
		updated = append(updated, merged)
	}

	if len(updated) > 0 {
		if err := s.write(ctx, map[string]any{req.Collection.storageKey(): rows}); err != nil {
			return Result{}, err
		}
	}

	if !req.Returning {
		return Result{Single: req.Single}, nil
	}
	return shape(updated, req), nil
}

func (s *Store) execDelete(ctx context.Context, req Request) (Result, error) {
	rows, err := s.readRecords(ctx, req.Collection)
	if err != nil {
		return Result{}, err
	}

	preds := normalizePredicates(req.Predicates)
	var removed []Record
	kept := make([]Record, 0, len(rows))
	for _, r := range rows {
		if !matchAll(r, preds) {
			kept = append(kept, r)
			continue
		}
		if models.IsProtectedRecord(r.String("username"), r.String("id")) {
			s.logger.Warn(ctx, "refused to delete protected record", "collection", req.Collection, "id", r["id"])
			return Result{}, common.ErrProtectedAccount
		}
		removed = append(removed, r)
	}

	if len(removed) > 0 {
		if err := s.write(ctx, map[string]any{req.Collection.storageKey(): kept}); err != nil {
			return Result{}, err
		}
		s.logger.Info(ctx, "records deleted", "collection", req.Collection, "count", len(removed))
	}

	return Result{Data: removed}, nil
}

// shape applies the projection and single flag of req to rs.
func shape(rs []Record, req Request) Result {
	res := Result{Single: req.Single}
	if req.Single && len(rs) > 1 {
		rs = rs[:1]
	}
	res.Data = make([]Record, 0, len(rs))
	for _, r := range rs {
		res.Data = append(res.Data, project(r, req.Columns))
	}
	return res
}
