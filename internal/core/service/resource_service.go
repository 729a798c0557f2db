package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.ResourceService = (*ResourceService)(nil)

// ResourceService is generic CRUD over the backend collections. Records go
// out through the resource's table in wire form and come back canonical.
type ResourceService struct {
	backend ports.Backend
	audit   auditor
	log     zerolog.Logger
}

func NewResourceService(backend ports.Backend, audit ports.AuditPublisher, log zerolog.Logger) *ResourceService {
	return &ResourceService{backend: backend, audit: auditor{pub: audit}, log: log}
}

func (s *ResourceService) resource(name string) (Resource, error) {
	r, ok := ResourceByName(name)
	if !ok {
		return Resource{}, fmt.Errorf("resource %q: %w", name, domain.ErrNotFound)
	}
	return r, nil
}

// List returns the whole collection. An error always means the fetch
// failed; an empty slice means the collection is empty.
func (s *ResourceService) List(ctx context.Context, actor domain.Actor, name string) ([]mapping.Record, error) {
	r, err := s.resource(name)
	if err != nil {
		return nil, err
	}
	if actor.Token == "" {
		return nil, domain.ErrUnauthenticated
	}
	recs, err := fetchList(ctx, s.backend, actor.Token, r.Collection, r.Table)
	if err != nil {
		s.log.Warn().Err(err).Str("resource", name).Msg("list failed")
		return nil, err
	}
	return recs, nil
}

func (s *ResourceService) Get(ctx context.Context, actor domain.Actor, name string, id int64) (mapping.Record, error) {
	r, err := s.resource(name)
	if err != nil {
		return nil, err
	}
	if actor.Token == "" {
		return nil, domain.ErrUnauthenticated
	}
	resp, err := s.backend.Do(ctx, http.MethodGet, itemPath(r.Collection, id), actor.Token, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.Table.Entity, id, err)
	}
	rec, err := single(r.Table, resp)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("get %s %d: %w", r.Table.Entity, id, domain.ErrNotFound)
	}
	return rec, nil
}

// Create sends rec without an id; the backend assigns identity.
func (s *ResourceService) Create(ctx context.Context, actor domain.Actor, name string, rec mapping.Record) (mapping.Record, error) {
	r, err := s.resource(name)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, r.Edit); err != nil {
		return nil, err
	}

	wire := r.Table.ToWire(rec)
	delete(wire, r.Table.Wire("id"))

	resp, err := s.backend.Do(ctx, http.MethodPost, r.Collection, actor.Token, wire)
	var out mapping.Record
	if err == nil {
		out, err = single(r.Table, resp)
	}
	s.audit.record(actor, r.Edit, r.Table.Entity, recordID(out), err)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.Table.Entity, err)
	}
	return out, nil
}

// Update applies the fields in rec over the current record and sends the
// merged record back; fields the client did not send keep their value.
func (s *ResourceService) Update(ctx context.Context, actor domain.Actor, name string, id int64, rec mapping.Record) (mapping.Record, error) {
	r, err := s.resource(name)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, r.Edit); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, actor, name, id)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.Table.Entity, id, err)
	}
	body := r.Table.Overlay(current, rec)
	body["id"] = id

	resp, err := s.backend.Do(ctx, http.MethodPut, itemPath(r.Collection, id), actor.Token, r.Table.ToWire(body))
	var out mapping.Record
	if err == nil {
		out, err = single(r.Table, resp)
	}
	s.audit.record(actor, r.Edit, r.Table.Entity, id, err)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.Table.Entity, id, err)
	}
	return out, nil
}

func (s *ResourceService) Delete(ctx context.Context, actor domain.Actor, name string, id int64) error {
	r, err := s.resource(name)
	if err != nil {
		return err
	}
	if err := authorize(actor, r.Delete); err != nil {
		return err
	}

	_, err = s.backend.Do(ctx, http.MethodDelete, itemPath(r.Collection, id), actor.Token, nil)
	s.audit.record(actor, r.Delete, r.Table.Entity, id, err)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.Table.Entity, id, err)
	}
	return nil
}
