package service

import (
	"context"
	"errors"
	"time"

	"edumanage_backend/internals/databases/docstore"
	"edumanage_backend/internals/features/teacherreqs/model"
	"edumanage_backend/internals/helpers/errs"
)

type TeacherRequestService struct {
	requests docstore.Collection
}

func NewTeacherRequestService(store docstore.Store) *TeacherRequestService {
	return &TeacherRequestService{requests: store.Collection(docstore.ColTeacherRequests)}
}

/* ======================= CREATE ======================= */

func (s *TeacherRequestService) Submit(ctx context.Context, email, name string) (*model.TeacherRequestModel, error) {
	if email == "" {
		return nil, errs.Validation("email is required")
	}
	req := &model.TeacherRequestModel{
		Email:       email,
		Name:        name,
		Status:      model.StatusPending,
		RequestedAt: time.Now(),
	}
	id, err := s.requests.InsertOne(ctx, req)
	if err != nil {
		return nil, errs.Unavailable("insert teacher request", err)
	}
	oid, _ := docstore.ParseID(id)
	req.ID = oid
	return req, nil
}

/* ======================= READS ======================= */

func (s *TeacherRequestService) GetByID(ctx context.Context, id string) (*model.TeacherRequestModel, error) {
	if _, err := docstore.ParseID(id); err != nil {
		return nil, errs.Validation("malformed request id %q", id)
	}
	var req model.TeacherRequestModel
	err := s.requests.FindByID(ctx, id, &req)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, errs.NotFound("teacher request %s not found", id)
	}
	if err != nil {
		return nil, errs.Unavailable("find teacher request", err)
	}
	return &req, nil
}

func (s *TeacherRequestService) List(ctx context.Context) ([]model.TeacherRequestModel, error) {
	var out []model.TeacherRequestModel
	if err := s.requests.Find(ctx, docstore.M{}, &out); err != nil {
		return nil, errs.Unavailable("list teacher requests", err)
	}
	return out, nil
}

func (s *TeacherRequestService) ListPending(ctx context.Context) ([]model.TeacherRequestModel, error) {
	var out []model.TeacherRequestModel
	if err := s.requests.Find(ctx, docstore.M{"status": model.StatusPending}, &out); err != nil {
		return nil, errs.Unavailable("list pending teacher requests", err)
	}
	return out, nil
}

/* ======================= STATE MACHINE ======================= */

// MarkAccepted: pending → accepted, precondition di filter. matched=false
// berarti request sudah resolved (conflict di level coordinator).
func (s *TeacherRequestService) MarkAccepted(ctx context.Context, id string) (bool, error) {
	return s.transition(ctx, id, model.StatusAccepted)
}

// MarkRejected: pending → rejected, terminal juga.
func (s *TeacherRequestService) MarkRejected(ctx context.Context, id string) (bool, error) {
	return s.transition(ctx, id, model.StatusRejected)
}

func (s *TeacherRequestService) transition(ctx context.Context, id, to string) (bool, error) {
	oid, err := docstore.ParseID(id)
	if err != nil {
		return false, errs.Validation("malformed request id %q", id)
	}
	matched, err := s.requests.UpdateOne(ctx,
		docstore.M{"_id": oid, "status": model.StatusPending},
		docstore.M{"$set": docstore.M{"status": to}},
	)
	if err != nil {
		return false, errs.Unavailable("transition teacher request", err)
	}
	return matched, nil
}
