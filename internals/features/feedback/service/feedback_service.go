package service

import (
	"context"

	"edumanage_backend/internals/databases/docstore"
	"edumanage_backend/internals/features/feedback/model"
	"edumanage_backend/internals/helpers/errs"
)

type FeedbackService struct {
	feedback docstore.Collection
}

func NewFeedbackService(store docstore.Store) *FeedbackService {
	return &FeedbackService{feedback: store.Collection(docstore.ColFeedback)}
}

func (s *FeedbackService) Insert(ctx context.Context, f *model.FeedbackModel) (*model.FeedbackModel, error) {
	id, err := s.feedback.InsertOne(ctx, f)
	if err != nil {
		return nil, errs.Unavailable("insert feedback", err)
	}
	oid, _ := docstore.ParseID(id)
	f.ID = oid
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context) ([]model.FeedbackModel, error) {
	var out []model.FeedbackModel
	if err := s.feedback.Find(ctx, docstore.M{}, &out); err != nil {
		return nil, errs.Unavailable("list feedback", err)
	}
	return out, nil
}

func (s *FeedbackService) ListByClass(ctx context.Context, classID string) ([]model.FeedbackModel, error) {
	if classID == "" {
		return nil, errs.Validation("class id is required")
	}
	var out []model.FeedbackModel
	if err := s.feedback.Find(ctx, docstore.M{"class_id": classID}, &out); err != nil {
		return nil, errs.Unavailable("list feedback by class", err)
	}
	return out, nil
}
