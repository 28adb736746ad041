package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"edumanage_backend/internals/databases/docstore"
	"edumanage_backend/internals/features/classes/dto"
	"edumanage_backend/internals/features/classes/model"
	"edumanage_backend/internals/helpers/errs"
)

// ClassService owns the class document: lifecycle status, the embedded
// assignment list and every aggregate counter on it.
//
// Counter discipline: enrollment count, assignment count and submission
// counts are only ever touched through a single UpdateOne carrying both
// the list mutation and the $inc. Two sequential writes would let a
// concurrent writer slip between them and the counter would drift from
// the list it is supposed to mirror.
type ClassService struct {
	classes docstore.Collection
}

func NewClassService(store docstore.Store) *ClassService {
	return &ClassService{classes: store.Collection(docstore.ColClasses)}
}

/* ======================= LIFECYCLE ======================= */

func (s *ClassService) Create(ctx context.Context, req *dto.CreateClassRequest) (*model.ClassModel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := req.ToModel()
	id, err := s.classes.InsertOne(ctx, c)
	if err != nil {
		return nil, errs.Unavailable("insert class", err)
	}
	oid, _ := docstore.ParseID(id)
	c.ID = oid
	return c, nil
}

// Approve is an unconditional status set, so re-approving an approved
// class is a no-op with the same observable result.
func (s *ClassService) Approve(ctx context.Context, classID string) error {
	return s.setStatus(ctx, classID, model.StatusApproved)
}

func (s *ClassService) Reject(ctx context.Context, classID string) error {
	return s.setStatus(ctx, classID, model.StatusRejected)
}

func (s *ClassService) setStatus(ctx context.Context, classID, status string) error {
	oid, err := docstore.ParseID(classID)
	if err != nil {
		return errs.Validation("malformed class id %q", classID)
	}
	matched, err := s.classes.UpdateOne(ctx,
		docstore.M{"_id": oid},
		docstore.M{"$set": docstore.M{"status": status}},
	)
	if err != nil {
		return errs.Unavailable("set class status", err)
	}
	if !matched {
		return errs.NotFound("class %s not found", classID)
	}
	return nil
}

func (s *ClassService) UpdateInfo(ctx context.Context, classID string, req *dto.UpdateClassRequest) error {
	oid, err := docstore.ParseID(classID)
	if err != nil {
		return errs.Validation("malformed class id %q", classID)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	matched, err := s.classes.UpdateOne(ctx,
		docstore.M{"_id": oid},
		docstore.M{"$set": docstore.M{
			"title":       req.Title,
			"description": req.Description,
			"image":       req.Image,
			"price":       req.Price,
		}},
	)
	if err != nil {
		return errs.Unavailable("update class info", err)
	}
	if !matched {
		return errs.NotFound("class %s not found", classID)
	}
	return nil
}

func (s *ClassService) Delete(ctx context.Context, classID string) error {
	if _, err := docstore.ParseID(classID); err != nil {
		return errs.Validation("malformed class id %q", classID)
	}
	deleted, err := s.classes.DeleteByID(ctx, classID)
	if err != nil {
		return errs.Unavailable("delete class", err)
	}
	if !deleted {
		return errs.NotFound("class %s not found", classID)
	}
	return nil
}

/* ======================= READS ======================= */

func (s *ClassService) GetByID(ctx context.Context, classID string) (*model.ClassModel, error) {
	if _, err := docstore.ParseID(classID); err != nil {
		return nil, errs.Validation("malformed class id %q", classID)
	}
	var c model.ClassModel
	err := s.classes.FindByID(ctx, classID, &c)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, errs.NotFound("class %s not found", classID)
	}
	if err != nil {
		return nil, errs.Unavailable("find class", err)
	}
	return &c, nil
}

func (s *ClassService) ListByTeacher(ctx context.Context, email string) ([]model.ClassModel, error) {
	if email == "" {
		return nil, errs.Validation("teacher email is required")
	}
	var out []model.ClassModel
	if err := s.classes.Find(ctx, docstore.M{"teacher.email": email}, &out); err != nil {
		return nil, errs.Unavailable("list classes by teacher", err)
	}
	return out, nil
}

func (s *ClassService) ListApproved(ctx context.Context) ([]model.ClassModel, error) {
	var out []model.ClassModel
	if err := s.classes.Find(ctx, docstore.M{"status": model.StatusApproved}, &out); err != nil {
		return nil, errs.Unavailable("list approved classes", err)
	}
	return out, nil
}

// Popular returns approved classes by enrollment, highest first. Ties
// keep store order, which is stable enough for a landing-page widget.
func (s *ClassService) Popular(ctx context.Context, limit int64) ([]model.ClassModel, error) {
	if limit <= 0 {
		return nil, errs.Validation("limit must be positive")
	}
	var out []model.ClassModel
	err := s.classes.Find(ctx,
		docstore.M{"status": model.StatusApproved},
		&out,
		docstore.Desc("total_enrollment"),
		docstore.Limit(limit),
	)
	if err != nil {
		return nil, errs.Unavailable("list popular classes", err)
	}
	return out, nil
}

/* ======================= ASSIGNMENTS ======================= */

// AddAssignment appends the assignment and bumps total_assignments in
// one UpdateOne, keeping the counter equal to the list length under
// concurrent appends.
func (s *ClassService) AddAssignment(ctx context.Context, classID string, req *dto.AddAssignmentRequest) (*model.AssignmentModel, error) {
	oid, err := docstore.ParseID(classID)
	if err != nil {
		return nil, errs.Validation("malformed class id %q", classID)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a := model.AssignmentModel{
		AssignmentID:    uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Deadline:        req.Deadline,
		SubmissionCount: 0,
	}
	matched, err := s.classes.UpdateOne(ctx,
		docstore.M{"_id": oid},
		docstore.M{
			"$push": docstore.M{"assignments": a},
			"$inc":  docstore.M{"total_assignments": 1},
		},
	)
	if err != nil {
		return nil, errs.Unavailable("add assignment", err)
	}
	if !matched {
		return nil, errs.NotFound("class %s not found", classID)
	}
	return &a, nil
}

// RecordSubmission bumps the submission counter of exactly one embedded
// assignment via the positional operator. No read-increment-write: both
// submitters of a concurrent pair must land.
func (s *ClassService) RecordSubmission(ctx context.Context, classID, assignmentID string) error {
	oid, err := docstore.ParseID(classID)
	if err != nil {
		return errs.Validation("malformed class id %q", classID)
	}
	if assignmentID == "" {
		return errs.Validation("assignment id is required")
	}
	matched, err := s.classes.UpdateOne(ctx,
		docstore.M{"_id": oid, "assignments.assignment_id": assignmentID},
		docstore.M{"$inc": docstore.M{"assignments.$.submission_count": 1}},
	)
	if err != nil {
		return errs.Unavailable("record submission", err)
	}
	if matched {
		return nil
	}
	// disambiguate: missing class vs missing assignment
	if _, err := s.GetByID(ctx, classID); err != nil {
		return err
	}
	return errs.NotFound("assignment %s not found in class %s", assignmentID, classID)
}

/* ======================= ENROLLMENT ======================= */

// EnrollStudent adds the email to the student set and increments
// total_enrollment, one UpdateOne, guarded by students $ne email so a
// replay for an already-enrolled student matches nothing and the counter
// stays put. matched=false is therefore a success from the caller's
// point of view (idempotent no-op), not an error.
func (s *ClassService) EnrollStudent(ctx context.Context, classID, email string) (bool, error) {
	oid, err := docstore.ParseID(classID)
	if err != nil {
		return false, errs.Validation("malformed class id %q", classID)
	}
	if email == "" {
		return false, errs.Validation("student email is required")
	}
	matched, err := s.classes.UpdateOne(ctx,
		docstore.M{"_id": oid, "students": docstore.M{"$ne": email}},
		docstore.M{
			"$inc":  docstore.M{"total_enrollment": 1},
			"$push": docstore.M{"students": email},
		},
	)
	if err != nil {
		return false, errs.Unavailable("enroll student", err)
	}
	return matched, nil
}

/* ======================= RATINGS ======================= */

// PushRating appends a rating value onto the class projection. The
// Feedback collection stays the source of truth for review content.
func (s *ClassService) PushRating(ctx context.Context, classID string, rating float64) error {
	oid, err := docstore.ParseID(classID)
	if err != nil {
		return errs.Validation("malformed class id %q", classID)
	}
	matched, err := s.classes.UpdateOne(ctx,
		docstore.M{"_id": oid},
		docstore.M{"$push": docstore.M{"ratings": rating}},
	)
	if err != nil {
		return errs.Unavailable("push rating", err)
	}
	if !matched {
		return errs.NotFound("class %s not found", classID)
	}
	return nil
}
