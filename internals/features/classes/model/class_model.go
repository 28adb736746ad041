package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status lifecycle kelas.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// TeacherRef is denormalized onto the class document so catalog queries
// never have to join back into users.
type TeacherRef struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// AssignmentModel is embedded in its class document. AssignmentID is
// unique within the parent; SubmissionCount only ever goes up.
type AssignmentModel struct {
	AssignmentID    string    `bson:"assignment_id" json:"assignment_id"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description" json:"description"`
	Deadline        time.Time `bson:"deadline" json:"deadline"`
	SubmissionCount int64     `bson:"submission_count" json:"submission_count"`
}

// ClassModel holds the aggregate counters next to the lists they count:
// TotalEnrollment == len(Students) and TotalAssignments == len(Assignments)
// hold as long as every mutation goes through a single UpdateOne (see the
// class service — never read-modify-write these).
type ClassModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Teacher     TeacherRef         `bson:"teacher" json:"teacher"`
	Status      string             `bson:"status" json:"status"`

	TotalEnrollment int64    `bson:"total_enrollment" json:"total_enrollment"`
	Students        []string `bson:"students" json:"students"`

	Assignments      []AssignmentModel `bson:"assignments" json:"assignments"`
	TotalAssignments int64             `bson:"total_assignments" json:"total_assignments"`

	Ratings   []float64 `bson:"ratings,omitempty" json:"ratings,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (ClassModel) CollectionName() string { return "classes" }

// AssignmentByID mencari assignment embedded berdasarkan id.
func (c *ClassModel) AssignmentByID(id string) *AssignmentModel {
	for i := range c.Assignments {
		if c.Assignments[i].AssignmentID == id {
			return &c.Assignments[i]
		}
	}
	return nil
}
