// internals/databases/docstore/docstore.go
//
// Adapter ke document store. Seluruh persistence lewat interface ini:
// backend produksi MongoDB (mongo.go), backend memori untuk test dan
// lingkungan tanpa DB (memory.go).
//
// UpdateOne adalah satu-satunya primitive compare-and-mutate: filter +
// mutation diterapkan atomik pada satu dokumen. Tidak ada transaksi
// lintas dokumen — layer di atas yang mengatur urutan tulis.
package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// M is a filter/update document (alias of bson.M so operator maps can be
// handed to the Mongo driver unchanged).
type M = bson.M

// ErrNotFound is returned by FindByID/FindOne when no document matches.
var ErrNotFound = errors.New("docstore: document not found")

// Collection gives key-based access to one logical collection.
type Collection interface {
	// FindByID decodes the document with the given hex id into out.
	FindByID(ctx context.Context, id string, out any) error
	// FindOne decodes the first document matching filter into out.
	FindOne(ctx context.Context, filter M, out any) error
	// Find decodes all matching documents into out (pointer to slice).
	// Order is insertion order unless a sort option is given.
	Find(ctx context.Context, filter M, out any, opts ...FindOption) error
	// InsertOne stores doc and returns the generated hex id.
	InsertOne(ctx context.Context, doc any) (string, error)
	// UpdateOne applies update to the single document matching filter.
	// matched=false means the precondition did not hold (or no document).
	UpdateOne(ctx context.Context, filter M, update M) (matched bool, err error)
	// DeleteByID removes the document with the given hex id.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}

// Collection names shared by all backends.
const (
	ColUsers           = "users"
	ColClasses         = "classes"
	ColPayments        = "payments"
	ColTeacherRequests = "teacher_requests"
	ColFeedback        = "feedback"
)

/* ======================= FIND OPTIONS ======================= */

type findOptions struct {
	sortField string
	sortDesc  bool
	limit     int64
}

type FindOption func(*findOptions)

// Desc sorts results by a numeric field, highest first.
func Desc(field string) FindOption {
	return func(o *findOptions) { o.sortField, o.sortDesc = field, true }
}

// Limit caps the number of returned documents.
func Limit(n int64) FindOption {
	return func(o *findOptions) { o.limit = n }
}

func applyFindOptions(opts []FindOption) findOptions {
	var o findOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

/* ======================= ID HELPERS ======================= */

// ParseID validates a hex document key. Malformed ids are caught here,
// before any store round trip.
func ParseID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}

// NewID generates a fresh document key.
func NewID() primitive.ObjectID { return primitive.NewObjectID() }
