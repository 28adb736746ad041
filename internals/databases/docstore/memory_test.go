package docstore

import (
	"context"
	"testing"
)

type thing struct {
	ID    interface{} `bson:"_id,omitempty"`
	Name  string      `bson:"name"`
	Score int64       `bson:"score"`
	Tags  []string    `bson:"tags"`
	Items []item      `bson:"items"`
}

type item struct {
	ItemID string `bson:"item_id"`
	Count  int64  `bson:"count"`
}

func seed(t *testing.T) (Collection, string) {
	t.Helper()
	col := NewMemoryStore().Collection("things")
	id, err := col.InsertOne(context.Background(), thing{
		Name:  "alpha",
		Score: 3,
		Tags:  []string{"x"},
		Items: []item{{ItemID: "i1", Count: 0}, {ItemID: "i2", Count: 5}},
	})
	if err != nil {
		t.Fatalf("InsertOne: %v", err)
	}
	return col, id
}

func TestInsertAndFindByID(t *testing.T) {
	col, id := seed(t)
	var got thing
	if err := col.FindByID(context.Background(), id, &got); err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "alpha" || got.Score != 3 {
		t.Fatalf("unexpected doc: %+v", got)
	}
	if err := col.FindByID(context.Background(), "ffffffffffffffffffffffff", &got); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateOnePreconditionGates(t *testing.T) {
	col, id := seed(t)
	ctx := context.Background()
	oid, _ := ParseID(id)

	matched, err := col.UpdateOne(ctx, M{"_id": oid, "name": "alpha"}, M{"$set": M{"name": "beta"}})
	if err != nil || !matched {
		t.Fatalf("matched=%v err=%v, want matched update", matched, err)
	}
	// precondition no longer holds
	matched, err = col.UpdateOne(ctx, M{"_id": oid, "name": "alpha"}, M{"$set": M{"name": "gamma"}})
	if err != nil {
		t.Fatalf("UpdateOne: %v", err)
	}
	if matched {
		t.Fatal("stale precondition must not match")
	}
	var got thing
	if err := col.FindByID(ctx, id, &got); err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "beta" {
		t.Fatalf("name = %q, want beta", got.Name)
	}
}

func TestNeGuardOnArrayField(t *testing.T) {
	col, id := seed(t)
	ctx := context.Background()
	oid, _ := ParseID(id)

	guard := func(tag string) (bool, error) {
		return col.UpdateOne(ctx,
			M{"_id": oid, "tags": M{"$ne": tag}},
			M{"$push": M{"tags": tag}, "$inc": M{"score": 1}},
		)
	}
	if matched, err := guard("y"); err != nil || !matched {
		t.Fatalf("absent element should match: matched=%v err=%v", matched, err)
	}
	if matched, err := guard("y"); err != nil || matched {
		t.Fatalf("present element must not match again: matched=%v err=%v", matched, err)
	}
	var got thing
	if err := col.FindByID(ctx, id, &got); err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Score != 4 || len(got.Tags) != 2 {
		t.Fatalf("score=%d tags=%v, want one applied increment", got.Score, got.Tags)
	}
}

func TestPositionalIncrement(t *testing.T) {
	col, id := seed(t)
	ctx := context.Background()
	oid, _ := ParseID(id)

	matched, err := col.UpdateOne(ctx,
		M{"_id": oid, "items.item_id": "i1"},
		M{"$inc": M{"items.$.count": 1}},
	)
	if err != nil || !matched {
		t.Fatalf("positional update: matched=%v err=%v", matched, err)
	}
	var got thing
	if err := col.FindByID(ctx, id, &got); err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Items[0].Count != 1 {
		t.Fatalf("items[0].count = %d, want 1", got.Items[0].Count)
	}
	if got.Items[1].Count != 5 {
		t.Fatalf("items[1].count = %d, sibling element must be untouched", got.Items[1].Count)
	}

	matched, err = col.UpdateOne(ctx,
		M{"_id": oid, "items.item_id": "missing"},
		M{"$inc": M{"items.$.count": 1}},
	)
	if err != nil {
		t.Fatalf("UpdateOne: %v", err)
	}
	if matched {
		t.Fatal("filter on missing embedded id must not match")
	}
}

func TestFindSortDescAndLimit(t *testing.T) {
	col := NewMemoryStore().Collection("things")
	ctx := context.Background()
	for i, score := range []int64{2, 9, 5, 9, 1} {
		if _, err := col.InsertOne(ctx, thing{Name: string(rune('a' + i)), Score: score}); err != nil {
			t.Fatalf("InsertOne: %v", err)
		}
	}
	var got []thing
	if err := col.Find(ctx, M{}, &got, Desc("score"), Limit(3)); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Score != 9 || got[1].Score != 9 || got[2].Score != 5 {
		t.Fatalf("wrong order: %+v", got)
	}
	// stable tie-break: insertion order among the two nines
	if got[0].Name != "b" || got[1].Name != "d" {
		t.Fatalf("tie-break not stable: %+v", got)
	}
}

func TestDeleteByID(t *testing.T) {
	col, id := seed(t)
	ctx := context.Background()
	if deleted, err := col.DeleteByID(ctx, id); err != nil || !deleted {
		t.Fatalf("DeleteByID: deleted=%v err=%v", deleted, err)
	}
	if deleted, _ := col.DeleteByID(ctx, id); deleted {
		t.Fatal("second delete must report false")
	}
	var got thing
	if err := col.FindByID(ctx, id, &got); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFindOneByField(t *testing.T) {
	col, _ := seed(t)
	ctx := context.Background()
	var got thing
	if err := col.FindOne(ctx, M{"name": "alpha"}, &got); err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if err := col.FindOne(ctx, M{"name": "nope"}, &got); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
