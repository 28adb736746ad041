// internals/databases/docstore/memory.go
package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store with the same conditional-update
// semantics as the Mongo backend. One mutex guards the whole store, so
// every UpdateOne is an atomic match-then-mutate; that is the property
// the services rely on, and it is what makes this backend usable for
// the concurrency tests.
//
// Only the operator subset the services actually issue is interpreted:
// filters with field equality (dotted paths, arrays match any element)
// and $ne (arrays: element must be absent); updates with $set, $inc
// (incl. positional $) and $push.
type MemoryStore struct {
	mu   sync.RWMutex
	cols map[string]*memCollectionData
}

type memCollectionData struct {
	docs  map[string]bson.M
	order []string // insertion order, kept for stable listing/sorting
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cols: make(map[string]*memCollectionData)}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cols[name]; !ok {
		s.cols[name] = &memCollectionData{docs: make(map[string]bson.M)}
	}
	return &memCollection{store: s, name: name}
}

type memCollection struct {
	store *MemoryStore
	name  string
}

func (c *memCollection) data() *memCollectionData {
	return c.store.cols[c.name]
}

/* ======================= READS ======================= */

func (c *memCollection) FindByID(_ context.Context, id string, out any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	doc, ok := c.data().docs[id]
	if !ok {
		return ErrNotFound
	}
	return decodeDoc(doc, out)
}

func (c *memCollection) FindOne(_ context.Context, filter M, out any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	f, err := normalizeDoc(filter)
	if err != nil {
		return err
	}
	d := c.data()
	for _, id := range d.order {
		if matchDoc(d.docs[id], f, map[string]int{}) {
			return decodeDoc(d.docs[id], out)
		}
	}
	return ErrNotFound
}

func (c *memCollection) Find(_ context.Context, filter M, out any, opts ...FindOption) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	f, err := normalizeDoc(filter)
	if err != nil {
		return err
	}
	o := applyFindOptions(opts)

	d := c.data()
	var matched []bson.M
	for _, id := range d.order {
		if matchDoc(d.docs[id], f, map[string]int{}) {
			matched = append(matched, d.docs[id])
		}
	}
	if o.sortField != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			a := toFloat(getPath(matched[i], o.sortField))
			b := toFloat(getPath(matched[j], o.sortField))
			if o.sortDesc {
				return a > b
			}
			return a < b
		})
	}
	if o.limit > 0 && int64(len(matched)) > o.limit {
		matched = matched[:o.limit]
	}
	return decodeDocs(matched, out)
}

/* ======================= WRITES ======================= */

func (c *memCollection) InsertOne(_ context.Context, doc any) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	m, err := normalizeDoc(doc)
	if err != nil {
		return "", err
	}
	oid, ok := m["_id"].(primitive.ObjectID)
	if !ok || oid.IsZero() {
		oid = primitive.NewObjectID()
		m["_id"] = oid
	}
	id := oid.Hex()
	d := c.data()
	if _, exists := d.docs[id]; exists {
		return "", fmt.Errorf("docstore: duplicate key %s in %s", id, c.name)
	}
	d.docs[id] = m
	d.order = append(d.order, id)
	return id, nil
}

func (c *memCollection) UpdateOne(_ context.Context, filter M, update M) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	f, err := normalizeDoc(filter)
	if err != nil {
		return false, err
	}
	u, err := normalizeDoc(update)
	if err != nil {
		return false, err
	}

	d := c.data()
	candidates := d.order
	// filter keyed by _id hits one document directly
	if oid, ok := f["_id"].(primitive.ObjectID); ok {
		if _, exists := d.docs[oid.Hex()]; !exists {
			return false, nil
		}
		candidates = []string{oid.Hex()}
	}
	for _, id := range candidates {
		positional := map[string]int{}
		if !matchDoc(d.docs[id], f, positional) {
			continue
		}
		if err := applyUpdate(d.docs[id], u, positional); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (c *memCollection) DeleteByID(_ context.Context, id string) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	d := c.data()
	if _, ok := d.docs[id]; !ok {
		return false, nil
	}
	delete(d.docs, id)
	for i, x := range d.order {
		if x == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true, nil
}

/* ======================= DOC <-> BSON ======================= */

// normalizeDoc round-trips v through bson so structs, times and nested
// maps all land in the same canonical shape the matcher understands
// (bson.M documents, primitive.A arrays).
func normalizeDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return canonicalize(m).(bson.M), nil
}

// canonicalize flattens primitive.D leftovers into bson.M, recursively.
func canonicalize(v any) any {
	switch t := v.(type) {
	case primitive.D:
		m := bson.M{}
		for _, e := range t {
			m[e.Key] = canonicalize(e.Value)
		}
		return m
	case bson.M:
		for k, val := range t {
			t[k] = canonicalize(val)
		}
		return t
	case primitive.A:
		for i, el := range t {
			t[i] = canonicalize(el)
		}
		return t
	default:
		return v
	}
}

func decodeDoc(m bson.M, out any) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// decodeDocs decodes a list of documents into *[]T via reflection.
func decodeDocs(docs []bson.M, out any) error {
	outv := reflect.ValueOf(out)
	if outv.Kind() != reflect.Ptr || outv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("docstore: Find out must be a pointer to a slice, got %T", out)
	}
	slicev := outv.Elem()
	elemT := slicev.Type().Elem()
	result := reflect.MakeSlice(slicev.Type(), 0, len(docs))
	for _, m := range docs {
		ev := reflect.New(elemT)
		if err := decodeDoc(m, ev.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, ev.Elem())
	}
	slicev.Set(result)
	return nil
}

/* ======================= MATCHING ======================= */

// matchDoc applies every filter condition; positional records, per array
// field path, the index of the element that satisfied a dotted condition
// (feeds the positional $ operator on update).
func matchDoc(doc bson.M, filter bson.M, positional map[string]int) bool {
	for path, cond := range filter {
		if !pathMatches(doc, strings.Split(path, "."), cond, positional, "") {
			return false
		}
	}
	return true
}

func pathMatches(cur any, segs []string, cond any, positional map[string]int, walked string) bool {
	if len(segs) == 0 {
		return condMatches(cur, cond)
	}
	switch t := cur.(type) {
	case bson.M:
		next, ok := t[segs[0]]
		p := joinPath(walked, segs[0])
		if !ok {
			return missingMatches(cond)
		}
		return pathMatches(next, segs[1:], cond, positional, p)
	case primitive.A:
		// dotted path into an array: any element may satisfy it
		for i, el := range t {
			if pathMatches(el, segs, cond, positional, walked) {
				positional[walked] = i
				return true
			}
		}
		return false
	default:
		return missingMatches(cond)
	}
}

func joinPath(walked, seg string) string {
	if walked == "" {
		return seg
	}
	return walked + "." + seg
}

func condMatches(value any, cond any) bool {
	if m, ok := cond.(bson.M); ok {
		if ne, has := m["$ne"]; has {
			return !eqOrContains(value, ne)
		}
		// operator documents other than $ne are not equality matches
		return false
	}
	return eqOrContains(value, cond)
}

// missingMatches: absent fields satisfy $ne, nothing else.
func missingMatches(cond any) bool {
	if m, ok := cond.(bson.M); ok {
		_, has := m["$ne"]
		return has
	}
	return false
}

// eqOrContains mirrors Mongo equality on array fields: the value itself
// matches, or any array element does.
func eqOrContains(value, target any) bool {
	if arr, ok := value.(primitive.A); ok {
		for _, el := range arr {
			if equalValues(el, target) {
				return true
			}
		}
	}
	return equalValues(value, target)
}

func equalValues(a, b any) bool {
	if isNumeric(a) && isNumeric(b) {
		return toFloat(a) == toFloat(b)
	}
	return reflect.DeepEqual(a, b)
}

/* ======================= UPDATES ======================= */

func applyUpdate(doc bson.M, update bson.M, positional map[string]int) error {
	for op, fields := range update {
		fm, ok := fields.(bson.M)
		if !ok {
			return fmt.Errorf("docstore: malformed %s document", op)
		}
		for path, value := range fm {
			switch op {
			case "$set":
				if err := setPath(doc, path, value, positional); err != nil {
					return err
				}
			case "$inc":
				cur, err := resolveForWrite(doc, path, positional)
				if err != nil {
					return err
				}
				cur.set(toInt64(cur.get()) + toInt64(value))
			case "$push":
				cur, err := resolveForWrite(doc, path, positional)
				if err != nil {
					return err
				}
				arr, _ := cur.get().(primitive.A)
				cur.set(append(arr, value))
			default:
				return fmt.Errorf("docstore: unsupported update operator %s", op)
			}
		}
	}
	return nil
}

func setPath(doc bson.M, path string, value any, positional map[string]int) error {
	cur, err := resolveForWrite(doc, path, positional)
	if err != nil {
		return err
	}
	cur.set(value)
	return nil
}

// slot is a writable location inside a document tree.
type slot struct {
	parent bson.M
	key    string
}

func (s slot) get() any  { return s.parent[s.key] }
func (s slot) set(v any) { s.parent[s.key] = v }

// resolveForWrite walks a dotted path (with positional $ segments) down
// to the final field, creating intermediate documents as needed.
func resolveForWrite(doc bson.M, path string, positional map[string]int) (slot, error) {
	segs := strings.Split(path, ".")
	var cur any = doc
	walked := ""
	for i, seg := range segs {
		last := i == len(segs)-1
		if seg == "$" {
			arr, ok := cur.(primitive.A)
			if !ok {
				return slot{}, fmt.Errorf("docstore: positional $ on non-array at %s", walked)
			}
			idx, ok := positional[walked]
			if !ok || idx >= len(arr) {
				return slot{}, fmt.Errorf("docstore: positional $ without a matched element at %s", walked)
			}
			cur = arr[idx]
			continue
		}
		m, ok := cur.(bson.M)
		if !ok {
			return slot{}, fmt.Errorf("docstore: cannot descend into %s", walked)
		}
		walked = joinPath(walked, seg)
		if last {
			return slot{parent: m, key: seg}, nil
		}
		next, ok := m[seg]
		if !ok {
			next = bson.M{}
			m[seg] = next
		}
		cur = next
	}
	return slot{}, fmt.Errorf("docstore: empty update path")
}

/* ======================= VALUE HELPERS ======================= */

func getPath(doc bson.M, path string) any {
	var cur any = doc
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(bson.M)
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float32:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	}
	return 0
}
