package resource

import (
	"context"
	"regexp"
	"time"

	"github.com/deenhub/deenhub-backend/internal/database"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB collection. The connection handle
// is lazy: the first operation establishes it, later ones reuse it.
type MongoStore struct {
	conn   *database.Mongo
	dbName string
	schema *Schema
}

func NewMongoStore(conn *database.Mongo, dbName string, s *Schema) *MongoStore {
	return &MongoStore{conn: conn, dbName: dbName, schema: s}
}

func (m *MongoStore) collection(ctx context.Context) (*mongo.Collection, error) {
	client, err := m.conn.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.dbName).Collection(m.schema.Collection), nil
}

// EnsureIndexes creates the unique index on the business identifier and, for
// text-searched collections, the compound text index. Identifier uniqueness
// is enforced here at the store layer, not only by the pre-insert check.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	col, err := m.collection(ctx)
	if err != nil {
		return err
	}
	var models []mongo.IndexModel
	if m.schema.IDField != "" {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: m.schema.IDField, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	if len(m.schema.TextFields) > 0 {
		keys := bson.D{}
		for _, f := range m.schema.TextFields {
			keys = append(keys, bson.E{Key: f, Value: "text"})
		}
		models = append(models, mongo.IndexModel{Keys: keys})
	}
	if len(models) == 0 {
		return nil
	}
	_, err = col.Indexes().CreateMany(ctx, models)
	return err
}

func (m *MongoStore) FindMany(ctx context.Context, q *Query) ([]Document, error) {
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(sortDoc(q))
	cur, err := col.Find(ctx, filterDoc(q), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []Document{}
	for cur.Next(ctx) {
		var d Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, normalize(d))
	}
	return out, cur.Err()
}

func (m *MongoStore) FindOne(ctx context.Context, field, value string) (Document, error) {
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := keyFilter(field, value)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := col.FindOne(ctx, filter).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return normalize(d), nil
}

func (m *MongoStore) Insert(ctx context.Context, doc Document) (Document, error) {
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	stored := Document{}
	for k, v := range doc {
		stored[k] = v
	}
	now := time.Now().UTC()
	stored["createdAt"] = now
	stored["updatedAt"] = now
	res, err := col.InsertOne(ctx, stored)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateID
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored["_id"] = oid.Hex()
	}
	return stored, nil
}

func (m *MongoStore) FindOneAndUpdate(ctx context.Context, field, value string, set map[string]interface{}) (Document, error) {
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := keyFilter(field, value)
	if err != nil {
		return nil, err
	}
	merged := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		merged[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d Document
	if err := col.FindOneAndUpdate(ctx, filter, bson.M{"$set": merged}, opts).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return normalize(d), nil
}

func (m *MongoStore) FindOneAndDelete(ctx context.Context, field, value string) (Document, error) {
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := keyFilter(field, value)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := col.FindOneAndDelete(ctx, filter).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return normalize(d), nil
}

// keyFilter builds the equality filter for a single-document operation. For
// the native id the hex value must parse; a malformed value can never match.
func keyFilter(field, value string) (bson.M, error) {
	if field != "_id" {
		return bson.M{field: value}, nil
	}
	oid, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": oid}, nil
}

// filterDoc translates the store-neutral Query into a MongoDB filter.
func filterDoc(q *Query) bson.M {
	filter := bson.M{}
	if q == nil {
		return filter
	}
	if q.TextSearch != "" {
		filter["$text"] = bson.M{"$search": q.TextSearch}
	}
	if len(q.AnyOf) > 0 {
		or := bson.A{}
		for _, fm := range q.AnyOf {
			or = append(or, bson.M{fm.Field: matchValue(fm)})
		}
		filter["$or"] = or
	}
	for _, fm := range q.Match {
		switch fm.Kind {
		case MatchContains, MatchEquals:
			filter[fm.Field] = matchValue(fm)
		default:
			rng, _ := filter[fm.Field].(bson.M)
			if rng == nil {
				rng = bson.M{}
			}
			rng[rangeOp(fm.Kind)] = fm.Value
			filter[fm.Field] = rng
		}
	}
	return filter
}

func matchValue(fm FieldMatch) interface{} {
	if fm.Kind == MatchContains {
		// substring semantics: the term is matched literally, not as a pattern
		pattern := regexp.QuoteMeta(cast.ToString(fm.Value))
		return primitive.Regex{Pattern: pattern, Options: "i"}
	}
	return fm.Value
}

func rangeOp(k MatchKind) string {
	switch k {
	case MatchGreater:
		return "$gt"
	case MatchAtLeast:
		return "$gte"
	default:
		return "$lte"
	}
}

func sortDoc(q *Query) bson.D {
	spec := SortSpec{Field: "createdAt", Descending: true}
	if q != nil && q.Sort.Field != "" {
		spec = q.Sort
	}
	dir := 1
	if spec.Descending {
		dir = -1
	}
	return bson.D{{Key: spec.Field, Value: dir}}
}

// normalize makes decoded documents JSON-friendly: hex ids and time.Time
// timestamps instead of driver-native types.
func normalize(d Document) Document {
	if oid, ok := d["_id"].(primitive.ObjectID); ok {
		d["_id"] = oid.Hex()
	}
	for _, k := range []string{"createdAt", "updatedAt"} {
		if dt, ok := d[k].(primitive.DateTime); ok {
			d[k] = dt.Time().UTC()
		}
	}
	return d
}
