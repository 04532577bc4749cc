// Package repository contains data access logic separated from HTTP handlers
// and services. MovieRepository translates domain operations into MongoDB
// queries and shapes raw documents back into records. Absence (no matching
// document, malformed identifier) is reported as a nil result, never as an
// error; every driver failure is wrapped into an errs.DatabaseError so
// store-native error types do not cross this boundary.
package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ramink/movie-catalog/internal/errs"
	"github.com/ramink/movie-catalog/internal/model"
	"github.com/ramink/movie-catalog/internal/utils"
)

// opTimeout bounds every store call so a request that never receives a
// response fails with a DatabaseError instead of hanging.
const opTimeout = 5 * time.Second

// MovieRepository encapsulates all database operations on the movie
// collection. It depends on a database handle injected at construction.
type MovieRepository struct {
	collection *mongo.Collection
}

// NewMovieRepository constructs a MovieRepository over the named collection.
func NewMovieRepository(db *mongo.Database, collection string) *MovieRepository {
	return &MovieRepository{collection: db.Collection(collection)}
}

// movieDoc mirrors the stored document. CreatedAt is a pointer so legacy
// documents written before the field existed decode to nil and can be
// backfilled from the ObjectId's embedded creation time.
type movieDoc struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty"`
	Name           string                 `bson:"name"`
	Slug           string                 `bson:"slug"`
	Casts          []string               `bson:"casts"`
	Genres         []string               `bson:"genres"`
	Year           int                    `bson:"year"`
	Classification []model.Classification `bson:"classification"`
	CreatedAt      *time.Time             `bson:"created_at"`
	UpdatedAt      *time.Time             `bson:"updated_at"`
}

// Create inserts a new movie built from the validated input plus the derived
// slug, an empty classification list and creation timestamp, then re-reads
// the inserted document to return the canonical persisted record.
func (r *MovieRepository) Create(ctx context.Context, in *model.MovieCreate) (*model.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := movieDoc{
		Name:           in.Name,
		Slug:           utils.Slugify(in.Name),
		Casts:          in.Casts,
		Genres:         in.Genres,
		Year:           in.Year,
		Classification: []model.Classification{},
		CreatedAt:      &now,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, errs.NewDatabase("create movie", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errs.NewDatabase("create movie", errors.New("insert returned no object id"))
	}

	var created movieDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&created); err != nil {
		return nil, errs.NewDatabase("create movie", err)
	}
	return toMovie(&created), nil
}

// GetByID returns the movie with the given identifier, or nil when it does
// not exist. A malformed identifier is treated as absence, not as an error.
func (r *MovieRepository) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc movieDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errs.NewDatabase("get movie by id", err)
	}
	return toMovie(&doc), nil
}

// GetBySlug returns the movie whose slug matches exactly, or nil.
func (r *MovieRepository) GetBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc movieDoc
	if err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errs.NewDatabase("get movie by slug", err)
	}
	return toMovie(&doc), nil
}

// GetMany returns one page of movies matching the filters, sorted by _id
// ascending so repeated paginated queries see a stable order.
func (r *MovieRepository) GetMany(ctx context.Context, f *model.MovieFilters) ([]*model.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, buildFilterQuery(f), opts)
	if err != nil {
		return nil, errs.NewDatabase("list movies", err)
	}
	defer cursor.Close(ctx)

	movies := make([]*model.Movie, 0, f.Limit)
	for cursor.Next(ctx) {
		var doc movieDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errs.NewDatabase("list movies", err)
		}
		movies = append(movies, toMovie(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, errs.NewDatabase("list movies", err)
	}
	return movies, nil
}

// Count returns the total number of documents matching the filters,
// independent of pagination.
func (r *MovieRepository) Count(ctx context.Context, f *model.MovieFilters) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildFilterQuery(f))
	if err != nil {
		return 0, errs.NewDatabase("count movies", err)
	}
	return count, nil
}

// Update applies the change-set built from the fields present in the payload
// using an atomic find-and-modify that returns the new document. An empty
// change-set returns the current record without writing; a non-empty one
// always bumps updated_at and recomputes the slug when the name changes.
// Returns nil when no document matches the id or the id is malformed.
func (r *MovieRepository) Update(ctx context.Context, id string, in *model.MovieUpdate) (*model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := buildUpdateSet(in, time.Now().UTC())
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc movieDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabase("update movie", err)
	}
	return toMovie(&doc), nil
}

// Delete removes at most one movie by id and reports whether a document was
// removed. A malformed id deletes nothing.
func (r *MovieRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errs.NewDatabase("delete movie", err)
	}
	return res.DeletedCount > 0, nil
}

// buildFilterQuery translates list filters into a MongoDB query document.
// The title pattern is quoted so it matches as a literal substring.
func buildFilterQuery(f *model.MovieFilters) bson.M {
	query := bson.M{}
	if f.Title != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}
	}
	if len(f.Genres) > 0 {
		query["genres"] = bson.M{"$in": f.Genres}
	}
	if f.YearMin != nil || f.YearMax != nil {
		yearQuery := bson.M{}
		if f.YearMin != nil {
			yearQuery["$gte"] = *f.YearMin
		}
		if f.YearMax != nil {
			yearQuery["$lte"] = *f.YearMax
		}
		query["year"] = yearQuery
	}
	return query
}

// buildUpdateSet collects the fields present in the payload into a $set
// document. An empty result means nothing to write. When the name changes
// the slug is recomputed alongside it, and any effective change stamps
// updated_at.
func buildUpdateSet(in *model.MovieUpdate, now time.Time) bson.M {
	set := bson.M{}
	if in.Name != nil {
		set["name"] = *in.Name
		set["slug"] = utils.Slugify(*in.Name)
	}
	if in.Casts != nil {
		set["casts"] = *in.Casts
	}
	if in.Genres != nil {
		set["genres"] = *in.Genres
	}
	if in.Year != nil {
		set["year"] = *in.Year
	}
	if len(set) == 0 {
		return nil
	}
	set["updated_at"] = now
	return set
}

// toMovie shapes a raw document into the exposed record: identifier in hex
// form, nil lists normalized to empty, and created_at backfilled from the
// ObjectId's embedded timestamp for legacy documents that predate the field.
func toMovie(doc *movieDoc) *model.Movie {
	m := &model.Movie{
		ID:             doc.ID.Hex(),
		Name:           doc.Name,
		Slug:           doc.Slug,
		Casts:          doc.Casts,
		Genres:         doc.Genres,
		Year:           doc.Year,
		Classification: doc.Classification,
		UpdatedAt:      doc.UpdatedAt,
	}
	if m.Casts == nil {
		m.Casts = []string{}
	}
	if m.Genres == nil {
		m.Genres = []string{}
	}
	if m.Classification == nil {
		m.Classification = []model.Classification{}
	}
	if doc.CreatedAt != nil {
		m.CreatedAt = *doc.CreatedAt
	} else {
		m.CreatedAt = doc.ID.Timestamp()
	}
	return m
}
