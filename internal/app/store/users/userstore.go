package userstore

import (
	"context"
	"errors"
	"regexp"

	"github.com/dalemusser/memberhub/internal/app/system/normalize"
	"github.com/dalemusser/memberhub/internal/app/system/timestamp"
	"github.com/dalemusser/memberhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateID is returned when a client-supplied uid is already taken.
	ErrDuplicateID = errors.New("a user with this id already exists")
	// ErrNotFound is returned when no user has the requested id.
	ErrNotFound = errors.New("user not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user. Returns ErrNotFound if missing.
func (s *Store) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns users ordered by folded name. A non-empty q keeps only users
// whose folded name contains the folded q.
func (s *Store) List(ctx context.Context, q string) ([]models.User, error) {
	filter := bson.M{}
	if q = text.Fold(q); q != "" {
		filter["nameCI"] = bson.M{"$regex": regexp.QuoteMeta(q)}
	}
	opts := options.Find().SetSort(bson.D{{Key: "nameCI", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts u. An empty ID gets a new uuid; empty timestamps become now
// and an empty marital status becomes the default. Client-supplied
// timestamps are stored as given.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	if u.MaritalStatus == "" {
		u.MaritalStatus = models.DefaultMaritalStatus
	}
	now := timestamp.Now()
	if u.CreatedAt == "" {
		u.CreatedAt = now
	}
	if u.UpdatedAt == "" {
		u.UpdatedAt = now
	}
	if u.UpdatedBy == "" {
		u.UpdatedBy = u.CreatedBy
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateID
		}
		return models.User{}, err
	}
	return u, nil
}

// Update applies the present patch fields and returns the stored result.
// Returns ErrNotFound if missing.
func (s *Store) Update(ctx context.Context, id string, p models.UserPatch) (*models.User, error) {
	set := bson.M{}
	if p.Name != nil {
		name := normalize.Name(*p.Name)
		set["name"] = name
		set["nameCI"] = text.Fold(name)
	}
	putIf(set, "dob", p.DOB)
	putIf(set, "mobile", p.Mobile)
	putIf(set, "whatsapp", p.WhatsApp)
	putIf(set, "address", p.Address)
	putIf(set, "maritalStatus", p.MaritalStatus)
	putIf(set, "anniversaryDate", p.AnniversaryDate)
	putIf(set, "updatedAt", p.UpdatedAt)
	putIf(set, "updatedBy", p.UpdatedBy)

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Delete removes a user. Returns ErrNotFound if missing.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountUpdatedAfter counts users whose updatedAt string sorts after cutoff.
// The comparison is bytewise on the stored strings, not chronological.
func (s *Store) CountUpdatedAfter(ctx context.Context, cutoff string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"updatedAt": bson.M{"$gt": cutoff}})
}

func putIf(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
