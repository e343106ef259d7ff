package volunteerstore

import (
	"context"
	"errors"

	"github.com/dalemusser/memberhub/internal/app/system/normalize"
	"github.com/dalemusser/memberhub/internal/app/system/timestamp"
	"github.com/dalemusser/memberhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when another volunteer already has the email.
	ErrDuplicateEmail = errors.New("a volunteer with this email already exists")
	// ErrDuplicateID is returned when a client-supplied uid is already taken.
	ErrDuplicateID = errors.New("a volunteer with this id already exists")
	// ErrNotFound is returned when no volunteer matches.
	ErrNotFound = errors.New("volunteer not found")
)

// DefaultCreatedBy is recorded when the creator is not given.
const DefaultCreatedBy = "admin"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("volunteers")}
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := s.c.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByID loads a volunteer. Returns ErrNotFound if missing.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Volunteer, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail looks up a volunteer by exact (trimmed) email.
// Returns ErrNotFound if missing.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	return s.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

// List returns every volunteer ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Volunteer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Volunteer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts v. v.PasswordHash must already be a bcrypt hash, or empty
// for a volunteer who cannot log in yet.
//
// Uniqueness against admins is the caller's job; this only guards the
// volunteers collection through its unique email index.
func (s *Store) Create(ctx context.Context, v models.Volunteer) (models.Volunteer, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.Email = normalize.Email(v.Email)
	v.Name = normalize.Name(v.Name)
	if v.MaritalStatus == "" {
		v.MaritalStatus = models.DefaultMaritalStatus
	}
	if v.CreatedBy == "" {
		v.CreatedBy = DefaultCreatedBy
	}
	now := timestamp.Now()
	if v.CreatedAt == "" {
		v.CreatedAt = now
	}
	if v.UpdatedAt == "" {
		v.UpdatedAt = now
	}

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if isDup(err) {
			return models.Volunteer{}, s.whichDup(ctx, v.ID)
		}
		return models.Volunteer{}, err
	}
	return v, nil
}

// whichDup tells an _id collision from an email collision.
func (s *Store) whichDup(ctx context.Context, id string) error {
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err == nil {
		return ErrDuplicateID
	}
	return ErrDuplicateEmail
}

// Update describes a volunteer change. Patch carries the profile fields;
// Email and PasswordHash are applied only when non-nil.
type Update struct {
	Patch        models.VolunteerPatch
	Email        *string
	PasswordHash *string
}

// Update applies upd and returns the stored result.
// Returns ErrNotFound if missing and ErrDuplicateEmail on an email clash.
func (s *Store) Update(ctx context.Context, id string, upd Update) (*models.Volunteer, error) {
	p := upd.Patch
	set := bson.M{}
	if p.Name != nil {
		set["name"] = normalize.Name(*p.Name)
	}
	putIf(set, "dob", p.DOB)
	putIf(set, "mobile", p.Mobile)
	putIf(set, "whatsapp", p.WhatsApp)
	putIf(set, "address", p.Address)
	putIf(set, "maritalStatus", p.MaritalStatus)
	putIf(set, "anniversaryDate", p.AnniversaryDate)
	putIf(set, "updatedAt", p.UpdatedAt)
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	putIf(set, "passwordHash", upd.PasswordHash)

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	var v models.Volunteer
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if isDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &v, nil
}

// Delete removes a volunteer. Returns ErrNotFound if missing.
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

// Count returns the number of volunteers.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CreatedAtValues streams the raw createdAt string of every volunteer.
// Documents without the field yield an empty string.
func (s *Store) CreatedAtValues(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "createdAt": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []string
	for cur.Next(ctx) {
		var row struct {
			CreatedAt any `bson:"createdAt"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		// Only strings are timestamps; anything else counts as unparsable.
		str, _ := row.CreatedAt.(string)
		out = append(out, str)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func putIf(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

// isDup also covers the CommandError shape FindOneAndUpdate reports.
func isDup(err error) bool {
	return wafflemongo.IsDup(err) || mongo.IsDuplicateKeyError(err)
}
