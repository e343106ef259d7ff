package adminstore

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
	// ErrDuplicateEmail is returned when another admin already has the email.
	ErrDuplicateEmail = errors.New("an admin with this email already exists")
	// ErrNotFound is returned when no admin matches.
	ErrNotFound = errors.New("admin not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByID loads an admin. Returns ErrNotFound if missing.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail looks up an admin by exact (trimmed) email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

// Create inserts a. Used to seed the bootstrap admin.
func (s *Store) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Email = normalize.Email(a.Email)
	a.Name = normalize.Name(a.Name)
	if a.UpdatedAt == "" {
		a.UpdatedAt = timestamp.Now()
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if isDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

// SetPasswordHash replaces the stored hash. Returns ErrNotFound if missing.
func (s *Store) SetPasswordHash(ctx context.Context, id, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"passwordHash": hash,
		"updatedAt":    timestamp.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile applies p to the admin with id, creating the record if it
// does not exist. A created record gets the placeholder name (unless p sets
// one) and the placeholder email. updatedAt is stamped when p omits it.
//
// Returns ErrDuplicateEmail if the placeholder email is already taken by
// another admin.
func (s *Store) UpdateProfile(ctx context.Context, id string, p models.AdminPatch) (*models.Admin, error) {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = normalize.Name(*p.Name)
	}
	putIf(set, "dob", p.DOB)
	putIf(set, "mobile", p.Mobile)
	putIf(set, "whatsapp", p.WhatsApp)
	putIf(set, "address", p.Address)
	if p.UpdatedAt != nil {
		set["updatedAt"] = *p.UpdatedAt
	} else {
		set["updatedAt"] = timestamp.Now()
	}

	onInsert := bson.M{"email": models.PlaceholderAdminEmail}
	if p.Name == nil {
		onInsert["name"] = models.PlaceholderAdminName
	}

	var a models.Admin
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set, "$setOnInsert": onInsert},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if isDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &a, nil
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
