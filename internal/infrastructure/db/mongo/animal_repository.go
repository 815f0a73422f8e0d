package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

const animalsCollection = "animals"

type AnimalRepository struct {
	coll *mongo.Collection
}

func NewAnimalRepository(db *mongo.Database) *AnimalRepository {
	return &AnimalRepository{coll: db.Collection(animalsCollection)}
}

type mongoAnimal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Type        string             `bson:"type"`
	Breed       string             `bson:"breed"`
	District    string             `bson:"district"`
	Sector      string             `bson:"sector"`
	Class       string             `bson:"class"`
	OwnerID     string             `bson:"ownerId"`
	OwnerName   string             `bson:"ownerName"`
	PhoneNumber string             `bson:"phoneNumber"`
	Price       float64            `bson:"price"`
	Status      string             `bson:"status"`
	DeviceID    string             `bson:"deviceId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toMongoAnimal(a *domain.Animal) mongoAnimal {
	return mongoAnimal{
		Name:        a.Name,
		Type:        a.Type,
		Breed:       a.Breed,
		District:    a.District,
		Sector:      a.Sector,
		Class:       string(a.Class),
		OwnerID:     a.OwnerID,
		OwnerName:   a.OwnerName,
		PhoneNumber: a.PhoneNumber,
		Price:       a.Price,
		Status:      string(a.Status),
		DeviceID:    a.DeviceID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *mongoAnimal) toDomain() *domain.Animal {
	// Older records may carry any casing; fall back to the raw value.
	class, err := domain.ParseAnimalClass(m.Class)
	if err != nil {
		class = domain.AnimalClass(m.Class)
	}
	status, err := domain.ParseAnimalStatus(m.Status)
	if err != nil {
		status = domain.AnimalStatus(m.Status)
	}
	return &domain.Animal{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Type:        m.Type,
		Breed:       m.Breed,
		District:    m.District,
		Sector:      m.Sector,
		Class:       class,
		OwnerID:     m.OwnerID,
		OwnerName:   m.OwnerName,
		PhoneNumber: m.PhoneNumber,
		Price:       m.Price,
		Status:      status,
		DeviceID:    m.DeviceID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *AnimalRepository) Create(ctx context.Context, a *domain.Animal) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoAnimal(a))
	if err != nil {
		return "", fmt.Errorf("insert animal: %w", err)
	}
	return insertedHex(res), nil
}

func (r *AnimalRepository) FindByID(ctx context.Context, id string) (*domain.Animal, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAnimal
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("find animal: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AnimalRepository) Update(ctx context.Context, a *domain.Animal) error {
	oid, err := objectID(a.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoAnimal(a)
	update := bson.M{"$set": bson.M{
		"name":        doc.Name,
		"type":        doc.Type,
		"breed":       doc.Breed,
		"district":    doc.District,
		"sector":      doc.Sector,
		"class":       doc.Class,
		"ownerId":     doc.OwnerID,
		"ownerName":   doc.OwnerName,
		"phoneNumber": doc.PhoneNumber,
		"price":       doc.Price,
		"status":      doc.Status,
		"deviceId":    doc.DeviceID,
		"updatedAt":   doc.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update animal: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAnimalNotFound
	}
	return nil
}

func (r *AnimalRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete animal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAnimalNotFound
	}
	return nil
}

func (r *AnimalRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Animal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["ownerId"] = ownerID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAnimal
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode animals: %w", err)
	}
	out := make([]*domain.Animal, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *AnimalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
