package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

const consultationsCollection = "consultations"

type ConsultationRepository struct {
	coll *mongo.Collection
}

func NewConsultationRepository(db *mongo.Database) *ConsultationRepository {
	return &ConsultationRepository{coll: db.Collection(consultationsCollection)}
}

type mongoConsultation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FullName    string             `bson:"fullName"`
	PhoneNumber string             `bson:"phoneNumber"`
	Service     string             `bson:"service"`
	Doctor      string             `bson:"doctor,omitempty"`
	Date        string             `bson:"date"`
	Time        string             `bson:"time"`
	Type        string             `bson:"type"`
	Status      string             `bson:"status"`
	Feedback    string             `bson:"feedback,omitempty"`
	FarmerID    string             `bson:"farmerId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func (m *mongoConsultation) toDomain() *domain.Consultation {
	status, err := domain.ParseConsultationStatus(m.Status)
	if err != nil {
		status = domain.ConsultationStatus(m.Status)
	}
	typ, err := domain.ParseConsultationType(m.Type)
	if err != nil {
		typ = domain.ConsultationType(m.Type)
	}
	return &domain.Consultation{
		ID:          m.ID.Hex(),
		FullName:    m.FullName,
		PhoneNumber: m.PhoneNumber,
		Service:     m.Service,
		DoctorID:    m.Doctor,
		Date:        m.Date,
		Time:        m.Time,
		Type:        typ,
		Status:      status,
		Feedback:    m.Feedback,
		FarmerID:    m.FarmerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// statusFilter matches a stored status regardless of casing, so records
// written before statuses were normalized still satisfy guards.
func statusFilter(s domain.ConsultationStatus) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(string(s)) + "$", Options: "i"}
}

func (r *ConsultationRepository) Create(ctx context.Context, c *domain.Consultation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, mongoConsultation{
		FullName:    c.FullName,
		PhoneNumber: c.PhoneNumber,
		Service:     c.Service,
		Doctor:      c.DoctorID,
		Date:        c.Date,
		Time:        c.Time,
		Type:        string(c.Type),
		Status:      string(c.Status),
		Feedback:    c.Feedback,
		FarmerID:    c.FarmerID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("insert consultation: %w", err)
	}
	return insertedHex(res), nil
}

func (r *ConsultationRepository) FindByID(ctx context.Context, id string) (*domain.Consultation, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoConsultation
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, fmt.Errorf("find consultation: %w", err)
	}
	return mc.toDomain(), nil
}

// List returns matching consultations, newest first.
func (r *ConsultationRepository) List(ctx context.Context, f ports.ConsultationFilter) ([]*domain.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.DoctorID != "" {
		filter["doctor"] = f.DoctorID
	}
	if f.FarmerID != "" {
		filter["farmerId"] = f.FarmerID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoConsultation
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode consultations: %w", err)
	}
	out := make([]*domain.Consultation, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ConsultationRepository) UpdateDetails(ctx context.Context, c *domain.Consultation) error {
	oid, err := objectID(c.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": statusFilter(domain.StatusPending)}
	update := bson.M{"$set": bson.M{
		"fullName":    c.FullName,
		"phoneNumber": c.PhoneNumber,
		"service":     c.Service,
		"doctor":      c.DoctorID,
		"date":        c.Date,
		"time":        c.Time,
		"type":        string(c.Type),
		"updatedAt":   c.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update consultation: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.missOrLocked(ctx, oid)
	}
	return nil
}

func (r *ConsultationRepository) DeletePending(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "status": statusFilter(domain.StatusPending)})
	if err != nil {
		return fmt.Errorf("delete consultation: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.missOrLocked(ctx, oid)
	}
	return nil
}

// UpdateStatus is a compare-and-set on the stored status. The stored value
// is normalized to lowercase as a side effect.
func (r *ConsultationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ConsultationStatus, feedback string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": string(to), "updatedAt": time.Now().UTC()}
	if feedback != "" {
		set["feedback"] = feedback
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "status": statusFilter(from)}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update consultation status: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *ConsultationRepository) missOrLocked(ctx context.Context, oid primitive.ObjectID) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("count consultation: %w", err)
	}
	if n == 0 {
		return domain.ErrConsultationNotFound
	}
	return domain.ErrConsultationLocked
}

func (r *ConsultationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "farmerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
