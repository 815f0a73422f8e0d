package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// BackfillReport counts the documents each step rewrote.
type BackfillReport struct {
	AnimalOwners       int
	ConsultationStatus int
	PasswordsHashed    int
	EmailsNormalized   int
	// EmailCollisions are accounts left mixed-case because another account
	// already owns the lower-case address. They are also counted in Unresolved.
	EmailCollisions int
	Unresolved      int
}

// Migrator rewrites records left in historical encodings: animal owners
// stored under owner or owner._id, mixed-case consultation statuses,
// plaintext passwords and mixed-case account emails. Every step is idempotent.
type Migrator struct {
	db   *mongo.Database
	hash func(string) (string, error)
	log  zerolog.Logger
}

func NewMigrator(db *mongo.Database, hash func(string) (string, error), log zerolog.Logger) *Migrator {
	return &Migrator{db: db, hash: hash, log: log}
}

func (m *Migrator) Run(ctx context.Context) (BackfillReport, error) {
	var report BackfillReport

	steps := []struct {
		name string
		run  func(context.Context, *BackfillReport) error
	}{
		{"animal owners", m.backfillAnimalOwners},
		{"consultation status", m.normalizeConsultationStatus},
		{"passwords", m.hashPlaintextPasswords},
		{"user emails", m.normalizeUserEmails},
	}
	for _, step := range steps {
		if err := step.run(ctx, &report); err != nil {
			return report, fmt.Errorf("backfill %s: %w", step.name, err)
		}
	}

	m.log.Info().
		Int("animal_owners", report.AnimalOwners).
		Int("consultation_status", report.ConsultationStatus).
		Int("passwords_hashed", report.PasswordsHashed).
		Int("emails_normalized", report.EmailsNormalized).
		Int("email_collisions", report.EmailCollisions).
		Int("unresolved", report.Unresolved).
		Msg("backfill complete")
	return report, nil
}

func (m *Migrator) backfillAnimalOwners(ctx context.Context, report *BackfillReport) error {
	coll := m.db.Collection(animalsCollection)
	filter := bson.M{"$or": bson.A{
		bson.M{"ownerId": bson.M{"$exists": false}},
		bson.M{"ownerId": bson.M{"$not": bson.M{"$type": "string"}}},
		bson.M{"ownerId": ""},
		bson.M{"owner": bson.M{"$exists": true}},
	}}

	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		ownerID, ownerName := resolveLegacyOwner(doc)
		if ownerID == "" {
			report.Unresolved++
			m.log.Warn().Interface("animal_id", doc["_id"]).Msg("animal has no resolvable owner")
			continue
		}

		set := bson.M{"ownerId": ownerID}
		if name, _ := doc["ownerName"].(string); name == "" && ownerName != "" {
			set["ownerName"] = ownerName
		}
		update := bson.M{"$set": set, "$unset": bson.M{"owner": ""}}
		if _, err := coll.UpdateByID(ctx, doc["_id"], update); err != nil {
			return err
		}
		report.AnimalOwners++
	}
	return cur.Err()
}

func (m *Migrator) normalizeConsultationStatus(ctx context.Context, report *BackfillReport) error {
	coll := m.db.Collection(consultationsCollection)
	filter := bson.M{"status": bson.M{"$not": primitive.Regex{Pattern: "^(pending|accepted|rejected|completed)$"}}}

	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID     primitive.ObjectID `bson:"_id"`
			Status string             `bson:"status"`
		}
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		status, err := domain.ParseConsultationStatus(doc.Status)
		if err != nil {
			report.Unresolved++
			m.log.Warn().Str("consultation_id", doc.ID.Hex()).Str("status", doc.Status).Msg("unknown consultation status")
			continue
		}
		if _, err := coll.UpdateByID(ctx, doc.ID, bson.M{"$set": bson.M{"status": string(status)}}); err != nil {
			return err
		}
		report.ConsultationStatus++
	}
	return cur.Err()
}

func (m *Migrator) hashPlaintextPasswords(ctx context.Context, report *BackfillReport) error {
	coll := m.db.Collection(usersCollection)

	cur, err := coll.Find(ctx, bson.M{"password": bson.M{"$exists": true}})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID           primitive.ObjectID `bson:"_id"`
			Password     string             `bson:"password"`
			PasswordHash string             `bson:"passwordHash"`
		}
		if err := cur.Decode(&doc); err != nil {
			return err
		}

		update := bson.M{"$unset": bson.M{"password": ""}}
		if doc.PasswordHash == "" && doc.Password != "" {
			hash, err := m.hash(doc.Password)
			if err != nil {
				return err
			}
			update["$set"] = bson.M{"passwordHash": hash}
		}
		if _, err := coll.UpdateByID(ctx, doc.ID, update); err != nil {
			return err
		}
		report.PasswordsHashed++
	}
	return cur.Err()
}

type userEmail struct {
	ID    primitive.ObjectID `bson:"_id"`
	Email string             `bson:"email"`
}

// emailPlan lists the rewrites that are safe to apply and the accounts whose
// lower-case address is already taken by another account.
type emailPlan struct {
	rewrites   []userEmail
	collisions []userEmail
}

// planEmailNormalization groups accounts by their normalized address. An
// account is rewritten only when it is the sole owner of that address.
func planEmailNormalization(users []userEmail) emailPlan {
	groups := make(map[string][]userEmail)
	var order []string
	for _, u := range users {
		key := domain.NormalizeEmail(u.Email)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], u)
	}

	var plan emailPlan
	for _, key := range order {
		group := groups[key]
		for _, u := range group {
			if u.Email == key {
				continue
			}
			if len(group) > 1 {
				plan.collisions = append(plan.collisions, u)
				continue
			}
			plan.rewrites = append(plan.rewrites, userEmail{ID: u.ID, Email: key})
		}
	}
	return plan
}

func (m *Migrator) normalizeUserEmails(ctx context.Context, report *BackfillReport) error {
	coll := m.db.Collection(usersCollection)

	opts := options.Find().SetProjection(bson.M{"email": 1})
	cur, err := coll.Find(ctx, bson.M{"email": bson.M{"$type": "string"}}, opts)
	if err != nil {
		return err
	}
	var users []userEmail
	if err := cur.All(ctx, &users); err != nil {
		return err
	}

	plan := planEmailNormalization(users)
	for _, u := range plan.collisions {
		report.EmailCollisions++
		report.Unresolved++
		m.log.Warn().
			Str("user_id", u.ID.Hex()).
			Str("email", u.Email).
			Msg("email collides with another account after lower-casing")
	}
	for _, u := range plan.rewrites {
		if _, err := coll.UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{"email": u.Email}}); err != nil {
			return err
		}
		report.EmailsNormalized++
	}
	return nil
}

// resolveLegacyOwner extracts the owner id and name from an animal document
// in any of its historical shapes.
func resolveLegacyOwner(doc bson.M) (id, name string) {
	var embeddedID, ref string
	switch owner := doc["owner"].(type) {
	case bson.M:
		embeddedID = idString(owner["_id"])
		name, _ = owner["name"].(string)
	case bson.D:
		for _, e := range owner {
			switch e.Key {
			case "_id":
				embeddedID = idString(e.Value)
			case "name":
				name, _ = e.Value.(string)
			}
		}
	default:
		ref = idString(owner)
	}
	return domain.CanonicalOwner(idString(doc["ownerId"]), embeddedID, ref), name
}

func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case primitive.ObjectID:
		if t.IsZero() {
			return ""
		}
		return t.Hex()
	}
	return ""
}
