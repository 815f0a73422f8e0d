package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveLegacyOwner(t *testing.T) {
	oid := primitive.NewObjectID()

	cases := []struct {
		name     string
		doc      bson.M
		wantID   string
		wantName string
	}{
		{
			name:   "flat string owner id",
			doc:    bson.M{"ownerId": "65f0c0ffee", "owner": bson.M{"_id": "other", "name": "Jean"}},
			wantID: "65f0c0ffee", wantName: "Jean",
		},
		{
			name:   "flat object id",
			doc:    bson.M{"ownerId": oid},
			wantID: oid.Hex(),
		},
		{
			name:   "embedded owner document",
			doc:    bson.M{"owner": bson.M{"_id": oid, "name": "Marie"}},
			wantID: oid.Hex(), wantName: "Marie",
		},
		{
			name:   "embedded owner as ordered document",
			doc:    bson.M{"owner": bson.D{{Key: "_id", Value: "abc"}, {Key: "name", Value: "Paul"}}},
			wantID: "abc", wantName: "Paul",
		},
		{
			name:   "bare owner reference",
			doc:    bson.M{"owner": "abc123"},
			wantID: "abc123",
		},
		{
			name:   "blank flat id falls through",
			doc:    bson.M{"ownerId": "  ", "owner": oid},
			wantID: oid.Hex(),
		},
		{
			name: "no owner",
			doc:  bson.M{"name": "Stray"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, name := resolveLegacyOwner(tc.doc)
			if id != tc.wantID {
				t.Fatalf("id = %q, want %q", id, tc.wantID)
			}
			if name != tc.wantName {
				t.Fatalf("name = %q, want %q", name, tc.wantName)
			}
		})
	}
}

func TestPlanEmailNormalization(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	bobDup := primitive.NewObjectID()
	carol := primitive.NewObjectID()
	dan := primitive.NewObjectID()
	danDup := primitive.NewObjectID()

	plan := planEmailNormalization([]userEmail{
		{ID: alice, Email: "Alice@Farm.rw"},
		{ID: bob, Email: "bob@farm.rw"},
		{ID: bobDup, Email: "BOB@farm.rw"},
		{ID: carol, Email: "carol@farm.rw"},
		{ID: dan, Email: "Dan@Farm.rw"},
		{ID: danDup, Email: " dan@FARM.rw"},
		{ID: primitive.NewObjectID(), Email: ""},
	})

	if len(plan.rewrites) != 1 || plan.rewrites[0].ID != alice || plan.rewrites[0].Email != "alice@farm.rw" {
		t.Fatalf("unexpected rewrites: %+v", plan.rewrites)
	}

	collided := map[primitive.ObjectID]bool{}
	for _, u := range plan.collisions {
		collided[u.ID] = true
	}
	if len(plan.collisions) != 3 || !collided[bobDup] || !collided[dan] || !collided[danDup] {
		t.Fatalf("unexpected collisions: %+v", plan.collisions)
	}
	if collided[bob] || collided[carol] {
		t.Fatalf("already-normalized accounts must not be reported: %+v", plan.collisions)
	}
}

func TestPlanEmailNormalization_Idempotent(t *testing.T) {
	plan := planEmailNormalization([]userEmail{
		{ID: primitive.NewObjectID(), Email: "alice@farm.rw"},
		{ID: primitive.NewObjectID(), Email: "carol@farm.rw"},
	})
	if len(plan.rewrites) != 0 || len(plan.collisions) != 0 {
		t.Fatalf("normalized accounts should need no work: %+v", plan)
	}
}
