package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lupashe/backoffice/internal/core/domain"
)

func TestDuplicateKeyError(t *testing.T) {
	emailDup := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: lupashe.users index: uniq_email dup key: { email: "a@b.c" }`,
	}}}
	if !mongo.IsDuplicateKeyError(emailDup) {
		t.Fatal("expected a duplicate key error")
	}
	if got := duplicateKeyError(emailDup); !errors.Is(got, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", got)
	}

	userDup := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: lupashe.users index: uniq_username dup key: { username: "alice" }`,
	}}}
	if got := duplicateKeyError(userDup); !errors.Is(got, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", got)
	}
}

func TestMongoUserBSONOmitsEmptyEmail(t *testing.T) {
	raw, err := bson.Marshal(mongoUser{Username: "alice", PasswordHash: "h", Role: "CONSULTOR"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := bson.Raw(raw).LookupErr("email"); err == nil {
		t.Fatal("empty email must not be stored, or the partial unique index would reject a second user")
	}
	if _, err := bson.Raw(raw).LookupErr("_id"); err == nil {
		t.Fatal("zero _id must be omitted so the driver assigns one")
	}
}

func TestToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	u := mongoUser{ID: oid, Username: "bob", Email: "b@lupashe.com", PasswordHash: "h", Role: "ADMIN", CreatedAt: ts, UpdatedAt: ts}.toDomain()

	if u.ID != oid.Hex() || u.Role != domain.RoleAdmin || u.Email != "b@lupashe.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.CreatedAt.Location() != time.UTC {
		t.Fatalf("timestamps must be UTC")
	}
}
