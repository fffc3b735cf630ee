package bootstrap

import (
	"testing"

	"github.com/dalemusser/opshub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{OpsHubMongoDatabase: db}

	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	// Running again must not fail on already-existing indexes.
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}

	// The supervisor email index backs duplicate detection; make sure
	// it came up unique.
	cur, err := db.Collection("supervisors").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	defer cur.Close(ctx)

	foundUniqueEmail := false
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		key, _ := idx["key"].(bson.M)
		if key == nil {
			continue
		}
		if _, ok := key["email"]; ok {
			if unique, _ := idx["unique"].(bool); unique {
				foundUniqueEmail = true
			}
		}
	}
	if !foundUniqueEmail {
		t.Error("expected a unique index on supervisors.email")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := AppConfig{
		MongoURI:    "mongodb://localhost:27017",
		StorageType: "local",
	}
	if err := ValidateConfig(nil, valid, testLogger()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	badURI := valid
	badURI.MongoURI = "http://not-a-mongo-uri"
	if err := ValidateConfig(nil, badURI, testLogger()); err == nil {
		t.Error("expected error for non-mongodb URI")
	}

	badStorage := valid
	badStorage.StorageType = "s3"
	if err := ValidateConfig(nil, badStorage, testLogger()); err == nil {
		t.Error("expected error for unsupported storage type")
	}
}
