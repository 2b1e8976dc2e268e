package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func TestClientOptions_Defaults(t *testing.T) {
	opts := clientOptions(Config{URI: "mongodb://localhost:27017"})

	if opts.AppName == nil || *opts.AppName != appName {
		t.Fatalf("expected app name %q, got %v", appName, opts.AppName)
	}
	if opts.MaxPoolSize == nil || *opts.MaxPoolSize != defaultMaxPoolSize {
		t.Fatalf("expected pool size %d, got %v", defaultMaxPoolSize, opts.MaxPoolSize)
	}
	if opts.ServerSelectionTimeout == nil || *opts.ServerSelectionTimeout != defaultTimeout {
		t.Fatalf("expected selection timeout %v, got %v", defaultTimeout, opts.ServerSelectionTimeout)
	}
	if opts.ReadPreference == nil || opts.ReadPreference.Mode() != readpref.PrimaryMode {
		t.Fatalf("expected primary read preference")
	}
}

func TestClientOptions_Overrides(t *testing.T) {
	opts := clientOptions(Config{URI: "mongodb://db:27017", MaxPoolSize: 5, Timeout: 2 * time.Second})

	if *opts.MaxPoolSize != 5 {
		t.Fatalf("expected pool size 5, got %d", *opts.MaxPoolSize)
	}
	if *opts.ServerSelectionTimeout != 2*time.Second {
		t.Fatalf("expected 2s selection timeout, got %v", *opts.ServerSelectionTimeout)
	}
}
