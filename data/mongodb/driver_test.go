package mongodb

import (
	"context"
	"testing"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
)

// TestDriverName verifies the driver returns the correct name
func TestDriverName(t *testing.T) {
	d := &driver{}
	if got := d.Name(); got != "mongodb" {
		t.Errorf("Name() = %v, want %v", got, "mongodb")
	}
}

// TestDriverRegistration verifies the MongoDB driver is properly registered
func TestDriverRegistration(t *testing.T) {
	driver, err := data.GetStoreDriver("mongodb")
	if err != nil {
		t.Fatalf("Failed to get MongoDB driver: %v", err)
	}
	if driver.Name() != "mongodb" {
		t.Errorf("Driver name = %v, want %v", driver.Name(), "mongodb")
	}
}

// TestDriverConnect_InvalidConfig tests that incomplete configs are rejected
// before any connection is attempted
func TestDriverConnect_InvalidConfig(t *testing.T) {
	d := &driver{}
	ctx := context.Background()

	cases := map[string]*config.Config{
		"nil config":  nil,
		"no mongodb":  {Driver: "mongodb"},
		"nil master":  {Driver: "mongodb", MongoDB: &config.MongoDB{}},
		"empty uri":   {Driver: "mongodb", MongoDB: &config.MongoDB{Master: &config.MongoNode{}}},
		"no database": {Driver: "mongodb", MongoDB: &config.MongoDB{Master: &config.MongoNode{URI: "mongodb://localhost:27017"}}},
		"bad strategy": {Driver: "mongodb", MongoDB: &config.MongoDB{
			Database: "shop",
			Master:   &config.MongoNode{URI: "mongodb://localhost:27017"},
			Strategy: "fastest",
		}},
	}
	for name, cfg := range cases {
		if _, err := d.Connect(ctx, cfg); err == nil {
			t.Errorf("%s: Connect() should return error", name)
		}
	}
}
