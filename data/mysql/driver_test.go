package mysql

import (
	"context"
	"testing"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
)

func TestDriverName(t *testing.T) {
	d := &driver{}
	if got := d.Name(); got != "mysql" {
		t.Errorf("Name() = %q, want %q", got, "mysql")
	}
}

func TestDriverRegistration(t *testing.T) {
	d, err := data.GetStoreDriver("mysql")
	if err != nil {
		t.Fatalf("Failed to get mysql driver: %v", err)
	}
	if d.Name() != "mysql" {
		t.Errorf("Driver name = %v, want %v", d.Name(), "mysql")
	}
}

func TestDriverConnect_InvalidConfig(t *testing.T) {
	d := &driver{}
	ctx := context.Background()

	for _, cfg := range []*config.Config{
		nil,
		{Driver: "mysql"},
		{Driver: "mysql", Database: &config.Database{}},
		{Driver: "mysql", Database: &config.Database{Master: &config.DBNode{}}},
	} {
		if _, err := d.Connect(ctx, cfg); err == nil {
			t.Errorf("Connect(%+v) should return error", cfg)
		}
	}
}
