package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aquacoop/aquacoop/internal/orgcontext"
	settingdomain "github.com/aquacoop/aquacoop/internal/setting/domain"
	"github.com/aquacoop/aquacoop/internal/setting/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (settingdomain.Service, context.Context) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&settingdomain.Setting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, orgcontext.WithOrgID(context.Background(), node.Generate())
}

func TestUpsertTariffRoundTrip(t *testing.T) {
	svc, ctx := setupService(t)

	payload := json.RawMessage(`{
		"currency": "MAD",
		"fixed_fee": 10,
		"maintenance_fee": 5,
		"tiers": [
			{"up_to_m3": 6, "price_per_unit": 2.5},
			{"price_per_unit": 4}
		]
	}`)

	if _, err := svc.Upsert(ctx, settingdomain.UpsertRequest{Key: settingdomain.KeyTariff, Value: payload}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := svc.Get(ctx, settingdomain.KeyTariff)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	var tariff settingdomain.TariffSettings
	if err := json.Unmarshal(got.Value, &tariff); err != nil {
		t.Fatalf("decode stored value: %v", err)
	}
	if tariff.Currency != "MAD" || len(tariff.Tiers) != 2 {
		t.Fatalf("round trip mismatch: %+v", tariff)
	}
}

func TestUpsertIsUpsert(t *testing.T) {
	svc, ctx := setupService(t)

	first := json.RawMessage(`{"due_days": 15, "billing_day": 1, "late_fee_percent": 0}`)
	second := json.RawMessage(`{"due_days": 30, "billing_day": 5, "late_fee_percent": 2}`)

	if _, err := svc.Upsert(ctx, settingdomain.UpsertRequest{Key: settingdomain.KeyBilling, Value: first}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := svc.Upsert(ctx, settingdomain.UpsertRequest{Key: settingdomain.KeyBilling, Value: second}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected a single row per key, got %d", len(list))
	}

	var billing settingdomain.BillingSettings
	if err := json.Unmarshal(list[0].Value, &billing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if billing.DueDays != 30 {
		t.Fatalf("expected latest value to win, got due_days %d", billing.DueDays)
	}
}

func TestUpsertRejectsBadPayloads(t *testing.T) {
	svc, ctx := setupService(t)

	cases := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{"unknown key", "branding", `{}`, settingdomain.ErrInvalidKey},
		{"unknown field", settingdomain.KeyBilling, `{"due_days": 15, "billing_day": 1, "surprise": true}`, settingdomain.ErrInvalidValue},
		{"failing validation", settingdomain.KeyBilling, `{"due_days": 400, "billing_day": 1}`, settingdomain.ErrInvalidValue},
		{"bad language", settingdomain.KeyNotifications, `{"preferred_language": "en"}`, settingdomain.ErrInvalidValue},
		{"empty tiers", settingdomain.KeyTariff, `{"currency": "MAD", "tiers": []}`, settingdomain.ErrInvalidValue},
		{"empty payload", settingdomain.KeyTariff, ``, settingdomain.ErrInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, settingdomain.UpsertRequest{
				Key:   tc.key,
				Value: json.RawMessage(tc.value),
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGetMissingKey(t *testing.T) {
	svc, ctx := setupService(t)

	if _, err := svc.Get(ctx, settingdomain.KeyNotifications); !errors.Is(err, settingdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "nope"); !errors.Is(err, settingdomain.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
