package service

import (
	"context"
	"fmt"
	"testing"

	expensedomain "github.com/aquacoop/aquacoop/internal/expense/domain"
	"github.com/aquacoop/aquacoop/internal/expense/repository"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (expensedomain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&expensedomain.Expense{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func TestExpenseCRUD(t *testing.T) {
	svc, node := setupService(t)
	ctx := orgcontext.WithOrgID(context.Background(), node.Generate())

	amount := 320.0
	created, err := svc.Create(ctx, expensedomain.CreateRequest{
		Category:      expensedomain.CategoryMaintenance,
		Description:   "Pump seal replacement",
		DescriptionAr: "استبدال حشوة المضخة",
		Amount:        &amount,
		ApprovedBy:    "Treasurer",
	})
	require.NoError(t, err)
	require.Equal(t, expensedomain.CategoryMaintenance, created.Category)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, 320.0, got.Amount)

	newAmount := 350.0
	updated, err := svc.Update(ctx, created.ID, expensedomain.UpdateRequest{Amount: &newAmount})
	require.NoError(t, err)
	require.Equal(t, 350.0, updated.Amount)

	list, err := svc.List(ctx, expensedomain.ListRequest{Category: string(expensedomain.CategoryMaintenance)})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, expensedomain.ErrNotFound)
}

func TestExpenseValidation(t *testing.T) {
	svc, node := setupService(t)
	ctx := orgcontext.WithOrgID(context.Background(), node.Generate())

	amount := 10.0
	_, err := svc.Create(ctx, expensedomain.CreateRequest{
		Category:    "entertainment",
		Description: "d",
		Amount:      &amount,
	})
	require.ErrorIs(t, err, expensedomain.ErrInvalidCategory)

	_, err = svc.Create(ctx, expensedomain.CreateRequest{
		Category: expensedomain.CategoryOther,
		Amount:   &amount,
	})
	require.ErrorIs(t, err, expensedomain.ErrInvalidDescription)

	negative := -5.0
	_, err = svc.Create(ctx, expensedomain.CreateRequest{
		Category:    expensedomain.CategoryOther,
		Description: "d",
		Amount:      &negative,
	})
	require.ErrorIs(t, err, expensedomain.ErrInvalidAmount)

	_, err = svc.Create(context.Background(), expensedomain.CreateRequest{
		Category:    expensedomain.CategoryOther,
		Description: "d",
		Amount:      &amount,
	})
	require.ErrorIs(t, err, expensedomain.ErrInvalidOrganization)
}

func TestExpenseTenantIsolation(t *testing.T) {
	svc, node := setupService(t)
	orgA := orgcontext.WithOrgID(context.Background(), node.Generate())
	orgB := orgcontext.WithOrgID(context.Background(), node.Generate())

	amount := 50.0
	created, err := svc.Create(orgA, expensedomain.CreateRequest{
		Category:    expensedomain.CategoryElectricity,
		Description: "Station meter",
		Amount:      &amount,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(orgB, created.ID)
	require.ErrorIs(t, err, expensedomain.ErrNotFound)

	list, err := svc.List(orgB, expensedomain.ListRequest{})
	require.NoError(t, err)
	require.Empty(t, list)
}
