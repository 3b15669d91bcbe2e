package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dinehall/models"
	"dinehall/utils"
)

const testRestaurant = "11111111-2222-3333-4444-555555555555"

func setupTableServiceDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Staff{}, &models.Table{}))
	return db
}

func TestCreateTableDefaults(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_create")
	svc := NewTableService(db)
	ctx := context.Background()

	table, err := svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T1", Capacity: 4})
	assert.NoError(t, err)
	assert.Equal(t, models.TableAvailable, table.Status)
	assert.Equal(t, models.TableSizeMedium, table.Size)
	assert.Nil(t, table.AssignedServer)
	assert.Nil(t, table.CurrentOrder)
}

func TestCreateTableValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_validate")
	svc := NewTableService(db)
	ctx := context.Background()

	_, err := svc.CreateTable(ctx, testRestaurant, TableSpec{Capacity: 4})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T1"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T1", Capacity: 4, Size: "huge"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T1", Capacity: 4, Status: "closed"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestTableLookupIsTenantScoped(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_tenant")
	svc := NewTableService(db)
	ctx := context.Background()

	table, err := svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T1", Capacity: 4})
	assert.NoError(t, err)

	_, err = svc.GetTable(ctx, "other-restaurant", table.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	got, err := svc.GetTable(ctx, testRestaurant, table.ID)
	assert.NoError(t, err)
	assert.Equal(t, "T1", got.Name)
}

func TestCleaningToAvailableClearsAssignments(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_cleaning")
	svc := NewTableService(db)
	ctx := context.Background()

	staff := models.Staff{RestaurantID: testRestaurant, Name: "Ana", Email: "ana@example.com", Password: "x", Role: models.RoleServer}
	assert.NoError(t, db.Create(&staff).Error)

	table, err := svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T1", Capacity: 4, Status: models.TableOccupied})
	assert.NoError(t, err)

	_, err = svc.AssignServer(ctx, testRestaurant, table.ID, &staff.ID)
	assert.NoError(t, err)
	assert.NoError(t, svc.MarkOccupied(ctx, testRestaurant, table.ID, 42))

	// Diners leave, the table is bussed.
	updated, err := svc.UpdateStatus(ctx, testRestaurant, table.ID, models.TableCleaning)
	assert.NoError(t, err)
	assert.Equal(t, models.TableCleaning, updated.Status)
	assert.NotNil(t, updated.CurrentOrder)
	assert.NotNil(t, updated.AssignedServer)

	// The reset point clears the order back-reference and the server.
	updated, err = svc.UpdateStatus(ctx, testRestaurant, table.ID, models.TableAvailable)
	assert.NoError(t, err)
	assert.Equal(t, models.TableAvailable, updated.Status)
	assert.Nil(t, updated.CurrentOrder)
	assert.Nil(t, updated.AssignedServer)
}

func TestOtherTransitionsKeepAssignments(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_keep")
	svc := NewTableService(db)
	ctx := context.Background()

	table, err := svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T2", Capacity: 2})
	assert.NoError(t, err)
	assert.NoError(t, svc.MarkOccupied(ctx, testRestaurant, table.ID, 42))

	updated, err := svc.UpdateStatus(ctx, testRestaurant, table.ID, models.TableCleaning)
	assert.NoError(t, err)
	assert.NotNil(t, updated.CurrentOrder)
	assert.Equal(t, uint(42), *updated.CurrentOrder)
}

func TestAssignServerRequiresStaffInRestaurant(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_assign")
	svc := NewTableService(db)
	ctx := context.Background()

	table, err := svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T3", Capacity: 4})
	assert.NoError(t, err)

	unknown := uint(999)
	_, err = svc.AssignServer(ctx, testRestaurant, table.ID, &unknown)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	other := models.Staff{RestaurantID: "other-restaurant", Name: "Bo", Email: "bo@example.com", Password: "x", Role: models.RoleServer}
	assert.NoError(t, db.Create(&other).Error)
	_, err = svc.AssignServer(ctx, testRestaurant, table.ID, &other.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	mine := models.Staff{RestaurantID: testRestaurant, Name: "Cam", Email: "cam@example.com", Password: "x", Role: models.RoleServer}
	assert.NoError(t, db.Create(&mine).Error)
	updated, err := svc.AssignServer(ctx, testRestaurant, table.ID, &mine.ID)
	assert.NoError(t, err)
	assert.Equal(t, mine.ID, *updated.AssignedServer)

	// nil clears the assignment without a staff lookup.
	updated, err = svc.AssignServer(ctx, testRestaurant, table.ID, nil)
	assert.NoError(t, err)
	assert.Nil(t, updated.AssignedServer)
}

func TestMarkOccupiedUnknownTable(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_occupy")
	svc := NewTableService(db)

	err := svc.MarkOccupied(context.Background(), testRestaurant, 404, 1)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestDeleteTable(t *testing.T) {
	utils.InitLogger()
	db := setupTableServiceDB(t, "tablesvc_delete")
	svc := NewTableService(db)
	ctx := context.Background()

	table, err := svc.CreateTable(ctx, testRestaurant, TableSpec{Name: "T4", Capacity: 6})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteTable(ctx, testRestaurant, table.ID))
	_, err = svc.GetTable(ctx, testRestaurant, table.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	err = svc.DeleteTable(ctx, testRestaurant, table.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
