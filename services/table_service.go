package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dinehall/models"
	"dinehall/utils"
)

// TableService owns every write to Table.status, assigned_server and
// current_order. Table transitions are staff commands and are not gated by
// a transition table; the one hard rule is that leaving cleaning for
// available also clears the server assignment and the order back-reference.
type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

type TableSpec struct {
	Name         string
	Capacity     int
	Size         string
	Status       string
	CombinedWith []uint
}

func (ts *TableService) CreateTable(ctx context.Context, restaurantID string, spec TableSpec) (*models.Table, error) {
	if spec.Name == "" {
		return nil, utils.Validationf("table name is required")
	}
	if spec.Capacity <= 0 {
		return nil, utils.Validationf("capacity must be positive")
	}
	if spec.Size == "" {
		spec.Size = models.TableSizeMedium
	}
	if !models.ValidTableSize(spec.Size) {
		return nil, utils.Validationf("unknown table size %q", spec.Size)
	}
	if spec.Status == "" {
		spec.Status = models.TableAvailable
	}
	if !models.ValidTableStatus(spec.Status) {
		return nil, utils.Validationf("unknown table status %q", spec.Status)
	}

	table := models.Table{
		RestaurantID: restaurantID,
		Name:         spec.Name,
		Capacity:     spec.Capacity,
		Size:         spec.Size,
		Status:       spec.Status,
		CombinedWith: spec.CombinedWith,
	}
	if err := ts.DB.WithContext(ctx).Create(&table).Error; err != nil {
		return nil, utils.StoreUnavailable("could not create table", err)
	}

	utils.InfoLogger.Printf("Table %q created (id=%d, status=%s)", table.Name, table.ID, table.Status)
	return &table, nil
}

func (ts *TableService) GetTable(ctx context.Context, restaurantID string, tableID uint) (*models.Table, error) {
	var table models.Table
	err := ts.DB.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", tableID, restaurantID).
		First(&table).Error
	if err != nil {
		return nil, utils.WrapDB(err, "table %d not found", tableID)
	}
	return &table, nil
}

func (ts *TableService) ListTables(ctx context.Context, restaurantID string) ([]models.Table, error) {
	var tables []models.Table
	err := ts.DB.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name").
		Find(&tables).Error
	if err != nil {
		return nil, utils.StoreUnavailable("could not list tables", err)
	}
	return tables, nil
}

// UpdateStatus writes the new status. Moving from cleaning to available is
// the reset point of the table cycle and also clears current_order and
// assigned_server.
func (ts *TableService) UpdateStatus(ctx context.Context, restaurantID string, tableID uint, status string) (*models.Table, error) {
	if !models.ValidTableStatus(status) {
		return nil, utils.Validationf("unknown table status %q", status)
	}

	table, err := ts.GetTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if table.Status == models.TableCleaning && status == models.TableAvailable {
		updates["current_order"] = nil
		updates["assigned_server"] = nil
	}

	if err := ts.DB.WithContext(ctx).Model(table).Updates(updates).Error; err != nil {
		return nil, utils.StoreUnavailable("could not update table status", err)
	}

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, status)
	return ts.GetTable(ctx, restaurantID, tableID)
}

// AssignServer sets or clears the server working the table. A non-nil id
// must resolve to a staff member of the same restaurant.
func (ts *TableService) AssignServer(ctx context.Context, restaurantID string, tableID uint, serverID *uint) (*models.Table, error) {
	table, err := ts.GetTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	if serverID != nil {
		var staff models.Staff
		err := ts.DB.WithContext(ctx).
			Where("id = ? AND restaurant_id = ?", *serverID, restaurantID).
			First(&staff).Error
		if err != nil {
			return nil, utils.WrapDB(err, "staff %d not found", *serverID)
		}
	}

	updates := map[string]interface{}{
		"assigned_server": serverID,
		"updated_at":      time.Now(),
	}
	if err := ts.DB.WithContext(ctx).Model(table).Updates(updates).Error; err != nil {
		return nil, utils.StoreUnavailable("could not assign server", err)
	}
	return ts.GetTable(ctx, restaurantID, tableID)
}

// SetCurrentOrder is called by the order flows, not by staff directly.
func (ts *TableService) SetCurrentOrder(ctx context.Context, restaurantID string, tableID uint, orderID *uint) (*models.Table, error) {
	table, err := ts.GetTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"current_order": orderID,
		"updated_at":    time.Now(),
	}
	if err := ts.DB.WithContext(ctx).Model(table).Updates(updates).Error; err != nil {
		return nil, utils.StoreUnavailable("could not set current order", err)
	}
	return ts.GetTable(ctx, restaurantID, tableID)
}

// MarkOccupied flips the table to occupied and attaches the order in one
// write. Used by the public intake after the order exists.
func (ts *TableService) MarkOccupied(ctx context.Context, restaurantID string, tableID uint, orderID uint) error {
	res := ts.DB.WithContext(ctx).Model(&models.Table{}).
		Where("id = ? AND restaurant_id = ?", tableID, restaurantID).
		Updates(map[string]interface{}{
			"status":        models.TableOccupied,
			"current_order": orderID,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return utils.StoreUnavailable("could not mark table occupied", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundf("table %d not found", tableID)
	}
	return nil
}

// DeleteTable hard-deletes the row. Open orders referencing the table are
// intentionally not checked.
func (ts *TableService) DeleteTable(ctx context.Context, restaurantID string, tableID uint) error {
	table, err := ts.GetTable(ctx, restaurantID, tableID)
	if err != nil {
		return err
	}
	if err := ts.DB.WithContext(ctx).Delete(table).Error; err != nil {
		return utils.StoreUnavailable("could not delete table", err)
	}
	utils.InfoLogger.Printf("Table %d deleted", tableID)
	return nil
}
