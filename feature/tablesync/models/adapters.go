package models

import (
	"time"

	"table-sync/core/reconcile"
)

// Entity names, equal to the destination table names.
const (
	EntityTowerConfig     = "tower_config"
	EntityTariffConfig    = "tariff_config"
	EntityUserMeterDetail = "user_meter_detail"
)

// TowerConfigAdapter returns the accessor table for TowerConfig.
// created_date is left to the store.
func TowerConfigAdapter() reconcile.Adapter {
	type T = TowerConfig
	return reconcile.NewModel[T](EntityTowerConfig, reconcile.Accessors{
		"id":                     reconcile.IntField(func(e *T) *int64 { return &e.ID }),
		"site_id":                reconcile.StringField(func(e *T) *string { return &e.SiteID }),
		"site_name":              reconcile.StringField(func(e *T) *string { return &e.SiteName }),
		"load_type":              reconcile.StringField(func(e *T) *string { return &e.LoadType }),
		"tower_name":             reconcile.StringField(func(e *T) *string { return &e.TowerName }),
		"email":                  reconcile.StringField(func(e *T) *string { return &e.Email }),
		"contact":                reconcile.StringField(func(e *T) *string { return &e.Contact }),
		"project":                reconcile.StringField(func(e *T) *string { return &e.Project }),
		"gst_no":                 reconcile.StringField(func(e *T) *string { return &e.GstNo }),
		"pan_no":                 reconcile.OptionalStringField(func(e *T) **string { return &e.PanNo }),
		"address":                reconcile.StringField(func(e *T) *string { return &e.Address }),
		"maintenance_charge":     reconcile.OptionalFloatField(func(e *T) **float64 { return &e.MaintenanceCharge }),
		"maintenance_gst_charge": reconcile.OptionalFloatField(func(e *T) **float64 { return &e.MaintenanceGstCharge }),
		"other_charges":          reconcile.OptionalFloatField(func(e *T) **float64 { return &e.OtherCharges }),
		"other_gst_charge":       reconcile.OptionalFloatField(func(e *T) **float64 { return &e.OtherGstCharge }),
		"dev_logo":               reconcile.OptionalStringField(func(e *T) **string { return &e.DevLogo }),
		"created_by":             reconcile.StringField(func(e *T) *string { return &e.CreatedBy }),
		"edited_date":            reconcile.OptionalTimeField(func(e *T) **time.Time { return &e.EditedDate }),
		"edited_by":              reconcile.OptionalStringField(func(e *T) **string { return &e.EditedBy }),
	})
}

// TariffConfigAdapter returns the accessor table for TariffConfig.
func TariffConfigAdapter() reconcile.Adapter {
	type T = TariffConfig
	return reconcile.NewModel[T](EntityTariffConfig, reconcile.Accessors{
		"id":             reconcile.IntField(func(e *T) *int64 { return &e.ID }),
		"site_id":        reconcile.StringField(func(e *T) *string { return &e.SiteID }),
		"meter_ip":       reconcile.StringField(func(e *T) *string { return &e.MeterIP }),
		"status":         reconcile.StringField(func(e *T) *string { return &e.Status }),
		"eb_price":       reconcile.OptionalFloatField(func(e *T) **float64 { return &e.EBPrice }),
		"dg_price":       reconcile.OptionalFloatField(func(e *T) **float64 { return &e.DGPrice }),
		"eb_full_tariff": reconcile.StringField(func(e *T) *string { return &e.EBFullTariff }),
		"dg_full_tariff": reconcile.OptionalStringField(func(e *T) **string { return &e.DGFullTariff }),
		"timestamp":      reconcile.TimeField(func(e *T) *time.Time { return &e.Timestamp }),
		"updated_by":     reconcile.OptionalStringField(func(e *T) **string { return &e.UpdatedBy }),
	})
}

// UserMeterDetailAdapter returns the accessor table for UserMeterDetail.
func UserMeterDetailAdapter() reconcile.Adapter {
	type T = UserMeterDetail
	return reconcile.NewModel[T](EntityUserMeterDetail, reconcile.Accessors{
		"id":              reconcile.IntField(func(e *T) *int64 { return &e.ID }),
		"user_id":         reconcile.OptionalIntField(func(e *T) **int64 { return &e.UserID }),
		"site_id":         reconcile.StringField(func(e *T) *string { return &e.SiteID }),
		"meter_ip":        reconcile.StringField(func(e *T) *string { return &e.MeterIP }),
		"meter_serial_no": reconcile.OptionalStringField(func(e *T) **string { return &e.MeterSerialNo }),
		"meter_type":      reconcile.OptionalStringField(func(e *T) **string { return &e.MeterType }),
		"flat_no":         reconcile.OptionalStringField(func(e *T) **string { return &e.FlatNo }),
		"status":          reconcile.OptionalStringField(func(e *T) **string { return &e.Status }),
		"created_at":      reconcile.OptionalTimeField(func(e *T) **time.Time { return &e.CreatedAt }),
		"updated_at":      reconcile.OptionalTimeField(func(e *T) **time.Time { return &e.UpdatedAt }),
	})
}

// Registry returns a registry holding every destination adapter.
func Registry() *reconcile.Registry {
	return reconcile.NewRegistry(TowerConfigAdapter(), TariffConfigAdapter(), UserMeterDetailAdapter())
}
