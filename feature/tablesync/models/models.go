package models

import "time"

// TowerConfig is a tower (site) configuration row in the destination store.
type TowerConfig struct {
	ID                   int64      `gorm:"primaryKey;column:id"`
	SiteID               string     `gorm:"column:site_id;type:varchar(250);not null;uniqueIndex"`
	SiteName             string     `gorm:"column:site_name;type:varchar(250);not null"`
	LoadType             string     `gorm:"column:load_type;type:varchar(5);not null"`
	TowerName            string     `gorm:"column:tower_name;type:varchar(200);not null"`
	Email                string     `gorm:"column:email;type:varchar(100);not null"`
	Contact              string     `gorm:"column:contact;type:varchar(15);not null"`
	Project              string     `gorm:"column:project;type:varchar(250);not null"`
	GstNo                string     `gorm:"column:gst_no;type:varchar(25);not null"`
	PanNo                *string    `gorm:"column:pan_no;type:varchar(15)"`
	Address              string     `gorm:"column:address;type:varchar(250);not null"`
	MaintenanceCharge    *float64   `gorm:"column:maintenance_charge;default:0"`
	MaintenanceGstCharge *float64   `gorm:"column:maintenance_gst_charge;default:0"`
	OtherCharges         *float64   `gorm:"column:other_charges;default:0"`
	OtherGstCharge       *float64   `gorm:"column:other_gst_charge;default:0"`
	DevLogo              *string    `gorm:"column:dev_logo;type:varchar(250)"`
	CreatedDate          time.Time  `gorm:"column:created_date;not null;autoCreateTime"`
	CreatedBy            string     `gorm:"column:created_by;type:varchar(150);not null"`
	EditedDate           *time.Time `gorm:"column:edited_date;default:CURRENT_TIMESTAMP"`
	EditedBy             *string    `gorm:"column:edited_by;type:varchar(150)"`
}

// TableName overrides the table name used by TowerConfig.
func (TowerConfig) TableName() string { return "tower_config" }

// TariffConfig is the per-meter tariff row in the destination store.
type TariffConfig struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	SiteID       string    `gorm:"column:site_id;type:varchar(250);not null"`
	MeterIP      string    `gorm:"column:meter_ip;type:varchar(40);not null;uniqueIndex"`
	Status       string    `gorm:"column:status;type:varchar(10);not null"`
	EBPrice      *float64  `gorm:"column:eb_price"`
	DGPrice      *float64  `gorm:"column:dg_price"`
	EBFullTariff string    `gorm:"column:eb_full_tariff;type:varchar(100);not null"`
	DGFullTariff *string   `gorm:"column:dg_full_tariff;type:varchar(100)"`
	Timestamp    time.Time `gorm:"column:timestamp;not null"`
	UpdatedBy    *string   `gorm:"column:updated_by;type:varchar(70);default:script"`
}

// TableName overrides the table name used by TariffConfig.
func (TariffConfig) TableName() string { return "tariff_config" }

// UserMeterDetail mirrors the legacy user_meter_detail table row for row, ids included.
type UserMeterDetail struct {
	ID            int64      `gorm:"primaryKey;autoIncrement:false;column:id"`
	UserID        *int64     `gorm:"column:user_id"`
	SiteID        string     `gorm:"column:site_id;type:varchar(250);not null"`
	MeterIP       string     `gorm:"column:meter_ip;type:varchar(40);not null"`
	MeterSerialNo *string    `gorm:"column:meter_serial_no;type:varchar(100)"`
	MeterType     *string    `gorm:"column:meter_type;type:varchar(50)"`
	FlatNo        *string    `gorm:"column:flat_no;type:varchar(50)"`
	Status        *string    `gorm:"column:status;type:varchar(10)"`
	CreatedAt     *time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName overrides the table name used by UserMeterDetail.
func (UserMeterDetail) TableName() string { return "user_meter_detail" }

// All returns a zero value of every destination model, for AutoMigrate in tests and local runs.
func All() []any {
	return []any{&TowerConfig{}, &TariffConfig{}, &UserMeterDetail{}}
}
