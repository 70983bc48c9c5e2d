package tablesync

import (
	"sort"

	"table-sync/core/reconcile"
	"table-sync/feature/tablesync/models"
)

// Built-in family names.
const (
	FamilyTables          = "tables"
	FamilySelectiveColumn = "selective-column"
	FamilyCombine         = "combine"
)

func identity(fields ...string) []reconcile.MappingPair {
	out := make([]reconcile.MappingPair, len(fields))
	for i, f := range fields {
		out[i] = reconcile.MappingPair{Source: f, Destination: f}
	}
	return out
}

// DefaultFamilies returns the job families used when no jobs file is configured.
func DefaultFamilies() []Family {
	return []Family{
		{
			Name: FamilyTables,
			Jobs: []Job{{
				Name:    "user_meter_detail",
				Entity:  models.EntityUserMeterDetail,
				Key:     []string{"id"},
				Sources: []SourceTable{{Database: "db_ems", Table: "user_meter_detail", Key: "id"}},
			}},
		},
		{
			Name: FamilySelectiveColumn,
			Jobs: []Job{{
				Name:   "tower_config",
				Entity: models.EntityTowerConfig,
				Key:    []string{"site_id"},
				Sources: []SourceTable{{
					Database: "db_office",
					Table:    "re_developer_config",
					Columns: []string{
						"site_id", "site_name", "load_type", "nam", "email", "contact", "project",
						"gst_no", "pan_no", "monthly_maintain", "monthly_maintain_gst", "other_charges",
						"other_gst_charge", "address", "dev_logo", "created_by", "edited_by",
					},
					Key: "site_id",
				}},
				Mapping: append([]reconcile.MappingPair{
					{Source: "nam", Destination: "tower_name"},
					{Source: "monthly_maintain", Destination: "maintenance_charge"},
					{Source: "monthly_maintain_gst", Destination: "maintenance_gst_charge"},
				}, identity(
					"site_id", "site_name", "load_type", "email", "contact", "project", "gst_no", "pan_no",
					"other_charges", "other_gst_charge", "address", "dev_logo", "created_by", "edited_by",
				)...),
			}},
		},
		{
			Name: FamilyCombine,
			Jobs: []Job{{
				Name:   "tariff_config",
				Entity: models.EntityTariffConfig,
				Key:    []string{"meter_ip"},
				Sources: []SourceTable{
					{
						Database: "db_office",
						Table:    "tbl_site_initialization",
						Columns:  []string{"site_id", "meter_ip", "status", "timestamp"},
						Key:      "meter_ip",
					},
					{
						Database: "db_office",
						Table:    "tbl_backup_dcu_info",
						Columns:  []string{"meter_address", "dg_price", "eb_price", "dg_full_tariff", "eb_full_tariff"},
						Key:      "meter_address",
					},
				},
				Mapping: identity(
					"site_id", "meter_ip", "status", "eb_price", "dg_price", "eb_full_tariff", "dg_full_tariff", "timestamp",
				),
			}},
		},
	}
}

// Catalog indexes families by name.
type Catalog map[string]Family

// NewCatalog builds a catalog from families; a later family replaces an earlier one of the same name.
func NewCatalog(families ...Family) Catalog {
	c := make(Catalog, len(families))
	for _, f := range families {
		c[f.Name] = f
	}
	return c
}

// Names returns the family names, sorted.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the family registered under name.
func (c Catalog) Get(name string) (Family, bool) {
	f, ok := c[name]
	return f, ok
}
