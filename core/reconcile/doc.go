// Package reconcile implements the generic upsert pipeline used to keep destination tables in
// step with source tables.
//
// A sync pass for one entity flows through these steps:
//
//  1. Dedupe: collapse source records sharing a logical key (last occurrence wins).
//  2. Merge: optionally left-join secondary record sets onto the primary set.
//  3. Map: rename source fields to destination fields through a ColumnMapping.
//  4. Reconcile: classify each candidate as insert, update or unchanged against the
//     existing destination entities, producing a WriteBatch.
//  5. Write: apply the WriteBatch atomically with a BatchWriter.
//
// Entity types are described by an Adapter. Model[E] implements it for any gorm model from an
// explicit accessor table, so no reflection is involved in reading or writing fields:
//
//	adapter := reconcile.NewModel[TariffConfig]("tariff_config", reconcile.Accessors{
//	    "customer_ip": reconcile.StringField(func(t *TariffConfig) *string { return &t.CustomerIP }),
//	    "price":       reconcile.OptionalFloatField(func(t *TariffConfig) **float64 { return &t.Price }),
//	})
//
// Values are compared after normalization (see Value.Equal), so 5 and 5.0 match and timestamps
// compare on their wall clock. Reconcile never deletes destination rows.
package reconcile
