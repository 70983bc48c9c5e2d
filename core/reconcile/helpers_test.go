package reconcile

import (
	"time"
)

type meter struct {
	ID      int64      `gorm:"column:id;primaryKey"`
	MeterIP string     `gorm:"column:meter_ip"`
	EBPrice *float64   `gorm:"column:eb_price"`
	Status  *string    `gorm:"column:status"`
	ReadAt  *time.Time `gorm:"column:read_at"`
}

func (meter) TableName() string { return "meters" }

func newMeterAdapter() *Model[meter] {
	return NewModel[meter]("meters", Accessors{
		"id":       IntField(func(m *meter) *int64 { return &m.ID }),
		"meter_ip": StringField(func(m *meter) *string { return &m.MeterIP }),
		"eb_price": OptionalFloatField(func(m *meter) **float64 { return &m.EBPrice }),
		"status":   OptionalStringField(func(m *meter) **string { return &m.Status }),
		"read_at":  OptionalTimeField(func(m *meter) **time.Time { return &m.ReadAt }),
	})
}

func ptr[T any](v T) *T { return &v }

func mustMapping(pairs ...string) ColumnMapping {
	mp := make([]MappingPair, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		mp = append(mp, MappingPair{Source: pairs[i], Destination: pairs[i+1]})
	}
	m, err := NewColumnMapping(mp...)
	if err != nil {
		panic(err)
	}
	return m
}
