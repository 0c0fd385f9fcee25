package testutil

import (
	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/service"
)

// SampleVehicles is a small price list with two models.
func SampleVehicles() []model.Vehicle {
	return []model.Vehicle{
		{Model: "Civic", SubModel: "EL", Price: 1000000},
		{Model: "Civic", SubModel: "RS", Price: 1200000},
		{Model: "City", SubModel: "V", Price: 600000, ImageURL: "https://drive.google.com/uc?export=view&id=abc123"},
	}
}

// SampleRates has a 30% tier so both quoting schemes are reachable. The 20%
// tier offers only the shorter periods.
func SampleRates() []model.RateRow {
	return []model.RateRow{
		{TierPercent: 10, Rates: map[model.Period]float64{48: 1.9, 60: 2, 72: 2.2, 84: 2.5}},
		{TierPercent: 20, Rates: map[model.Period]float64{48: 1.5, 60: 1.6}},
		{TierPercent: 30, Rates: map[model.Period]float64{48: 1, 60: 1.2, 72: 1.5, 84: 1.8}},
	}
}

// SampleSnapshot combines SampleVehicles and SampleRates.
func SampleSnapshot() *service.Snapshot {
	return &service.Snapshot{
		Source:   "testdata",
		Vehicles: SampleVehicles(),
		Rates:    SampleRates(),
	}
}
