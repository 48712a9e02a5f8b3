package db

import (
	"errors"

	"basinmap/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStationGateway struct {
	DB *gorm.DB
}

var _ StationGateway = (*GormStationGateway)(nil)

func NewGormStationGateway(db *gorm.DB) *GormStationGateway {
	return &GormStationGateway{DB: db}
}

// filtered applies the optional network and HUC-prefix filters
func (gateway *GormStationGateway) filtered(networkCode string, hucPrefix string) *gorm.DB {
	query := gateway.DB.Model(&entity.Station{})
	if networkCode != "" {
		query = query.Where("network_code = ?", networkCode)
	}
	if hucPrefix != "" {
		query = query.Where("huc LIKE ?", hucPrefix+"%")
	}
	return query
}

// FindAll retrieves station snapshots with pagination and optional filters
func (gateway *GormStationGateway) FindAll(page int, size int, networkCode string, hucPrefix string) ([]entity.Station, error) {
	if page < 0 {
		page = 0
	}

	stations := make([]entity.Station, 0)
	err := gateway.filtered(networkCode, hucPrefix).
		Order("station_triplet ASC").
		Offset(page * size).
		Limit(size).
		Find(&stations).Error
	if err != nil {
		return nil, err
	}

	return stations, nil
}

// Count returns the number of stations matching the filters
func (gateway *GormStationGateway) Count(networkCode string, hucPrefix string) (int64, error) {
	var count int64
	err := gateway.filtered(networkCode, hucPrefix).Count(&count).Error
	return count, err
}

// FindAllWithKeysetPagination retrieves stations using key-set pagination by triplet
func (gateway *GormStationGateway) FindAllWithKeysetPagination(lastTriplet string, size int) ([]entity.Station, error) {
	query := gateway.DB.Model(&entity.Station{})
	if lastTriplet != "" {
		query = query.Where("station_triplet > ?", lastTriplet)
	}

	stations := make([]entity.Station, 0)
	err := query.
		Order("station_triplet ASC").
		Limit(size).
		Find(&stations).Error
	if err != nil {
		return nil, err
	}

	return stations, nil
}

// FindByTriplet retrieves one station snapshot, nil when absent
func (gateway *GormStationGateway) FindByTriplet(triplet string) (*entity.Station, error) {
	var station entity.Station
	err := gateway.DB.First(&station, "station_triplet = ?", triplet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &station, nil
}

// UpsertStations inserts or updates station snapshots by triplet
func (gateway *GormStationGateway) UpsertStations(stations []entity.Station) error {
	if len(stations) == 0 {
		return nil
	}

	return gateway.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "station_triplet"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"station_id", "state_code", "network_code", "name", "county_name",
			"huc", "elevation", "latitude", "longitude",
			"is_forecast_point", "is_reservoir", "updated_at",
		}),
	}).Create(&stations).Error
}

// DeleteByTriplet removes a station and its readings and forecasts
func (gateway *GormStationGateway) DeleteByTriplet(triplet string) error {
	return gateway.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station_triplet = ?", triplet).Delete(&entity.Reading{}).Error; err != nil {
			return err
		}
		if err := tx.Where("station_triplet = ?", triplet).Delete(&entity.Forecast{}).Error; err != nil {
			return err
		}
		return tx.Where("station_triplet = ?", triplet).Delete(&entity.Station{}).Error
	})
}

// FindReadings returns the stored observations of a station in date order
func (gateway *GormStationGateway) FindReadings(triplet string) ([]entity.Reading, error) {
	readings := make([]entity.Reading, 0)
	err := gateway.DB.
		Where("station_triplet = ?", triplet).
		Order("date ASC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

// ReplaceReadings swaps the stored observations of a station in one transaction
func (gateway *GormStationGateway) ReplaceReadings(triplet string, readings []entity.Reading) error {
	return gateway.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station_triplet = ?", triplet).Delete(&entity.Reading{}).Error; err != nil {
			return err
		}
		if len(readings) == 0 {
			return nil
		}
		return tx.Create(&readings).Error
	})
}

// FindForecasts returns the stored forecasts of a station in publication order
func (gateway *GormStationGateway) FindForecasts(triplet string) ([]entity.Forecast, error) {
	forecasts := make([]entity.Forecast, 0)
	err := gateway.DB.
		Where("station_triplet = ?", triplet).
		Order("publication_date ASC, exceedance ASC").
		Find(&forecasts).Error
	if err != nil {
		return nil, err
	}
	return forecasts, nil
}

// ReplaceForecasts swaps the stored forecasts of a station in one transaction
func (gateway *GormStationGateway) ReplaceForecasts(triplet string, forecasts []entity.Forecast) error {
	return gateway.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station_triplet = ?", triplet).Delete(&entity.Forecast{}).Error; err != nil {
			return err
		}
		if len(forecasts) == 0 {
			return nil
		}
		return tx.Create(&forecasts).Error
	})
}
