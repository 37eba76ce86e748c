// Package model holds the GORM-specific structs backing the domain entities.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"dispatch/internal/domain/entity"
)

// PartnerModel is the GORM-specific struct for the 'partners' table.
// Service areas are stored as a JSONB document and parsed into typed
// geometry at this boundary.
type PartnerModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Lat                  float64   `gorm:"type:decimal(9,6);not null"`
	Lon                  float64   `gorm:"type:decimal(9,6);not null"`
	Vehicle              string    `gorm:"type:varchar(20);not null;index"`
	RatingAvg            float64   `gorm:"type:decimal(3,2);not null;default:0"`
	TotalDeliveries      int       `gorm:"not null;default:0"`
	SuccessfulDeliveries int       `gorm:"not null;default:0"`
	ActiveDeliveryCount  int       `gorm:"not null;default:0"`
	MaxCapacity          int       `gorm:"not null;default:0"`
	IsOnline             bool      `gorm:"not null;default:false;index"`
	IsAvailable          bool      `gorm:"not null;default:false"`
	IsVerified           bool      `gorm:"not null;default:false"`
	ServiceAreas         []byte    `gorm:"type:jsonb"`
	JoinedAt             time.Time
	LastLocationUpdateAt time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (PartnerModel) TableName() string {
	return "partners"
}

// serviceAreaDoc is the JSON shape of one service area: a name plus polygon
// rings in [lon, lat] order, outer ring first.
type serviceAreaDoc struct {
	Name  string         `json:"name"`
	Rings [][][2]float64 `json:"rings"`
}

// ToDomain converts a GORM PartnerModel to a domain Partner entity.
func (m *PartnerModel) ToDomain() (*entity.Partner, error) {
	if m == nil {
		return nil, nil
	}

	areas, err := parseServiceAreas(m.ServiceAreas)
	if err != nil {
		return nil, errors.Wrapf(err, "partner %s has malformed service areas", m.ID)
	}

	return &entity.Partner{
		ID:                   m.ID,
		Location:             entity.GeoPoint{Lat: m.Lat, Lon: m.Lon},
		Vehicle:              entity.VehicleType(m.Vehicle),
		RatingAvg:            m.RatingAvg,
		TotalDeliveries:      m.TotalDeliveries,
		SuccessfulDeliveries: m.SuccessfulDeliveries,
		ActiveDeliveryCount:  m.ActiveDeliveryCount,
		MaxCapacity:          m.MaxCapacity,
		IsOnline:             m.IsOnline,
		IsAvailable:          m.IsAvailable,
		IsVerified:           m.IsVerified,
		ServiceAreas:         areas,
		JoinedAt:             m.JoinedAt,
		LastLocationUpdateAt: m.LastLocationUpdateAt,
	}, nil
}

func parseServiceAreas(raw []byte) ([]entity.ServiceArea, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []serviceAreaDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, errors.WithStack(err)
	}

	areas := make([]entity.ServiceArea, 0, len(docs))
	for _, doc := range docs {
		polygon := make(orb.Polygon, 0, len(doc.Rings))
		for _, ring := range doc.Rings {
			r := make(orb.Ring, 0, len(ring))
			for _, coord := range ring {
				r = append(r, orb.Point{coord[0], coord[1]})
			}
			polygon = append(polygon, r)
		}
		areas = append(areas, entity.ServiceArea{Name: doc.Name, Boundary: polygon})
	}

	return areas, nil
}
