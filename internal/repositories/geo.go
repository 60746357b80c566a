package repository

import (
	"math"

	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

const (
	earthRadiusMeters = 6371008.8
	metersPerDegree   = 111320.0
)

type Point struct {
	Lat float64
	Lng float64
}

type GeoHit struct {
	Gig            model.Gig
	DistanceMeters float64
}

func HaversineMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

type boundingBox struct {
	minLat, maxLat float64
	minLng, maxLng float64
	// allLng is set when the box spans the antimeridian or a pole and the
	// longitude bound would be wrong.
	allLng bool
}

// boxAround returns a box that contains every point within meters of c. It
// over-selects slightly; callers refine with HaversineMeters.
func boxAround(c Point, meters float64) boundingBox {
	dLat := meters / metersPerDegree
	b := boundingBox{
		minLat: math.Max(-90, c.Lat-dLat),
		maxLat: math.Min(90, c.Lat+dLat),
	}

	cos := math.Cos(c.Lat * math.Pi / 180)
	if cos < 1e-6 || b.minLat <= -90 || b.maxLat >= 90 {
		b.allLng = true
		return b
	}

	dLng := meters / (metersPerDegree * cos)
	b.minLng = c.Lng - dLng
	b.maxLng = c.Lng + dLng
	if b.minLng < -180 || b.maxLng > 180 {
		b.allLng = true
	}
	return b
}
