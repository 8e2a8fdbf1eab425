// Package polyline decodes Google's encoded polyline format, the compact
// route encoding carried on each ride record.
// Format reference: https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

// Point is a decoded geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Decode decodes an encoded polyline into its coordinate sequence at the
// standard precision of 5 decimal places. An empty or truncated encoding
// yields however many points decoded cleanly; it never panics.
func Decode(encoded string) []Point {
	if encoded == "" {
		return nil
	}

	points := make([]Point, 0, len(encoded)/4)
	var lat, lon int
	i := 0

	for i < len(encoded) {
		dLat, next, ok := decodeDelta(encoded, i)
		if !ok {
			break
		}
		i = next
		lat += dLat

		dLon, next, ok := decodeDelta(encoded, i)
		if !ok {
			break
		}
		i = next
		lon += dLon

		points = append(points, Point{
			Lat: float64(lat) / 1e5,
			Lon: float64(lon) / 1e5,
		})
	}
	return points
}

// decodeDelta reads one varint-encoded signed delta starting at i. The
// third return is false when the encoding ends mid-value.
func decodeDelta(encoded string, i int) (int, int, bool) {
	var result, shift int
	complete := false

	for i < len(encoded) {
		b := int(encoded[i]) - 63
		i++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			complete = true
			break
		}
	}
	if !complete {
		return 0, i, false
	}

	if result&1 != 0 {
		return ^(result >> 1), i, true
	}
	return result >> 1, i, true
}
