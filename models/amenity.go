package models

type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Amenities is the fixed catalog a listing can pick from.
var Amenities = []Amenity{
	{ID: "wifi", Name: "High-speed WiFi"},
	{ID: "parking", Name: "Parking included"},
	{ID: "fitness", Name: "Fitness center"},
	{ID: "pool", Name: "Swimming pool"},
	{ID: "kitchen", Name: "Modern kitchen"},
	{ID: "ac", Name: "Air conditioning"},
	{ID: "security", Name: "Security system"},
	{ID: "concierge", Name: "24/7 concierge"},
	{ID: "laundry", Name: "In-unit laundry"},
	{ID: "balcony", Name: "Private balcony"},
	{ID: "elevator", Name: "Elevator access"},
	{ID: "pet", Name: "Pet friendly"},
}

func LookupAmenity(id string) (Amenity, bool) {
	for _, a := range Amenities {
		if a.ID == id {
			return a, true
		}
	}
	return Amenity{}, false
}
