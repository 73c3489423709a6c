// Package airports is the static reference set the dispatcher works against.
// Loaded once at start, never mutated.
package airports

import "github.com/ddrozdov/flight-dispatch/internal/models"

var All = []models.Airport{
	{ID: "SVO", Name: "Sheremetyevo", City: "Moscow", Lat: 55.9726, Lon: 37.4146, Region: "central"},
	{ID: "DME", Name: "Domodedovo", City: "Moscow", Lat: 55.4088, Lon: 37.9063, Region: "central"},
	{ID: "VKO", Name: "Vnukovo", City: "Moscow", Lat: 55.5915, Lon: 37.2615, Region: "central"},
	{ID: "LED", Name: "Pulkovo", City: "Saint Petersburg", Lat: 59.8003, Lon: 30.2625, Region: "northwest"},
	{ID: "MMK", Name: "Murmansk", City: "Murmansk", Lat: 68.7817, Lon: 32.7508, Region: "northwest"},
	{ID: "KGD", Name: "Khrabrovo", City: "Kaliningrad", Lat: 54.89, Lon: 20.5926, Region: "northwest"},
	{ID: "AER", Name: "Sochi", City: "Sochi", Lat: 43.4499, Lon: 39.9566, Region: "south"},
	{ID: "KRR", Name: "Pashkovsky", City: "Krasnodar", Lat: 45.0347, Lon: 39.1705, Region: "south"},
	{ID: "ROV", Name: "Platov", City: "Rostov-on-Don", Lat: 47.4939, Lon: 39.9247, Region: "south"},
	{ID: "SVX", Name: "Koltsovo", City: "Yekaterinburg", Lat: 56.7431, Lon: 60.8027, Region: "ural"},
	{ID: "UFA", Name: "Ufa", City: "Ufa", Lat: 54.5575, Lon: 55.8744, Region: "ural"},
	{ID: "OVB", Name: "Tolmachevo", City: "Novosibirsk", Lat: 55.0126, Lon: 82.6507, Region: "siberia"},
	{ID: "KJA", Name: "Yemelyanovo", City: "Krasnoyarsk", Lat: 56.1729, Lon: 92.4933, Region: "siberia"},
	{ID: "IKT", Name: "Irkutsk", City: "Irkutsk", Lat: 52.268, Lon: 104.3886, Region: "siberia"},
	{ID: "VVO", Name: "Knevichi", City: "Vladivostok", Lat: 43.3989, Lon: 132.148, Region: "far_east"},
	{ID: "KHV", Name: "Novy", City: "Khabarovsk", Lat: 48.5272, Lon: 135.188, Region: "far_east"},
	{ID: "UUS", Name: "Khomutovo", City: "Yuzhno-Sakhalinsk", Lat: 46.8887, Lon: 142.717, Region: "far_east"},
}

var Regions = []models.Region{
	{ID: "central", Name: "Central", Bounds: [2][2]float64{{50, 33}, {60, 48}}},
	{ID: "northwest", Name: "Northwest", Bounds: [2][2]float64{{54, 18}, {71, 42}}},
	{ID: "south", Name: "South", Bounds: [2][2]float64{{41, 35}, {49, 48}}},
	{ID: "ural", Name: "Ural", Bounds: [2][2]float64{{51, 50}, {61, 67}}},
	{ID: "siberia", Name: "Siberia", Bounds: [2][2]float64{{50, 67}, {66, 113}}},
	{ID: "far_east", Name: "Far East", Bounds: [2][2]float64{{42, 113}, {72, 170}}},
}

// AircraftModels is the fleet list offered by the flight form.
var AircraftModels = []string{
	"Airbus A320",
	"Airbus A321",
	"Boeing 737-800",
	"Sukhoi Superjet 100",
	"MC-21",
}

var byID = make(map[string]models.Airport, len(All))

func init() {
	for _, a := range All {
		byID[a.ID] = a
	}
}

func ByID(id string) (models.Airport, bool) {
	a, ok := byID[id]
	return a, ok
}

func ByCity(city string) []models.Airport {
	var matched []models.Airport
	for _, a := range All {
		if a.City == city {
			matched = append(matched, a)
		}
	}
	return matched
}
