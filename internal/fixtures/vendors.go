package fixtures

import (
	"fmt"
	"math"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/vendors"
)

var Categories = []string{
	"Restaurant",
	"Cafe",
	"Bakery",
	"Catering",
	"Photography",
	"Florist",
	"Entertainment",
	"Venue",
}

type seedVendor struct {
	name        string
	category    string
	description string
	location    string
	createdAt   string
}

var seedVendors = []seedVendor{
	{"The Golden Fork", "Restaurant", "Seasonal tasting menus built around local farms.", "Portland, OR", "2023-06-01T12:00:00Z"},
	{"Saffron House", "Restaurant", "Northern Indian cooking with a tandoor at its heart.", "Austin, TX", "2023-06-12T12:00:00Z"},
	{"Harbor Grill", "Restaurant", "Fresh catch grilled over open flame by the pier.", "San Diego, CA", "2023-07-03T12:00:00Z"},
	{"Trattoria Verde", "Restaurant", "Handmade pasta and a wood-fired oven.", "Chicago, IL", "2023-07-19T12:00:00Z"},
	{"Seoul Kitchen", "Restaurant", "Korean barbecue and banchan served family style.", "Seattle, WA", "2023-08-02T12:00:00Z"},
	{"Blue Agave Cantina", "Restaurant", "Coastal Mexican plates and a long mezcal list.", "Phoenix, AZ", "2023-08-21T12:00:00Z"},
	{"The Rustic Table", "Restaurant", "Comfort food classics in a converted barn.", "Nashville, TN", "2023-09-05T12:00:00Z"},
	{"Morning Ritual Coffee", "Cafe", "Single origin pour-overs and flaky pastries.", "Portland, OR", "2023-09-18T12:00:00Z"},
	{"Leaf & Bean", "Cafe", "Loose leaf teas and specialty espresso drinks.", "Denver, CO", "2023-10-01T12:00:00Z"},
	{"Corner Perk", "Cafe", "Neighborhood spot with quick breakfast sandwiches.", "Boston, MA", "2023-10-14T12:00:00Z"},
	{"Rise & Shine Bakery", "Bakery", "Sourdough loaves baked before sunrise every day.", "Austin, TX", "2023-10-29T12:00:00Z"},
	{"Crumb Collective", "Bakery", "Cooperative bakery known for its croissants.", "Minneapolis, MN", "2023-11-08T12:00:00Z"},
	{"Sugar Bloom Patisserie", "Bakery", "French pastries and custom celebration cakes.", "New York, NY", "2023-11-20T12:00:00Z"},
	{"Feast Forward Catering", "Catering", "Full service catering for weddings and offices.", "Chicago, IL", "2023-12-02T12:00:00Z"},
	{"Silver Platter Events", "Catering", "Plated dinners and cocktail receptions for any size.", "Atlanta, GA", "2023-12-15T12:00:00Z"},
	{"Lumen Studio", "Photography", "Editorial portraits and wedding photography.", "Los Angeles, CA", "2024-01-04T12:00:00Z"},
	{"Candid Frames", "Photography", "Documentary style event coverage.", "Denver, CO", "2024-01-17T12:00:00Z"},
	{"Petal & Stem", "Florist", "Garden style arrangements and bridal bouquets.", "Charleston, SC", "2024-02-01T12:00:00Z"},
	{"Wild Meadow Florals", "Florist", "Foraged, seasonal floral installations.", "Asheville, NC", "2024-02-13T12:00:00Z"},
	{"Groove Theory DJs", "Entertainment", "DJs and lighting for weddings and parties.", "Miami, FL", "2024-02-27T12:00:00Z"},
	{"Starlight Magic Shows", "Entertainment", "Close-up magic and stage illusions for all ages.", "Las Vegas, NV", "2024-03-09T12:00:00Z"},
	{"The Glasshouse Loft", "Venue", "Sunlit industrial loft for up to 200 guests.", "Brooklyn, NY", "2024-03-22T12:00:00Z"},
	{"Riverside Pavilion", "Venue", "Open-air pavilion on the river with a dance floor.", "Savannah, GA", "2024-04-05T12:00:00Z"},
}

// Vendors returns the seed vendors with Rating and ReviewCount already
// consistent with the approved seed reviews.
func Vendors() []vendors.Vendor {
	approved := map[string][]int{}
	for _, rv := range Reviews() {
		if rv.Status == reviews.StatusApproved {
			approved[rv.VendorID] = append(approved[rv.VendorID], rv.Rating)
		}
	}

	out := make([]vendors.Vendor, 0, len(seedVendors))
	for i, s := range seedVendors {
		id := fmt.Sprintf("vendor-%d", i+1)
		v := vendors.Vendor{
			ID:          id,
			Name:        s.name,
			Category:    s.category,
			Description: s.description,
			Images: []string{
				fmt.Sprintf("/images/vendors/%s-1.jpg", id),
				fmt.Sprintf("/images/vendors/%s-2.jpg", id),
			},
			Location:  s.location,
			CreatedAt: mustTime(s.createdAt),
		}
		if ratings := approved[id]; len(ratings) > 0 {
			sum := 0
			for _, r := range ratings {
				sum += r
			}
			v.Rating = math.Round(float64(sum)/float64(len(ratings))*10) / 10
			v.ReviewCount = len(ratings)
		}
		out = append(out, v)
	}
	return out
}
