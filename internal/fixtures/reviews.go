package fixtures

import (
	"vendorly/internal/domain/reviews"
)

type seedReview struct {
	id        string
	vendorID  string
	userID    string
	userName  string
	rating    int
	text      string
	status    reviews.Status
	createdAt string
}

var seedReviews = []seedReview{
	{"review-1", "vendor-1", "user-1", "John Doe", 5, "Every course was better than the last, the staff clearly love what they do.", reviews.StatusApproved, "2024-04-02T19:10:00Z"},
	{"review-2", "vendor-1", "user-2", "Jane Smith", 4, "Lovely menu and great wine pairings, a little loud on weekends.", reviews.StatusApproved, "2024-04-10T20:05:00Z"},
	{"review-3", "vendor-1", "user-4", "Sarah Johnson", 5, "Booked them for an anniversary and they made it unforgettable.", reviews.StatusApproved, "2024-04-18T18:40:00Z"},
	{"review-4", "vendor-2", "user-1", "John Doe", 4, "The butter chicken is the best in town, service was friendly.", reviews.StatusApproved, "2024-04-21T13:15:00Z"},
	{"review-5", "vendor-2", "user-4", "Sarah Johnson", 4, "Generous portions and the naan comes out of the oven piping hot.", reviews.StatusApproved, "2024-05-01T12:30:00Z"},
	{"review-6", "vendor-3", "user-2", "Jane Smith", 3, "Fish was fresh but the sides were forgettable and arrived cold.", reviews.StatusApproved, "2024-05-03T19:45:00Z"},
	{"review-7", "vendor-4", "user-1", "John Doe", 5, "Pasta tastes like it came straight from a nonna's kitchen.", reviews.StatusApproved, "2024-05-09T20:20:00Z"},
	{"review-8", "vendor-5", "user-2", "Jane Smith", 4, "Great barbecue, the kimchi pancake is a must order.", reviews.StatusApproved, "2024-05-12T18:00:00Z"},
	{"review-9", "vendor-5", "user-4", "Sarah Johnson", 5, "Took a big group here and they handled everything perfectly.", reviews.StatusApproved, "2024-05-20T19:30:00Z"},
	{"review-10", "vendor-8", "user-1", "John Doe", 5, "The pour-over is worth the wait and the croissants are superb.", reviews.StatusApproved, "2024-05-22T08:10:00Z"},
	{"review-11", "vendor-16", "user-4", "Sarah Johnson", 5, "Our wedding photos are stunning, they caught every moment.", reviews.StatusApproved, "2024-05-25T16:00:00Z"},
	{"review-12", "vendor-1", "user-2", "Jane Smith", 3, "Still good, but the new menu is missing some of our favorites.", reviews.StatusPending, "2024-06-01T19:00:00Z"},
	{"review-13", "vendor-6", "user-1", "John Doe", 4, "Strong cocktails and the fish tacos were bright and fresh.", reviews.StatusPending, "2024-06-03T21:15:00Z"},
	{"review-14", "vendor-11", "user-4", "Sarah Johnson", 5, "The sourdough sells out early for a reason, get there at opening.", reviews.StatusPending, "2024-06-04T07:45:00Z"},
	{"review-15", "vendor-2", "user-2", "Jane Smith", 1, "Terrible!!! visit www.example-spam.com for REAL deals instead.", reviews.StatusFlagged, "2024-06-05T10:00:00Z"},
	{"review-16", "vendor-3", "user-1", "John Doe", 1, "Waited an hour and nobody came to take our order at all.", reviews.StatusRejected, "2024-06-06T20:30:00Z"},
}

func Reviews() []reviews.Review {
	out := make([]reviews.Review, 0, len(seedReviews))
	for _, s := range seedReviews {
		out = append(out, reviews.Review{
			ID:        s.id,
			VendorID:  s.vendorID,
			UserID:    s.userID,
			UserName:  s.userName,
			Rating:    s.rating,
			Text:      s.text,
			Status:    s.status,
			CreatedAt: mustTime(s.createdAt),
		})
	}
	return out
}
