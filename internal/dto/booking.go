package dto

// BookingRequest is the borrower's intent to rent a listing.
// Dates are calendar dates in YYYY-MM-DD form.
type BookingRequest struct {
	ListingID string `json:"listingId" validate:"required"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}
