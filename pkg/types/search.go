package types

// SortOrder selects how search results are ordered. Anything unrecognized
// falls back to name ordering.
type SortOrder string

const (
	SortByDistance SortOrder = "distance"
	SortByName     SortOrder = "name"
	SortByRecent   SortOrder = "recent"
)

// SearchFilters are the optional NGO search inputs, combined with logical AND.
// Only verified NGOs are ever considered regardless of what is set here.
type SearchFilters struct {
	Search      string    `form:"search" json:"search,omitempty"`
	Category    string    `form:"category" json:"category,omitempty"`
	City        string    `form:"city" json:"city,omitempty"`
	State       string    `form:"state" json:"state,omitempty"`
	Needs       []string  `form:"needs" json:"needs,omitempty"`
	MaxDistance float64   `form:"maxDistance" json:"maxDistance,omitempty"`
	Lat         *float64  `form:"lat" json:"-"`
	Lng         *float64  `form:"lng" json:"-"`
	SortBy      SortOrder `form:"sortBy" json:"sortBy,omitempty"`
}

// UserLocation returns the caller's coordinates, or nil when either half is
// missing. Distance filtering and distance sorting require both.
func (f *SearchFilters) UserLocation() *Location {
	if f.Lat == nil || f.Lng == nil {
		return nil
	}
	return &Location{Lat: *f.Lat, Lng: *f.Lng}
}

// NGOSearchResult is the projected public view of a matched NGO. Distance is
// set only when the caller supplied a location.
type NGOSearchResult struct {
	ID                 string             `json:"id"`
	OrganizationName   string             `json:"organizationName"`
	Description        string             `json:"description"`
	Address            Address            `json:"address"`
	Location           Location           `json:"location"`
	Category           string             `json:"category"`
	Needs              []string           `json:"needs"`
	Contact            string             `json:"contact"`
	Tags               []string           `json:"tags"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Distance           *float64           `json:"distance,omitempty"`
}

// SearchResponse is the search endpoint payload: matches, the total count and
// an echo of the applied filters.
type SearchResponse struct {
	NGOs       []*NGOSearchResult `json:"ngos"`
	TotalCount int                `json:"totalCount"`
	Filters    SearchFilters      `json:"filters"`
}

// FilterFacets describes the distinct values currently present across
// verified NGOs, used to populate filter UIs without hardcoded lists.
type FilterFacets struct {
	Categories []string `json:"categories"`
	Cities     []string `json:"cities"`
	States     []string `json:"states"`
	Needs      []string `json:"needs"`
}
