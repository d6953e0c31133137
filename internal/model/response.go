package model

// Meta describes the result set of a discovery response.
type Meta struct {
	Total int    `json:"total"`
	Mode  string `json:"mode"`
}

// DiscoverResponse is the success envelope for /api/discover. Items holds
// []QualifiedVideo in normal mode and []StreakResult in streak mode.
type DiscoverResponse struct {
	Items any  `json:"items"`
	Meta  Meta `json:"meta"`
}
