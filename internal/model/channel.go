package model

// ChannelInfo is the enriched record for one channel, built from the upstream
// channels.list response.
//
// Subscribers is nil when the platform hides the count or it is unknown. A nil
// count always fails a subscriber ceiling check; it is never defaulted to zero.
type ChannelInfo struct {
	ChannelID   string  `json:"channelId"`
	Title       string  `json:"title,omitempty"`
	Subscribers *int64  `json:"subscriberCount,omitempty"`
	Country     *string `json:"country,omitempty"`
	// LangHint is derived from Country via a fixed lookup table. Countries
	// absent from the table yield nil, never a guess.
	LangHint *string `json:"-"`
	// UploadsPlaylist references the channel's upload history. Only
	// populated and used in streak mode.
	UploadsPlaylist string `json:"-"`
}

// StreakResult reports a channel whose most recent uploads form a qualifying
// streak. Streak counts consecutive qualifying uploads from the most recent
// backward, halting at the first non-qualifying one.
type StreakResult struct {
	ChannelID   string         `json:"channelId"`
	Title       string         `json:"channelTitle,omitempty"`
	Streak      int            `json:"streak"`
	Subscribers *int64         `json:"subscriberCount,omitempty"`
	LatestVideo QualifiedVideo `json:"latestVideo"`
}
