// Package events - types.go
package events

// SeriesFinished is emitted when a series between two franchise teams ends
// (a queue module, a manual trigger). The report subscriber picks it up and
// files the replays.
type SeriesFinished struct {
	GuildID   string
	ChannelID string // channel to post the report status into
	InvokerID string // member whose uploads get searched first, may be ""
	HomeTeam  string
	AwayTeam  string
	Scrim     bool
}

// MatchDayChanged is emitted when the scheduled match day rolls over.
type MatchDayChanged struct {
	GuildID string
	Day     int
}
