package ballchasing

// API JSON shapes. Absent fields decode to their zero values on purpose:
// the service omits `goals` on a side that never scored and `name` on a
// side nobody renamed, and treating those as 0/"" is the designed default.

// PlatformID identifies a player account on the replay service.
type PlatformID struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
}

// Player is one participant of one side of a replay.
type Player struct {
	Name      string     `json:"name"`
	StartTime float64    `json:"start_time"`
	ID        PlatformID `json:"id"`
}

// Side is the blue or orange half of a replay.
type Side struct {
	Name    string   `json:"name"`
	Goals   int      `json:"goals"`
	Players []Player `json:"players"`
}

// Replay is the summary record the search and group-listing endpoints return.
type Replay struct {
	ID       string `json:"id"`
	Title    string `json:"replay_title"`
	Duration int    `json:"duration"` // seconds
	Created  string `json:"created"`
	Blue     Side   `json:"blue"`
	Orange   Side   `json:"orange"`
}

// ReplayPage is one page of replay search results.
type ReplayPage struct {
	List  []Replay `json:"list"`
	Count int      `json:"count"`
}

// Group is a folder node on the replay service.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupPage is one page of a group listing.
type GroupPage struct {
	List  []Group `json:"list"`
	Count int     `json:"count"`
}

// UploadResult reports where an uploaded replay ended up. Duplicate is set
// when the service answered 409 because the same file already exists under
// another group; ID then refers to the pre-existing replay.
type UploadResult struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"-"`
}
