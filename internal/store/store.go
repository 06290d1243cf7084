// Package store is the guild settings side of the bot: match dates, the
// current match day, registered team roles, season replay groups, and
// member auth tokens, exposed as plain accessors. State lives in one JSON
// file, guarded by a mutex and rewritten on every mutation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
)

// serr is a lightweight comparable error type.
type serr string

func (e serr) Error() string { return string(e) }

var (
	ErrNotFound = serr("not registered")
)

// SeasonGroup points a team role at its top-level group on the replay
// service, together with the member whose token owns it.
type SeasonGroup struct {
	OwnerID string `json:"owner_id"`
	Code    string `json:"code"`
}

type guildSettings struct {
	MatchDay     int                    `json:"match_day"`
	MatchDates   []string               `json:"match_dates"` // "M/D/YYYY", kept sorted
	TeamRoles    []string               `json:"team_roles"`
	SeasonGroups map[string]SeasonGroup `json:"season_groups"` // role id -> group
}

type fileState struct {
	Guilds   map[string]*guildSettings `json:"guilds"`
	Tokens   map[string]string         `json:"tokens"`   // member id -> auth token
	Accounts map[string][]team.Account `json:"accounts"` // member id -> linked accounts
}

// Store holds every guild's settings. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	state fileState
}

// Open loads the settings file, or starts empty when it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		state: fileState{
			Guilds:   map[string]*guildSettings{},
			Tokens:   map[string]string{},
			Accounts: map[string][]team.Account{},
		},
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}
	if s.state.Guilds == nil {
		s.state.Guilds = map[string]*guildSettings{}
	}
	if s.state.Tokens == nil {
		s.state.Tokens = map[string]string{}
	}
	if s.state.Accounts == nil {
		s.state.Accounts = map[string][]team.Account{}
	}
	return s, nil
}

// save rewrites the file. Caller must hold the mutex.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// guild returns the settings for id, creating them on first touch.
// Caller must hold the mutex.
func (s *Store) guild(id string) *guildSettings {
	g, ok := s.state.Guilds[id]
	if !ok {
		g = &guildSettings{MatchDay: 1, SeasonGroups: map[string]SeasonGroup{}}
		s.state.Guilds[id] = g
	}
	if g.SeasonGroups == nil {
		g.SeasonGroups = map[string]SeasonGroup{}
	}
	return g
}

// GuildIDs lists every guild with settings on file.
func (s *Store) GuildIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.state.Guilds))
	for id := range s.state.Guilds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) MatchDay(guildID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guild(guildID).MatchDay
}

func (s *Store) SetMatchDay(guildID string, day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).MatchDay = day
	return s.save()
}

// MatchDates returns the registered dates in "M/D/YYYY" form, sorted.
func (s *Store) MatchDates(guildID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.guild(guildID).MatchDates...)
}

// SetMatchDates validates, sorts and stores the given dates.
func (s *Store) SetMatchDates(guildID string, dates []string) error {
	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := ParseDate(d)
		if err != nil {
			return err
		}
		parsed = append(parsed, t)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	formatted := make([]string, len(parsed))
	for i, t := range parsed {
		formatted[i] = FormatDate(t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).MatchDates = formatted
	return s.save()
}

func (s *Store) TeamRoles(guildID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.guild(guildID).TeamRoles...)
}

func (s *Store) SetTeamRoles(guildID string, roleIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).TeamRoles = append([]string(nil), roleIDs...)
	return s.save()
}

// SeasonGroup looks up the season group registered for a team role.
func (s *Store) SeasonGroup(guildID, roleID string) (SeasonGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guild(guildID).SeasonGroups[roleID]
	if !ok {
		return SeasonGroup{}, ErrNotFound
	}
	return g, nil
}

func (s *Store) SetSeasonGroup(guildID, roleID string, g SeasonGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).SeasonGroups[roleID] = g
	return s.save()
}

// SeasonGroups returns a copy of the role -> group table.
func (s *Store) SeasonGroups(guildID string) map[string]SeasonGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]SeasonGroup)
	for k, v := range s.guild(guildID).SeasonGroups {
		out[k] = v
	}
	return out
}

// Token returns a member's replay-service auth token, or ErrNotFound.
func (s *Store) Token(memberID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.state.Tokens[memberID]
	if !ok {
		return "", ErrNotFound
	}
	return tok, nil
}

// SetToken stores a member's token; an empty token removes the entry.
func (s *Store) SetToken(memberID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		delete(s.state.Tokens, memberID)
	} else {
		s.state.Tokens[memberID] = token
	}
	return s.save()
}

const dateLayout = "1/2/2006"

// ParseDate reads a "M/D/YYYY" date, accepting two-digit years.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("1/2/06", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a valid M/D/YYYY date", s)
	}
	return t, nil
}

// FormatDate renders a date in the stored "M/D/YYYY" form.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
