package match

import (
	"testing"
	"time"
)

func TestTypeFolders(t *testing.T) {
	cases := map[Type]string{
		RegularSeason: "Regular Season",
		Scrim:         "Scrims",
		PostSeason:    "Post-Season",
		PreSeason:     "Pre-Season",
	}
	for typ, want := range cases {
		if got := typ.Folder(); got != want {
			t.Fatalf("%v folder %q, want %q", typ, got, want)
		}
	}
}

func TestSearchCount(t *testing.T) {
	if got := Scrim.SearchCount(); got != 100 {
		t.Fatalf("scrim count %d", got)
	}
	if got := RegularSeason.SearchCount(); got != 50 {
		t.Fatalf("league count %d", got)
	}
	if got := PostSeason.SearchCount(); got != 50 {
		t.Fatalf("playoff count %d", got)
	}
}

func TestParseType(t *testing.T) {
	ok := map[string]Type{
		"":            RegularSeason,
		"regular":     RegularSeason,
		"Scrim":       Scrim,
		"scrims":      Scrim,
		"playoffs":    PostSeason,
		"post-season": PostSeason,
		"preseason":   PreSeason,
	}
	for in, want := range ok {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Fatalf("ParseType(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseType("ranked"); err == nil {
		t.Fatalf("unknown type accepted")
	}
}

func TestFolderNames(t *testing.T) {
	m := Match{Home: "Alpha", Away: "Beta", Day: 7, Type: RegularSeason}
	got := m.FolderNames()
	if len(got) != 2 || got[0] != "Regular Season" || got[1] != "MD 07 vs Beta" {
		t.Fatalf("got %v", got)
	}

	scrim := Match{
		Home: "Alpha", Away: "Beta",
		Day:  ScrimDay,
		Date: time.Date(2026, time.March, 4, 20, 0, 0, 0, time.UTC),
		Type: Scrim,
	}
	got = scrim.FolderNames()
	if got[0] != "Scrims" || got[1] != "3/4 vs Beta" {
		t.Fatalf("got %v", got)
	}
}

func TestFolderNamesAreDeterministic(t *testing.T) {
	a := Match{Home: "Alpha", Away: "Beta", Day: 2, Type: RegularSeason}
	b := Match{Home: "Alpha", Away: "Beta", Day: 2, Type: RegularSeason}
	for i := range a.FolderNames() {
		if a.FolderNames()[i] != b.FolderNames()[i] {
			t.Fatalf("same match mapped to different folders")
		}
	}
}
