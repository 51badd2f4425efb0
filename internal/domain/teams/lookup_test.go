package teams

import "testing"

func TestShortNameKnownAndFallback(t *testing.T) {
	cases := []struct {
		id   int
		side Side
		want string
	}{
		{147, SideHome, "Yankees"},
		{147, SideAway, "Yankees"},
		{111, SideAway, "Red Sox"},
		{999, SideHome, "Home"},
		{999, SideAway, "Away"},
		{0, SideAway, "Away"},
	}
	for _, tc := range cases {
		if got := ShortName(tc.id, tc.side); got != tc.want {
			t.Fatalf("ShortName(%d, %s) expected %q, got %q", tc.id, tc.side, tc.want, got)
		}
	}
}

func TestTableHasThirtyUniqueTeams(t *testing.T) {
	all := All()
	if len(all) != 30 {
		t.Fatalf("expected 30 teams, got %d", len(all))
	}
	seen := make(map[int]struct{}, len(all))
	for _, e := range all {
		if _, dup := seen[e.ID]; dup {
			t.Fatalf("duplicate team id %d", e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.ShortName == "" || e.FullName == "" {
			t.Fatalf("expected names for id %d", e.ID)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].ShortName = "mutated"
	if e, _ := Lookup(all[0].ID); e.ShortName == "mutated" {
		t.Fatalf("expected table to be unaffected by caller mutation")
	}
}

func TestFindMatchesQueries(t *testing.T) {
	cases := map[string]int{
		"Yankees":           147,
		"red sox":           111,
		"Boston Red Sox":    111,
		"ny yankees":        147,
		"dodger":            119,
		"st louis":          138,
		"  blue jays  ":     141,
		"Chicago White Sox": 145,
	}
	for query, want := range cases {
		got, ok := Find(query)
		if !ok {
			t.Fatalf("expected match for %q", query)
		}
		if got.ID != want {
			t.Fatalf("query %q expected id %d, got %d (%s)", query, want, got.ID, got.FullName)
		}
	}
}

func TestFindRejectsEmptyAndNonsense(t *testing.T) {
	for _, query := range []string{"", "   ", "zzzzqqqq"} {
		if got, ok := Find(query); ok {
			t.Fatalf("expected no match for %q, got %+v", query, got)
		}
	}
}

func TestSideFallback(t *testing.T) {
	if SideHome.Fallback() != "Home" || SideAway.Fallback() != "Away" {
		t.Fatalf("unexpected fallbacks %q %q", SideHome.Fallback(), SideAway.Fallback())
	}
}
