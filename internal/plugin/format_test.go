package plugin

import (
	"strings"
	"testing"

	"github.com/ThatCatDev/smutbot/internal/smutbase"
)

func sampleDetail() *smutbase.ModelDetail {
	return &smutbase.ModelDetail{
		ModelSummary: smutbase.ModelSummary{
			ID:       testID,
			Title:    "Space Mech",
			Author:   smutbase.Author{Name: "builder"},
			Category: smutbase.CategoryModels,
		},
		Description: "A big mech.",
		Tags:        []string{"mech", "scifi", "robot", "metal", "space", "extra"},
		Views:       1200,
		Downloads:   34,
		Posted:      "Jan. 2, 2024",
		Licence:     "CC BY-NC",
	}
}

func TestFormatDetail(t *testing.T) {
	out := FormatDetail(sampleDetail())

	for _, want := range []string{
		"📦 Space Mech",
		"🔗 https://smutba.se/project/" + testID + "/",
		"👤 Author: builder",
		"📁 Category: models",
		"👀 Views: 1200",
		"📥 Downloads: 34",
		"📜 Licence: CC BY-NC",
		"A big mech.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDetailCapsTags(t *testing.T) {
	out := FormatDetail(sampleDetail())
	if strings.Contains(out, "extra") {
		t.Error("more than five tags shown")
	}
	if !strings.Contains(out, "mech, scifi, robot, metal, space") {
		t.Errorf("tag line wrong:\n%s", out)
	}
}

func TestFormatDetailOmitsEmptyFields(t *testing.T) {
	d := &smutbase.ModelDetail{
		ModelSummary: smutbase.ModelSummary{ID: testID, Title: "Bare"},
	}
	out := FormatDetail(d)
	for _, absent := range []string{"Author", "Views", "Downloads", "Tags", "Licence"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty field %q rendered:\n%s", absent, out)
		}
	}
}

func TestFormatListEmpty(t *testing.T) {
	out := FormatList(&smutbase.SearchResult{Page: 1, TotalPages: 1}, 10)
	if out != "No matching models found" {
		t.Errorf("got %q", out)
	}
}

func TestFormatListCapsAndFooter(t *testing.T) {
	r := &smutbase.SearchResult{Page: 1, TotalPages: 1}
	for i := 0; i < 12; i++ {
		r.Items = append(r.Items, smutbase.ModelSummary{ID: testID, Title: "Item"})
	}

	out := FormatList(r, 10)
	if strings.Count(out, "Item") != 10 {
		t.Errorf("shown %d entries, want 10:\n%s", strings.Count(out, "Item"), out)
	}
	if !strings.Contains(out, "... 2 more results") {
		t.Errorf("missing footer:\n%s", out)
	}
}

func TestFormatListNextPageHint(t *testing.T) {
	r := &smutbase.SearchResult{
		Page:       1,
		TotalPages: 3,
		Query:      "mech",
		Items:      []smutbase.ModelSummary{{ID: testID, Title: "Item"}},
	}
	out := FormatList(r, 10)
	if !strings.Contains(out, "smutbase_page 2 mech") {
		t.Errorf("missing next-page hint:\n%s", out)
	}
}

func TestFormatListUnknownAuthor(t *testing.T) {
	r := &smutbase.SearchResult{
		Page:       1,
		TotalPages: 1,
		Items:      []smutbase.ModelSummary{{ID: testID, Title: "Item"}},
	}
	out := FormatList(r, 10)
	if !strings.Contains(out, "👤 unknown") {
		t.Errorf("missing unknown-author placeholder:\n%s", out)
	}
}
