package plugin

import (
	"fmt"
	"strings"

	"github.com/ThatCatDev/smutbot/internal/smutbase"
)

const maxTagsShown = 5

// FormatDetail renders a model card for chat output. Empty fields are
// omitted rather than printed blank.
func FormatDetail(d *smutbase.ModelDetail) string {
	lines := []string{
		"📦 " + d.Title,
		"🔗 " + d.URL(),
	}

	if d.Author.Name != "" {
		lines = append(lines, "👤 Author: "+d.Author.Name)
	}
	if d.Category != "" && d.Category != smutbase.CategoryAny {
		lines = append(lines, "📁 Category: "+string(d.Category))
	}
	if d.Views > 0 {
		lines = append(lines, fmt.Sprintf("👀 Views: %d", d.Views))
	}
	if d.Downloads > 0 {
		lines = append(lines, fmt.Sprintf("📥 Downloads: %d", d.Downloads))
	}
	if d.Posted != "" {
		lines = append(lines, "📅 Posted: "+d.Posted)
	}
	if d.Updated != "" {
		lines = append(lines, "🔄 Updated: "+d.Updated)
	}
	if d.Licence != "" {
		lines = append(lines, "📜 Licence: "+d.Licence)
	}
	if len(d.Tags) > 0 {
		tags := d.Tags
		if len(tags) > maxTagsShown {
			tags = tags[:maxTagsShown]
		}
		lines = append(lines, "🏷️ Tags: "+strings.Join(tags, ", "))
	}
	if d.Description != "" {
		lines = append(lines, "", d.Description)
	}

	return strings.Join(lines, "\n")
}

// FormatList renders one page of results as a numbered list capped at
// maxResults entries.
func FormatList(r *smutbase.SearchResult, maxResults int) string {
	if len(r.Items) == 0 {
		return "No matching models found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Results (page %d/%d):\n", r.Page, r.TotalPages)

	shown := r.Items
	if maxResults > 0 && len(shown) > maxResults {
		shown = shown[:maxResults]
	}
	for i, item := range shown {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, item.Title)
		author := item.Author.Name
		if author == "" {
			author = "unknown"
		}
		fmt.Fprintf(&b, "   ID: %s | 👤 %s", item.ID, author)
	}

	if rest := len(r.Items) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n\n... %d more results", rest)
	}
	if r.HasNext() {
		fmt.Fprintf(&b, "\n\nNext page: smutbase_page %d %s", r.Page+1, r.Query)
	}

	return strings.TrimRight(b.String(), " ")
}
