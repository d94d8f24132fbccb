package plugin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ThatCatDev/smutbot/internal/smutbase"
	"github.com/ThatCatDev/smutbot/internal/thumbcache"
)

// cmdModel handles: smutbase <id>
func (p *Plugin) cmdModel(ctx context.Context, args []string) (*Reply, error) {
	if len(args) < 1 {
		return usageReply("smutbase <model-id>"), nil
	}

	detail, err := p.client.GetModel(ctx, args[0])
	if err != nil {
		return errorReply(err), nil
	}
	return p.detailReply(ctx, detail), nil
}

// cmdSearch handles: smutbase_search <query...>
func (p *Plugin) cmdSearch(ctx context.Context, args []string) (*Reply, error) {
	query := strings.Join(args, " ")

	result, err := p.client.Search(ctx, smutbase.SearchOptions{Query: query})
	if err != nil {
		return errorReply(err), nil
	}
	return p.listReply(result), nil
}

// cmdPage handles: smutbase_page <page> [query...]
func (p *Plugin) cmdPage(ctx context.Context, args []string) (*Reply, error) {
	if len(args) < 1 {
		return usageReply("smutbase_page <page> [query]"), nil
	}

	page, err := strconv.Atoi(args[0])
	if err != nil {
		return &Reply{Text: "❌ Page must be a number"}, nil
	}
	if page < 1 {
		page = 1
	}
	query := strings.Join(args[1:], " ")

	result, err := p.client.Search(ctx, smutbase.SearchOptions{Query: query, Page: page})
	if err != nil {
		return errorReply(err), nil
	}
	return p.listReply(result), nil
}

// cmdLatest handles: smutbase_latest [page]
func (p *Plugin) cmdLatest(ctx context.Context, args []string) (*Reply, error) {
	result, err := p.client.Latest(ctx, optionalPage(args))
	if err != nil {
		return errorReply(err), nil
	}
	return p.listReply(result), nil
}

// cmdPopular handles: smutbase_popular [page]
func (p *Plugin) cmdPopular(ctx context.Context, args []string) (*Reply, error) {
	result, err := p.client.Popular(ctx, optionalPage(args))
	if err != nil {
		return errorReply(err), nil
	}
	return p.listReply(result), nil
}

// cmdRandom handles: smutbase_random
func (p *Plugin) cmdRandom(ctx context.Context, args []string) (*Reply, error) {
	detail, err := p.client.Random(ctx)
	if err != nil {
		return errorReply(err), nil
	}
	return p.detailReply(ctx, detail), nil
}

// cmdCategory handles: smutbase_category <name> [page]
func (p *Plugin) cmdCategory(ctx context.Context, args []string) (*Reply, error) {
	names := strings.Join(smutbase.CategoryNames(), ", ")
	if len(args) < 1 {
		return &Reply{Text: "❌ Missing category\nAvailable: " + names + "\nUsage: smutbase_category <category> [page]"}, nil
	}

	category, ok := smutbase.ParseCategory(args[0])
	if !ok {
		return &Reply{Text: fmt.Sprintf("❌ Unknown category %q\nAvailable: %s", args[0], names)}, nil
	}

	result, err := p.client.ByCategory(ctx, category, optionalPage(args[1:]))
	if err != nil {
		return errorReply(err), nil
	}
	return p.listReply(result), nil
}

// cmdURL handles: smutbase_url <id>. Validation only, no network.
func (p *Plugin) cmdURL(ctx context.Context, args []string) (*Reply, error) {
	if len(args) < 1 {
		return usageReply("smutbase_url <model-id>"), nil
	}

	id, err := smutbase.ParseModelID(args[0])
	if err != nil {
		return errorReply(err), nil
	}
	return &Reply{Text: "🔗 Model page:\n" + smutbase.ModelURL(id)}, nil
}

// cmdClean handles: smutbase_clean
func (p *Plugin) cmdClean(ctx context.Context, args []string) (*Reply, error) {
	removed, err := p.cache.Clean()
	if err != nil {
		return &Reply{Text: fmt.Sprintf("❌ Cache cleanup failed: %v", err)}, nil
	}
	return &Reply{Text: fmt.Sprintf("✅ Cache cleaned (%d files removed)", removed)}, nil
}

// detailReply formats a model card and attaches its thumbnail when
// configured. Thumbnail failures degrade to a text-only reply.
func (p *Plugin) detailReply(ctx context.Context, detail *smutbase.ModelDetail) *Reply {
	reply := &Reply{Text: FormatDetail(detail)}

	if p.cfg.ShowThumbnail && detail.ThumbnailURL != "" {
		path, err := p.cache.Fetch(ctx, detail.ThumbnailURL, p.cfg.BlurLevel)
		if err != nil {
			log.Printf("thumbnail for %s unavailable: %v", detail.ID, err)
		} else {
			reply.ImagePath = path
		}
	}
	return reply
}

func (p *Plugin) listReply(result *smutbase.SearchResult) *Reply {
	return &Reply{Text: FormatList(result, p.cfg.MaxResults)}
}

// optionalPage reads a trailing page argument; anything unusable defaults
// to page 1.
func optionalPage(args []string) int {
	if len(args) < 1 {
		return 1
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func usageReply(usage string) *Reply {
	return &Reply{Text: "❌ Usage: " + usage}
}

// errorReply maps the typed client/cache errors onto user-visible text. The
// command layer is the only place that does this translation.
func errorReply(err error) *Reply {
	var (
		invalidID *smutbase.InvalidIDError
		notFound  *smutbase.NotFoundError
		netErr    *smutbase.NetworkError
		parseErr  *smutbase.ParseError
		imgErr    *thumbcache.ImageProcessingError
	)
	switch {
	case errors.As(err, &invalidID):
		return &Reply{Text: fmt.Sprintf("❌ Invalid model ID: %s (expected a UUID or project URL)", invalidID.Input)}
	case errors.As(err, &notFound):
		return &Reply{Text: "❌ Not found: " + notFound.Resource}
	case errors.As(err, &netErr):
		return &Reply{Text: fmt.Sprintf("❌ Network error: %v", err)}
	case errors.As(err, &parseErr):
		return &Reply{Text: "❌ The site returned an unreadable response, try again later"}
	case errors.As(err, &imgErr):
		return &Reply{Text: fmt.Sprintf("❌ Image processing failed: %v", err)}
	default:
		return &Reply{Text: fmt.Sprintf("❌ Error: %v", err)}
	}
}
