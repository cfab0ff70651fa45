package portal

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dhuhelper/dhu-portal-go/internal/config"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/logger"
	"github.com/dhuhelper/dhu-portal-go/internal/metrics"
	"github.com/dhuhelper/dhu-portal-go/internal/storage"
)

// noticeLimit caps how many entries the board shows and caches.
const noticeLimit = 10

// refreshErrors wraps scrape failures with module context for the logs.
var refreshErrors = apperrors.NewWrapper("portal", "refresh_notices")

// documentFetcher fetches and parses one HTML page.
// *scraper.Client implements it.
type documentFetcher interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// NoticeBoard serves the notice list: scraped entries from the news
// site when the cache has any, the static seed otherwise.
type NoticeBoard struct {
	repo    *storage.NoticeRepository
	fetcher documentFetcher
	baseURL string
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewNoticeBoard creates the board. repo and fetcher may be nil in
// seed-only mode (no database, no refresher).
func NewNoticeBoard(repo *storage.NoticeRepository, fetcher documentFetcher, baseURL string, log *logger.Logger, m *metrics.Metrics) *NoticeBoard {
	return &NoticeBoard{
		repo:    repo,
		fetcher: fetcher,
		baseURL: baseURL,
		log:     log.WithModule("portal"),
		metrics: m,
	}
}

// List returns the current notice board, newest first.
func (b *NoticeBoard) List(ctx context.Context) []Notice {
	if b.repo != nil {
		cached, err := b.repo.List(ctx, noticeLimit)
		if err != nil {
			b.log.Warnf("notice cache read failed: %v", err)
		} else if len(cached) > 0 {
			out := make([]Notice, 0, len(cached))
			for _, n := range cached {
				yearMonth, day := splitNoticeDate(n.Published)
				out = append(out, Notice{
					Title:      n.Title,
					Day:        day,
					YearMonth:  yearMonth,
					Department: n.Source,
					URL:        n.URL,
				})
			}
			return out
		}
	}

	out := make([]Notice, len(seedNotices))
	copy(out, seedNotices)
	return out
}

// Refresh scrapes the news site and swaps the cache. An empty scrape
// keeps the previous cache so a site redesign never blanks the board.
func (b *NoticeBoard) Refresh(ctx context.Context) error {
	if b.fetcher == nil || b.repo == nil {
		return nil
	}

	start := time.Now()
	doc, err := b.fetcher.GetDocument(ctx, b.baseURL)
	if err != nil {
		b.recordScrape("error", time.Since(start))
		return refreshErrors.Wrapf(err, "failed to fetch %s", b.baseURL)
	}

	notices := parseNotices(doc, b.baseURL)
	if len(notices) == 0 {
		b.recordScrape("empty", time.Since(start))
		b.log.Warnf("notice scrape matched nothing at %s", b.baseURL)
		return nil
	}

	if err := b.repo.ReplaceAll(ctx, notices); err != nil {
		b.recordScrape("error", time.Since(start))
		return refreshErrors.Wrap(err, "notice cache update failed")
	}

	b.recordScrape("success", time.Since(start))
	b.log.Infof("notice cache refreshed: %d entries", len(notices))
	return nil
}

// RunRefresher refreshes every interval until ctx is canceled. The
// first refresh is delayed so startup never blocks on the news site.
func (b *NoticeBoard) RunRefresher(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = config.NoticeRefreshInterval
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(config.NoticeRefreshInitialDelay):
	}

	if err := b.Refresh(ctx); err != nil {
		b.log.Warnf("notice refresh failed: %v", err)
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.Refresh(ctx); err != nil {
				b.log.Warnf("notice refresh failed: %v", err)
			}
		}
	}
}

// parseNotices extracts notice entries from the news index page.
// The site's CMS renders a news_list block; a generic anchor scan
// covers layout drift.
func parseNotices(doc *goquery.Document, baseURL string) []storage.Notice {
	var notices []storage.Notice

	doc.Find("ul.news_list li.news").Each(func(_ int, s *goquery.Selection) {
		if len(notices) >= noticeLimit {
			return
		}
		a := s.Find(".news_title a").First()
		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if title == "" || href == "" {
			return
		}
		notices = append(notices, storage.Notice{
			Title:     title,
			URL:       absoluteURL(baseURL, href),
			Published: strings.TrimSpace(s.Find(".news_meta").First().Text()),
			Source:    strings.TrimSpace(s.Find(".news_source").First().Text()),
		})
	})

	if len(notices) > 0 {
		return notices
	}

	doc.Find("li a").Each(func(_ int, a *goquery.Selection) {
		if len(notices) >= noticeLimit {
			return
		}
		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if title == "" || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		notices = append(notices, storage.Notice{
			Title: title,
			URL:   absoluteURL(baseURL, href),
		})
	})

	return notices
}

// absoluteURL resolves href against the scrape base.
func absoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}

// splitNoticeDate splits 2025-12-10 (or 2025.12.10) into the
// year-month and day the board renders. Unparseable dates land in the
// year-month column untouched.
func splitNoticeDate(published string) (yearMonth, day string) {
	normalized := strings.ReplaceAll(strings.TrimSpace(published), ".", "-")
	parts := strings.Split(normalized, "-")
	if len(parts) == 3 {
		return parts[0] + "-" + parts[1], parts[2]
	}
	return normalized, ""
}

func (b *NoticeBoard) recordScrape(status string, elapsed time.Duration) {
	if b.metrics != nil {
		b.metrics.RecordScraperRequest("notices", status, elapsed.Seconds())
	}
}
