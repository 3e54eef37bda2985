package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"change_tracker/internal/config"
	"change_tracker/internal/domain"
	"change_tracker/internal/health"
	"change_tracker/internal/metrics"
)

const (
	noURL  = "No Url"
	noBody = "No body"
)

// SourceService checks every subscribed feed for new items and tracks the
// health of each source.
type SourceService struct {
	sources    SourceStore
	activities ActivityStore
	txManager  TransactionManager
	client     FeedClient
	notifier   Notifier
	tracker    *health.Tracker
	render     *renderer
	logger     *slog.Logger
	tolerance  time.Duration
}

func NewSourceService(
	sources SourceStore,
	activities ActivityStore,
	txManager TransactionManager,
	client FeedClient,
	notifier Notifier,
	logger *slog.Logger,
	cfg config.FeedsConfig,
) *SourceService {
	return &SourceService{
		sources:    sources,
		activities: activities,
		txManager:  txManager,
		client:     client,
		notifier:   notifier,
		tracker:    health.NewTracker(cfg.DisableThreshold),
		render:     newRenderer(),
		logger:     logger.With("job", "sources"),
		tolerance:  cfg.Tolerance,
	}
}

// Run loads all sources and checks them.
func (s *SourceService) Run(ctx context.Context) (*domain.CheckStats, error) {
	sources, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	return s.Check(ctx, sources), nil
}

// Check runs one independent unit per source and returns once all of them
// are done. A failing or panicking unit never affects the others.
func (s *SourceService) Check(ctx context.Context, sources []domain.Source) *domain.CheckStats {
	startTime := time.Now()
	s.logger.Info("starting source check", "sources", len(sources))

	var (
		mu    sync.Mutex
		stats = &domain.CheckStats{}
		g     errgroup.Group
	)

	for _, src := range sources {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("source check panicked", "source_id", src.ID, "panic", r)
					mu.Lock()
					stats.Failed++
					mu.Unlock()
				}
			}()

			res := s.checkSource(ctx, src)

			mu.Lock()
			defer mu.Unlock()
			stats.Checked++
			stats.Activities += res.activities
			if res.disabled {
				stats.Disabled++
			}
			switch res.outcome.(type) {
			case domain.OutcomeDisabled:
				stats.Skipped++
			case domain.OutcomeFailed:
				stats.Failed++
			case domain.OutcomeUnchanged:
				stats.Unchanged++
			case domain.OutcomeChanged:
				stats.Changed++
			}
			return nil
		})
	}
	_ = g.Wait()

	stats.Duration = time.Since(startTime)
	s.logger.Info("source check completed",
		"checked", stats.Checked,
		"changed", stats.Changed,
		"unchanged", stats.Unchanged,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"disabled", stats.Disabled,
		"activities", stats.Activities,
		"duration", stats.Duration,
	)

	return stats
}

type sourceResult struct {
	outcome    domain.Outcome
	activities int
	disabled   bool
}

func (s *SourceService) checkSource(ctx context.Context, src domain.Source) sourceResult {
	logger := s.logger.With("source_id", src.ID, "url", src.URL)

	outcome, feedTitle := s.evaluate(ctx, src, logger)
	decision := s.tracker.Decide(src, outcome)
	res := sourceResult{outcome: outcome}

	metrics.ObserveSourceCheck(outcomeLabel(outcome))

	switch decision.Action {
	case health.ActionNone:
		if _, ok := outcome.(domain.OutcomeDisabled); ok {
			logger.Info("source is disabled, skipping")
		} else {
			logger.Debug("no new items")
		}

	case health.ActionRecordFailure:
		var reason error
		if o, ok := outcome.(domain.OutcomeFailed); ok {
			reason = o.Reason
		}
		logger.Warn("source check failed",
			"error", reason,
			"failed_count", decision.FailedCount,
			"threshold", s.tracker.Threshold(),
		)
		if err := s.sources.RecordFailure(ctx, src.ID, decision.FailedCount, decision.Enabled); err != nil {
			logger.Error("failed to record source failure", "error", err)
			return res
		}
		if decision.JustDisabled {
			res.disabled = true
			metrics.ObserveSourceDisabled()
			logger.Warn("source disabled", "failed_count", decision.FailedCount)

			subject, text, html := s.render.sourceDisabled(src, decision.FailedCount, reason)
			s.notify(ctx, logger, "source_disabled", subject, text, html)
		}

	case health.ActionRecordSuccess:
		o, ok := outcome.(domain.OutcomeChanged)
		if !ok {
			logger.Error("success recorded without new items", "outcome", outcomeLabel(outcome))
			return res
		}
		err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.sources.RecordSuccess(ctx, src.ID, decision.LastChecked); err != nil {
				return err
			}
			for _, item := range o.Items {
				if _, err := s.activities.Insert(ctx, src.ID, item.URL, item.Published); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			logger.Error("failed to save new items", "items", len(o.Items), "error", err)
			return res
		}

		res.activities = len(o.Items)
		metrics.ObserveActivities(len(o.Items))
		logger.Info("new items recorded", "items", len(o.Items), "most_recent", o.MostRecent)

		for _, item := range o.Items {
			subject, text, html := s.render.item(feedTitle, item)
			s.notify(ctx, logger, "item", subject, text, html)
		}
	}

	return res
}

// evaluate fetches the feed and classifies it against the source's watermark.
func (s *SourceService) evaluate(ctx context.Context, src domain.Source, logger *slog.Logger) (domain.Outcome, string) {
	if !src.Enabled {
		return domain.OutcomeDisabled{}, ""
	}

	feed, err := s.client.Fetch(ctx, src.URL)
	if err != nil {
		return domain.OutcomeFailed{Reason: err}, ""
	}

	if feed.Updated != nil && feed.Updated.Before(src.LastChecked.Add(-s.tolerance)) {
		logger.Debug("feed not updated since last check", "updated", *feed.Updated, "last_checked", src.LastChecked)
		return domain.OutcomeUnchanged{}, feed.Title
	}

	items := extractItems(feed.Entries, src.LastChecked, logger)
	if len(items) == 0 {
		return domain.OutcomeUnchanged{}, feed.Title
	}

	return domain.OutcomeChanged{MostRecent: items[0].Published, Items: items}, feed.Title
}

// extractItems scans entries newest first and stops at the first entry that
// has no usable date or is not newer than lastChecked.
func extractItems(entries []domain.FeedEntry, lastChecked time.Time, logger *slog.Logger) []domain.FeedItem {
	var items []domain.FeedItem

	for _, entry := range entries {
		if entry.Published == nil {
			logger.Debug("entry without usable date, stopping scan", "title", entry.Title)
			break
		}
		if !entry.Published.After(lastChecked) {
			break
		}

		items = append(items, domain.FeedItem{
			Title:     entry.Title,
			URL:       resolveURL(entry, logger),
			Body:      resolveBody(entry),
			Published: *entry.Published,
		})
	}

	return items
}

func resolveURL(entry domain.FeedEntry, logger *slog.Logger) string {
	for _, link := range entry.Links {
		rel := strings.ToLower(link.Rel)
		if (rel == "alternate" || rel == "self") && strings.EqualFold(link.Type, "text/html") {
			return link.Href
		}
	}

	switch {
	case len(entry.Links) == 1:
		return entry.Links[0].Href
	case len(entry.Links) > 1:
		logger.Warn("no html link on entry, using first link", "title", entry.Title, "links", len(entry.Links))
		return entry.Links[0].Href
	case entry.ContentSrc != "":
		return entry.ContentSrc
	default:
		return noURL
	}
}

func resolveBody(entry domain.FeedEntry) string {
	switch {
	case strings.TrimSpace(entry.Content) != "":
		return entry.Content
	case strings.TrimSpace(entry.Summary) != "":
		return entry.Summary
	default:
		return noBody
	}
}

func (s *SourceService) notify(ctx context.Context, logger *slog.Logger, kind, subject, text, html string) {
	err := s.notifier.Notify(ctx, subject, text, html)
	metrics.ObserveNotification(kind, err)
	if err != nil {
		logger.Error("failed to send notification", "kind", kind, "subject", subject, "error", err)
	}
}

func outcomeLabel(o domain.Outcome) string {
	switch o.(type) {
	case domain.OutcomeDisabled:
		return "disabled"
	case domain.OutcomeFailed:
		return "failed"
	case domain.OutcomeUnchanged:
		return "unchanged"
	case domain.OutcomeChanged:
		return "changed"
	default:
		return "unknown"
	}
}
