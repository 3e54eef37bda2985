package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"change_tracker/internal/config"
	"change_tracker/internal/domain"
	"change_tracker/internal/metrics"
	"change_tracker/internal/roadmap"
)

// RoadmapService captures the watched roadmap tabs and records what changed
// since the last stored snapshot. Runs must not overlap.
type RoadmapService struct {
	store          RoadmapStore
	txManager      TransactionManager
	client         SnapshotClient
	notifier       Notifier
	notifyEnabled  bool
	changesBaseURL string
	render         *renderer
	logger         *slog.Logger
	now            func() time.Time
}

func NewRoadmapService(
	store RoadmapStore,
	txManager TransactionManager,
	client SnapshotClient,
	notifier Notifier,
	logger *slog.Logger,
	cfg config.RoadmapConfig,
	notifyEnabled bool,
) *RoadmapService {
	return &RoadmapService{
		store:          store,
		txManager:      txManager,
		client:         client,
		notifier:       notifier,
		notifyEnabled:  notifyEnabled,
		changesBaseURL: strings.TrimRight(cfg.ChangesBaseURL, "/"),
		render:         newRenderer(),
		logger:         logger.With("job", "roadmap"),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *RoadmapService) Run(ctx context.Context) (stats *domain.RoadmapStats, err error) {
	startTime := time.Now()
	result := "failed"
	defer func() { metrics.ObserveRoadmapRun(result) }()

	s.logger.Info("starting roadmap check")
	if !s.notifyEnabled {
		s.logger.Warn("notifications are disabled, roadmap changes will not be sent")
	}

	watched, err := s.store.ListWatchedTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watched tabs: %w", err)
	}

	current, err := s.client.Fetch(ctx, watched)
	if err != nil {
		return nil, fmt.Errorf("fetch roadmap: %w", err)
	}

	previous, err := s.store.LoadMostRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load previous roadmap: %w", err)
	}

	stats = &domain.RoadmapStats{}

	if previous == nil {
		id, err := s.saveFirst(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("save first roadmap: %w", err)
		}

		stats.FirstRun = true
		stats.Saved = true
		stats.ActivityID = id
		stats.Duration = time.Since(startTime)
		result = "first_run"

		s.logger.Info("first roadmap snapshot saved",
			"activity_id", id,
			"tabs", len(current.Tabs),
			"cards", current.CardCount(),
			"duration", stats.Duration,
		)
		return stats, nil
	}

	changes := roadmap.Diff(previous, current)
	stats.Changes = len(changes)
	stats.Notable = changes.NotifyCount()

	if !changes.ShouldSave() {
		stats.Duration = time.Since(startTime)
		result = "unchanged"
		s.logger.Info("no roadmap changes to save", "duration", stats.Duration)
		return stats, nil
	}

	w := &snapshotWriter{
		store:    s.store,
		previous: previous,
		current:  current,
	}
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return w.write(ctx, s.now(), changes)
	})
	if err != nil {
		return nil, fmt.Errorf("save roadmap changes: %w", err)
	}

	for _, t := range w.recorded {
		metrics.ObserveRoadmapChange(string(t))
	}

	stats.Saved = true
	stats.ActivityID = w.activityID
	result = "saved"

	if changes.ShouldNotify() {
		link := fmt.Sprintf("%s/roadmap/%d", s.changesBaseURL, w.activityID)
		subject, text, html := s.render.roadmapChanges(stats.Notable, link)

		err := s.notifier.Notify(ctx, subject, text, html)
		metrics.ObserveNotification("roadmap", err)
		if err != nil {
			s.logger.Error("failed to send roadmap notification", "activity_id", w.activityID, "error", err)
		}
	}

	stats.Duration = time.Since(startTime)
	s.logger.Info("roadmap changes saved",
		"activity_id", w.activityID,
		"changes", stats.Changes,
		"notable", stats.Notable,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *RoadmapService) saveFirst(ctx context.Context, current *domain.Roadmap) (int64, error) {
	var activityID int64

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		id, err := s.store.InsertActivity(ctx, s.now())
		if err != nil {
			return err
		}
		activityID = id

		w := &snapshotWriter{
			store:      s.store,
			current:    current,
			activityID: id,
			tabIDs:     make(map[string]int64, len(current.Tabs)),
		}
		for _, tab := range current.Tabs {
			if _, err := w.insertTab(ctx, tab); err != nil {
				return err
			}
		}
		for i := range current.Tabs {
			if err := w.insertTabCards(ctx, i); err != nil {
				return err
			}
		}
		return nil
	})

	return activityID, err
}

// errUnhandledChange marks a Change variant the writer has no case for.
var errUnhandledChange = errors.New("unhandled change")

// snapshotWriter persists one diff inside a transaction. Indices in the
// changes are resolved against previous and current here.
type snapshotWriter struct {
	store      RoadmapStore
	previous   *domain.Roadmap
	current    *domain.Roadmap
	activityID int64
	tabIDs     map[string]int64
	recorded   []domain.ChangeType
}

func (w *snapshotWriter) write(ctx context.Context, timestamp time.Time, changes domain.Changes) error {
	id, err := w.store.InsertActivity(ctx, timestamp)
	if err != nil {
		return err
	}
	w.activityID = id

	w.tabIDs = make(map[string]int64, len(w.previous.Tabs))
	for _, tab := range w.previous.Tabs {
		if tab.InternalID != nil {
			w.tabIDs[tab.ExternalID] = *tab.InternalID
		}
	}

	tabChanges, cardChanges := changes.SplitTabPrefix()

	for _, c := range tabChanges {
		if err := w.applyTabChange(ctx, c); err != nil {
			return err
		}
	}
	for _, c := range cardChanges {
		if err := w.applyCardChange(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (w *snapshotWriter) applyTabChange(ctx context.Context, c domain.Change) error {
	switch ch := c.(type) {
	case domain.TabAdded:
		tab, err := tabAt(w.current, ch.TabIndex)
		if err != nil {
			return err
		}
		tabID, err := w.insertTab(ctx, tab)
		if err != nil {
			return err
		}
		return w.insertChange(ctx, domain.ChangeRecord{Type: domain.ChangeTabAdded, TabID: &tabID})

	case domain.TabRemoved:
		tab, err := tabAt(w.previous, ch.TabIndex)
		if err != nil {
			return err
		}
		tabID, err := internalID(tab.InternalID, "tab", tab.ExternalID)
		if err != nil {
			return err
		}
		return w.insertChange(ctx, domain.ChangeRecord{Type: domain.ChangeTabRemoved, TabID: &tabID})

	case domain.TabUnchanged:
		tab, err := tabAt(w.previous, ch.TabIndex)
		if err != nil {
			return err
		}
		tabID, err := internalID(tab.InternalID, "tab", tab.ExternalID)
		if err != nil {
			return err
		}
		return w.store.InsertTabAssignment(ctx, w.activityID, tabID)

	case domain.CardUnchanged, domain.CardAdded, domain.CardRemoved, domain.CardModified,
		domain.TabCardsNotInCurrent, domain.TabCardsNotInPrevious:
		return fmt.Errorf("%T in tab changes: %w", c, domain.ErrInvariant)

	default:
		return fmt.Errorf("%w %T: %w", errUnhandledChange, c, domain.ErrInvariant)
	}
}

func (w *snapshotWriter) applyCardChange(ctx context.Context, c domain.Change) error {
	switch ch := c.(type) {
	case domain.CardUnchanged:
		prev, err := cardAt(w.previous, ch.TabID, ch.CardIndex)
		if err != nil {
			return err
		}
		cardID, err := internalID(prev.InternalID, "card", prev.ExternalID)
		if err != nil {
			return err
		}
		// carry the stored card forward with the positions it has now
		ci, ok := w.current.FindCard(ch.TabID, prev.ExternalID)
		if !ok {
			return fmt.Errorf("unchanged card %s missing from current tab %s: %w", prev.ExternalID, ch.TabID, domain.ErrInvariant)
		}
		curr := w.current.Cards[ch.TabID][ci]
		return w.assignCard(ctx, ch.TabID, cardID, curr)

	case domain.CardAdded:
		card, err := cardAt(w.current, ch.TabID, ch.CardIndex)
		if err != nil {
			return err
		}
		cardID, err := w.insertCard(ctx, ch.TabID, card)
		if err != nil {
			return err
		}
		tabID := w.tabIDs[ch.TabID]
		return w.insertChange(ctx, domain.ChangeRecord{
			Type:          domain.ChangeCardAdded,
			CurrentCardID: &cardID,
			TabID:         &tabID,
		})

	case domain.CardRemoved:
		prev, err := cardAt(w.previous, ch.TabID, ch.CardIndex)
		if err != nil {
			return err
		}
		prevID, err := internalID(prev.InternalID, "card", prev.ExternalID)
		if err != nil {
			return err
		}
		tabID, err := w.tabID(ch.TabID)
		if err != nil {
			return err
		}
		return w.insertChange(ctx, domain.ChangeRecord{
			Type:           domain.ChangeCardRemoved,
			PreviousCardID: &prevID,
			TabID:          &tabID,
		})

	case domain.CardModified:
		prev, err := cardAt(w.previous, ch.TabID, ch.PreviousCardIndex)
		if err != nil {
			return err
		}
		prevID, err := internalID(prev.InternalID, "card", prev.ExternalID)
		if err != nil {
			return err
		}
		card, err := cardAt(w.current, ch.TabID, ch.CurrentCardIndex)
		if err != nil {
			return err
		}
		cardID, err := w.insertCard(ctx, ch.TabID, card)
		if err != nil {
			return err
		}
		tabID := w.tabIDs[ch.TabID]
		return w.insertChange(ctx, domain.ChangeRecord{
			Type:           domain.ChangeCardModified,
			PreviousCardID: &prevID,
			CurrentCardID:  &cardID,
			TabID:          &tabID,
		})

	case domain.TabCardsNotInPrevious:
		return w.insertTabCards(ctx, ch.TabIndex)

	case domain.TabCardsNotInCurrent:
		return nil

	case domain.TabAdded, domain.TabRemoved, domain.TabUnchanged:
		return fmt.Errorf("%T after card changes: %w", c, domain.ErrInvariant)

	default:
		return fmt.Errorf("%w %T: %w", errUnhandledChange, c, domain.ErrInvariant)
	}
}

func (w *snapshotWriter) insertTab(ctx context.Context, tab domain.Tab) (int64, error) {
	tabID, err := w.store.InsertTab(ctx, tab)
	if err != nil {
		return 0, err
	}
	w.tabIDs[tab.ExternalID] = tabID
	if err := w.store.InsertTabAssignment(ctx, w.activityID, tabID); err != nil {
		return 0, err
	}
	return tabID, nil
}

// insertTabCards stores every current card of the tab at tabIndex.
func (w *snapshotWriter) insertTabCards(ctx context.Context, tabIndex int) error {
	tab, err := tabAt(w.current, tabIndex)
	if err != nil {
		return err
	}
	for _, card := range w.current.Cards[tab.ExternalID] {
		if _, err := w.insertCard(ctx, tab.ExternalID, card); err != nil {
			return err
		}
	}
	return nil
}

func (w *snapshotWriter) insertCard(ctx context.Context, tabExternalID string, card domain.Card) (int64, error) {
	if _, err := w.tabID(tabExternalID); err != nil {
		return 0, err
	}
	cardID, err := w.store.InsertCard(ctx, card)
	if err != nil {
		return 0, err
	}
	if err := w.assignCard(ctx, tabExternalID, cardID, card); err != nil {
		return 0, err
	}
	return cardID, nil
}

func (w *snapshotWriter) assignCard(ctx context.Context, tabExternalID string, cardID int64, positions domain.Card) error {
	tabID, err := w.tabID(tabExternalID)
	if err != nil {
		return err
	}
	return w.store.InsertCardAssignment(ctx, domain.CardAssignment{
		ActivityID:      w.activityID,
		TabID:           tabID,
		CardID:          cardID,
		SectionPosition: positions.SectionPosition,
		CardPosition:    positions.CardPosition,
	})
}

func (w *snapshotWriter) insertChange(ctx context.Context, rec domain.ChangeRecord) error {
	rec.ActivityID = w.activityID
	if _, err := w.store.InsertChange(ctx, rec); err != nil {
		return err
	}
	w.recorded = append(w.recorded, rec.Type)
	return nil
}

func (w *snapshotWriter) tabID(externalID string) (int64, error) {
	id, ok := w.tabIDs[externalID]
	if !ok {
		return 0, fmt.Errorf("no stored tab for %s: %w", externalID, domain.ErrInvariant)
	}
	return id, nil
}

func tabAt(r *domain.Roadmap, i int) (domain.Tab, error) {
	if i < 0 || i >= len(r.Tabs) {
		return domain.Tab{}, fmt.Errorf("tab index %d out of range: %w", i, domain.ErrInvariant)
	}
	return r.Tabs[i], nil
}

func cardAt(r *domain.Roadmap, tabID string, i int) (domain.Card, error) {
	cards := r.Cards[tabID]
	if i < 0 || i >= len(cards) {
		return domain.Card{}, fmt.Errorf("card index %d out of range for tab %s: %w", i, tabID, domain.ErrInvariant)
	}
	return cards[i], nil
}

func internalID(id *int64, kind, externalID string) (int64, error) {
	if id == nil {
		return 0, fmt.Errorf("%s %s has no stored id: %w", kind, externalID, domain.ErrInvariant)
	}
	return *id, nil
}
