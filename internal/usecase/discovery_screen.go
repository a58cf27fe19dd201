package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"github.com/collection-point-service/internal/pkg/metrics"
	"github.com/collection-point-service/internal/usecase/dto"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const maxNotices = 10

// ScreenConfig - зависимости одного экрана поиска
type ScreenConfig struct {
	ID       uuid.UUID
	Catalog  repository.CatalogRepository
	Location *LocationProvider
	Bridge   domain.NavigationBridge
	City     domain.CityContext
	Fallback domain.Region
	Logger   *zap.Logger
	Now      func() time.Time
}

// DiscoveryScreen is the state of one discovery screen instance: location
// outcome, category catalog, filter selection, the latest applied point
// list and its markers. All mutation happens under mu; I/O runs on
// goroutines bound to the mount context.
type DiscoveryScreen struct {
	id         uuid.UUID
	catalog    repository.CatalogRepository
	location   *LocationProvider
	bridge     domain.NavigationBridge
	query      *PointQuery
	projection MarkerProjection
	city       domain.CityContext
	fallback   domain.Region
	logger     *zap.Logger
	now        func() time.Time

	mu            sync.Mutex
	mounted       bool
	closed        bool
	epoch         uint64
	cancel        context.CancelFunc
	ctx           context.Context
	categories    *CategoryCatalog
	filter        *FilterSelection
	region        *domain.Region
	points        []domain.Point
	markers       []domain.Marker
	applied       uint64
	fetchErr      error
	droppedPoints int
	notices       []domain.Notice
	inflight      map[uint64]chan struct{}
	subscribers   map[int]chan dto.ScreenSnapshot
	nextSub       int
	lastActive    time.Time
	updatedAt     time.Time
}

func NewDiscoveryScreen(cfg ScreenConfig) *DiscoveryScreen {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger.With(zap.String("session_id", cfg.ID.String()))

	s := &DiscoveryScreen{
		id:          cfg.ID,
		catalog:     cfg.Catalog,
		location:    cfg.Location,
		bridge:      cfg.Bridge,
		query:       NewPointQuery(cfg.Catalog, logger),
		projection:  NewMarkerProjection(cfg.Bridge),
		city:        cfg.City,
		fallback:    cfg.Fallback,
		logger:      logger,
		now:         cfg.Now,
		inflight:    make(map[uint64]chan struct{}),
		subscribers: make(map[int]chan dto.ScreenSnapshot),
	}
	s.categories = NewCategoryCatalog(cfg.Catalog, logger)
	s.filter = NewFilterSelection(s.categories.Contains)
	s.lastActive = s.now()
	return s
}

func (s *DiscoveryScreen) ID() uuid.UUID {
	return s.id
}

// Mount enters the screen: location acquisition, category load and the
// initial unfiltered point query are issued together and each is awaited on
// its own. Failures degrade into notices; Mount only returns ctx errors.
// Mounting again after Unmount is a re-entry and reloads the catalog.
func (s *DiscoveryScreen) Mount(ctx context.Context) error {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return nil
	}
	s.mounted = true
	s.epoch++
	epoch := s.epoch
	s.ctx, s.cancel = context.WithCancel(context.Background())
	mountCtx := s.ctx
	s.categories = NewCategoryCatalog(s.catalog, s.logger)
	s.filter = NewFilterSelection(s.categories.Contains)
	s.points, s.markers = nil, nil
	s.region, s.fetchErr, s.droppedPoints, s.notices = nil, nil, 0, nil
	categories := s.categories
	tag := s.query.Issue(domain.FilterSet{})
	initial := s.launchQueryLocked(tag)
	s.touchLocked()
	s.mu.Unlock()

	metrics.ActiveScreens.Inc()
	s.logger.Info("Discovery screen mounted", zap.Uint64("epoch", epoch))

	var wg conc.WaitGroup
	wg.Go(func() {
		coord, err := s.location.Acquire(mountCtx)
		s.applyLocation(epoch, coord, err)
	})
	wg.Go(func() {
		_, err := categories.Load(mountCtx)
		s.applyCategories(epoch, err)
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		<-initial
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unmount leaves the screen: in-flight fetches are cancelled, late results
// dropped and the filter cleared.
func (s *DiscoveryScreen) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		return
	}
	s.mounted = false
	s.cancel()
	s.filter.Clear()
	s.points, s.markers = nil, nil
	s.touchLocked()
	s.notifyLocked()

	metrics.ActiveScreens.Dec()
	s.logger.Info("Discovery screen unmounted", zap.Int("inflight", len(s.inflight)))
}

// Toggle flips a category in the filter and issues a new point query for
// the resulting set. The new set is returned before the query completes.
func (s *DiscoveryScreen) Toggle(categoryID int64) (domain.FilterSet, QueryTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		return domain.FilterSet{}, QueryTag{}, domain.ErrScreenNotMounted
	}

	next, err := s.filter.Toggle(categoryID)
	if err != nil {
		return next, QueryTag{}, err
	}

	tag := s.query.Issue(next)
	s.launchQueryLocked(tag)
	s.touchLocked()
	s.notifyLocked()

	s.logger.Debug("Filter toggled",
		zap.Int64("category_id", categoryID),
		zap.String("filter", next.Key()),
		zap.Uint64("generation", tag.Generation))

	return next, tag, nil
}

// SelectMarker fires the marker of pointID, which hands the id to the
// navigation bridge.
func (s *DiscoveryScreen) SelectMarker(pointID int64) error {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return domain.ErrScreenNotMounted
	}
	idx := slices.IndexFunc(s.markers, func(m domain.Marker) bool { return m.PointID == pointID })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: point %d", domain.ErrMarkerNotFound, pointID)
	}
	marker := s.markers[idx]
	s.touchLocked()
	s.mu.Unlock()

	marker.Select()
	return nil
}

// Back reports the back intent to the bridge and leaves the screen.
func (s *DiscoveryScreen) Back() {
	if s.bridge != nil {
		s.bridge.GoBack()
	}
	s.Unmount()
}

// WaitIdle blocks until the most recently issued point query has been
// resolved (applied, failed or discarded).
func (s *DiscoveryScreen) WaitIdle(ctx context.Context) error {
	for {
		s.mu.Lock()
		done, pending := s.inflight[s.query.Latest()]
		s.mu.Unlock()

		if !pending {
			return nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Subscribe delivers a snapshot after every state change. Slow readers only
// ever see the latest snapshot. After CloseSubscribers the returned channel
// is already closed.
func (s *DiscoveryScreen) Subscribe() (<-chan dto.ScreenSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan dto.ScreenSnapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.touchLocked()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch
	ch <- s.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(ch)
			}
		})
	}
}

// CloseSubscribers ends every subscription; later subscribers get a closed
// channel.
func (s *DiscoveryScreen) CloseSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

// Snapshot counts as host interaction: a host polling the map keeps its
// session alive.
func (s *DiscoveryScreen) Snapshot() dto.ScreenSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return s.snapshotLocked()
}

// Markers returns the markers of the latest applied point list.
func (s *DiscoveryScreen) Markers() []domain.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return slices.Clone(s.markers)
}

func (s *DiscoveryScreen) Filter() domain.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Current()
}

func (s *DiscoveryScreen) IsMounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Touch marks host activity without changing state.
func (s *DiscoveryScreen) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
}

// IdleFor reports how long the screen has gone without host interaction.
func (s *DiscoveryScreen) IdleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

// launchQueryLocked starts the fetch for tag; the returned channel closes
// once its result has been applied or discarded.
func (s *DiscoveryScreen) launchQueryLocked(tag QueryTag) <-chan struct{} {
	done := make(chan struct{})
	s.inflight[tag.Generation] = done
	ctx := s.ctx

	go func() {
		batch, err := s.query.Fetch(ctx, s.city, tag.Filter)
		s.applyPoints(tag, batch, err)
	}()

	return done
}

func (s *DiscoveryScreen) applyPoints(tag QueryTag, batch *domain.PointBatch, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if done, ok := s.inflight[tag.Generation]; ok {
		delete(s.inflight, tag.Generation)
		defer close(done)
	}

	if !s.mounted {
		s.logger.Debug("Dropping point result after unmount", zap.Uint64("generation", tag.Generation))
		return
	}
	if !s.query.IsLatest(tag) {
		metrics.StaleResultsDiscarded.Inc()
		s.logger.Debug("Discarding stale point result",
			zap.Uint64("generation", tag.Generation),
			zap.Uint64("latest", s.query.Latest()),
			zap.String("filter", tag.Filter.Key()))
		return
	}

	if err != nil {
		s.fetchErr = err
		s.addNoticeLocked(domain.NoticePointsFailed, "Could not load collection points, showing the last results")
		s.logger.Warn("Point query failed, keeping previous result",
			zap.String("filter", tag.Filter.Key()),
			zap.Int("kept_points", len(s.points)),
			zap.Error(err))
		s.notifyLocked()
		return
	}

	s.points = batch.Points
	s.markers = s.projection.Project(batch.Points)
	s.applied = tag.Generation
	s.droppedPoints = batch.Dropped
	s.fetchErr = nil
	s.notifyLocked()

	s.logger.Debug("Point result applied",
		zap.Uint64("generation", tag.Generation),
		zap.String("filter", tag.Filter.Key()),
		zap.Int("points", len(batch.Points)))
}

func (s *DiscoveryScreen) applyLocation(epoch uint64, coord domain.Coordinate, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || s.epoch != epoch {
		return
	}

	if err != nil {
		region := s.fallback
		region.Source = domain.RegionSourceFallback
		s.region = &region
		switch {
		case errors.Is(err, domain.ErrPermissionDenied):
			s.addNoticeLocked(domain.NoticePermissionDenied, "Location permission was not granted, showing the default area")
		case errors.Is(err, context.Canceled):
			return
		default:
			s.addNoticeLocked(domain.NoticeLocationUnavailable, "Your location is unavailable, showing the default area")
		}
		s.logger.Info("Using fallback map region", zap.Error(err))
		s.notifyLocked()
		return
	}

	s.region = &domain.Region{
		Center:         coord,
		LatitudeDelta:  s.fallback.LatitudeDelta,
		LongitudeDelta: s.fallback.LongitudeDelta,
		Source:         domain.RegionSourceDevice,
	}
	s.notifyLocked()
}

func (s *DiscoveryScreen) applyCategories(epoch uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || s.epoch != epoch {
		return
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.addNoticeLocked(domain.NoticeCategoriesFailed, "Could not load material categories")
	}
	s.notifyLocked()
}

func (s *DiscoveryScreen) addNoticeLocked(kind domain.NoticeKind, message string) {
	s.notices = append(s.notices, domain.Notice{Kind: kind, Message: message, At: s.now()})
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

func (s *DiscoveryScreen) touchLocked() {
	s.lastActive = s.now()
}

func (s *DiscoveryScreen) notifyLocked() {
	s.updatedAt = s.now()
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *DiscoveryScreen) snapshotLocked() dto.ScreenSnapshot {
	snap := dto.ScreenSnapshot{
		SessionID:  s.id,
		Mounted:    s.mounted,
		Categories: s.categories.Categories(),
		Filter:     s.filter.Current(),
		Points:     slices.Clone(s.points),
		Markers:    slices.Clone(s.markers),
		Notices:    slices.Clone(s.notices),
		Generation: s.applied,
		Dropped: dto.DroppedRecords{
			Categories: s.categories.Dropped(),
			Points:     s.droppedPoints,
		},
		UpdatedAt: s.updatedAt,
	}
	if snap.Categories == nil {
		snap.Categories = []domain.Category{}
	}
	if snap.Points == nil {
		snap.Points = []domain.Point{}
	}
	if snap.Markers == nil {
		snap.Markers = []domain.Marker{}
	}
	if snap.Notices == nil {
		snap.Notices = []domain.Notice{}
	}
	if s.region != nil {
		region := *s.region
		snap.Region = &region
	}
	if s.fetchErr != nil {
		snap.FetchError = s.fetchErr.Error()
	}
	if bound, ok := MarkerBounds(s.markers); ok {
		snap.Bounds = &dto.Bounds{
			MinLat: bound.Min.Lat(),
			MinLon: bound.Min.Lon(),
			MaxLat: bound.Max.Lat(),
			MaxLon: bound.Max.Lon(),
		}
	}
	return snap
}
