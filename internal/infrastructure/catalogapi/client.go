package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/collection-point-service/internal/config"
	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"github.com/collection-point-service/internal/pkg/metrics"
	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

var errNotFound = errors.New("catalog API error: status 404")

type client struct {
	httpClient     *http.Client
	baseURL        string
	categoriesPath string
	pointsPath     string
	logger         *zap.Logger
}

// NewCatalogClient создает клиент HTTP бэкенда каталога пунктов сбора
func NewCatalogClient(cfg *config.CatalogConfig, logger *zap.Logger) repository.CatalogRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		categoriesPath: cfg.CategoriesPath,
		pointsPath:     cfg.PointsPath,
		logger:         logger,
	}
}

// GetCategories загружает каталог категорий материалов
func (c *client) GetCategories(ctx context.Context) (batch *domain.CategoryBatch, err error) {
	started := time.Now()
	defer func() { metrics.ObserveFetch(string(domain.FetchSourceCategories), started, err) }()

	records, err := c.getList(ctx, c.baseURL+c.categoriesPath)
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchSourceCategories, err)
	}

	batch = &domain.CategoryBatch{Categories: make([]domain.Category, 0, len(records))}
	seen := make(map[int64]struct{}, len(records))
	for _, raw := range records {
		category, ok := decodeCategory(raw)
		if !ok {
			batch.Dropped++
			continue
		}
		if _, dup := seen[category.ID]; dup {
			batch.Dropped++
			continue
		}
		seen[category.ID] = struct{}{}
		batch.Categories = append(batch.Categories, category)
	}

	c.reportDropped(domain.FetchSourceCategories, batch.Dropped, len(records))
	c.logger.Debug("Categories loaded", zap.Int("count", len(batch.Categories)))

	return batch, nil
}

// GetPoints загружает точки для локальности и набора категорий.
// Пустой filter не добавляет параметр categoryIds: сервер вернёт все точки.
func (c *client) GetPoints(
	ctx context.Context,
	city domain.CityContext,
	filter domain.FilterSet,
) (batch *domain.PointBatch, err error) {
	started := time.Now()
	defer func() { metrics.ObserveFetch(string(domain.FetchSourcePoints), started, err) }()

	records, err := c.getList(ctx, c.baseURL+c.pointsPath+"?"+PointsQuery(city, filter).Encode())
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchSourcePoints, err)
	}

	batch = &domain.PointBatch{Points: make([]domain.Point, 0, len(records))}
	seen := make(map[int64]struct{}, len(records))
	for _, raw := range records {
		_, point, ok := decodePoint(raw)
		if !ok {
			batch.Dropped++
			continue
		}
		if _, dup := seen[point.ID]; dup {
			batch.Dropped++
			continue
		}
		seen[point.ID] = struct{}{}
		batch.Points = append(batch.Points, point)
	}

	c.reportDropped(domain.FetchSourcePoints, batch.Dropped, len(records))
	c.logger.Debug("Points loaded",
		zap.String("city_context", city.String()),
		zap.String("filter", filter.Key()),
		zap.Int("count", len(batch.Points)))

	return batch, nil
}

// GetPointDetail загружает карточку точки с принимаемыми материалами
func (c *client) GetPointDetail(ctx context.Context, pointID int64) (detail *domain.PointDetail, err error) {
	started := time.Now()
	defer func() { metrics.ObserveFetch(string(domain.FetchSourceDetail), started, err) }()

	body, err := c.get(ctx, fmt.Sprintf("%s%s/%d", c.baseURL, c.pointsPath, pointID))
	if errors.Is(err, errNotFound) {
		err = domain.ErrPointNotFound
	}
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchSourceDetail, err)
	}

	var wire detailWire
	if err := json.Unmarshal(body, &wire); err != nil || wire.Point == nil {
		return nil, domain.NewFetchError(domain.FetchSourceDetail,
			fmt.Errorf("%w: point detail body", domain.ErrMalformedResponse))
	}

	raw, point, ok := decodePoint(*wire.Point)
	if !ok {
		return nil, domain.NewFetchError(domain.FetchSourceDetail,
			fmt.Errorf("%w: point %d", domain.ErrMalformedResponse, pointID))
	}

	detail = &domain.PointDetail{
		Point:      point,
		Categories: make([]string, 0, len(wire.Items)),
		Address:    firstNonEmpty(raw.Address),
		City:       firstNonEmpty(raw.City),
		Region:     firstNonEmpty(raw.UF, raw.Region),
		Email:      firstNonEmpty(raw.Email),
		WhatsApp:   firstNonEmpty(raw.WhatsApp),
	}
	dropped := 0
	for _, item := range wire.Items {
		title := firstNonEmpty(item.Title, item.Label, item.Titulo)
		if title == "" {
			dropped++
			continue
		}
		detail.Categories = append(detail.Categories, title)
	}
	detail.Contacts = domain.BuildContactLinks(detail.Email, detail.WhatsApp)

	c.reportDropped(domain.FetchSourceDetail, dropped, len(wire.Items))

	return detail, nil
}

// PointsQuery builds the query string for a points search: categoryIds is
// repeated once per selected id and left out entirely for an empty filter.
func PointsQuery(city domain.CityContext, filter domain.FilterSet) url.Values {
	q := url.Values{}
	q.Set("cityContext", city.String())
	for _, id := range filter.IDs() {
		q.Add("categoryIds", strconv.FormatInt(id, 10))
	}
	return q
}

func (c *client) getList(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		c.logger.Error("Catalog returned non-list body",
			zap.String("url", endpoint),
			zap.Error(err))
		return nil, fmt.Errorf("%w: expected JSON array", domain.ErrMalformedResponse)
	}
	return records, nil
}

func (c *client) get(ctx context.Context, endpoint string) ([]byte, error) {
	c.logger.Debug("Calling catalog API", zap.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Catalog API returned error",
			zap.String("url", endpoint),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("catalog API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func (c *client) reportDropped(source domain.FetchSource, dropped, total int) {
	if dropped == 0 {
		return
	}
	metrics.MalformedRecordsDropped.WithLabelValues(string(source)).Add(float64(dropped))
	c.logger.Warn("Dropped malformed catalog records",
		zap.String("source", string(source)),
		zap.Int("dropped", dropped),
		zap.Int("received", total))
}
