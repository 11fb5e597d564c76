package coordinator

import (
	"context"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/config"
	"github.com/chronic-org/chronic/errors"
	"github.com/chronic-org/chronic/latest"
	"github.com/chronic-org/chronic/store"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

const (
	msgFetchLatestFailed   = "failed to fetch latest article ids"
	msgFetchArticlesFailed = "failed to fetch articles"
)

//go:generate mockgen -source=./latest.go -destination=./test/mock_latest_gateway.go -package test LatestGateway

type LatestGateway interface {
	GetArticleIds(ctx context.Context, keywords []string) ([]int, error)
	GetArticles(ctx context.Context, articleIds []int) ([]client.Article, error)
}

var _ LatestGateway = &client.Client{}

// Latest drives the awareness feed. Only the article id list lives in the
// store; detail lookups are served on demand and memoized in an LRU cache
// because the same ids are requested every time the feed renders.
type Latest struct {
	store    *store.Store
	slice    *latest.Slice
	gateway  LatestGateway
	keywords []string
	cache    *lru.Cache
	logger   *zap.SugaredLogger
}

func NewLatestCoordinator(cfg *config.Config, st *store.Store, slice *latest.Slice, gateway LatestGateway, logger *zap.SugaredLogger) (*Latest, error) {
	cache, err := lru.New(cfg.ArticleCacheSize)
	if err != nil {
		return nil, err
	}
	return &Latest{
		store:    st,
		slice:    slice,
		gateway:  gateway,
		keywords: cfg.DefaultKeywords,
		cache:    cache,
		logger:   logger,
	}, nil
}

// FetchLatest refreshes the feed's article ids. With no keywords the
// configured defaults are used.
func (c *Latest) FetchLatest(ctx context.Context, keywords ...string) error {
	if len(keywords) == 0 {
		keywords = c.keywords
	}
	c.store.Update(c.slice.FetchLatestRequest)
	articleIds, err := c.gateway.GetArticleIds(ctx, keywords)
	if err != nil {
		message := errors.Message(err, msgFetchLatestFailed)
		c.logger.Warnw("latest feed fetch failed", "keywords", keywords, "error", message)
		c.store.Update(func() { c.slice.FetchLatestFailure(message) })
		return err
	}
	c.store.Update(func() { c.slice.FetchLatestSuccess(articleIds) })
	return nil
}

// Articles resolves ids to details, fetching only the ids missing from the
// cache and returning results in request order.
func (c *Latest) Articles(ctx context.Context, articleIds []int) ([]client.Article, error) {
	missing := make([]int, 0, len(articleIds))
	for _, id := range articleIds {
		if _, ok := c.cache.Get(id); !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := c.gateway.GetArticles(ctx, missing)
		if err != nil {
			return nil, errors.NewDomainError(errors.Message(err, msgFetchArticlesFailed))
		}
		for _, article := range fetched {
			c.cache.Add(article.ArticleId, article)
		}
	}

	articles := make([]client.Article, 0, len(articleIds))
	for _, id := range articleIds {
		if cached, ok := c.cache.Get(id); ok {
			articles = append(articles, cached.(client.Article))
		}
	}
	return articles, nil
}
