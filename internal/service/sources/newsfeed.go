package sources

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"IntelPull/internal/domain/models"
	xhttp "IntelPull/pkg/http"
	"IntelPull/pkg/util"
)

// NewsFeed pulls recent press coverage from an external news API and maps
// it into the news candidate shape.
type NewsFeed struct {
	client  *xhttp.Client
	baseURL string
	apiKey  string
}

// NewNewsFeed creates the news adapter.
func NewNewsFeed(client *xhttp.Client, baseURL, apiKey string) *NewsFeed {
	return &NewsFeed{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (n *NewsFeed) Name() string { return "newsfeed" }

func (n *NewsFeed) Supports(category models.Category) bool {
	return category == models.CategoryNews
}

type newsFeedArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type newsFeedPayload struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Articles     []newsFeedArticle `json:"articles"`
}

func (n *NewsFeed) Fetch(ctx context.Context, req models.IntelligenceRequest) (models.SourceResult, error) {
	ticker := req.NormalizedTicker()
	now := time.Now()
	from := now.Add(-util.WindowDefault(req.Params.Window()))

	var payload newsFeedPayload
	err := n.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    n.baseURL + "/v2/everything",
		QueryParams: map[string][]string{
			"q":        {ticker},
			"from":     {from.Format("2006-01-02")},
			"sortBy":   {"publishedAt"},
			"pageSize": {strconv.Itoa(req.Params.ArticleLimit())},
			"apiKey":   {n.apiKey},
		},
	}, &payload)
	if err != nil {
		return models.SourceResult{}, fmt.Errorf("newsfeed fetch %s: %w", ticker, err)
	}
	if payload.Status != "ok" {
		return models.SourceResult{}, fmt.Errorf("newsfeed fetch %s: status %q", ticker, payload.Status)
	}
	if len(payload.Articles) == 0 {
		return models.SourceResult{}, fmt.Errorf("newsfeed fetch %s: no articles", ticker)
	}

	articles := make([]models.NewsArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		published := a.PublishedAt
		if t, ok := util.ParseTime(published); ok {
			published = models.FormatTime(t)
		}
		articles = append(articles, models.NewsArticle{
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: published,
		})
	}

	data := models.Candidate{
		models.FieldTicker:         ticker,
		models.FieldArticles:       articles,
		models.FieldDateRangeStart: models.FormatTime(from),
		models.FieldDateRangeEnd:   models.FormatTime(now),
	}

	return models.SourceResult{
		Source:     n.Name(),
		Data:       data,
		Confidence: 0.8,
	}, nil
}
