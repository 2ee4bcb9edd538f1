package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sainath-666/storefront/internal/api"
	"github.com/sainath-666/storefront/internal/constants"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/model"
	"github.com/sainath-666/storefront/internal/otel"
)

const (
	sortField       = "ProductName"
	suggestPageSize = 5
	minSuggestQuery = 2
)

type ListParams struct {
	Page       int
	PageSize   int
	CategoryId int64
	Ascending  bool
	Search     string
}

type ListResult struct {
	Items      []model.Product
	TotalCount int
}

type ProductCatalog struct {
	client *api.Client
	url    string
}

func NewProductCatalog(client *api.Client) ProductCatalog {
	return ProductCatalog{
		client: client,
		url:    client.Config().Resolve(constants.ENDPOINT_PRODUCTS),
	}
}

func (p ProductCatalog) List(c context.Context, params ListParams) (ListResult, error) {
	c, span := otel.Tracer.Start(c, "ProductCatalog List")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "ProductCatalog List").
		Int(log.KEY_PAGE, params.Page).
		Int(log.KEY_PAGE_SIZE, params.PageSize).
		Str(log.KEY_SEARCH, params.Search).
		Logger()

	sortOrder := "ASC"
	if !params.Ascending {
		sortOrder = "DESC"
	}
	query := url.Values{}
	query.Set("pageNumber", strconv.Itoa(params.Page))
	query.Set("pageSize", strconv.Itoa(params.PageSize))
	query.Set("sortBy", sortField)
	query.Set("sortOrder", sortOrder)
	if params.CategoryId > 0 {
		query.Set("categoryId", strconv.FormatInt(params.CategoryId, 10))
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		query.Set("search", search)
	}

	logger = logger.With().Str(log.KEY_PROCESS, "fetching products").Logger()
	logger.Trace().Msg("fetching products")
	c = logger.WithContext(c)
	raw, err := p.client.Get(c, p.url+"?"+query.Encode())
	if err != nil {
		err = fmt.Errorf("failed fetching products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ListResult{}, err
	}
	logger.Trace().Msg("fetched products")

	logger = logger.With().Str(log.KEY_PROCESS, "decoding products").Logger()
	items := []model.Product{}
	totalRecords, err := api.DecodeList(raw, &items)
	if err != nil {
		err = fmt.Errorf("invalid response format with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ListResult{}, err
	}
	logger.Trace().Msgf("decoded %d products", len(items))

	origin := p.client.Config().BaseOrigin()
	for i := range items {
		items[i].ImageUrl = normalizeImageUrl(origin, items[i].ImageUrl)
	}

	if totalRecords == 0 {
		totalRecords = len(items)
	}
	return ListResult{Items: items, TotalCount: totalRecords}, nil
}

func (p ProductCatalog) Get(c context.Context, id int64) (model.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductCatalog Get")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "ProductCatalog Get").
		Int64(log.KEY_PRODUCT_ID, id).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "fetching product").Logger()
	logger.Trace().Msg("fetching product")
	c = logger.WithContext(c)
	raw, err := p.client.Get(c, fmt.Sprintf("%s/%d", p.url, id))
	if err != nil {
		err = fmt.Errorf("failed fetching product with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}
	logger.Trace().Msg("fetched product")

	product := model.Product{}
	if err := api.DecodeObject(raw, &product); err != nil {
		err = fmt.Errorf("invalid response format with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}
	return product, nil
}

// Suggest derives search suggestions from the list query path. Queries
// shorter than two characters never hit the network, and failures degrade
// to an empty result.
func (p ProductCatalog) Suggest(c context.Context, query string) []string {
	c, span := otel.Tracer.Start(c, "ProductCatalog Suggest")
	defer span.End()

	if len(query) < minSuggestQuery {
		return nil
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "ProductCatalog Suggest").
		Str(log.KEY_SEARCH, query).
		Logger()

	c = logger.WithContext(c)
	result, err := p.List(c, ListParams{
		Page:      1,
		PageSize:  suggestPageSize,
		Ascending: true,
		Search:    query,
	})
	if err != nil {
		logger.Warn().Err(err).Msgf("failed fetching suggestions with error=%s", err.Error())
		return nil
	}

	lowered := strings.ToLower(query)
	suggestions := []string{}
	for _, product := range result.Items {
		if strings.Contains(strings.ToLower(product.ProductName), lowered) {
			suggestions = append(suggestions, product.ProductName)
		}
	}
	return suggestions
}

// normalizeImageUrl rewrites a relative image path against the API origin.
// Absolute URLs pass through; paths not rooted at / are assumed to live
// under /uploads/.
func normalizeImageUrl(origin string, imageUrl string) string {
	if imageUrl == "" {
		return imageUrl
	}
	if strings.HasPrefix(imageUrl, "http") {
		return imageUrl
	}
	if !strings.HasPrefix(imageUrl, "/") {
		imageUrl = "/uploads/" + imageUrl
	}
	return origin + imageUrl
}
