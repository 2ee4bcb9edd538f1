package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sainath-666/storefront/internal/api"
	"github.com/sainath-666/storefront/internal/constants"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/model"
	"github.com/sainath-666/storefront/internal/otel"
)

type CategoryCatalog struct {
	client *api.Client
	url    string
}

func NewCategoryCatalog(client *api.Client) CategoryCatalog {
	return CategoryCatalog{
		client: client,
		url:    client.Config().Resolve(constants.ENDPOINT_CATEGORIES),
	}
}

func (cc CategoryCatalog) List(c context.Context) ([]model.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryCatalog List")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CategoryCatalog List").
		Str(log.KEY_URL, cc.url).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "fetching categories").Logger()
	logger.Trace().Msg("fetching categories")
	c = logger.WithContext(c)
	raw, err := cc.client.Get(c, cc.url)
	if err != nil {
		err = fmt.Errorf("unable to contact the server with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("fetched categories")

	categories := []model.Category{}
	if _, err := api.DecodeList(raw, &categories); err != nil {
		err = fmt.Errorf("invalid response format with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return categories, nil
}

func (cc CategoryCatalog) Get(c context.Context, id int64) (model.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryCatalog Get")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CategoryCatalog Get").
		Int64(log.KEY_CATEGORY_ID, id).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "fetching category").Logger()
	logger.Trace().Msg("fetching category")
	c = logger.WithContext(c)
	raw, err := cc.client.Get(c, fmt.Sprintf("%s/%d", cc.url, id))
	if err != nil {
		err = fmt.Errorf("unable to contact the server with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Category{}, err
	}
	logger.Trace().Msg("fetched category")

	category := model.Category{}
	if err := json.Unmarshal(raw, &category); err != nil {
		err = fmt.Errorf("invalid response format with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Category{}, err
	}
	return category, nil
}

// Hierarchy fetches the pre-nested category tree. Unlike List, the
// hierarchy endpoint always responds with the {"data":{"data":[...]}}
// shape and no other envelope is accepted.
func (cc CategoryCatalog) Hierarchy(c context.Context) ([]model.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryCatalog Hierarchy")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CategoryCatalog Hierarchy").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "fetching category hierarchy").Logger()
	logger.Trace().Msg("fetching category hierarchy")
	c = logger.WithContext(c)
	raw, err := cc.client.Get(c, cc.url+"/hierarchy")
	if err != nil {
		err = fmt.Errorf("unable to contact the server with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("fetched category hierarchy")

	categories := []model.Category{}
	if err := api.DecodeNestedList(raw, &categories); err != nil {
		err = fmt.Errorf("invalid response format with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return categories, nil
}
