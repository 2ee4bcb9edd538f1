package cart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sainath-666/storefront/internal/api"
	"github.com/sainath-666/storefront/internal/constants"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/model"
	"github.com/sainath-666/storefront/internal/otel"
)

var ErrItemNotFound = errors.New("cart item not found")

type addRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
	ProductId int64  `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity"  validate:"required,gte=1"`
}

// Cart issues add/update/remove/clear operations against the backend and
// reconciles the local reactive item list afterward. Server state is
// authoritative; the local list is eventually consistent.
type Cart struct {
	client   *api.Client
	url      string
	session  *SessionStore
	store    *Store
	validate *validator.Validate

	mu        sync.Mutex
	sessionId string
	loaded    bool
	seq       atomic.Uint64
}

func NewCart(client *api.Client, session *SessionStore) *Cart {
	return &Cart{
		client:   client,
		url:      client.Config().Resolve(constants.ENDPOINT_CART),
		session:  session,
		store:    NewStore(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (ct *Cart) ensureSession(c context.Context) (string, error) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if ct.sessionId != "" {
		return ct.sessionId, nil
	}
	id, err := ct.session.Load()
	if err != nil {
		return "", fmt.Errorf("failed loading session id with error=%w", err)
	}
	zerolog.Ctx(c).Trace().
		Str(log.KEY_TAG, "Cart ensureSession").
		Str(log.KEY_SESSION_ID, id).
		Msg("loaded session id")
	ct.sessionId = id
	return id, nil
}

// ensureLoaded fetches the full item list for the session on first access.
// Failures settle to an empty list; the read path never propagates errors.
// Concurrent callers may issue redundant fetches, the version guard keeps
// the later-issued one authoritative.
func (ct *Cart) ensureLoaded(c context.Context) {
	ct.mu.Lock()
	if ct.loaded {
		ct.mu.Unlock()
		return
	}
	ct.mu.Unlock()

	c, span := otel.Tracer.Start(c, "Cart ensureLoaded")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Cart ensureLoaded").
		Logger()

	sessionId, err := ct.ensureSession(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		ct.settle(ct.seq.Add(1), nil)
		return
	}
	logger = logger.With().Str(log.KEY_SESSION_ID, sessionId).Logger()

	version := ct.seq.Add(1)
	logger = logger.With().Str(log.KEY_PROCESS, "fetching cart").Logger()
	logger.Trace().Msg("fetching cart")
	c = logger.WithContext(c)
	raw, err := ct.client.Get(c, ct.url+"/"+sessionId)
	if err != nil {
		logger.Warn().Err(err).Msgf("failed fetching cart with error=%s", err.Error())
		ct.settle(version, nil)
		return
	}
	logger.Trace().Msg("fetched cart")

	items := []model.CartItem{}
	if _, err := api.DecodeList(raw, &items); err != nil {
		logger.Warn().Err(err).Msgf("failed decoding cart with error=%s", err.Error())
		items = nil
	}
	ct.settle(version, items)
	logger.Trace().Int(log.KEY_CART_ITEMS, len(items)).Msg("settled cart state")
}

func (ct *Cart) settle(version uint64, items []model.CartItem) {
	ct.store.Apply(version, func([]model.CartItem) []model.CartItem { return items })
	ct.mu.Lock()
	ct.loaded = true
	ct.mu.Unlock()
}

// reconcile invalidates the load guard and re-triggers loading without
// blocking the caller, so the reactive list converges to server truth.
func (ct *Cart) reconcile(c context.Context) {
	ct.mu.Lock()
	ct.loaded = false
	ct.mu.Unlock()
	go ct.ensureLoaded(context.WithoutCancel(c))
}

// Items returns the reactive item stream, loading the cart on first
// access. The stream replays the current state on subscribe.
func (ct *Cart) Items(c context.Context) (<-chan []model.CartItem, func()) {
	ct.ensureLoaded(c)
	return ct.store.Subscribe()
}

// Snapshot returns the current item list without subscribing.
func (ct *Cart) Snapshot(c context.Context) []model.CartItem {
	ct.ensureLoaded(c)
	return ct.store.Snapshot()
}

// ItemCount derives the summed quantity stream from Items.
func (ct *Cart) ItemCount(c context.Context) (<-chan int, func()) {
	items, cancel := ct.Items(c)
	counts := make(chan int, subscriberBuffer)
	go func() {
		defer close(counts)
		for snapshot := range items {
			total := 0
			for _, item := range snapshot {
				total += item.Quantity
			}
			counts <- total
		}
	}()
	return counts, cancel
}

// Add posts a new line item. The backend answers with either a bare
// numeric cart item id or an item object; a bare id is synthesized into an
// item client-side. Success triggers reconciliation; failure propagates.
func (ct *Cart) Add(c context.Context, productId int64, quantity int) (model.CartItem, error) {
	c, span := otel.Tracer.Start(c, "Cart Add")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Cart Add").
		Int64(log.KEY_PRODUCT_ID, productId).
		Int(log.KEY_QUANTITY, quantity).
		Logger()

	sessionId, err := ct.ensureSession(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.CartItem{}, err
	}

	payload := addRequest{SessionId: sessionId, ProductId: productId, Quantity: quantity}
	if err := ct.validate.StructCtx(c, payload); err != nil {
		err = fmt.Errorf("failed validating add request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.CartItem{}, err
	}

	logger = logger.With().Str(log.KEY_PROCESS, "adding cart item").Logger()
	logger.Trace().Msg("adding cart item")
	c = logger.WithContext(c)
	raw, err := ct.client.Do(c, http.MethodPost, ct.url, payload)
	if err != nil {
		err = fmt.Errorf("failed adding cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.CartItem{}, err
	}
	logger.Trace().Msg("added cart item")

	item, err := decodeAddResponse(raw, sessionId, productId, quantity)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.CartItem{}, err
	}

	ct.reconcile(c)
	return item, nil
}

func decodeAddResponse(raw []byte, sessionId string, productId int64, quantity int) (model.CartItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if id, err := strconv.ParseInt(string(trimmed), 10, 64); err == nil {
		return model.CartItem{
			CartItemId: id,
			SessionId:  sessionId,
			ProductId:  productId,
			Quantity:   quantity,
			AddedDate:  time.Now(),
		}, nil
	}
	item := model.CartItem{}
	if err := api.DecodeObject(trimmed, &item); err != nil {
		return model.CartItem{}, fmt.Errorf("invalid response format with error=%w", err)
	}
	return item, nil
}

// UpdateQuantity puts the raw quantity value. The local copy is mutated
// optimistically for responsive readers, and a reconciling re-fetch runs
// on completion whether the call succeeded or not. A non-positive quantity
// routes to removal; a non-positive value is never sent.
func (ct *Cart) UpdateQuantity(c context.Context, cartItemId int64, quantity int) (model.CartItem, error) {
	c, span := otel.Tracer.Start(c, "Cart UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Cart UpdateQuantity").
		Int64(log.KEY_CART_ITEM_ID, cartItemId).
		Int(log.KEY_QUANTITY, quantity).
		Logger()

	if quantity <= 0 {
		logger.Debug().Msg("non-positive quantity routes to removal")
		c = logger.WithContext(c)
		if err := ct.Remove(c, cartItemId); err != nil {
			return model.CartItem{}, err
		}
		return model.CartItem{}, nil
	}

	ct.ensureLoaded(c)

	updated := model.CartItem{}
	found := false
	ct.store.Apply(ct.seq.Add(1), func(items []model.CartItem) []model.CartItem {
		for i := range items {
			if items[i].CartItemId == cartItemId {
				items[i].Quantity = quantity
				updated = items[i]
				found = true
				break
			}
		}
		return items
	})

	logger = logger.With().Str(log.KEY_PROCESS, "updating quantity").Logger()
	logger.Trace().Msg("updating quantity")
	c = logger.WithContext(c)
	_, err := ct.client.Do(c, http.MethodPut, fmt.Sprintf("%s/%d", ct.url, cartItemId), quantity)
	ct.reconcile(c)
	if err != nil {
		message := "failed to update quantity"
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusBadRequest {
			message += ": invalid request format"
			logger.Error().Int(log.KEY_QUANTITY, quantity).Msg("value rejected by server")
		}
		err = fmt.Errorf("%s with error=%w", message, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.CartItem{}, err
	}
	logger.Trace().Msg("updated quantity")

	if !found {
		return model.CartItem{}, ErrItemNotFound
	}
	return updated, nil
}

// Remove deletes the line item. The result is known, so the local list is
// updated synchronously with no re-fetch.
func (ct *Cart) Remove(c context.Context, cartItemId int64) error {
	c, span := otel.Tracer.Start(c, "Cart Remove")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Cart Remove").
		Int64(log.KEY_CART_ITEM_ID, cartItemId).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "removing cart item").Logger()
	logger.Trace().Msg("removing cart item")
	c = logger.WithContext(c)
	_, err := ct.client.Do(c, http.MethodDelete, fmt.Sprintf("%s/%d", ct.url, cartItemId), nil)
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("removed cart item")

	ct.store.Apply(ct.seq.Add(1), func(items []model.CartItem) []model.CartItem {
		remaining := items[:0]
		for _, item := range items {
			if item.CartItemId != cartItemId {
				remaining = append(remaining, item)
			}
		}
		return remaining
	})
	return nil
}

// Clear deletes every item for the session and empties the local list.
func (ct *Cart) Clear(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Cart Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Cart Clear").
		Logger()

	sessionId, err := ct.ensureSession(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KEY_PROCESS, "clearing cart").Logger()
	logger.Trace().Msg("clearing cart")
	c = logger.WithContext(c)
	_, err = ct.client.Do(c, http.MethodDelete, fmt.Sprintf("%s/%s/clear", ct.url, sessionId), nil)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("cleared cart")

	ct.store.Apply(ct.seq.Add(1), func([]model.CartItem) []model.CartItem { return nil })
	return nil
}
