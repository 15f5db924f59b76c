package cart

import (
	"context"
	"encoding/json"
	"strings"

	"subscription-widget/internal/bundle"
	"subscription-widget/internal/event"
	"subscription-widget/internal/hostpage"
	"subscription-widget/internal/logger"
	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"

	"go.uber.org/zap"
)

// API is the platform cart surface the orchestrator needs.
type API interface {
	Add(ctx context.Context, payload Payload) (json.RawMessage, error)
	Current(ctx context.Context) (*State, error)
}

// Added is the cart:added event payload.
type Added struct {
	ProductID int64
	Response  json.RawMessage
}

// Result reports a completed submission.
type Result struct {
	Response json.RawMessage
	// RedirectURL is where the shopper goes next; "" means stay on the page.
	RedirectURL string
}

// Orchestrator intercepts the add-to-cart submission: buttons are disabled
// for the duration, bundle products are reserved first, and the shopper is
// redirected according to the bundle configuration. Failures re-enable the
// buttons and are reported through the error hook without retrying.
type Orchestrator struct {
	carts      API
	bundles    *bundle.Flow
	dispatcher *event.Dispatcher
	onError    widget.ErrorHook
}

func NewOrchestrator(carts API, bundles *bundle.Flow, dispatcher *event.Dispatcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		carts:      carts,
		bundles:    bundles,
		dispatcher: dispatcher,
		onError:    func(string, error) {},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type Option func(*Orchestrator)

func WithErrorHook(hook widget.ErrorHook) Option {
	return func(o *Orchestrator) { o.onError = hook }
}

func (o *Orchestrator) AddToCart(ctx context.Context, model *widget.Model, form *hostpage.Form, state selection.State) (*Result, error) {
	ctx = logger.WithProduct(ctx, model.Product.ID)
	log := logger.FromCtx(ctx)

	form.DisableButtons()
	defer form.EnableButtons()

	quantity := form.Quantity()

	var bundleRes *bundle.Result
	var liveCart *State

	if model.IsBundleProduct() {
		// Best effort; an unreachable cart only means stale discount
		// attributes are kept.
		var err error
		liveCart, err = o.carts.Current(ctx)
		if err != nil {
			log.Warn("could not read live cart", zap.Error(err))
		}

		bundleRes, err = o.bundles.Prepare(ctx, model.Bundle, model.Product.ID, state.VariantID, state.PlanID, quantity)
		if err != nil {
			log.Warn("bundle flow aborted", zap.Error(err))
			o.onError("bundle", err)
			return nil, err
		}
	}

	payload, err := BuildPayload(PayloadInput{
		Model:    model,
		State:    state,
		Quantity: quantity,
		Bundle:   bundleRes,
		LiveCart: liveCart,
	})
	if err != nil {
		o.onError("payload", err)
		return nil, err
	}

	response, err := o.carts.Add(ctx, payload)
	if err != nil {
		o.onError("cart_add", err)
		return nil, err
	}

	if o.dispatcher != nil {
		o.dispatcher.Dispatch(event.CartAdded, Added{
			ProductID: model.Product.ID,
			Response:  response,
		})
	}

	return &Result{
		Response:    response,
		RedirectURL: redirectURL(model, bundleRes),
	}, nil
}

// redirectURL resolves the post-submit destination: the bundle's configured
// redirect ("None" disables it), else the locale-prefixed cart page.
func redirectURL(model *widget.Model, bundleRes *bundle.Result) string {
	if bundleRes != nil {
		switch model.Bundle.RedirectionURL {
		case "":
		case "None":
			return ""
		default:
			return model.Bundle.RedirectionURL
		}
	}

	route := model.Platform.CartRoute
	if route == "" {
		route = "/"
	}
	return strings.TrimSuffix(route, "/") + "/cart"
}
