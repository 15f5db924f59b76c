package widget

import (
	"context"
	"sync"

	"subscription-widget/internal/api"
	"subscription-widget/internal/bundle"
	"subscription-widget/internal/cdn"
	"subscription-widget/internal/event"
	"subscription-widget/internal/logger"
	"subscription-widget/internal/planindex"
	"subscription-widget/internal/platform"

	"go.uber.org/zap"
)

// ErrorHook observes recoverable load and checkout failures. The default is
// to do nothing, matching the widget's degrade-silently behavior; merchants
// can install one to surface errors. Hooks may be called from concurrent
// fetch goroutines.
type ErrorHook func(stage string, err error)

func nopErrorHook(string, error) {}

// ProductSource delivers the platform product payload. The storefront reads
// it from the page; tests and the preview command read fixtures.
type ProductSource interface {
	Product(ctx context.Context, productID int64) (*platform.Product, error)
}

// CDN is the subset of the CDN client the loader needs.
type CDN interface {
	Store(ctx context.Context) (*cdn.StoreConfig, error)
	Preferences(ctx context.Context, widgetID string) ([]cdn.KeyValue, error)
	Styles(ctx context.Context, widgetID string) (string, error)
	Texts(ctx context.Context, widgetID, locale, storeDefaultLocale string) ([]cdn.KeyValue, error)
	PresetBundle(ctx context.Context, productID int64) (*bundle.Data, error)
}

// PrivilegedAPI is the subset of the authorized API the loader needs.
type PrivilegedAPI interface {
	PrepaidPlans(ctx context.Context, planIDs []int64) (map[int64]api.PrepaidPlanInfo, error)
	CountryEligiblePlans(ctx context.Context, planIDs []int64, countryCode string) ([]int64, error)
}

// APIFactory builds the privileged client once the store config reveals the
// endpoints and auth token.
type APIFactory func(endpoints api.Endpoints, authToken string) PrivilegedAPI

// DefaultAPIFactory wires the real HTTP client.
func DefaultAPIFactory(endpoints api.Endpoints, authToken string) PrivilegedAPI {
	return api.NewClient(endpoints, authToken)
}

// Loader aggregates all widget data for a product: store config and widget
// mapping first (hard failures), then the per-widget and privileged fetches
// concurrently, each behind its own failure boundary.
type Loader struct {
	platform   platform.Context
	products   ProductSource
	cdn        CDN
	newAPI     APIFactory
	registry   *Registry
	dispatcher *event.Dispatcher
	onError    ErrorHook
}

func NewLoader(pctx platform.Context, products ProductSource, cdnClient CDN, registry *Registry, dispatcher *event.Dispatcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		platform:   pctx,
		products:   products,
		cdn:        cdnClient,
		newAPI:     DefaultAPIFactory,
		registry:   registry,
		dispatcher: dispatcher,
		onError:    nopErrorHook,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type LoaderOption func(*Loader)

func WithAPIFactory(f APIFactory) LoaderOption {
	return func(l *Loader) { l.newAPI = f }
}

func WithErrorHook(hook ErrorHook) LoaderOption {
	return func(l *Loader) { l.onError = hook }
}

// Load aggregates the widget model for the product, stores it in the
// registry, and announces it. Only product, store config, widget mapping, and
// text failures are fatal; every optional source degrades to its zero value.
func (l *Loader) Load(ctx context.Context, productID int64) (*Model, error) {
	ctx = logger.WithProduct(ctx, productID)
	log := logger.FromCtx(ctx)

	product, err := l.products.Product(ctx, productID)
	if err != nil {
		log.Error("failed loading product data", zap.Error(err))
		return nil, err
	}

	store, err := l.cdn.Store(ctx)
	if err != nil {
		log.Error("failed loading store config", zap.Error(err))
		return nil, err
	}
	if !store.IsStorefrontWidgetPublished {
		return nil, ErrWidgetUnpublished
	}

	widgetID := store.WidgetID(l.platform.ThemeID, l.platform.TemplateName)
	if widgetID == "" {
		log.Warn("no widget mapping",
			zap.String("theme_id", l.platform.ThemeID),
			zap.String("template", l.platform.TemplateName),
		)
		return nil, ErrNoWidgetMapping
	}

	model := &Model{
		Product:  product,
		Store:    store,
		WidgetID: widgetID,
		Index:    planindex.Build(product),
		Platform: l.platform,
	}

	l.fetchSources(ctx, model)

	if len(model.Texts) == 0 {
		return nil, cdn.ErrEmptyTexts
	}

	l.registry.Set(productID, model)
	if l.dispatcher != nil {
		l.dispatcher.Dispatch(event.WidgetLoaded, productID)
	}
	return model, nil
}

// fetchSources runs the per-widget and privileged fetches concurrently. Each
// goroutine owns one Model field, so no locking beyond the join is needed.
func (l *Loader) fetchSources(ctx context.Context, model *Model) {
	store := model.Store
	widgetID := model.WidgetID
	planIDs := model.Product.PlanIDs()

	var privileged PrivilegedAPI
	if store.HasPrepaid || store.IsSellingPlanCountryMappingEnabled {
		privileged = l.newAPI(api.Endpoints{
			PrepaidSellingPlans:      store.APIURL.PrepaidSellingPlans,
			SellingPlanCountryFilter: store.APIURL.SellingPlanCountryFilter,
			BundleTransaction:        store.APIURL.BundleTransaction,
		}, store.AuthToken)
	}

	var wg sync.WaitGroup

	run := func(stage string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				logger.FromCtx(ctx).Warn("widget source fetch failed",
					zap.String("stage", stage),
					zap.Error(err),
				)
				l.onError(stage, err)
			}
		}()
	}

	run("texts", func() error {
		texts, err := l.cdn.Texts(ctx, widgetID, l.platform.WidgetLocale(), store.StoreDefaultLocale)
		if err != nil {
			return err
		}
		model.Texts = texts
		return nil
	})

	run("preferences", func() error {
		prefs, err := l.cdn.Preferences(ctx, widgetID)
		if err != nil {
			return err
		}
		model.Preferences = prefs
		return nil
	})

	run("styles", func() error {
		styles, err := l.cdn.Styles(ctx, widgetID)
		if err != nil {
			return err
		}
		model.Styles = styles
		return nil
	})

	if store.HasPrepaid && len(planIDs) > 0 {
		run("prepaid", func() error {
			plans, err := privileged.PrepaidPlans(ctx, planIDs)
			if err != nil {
				return err
			}
			model.PrepaidPlans = plans
			return nil
		})
	}

	if store.IsSellingPlanCountryMappingEnabled && len(planIDs) > 0 {
		run("country_filter", func() error {
			// On failure the field stays nil and the country stage is skipped.
			ids, err := privileged.CountryEligiblePlans(ctx, planIDs, l.platform.CountryOrAll())
			if err != nil {
				return err
			}
			if ids == nil {
				ids = []int64{}
			}
			model.CountryEligiblePlanIDs = ids
			return nil
		})
	}

	if store.IsBundleProduct(model.Product.ID) {
		run("bundle", func() error {
			data, err := l.cdn.PresetBundle(ctx, model.Product.ID)
			if err != nil {
				return err
			}
			model.Bundle = data
			return nil
		})
	}

	wg.Wait()
}
