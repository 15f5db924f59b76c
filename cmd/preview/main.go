// Command preview renders the purchase-option widget for a product fixture
// and prints the HTML, so widget configurations can be checked without a
// storefront.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"subscription-widget/internal/cdn"
	"subscription-widget/internal/config"
	"subscription-widget/internal/event"
	"subscription-widget/internal/hostpage"
	"subscription-widget/internal/logger"
	"subscription-widget/internal/platform"
	"subscription-widget/internal/render"
	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

// fixtureSource reads the platform product payload from a JSON file.
type fixtureSource struct {
	path string
}

func (f fixtureSource) Product(_ context.Context, _ int64) (*platform.Product, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var product platform.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func main() {
	productPath := flag.String("product", "product.json", "path to a product JSON fixture")
	productID := flag.Int64("product-id", 0, "product id to load (defaults to the fixture's id)")
	withStyles := flag.Bool("styles", false, "also print the widget stylesheet")
	flag.Parse()

	cfg := config.LoadConfig()
	defer logger.Sync()

	pctx := platform.NewContext(cfg)
	source := fixtureSource{path: *productPath}

	id := *productID
	if id == 0 {
		product, err := source.Product(context.Background(), 0)
		if err != nil {
			log.Fatalf("cannot read product fixture: %v", err)
		}
		id = product.ID
	}

	registry := widget.NewRegistry()
	dispatcher := event.NewDispatcher()
	cdnClient := cdn.NewClient(cfg.CDNBaseURL, cfg.ShopDomain)
	loader := widget.NewLoader(pctx, source, cdnClient, registry, dispatcher)

	model, err := loader.Load(context.Background(), id)
	if err != nil {
		log.Fatalf("cannot load widget: %v", err)
	}

	variantID := hostpage.ResolveVariantID(nil, nil, model.Product)
	if !model.ShouldRender(variantID) {
		log.Fatalf("widget is hidden for variant %d", variantID)
	}

	machine := selection.NewMachine(model, variantID)

	layout, err := render.NewLayout(model)
	if err != nil {
		log.Fatalf("cannot pick layout: %v", err)
	}

	html, err := layout.Init(model, machine.Snapshot())
	if err != nil {
		log.Fatalf("cannot render widget: %v", err)
	}

	if *withStyles && model.Styles != "" {
		fmt.Printf("<style>\n%s\n</style>\n", model.Styles)
	}
	fmt.Println(html)
}
