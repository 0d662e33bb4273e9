package main

import (
	"context"
	"errors"

	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/wrapcall"
	"github.com/rise-and-shine/wrapcall/cfgloader"
	"github.com/rise-and-shine/wrapcall/hooks"
	"github.com/rise-and-shine/wrapcall/observability/logger"
	"github.com/rise-and-shine/wrapcall/observability/tracing"
)

type Config struct {
	Logger   logger.Config   `yaml:"logger"`
	Tracing  tracing.Config  `yaml:"tracing"`
	Wrapper  wrapcall.Config `yaml:"wrapper"`
	Checkout CheckoutConfig  `yaml:"checkout"`
}

type CheckoutConfig struct {
	MaxAmount int    `yaml:"max_amount" validate:"gt=0" default:"1000"`
	APIKey    string `yaml:"api_key"    mask:"true"`
}

type Order struct {
	ID     string `json:"id"     validate:"required"`
	Amount int    `json:"amount" validate:"gt=0"`
	Card   string `json:"card"   mask:"true"`
}

const rejected = "rejected"

func main() {
	cfg := cfgloader.MustLoad[Config]()

	if err := logger.SetGlobal(cfg.Logger); err != nil {
		panic(err)
	}
	log := logger.Named("main")
	defer func() { _ = logger.Sync() }()

	shutdown, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() { _ = shutdown() }()

	registry := metrics.NewRegistry()

	for _, order := range []Order{
		{ID: "A-1", Amount: 120, Card: "4111111111111111"},
		{ID: "A-2", Amount: 9000, Card: "4111111111111111"},
		{ID: "", Amount: 50},
	} {
		wrap, err := wrapcall.Compose[Order, string](
			wrapcall.WithConfig[string](cfg.Wrapper),
			wrapcall.WithLogger[string](log),
			wrapcall.WithArgs[string](order),
			wrapcall.WithBefore[string]([]wrapcall.Hook[string]{
				hooks.Validate[string](),
				hooks.Gate(func(_ context.Context, args wrapcall.Args) bool {
					o, _ := args.At(0).(Order)
					return o.Amount <= cfg.Checkout.MaxAmount
				}, rejected),
			}),
			wrapcall.WithShared[string](hooks.Log[string](log, "checkout step")),
			wrapcall.WithAfter[string]([]wrapcall.Hook[string]{
				hooks.TraceEvent[string]("checkout.completed"),
				hooks.Count[string](registry, "checkout.completed"),
			}),
			wrapcall.WithReturnFilter(wrapcall.StopOn(rejected)),
		)
		if err != nil {
			log.Fatalx(err)
		}

		ctx, span := tracing.Tracer().Start(context.Background(), "checkout")
		res, err := wrap(charge)(ctx, order)
		span.End()
		if err != nil {
			log.With("order_id", order.ID).Errorx(err)
			continue
		}
		log.With("order_id", order.ID, "result", res).Info("checkout finished")
	}

	log.With("completed", metrics.GetOrRegisterCounter("checkout.completed", registry).Count()).Info("done")
}

func charge(_ context.Context, order Order) (string, error) {
	if order.Card == "" {
		return "", errors.New("no card on file")
	}
	return "charged " + order.ID, nil
}
