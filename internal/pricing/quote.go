package pricing

import (
	"context"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// QuoteInput is the cart data pricing depends on.
type QuoteInput struct {
	Quantity     int
	State        string
	DiscountCode string
	SubTotal     decimal.Decimal
}

// Quoter prices a cart for a merchant.
type Quoter interface {
	// Quote resolves discount, tax and shipping for the cart and assembles the total.
	// Any lookup failure aborts the quote.
	Quote(ctx context.Context, merchantCode string, in QuoteInput) (*model.Quote, error)
}

type quoter struct {
	discounts *DiscountResolver
	taxes     *TaxCalculator
	shipping  *ShippingResolver
	assembler Assembler
	logger    zerolog.Logger
}

// NewQuoter wires the resolvers into a Quoter.
func NewQuoter(
	discounts *DiscountResolver,
	taxes *TaxCalculator,
	shipping *ShippingResolver,
	policy Policy,
	logger zerolog.Logger,
) Quoter {
	return &quoter{
		discounts: discounts,
		taxes:     taxes,
		shipping:  shipping,
		assembler: Assembler{AllowNegativeTotal: policy.AllowNegativeTotal},
		logger:    logger.With().Str("component", "quoter").Logger(),
	}
}

// Quote runs the three lookups concurrently; they share no state and all
// must finish before the total is assembled.
func (q *quoter) Quote(ctx context.Context, merchantCode string, in QuoteInput) (*model.Quote, error) {
	subtotal := Round2(in.SubTotal)

	var discount, tax, fee decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)

	if in.DiscountCode != "" {
		g.Go(func() error {
			var err error
			discount, err = q.discounts.Resolve(gctx, merchantCode, in.DiscountCode, in.Quantity, subtotal)
			return err
		})
	}

	g.Go(func() error {
		var err error
		tax, err = q.taxes.Calculate(gctx, merchantCode, in.State, subtotal)
		return err
	})

	g.Go(func() error {
		var err error
		fee, err = q.shipping.Resolve(gctx, merchantCode, in.State)
		return err
	})

	if err := g.Wait(); err != nil {
		q.logger.Debug().
			Err(err).
			Str("merchant_code", merchantCode).
			Msg("quote aborted")
		return nil, err
	}

	quote := &model.Quote{
		DiscountValue:  discount,
		DiscountCode:   in.DiscountCode,
		SubTotal:       subtotal,
		CalcTax:        tax,
		GetShippingFee: fee,
		Total:          q.assembler.Total(subtotal, tax, fee, discount),
	}

	q.logger.Debug().
		Str("merchant_code", merchantCode).
		Str("sub_total", quote.SubTotal.StringFixed(2)).
		Str("tax", quote.CalcTax.StringFixed(2)).
		Str("shipping_fee", quote.GetShippingFee.StringFixed(2)).
		Str("discount", quote.DiscountValue.StringFixed(2)).
		Str("total", quote.Total.StringFixed(2)).
		Msg("quote assembled")

	return quote, nil
}
