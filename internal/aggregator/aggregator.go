package aggregator

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/estensen/marketplace-api/internal/address"
	"github.com/estensen/marketplace-api/internal/models"
	"github.com/estensen/marketplace-api/internal/utils"
)

// Source provides the raw marketplace datasets.
type Source interface {
	FetchListings(ctx context.Context) ([]models.Listing, error)
	FetchPurchases(ctx context.Context) ([]models.Purchase, error)
}

// Aggregator answers the marketplace read queries.
type Aggregator interface {
	ActiveListings(ctx context.Context) ([]models.Listing, error)
	ListingsByOwner(ctx context.Context, owner string) ([]models.Listing, error)
	PurchasesByBuyer(ctx context.Context, buyer string) ([]models.Purchase, error)
	CollectionStats(ctx context.Context, contract string) (models.CollectionStats, error)
	AllCollectionStats(ctx context.Context) ([]models.CollectionStats, error)
}

// MarketAggregator filters and reduces the subgraph datasets. It keeps no
// state between calls; every call re-fetches what it needs.
type MarketAggregator struct {
	source Source
	logger logrus.FieldLogger
}

// NewAggregator creates a new MarketAggregator reading from source.
func NewAggregator(source Source, logger logrus.FieldLogger) *MarketAggregator {
	return &MarketAggregator{
		source: source,
		logger: logger,
	}
}

// ActiveListings returns every active listing.
func (a *MarketAggregator) ActiveListings(ctx context.Context) ([]models.Listing, error) {
	return a.fetchActiveListings(ctx, "")
}

// ListingsByOwner returns the active listings of owner.
func (a *MarketAggregator) ListingsByOwner(ctx context.Context, owner string) ([]models.Listing, error) {
	return a.fetchActiveListings(ctx, owner)
}

// fetchActiveListings drops inactive listings, then filters by owner
// unless owner is empty.
func (a *MarketAggregator) fetchActiveListings(ctx context.Context, owner string) ([]models.Listing, error) {
	listings, err := a.source.FetchListings(ctx)
	if err != nil {
		return nil, err
	}

	var active []models.Listing
	for _, listing := range listings {
		if !listing.IsActive {
			continue
		}
		if owner != "" && !address.Equal(listing.Owner, owner) {
			continue
		}
		active = append(active, listing)
	}

	if len(active) == 0 {
		if owner != "" {
			return nil, notFound("no active listings for owner %s", owner)
		}
		return nil, notFound("no active listings")
	}

	return active, nil
}

// PurchasesByBuyer returns the purchases made by buyer in upstream order.
func (a *MarketAggregator) PurchasesByBuyer(ctx context.Context, buyer string) ([]models.Purchase, error) {
	purchases, err := a.source.FetchPurchases(ctx)
	if err != nil {
		return nil, err
	}

	var bought []models.Purchase
	for _, purchase := range purchases {
		if address.Equal(purchase.Buyer, buyer) {
			bought = append(bought, purchase)
		}
	}

	if len(bought) == 0 {
		return nil, notFound("no purchases for address %s", buyer)
	}

	return bought, nil
}

// CollectionStats computes the floor price and traded volume of contract.
// Both datasets are fetched concurrently. When both sides fail, a fault
// (upstream or price) wins over not-found, and a listings fault wins over
// a purchases fault, so the outcome does not depend on which fetch
// finishes first.
func (a *MarketAggregator) CollectionStats(ctx context.Context, contract string) (models.CollectionStats, error) {
	var (
		floor, volume       int64
		floorErr, volumeErr error
		g                   errgroup.Group
	)

	g.Go(func() error {
		listings, err := a.source.FetchListings(ctx)
		if err != nil {
			floorErr = err
			return nil
		}
		floor, floorErr = floorPrice(listings, contract)
		return nil
	})

	g.Go(func() error {
		purchases, err := a.source.FetchPurchases(ctx)
		if err != nil {
			volumeErr = err
			return nil
		}
		volume, volumeErr = tradedVolume(purchases, contract)
		return nil
	})

	_ = g.Wait()

	if err := firstError(floorErr, volumeErr); err != nil {
		return models.CollectionStats{}, err
	}

	a.logger.WithFields(logrus.Fields{
		"contract":      contract,
		"floor_price":   floor,
		"traded_volume": volume,
	}).Debug("Computed collection stats")

	return models.CollectionStats{
		ID:           contract,
		FloorPrice:   floor,
		TradedVolume: volume,
	}, nil
}

// AllCollectionStats computes stats for every contract that has at least
// one listing, sorted by contract address. Contracts whose listings carry
// no parseable price are skipped.
func (a *MarketAggregator) AllCollectionStats(ctx context.Context) ([]models.CollectionStats, error) {
	var (
		listings                  []models.Listing
		purchases                 []models.Purchase
		listingsErr, purchasesErr error
		g                         errgroup.Group
	)

	g.Go(func() error {
		listings, listingsErr = a.source.FetchListings(ctx)
		return nil
	})
	g.Go(func() error {
		purchases, purchasesErr = a.source.FetchPurchases(ctx)
		return nil
	})
	_ = g.Wait()

	if err := firstError(listingsErr, purchasesErr); err != nil {
		return nil, err
	}

	contracts := utils.UniqueContracts(listings)
	stats := make([]models.CollectionStats, 0, len(contracts))
	for _, contract := range contracts {
		floor, err := floorPrice(listings, contract)
		if IsNotFound(err) {
			a.logger.WithField("contract", contract).Warn("Skipping collection without a parseable listing price")
			continue
		}
		if err != nil {
			return nil, err
		}

		volume, err := tradedVolume(purchases, contract)
		if err != nil {
			return nil, err
		}

		stats = append(stats, models.CollectionStats{
			ID:           contract,
			FloorPrice:   floor,
			TradedVolume: volume,
		})
	}

	return stats, nil
}

// firstError picks the error to report from independently computed
// results: the first fault in argument order, else the first not-found.
func firstError(errs ...error) error {
	var missing error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !IsNotFound(err) {
			return err
		}
		if missing == nil {
			missing = err
		}
	}
	return missing
}

// floorPrice returns the lowest parseable price among the listings of
// contract, active or not.
func floorPrice(listings []models.Listing, contract string) (int64, error) {
	matched := 0
	found := false
	var lowest int64

	for _, listing := range listings {
		if !address.Equal(listing.NFTContractAddress, contract) {
			continue
		}
		matched++

		price, err := parsePrice(listing.Price)
		if err != nil {
			continue
		}
		if !found || price < lowest {
			lowest = price
			found = true
		}
	}

	if matched == 0 || !found {
		return 0, notFound("no collection with id %s", contract)
	}

	return lowest, nil
}

// tradedVolume sums the prices of every purchase of contract. No purchases
// yield zero; an unparseable price is an error.
func tradedVolume(purchases []models.Purchase, contract string) (int64, error) {
	var total int64

	for _, purchase := range purchases {
		if !address.Equal(purchase.NFTContractAddress, contract) {
			continue
		}

		price, err := parsePrice(purchase.Price)
		if err != nil {
			return 0, fmt.Errorf("purchase %s: %w", purchase.ID, err)
		}

		if (price > 0 && total > math.MaxInt64-price) || (price < 0 && total < math.MinInt64-price) {
			return 0, fmt.Errorf("purchase %s: %w", purchase.ID, ErrVolumeOverflow)
		}
		total += price
	}

	return total, nil
}

// parsePrice parses a smallest-unit integer amount.
func parsePrice(value string) (int64, error) {
	price, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidPrice, value)
	}
	return price, nil
}
