package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/estensen/marketplace-api/internal/address"
	"github.com/estensen/marketplace-api/internal/models"
)

// UniqueContracts returns the normalized contract addresses referenced by
// listings, sorted ascending.
func UniqueContracts(listings []models.Listing) []string {
	contractSet := make(map[string]struct{})
	for _, listing := range listings {
		contractSet[address.Normalize(listing.NFTContractAddress)] = struct{}{}
	}
	contracts := make([]string, 0, len(contractSet))
	for contract := range contractSet {
		contracts = append(contracts, contract)
	}
	sort.Strings(contracts)
	return contracts
}

// DisplayCollectionStats prints collection stats in a table format.
func DisplayCollectionStats(w io.Writer, stats []models.CollectionStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No collections to display.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Collection", "Floor Price", "Traded Volume"})

	for _, s := range stats {
		t.AppendRow(table.Row{
			s.ID,
			s.FloorPrice,
			s.TradedVolume,
		})
	}

	t.Render()
}
