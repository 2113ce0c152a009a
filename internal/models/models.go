package models

// Listing is a marketplace listing as indexed by the subgraph.
// Field names match the subgraph schema and the API response.
type Listing struct {
	ID                 string `json:"id"`
	Owner              string `json:"owner"`
	TokenID            string `json:"tokenId"`
	NFTContractAddress string `json:"nftContractAddress"`
	Price              string `json:"price"`
	IsActive           bool   `json:"isActive"`
	BlockNumber        string `json:"blockNumber"`
	BlockTimestamp     string `json:"blockTimestamp"`
	TransactionHash    string `json:"transactionHash"`
}

// Purchase is a completed sale. Owner is the seller at the time of sale.
type Purchase struct {
	ID                 string `json:"id"`
	Buyer              string `json:"buyer"`
	Owner              string `json:"owner"`
	TokenID            string `json:"tokenId"`
	NFTContractAddress string `json:"nftContractAddress"`
	Price              string `json:"price"`
	BlockNumber        string `json:"blockNumber"`
	BlockTimestamp     string `json:"blockTimestamp"`
	TransactionHash    string `json:"transactionHash"`
}

// CollectionStats holds the derived metrics of a collection, in the
// smallest currency unit.
type CollectionStats struct {
	ID           string `json:"id"`
	FloorPrice   int64  `json:"floorPrice"`
	TradedVolume int64  `json:"tradedVolume"`
}
